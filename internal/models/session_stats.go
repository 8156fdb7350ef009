package models

import (
	"time"
)

// SessionStats summarises one completed round. It is appended to the
// persisted history once and never changed afterwards.
type SessionStats struct {
	// ID is the unique identifier for this record
	ID string `json:"id"`

	// Timestamp is when the round returned to idle
	Timestamp time.Time `json:"timestamp"`

	// AvgBuzzTimeMs is the mean buzz latency over the round's buzzes
	AvgBuzzTimeMs float64 `json:"avgBuzzTimeMs"`

	// Score is the final score of the round
	Score int `json:"score"`

	IncorrectBuzzes int `json:"incorrectBuzzes"`
	CorrectStarters int `json:"correctStarters"`
	TotalStarters   int `json:"totalStarters"`
	CorrectBonuses  int `json:"correctBonuses"`
	TotalBonuses    int `json:"totalBonuses"`
}
