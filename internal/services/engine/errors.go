package engine

import "github.com/KirkDiggler/starterforten/internal/round"

// EngineError is a custom error type for engine construction errors
type EngineError string

// Error implements the error interface
func (e EngineError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig        EngineError = "config cannot be nil"
	ErrNilBank          EngineError = "question bank cannot be nil"
	ErrNilStatsRepo     EngineError = "stats repository cannot be nil"
	ErrNilClock         EngineError = "clock cannot be nil"
	ErrNilRandom        EngineError = "random source cannot be nil"
	ErrNilUUIDGenerator EngineError = "UUID generator cannot be nil"
)

// Rejected intents surface the round errors unchanged so callers can match
// them with errors.Is.
const (
	ErrInvalidTransition = round.ErrInvalidTransition
	ErrDataIntegrity     = round.ErrDataIntegrity
	ErrAnswerNotRevealed = round.ErrAnswerNotRevealed
)
