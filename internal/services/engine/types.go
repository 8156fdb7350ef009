package engine

import (
	"time"

	"github.com/KirkDiggler/starterforten/internal/audio"
	"github.com/KirkDiggler/starterforten/internal/common/clock"
	"github.com/KirkDiggler/starterforten/internal/common/uuid"
	"github.com/KirkDiggler/starterforten/internal/models"
	"github.com/KirkDiggler/starterforten/internal/questionbank"
	"github.com/KirkDiggler/starterforten/internal/random"
	statsRepo "github.com/KirkDiggler/starterforten/internal/repositories/stats"
	"github.com/KirkDiggler/starterforten/internal/services/history"
)

const (
	// DefaultCountdown is how long a starter stays up before it times out
	DefaultCountdown = 60 * time.Second

	// DefaultTickInterval is how often the countdown is checked
	DefaultTickInterval = 10 * time.Millisecond
)

// Listener receives a fresh snapshot after every state change, including
// countdown expiry. It is called without the engine lock held.
type Listener func(snapshot *Snapshot)

// Config holds configuration for the engine
type Config struct {
	// Countdown per starter, DefaultCountdown when zero
	Countdown time.Duration

	// TickInterval for the countdown check, DefaultTickInterval when zero
	TickInterval time.Duration

	// BonusPoints per correct bonus, round.DefaultBonusPoints when zero
	BonusPoints int

	// HistoryWindow is the number of recent sessions shown, history.DefaultWindow when zero
	HistoryWindow int

	// SoundEnabled is the initial sound setting
	SoundEnabled bool

	Bank      *questionbank.Bank
	StatsRepo statsRepo.Repository

	Clock         clock.Clock
	Random        random.Source
	UUIDGenerator uuid.UUID

	// Cue plays on buzz when sound is enabled; optional
	Cue audio.Cue

	// Listener is optional
	Listener Listener
}

// Snapshot is a read-only view of the session for presenters. Question and
// answer text is only filled in when the phase allows it to be seen.
type Snapshot struct {
	Phase models.Phase

	// Starter fields are set while presenting or revealed
	QuestionText string
	AnswerText   string
	Points       int

	// Bonus fields are set during the bonus round; AnswerText holds the
	// bonus answer once revealed
	BonusTopic    string
	BonusNumber   int
	BonusRevealed bool

	Elapsed   time.Duration
	Remaining time.Duration
	Countdown time.Duration

	Score           int
	CorrectStarters int
	TotalStarters   int
	CorrectBonuses  int
	TotalBonuses    int
	IncorrectBuzzes int
	Buzzes          int
	AvgBuzzTimeMs   float64

	StartersRemaining int
	BonusesRemaining  int

	SoundEnabled   bool
	ShowAllHistory bool

	// History is every stored session, oldest first
	History     []*models.SessionStats
	HistoryRows []history.Row
	Lifetime    history.Totals
}

type StartInput struct{}

type StartOutput struct {
	Snapshot *Snapshot
}

type BuzzInput struct{}

type BuzzOutput struct {
	Snapshot *Snapshot

	// LatencyMs is the recorded buzz time
	LatencyMs int64
}

type JudgeStarterInput struct {
	Correct bool
}

type JudgeStarterOutput struct {
	Snapshot *Snapshot

	// BonusStarted is true when a bonus set was drawn
	BonusStarted bool

	// RecordedSession is set when the judgement ended the round and the
	// session was stored
	RecordedSession *models.SessionStats
}

type RevealBonusAnswerInput struct{}

type RevealBonusAnswerOutput struct {
	Snapshot *Snapshot
}

type JudgeBonusInput struct {
	Correct bool
}

type JudgeBonusOutput struct {
	Snapshot        *Snapshot
	RecordedSession *models.SessionStats
}

type ContinueRoundInput struct{}

type ContinueRoundOutput struct {
	Snapshot        *Snapshot
	RecordedSession *models.SessionStats
}

type EndSessionInput struct{}

type EndSessionOutput struct {
	Snapshot        *Snapshot
	RecordedSession *models.SessionStats
}

type ToggleSoundInput struct{}

type ToggleSoundOutput struct {
	Snapshot *Snapshot
}

type ToggleHistoryViewInput struct{}

type ToggleHistoryViewOutput struct {
	Snapshot *Snapshot
}

type GetSnapshotInput struct {
	// RefreshHistory reloads the stored sessions before building the snapshot
	RefreshHistory bool
}

type GetSnapshotOutput struct {
	Snapshot *Snapshot
}
