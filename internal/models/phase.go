package models

// Phase represents the current state of the game engine
type Phase string

const (
	// PhaseIdle is the pre-game state between rounds; the history is shown
	PhaseIdle Phase = "idle"

	// PhasePresenting indicates a starter is on screen and the countdown is running
	PhasePresenting Phase = "presenting"

	// PhaseRevealed indicates the starter answer is visible and awaits a judgement
	PhaseRevealed Phase = "revealed"

	// PhaseBonusRound indicates one of the three bonus questions is being asked
	PhaseBonusRound Phase = "bonus_round"

	// PhaseRoundSummary is the pause between starters
	PhaseRoundSummary Phase = "round_summary"
)

// IsIdle returns true if no round is in progress
func (p Phase) IsIdle() bool {
	return p == PhaseIdle
}

// IsPresenting returns true if a starter countdown is running
func (p Phase) IsPresenting() bool {
	return p == PhasePresenting
}

// IsRevealed returns true if a starter awaits judgement
func (p Phase) IsRevealed() bool {
	return p == PhaseRevealed
}

// IsBonusRound returns true if a bonus set is being played
func (p Phase) IsBonusRound() bool {
	return p == PhaseBonusRound
}

// IsRoundSummary returns true if the round is paused between starters
func (p Phase) IsRoundSummary() bool {
	return p == PhaseRoundSummary
}

func (p Phase) String() string {
	return string(p)
}
