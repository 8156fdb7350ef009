package messaging

import (
	"github.com/KirkDiggler/starterforten/internal/services/engine"
)

// JudgementBetween works out what happened between two consecutive engine
// snapshots. It returns false when the change was not a judgement or a
// timeout, such as a start, a reveal or a settings toggle.
func JudgementBetween(prev, next *engine.Snapshot) (Judgement, int, bool) {
	if prev == nil || next == nil || prev.Phase.IsIdle() {
		return "", 0, false
	}

	points := next.Score - prev.Score

	switch {
	case next.CorrectStarters > prev.CorrectStarters:
		return JudgementStarterCorrect, points, true
	case next.IncorrectBuzzes > prev.IncorrectBuzzes:
		return JudgementStarterIncorrect, 0, true
	case next.CorrectBonuses > prev.CorrectBonuses:
		return JudgementBonusCorrect, points, true
	case next.TotalBonuses > prev.TotalBonuses:
		return JudgementBonusIncorrect, 0, true
	case prev.Phase.IsPresenting() && next.Phase.IsRevealed() && next.Buzzes == prev.Buzzes:
		return JudgementTimeout, 0, true
	}
	return "", 0, false
}

// RoundEnded reports whether the engine just went back to idle
func RoundEnded(prev, next *engine.Snapshot) bool {
	return prev != nil && next != nil && !prev.Phase.IsIdle() && next.Phase.IsIdle()
}
