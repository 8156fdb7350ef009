package engine

import "context"

// Service drives a single player's quiz session
type Service interface {
	// Start begins a new round from idle
	Start(ctx context.Context, input *StartInput) (*StartOutput, error)

	// Buzz stops the countdown and reveals the starter answer
	Buzz(ctx context.Context, input *BuzzInput) (*BuzzOutput, error)

	// JudgeStarter records whether the revealed starter was answered correctly
	JudgeStarter(ctx context.Context, input *JudgeStarterInput) (*JudgeStarterOutput, error)

	// RevealBonusAnswer shows the answer to the current bonus question
	RevealBonusAnswer(ctx context.Context, input *RevealBonusAnswerInput) (*RevealBonusAnswerOutput, error)

	// JudgeBonus records whether the revealed bonus was answered correctly
	JudgeBonus(ctx context.Context, input *JudgeBonusInput) (*JudgeBonusOutput, error)

	// ContinueRound moves from the round summary to the next starter
	ContinueRound(ctx context.Context, input *ContinueRoundInput) (*ContinueRoundOutput, error)

	// EndSession ends the round from the round summary
	EndSession(ctx context.Context, input *EndSessionInput) (*EndSessionOutput, error)

	// ToggleSound flips the buzz sound
	ToggleSound(ctx context.Context, input *ToggleSoundInput) (*ToggleSoundOutput, error)

	// ToggleHistoryView flips between the recent window and the full history,
	// reloading the stored sessions
	ToggleHistoryView(ctx context.Context, input *ToggleHistoryViewInput) (*ToggleHistoryViewOutput, error)

	// GetSnapshot returns the current view of the session. Set RefreshHistory
	// to pick up sessions stored by other engines sharing the store.
	GetSnapshot(ctx context.Context, input *GetSnapshotInput) (*GetSnapshotOutput, error)

	// Close stops any running countdown
	Close() error
}
