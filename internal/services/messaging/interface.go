package messaging

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetJudgementMessage returns the host's line after a starter or bonus is judged
	GetJudgementMessage(ctx context.Context, input *GetJudgementMessageInput) (*GetJudgementMessageOutput, error)

	// GetRoundEndMessage returns the host's sign-off with the final score
	GetRoundEndMessage(ctx context.Context, input *GetRoundEndMessageInput) (*GetRoundEndMessageOutput, error)

	// GetErrorMessage returns a user-friendly line for a rejected action
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
