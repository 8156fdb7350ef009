package stats

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/starterforten/internal/repositories/stats Repository

import (
	"context"
)

// Repository is the append-only log of completed session statistics. All
// records live in one serialized list under a single storage key.
type Repository interface {
	// LoadSessions returns every stored session in the order they were appended.
	// An absent key yields an empty list.
	LoadSessions(ctx context.Context, input *LoadSessionsInput) (*LoadSessionsOutput, error)

	// AppendSession adds one session to the end of the list without losing
	// previously stored entries
	AppendSession(ctx context.Context, input *AppendSessionInput) error
}
