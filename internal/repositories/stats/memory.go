package stats

import (
	"context"
	"sync"
)

// memoryRepository holds the serialized list in process memory. Useful for
// tests and for playing without persistence.
type memoryRepository struct {
	mu    sync.Mutex
	blobs map[string][]byte
	key   string
}

// NewMemory creates an in-memory stats repository
func NewMemory() *memoryRepository {
	return &memoryRepository{
		blobs: make(map[string][]byte),
		key:   DefaultKey,
	}
}

func (r *memoryRepository) LoadSessions(ctx context.Context, input *LoadSessionsInput) (*LoadSessionsOutput, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions, err := decodeSessions(r.blobs[r.key])
	if err != nil {
		return nil, err
	}
	return &LoadSessionsOutput{Sessions: sessions}, nil
}

func (r *memoryRepository) AppendSession(ctx context.Context, input *AppendSessionInput) error {
	if input == nil || input.Session == nil {
		return ErrNilSession
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	updated, err := appendSession(r.blobs[r.key], input.Session)
	if err != nil {
		return err
	}
	r.blobs[r.key] = updated
	return nil
}

// setRaw replaces the stored blob; tests use it to simulate corruption
func (r *memoryRepository) setRaw(blob []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blobs[r.key] = blob
}
