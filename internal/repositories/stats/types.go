package stats

import (
	"encoding/json"
	"fmt"

	"github.com/KirkDiggler/starterforten/internal/models"
)

// DefaultKey is the storage identifier the session list is kept under
const DefaultKey = "starterforten:session_stats"

// RepositoryError is a custom error type for stats storage errors
type RepositoryError string

// Error implements the error interface
func (e RepositoryError) Error() string {
	return string(e)
}

const (
	ErrNilConfig      RepositoryError = "config cannot be nil"
	ErrNilClient      RepositoryError = "storage client cannot be nil"
	ErrNilSession     RepositoryError = "input and session cannot be nil"
	ErrCorruptHistory RepositoryError = "stored session history is corrupt"
	ErrAppendConflict RepositoryError = "session history changed during append"
)

type LoadSessionsInput struct {
}

type LoadSessionsOutput struct {
	Sessions []*models.SessionStats
}

type AppendSessionInput struct {
	Session *models.SessionStats
}

// decodeSessions parses a stored blob. An empty blob is an empty history.
func decodeSessions(blob []byte) ([]*models.SessionStats, error) {
	if len(blob) == 0 {
		return []*models.SessionStats{}, nil
	}

	var sessions []*models.SessionStats
	if err := json.Unmarshal(blob, &sessions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptHistory, err)
	}
	if sessions == nil {
		sessions = []*models.SessionStats{}
	}
	return sessions, nil
}

// appendSession returns the blob with session added. A corrupt blob is
// replaced, since its entries can no longer be read anyway.
func appendSession(blob []byte, session *models.SessionStats) ([]byte, error) {
	sessions, err := decodeSessions(blob)
	if err != nil {
		sessions = []*models.SessionStats{}
	}

	sessions = append(sessions, session)

	out, err := json.Marshal(sessions)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sessions: %w", err)
	}
	return out, nil
}
