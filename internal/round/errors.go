package round

// Error is a custom error type for rejected round transitions
type Error string

// Error implements the error interface
func (e Error) Error() string {
	return string(e)
}

// Define errors
const (
	// ErrInvalidTransition is returned when an intent is not valid in the current phase
	ErrInvalidTransition Error = "invalid transition"

	// ErrDataIntegrity is returned when the pool no longer holds the question being judged
	ErrDataIntegrity Error = "question data out of sync with pool"

	// ErrAnswerNotRevealed is returned when a bonus is judged before its answer is shown
	ErrAnswerNotRevealed Error = "bonus answer has not been revealed"

	// ErrNoStarters is returned when a round is started without starter questions
	ErrNoStarters Error = "no starter questions available"
)
