package messaging

import (
	"github.com/KirkDiggler/starterforten/internal/random"
)

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral is a neutral tone
	ToneNeutral MessageTone = "neutral"

	// ToneFunny is a humorous tone
	ToneFunny MessageTone = "funny"

	// ToneSarcastic is a sarcastic tone
	ToneSarcastic MessageTone = "sarcastic"

	// ToneEncouraging is an encouraging tone
	ToneEncouraging MessageTone = "encouraging"

	// ToneCelebration is a celebratory tone
	ToneCelebration MessageTone = "celebration"
)

// Judgement is what just happened to the player
type Judgement string

const (
	JudgementStarterCorrect   Judgement = "starter_correct"
	JudgementStarterIncorrect Judgement = "starter_incorrect"
	JudgementTimeout          Judgement = "timeout"
	JudgementBonusCorrect     Judgement = "bonus_correct"
	JudgementBonusIncorrect   Judgement = "bonus_incorrect"
)

// ErrorType names a rejected action for GetErrorMessage
type ErrorType string

const (
	ErrorTypeInvalidAction ErrorType = "invalid_action"
	ErrorTypeNotRevealed   ErrorType = "not_revealed"
	ErrorTypeNoGame        ErrorType = "no_game"
	ErrorTypeUnknown       ErrorType = "unknown"
)

// GetJudgementMessageInput contains parameters for getting a judgement message
type GetJudgementMessageInput struct {
	Judgement Judgement

	// Points awarded, shown in correct-answer lines
	Points int

	// PreferredTone is optional; a tone is picked from the judgement otherwise
	PreferredTone MessageTone
}

// GetJudgementMessageOutput contains the generated judgement message
type GetJudgementMessageOutput struct {
	Message string
	Tone    MessageTone
}

// GetRoundEndMessageInput contains parameters for getting a round end message
type GetRoundEndMessageInput struct {
	Score           int
	CorrectStarters int
	TotalStarters   int

	// BestScore is the best stored score before this round
	BestScore int
}

// GetRoundEndMessageOutput contains the generated round end message
type GetRoundEndMessageOutput struct {
	Title   string
	Message string
	Tone    MessageTone
}

// GetErrorMessageInput contains parameters for getting an error message
type GetErrorMessageInput struct {
	ErrorType ErrorType

	// PreferredTone is the preferred tone for the message (optional)
	PreferredTone MessageTone
}

// GetErrorMessageOutput contains the result of getting an error message
type GetErrorMessageOutput struct {
	Message string
	Tone    MessageTone
}

// ServiceConfig contains configuration for the messaging service
type ServiceConfig struct {
	// Random picks among the candidate lines
	Random random.Source
}
