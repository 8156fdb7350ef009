package messaging

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/starterforten/internal/random"
)

// service implements the Service interface
type service struct {
	// Random picks among the candidate lines
	rand random.Source
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (*service, error) {
	if config == nil {
		return nil, errors.New("config cannot be nil")
	}
	if config.Random == nil {
		return nil, errors.New("random source cannot be nil")
	}

	return &service{
		rand: config.Random,
	}, nil
}

// GetJudgementMessage returns the host's line after a starter or bonus is judged
func (s *service) GetJudgementMessage(ctx context.Context, input *GetJudgementMessageInput) (*GetJudgementMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var messages []string
	var tone MessageTone

	switch input.Judgement {
	case JudgementStarterCorrect:
		tone = ToneCelebration
		messages = []string{
			fmt.Sprintf("Correct! %d points, and you've earned a set of bonuses.", input.Points),
			fmt.Sprintf("Yes! Take %d points.", input.Points),
			fmt.Sprintf("That's right. %d points to you, no conferring needed.", input.Points),
			fmt.Sprintf("Superb. %d points, and quick on the buzzer too.", input.Points),
			fmt.Sprintf("Spot on! %d points.", input.Points),
		}
	case JudgementStarterIncorrect:
		tone = ToneSarcastic
		messages = []string{
			"No, I'm afraid not.",
			"Ooh, no. Bold, but wrong.",
			"That buzzer was faster than the thinking behind it.",
			"Not quite. The question will not be offered to the other team, because there isn't one.",
			"No. Let's pretend that never happened.",
		}
	case JudgementTimeout:
		tone = ToneNeutral
		messages = []string{
			"Time's up. Nobody buzzed, so here's the answer.",
			"Sixty seconds of silence. The answer was on the tip of your tongue, surely.",
			"Out of time! Let's see what it was.",
			"The clock beat you to it.",
		}
	case JudgementBonusCorrect:
		tone = ToneEncouraging
		messages = []string{
			fmt.Sprintf("Correct, %d more points.", input.Points),
			fmt.Sprintf("Yes. %d points.", input.Points),
			fmt.Sprintf("Well remembered! %d points.", input.Points),
			fmt.Sprintf("That's the one. %d points.", input.Points),
		}
	case JudgementBonusIncorrect:
		tone = ToneFunny
		messages = []string{
			"No, but a good guess.",
			"Not that one. Next bonus.",
			"Sadly not. Onwards.",
			"No. I'll accept it as a learning experience.",
		}
	default:
		return nil, fmt.Errorf("unknown judgement: %q", input.Judgement)
	}

	if input.PreferredTone != "" {
		tone = input.PreferredTone
	}

	return &GetJudgementMessageOutput{
		Message: s.pick(messages),
		Tone:    tone,
	}, nil
}

// GetRoundEndMessage returns the host's sign-off with the final score
func (s *service) GetRoundEndMessage(ctx context.Context, input *GetRoundEndMessageInput) (*GetRoundEndMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var titles, messages []string
	var tone MessageTone

	switch {
	case input.Score > 0 && input.Score > input.BestScore:
		tone = ToneCelebration
		titles = []string{"New Personal Best!", "Record Broken!", "Top Score!"}
		messages = []string{
			fmt.Sprintf("You finished on %d, beating your previous best of %d.", input.Score, input.BestScore),
			fmt.Sprintf("%d points! That's the highest you've ever scored.", input.Score),
			fmt.Sprintf("A new record of %d. Frame it.", input.Score),
		}
	case input.Score == 0:
		tone = ToneSarcastic
		titles = []string{"Nul Points", "A Quiet Round", "Zero"}
		messages = []string{
			"You finished on zero. The starters won this time.",
			fmt.Sprintf("No points, %d of %d starters. Tomorrow is another quiz.", input.CorrectStarters, input.TotalStarters),
			"Zero points. At least the average can only go up from here.",
		}
	default:
		tone = ToneEncouraging
		titles = []string{"Round Over", "That's the Gong", "Final Score"}
		messages = []string{
			fmt.Sprintf("You finished on %d points with %d of %d starters.", input.Score, input.CorrectStarters, input.TotalStarters),
			fmt.Sprintf("%d points. A respectable showing.", input.Score),
			fmt.Sprintf("Final score %d. Your best is still %d, so there's something to aim for.", input.Score, input.BestScore),
		}
	}

	return &GetRoundEndMessageOutput{
		Title:   s.pick(titles),
		Message: s.pick(messages),
		Tone:    tone,
	}, nil
}

// GetErrorMessage returns a user-friendly line for a rejected action
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	tone := input.PreferredTone
	if tone == "" {
		tone = ToneFunny
	}

	var messages []string
	switch input.ErrorType {
	case ErrorTypeInvalidAction:
		messages = []string{
			"You can't do that right now.",
			"Steady on, that button isn't live yet.",
			"Not at this stage of the round.",
		}
	case ErrorTypeNotRevealed:
		messages = []string{
			"Reveal the answer before you mark yourself.",
			"Nice try. Let's see the answer first.",
		}
	case ErrorTypeNoGame:
		messages = []string{
			"There's no quiz running here. Start one with /challenge play.",
			"No game in this channel yet.",
		}
	default:
		messages = []string{
			"Something went wrong. Try again.",
			"The quizmaster has lost their cards. Try again.",
		}
	}

	return &GetErrorMessageOutput{
		Message: s.pick(messages),
		Tone:    tone,
	}, nil
}

func (s *service) pick(options []string) string {
	return options[s.rand.Intn(len(options))]
}
