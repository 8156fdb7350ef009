// Package terminal plays the quiz on a line-oriented console.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"github.com/KirkDiggler/starterforten/internal/services/engine"
	"github.com/KirkDiggler/starterforten/internal/services/messaging"
)

// Config holds configuration for the terminal handler
type Config struct {
	Messaging messaging.Service
	In        io.Reader
	Out       io.Writer
}

// Handler maps key presses to engine intents and renders engine snapshots
type Handler struct {
	messaging messaging.Service
	in        io.Reader

	mu   sync.Mutex
	out  io.Writer
	last *engine.Snapshot
}

// New creates a new terminal handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Messaging == nil {
		return nil, errors.New("messaging service cannot be nil")
	}
	if cfg.In == nil || cfg.Out == nil {
		return nil, errors.New("input and output are required")
	}

	return &Handler{
		messaging: cfg.Messaging,
		in:        cfg.In,
		out:       cfg.Out,
	}, nil
}

// OnSnapshot is the engine listener. It announces judgements and the end of
// a round, then redraws the current phase.
func (h *Handler) OnSnapshot(snap *engine.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	prev := h.last
	h.last = snap

	ctx := context.Background()

	if judgement, points, ok := messaging.JudgementBetween(prev, snap); ok {
		out, err := h.messaging.GetJudgementMessage(ctx, &messaging.GetJudgementMessageInput{
			Judgement: judgement,
			Points:    points,
		})
		if err != nil {
			log.Printf("Error getting judgement message: %v", err)
		} else {
			fmt.Fprintf(h.out, "\n>> %s\n", out.Message)
		}
	}

	if messaging.RoundEnded(prev, snap) {
		best := 0
		if prev != nil {
			best = prev.Lifetime.BestScore
		}
		out, err := h.messaging.GetRoundEndMessage(ctx, &messaging.GetRoundEndMessageInput{
			Score:           snap.Score,
			CorrectStarters: snap.CorrectStarters,
			TotalStarters:   snap.TotalStarters,
			BestScore:       best,
		})
		if err != nil {
			log.Printf("Error getting round end message: %v", err)
		} else {
			fmt.Fprintf(h.out, "\n** %s ** %s\n", out.Title, out.Message)
		}
	}

	// toggles print their own confirmation
	if prev != nil && prev.Phase == snap.Phase &&
		(prev.SoundEnabled != snap.SoundEnabled || prev.ShowAllHistory != snap.ShowAllHistory) {
		return
	}

	renderSnapshot(h.out, snap)
}

// Run reads commands until the input ends, q is entered or ctx is cancelled
func (h *Handler) Run(ctx context.Context, svc engine.Service) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(h.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	h.printf("%s\n", helpText)
	snap, err := svc.GetSnapshot(ctx, &engine.GetSnapshotInput{})
	if err != nil {
		return err
	}
	h.OnSnapshot(snap.Snapshot)

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			if quit := h.handle(ctx, svc, line); quit {
				return nil
			}
		}
	}
}

// handle runs one command and reports whether the player asked to quit
func (h *Handler) handle(ctx context.Context, svc engine.Service, line string) bool {
	key := strings.ToLower(strings.TrimSpace(line))

	var err error
	switch key {
	case "q", "quit":
		return true
	case "?", "help":
		h.printf("%s\n", helpText)
	case "s":
		_, err = svc.Start(ctx, &engine.StartInput{})
	case "", "b":
		_, err = svc.Buzz(ctx, &engine.BuzzInput{})
	case "y", "n":
		err = h.judge(ctx, svc, key == "y")
	case "r":
		_, err = svc.RevealBonusAnswer(ctx, &engine.RevealBonusAnswerInput{})
	case "c":
		_, err = svc.ContinueRound(ctx, &engine.ContinueRoundInput{})
	case "e":
		_, err = svc.EndSession(ctx, &engine.EndSessionInput{})
	case "m":
		var out *engine.ToggleSoundOutput
		if out, err = svc.ToggleSound(ctx, &engine.ToggleSoundInput{}); err == nil {
			if out.Snapshot.SoundEnabled {
				h.printf("sound on\n")
			} else {
				h.printf("sound off\n")
			}
		}
	case "h":
		var out *engine.ToggleHistoryViewOutput
		if out, err = svc.ToggleHistoryView(ctx, &engine.ToggleHistoryViewInput{}); err == nil {
			h.mu.Lock()
			renderHistory(h.out, out.Snapshot)
			renderScoreChart(h.out, out.Snapshot)
			h.mu.Unlock()
		}
	default:
		h.printf("unknown key %q, ? for help\n", key)
	}

	if err != nil {
		h.explain(ctx, err)
	}
	return false
}

// judge sends y/n to whichever question is waiting for a verdict
func (h *Handler) judge(ctx context.Context, svc engine.Service, correct bool) error {
	snap, err := svc.GetSnapshot(ctx, &engine.GetSnapshotInput{})
	if err != nil {
		return err
	}

	if snap.Snapshot.Phase.IsBonusRound() {
		_, err = svc.JudgeBonus(ctx, &engine.JudgeBonusInput{Correct: correct})
		return err
	}
	_, err = svc.JudgeStarter(ctx, &engine.JudgeStarterInput{Correct: correct})
	return err
}

func (h *Handler) explain(ctx context.Context, err error) {
	errorType := messaging.ErrorTypeUnknown
	switch {
	case errors.Is(err, engine.ErrAnswerNotRevealed):
		errorType = messaging.ErrorTypeNotRevealed
	case errors.Is(err, engine.ErrInvalidTransition):
		errorType = messaging.ErrorTypeInvalidAction
	}

	out, msgErr := h.messaging.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{
		ErrorType: errorType,
	})
	if msgErr != nil {
		h.printf("error: %v\n", err)
		return
	}
	h.printf("%s\n", out.Message)
}

func (h *Handler) printf(format string, args ...any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fmt.Fprintf(h.out, format, args...)
}
