package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/KirkDiggler/starterforten/internal/audio"
	"github.com/KirkDiggler/starterforten/internal/handlers/terminal"
	"github.com/KirkDiggler/starterforten/internal/random"
	"github.com/KirkDiggler/starterforten/internal/services/engine"
	"github.com/KirkDiggler/starterforten/internal/services/messaging"
	"github.com/spf13/cobra"
)

// NewPlayCmd builds the CLI subcommand to play in the terminal.
func NewPlayCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play a quiz session in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), opts)
		},
	}
}

func runPlay(ctx context.Context, opts *options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	repo, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	bank, err := loadBank(cfg)
	if err != nil {
		return err
	}

	rnd := random.New(&random.Config{Seed: cfg.Game.Seed})

	msg, err := messaging.NewService(&messaging.ServiceConfig{Random: rnd})
	if err != nil {
		return err
	}

	handler, err := terminal.New(&terminal.Config{
		Messaging: msg,
		In:        os.Stdin,
		Out:       os.Stdout,
	})
	if err != nil {
		return err
	}

	engineCfg := engineConfig(cfg, bank, repo, rnd, audio.NewBell(os.Stdout))
	engineCfg.Listener = handler.OnSnapshot

	svc, err := engine.New(ctx, engineCfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	return handler.Run(ctx, svc)
}
