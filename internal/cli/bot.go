package cli

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/KirkDiggler/starterforten/internal/audio"
	"github.com/KirkDiggler/starterforten/internal/handlers/discord"
	"github.com/KirkDiggler/starterforten/internal/random"
	"github.com/KirkDiggler/starterforten/internal/services/engine"
	"github.com/KirkDiggler/starterforten/internal/services/messaging"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// NewBotCmd builds the CLI subcommand to run the Discord bot.
func NewBotCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the quiz as a Discord bot, one game per channel",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBot(cmd.Context(), opts)
		},
	}
}

func runBot(ctx context.Context, opts *options) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if err := cfg.ValidateDiscord(); err != nil {
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

	bot, err := discord.New(&discord.Config{
		Token:         cfg.Discord.Token,
		ApplicationID: cfg.Discord.AppID,
		GuildID:       cfg.Discord.GuildID,
		Messaging:     msg,
		EngineFactory: func(ctx context.Context, listener engine.Listener) (engine.Service, error) {
			// a bell on the bot's terminal is no use to a Discord player
			engineCfg := engineConfig(cfg, bank, repo, rnd, audio.Nop{})
			engineCfg.Listener = listener
			return engine.New(ctx, engineCfg)
		},
	})
	if err != nil {
		return err
	}

	if err := bot.Start(); err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(sigCtx)
	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down bot...")
		return bot.Stop()
	})

	return g.Wait()
}
