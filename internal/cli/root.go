package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// options shared by every subcommand
type options struct {
	configPath    string
	store         string
	questionsPath string
}

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("STARTERFORTEN_CONFIG")
	if envConfig == "" {
		envConfig = "starterforten.yaml"
	}

	opts := &options{}

	cmd := &cobra.Command{
		Use:          "starterforten",
		Short:        "Buzzer quiz with starters, bonuses and session history",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", envConfig, "path to YAML config")
	cmd.PersistentFlags().StringVar(&opts.store, "store", "", "session store: memory, sqlite or redis")
	cmd.PersistentFlags().StringVar(&opts.questionsPath, "questions", "", "JSON or YAML question bank")

	cmd.AddCommand(NewPlayCmd(opts))
	cmd.AddCommand(NewBotCmd(opts))
	cmd.AddCommand(NewStatsCmd(opts))
	return cmd
}
