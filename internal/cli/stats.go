package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	statsRepo "github.com/KirkDiggler/starterforten/internal/repositories/stats"
	"github.com/KirkDiggler/starterforten/internal/services/history"
	"github.com/spf13/cobra"
)

// NewStatsCmd builds the CLI subcommand to print stored session history.
func NewStatsCmd(opts *options) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print recorded sessions and lifetime totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			repo, closeStore, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			return printStats(cmd.Context(), os.Stdout, repo, all, cfg.Game.HistoryWindow)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "show every session instead of the most recent")
	return cmd
}

func printStats(ctx context.Context, w io.Writer, repo statsRepo.Repository, all bool, window int) error {
	if ctx == nil {
		ctx = context.Background()
	}

	out, err := repo.LoadSessions(ctx, &statsRepo.LoadSessionsInput{})
	if err != nil {
		return fmt.Errorf("failed to load sessions: %w", err)
	}

	rows := history.Project(out.Sessions, all, window)
	if len(rows) == 0 {
		fmt.Fprintln(w, "no sessions recorded yet")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SESSION\tSCORE\tAVG BUZZ\tSTARTERS\tBONUSES")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%.2fs\t%.0f%%\t%.0f%%\n",
			row.Label, row.Score, row.AvgBuzzTimeSeconds, row.PctStartersCorrect, row.PctBonusesCorrect)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	t := history.Summarize(out.Sessions)
	fmt.Fprintf(w, "\n%d sessions, %d points, best %d\n", t.Sessions, t.Score, t.BestScore)
	fmt.Fprintf(w, "starters %d/%d, bonuses %d/%d, wrong buzzes %d, average buzz %.2fs\n",
		t.CorrectStarters, t.TotalStarters, t.CorrectBonuses, t.TotalBonuses,
		t.IncorrectBuzzes, t.AvgBuzzTimeMs/1000)
	return nil
}
