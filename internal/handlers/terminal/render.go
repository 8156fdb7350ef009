package terminal

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/KirkDiggler/starterforten/internal/models"
	"github.com/KirkDiggler/starterforten/internal/services/engine"
)

const helpText = `keys: [s]tart  [b]uzz/enter  [y]es  [n]o  [r]eveal  [c]ontinue  [e]nd  [m]ute  [h]istory  [q]uit`

// renderSnapshot writes what the player should see in the current phase
func renderSnapshot(w io.Writer, snap *engine.Snapshot) {
	switch snap.Phase {
	case models.PhaseIdle:
		fmt.Fprintf(w, "\n== Starter for Ten ==  last score %d  (%d/%d starters, %d/%d bonuses)\n",
			snap.Score, snap.CorrectStarters, snap.TotalStarters, snap.CorrectBonuses, snap.TotalBonuses)
		fmt.Fprintln(w, "press s to start a round")

	case models.PhasePresenting:
		fmt.Fprintf(w, "\nStarter for %d (%s on the clock, %d left in the pool)\n",
			snap.Points, seconds(snap.Remaining), snap.StartersRemaining)
		fmt.Fprintf(w, "  %s\n", snap.QuestionText)
		fmt.Fprintln(w, "press b or enter to buzz")

	case models.PhaseRevealed:
		fmt.Fprintf(w, "\n  %s\n", snap.QuestionText)
		fmt.Fprintf(w, "  Answer: %s\n", snap.AnswerText)
		fmt.Fprintln(w, "were you right? y/n")

	case models.PhaseBonusRound:
		fmt.Fprintf(w, "\nBonus %d of %d on %s, for %d points\n",
			snap.BonusNumber, models.BonusQuestionsPerSet, snap.BonusTopic, snap.Points)
		fmt.Fprintf(w, "  %s\n", snap.QuestionText)
		if snap.BonusRevealed {
			fmt.Fprintf(w, "  Answer: %s\n", snap.AnswerText)
			fmt.Fprintln(w, "were you right? y/n")
		} else {
			fmt.Fprintln(w, "press r to reveal the answer")
		}

	case models.PhaseRoundSummary:
		fmt.Fprintf(w, "\nScore %d  starters %d/%d  bonuses %d/%d  wrong buzzes %d\n",
			snap.Score, snap.CorrectStarters, snap.TotalStarters,
			snap.CorrectBonuses, snap.TotalBonuses, snap.IncorrectBuzzes)
		fmt.Fprintln(w, "press c to continue or e to end the round")
	}
}

// renderHistory writes the stored sessions as a table with lifetime totals
func renderHistory(w io.Writer, snap *engine.Snapshot) {
	scope := "last sessions"
	if snap.ShowAllHistory {
		scope = "all sessions"
	}
	fmt.Fprintf(w, "\nHistory (%s)\n", scope)

	if len(snap.HistoryRows) == 0 {
		fmt.Fprintln(w, "  no sessions recorded yet")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  SESSION\tSCORE\tAVG BUZZ\tSTARTERS\tBONUSES")
	for _, row := range snap.HistoryRows {
		fmt.Fprintf(tw, "  %s\t%d\t%.2fs\t%.0f%%\t%.0f%%\n",
			row.Label, row.Score, row.AvgBuzzTimeSeconds, row.PctStartersCorrect, row.PctBonusesCorrect)
	}
	tw.Flush()

	t := snap.Lifetime
	fmt.Fprintf(w, "  %d sessions, %d points, best %d, average buzz %.2fs\n",
		t.Sessions, t.Score, t.BestScore, t.AvgBuzzTimeMs/1000)
}

// renderScoreChart draws one bar per shown session
func renderScoreChart(w io.Writer, snap *engine.Snapshot) {
	best := 0
	for _, row := range snap.HistoryRows {
		if row.Score > best {
			best = row.Score
		}
	}
	if best == 0 {
		return
	}

	const width = 30
	for _, row := range snap.HistoryRows {
		bar := strings.Repeat("#", row.Score*width/best)
		fmt.Fprintf(w, "  %-18s %-30s %d\n", row.Label, bar, row.Score)
	}
}

func seconds(d time.Duration) string {
	return fmt.Sprintf("%ds", int(d.Round(time.Second)/time.Second))
}
