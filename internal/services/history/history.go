// Package history projects stored session statistics into the rows a chart
// or table shows, and into lifetime totals.
package history

import (
	"fmt"

	"github.com/KirkDiggler/starterforten/internal/models"
)

// DefaultWindow is how many recent sessions are shown unless all are requested
const DefaultWindow = 10

// Row is one session as charted
type Row struct {
	Label              string
	AvgBuzzTimeSeconds float64
	Score              int
	PctStartersCorrect float64
	PctBonusesCorrect  float64
}

// Totals aggregates every stored session
type Totals struct {
	Sessions        int
	Score           int
	BestScore       int
	CorrectStarters int
	TotalStarters   int
	CorrectBonuses  int
	TotalBonuses    int
	IncorrectBuzzes int

	// AvgBuzzTimeMs is the mean of the per-session averages
	AvgBuzzTimeMs float64
}

// Window returns the sessions to display: all of them, or the most recent
// window entries in stored order
func Window(sessions []*models.SessionStats, showAll bool, window int) []*models.SessionStats {
	if window <= 0 {
		window = DefaultWindow
	}
	if showAll || len(sessions) <= window {
		return sessions
	}
	return sessions[len(sessions)-window:]
}

// Project converts the displayed window into chart rows. Labels number
// sessions by their position in the full history.
func Project(sessions []*models.SessionStats, showAll bool, window int) []Row {
	shown := Window(sessions, showAll, window)
	offset := len(sessions) - len(shown)

	rows := make([]Row, 0, len(shown))
	for i, s := range shown {
		if s == nil {
			continue
		}
		rows = append(rows, Row{
			Label:              label(offset+i+1, s),
			AvgBuzzTimeSeconds: s.AvgBuzzTimeMs / 1000,
			Score:              s.Score,
			PctStartersCorrect: percent(s.CorrectStarters, s.TotalStarters),
			PctBonusesCorrect:  percent(s.CorrectBonuses, s.TotalBonuses),
		})
	}
	return rows
}

// Summarize sums the lifetime counters over every session
func Summarize(sessions []*models.SessionStats) Totals {
	var t Totals
	var buzzSum float64

	for _, s := range sessions {
		if s == nil {
			continue
		}
		t.Sessions++
		t.Score += s.Score
		if s.Score > t.BestScore {
			t.BestScore = s.Score
		}
		t.CorrectStarters += s.CorrectStarters
		t.TotalStarters += s.TotalStarters
		t.CorrectBonuses += s.CorrectBonuses
		t.TotalBonuses += s.TotalBonuses
		t.IncorrectBuzzes += s.IncorrectBuzzes
		buzzSum += s.AvgBuzzTimeMs
	}

	if t.Sessions > 0 {
		t.AvgBuzzTimeMs = buzzSum / float64(t.Sessions)
	}
	return t
}

func percent(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}

func label(n int, s *models.SessionStats) string {
	if s.Timestamp.IsZero() {
		return fmt.Sprintf("#%d", n)
	}
	return fmt.Sprintf("#%d %s", n, s.Timestamp.Local().Format("Jan 2 15:04"))
}
