package history

import (
	"fmt"
	"testing"

	"github.com/KirkDiggler/starterforten/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessions(n int) []*models.SessionStats {
	out := make([]*models.SessionStats, n)
	for i := range out {
		out[i] = &models.SessionStats{
			ID:              fmt.Sprintf("s%d", i+1),
			AvgBuzzTimeMs:   2500,
			Score:           (i + 1) * 10,
			CorrectStarters: 1,
			TotalStarters:   4,
			CorrectBonuses:  2,
			TotalBonuses:    3,
		}
	}
	return out
}

func TestWindow(t *testing.T) {
	all := sessions(14)

	last := Window(all, false, 10)
	require.Len(t, last, 10)
	assert.Equal(t, "s5", last[0].ID)
	assert.Equal(t, "s14", last[9].ID)

	assert.Len(t, Window(all, true, 10), 14)
	assert.Len(t, Window(all[:3], false, 10), 3)
	assert.Len(t, Window(all, false, 0), DefaultWindow)
}

func TestProject(t *testing.T) {
	rows := Project(sessions(12), false, 10)

	require.Len(t, rows, 10)
	first := rows[0]
	assert.Equal(t, "#3", first.Label)
	assert.Equal(t, 2.5, first.AvgBuzzTimeSeconds)
	assert.Equal(t, 30, first.Score)
	assert.Equal(t, 25.0, first.PctStartersCorrect)
	assert.InDelta(t, 66.67, first.PctBonusesCorrect, 0.01)
}

func TestProjectZeroTotals(t *testing.T) {
	rows := Project([]*models.SessionStats{{ID: "empty", Score: 10, CorrectStarters: 1, TotalStarters: 1}}, false, 10)

	require.Len(t, rows, 1)
	assert.Equal(t, 100.0, rows[0].PctStartersCorrect)
	assert.Zero(t, rows[0].PctBonusesCorrect)
	assert.Zero(t, rows[0].AvgBuzzTimeSeconds)
}

func TestSummarize(t *testing.T) {
	totals := Summarize(sessions(3))

	assert.Equal(t, 3, totals.Sessions)
	assert.Equal(t, 60, totals.Score)
	assert.Equal(t, 30, totals.BestScore)
	assert.Equal(t, 3, totals.CorrectStarters)
	assert.Equal(t, 12, totals.TotalStarters)
	assert.Equal(t, 6, totals.CorrectBonuses)
	assert.Equal(t, 9, totals.TotalBonuses)
	assert.Equal(t, 2500.0, totals.AvgBuzzTimeMs)

	assert.Equal(t, Totals{}, Summarize(nil))
}
