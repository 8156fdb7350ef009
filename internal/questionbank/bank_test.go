package questionbank

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KirkDiggler/starterforten/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBankLoads(t *testing.T) {
	bank, err := Default()
	require.NoError(t, err)

	assert.NotEmpty(t, bank.Starters())
	assert.NotEmpty(t, bank.Bonuses())
	for _, set := range bank.Bonuses() {
		assert.Len(t, set.Questions, models.BonusQuestionsPerSet)
	}
}

func TestLoadYAML(t *testing.T) {
	doc := `
starters:
  - question: What is two plus two?
    answer: Four
    points: 10
bonuses:
  - topic: Colours
    questions:
      - {question: Sky?, answer: Blue}
      - {question: Grass?, answer: Green}
      - {question: Snow?, answer: White}
`
	bank, err := Load(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, []models.Question{{Text: "What is two plus two?", Answer: "Four", Points: 10}}, bank.Starters())
	require.Len(t, bank.Bonuses(), 1)
	assert.Equal(t, "Colours", bank.Bonuses()[0].Topic)
	assert.Equal(t, "Green", bank.Bonuses()[0].Questions[1].Answer)
}

func TestLoadRejectsSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ``},
		{"no starters", `{"starters": [], "bonuses": []}`},
		{"missing answer", `{"starters": [{"question": "Q", "points": 10}]}`},
		{"missing points", `{"starters": [{"question": "Q", "answer": "A"}]}`},
		{"unknown field", `{"starters": [{"question": "Q", "answer": "A", "points": 10, "hint": "h"}]}`},
		{"two bonus questions", `{"starters": [{"question": "Q", "answer": "A", "points": 10}],
			"bonuses": [{"topic": "T", "questions": [{"question": "1", "answer": "1"}, {"question": "2", "answer": "2"}]}]}`},
		{"bonus without topic", `{"starters": [{"question": "Q", "answer": "A", "points": 10}],
			"bonuses": [{"questions": [{"question": "1", "answer": "1"}, {"question": "2", "answer": "2"}, {"question": "3", "answer": "3"}]}]}`},
		{"not a document", `[1, 2, 3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, ErrInvalidBank)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"starters": [{"question": "Q", "answer": "A", "points": 15}]}`), 0o644))

	bank, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 15, bank.Starters()[0].Points)
	assert.Empty(t, bank.Bonuses())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestAccessorsReturnCopies(t *testing.T) {
	bank, err := New(
		[]models.Question{{Text: "Q", Answer: "A", Points: 10}},
		[]models.BonusSet{{Topic: "T", Questions: []models.BonusQuestion{{Text: "1", Answer: "1"}, {Text: "2", Answer: "2"}, {Text: "3", Answer: "3"}}}},
	)
	require.NoError(t, err)

	starters := bank.Starters()
	starters[0].Text = "changed"
	bonuses := bank.Bonuses()
	bonuses[0].Questions[0].Answer = "changed"

	assert.Equal(t, "Q", bank.Starters()[0].Text)
	assert.Equal(t, "1", bank.Bonuses()[0].Questions[0].Answer)
}
