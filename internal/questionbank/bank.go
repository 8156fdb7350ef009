// Package questionbank loads the starter questions and bonus sets a game is
// played from. Banks are validated when loaded and read-only afterwards.
package questionbank

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/KirkDiggler/starterforten/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed data/default.json
var defaultBank []byte

// ErrInvalidBank wraps every schema violation found while loading
var ErrInvalidBank = errors.New("invalid question bank")

// document is the on-disk layout. JSON files decode through the YAML decoder
// since YAML is a superset of JSON.
type document struct {
	Starters []models.Question `yaml:"starters"`
	Bonuses  []models.BonusSet `yaml:"bonuses"`
}

// Bank is a validated, immutable set of starters and bonus sets
type Bank struct {
	starters []models.Question
	bonuses  []models.BonusSet
}

// Default returns the bank compiled into the binary
func Default() (*Bank, error) {
	return Load(bytes.NewReader(defaultBank))
}

// LoadFile reads a JSON or YAML bank from disk
func LoadFile(path string) (*Bank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open question bank: %w", err)
	}
	defer f.Close()

	bank, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return bank, nil
}

// Load decodes and validates a bank. Unknown fields, missing fields and bonus
// sets without exactly three questions are rejected.
func Load(r io.Reader) (*Bank, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidBank)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidBank, err)
	}

	if err := validate(&doc); err != nil {
		return nil, err
	}

	return &Bank{
		starters: doc.Starters,
		bonuses:  doc.Bonuses,
	}, nil
}

// New builds a bank from in-memory questions, applying the same validation as Load
func New(starters []models.Question, bonuses []models.BonusSet) (*Bank, error) {
	doc := document{
		Starters: append([]models.Question(nil), starters...),
		Bonuses:  copyBonuses(bonuses),
	}
	if err := validate(&doc); err != nil {
		return nil, err
	}
	return &Bank{starters: doc.Starters, bonuses: doc.Bonuses}, nil
}

// Starters returns a copy of the starter list in file order
func (b *Bank) Starters() []models.Question {
	return append([]models.Question(nil), b.starters...)
}

// Bonuses returns a copy of the bonus sets in file order
func (b *Bank) Bonuses() []models.BonusSet {
	return copyBonuses(b.bonuses)
}

func validate(doc *document) error {
	if len(doc.Starters) == 0 {
		return fmt.Errorf("%w: no starters", ErrInvalidBank)
	}

	for i, q := range doc.Starters {
		switch {
		case q.Text == "":
			return fmt.Errorf("%w: starter %d has no question", ErrInvalidBank, i)
		case q.Answer == "":
			return fmt.Errorf("%w: starter %d has no answer", ErrInvalidBank, i)
		case q.Points <= 0:
			return fmt.Errorf("%w: starter %d has no points", ErrInvalidBank, i)
		}
	}

	for i, set := range doc.Bonuses {
		if set.Topic == "" {
			return fmt.Errorf("%w: bonus set %d has no topic", ErrInvalidBank, i)
		}
		if len(set.Questions) != models.BonusQuestionsPerSet {
			return fmt.Errorf("%w: bonus set %q has %d questions, want %d",
				ErrInvalidBank, set.Topic, len(set.Questions), models.BonusQuestionsPerSet)
		}
		for j, q := range set.Questions {
			if q.Text == "" || q.Answer == "" {
				return fmt.Errorf("%w: bonus set %q question %d is incomplete", ErrInvalidBank, set.Topic, j)
			}
		}
	}

	return nil
}

func copyBonuses(in []models.BonusSet) []models.BonusSet {
	out := make([]models.BonusSet, len(in))
	for i, set := range in {
		out[i] = models.BonusSet{
			Topic:     set.Topic,
			Questions: append([]models.BonusQuestion(nil), set.Questions...),
		}
	}
	return out
}
