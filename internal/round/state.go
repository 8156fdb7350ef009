// Package round holds the quiz round as a value and the transitions between
// phases. Every transition takes a State and returns a new one; the input is
// never modified, so a rejected transition leaves the caller's state intact.
package round

import (
	"fmt"
	"time"

	"github.com/KirkDiggler/starterforten/internal/models"
	"github.com/KirkDiggler/starterforten/internal/random"
)

// DefaultBonusPoints is awarded for each correct bonus answer
const DefaultBonusPoints = 5

// State is one round of play
type State struct {
	Phase models.Phase

	// Starters is the remaining starter pool in presentation order
	Starters []models.Question

	// Bonuses is the remaining bonus pool
	Bonuses []models.BonusSet

	// StarterIndex points at Current inside Starters
	StarterIndex int

	// Current is the starter being presented or judged
	Current models.Question

	// Bonus is the active bonus set while in the bonus round
	Bonus         models.BonusSet
	BonusIndex    int
	BonusRevealed bool

	Score           int
	CorrectStarters int
	TotalStarters   int
	CorrectBonuses  int
	TotalBonuses    int
	IncorrectBuzzes int

	// BuzzTimesMs holds one latency per buzz; timeouts record nothing
	BuzzTimesMs []int64

	// QuestionStartedAt is when the current starter's countdown began
	QuestionStartedAt time.Time

	BonusPoints int
}

// New returns an idle state with nothing loaded
func New() State {
	return State{Phase: models.PhaseIdle}
}

// Start begins a round from idle: counters reset, starters shuffled, bonus
// pool refilled and the first starter presented
func (s State) Start(starters []models.Question, bonuses []models.BonusSet, rnd random.Source, bonusPoints int, now time.Time) (State, error) {
	if !s.Phase.IsIdle() {
		return s, invalid("start", s.Phase)
	}
	if len(starters) == 0 {
		return s, ErrNoStarters
	}
	if bonusPoints <= 0 {
		bonusPoints = DefaultBonusPoints
	}

	pool := append([]models.Question(nil), starters...)
	rnd.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	next := State{
		Phase:       models.PhaseIdle,
		Starters:    pool,
		Bonuses:     append([]models.BonusSet(nil), bonuses...),
		BonusPoints: bonusPoints,
	}
	return next.advance(now), nil
}

// Buzz stops the clock on the current starter and records the latency
func (s State) Buzz(now time.Time) (State, error) {
	if !s.Phase.IsPresenting() {
		return s, invalid("buzz", s.Phase)
	}
	if err := s.checkStarter(); err != nil {
		return s, err
	}

	latency := now.Sub(s.QuestionStartedAt).Milliseconds()
	if latency < 0 {
		latency = 0
	}

	next := s
	next.BuzzTimesMs = append(append([]int64(nil), s.BuzzTimesMs...), latency)
	next.TotalStarters++
	next.Phase = models.PhaseRevealed
	return next, nil
}

// Timeout reveals the current starter after the countdown ran out with no buzz
func (s State) Timeout() (State, error) {
	if !s.Phase.IsPresenting() {
		return s, invalid("time out", s.Phase)
	}
	if err := s.checkStarter(); err != nil {
		return s, err
	}

	next := s
	next.TotalStarters++
	next.Phase = models.PhaseRevealed
	return next, nil
}

// JudgeStarter scores the revealed starter and removes it from the pool. A
// correct answer opens a randomly drawn bonus set when one is left.
func (s State) JudgeStarter(correct bool, rnd random.Source, now time.Time) (State, error) {
	if !s.Phase.IsRevealed() {
		return s, invalid("judge starter", s.Phase)
	}
	if err := s.checkStarter(); err != nil {
		return s, err
	}

	next := s
	next.Starters = removeAt(s.Starters, s.StarterIndex)

	if !correct {
		next.IncorrectBuzzes++
		next.Phase = models.PhaseRoundSummary
		return next, nil
	}

	next.Score += s.Current.Points
	next.CorrectStarters++

	if len(s.Bonuses) == 0 {
		return next.advance(now), nil
	}

	idx := rnd.Intn(len(s.Bonuses))
	if idx < 0 || idx >= len(s.Bonuses) {
		return s, fmt.Errorf("%w: bonus draw %d outside pool of %d", ErrDataIntegrity, idx, len(s.Bonuses))
	}

	next.Bonus = s.Bonuses[idx]
	next.Bonuses = removeAt(s.Bonuses, idx)
	next.BonusIndex = 0
	next.BonusRevealed = false
	next.Phase = models.PhaseBonusRound
	return next, nil
}

// RevealBonusAnswer shows the answer to the current bonus question
func (s State) RevealBonusAnswer() (State, error) {
	if !s.Phase.IsBonusRound() {
		return s, invalid("reveal bonus answer", s.Phase)
	}
	if err := s.checkBonus(); err != nil {
		return s, err
	}

	next := s
	next.BonusRevealed = true
	return next, nil
}

// JudgeBonus scores the revealed bonus question and moves to the next one.
// After the last question the round pauses on the summary, or ends when no
// starters remain.
func (s State) JudgeBonus(correct bool) (State, error) {
	if !s.Phase.IsBonusRound() {
		return s, invalid("judge bonus", s.Phase)
	}
	if err := s.checkBonus(); err != nil {
		return s, err
	}
	if !s.BonusRevealed {
		return s, fmt.Errorf("%w: %w", ErrInvalidTransition, ErrAnswerNotRevealed)
	}

	next := s
	next.TotalBonuses++
	if correct {
		next.Score += s.BonusPoints
		next.CorrectBonuses++
	}

	if s.BonusIndex < len(s.Bonus.Questions)-1 {
		next.BonusIndex++
		next.BonusRevealed = false
		return next, nil
	}

	next.Bonus = models.BonusSet{}
	next.BonusIndex = 0
	next.BonusRevealed = false
	if len(next.Starters) == 0 {
		next.Phase = models.PhaseIdle
		return next, nil
	}
	next.Phase = models.PhaseRoundSummary
	return next, nil
}

// Continue presents the next starter, or ends the round when none remain
func (s State) Continue(now time.Time) (State, error) {
	if !s.Phase.IsRoundSummary() {
		return s, invalid("continue", s.Phase)
	}
	return s.advance(now), nil
}

// End finishes the round from the summary regardless of what is left
func (s State) End() (State, error) {
	if !s.Phase.IsRoundSummary() {
		return s, invalid("end session", s.Phase)
	}

	next := s
	next.Phase = models.PhaseIdle
	return next, nil
}

// Elapsed is how long the current starter has been on screen
func (s State) Elapsed(now time.Time) time.Duration {
	if !s.Phase.IsPresenting() {
		return 0
	}
	d := now.Sub(s.QuestionStartedAt)
	if d < 0 {
		return 0
	}
	return d
}

// CurrentBonusQuestion returns the bonus question being asked
func (s State) CurrentBonusQuestion() (models.BonusQuestion, bool) {
	if !s.Phase.IsBonusRound() || s.BonusIndex < 0 || s.BonusIndex >= len(s.Bonus.Questions) {
		return models.BonusQuestion{}, false
	}
	return s.Bonus.Questions[s.BonusIndex], true
}

// Buzzes is the number of buzzes recorded this round
func (s State) Buzzes() int {
	return len(s.BuzzTimesMs)
}

// AvgBuzzTimeMs is the mean buzz latency, zero when nobody buzzed
func (s State) AvgBuzzTimeMs() float64 {
	if len(s.BuzzTimesMs) == 0 {
		return 0
	}
	var total int64
	for _, ms := range s.BuzzTimesMs {
		total += ms
	}
	return float64(total) / float64(len(s.BuzzTimesMs))
}

// advance presents the next starter or goes idle when the pool is empty
func (s State) advance(now time.Time) State {
	next := s
	next.Bonus = models.BonusSet{}
	next.BonusIndex = 0
	next.BonusRevealed = false

	if len(s.Starters) == 0 {
		next.Phase = models.PhaseIdle
		next.Current = models.Question{}
		return next
	}

	next.Phase = models.PhasePresenting
	next.StarterIndex = 0
	next.Current = s.Starters[0]
	next.QuestionStartedAt = now
	return next
}

func (s State) checkStarter() error {
	if s.StarterIndex < 0 || s.StarterIndex >= len(s.Starters) {
		return fmt.Errorf("%w: starter index %d outside pool of %d", ErrDataIntegrity, s.StarterIndex, len(s.Starters))
	}
	if s.Starters[s.StarterIndex] != s.Current {
		return fmt.Errorf("%w: starter at index %d is not the one presented", ErrDataIntegrity, s.StarterIndex)
	}
	return nil
}

func (s State) checkBonus() error {
	if len(s.Bonus.Questions) != models.BonusQuestionsPerSet {
		return fmt.Errorf("%w: active bonus set has %d questions", ErrDataIntegrity, len(s.Bonus.Questions))
	}
	if s.BonusIndex < 0 || s.BonusIndex >= len(s.Bonus.Questions) {
		return fmt.Errorf("%w: bonus index %d outside set", ErrDataIntegrity, s.BonusIndex)
	}
	return nil
}

func invalid(action string, phase models.Phase) error {
	return fmt.Errorf("%w: cannot %s while %s", ErrInvalidTransition, action, phase)
}

func removeAt[T any](items []T, i int) []T {
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}
