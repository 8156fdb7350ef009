package engine

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/KirkDiggler/starterforten/internal/audio"
	"github.com/KirkDiggler/starterforten/internal/common/clock"
	"github.com/KirkDiggler/starterforten/internal/common/uuid"
	"github.com/KirkDiggler/starterforten/internal/models"
	"github.com/KirkDiggler/starterforten/internal/questionbank"
	"github.com/KirkDiggler/starterforten/internal/random"
	statsRepo "github.com/KirkDiggler/starterforten/internal/repositories/stats"
	"github.com/KirkDiggler/starterforten/internal/round"
	"github.com/KirkDiggler/starterforten/internal/services/history"
)

// service implements the Service interface
type service struct {
	countdown     time.Duration
	tickInterval  time.Duration
	bonusPoints   int
	historyWindow int

	bank          *questionbank.Bank
	statsRepo     statsRepo.Repository
	clock         clock.Clock
	random        random.Source
	uuidGenerator uuid.UUID
	cue           audio.Cue
	listener      Listener

	mu           sync.Mutex
	state        round.State
	ticker       clock.Ticker
	history      []*models.SessionStats
	soundEnabled bool
	showAll      bool
}

// transition is what a state change hands back to the calling operation
type transition struct {
	snapshot *Snapshot
	next     round.State
	recorded *models.SessionStats
	sound    bool
}

// New creates an engine and loads the stored session history. A history that
// cannot be read is treated as empty.
func New(ctx context.Context, cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Bank == nil {
		return nil, ErrNilBank
	}
	if cfg.StatsRepo == nil {
		return nil, ErrNilStatsRepo
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.Random == nil {
		return nil, ErrNilRandom
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	s := &service{
		countdown:     cfg.Countdown,
		tickInterval:  cfg.TickInterval,
		bonusPoints:   cfg.BonusPoints,
		historyWindow: cfg.HistoryWindow,
		bank:          cfg.Bank,
		statsRepo:     cfg.StatsRepo,
		clock:         cfg.Clock,
		random:        cfg.Random,
		uuidGenerator: cfg.UUIDGenerator,
		cue:           cfg.Cue,
		listener:      cfg.Listener,
		state:         round.New(),
		soundEnabled:  cfg.SoundEnabled,
		history:       []*models.SessionStats{},
	}

	if s.countdown <= 0 {
		s.countdown = DefaultCountdown
	}
	if s.tickInterval <= 0 {
		s.tickInterval = DefaultTickInterval
	}
	if s.bonusPoints <= 0 {
		s.bonusPoints = round.DefaultBonusPoints
	}
	if s.historyWindow <= 0 {
		s.historyWindow = history.DefaultWindow
	}
	if s.cue == nil {
		s.cue = audio.Nop{}
	}

	if err := s.loadHistoryLocked(ctx); err != nil {
		log.Printf("Error loading session history, starting empty: %v", err)
	}

	return s, nil
}

// Start begins a new round from idle
func (s *service) Start(ctx context.Context, input *StartInput) (*StartOutput, error) {
	t, err := s.apply(ctx, "start", func(st round.State, now time.Time) (round.State, error) {
		return st.Start(s.bank.Starters(), s.bank.Bonuses(), s.random, s.bonusPoints, now)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Round started with %d starters", len(t.next.Starters))

	return &StartOutput{
		Snapshot: t.snapshot,
	}, nil
}

// Buzz stops the countdown and reveals the starter answer
func (s *service) Buzz(ctx context.Context, input *BuzzInput) (*BuzzOutput, error) {
	t, err := s.apply(ctx, "buzz", func(st round.State, now time.Time) (round.State, error) {
		return st.Buzz(now)
	})
	if err != nil {
		return nil, err
	}

	if t.sound {
		s.cue.Play()
	}

	var latency int64
	if n := len(t.next.BuzzTimesMs); n > 0 {
		latency = t.next.BuzzTimesMs[n-1]
	}

	return &BuzzOutput{
		Snapshot:  t.snapshot,
		LatencyMs: latency,
	}, nil
}

// JudgeStarter records whether the revealed starter was answered correctly
func (s *service) JudgeStarter(ctx context.Context, input *JudgeStarterInput) (*JudgeStarterOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	t, err := s.apply(ctx, "judge starter", func(st round.State, now time.Time) (round.State, error) {
		return st.JudgeStarter(input.Correct, s.random, now)
	})
	if err != nil {
		return nil, err
	}

	return &JudgeStarterOutput{
		Snapshot:        t.snapshot,
		BonusStarted:    t.next.Phase.IsBonusRound(),
		RecordedSession: t.recorded,
	}, nil
}

// RevealBonusAnswer shows the answer to the current bonus question
func (s *service) RevealBonusAnswer(ctx context.Context, input *RevealBonusAnswerInput) (*RevealBonusAnswerOutput, error) {
	t, err := s.apply(ctx, "reveal bonus answer", func(st round.State, now time.Time) (round.State, error) {
		return st.RevealBonusAnswer()
	})
	if err != nil {
		return nil, err
	}

	return &RevealBonusAnswerOutput{
		Snapshot: t.snapshot,
	}, nil
}

// JudgeBonus records whether the revealed bonus was answered correctly
func (s *service) JudgeBonus(ctx context.Context, input *JudgeBonusInput) (*JudgeBonusOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	t, err := s.apply(ctx, "judge bonus", func(st round.State, now time.Time) (round.State, error) {
		return st.JudgeBonus(input.Correct)
	})
	if err != nil {
		return nil, err
	}

	return &JudgeBonusOutput{
		Snapshot:        t.snapshot,
		RecordedSession: t.recorded,
	}, nil
}

// ContinueRound moves from the round summary to the next starter
func (s *service) ContinueRound(ctx context.Context, input *ContinueRoundInput) (*ContinueRoundOutput, error) {
	t, err := s.apply(ctx, "continue round", func(st round.State, now time.Time) (round.State, error) {
		return st.Continue(now)
	})
	if err != nil {
		return nil, err
	}

	return &ContinueRoundOutput{
		Snapshot:        t.snapshot,
		RecordedSession: t.recorded,
	}, nil
}

// EndSession ends the round from the round summary
func (s *service) EndSession(ctx context.Context, input *EndSessionInput) (*EndSessionOutput, error) {
	t, err := s.apply(ctx, "end session", func(st round.State, now time.Time) (round.State, error) {
		return st.End()
	})
	if err != nil {
		return nil, err
	}

	return &EndSessionOutput{
		Snapshot:        t.snapshot,
		RecordedSession: t.recorded,
	}, nil
}

// ToggleSound flips the buzz sound
func (s *service) ToggleSound(ctx context.Context, input *ToggleSoundInput) (*ToggleSoundOutput, error) {
	s.mu.Lock()
	s.soundEnabled = !s.soundEnabled
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)

	return &ToggleSoundOutput{
		Snapshot: snap,
	}, nil
}

// ToggleHistoryView flips between the recent window and the full history
func (s *service) ToggleHistoryView(ctx context.Context, input *ToggleHistoryViewInput) (*ToggleHistoryViewOutput, error) {
	s.mu.Lock()
	s.showAll = !s.showAll
	s.refreshHistoryLocked(ctx)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)

	return &ToggleHistoryViewOutput{
		Snapshot: snap,
	}, nil
}

// GetSnapshot returns the current view of the session
func (s *service) GetSnapshot(ctx context.Context, input *GetSnapshotInput) (*GetSnapshotOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if input != nil && input.RefreshHistory {
		s.refreshHistoryLocked(ctx)
	}

	return &GetSnapshotOutput{
		Snapshot: s.snapshotLocked(),
	}, nil
}

// Close stops any running countdown. Safe to call more than once.
func (s *service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopCountdownLocked()
	return nil
}

// apply runs one transition under the lock, keeps the countdown and stored
// history in step with the new phase, then notifies the listener
func (s *service) apply(ctx context.Context, action string, fn func(round.State, time.Time) (round.State, error)) (*transition, error) {
	s.mu.Lock()

	prev := s.state
	next, err := fn(prev, s.clock.Now())
	if err != nil {
		s.mu.Unlock()
		if errors.Is(err, round.ErrDataIntegrity) {
			log.Printf("Data integrity error on %s: %v", action, err)
		} else {
			log.Printf("Rejected %s in phase %s: %v", action, prev.Phase, err)
		}
		return nil, err
	}

	recorded := s.commitLocked(ctx, prev, next)
	t := &transition{
		snapshot: s.snapshotLocked(),
		next:     next,
		recorded: recorded,
		sound:    s.soundEnabled,
	}
	s.mu.Unlock()

	s.notify(t.snapshot)
	return t, nil
}

// commitLocked installs the next state. Leaving Presenting always stops the
// countdown; entering it starts a fresh one. Entering Idle stores the round.
func (s *service) commitLocked(ctx context.Context, prev, next round.State) *models.SessionStats {
	s.state = next

	if prev.Phase.IsPresenting() && !next.Phase.IsPresenting() {
		s.stopCountdownLocked()
	}
	if next.Phase.IsPresenting() && !prev.Phase.IsPresenting() {
		s.startCountdownLocked()
	}

	if next.Phase.IsIdle() && !prev.Phase.IsIdle() {
		return s.recordSessionLocked(ctx, next)
	}
	return nil
}

func (s *service) startCountdownLocked() {
	s.stopCountdownLocked()
	s.ticker = s.clock.Every(s.tickInterval, s.onTick)
}

func (s *service) stopCountdownLocked() {
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}
}

// onTick times out the current starter once the countdown has run out
func (s *service) onTick() {
	s.mu.Lock()

	if !s.state.Phase.IsPresenting() || s.state.Elapsed(s.clock.Now()) < s.countdown {
		s.mu.Unlock()
		return
	}

	prev := s.state
	next, err := prev.Timeout()
	if err != nil {
		s.mu.Unlock()
		log.Printf("Error timing out starter: %v", err)
		return
	}

	s.commitLocked(context.Background(), prev, next)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
}

// recordSessionLocked appends the finished round to the store. Rounds without
// a buzz are not recorded. A failed write is logged and play continues.
func (s *service) recordSessionLocked(ctx context.Context, st round.State) *models.SessionStats {
	if st.Buzzes() == 0 {
		return nil
	}

	session := &models.SessionStats{
		ID:              s.uuidGenerator.NewUUID(),
		Timestamp:       s.clock.Now(),
		AvgBuzzTimeMs:   st.AvgBuzzTimeMs(),
		Score:           st.Score,
		IncorrectBuzzes: st.IncorrectBuzzes,
		CorrectStarters: st.CorrectStarters,
		TotalStarters:   st.TotalStarters,
		CorrectBonuses:  st.CorrectBonuses,
		TotalBonuses:    st.TotalBonuses,
	}

	err := s.statsRepo.AppendSession(ctx, &statsRepo.AppendSessionInput{
		Session: session,
	})
	if err != nil {
		log.Printf("Error saving session stats: %v", err)
		return nil
	}

	s.history = append(s.history, session)
	s.refreshHistoryLocked(ctx)
	log.Printf("Recorded session %s: score %d, %d/%d starters, %d/%d bonuses",
		session.ID, session.Score, session.CorrectStarters, session.TotalStarters,
		session.CorrectBonuses, session.TotalBonuses)

	return session
}

// loadHistoryLocked replaces the cached history with the stored list. The
// store is shared with other engines, so this picks up their sessions too.
func (s *service) loadHistoryLocked(ctx context.Context) error {
	out, err := s.statsRepo.LoadSessions(ctx, &statsRepo.LoadSessionsInput{})
	if err != nil {
		return err
	}

	sessions := []*models.SessionStats{}
	if out != nil && out.Sessions != nil {
		sessions = out.Sessions
	}
	s.history = sessions
	return nil
}

// refreshHistoryLocked reloads the history, keeping the cached copy on failure
func (s *service) refreshHistoryLocked(ctx context.Context) {
	if err := s.loadHistoryLocked(ctx); err != nil {
		log.Printf("Error reloading session history, keeping %d cached sessions: %v", len(s.history), err)
	}
}

func (s *service) snapshotLocked() *Snapshot {
	st := s.state

	snap := &Snapshot{
		Phase:             st.Phase,
		Countdown:         s.countdown,
		Score:             st.Score,
		CorrectStarters:   st.CorrectStarters,
		TotalStarters:     st.TotalStarters,
		CorrectBonuses:    st.CorrectBonuses,
		TotalBonuses:      st.TotalBonuses,
		IncorrectBuzzes:   st.IncorrectBuzzes,
		Buzzes:            st.Buzzes(),
		AvgBuzzTimeMs:     st.AvgBuzzTimeMs(),
		StartersRemaining: len(st.Starters),
		BonusesRemaining:  len(st.Bonuses),
		SoundEnabled:      s.soundEnabled,
		ShowAllHistory:    s.showAll,
		History:           append([]*models.SessionStats(nil), s.history...),
		HistoryRows:       history.Project(s.history, s.showAll, s.historyWindow),
		Lifetime:          history.Summarize(s.history),
	}

	switch st.Phase {
	case models.PhasePresenting:
		snap.QuestionText = st.Current.Text
		snap.Points = st.Current.Points
		snap.Elapsed = st.Elapsed(s.clock.Now())
		snap.Remaining = s.countdown - snap.Elapsed
		if snap.Remaining < 0 {
			snap.Remaining = 0
		}
	case models.PhaseRevealed:
		snap.QuestionText = st.Current.Text
		snap.AnswerText = st.Current.Answer
		snap.Points = st.Current.Points
	case models.PhaseBonusRound:
		if q, ok := st.CurrentBonusQuestion(); ok {
			snap.BonusTopic = st.Bonus.Topic
			snap.BonusNumber = st.BonusIndex + 1
			snap.BonusRevealed = st.BonusRevealed
			snap.QuestionText = q.Text
			snap.Points = st.BonusPoints
			if st.BonusRevealed {
				snap.AnswerText = q.Answer
			}
		}
	}

	return snap
}

func (s *service) notify(snap *Snapshot) {
	if s.listener != nil {
		s.listener(snap)
	}
}
