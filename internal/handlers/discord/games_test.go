package discord

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/starterforten/internal/common/clock"
	"github.com/KirkDiggler/starterforten/internal/common/uuid"
	"github.com/KirkDiggler/starterforten/internal/models"
	"github.com/KirkDiggler/starterforten/internal/questionbank"
	"github.com/KirkDiggler/starterforten/internal/random"
	statsRepo "github.com/KirkDiggler/starterforten/internal/repositories/stats"
	"github.com/KirkDiggler/starterforten/internal/services/engine"
	"github.com/KirkDiggler/starterforten/internal/services/messaging"
	"github.com/stretchr/testify/suite"
)

type seen struct {
	channelID  string
	prev, next *engine.Snapshot
}

type GamesTestSuite struct {
	suite.Suite
	ctx     context.Context
	clock   *clock.Manual
	built   int
	mu      sync.Mutex
	updates []seen
	games   *Games
}

func (s *GamesTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = clock.NewManual(time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC))
	s.built = 0
	s.updates = nil

	bank, err := questionbank.Default()
	s.Require().NoError(err)
	repo := statsRepo.NewMemory()

	factory := func(ctx context.Context, listener engine.Listener) (engine.Service, error) {
		s.built++
		return engine.New(ctx, &engine.Config{
			Bank:          bank,
			StatsRepo:     repo,
			Clock:         s.clock,
			Random:        random.New(&random.Config{Seed: 9}),
			UUIDGenerator: uuid.NewSequence("session"),
			Listener:      listener,
		})
	}

	s.games, err = NewGames(factory, func(channelID string, prev, next *engine.Snapshot) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.updates = append(s.updates, seen{channelID, prev, next})
	})
	s.Require().NoError(err)
}

func (s *GamesTestSuite) TearDownTest() {
	s.NoError(s.games.Close())
}

func (s *GamesTestSuite) TestNewGamesValidation() {
	_, err := NewGames(nil, nil)
	s.Error(err)
}

func (s *GamesTestSuite) TestOneEnginePerChannel() {
	first, err := s.games.GetOrCreate(s.ctx, "channel-1")
	s.Require().NoError(err)
	again, err := s.games.GetOrCreate(s.ctx, "channel-1")
	s.Require().NoError(err)
	other, err := s.games.GetOrCreate(s.ctx, "channel-2")
	s.Require().NoError(err)

	s.Same(first, again)
	s.NotSame(first, other)
	s.Equal(2, s.built)

	got, ok := s.games.Get("channel-2")
	s.True(ok)
	s.Same(other, got)

	_, ok = s.games.Get("channel-3")
	s.False(ok)

	_, err = s.games.GetOrCreate(s.ctx, "")
	s.Error(err)
}

func (s *GamesTestSuite) TestFactoryErrorIsNotCached() {
	games, err := NewGames(func(ctx context.Context, listener engine.Listener) (engine.Service, error) {
		return nil, errors.New("no bank")
	}, nil)
	s.Require().NoError(err)

	_, err = games.GetOrCreate(s.ctx, "channel-1")
	s.Error(err)
	_, ok := games.Get("channel-1")
	s.False(ok)
}

func (s *GamesTestSuite) TestMessageIDTracking() {
	s.Empty(s.games.MessageID("channel-1"))

	// unknown channels are ignored
	s.games.SetMessageID("channel-1", "message-0")
	s.Empty(s.games.MessageID("channel-1"))

	_, err := s.games.GetOrCreate(s.ctx, "channel-1")
	s.Require().NoError(err)
	s.games.SetMessageID("channel-1", "message-1")
	s.Equal("message-1", s.games.MessageID("channel-1"))
}

func (s *GamesTestSuite) TestTimeoutReachesSnapshotFunc() {
	svc, err := s.games.GetOrCreate(s.ctx, "channel-1")
	s.Require().NoError(err)

	_, err = svc.Start(s.ctx, &engine.StartInput{})
	s.Require().NoError(err)

	s.clock.Advance(engine.DefaultCountdown)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Require().Len(s.updates, 2)

	timeout := s.updates[1]
	s.Equal("channel-1", timeout.channelID)
	s.Equal(models.PhasePresenting, timeout.prev.Phase)
	s.Equal(models.PhaseRevealed, timeout.next.Phase)

	judgement, _, ok := messaging.JudgementBetween(timeout.prev, timeout.next)
	s.True(ok)
	s.Equal(messaging.JudgementTimeout, judgement)
}

func (s *GamesTestSuite) TestChannelsShareStoredHistory() {
	first, err := s.games.GetOrCreate(s.ctx, "channel-1")
	s.Require().NoError(err)
	second, err := s.games.GetOrCreate(s.ctx, "channel-2")
	s.Require().NoError(err)

	_, err = first.Start(s.ctx, &engine.StartInput{})
	s.Require().NoError(err)
	_, err = first.Buzz(s.ctx, &engine.BuzzInput{})
	s.Require().NoError(err)
	_, err = first.JudgeStarter(s.ctx, &engine.JudgeStarterInput{Correct: false})
	s.Require().NoError(err)
	ended, err := first.EndSession(s.ctx, &engine.EndSessionInput{})
	s.Require().NoError(err)
	s.Require().NotNil(ended.RecordedSession)
	s.Len(ended.Snapshot.History, 1)

	out, err := second.GetSnapshot(s.ctx, &engine.GetSnapshotInput{RefreshHistory: true})
	s.Require().NoError(err)
	s.Len(out.Snapshot.History, 1)
	s.Equal(1, out.Snapshot.Lifetime.Sessions)
	s.Equal(1, out.Snapshot.Lifetime.IncorrectBuzzes)

	toggled, err := second.ToggleHistoryView(s.ctx, &engine.ToggleHistoryViewInput{})
	s.Require().NoError(err)
	s.Len(toggled.Snapshot.HistoryRows, 1)
}

func TestGamesTestSuite(t *testing.T) {
	suite.Run(t, new(GamesTestSuite))
}
