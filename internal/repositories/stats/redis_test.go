package stats

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/starterforten/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

// RepositoryTestSuite exercises the storage contract shared by every backend
type RepositoryTestSuite struct {
	suite.Suite
	repo    Repository
	corrupt func(blob string)
	testNow time.Time
}

func (s *RepositoryTestSuite) session(n int) *models.SessionStats {
	return &models.SessionStats{
		ID:              fmt.Sprintf("session-%d", n),
		Timestamp:       s.testNow.Add(time.Duration(n) * time.Minute),
		AvgBuzzTimeMs:   1250.5 + float64(n),
		Score:           10 * n,
		IncorrectBuzzes: n % 2,
		CorrectStarters: n,
		TotalStarters:   n + 1,
		CorrectBonuses:  n * 2,
		TotalBonuses:    n * 3,
	}
}

func (s *RepositoryTestSuite) TestLoadEmpty() {
	out, err := s.repo.LoadSessions(context.Background(), &LoadSessionsInput{})
	s.Require().NoError(err)
	s.Empty(out.Sessions)
	s.NotNil(out.Sessions)
}

func (s *RepositoryTestSuite) TestAppendThenLoadRoundTrip() {
	var want []*models.SessionStats
	for i := 1; i <= 5; i++ {
		session := s.session(i)
		want = append(want, session)
		s.Require().NoError(s.repo.AppendSession(context.Background(), &AppendSessionInput{
			Session: session,
		}))
	}

	out, err := s.repo.LoadSessions(context.Background(), &LoadSessionsInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Sessions, 5)

	for i := range want {
		s.Equal(want[i].ID, out.Sessions[i].ID)
		s.True(want[i].Timestamp.Equal(out.Sessions[i].Timestamp))
		s.Equal(want[i].AvgBuzzTimeMs, out.Sessions[i].AvgBuzzTimeMs)
		s.Equal(want[i].Score, out.Sessions[i].Score)
		s.Equal(want[i].IncorrectBuzzes, out.Sessions[i].IncorrectBuzzes)
		s.Equal(want[i].CorrectStarters, out.Sessions[i].CorrectStarters)
		s.Equal(want[i].TotalStarters, out.Sessions[i].TotalStarters)
		s.Equal(want[i].CorrectBonuses, out.Sessions[i].CorrectBonuses)
		s.Equal(want[i].TotalBonuses, out.Sessions[i].TotalBonuses)
	}
}

func (s *RepositoryTestSuite) TestAppendNilSession() {
	err := s.repo.AppendSession(context.Background(), &AppendSessionInput{})
	s.ErrorIs(err, ErrNilSession)

	err = s.repo.AppendSession(context.Background(), nil)
	s.ErrorIs(err, ErrNilSession)
}

func (s *RepositoryTestSuite) TestCorruptHistory() {
	s.corrupt("{not json")

	_, err := s.repo.LoadSessions(context.Background(), &LoadSessionsInput{})
	s.ErrorIs(err, ErrCorruptHistory)

	// appending over a corrupt blob starts a fresh history
	s.Require().NoError(s.repo.AppendSession(context.Background(), &AppendSessionInput{
		Session: s.session(1),
	}))

	out, err := s.repo.LoadSessions(context.Background(), &LoadSessionsInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Sessions, 1)
	s.Equal("session-1", out.Sessions[0].ID)
}

func (s *RepositoryTestSuite) TestUnknownFieldsAreIgnored() {
	s.corrupt(`[{"id":"old","score":40,"futureField":true}]`)

	out, err := s.repo.LoadSessions(context.Background(), &LoadSessionsInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Sessions, 1)
	s.Equal("old", out.Sessions[0].ID)
	s.Equal(40, out.Sessions[0].Score)
	s.Zero(out.Sessions[0].TotalBonuses)
}

func (s *RepositoryTestSuite) TestConcurrentAppendsKeepEveryEntry() {
	var wg sync.WaitGroup
	for i := 1; i <= 4; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.NoError(s.repo.AppendSession(context.Background(), &AppendSessionInput{
				Session: s.session(n),
			}))
		}(i)
	}
	wg.Wait()

	out, err := s.repo.LoadSessions(context.Background(), &LoadSessionsInput{})
	s.Require().NoError(err)
	s.Len(out.Sessions, 4)
}

type RedisRepositoryTestSuite struct {
	RepositoryTestSuite
	mr     *miniredis.Miniredis
	client *redis.Client
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	// Create a new miniredis server for each test
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.corrupt = func(blob string) {
		s.Require().NoError(s.mr.Set(DefaultKey, blob))
	}
	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func (s *RedisRepositoryTestSuite) TestCustomKey() {
	repo, err := NewRedis(&Config{
		RedisClient: s.client,
		Key:         "custom:stats",
	})
	s.Require().NoError(err)

	s.Require().NoError(repo.AppendSession(context.Background(), &AppendSessionInput{
		Session: s.session(1),
	}))

	s.True(s.mr.Exists("custom:stats"))
	s.False(s.mr.Exists(DefaultKey))
}

func (s *RedisRepositoryTestSuite) TestNewRedisValidation() {
	_, err := NewRedis(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = NewRedis(&Config{})
	s.ErrorIs(err, ErrNilClient)
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

type SQLiteRepositoryTestSuite struct {
	RepositoryTestSuite
	sqlite *sqliteRepository
}

func (s *SQLiteRepositoryTestSuite) SetupTest() {
	repo, err := NewSQLite(&SQLiteConfig{
		Path: filepath.Join(s.T().TempDir(), "nested", "stats.db"),
	})
	s.Require().NoError(err)
	s.sqlite = repo
	s.repo = repo

	s.corrupt = func(blob string) {
		_, err := s.sqlite.db.Exec(
			`INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			DefaultKey, []byte(blob))
		s.Require().NoError(err)
	}
	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
}

func (s *SQLiteRepositoryTestSuite) TearDownTest() {
	s.sqlite.Close()
}

func (s *SQLiteRepositoryTestSuite) TestReopenKeepsHistory() {
	path := filepath.Join(s.T().TempDir(), "stats.db")

	first, err := NewSQLite(&SQLiteConfig{Path: path})
	s.Require().NoError(err)
	s.Require().NoError(first.AppendSession(context.Background(), &AppendSessionInput{
		Session: s.session(1),
	}))
	s.Require().NoError(first.Close())

	second, err := NewSQLite(&SQLiteConfig{Path: path})
	s.Require().NoError(err)
	defer second.Close()

	out, err := second.LoadSessions(context.Background(), &LoadSessionsInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Sessions, 1)
	s.Equal("session-1", out.Sessions[0].ID)
}

func TestSQLiteRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(SQLiteRepositoryTestSuite))
}

type MemoryRepositoryTestSuite struct {
	RepositoryTestSuite
}

func (s *MemoryRepositoryTestSuite) SetupTest() {
	repo := NewMemory()
	s.repo = repo
	s.corrupt = func(blob string) {
		repo.setRaw([]byte(blob))
	}
	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
}

func TestMemoryRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(MemoryRepositoryTestSuite))
}
