package discord

import (
	"context"
	"errors"
	"sync"

	"github.com/KirkDiggler/starterforten/internal/services/engine"
)

// EngineFactory builds the engine for one channel. The listener must be
// passed through to the engine config.
type EngineFactory func(ctx context.Context, listener engine.Listener) (engine.Service, error)

// SnapshotFunc is called with every snapshot a channel's engine publishes
type SnapshotFunc func(channelID string, prev, next *engine.Snapshot)

// channelGame is one channel's single-player quiz
type channelGame struct {
	engine engine.Service

	mu        sync.Mutex
	messageID string
	last      *engine.Snapshot
}

// Games keeps one engine per channel
type Games struct {
	factory    EngineFactory
	onSnapshot SnapshotFunc

	mu    sync.Mutex
	games map[string]*channelGame
}

// NewGames creates an empty per-channel registry
func NewGames(factory EngineFactory, onSnapshot SnapshotFunc) (*Games, error) {
	if factory == nil {
		return nil, errors.New("engine factory cannot be nil")
	}

	return &Games{
		factory:    factory,
		onSnapshot: onSnapshot,
		games:      make(map[string]*channelGame),
	}, nil
}

// GetOrCreate returns the channel's engine, building it on first use
func (g *Games) GetOrCreate(ctx context.Context, channelID string) (engine.Service, error) {
	if channelID == "" {
		return nil, errors.New("channel ID is required")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if game, ok := g.games[channelID]; ok {
		return game.engine, nil
	}

	game := &channelGame{}
	svc, err := g.factory(ctx, func(snap *engine.Snapshot) {
		game.mu.Lock()
		prev := game.last
		game.last = snap
		game.mu.Unlock()

		if g.onSnapshot != nil {
			g.onSnapshot(channelID, prev, snap)
		}
	})
	if err != nil {
		return nil, err
	}
	game.engine = svc
	g.games[channelID] = game

	return svc, nil
}

// Get returns the channel's engine if one exists
func (g *Games) Get(channelID string) (engine.Service, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	game, ok := g.games[channelID]
	if !ok {
		return nil, false
	}
	return game.engine, true
}

// SetMessageID records the channel message that shows the quiz
func (g *Games) SetMessageID(channelID, messageID string) {
	g.mu.Lock()
	game, ok := g.games[channelID]
	g.mu.Unlock()
	if !ok {
		return
	}

	game.mu.Lock()
	game.messageID = messageID
	game.mu.Unlock()
}

// MessageID returns the tracked quiz message for the channel
func (g *Games) MessageID(channelID string) string {
	g.mu.Lock()
	game, ok := g.games[channelID]
	g.mu.Unlock()
	if !ok {
		return ""
	}

	game.mu.Lock()
	defer game.mu.Unlock()
	return game.messageID
}

// Close stops every channel's countdown
func (g *Games) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	var errs []error
	for _, game := range g.games {
		if err := game.engine.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
