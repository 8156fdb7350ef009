package cli

import (
	"fmt"
	"log"

	"github.com/KirkDiggler/starterforten/internal/audio"
	"github.com/KirkDiggler/starterforten/internal/common/clock"
	"github.com/KirkDiggler/starterforten/internal/common/uuid"
	"github.com/KirkDiggler/starterforten/internal/config"
	"github.com/KirkDiggler/starterforten/internal/questionbank"
	"github.com/KirkDiggler/starterforten/internal/random"
	statsRepo "github.com/KirkDiggler/starterforten/internal/repositories/stats"
	"github.com/KirkDiggler/starterforten/internal/services/engine"
	"github.com/redis/go-redis/v9"
)

// loadConfig reads the config and applies command line overrides
func loadConfig(opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	if opts.store != "" {
		cfg.Store.Driver = opts.store
	}
	if opts.questionsPath != "" {
		cfg.QuestionsPath = opts.questionsPath
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openStore connects the configured session store. The returned func
// releases it.
func openStore(cfg *config.Config) (statsRepo.Repository, func(), error) {
	switch cfg.Store.Driver {
	case config.DriverMemory:
		return statsRepo.NewMemory(), func() {}, nil

	case config.DriverSQLite:
		repo, err := statsRepo.NewSQLite(&statsRepo.SQLiteConfig{
			Path: cfg.Store.SQLitePath,
			Key:  cfg.Store.Key,
		})
		if err != nil {
			return nil, nil, err
		}
		log.Printf("Using SQLite session store at %s", cfg.Store.SQLitePath)
		return repo, func() {
			if err := repo.Close(); err != nil {
				log.Printf("Error closing SQLite store: %v", err)
			}
		}, nil

	case config.DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Store.Redis.Addr,
			Password: cfg.Store.Redis.Password,
			DB:       cfg.Store.Redis.DB,
		})
		repo, err := statsRepo.NewRedis(&statsRepo.Config{
			RedisClient: client,
			Key:         cfg.Store.Key,
		})
		if err != nil {
			client.Close()
			return nil, nil, err
		}
		log.Printf("Using Redis session store at %s", cfg.Store.Redis.Addr)
		return repo, func() {
			if err := client.Close(); err != nil {
				log.Printf("Error closing Redis client: %v", err)
			}
		}, nil
	}

	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

// loadBank returns the configured question bank or the built-in one
func loadBank(cfg *config.Config) (*questionbank.Bank, error) {
	if cfg.QuestionsPath == "" {
		return questionbank.Default()
	}
	bank, err := questionbank.LoadFile(cfg.QuestionsPath)
	if err != nil {
		return nil, err
	}
	log.Printf("Loaded %d starters and %d bonus sets from %s",
		len(bank.Starters()), len(bank.Bonuses()), cfg.QuestionsPath)
	return bank, nil
}

// engineConfig fills in everything an engine needs except its listener
func engineConfig(cfg *config.Config, bank *questionbank.Bank, repo statsRepo.Repository, rnd random.Source, cue audio.Cue) *engine.Config {
	return &engine.Config{
		Countdown:     cfg.Game.Countdown,
		TickInterval:  cfg.Game.TickInterval,
		BonusPoints:   cfg.Game.BonusPoints,
		HistoryWindow: cfg.Game.HistoryWindow,
		SoundEnabled:  !cfg.Game.Mute,
		Bank:          bank,
		StatsRepo:     repo,
		Clock:         &clock.DefaultClock{},
		Random:        rnd,
		UUIDGenerator: uuid.New(),
		Cue:           cue,
	}
}
