package stats

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/iamasit07/clash-of-dots/backend/internal/domain"
	"go.uber.org/zap"
)

const defaultMaxPending = 1000

var ErrQueueFull = errors.New("stats retry queue is full")

// Repository is the persisted aggregate. Every increment is atomic and creates
// the record when it does not exist yet.
type Repository interface {
	GetStats(ctx context.Context) (domain.Stats, error)
	Increment(ctx context.Context, inc domain.Increment) (domain.Stats, error)
}

// Cache holds the last known aggregate. Optional.
type Cache interface {
	Load(ctx context.Context) (domain.Stats, bool, error)
	Store(ctx context.Context, stats domain.Stats) error
	Invalidate(ctx context.Context) error
}

// Service implements the stats store used by the game controller and the REST API.
type Service struct {
	repo  Repository
	cache Cache // Optional, can be nil
	log   *zap.Logger

	mu         sync.Mutex
	pending    []domain.Increment
	maxPending int

	// writes counts committed increments. A cache fill only lands when no
	// increment committed during its read.
	cacheMu sync.Mutex
	writes  uint64
}

func NewService(repo Repository, cache Cache, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo:       repo,
		cache:      cache,
		log:        log.Named("stats"),
		maxPending: defaultMaxPending,
	}
}

// GetStats reads through the cache. Increments invalidate it.
func (s *Service) GetStats(ctx context.Context) (domain.Stats, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Load(ctx)
		if err != nil {
			s.log.Warn("failed to read stats cache", zap.Error(err))
		} else if ok {
			return cached, nil
		}
	}

	s.cacheMu.Lock()
	gen := s.writes
	s.cacheMu.Unlock()

	stats, err := s.repo.GetStats(ctx)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("fetching stats: %w", err)
	}

	if s.cache != nil {
		s.fillCache(ctx, gen, stats)
	}
	return stats, nil
}

func (s *Service) fillCache(ctx context.Context, gen uint64, stats domain.Stats) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	if s.writes != gen {
		return
	}
	if err := s.cache.Store(ctx, stats); err != nil {
		s.log.Warn("failed to populate stats cache", zap.Error(err))
	}
}

// Increment applies one counter update and returns the new aggregate.
func (s *Service) Increment(ctx context.Context, inc domain.Increment) (domain.Stats, error) {
	if !inc.Valid() {
		return domain.Stats{}, fmt.Errorf("unknown stats increment %q", string(inc))
	}

	stats, err := s.repo.Increment(ctx, inc)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("incrementing %s: %w", inc, err)
	}

	// concurrent increments can return out of order, so the next read refills
	s.cacheMu.Lock()
	s.writes++
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.Warn("failed to invalidate stats cache", zap.Error(err))
		}
	}
	s.cacheMu.Unlock()
	return stats, nil
}

func (s *Service) RecordWin(ctx context.Context) error {
	return s.record(ctx, domain.IncrementWon)
}

func (s *Service) RecordDraw(ctx context.Context) error {
	return s.record(ctx, domain.IncrementDrawn)
}

// RecordLoss only bumps the total, the aggregate has no loss counter.
func (s *Service) RecordLoss(ctx context.Context) error {
	return s.record(ctx, domain.IncrementTotal)
}

// record queues the update for a later retry when the store fails. An error is only
// returned when the update had to be dropped.
func (s *Service) record(ctx context.Context, inc domain.Increment) error {
	_, err := s.Increment(ctx, inc)
	if err == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pending) >= s.maxPending {
		s.log.Error("dropping stats update", zap.String("increment", string(inc)), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrQueueFull, err)
	}
	s.pending = append(s.pending, inc)
	s.log.Warn("stats update queued for retry",
		zap.String("increment", string(inc)),
		zap.Int("pending", len(s.pending)),
		zap.Error(err))
	return nil
}

func (s *Service) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// FlushPending retries queued updates in order and stops at the first failure,
// keeping it and everything after it queued.
func (s *Service) FlushPending(ctx context.Context) (int, error) {
	s.mu.Lock()
	queued := s.pending
	s.pending = nil
	s.mu.Unlock()

	for i, inc := range queued {
		if _, err := s.Increment(ctx, inc); err != nil {
			s.mu.Lock()
			s.pending = append(queued[i:len(queued):len(queued)], s.pending...)
			s.mu.Unlock()
			return i, err
		}
	}
	return len(queued), nil
}
