package memory

import (
	"context"
	"sync"

	"github.com/iamasit07/clash-of-dots/backend/internal/domain"
)

// StatsRepo keeps the aggregate in process memory. It is the local store used
// when no database is configured.
type StatsRepo struct {
	mu    sync.Mutex
	stats domain.Stats
}

func NewStatsRepo() *StatsRepo {
	return &StatsRepo{}
}

func (r *StatsRepo) GetStats(ctx context.Context) (domain.Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats, nil
}

func (r *StatsRepo) Increment(ctx context.Context, inc domain.Increment) (domain.Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats = r.stats.Apply(inc)
	return r.stats, nil
}
