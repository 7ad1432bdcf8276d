package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iamasit07/clash-of-dots/backend/internal/domain"
)

// The aggregate lives in one row; there is no per-user partitioning.
const statsRowID = 1

type StatsRepo struct {
	DB *sql.DB
}

func NewStatsRepo(db *sql.DB) *StatsRepo {
	return &StatsRepo{DB: db}
}

// GetStats returns the aggregate, creating the row with zero counters if missing.
func (r *StatsRepo) GetStats(ctx context.Context) (domain.Stats, error) {
	query := `SELECT total_games, games_won, games_drawn FROM game_stats WHERE id = $1;`

	var stats domain.Stats
	err := r.DB.QueryRowContext(ctx, query, statsRowID).Scan(&stats.TotalGames, &stats.GamesWon, &stats.GamesDrawn)
	if errors.Is(err, sql.ErrNoRows) {
		insert := `INSERT INTO game_stats (id) VALUES ($1) ON CONFLICT (id) DO NOTHING;`
		if _, err := r.DB.ExecContext(ctx, insert, statsRowID); err != nil {
			return domain.Stats{}, fmt.Errorf("failed to create stats record: %w", err)
		}
		return domain.Stats{}, nil
	}
	if err != nil {
		return domain.Stats{}, fmt.Errorf("failed to get stats: %w", err)
	}
	return stats, nil
}

// Increment bumps total_games plus the counter named by inc in a single upsert,
// so concurrent increments never lose an update.
func (r *StatsRepo) Increment(ctx context.Context, inc domain.Increment) (domain.Stats, error) {
	won, drawn := 0, 0
	switch inc {
	case domain.IncrementWon:
		won = 1
	case domain.IncrementDrawn:
		drawn = 1
	case domain.IncrementTotal:
	default:
		return domain.Stats{}, fmt.Errorf("unknown stats increment %q", string(inc))
	}

	query := `
	INSERT INTO game_stats (id, total_games, games_won, games_drawn)
	VALUES ($1, 1, $2, $3)
	ON CONFLICT (id) DO UPDATE SET
		total_games = game_stats.total_games + 1,
		games_won = game_stats.games_won + EXCLUDED.games_won,
		games_drawn = game_stats.games_drawn + EXCLUDED.games_drawn,
		updated_at = NOW()
	RETURNING total_games, games_won, games_drawn;
	`

	var stats domain.Stats
	err := r.DB.QueryRowContext(ctx, query, statsRowID, won, drawn).Scan(&stats.TotalGames, &stats.GamesWon, &stats.GamesDrawn)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("failed to increment %s: %w", inc, err)
	}
	return stats, nil
}
