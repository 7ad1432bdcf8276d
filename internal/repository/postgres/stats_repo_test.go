package postgres

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/iamasit07/clash-of-dots/backend/internal/domain"
)

var statsColumns = []string{"total_games", "games_won", "games_drawn"}

func newMockRepo(t *testing.T) (*StatsRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStatsRepo(db), mock
}

func TestGetStatsExistingRow(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT total_games, games_won, games_drawn FROM game_stats").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(statsColumns).AddRow(10, 4, 2))

	got, err := repo.GetStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := domain.Stats{TotalGames: 10, GamesWon: 4, GamesDrawn: 2}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetStatsCreatesMissingRow(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT total_games, games_won, games_drawn FROM game_stats").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(statsColumns))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO game_stats (id) VALUES ($1) ON CONFLICT (id) DO NOTHING")).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := repo.GetStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != (domain.Stats{}) {
		t.Fatalf("expected zero stats, got %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestIncrementArguments(t *testing.T) {
	tests := []struct {
		inc        domain.Increment
		won, drawn int
	}{
		{domain.IncrementTotal, 0, 0},
		{domain.IncrementWon, 1, 0},
		{domain.IncrementDrawn, 0, 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.inc), func(t *testing.T) {
			repo, mock := newMockRepo(t)
			mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO game_stats (id, total_games, games_won, games_drawn)")).
				WithArgs(1, tt.won, tt.drawn).
				WillReturnRows(sqlmock.NewRows(statsColumns).AddRow(7, 3, 1))

			got, err := repo.Increment(context.Background(), tt.inc)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.TotalGames != 7 || got.GamesWon != 3 || got.GamesDrawn != 1 {
				t.Fatalf("expected returned row to be scanned, got %+v", got)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestIncrementErrors(t *testing.T) {
	repo, mock := newMockRepo(t)
	boom := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO game_stats")).WillReturnError(boom)

	if _, err := repo.Increment(context.Background(), domain.IncrementWon); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped driver error, got %v", err)
	}
	if _, err := repo.Increment(context.Background(), "loss"); err == nil {
		t.Fatal("expected error for unknown increment")
	}
}

func TestRunMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.sql")
	if err := os.WriteFile(path, []byte("CREATE TABLE IF NOT EXISTS game_stats (id SMALLINT);"), 0o644); err != nil {
		t.Fatalf("failed to write schema: %v", err)
	}
	t.Setenv("SCHEMA_PATH", path)

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS game_stats")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRunMigrationsMissingFile(t *testing.T) {
	t.Setenv("SCHEMA_PATH", filepath.Join(t.TempDir(), "missing.sql"))
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	if err := RunMigrations(context.Background(), db); err == nil {
		t.Fatal("expected error for missing schema file")
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), Options{Driver: "mysql"}); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}
