package game

import (
	"sort"
	"sync"
	"time"

	"github.com/iamasit07/clash-of-dots/backend/internal/domain"
	"github.com/iamasit07/clash-of-dots/backend/pkg/uid"
	"go.uber.org/zap"
)

// SessionManager keeps one controller per running browser game.
type SessionManager struct {
	Session map[string]*Controller // gameID → controller
	mu      sync.RWMutex
	deps    Dependencies
	log     *zap.Logger
}

func NewSessionManager(deps Dependencies) *SessionManager {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	return &SessionManager{
		Session: make(map[string]*Controller),
		deps:    deps,
		log:     deps.Log.Named("session"),
	}
}

// CreateSession registers a new game. The caller starts it with Begin once any
// listeners are subscribed.
func (sm *SessionManager) CreateSession(variant domain.Variant, starter domain.PlayerID) (*Controller, error) {
	controller, err := NewController(uid.GenerateGameID(), variant, starter, sm.deps)
	if err != nil {
		return nil, err
	}

	sm.mu.Lock()
	sm.Session[controller.GameID] = controller
	sm.mu.Unlock()

	sm.log.Info("created session",
		zap.String("game_id", controller.GameID),
		zap.String("variant", string(variant)),
		zap.Int("starter", int(starter)))
	return controller, nil
}

func (sm *SessionManager) GetSessionByGameID(gameID string) (*Controller, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.Session[gameID]
	return session, exists
}

func (sm *SessionManager) RemoveSession(gameID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.Session[gameID]; !exists {
		return domain.ErrSessionNotFound
	}
	delete(sm.Session, gameID)
	sm.log.Info("removed session", zap.String("game_id", gameID))
	return nil
}

func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.Session)
}

// CleanupIdleSessions drops sessions with no activity for longer than maxIdle.
// Finished games are kept half as long.
func (sm *SessionManager) CleanupIdleSessions(maxIdle time.Duration) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	count := 0
	now := time.Now()

	for gameID, session := range sm.Session {
		limit := maxIdle
		if session.Snapshot().IsFinished() {
			limit = maxIdle / 2
		}
		if now.Sub(session.LastActivity()) > limit {
			delete(sm.Session, gameID)
			count++
		}
	}

	if count > 0 {
		sm.log.Info("memory cleanup: removed stale game sessions", zap.Int("count", count))
	}
	return count
}

// GameSummary describes a running game for listings.
type GameSummary struct {
	GameID    string         `json:"gameId"`
	Variant   domain.Variant `json:"variant"`
	Phase     domain.Phase   `json:"phase"`
	MoveCount int            `json:"moveCount"`
	StartedAt time.Time      `json:"startedAt"`
	Viewers   int            `json:"viewers"`
}

// ActiveGames lists games that are not finished, oldest first.
func (sm *SessionManager) ActiveGames() []GameSummary {
	sm.mu.RLock()
	controllers := make([]*Controller, 0, len(sm.Session))
	for _, c := range sm.Session {
		controllers = append(controllers, c)
	}
	sm.mu.RUnlock()

	games := make([]GameSummary, 0, len(controllers))
	for _, c := range controllers {
		state := c.Snapshot()
		if state.IsFinished() {
			continue
		}
		games = append(games, GameSummary{
			GameID:    c.GameID,
			Variant:   state.Variant,
			Phase:     state.Phase,
			MoveCount: state.MoveCount,
			StartedAt: c.CreatedAt,
		})
	}
	sort.Slice(games, func(i, j int) bool {
		return games[i].StartedAt.Before(games[j].StartedAt)
	})
	return games
}

// Drain waits until every game has finished writing its outcome.
func (sm *SessionManager) Drain() {
	sm.mu.RLock()
	controllers := make([]*Controller, 0, len(sm.Session))
	for _, c := range sm.Session {
		controllers = append(controllers, c)
	}
	sm.mu.RUnlock()

	for _, c := range controllers {
		c.Drain()
	}
}
