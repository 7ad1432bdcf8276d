package game

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/iamasit07/clash-of-dots/backend/internal/domain"
	"go.uber.org/zap"
)

const statsTimeout = 5 * time.Second

// Dependencies are shared by every controller of a session manager.
type Dependencies struct {
	Search    SearchFunc
	Scheduler Scheduler
	Stats     StatsRecorder
	Log       *zap.Logger
}

// Controller owns the canonical state of one game and drives its turn order.
// Human input is refused while the opponent search is pending.
type Controller struct {
	GameID    string
	CreatedAt time.Time

	// emitMu is held from a commit until its events are delivered, so listeners
	// see commits in order. Lock order: emitMu, then mu.
	emitMu sync.Mutex
	seq    uint64

	mu           sync.Mutex
	state        domain.GameState
	generation   int
	lastActivity time.Time

	listenersMu sync.RWMutex
	listeners   map[int]Listener
	nextID      int

	records sync.WaitGroup

	deps Dependencies
	log  *zap.Logger
}

func NewController(gameID string, variant domain.Variant, starter domain.PlayerID, deps Dependencies) (*Controller, error) {
	state, err := domain.NewGame(variant, starter)
	if err != nil {
		return nil, err
	}
	if deps.Scheduler == nil {
		deps.Scheduler = SyncScheduler{}
	}
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}

	now := time.Now()
	c := &Controller{
		GameID:       gameID,
		CreatedAt:    now,
		state:        state,
		lastActivity: now,
		listeners:    make(map[int]Listener),
		deps:         deps,
		log:          deps.Log.With(zap.String("game_id", gameID)),
	}
	return c, nil
}

// Begin announces the initial state and, when the opponent starts, schedules its move.
func (c *Controller) Begin() {
	c.emitMu.Lock()
	c.mu.Lock()
	state := c.state.Clone()
	gen := c.generation
	c.mu.Unlock()
	c.deliver(stateEvent(c.GameID, state))
	c.emitMu.Unlock()

	if state.Phase == domain.PhaseSearchingOpponent {
		c.scheduleOpponent(gen)
	}
}

// Snapshot returns a deep copy of the current state.
func (c *Controller) Snapshot() domain.GameState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

func (c *Controller) LastActivity() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActivity
}

// Subscribe registers a presentation sink and returns its unsubscribe func.
func (c *Controller) Subscribe(l Listener) func() {
	c.listenersMu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = l
	c.listenersMu.Unlock()

	return func() {
		c.listenersMu.Lock()
		delete(c.listeners, id)
		c.listenersMu.Unlock()
	}
}

// Watch subscribes l and hands it the current state before any later event.
func (c *Controller) Watch(l Listener) func() {
	c.emitMu.Lock()
	defer c.emitMu.Unlock()

	unsubscribe := c.Subscribe(l)
	e := stateEvent(c.GameID, c.Snapshot())
	c.seq++
	e.Seq = c.seq
	l.OnEvent(e)
	return unsubscribe
}

// HumanMove applies the human's column. A full or out-of-range column is a no-op
// and reports applied=false without an error.
func (c *Controller) HumanMove(column int) (bool, error) {
	c.emitMu.Lock()
	c.mu.Lock()
	switch c.state.Phase {
	case domain.PhaseGameOver:
		c.mu.Unlock()
		c.emitMu.Unlock()
		return false, domain.ErrGameOver
	case domain.PhaseSearchingOpponent:
		c.mu.Unlock()
		c.emitMu.Unlock()
		return false, domain.ErrNotYourTurn
	}

	next, move, err := domain.Play(c.state, domain.PlayerA, column)
	if err != nil {
		c.mu.Unlock()
		c.emitMu.Unlock()
		if errors.Is(err, domain.ErrColumnFull) || errors.Is(err, domain.ErrInvalidMove) {
			c.log.Debug("ignored move", zap.Int("column", column), zap.Error(err))
			return false, nil
		}
		return false, err
	}

	c.state = next
	c.lastActivity = time.Now()
	gen := c.generation
	snapshot := c.state.Clone()
	c.mu.Unlock()

	c.deliver(buildEvents(c.GameID, snapshot, move)...)
	c.emitMu.Unlock()

	c.afterMove(snapshot, gen)
	return true, nil
}

// playOpponent runs the search on a copy of the board and applies its column.
// It does nothing unless the game is waiting for the opponent, and drops the move
// when the game was reset after it got scheduled.
func (c *Controller) playOpponent(scheduledGen int) {
	c.emitMu.Lock()
	c.mu.Lock()
	gen := c.generation
	if scheduledGen != gen || c.state.Phase != domain.PhaseSearchingOpponent {
		c.mu.Unlock()
		c.emitMu.Unlock()
		return
	}

	column := c.deps.Search(c.state.Board.Clone())
	next, move, err := domain.Play(c.state, domain.PlayerB, column)
	if err != nil {
		c.mu.Unlock()
		c.emitMu.Unlock()
		c.log.Error("opponent move rejected", zap.Int("column", column), zap.Error(err))
		return
	}

	c.state = next
	c.lastActivity = time.Now()
	snapshot := c.state.Clone()
	c.mu.Unlock()

	c.deliver(buildEvents(c.GameID, snapshot, move)...)
	c.emitMu.Unlock()

	c.afterMove(snapshot, gen)
}

// Reset throws the board away and starts over with the given starter.
func (c *Controller) Reset(starter domain.PlayerID) error {
	c.emitMu.Lock()
	c.mu.Lock()
	state, err := domain.NewGame(c.state.Variant, starter)
	if err != nil {
		c.mu.Unlock()
		c.emitMu.Unlock()
		return err
	}
	c.state = state
	c.generation++
	gen := c.generation
	c.lastActivity = time.Now()
	snapshot := c.state.Clone()
	c.mu.Unlock()

	c.deliver(stateEvent(c.GameID, snapshot))
	c.emitMu.Unlock()

	c.log.Info("game reset", zap.Int("starter", int(starter)))
	if snapshot.Phase == domain.PhaseSearchingOpponent {
		c.scheduleOpponent(gen)
	}
	return nil
}

// Drain waits for outcome records still being written.
func (c *Controller) Drain() {
	c.records.Wait()
}

func (c *Controller) afterMove(state domain.GameState, gen int) {
	switch state.Phase {
	case domain.PhaseGameOver:
		if c.deps.Stats == nil {
			return
		}
		c.records.Add(1)
		go func() {
			defer c.records.Done()
			c.recordOutcome(state.Outcome)
		}()
	case domain.PhaseSearchingOpponent:
		c.scheduleOpponent(gen)
	}
}

func (c *Controller) scheduleOpponent(gen int) {
	c.deps.Scheduler.Schedule(func() {
		c.playOpponent(gen)
	})
}

func (c *Controller) recordOutcome(outcome domain.Outcome) {
	ctx, cancel := context.WithTimeout(context.Background(), statsTimeout)
	defer cancel()

	var err error
	switch {
	case outcome.Kind == domain.OutcomeDraw:
		err = c.deps.Stats.RecordDraw(ctx)
	case outcome.Winner == domain.PlayerA:
		err = c.deps.Stats.RecordWin(ctx)
	default:
		err = c.deps.Stats.RecordLoss(ctx)
	}

	if err != nil {
		c.log.Warn("failed to record outcome", zap.String("outcome", string(outcome.Kind)), zap.Error(err))
		return
	}
	c.log.Info("game finished", zap.String("outcome", string(outcome.Kind)), zap.Int("winner", int(outcome.Winner)))
}

// deliver numbers and emits events. Callers hold emitMu.
func (c *Controller) deliver(events ...Event) {
	for _, e := range events {
		c.seq++
		e.Seq = c.seq
		c.emit(e)
	}
}

func (c *Controller) emit(e Event) {
	c.listenersMu.RLock()
	listeners := make([]Listener, 0, len(c.listeners))
	for _, l := range c.listeners {
		listeners = append(listeners, l)
	}
	c.listenersMu.RUnlock()

	for _, l := range listeners {
		l.OnEvent(e)
	}
}
