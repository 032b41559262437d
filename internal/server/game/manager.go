package game

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pawnpuzzle/internal/puzzle"
)

var ErrGameNotFound = errors.New("game not found")

const watcherBuffer = 16

type Manager struct {
	mu       sync.RWMutex
	games    map[string]*GameState
	watchers map[string]map[chan Event]uint64 // value: last Seq delivered

	log *zap.Logger
	now func() time.Time
}

func NewManager(log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		games:    make(map[string]*GameState),
		watchers: make(map[string]map[chan Event]uint64),
		log:      log,
		now:      time.Now,
	}
}

// NewGame starts a session on initial. layoutID records where it came from.
func (m *Manager) NewGame(initial puzzle.Board, layoutID string) *GameState {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	now := m.now()
	g := &GameState{
		ID:        id,
		LayoutID:  layoutID,
		CreatedAt: now,
		UpdatedAt: now,
		game:      puzzle.NewGame(initial),
	}
	m.games[id] = g
	m.log.Info("game created", zap.String("game_id", id), zap.String("layout_id", layoutID))
	return g
}

func (m *Manager) Get(id string) (*GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return g, nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// Exec runs cmd on the session under its lock and fans the result out to
// watchers when the command can change state.
func (m *Manager) Exec(id string, cmd Command) (Event, error) {
	if err := cmd.Validate(); err != nil {
		return Event{}, err
	}
	g, err := m.Get(id)
	if err != nil {
		return Event{}, err
	}

	g.mu.Lock()
	res := cmd.apply(g.game)
	if cmd.mutates() {
		g.seq++
	}
	ev := Event{
		GameID:   id,
		Seq:      g.seq,
		View:     g.game.Snapshot(),
		Result:   res,
		WinEvent: g.game.TakeWinEvent(),
	}
	if cmd.mutates() {
		g.UpdatedAt = m.now()
	}
	g.mu.Unlock()

	if res != nil {
		m.log.Debug("move",
			zap.String("game_id", id),
			zap.String("cmd", string(cmd.Kind)),
			zap.Stringer("outcome", res.Outcome),
			zap.Stringer("from", res.Move.From),
			zap.Stringer("to", res.Move.To),
		)
	}
	if ev.WinEvent {
		m.log.Info("puzzle solved", zap.String("game_id", id), zap.Int("moves", ev.View.History))
	}
	if cmd.mutates() {
		m.publish(ev)
	}
	return ev, nil
}

// Watch subscribes to a session's events. The returned func unsubscribes.
// Events arrive in Seq order. A slow watcher loses intermediate events but
// always ends up holding the latest one; commands never block on it.
func (m *Manager) Watch(id string) (<-chan Event, func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; !ok {
		return nil, nil, ErrGameNotFound
	}
	ch := make(chan Event, watcherBuffer)
	set := m.watchers[id]
	if set == nil {
		set = make(map[chan Event]uint64)
		m.watchers[id] = set
	}
	set[ch] = 0

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			if set, ok := m.watchers[id]; ok {
				if _, ok := set[ch]; ok {
					delete(set, ch)
					close(ch)
				}
				if len(set) == 0 {
					delete(m.watchers, id)
				}
			}
		})
	}
	return ch, cancel, nil
}

// publish runs after the session lock is released, so two commands can
// reach it in either order. It holds the manager lock exclusively and skips
// events older than what a watcher already got.
func (m *Manager) publish(ev Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	set := m.watchers[ev.GameID]
	for ch, last := range set {
		if ev.Seq <= last {
			continue
		}
		set[ch] = ev.Seq
		select {
		case ch <- ev:
		default:
			// full: make room by dropping the oldest queued event
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- ev:
			default:
			}
		}
	}
}

// Prune drops sessions idle for longer than maxIdle and closes their watchers.
func (m *Manager) Prune(maxIdle time.Duration) int {
	cutoff := m.now().Add(-maxIdle)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, g := range m.games {
		g.mu.Lock()
		idle := g.UpdatedAt.Before(cutoff)
		g.mu.Unlock()
		if !idle {
			continue
		}
		delete(m.games, id)
		for ch := range m.watchers[id] {
			close(ch)
		}
		delete(m.watchers, id)
		n++
	}
	if n > 0 {
		m.log.Info("pruned idle games", zap.Int("count", n), zap.Int("remaining", len(m.games)))
	}
	return n
}
