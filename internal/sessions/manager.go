package sessions

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/merge2048/internal/games/t2048"
)

type entry struct {
	mu      sync.Mutex
	id      ID
	variant string
	game    *t2048.Session
	started time.Time
	saved   bool
}

// Manager serializes moves per game and records results.
// Thread-safe for concurrent access.
type Manager struct {
	mu       sync.RWMutex
	sessions map[ID]*entry
	subs     map[*Subscription]struct{}

	saver  ResultSaver
	logger *log.Logger
	now    func() time.Time
}

// NewManager creates an empty manager. saver may be nil; a nil logger
// discards output.
func NewManager(saver ResultSaver, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Manager{
		sessions: make(map[ID]*entry),
		subs:     make(map[*Subscription]struct{}),
		saver:    saver,
		logger:   logger,
		now:      time.Now,
	}
}

// Create starts a new game and returns its id and initial snapshot.
func (m *Manager) Create(opts Options) (ID, t2048.Snapshot, error) {
	var (
		game *t2048.Session
		err  error
	)
	if opts.Board != nil {
		game, err = t2048.NewSessionFromGrid(opts.Config, opts.Source, opts.Board)
	} else {
		game, err = t2048.NewSession(opts.Config, opts.Source)
	}
	if err != nil {
		return "", t2048.Snapshot{}, fmt.Errorf("sessions: create: %w", err)
	}

	e := &entry{
		id:      ID(uuid.NewString()),
		variant: opts.Variant,
		game:    game,
		started: m.now(),
	}

	m.mu.Lock()
	m.sessions[e.id] = e
	m.mu.Unlock()

	snap := game.Snapshot()
	m.logger.Debug("session created", "id", e.id, "variant", e.variant, "size", snap.Size)
	m.publish(Event{Session: e.id, Kind: EventCreated, Snapshot: snap})
	return e.id, snap, nil
}

func (m *Manager) get(id ID) (*entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return e, nil
}

// Move applies one direction to a game. The result is saved the first
// time the game becomes terminal.
func (m *Manager) Move(id ID, dir t2048.Direction) (t2048.MoveResult, t2048.Snapshot, error) {
	e, err := m.get(id)
	if err != nil {
		return t2048.MoveResult{}, t2048.Snapshot{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	res, err := e.game.ApplyMove(dir)
	if err != nil {
		return res, e.game.Snapshot(), err
	}
	snap := e.game.Snapshot()

	if res.Changed {
		m.publish(Event{Session: id, Kind: EventMoved, Snapshot: snap})
	}
	if res.WonJustNow {
		m.logger.Info("target reached", "id", id, "target", snap.Target, "score", snap.Score)
		m.publish(Event{Session: id, Kind: EventWon, Snapshot: snap})
	}
	if res.GameOverNow {
		m.logger.Info("game over", "id", id, "score", snap.Score, "moves", snap.Moves)
		m.publish(Event{Session: id, Kind: EventOver, Snapshot: snap})
		if err := m.saveLocked(e); err != nil {
			m.logger.Warn("failed to save result", "id", id, "error", err)
		}
	}
	return res, snap, nil
}

// Snapshot returns the current state of a game.
func (m *Manager) Snapshot(id ID) (t2048.Snapshot, error) {
	e, err := m.get(id)
	if err != nil {
		return t2048.Snapshot{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.game.Snapshot(), nil
}

// Grid returns a copy of a game's grid.
func (m *Manager) Grid(id ID) (*t2048.Grid, error) {
	e, err := m.get(id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.game.Grid(), nil
}

// Close removes a game and saves its result if that has not happened yet.
// Games closed before any move are not saved.
func (m *Manager) Close(id ID) (Result, error) {
	m.mu.Lock()
	e, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	result := m.result(e)
	m.publish(Event{Session: id, Kind: EventClosed, Snapshot: e.game.Snapshot()})
	m.logger.Debug("session closed", "id", id, "score", result.Score)

	if result.Moves == 0 {
		return result, nil
	}
	if err := m.saveLocked(e); err != nil {
		return result, err
	}
	return result, nil
}

// CloseAll closes every hosted game. Save errors are logged.
func (m *Manager) CloseAll() {
	for _, id := range m.IDs() {
		if _, err := m.Close(id); err != nil {
			m.logger.Warn("failed to close session", "id", id, "error", err)
		}
	}
}

// Count returns the number of hosted games.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// IDs returns the ids of all hosted games in sorted order.
func (m *Manager) IDs() []ID {
	m.mu.RLock()
	ids := make([]ID, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.RUnlock()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Subscribe returns a subscription receiving events for all games.
func (m *Manager) Subscribe(bufferSize int) *Subscription {
	sub := newSubscription(bufferSize)
	m.mu.Lock()
	m.subs[sub] = struct{}{}
	m.mu.Unlock()
	return sub
}

// Unsubscribe stops delivery to sub. Safe to call multiple times.
func (m *Manager) Unsubscribe(sub *Subscription) {
	m.mu.Lock()
	delete(m.subs, sub)
	m.mu.Unlock()
	sub.close()
}

func (m *Manager) publish(evt Event) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for sub := range m.subs {
		sub.send(evt)
	}
}

func (m *Manager) result(e *entry) Result {
	snap := e.game.Snapshot()
	return Result{
		GameID:   e.id,
		Variant:  e.variant,
		Size:     snap.Size,
		Target:   snap.Target,
		Score:    snap.Score,
		MaxTile:  snap.MaxTile,
		Moves:    snap.Moves,
		Won:      snap.TargetReached,
		Over:     snap.State == t2048.StatusOver,
		Duration: m.now().Sub(e.started),
	}
}

// saveLocked hands the result to the saver once. Caller holds e.mu.
func (m *Manager) saveLocked(e *entry) error {
	if e.saved || m.saver == nil {
		return nil
	}
	if err := m.saver.SaveResult(m.result(e)); err != nil {
		return fmt.Errorf("sessions: save result: %w", err)
	}
	e.saved = true
	return nil
}
