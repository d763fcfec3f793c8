package game

import (
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

var ErrGameNotFound = errors.New("game not found")

// Session is one game held by the Manager. Its mutex serializes moves, so
// the bot never searches a board another goroutine is touching.
type Session struct {
	ID string

	mu        sync.Mutex
	game      *Game
	startedAt time.Time

	// lastActive is unix nanoseconds, read by SweepIdle without mu.
	lastActive atomic.Int64
}

func (s *Session) touch(t time.Time) {
	s.lastActive.Store(t.UnixNano())
}

func (s *Session) idleSince(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, s.lastActive.Load()))
}

// Summary describes a finished game.
type Summary struct {
	GameID    string
	Outcome   Outcome
	Moves     int
	StartedAt time.Time
	EndedAt   time.Time
}

// Snapshot returns the session's current state.
func (s *Session) Snapshot() MoveResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.State()
}

// MoveCount is the number of tokens played so far.
func (s *Session) MoveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.game.History)
}

// Manager holds in-memory sessions. Nothing is persisted; idle sessions are
// dropped by SweepIdle.
type Manager struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	newBot      func() *Bot
	idleTimeout time.Duration
	onFinish    func(Summary)
}

func NewManager(idleTimeout time.Duration, newBot func() *Bot, onFinish func(Summary)) *Manager {
	if newBot == nil {
		newBot = func() *Bot { return NewBot(DefaultDepth) }
	}
	return &Manager{
		sessions:    make(map[string]*Session),
		newBot:      newBot,
		idleTimeout: idleTimeout,
		onFinish:    onFinish,
	}
}

func (m *Manager) Create() *Session {
	now := time.Now()
	s := &Session{
		ID:        uuid.NewString(),
		game:      NewGame(m.newBot()),
		startedAt: now,
	}
	s.touch(now)
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	log.Printf("[SESSION] created %s", s.ID)
	return s
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Play applies a human move to the session and the computer's reply.
func (m *Manager) Play(id string, col int) (MoveResult, *Session, error) {
	s, ok := m.Get(id)
	if !ok {
		return MoveResult{}, nil, ErrGameNotFound
	}
	// a search in flight counts as activity
	s.touch(time.Now())
	s.mu.Lock()
	res, err := s.game.Play(col)
	if err != nil {
		s.mu.Unlock()
		return MoveResult{}, s, err
	}
	now := time.Now()
	s.touch(now)
	var summary *Summary
	if res.Phase != PhaseInProgress {
		summary = &Summary{
			GameID:    s.ID,
			Outcome:   res.Outcome,
			Moves:     len(s.game.History),
			StartedAt: s.startedAt,
			EndedAt:   now,
		}
	}
	s.mu.Unlock()

	if summary != nil {
		log.Printf("[SESSION] game %s finished: %s after %d moves", s.ID, summary.Outcome, summary.Moves)
		if m.onFinish != nil {
			go m.onFinish(*summary)
		}
	}
	return res, s, nil
}

// Reset starts a fresh game in an existing session.
func (m *Manager) Reset(id string) (MoveResult, error) {
	s, ok := m.Get(id)
	if !ok {
		return MoveResult{}, ErrGameNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.game.Reset()
	now := time.Now()
	s.startedAt = now
	s.touch(now)
	return s.game.State(), nil
}

func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Len is the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// SweepIdle drops sessions with no move inside the idle window. It never
// waits on a session's mutex, so a long search only delays its own game.
func (m *Manager) SweepIdle() int {
	if m.idleTimeout <= 0 {
		return 0
	}
	now := time.Now()
	m.mu.RLock()
	var idle []*Session
	for _, s := range m.sessions {
		if s.idleSince(now) > m.idleTimeout {
			idle = append(idle, s)
		}
	}
	m.mu.RUnlock()
	if len(idle) == 0 {
		return 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for _, s := range idle {
		// a move may have landed since the scan
		if m.sessions[s.ID] != s || s.idleSince(now) <= m.idleTimeout {
			continue
		}
		delete(m.sessions, s.ID)
		removed++
		log.Printf("[SESSION] %s expired after %s idle", s.ID, m.idleTimeout)
	}
	return removed
}
