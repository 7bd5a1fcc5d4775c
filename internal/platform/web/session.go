package web

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/strike5/internal/engine"
	"github.com/vovakirdan/strike5/internal/games/strike5"
)

// Session errors.
var (
	ErrSessionNotFound = errors.New("web: session not found")
	ErrTooManySessions = errors.New("web: too many sessions")
)

// ScoreSaver records finished sessions. storage.Store implements it.
type ScoreSaver interface {
	SaveScore(gameID string, score, moves int) (int64, error)
}

// Session is one remote single-player game.
// Turns on a session are serialized by its mutex. Once the manager ends a
// session it is closed and rejects further moves.
type Session struct {
	ID      string
	Variant string
	Seed    int64
	Created time.Time

	mu         sync.Mutex
	game       *engine.Game
	lastActive time.Time
	closed     bool
}

// GameView is the JSON form of a session.
type GameView struct {
	ID       string          `json:"id"`
	Variant  string          `json:"variant"`
	Seed     int64           `json:"seed"`
	State    engine.Snapshot `json:"state"`
	GameOver bool            `json:"game_over"`
}

// Move applies one turn and returns the result with the new state.
func (s *Session) Move(start, end engine.Cell) (engine.TurnResult, GameView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return engine.TurnResult{}, GameView{}, ErrSessionNotFound
	}
	s.lastActive = time.Now()
	res, err := s.game.ApplyMove(start, end)
	if err != nil {
		return engine.TurnResult{}, GameView{}, err
	}
	return res, s.viewLocked(), nil
}

// View returns the current state.
func (s *Session) View() GameView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Session) viewLocked() GameView {
	return GameView{
		ID:       s.ID,
		Variant:  s.Variant,
		Seed:     s.Seed,
		State:    s.game.Snapshot(),
		GameOver: s.game.Full(),
	}
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastActive = time.Now()
	s.mu.Unlock()
}

// close marks the session ended and returns its final state.
func (s *Session) close() GameView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return s.viewLocked()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastActive)
}

// SessionManager owns every live session.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	max      int
	scores   ScoreSaver
	logger   *log.Logger
	now      func() time.Time
}

// NewSessionManager creates a manager holding at most maxSessions sessions
// (0 means unlimited). scores may be nil.
func NewSessionManager(maxSessions int, scores ScoreSaver, logger *log.Logger) *SessionManager {
	if logger == nil {
		logger = log.Default()
	}
	return &SessionManager{
		sessions: make(map[string]*Session),
		max:      maxSessions,
		scores:   scores,
		logger:   logger,
		now:      time.Now,
	}
}

// Create starts a new session for the variant. A nil seed is drawn from
// the clock.
func (m *SessionManager) Create(variant string, seed *int64) (*Session, error) {
	if variant == "" {
		variant = strike5.VariantClassic
	}
	rules, err := strike5.RulesFor(variant, strike5.Settings().Rules)
	if err != nil {
		return nil, err
	}

	s := m.now().UnixNano()
	if seed != nil {
		s = *seed
	}
	game, err := engine.NewGame(rules, s)
	if err != nil {
		return nil, fmt.Errorf("web: cannot start game: %w", err)
	}

	now := m.now()
	sess := &Session{
		ID:         uuid.NewString(),
		Variant:    variant,
		Seed:       s,
		Created:    now,
		game:       game,
		lastActive: now,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.max > 0 && len(m.sessions) >= m.max {
		return nil, ErrTooManySessions
	}
	m.sessions[sess.ID] = sess

	m.logger.Info("session created", "id", sess.ID, "variant", variant, "seed", s)
	return sess, nil
}

// Get looks up a session and marks it active.
func (m *SessionManager) Get(id string) (*Session, error) {
	m.mu.RLock()
	sess, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.touch()
	return sess, nil
}

// Delete ends a session and records its score.
func (m *SessionManager) Delete(id string) error {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	m.record(sess, "closed")
	return nil
}

// Len returns the number of live sessions.
func (m *SessionManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Reap evicts sessions idle for at least timeout and returns how many
// were removed.
func (m *SessionManager) Reap(timeout time.Duration) int {
	now := m.now()

	m.mu.Lock()
	var idle []*Session
	for id, sess := range m.sessions {
		if sess.idleSince(now) >= timeout {
			idle = append(idle, sess)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, sess := range idle {
		m.record(sess, "idle")
	}
	return len(idle)
}

// StartReaper runs Reap every interval until ctx is done.
func (m *SessionManager) StartReaper(ctx context.Context, interval, timeout time.Duration) {
	if interval <= 0 || timeout <= 0 {
		m.logger.Warn("idle reaper disabled", "interval", interval, "timeout", timeout)
		return
	}

	m.logger.Info("idle reaper started", "interval", interval, "timeout", timeout)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				m.logger.Info("idle reaper stopping")
				return
			case <-ticker.C:
				if n := m.Reap(timeout); n > 0 {
					m.logger.Info("reaped idle sessions", "count", n, "live", m.Len())
				}
			}
		}
	}()
}

// record closes an ended session and saves its positive score.
func (m *SessionManager) record(sess *Session, reason string) {
	view := sess.close()
	m.logger.Info("session ended", "id", sess.ID, "reason", reason, "score", view.State.Score)
	if m.scores == nil || view.State.Score <= 0 {
		return
	}
	if _, err := m.scores.SaveScore(sess.Variant, view.State.Score, view.State.Moves); err != nil {
		m.logger.Error("cannot save score", "id", sess.ID, "err", err)
	}
}
