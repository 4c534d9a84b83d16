package httpapi

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/towerdef/internal/games/towerdefense/core"
)

// session is one fixed-step game. All engine access goes through mu.
type session struct {
	id       string
	created  time.Time
	lastUsed atomic.Int64 // Unix nanoseconds of the last request

	mu     sync.Mutex
	engine *core.Engine
	saved  bool // Whether the result of the current game has been stored
}

// stepOutcome is what a step reports back to the caller.
type stepOutcome struct {
	state    core.GameState
	towers   int  // Towers built this game
	finished bool // The step ended the game
}

// touch records a request against the session.
func (s *session) touch(now time.Time) {
	s.lastUsed.Store(now.UnixNano())
}

func (s *session) idleSince(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, s.lastUsed.Load()))
}

func (s *session) step(a core.Action) (stepOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.engine.Step(a); err != nil {
		return stepOutcome{}, err
	}
	state := s.engine.State()
	out := stepOutcome{state: state.Snapshot(), towers: s.engine.TowersBuilt()}
	if state.GameOver && !s.saved {
		s.saved = true
		out.finished = true
	}
	return out, nil
}

func (s *session) reset() core.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.engine.Reset()
	s.saved = false
	return s.engine.State().Snapshot()
}

func (s *session) snapshot() core.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.engine.State().Snapshot()
}

// sessionTable holds the live sessions keyed by id. Sessions idle for
// longer than ttl are dropped by sweep; a non-positive ttl keeps them.
type sessionTable struct {
	mu       sync.RWMutex
	sessions map[string]*session
	max      int
	ttl      time.Duration
	now      func() time.Time
}

func newSessionTable(max int, ttl time.Duration) *sessionTable {
	return &sessionTable{
		sessions: make(map[string]*session),
		max:      max,
		ttl:      ttl,
		now:      time.Now,
	}
}

// add registers a new session and returns it, or false when the table is
// still full after dropping idle sessions.
func (t *sessionTable) add(engine *core.Engine) (*session, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if t.max > 0 && len(t.sessions) >= t.max {
		t.sweepLocked(now)
		if len(t.sessions) >= t.max {
			return nil, false
		}
	}
	s := &session{
		id:      uuid.NewString(),
		created: now,
		engine:  engine,
	}
	s.touch(now)
	t.sessions[s.id] = s
	return s, true
}

// get returns the session and marks it as used.
func (t *sessionTable) get(id string) (*session, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s, ok := t.sessions[id]
	if ok {
		s.touch(t.now())
	}
	return s, ok
}

func (t *sessionTable) remove(id string) (*session, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.sessions[id]
	if ok {
		delete(t.sessions, id)
	}
	return s, ok
}

// sweep drops idle sessions and returns their ids.
func (t *sessionTable) sweep() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.sweepLocked(t.now())
}

func (t *sessionTable) sweepLocked(now time.Time) []string {
	if t.ttl <= 0 {
		return nil
	}
	var expired []string
	for id, s := range t.sessions {
		if s.idleSince(now) > t.ttl {
			delete(t.sessions, id)
			expired = append(expired, id)
		}
	}
	return expired
}

func (t *sessionTable) len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.sessions)
}
