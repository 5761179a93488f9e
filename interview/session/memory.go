package session

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nedz/interviewbot/interview/questions"
)

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[int64]*Session

	locksMu sync.Mutex
	locks   map[int64]*sync.Mutex

	rnd RandomSource
	now func() time.Time
}

// NewMemoryStore constructs an in-memory Store. A nil rnd falls back to math/rand/v2.
func NewMemoryStore(rnd RandomSource) Store {
	if rnd == nil {
		rnd = RandomFunc(rand.IntN)
	}
	return &memoryStore{
		sessions: make(map[int64]*Session),
		locks:    make(map[int64]*sync.Mutex),
		rnd:      rnd,
		now:      time.Now,
	}
}

// GetState returns the user's state, or Pending if the user has no session.
func (m *memoryStore) GetState(userID int64) State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if sess, ok := m.sessions[userID]; ok {
		return sess.State
	}
	return Pending
}

// Start creates or overwrites the session with a fresh copy of the question list.
func (m *memoryStore) Start(userID int64, list questions.List) Session {
	sess := &Session{
		State:       Started,
		Remaining:   list.Items(),
		InterviewID: uuid.NewString(),
		StartedAt:   m.now(),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = sess
	return clone(sess)
}

// End moves the user back to Pending. The session row is kept.
func (m *memoryStore) End(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[userID]
	if !ok {
		sess = &Session{}
		m.sessions[userID] = sess
	}
	sess.State = Pending
}

// Draw removes and returns a uniformly random question from the user's pool.
func (m *memoryStore) Draw(userID int64) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[userID]
	if !ok || len(sess.Remaining) == 0 {
		return "", false
	}
	n := len(sess.Remaining)
	idx := m.rnd.IntN(n)
	if idx < 0 || idx >= n {
		idx = 0
	}
	q := sess.Remaining[idx]
	sess.Remaining[idx] = sess.Remaining[n-1]
	sess.Remaining[n-1] = ""
	sess.Remaining = sess.Remaining[:n-1]
	return q, true
}

// Remaining reports the size of the user's pool.
func (m *memoryStore) Remaining(userID int64) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if sess, ok := m.sessions[userID]; ok {
		return len(sess.Remaining)
	}
	return 0
}

// Snapshot returns a copy of the user's session.
func (m *memoryStore) Snapshot(userID int64) (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[userID]
	if !ok {
		return Session{State: Pending}, false
	}
	return clone(sess), true
}

// Stats counts known sessions and how many of them are started.
func (m *memoryStore) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st := Stats{Sessions: len(m.sessions)}
	for _, sess := range m.sessions {
		if sess.State == Started {
			st.Started++
		}
	}
	return st
}

// Lock acquires the per-user mutex.
func (m *memoryStore) Lock(userID int64) func() {
	m.locksMu.Lock()
	l, ok := m.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		m.locks[userID] = l
	}
	m.locksMu.Unlock()

	l.Lock()
	return l.Unlock
}

func clone(sess *Session) Session {
	out := *sess
	out.Remaining = append([]string(nil), sess.Remaining...)
	return out
}
