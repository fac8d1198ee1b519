package editor

import (
	"sync"
	"time"

	"github.com/inkwell-blog/inkwell/internal/model"
	"github.com/inkwell-blog/inkwell/internal/store"
)

// Manager keeps the live sessions, keyed by the id carried in the
// editor cookie. One session exists per open editor page; opening the
// editor again replaces the previous session for that cookie.
type Manager struct {
	store *store.PostStore
	opts  Options
	ttl   time.Duration

	mu       sync.Mutex
	sessions map[SessionID]*Session
}

func NewManager(postStore *store.PostStore, opts Options, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Manager{
		store:    postStore,
		opts:     opts,
		ttl:      ttl,
		sessions: make(map[SessionID]*Session),
	}
}

// Open starts a session for the given post id ("" for a new draft) and
// registers it. The previous session for the cookie, if any, is closed
// first: navigating into the editor ends the old editing context.
func (m *Manager) Open(postID model.PostID, previous SessionID) (*Session, error) {
	session, err := Open(m.store, postID, m.opts)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if prev, ok := m.sessions[previous]; ok {
		prev.Close()
		delete(m.sessions, previous)
	}
	m.evictLocked()

	m.sessions[session.ID] = session
	return session, nil
}

// Get returns the live session for the id, if any.
func (m *Manager) Get(id SessionID) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[id]
	return session, ok
}

// Close ends and forgets a session.
func (m *Manager) Close(id SessionID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if session, ok := m.sessions[id]; ok {
		session.Close()
		delete(m.sessions, id)
	}
}

// evictLocked drops sessions idle past the TTL. Abandoned editor tabs
// would otherwise pin their working copies forever.
func (m *Manager) evictLocked() {
	cutoff := m.opts.withDefaults().Now().Add(-m.ttl)
	for id, session := range m.sessions {
		if session.LastUsed().Before(cutoff) {
			session.Close()
			delete(m.sessions, id)
		}
	}
}
