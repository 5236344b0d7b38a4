package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/use-agent/reviewui/ui"
)

// Session is one browser's page state: its document, event dispatcher and
// the controller bound to them.
type Session struct {
	ID         string
	Page       *ui.Page
	Dispatcher *ui.Dispatcher
	Controller *ui.Controller
}

// Factory builds the controller for a fresh page.
type Factory func(page *ui.Page) *ui.Controller

// Store keeps sessions in memory, bounded in size and evicted after ttl
// without use. It is safe for concurrent use.
type Store struct {
	lru     *expirable.LRU[string, *Session]
	factory Factory
}

// New creates a Store holding at most maxEntries sessions.
func New(maxEntries int, ttl time.Duration, factory Factory) *Store {
	if maxEntries <= 0 {
		maxEntries = 1
	}
	return &Store{
		lru:     expirable.NewLRU[string, *Session](maxEntries, nil, ttl),
		factory: factory,
	}
}

// Get returns the session for id, refreshing its position. The second
// result is false when the id is unknown or expired.
func (s *Store) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	sess, ok := s.lru.Get(id)
	if ok {
		// Re-adding resets the idle timer.
		s.lru.Add(id, sess)
	}
	return sess, ok
}

// Create starts a new session with a random id.
func (s *Store) Create() *Session {
	page := ui.NewPage()
	ctrl := s.factory(page)
	d := ui.NewDispatcher()
	ctrl.Bind(d)

	sess := &Session{
		ID:         uuid.NewString(),
		Page:       page,
		Dispatcher: d,
		Controller: ctrl,
	}
	s.lru.Add(sess.ID, sess)
	return sess
}

// GetOrCreate returns the session for id, creating one when it is missing.
func (s *Store) GetOrCreate(id string) (*Session, bool) {
	if sess, ok := s.Get(id); ok {
		return sess, false
	}
	return s.Create(), true
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	return s.lru.Len()
}
