package session

import (
	"sync"

	"github.com/labstack/gommon/log"

	"ivchonotes/cmd/internal/auth"
)

// Backend is the slice of the auth client the store consumes.
type Backend interface {
	Session() (*auth.Session, error)
	OnSessionChange(fn func(*auth.Session)) func()
}

// Store tracks the current authenticated session. It bootstraps once from
// the backend and then follows pushed change notifications until Close.
type Store struct {
	mu          sync.RWMutex
	backend     Backend
	current     *auth.Session
	loading     bool
	unsubscribe func()
}

func NewStore(backend Backend) *Store {
	return &Store{backend: backend, loading: true}
}

// Bootstrap performs the initial session lookup and subscribes to changes.
// Lookup failures are logged and treated as "no session" so callers are
// routed to sign-in instead of waiting on a loading state forever.
func (s *Store) Bootstrap() {
	sess, err := s.backend.Session()
	if err != nil {
		log.Errorf("failed to load session: %v", err)
		sess = nil
	}

	s.mu.Lock()
	s.current = sess
	s.loading = false
	s.mu.Unlock()

	s.mu.Lock()
	s.unsubscribe = s.backend.OnSessionChange(s.apply)
	s.mu.Unlock()
}

func (s *Store) apply(sess *auth.Session) {
	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()
}

func (s *Store) Current() *auth.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Close drops the change subscription.
func (s *Store) Close() {
	s.mu.Lock()
	unsub := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}
