package api

import (
	"fmt"
	"sync"

	"golang.org/x/oauth2"

	"schedctl/internal/prefs"
)

// Session holds the current bearer credential and notifies subscribers on
// every change. The token is either absent or a non-empty opaque string;
// absence is authoritative for "logged out".
type Session struct {
	mu    sync.RWMutex
	token string
	store prefs.Store

	subMu sync.Mutex
	subs  map[int]chan struct{}
	next  int
}

// NewSession creates a Session seeded from the persisted token, if any.
func NewSession(store prefs.Store) *Session {
	s := &Session{store: store, subs: make(map[int]chan struct{})}
	if tok, ok := store.Get(prefs.KeyToken); ok && tok != "" {
		s.token = tok
	}
	return s
}

// Token returns the current credential and whether one is present.
func (s *Session) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// Authenticated reports whether a credential is present.
func (s *Session) Authenticated() bool {
	_, ok := s.Token()
	return ok
}

// TokenSource returns an [oauth2.TokenSource] for the current credential,
// or nil when logged out. A fresh source is built per call so it always
// reflects the token at the time of the request.
func (s *Session) TokenSource() oauth2.TokenSource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return nil
	}
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: s.token, TokenType: "Bearer"})
}

// Login stores the credential in the session and the persistent store.
// All future outbound requests through the session transport carry it.
func (s *Session) Login(token string) error {
	if token == "" {
		return fmt.Errorf("refusing to store an empty credential")
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	if err := s.store.Set(prefs.KeyToken, token); err != nil {
		return fmt.Errorf("failed to persist credential: %w", err)
	}

	s.notify()
	return nil
}

// Logout clears the credential from the session and the persistent store.
// In-flight requests are not cancelled; subsequent ones are sent
// unauthenticated.
func (s *Session) Logout() error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()

	if err := s.store.Delete(prefs.KeyToken); err != nil {
		return fmt.Errorf("failed to clear persisted credential: %w", err)
	}

	s.notify()
	return nil
}

// Subscribe registers for change notifications. The returned channel
// receives a signal after every Login/Logout; the returned func
// unregisters it. Notifications coalesce: a slow reader sees at least one
// signal for any burst of changes.
func (s *Session) Subscribe() (<-chan struct{}, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.next
	s.next++
	ch := make(chan struct{}, 1)
	s.subs[id] = ch

	return ch, func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Session) notify() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
