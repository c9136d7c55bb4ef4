// Package session holds the bearer token for the current login.
package session

import (
	"strings"
	"sync"

	"golang.org/x/oauth2"
)

// Store holds at most one live token. It is safe for concurrent use:
// in-flight requests read it while a login writes it.
type Store struct {
	mu    sync.RWMutex
	token string
}

// Ensure Store can feed oauth2-aware transports.
var _ oauth2.TokenSource = (*Store)(nil)

// New creates an empty Store, optionally seeded with a token.
func New(token string) *Store {
	return &Store{token: token}
}

// Get returns the current token, or "" if unset.
func (s *Store) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Set replaces the current token.
func (s *Store) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Clear forgets the current token.
func (s *Store) Clear() {
	s.Set("")
}

// IsBlank reports whether no usable token is held.
func (s *Store) IsBlank() bool {
	return strings.TrimSpace(s.Get()) == ""
}

// Token implements oauth2.TokenSource. A blank store yields a token with an
// empty AccessToken rather than an error; requests then go out
// unauthenticated.
func (s *Store) Token() (*oauth2.Token, error) {
	return &oauth2.Token{AccessToken: strings.TrimSpace(s.Get())}, nil
}
