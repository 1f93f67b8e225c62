package auth

import (
	"strings"
	"sync"
)

type Token struct {
	Value string
}

// TokenStore encapsulates the named token map and its mutex.
type TokenStore struct {
	mu     sync.RWMutex
	byName map[string]Token
}

func (s *TokenStore) set(name, value string) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || value == "" {
		return
	}
	s.mu.Lock()
	s.byName[name] = Token{Value: value}
	s.mu.Unlock()
}

func (s *TokenStore) get(name string) (value string, ok bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	s.mu.RLock()
	tok, exists := s.byName[name]
	s.mu.RUnlock()
	if !exists {
		return "", false
	}
	return tok.Value, true
}

func (s *TokenStore) clear() {
	s.mu.Lock()
	s.byName = make(map[string]Token)
	s.mu.Unlock()
}

var defaultTokenStore = &TokenStore{byName: map[string]Token{}}

// SetToken stores a token value under a logical name.
func SetToken(name, value string) { defaultTokenStore.set(name, value) }

// GetToken returns the token stored under name, if any.
func GetToken(name string) (string, bool) { return defaultTokenStore.get(name) }

// ClearTokens drops all stored tokens. Used between test runs and on logout.
func ClearTokens() { defaultTokenStore.clear() }
