package library

import (
	"sync"

	"github.com/google/uuid"
)

// SessionManager tracks live session tokens. Sessions are transient:
// a process restart logs everyone out. Each token belongs to exactly
// one client and resolves to exactly one username.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]string // token -> username
}

// NewSessionManager returns an empty session table.
func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: map[string]string{}}
}

// Issue creates a fresh token for the session's username.
func (m *SessionManager) Issue(s Session) string {
	token := uuid.NewString()
	m.mu.Lock()
	m.sessions[token] = s.Username
	m.mu.Unlock()
	return token
}

// Resolve maps a token back to its session. The second return is false
// for unknown or revoked tokens: the caller is anonymous and must be
// sent to the login entry point before any guarded operation runs.
func (m *SessionManager) Resolve(token string) (Session, bool) {
	m.mu.Lock()
	username, ok := m.sessions[token]
	m.mu.Unlock()
	if !ok {
		return Session{}, false
	}
	return Session{Username: username}, true
}

// Revoke tears down a session token. Unknown tokens are a no-op.
func (m *SessionManager) Revoke(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}
