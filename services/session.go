// ABOUTME: Login session service for the audit API
// ABOUTME: Issues opaque session tokens and stores session state in the cache

package services

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/ecg-energy/audit-analyzer/cache"
	"github.com/ecg-energy/audit-analyzer/models"
)

// ErrSessionNotFound is returned for unknown or expired session tokens
var ErrSessionNotFound = errors.New("session not found")

// SessionService manages server-side authentication sessions
type SessionService struct {
	cache *cache.Cache[*models.Session]
	ttl   time.Duration
	now   func() time.Time
}

// NewSessionService creates a session service whose sessions live for ttl
func NewSessionService(c *cache.Cache[*models.Session], ttl time.Duration) *SessionService {
	return &SessionService{cache: c, ttl: ttl, now: time.Now}
}

// Create starts a session for the user and returns its token.
// The token is 32 bytes from crypto/rand, URL-safe base64 encoded.
func (s *SessionService) Create(user models.User) (string, error) {
	idBytes := make([]byte, 32)
	if _, err := rand.Read(idBytes); err != nil {
		return "", err
	}
	sessionID := base64.URLEncoding.EncodeToString(idBytes)

	now := s.now()
	session := &models.Session{
		ID:        sessionID,
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	s.cache.SetWithTTL(sessionKey(sessionID), session, s.ttl)

	return sessionID, nil
}

// Get retrieves a session by token
func (s *SessionService) Get(sessionID string) (*models.Session, error) {
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}
	session, ok := s.cache.Get(sessionKey(sessionID))
	if !ok || session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Delete ends a session
func (s *SessionService) Delete(sessionID string) {
	s.cache.Clear(sessionKey(sessionID))
}

// RevokeUser ends every session of a user, e.g. after a role change or deletion.
// Returns the number of sessions removed.
func (s *SessionService) RevokeUser(userID string) int {
	return s.cache.ClearMatching("session:", func(sess *models.Session) bool {
		return sess != nil && sess.UserID == userID
	})
}

// TTL returns the session lifetime
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// sessionKey returns the cache key for a session ID
func sessionKey(sessionID string) string {
	return "session:" + sessionID
}
