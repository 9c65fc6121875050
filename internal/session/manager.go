package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mwhitaker/blenny/internal/domain"
	"github.com/mwhitaker/blenny/internal/pubsub"
)

// ErrNotFound is returned when no live session matches the presented token.
var ErrNotFound = errors.New("session not found")

// Session is one authenticated browser session. A user signing in from two
// browsers holds two sessions; revoking one leaves the other live.
type Session struct {
	ID        string
	Token     string
	User      *domain.User
	CreatedAt time.Time
}

// UserID returns the session owner's record ID as a string.
func (s *Session) UserID() string {
	if s == nil || s.User == nil || s.User.ID == nil {
		return ""
	}
	return s.User.ID.String()
}

// Manager is the registry of live sessions. It is authoritative for
// liveness: a revoked session stays dead even while its database token
// would still validate. The user store re-validates the token on each
// resolve so stale user data never leaks into handlers.
type Manager struct {
	mu      sync.RWMutex
	byID    map[string]*Session
	byToken map[string]string

	store     domain.UserRepository
	publisher pubsub.Publisher
}

// NewManager creates an empty session registry backed by the given user
// store and event publisher.
func NewManager(store domain.UserRepository, publisher pubsub.Publisher) *Manager {
	return &Manager{
		byID:      make(map[string]*Session),
		byToken:   make(map[string]string),
		store:     store,
		publisher: publisher,
	}
}

// Establish registers a new session for an authenticated user and publishes
// the logged-in event. The token is the database token the sign-in returned;
// it travels in the auth cookie and keys future resolves.
func (m *Manager) Establish(ctx context.Context, user *domain.User, token string) (*Session, error) {
	if user == nil {
		return nil, errors.New("cannot establish a session without a user")
	}
	if token == "" {
		return nil, errors.New("cannot establish a session without a token")
	}

	sess := &Session{
		ID:        uuid.NewString(),
		Token:     token,
		User:      user,
		CreatedAt: time.Now(),
	}

	m.mu.Lock()
	m.byID[sess.ID] = sess
	m.byToken[token] = sess.ID
	m.mu.Unlock()

	err := pubsub.Publish(ctx, m.publisher, TopicLoggedIn, LoggedIn{
		SessionID: sess.ID,
		UserID:    sess.UserID(),
		Email:     user.Email,
		Timestamp: sess.CreatedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		// The session is live either way; the event is advisory.
		slog.Error("Failed to publish logged-in event", "session_id", sess.ID, "error", err)
	}

	return m.snapshot(sess), nil
}

// Resolve maps an auth token to its live session, re-validating the token
// against the user store so the returned user is fresh. A token without a
// registry entry is dead regardless of what the database thinks of it.
func (m *Manager) Resolve(ctx context.Context, token string) (*Session, error) {
	m.mu.RLock()
	id, ok := m.byToken[token]
	var sess *Session
	if ok {
		sess = m.byID[id]
	}
	m.mu.RUnlock()

	if sess == nil {
		return nil, ErrNotFound
	}

	user, err := m.store.Authenticate(ctx, token)
	if err != nil {
		// The database no longer honors the token, so drop the session.
		if revokeErr := m.Revoke(ctx, sess.ID); revokeErr != nil {
			slog.Error("Failed to revoke session after stale token", "session_id", sess.ID, "error", revokeErr)
		}
		return nil, fmt.Errorf("re-validating session token: %w", err)
	}

	m.mu.Lock()
	sess.User = user
	snap := m.snapshotLocked(sess)
	m.mu.Unlock()

	return snap, nil
}

// Revoke removes the session and publishes the logged-out event. Revoking a
// session that is already gone is a no-op, so logout is idempotent.
func (m *Manager) Revoke(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	sess, ok := m.byID[sessionID]
	if ok {
		delete(m.byID, sessionID)
		delete(m.byToken, sess.Token)
	}
	m.mu.Unlock()

	if !ok {
		return nil
	}

	return pubsub.Publish(ctx, m.publisher, TopicLoggedOut, LoggedOut{
		SessionID: sess.ID,
		UserID:    sess.UserID(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// LogoutEffect returns the no-argument logout trigger for the given session.
// Menu controllers invoke it fire-and-forget; failures are logged, never
// surfaced to the caller.
func (m *Manager) LogoutEffect(sessionID string) func() {
	return func() {
		if err := m.Revoke(context.Background(), sessionID); err != nil {
			slog.Error("Failed to revoke session from logout effect", "session_id", sessionID, "error", err)
		}
	}
}

// Count reports the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byID)
}

func (m *Manager) snapshot(sess *Session) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked(sess)
}

// snapshotLocked copies the session so callers never share the registry's
// mutable struct. Callers must hold at least a read lock.
func (m *Manager) snapshotLocked(sess *Session) *Session {
	copied := *sess
	return &copied
}
