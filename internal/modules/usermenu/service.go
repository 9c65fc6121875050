package usermenu

import (
	"context"
	"sync"

	"github.com/mwhitaker/blenny/internal/menu"
	"github.com/mwhitaker/blenny/internal/pubsub"
	"github.com/mwhitaker/blenny/internal/session"
)

// Controllers hands out one menu controller per browser session. Two tabs of
// the same session share a controller; two sessions of the same user do not.
type Controllers struct {
	mu        sync.Mutex
	bySession map[string]*menu.Controller

	sessions *session.Manager
}

// NewControllers creates an empty controller registry. The session manager
// supplies the logout effect each new controller is wired with.
func NewControllers(sessions *session.Manager) *Controllers {
	return &Controllers{
		bySession: make(map[string]*menu.Controller),
		sessions:  sessions,
	}
}

// For returns the controller owned by the given session, creating it on first
// use. The new controller's Logout row revokes that same session.
func (s *Controllers) For(sessionID string) *menu.Controller {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ctrl, ok := s.bySession[sessionID]; ok {
		return ctrl
	}

	ctrl := menu.NewController(s.sessions.LogoutEffect(sessionID))
	s.bySession[sessionID] = ctrl
	return ctrl
}

// Evict forgets a session's controller. Safe to call for sessions that never
// opened the menu.
func (s *Controllers) Evict(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bySession, sessionID)
}

// Count reports how many sessions currently hold a controller.
func (s *Controllers) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bySession)
}

// Watch evicts controllers as their sessions are revoked, so the registry
// doesn't accumulate state for dead sessions.
func (s *Controllers) Watch(ctx context.Context, sub pubsub.Subscriber) error {
	return pubsub.Subscribe(ctx, sub, session.TopicLoggedOut, func(ctx context.Context, ev session.LoggedOut) error {
		s.Evict(ev.SessionID)
		return nil
	})
}
