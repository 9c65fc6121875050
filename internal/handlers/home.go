package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mwhitaker/blenny/internal/middleware"
	"github.com/mwhitaker/blenny/internal/session"
	"github.com/mwhitaker/blenny/internal/view"
	"github.com/mwhitaker/blenny/web/src/templates/layouts"
	"github.com/mwhitaker/blenny/web/src/templates/pages"
)

// HomeHandler handles requests for the home page.
type HomeHandler struct {
	sessions *session.Manager
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(sessions *session.Manager) *HomeHandler {
	return &HomeHandler{sessions: sessions}
}

// HomeGet handles the GET request for the home page: the dashboard for a
// signed-in user, the landing page for everyone else. The route is public,
// so the session is resolved opportunistically rather than enforced.
func (h *HomeHandler) HomeGet(c echo.Context) error {
	flashes := view.GetFlashData(c)

	if sess := h.currentSession(c); sess != nil {
		content := pages.Home(sess.User, sess.CreatedAt)
		return c.Render(http.StatusOK, "", layouts.Base("Home", flashes, sess.User, content))
	}

	return c.Render(http.StatusOK, "", layouts.Base("Home", flashes, nil, pages.Landing()))
}

func (h *HomeHandler) currentSession(c echo.Context) *session.Session {
	cookie, err := c.Cookie(middleware.AuthCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	sess, err := h.sessions.Resolve(c.Request().Context(), cookie.Value)
	if err != nil {
		return nil
	}
	return sess
}
