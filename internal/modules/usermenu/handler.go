package usermenu

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mwhitaker/blenny/internal/menu"
	"github.com/mwhitaker/blenny/internal/middleware"
	"github.com/mwhitaker/blenny/internal/modules/usermenu/components"
	"github.com/mwhitaker/blenny/internal/session"
)

// Handler serves the menu region over HTMX. Every response re-renders the
// whole region from the controller's state, so the DOM can never disagree
// with the server about whether the menu is open.
type Handler struct {
	controllers *Controllers
}

// NewHandler creates the menu handler.
func NewHandler(controllers *Controllers) *Handler {
	return &Handler{controllers: controllers}
}

// MenuGet renders the region for the session's current state. The layout's
// mount issues this on page load.
func (h *Handler) MenuGet(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	return h.renderRegion(c, sess)
}

// MenuOpen anchors the menu to the trigger element named in the form and
// opens it. Opening an already open menu just re-anchors it.
func (h *Handler) MenuOpen(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	h.controllers.For(sess.ID).OpenAt(c.FormValue("anchor"))
	return h.renderRegion(c, sess)
}

// MenuClose closes the menu. Closing a closed menu is a no-op.
func (h *Handler) MenuClose(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	h.controllers.For(sess.ID).Close()
	return h.renderRegion(c, sess)
}

// MenuSelect dispatches a chosen row. Unknown labels and the disabled Profile
// row only close the menu. Logout revokes the session, so the response tells
// HTMX to navigate to the login page and drops the dead auth cookie.
func (h *Handler) MenuSelect(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	label := c.FormValue("label")
	h.controllers.For(sess.ID).SelectItem(label)

	if label == menu.ItemLogout {
		expireAuthCookie(c)
		c.Response().Header().Set("HX-Redirect", "/auth/login")
		return c.NoContent(http.StatusOK)
	}

	return h.renderRegion(c, sess)
}

func (h *Handler) renderRegion(c echo.Context, sess *session.Session) error {
	ctrl := h.controllers.For(sess.ID)
	name := sess.User.DisplayName()
	return c.Render(http.StatusOK, "", components.Region(name, ctrl.IsOpen(), ctrl.Anchor()))
}

// currentSession pulls the session the auth middleware resolved. The menu
// routes are mounted behind it, so a miss means a wiring mistake rather than
// an anonymous user.
func currentSession(c echo.Context) (*session.Session, error) {
	sess, ok := c.Get(middleware.SessionContextKey).(*session.Session)
	if !ok || sess == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "no active session")
	}
	return sess, nil
}

func expireAuthCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
