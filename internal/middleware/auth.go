package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mwhitaker/blenny/internal/session"
)

const (
	// UserContextKey is where the authenticated user is stored on the echo context.
	UserContextKey = "user"
	// SessionContextKey is where the resolved session is stored on the echo context.
	SessionContextKey = "user_session"
	// AuthCookieName is the cookie that carries the database session token.
	AuthCookieName = "auth_token"
)

// Auth creates a middleware that protects routes that require authentication.
// The token from the auth cookie must map to a live session in the manager;
// a revoked or unknown session sends the browser back to the login page.
func Auth(sessions *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// 1. Get the token from the cookie.
			cookie, err := c.Cookie(AuthCookieName)
			if err != nil || cookie.Value == "" {
				return c.Redirect(http.StatusSeeOther, "/auth/login")
			}

			// 2. Resolve the token to a live session with a fresh user.
			sess, err := sessions.Resolve(c.Request().Context(), cookie.Value)
			if err != nil {
				// The session was revoked or the token went stale. Clear the
				// dead cookie before redirecting.
				c.SetCookie(&http.Cookie{
					Name:   AuthCookieName,
					Value:  "",
					Path:   "/",
					MaxAge: -1,
				})
				return c.Redirect(http.StatusSeeOther, "/auth/login")
			}

			// 3. Store the session and user for downstream handlers.
			c.Set(UserContextKey, sess.User)
			c.Set(SessionContextKey, sess)

			return next(c)
		}
	}
}
