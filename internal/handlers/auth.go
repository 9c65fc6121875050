package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/mwhitaker/blenny/internal/domain"
	"github.com/mwhitaker/blenny/internal/middleware"
	appsession "github.com/mwhitaker/blenny/internal/session"
	"github.com/mwhitaker/blenny/internal/view"
	"github.com/mwhitaker/blenny/web/src/templates/layouts"
	"github.com/mwhitaker/blenny/web/src/templates/pages"
)

// AuthHandler handles authentication-related requests.
type AuthHandler struct {
	userStore domain.UserRepository
	sessions  *appsession.Manager
	emailer   domain.EmailSender
	baseURL   string
}

// NewAuthHandler creates a new AuthHandler. baseURL is the application's
// public address, used for links in outgoing mail.
func NewAuthHandler(userStore domain.UserRepository, sessions *appsession.Manager, emailer domain.EmailSender, baseURL string) *AuthHandler {
	return &AuthHandler{
		userStore: userStore,
		sessions:  sessions,
		emailer:   emailer,
		baseURL:   baseURL,
	}
}

// RegisterGetHandler renders the registration page (GET /auth/register).
// It retrieves flash messages and any pre-filled data from a failed POST.
func (h *AuthHandler) RegisterGetHandler(c echo.Context) error {
	email := consumeFormEmail(c)
	flashes := view.GetFlashData(c)

	return c.Render(http.StatusOK, "", layouts.Base("Register", flashes, nil, pages.Register(email)))
}

// RegisterPost handles the form submission for creating a new user.
func (h *AuthHandler) RegisterPost(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		view.SetFlashError(c, "Could not read the submitted form.")
		return c.Redirect(http.StatusSeeOther, "/auth/register")
	}
	if err := c.Validate(&req); err != nil {
		view.SetFlashError(c, validationMessage(err))
		keepFormEmail(c, req.Email)
		return c.Redirect(http.StatusSeeOther, "/auth/register")
	}

	newUser := &domain.User{Email: req.Email}
	if req.Name != "" {
		newUser.Name = &req.Name
	}

	token, err := h.userStore.SignUp(c.Request().Context(), newUser, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			view.SetFlashError(c, "A user with this email already exists.")
		} else {
			slog.Error("Error creating user", "error", err)
			view.SetFlashError(c, "Could not create your account.")
		}
		keepFormEmail(c, req.Email)
		return c.Redirect(http.StatusSeeOther, "/auth/register")
	}

	h.sendWelcomeEmail(newUser)

	if err := h.establishSession(c, token); err != nil {
		slog.Error("Failed to establish session after registration", "error", err)
		view.SetFlashSuccess(c, "Account created! Please sign in.")
		return c.Redirect(http.StatusSeeOther, "/auth/login")
	}

	view.SetFlashSuccess(c, "Account created successfully!")
	return c.Redirect(http.StatusSeeOther, "/")
}

// LoginGetHandler renders the login page (GET /auth/login).
func (h *AuthHandler) LoginGetHandler(c echo.Context) error {
	email := consumeFormEmail(c)
	flashes := view.GetFlashData(c)

	return c.Render(http.StatusOK, "", layouts.Base("Login", flashes, nil, pages.Login(email)))
}

// LoginPost handles the form submission for logging in a user.
func (h *AuthHandler) LoginPost(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		view.SetFlashError(c, "Could not read the submitted form.")
		return c.Redirect(http.StatusSeeOther, "/auth/login")
	}
	if err := c.Validate(&req); err != nil {
		view.SetFlashError(c, validationMessage(err))
		keepFormEmail(c, req.Email)
		return c.Redirect(http.StatusSeeOther, "/auth/login")
	}

	user := &domain.User{Email: req.Email}
	token, err := h.userStore.SignIn(c.Request().Context(), user, req.Password)
	if err != nil {
		middleware.FromContext(c.Request().Context()).Warn("Failed login attempt", "email", req.Email, "error", err)
		view.SetFlashError(c, "Invalid email or password.")
		keepFormEmail(c, req.Email)
		return c.Redirect(http.StatusSeeOther, "/auth/login")
	}

	if err := h.establishSession(c, token); err != nil {
		slog.Error("Failed to establish session after login", "error", err)
		view.SetFlashError(c, "Could not start your session. Please try again.")
		return c.Redirect(http.StatusSeeOther, "/auth/login")
	}

	view.SetFlashSuccess(c, "Logged in successfully!")
	return c.Redirect(http.StatusSeeOther, "/")
}

// Logout revokes the caller's session and clears the auth cookie
// (GET /auth/logout). The route is public so a half-dead session can still
// log out cleanly.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.AuthCookieName); err == nil && cookie.Value != "" {
		if sess, err := h.sessions.Resolve(c.Request().Context(), cookie.Value); err == nil {
			if err := h.sessions.Revoke(c.Request().Context(), sess.ID); err != nil {
				slog.Error("Failed to revoke session on logout", "session_id", sess.ID, "error", err)
			}
		}
	}

	setAuthCookie(c, "")
	view.SetFlashSuccess(c, "You have been logged out.")
	return c.Redirect(http.StatusSeeOther, "/auth/login")
}

// sendWelcomeEmail greets a freshly registered user. Delivery problems are
// logged and swallowed; registration must not fail over mail.
func (h *AuthHandler) sendWelcomeEmail(user *domain.User) {
	greeting := user.Email
	if user.Name != nil && *user.Name != "" {
		greeting = *user.Name
	}

	body := "<p>Hi " + greeting + ",</p>" +
		"<p>your account is ready. <a href=\"" + h.baseURL + "/auth/login\">Sign in</a> " +
		"and open the menu behind your avatar to get around.</p>"
	if err := h.emailer.Send(user.Email, "Welcome to Blenny", body); err != nil {
		slog.Warn("Failed to send welcome email", "email", user.Email, "error", err)
	}
}

// establishSession resolves the freshly issued token to its account, records
// the session in the manager and hands the token to the browser.
func (h *AuthHandler) establishSession(c echo.Context, token string) error {
	user, err := h.userStore.Authenticate(c.Request().Context(), token)
	if err != nil {
		return err
	}
	if _, err := h.sessions.Establish(c.Request().Context(), user, token); err != nil {
		return err
	}

	setAuthCookie(c, token)
	return nil
}

// consumeFormEmail pops the email a failed POST preserved for the next form
// render. Reading a flash mutates the session, so it must be saved.
func consumeFormEmail(c echo.Context) string {
	sess, err := session.Get("flash-session", c)
	if err != nil {
		return ""
	}

	var email string
	if flashes := sess.Flashes("form_email"); len(flashes) > 0 {
		if val, ok := flashes[0].(string); ok {
			email = val
		}
	}
	_ = sess.Save(c.Request(), c.Response())
	return email
}

// keepFormEmail preserves the submitted email address for the next render of
// the form, so the user only has to fix what was wrong.
func keepFormEmail(c echo.Context, email string) {
	if email == "" {
		return
	}
	sess, err := session.Get("flash-session", c)
	if err != nil {
		return
	}
	sess.AddFlash(email, "form_email")
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		slog.Error("Failed to save session", "error", err)
	}
}

// setAuthCookie is a helper function to create and set the authentication cookie.
func setAuthCookie(c echo.Context, token string) {
	cookie := new(http.Cookie)
	cookie.Name = middleware.AuthCookieName
	cookie.Value = token
	cookie.Path = "/"
	if token == "" {
		// An empty token means logout; expire the cookie immediately.
		cookie.MaxAge = -1
	} else {
		cookie.Expires = time.Now().UTC().Add(24 * time.Hour)
	}
	// HttpOnly keeps client-side JavaScript away from the token.
	cookie.HttpOnly = true
	// The TLS check makes Secure work in production and local development alike.
	cookie.Secure = c.Request().TLS != nil
	cookie.SameSite = http.SameSiteLaxMode
	c.SetCookie(cookie)
}
