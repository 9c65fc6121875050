package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/mwhitaker/blenny/internal/domain"
	"github.com/mwhitaker/blenny/internal/handlers"
	"github.com/mwhitaker/blenny/internal/middleware"
	"github.com/mwhitaker/blenny/internal/pubsub"
	"github.com/mwhitaker/blenny/internal/rendering"
	appsession "github.com/mwhitaker/blenny/internal/session"
)

const testSessionSecret = "a-very-secret-key-for-testing-!"

// MockUserStore provides a mock implementation of the user repository.
type MockUserStore struct {
	signUpErr error
	signInErr error
}

func (m *MockUserStore) SignUp(ctx context.Context, user *domain.User, password string) (string, error) {
	if m.signUpErr != nil {
		return "", m.signUpErr
	}
	return "test-token", nil
}

func (m *MockUserStore) SignIn(ctx context.Context, user *domain.User, password string) (string, error) {
	if m.signInErr != nil {
		return "", m.signInErr
	}
	return "test-token", nil
}

func (m *MockUserStore) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	name := "Test User"
	recordID := surrealmodels.NewRecordID("user", "1")
	return &domain.User{ID: &recordID, Email: "test@example.com", Name: &name}, nil
}

func (m *MockUserStore) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, nil
}

// fakeEmailer records outbound mail instead of sending it.
type fakeEmailer struct {
	sent []string
}

func (f *fakeEmailer) Send(to, subject, htmlBody string) error {
	f.sent = append(f.sent, to+": "+subject)
	return nil
}

func setupAuthTest(t *testing.T, store *MockUserStore) (*echo.Echo, *appsession.Manager, *fakeEmailer) {
	t.Helper()

	bridge := pubsub.NewWatermillBridge()
	t.Cleanup(func() { _ = bridge.Close() })
	manager := appsession.NewManager(store, bridge)

	emailer := &fakeEmailer{}
	authHandler := handlers.NewAuthHandler(store, manager, emailer, "http://localhost:8080")

	e := echo.New()
	e.Validator = handlers.NewValidator()
	e.Renderer = rendering.NewUniversalRenderer()

	// Setup session middleware for flash messages
	cookieStore := sessions.NewCookieStore([]byte(testSessionSecret))
	e.Use(session.Middleware(cookieStore))

	e.GET("/auth/register", authHandler.RegisterGetHandler)
	e.POST("/auth/register", authHandler.RegisterPost)
	e.GET("/auth/login", authHandler.LoginGetHandler)
	e.POST("/auth/login", authHandler.LoginPost)
	e.GET("/auth/logout", authHandler.Logout)

	return e, manager, emailer
}

// assertFlashMessage checks for a specific flash message in the session.
// gorilla's per-request registry keeps the handler's session object alive on
// the request, so the flash it queued is still readable here.
func assertFlashMessage(t *testing.T, req *http.Request, key, expectedMessage string) {
	t.Helper()

	cookieStore := sessions.NewCookieStore([]byte(testSessionSecret))
	sess, _ := cookieStore.Get(req, "flash-session")

	flashes := sess.Flashes(key)
	assert.NotEmpty(t, flashes, "expected flash message but found none for key: %s", key)
	assert.Equal(t, expectedMessage, flashes[0])
}

func postForm(e *echo.Echo, path string, form url.Values) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return req, rec
}

func authCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.AuthCookieName {
			return cookie
		}
	}
	return nil
}

func TestRegisterPost(t *testing.T) {
	t.Run("creates the account and starts a session", func(t *testing.T) {
		e, manager, emailer := setupAuthTest(t, &MockUserStore{})

		form := url.Values{}
		form.Set("email", "test@example.com")
		form.Set("password", "password123")
		form.Set("password_confirm", "password123")

		req, rec := postForm(e, "/auth/register", form)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
		assertFlashMessage(t, req, "success", "Account created successfully!")

		cookie := authCookie(t, rec)
		require.NotNil(t, cookie, "registration should hand the browser the auth token")
		assert.Equal(t, "test-token", cookie.Value)
		assert.Equal(t, 1, manager.Count(), "registration establishes a live session")
		assert.Equal(t, []string{"test@example.com: Welcome to Blenny"}, emailer.sent)
	})

	t.Run("sets error flash on password mismatch", func(t *testing.T) {
		e, manager, emailer := setupAuthTest(t, &MockUserStore{})

		form := url.Values{}
		form.Set("email", "test2@example.com")
		form.Set("password", "password123")
		form.Set("password_confirm", "wrongpassword")

		req, rec := postForm(e, "/auth/register", form)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/auth/register", rec.Header().Get("Location"))
		assertFlashMessage(t, req, "error", "Passwords do not match.")
		assert.Equal(t, 0, manager.Count())
		assert.Empty(t, emailer.sent, "no welcome email for a rejected registration")
	})

	t.Run("sets error flash on short password", func(t *testing.T) {
		e, _, _ := setupAuthTest(t, &MockUserStore{})

		form := url.Values{}
		form.Set("email", "test3@example.com")
		form.Set("password", "short")
		form.Set("password_confirm", "short")

		req, rec := postForm(e, "/auth/register", form)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assertFlashMessage(t, req, "error", "Password must be at least 8 characters long.")
	})

	t.Run("sets error flash on invalid email", func(t *testing.T) {
		e, _, _ := setupAuthTest(t, &MockUserStore{})

		form := url.Values{}
		form.Set("email", "not-an-email")
		form.Set("password", "password123")
		form.Set("password_confirm", "password123")

		req, rec := postForm(e, "/auth/register", form)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assertFlashMessage(t, req, "error", "A valid email address is required.")
	})

	t.Run("sets error flash when the email is taken", func(t *testing.T) {
		e, _, emailer := setupAuthTest(t, &MockUserStore{signUpErr: domain.ErrUserAlreadyExists})

		form := url.Values{}
		form.Set("email", "taken@example.com")
		form.Set("password", "password123")
		form.Set("password_confirm", "password123")

		req, rec := postForm(e, "/auth/register", form)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assertFlashMessage(t, req, "error", "A user with this email already exists.")
		assert.Empty(t, emailer.sent)
	})
}

func TestLoginPost(t *testing.T) {
	t.Run("signs in and starts a session", func(t *testing.T) {
		e, manager, _ := setupAuthTest(t, &MockUserStore{})

		form := url.Values{}
		form.Set("email", "test@example.com")
		form.Set("password", "password123")

		req, rec := postForm(e, "/auth/login", form)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
		assertFlashMessage(t, req, "success", "Logged in successfully!")

		cookie := authCookie(t, rec)
		require.NotNil(t, cookie)
		assert.Equal(t, "test-token", cookie.Value)
		assert.Equal(t, 1, manager.Count())
	})

	t.Run("rejects bad credentials and keeps the email", func(t *testing.T) {
		e, manager, _ := setupAuthTest(t, &MockUserStore{signInErr: domain.ErrInvalidCredentials})

		form := url.Values{}
		form.Set("email", "bob@example.com")
		form.Set("password", "password123")

		req, rec := postForm(e, "/auth/login", form)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/auth/login", rec.Header().Get("Location"))
		assertFlashMessage(t, req, "error", "Invalid email or password.")
		assertFlashMessage(t, req, "form_email", "bob@example.com")
		assert.Equal(t, 0, manager.Count())
	})
}

func TestLoginGetPrefillsEmailAfterFailure(t *testing.T) {
	e, _, _ := setupAuthTest(t, &MockUserStore{signInErr: domain.ErrInvalidCredentials})

	form := url.Values{}
	form.Set("email", "bob@example.com")
	form.Set("password", "password123")
	_, rec := postForm(e, "/auth/login", form)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	// Follow the redirect, carrying the cookies like a browser would: the
	// failed POST saves the flash session more than once, and only the last
	// Set-Cookie per name survives in a real jar.
	jar := map[string]*http.Cookie{}
	for _, cookie := range rec.Result().Cookies() {
		jar[cookie.Name] = cookie
	}
	req := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
	for _, cookie := range jar {
		req.AddCookie(cookie)
	}
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="bob@example.com"`, "the failed email is replayed into the form")
	assert.Contains(t, rec.Body.String(), "Invalid email or password.")
}

func TestLogout(t *testing.T) {
	store := &MockUserStore{}
	e, manager, _ := setupAuthTest(t, store)

	user, err := store.Authenticate(context.Background(), "test-token")
	require.NoError(t, err)
	_, err = manager.Establish(context.Background(), user, "test-token")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.AuthCookieName, Value: "test-token", Path: "/"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/auth/login", rec.Header().Get("Location"))

	cookie := authCookie(t, rec)
	require.NotNil(t, cookie, "logout must expire the auth cookie")
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)

	assert.Equal(t, 0, manager.Count(), "logout revokes the session")
}
