package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/mwhitaker/blenny/internal/app"
	"github.com/mwhitaker/blenny/internal/config"
	"github.com/mwhitaker/blenny/internal/domain"
	"github.com/mwhitaker/blenny/internal/email"
	"github.com/mwhitaker/blenny/internal/hub"
	"github.com/mwhitaker/blenny/internal/middleware"
	"github.com/mwhitaker/blenny/internal/modules/usermenu"
	"github.com/mwhitaker/blenny/internal/pubsub"
	"github.com/mwhitaker/blenny/internal/registry"
	appsession "github.com/mwhitaker/blenny/internal/session"
)

// stubUserStore stands in for SurrealDB so the whole HTTP surface can be
// exercised in-process.
type stubUserStore struct{}

func (stubUserStore) SignUp(ctx context.Context, user *domain.User, password string) (string, error) {
	return "integration-token", nil
}

func (stubUserStore) SignIn(ctx context.Context, user *domain.User, password string) (string, error) {
	return "integration-token", nil
}

func (stubUserStore) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	name := "Ada Lovelace"
	recordID := surrealmodels.NewRecordID("user", "ada")
	return &domain.User{ID: &recordID, Email: "ada@example.com", Name: &name}, nil
}

func (stubUserStore) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, nil
}

type testConfig struct {
	cacheDir string
}

var _ config.Provider = (*testConfig)(nil)

func (c *testConfig) GetAddr() string           { return ":0" }
func (c *testConfig) GetAppBaseURL() string     { return "http://localhost" }
func (c *testConfig) GetSessionSecret() string  { return "integration-test-session-secret" }
func (c *testConfig) GetDBUrl() string          { return "" }
func (c *testConfig) GetDBNs() string           { return "test" }
func (c *testConfig) GetDBDb() string           { return "test" }
func (c *testConfig) GetDBUser() string         { return "" }
func (c *testConfig) GetDBPass() string         { return "" }
func (c *testConfig) GetLogFormat() string      { return "text" }
func (c *testConfig) GetAvatarCacheDir() string { return c.cacheDir }
func (c *testConfig) GetEmailProvider() string  { return "log" }
func (c *testConfig) GetEmailSender() string    { return "test@localhost" }
func (c *testConfig) GetEmailAPIKey() string    { return "" }

// newTestServer assembles a Server exactly the way New does, with the
// database swapped for a stub and the avatar cache pointed at a temp dir.
func newTestServer(t *testing.T) (*Server, *testConfig) {
	t.Helper()

	store := stubUserStore{}
	bridge := pubsub.NewWatermillBridge()
	t.Cleanup(func() { _ = bridge.Close() })
	sessionManager := appsession.NewManager(store, bridge)
	socketHub := hub.NewHub()

	cfg := &testConfig{cacheDir: t.TempDir()}

	s := &Server{
		E:         newEcho(cfg.GetSessionSecret()),
		Cfg:       cfg,
		userStore: store,
		sessions:  sessionManager,
		emailer:   &email.LogSender{},
		bridge:    bridge,
		socketHub: socketHub,
		modules: app.NewModules(app.Dependencies{
			Sessions:   sessionManager,
			Publisher:  bridge,
			Subscriber: bridge,
			Hub:        socketHub,
		}),
		registry:    registry.New(cfg),
		stopTracing: func() {},
	}
	s.RegisterRoutes()
	return s, cfg
}

// browse fires a request at the server, carrying the cookies collected so
// far, and folds any Set-Cookie responses back into the jar.
func browse(s *Server, jar map[string]*http.Cookie, method, target string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, cookie := range jar {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	s.E.ServeHTTP(rec, req)

	for _, cookie := range rec.Result().Cookies() {
		if cookie.MaxAge < 0 {
			delete(jar, cookie.Name)
			continue
		}
		jar[cookie.Name] = cookie
	}
	return rec
}

func TestSignInJourney(t *testing.T) {
	s, cfg := newTestServer(t)
	jar := map[string]*http.Cookie{}

	t.Run("visitors land on the public page", func(t *testing.T) {
		rec := browse(s, jar, http.MethodGet, "/", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `href="/auth/login"`)
	})

	t.Run("the app surface is closed to visitors", func(t *testing.T) {
		rec := browse(s, jar, http.MethodGet, "/app/menu", nil)
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/auth/login", rec.Header().Get("Location"))
	})

	t.Run("logging in opens the app surface", func(t *testing.T) {
		form := url.Values{}
		form.Set("email", "ada@example.com")
		form.Set("password", "password123")
		rec := browse(s, jar, http.MethodPost, "/auth/login", form)
		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Contains(t, jar, middleware.AuthCookieName)

		rec = browse(s, jar, http.MethodGet, "/", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Welcome, Ada Lovelace")

		rec = browse(s, jar, http.MethodGet, "/app/menu", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `id="user-menu-trigger"`)
	})

	t.Run("avatars render and land in the cache directory", func(t *testing.T) {
		rec := browse(s, jar, http.MethodGet, "/app/avatar.svg?size=64", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Body.String(), ">AL</text>")

		entries, err := os.ReadDir(cfg.cacheDir)
		require.NoError(t, err)
		assert.Len(t, entries, 1, "the rendered badge is cached on disk")
	})

	t.Run("logging out closes the app surface again", func(t *testing.T) {
		rec := browse(s, jar, http.MethodGet, "/auth/logout", nil)
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.NotContains(t, jar, middleware.AuthCookieName)
		assert.Equal(t, 0, s.sessions.Count())

		controllers := registry.MustGet(s.registry, usermenu.KeyControllers)
		assert.Eventually(t, func() bool {
			return controllers.Count() == 0
		}, 2*time.Second, 10*time.Millisecond, "the logged-out event evicts the session's menu controller")

		rec = browse(s, jar, http.MethodGet, "/app/menu", nil)
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/auth/login", rec.Header().Get("Location"))
	})
}

func TestHealthAndStaticAssets(t *testing.T) {
	s, _ := newTestServer(t)
	jar := map[string]*http.Cookie{}

	rec := browse(s, jar, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = browse(s, jar, http.MethodGet, "/static/css/app.css", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".menu-popup", "the embedded stylesheet is served")
}
