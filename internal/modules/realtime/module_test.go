package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/mwhitaker/blenny/internal/domain"
	"github.com/mwhitaker/blenny/internal/hub"
	"github.com/mwhitaker/blenny/internal/middleware"
	"github.com/mwhitaker/blenny/internal/pubsub"
	"github.com/mwhitaker/blenny/internal/registry"
	"github.com/mwhitaker/blenny/internal/session"
)

// fakeUserStore satisfies domain.UserRepository with canned responses.
type fakeUserStore struct {
	user *domain.User
}

func (f *fakeUserStore) SignUp(ctx context.Context, user *domain.User, password string) (string, error) {
	return "fake-token", nil
}

func (f *fakeUserStore) SignIn(ctx context.Context, user *domain.User, password string) (string, error) {
	return "fake-token", nil
}

func (f *fakeUserStore) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	return f.user, nil
}

func (f *fakeUserStore) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return f.user, nil
}

func testUser() *domain.User {
	name := "John Doe"
	id := surrealmodels.NewRecordID("user", "1")
	return &domain.User{ID: &id, Email: "john@example.com", Name: &name}
}

// setupRealtimeTest boots the module the way the server does and returns a
// running test server plus the pieces the tests drive directly.
func setupRealtimeTest(t *testing.T) (*httptest.Server, *session.Manager, *hub.Hub) {
	t.Helper()

	bridge := pubsub.NewWatermillBridge()
	t.Cleanup(func() { _ = bridge.Close() })

	sessions := session.NewManager(&fakeUserStore{user: testUser()}, bridge)
	h := hub.NewHub()

	e := echo.New()
	app := e.Group("/app", middleware.Auth(sessions))

	mod := New(Dependencies{Hub: h, Subscriber: bridge})
	require.NoError(t, mod.Boot(context.Background(), app, registry.New(nil)))

	server := httptest.NewServer(e)
	t.Cleanup(server.Close)

	return server, sessions, h
}

func dialWS(t *testing.T, server *httptest.Server, token string) *websocket.Conn {
	t.Helper()

	header := http.Header{}
	if token != "" {
		header.Add("Cookie", middleware.AuthCookieName+"="+token)
	}

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/app/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err, "Failed to connect to session websocket")
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func TestLogoutIsPushedToEverySocketOfTheSession(t *testing.T) {
	server, sessions, h := setupRealtimeTest(t)
	ctx := context.Background()

	revoked, err := sessions.Establish(ctx, testUser(), "revoked-token")
	require.NoError(t, err)
	_, err = sessions.Establish(ctx, testUser(), "survivor-token")
	require.NoError(t, err)

	tabOne := dialWS(t, server, "revoked-token")
	tabTwo := dialWS(t, server, "revoked-token")
	otherBrowser := dialWS(t, server, "survivor-token")

	require.Eventually(t, func() bool { return h.Count() == 3 }, 2*time.Second, 10*time.Millisecond)

	// The menu's logout effect boils down to this revocation.
	require.NoError(t, sessions.Revoke(ctx, revoked.ID))

	for _, conn := range []*websocket.Conn{tabOne, tabTwo} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err, "a revoked session's tab should receive the control frame")
		assert.Equal(t, LogoutMessage, string(msg))
	}

	// The revoked session's sockets are torn down after the push.
	assert.Eventually(t, func() bool { return h.Count() == 1 }, 2*time.Second, 10*time.Millisecond)

	// The other session must see nothing; its read times out.
	require.NoError(t, otherBrowser.SetReadDeadline(time.Now().Add(300*time.Millisecond)))
	_, _, err = otherBrowser.ReadMessage()
	require.Error(t, err)
	assert.True(t, os.IsTimeout(err), "the surviving session should receive no frames")
}

func TestServeWSRejectsAnonymousConnections(t *testing.T) {
	server, _, _ := setupRealtimeTest(t)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/app/ws"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)

	require.Error(t, err, "the handshake must not complete without a session")
	if resp != nil {
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	}
}

func TestDisconnectedSocketsAreForgotten(t *testing.T) {
	server, sessions, h := setupRealtimeTest(t)

	_, err := sessions.Establish(context.Background(), testUser(), "closing-token")
	require.NoError(t, err)

	conn := dialWS(t, server, "closing-token")
	require.Eventually(t, func() bool { return h.Count() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	require.NoError(t, conn.Close())

	assert.Eventually(t, func() bool { return h.Count() == 0 }, 2*time.Second, 10*time.Millisecond)
}
