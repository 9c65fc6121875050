package hub

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(id, sessionID, userID string) *Client {
	return &Client{
		ID:        id,
		SessionID: sessionID,
		UserID:    userID,
		Send:      make(chan []byte, 4),
	}
}

func drain(c *Client) [][]byte {
	var out [][]byte
	for {
		select {
		case msg := <-c.Send:
			out = append(out, msg)
		default:
			return out
		}
	}
}

func TestNotifySessionTargetsOnlyThatSession(t *testing.T) {
	h := NewHub()

	tabOne := newTestClient("c1", "sess-a", "user:jdoe")
	tabTwo := newTestClient("c2", "sess-a", "user:jdoe")
	otherBrowser := newTestClient("c3", "sess-b", "user:jdoe")
	otherUser := newTestClient("c4", "sess-c", "user:other")

	for _, c := range []*Client{tabOne, tabTwo, otherBrowser, otherUser} {
		h.Register(c)
	}
	require.Equal(t, 4, h.Count())

	h.NotifySession("sess-a", []byte("logged-out"))

	assert.Len(t, drain(tabOne), 1)
	assert.Len(t, drain(tabTwo), 1)
	assert.Empty(t, drain(otherBrowser), "a different session must not be notified")
	assert.Empty(t, drain(otherUser))
}

func TestNotifyUserSpansSessions(t *testing.T) {
	h := NewHub()

	home := newTestClient("c1", "sess-a", "user:jdoe")
	work := newTestClient("c2", "sess-b", "user:jdoe")
	stranger := newTestClient("c3", "sess-c", "user:other")

	for _, c := range []*Client{home, work, stranger} {
		h.Register(c)
	}

	h.NotifyUser("user:jdoe", []byte("ping"))

	assert.Len(t, drain(home), 1)
	assert.Len(t, drain(work), 1)
	assert.Empty(t, drain(stranger))
}

func TestBroadcastReachesEveryone(t *testing.T) {
	h := NewHub()

	a := newTestClient("c1", "sess-a", "user:jdoe")
	b := newTestClient("c2", "sess-b", "user:other")
	h.Register(a)
	h.Register(b)

	h.Broadcast([]byte("hello"))

	assert.Len(t, drain(a), 1)
	assert.Len(t, drain(b), 1)
}

func TestUnregisterClosesSendAndForgetsClient(t *testing.T) {
	h := NewHub()

	c := newTestClient("c1", "sess-a", "user:jdoe")
	h.Register(c)
	h.Unregister("c1")

	assert.Equal(t, 0, h.Count())

	_, open := <-c.Send
	assert.False(t, open, "send channel should be closed")

	// Notifying the dead session must not panic.
	h.NotifySession("sess-a", []byte("logged-out"))

	// Unknown IDs are ignored.
	h.Unregister("c1")
	h.Unregister("never-registered")
}

func TestDisconnectSessionFlushesQueuedMessages(t *testing.T) {
	h := NewHub()

	tabOne := newTestClient("c1", "sess-a", "user:jdoe")
	tabTwo := newTestClient("c2", "sess-a", "user:jdoe")
	survivor := newTestClient("c3", "sess-b", "user:jdoe")
	for _, c := range []*Client{tabOne, tabTwo, survivor} {
		h.Register(c)
	}

	h.NotifySession("sess-a", []byte("logged-out"))
	h.DisconnectSession("sess-a")

	assert.Equal(t, 1, h.Count())

	// The notification sent before the disconnect is still readable.
	msg, open := <-tabOne.Send
	assert.True(t, open)
	assert.Equal(t, "logged-out", string(msg))
	_, open = <-tabOne.Send
	assert.False(t, open, "the channel closes after draining")

	_, open = <-tabTwo.Send
	assert.True(t, open)

	assert.Empty(t, drain(survivor), "other sessions keep their connections")

	// Disconnecting a session with no clients is a no-op.
	h.DisconnectSession("sess-a")
	h.DisconnectSession("never-seen")
}

func TestSlowClientDoesNotBlock(t *testing.T) {
	h := NewHub()

	slow := &Client{ID: "c1", SessionID: "sess-a", Send: make(chan []byte)}
	h.Register(slow)

	// An unbuffered channel with no reader would block a naive hub.
	done := make(chan struct{})
	go func() {
		h.NotifySession("sess-a", []byte("msg"))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("NotifySession blocked on a slow client")
	}
}
