package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teammatch/internal/apptypes"
	"teammatch/internal/config"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func TestHub_DeliversOnlyToNotifiedUser(t *testing.T) {
	hub := startHub(t)
	alice := &Client{hub: hub, send: make(chan []byte, 4), UserID: 1}
	bob := &Client{hub: hub, send: make(chan []byte, 4), UserID: 2}
	hub.register <- alice
	hub.register <- bob

	require.NoError(t, hub.PublishFriendRequestEvent(context.Background(), apptypes.FriendRequestEvent{
		Type:          apptypes.FriendRequestCreated,
		RequestID:     7,
		SenderID:      1,
		ReceiverID:    2,
		NotifyUserID:  2,
		ActorUsername: "alice",
	}))

	select {
	case frame := <-bob.send:
		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(frame, &got))
		assert.Equal(t, "friend_request.created", got["type"])
		assert.Equal(t, "alice sent you a friend request", got["message"])
		assert.EqualValues(t, 7, got["requestId"])
	case <-time.After(time.Second):
		t.Fatal("bob received nothing")
	}

	select {
	case frame := <-alice.send:
		t.Fatalf("alice received %s", frame)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_ReconnectClosesPreviousClient(t *testing.T) {
	hub := startHub(t)
	first := &Client{hub: hub, send: make(chan []byte, 1), UserID: 1}
	second := &Client{hub: hub, send: make(chan []byte, 1), UserID: 1}
	hub.register <- first
	hub.register <- second

	_, ok := <-first.send
	assert.False(t, ok, "previous send channel closed")

	// Unregistering the stale client leaves the new one in place.
	hub.unregister <- first
	require.NoError(t, hub.PublishFriendRequestEvent(context.Background(), apptypes.FriendRequestEvent{NotifyUserID: 1}))
	select {
	case <-second.send:
	case <-time.After(time.Second):
		t.Fatal("current client received nothing")
	}
}

func TestHub_PublishWhenQueueFull(t *testing.T) {
	hub := NewHub() // not running
	for i := 0; i < cap(hub.events); i++ {
		require.NoError(t, hub.PublishFriendRequestEvent(context.Background(), apptypes.FriendRequestEvent{}))
	}
	assert.ErrorIs(t, hub.PublishFriendRequestEvent(context.Background(), apptypes.FriendRequestEvent{}), ErrHubBusy)
}

func TestServeWs_EndToEnd(t *testing.T) {
	hub := startHub(t)
	wsCfg := config.WebSocketConfig{
		WriteWaitSeconds:    5,
		PongWaitSeconds:     60,
		PingPeriodSeconds:   54,
		MaxMessageSizeBytes: 512,
	}
	registered := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeWs(hub, 9, w, r, wsCfg)
		close(registered)
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	select {
	case <-registered:
	case <-time.After(2 * time.Second):
		t.Fatal("socket never registered")
	}
	require.NoError(t, hub.PublishFriendRequestEvent(context.Background(), apptypes.FriendRequestEvent{
		Type:          apptypes.FriendRequestAccepted,
		NotifyUserID:  9,
		ActorUsername: "bob",
	}))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, frame, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(frame), "bob accepted your friend request")
}

func TestServeWs_AfterHubStopped(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	cancel()
	select {
	case <-hub.Done():
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}

	returned := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeWs(hub, 3, w, r, config.WebSocketConfig{WriteWaitSeconds: 1, PongWaitSeconds: 60, PingPeriodSeconds: 54, MaxMessageSizeBytes: 512})
		close(returned)
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	select {
	case <-returned:
	case <-time.After(2 * time.Second):
		t.Fatal("ServeWs blocked on a stopped hub")
	}

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
}

func TestReadPump_UnregisterAfterHubStopped(t *testing.T) {
	wsCfg := config.WebSocketConfig{WriteWaitSeconds: 1, PongWaitSeconds: 60, PingPeriodSeconds: 54, MaxMessageSizeBytes: 512}

	ctx, cancel := context.WithCancel(context.Background())
	stopped := NewHub()
	go stopped.Run(ctx)
	cancel()
	<-stopped.Done()

	pumpDone := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upgrader := websocket.Upgrader{}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		c := &Client{hub: stopped, conn: conn, send: make(chan []byte, 1), UserID: 4}
		go func() {
			c.readPump(wsCfg)
			close(pumpDone)
		}()
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	conn.Close()

	select {
	case <-pumpDone:
	case <-time.After(2 * time.Second):
		t.Fatal("readPump blocked unregistering from a stopped hub")
	}
}
