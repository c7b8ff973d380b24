package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubDeliversToBatchSubscribers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	go hub.Run(ctx)

	r := gin.New()
	r.GET("/api/batches/:id/ws", hub.Handler())
	ts := httptest.NewServer(r)
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/batches/7/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Subscribers("7") == 1 }, time.Second, 10*time.Millisecond)

	hub.Publish(Event{EventType: "note_created", BatchID: "8", Data: "other batch"})
	hub.Publish(Event{EventType: "meet_created", BatchID: "7", Data: map[string]string{"title": "Revision"}})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &got))
	assert.Equal(t, "meet_created", got["event_type"])
	assert.Equal(t, "7", got["batch_id"])
}

func TestPublishOnNilHub(t *testing.T) {
	var hub *Hub
	assert.NotPanics(t, func() { hub.Publish(Event{EventType: "x"}) })
}

func TestHandlerReturnsAfterHubStops(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())

	hub := NewHub()
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	returned := make(chan struct{}, 2)
	r := gin.New()
	r.GET("/api/batches/:id/ws", func(c *gin.Context) {
		hub.Handler()(c)
		returned <- struct{}{}
	})
	ts := httptest.NewServer(r)
	defer ts.Close()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/batches/3/ws"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.Subscribers("3") == 1 }, time.Second, 10*time.Millisecond)

	cancel()
	<-stopped
	require.NoError(t, conn.Close())

	select {
	case <-returned:
	case <-time.After(2 * time.Second):
		t.Fatal("handler still blocked on the stopped hub")
	}

	late, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer late.Close()

	select {
	case <-returned:
	case <-time.After(2 * time.Second):
		t.Fatal("late subscriber blocked on the stopped hub")
	}
}
