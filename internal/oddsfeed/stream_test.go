package oddsfeed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/yourusername/matchcast/internal/config"
)

func feedConfig(streamURL string) *config.OddsFeedConfig {
	return &config.OddsFeedConfig{
		StreamURL:            streamURL,
		APIKey:               "feed-key",
		ReconnectBaseSeconds: 1,
		ReconnectMaxSeconds:  4,
		PingIntervalSeconds:  30,
	}
}

func TestStreamDeliversTicksToHandlers(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()

		// Expect auth then subscribe, then push one tick
		var auth map[string]interface{}
		if err := conn.ReadJSON(&auth); err != nil {
			t.Errorf("read auth: %v", err)
			return
		}
		if auth["op"] != "auth" || auth["api_key"] != "feed-key" {
			t.Errorf("auth message = %v", auth)
		}

		var sub map[string]interface{}
		if err := conn.ReadJSON(&sub); err != nil {
			t.Errorf("read subscribe: %v", err)
			return
		}
		if sub["op"] != "subscribe" {
			t.Errorf("subscribe message = %v", sub)
		}

		conn.WriteJSON(map[string]interface{}{
			"op": "tick", "fixture_id": 1001,
			"home": 1.85, "draw": 3.4, "away": 4.2,
			"quoted_at_ms": time.Now().UnixMilli(),
		})

		// Hold the connection open until the client goes away
		conn.ReadMessage()
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	client := NewStreamClient(feedConfig(wsURL), quietLogger())

	received := make(chan TickMessage, 1)
	client.AddHandler(func(msg json.RawMessage) error {
		var tick TickMessage
		if err := json.Unmarshal(msg, &tick); err != nil {
			return err
		}
		if tick.Op == "tick" {
			received <- tick
		}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Run(ctx, []int64{1001})

	select {
	case tick := <-received:
		if tick.FixtureSourceID != 1001 || tick.Home != 1.85 {
			t.Errorf("tick = %+v", tick)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no tick received")
	}

	if !client.IsConnected() {
		t.Error("client should report connected")
	}
	if client.LastMessageTime().IsZero() {
		t.Error("last message time not recorded")
	}

	cancel()
	client.Close()
}

func TestStreamSubscribeWithoutConnection(t *testing.T) {
	client := NewStreamClient(feedConfig("ws://localhost:1"), quietLogger())

	if err := client.Subscribe([]int64{1}); err != ErrNotConnected {
		t.Errorf("error = %v, want ErrNotConnected", err)
	}
	if client.IsConnected() {
		t.Error("client should not report connected")
	}
}
