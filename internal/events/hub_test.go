package events

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestHubBroadcastsSessionCreated(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer srv.Close()

	wsURL := strings.Replace(srv.URL, "http", "ws", 1)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial err: %v", err)
	}
	defer conn.Close()

	// Give the hub loop a moment to process the registration.
	time.Sleep(100 * time.Millisecond)

	sent := Event{
		Type:      EventSessionCreated,
		SessionID: "s1",
		PlayerID:  "P1",
		GameID:    "G1",
		StartedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Status:    "Active",
	}
	hub.Publish(sent)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read err: %v", err)
	}

	var got Event
	if err := json.Unmarshal(payload, &got); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if got.Type != EventSessionCreated || got.SessionID != "s1" {
		t.Fatalf("unexpected event: %+v", got)
	}
	if got.PlayerID != "P1" || got.GameID != "G1" {
		t.Fatalf("unexpected identity in event: %+v", got)
	}
}

func TestPublishWithoutSubscribersDoesNotBlock(t *testing.T) {
	hub := NewHub()

	// Nothing consumes the broadcast channel; Publish must still return.
	for i := 0; i < 200; i++ {
		hub.Publish(Event{Type: EventSessionCreated, SessionID: "s"})
	}
}

func TestNilHubPublishIsSafe(t *testing.T) {
	var hub *Hub
	hub.Publish(Event{Type: EventSessionCreated})
}
