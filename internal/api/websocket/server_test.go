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

	"github.com/JaviLianes8/RealTajoFCBack/internal/league"
	"github.com/JaviLianes8/RealTajoFCBack/internal/publisher"
)

func waitForClients(t *testing.T, s *Server, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for s.hub.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, got %d", n, s.hub.ClientCount())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestEventsAreBroadcast(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewServer(nil)
	go s.Run(ctx)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	waitForClients(t, s, 1)

	event := publisher.NewEvent(publisher.TypeProcessed, league.KindCalendar, "current", map[string]any{"rounds": 18})
	if err := s.Publish(ctx, event); err != nil {
		t.Fatalf("publish: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got publisher.Event
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.ID != event.ID || got.Kind != league.KindCalendar || got.Type != publisher.TypeProcessed {
		t.Fatalf("unexpected event %+v", got)
	}

	conn.Close()
	waitForClients(t, s, 0)
}

func TestHealth(t *testing.T) {
	s := NewServer(nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Status  string `json:"status"`
		Clients int    `json:"clients"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "healthy" || body.Clients != 0 {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://realtajo.example"})
	cases := []struct {
		origin string
		want   bool
	}{
		{"", true},
		{"https://realtajo.example", true},
		{"https://elsewhere.example", false},
	}
	for _, tc := range cases {
		r := httptest.NewRequest(http.MethodGet, "/ws/events", nil)
		if tc.origin != "" {
			r.Header.Set("Origin", tc.origin)
		}
		if got := check(r); got != tc.want {
			t.Fatalf("origin %q: expected %v, got %v", tc.origin, tc.want, got)
		}
	}
	if !originChecker([]string{"*"})(httptest.NewRequest(http.MethodGet, "/", nil)) {
		t.Fatal("expected wildcard to accept")
	}
}
