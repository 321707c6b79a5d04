package channel

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// fakeBackend is a websocket endpoint that records the dial path and
// plays back canned frames.
type fakeBackend struct {
	upgrader websocket.Upgrader

	mu     sync.Mutex
	path   string
	query  string
	frames []string
	pings  int
}

func (b *fakeBackend) handler(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.path = r.URL.Path
	b.query = r.URL.RawQuery
	frames := b.frames
	b.mu.Unlock()

	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	for _, f := range frames {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(f)); err != nil {
			return
		}
	}

	// Drain inbound messages (heartbeats) until the client goes away.
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if string(data) == "ping" {
			b.mu.Lock()
			b.pings++
			b.mu.Unlock()
		}
	}
}

func startBackend(t *testing.T, frames ...string) (*fakeBackend, string) {
	t.Helper()
	backend := &fakeBackend{frames: frames}
	srv := httptest.NewServer(http.HandlerFunc(backend.handler))
	t.Cleanup(srv.Close)
	return backend, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestConnDeliversEnvelopesAndDropsMalformed(t *testing.T) {
	backend, wsURL := startBackend(t,
		`{"channel":"prices","data":{"mid":1.08}}`,
		`not json`,
		`{"data":{}}`,
		`{"channel":"prices","data":{"mid":1.09}}`,
	)

	var mu sync.Mutex
	var got []Envelope
	handler := func(env Envelope) {
		mu.Lock()
		got = append(got, env)
		mu.Unlock()
	}

	conn := NewConn(Config{
		WSURL: wsURL,
		Topic: "prices",
		Token: "tok123",
	}, handler, nil)
	defer conn.Close()

	if err := conn.Open(context.Background()); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if conn.State() != StateOpen {
		t.Errorf("State = %v, want open", conn.State())
	}

	waitFor(t, 2*time.Second, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 2
	})

	backend.mu.Lock()
	path, query := backend.path, backend.query
	backend.mu.Unlock()
	if path != "/ws/prices" {
		t.Errorf("dial path = %q, want /ws/prices", path)
	}
	if query != "token=tok123" {
		t.Errorf("dial query = %q, want token=tok123", query)
	}

	stats := conn.Stats()
	if stats.Delivered != 2 {
		t.Errorf("Delivered = %d, want 2", stats.Delivered)
	}
	if stats.Dropped != 2 {
		t.Errorf("Dropped = %d, want 2", stats.Dropped)
	}
}

func TestConnHeartbeat(t *testing.T) {
	backend, wsURL := startBackend(t)

	conn := NewConn(Config{
		WSURL:        wsURL,
		Topic:        "prices",
		Token:        "tok",
		PingInterval: 20 * time.Millisecond,
	}, func(Envelope) {}, nil)
	defer conn.Close()

	if err := conn.Open(context.Background()); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	waitFor(t, 2*time.Second, func() bool {
		backend.mu.Lock()
		defer backend.mu.Unlock()
		return backend.pings >= 2
	})
}

func TestConnOpenWithoutTokenIsNoop(t *testing.T) {
	conn := NewConn(Config{
		WSURL: "ws://127.0.0.1:1", // would fail if dialed
		Topic: "prices",
	}, func(Envelope) {}, nil)

	if err := conn.Open(context.Background()); err != nil {
		t.Fatalf("Open without token returned error: %v", err)
	}
	if conn.State() != StateClosed {
		t.Errorf("State = %v, want closed", conn.State())
	}
}

func TestConnCloseIsIdempotent(t *testing.T) {
	_, wsURL := startBackend(t)

	conn := NewConn(Config{WSURL: wsURL, Topic: "prices", Token: "tok"}, func(Envelope) {}, nil)
	if err := conn.Open(context.Background()); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if err := conn.Close(); err != nil {
		t.Errorf("first Close returned error: %v", err)
	}
	if err := conn.Close(); err != nil {
		t.Errorf("second Close returned error: %v", err)
	}
	if conn.State() != StateClosed {
		t.Errorf("State = %v, want closed", conn.State())
	}

	select {
	case <-conn.Done():
	default:
		t.Error("Done not closed after Close")
	}

	if err := conn.Open(context.Background()); err != ErrAlreadyClosed {
		t.Errorf("Open after Close = %v, want ErrAlreadyClosed", err)
	}
}

func TestConnRemoteTeardownClosesDone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		up := websocket.Upgrader{}
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conn.Close()
	}))
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")

	conn := NewConn(Config{WSURL: wsURL, Topic: "prices", Token: "tok"}, func(Envelope) {}, nil)
	if err := conn.Open(context.Background()); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	select {
	case <-conn.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Done not closed after remote teardown")
	}
	if conn.State() != StateClosed {
		t.Errorf("State = %v, want closed", conn.State())
	}
}
