package sink

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// wsServer is a websocket collector for tests. Every upgraded connection
// feeds received messages and the terminating read error into channels.
type wsServer struct {
	srv      *httptest.Server
	messages chan string
	closes   chan error
	dials    int32
}

func newWSServer(t *testing.T) *wsServer {
	ws := &wsServer{
		messages: make(chan string, 16),
		closes:   make(chan error, 4),
	}
	upgrader := websocket.Upgrader{}
	ws.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&ws.dials, 1)
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				ws.closes <- err
				return
			}
			ws.messages <- string(msg)
		}
	}))
	t.Cleanup(ws.srv.Close)
	return ws
}

func (ws *wsServer) url() string {
	return "ws" + strings.TrimPrefix(ws.srv.URL, "http")
}

func (ws *wsServer) recv(t *testing.T) string {
	t.Helper()
	select {
	case msg := <-ws.messages:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a message")
		return ""
	}
}

func TestSocketWritesTextMessages(t *testing.T) {
	ws := newWSServer(t)

	s := NewSocket(ws.url())
	defer s.Close()

	if err := s.Write([]byte(`{"n":1}` + "\n")); err != nil {
		t.Fatal(err)
	}
	if err := s.Write([]byte(`{"n":2}` + "\n")); err != nil {
		t.Fatal(err)
	}

	if got := ws.recv(t); got != `{"n":1}` {
		t.Fatalf("first message = %q", got)
	}
	if got := ws.recv(t); got != `{"n":2}` {
		t.Fatalf("second message = %q", got)
	}
}

func TestSocketDialsLazily(t *testing.T) {
	ws := newWSServer(t)

	s := NewSocket(ws.url())
	defer s.Close()

	if got := atomic.LoadInt32(&ws.dials); got != 0 {
		t.Fatalf("dialed %d times before the first write", got)
	}
	if err := s.Write([]byte("hello")); err != nil {
		t.Fatal(err)
	}
	if got := atomic.LoadInt32(&ws.dials); got != 1 {
		t.Fatalf("dials after first write = %d, want 1", got)
	}
}

func TestSocketRedialsOnStaleConnection(t *testing.T) {
	ws := newWSServer(t)

	s := NewSocket(ws.url())
	defer s.Close()

	if err := s.Write([]byte("one")); err != nil {
		t.Fatal(err)
	}
	if got := ws.recv(t); got != "one" {
		t.Fatalf("first message = %q", got)
	}

	// Kill the client side so the next write fails and redials.
	s.mu.Lock()
	s.conn.Close()
	s.mu.Unlock()

	if err := s.Write([]byte("two")); err != nil {
		t.Fatalf("write after stale connection = %v", err)
	}
	if got := ws.recv(t); got != "two" {
		t.Fatalf("message after redial = %q", got)
	}
	if got := atomic.LoadInt32(&ws.dials); got != 2 {
		t.Fatalf("dials = %d, want 2", got)
	}
}

func TestSocketCloseSendsCloseFrame(t *testing.T) {
	ws := newWSServer(t)

	s := NewSocket(ws.url())
	if err := s.Write([]byte("bye")); err != nil {
		t.Fatal(err)
	}
	ws.recv(t)

	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	select {
	case err := <-ws.closes:
		if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
			t.Fatalf("server read ended with %v, want a normal close", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server never saw the connection end")
	}

	if err := s.Write([]byte("late")); err != ErrClosed {
		t.Fatalf("Write after Close = %v, want ErrClosed", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close = %v", err)
	}
}

func TestSocketDialFailure(t *testing.T) {
	ws := newWSServer(t)
	url := ws.url()
	ws.srv.Close()

	s := NewSocket(url)
	defer s.Close()

	if err := s.Write([]byte("nope")); err == nil {
		t.Fatal("write to a dead collector succeeded")
	}
}
