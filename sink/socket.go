package sink

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Socket streams events over a websocket, one text message per event. The
// connection is dialed lazily on the first write and redialed once when a
// write fails, so a restarted collector costs one event at most.
type Socket struct {
	url    string
	dialer *websocket.Dialer

	mu     sync.Mutex
	conn   *websocket.Conn
	closed bool
}

var _ Sink = (*Socket)(nil)

// NewSocket builds a sink for the given ws:// or wss:// URL. No connection
// is made until the first write.
func NewSocket(url string) *Socket {
	return &Socket{url: url, dialer: websocket.DefaultDialer}
}

// Write sends one encoded event as a text message.
func (s *Socket) Write(p []byte) error {
	msg := bytes.TrimRight(p, "\n")

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if err := s.dialLocked(); err != nil {
		return err
	}
	if err := s.conn.WriteMessage(websocket.TextMessage, msg); err == nil {
		return nil
	}
	// stale connection; redial and retry once
	s.conn.Close()
	s.conn = nil
	if err := s.dialLocked(); err != nil {
		return err
	}
	if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
		s.conn.Close()
		s.conn = nil
		return fmt.Errorf("write event: %w", err)
	}
	return nil
}

// Close sends a close frame and drops the connection.
func (s *Socket) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.conn == nil {
		return nil
	}
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	deadline := time.Now().Add(time.Second)
	s.conn.WriteControl(websocket.CloseMessage, msg, deadline)
	err := s.conn.Close()
	s.conn = nil
	return err
}

func (s *Socket) dialLocked() error {
	if s.conn != nil {
		return nil
	}
	conn, resp, err := s.dialer.Dial(s.url, nil)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return fmt.Errorf("dial %s: %w", s.url, err)
	}
	s.conn = conn
	return nil
}
