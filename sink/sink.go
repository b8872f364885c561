package sink

import "errors"

// ErrClosed reports a write to a sink that has been closed.
var ErrClosed = errors.New("sink: closed")

// Sink is one destination for encoded events. Write receives the complete
// bytes of one event and must not retain p past the call; implementations
// keep one event's bytes together in a single underlying write. Close
// flushes buffered work and releases the destination.
type Sink interface {
	Write(p []byte) error
	Close() error
}
