package sink

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	defaultBatchSize  = 16
	defaultFlushEvery = 2 * time.Second
	defaultTimeout    = 5 * time.Second
	defaultRetries    = 2
	defaultUserAgent  = "ember/0.1"

	retryBackoff = 250 * time.Millisecond
)

// HTTPOptions configure an HTTP sink. The zero value of every field selects
// a default.
type HTTPOptions struct {
	// URL is the collector endpoint, e.g. http://127.0.0.1:8080/logs.
	URL string
	// BatchSize is how many events trigger an immediate post.
	BatchSize int
	// FlushEvery is the cadence of the background flush of partial batches.
	FlushEvery time.Duration
	// Timeout bounds one POST.
	Timeout time.Duration
	// Retries is how many times a failed batch is re-posted before its
	// error is surfaced. Negative disables retries.
	Retries int
	// UserAgent overrides the request user agent.
	UserAgent string
}

func (o *HTTPOptions) fillDefaults() {
	if o.BatchSize <= 0 {
		o.BatchSize = defaultBatchSize
	}
	if o.FlushEvery <= 0 {
		o.FlushEvery = defaultFlushEvery
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.Retries == 0 {
		o.Retries = defaultRetries
	} else if o.Retries < 0 {
		o.Retries = 0
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUserAgent
	}
}

// HTTP batches encoded events and posts them to a collector as a JSON
// array, one array element per event. A full batch posts on the writer's
// goroutine; a background loop flushes partial batches on a fixed cadence;
// Close stops the loop and flushes what remains. Events are expected to
// already be JSON, the sink never inspects them.
type HTTP struct {
	opts   HTTPOptions
	client *http.Client

	mu      sync.Mutex
	pending [][]byte
	closed  bool

	cancel context.CancelFunc
	done   chan struct{}
}

var _ Sink = (*HTTP)(nil)

// NewHTTP builds the sink and starts its flush loop.
func NewHTTP(opts HTTPOptions) *HTTP {
	opts.fillDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	s := &HTTP{
		opts:   opts,
		client: &http.Client{Timeout: opts.Timeout},
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go s.flushLoop(ctx)
	return s
}

// Write queues one encoded event and posts the batch once it is full.
func (s *HTTP) Write(p []byte) error {
	entry := bytes.TrimSpace(p)
	buf := make([]byte, len(entry))
	copy(buf, entry)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.pending = append(s.pending, buf)
	var batch [][]byte
	if len(s.pending) >= s.opts.BatchSize {
		batch = s.take()
	}
	s.mu.Unlock()

	if batch == nil {
		return nil
	}
	return s.post(batch)
}

// Flush posts pending events immediately.
func (s *HTTP) Flush() error {
	s.mu.Lock()
	batch := s.take()
	s.mu.Unlock()
	if batch == nil {
		return nil
	}
	return s.post(batch)
}

// Close stops the flush loop, posts the remaining events, and rejects
// further writes.
func (s *HTTP) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	<-s.done
	return s.Flush()
}

// take moves the pending batch out. Callers must hold mu.
func (s *HTTP) take() [][]byte {
	if len(s.pending) == 0 {
		return nil
	}
	batch := s.pending
	s.pending = nil
	return batch
}

func (s *HTTP) flushLoop(ctx context.Context) {
	defer close(s.done)
	ticker := time.NewTicker(s.opts.FlushEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Flush(); err != nil {
				// the events of this batch are gone; later batches get a
				// fresh connection
				continue
			}
		}
	}
}

// post sends one batch, retrying with doubling backoff.
func (s *HTTP) post(batch [][]byte) error {
	var body bytes.Buffer
	body.WriteByte('[')
	for i, entry := range batch {
		if i > 0 {
			body.WriteByte(',')
		}
		body.Write(entry)
	}
	body.WriteByte(']')

	backoff := retryBackoff
	var lastErr error
	for attempt := 0; attempt <= s.opts.Retries; attempt++ {
		if attempt > 0 {
			time.Sleep(backoff)
			backoff *= 2
		}
		if lastErr = s.postOnce(body.Bytes()); lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("post batch of %d: %w", len(batch), lastErr)
}

func (s *HTTP) postOnce(body []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.opts.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", s.opts.UserAgent)
	req.Header.Set("X-Ember-Batch", uuid.NewString())

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("collector returned %s", resp.Status)
	}
	return nil
}
