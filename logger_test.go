package ember

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/muesli/termenv"

	"github.com/emberlog/ember/decor"
	"github.com/emberlog/ember/encode"
	"github.com/emberlog/ember/format"
	"github.com/emberlog/ember/textwidth"
)

// memorySink records every event written to it.
type memorySink struct {
	mu     sync.Mutex
	events []string
	closed bool
}

func (m *memorySink) Write(p []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, string(p))
	return nil
}

func (m *memorySink) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *memorySink) all() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.events...)
}

// plainDest builds an uncolored single-line destination for assertions.
func plainDest(m *memorySink) Destination {
	return Destination{
		Formatter: &format.Plain{},
		Encoder:   encode.NewANSI(termenv.Ascii),
		Sink:      m,
	}
}

func TestLoggerLevelGate(t *testing.T) {
	mem := &memorySink{}
	logger := New(Options{Level: WarnLevel}, plainDest(mem))

	logger.Debug("quiet")
	logger.Info("quiet")
	logger.Warn("loud")
	logger.Error("louder")

	events := mem.all()
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2: %q", len(events), events)
	}
	if !strings.Contains(events[0], "WARN") || !strings.Contains(events[0], "loud") {
		t.Fatalf("first event = %q", events[0])
	}
	if !strings.Contains(events[1], "ERROR") {
		t.Fatalf("second event = %q", events[1])
	}
}

func TestLoggerWritesNameAndFields(t *testing.T) {
	mem := &memorySink{}
	logger := New(Options{Level: InfoLevel, Name: "api"}, plainDest(mem))

	logger.Info("connection established", String("user", "ada"), Int("attempt", 3))

	events := mem.all()
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	out := events[0]
	if !strings.Contains(out, "api: connection established") {
		t.Fatalf("output = %q, want logger name before the message", out)
	}
	if !strings.Contains(out, "user=ada") || !strings.Contains(out, "attempt=3") {
		t.Fatalf("output = %q, want both fields", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Fatalf("output %q does not end with a newline", out)
	}
}

func TestLoggerWith(t *testing.T) {
	mem := &memorySink{}
	base := New(Options{Level: InfoLevel}, plainDest(mem))
	scoped := base.With(String("region", "eu"))

	scoped.Info("request", Int("n", 1))
	base.Info("request")

	events := mem.all()
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	first := events[0]
	if i, j := strings.Index(first, "region=eu"), strings.Index(first, "n=1"); i < 0 || j < 0 || i > j {
		t.Fatalf("scoped output = %q, want region=eu before n=1", first)
	}
	if strings.Contains(events[1], "region=eu") {
		t.Fatalf("base logger output %q inherited the scoped field", events[1])
	}
}

func TestLoggerNamed(t *testing.T) {
	mem := &memorySink{}
	logger := New(Options{Level: InfoLevel, Name: "api"}, plainDest(mem)).Named("api.auth")

	logger.Info("token issued")

	if out := mem.all()[0]; !strings.Contains(out, "api.auth: token issued") {
		t.Fatalf("output = %q", out)
	}
}

func TestLoggerRoutesErrField(t *testing.T) {
	mem := &memorySink{}
	logger := New(Options{Level: InfoLevel}, plainDest(mem))

	logger.Error("request failed", Err(errors.New("boom")), String("user", "ada"))

	out := mem.all()[0]
	if !strings.Contains(out, "error: boom") {
		t.Fatalf("output = %q, want an error block", out)
	}
	if strings.Contains(out, "error=") {
		t.Fatalf("output = %q, error leaked into the fields", out)
	}
	if !strings.Contains(out, "user=ada") {
		t.Fatalf("output = %q, remaining fields dropped", out)
	}
}

func TestLoggerOriginCapture(t *testing.T) {
	mem := &memorySink{}
	logger := New(Options{Level: InfoLevel, Origin: true}, plainDest(mem))

	logger.Info("here")

	if out := mem.all()[0]; !strings.Contains(out, "(logger_test.go:") {
		t.Fatalf("output = %q, want the call site", out)
	}
}

func TestLoggerStackCapture(t *testing.T) {
	mem := &memorySink{}
	logger := New(Options{Level: InfoLevel, Stack: true}, plainDest(mem))

	logger.Error("bad", Err(errors.New("boom")))
	logger.Info("fine")

	events := mem.all()
	if !strings.Contains(events[0], "at ") || !strings.Contains(events[0], "TestLoggerStackCapture") {
		t.Fatalf("error output = %q, want stack frames", events[0])
	}
	if strings.Contains(events[1], "at ") {
		t.Fatalf("info output = %q, stack captured below ErrorLevel", events[1])
	}
}

func TestLoggerFatal(t *testing.T) {
	exitCode := -1
	origExit := osExit
	osExit = func(code int) { exitCode = code }
	defer func() { osExit = origExit }()

	mem := &memorySink{}
	logger := New(Options{Level: InfoLevel}, plainDest(mem))
	logger.Fatal("goodbye")

	if exitCode != 1 {
		t.Fatalf("exit code = %d, want 1", exitCode)
	}
	if out := mem.all()[0]; !strings.Contains(out, "FATAL") || !strings.Contains(out, "goodbye") {
		t.Fatalf("output = %q", out)
	}
}

func TestLoggerTreeDestination(t *testing.T) {
	mem := &memorySink{}
	logger := New(Options{Level: InfoLevel, Name: "api"}, Destination{
		Formatter: format.JSONTree{},
		Encoder:   encode.JSON{},
		Sink:      mem,
	})

	logger.Info("hello", String("user", "ada"))

	out := mem.all()[0]
	if !json.Valid([]byte(out)) {
		t.Fatalf("output is not valid JSON: %q", out)
	}
	if !strings.HasPrefix(out, "{") {
		t.Fatalf("output = %q, want one JSON object", out)
	}
	for _, want := range []string{`"level":"INFO"`, `"logger":"api"`, `"msg":"hello"`, `"user":"ada"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("output = %q, missing %s", out, want)
		}
	}
}

func TestLoggerMultipleDestinations(t *testing.T) {
	text := &memorySink{}
	tree := &memorySink{}
	logger := New(Options{Level: InfoLevel},
		plainDest(text),
		Destination{Formatter: format.JSONTree{}, Encoder: encode.JSON{}, Sink: tree},
	)

	logger.Info("fan out")

	if got := text.all(); len(got) != 1 || !strings.Contains(got[0], "fan out") {
		t.Fatalf("text destination got %q", got)
	}
	if got := tree.all(); len(got) != 1 || !strings.Contains(got[0], `"msg":"fan out"`) {
		t.Fatalf("tree destination got %q", got)
	}
}

func TestLoggerPrettyWidth(t *testing.T) {
	mem := &memorySink{}
	logger := New(Options{Level: InfoLevel, Name: "api"}, Destination{
		Formatter:  &format.Pretty{},
		Decorators: []decor.Decorator{decor.GetTheme("ember-dark")},
		Encoder:    encode.NewANSI(termenv.Ascii),
		Sink:       mem,
		Width:      60,
	})

	logger.Info("connection established", String("user", "ada"))

	out := mem.all()[0]
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) < 3 {
		t.Fatalf("got %d lines, want a full card:\n%s", len(lines), out)
	}
	for i, line := range lines {
		if got := textwidth.Width(line); got != 60 {
			t.Fatalf("line %d width = %d, want 60: %q", i, got, line)
		}
	}
}

func TestLoggerConcurrentEvents(t *testing.T) {
	mem := &memorySink{}
	logger := New(Options{Level: InfoLevel}, plainDest(mem))

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				logger.Info("event", Int("worker", g), Int("n", i))
			}
		}(g)
	}
	wg.Wait()

	events := mem.all()
	if len(events) != 400 {
		t.Fatalf("got %d events, want 400", len(events))
	}
	for _, e := range events {
		if !strings.HasSuffix(e, "\n") || strings.Count(e, "\n") != 1 {
			t.Fatalf("event torn or unterminated: %q", e)
		}
		if !strings.Contains(e, "event") {
			t.Fatalf("garbled event: %q", e)
		}
	}
}

func TestLoggerClose(t *testing.T) {
	mem := &memorySink{}
	logger := New(Options{Level: InfoLevel}, plainDest(mem))

	if err := logger.Close(); err != nil {
		t.Fatal(err)
	}
	if !mem.closed {
		t.Fatal("sink not closed")
	}
}
