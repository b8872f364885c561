package ember

import (
	"bytes"
	"log"
	"os"
	"sync"
	"time"

	"github.com/emberlog/ember/core"
	"github.com/emberlog/ember/decor"
	"github.com/emberlog/ember/encode"
	"github.com/emberlog/ember/format"
	"github.com/emberlog/ember/ir"
	"github.com/emberlog/ember/layout"
	"github.com/emberlog/ember/sink"
)

// osExit is a variable to allow overriding os.Exit in tests
var osExit = os.Exit

// defaultWidth is the layout width when a destination does not set one.
const defaultWidth = 80

// Destination is one output of a Logger. The formatter builds the event's
// document, the decorators transform it, and the encoder serializes it for
// the sink. Width is the layout width for physical encoders; tree encoders
// ignore it.
type Destination struct {
	Formatter  format.Formatter
	Decorators []decor.Decorator
	Encoder    encode.Encoder
	Sink       sink.Sink
	Width      int
}

// Options configure a Logger.
type Options struct {
	// Level is the minimum level that gets logged.
	Level Level
	// Name is stamped on every event as the logger name.
	Name string
	// Origin records the file:line of the logging call on every event.
	Origin bool
	// Stack captures a call stack on events at ErrorLevel and above.
	Stack bool
	// Fields are prepended to the fields of every event.
	Fields []Field
}

// Logger fans events out to its destinations. Loggers are immutable: With
// and Named return copies sharing the destinations and the worker pool.
// All methods are safe for concurrent use.
type Logger struct {
	level  Level
	name   string
	origin bool
	stack  bool
	fields []Field
	dests  []Destination
	pool   *workerPool
}

// New builds a Logger. Each destination's decorators are composed once
// here, so per-event application is a plain loop in class order.
func New(opts Options, dests ...Destination) *Logger {
	for i := range dests {
		dests[i].Decorators = decor.Compose(dests[i].Decorators...)
		if dests[i].Width <= 0 {
			dests[i].Width = defaultWidth
		}
	}
	return &Logger{
		level:  opts.Level,
		name:   opts.Name,
		origin: opts.Origin,
		stack:  opts.Stack,
		fields: opts.Fields,
		dests:  dests,
		pool:   &workerPool{},
	}
}

// With returns a Logger that attaches fields to every event, ahead of the
// fields passed at the call site.
func (l *Logger) With(fields ...Field) *Logger {
	merged := make([]Field, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, fields...)
	clone := *l
	clone.fields = merged
	return &clone
}

// Named returns a Logger with a different name.
func (l *Logger) Named(name string) *Logger {
	clone := *l
	clone.name = name
	return &clone
}

// Log logs a message at the given level. Unlike Fatal it never exits.
func (l *Logger) Log(level Level, msg string, fields ...Field) {
	if level < l.level {
		return
	}
	l.log(level, msg, fields)
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, fields ...Field) {
	if core.DebugLevel < l.level {
		return
	}
	l.log(core.DebugLevel, msg, fields)
}

// Info logs an info message.
func (l *Logger) Info(msg string, fields ...Field) {
	if core.InfoLevel < l.level {
		return
	}
	l.log(core.InfoLevel, msg, fields)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, fields ...Field) {
	if core.WarnLevel < l.level {
		return
	}
	l.log(core.WarnLevel, msg, fields)
}

// Error logs an error message.
func (l *Logger) Error(msg string, fields ...Field) {
	if core.ErrorLevel < l.level {
		return
	}
	l.log(core.ErrorLevel, msg, fields)
}

// Fatal logs a fatal message and exits the program with os.Exit(1).
func (l *Logger) Fatal(msg string, fields ...Field) {
	l.log(core.FatalLevel, msg, fields)
	osExit(1)
}

// Close closes every destination sink. The first error wins.
func (l *Logger) Close() error {
	var first error
	for i := range l.dests {
		if err := l.dests[i].Sink.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (l *Logger) log(level Level, msg string, fields []Field) {
	ev := core.Event{
		Time:    time.Now(),
		Level:   level,
		Logger:  l.name,
		Message: msg,
	}
	ev.Fields = make([]core.Field, 0, len(l.fields)+len(fields))
	addFields(&ev, l.fields)
	addFields(&ev, fields)

	if l.origin {
		ev.Origin = core.CaptureOrigin(2)
	}
	if l.stack && level >= core.ErrorLevel {
		ev.Stack = core.CaptureStack(2)
	}

	w := l.pool.get()
	for i := range l.dests {
		l.emit(&l.dests[i], &ev, w)
	}
	l.pool.put(w)
}

// addFields copies fields onto the event, routing the first error-valued
// "error" field to ev.Err.
func addFields(ev *core.Event, fields []core.Field) {
	for _, f := range fields {
		if ev.Err == nil && f.Key == "error" {
			if err, ok := f.Value.(error); ok && err != nil {
				ev.Err = err
				continue
			}
		}
		ev.Fields = append(ev.Fields, f)
	}
}

// emit runs one event through one destination: checkout, format, decorate,
// encode, write, release. The document never escapes this call, so sinks
// always receive whole events.
func (l *Logger) emit(d *Destination, ev *core.Event, w *worker) {
	doc := w.arena.Document()
	defer w.arena.ReleaseDocument(doc)

	d.Formatter.Format(doc, ev, &w.arena)
	for _, dec := range d.Decorators {
		dec.Apply(doc, ev, &w.arena)
	}

	w.buf.Reset()
	if enc, ok := d.Encoder.(encode.TreeEncoder); ok && doc.HasTree() {
		if err := enc.EncodeTree(&w.buf, doc); err != nil {
			log.Printf("ember: encode tree: %v", err)
			return
		}
	} else {
		if err := d.Encoder.Encode(&w.buf, layout.Layout(doc, d.Width)); err != nil {
			log.Printf("ember: encode: %v", err)
			return
		}
	}
	if err := d.Sink.Write(w.buf.Bytes()); err != nil {
		log.Printf("ember: sink write failed: %v", err)
	}
}

// worker owns the scratch state for one in-flight event: a private node
// arena and an encode buffer. A worker serves one event at a time, which
// keeps its arena single-threaded.
type worker struct {
	arena ir.Arena
	buf   bytes.Buffer
}

// workerPool is a LIFO stack of idle workers guarded by one mutex. The
// most recently released worker is reused first, so its warm arena stays
// in play under steady load.
type workerPool struct {
	mu   sync.Mutex
	free []*worker
}

func (p *workerPool) get() *worker {
	p.mu.Lock()
	defer p.mu.Unlock()
	if n := len(p.free); n > 0 {
		w := p.free[n-1]
		p.free = p.free[:n-1]
		return w
	}
	return &worker{}
}

func (p *workerPool) put(w *worker) {
	p.mu.Lock()
	p.free = append(p.free, w)
	p.mu.Unlock()
}
