package preview

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/emberlog/ember/core"
)

// Events builds n sample events covering the shapes the pipeline has to
// survive: short info lines, errors with stacks, CJK and emoji widths, and
// messages long enough to wrap. Events in one batch share a trace id.
func Events(n int) []core.Event {
	if n <= 0 {
		n = 6
	}
	base := time.Date(2026, 2, 3, 15, 4, 5, 0, time.UTC)
	trace := uuid.NewString()

	events := make([]core.Event, 0, n)
	for i := 0; i < n; i++ {
		events = append(events, sampleEvent(i, base.Add(time.Duration(i)*700*time.Millisecond), trace))
	}
	return events
}

// sampleEvent builds the i-th sample event; the shapes repeat every six.
func sampleEvent(i int, at time.Time, trace string) core.Event {
	ev := core.Event{Time: at, Level: core.InfoLevel}
	switch i % 6 {
	case 0:
		ev.Logger = "api"
		ev.Message = "connection established"
		ev.Fields = []core.Field{
			core.String("user", "ada"),
			core.Int("attempt", i/6+1),
			core.String("trace", trace),
		}
	case 1:
		ev.Level = core.DebugLevel
		ev.Logger = "cache"
		ev.Message = "warmed 1024 entries"
		ev.Fields = []core.Field{
			core.Duration("took", 12500*time.Microsecond),
			core.Bool("cold_start", i == 1),
		}
	case 2:
		ev.Level = core.WarnLevel
		ev.Logger = "db"
		ev.Message = "查询延迟 above target 🐢"
		ev.Fields = []core.Field{
			core.Duration("latency", 870*time.Millisecond),
			core.Duration("target", 250*time.Millisecond),
		}
	case 3:
		ev.Level = core.ErrorLevel
		ev.Logger = "worker"
		ev.Message = "job failed, scheduling retry"
		ev.Err = errors.New("connection reset by peer")
		ev.Stack = core.CaptureStack(0)
		ev.Fields = []core.Field{
			core.String("job", uuid.NewString()),
			core.Int("retries_left", 2),
		}
	case 4:
		ev.Logger = "api"
		ev.Message = "request completed with a response body large enough that the message wraps under narrow widths and exercises continuation lines"
		ev.Fields = []core.Field{
			core.Int("status", 200),
			core.Duration("took", 152*time.Millisecond),
			core.String("trace", trace),
		}
	case 5:
		ev.Logger = "auth"
		ev.Message = "token issued"
		ev.Fields = []core.Field{
			core.String("user", "grace"),
			core.String("token", "eyJhbGciOi"),
		}
	}
	return ev
}
