package sink

import (
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Console writes events to stdout or stderr. Writes are serialized by a
// mutex so concurrent events never interleave. The color profile is
// detected once at construction; pair it with an ANSI encoder built for
// the same profile.
type Console struct {
	mu      sync.Mutex
	out     *os.File
	profile termenv.Profile
}

var _ Sink = (*Console)(nil)

// NewConsole builds a console sink on stdout, or on stderr when stderr is
// true.
func NewConsole(stderr bool) *Console {
	out := os.Stdout
	if stderr {
		out = os.Stderr
	}
	return &Console{out: out, profile: detectProfile(out)}
}

// detectProfile returns the color support of f: Ascii when f is not a
// terminal or NO_COLOR is set, otherwise whatever the environment
// advertises.
func detectProfile(f *os.File) termenv.Profile {
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return termenv.Ascii
	}
	if termenv.EnvNoColor() {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// Profile reports the detected color profile.
func (c *Console) Profile() termenv.Profile { return c.profile }

// Write writes one encoded event.
func (c *Console) Write(p []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := c.out.Write(p)
	return err
}

// Close is a no-op; the process owns stdout and stderr.
func (c *Console) Close() error { return nil }
