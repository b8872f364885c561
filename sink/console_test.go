package sink

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/muesli/termenv"
)

func TestDetectProfileNonTerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if got := detectProfile(f); got != termenv.Ascii {
		t.Fatalf("profile for a plain file = %v, want Ascii", got)
	}
}

func TestConsoleWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	c := &Console{out: f, profile: termenv.Ascii}
	if err := c.Write([]byte("hello\n")); err != nil {
		t.Fatal(err)
	}
	if err := c.Write([]byte("again\n")); err != nil {
		t.Fatal(err)
	}
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != "hello\nagain\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestConsoleProfile(t *testing.T) {
	c := &Console{profile: termenv.TrueColor}
	if got := c.Profile(); got != termenv.TrueColor {
		t.Fatalf("Profile = %v", got)
	}
}
