package ember

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/muesli/termenv"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/emberlog/ember/decor"
	"github.com/emberlog/ember/encode"
	"github.com/emberlog/ember/format"
	"github.com/emberlog/ember/sink"
)

const (
	defaultConfigPath = "~/.config/ember/config.toml"
	defaultTheme      = "ember-dark"
)

// Config assembles a Logger from TOML. Sink sections are pointers so a
// destination is active exactly when its section appears in the file; a
// file with no sections gets a pretty console destination.
type Config struct {
	Level  string   `toml:"level"`
	Width  int      `toml:"width"`
	Theme  string   `toml:"theme"`
	Name   string   `toml:"name"`
	Origin bool     `toml:"origin"`
	Stack  bool     `toml:"stack"`
	Redact []string `toml:"redact"`

	Console *ConsoleConfig `toml:"console"`
	File    *FileConfig    `toml:"file"`
	HTTP    *HTTPConfig    `toml:"http"`
	Socket  *SocketConfig  `toml:"socket"`
}

// ConsoleConfig selects a console destination. Format is one of pretty,
// plain, json, toon; empty means pretty.
type ConsoleConfig struct {
	Format string `toml:"format"`
	Stderr bool   `toml:"stderr"`
}

// FileConfig selects a rotating-file destination. Empty format means plain.
type FileConfig struct {
	Path       string `toml:"path"`
	Format     string `toml:"format"`
	MaxSize    int64  `toml:"max_size"`
	MaxBackups int    `toml:"max_backups"`
}

// HTTPConfig selects a batching HTTP destination. Empty format means json.
// FlushEvery uses time.ParseDuration syntax, e.g. "2s".
type HTTPConfig struct {
	URL        string `toml:"url"`
	Format     string `toml:"format"`
	BatchSize  int    `toml:"batch_size"`
	FlushEvery string `toml:"flush_every"`
}

// SocketConfig selects a websocket destination. Empty format means json.
type SocketConfig struct {
	URL    string `toml:"url"`
	Format string `toml:"format"`
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the config used when no file exists: info level, pretty
// console output at the default width.
func Default() Config {
	return Config{
		Level:   "info",
		Width:   defaultWidth,
		Theme:   defaultTheme,
		Console: &ConsoleConfig{Format: "pretty"},
	}
}

// Load reads the config at path, or at the default location when path is
// empty. A missing file falls back to Default.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.Level = strings.TrimSpace(cfg.Level)
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	cfg.Theme = strings.TrimSpace(cfg.Theme)
	if cfg.Theme == "" {
		cfg.Theme = defaultTheme
	}
	if cfg.Width <= 0 {
		cfg.Width = defaultWidth
	}
	if cfg.Console == nil && cfg.File == nil && cfg.HTTP == nil && cfg.Socket == nil {
		cfg.Console = &ConsoleConfig{Format: "pretty"}
	}
	return cfg, nil
}

// Save writes cfg as TOML, creating parent directories as needed. An empty
// path selects the default location.
func Save(path string, cfg Config) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	raw, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(resolved, raw, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Build opens the configured sinks and assembles the Logger. Close on the
// returned Logger closes them.
func (c Config) Build() (*Logger, error) {
	level, err := ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("config level: %w", err)
	}
	theme := decor.GetTheme(c.Theme)
	width := c.Width
	if width <= 0 {
		width = defaultWidth
	}

	var dests []Destination
	fail := func(err error) (*Logger, error) {
		for i := range dests {
			dests[i].Sink.Close()
		}
		return nil, err
	}

	if c.Console != nil {
		out := sink.NewConsole(c.Console.Stderr)
		d, err := c.destination(c.Console.Format, "pretty", encode.NewANSI(out.Profile()), theme, out, width)
		if err != nil {
			return fail(fmt.Errorf("console: %w", err))
		}
		dests = append(dests, d)
	}

	if c.File != nil {
		if strings.TrimSpace(c.File.Path) == "" {
			return fail(errors.New("file: path is required"))
		}
		path, err := expandPath(c.File.Path)
		if err != nil {
			return fail(fmt.Errorf("file: %w", err))
		}
		out, err := sink.NewFile(path, c.File.MaxSize, c.File.MaxBackups)
		if err != nil {
			return fail(fmt.Errorf("file: %w", err))
		}
		d, err := c.destination(c.File.Format, "plain", encode.NewANSI(termenv.Ascii), nil, out, width)
		if err != nil {
			out.Close()
			return fail(fmt.Errorf("file: %w", err))
		}
		dests = append(dests, d)
	}

	if c.HTTP != nil {
		if strings.TrimSpace(c.HTTP.URL) == "" {
			return fail(errors.New("http: url is required"))
		}
		opts := sink.HTTPOptions{
			URL:       strings.TrimSpace(c.HTTP.URL),
			BatchSize: c.HTTP.BatchSize,
		}
		if s := strings.TrimSpace(c.HTTP.FlushEvery); s != "" {
			every, err := time.ParseDuration(s)
			if err != nil {
				return fail(fmt.Errorf("http flush_every: %w", err))
			}
			opts.FlushEvery = every
		}
		d, err := c.destination(c.HTTP.Format, "json", encode.JSON{}, nil, nil, width)
		if err != nil {
			return fail(fmt.Errorf("http: %w", err))
		}
		d.Sink = sink.NewHTTP(opts)
		dests = append(dests, d)
	}

	if c.Socket != nil {
		if strings.TrimSpace(c.Socket.URL) == "" {
			return fail(errors.New("socket: url is required"))
		}
		d, err := c.destination(c.Socket.Format, "json", encode.JSON{}, nil, nil, width)
		if err != nil {
			return fail(fmt.Errorf("socket: %w", err))
		}
		d.Sink = sink.NewSocket(strings.TrimSpace(c.Socket.URL))
		dests = append(dests, d)
	}

	if len(dests) == 0 {
		return nil, errors.New("config selects no destinations")
	}

	opts := Options{
		Level:  level,
		Name:   strings.TrimSpace(c.Name),
		Origin: c.Origin,
		Stack:  c.Stack,
	}
	return New(opts, dests...), nil
}

// destination maps a format name to a pipeline. styled is the encoder for
// the physical formats; the tree formats bring their own. theme may be nil
// for destinations that never render color.
func (c Config) destination(name, fallback string, styled encode.Encoder, theme *decor.Theme, out sink.Sink, width int) (Destination, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = fallback
	}

	var decs []decor.Decorator
	if len(c.Redact) > 0 {
		decs = append(decs, decor.NewRedact(c.Redact...))
	}

	d := Destination{Sink: out, Width: width}
	switch name {
	case "pretty":
		d.Formatter = &format.Pretty{}
		d.Encoder = styled
		if theme != nil {
			decs = append(decs, theme)
		}
	case "plain":
		d.Formatter = &format.Plain{}
		d.Encoder = styled
		if theme != nil {
			decs = append(decs, theme)
		}
	case "json":
		d.Formatter = format.JSONTree{}
		d.Encoder = encode.JSON{}
	case "toon":
		d.Formatter = format.TOON{}
		d.Encoder = encode.TOON{}
	default:
		return Destination{}, fmt.Errorf("unknown format %q", name)
	}
	d.Decorators = decs
	return d, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
