// Command ember emits sample events through a configured pipeline, or runs
// the interactive layout preview.
//
// Without flags it renders a handful of sample events to stdout as pretty
// cards. -demo controls how many, -format/-theme/-width override the
// console pipeline, and -preview opens the Bubble Tea soak instead.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/emberlog/ember"
	"github.com/emberlog/ember/internal/preview"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "config path (optional, defaults to ~/.config/ember/config.toml)")
	width := flag.Int("width", 0, "layout width override")
	theme := flag.String("theme", "", "theme override (ember-dark, ember-light, slate)")
	formatName := flag.String("format", "", "console format override (pretty, plain, json, toon)")
	demo := flag.Int("demo", 8, "number of sample events to emit")
	runPreview := flag.Bool("preview", false, "open the interactive preview instead of emitting events")
	live := flag.Bool("live", false, "keep generating events inside the preview")
	initConfig := flag.Bool("init", false, "write the default config file and exit")
	flag.Parse()

	if *initConfig {
		if err := ember.Save(*configPath, ember.Default()); err != nil {
			fmt.Fprintf(os.Stderr, "ember: %v\n", err)
			return 1
		}
		return 0
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := ember.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ember: %v\n", err)
		return 1
	}
	if *width > 0 {
		cfg.Width = *width
	}
	if *theme != "" {
		cfg.Theme = *theme
	}
	if *formatName != "" {
		if cfg.Console == nil {
			cfg.Console = &ember.ConsoleConfig{}
		}
		cfg.Console.Format = *formatName
	}

	if *runPreview {
		opts := preview.Options{Theme: cfg.Theme, Count: *demo, Live: *live}
		if cfg.Console != nil {
			opts.Format = cfg.Console.Format
		}
		if err := preview.Run(ctx, opts); err != nil {
			fmt.Fprintf(os.Stderr, "ember: %v\n", err)
			return 1
		}
		return 0
	}

	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ember: %v\n", err)
		return 1
	}
	defer logger.Close()

	for _, ev := range preview.Events(*demo) {
		if ctx.Err() != nil {
			break
		}
		fields := append([]ember.Field(nil), ev.Fields...)
		if ev.Err != nil {
			fields = append(fields, ember.Err(ev.Err))
		}
		logger.Named(ev.Logger).Log(ev.Level, ev.Message, fields...)
	}
	return 0
}
