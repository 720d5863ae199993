// Package main is the entry point for keyseq, a terminal text buffer
// driven by the keyseq input engine.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/pflag"

	"github.com/dshills/keyseq/internal/app"
	"github.com/dshills/keyseq/internal/config"
	"github.com/dshills/keyseq/internal/frontend/terminal"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	fs := pflag.NewFlagSet("keyseq", pflag.ContinueOnError)
	flags := config.BindFlags(fs)
	configPath := fs.StringP("config", "c", "", "configuration file (.toml, .yaml or .yml)")
	showVersion := fs.BoolP("version", "v", false, "show version information")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "keyseq - keyboard sequence editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: keyseq [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nOptions may also be set with %s* environment variables.\n", config.EnvPrefix)
	}
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *showVersion {
		fmt.Printf("keyseq %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		return 0
	}

	src := config.Source{Path: *configPath}
	opts, err := config.Load(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	flags.Apply(&opts)
	if err := opts.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logging, err := app.NewLogging(opts.LogLevel, opts.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open log: %v\n", err)
		return 1
	}
	logger := logging.Sugar()
	store := config.NewStore(opts)

	if src.Path != "" {
		watcher, err := config.NewWatcher(src, store,
			config.WithOverride(flags.Apply),
			config.WithWatcherLogger(logger.Named("config")))
		if err != nil {
			logger.Warnw("config file not watched", "path", src.Path, "error", err)
		} else {
			defer watcher.Close()
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}
	defer screen.Fini()

	front := terminal.New(screen, logger.Named("terminal"))
	application, err := app.New(app.Options{
		Store:   store,
		Logging: logging,
		Redraw:  front.Draw,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer func() {
		if err := application.Shutdown(); err != nil {
			logger.Warnw("shutdown", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w, err := application.NewWindow()
	if err != nil {
		logger.Errorw("window", "error", err)
		return 1
	}
	if err := application.LoadRC(ctx); err != nil {
		logger.Warnw("rc file not loaded", "error", err)
		w.Post(func() { w.HandleError(err) })
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-application.Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := front.Run(ctx, w); err != nil {
		logger.Errorw("terminal", "error", err)
		return 1
	}
	return 0
}
