package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ritzau/socialgraph/pkg/config"
	"github.com/ritzau/socialgraph/pkg/logging"
	"github.com/ritzau/socialgraph/pkg/output"
	"github.com/ritzau/socialgraph/pkg/runner"
	"github.com/ritzau/socialgraph/pkg/watcher"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("socialgraph", pflag.ContinueOnError)
	config.RegisterFlags(flags)
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return err
	}
	if err := setupLogging(cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := runner.Options{
		ScriptPath: cfg.Script,
		Out:        os.Stdout,
		Format:     output.Format(cfg.Format),
		Color:      cfg.Color,
	}
	if opts.Format == output.FormatJSON {
		// Keep stdout parseable
		opts.Notices = os.Stderr
	}

	if _, err := runner.Run(ctx, opts); err != nil {
		if !cfg.Watch {
			return err
		}
		logging.Error("run failed", "error", err)
	}

	if !cfg.Watch {
		return nil
	}
	if cfg.Script == "" {
		logging.Warn("watch mode needs --script, nothing to watch")
		return nil
	}
	return watch(ctx, opts)
}

func setupLogging(cfg *config.Config) error {
	level, err := logging.ParseLevel(cfg.Verbosity, cfg.VerboseCnt)
	if err != nil {
		return err
	}
	if cfg.LogFormat == "json" {
		logging.SetJSONOutput(level)
	} else {
		logging.SetLevel(level)
	}
	return nil
}

// watch re-runs the script each time it changes, until ctx is cancelled.
// Runs happen one at a time on this goroutine.
func watch(ctx context.Context, opts runner.Options) error {
	sw, err := watcher.NewScriptWatcher(opts.ScriptPath)
	if err != nil {
		return err
	}
	if err := sw.Start(ctx); err != nil {
		return err
	}

	debouncer := watcher.NewDebouncer(sw.Events(), 200*time.Millisecond, 2*time.Second)
	debouncer.Start(ctx)

	for range debouncer.Output() {
		logging.Info("script changed, re-running", "path", opts.ScriptPath)
		if _, err := runner.Run(ctx, opts); err != nil {
			logging.Error("run failed", "error", err)
		}
	}

	logging.Info("stopped watching", "path", opts.ScriptPath)
	return nil
}
