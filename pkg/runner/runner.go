// Package runner builds a fresh network from a script and prints it.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/ritzau/socialgraph/pkg/logging"
	"github.com/ritzau/socialgraph/pkg/network"
	"github.com/ritzau/socialgraph/pkg/output"
	"github.com/ritzau/socialgraph/pkg/script"
)

// Options configures a single run
type Options struct {
	// ScriptPath is a TOML script to load on every run. Empty means the built-in demo.
	ScriptPath string

	// Out receives the listing. Defaults to stdout.
	Out io.Writer

	// Notices receives duplicate and missing-user notices. Defaults to Out.
	Notices io.Writer

	Format output.Format
	Color  bool
}

// Run executes one independent run and returns the network it built.
// Duplicate people and unknown friends are reported as notices, not errors.
func Run(ctx context.Context, opts Options) (*network.Network, error) {
	start := time.Now()
	ctx = logging.WithRunID(ctx, uuid.New().String())

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	notices := opts.Notices
	if notices == nil {
		notices = out
	}

	s, source, err := loadScript(opts.ScriptPath)
	if err != nil {
		return nil, err
	}
	logging.InfoContext(ctx, "run started", "script", source,
		"people", len(s.People), "friendships", len(s.Friendships))

	n := network.New(notices)
	res, err := script.Apply(n, s)
	if err != nil {
		return nil, fmt.Errorf("applying script %s: %w", source, err)
	}
	if res.Duplicates > 0 || res.Rejected > 0 {
		logging.DebugContext(ctx, "script had reported conditions",
			"duplicates", res.Duplicates, "rejected", res.Rejected)
	}

	if err := output.PrintReport(out, n.Report(), output.Options{Format: opts.Format, Color: opts.Color}); err != nil {
		return nil, fmt.Errorf("printing network: %w", err)
	}

	logging.InfoContext(ctx, "run complete",
		"people", n.Len(),
		"friendships", n.FriendshipCount(),
		"durationMs", time.Since(start).Milliseconds(),
	)
	return n, nil
}

func loadScript(path string) (*script.Script, string, error) {
	if path == "" {
		return script.Default(), "built-in", nil
	}
	s, err := script.Load(path)
	if err != nil {
		return nil, path, err
	}
	return s, path, nil
}
