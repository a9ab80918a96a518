package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/ritzau/socialgraph/pkg/network"
)

// Header precedes the text listing
const Header = "--- Social Network ---"

// Format selects how the listing is rendered
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Options controls PrintReport
type Options struct {
	Format Format

	// Color enables ANSI colors. fatih/color still turns them off when
	// the process is not attached to a terminal.
	Color bool
}

type jsonReport struct {
	People []network.Entry `json:"people"`
}

// PrintReport writes the network listing to w
func PrintReport(w io.Writer, entries []network.Entry, opts Options) error {
	switch opts.Format {
	case FormatJSON:
		return printJSON(w, entries)
	case FormatText, "":
		return printText(w, entries, opts.Color)
	default:
		return fmt.Errorf("unknown format %q", opts.Format)
	}
}

func printText(w io.Writer, entries []network.Entry, useColor bool) error {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	if !useColor {
		bold.DisableColor()
		green.DisableColor()
		yellow.DisableColor()
	}

	// Blank line separates the listing from notices emitted during setup
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	if _, err := bold.Fprintln(w, Header); err != nil {
		return err
	}

	for _, e := range entries {
		c := green
		if len(e.Friends) == 0 {
			c = yellow
		}
		if _, err := c.Fprintln(w, e.String()); err != nil {
			return fmt.Errorf("failed to write entry for %s: %w", e.Name, err)
		}
	}
	return nil
}

func printJSON(w io.Writer, entries []network.Entry) error {
	report := jsonReport{People: make([]network.Entry, len(entries))}
	copy(report.People, entries)
	for i := range report.People {
		if report.People[i].Friends == nil {
			report.People[i].Friends = []string{}
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
