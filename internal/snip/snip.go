// Package snip implements the functionality of the program, the CLI in package cmd is simply the
// entrypoint to exported functions and methods in this package.
package snip

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"go.followtheprocess.codes/hue"
	"go.followtheprocess.codes/log"
	"go.followtheprocess.codes/snip/internal/codegen"
	"go.followtheprocess.codes/snip/internal/target"
)

// Styles.
const (
	// keyStyle is the style used for printing identifiers like target and
	// option ids on the command line.
	keyStyle = hue.Cyan

	// dimmed is the style used for printing informational content like
	// languages, types and descriptions.
	dimmed = hue.BrightBlack | hue.Italic

	// heading is the style used for printing section headings.
	heading = hue.Green | hue.Bold
)

// Snip represents the snip program.
type Snip struct {
	stdin    io.Reader         // Interactive input is read from here
	stdout   io.Writer         // Normal program output is written here
	stderr   io.Writer         // Logs and errors are written here
	logger   *log.Logger       // The logger for the application
	registry *codegen.Registry // Every target snip can generate snippets for
	version  string            // The version of snip
}

// New returns a new [Snip].
func New(debug bool, version string, stdin io.Reader, stdout, stderr io.Writer) (Snip, error) {
	level := log.LevelInfo
	if debug {
		level = log.LevelDebug
	}

	logger := log.New(stderr, log.Prefix("snip"), log.WithLevel(level))

	registry, err := target.Registry()
	if err != nil {
		return Snip{}, fmt.Errorf("could not build the target registry: %w", err)
	}

	return Snip{
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
		logger:   logger,
		registry: registry,
		version:  version,
	}, nil
}

// interactive reports whether s.stdin is attached to a terminal.
func (s Snip) interactive() bool {
	f, ok := s.stdin.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
