package snip

import (
	"fmt"
	"strings"

	"go.followtheprocess.codes/hue"
	"go.followtheprocess.codes/snip/internal/codegen"
	"go.followtheprocess.codes/snip/internal/format"
	"go.followtheprocess.codes/snip/internal/options"
)

// TargetsOptions are the options passed to the targets subcommand.
type TargetsOptions struct {
	// Format is the output format, one of text, json, yaml or toml.
	Format string

	// Debug enables debug logging.
	Debug bool
}

// OptionsOptions are the options passed to the options subcommand.
type OptionsOptions struct {
	// Format is the output format, one of text, json, yaml or toml.
	Format string

	// Debug enables debug logging.
	Debug bool
}

// targetList wraps a list of targets so it encodes as a document in every
// format, TOML has no top level arrays.
type targetList struct {
	Targets []codegen.Target `json:"targets" toml:"targets" yaml:"targets"`
}

// targetSchema is a target along with every option it accepts.
type targetSchema struct {
	Target  codegen.Target       `json:"target"  toml:"target"  yaml:"target"`
	Options []options.Descriptor `json:"options" toml:"options" yaml:"options"`
}

// Targets implements the targets subcommand.
func (s Snip) Targets(opts TargetsOptions) error {
	targets := s.registry.Targets()
	s.logger.Prefixed("targets").Debug("Listing targets")

	if opts.Format != format.Text {
		return format.Encode(s.stdout, opts.Format, targetList{Targets: targets})
	}

	width := 0
	for _, target := range targets {
		width = max(width, len(target.ID))
	}

	for _, target := range targets {
		fmt.Fprintf(
			s.stdout,
			"%s  %s %s\n",
			keyStyle.Text(fmt.Sprintf("%-*s", width, target.ID)),
			target.Label,
			dimmed.Text("("+target.Language+")"),
		)
	}

	return nil
}

// Options implements the options subcommand, describing every option
// accepted by the target with the given id.
func (s Snip) Options(id string, opts OptionsOptions) error {
	renderer, err := s.registry.Lookup(id)
	if err != nil {
		return err
	}

	target := renderer.Target()
	schema := renderer.Options()

	s.logger.Prefixed("options").Debug("Describing target options")

	if opts.Format != format.Text {
		return format.Encode(s.stdout, opts.Format, targetSchema{Target: target, Options: schema})
	}

	fmt.Fprintf(s.stdout, "%s %s\n\n", heading.Text(target.Label), dimmed.Text("("+target.ID+")"))

	for _, descriptor := range schema {
		fmt.Fprintf(
			s.stdout,
			"%s %s\n",
			keyStyle.Text(descriptor.ID),
			dimmed.Text(fmt.Sprintf("%s, default: %v", descriptor.Type, descriptor.Default)),
		)

		fmt.Fprintf(s.stdout, "  %s\n", descriptor.Description)

		if len(descriptor.AvailableOptions) != 0 {
			fmt.Fprintf(s.stdout, "  %s %s\n", hue.Bold.Text("One of:"), strings.Join(descriptor.AvailableOptions, ", "))
		}
	}

	return nil
}
