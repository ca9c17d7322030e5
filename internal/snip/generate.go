package snip

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"go.followtheprocess.codes/msg"
	"go.followtheprocess.codes/snip/internal/codegen"
	"go.followtheprocess.codes/snip/internal/format"
	"go.followtheprocess.codes/snip/internal/spec"
	"golang.org/x/sync/errgroup"
)

// ErrNoTarget is returned from Generate when no target was given and one
// cannot be picked interactively.
var ErrNoTarget = errors.New("no target given, pass one or more with --target")

// GenerateOptions are the options passed to the generate subcommand.
type GenerateOptions struct {
	// Format is the output format, one of text, json, yaml or toml.
	Format string

	// Output is the name of a file in which to save the snippets, if empty,
	// they are printed to stdout.
	Output string

	// Targets are the ids of the targets to generate snippets for.
	//
	// Empty or nil means pick one interactively, if stdin is a terminal.
	Targets []string

	// Requests are the names of specific requests to generate snippets for.
	//
	// Empty or nil means every request in the file.
	Requests []string

	// Options are raw generation options in the form key=value.
	Options []string

	// Debug enables debug logging.
	Debug bool
}

// Validate reports whether the GenerateOptions is valid, returning an error
// if it's not.
//
// nil means the options are valid.
func (g GenerateOptions) Validate() error {
	if !slices.Contains(format.Names(), g.Format) {
		return fmt.Errorf("%w %q, expected one of %s", format.ErrUnknownFormat, g.Format, strings.Join(format.Names(), ", "))
	}

	for _, option := range g.Options {
		if key, _, ok := strings.Cut(option, "="); !ok || strings.TrimSpace(key) == "" {
			return fmt.Errorf("invalid option %q, expected key=value", option)
		}
	}

	return nil
}

// ParseOptions parses raw key=value option strings into a set of raw
// generation options.
//
// Values of "true" and "false" become booleans, integers become ints and
// everything else is kept as a string. Normalisation against a target's
// schema happens later, so unknown keys are kept.
func ParseOptions(raw []string) (map[string]any, error) {
	parsed := make(map[string]any, len(raw))

	for _, option := range raw {
		key, value, ok := strings.Cut(option, "=")
		key = strings.TrimSpace(key)

		if !ok || key == "" {
			return nil, fmt.Errorf("invalid option %q, expected key=value", option)
		}

		switch value {
		case "true":
			parsed[key] = true
		case "false":
			parsed[key] = false
		default:
			if n, err := strconv.Atoi(value); err == nil {
				parsed[key] = n
			} else {
				parsed[key] = value
			}
		}
	}

	return parsed, nil
}

// job is a single request and target pair to generate a snippet for.
type job struct {
	renderer codegen.Renderer
	request  spec.Request
	label    string
}

// Generate implements the generate subcommand.
func (s Snip) Generate(ctx context.Context, file string, options GenerateOptions) error {
	logger := s.logger.Prefixed("generate").With(slog.String("file", file))

	if err := options.Validate(); err != nil {
		return err
	}

	raw, err := ParseOptions(options.Options)
	if err != nil {
		return err
	}

	exporter, err := format.ExporterFor(options.Format)
	if err != nil {
		return err
	}

	start := time.Now()

	requestFile, err := s.load(file)
	if err != nil {
		return err
	}

	logger.Debug("Loaded request file", slog.Int("requests", len(requestFile.Requests)), slog.Duration("took", time.Since(start)))

	targets := options.Targets
	if len(targets) == 0 {
		picked, err := s.pickTarget(ctx)
		if err != nil {
			return err
		}

		targets = []string{picked}
	}

	renderers := make([]codegen.Renderer, 0, len(targets))
	for _, id := range targets {
		renderer, err := s.registry.Lookup(id)
		if err != nil {
			return err
		}

		renderers = append(renderers, renderer)
	}

	jobs, err := plan(requestFile, options.Requests, renderers)
	if err != nil {
		return fmt.Errorf("%w in %s", err, file)
	}

	logger.Debug("Planned snippet generation", slog.Int("snippets", len(jobs)), slog.Any("targets", targets))

	snippets := make([]format.Snippet, len(jobs))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.NumCPU())

	for index, work := range jobs {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			id := work.renderer.Target().ID

			code, err := codegen.Generate(work.renderer, &work.request, raw)
			if err != nil {
				return fmt.Errorf("could not generate %s snippet for request %s: %w", id, work.label, err)
			}

			logger.Debug("Generated snippet", slog.String("request", work.label), slog.String("target", id))

			snippets[index] = format.Snippet{Request: work.label, Target: id, Code: code}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	doc := format.Document{Name: requestFile.Name, Snippets: snippets}

	if options.Output == "" {
		return exporter.Export(s.stdout, doc)
	}

	buf := &bytes.Buffer{}
	if err := exporter.Export(buf, doc); err != nil {
		return err
	}

	if err := os.WriteFile(options.Output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("could not write snippets: %w", err)
	}

	msg.Fsuccess(s.stdout, "Wrote %d snippet(s) to %s", len(snippets), options.Output)

	return nil
}

// load reads and decodes a request file, picking the importer by the file's extension.
func (s Snip) load(path string) (spec.File, error) {
	importer, err := format.ImporterFor(path)
	if err != nil {
		return spec.File{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return spec.File{}, fmt.Errorf("could not open file: %w", err)
	}
	defer f.Close()

	file, err := importer.Import(f)
	if err != nil {
		return spec.File{}, fmt.Errorf("could not load %s: %w", path, err)
	}

	return file, nil
}

// pickTarget asks the user to choose a target, it fails with [ErrNoTarget]
// when stdin is not a terminal.
func (s Snip) pickTarget(ctx context.Context) (string, error) {
	if !s.interactive() {
		return "", ErrNoTarget
	}

	var choice string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Pick a target").
				Options(huh.NewOptions(s.registry.Names()...)...).
				Value(&choice),
		),
	).WithInput(s.stdin).WithOutput(s.stderr)

	if err := form.RunWithContext(ctx); err != nil {
		return "", fmt.Errorf("could not pick a target: %w", err)
	}

	s.logger.Debug("Picked target interactively", slog.String("target", choice))

	return choice, nil
}

// plan pairs every selected request with every renderer, in request order then
// renderer order.
//
// Each job gets its own copy of the request so renderers never share state.
func plan(file spec.File, names []string, renderers []codegen.Renderer) ([]job, error) {
	for _, name := range names {
		if !file.ContainsRequest(name) {
			return nil, fmt.Errorf("no request named %q", name)
		}
	}

	var jobs []job

	for index, request := range file.Requests {
		if len(names) != 0 && !slices.Contains(names, request.Name) {
			continue
		}

		label := request.Label(index)

		for _, renderer := range renderers {
			jobs = append(jobs, job{renderer: renderer, request: request.Clone(), label: label})
		}
	}

	if len(jobs) == 0 {
		return nil, errors.New("no requests to generate snippets for")
	}

	return jobs, nil
}
