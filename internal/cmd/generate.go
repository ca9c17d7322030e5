package cmd

import (
	"context"

	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/cli/flag"
	"go.followtheprocess.codes/snip/internal/format"
	"go.followtheprocess.codes/snip/internal/snip"
)

const generateLong = `
The generate command reads a request file and writes a code snippet for
every request in it, for every target asked for.

Request files may be JSON, YAML or TOML, the format is taken from the
file extension.

Targets are picked with '--target', which may be repeated. If no target
is given and snip is running in a terminal, a target may be picked
interactively.

Generation options are passed as key=value pairs with '--option', use
'snip options <target>' to see what a target accepts. Unknown or invalid
options fall back to the target's defaults.
`

// generate returns the snip generate subcommand.
func generate() (*cli.Command, error) {
	var (
		file    string
		options snip.GenerateOptions
	)

	return cli.New(
		"generate",
		cli.Short("Generate code snippets from a request file"),
		cli.Long(generateLong),
		cli.Arg(&file, "file", "Path to the request file"),
		cli.Flag(&options.Targets, "target", 't', "Target(s) to generate snippets for"),
		cli.Flag(&options.Requests, "request", 'r', "Name(s) of requests to generate snippets for"),
		cli.Flag(&options.Options, "option", flag.NoShortHand, "Generation option(s) as key=value"),
		cli.Flag(
			&options.Format,
			"format",
			'f',
			"Output format, one of (text|json|yaml|toml)",
			cli.FlagDefault(format.Text),
		),
		cli.Flag(&options.Output, "output", 'o', "Name of a file to save the snippets"),
		cli.Flag(&options.Debug, "debug", 'd', "Enable debug logging"),
		cli.Run(func(ctx context.Context, cmd *cli.Command) error {
			app, err := snip.New(options.Debug, version, cmd.Stdin(), cmd.Stdout(), cmd.Stderr())
			if err != nil {
				return err
			}

			return app.Generate(ctx, file, options)
		}),
	)
}
