package cmd

import (
	"context"

	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/snip/internal/format"
	"go.followtheprocess.codes/snip/internal/snip"
)

// targets returns the snip targets subcommand.
func targets() (*cli.Command, error) {
	var options snip.TargetsOptions

	return cli.New(
		"targets",
		cli.Short("List the supported snippet targets"),
		cli.Flag(
			&options.Format,
			"format",
			'f',
			"Output format, one of (text|json|yaml|toml)",
			cli.FlagDefault(format.Text),
		),
		cli.Flag(&options.Debug, "debug", 'd', "Enable debug logging"),
		cli.Run(func(_ context.Context, cmd *cli.Command) error {
			app, err := snip.New(options.Debug, version, cmd.Stdin(), cmd.Stdout(), cmd.Stderr())
			if err != nil {
				return err
			}

			return app.Targets(options)
		}),
	)
}

// describe returns the snip options subcommand.
func describe() (*cli.Command, error) {
	var (
		id      string
		options snip.OptionsOptions
	)

	return cli.New(
		"options",
		cli.Short("Show the generation options a target accepts"),
		cli.Arg(&id, "target", "Id of the target e.g. curl"),
		cli.Flag(
			&options.Format,
			"format",
			'f',
			"Output format, one of (text|json|yaml|toml)",
			cli.FlagDefault(format.Text),
		),
		cli.Flag(&options.Debug, "debug", 'd', "Enable debug logging"),
		cli.Run(func(_ context.Context, cmd *cli.Command) error {
			app, err := snip.New(options.Debug, version, cmd.Stdin(), cmd.Stdout(), cmd.Stderr())
			if err != nil {
				return err
			}

			return app.Options(id, options)
		}),
	)
}
