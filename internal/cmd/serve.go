package cmd

import (
	"context"

	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/cli/flag"
	"go.followtheprocess.codes/snip/internal/snip"
)

const serveLong = `
The serve command exposes snippet generation over HTTP.

Routes:

  GET  /targets                    List every target
  GET  /targets/{target}/options   The option schema of a target
  POST /targets/{target}/snippet   Generate a snippet

The snippet route takes a JSON body of the form
'{"request": {...}, "options": {...}}' and responds with the snippet as
plain text, or as JSON when the request accepts 'application/json'.

The server runs until interrupted.
`

// serve returns the snip serve subcommand.
func serve() (*cli.Command, error) {
	var options snip.ServeOptions

	return cli.New(
		"serve",
		cli.Short("Serve the snippet generation API"),
		cli.Long(serveLong),
		cli.Flag(&options.Addr, "addr", 'a', "Address to listen on", cli.FlagDefault(snip.DefaultAddr)),
		cli.Flag(
			&options.Timeout,
			"timeout",
			flag.NoShortHand,
			"Read and write timeout for a single request",
			cli.FlagDefault(snip.DefaultTimeout),
		),
		cli.Flag(&options.Debug, "debug", 'd', "Enable debug logging"),
		cli.Run(func(ctx context.Context, cmd *cli.Command) error {
			app, err := snip.New(options.Debug, version, cmd.Stdin(), cmd.Stdout(), cmd.Stderr())
			if err != nil {
				return err
			}

			return app.Serve(ctx, options)
		}),
	)
}
