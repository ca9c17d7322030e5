// Package cmd implements snip's CLI.
package cmd

import (
	"go.followtheprocess.codes/cli"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

// Build builds and returns the snip CLI.
func Build() (*cli.Command, error) {
	return cli.New(
		"snip",
		cli.Short("Generate HTTP request code snippets for many languages and tools"),
		cli.Version(version),
		cli.Commit(commit),
		cli.BuildDate(date),
		cli.Example("Generate curl snippets for every request in a file", "snip generate ./requests.json --target curl"),
		cli.Example(
			"Generate a single request for several targets as JSON",
			"snip generate ./requests.yaml --request CreateItem --target go-native --target http --format json",
		),
		cli.Example("Pick a target interactively", "snip generate ./requests.toml"),
		cli.Example("Tweak the generated code", "snip generate ./requests.json --target curl --option multiLine=false"),
		cli.Example("List every supported target", "snip targets"),
		cli.Example("Show the options a target accepts", "snip options java-okhttp"),
		cli.Example("Serve the snippet API", "snip serve --addr localhost:7878"),
		cli.SubCommands(generate, targets, describe, serve),
	)
}
