package main

import (
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/relforge/cmd/relforge/commands"
	"git.home.luguber.info/inful/relforge/internal/version"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("relforge"),
		kong.Description("Release pipeline orchestrator: build matrix, artifact uploads, docs deploys."),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
	)

	if err := ctx.Run(&commands.Global{}, &cli); err != nil {
		ctx.Errorf("%v", err)
		os.Exit(1)
	}
}
