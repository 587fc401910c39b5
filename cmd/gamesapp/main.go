package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Serve   ServeCmd         `cmd:"" help:"Run the game room server"`
	Catalog CatalogCmd       `cmd:"" help:"Work with card catalog files"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("gamesapp"),
		kong.Description("WebSocket room server for shuffle-card games"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
