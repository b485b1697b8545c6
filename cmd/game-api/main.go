package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Serve    ServeCmd         `cmd:"" default:"withargs" help:"Run the game API"`
	Checkout CheckoutCmd      `cmd:"" help:"Print the checkout hint for a remaining score"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("game-api"),
		kong.Description("Darts 301/501 scoring API"),
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
