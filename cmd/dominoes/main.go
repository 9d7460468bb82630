package main

import (
	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" help:"Play a match against automatic opponents"`
	Simulate SimulateCmd      `cmd:"" help:"Play automatic matches in bulk and report the results"`
}

func main() {
	// Match styled output to what the terminal supports, NO_COLOR included.
	lipgloss.SetColorProfile(termenv.EnvColorProfile())

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("dominoes"),
		kong.Description("Turn-based dominoes for the console"),
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
