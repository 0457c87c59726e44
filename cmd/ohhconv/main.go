package main

import (
	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Config  string `help:"HCL configuration file" default:"ohhconv.hcl" type:"path" env:"OHHCONV_CONFIG"`
	Debug   bool   `help:"Enable debug logging" env:"OHHCONV_DEBUG"`
	LogJSON bool   `name:"log-json" help:"Log as JSON instead of console text"`
	NoColor bool   `name:"no-color" help:"Disable colored output"`
}

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Convert ConvertCmd       `cmd:"" help:"Convert Poker Mavens hand histories to OHH files, one per table"`
	Watch   WatchCmd         `cmd:"" help:"Reconvert whenever hand history files in a directory change"`
	Render  RenderCmd        `cmd:"" help:"Print a converted .ohh or .phhs file as readable hands"`
}

func main() {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("ohhconv"),
		kong.Description("Convert Poker Mavens ring game logs to Open Hand History files"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
