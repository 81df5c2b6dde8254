package main

import (
	"github.com/alecthomas/kong"

	"github.com/kzhao9/renamekit/rename"
	"github.com/kzhao9/renamekit/version"
)

func main() {
	var cli struct {
		Ext     rename.ExtCmd    `cmd:"" name:"ext" help:"Rename files by extension, recursively."`
		Version kong.VersionFlag `name:"version" help:"Show version information and quit."`
	}

	ctx := kong.Parse(
		&cli,
		kong.Name("renamekit"),
		kong.Description("Bulk file-extension renaming in directory trees."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": version.FromBuildInfo()},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
