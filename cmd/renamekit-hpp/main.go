package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/kzhao9/renamekit/rename"
	"github.com/kzhao9/renamekit/version"
)

var (
	logger = log.New(os.Stderr, "renamekit-hpp: ", 0)

	dryRun      bool
	showVersion bool

	helpMsg = `Usage: %s [flags] [<DIR> ...]

Recursively rename every .h file under the <DIR> folders to .hpp.
Without arguments the current working directory is processed.

Flags:
`
)

func main() {
	flag.BoolVar(&dryRun, "dry-run", false, "Print the planned renames without renaming anything.")
	flag.BoolVar(&showVersion, "version", false, "Show version information and quit.")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(flag.CommandLine.Output(), helpMsg, os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		_, _ = fmt.Fprintln(flag.CommandLine.Output(), version.FromBuildInfo())

		os.Exit(0)
	}

	roots := flag.Args()
	if len(roots) == 0 {
		roots = []string{"."}
	}

	renamer, err := rename.NewRenamer(
		rename.Rule{From: rename.DefaultFrom, To: rename.DefaultTo},
		roots,
		rename.Options{},
	)
	if err != nil {
		logger.Fatal(err)
	}

	ctx := context.Background()

	actions, err := renamer.Scan(ctx)
	if err != nil {
		logger.Fatal(err)
	}

	if !dryRun {
		actions, err = renamer.Apply(ctx, actions)
	}

	report := rename.NewReport(renamer, dryRun, actions)
	if err1 := report.WriteText(os.Stdout); err1 != nil {
		logger.Fatal(err1)
	}

	if err != nil {
		logger.Fatal(err)
	}
}
