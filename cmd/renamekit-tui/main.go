package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kzhao9/renamekit/rename"
	"github.com/kzhao9/renamekit/tui"
	"github.com/kzhao9/renamekit/version"
)

var (
	logger = log.New(os.Stderr, "renamekit-tui: ", 0)

	fromExt     string
	toExt       string
	showVersion bool

	helpMsg = `Usage: %s [flags] [<DIR> ...]

Scan the <DIR> folders for files to rename and review the plan interactively.
Without arguments the current working directory is scanned.

Flags:
`
)

func main() {
	flag.StringVar(&fromExt, "from", rename.DefaultFrom, "Extension to rename away from.")
	flag.StringVar(&toExt, "to", rename.DefaultTo, "Extension to rename to.")
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

	renamer, err := rename.NewRenamer(rename.Rule{From: fromExt, To: toExt}, roots, rename.Options{})
	if err != nil {
		logger.Fatal(err)
	}

	plan, err := renamer.Scan(context.Background())
	if err != nil {
		logger.Fatal(err)
	}

	if len(plan) == 0 {
		logger.Printf("Nothing to rename under %q.", roots)

		return
	}

	p := tea.NewProgram(tui.InitialPlanModel(renamer, plan))

	final, err := p.Run()
	if err != nil {
		logger.Fatal(err)
	}

	m, ok := final.(tui.PlanModel)
	if !ok {
		return
	}

	report, err := m.Report()
	if report != nil {
		if err1 := report.WriteText(os.Stdout); err1 != nil {
			logger.Fatal(err1)
		}
	}

	if err != nil {
		logger.Fatal(err)
	}
}
