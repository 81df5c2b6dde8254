package main

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/davecgh/go-spew/spew"

	"github.com/kzhao9/renamekit/rename"
	"github.com/kzhao9/renamekit/tui"
)

type model struct {
	dump io.Writer
	tui.PlanModel
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.dump != nil {
		spew.Fdump(m.dump, msg)
	}

	inner, cmd := m.PlanModel.Update(msg)

	if pm, ok := inner.(tui.PlanModel); ok {
		m.PlanModel = pm
	}

	return m, cmd
}

// Drives the plan review model against a scratch tree and dumps every
// message to messages.log.
func main() {
	dump, err := os.OpenFile("messages.log", os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		log.Fatal("failed to open log file messages.log")
	}

	dir, err := os.MkdirTemp("", "renamekit-debug")
	if err != nil {
		log.Fatal(err)
	}

	defer func() { _ = os.RemoveAll(dir) }()

	for _, name := range []string{"a.h", "b.h", "keep.c"} {
		if err = os.WriteFile(filepath.Join(dir, name), nil, 0o600); err != nil {
			log.Fatal(err)
		}
	}

	renamer, err := rename.NewRenamer(
		rename.Rule{From: rename.DefaultFrom, To: rename.DefaultTo},
		[]string{dir},
		rename.Options{},
	)
	if err != nil {
		log.Fatal(err)
	}

	plan, err := renamer.Scan(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	p := tea.NewProgram(model{dump: dump, PlanModel: tui.InitialPlanModel(renamer, plan)})
	if _, err = p.Run(); err != nil {
		log.Fatal(err)
	}
}
