package rename

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/kzhao9/renamekit/config"
)

const (
	DefaultFrom = ".h"
	DefaultTo   = ".hpp"
)

// ExtCmd is the `ext` subcommand: rename every file under the roots whose
// name ends with one extension so that it ends with another.
type ExtCmd struct {
	renamer    *Renamer
	Roots      []string       `arg:"" optional:"" name:"roots" help:"Directories to process. Defaults to the current working directory." type:"existingdir"`
	From       string         `name:"from" default:".h" help:"Extension to rename away from."`
	To         string         `name:"to" default:".hpp" help:"Extension to rename to."`
	Exclude    []string       `name:"exclude" help:"Doublestar pattern of paths to leave alone, relative to a root. Repeatable."`
	OnConflict ConflictPolicy `name:"on-conflict" default:"skip" help:"What to do when the destination name is taken: skip, fail or overwrite."`
	Format     string         `name:"format" default:"text" enum:"text,yaml" help:"Report format."`
	Out        string         `name:"out" help:"Write the report to this file instead of stdout."`
	Config     string         `name:"config" help:"Path to a defaults file. Defaults to .renamekit.toml in the first root." placeholder:"PATH"`
	Workers    int            `name:"workers" default:"0" help:"Number of scan workers. 0 picks a sensible default."`
	DryRun     bool           `name:"dry-run" help:"Print the plan without renaming anything."`
	Follow     bool           `name:"follow" help:"Follow symbolic links while scanning."`
}

func (c *ExtCmd) AfterApply(kctx *kong.Context) (err error) {
	if len(c.Roots) == 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current working directory: %w", err)
		}

		c.Roots = []string{cwd}
	}

	if err = c.applyConfig(explicitFlags(kctx)); err != nil {
		return err
	}

	c.renamer, err = NewRenamer(
		Rule{From: c.From, To: c.To},
		c.Roots,
		Options{
			Exclude:    c.Exclude,
			OnConflict: c.OnConflict,
			Workers:    c.Workers,
			Follow:     c.Follow,
		},
	)

	return err
}

// explicitFlags reports which flags the user passed on the command line,
// so that a flag given its default value still beats the defaults file.
func explicitFlags(kctx *kong.Context) map[string]bool {
	explicit := make(map[string]bool)

	if kctx == nil || kctx.Selected() == nil {
		return explicit
	}

	for _, flag := range kctx.Selected().Flags {
		if flag.Set {
			explicit[flag.Name] = true
		}
	}

	return explicit
}

// applyConfig fills flags the user did not pass from the defaults file.
func (c *ExtCmd) applyConfig(explicit map[string]bool) error {
	path := c.Config

	if path == "" {
		var ok bool
		if path, ok = config.Locate(c.Roots[0]); !ok {
			return nil
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	if !explicit["from"] && c.From == DefaultFrom && cfg.From != "" {
		c.From = cfg.From
	}

	if !explicit["to"] && c.To == DefaultTo && cfg.To != "" {
		c.To = cfg.To
	}

	c.Exclude = append(c.Exclude, cfg.Exclude...)

	return nil
}

func (c *ExtCmd) Run() error {
	ctx := context.Background()

	plan, err := c.renamer.Scan(ctx)
	if err != nil {
		return err
	}

	actions := plan

	var applyErr error

	if !c.DryRun {
		actions, applyErr = c.renamer.Apply(ctx, plan)
	}

	report := NewReport(c.renamer, c.DryRun, actions)

	hook := report.WriteText
	if c.Format == "yaml" {
		hook = report.WriteYAML
	}

	if c.Out != "" {
		if err = WriteToFile(c.Out, hook); err != nil {
			return err
		}
	} else if err = hook(os.Stdout); err != nil {
		return err
	}

	return applyErr
}
