package rename

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

type (
	// Report is what a run leaves behind besides the renamed files themselves.
	Report struct {
		Rule    Rule     `yaml:"rule"`
		Roots   []string `yaml:"roots"`
		DryRun  bool     `yaml:"dry-run"`
		Renamed int      `yaml:"renamed"`
		Skipped int      `yaml:"skipped"`
		Failed  int      `yaml:"failed"`
		Actions []Action `yaml:"actions"`
	}

	WriteHook func(io.Writer) error
)

func NewReport(r *Renamer, dryRun bool, actions []Action) *Report {
	report := &Report{
		Rule:    r.Rule(),
		Roots:   r.Roots(),
		DryRun:  dryRun,
		Actions: actions,
	}

	for i := range actions {
		switch actions[i].Status {
		case Renamed:
			report.Renamed++
		case Skipped:
			report.Skipped++
		case Failed:
			report.Failed++
		case Planned:
		}
	}

	return report
}

func (r *Report) WriteText(dest io.Writer) error {
	for i := range r.Actions {
		line := fmt.Sprintf("%s  %q -> %q", r.Actions[i].Status, r.Actions[i].Source, r.Actions[i].Dest)

		if r.Actions[i].Reason != "" {
			line += fmt.Sprintf(" (%s)", r.Actions[i].Reason)
		}

		if _, err := fmt.Fprintln(dest, line); err != nil {
			return fmt.Errorf("failed to write report line: %w", err)
		}
	}

	var err error

	if r.DryRun {
		_, err = fmt.Fprintf(dest, "%d file(s) would be renamed from %q to %q.\n", len(r.Actions), r.Rule.From, r.Rule.To)
	} else {
		_, err = fmt.Fprintf(dest, "renamed %d, skipped %d, failed %d.\n", r.Renamed, r.Skipped, r.Failed)
	}

	if err != nil {
		return fmt.Errorf("failed to write report summary: %w", err)
	}

	return nil
}

func (r *Report) WriteYAML(dest io.Writer) error {
	contents, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal report as YAML: %w", err)
	}

	if _, err = dest.Write(contents); err != nil {
		return fmt.Errorf("failed to write YAML report: %w", err)
	}

	return nil
}

func WriteToFile(path string, hook WriteHook) (err error) {
	fd, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to create %q file: %w", path, err)
	}

	defer func() { _ = fd.Close() }()

	err = hook(fd)
	if err != nil {
		return fmt.Errorf("failed to write to %q: %w", path, err)
	}

	return nil
}
