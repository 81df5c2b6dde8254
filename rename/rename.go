package rename

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
)

type (
	// Rule is an extension pair: files whose basename ends with From are
	// renamed to the same basename ending with To instead.
	Rule struct {
		From string `yaml:"from" toml:"from"`
		To   string `yaml:"to" toml:"to"`
	}

	ConflictPolicy string

	Status string

	// Action is one planned or performed rename.
	Action struct {
		Source string `yaml:"source"`
		Dest   string `yaml:"dest"`
		Status Status `yaml:"status"`
		Reason string `yaml:"reason,omitempty"`
	}

	Options struct {
		OnConflict ConflictPolicy
		Exclude    []string
		Workers    int
		Follow     bool
	}

	Renamer struct {
		rule  Rule
		roots []string
		opts  Options
	}
)

const (
	// Skip leaves the source file alone when the destination already exists.
	Skip ConflictPolicy = "skip"
	// Fail aborts the run on the first existing destination.
	Fail ConflictPolicy = "fail"
	// Overwrite replaces the destination, which is what os.Rename does on its own.
	Overwrite ConflictPolicy = "overwrite"

	Planned Status = "planned"
	Renamed Status = "renamed"
	Skipped Status = "skipped"
	Failed  Status = "failed"
)

var (
	ErrBadRule = errors.New("invalid rename rule")

	ErrConflict = errors.New("destination already exists")
)

func (p *ConflictPolicy) UnmarshalText(text []byte) error {
	switch ConflictPolicy(text) {
	case Skip, Fail, Overwrite:
		*p = ConflictPolicy(text)

		return nil
	default:
		return fmt.Errorf(`%q is not one of "skip", "fail" or "overwrite"`, string(text))
	}
}

func (p ConflictPolicy) String() string {
	return string(p)
}

// Non-nil returned error wraps [ErrBadRule].
func (r Rule) Validate() error {
	if !strings.HasPrefix(r.From, ".") || len(r.From) < 2 {
		return fmt.Errorf(`%w: source extension %q must start with "." and name an extension`, ErrBadRule, r.From)
	}

	if !strings.HasPrefix(r.To, ".") || len(r.To) < 2 {
		return fmt.Errorf(`%w: target extension %q must start with "." and name an extension`, ErrBadRule, r.To)
	}

	if r.From == r.To {
		return fmt.Errorf("%w: source and target extensions are both %q", ErrBadRule, r.From)
	}

	if strings.HasSuffix(r.To, r.From) {
		return fmt.Errorf("%w: target extension %q ends with source extension %q, renaming would never settle", ErrBadRule, r.To, r.From)
	}

	return nil
}

// Matches reports whether the file at path would be renamed by the rule.
// A basename that consists of nothing but the extension is a hidden file, not a match.
func (r Rule) Matches(path string) bool {
	base := filepath.Base(path)

	return strings.HasSuffix(base, r.From) && base != r.From
}

// Dest returns the path the file at path would be renamed to.
func (r Rule) Dest(path string) string {
	parent := filepath.Dir(path)
	base := strings.TrimSuffix(filepath.Base(path), r.From) + r.To

	return filepath.Clean(filepath.Join(parent, base))
}

func NewRenamer(rule Rule, roots []string, opts Options) (*Renamer, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	for _, pattern := range opts.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	if len(roots) == 0 {
		return nil, errors.New("at least one root directory is required")
	}

	if opts.OnConflict == "" {
		opts.OnConflict = Skip
	}

	return &Renamer{rule: rule, roots: roots, opts: opts}, nil
}

func (r *Renamer) Rule() Rule {
	return r.rule
}

func (r *Renamer) Roots() []string {
	return r.roots
}

func (r *Renamer) excluded(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return false
	}

	rel = filepath.ToSlash(rel)

	for _, pattern := range r.opts.Exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}

	return false
}

// Scan walks every root and returns the plan: one Planned action per file the
// rule matches, sorted by source path. Directory entries are visited by a
// parallel walker, so listing order is arbitrary; sorting makes the plan
// deterministic. Scan never modifies the filesystem.
func (r *Renamer) Scan(ctx context.Context) ([]Action, error) {
	var (
		mu      sync.Mutex
		actions []Action
	)

	conf := fastwalk.Config{Follow: r.opts.Follow, NumWorkers: r.opts.Workers}

	for _, root := range r.roots {
		err := fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			if err != nil {
				return fmt.Errorf("failed to access path at %q: %w", path, err)
			}

			if d.IsDir() {
				if path != root && r.excluded(root, path) {
					return fs.SkipDir
				}

				return nil
			}

			if r.excluded(root, path) || !r.rule.Matches(path) {
				return nil
			}

			mu.Lock()
			actions = append(actions, Action{Source: path, Dest: r.rule.Dest(path), Status: Planned})
			mu.Unlock()

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan %q: %w", root, err)
		}
	}

	sort.Slice(actions, func(i, j int) bool { return actions[i].Source < actions[j].Source })

	if r.opts.Follow {
		actions = dedupeResolved(actions)
	}

	return actions, nil
}

// dedupeResolved drops plan entries that reach the same file twice, once
// through a followed directory symlink and once through the real path.
// The entry whose source already is the resolved path wins, so a planned
// rename of the link itself cannot strand link-path entries of its subtree.
func dedupeResolved(actions []Action) []Action {
	resolved := make([]string, len(actions))
	winner := make(map[string]int, len(actions))

	for i := range actions {
		target, err := filepath.EvalSymlinks(actions[i].Source)
		if err != nil {
			target = actions[i].Source
		}

		resolved[i] = target

		j, ok := winner[target]
		if !ok || (actions[i].Source == target && actions[j].Source != target) {
			winner[target] = i
		}
	}

	kept := actions[:0]

	for i := range actions {
		if winner[resolved[i]] == i {
			kept = append(kept, actions[i])
		}
	}

	return kept
}

// Apply performs the renames in plan order, one blocking os.Rename per file.
// Each action's Status records the outcome. With the Fail policy the first
// existing destination aborts the rest of the plan; the returned error then
// wraps [ErrConflict]. Other failures are recorded and joined, and do not
// stop the remaining renames.
func (r *Renamer) Apply(ctx context.Context, plan []Action) ([]Action, error) {
	var errs []error

	done := make([]Action, len(plan))

	for i, action := range plan {
		done[i] = action

		select {
		case <-ctx.Done():
			done[i].Status = Skipped
			done[i].Reason = ctx.Err().Error()

			continue
		default:
		}

		if _, err := os.Lstat(action.Dest); err == nil {
			switch r.opts.OnConflict {
			case Fail:
				done[i].Status = Failed
				done[i].Reason = "destination exists"

				return done[:i+1], fmt.Errorf("%w: %q", ErrConflict, action.Dest)
			case Skip:
				done[i].Status = Skipped
				done[i].Reason = "destination exists"

				continue
			case Overwrite:
			}
		}

		if err := os.Rename(action.Source, action.Dest); err != nil {
			done[i].Status = Failed
			done[i].Reason = err.Error()

			errs = append(errs, fmt.Errorf("failed to rename file %q: %w", action.Source, err))

			continue
		}

		done[i].Status = Renamed
	}

	return done, errors.Join(errs...)
}
