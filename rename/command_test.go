package rename

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reportDoc struct {
	Rule struct {
		From string `yaml:"from"`
		To   string `yaml:"to"`
	} `yaml:"rule"`
	DryRun  bool `yaml:"dry-run"`
	Renamed int  `yaml:"renamed"`
	Actions []struct {
		Source string `yaml:"source"`
		Dest   string `yaml:"dest"`
		Status string `yaml:"status"`
	} `yaml:"actions"`
}

// Create an ExtCmd with its fields already filled with valid values.
// We don't test CLI parsing in unit tests.
func newExtCmd(roots ...string) ExtCmd {
	return ExtCmd{
		Roots:  roots,
		From:   DefaultFrom,
		To:     DefaultTo,
		Format: "text",
	}
}

func TestExtCmdRun(t *testing.T) {
	tempDir := t.TempDir()

	makeTree(t, tempDir, "a.h", "sub/b.h", "keep.c")

	outFile := filepath.Join(tempDir, "report.txt")

	cmd := newExtCmd(tempDir)
	cmd.Out = outFile

	require.NoError(t, cmd.AfterApply(nil))
	require.NoError(t, cmd.Run())

	assert.True(t, exists(t, tempDir, "a.hpp"))
	assert.True(t, exists(t, tempDir, "sub/b.hpp"))
	assert.True(t, exists(t, tempDir, "keep.c"))
	assert.False(t, exists(t, tempDir, "a.h"))

	contents, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "renamed 2, skipped 0, failed 0.")
}

func TestExtCmdDryRun(t *testing.T) {
	tempDir := t.TempDir()

	makeTree(t, tempDir, "a.h", "sub/b.h")

	outFile := filepath.Join(tempDir, "report.txt")

	cmd := newExtCmd(tempDir)
	cmd.DryRun = true
	cmd.Out = outFile

	require.NoError(t, cmd.AfterApply(nil))
	require.NoError(t, cmd.Run())

	// the plan is printed, the tree is untouched
	assert.True(t, exists(t, tempDir, "a.h"))
	assert.True(t, exists(t, tempDir, "sub/b.h"))
	assert.False(t, exists(t, tempDir, "a.hpp"))

	contents, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(contents), `2 file(s) would be renamed from ".h" to ".hpp".`)
}

func TestExtCmdYAMLReport(t *testing.T) {
	tempDir := t.TempDir()

	makeTree(t, tempDir, "a.h", "b.h")

	outFile := filepath.Join(tempDir, "report.yaml")

	cmd := newExtCmd(tempDir)
	cmd.Format = "yaml"
	cmd.Out = outFile

	require.NoError(t, cmd.AfterApply(nil))
	require.NoError(t, cmd.Run())

	contents, err := os.ReadFile(outFile)
	require.NoError(t, err)

	var doc reportDoc

	err = yaml.Unmarshal(contents, &doc)
	require.NoError(t, err)

	assert.Equal(t, ".h", doc.Rule.From)
	assert.Equal(t, ".hpp", doc.Rule.To)
	assert.False(t, doc.DryRun)
	assert.Equal(t, 2, doc.Renamed)
	require.Len(t, doc.Actions, 2)
	assert.Equal(t, string(Renamed), doc.Actions[0].Status)
	assert.Equal(t, filepath.Join(tempDir, "a.h"), doc.Actions[0].Source)
	assert.Equal(t, filepath.Join(tempDir, "a.hpp"), doc.Actions[0].Dest)
}

func TestExtCmdConfigDefaults(t *testing.T) {
	tempDir := t.TempDir()

	makeTree(t, tempDir, "a.cc", "b.h", "vendor/c.cc")

	configContents := "from = \".cc\"\nto = \".cpp\"\nexclude = [\"vendor/**\"]\n"

	err := os.WriteFile(filepath.Join(tempDir, ".renamekit.toml"), []byte(configContents), 0600)
	require.NoError(t, err)

	cmd := newExtCmd(tempDir)

	require.NoError(t, cmd.AfterApply(nil))

	// flags still at their defaults picked up the file values
	assert.Equal(t, ".cc", cmd.From)
	assert.Equal(t, ".cpp", cmd.To)
	assert.Equal(t, []string{"vendor/**"}, cmd.Exclude)

	require.NoError(t, cmd.Run())

	assert.True(t, exists(t, tempDir, "a.cpp"))
	assert.True(t, exists(t, tempDir, "b.h"))
	assert.True(t, exists(t, tempDir, "vendor/c.cc"))
}

func TestExtCmdExplicitFlagsBeatConfig(t *testing.T) {
	tempDir := t.TempDir()

	makeTree(t, tempDir, "a.txt", "b.cc")

	configContents := "from = \".cc\"\nto = \".cpp\"\n"

	err := os.WriteFile(filepath.Join(tempDir, ".renamekit.toml"), []byte(configContents), 0600)
	require.NoError(t, err)

	cmd := newExtCmd(tempDir)
	cmd.From = ".txt"
	cmd.To = ".md"

	require.NoError(t, cmd.AfterApply(nil))

	assert.Equal(t, ".txt", cmd.From)
	assert.Equal(t, ".md", cmd.To)

	require.NoError(t, cmd.Run())

	assert.True(t, exists(t, tempDir, "a.md"))
	assert.True(t, exists(t, tempDir, "b.cc"))
}

func TestExtCmdExplicitDefaultBeatsConfig(t *testing.T) {
	tempDir := t.TempDir()

	makeTree(t, tempDir, "a.h", "b.cc")

	configContents := "from = \".cc\"\nto = \".cpp\"\n"

	err := os.WriteFile(filepath.Join(tempDir, ".renamekit.toml"), []byte(configContents), 0600)
	require.NoError(t, err)

	var cli struct {
		Ext ExtCmd `cmd:"" name:"ext"`
	}

	parser, err := kong.New(&cli)
	require.NoError(t, err)

	outFile := filepath.Join(tempDir, "report.txt")

	// passing the built-in defaults explicitly must still beat the file
	kctx, err := parser.Parse([]string{"ext", "--from", ".h", "--to", ".hpp", "--out", outFile, tempDir})
	require.NoError(t, err)

	assert.Equal(t, ".h", cli.Ext.From)
	assert.Equal(t, ".hpp", cli.Ext.To)

	require.NoError(t, kctx.Run())

	assert.True(t, exists(t, tempDir, "a.hpp"))
	assert.True(t, exists(t, tempDir, "b.cc"))
	assert.False(t, exists(t, tempDir, "b.cpp"))
}

func TestExtCmdBadRule(t *testing.T) {
	cmd := newExtCmd(t.TempDir())
	cmd.To = ".x.h"

	err := cmd.AfterApply(nil)
	require.ErrorIs(t, err, ErrBadRule)
}
