package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-planner/core/output"
	"recipe-planner/internal/config"
	"recipe-planner/internal/errors"
)

const sticks = "plank = 1 log\nstick = 2 plank\nchest = 8 plank\n4 stick\n"

// resetFlags restores every flag to its default; cobra keeps values between
// executions of the same command tree
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"NO_COLOR", "RECIPE_PLANNER_NO_COLOR", "RECIPE_PLANNER_OUTPUT_FORMAT", "RECIPE_PLANNER_LOG_LEVEL", "RECIPE_PLANNER_LOG_FORMAT"} {
		t.Setenv(key, "")
	}

	original := config.Get()
	t.Cleanup(func() { config.Set(original) })

	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "recipe-planner version 0.1.0\n", out)
}

func TestPlanStdin(t *testing.T) {
	out, err := execute(t, sticks, "plan", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "Materials Required")
	assert.Contains(t, out, "log  │     8")
	assert.Contains(t, out, "ignored 1 recipes not needed for the goal: chest")
	assert.NotContains(t, out, "\033[")
}

func TestPlanVerboseDetails(t *testing.T) {
	out, err := execute(t, sticks, "plan", "--no-color", "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "▸ Details")
	assert.Contains(t, out, "input hash ")

	out, err = execute(t, sticks, "plan", "--no-color")
	require.NoError(t, err)
	assert.NotContains(t, out, "Details")
}

func TestPlanFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sticks.txt")
	require.NoError(t, os.WriteFile(path, []byte(sticks), 0o600))

	out, err := execute(t, "", "plan", "-f", "json", path)
	require.NoError(t, err)

	var doc output.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "log", doc.Materials[0].Item)
	assert.Equal(t, []string{"chest"}, doc.Metadata.Pruned)
}

func TestPlanUsesConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.json")
	cfg := config.Default()
	cfg.Output.Format = "markdown"
	cfg.Output.ShowGoal = true
	require.NoError(t, cfg.Save(cfgPath))

	out, err := execute(t, sticks, "--config", cfgPath, "plan")
	require.NoError(t, err)
	assert.Contains(t, out, "# Crafting Plan")
	assert.Contains(t, out, "## Goal")

	// Flags beat the file
	out, err = execute(t, sticks, "--config", cfgPath, "plan", "--format", "cli", "--show-goal=false", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "Crafting Order")
	assert.NotContains(t, out, "Goal")
}

func TestPlanOutputFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "plan.md")

	out, err := execute(t, sticks, "plan", "-f", "markdown", "-o", target)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "| log | 8 |")
}

func TestPlanErrors(t *testing.T) {
	_, err := execute(t, sticks, "plan", "-f", "yaml")
	assert.True(t, errors.IsType(err, errors.TypeNotSupported), "got %v", err)

	_, err = execute(t, "plank = 1 log\n4 stick\n", "plan")
	assert.True(t, errors.IsType(err, errors.TypeInvalidGraph), "got %v", err)

	_, err = execute(t, "", "plan", "a", "b")
	assert.Error(t, err)
}

func TestGraph(t *testing.T) {
	out, err := execute(t, sticks, "graph")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "digraph recipes {"))
	assert.NotContains(t, out, "chest")

	out, err = execute(t, sticks, "graph", "--unpruned", "--label", "per-craft")
	require.NoError(t, err)
	assert.Contains(t, out, `[label="chest", style=dashed]`)
	assert.Contains(t, out, `n1 -> n3 [label="2"];`)

	_, err = execute(t, sticks, "graph", "--label", "weight")
	assert.True(t, errors.IsType(err, errors.TypeConfiguration), "got %v", err)
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "recipe-planner.json")

	out, err := execute(t, "", "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote default configuration to "+path)

	_, err = execute(t, "", "config", "init", path)
	assert.True(t, errors.IsType(err, errors.TypeConfiguration), "got %v", err)

	_, err = execute(t, "", "config", "init", "--force", path)
	require.NoError(t, err)

	out, err = execute(t, "", "--config", path, "config", "show")
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, *config.Default(), cfg)
}

func TestBrokenConfigFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"output": {"format": "pdf"}}`), 0o600))

	_, err := execute(t, sticks, "--config", path, "plan")
	assert.True(t, errors.IsType(err, errors.TypeConfiguration), "got %v", err)

	// init can still replace it
	_, err = execute(t, "", "--config", path, "config", "init", "--force")
	require.NoError(t, err)
}
