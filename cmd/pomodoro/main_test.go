package main

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/storage"
	"pomodoro/internal/tasks"
	"pomodoro/internal/ui/preferences"
)

type cliHarness struct {
	dir string
}

func newHarness(t *testing.T) cliHarness {
	return cliHarness{dir: t.TempDir()}
}

func (harness cliHarness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	base := []string{
		"--config", filepath.Join(harness.dir, "settings.yaml"),
		"--tasks-db", filepath.Join(harness.dir, "tasks.db"),
	}

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append(base, args...))
	err := root.Execute()
	return out.String(), err
}

func TestTasksAddAndList(t *testing.T) {
	harness := newHarness(t)

	out, err := harness.run(t, "tasks", "add", "write", "report", "-p", "high")
	require.NoError(t, err)
	assert.Equal(t, "added task 1\n", out)

	_, err = harness.run(t, "tasks", "add", "review")
	require.NoError(t, err)

	out, err = harness.run(t, "tasks", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "1  [ ]  High    write report")
	assert.Contains(t, out, "2  [ ]  Medium  review")
}

func TestTasksDoneEditRemove(t *testing.T) {
	harness := newHarness(t)
	_, err := harness.run(t, "tasks", "add", "one")
	require.NoError(t, err)
	_, err = harness.run(t, "tasks", "add", "two")
	require.NoError(t, err)

	_, err = harness.run(t, "tasks", "done", "2")
	require.NoError(t, err)
	_, err = harness.run(t, "tasks", "edit", "2", "second", "-p", "low")
	require.NoError(t, err)
	_, err = harness.run(t, "tasks", "rm", "1")
	require.NoError(t, err)

	out, err := harness.run(t, "tasks", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "1  [x]  Low  second")
	assert.NotContains(t, out, "one")
}

func TestTasksEditKeepsPriorityByDefault(t *testing.T) {
	harness := newHarness(t)
	_, err := harness.run(t, "tasks", "add", "draft", "-p", "high")
	require.NoError(t, err)

	_, err = harness.run(t, "tasks", "edit", "1", "final")
	require.NoError(t, err)

	out, err := harness.run(t, "tasks", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "High  final")
}

func TestTasksErrors(t *testing.T) {
	harness := newHarness(t)

	_, err := harness.run(t, "tasks", "done", "1")
	assert.ErrorIs(t, err, tasks.ErrIndexOutOfRange)

	_, err = harness.run(t, "tasks", "rm", "zero")
	assert.Error(t, err)

	_, err = harness.run(t, "tasks", "add", "x", "-p", "urgent")
	assert.ErrorIs(t, err, tasks.ErrUnknownPriority)

	_, err = harness.run(t, "tasks", "add", "   ")
	assert.ErrorIs(t, err, tasks.ErrEmptyTitle)
}

func TestEmptyList(t *testing.T) {
	out, err := newHarness(t).run(t, "tasks", "list")
	require.NoError(t, err)
	assert.Equal(t, "no tasks\n", out)
}

func TestEphemeralStoreDoesNotPersist(t *testing.T) {
	harness := newHarness(t)
	_, err := harness.run(t, "--ephemeral", "tasks", "add", "gone")
	require.NoError(t, err)

	out, err := harness.run(t, "tasks", "list")
	require.NoError(t, err)
	assert.Equal(t, "no tasks\n", out)
}

func TestApplyOverrides(t *testing.T) {
	opts := &options{}
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().DurationVar(&opts.work, "work", 0, "")
	cmd.Flags().DurationVar(&opts.rest, "break", 0, "")
	cmd.Flags().StringVar(&opts.tasksDB, "tasks-db", "", "")
	require.NoError(t, cmd.Flags().Parse([]string{"--work", "25m", "--tasks-db", "/tmp/t.db"}))

	got := opts.applyOverrides(cmd, preferences.DefaultSettings())

	assert.Equal(t, 25*time.Minute, got.WorkDuration)
	assert.Equal(t, preferences.DefaultSettings().BreakDuration, got.BreakDuration)
	assert.Equal(t, "/tmp/t.db", got.TasksDBPath)
}

func TestParseTaskNumber(t *testing.T) {
	index, err := parseTaskNumber("3")
	require.NoError(t, err)
	assert.Equal(t, 2, index)

	for _, bad := range []string{"0", "-1", "x"} {
		_, err := parseTaskNumber(bad)
		assert.Error(t, err, bad)
	}
}

func TestTasksClear(t *testing.T) {
	harness := newHarness(t)

	out, err := harness.run(t, "tasks", "clear")
	require.NoError(t, err)
	assert.Equal(t, "no tasks\n", out)

	_, err = harness.run(t, "tasks", "add", "one")
	require.NoError(t, err)
	_, err = harness.run(t, "tasks", "add", "two")
	require.NoError(t, err)

	out, err = harness.run(t, "tasks", "clear")
	require.NoError(t, err)
	assert.Equal(t, "cleared tasks\n", out)

	out, err = harness.run(t, "tasks", "list")
	require.NoError(t, err)
	assert.Equal(t, "no tasks\n", out)
}

func TestFlagOverridesAreNotSaved(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "settings.yaml")
	fileDB := filepath.Join(dir, "file.db")
	runDB := filepath.Join(dir, "run.db")

	saved := preferences.DefaultSettings()
	saved.TasksDBPath = fileDB
	require.NoError(t, storage.SaveSettingsFile(configPath, saved))

	opts := &options{}
	root := newRootCmd()
	root.SetArgs([]string{"--config", configPath, "--work", "10m", "--tasks-db", runDB, "tasks", "list"})
	root.SetOut(&bytes.Buffer{})
	cmd, err := root.ExecuteC()
	require.NoError(t, err)

	opts.configPath = configPath
	opts.work = 10 * time.Minute
	opts.tasksDB = runDB
	env, err := opts.load(cmd, "")
	require.NoError(t, err)
	defer env.Close()

	assert.Equal(t, 10*time.Minute, env.settings.WorkDuration)
	assert.Equal(t, runDB, env.settings.TasksDBPath)
	assert.Equal(t, preferences.DefaultSettings().WorkDuration, env.fileSettings.WorkDuration)
	assert.Equal(t, fileDB, env.fileSettings.TasksDBPath)

	edited := env.fileSettings
	edited.BreakDuration = 7 * time.Minute
	require.NoError(t, env.saveSettings(edited))

	onDisk, err := storage.LoadSettingsFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings().WorkDuration, onDisk.WorkDuration)
	assert.Equal(t, 7*time.Minute, onDisk.BreakDuration)
	assert.Equal(t, fileDB, onDisk.TasksDBPath)

	assert.Equal(t, 7*time.Minute, env.settings.BreakDuration)
	assert.Equal(t, runDB, env.settings.TasksDBPath)
}
