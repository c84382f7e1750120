package cli

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/runoshun/buildmenu/internal/app"
	"github.com/runoshun/buildmenu/internal/domain"
	"github.com/runoshun/buildmenu/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeApp builds containers backed by mocks and records the options it was given.
type fakeApp struct {
	err    error
	cfg    *domain.Config
	runner *testutil.MockCommandRunner
	opts   []app.Options
}

func newFakeApp(t *testing.T) *fakeApp {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, domain.DefaultMarker), nil, 0644))

	cfg := domain.NewDefaultConfig()
	cfg.Project.Root = root
	return &fakeApp{cfg: cfg, runner: testutil.NewMockCommandRunner()}
}

func (f *fakeApp) factory(opts app.Options) (*app.Container, error) {
	f.opts = append(f.opts, opts)
	if f.err != nil {
		return nil, f.err
	}
	return app.NewWithDeps(
		app.Config{ProjectRoot: f.cfg.Project.Root},
		f.cfg,
		f.runner,
		&testutil.MockRepoInspector{},
		&testutil.MockClock{},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	), nil
}

func executeRoot(t *testing.T, f *fakeApp, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCommand(f.factory, "test-version")
	var stdout, stderr bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommand_DefaultSelection(t *testing.T) {
	f := newFakeApp(t)

	out, _, err := executeRoot(t, f, "\n")

	require.NoError(t, err)
	assert.Equal(t, []string{"pretext view web"}, f.runner.CalledCommands())
	assert.Contains(t, out, "Choose an option:")
	assert.Contains(t, out, "Enter choice (1-4, default=1): ")
	assert.Contains(t, out, "Done!")
}

func TestRootCommand_TypedSelection(t *testing.T) {
	f := newFakeApp(t)

	_, _, err := executeRoot(t, f, "4\n")

	require.NoError(t, err)
	assert.Equal(t, []string{"pretext build print"}, f.runner.CalledCommands())
}

func TestRootCommand_ChoiceFlag(t *testing.T) {
	f := newFakeApp(t)

	out, _, err := executeRoot(t, f, "", "--choice", "2")

	require.NoError(t, err)
	assert.Equal(t, []string{"pretext build web --no-generate", "pretext view web"}, f.runner.CalledCommands())
	assert.NotContains(t, out, "Enter choice")
}

func TestRootCommand_UnknownSelection(t *testing.T) {
	f := newFakeApp(t)

	_, _, err := executeRoot(t, f, "7\n")

	assert.ErrorIs(t, err, domain.ErrUnknownSelection)
	assert.Empty(t, f.runner.Calls)
}

func TestRootCommand_StepFailure(t *testing.T) {
	f := newFakeApp(t)
	f.runner.Results["pretext build web --no-generate"] = domain.ExecutionResult{ExitCode: 2}

	out, _, err := executeRoot(t, f, "2\n")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStepFailed)
	var stepErr *domain.StepFailedError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, 2, stepErr.Result.ExitCode)
	assert.Len(t, f.runner.Calls, 1)
	assert.Contains(t, out, "✗ Step failed (exit code 2): pretext build web --no-generate")
}

func TestRootCommand_MissingProject(t *testing.T) {
	f := newFakeApp(t)
	f.cfg.Project.Root = filepath.Join(f.cfg.Project.Root, "missing")

	_, _, err := executeRoot(t, f, "1\n")

	assert.ErrorIs(t, err, domain.ErrConfigurationMissing)
	assert.Empty(t, f.runner.Calls)
}

func TestRootCommand_PassesOptions(t *testing.T) {
	f := newFakeApp(t)

	_, _, err := executeRoot(t, f, "\n",
		"/books/lc-maths",
		"--preset", "rebuild",
		"--tool", "/usr/local/bin/pretext",
		"--config", "/tmp/extra.toml",
		"--log-level", "debug",
	)

	require.NoError(t, err)
	require.Len(t, f.opts, 1)
	assert.Equal(t, app.Options{
		ProjectRoot: "/books/lc-maths",
		ConfigPath:  "/tmp/extra.toml",
		Preset:      "rebuild",
		Tool:        "/usr/local/bin/pretext",
		LogLevel:    "debug",
	}, f.opts[0])
}

func TestRootCommand_TooManyArgs(t *testing.T) {
	f := newFakeApp(t)

	_, _, err := executeRoot(t, f, "", "a", "b")

	assert.Error(t, err)
	assert.Empty(t, f.opts)
}

func TestRootCommand_FactoryError(t *testing.T) {
	f := newFakeApp(t)
	f.err = errors.New("load config: broken")

	_, _, err := executeRoot(t, f, "\n")

	assert.EqualError(t, err, "load config: broken")
	assert.Empty(t, f.runner.Calls)
}

func TestRootCommand_PrintsConfigWarnings(t *testing.T) {
	f := newFakeApp(t)
	f.cfg.Warnings = []string{"unknown key: menu.colour"}

	_, stderr, err := executeRoot(t, f, "\n")

	require.NoError(t, err)
	assert.Contains(t, stderr, "Warning: unknown key: menu.colour")
}

func TestRootCommand_TUI(t *testing.T) {
	originalFunc := newPickerFunc
	defer func() {
		newPickerFunc = originalFunc
	}()

	picker := &testutil.MockPicker{Key: "3"}
	var gotProject string
	newPickerFunc = func(_ io.Reader, _ io.Writer, project string) domain.SelectionPicker {
		gotProject = project
		return picker
	}

	f := newFakeApp(t)
	_, _, err := executeRoot(t, f, "", "--tui")

	require.NoError(t, err)
	assert.True(t, picker.Called)
	assert.Equal(t, f.cfg.Project.Root, gotProject)
	assert.Equal(t, []string{"pretext build web -g", "pretext view web"}, f.runner.CalledCommands())
}

func TestRootCommand_TUIIgnoredWithChoice(t *testing.T) {
	originalFunc := newPickerFunc
	defer func() {
		newPickerFunc = originalFunc
	}()

	called := false
	newPickerFunc = func(_ io.Reader, _ io.Writer, _ string) domain.SelectionPicker {
		called = true
		return &testutil.MockPicker{}
	}

	f := newFakeApp(t)
	_, _, err := executeRoot(t, f, "", "--tui", "-c", "1")

	require.NoError(t, err)
	assert.False(t, called)
}

func TestRootCommand_Help(t *testing.T) {
	f := newFakeApp(t)

	out, _, err := executeRoot(t, f, "", "--help")

	assert.NoError(t, err)
	assert.Contains(t, out, "buildmenu [project-root]")
	assert.Empty(t, f.opts, "help does not build the container")
	assert.Empty(t, f.runner.Calls)
}

func TestRootCommand_Version(t *testing.T) {
	f := newFakeApp(t)

	out, _, err := executeRoot(t, f, "", "--version")

	assert.NoError(t, err)
	assert.Contains(t, out, "test-version")
}
