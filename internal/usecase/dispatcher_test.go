package usecase

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/runoshun/buildmenu/internal/domain"
	"github.com/runoshun/buildmenu/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	stepA = domain.NewCommandStep("tool", []string{"a"}, "/book")
	stepB = domain.NewCommandStep("tool", []string{"b"}, "/book")
	stepC = domain.NewCommandStep("tool", []string{"c"}, "/book")
)

func newTestMenu(t *testing.T) *domain.Menu {
	t.Helper()
	menu, err := domain.NewMenu("Test Book", "2", []domain.MenuOption{
		domain.NewMenuOption("1", "Only A", []domain.CommandStep{stepA}),
		domain.NewMenuOption("2", "A then B then C", []domain.CommandStep{stepA, stepB, stepC}),
		domain.NewMenuOption("3", "Nothing", nil),
	})
	require.NoError(t, err)
	return menu
}

func newTestDispatcher(t *testing.T, input string, runner *testutil.MockCommandRunner) (*Dispatcher, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	d := NewDispatcher(newTestMenu(t), runner, nil, nil, DispatcherIO{
		In:     strings.NewReader(input),
		Out:    &out,
		ErrOut: &bytes.Buffer{},
	})
	return d, &out
}

func TestDispatcher_PresentMenu(t *testing.T) {
	d, out := newTestDispatcher(t, "", testutil.NewMockCommandRunner())

	d.PresentMenu()

	assert.Equal(t, "Choose an option:\n  1. Only A\n  2. A then B then C\n  3. Nothing\n\n", out.String())
}

func TestDispatcher_PresentMenu_Idempotent(t *testing.T) {
	d, out := newTestDispatcher(t, "", testutil.NewMockCommandRunner())

	d.PresentMenu()
	first := out.String()
	out.Reset()
	d.PresentMenu()

	assert.Equal(t, first, out.String())
}

func TestDispatcher_ReadSelection(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty line returns default", "\n", "2"},
		{"EOF returns default", "", "2"},
		{"whitespace returns default", "   \n", "2"},
		{"trimmed input", "  3 \n", "3"},
		{"unknown key returned verbatim", "banana\n", "banana"},
		{"input without newline", "1", "1"},
		{"only first line is read", "1\n3\n", "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, out := newTestDispatcher(t, tt.input, testutil.NewMockCommandRunner())

			got, err := d.ReadSelection("2")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Enter choice (1-3, default=2): ")
		})
	}
}

func TestDispatcher_ReadSelection_ReturnsDefaultUnchanged(t *testing.T) {
	d, _ := newTestDispatcher(t, "\n", testutil.NewMockCommandRunner())

	// The default is not trimmed or validated.
	got, err := d.ReadSelection(" x ")
	require.NoError(t, err)
	assert.Equal(t, " x ", got)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("tty closed") }

func TestDispatcher_ReadSelection_ReadError(t *testing.T) {
	d := NewDispatcher(newTestMenu(t), testutil.NewMockCommandRunner(), nil, nil, DispatcherIO{
		In:  failingReader{},
		Out: &bytes.Buffer{},
	})

	_, err := d.ReadSelection("1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read selection")
}

func TestDispatcher_Resolve(t *testing.T) {
	d, _ := newTestDispatcher(t, "", testutil.NewMockCommandRunner())

	opt, err := d.Resolve("1")
	require.NoError(t, err)
	assert.Equal(t, "Only A", opt.Label)

	for _, key := range []string{"0", "4", "", "one", "1 "} {
		_, err := d.Resolve(key)
		assert.ErrorIs(t, err, domain.ErrUnknownSelection, "key %q", key)
	}
}

func TestDispatcher_Execute_AllSucceed(t *testing.T) {
	runner := testutil.NewMockCommandRunner()
	d, out := newTestDispatcher(t, "", runner)
	opt, err := d.Resolve("2")
	require.NoError(t, err)

	result, err := d.Execute(context.Background(), opt)

	require.NoError(t, err)
	assert.True(t, result.Success())
	assert.Equal(t, []string{"tool a", "tool b", "tool c"}, runner.CalledCommands())
	assert.Contains(t, out.String(), "Running: tool a\n"+stepLine+"\n")
	for _, c := range runner.Calls {
		assert.Equal(t, "/book", c.Dir)
	}
}

func TestDispatcher_Execute_StopsAtFirstFailure(t *testing.T) {
	runner := testutil.NewMockCommandRunner()
	runner.Results["tool b"] = domain.ExecutionResult{ExitCode: 1}
	d, out := newTestDispatcher(t, "", runner)
	opt, err := d.Resolve("2")
	require.NoError(t, err)

	result, err := d.Execute(context.Background(), opt)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStepFailed)
	var stepErr *domain.StepFailedError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, "tool b", stepErr.Step.String())
	assert.Equal(t, domain.ExecutionResult{ExitCode: 1}, result)
	assert.Equal(t, result, stepErr.Result)
	assert.Equal(t, []string{"tool a", "tool b"}, runner.CalledCommands())
	assert.Contains(t, out.String(), "✗ Step failed (exit code 1): tool b")
}

func TestDispatcher_Execute_FailureAtEveryPosition(t *testing.T) {
	steps := []domain.CommandStep{stepA, stepB, stepC}
	for i := range steps {
		t.Run(steps[i].String(), func(t *testing.T) {
			runner := testutil.NewMockCommandRunner()
			runner.Results[steps[i].String()] = domain.ExecutionResult{ExitCode: 7}
			d, _ := newTestDispatcher(t, "", runner)

			result, err := d.Execute(context.Background(), domain.NewMenuOption("x", "x", steps))

			assert.ErrorIs(t, err, domain.ErrStepFailed)
			assert.Equal(t, 7, result.ExitCode)
			assert.Len(t, runner.Calls, i+1)
		})
	}
}

func TestDispatcher_Execute_SpawnError(t *testing.T) {
	runner := testutil.NewMockCommandRunner()
	runner.Errors["tool a"] = errors.New("executable file not found")
	d, _ := newTestDispatcher(t, "", runner)
	opt, _ := d.Resolve("2")

	result, err := d.Execute(context.Background(), opt)

	assert.ErrorIs(t, err, domain.ErrStepFailed)
	assert.Contains(t, err.Error(), "executable file not found")
	assert.Equal(t, -1, result.ExitCode)
	assert.Len(t, runner.Calls, 1)
}

func TestDispatcher_Execute_EmptyChainSucceeds(t *testing.T) {
	runner := testutil.NewMockCommandRunner()
	d, _ := newTestDispatcher(t, "", runner)
	opt, err := d.Resolve("3")
	require.NoError(t, err)

	result, err := d.Execute(context.Background(), opt)

	require.NoError(t, err)
	assert.True(t, result.Success())
	assert.Empty(t, runner.Calls)
}

func TestDispatcher_Execute_PrintsStepMessages(t *testing.T) {
	runner := testutil.NewMockCommandRunner()
	d, out := newTestDispatcher(t, "", runner)
	opt := domain.NewMenuOption("1", "Build", []domain.CommandStep{
		stepA.WithMessage("Building web version..."),
		stepB.WithMessage("✓ Build successful! Opening browser..."),
	})

	_, err := d.Execute(context.Background(), opt)
	require.NoError(t, err)

	text := out.String()
	assert.Less(t, strings.Index(text, "Building web version..."), strings.Index(text, "Running: tool a"))
	assert.Less(t, strings.Index(text, "Running: tool a"), strings.Index(text, "Build successful!"))
}

func TestDispatcher_Execute_Logs(t *testing.T) {
	runner := testutil.NewMockCommandRunner()
	runner.Results["tool b"] = domain.ExecutionResult{ExitCode: 2}
	logger := &testutil.MockLogger{}
	d := NewDispatcher(newTestMenu(t), runner, logger, &testutil.MockClock{}, DispatcherIO{Out: &bytes.Buffer{}})
	opt, _ := d.Resolve("2")

	_, _ = d.Execute(context.Background(), opt)

	assert.True(t, logger.Contains("INFO [2] [dispatch]"))
	assert.True(t, logger.Contains("ERROR [2] [step] tool b exited with 2"))
}
