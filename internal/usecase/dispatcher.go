package usecase

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/runoshun/buildmenu/internal/domain"
)

// Separator widths match the banner drawn around the menu.
const separatorWidth = 60

var (
	bannerLine = strings.Repeat("=", separatorWidth)
	stepLine   = strings.Repeat("-", separatorWidth)
)

// DispatcherIO holds the streams a Dispatcher talks to.
type DispatcherIO struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// Dispatcher translates one user selection into a gated sequence of
// external process executions.
// Fields are ordered to minimize memory padding.
type Dispatcher struct {
	menu   *domain.Menu
	runner domain.CommandRunner
	logger domain.Logger
	clock  domain.Clock
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer
}

// NewDispatcher creates a new Dispatcher for a static menu.
func NewDispatcher(
	menu *domain.Menu,
	runner domain.CommandRunner,
	logger domain.Logger,
	clock domain.Clock,
	stdio DispatcherIO,
) *Dispatcher {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	if clock == nil {
		clock = domain.RealClock{}
	}
	in := stdio.In
	if in == nil {
		in = strings.NewReader("")
	}
	return &Dispatcher{
		menu:   menu,
		runner: runner,
		logger: logger,
		clock:  clock,
		in:     bufio.NewReader(in),
		out:    stdio.Out,
		errOut: stdio.ErrOut,
	}
}

// PresentMenu prints the ordered option list. It has no other effect.
func (d *Dispatcher) PresentMenu() {
	_, _ = fmt.Fprintln(d.out, "Choose an option:")
	for _, o := range d.menu.Options() {
		_, _ = fmt.Fprintf(d.out, "  %s. %s\n", o.Key, o.Label)
	}
	_, _ = fmt.Fprintln(d.out)
}

// ReadSelection prompts for and reads one line of input.
// Empty input returns defaultKey unchanged; otherwise the trimmed line is returned verbatim.
func (d *Dispatcher) ReadSelection(defaultKey string) (string, error) {
	_, _ = fmt.Fprintf(d.out, "Enter choice (%s, default=%s): ", d.menu.KeyRange(), defaultKey)

	line, err := d.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read selection: %w", err)
	}
	_, _ = fmt.Fprintln(d.out)

	choice := strings.TrimSpace(line)
	if choice == "" {
		return defaultKey, nil
	}
	return choice, nil
}

// Resolve looks up key in the menu.
func (d *Dispatcher) Resolve(key string) (domain.MenuOption, error) {
	opt, err := d.menu.Lookup(key)
	if err != nil {
		d.logger.Warn("", "dispatch", fmt.Sprintf("invalid choice %q", key))
		return domain.MenuOption{}, err
	}
	return opt, nil
}

// Execute runs the option's steps in order and stops at the first step that
// does not succeed, returning that step's result with a *domain.StepFailedError.
// When every step succeeds the last result is returned; an option without
// steps succeeds trivially.
func (d *Dispatcher) Execute(ctx context.Context, opt domain.MenuOption) (domain.ExecutionResult, error) {
	result := domain.ExecutionResult{ExitCode: 0}
	steps := opt.Steps()

	d.logger.Info(opt.Key, "dispatch", fmt.Sprintf("selected %q (%d steps)", opt.Label, len(steps)))

	for i, step := range steps {
		if step.Message != "" {
			_, _ = fmt.Fprintln(d.out, step.Message)
		}
		_, _ = fmt.Fprintf(d.out, "Running: %s\n", step)
		_, _ = fmt.Fprintln(d.out, stepLine)

		d.logger.Info(opt.Key, "step", fmt.Sprintf("[%d/%d] %s (dir=%s)", i+1, len(steps), step, step.Dir))
		start := d.clock.Now()

		res, err := d.runner.Run(ctx, step, d.out, d.errOut)
		_, _ = fmt.Fprintln(d.out)

		elapsed := d.clock.Now().Sub(start)
		if err != nil {
			d.logger.Error(opt.Key, "step", fmt.Sprintf("%s: %v", step, err))
			_, _ = fmt.Fprintf(d.out, "✗ Could not run %s: %v\n", step, err)
			return res, &domain.StepFailedError{Step: step, Result: res, Cause: err}
		}
		if !res.Success() {
			d.logger.Error(opt.Key, "step", fmt.Sprintf("%s exited with %d after %s", step, res.ExitCode, elapsed))
			_, _ = fmt.Fprintf(d.out, "✗ Step failed (exit code %d): %s\n", res.ExitCode, step)
			return res, &domain.StepFailedError{Step: step, Result: res}
		}

		d.logger.Info(opt.Key, "step", fmt.Sprintf("%s succeeded in %s", step, elapsed))
		result = res
	}

	return result, nil
}
