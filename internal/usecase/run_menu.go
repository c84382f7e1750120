// Package usecase contains the application use cases.
package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/buildmenu/internal/domain"
	"github.com/runoshun/buildmenu/internal/usecase/shared"
)

// RunMenuInput contains the parameters for one dispatch.
type RunMenuInput struct {
	Picker domain.SelectionPicker // Full-screen picker used instead of the line prompt (optional)
	Choice string                 // Preselected key; skips the prompt when set
}

// RunMenuOutput contains the result of a dispatch.
type RunMenuOutput struct {
	Option domain.MenuOption
	Result domain.ExecutionResult
}

// RunMenu validates the project, presents the menu, reads a selection and
// executes the selected option.
// Fields are ordered to minimize memory padding.
type RunMenu struct {
	cfg    *domain.Config
	runner domain.CommandRunner
	repo   domain.RepoInspector
	logger domain.Logger
	clock  domain.Clock
	stdio  DispatcherIO
}

// NewRunMenu creates a new RunMenu use case.
func NewRunMenu(
	cfg *domain.Config,
	runner domain.CommandRunner,
	repo domain.RepoInspector,
	logger domain.Logger,
	clock domain.Clock,
	stdio DispatcherIO,
) *RunMenu {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &RunMenu{
		cfg:    cfg,
		runner: runner,
		repo:   repo,
		logger: logger,
		clock:  clock,
		stdio:  stdio,
	}
}

// Execute performs one dispatch. Every error is terminal for the invocation.
func (uc *RunMenu) Execute(ctx context.Context, in RunMenuInput) (*RunMenuOutput, error) {
	if err := shared.ValidateProject(uc.cfg.Project); err != nil {
		uc.logger.Error("", "dispatch", err.Error())
		return nil, err
	}

	menu, err := uc.cfg.BuildMenu()
	if err != nil {
		return nil, fmt.Errorf("build menu: %w", err)
	}

	d := NewDispatcher(menu, uc.runner, uc.logger, uc.clock, uc.stdio)
	uc.printBanner(menu)

	key := in.Choice
	switch {
	case key != "":
		uc.logger.Debug("", "dispatch", fmt.Sprintf("choice %q given on command line", key))
	case in.Picker != nil:
		key, err = in.Picker.Pick(menu)
		if err != nil {
			return nil, err
		}
	default:
		d.PresentMenu()
		key, err = d.ReadSelection(menu.DefaultKey)
		if err != nil {
			return nil, err
		}
	}

	opt, err := d.Resolve(key)
	if err != nil {
		return nil, err
	}

	result, err := d.Execute(ctx, opt)
	if err != nil {
		return &RunMenuOutput{Option: opt, Result: result}, err
	}

	out := uc.stdio.Out
	_, _ = fmt.Fprintln(out, bannerLine)
	_, _ = fmt.Fprintln(out, "Done!")
	_, _ = fmt.Fprintln(out, bannerLine)

	return &RunMenuOutput{Option: opt, Result: result}, nil
}

func (uc *RunMenu) printBanner(menu *domain.Menu) {
	out := uc.stdio.Out
	_, _ = fmt.Fprintln(out, bannerLine)
	_, _ = fmt.Fprintln(out, menu.Title)
	_, _ = fmt.Fprintln(out, bannerLine)

	project := uc.cfg.Project.Root
	if uc.repo != nil {
		info, ok, err := uc.repo.Describe(project)
		switch {
		case err != nil:
			uc.logger.Debug("", "git", err.Error())
		case ok:
			if s := info.Summary(); s != "" {
				project = fmt.Sprintf("%s (%s)", project, s)
			}
		}
	}
	_, _ = fmt.Fprintf(out, "Project: %s\n\n", project)
}
