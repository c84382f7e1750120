package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/buildmenu/internal/domain"
)

// ShowMenuInput contains the input for the ShowMenu use case.
type ShowMenuInput struct{}

// ShowMenuOutput contains the resolved menu.
type ShowMenuOutput struct {
	Menu        *domain.Menu
	ProjectRoot string
}

// ShowMenu resolves the configured menu without running anything.
// The project root is not validated so the menu can be inspected anywhere.
type ShowMenu struct {
	cfg *domain.Config
}

// NewShowMenu creates a new ShowMenu use case.
func NewShowMenu(cfg *domain.Config) *ShowMenu {
	return &ShowMenu{cfg: cfg}
}

// Execute builds the menu from configuration.
func (uc *ShowMenu) Execute(_ context.Context, _ ShowMenuInput) (*ShowMenuOutput, error) {
	menu, err := uc.cfg.BuildMenu()
	if err != nil {
		return nil, fmt.Errorf("build menu: %w", err)
	}
	return &ShowMenuOutput{
		Menu:        menu,
		ProjectRoot: uc.cfg.Project.Root,
	}, nil
}
