package shared

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/runoshun/buildmenu/internal/domain"
)

// ValidateProject checks that the project root is an existing directory and,
// when a marker is configured, that the marker file exists inside it.
// Both failures wrap domain.ErrConfigurationMissing.
func ValidateProject(p domain.ProjectConfig) error {
	if p.Root == "" {
		return fmt.Errorf("%w: project root not set", domain.ErrConfigurationMissing)
	}
	info, err := os.Stat(p.Root)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: project directory not found: %s", domain.ErrConfigurationMissing, p.Root)
	}
	if p.Marker == "" {
		return nil
	}
	if _, err := os.Stat(filepath.Join(p.Root, p.Marker)); err != nil {
		return fmt.Errorf("%w: %s not found in %s", domain.ErrConfigurationMissing, p.Marker, p.Root)
	}
	return nil
}
