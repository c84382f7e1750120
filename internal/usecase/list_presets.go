package usecase

import (
	"context"

	"github.com/runoshun/buildmenu/internal/domain"
)

// PresetSummary describes a built-in preset.
type PresetSummary struct {
	Name        string
	Title       string
	Description string
	Default     string
	Options     int
	Active      bool // The preset selected by the current configuration
}

// ListPresetsOutput contains the built-in presets in name order.
type ListPresetsOutput struct {
	Presets []PresetSummary
}

// ListPresets lists the built-in menu presets.
type ListPresets struct {
	active string
}

// NewListPresets creates a new ListPresets use case.
// active is the preset name selected by configuration ("" when custom options are used).
func NewListPresets(active string) *ListPresets {
	return &ListPresets{active: active}
}

// Execute returns the preset summaries.
func (uc *ListPresets) Execute(_ context.Context) (*ListPresetsOutput, error) {
	names := domain.PresetNames()
	out := &ListPresetsOutput{Presets: make([]PresetSummary, 0, len(names))}
	for _, name := range names {
		p, _ := domain.LookupPreset(name)
		out.Presets = append(out.Presets, PresetSummary{
			Name:        name,
			Title:       p.Title,
			Description: p.Description,
			Default:     p.Default,
			Options:     len(p.Options),
			Active:      name == uc.active,
		})
	}
	return out, nil
}
