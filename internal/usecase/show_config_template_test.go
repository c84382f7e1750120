package usecase

import (
	"context"
	"testing"

	"github.com/runoshun/buildmenu/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowConfigTemplate_Execute(t *testing.T) {
	tests := []struct {
		name           string
		input          ShowConfigTemplateInput
		wantContains   []string
		wantNotContain []string
	}{
		{
			name:  "default config",
			input: ShowConfigTemplateInput{Config: domain.NewDefaultConfig()},
			wantContains: []string{
				"[project]",
				"[tool]",
				"[menu]",
				`preset = "quick"`,
			},
		},
		{
			name: "active preset is rendered",
			input: ShowConfigTemplateInput{Config: &domain.Config{
				Menu: domain.MenuConfig{Preset: domain.PresetRebuild},
			}},
			wantContains:   []string{`preset = "rebuild"`},
			wantNotContain: []string{`preset = "quick"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewShowConfigTemplate()
			out, err := uc.Execute(context.Background(), tt.input)

			require.NoError(t, err)
			require.NotNil(t, out)

			for _, want := range tt.wantContains {
				assert.Contains(t, out.Template, want, "template should contain %q", want)
			}
			for _, notWant := range tt.wantNotContain {
				assert.NotContains(t, out.Template, notWant, "template should not contain %q", notWant)
			}
		})
	}
}

func TestShowConfigTemplate_Execute_NilConfig(t *testing.T) {
	_, err := NewShowConfigTemplate().Execute(context.Background(), ShowConfigTemplateInput{})
	assert.ErrorIs(t, err, domain.ErrConfigNil)
}
