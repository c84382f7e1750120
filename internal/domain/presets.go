package domain

// Built-in menu preset names.
const (
	PresetQuick   = "quick"
	PresetRebuild = "rebuild"
)

// Preset is a named, built-in menu definition.
type Preset struct {
	Title       string
	Default     string
	Description string
	Options     []OptionConfig
}

var (
	stepViewWeb = StepConfig{
		Message: "Opening existing build in browser...",
		Args:    []string{"view", "web"},
	}
	stepOpenAfterBuild = StepConfig{
		Message: "✓ Build successful! Opening browser...",
		Args:    []string{"view", "web"},
	}
	stepBuildPrint = StepConfig{
		Message: "Building PDF version...",
		Args:    []string{"build", "print"},
	}
)

var presets = map[string]Preset{
	PresetQuick: {
		Title:       "Quick Build & View",
		Default:     "1",
		Description: "View, incremental build, full rebuild with assets, or PDF",
		Options: []OptionConfig{
			{Key: "1", Label: "Quick view (no rebuild) - FASTEST", Steps: []StepConfig{stepViewWeb}},
			{Key: "2", Label: "Build and view", Steps: []StepConfig{
				{Message: "Building web version...", Args: []string{"build", "web", "--no-generate"}},
				stepOpenAfterBuild,
			}},
			{Key: "3", Label: "Full rebuild (with asset generation)", Steps: []StepConfig{
				{Message: "Full rebuild with asset generation...", Args: []string{"build", "web", "-g"}},
				stepOpenAfterBuild,
			}},
			{Key: "4", Label: "Build PDF", Steps: []StepConfig{stepBuildPrint}},
		},
	},
	PresetRebuild: {
		Title:       "Book Builder",
		Default:     "2",
		Description: "Build web, build and view, build print, or view",
		Options: []OptionConfig{
			{Key: "1", Label: "Build web (HTML)", Steps: []StepConfig{
				{Message: "Building web version...", Args: []string{"build", "web"}},
			}},
			{Key: "2", Label: "Build web and view", Steps: []StepConfig{
				{Message: "Building web version...", Args: []string{"build", "web"}},
				stepOpenAfterBuild,
			}},
			{Key: "3", Label: "Build print (PDF)", Steps: []StepConfig{stepBuildPrint}},
			{Key: "4", Label: "Just view existing web build", Steps: []StepConfig{stepViewWeb}},
		},
	},
}

// LookupPreset returns a copy of the named preset.
func LookupPreset(name string) (Preset, bool) {
	p, ok := presets[name]
	if !ok {
		return Preset{}, false
	}
	p.Options = cloneOptions(p.Options)
	return p, true
}

// PresetNames returns the built-in preset names sorted alphabetically.
func PresetNames() []string {
	return sortedMapKeys(presets)
}
