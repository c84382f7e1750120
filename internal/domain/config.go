package domain

import (
	"bytes"
	_ "embed"
	"fmt"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"text/template"
)

//go:embed config_template.toml
var configTemplateContent string

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string      `toml:"-"`
	Project  ProjectConfig `toml:"project"`
	Tool     ToolConfig    `toml:"tool"`
	Menu     MenuConfig    `toml:"menu"`
	Log      LogConfig     `toml:"log"`
}

// ProjectConfig holds settings from the [project] section.
type ProjectConfig struct {
	Root   string `toml:"root,omitempty"`   // Project root; every step runs here
	Marker string `toml:"marker,omitempty"` // File that must exist in Root (e.g. "project.ptx")
}

// ToolConfig holds settings from the [tool] section.
type ToolConfig struct {
	Program string   `toml:"program,omitempty"` // Build tool program (e.g. "python")
	Args    []string `toml:"args,omitempty"`    // Prefix arguments for every step (e.g. ["-m", "pretext"])
}

// MenuConfig holds settings from the [menu] section.
type MenuConfig struct {
	Preset  string         `toml:"preset,omitempty"`  // Built-in preset used when Options is empty
	Title   string         `toml:"title,omitempty"`   // Banner title (overrides the preset title)
	Default string         `toml:"default,omitempty"` // Key used on empty input (overrides the preset default)
	Options []OptionConfig `toml:"options,omitempty"` // Custom options from [[menu.options]]
}

// OptionConfig defines one menu option.
type OptionConfig struct {
	Key   string       `toml:"key"`
	Label string       `toml:"label"`
	Steps []StepConfig `toml:"steps,omitempty"`
}

// StepConfig defines one command step of an option.
// When Program is empty the tool program and its prefix args are used.
type StepConfig struct {
	Message string   `toml:"message,omitempty"`
	Program string   `toml:"program,omitempty"`
	Args    []string `toml:"args,omitempty"`
}

// LogConfig holds logging settings from the [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // Log level: debug, info, warn, error
	Dir   string `toml:"dir,omitempty"`   // Log directory (default: $XDG_STATE_HOME/buildmenu/logs)
}

// Default configuration values.
const (
	DefaultLogLevel    = "info"
	DefaultToolProgram = "pretext"
	DefaultMarker      = "project.ptx"
	DefaultPreset      = PresetQuick
)

// Directory and file names for buildmenu.
const (
	AppDirName            = "buildmenu"       // Directory name under XDG config/state homes
	ConfigFileName        = "config.toml"     // Global config file name
	ProjectConfigFileName = ".buildmenu.toml" // Config file name in the project root
	GlobalLogFileName     = "buildmenu.log"   // Log file shared by all options
)

// GlobalConfigDir returns the global config directory.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// GlobalConfigPath returns the global config path.
func GlobalConfigPath(configHome string) string {
	return filepath.Join(GlobalConfigDir(configHome), ConfigFileName)
}

// ProjectConfigPath returns the project config path.
func ProjectConfigPath(projectRoot string) string {
	return filepath.Join(projectRoot, ProjectConfigFileName)
}

// DefaultLogDir returns the default log directory.
// stateHome is typically XDG_STATE_HOME or ~/.local/state (resolved by caller).
func DefaultLogDir(stateHome string) string {
	return filepath.Join(stateHome, AppDirName, "logs")
}

// GlobalLogPath returns the path of the shared log file.
func GlobalLogPath(logDir string) string {
	return filepath.Join(logDir, GlobalLogFileName)
}

// OptionLogPath returns the path of the log file for a menu option.
func OptionLogPath(logDir, key string) string {
	return filepath.Join(logDir, "option-"+sanitizeKey(key)+".log")
}

func sanitizeKey(key string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ', '\t':
			return '_'
		}
		return r
	}, key)
}

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Project: ProjectConfig{
			Marker: DefaultMarker,
		},
		Tool: ToolConfig{
			Program: DefaultToolProgram,
		},
		Menu: MenuConfig{
			Preset: DefaultPreset,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// BuildMenu resolves the configured menu (custom options or a preset) into a Menu.
// Steps without their own program are bound to the tool program and prefix args,
// and every step runs in the project root.
func (c *Config) BuildMenu() (*Menu, error) {
	mc := c.Menu
	if len(mc.Options) == 0 {
		name := mc.Preset
		if name == "" {
			name = DefaultPreset
		}
		preset, ok := LookupPreset(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
		}
		mc.Options = preset.Options
		if mc.Title == "" {
			mc.Title = preset.Title
		}
		if mc.Default == "" {
			mc.Default = preset.Default
		}
	}
	if mc.Default == "" && len(mc.Options) > 0 {
		mc.Default = mc.Options[0].Key
	}

	options := make([]MenuOption, 0, len(mc.Options))
	for _, oc := range mc.Options {
		steps := make([]CommandStep, 0, len(oc.Steps))
		for _, sc := range oc.Steps {
			step, err := c.bindStep(sc)
			if err != nil {
				return nil, fmt.Errorf("option %q: %w", oc.Key, err)
			}
			steps = append(steps, step)
		}
		options = append(options, NewMenuOption(oc.Key, oc.Label, steps))
	}

	return NewMenu(mc.Title, mc.Default, options)
}

func (c *Config) bindStep(sc StepConfig) (CommandStep, error) {
	if sc.Program != "" {
		return NewCommandStep(sc.Program, sc.Args, c.Project.Root).WithMessage(sc.Message), nil
	}
	if c.Tool.Program == "" {
		return CommandStep{}, ErrNoToolProgram
	}
	args := make([]string, 0, len(c.Tool.Args)+len(sc.Args))
	args = append(args, c.Tool.Args...)
	args = append(args, sc.Args...)
	return NewCommandStep(c.Tool.Program, args, c.Project.Root).WithMessage(sc.Message), nil
}

// templateData holds all data for rendering the config template.
type templateData struct {
	DefaultPreset string
	ToolProgram   string
	Marker        string
	LogLevel      string
	Presets       []string
}

// RenderConfigTemplate renders a commented config template from the given Config.
func RenderConfigTemplate(cfg *Config) string {
	preset := cfg.Menu.Preset
	if preset == "" {
		preset = DefaultPreset
	}
	data := templateData{
		DefaultPreset: preset,
		ToolProgram:   cfg.Tool.Program,
		Marker:        cfg.Project.Marker,
		LogLevel:      cfg.Log.Level,
		Presets:       PresetNames(),
	}

	tmpl, err := template.New("config").Delims("<<", ">>").Funcs(template.FuncMap{
		"join": strings.Join,
	}).Parse(configTemplateContent)
	if err != nil {
		// Should never happen with embedded template
		panic(fmt.Sprintf("failed to parse config template: %v", err))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		// Should never happen with valid data
		panic(fmt.Sprintf("failed to execute config template: %v", err))
	}

	return buf.String()
}

// sortedMapKeys returns the keys of a map sorted alphabetically.
func sortedMapKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// cloneOptions deep-copies option configs so presets cannot be mutated through the returned value.
func cloneOptions(opts []OptionConfig) []OptionConfig {
	out := make([]OptionConfig, len(opts))
	for i, o := range opts {
		steps := make([]StepConfig, len(o.Steps))
		for j, s := range o.Steps {
			s.Args = slices.Clone(s.Args)
			steps[j] = s
		}
		o.Steps = steps
		out[i] = o
	}
	return out
}
