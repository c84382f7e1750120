// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/buildmenu/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	projectRoot   string // Project root containing .buildmenu.toml (may be empty)
	extraPath     string // Explicit config file given with --config (may be empty)
	globalConfDir string // Path to global config directory (e.g., ~/.config/buildmenu)
}

// NewLoader creates a new Loader.
func NewLoader(projectRoot, extraPath string) *Loader {
	return &Loader{
		projectRoot:   projectRoot,
		extraPath:     extraPath,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(projectRoot, extraPath, globalConfDir string) *Loader {
	return &Loader{
		projectRoot:   projectRoot,
		extraPath:     extraPath,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// Load returns the merged configuration.
// Precedence: default <- global <- project <- extra.
func (l *Loader) Load() (*domain.Config, error) {
	return l.LoadWithOptions(domain.LoadConfigOptions{})
}

// LoadGlobal returns only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
}

// LoadProject returns only the project configuration.
func (l *Loader) LoadProject() (*domain.Config, error) {
	if l.projectRoot == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(domain.ProjectConfigPath(l.projectRoot))
}

// LoadWithOptions returns the merged configuration with options to ignore sources.
// A missing global or project file is not an error; a missing extra file is.
func (l *Loader) LoadWithOptions(opts domain.LoadConfigOptions) (*domain.Config, error) {
	base := domain.NewDefaultConfig()

	if !opts.IgnoreGlobal {
		global, err := l.LoadGlobal()
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if global != nil {
			base = mergeConfigs(base, global)
		}
	}

	if !opts.IgnoreProject {
		project, err := l.LoadProject()
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if project != nil {
			base = mergeConfigs(base, project)
		}
	}

	if !opts.IgnoreExtra && l.extraPath != "" {
		extra, err := l.loadFile(l.extraPath)
		if err != nil {
			return nil, err
		}
		base = mergeConfigs(base, extra)
	}

	return base, nil
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return convertRawToDomainConfig(raw), nil
}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{}
	var warnings []string

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
			continue
		}
		switch section {
		case "project":
			for k, v := range m {
				switch k {
				case "root":
					res.Project.Root = asString(v)
				case "marker":
					res.Project.Marker = asString(v)
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [project]: %s", k))
				}
			}
		case "tool":
			for k, v := range m {
				switch k {
				case "program":
					res.Tool.Program = asString(v)
				case "args":
					res.Tool.Args = asStrings(v)
					if res.Tool.Args == nil {
						res.Tool.Args = []string{}
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [tool]: %s", k))
				}
			}
		case "menu":
			mc, w := parseMenuSection(m)
			res.Menu = mc
			warnings = append(warnings, w...)
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					res.Log.Level = asString(v)
				case "dir":
					res.Log.Dir = asString(v)
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

// parseMenuSection parses the raw [menu] map including [[menu.options]].
func parseMenuSection(raw map[string]any) (domain.MenuConfig, []string) {
	var mc domain.MenuConfig
	var warnings []string

	for k, v := range raw {
		switch k {
		case "preset":
			mc.Preset = asString(v)
		case "title":
			mc.Title = asString(v)
		case "default":
			mc.Default = asString(v)
		case "options":
			items, _ := v.([]any)
			for i, item := range items {
				om, ok := item.(map[string]any)
				if !ok {
					warnings = append(warnings, fmt.Sprintf("invalid entry in [[menu.options]] #%d", i+1))
					continue
				}
				opt, w := parseOption(om, i+1)
				mc.Options = append(mc.Options, opt)
				warnings = append(warnings, w...)
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown key in [menu]: %s", k))
		}
	}

	return mc, warnings
}

func parseOption(raw map[string]any, n int) (domain.OptionConfig, []string) {
	var opt domain.OptionConfig
	var warnings []string

	for k, v := range raw {
		switch k {
		case "key":
			opt.Key = asString(v)
		case "label":
			opt.Label = asString(v)
		case "steps":
			items, _ := v.([]any)
			for _, item := range items {
				sm, ok := item.(map[string]any)
				if !ok {
					warnings = append(warnings, fmt.Sprintf("invalid step in [[menu.options]] #%d", n))
					continue
				}
				var step domain.StepConfig
				for sk, sv := range sm {
					switch sk {
					case "message":
						step.Message = asString(sv)
					case "program":
						step.Program = asString(sv)
					case "args":
						step.Args = asStrings(sv)
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [[menu.options.steps]] of option #%d: %s", n, sk))
					}
				}
				opt.Steps = append(opt.Steps, step)
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown key in [[menu.options]] #%d: %s", n, k))
		}
	}

	return opt, warnings
}

// asString converts TOML scalars to a string. Integer keys such as `key = 1` are accepted.
func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case int64:
		return fmt.Sprintf("%d", s)
	default:
		return ""
	}
}

func asStrings(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, asString(item))
	}
	return out
}

// mergeConfigs merges two configs, with override taking precedence.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := &domain.Config{
		Project:  base.Project,
		Tool:     base.Tool,
		Menu:     base.Menu,
		Log:      base.Log,
		Warnings: append([]string{}, base.Warnings...),
	}

	// Add override warnings
	result.Warnings = append(result.Warnings, override.Warnings...)

	if override.Project.Root != "" {
		result.Project.Root = override.Project.Root
	}
	if override.Project.Marker != "" {
		result.Project.Marker = override.Project.Marker
	}

	// A new program replaces the prefix args too; args alone may be overridden.
	if override.Tool.Program != "" {
		result.Tool = domain.ToolConfig{Program: override.Tool.Program, Args: override.Tool.Args}
	} else if override.Tool.Args != nil {
		result.Tool.Args = override.Tool.Args
	}

	if override.Menu.Preset != "" {
		result.Menu.Preset = override.Menu.Preset
	}
	if override.Menu.Title != "" {
		result.Menu.Title = override.Menu.Title
	}
	if override.Menu.Default != "" {
		result.Menu.Default = override.Menu.Default
	}
	if len(override.Menu.Options) > 0 {
		result.Menu.Options = override.Menu.Options
	}

	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}
	if override.Log.Dir != "" {
		result.Log.Dir = override.Log.Dir
	}

	return result
}
