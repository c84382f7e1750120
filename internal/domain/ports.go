package domain

import (
	"context"
	"io"
	"time"
)

// CommandRunner spawns a CommandStep and waits for it to exit.
type CommandRunner interface {
	// Run executes the step with the given output streams.
	// A non-zero exit is reported through the result, not the error;
	// the error is only set when the process could not be run.
	Run(ctx context.Context, step CommandStep, stdout, stderr io.Writer) (ExecutionResult, error)
}

// ConfigLoader loads configuration.
type ConfigLoader interface {
	// Load returns the merged configuration (defaults <- global <- project <- extra).
	Load() (*Config, error)

	// LoadWithOptions returns the merged configuration, skipping ignored sources.
	LoadWithOptions(opts LoadConfigOptions) (*Config, error)
}

// LoadConfigOptions selects which configuration sources to skip.
type LoadConfigOptions struct {
	IgnoreGlobal  bool
	IgnoreProject bool
	IgnoreExtra   bool
}

// ConfigManager manages configuration files.
type ConfigManager interface {
	// GetGlobalConfigInfo returns information about the global config file.
	GetGlobalConfigInfo() ConfigInfo

	// GetProjectConfigInfo returns information about the project config file.
	GetProjectConfigInfo() ConfigInfo

	// InitGlobalConfig creates the global config file from the template.
	InitGlobalConfig(cfg *Config) error

	// InitProjectConfig creates the project config file from the template.
	InitProjectConfig(cfg *Config) error
}

// ConfigInfo describes a config file.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// RepoInspector reports version control details of a directory.
type RepoInspector interface {
	// Describe returns repository info for dir.
	// It returns ok=false when dir is not inside a repository.
	Describe(dir string) (info RepoInfo, ok bool, err error)
}

// RepoInfo describes the checked-out revision of a repository.
type RepoInfo struct {
	Root   string
	Branch string // Empty when HEAD is detached
	Head   string // Abbreviated commit hash
}

// Summary returns a short description such as "branch main" or "detached at abc1234".
func (r RepoInfo) Summary() string {
	switch {
	case r.Branch != "":
		return "branch " + r.Branch
	case r.Head != "":
		return "detached at " + r.Head
	default:
		return ""
	}
}

// Logger writes dispatch logs. key is a menu option key; "" logs globally.
type Logger interface {
	Info(key, category, msg string)
	Debug(key, category, msg string)
	Warn(key, category, msg string)
	Error(key, category, msg string)
}

// NopLogger discards all log entries.
type NopLogger struct{}

// Info does nothing.
func (NopLogger) Info(_, _, _ string) {}

// Debug does nothing.
func (NopLogger) Debug(_, _, _ string) {}

// Warn does nothing.
func (NopLogger) Warn(_, _, _ string) {}

// Error does nothing.
func (NopLogger) Error(_, _, _ string) {}

// Clock provides the current time.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// SelectionPicker lets the user choose a menu key interactively.
type SelectionPicker interface {
	// Pick returns the chosen key, or ErrSelectionCancelled.
	Pick(menu *Menu) (string, error)
}
