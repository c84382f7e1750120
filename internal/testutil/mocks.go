// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/runoshun/buildmenu/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockCommandRunner is a test double for domain.CommandRunner.
// Results are matched by the step's command line (CommandStep.String());
// unmatched steps succeed.
// Fields are ordered to minimize memory padding.
type MockCommandRunner struct {
	Results map[string]domain.ExecutionResult
	Errors  map[string]error
	Output  map[string]string // Written to stdout when the step runs
	Calls   []domain.CommandStep
}

// NewMockCommandRunner creates a new MockCommandRunner with initialized maps.
func NewMockCommandRunner() *MockCommandRunner {
	return &MockCommandRunner{
		Results: make(map[string]domain.ExecutionResult),
		Errors:  make(map[string]error),
		Output:  make(map[string]string),
	}
}

// Ensure MockCommandRunner implements domain.CommandRunner interface.
var _ domain.CommandRunner = (*MockCommandRunner)(nil)

// Run records the step and returns the configured result.
func (m *MockCommandRunner) Run(_ context.Context, step domain.CommandStep, stdout, _ io.Writer) (domain.ExecutionResult, error) {
	m.Calls = append(m.Calls, step)
	key := step.String()
	if out, ok := m.Output[key]; ok && stdout != nil {
		_, _ = io.WriteString(stdout, out)
	}
	if err, ok := m.Errors[key]; ok {
		return domain.ExecutionResult{ExitCode: -1}, err
	}
	return m.Results[key], nil
}

// CalledCommands returns the command lines of recorded calls in order.
func (m *MockCommandRunner) CalledCommands() []string {
	out := make([]string, len(m.Calls))
	for i, c := range m.Calls {
		out[i] = c.String()
	}
	return out
}

// MockRepoInspector is a test double for domain.RepoInspector.
type MockRepoInspector struct {
	Err  error
	Info domain.RepoInfo
	OK   bool
}

// Ensure MockRepoInspector implements domain.RepoInspector interface.
var _ domain.RepoInspector = (*MockRepoInspector)(nil)

// Describe returns the configured info.
func (m *MockRepoInspector) Describe(_ string) (domain.RepoInfo, bool, error) {
	return m.Info, m.OK, m.Err
}

// MockLogger is a test double for domain.Logger that records entries.
type MockLogger struct {
	Entries []string
}

// Ensure MockLogger implements domain.Logger interface.
var _ domain.Logger = (*MockLogger)(nil)

func (m *MockLogger) record(level, key, category, msg string) {
	m.Entries = append(m.Entries, fmt.Sprintf("%s [%s] [%s] %s", level, key, category, msg))
}

// Info records an info entry.
func (m *MockLogger) Info(key, category, msg string) { m.record("INFO", key, category, msg) }

// Debug records a debug entry.
func (m *MockLogger) Debug(key, category, msg string) { m.record("DEBUG", key, category, msg) }

// Warn records a warning entry.
func (m *MockLogger) Warn(key, category, msg string) { m.record("WARN", key, category, msg) }

// Error records an error entry.
func (m *MockLogger) Error(key, category, msg string) { m.record("ERROR", key, category, msg) }

// Contains reports whether any entry contains s.
func (m *MockLogger) Contains(s string) bool {
	for _, e := range m.Entries {
		if strings.Contains(e, s) {
			return true
		}
	}
	return false
}

// MockPicker is a test double for domain.SelectionPicker.
type MockPicker struct {
	Err    error
	Key    string
	Called bool
}

// Pick records the call and returns the configured key.
func (m *MockPicker) Pick(_ *domain.Menu) (string, error) {
	m.Called = true
	return m.Key, m.Err
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitProjectErr    error
	InitGlobalErr     error
	ProjectConfigInfo domain.ConfigInfo
	GlobalConfigInfo  domain.ConfigInfo
	InitProjectCalled bool
	InitGlobalCalled  bool
}

// NewMockConfigManager creates a new MockConfigManager.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{
		ProjectConfigInfo: domain.ConfigInfo{
			Path:   "/test/book/.buildmenu.toml",
			Exists: false,
		},
		GlobalConfigInfo: domain.ConfigInfo{
			Path:   "/home/test/.config/buildmenu/config.toml",
			Exists: false,
		},
	}
}

// Ensure MockConfigManager implements domain.ConfigManager interface.
var _ domain.ConfigManager = (*MockConfigManager)(nil)

// GetProjectConfigInfo returns the configured project config info.
func (m *MockConfigManager) GetProjectConfigInfo() domain.ConfigInfo {
	return m.ProjectConfigInfo
}

// GetGlobalConfigInfo returns the configured global config info.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo {
	return m.GlobalConfigInfo
}

// InitProjectConfig records the call and returns configured error.
func (m *MockConfigManager) InitProjectConfig(_ *domain.Config) error {
	m.InitProjectCalled = true
	return m.InitProjectErr
}

// InitGlobalConfig records the call and returns configured error.
func (m *MockConfigManager) InitGlobalConfig(_ *domain.Config) error {
	m.InitGlobalCalled = true
	return m.InitGlobalErr
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config   *domain.Config
	LoadErr  error
	LastOpts domain.LoadConfigOptions
}

// Ensure MockConfigLoader implements domain.ConfigLoader interface.
var _ domain.ConfigLoader = (*MockConfigLoader)(nil)

// Load returns the configured config, or defaults.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	return m.LoadWithOptions(domain.LoadConfigOptions{})
}

// LoadWithOptions records opts and returns the configured config.
func (m *MockConfigLoader) LoadWithOptions(opts domain.LoadConfigOptions) (*domain.Config, error) {
	m.LastOpts = opts
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Config != nil {
		return m.Config, nil
	}
	return domain.NewDefaultConfig(), nil
}
