// Package app provides the dependency injection container for the application.
package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/runoshun/buildmenu/internal/domain"
	"github.com/runoshun/buildmenu/internal/infra/config"
	"github.com/runoshun/buildmenu/internal/infra/executor"
	"github.com/runoshun/buildmenu/internal/infra/git"
	"github.com/runoshun/buildmenu/internal/infra/logging"
	"github.com/runoshun/buildmenu/internal/usecase"
)

// Options holds the command-line values that shape the container.
// Empty fields leave the configured value untouched.
type Options struct {
	ProjectRoot string // First positional argument
	ConfigPath  string // --config
	Preset      string // --preset
	Tool        string // --tool
	LogLevel    string // --log-level
}

// Config holds the resolved application paths.
type Config struct {
	ProjectRoot string // Absolute project root every step runs in
	ConfigPath  string // Extra config file, if any
	LogDir      string // Directory for log files ("" disables file logging)
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Runner        domain.CommandRunner
	Repo          domain.RepoInspector
	Clock         domain.Clock
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	FileLogger    domain.Logger

	// Pointer fields
	Logger    *slog.Logger
	AppConfig *domain.Config

	// Configuration
	Config Config
}

// New creates a new Container. The project root comes from opts, then the
// global or --config file, then the working directory.
func New(opts Options) (*Container, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logging.ParseLevel(opts.LogLevel),
	}))

	root, err := resolveProjectRoot(opts)
	if err != nil {
		return nil, err
	}

	configLoader := config.NewLoader(root, opts.ConfigPath)
	appConfig, err := configLoader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	appConfig.Project.Root = root
	applyOptions(appConfig, opts)

	for _, w := range appConfig.Warnings {
		logger.Debug("config warning", "warning", w)
	}

	logDir := appConfig.Log.Dir
	if logDir == "" {
		logDir = defaultLogDir()
	}

	return &Container{
		Runner:        executor.NewClient(),
		Repo:          git.NewClient(),
		Clock:         domain.RealClock{},
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManager(root),
		FileLogger:    logging.New(logDir, logging.ParseLevel(appConfig.Log.Level)),
		Logger:        logger,
		AppConfig:     appConfig,
		Config: Config{
			ProjectRoot: root,
			ConfigPath:  opts.ConfigPath,
			LogDir:      logDir,
		},
	}, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, appConfig *domain.Config, runner domain.CommandRunner, repo domain.RepoInspector, clock domain.Clock, logger *slog.Logger) *Container {
	return &Container{
		Runner:     runner,
		Repo:       repo,
		Clock:      clock,
		FileLogger: domain.NopLogger{},
		Logger:     logger,
		AppConfig:  appConfig,
		Config:     cfg,
	}
}

// Close releases resources held by the container.
func (c *Container) Close() error {
	if l, ok := c.FileLogger.(*logging.Logger); ok {
		return l.Close()
	}
	return nil
}

// resolveProjectRoot picks the project root and makes it absolute.
func resolveProjectRoot(opts Options) (string, error) {
	root := opts.ProjectRoot
	if root == "" {
		// Only the global and --config files can name a root; the project
		// file lives inside the root it would name.
		pre, err := config.NewLoader("", opts.ConfigPath).LoadWithOptions(domain.LoadConfigOptions{IgnoreProject: true})
		if err != nil {
			return "", fmt.Errorf("load config: %w", err)
		}
		root = pre.Project.Root
	}
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		root = wd
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve project root %s: %w", root, err)
	}
	return abs, nil
}

// applyOptions lets command-line flags win over every config file.
func applyOptions(cfg *domain.Config, opts Options) {
	if opts.Preset != "" {
		cfg.Menu.Preset = opts.Preset
		cfg.Menu.Options = nil
		cfg.Menu.Default = ""
	}
	if opts.Tool != "" {
		cfg.Tool.Program = opts.Tool
		cfg.Tool.Args = nil
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
}

// defaultLogDir returns $XDG_STATE_HOME/buildmenu/logs, or "" when no home
// directory can be found.
func defaultLogDir() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return domain.DefaultLogDir(stateHome)
}

// UseCase factory methods

// RunMenuUseCase returns a new RunMenu use case bound to stdio.
func (c *Container) RunMenuUseCase(stdio usecase.DispatcherIO) *usecase.RunMenu {
	return usecase.NewRunMenu(c.AppConfig, c.Runner, c.Repo, c.FileLogger, c.Clock, stdio)
}

// ShowMenuUseCase returns a new ShowMenu use case.
func (c *Container) ShowMenuUseCase() *usecase.ShowMenu {
	return usecase.NewShowMenu(c.AppConfig)
}

// ListPresetsUseCase returns a new ListPresets use case.
func (c *Container) ListPresetsUseCase() *usecase.ListPresets {
	active := ""
	if len(c.AppConfig.Menu.Options) == 0 {
		active = c.AppConfig.Menu.Preset
		if active == "" {
			active = domain.DefaultPreset
		}
	}
	return usecase.NewListPresets(active)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

// ShowConfigTemplateUseCase returns a new ShowConfigTemplate use case.
func (c *Container) ShowConfigTemplateUseCase() *usecase.ShowConfigTemplate {
	return usecase.NewShowConfigTemplate()
}
