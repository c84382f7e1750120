// Package cli provides the command-line interface for buildmenu.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/runoshun/buildmenu/internal/app"
	"github.com/runoshun/buildmenu/internal/domain"
	"github.com/runoshun/buildmenu/internal/tui"
	"github.com/runoshun/buildmenu/internal/usecase"
	"github.com/spf13/cobra"
)

// ContainerFactory builds the container once flags are parsed.
type ContainerFactory func(opts app.Options) (*app.Container, error)

// newPickerFunc is a function variable for creating the full-screen picker, allowing it to be mocked in tests.
var newPickerFunc = func(in io.Reader, out io.Writer, project string) domain.SelectionPicker {
	return tui.NewPicker(in, out, project)
}

// session carries the container between PersistentPreRunE and the commands.
type session struct {
	newContainer ContainerFactory
	c            *app.Container
	opts         app.Options
}

// NewRootCommand creates the root command for buildmenu.
// The container is created lazily from parsed flags using newContainer.
func NewRootCommand(newContainer ContainerFactory, version string) *cobra.Command {
	s := &session{newContainer: newContainer}

	var choice string
	var useTUI bool

	root := &cobra.Command{
		Use:   "buildmenu [project-root]",
		Short: "Menu-driven build dispatcher",
		Long: `buildmenu shows a numbered menu of build actions for a document project,
reads one choice (Enter accepts the default) and runs the chosen commands
in the project root, stopping at the first command that fails.

The project root is taken from the first argument, the [project] section
of the global or --config file, or the current directory.`,
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// The template is rendered from defaults and never reads config files.
			if cmd.Name() == "template" {
				return nil
			}
			if acceptsProjectRoot(cmd) && len(args) == 1 {
				s.opts.ProjectRoot = args[0]
			}

			c, err := s.newContainer(s.opts)
			if err != nil {
				return err
			}
			s.c = c

			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := s.c
			defer func() { _ = c.Close() }()

			in := usecase.RunMenuInput{Choice: choice}
			if useTUI && choice == "" {
				in.Picker = newPickerFunc(cmd.InOrStdin(), cmd.OutOrStdout(), c.Config.ProjectRoot)
			}

			uc := c.RunMenuUseCase(usecase.DispatcherIO{
				In:     cmd.InOrStdin(),
				Out:    cmd.OutOrStdout(),
				ErrOut: cmd.ErrOrStderr(),
			})
			_, err := uc.Execute(cmd.Context(), in)
			return err
		},
	}

	root.Flags().StringVarP(&choice, "choice", "c", "", "Run this option without prompting")
	root.Flags().BoolVar(&useTUI, "tui", false, "Pick the option with a full-screen selector")

	root.PersistentFlags().StringVar(&s.opts.ConfigPath, "config", "", "Extra config file merged over global and project config")
	root.PersistentFlags().StringVar(&s.opts.Preset, "preset", "", "Use a built-in menu preset ("+strings.Join(domain.PresetNames(), ", ")+")")
	root.PersistentFlags().StringVar(&s.opts.Tool, "tool", "", "Build tool program used by preset steps")
	root.PersistentFlags().StringVar(&s.opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	root.AddCommand(
		newMenuCommand(s),
		newPresetsCommand(s),
		newConfigCommand(s),
	)

	return root
}

// acceptsProjectRoot reports whether cmd takes the project root as its argument.
func acceptsProjectRoot(cmd *cobra.Command) bool {
	return !cmd.HasParent() || cmd.Name() == "menu"
}
