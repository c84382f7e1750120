package cli

import (
	"fmt"
	"io"

	"github.com/runoshun/buildmenu/internal/domain"
	"github.com/runoshun/buildmenu/internal/usecase"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// menuDoc is the YAML form of a resolved menu.
type menuDoc struct {
	Title   string      `yaml:"title"`
	Project string      `yaml:"project"`
	Default string      `yaml:"default"`
	Options []optionDoc `yaml:"options"`
}

type optionDoc struct {
	Key   string    `yaml:"key"`
	Label string    `yaml:"label"`
	Steps []stepDoc `yaml:"steps"`
}

type stepDoc struct {
	Message string   `yaml:"message,omitempty"`
	Program string   `yaml:"program"`
	Args    []string `yaml:"args,omitempty"`
}

// newMenuCommand creates the menu command.
func newMenuCommand(s *session) *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "menu [project-root]",
		Short: "Print the resolved menu",
		Long: `Print the menu that would be presented, with the commands each option runs.

The project root is not checked, so the menu can be inspected from anywhere.
Use --yaml for machine-readable output.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := s.c.ShowMenuUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ShowMenuInput{})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if asYAML {
				return writeMenuYAML(w, out.Menu, out.ProjectRoot)
			}
			writeMenuText(w, out.Menu, out.ProjectRoot)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Output as YAML")

	return cmd
}

func writeMenuText(w io.Writer, menu *domain.Menu, project string) {
	_, _ = fmt.Fprintln(w, menu.Title)
	_, _ = fmt.Fprintf(w, "Project: %s\n\n", project)
	for _, o := range menu.Options() {
		marker := ""
		if o.Key == menu.DefaultKey {
			marker = " (default)"
		}
		_, _ = fmt.Fprintf(w, "  %s. %s%s\n", o.Key, o.Label, marker)
		for _, step := range o.Steps() {
			_, _ = fmt.Fprintf(w, "       $ %s\n", step)
		}
	}
}

func writeMenuYAML(w io.Writer, menu *domain.Menu, project string) error {
	doc := menuDoc{
		Title:   menu.Title,
		Project: project,
		Default: menu.DefaultKey,
	}
	for _, o := range menu.Options() {
		od := optionDoc{Key: o.Key, Label: o.Label, Steps: []stepDoc{}}
		for _, step := range o.Steps() {
			od.Steps = append(od.Steps, stepDoc{
				Message: step.Message,
				Program: step.Program,
				Args:    step.Args,
			})
		}
		doc.Options = append(doc.Options, od)
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("marshal menu: %w", err)
	}
	_, err = w.Write(data)
	return err
}
