package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newPresetsCommand creates the presets command.
func newPresetsCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List built-in menu presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := s.c.ListPresetsUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, p := range out.Presets {
				active := "  "
				if p.Active {
					active = "* "
				}
				_, _ = fmt.Fprintf(w, "%s%-10s %s (%d options, default %s)\n", active, p.Name, p.Title, p.Options, p.Default)
				_, _ = fmt.Fprintf(w, "  %-10s %s\n", "", p.Description)
			}
			return nil
		},
	}
}
