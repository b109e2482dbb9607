package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ListMembersCmd creates the listMembers command
func ListMembersCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listMembers",
		Short: "List the household members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			members, err := app.Database.GetMembers(app.Ctx, app.Cfg.HouseholdID)
			if err != nil {
				return fmt.Errorf("failed to list members: %w", err)
			}

			fmt.Printf("\nFound %d members:\n\n", len(members))
			for _, m := range members {
				fmt.Printf("- %s (%s)\n", m.Name, m.ID)
			}

			return nil
		},
	}
}
