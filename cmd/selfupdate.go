package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

// newSelfUpdateCmd creates the Cobra command for the self-update functionality.
func (i *Initializer) newSelfUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "self-update",
		Short: "Update recaf to the latest version",
		Long: `Checks for the latest release of recaf on GitHub and
updates the current binary if a newer version is found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if i.deps.Updater == nil {
				return errors.New("self-update is not available in this build")
			}
			_, err := i.deps.Updater.Update(cmd.Context(), cmd.OutOrStdout())
			return err
		},
	}
}
