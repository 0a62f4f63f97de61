package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/semprops/pkg/semprops"
)

const modulePath = "github.com/mesh-intelligence/semprops"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the semprops version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "semprops v%s\nmodule: %s\n", semprops.Version, modulePath)
			return nil
		},
	}
}
