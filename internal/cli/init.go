package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize semprops storage",
		Long: "Create the configuration and data directories, write a default config.yaml\n" +
			"if none exists, and seed the store with the known properties.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := a.attachBackend()
			if err != nil {
				return err
			}
			dataDir := backend.DataDir()
			if err := backend.Detach(); err != nil {
				return sysError(fmt.Errorf("finalize storage: %w", err))
			}

			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"config_dir": a.configDir,
					"data_dir":   dataDir,
					"properties": a.registry.Len(),
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "semprops initialized\nconfig: %s\ndata:   %s\n", a.configDir, dataDir)
			return nil
		},
	}
}
