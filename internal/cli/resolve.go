package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/semprops/pkg/types"
)

// nameResult is one line of normalize, resolve, or label output.
type nameResult struct {
	Input string `json:"input"`
	ID    string `json:"id,omitempty"`
	Label string `json:"label,omitempty"`
	Name  string `json:"name,omitempty"`
}

func newNormalizeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <property>...",
		Short: "Print the canonical form of property names",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]nameResult, len(args))
			for i, raw := range args {
				results[i] = nameResult{Input: raw, Name: a.engine.Normalize(raw)}
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), results)
			}
			for _, r := range results {
				fmt.Fprintln(cmd.OutOrStdout(), r.Name)
			}
			return nil
		},
	}
}

func newResolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <property>...",
		Short: "Resolve property labels, aliases, or IDs to property IDs",
		Long: "Resolve each argument to a property ID and display label. An unknown\n" +
			"predefined ID is an error; any other name is a user-defined property.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conv := a.converter("resolve", types.Page{})
			results := make([]nameResult, 0, len(args))
			for _, raw := range args {
				ref, err := conv.MakeProperty(raw)
				if err != nil {
					return err
				}
				results = append(results, nameResult{Input: raw, ID: ref.ID, Label: ref.Label})
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), results)
			}
			for _, r := range results {
				if r.Label == "" {
					fmt.Fprintln(cmd.OutOrStdout(), r.ID)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", r.ID, r.Label)
			}
			return nil
		},
	}
}

func newLabelCmd(a *app) *cobra.Command {
	var fallbackToID bool
	cmd := &cobra.Command{
		Use:   "label <property>...",
		Short: "Print the display label of properties",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]nameResult, len(args))
			for i, raw := range args {
				results[i] = nameResult{Input: raw, Label: a.engine.ResolveLabel(raw, fallbackToID)}
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), results)
			}
			for _, r := range results {
				fmt.Fprintln(cmd.OutOrStdout(), r.Label)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&fallbackToID, "fallback-id", false, "print the ID of a known property that has no label")
	return cmd
}
