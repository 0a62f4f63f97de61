package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/semprops/pkg/semprops"
	"github.com/mesh-intelligence/semprops/pkg/types"
)

func newEncodeCmd(a *app) *cobra.Command {
	var scalarOnly, decode bool
	cmd := &cobra.Command{
		Use:   "encode <json-value>",
		Short: "Encode a JSON scalar, null, or array record as a value string",
		Example: `  semprops encode '"  text "'
  semprops encode '[1, "a;b", true]'
  semprops encode --decode 'a\;b;c'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if decode {
				fields := semprops.DecodeRecord(args[0])
				if a.flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), fields)
				}
				for _, f := range fields {
					fmt.Fprintln(cmd.OutOrStdout(), f)
				}
				return nil
			}

			v, err := types.ParseValue([]byte(args[0]))
			if err != nil {
				return err
			}
			conv := a.converter("encode", types.Page{})
			encode := conv.MakeValueString
			if scalarOnly {
				encode = conv.MakeScalarString
			}
			s, err := encode(v)
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]string{"value": s})
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}
	cmd.Flags().BoolVar(&scalarOnly, "scalar", false, "reject records")
	cmd.Flags().BoolVar(&decode, "decode", false, "split a record value string into its sub-values")
	return cmd
}

// assignmentFlags are shared by commands that build assignments.
type assignmentFlags struct {
	page     string
	linkback string
}

func (f *assignmentFlags) register(cmd *cobra.Command, pageRequired bool) {
	cmd.Flags().StringVar(&f.page, "page", "", "page the assignments belong to, as Namespace:Title")
	cmd.Flags().StringVar(&f.linkback, "linkback", "", "property that receives the page name as an extra value")
	if pageRequired {
		_ = cmd.MarkFlagRequired("page")
	}
}

// build parses arr and builds its assignments for caller.
func (a *app) build(caller string, f assignmentFlags, data string) (*semprops.Converter, types.Assignments, error) {
	arr, err := types.ParseAssignmentArray([]byte(data))
	if err != nil {
		return nil, nil, err
	}
	var page types.Page
	if f.page != "" {
		if page, err = a.parsePage(f.page); err != nil {
			return nil, nil, err
		}
	} else if f.linkback != "" {
		return nil, nil, fmt.Errorf("%s: --linkback needs --page", caller)
	}
	conv := a.converter(caller, page)
	assignments, err := conv.ValueAssignments(arr, f.linkback)
	if err != nil {
		return nil, nil, err
	}
	return conv, assignments, nil
}

func newBuildCmd(a *app) *cobra.Command {
	var f assignmentFlags
	cmd := &cobra.Command{
		Use:   "build <json-object>",
		Short: "Build property value assignments from a JSON object",
		Long: "Group the values of a JSON object by resolved property and encode them.\n" +
			"A JSON array value holds several values; a nested array is one record.",
		Example: `  semprops build '{"Has author": ["Ann", "Bob"], "Has size": [[3, "m"]]}'
  semprops build --page Help:Intro --linkback "Part of" '{"Has title": "Intro"}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, assignments, err := a.build("build", f, args[0])
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				if assignments == nil {
					assignments = types.Assignments{}
				}
				return printJSON(cmd.OutOrStdout(), assignments)
			}
			printAssignments(cmd, assignments)
			return nil
		},
	}
	f.register(cmd, false)
	return cmd
}

// printAssignments writes one "id<TAB>value" line per value.
func printAssignments(cmd *cobra.Command, assignments types.Assignments) {
	for _, e := range assignments {
		id := e.PropertyID
		if id == "" {
			id = "?" + e.Property
		}
		for _, v := range e.Values {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", id, v)
		}
	}
}
