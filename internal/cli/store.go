package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/semprops/pkg/types"
)

// Export formats.
const (
	formatJSONL   = "jsonl"
	formatMsgpack = "msgpack"
)

func newSubobjectCmd(a *app) *cobra.Command {
	var (
		f  assignmentFlags
		id string
	)
	cmd := &cobra.Command{
		Use:   "subobject <json-object>",
		Short: "Store a subobject of a page",
		Long: "Build assignments from a JSON object and store them as a subobject of\n" +
			"--page. Without --id the subobject is named by a hash of its content.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conv, assignments, err := a.build("subobject", f, args[0])
			if err != nil {
				return err
			}
			so, err := conv.MakeSubobject(assignments, id)
			if err != nil {
				return err
			}

			backend, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()
			if err := backend.AddSubobject(so); err != nil {
				if errors.Is(err, types.ErrPropertyNotFound) {
					return err
				}
				return sysError(fmt.Errorf("store subobject: %w", err))
			}

			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), so)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d values\n", so.Subject(), so.Assignments.Len())
			return nil
		},
	}
	f.register(cmd, true)
	cmd.Flags().StringVar(&id, "id", "", "subobject name")
	return cmd
}

func newAddCmd(a *app) *cobra.Command {
	var page, subobject string
	cmd := &cobra.Command{
		Use:   "add <property> <value>...",
		Short: "Add values of a property to a page",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.parsePage(page)
			if err != nil {
				return err
			}
			buf := a.engine.NewBuffer()
			for _, v := range args[1:] {
				if err := buf.AddValue(args[0], v); err != nil {
					return err
				}
			}
			added := buf.Len()

			backend, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()
			subject := types.Subject{Page: p, Subobject: subobject}
			if err := buf.MoveTo(subject, backend); err != nil {
				return sysError(err)
			}

			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]any{"subject": subject.String(), "added": added})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d values\n", subject, added)
			return nil
		},
	}
	cmd.Flags().StringVar(&page, "page", "", "page to add the values to, as Namespace:Title")
	cmd.Flags().StringVar(&subobject, "subobject", "", "store under this subobject of the page")
	_ = cmd.MarkFlagRequired("page")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	var subobject string
	var remove bool
	cmd := &cobra.Command{
		Use:   "show <page>",
		Short: "Show the stored values of a page and its subobjects",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := a.parsePage(args[0])
			if err != nil {
				return err
			}
			backend, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			subjects := []types.Subject{{Page: page, Subobject: subobject}}
			if subobject == "" {
				if subjects, err = backend.Subjects(page); err != nil {
					return sysError(err)
				}
			}

			if remove {
				n := 0
				for _, s := range subjects {
					removed, err := backend.DeleteSubject(s)
					if err != nil {
						return sysError(err)
					}
					n += removed
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %d values\n", n)
				return nil
			}

			all := []types.Statement{}
			for _, s := range subjects {
				sts, err := backend.Values(s)
				if err != nil {
					return sysError(err)
				}
				all = append(all, sts...)
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), all)
			}
			last := ""
			for _, st := range all {
				if st.Subject != last {
					fmt.Fprintln(cmd.OutOrStdout(), st.Subject)
					last = st.Subject
				}
				label := a.engine.ResolveLabel(st.PropertyID, true)
				if label == "" {
					label = st.PropertyID
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s\n", label, st.Value)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&subobject, "subobject", "", "only show this subobject")
	cmd.Flags().BoolVar(&remove, "delete", false, "delete the values instead of showing them")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all stored values",
		Long: "Write every stored value as JSONL (one statement per line) or as a\n" +
			"MessagePack statement pack. A pack without --output goes to stdout.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			if format != formatJSONL && format != formatMsgpack {
				return fmt.Errorf("export: unknown format %q (want %s or %s)", format, formatJSONL, formatMsgpack)
			}
			if format == formatJSONL && output == "" {
				return fmt.Errorf("export: %s needs --output", formatJSONL)
			}

			backend, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			var n int
			switch format {
			case formatJSONL:
				n, err = backend.ExportJSONL(output)
			default:
				n, err = exportPack(cmd.OutOrStdout(), output, backend.ExportMsgpack)
			}
			if err != nil {
				return sysError(fmt.Errorf("export: %w", err))
			}
			a.logger.Info("exported values", "format", format, "count", n)
			if output != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "exported %d values to %s\n", n, output)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", formatJSONL, "jsonl or msgpack")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")
	return cmd
}

// exportPack runs write against output, or against stdout when output is
// empty.
func exportPack(stdout io.Writer, output string, write func(io.Writer) (int, error)) (int, error) {
	if output == "" {
		return write(stdout)
	}
	f, err := os.Create(output)
	if err != nil {
		return 0, err
	}
	n, err := write(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return n, err
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a MessagePack statement pack",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			backend, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()
			n, err := backend.ImportMsgpack(f)
			if err != nil {
				return sysError(fmt.Errorf("import: %w", err))
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]int{"added": n})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d values\n", n)
			return nil
		},
	}
}

func newPropertiesCmd(a *app) *cobra.Command {
	var stored bool
	cmd := &cobra.Command{
		Use:   "properties",
		Short: "List the predefined properties",
		Long: "List the predefined properties known to the registry, or with --stored\n" +
			"the property table of the data store.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defs := a.registry.Properties()
			if stored {
				backend, err := a.attachBackend()
				if err != nil {
					return err
				}
				defer backend.Detach()
				if defs, err = backend.Properties(); err != nil {
					return sysError(err)
				}
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), defs)
			}
			for _, d := range defs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", d.ID, d.Label, d.TypeID)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&stored, "stored", false, "list the properties seeded into the data store")
	return cmd
}
