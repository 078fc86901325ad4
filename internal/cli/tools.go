// Tool catalog commands: tools list, tools show, enable and disable.
package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/toolbox/internal/registry"
	"github.com/mesh-intelligence/toolbox/pkg/types"
)

// toolRow is the JSON shape of a listed tool.
type toolRow struct {
	types.Tool
	Enabled bool `json:"enabled"`
}

func newToolsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Inspect the tool catalog",
	}
	cmd.AddCommand(newToolsListCmd(a), newToolsShowCmd(a))
	return cmd
}

func newToolsListCmd(a *app) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tools in sidebar order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if category != "" {
				if _, ok := types.CategoryTitles[category]; !ok {
					return userError("unknown category %q (valid: %s)", category, strings.Join(types.CategoryOrder, ", "))
				}
			}

			backend, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()
			reg, toggles, err := a.catalog(backend)
			if err != nil {
				return err
			}

			var rows []toolRow
			for _, sec := range reg.Categories() {
				if category != "" && sec.ID != category {
					continue
				}
				for _, t := range sec.Tools {
					rows = append(rows, toolRow{Tool: t, Enabled: toggles.Enabled(t.ID)})
				}
			}
			if a.flags.jsonMode {
				if rows == nil {
					rows = []toolRow{}
				}
				return printJSON(cmd.OutOrStdout(), rows)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCATEGORY\tROUTE\tENABLED\tNAME")
			for _, r := range rows {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%s\n", r.ID, r.Category, r.Route, r.Enabled, r.Name)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only list tools in this category")
	return cmd
}

func newToolsShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a tool's fields and description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()
			reg, toggles, err := a.catalog(backend)
			if err != nil {
				return err
			}
			e, err := lookupTool(reg, args[0])
			if err != nil {
				return err
			}

			row := toolRow{Tool: e.Tool, Enabled: toggles.Enabled(e.Tool.ID)}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), row)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s (%s)\n", row.Name, row.ID)
			fmt.Fprintf(w, "  category: %s\n", types.CategoryTitles[row.Category])
			fmt.Fprintf(w, "  route:    %s\n", row.Route)
			if len(row.Aliases) > 0 {
				fmt.Fprintf(w, "  aliases:  %s\n", strings.Join(row.Aliases, ", "))
			}
			fmt.Fprintf(w, "  enabled:  %t\n", row.Enabled)
			if row.Description != "" {
				fmt.Fprintf(w, "\n%s\n", row.Description)
			}
			if len(row.Fields) > 0 {
				fmt.Fprintln(w, "\nFields:")
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				for _, f := range row.Fields {
					extra := f.Kind
					if len(f.Options) > 0 {
						extra += " [" + strings.Join(f.Options, "|") + "]"
					}
					if f.Default != "" {
						extra += " default=" + f.Default
					}
					if f.Required {
						extra += " required"
					}
					fmt.Fprintf(tw, "  %s\t%s\t%s\n", f.Name, f.Label, extra)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newEnableCmd(a *app, on bool) *cobra.Command {
	use, short, verb := "enable", "Show tools in the sidebar", "Enabled"
	if !on {
		use, short, verb = "disable", "Hide tools from the sidebar and routes", "Disabled"
	}
	return &cobra.Command{
		Use:   use + " <id>...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()
			reg, toggles, err := a.catalog(backend)
			if err != nil {
				return err
			}

			for _, id := range args {
				e, err := lookupTool(reg, id)
				if err != nil {
					return err
				}
				if err := toggles.SetEnabled(e.Tool.ID, on); err != nil {
					return sysError("save tool state: %w", err)
				}
				a.log.Debug("tool toggled", zap.String("tool", e.Tool.ID), zap.Bool("enabled", on))
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", verb, e.Tool.ID)
			}
			return nil
		},
	}
}

// lookupTool finds a tool by id, falling back to its route or an alias.
func lookupTool(reg *registry.Registry, id string) (*registry.Entry, error) {
	if e, err := reg.Get(id); err == nil {
		return e, nil
	}
	e, err := reg.Lookup(id)
	if err != nil {
		return nil, userError("unknown tool %q (see 'toolbox tools list')", id)
	}
	return e, nil
}
