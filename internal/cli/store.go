// Generic table commands: get, set, list and delete.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/toolbox/internal/sqlite"
	"github.com/mesh-intelligence/toolbox/pkg/types"
)

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <table> <id>",
		Short: "Get an entity by ID",
		Long: `Get retrieves an entity from the specified table by its ID.

Valid table names: ` + validTableNamesStr + `

Example:
  toolbox get notes 0190f6c4-...
  toolbox get preferences enabled-tools`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			t, err := table(backend, args[0])
			if err != nil {
				return err
			}
			entity, err := t.Get(args[1])
			if err != nil {
				return entityError(fmt.Sprintf("get %s/%s", args[0], args[1]), err)
			}
			return printJSON(cmd.OutOrStdout(), entity)
		},
	}
}

func newSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <table> <id> <json>",
		Short: "Create or update an entity in a table",
		Long: `Set writes an entity to the specified table. An id of "-" creates a new
entity with a generated id; preferences use their key as the id.

Example:
  toolbox set notes - '{"title":"Groceries","body":"eggs"}'
  toolbox set tasks - '{"title":"Renew passport","due":"2026-11-01T00:00:00Z"}'`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			tableName, id := args[0], args[1]
			if id == "-" {
				id = ""
			}

			backend, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			t, err := table(backend, tableName)
			if err != nil {
				return err
			}
			entity, err := types.DecodeEntity(tableName, []byte(args[2]))
			if err != nil {
				return userError("parse JSON: %w", err)
			}
			savedID, err := a.setEntity(backend, t, tableName, id, entity)
			if err != nil {
				return entityError("set entity", err)
			}
			saved, err := t.Get(savedID)
			if err != nil {
				return sysError("get saved entity: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), saved)
		},
	}
}

// setEntity writes entity, sending the enabled-tools preference through the
// tool toggles so its shape is checked.
func (a *app) setEntity(backend *sqlite.Backend, t types.Table, tableName, id string, entity any) (string, error) {
	pref, ok := entity.(*types.Preference)
	if !ok || tableName != types.PreferencesTable {
		return t.Set(id, entity)
	}
	if id == "" {
		id = pref.Key
	}
	if id != types.PrefEnabledTools {
		return t.Set(id, entity)
	}
	_, toggles, err := a.catalog(backend)
	if err != nil {
		return "", err
	}
	return id, toggles.Replace(pref)
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list <table> [filter...]",
		Short: "List entities with optional filter",
		Long: `List queries entities from the specified table with optional filters.

Filters are key=value pairs naming columns. Multiple filters are ANDed
together; "true" and "false" match boolean columns.

Example:
  toolbox list notes
  toolbox list tasks done=false`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pairs, err := parsePairs(args[1:])
			if err != nil {
				return err
			}

			backend, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			t, err := table(backend, args[0])
			if err != nil {
				return err
			}
			entities, err := t.Fetch(types.ParseFilter(pairs))
			if err != nil {
				return entityError("fetch entities", err)
			}
			if entities == nil {
				entities = []any{}
			}
			return printJSON(cmd.OutOrStdout(), entities)
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <table> <id>",
		Short: "Remove an entity by ID from a table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			t, err := table(backend, args[0])
			if err != nil {
				return err
			}
			if err := t.Delete(args[1]); err != nil {
				return entityError(fmt.Sprintf("delete %s/%s", args[0], args[1]), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s/%s\n", args[0], args[1])
			return nil
		},
	}
}
