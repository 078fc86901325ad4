// Shared helpers for toolbox CLI commands.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mesh-intelligence/toolbox/internal/paths"
	"github.com/mesh-intelligence/toolbox/internal/registry"
	"github.com/mesh-intelligence/toolbox/internal/sqlite"
	"github.com/mesh-intelligence/toolbox/internal/widgets/text"
	"github.com/mesh-intelligence/toolbox/pkg/types"
)

// validTableNamesStr is a comma-separated list of valid table names for error output.
var validTableNamesStr = strings.Join(types.StandardTableNames, ", ")

// dataDir resolves the data directory: --data-dir flag, config data_dir,
// TOOLBOX_DATA_DIR, then the platform default.
func (a *app) dataDir() (string, error) {
	return paths.ResolveDataDir(a.flags.dataDir, a.cfg.GetString(cfgKeyDataDir))
}

// attachBackend resolves the data directory and attaches a SQLite backend.
// The caller must defer backend.Detach().
func (a *app) attachBackend() (*sqlite.Backend, error) {
	dir, err := a.dataDir()
	if err != nil {
		return nil, sysError("resolve data dir: %w", err)
	}
	cfg, err := storeConfig(a.cfg, dir)
	if err != nil {
		return nil, userError("invalid config: %w", err)
	}
	backend := sqlite.NewBackend()
	if err := backend.Attach(cfg); err != nil {
		return nil, sysError("attach backend: %w", err)
	}
	return backend, nil
}

// catalog builds the tool registry and its toggles over store.
func (a *app) catalog(store *sqlite.Backend) (*registry.Registry, *registry.Toggles, error) {
	api, err := apiConfig(a.cfg)
	if err != nil {
		return nil, nil, userError("invalid config: %w", err)
	}
	reg, err := registry.Default(registry.Deps{
		Store:      store,
		HTTPClient: &http.Client{Timeout: api.Timeout},
		RatesURL:   api.RatesURL,
		IPURL:      api.IPURL,
		Now:        a.now,
		Markdown:   text.NewMarkdown(),
	})
	if err != nil {
		return nil, nil, sysError("build catalog: %w", err)
	}
	toggles, err := registry.NewToggles(reg, store)
	if err != nil {
		return nil, nil, sysError("load tool toggles: %w", err)
	}
	return reg, toggles, nil
}

// table returns the named table, mapping lookup failures onto exit codes.
func table(store *sqlite.Backend, name string) (types.Table, error) {
	t, err := store.GetTable(name)
	if errors.Is(err, types.ErrTableNotFound) {
		return nil, userError("unknown table %q (valid: %s)", name, validTableNamesStr)
	}
	if err != nil {
		return nil, sysError("get table: %w", err)
	}
	return t, nil
}

// entityError maps a table operation failure onto an exit code.
func entityError(op string, err error) error {
	switch {
	case errors.Is(err, types.ErrNotFound):
		return userError("%s: not found", op)
	case errors.Is(err, types.ErrInvalidID), errors.Is(err, types.ErrInvalidData),
		errors.Is(err, types.ErrInvalidTitle), errors.Is(err, types.ErrInvalidFilter):
		return userError("%s: %w", op, err)
	}
	return sysError("%s: %w", op, err)
}

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError("marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(out))
	return nil
}

// parsePairs splits key=value arguments.
func parsePairs(args []string) (map[string]string, error) {
	out := make(map[string]string, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return nil, userError("invalid argument %q (expected key=value)", arg)
		}
		out[k] = v
	}
	return out, nil
}
