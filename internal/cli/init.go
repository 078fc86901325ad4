package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/toolbox/internal/paths"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize toolbox storage",
		Long:  "Create the configuration and data directories, then initialize the storage backend.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, err := paths.ResolveConfigDir(a.flags.configDir)
			if err != nil {
				return sysError("resolve config dir: %w", err)
			}
			dataDir, err := a.dataDir()
			if err != nil {
				return sysError("resolve data dir: %w", err)
			}

			cfgPath := filepath.Join(configDir, configFileExt)
			if err := os.MkdirAll(configDir, 0o755); err != nil {
				return sysError("create config directory: %w", err)
			}
			if err := writeConfigIfMissing(cfgPath, a.flags.dataDir); err != nil {
				return sysError("write config: %w", err)
			}
			if a.flags.dataDir != "" {
				if err := recordDataDir(cfgPath, dataDir); err != nil {
					return sysError("write config: %w", err)
				}
			}

			backend, err := a.attachBackend()
			if err != nil {
				return err
			}
			if err := backend.Detach(); err != nil {
				return sysError("finalize storage: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Toolbox initialized\nconfig: %s\ndata:   %s\n", configDir, dataDir)
			return nil
		},
	}
}
