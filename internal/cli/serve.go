// Serve command runs the web shell.
package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/toolbox/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tool catalog over HTTP",
		Long: `Serve starts the web shell: the sidebar, one page per tool, the JSON API
under /api and Prometheus metrics under /metrics. It stops on SIGINT or
SIGTERM after draining in-flight requests.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			backend, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer func() {
				if err := backend.Detach(); err != nil {
					a.log.Error("detach store", zap.Error(err))
				}
			}()

			reg, toggles, err := a.catalog(backend)
			if err != nil {
				return err
			}

			sc := serverConfig(a.cfg)
			if addr != "" {
				sc.Addr = addr
			}
			srv, err := server.New(server.Config{
				Addr:      sc.Addr,
				RateLimit: sc.RateLimit,
				Burst:     sc.Burst,
			}, server.Deps{
				Registry: reg,
				Toggles:  toggles,
				Store:    backend,
				Logger:   a.log,
			})
			if err != nil {
				return sysError("build server: %w", err)
			}

			a.log.Info("serving toolbox",
				zap.String("addr", srv.Addr()),
				zap.Int("tools", reg.Len()),
				zap.String("data_dir", backend.DataDir()))
			if err := srv.ListenAndServe(ctx); err != nil {
				return sysError("serve: %w", err)
			}
			a.log.Info("server stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: config server.addr)")
	return cmd
}
