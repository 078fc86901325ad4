// Run command executes a single tool from the shell.
package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/toolbox/pkg/types"
)

// runTimeout bounds a single tool run.
const runTimeout = 2 * time.Minute

// runOutput is the JSON shape printed by run --json.
type runOutput struct {
	Tool string `json:"tool"`
	types.Result
	Data []byte `json:"data,omitempty"`
}

func newRunCmd(a *app) *cobra.Command {
	var (
		files   []string
		outPath string
	)
	cmd := &cobra.Command{
		Use:   "run <id> [field=value...]",
		Short: "Run a tool with the given field values",
		Long: `Run executes one tool and prints its result. Field names are listed by
'toolbox tools show <id>'. File fields are read from disk with --file.

Example:
  toolbox run temperature-converter value=100 from=celsius to=fahrenheit
  toolbox run qr-code-generator text=https://example.com --out qr.png
  toolbox run image-resizer --file image=photo.jpg width=320 --out small.png`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parsePairs(args[1:])
			if err != nil {
				return err
			}
			in := types.NewInput(values)
			fileArgs, err := parsePairs(files)
			if err != nil {
				return err
			}
			for field, path := range fileArgs {
				data, err := os.ReadFile(path)
				if err != nil {
					return userError("read --file %s: %w", field, err)
				}
				in.Files[field] = types.File{
					Name:        filepath.Base(path),
					ContentType: http.DetectContentType(data),
					Data:        data,
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
			e, err := lookupTool(reg, args[0])
			if err != nil {
				return err
			}
			if !toggles.Enabled(e.Tool.ID) {
				return userError("tool %s is disabled (see 'toolbox enable')", e.Tool.ID)
			}
			if e.Tool.Guidance {
				a.log.Debug("running guidance tool", zap.String("tool", e.Tool.ID))
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			ctx, cancel := context.WithTimeout(ctx, runTimeout)
			defer cancel()

			start := a.now()
			res, err := e.Widget.Run(ctx, in)
			a.log.Debug("tool finished",
				zap.String("tool", e.Tool.ID),
				zap.Duration("duration", a.now().Sub(start)),
				zap.Error(err))
			if err != nil {
				return runError(e.Tool.ID, err)
			}

			if outPath != "" && res.HasDownload() {
				if err := os.WriteFile(outPath, res.Data, 0o644); err != nil {
					return sysError("write %s: %w", outPath, err)
				}
			}

			if a.flags.jsonMode {
				out := runOutput{Tool: e.Tool.ID, Result: res}
				if outPath == "" {
					out.Data = res.Data
				}
				return printJSON(cmd.OutOrStdout(), out)
			}
			printResult(cmd, res, outPath)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&files, "file", nil, "attach a file to a field as field=path (repeatable)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write a downloadable result to this path")
	return cmd
}

// runError maps a widget failure onto an exit code: bad input and
// unparseable data are the user's to fix, everything else is not.
func runError(id string, err error) error {
	switch types.KindOf(err) {
	case types.KindInput, types.KindParse:
		return userError("%s: %w", id, err)
	}
	return sysError("%s: %w", id, err)
}

func printResult(cmd *cobra.Command, res types.Result, outPath string) {
	w := cmd.OutOrStdout()
	if res.Status != "" {
		fmt.Fprintf(w, "[%s]\n", res.Status)
	}
	if res.Output != "" {
		fmt.Fprintln(w, res.Output)
	} else if res.HTML != "" {
		fmt.Fprintln(w, res.HTML)
	}
	for _, f := range res.Fields {
		fmt.Fprintf(w, "%s: %s\n", f.Label, f.Value)
	}
	if res.HasDownload() {
		if outPath != "" {
			fmt.Fprintf(w, "Wrote %s (%d bytes, %s)\n", outPath, len(res.Data), res.ContentType)
		} else {
			fmt.Fprintf(w, "Result has a file %s (%d bytes); pass --out to save it\n", res.Filename, len(res.Data))
		}
	}
}
