// Package cli implements the toolbox command-line interface: the store and
// registry commands, running any tool from the shell, and serving the web
// shell.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/toolbox/internal/logging"
	"github.com/mesh-intelligence/toolbox/internal/paths"
	"github.com/mesh-intelligence/toolbox/pkg/toolbox"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// exitError carries the process exit code of a failed command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(format string, args ...any) error {
	return &exitError{code: exitUserError, err: fmt.Errorf(format, args...)}
}

func sysError(format string, args ...any) error {
	return &exitError{code: exitSysError, err: fmt.Errorf(format, args...)}
}

// ExitCode maps a command error onto a process exit code. Errors without
// an explicit code are usage errors from cobra.
func ExitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	verbose   bool
}

// app is the state shared by one invocation's commands.
type app struct {
	flags  rootFlags
	cfg    *viper.Viper
	log    *zap.Logger
	now    func() time.Time
	stderr io.Writer
}

// NewRootCmd creates the top-level "toolbox" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{now: time.Now, log: zap.NewNop(), stderr: os.Stderr}

	root := &cobra.Command{
		Use:     "toolbox",
		Short:   "A catalog of small everyday tools",
		Long:    "Toolbox bundles converters, text utilities, developer helpers, calculators\nand generators behind one web shell and one command line.",
		Version: toolbox.Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir, or $TOOLBOX_CONFIG_DIR)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: config data_dir, $TOOLBOX_DATA_DIR, or platform data dir)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newServeCmd(a),
		newToolsCmd(a),
		newRunCmd(a),
		newEnableCmd(a, true),
		newEnableCmd(a, false),
		newGetCmd(a),
		newSetCmd(a),
		newListCmd(a),
		newDeleteCmd(a),
	)
	return root
}

// setup loads config.yaml and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	a.stderr = cmd.ErrOrStderr()
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError("resolve config dir: %w", err)
	}
	a.cfg, err = loadConfig(configDir)
	if err != nil {
		return sysError("load config: %w", err)
	}

	level := a.cfg.GetString(cfgKeyLogLevel)
	if a.flags.verbose {
		level = "debug"
	}
	a.log, err = logging.New(logging.Options{
		Level:  level,
		Format: a.cfg.GetString(cfgKeyLogFormat),
		Writer: a.stderr,
	})
	if err != nil {
		return userError("configure logging: %w", err)
	}
	a.log.Debug("config loaded", zap.String("config_dir", configDir))
	return nil
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	root := NewRootCmd()
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
	}
	return ExitCode(err)
}
