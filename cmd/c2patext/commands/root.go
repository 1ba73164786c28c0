package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"xdao.co/c2patext/compliance"
	"xdao.co/c2patext/config"
	"xdao.co/c2patext/storage"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// exitError carries a process exit code. A silent exitError has already
// reported itself on the command's output.
type exitError struct {
	code   int
	err    error
	silent bool
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func usageErr(err error) error { return &exitError{code: exitUsage, err: err} }

func failSilently() error { return &exitError{code: exitFailure, silent: true} }

// ExitCode maps an error returned by the command tree to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitFailure
}

// options is shared by every subcommand of one root command.
type options struct {
	configPath string
	logLevel   string
	storeDirs  []string

	cfg config.Config
	log *slog.Logger
}

// mode returns the compliance mode from flag, falling back to the config.
func (o *options) mode(flag string) (compliance.Mode, error) {
	if flag == "" {
		return o.cfg.ComplianceMode(), nil
	}
	m, err := compliance.ParseMode(flag)
	if err != nil {
		return m, usageErr(err)
	}
	return m, nil
}

func (o *options) openStore() (storage.Store, error) {
	s, err := o.cfg.OpenStore(o.storeDirs...)
	if errors.Is(err, storage.ErrNoBackends) {
		return nil, usageErr(errors.New("no manifest store configured (use --store-dir or store_dirs in the config file)"))
	}
	return s, err
}

// NewRootCommand builds the c2patext command tree.
func NewRootCommand() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:           "c2patext",
		Short:         "Embed, extract and validate C2PA manifests in Unicode text",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Resolve(o.configPath)
			if err != nil {
				return err
			}
			o.cfg = cfg

			level := cfg.Level()
			if o.logLevel != "" {
				if level, err = config.ParseLevel(o.logLevel); err != nil {
					return usageErr(err)
				}
			}
			o.log = newLogger(cmd.ErrOrStderr(), level)
			o.log.Debug("configuration loaded",
				slog.String("mode", cfg.ComplianceMode().String()),
				slog.Bool("validate_jumbf", cfg.JumbfChecks()),
				slog.Int("store_dirs", len(cfg.StoreDirs)))
			return nil
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageErr(err)
	})

	root.PersistentFlags().StringVar(&o.configPath, "config", "", "path to JSON config file (default $"+config.EnvVar+")")
	root.PersistentFlags().StringVar(&o.logLevel, "log-level", "", "log level: debug|info|warn|error")
	root.PersistentFlags().StringSliceVar(&o.storeDirs, "store-dir", nil, "manifest store directory (repeatable; overrides store_dirs)")

	root.AddCommand(
		embedCmd(o),
		extractCmd(o),
		validateCmd(o),
		inspectCmd(o),
		storeCmd(o),
	)
	return root
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Run executes the command tree with args and returns the process exit code.
func Run(args []string, in io.Reader, out, errOut io.Writer) int {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.Execute()
	if err == nil {
		return exitOK
	}
	var ee *exitError
	if !errors.As(err, &ee) || !ee.silent {
		fmt.Fprintf(errOut, "error: %v\n", err)
	}
	if ee == nil && isCobraUsage(err) {
		fmt.Fprintln(errOut, root.UsageString())
		return exitUsage
	}
	return ExitCode(err)
}
