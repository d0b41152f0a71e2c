// Package cli implements the iterx command.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/iterx/config"
	apperrors "github.com/kbukum/iterx/errors"
	"github.com/kbukum/iterx/logger"
	"github.com/kbukum/iterx/observability"
	"github.com/kbukum/iterx/validation"
	"github.com/kbukum/iterx/version"
)

type ExitCode int

const (
	exitCodeSuccess = 0
	exitCodeError   = 1
	exitCodeUsage   = 2
)

// app is the state shared by subcommands once the root has loaded config.
type app struct {
	configFile string
	verbose    bool

	cfg      config.Config
	metrics  *observability.Metrics
	tracer   trace.Tracer
	shutdown []func(context.Context) error
}

// Run executes the iterx command with os.Args.
func Run() ExitCode {
	return exitCodeFor(NewRootCmd().Execute())
}

// exitCodeFor maps errors the caller can fix by changing arguments or config
// to a usage exit code and everything else to a runtime failure.
func exitCodeFor(err error) ExitCode {
	switch {
	case err == nil:
		return exitCodeSuccess
	case apperrors.IsCallerFault(apperrors.CodeOf(err)):
		return exitCodeUsage
	default:
		return exitCodeError
	}
}

// NewRootCmd builds the iterx command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:           "iterx",
		Short:         "Evaluate lazy numeric iterator pipelines.",
		Version:       version.Get().Short(),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cmd.Help(); err != nil {
				return fmt.Errorf("failed to show help: %w", err)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "path to a config file (default: ./iterx.yml, then the user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "set debug logging level")

	rootCmd.AddCommand(
		newRangeCmd(a),
		newRepeatCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	var opts []config.LoaderOption
	if a.configFile != "" {
		opts = append(opts, config.WithConfigFile(a.configFile))
	}
	if err := config.LoadConfig("iterx", &a.cfg, opts...); err != nil {
		return err
	}
	if a.verbose {
		a.cfg.Logging.Level = "debug"
	}
	a.cfg.ApplyDefaults()
	if err := validation.Validate(&a.cfg); err != nil {
		return err
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	a.cfg.Logging.Writer = cmd.ErrOrStderr()
	logger.Init(&a.cfg.Logging)

	if a.cfg.Telemetry.Enabled {
		return a.initTelemetry(cmd.Context())
	}
	return nil
}

func (a *app) initTelemetry(ctx context.Context) error {
	t := a.cfg.Telemetry
	v := a.cfg.Version
	if v == "" {
		v = version.Get().Short()
	}

	export := observability.ExportConfig{
		ServiceName:    a.cfg.Name,
		ServiceVersion: v,
		Environment:    a.cfg.Environment,
		Endpoint:       t.Endpoint,
		Insecure:       t.Insecure,
	}

	mp, err := observability.InitMeter(ctx, &observability.MeterConfig{ExportConfig: export})
	if err != nil {
		return err
	}
	a.shutdown = append(a.shutdown, mp.Shutdown)

	tp, err := observability.InitTracer(ctx, &observability.TracerConfig{
		ExportConfig: export,
		SampleRate:   t.SampleRate,
	})
	if err != nil {
		return err
	}
	a.shutdown = append(a.shutdown, tp.Shutdown)

	a.metrics, err = observability.NewMetrics(mp.Meter("iterx"))
	if err != nil {
		return err
	}
	a.tracer = tp.Tracer("iterx")
	return nil
}

func (a *app) teardown(ctx context.Context) error {
	var errs []error
	for _, fn := range a.shutdown {
		if err := fn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.shutdown = nil
	return errors.Join(errs...)
}

func newVersionCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), info)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), info.String())
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
