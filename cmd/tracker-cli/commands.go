package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/classroom-tracker/internal/bootstrap"
	"github.com/noah-isme/classroom-tracker/internal/service"
	"github.com/noah-isme/classroom-tracker/pkg/ai"
	"github.com/noah-isme/classroom-tracker/pkg/config"
	"github.com/noah-isme/classroom-tracker/pkg/logger"
)

// cliEnv carries the collaborators a command needs so tests can swap them.
type cliEnv struct {
	loadConfig func() (*config.Config, error)
	newLogger  func(cfg *config.Config) (*zap.Logger, error)
	generator  func(cmd *cobra.Command, cfg *config.Config) (service.ModuleGenerator, error)
}

func defaultEnv() cliEnv {
	return cliEnv{
		loadConfig: config.Load,
		newLogger:  logger.New,
		generator: func(cmd *cobra.Command, cfg *config.Config) (service.ModuleGenerator, error) {
			if !cfg.AI.Enabled() {
				return nil, nil
			}
			return ai.NewGeminiModuleGenerator(cmd.Context(), cfg.AI.APIKey, cfg.AI.Model)
		},
	}
}

func newRootCmd(env cliEnv) *cobra.Command {
	root := &cobra.Command{
		Use:           "tracker-cli",
		Short:         "Offline tools for the classroom tracker state",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newExportCmd(env),
		newShiftDateCmd(),
		newGenerateModuleCmd(env),
	)
	return root
}

func newExportCmd(env cliEnv) *cobra.Command {
	var out, locale string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the attendance CSV report from the configured store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logr, err := env.setup()
			if err != nil {
				return err
			}
			defer logr.Sync() //nolint:errcheck

			tracker, closeStore, err := openTracker(cmd, cfg, logr)
			if err != nil {
				return err
			}
			defer closeStore()

			if locale == "" {
				locale = cfg.Reports.Locale
			}
			reports := service.NewReportService(tracker, nil, nil, nil, nil, logr, service.ReportServiceConfig{Locale: locale})
			report, err := reports.Render(cmd.Context())
			if err != nil {
				return err
			}

			if out == "" {
				out = report.Filename
			}
			if out == "-" {
				_, err = cmd.OutOrStdout().Write(report.Payload)
				return err
			}
			if err := os.WriteFile(out, report.Payload, 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d rows written to %s\n", report.Rows, out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file, - for stdout (default reporte_asistencia_<today>.csv)")
	cmd.Flags().StringVar(&locale, "locale", "", "label locale, es or en (default REPORT_LOCALE)")
	return cmd
}

func newShiftDateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shift-date DATE DAYS",
		Short: "Print DATE moved by DAYS calendar days",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			days, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid days %q: %w", args[1], err)
			}
			shifted, err := service.ShiftDate(args[0], days)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), shifted)
			return nil
		},
	}
}

func newGenerateModuleCmd(env cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "generate-module PROMPT",
		Short: "Generate an evaluation module with the AI service and save it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logr, err := env.setup()
			if err != nil {
				return err
			}
			defer logr.Sync() //nolint:errcheck

			generator, err := env.generator(cmd, cfg)
			if err != nil {
				return err
			}

			tracker, closeStore, err := openTracker(cmd, cfg, logr)
			if err != nil {
				return err
			}
			defer closeStore()

			modules := service.NewModuleService(tracker, generator, nil, nil, logr, cfg.AI.Timeout)
			module, err := modules.Generate(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", module.ID, module.Type, module.Name)
			return nil
		},
	}
}

func (env cliEnv) setup() (*config.Config, *zap.Logger, error) {
	cfg, err := env.loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logr, err := env.newLogger(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logr, nil
}

func openTracker(cmd *cobra.Command, cfg *config.Config, logr *zap.Logger) (*service.TrackerService, func(), error) {
	store, _, err := bootstrap.OpenStateStore(cmd.Context(), cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open state store: %w", err)
	}
	persistence := service.NewStatePersistence(store, nil, logr)
	tracker := service.NewTrackerService(persistence.Load(cmd.Context()), persistence, service.UUIDGenerator{}, nil, logr)
	return tracker, func() { _ = store.Close() }, nil
}
