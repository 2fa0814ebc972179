package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sartorproj/goskill/loss"
	"github.com/sartorproj/goskill/report"
	"github.com/sartorproj/goskill/timeseries"
)

type options struct {
	configPath string
	logLevel   string

	input  string
	output string
	format string
	plot   string

	skew bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "skillreport",
		Short:         "Seasonal forecast skill scores",
		Long:          `Scores a monthly forecast separately for each calendar month and evaluates probabilistic losses.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "YAML config file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", envOr("LOG_LEVEL", "info"), "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVarP(&opts.input, "input", "i", "", "forecast CSV (overrides config)")

	root.AddCommand(newEvaluateCmd(opts), newLossCmd(opts))
	return root
}

func newEvaluateCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Compute every skill score for a forecast",
		Long: `Compute per-month explained variance, correlation, normalized RMSE and,
when the forecast has a spread column, interval coverage and log-likelihoods.

Examples:
  # Report as JSON on stdout
  skillreport evaluate -i forecast.csv

  # YAML report plus a chart
  skillreport evaluate -c skill.yaml --format yaml --plot skill.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), opts.logLevel)
			return runEvaluate(cmd.OutOrStdout(), opts, logger)
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "report file (default stdout)")
	cmd.Flags().StringVar(&opts.format, "format", "", "report format: json or yaml")
	cmd.Flags().StringVar(&opts.plot, "plot", "", "write a monthly skill chart (.png or .svg)")
	return cmd
}

func newLossCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loss",
		Short: "Print the batch negative log-likelihood of a forecast",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), opts.logLevel)
			return runLoss(cmd.OutOrStdout(), opts, logger)
		},
	}
	cmd.Flags().BoolVar(&opts.skew, "skew", false, "use the skew-Gaussian likelihood (needs a skew column)")
	return cmd
}

func loadConfig(opts *options) (*report.Config, error) {
	return report.LoadConfig(opts.configPath, func(cfg *report.Config) {
		if opts.input != "" {
			cfg.Input.Path = opts.input
		}
		if opts.output != "" {
			cfg.Output.Path = opts.output
		}
		if opts.format != "" {
			cfg.Output.Format = opts.format
		}
		if opts.plot != "" {
			cfg.Output.PlotPath = opts.plot
		}
	})
}

func loadForecast(cfg *report.Config, logger *slog.Logger) (*timeseries.Forecast, error) {
	f, err := timeseries.LoadCSV(cfg.Input.Path, cfg.CSVOptions())
	if err != nil {
		return nil, fmt.Errorf("load forecast: %w", err)
	}
	f.Name = cfg.Input.Name
	logger.Debug("forecast loaded",
		"path", cfg.Input.Path,
		"rows", f.Len(),
		"spread", f.HasSpread(),
		"skew", f.HasSkew(),
	)
	return f, nil
}

func runEvaluate(stdout io.Writer, opts *options, logger *slog.Logger) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	f, err := loadForecast(cfg, logger)
	if err != nil {
		return err
	}

	r, err := report.Build(f, cfg, logger)
	if err != nil {
		return err
	}

	if cfg.Output.Path == "" {
		err = report.Write(stdout, r, cfg.Output.Format)
	} else {
		err = writeReportFile(cfg.Output.Path, r, cfg.Output.Format)
	}
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if cfg.Output.PlotPath != "" {
		if err := report.Plot(r, cfg.Output.PlotPath); err != nil {
			return err
		}
		logger.Info("plot written", "path", cfg.Output.PlotPath)
	}
	return nil
}

func writeReportFile(path string, r *report.Report, format string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.Write(file, r, format); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func runLoss(stdout io.Writer, opts *options, logger *slog.Logger) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	f, err := loadForecast(cfg, logger)
	if err != nil {
		return err
	}

	params, err := f.Params(opts.skew)
	if err != nil {
		return err
	}

	var fn loss.Func = loss.GaussianNLL{Epsilon: cfg.Loss.SpreadFloor}
	name := "gaussian_nll"
	if opts.skew {
		fn = loss.SkewGaussianNLL{Epsilon: cfg.Loss.SpreadFloor, Delta: cfg.Loss.DensityFloor}
		name = "skew_gaussian_nll"
	}

	value, err := fn.Loss(f.Observed, params)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s\t%.6g\n", name, value)
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
