package report

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/sartorproj/goskill/loss"
	"github.com/sartorproj/goskill/timeseries"
)

var configValidate = validator.New()

// Config drives a skill report run.
type Config struct {
	Input     InputConfig    `yaml:"input"`
	Output    OutputConfig   `yaml:"output"`
	Coverage  CoverageConfig `yaml:"coverage"`
	Loss      LossConfig     `yaml:"loss"`
	Residuals ResidualConfig `yaml:"residuals"`
}

// InputConfig describes the forecast CSV.
type InputConfig struct {
	Path           string `yaml:"path" validate:"required"`
	Name           string `yaml:"name"`
	DateColumn     string `yaml:"dateColumn" validate:"required"`
	ObservedColumn string `yaml:"observedColumn" validate:"required"`
	MeanColumn     string `yaml:"meanColumn" validate:"required"`
	SpreadColumn   string `yaml:"spreadColumn"`
	SkewColumn     string `yaml:"skewColumn"`
	DateFormat     string `yaml:"dateFormat"`
	Delimiter      string `yaml:"delimiter" validate:"omitempty,len=1"`
}

// OutputConfig controls where the report goes. An empty Path writes to stdout.
type OutputConfig struct {
	Path     string `yaml:"path"`
	Format   string `yaml:"format" validate:"oneof=json yaml"`
	PlotPath string `yaml:"plotPath" validate:"omitempty,endswith=.png|endswith=.svg"`
}

// CoverageConfig lists the interval half-widths, in predicted spreads, to
// check coverage for.
type CoverageConfig struct {
	StdLevels []float64 `yaml:"stdLevels" validate:"dive,gte=0"`
}

// LossConfig overrides the loss stability floors.
type LossConfig struct {
	SpreadFloor  float64 `yaml:"spreadFloor" validate:"gt=0"`
	DensityFloor float64 `yaml:"densityFloor" validate:"gt=0"`
}

// ResidualConfig controls the Ljung-Box test on forecast errors.
type ResidualConfig struct {
	Lags int `yaml:"lags" validate:"gte=1"`
}

// DefaultConfig returns a configuration matching timeseries.DefaultCSVOptions.
func DefaultConfig() *Config {
	csv := timeseries.DefaultCSVOptions()
	return &Config{
		Input: InputConfig{
			DateColumn:     csv.DateColumn,
			ObservedColumn: csv.ObservedColumn,
			MeanColumn:     csv.MeanColumn,
			SpreadColumn:   csv.SpreadColumn,
			SkewColumn:     csv.SkewColumn,
			DateFormat:     csv.DateFormat,
			Delimiter:      string(csv.Delimiter),
		},
		Output: OutputConfig{
			Format: "json",
		},
		Coverage: CoverageConfig{
			StdLevels: []float64{1, 2},
		},
		Loss: LossConfig{
			SpreadFloor:  loss.DefaultSpreadFloor,
			DensityFloor: loss.DefaultDensityFloor,
		},
		Residuals: ResidualConfig{
			Lags: 12,
		},
	}
}

// LoadConfig reads configuration from a YAML file, if path is set, and
// then from SKILL_* environment variables, on top of DefaultConfig.
// Overrides run last, before validation.
func LoadConfig(path string, overrides ...func(*Config)) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)
	for _, override := range overrides {
		override(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SKILL_INPUT"); v != "" {
		cfg.Input.Path = v
	}
	if v := os.Getenv("SKILL_OUTPUT"); v != "" {
		cfg.Output.Path = v
	}
	if v := os.Getenv("SKILL_FORMAT"); v != "" {
		cfg.Output.Format = strings.ToLower(v)
	}
	if v := os.Getenv("SKILL_PLOT"); v != "" {
		cfg.Output.PlotPath = v
	}
	if v := os.Getenv("SKILL_STD_LEVELS"); v != "" {
		var levels []float64
		for _, part := range strings.Split(v, ",") {
			if parsed, err := strconv.ParseFloat(strings.TrimSpace(part), 64); err == nil {
				levels = append(levels, parsed)
			}
		}
		if len(levels) > 0 {
			cfg.Coverage.StdLevels = levels
		}
	}
	if v := os.Getenv("SKILL_SPREAD_FLOOR"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Loss.SpreadFloor = parsed
		}
	}
	if v := os.Getenv("SKILL_DENSITY_FLOOR"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Loss.DensityFloor = parsed
		}
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	return configValidate.Struct(c)
}

// CSVOptions converts the input section into loader options.
func (c *Config) CSVOptions() *timeseries.CSVOptions {
	opts := &timeseries.CSVOptions{
		DateColumn:     c.Input.DateColumn,
		ObservedColumn: c.Input.ObservedColumn,
		MeanColumn:     c.Input.MeanColumn,
		SpreadColumn:   c.Input.SpreadColumn,
		SkewColumn:     c.Input.SkewColumn,
		DateFormat:     c.Input.DateFormat,
		Delimiter:      ',',
	}
	if c.Input.Delimiter != "" {
		opts.Delimiter = []rune(c.Input.Delimiter)[0]
	}
	return opts
}
