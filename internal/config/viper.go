// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"budget-recon/internal/tabular"
	"budget-recon/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. BUDGET_RECON_LOG_LEVEL.
const EnvPrefix = "BUDGET_RECON"

// Config represents the complete application configuration
type Config struct {
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	CSV     CSVConfig     `mapstructure:"csv" yaml:"csv"`
	Inputs  InputsConfig  `mapstructure:"inputs" yaml:"inputs"`
	Outputs OutputsConfig `mapstructure:"outputs" yaml:"outputs"`
}

// LogConfig selects the log level and formatter.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"required"`
	Format string `mapstructure:"format" yaml:"format" validate:"required"`
}

// CSVConfig controls delimited input parsing and report output.
type CSVConfig struct {
	Delimiter      string   `mapstructure:"delimiter" yaml:"delimiter" validate:"required"`
	InputDelimiter string   `mapstructure:"input_delimiter" yaml:"input_delimiter" validate:"required"`
	Encodings      []string `mapstructure:"encodings" yaml:"encodings" validate:"required,min=1,dive,required"`
}

// InputsConfig locates the three exports.
type InputsConfig struct {
	Purchasing string `mapstructure:"purchasing" yaml:"purchasing" validate:"required"`
	Ledger     string `mapstructure:"ledger" yaml:"ledger" validate:"required"`
	Tracking   string `mapstructure:"tracking" yaml:"tracking" validate:"required"`
}

// OutputsConfig names the reports. Relative names resolve against Directory.
type OutputsConfig struct {
	Directory    string `mapstructure:"directory" yaml:"directory"`
	Requisitions string `mapstructure:"requisitions" yaml:"requisitions" validate:"required"`
	LedgerDocs   string `mapstructure:"ledger_docs" yaml:"ledger_docs" validate:"required"`
	Reconciled   string `mapstructure:"reconciled" yaml:"reconciled" validate:"required"`
	Review       string `mapstructure:"review" yaml:"review" validate:"required"`
	// Summary is optional; when set a YAML run summary is written there.
	Summary string `mapstructure:"summary" yaml:"summary"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading.
// When configFile is empty the standard locations are searched and a missing
// file is not an error; an explicit configFile must exist and parse.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.budget-recon")
		v.AddConfigPath(".budget-recon")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file
	if err := v.ReadInConfig(); err != nil {
		if configFile != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars
			fmt.Fprintf(os.Stderr, "Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default input and output file names.
const (
	DefaultPurchasingFile   = "Unimarket Export.csv"
	DefaultLedgerFile       = "YTD Banner Lines.csv"
	DefaultTrackingFile     = "SupabaseBudgetExport.csv"
	DefaultRequisitionsFile = "requisitions_grouped.csv"
	DefaultLedgerDocsFile   = "banner_docs_grouped.csv"
	DefaultReconciledFile   = "requisition_banner_reconciled.csv"
	DefaultReviewFile       = "review_needed.csv"
)

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// CSV defaults
	v.SetDefault("csv.delimiter", ",")
	v.SetDefault("csv.input_delimiter", ",")
	v.SetDefault("csv.encodings", tabular.DefaultEncodings)

	// Input defaults
	v.SetDefault("inputs.purchasing", DefaultPurchasingFile)
	v.SetDefault("inputs.ledger", DefaultLedgerFile)
	v.SetDefault("inputs.tracking", DefaultTrackingFile)

	// Output defaults
	v.SetDefault("outputs.directory", ".")
	v.SetDefault("outputs.requisitions", DefaultRequisitionsFile)
	v.SetDefault("outputs.ledger_docs", DefaultLedgerDocsFile)
	v.SetDefault("outputs.reconciled", DefaultReconciledFile)
	v.SetDefault("outputs.review", DefaultReviewFile)
	v.SetDefault("outputs.summary", "")
}

var structValidator = newStructValidator()

// newStructValidator reports fields by their configuration key.
func newStructValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if err := structValidator.Struct(config); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok || len(fieldErrs) == 0 {
			return err
		}
		fe := fieldErrs[0]
		key := fe.Namespace()
		if i := strings.Index(key, "."); i >= 0 {
			key = key[i+1:]
		}
		if fe.Tag() == "required" {
			return fmt.Errorf("%s is required", key)
		}
		return fmt.Errorf("%s failed '%s' validation", key, fe.Tag())
	}

	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	// Validate CSV delimiters
	if err := validation.IsValidDelimiter(config.CSV.Delimiter); err != nil {
		return fmt.Errorf("CSV delimiter: %w", err)
	}
	if err := validation.IsValidDelimiter(config.CSV.InputDelimiter); err != nil {
		return fmt.Errorf("CSV input delimiter: %w", err)
	}

	// Validate encodings
	if err := tabular.ValidateEncodings(config.CSV.Encodings); err != nil {
		return fmt.Errorf("csv.encodings: %w", err)
	}

	return nil
}

// DelimiterRune returns the report delimiter.
func (c *Config) DelimiterRune() rune {
	return firstRune(c.CSV.Delimiter)
}

// InputDelimiterRune returns the delimiter of text inputs.
func (c *Config) InputDelimiterRune() rune {
	return firstRune(c.CSV.InputDelimiter)
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return ','
}
