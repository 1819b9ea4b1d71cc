// =============================================================================
// GAEB Converter - Configuration Module
// =============================================================================
//
// Loads the application configuration from a YAML file. All settings have
// working defaults, so running without a config file is fully supported; the
// file only overrides what it names.
//
// CONFIGURATION AREAS:
//   1. Producer identity stamped into generated GAEBInfo blocks
//   2. Default GAEB format version for new documents
//   3. Schema directory for XSD validation
//   4. Logging verbosity
//   5. User-defined formula constants merged over the built-in table
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/gaebtools/gaebconv/internal/formula"
	"github.com/gaebtools/gaebconv/internal/model"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// AppConfig holds the global application configuration.
type AppConfig struct {
	// ProgSystem and ProgName identify the producing system in the
	// <GAEBInfo> block of written files.
	ProgSystem string `yaml:"prog_system"`
	ProgName   string `yaml:"prog_name"`

	// DefaultVersion is the GAEB format version for newly created documents.
	// Valid values: "3.2", "3.3"
	// Default: "3.3"
	DefaultVersion string `yaml:"default_version"`

	// XSDDir is the directory holding the official GAEB XSD schema files
	// used by the validate command.
	// Default: "./xsd"
	XSDDir string `yaml:"xsd_dir"`

	// LogLevel controls logging verbosity.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// Constants are user-defined formula constants, merged over the
	// built-in construction constants. Values are decimal strings.
	//
	// Example:
	//   constants:
	//     DICHTE_SCHOTTER:
	//       value: "1.7"
	//       description: "Dichte Schotter [t/m3]"
	Constants map[string]ConstantEntry `yaml:"constants"`
}

// ConstantEntry is one user-defined formula constant.
type ConstantEntry struct {
	Value       string `yaml:"value"`
	Description string `yaml:"description,omitempty"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration from path. A missing file yields the pure
// default configuration; a present but malformed file is an error.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyDefaults(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(cfg)
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Default returns the configuration used when no config file exists.
func Default() *AppConfig {
	cfg := &AppConfig{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *AppConfig) {
	if cfg.ProgSystem == "" {
		cfg.ProgSystem = "gaebconv"
	}
	if cfg.ProgName == "" {
		cfg.ProgName = "gaebconv v1.0.0"
	}
	if cfg.DefaultVersion == "" {
		cfg.DefaultVersion = model.DefaultVersion
	}
	if cfg.XSDDir == "" {
		cfg.XSDDir = "./xsd"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

func validate(cfg *AppConfig) error {
	if cfg.DefaultVersion != model.Version32 && cfg.DefaultVersion != model.Version33 {
		return fmt.Errorf("unsupported GAEB version: %s", cfg.DefaultVersion)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level: %s", cfg.LogLevel)
	}
	for name, entry := range cfg.Constants {
		if _, err := decimal.NewFromString(entry.Value); err != nil {
			return fmt.Errorf("constant %s has a non-decimal value %q", name, entry.Value)
		}
	}
	return nil
}

// FormulaConstants merges the user-defined constants over the built-in
// table. Values were validated on load; unparseable leftovers are skipped.
func (cfg *AppConfig) FormulaConstants() map[string]formula.Constant {
	constants := formula.DefaultConstants()
	for name, entry := range cfg.Constants {
		value, err := decimal.NewFromString(entry.Value)
		if err != nil {
			continue
		}
		constants[name] = formula.Constant{Value: value, Description: entry.Description}
	}
	return constants
}
