// =============================================================================
// GAEB Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'convert', 'validate') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (gaebconv)
//   ├── convertCmd (gaebconv convert)
//   ├── validateCmd (gaebconv validate)
//   ├── compareCmd (gaebconv compare)
//   └── versionCmd (gaebconv version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading the YAML configuration
//   3. Setting up the zap logger
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gaebtools/gaebconv/internal/config"
	"github.com/gaebtools/gaebconv/internal/model"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging regardless of the configured log level.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "gaebconv",

	Short: "GAEB Converter - Read, convert and compare GAEB DA XML tender files",

	Long: `GAEB Converter is a CLI tool for working with GAEB DA XML files, the
standardized German tender exchange format (phases X81 through X86).

Key Features:
  - Lossless reading and writing of GAEB DA XML 3.2/3.3 files
  - Phase conversion (e.g. X83 tender request to X84 bid submission)
  - Quantity formulas with construction constants, stored in a JSON sidecar
  - Price comparison (Preisspiegel) across bidder files with Excel export
  - Structural and XSD schema validation

Example Usage:
  gaebconv convert angebot.x83 --target x84   # Convert to bid submission
  gaebconv validate angebot.x84 --xsd         # Check structure and schema
  gaebconv compare lv.x83 bieter1.x84 bieter2.x84 -o preisspiegel.xlsx`,

	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print the help message.
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// SHARED SETUP
// =============================================================================

// loadConfig reads the configuration named by --config. A missing file is
// fine and yields the defaults.
func loadConfig() (*config.AppConfig, error) {
	return config.Load(cfgFile)
}

// newLogger builds the application logger from the configured log level.
// --verbose forces debug output.
func newLogger(cfg *config.AppConfig) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("unknown log level: %s", cfg.LogLevel)
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.Encoding = "console"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapCfg.Build()
}

// parsePhase maps a user-supplied phase name like "x84", "X84" or "84" to a
// Phase.
func parsePhase(s string) (model.Phase, error) {
	trimmed := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "x")
	dp, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid phase %q (expected x81..x86)", s)
	}
	phase, err := model.PhaseFromDP(dp)
	if err != nil {
		return 0, fmt.Errorf("invalid phase %q (expected x81..x86)", s)
	}
	return phase, nil
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags available to every subcommand.
func init() {
	// --config flag: Allows the user to specify a custom configuration file.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file (default is config.yaml)",
	)

	// --verbose flag: Enables verbose/debug logging.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
