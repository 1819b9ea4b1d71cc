// =============================================================================
// GAEB Converter - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which checks a GAEB DA XML file
// on two levels:
//
//   1. Structural validation of the document model (ordinals, quantities,
//      prices, formulas, ordinal breakdown mask) with German findings
//   2. Optional XSD schema validation against the official GAEB schemas
//
// COMMAND USAGE:
//   gaebconv validate <file> [flags]
//
// FLAGS:
//   --xsd : Additionally validate against the XSD schema for the detected
//           phase and version (requires the schemas in the configured xsd_dir)
//
// EXIT BEHAVIOR:
//   The command returns an error (exit code 1) when any finding of severity
//   "error" or any schema violation exists. Warnings alone pass.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gaebtools/gaebconv/internal/formula"
	"github.com/gaebtools/gaebconv/internal/gaebxml"
	"github.com/gaebtools/gaebconv/internal/sidecar"
	"github.com/gaebtools/gaebconv/internal/validation"
	"github.com/gaebtools/gaebconv/internal/xsdcheck"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// withXSD enables schema validation in addition to the structural checks.
var withXSD bool

// =============================================================================
// VALIDATE COMMAND DEFINITION
// =============================================================================

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a GAEB file structurally and optionally against the XSD",
	Long: `The validate command reads a GAEB DA XML file and checks the document model
against the rules of its exchange phase: mandatory ordinal numbers, negative
quantities or prices, missing units, stored quantity formulas and the ordinal
breakdown mask.

With --xsd the serialized file is additionally validated against the official
GAEB XSD schema matching its detected phase and version. The schemas are read
from the xsd_dir configured in the config file.`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(args[0])
	},
}

// =============================================================================
// VALIDATION LOGIC
// =============================================================================

func runValidate(path string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	evaluator := formula.NewEvaluator(cfg.FormulaConstants()).Func()

	reader := gaebxml.NewReader(log)
	project, err := reader.Read(path)
	if err != nil {
		return err
	}
	if err := sidecar.Load(project, path); err != nil {
		return err
	}

	fmt.Printf("%s: %s (%s), GAEB DA XML %s\n",
		path, project.Phase, project.Phase.LabelDE(), project.GAEBInfo.Version)

	validator := validation.NewValidator(evaluator)
	result := validator.ValidateProject(project)
	for _, finding := range result.Errors {
		fmt.Println(finding.Error())
	}
	fmt.Printf("Struktur: %d Fehler, %d Warnungen\n", result.ErrorCount(), result.WarningCount())

	failed := !result.IsValid()

	if withXSD {
		schemaResult, err := xsdcheck.NewValidator(cfg.XSDDir).ValidateFile(path)
		if err != nil {
			return err
		}
		for _, e := range schemaResult.Errors {
			fmt.Printf("[XSD] %s\n", e.Message)
		}
		if schemaResult.Valid {
			fmt.Println("XSD: gueltig")
		} else {
			fmt.Printf("XSD: %d Fehler\n", len(schemaResult.Errors))
			failed = true
		}
	}

	if failed {
		return fmt.Errorf("validation failed: %s", path)
	}
	return nil
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the validate command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(
		&withXSD,
		"xsd",
		false,
		"Validate against the official GAEB XSD schema",
	)
}
