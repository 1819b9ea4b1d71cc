// =============================================================================
// GAEB Converter - Convert Command
// =============================================================================
//
// This file defines the 'convert' command, which reads a GAEB DA XML file,
// optionally converts it to another exchange phase, and writes the result.
//
// COMMAND USAGE:
//   gaebconv convert <input> [flags]
//
// FLAGS:
//   --target, -t : Target phase (x81..x86); default keeps the source phase
//   --output, -o : Output path; default swaps the phase extension
//   --backup     : Write a timestamped .bak copy before overwriting
//
// CONVERSION PIPELINE:
//   1. Read the input file and its formula sidecar
//   2. Convert to the target phase, collecting warnings about stripped data
//   3. Write the output file in strict element order
//   4. Save (or delete) the formula sidecar next to the output
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gaebtools/gaebconv/internal/formula"
	"github.com/gaebtools/gaebconv/internal/gaebxml"
	"github.com/gaebtools/gaebconv/internal/phaseconv"
	"github.com/gaebtools/gaebconv/internal/sidecar"
	"github.com/gaebtools/gaebconv/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// targetPhase is the target exchange phase, e.g. "x84".
var targetPhase string

// outputPath overrides the derived output file path.
var outputPath string

// backup writes a timestamped copy before overwriting an existing output.
var backup bool

// =============================================================================
// CONVERT COMMAND DEFINITION
// =============================================================================

// convertCmd represents the 'convert' command.
var convertCmd = &cobra.Command{
	Use:   "convert <input>",
	Short: "Convert a GAEB file to another exchange phase",
	Long: `The convert command reads a GAEB DA XML file and writes it back, optionally
converted to a different exchange phase.

Converting to a phase with fewer permitted fields strips data: converting an
X84 bid to an X81 service description removes all quantities, prices and
totals. Every removal is reported as a warning. Converting to a richer phase
never invents data; prices must be entered afterwards.

Quantity formulas stored in the .lvgmeta.json sidecar survive the conversion
and are written next to the output file.`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(args[0])
	},
}

// =============================================================================
// CONVERSION LOGIC
// =============================================================================

func runConvert(inputPath string) error {
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
	project, err := reader.Read(inputPath)
	if err != nil {
		return err
	}
	if err := sidecar.Load(project, inputPath); err != nil {
		return err
	}
	log.Info("file read",
		zap.String("file", inputPath),
		zap.String("phase", project.Phase.String()),
		zap.String("version", project.GAEBInfo.Version),
	)

	target := project.Phase
	if targetPhase != "" {
		target, err = parsePhase(targetPhase)
		if err != nil {
			return err
		}
	}

	converter := phaseconv.NewConverter(evaluator, log)
	result := converter.Convert(project, target)
	for _, warning := range result.Warnings {
		fmt.Printf("Warnung: %s\n", warning)
	}

	outPath := utils.ResolveOutputPath(inputPath, outputPath, target)
	if backup && utils.FileExists(outPath) {
		backupPath, err := utils.BackupFile(outPath)
		if err != nil {
			return fmt.Errorf("backup failed: %w", err)
		}
		log.Info("backup written", zap.String("file", backupPath))
	}

	result.Project.GAEBInfo.ProgSystem = cfg.ProgSystem
	result.Project.GAEBInfo.ProgName = cfg.ProgName

	writer := gaebxml.NewWriter(evaluator)
	if err := writer.Write(result.Project, outPath, cfg.DefaultVersion); err != nil {
		return err
	}
	if err := sidecar.Save(result.Project, outPath); err != nil {
		return err
	}

	fmt.Printf("%s -> %s (%s)\n", inputPath, outPath, target.LabelDE())
	return nil
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the convert command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(
		&targetPhase,
		"target",
		"t",
		"",
		"Target exchange phase (x81..x86); default keeps the source phase",
	)

	convertCmd.Flags().StringVarP(
		&outputPath,
		"output",
		"o",
		"",
		"Output file path (default swaps the phase extension of the input)",
	)

	convertCmd.Flags().BoolVar(
		&backup,
		"backup",
		false,
		"Write a timestamped backup before overwriting the output file",
	)
}
