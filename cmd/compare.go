// =============================================================================
// GAEB Converter - Compare Command
// =============================================================================
//
// This file defines the 'compare' command, which builds a price comparison
// (Preisspiegel) from one reference bill of quantities and any number of
// bidder files, and exports it as a styled Excel workbook.
//
// COMMAND USAGE:
//   gaebconv compare <reference> <bidder>... [flags]
//
// FLAGS:
//   --output, -o : Path of the .xlsx workbook (default preisspiegel.xlsx)
//
// JOIN SEMANTICS:
//   The reference file (usually the X83 tender request) is authoritative for
//   structure, quantities and short texts. Bidder positions are joined by
//   their full ordinal number; a bidder missing a position leaves the cell
//   empty, a 'not offered' position shows as n.a.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gaebtools/gaebconv/internal/export"
	"github.com/gaebtools/gaebconv/internal/gaebxml"
	"github.com/gaebtools/gaebconv/internal/preisspiegel"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// compareOutput is the path of the generated workbook.
var compareOutput string

// =============================================================================
// COMPARE COMMAND DEFINITION
// =============================================================================

// compareCmd represents the 'compare' command.
var compareCmd = &cobra.Command{
	Use:   "compare <reference> <bidder>...",
	Short: "Build a price comparison across bidder files and export it to Excel",
	Long: `The compare command joins one reference bill of quantities against one or
more bidder files (usually X84 bids) and writes the resulting Preisspiegel
as an Excel workbook: one unit price and one total price column per bidder,
min/max/average statistics, per-category subtotals and a grand total line.

The lowest and highest unit prices per position are highlighted when more
than one bidder competes. An unreadable bidder file aborts the comparison.`,

	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCompare(args[0], args[1:])
	},
}

// =============================================================================
// COMPARISON LOGIC
// =============================================================================

func runCompare(referencePath string, bidderPaths []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	reader := gaebxml.NewReader(log)
	reference, err := reader.Read(referencePath)
	if err != nil {
		return fmt.Errorf("reference file %s: %w", referencePath, err)
	}

	aggregator := preisspiegel.NewAggregator(log)
	ps, err := aggregator.Create(reference, bidderPaths)
	if err != nil {
		return err
	}
	log.Info("comparison built",
		zap.Int("bidders", len(ps.Bidders)),
		zap.Int("rows", len(ps.Rows)),
	)

	if err := export.WritePreisspiegelExcel(ps, compareOutput); err != nil {
		return err
	}

	fmt.Printf("Preisspiegel mit %d Bietern geschrieben: %s\n", len(ps.Bidders), compareOutput)
	return nil
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the compare command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringVarP(
		&compareOutput,
		"output",
		"o",
		"preisspiegel.xlsx",
		"Path of the generated Excel workbook",
	)
}
