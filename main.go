// =============================================================================
// GAEB Converter - Main Entry Point
// =============================================================================
//
// Entry point for the GAEB DA XML converter CLI. All functionality lives in
// the cmd package (Cobra commands) and the internal packages (codec, phase
// engine, Preisspiegel aggregation).
//
// =============================================================================

package main

import (
	"github.com/gaebtools/gaebconv/cmd"
)

func main() {
	cmd.Execute()
}
