// =============================================================================
// GAEB Converter - Version Command
// =============================================================================
//
// Prints the build identity and the GAEB DA XML format release this binary
// writes. The build fields are stamped via ldflags:
//
//   go build -ldflags "-X 'github.com/gaebtools/gaebconv/cmd.Version=1.2.0' \
//     -X 'github.com/gaebtools/gaebconv/cmd.GitCommit=$(git rev-parse --short HEAD)' \
//     -X 'github.com/gaebtools/gaebconv/cmd.BuildDate=$(date -u +%Y-%m-%d)'"
//
// =============================================================================

package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Build identity, stamped at link time. The defaults mark a local build.
var (
	Version   = "dev"
	GitCommit = "none"
	BuildDate = "unknown"
)

// writtenGAEBVersion is the DA XML release serialized by default; 3.2 files
// are read but always written as 3.3.
const writtenGAEBVersion = "3.3 (2021-05)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Build- und Formatversion anzeigen",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gaebconv %s (%s, %s)\n", Version, GitCommit, BuildDate)
		fmt.Printf("GAEB DA XML: %s\n", writtenGAEBVersion)
		fmt.Printf("Runtime:     %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
