// =============================================================================
// GAEB Converter - File Utilities
// =============================================================================
//
// File-level helpers shared by the CLI commands:
//   - Phase-specific file extensions (.x81 .. .x86) and their detection
//   - Output path resolution for conversions
//   - Backup copies before overwriting existing files
//   - Directory management
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gaebtools/gaebconv/internal/model"
)

// =============================================================================
// PHASE EXTENSIONS
// =============================================================================

// PhaseFromExtension maps a file extension like ".x84" (case-insensitive)
// to its phase.
func PhaseFromExtension(ext string) (model.Phase, error) {
	ext = strings.ToLower(ext)
	for _, phase := range model.AllPhases() {
		if phase.FileExtension() == ext {
			return phase, nil
		}
	}
	return 0, fmt.Errorf("no GAEB phase for extension %q", ext)
}

// PhaseFromPath detects the phase from a file path's extension.
func PhaseFromPath(path string) (model.Phase, error) {
	return PhaseFromExtension(filepath.Ext(path))
}

// ResolveOutputPath derives the output file for a conversion: an explicit
// output wins; otherwise the input name with the target phase's extension.
func ResolveOutputPath(inputPath, outputPath string, target model.Phase) string {
	if outputPath != "" {
		return outputPath
	}
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + target.FileExtension()
}

// =============================================================================
// FILE OPERATIONS
// =============================================================================

// EnsureDir creates a directory (and parents) when missing.
func EnsureDir(dir string) error {
	if dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// FileExists reports whether path exists and is not a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// BackupFile copies an existing file to a timestamped sibling before it is
// overwritten, returning the backup path. A missing source is not an error.
func BackupFile(path string) (string, error) {
	if !FileExists(path) {
		return "", nil
	}
	backup := fmt.Sprintf("%s.%s.bak", path, time.Now().Format("20060102_150405"))
	if err := copyFile(path, backup); err != nil {
		return "", fmt.Errorf("failed to back up %s: %w", path, err)
	}
	return backup, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
