// =============================================================================
// GAEB Converter - Ordinal (OZ) Helpers
// =============================================================================
//
// Ordinal numbers (Ordnungszahlen) identify categories and items. The full
// ordinal is built by dot-joining the local segments (RNoPart) from the root
// category down to the leaf, with segment widths given by the breakdown mask.
//
// =============================================================================

package model

import (
	"fmt"
	"strconv"
	"strings"
)

// JoinOrdinal appends a segment to a parent ordinal with a dot separator.
// Empty parts are passed through unchanged.
func JoinOrdinal(parent, part string) string {
	if parent == "" {
		return part
	}
	if part == "" {
		return parent
	}
	return parent + "." + part
}

// NextRNoPart returns the next free ordinal segment given the segments
// already in use at the same level, zero-padded to the mask segment width.
//
// Only numeric sequencing is implemented: non-numeric segments are skipped
// when determining the highest value. True alphanumeric sequencing is
// undefined in the exchange practice this tool targets and deliberately not
// attempted.
func NextRNoPart(existing []string, length int) string {
	highest := 0
	for _, part := range existing {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	next := highest + 1
	if length <= 0 {
		length = 2
	}
	return fmt.Sprintf("%0*d", length, next)
}
