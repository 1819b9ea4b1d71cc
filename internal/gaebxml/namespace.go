// =============================================================================
// GAEB Converter - Namespace Handling
// =============================================================================
//
// Every GAEB DA XML document declares a namespace that encodes both the
// exchange phase and the format version:
//
//   http://www.gaeb.de/GAEB_DA_XML/DA<dp>/<version>
//
// e.g. http://www.gaeb.de/GAEB_DA_XML/DA84/3.3 for a bid submission in 3.3.
// Phase and version are detected from the root element on read and stamped
// back on write; nothing else in the document carries this information
// reliably.
//
// =============================================================================

package gaebxml

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/beevik/etree"

	"github.com/gaebtools/gaebconv/internal/model"
)

var nsPattern = regexp.MustCompile(`^http://www\.gaeb\.de/GAEB_DA_XML/DA(\d{2})/([\d.]+)`)

// Namespace returns the GAEB namespace URI for a phase and format version.
func Namespace(phase model.Phase, version string) string {
	if version == "" {
		version = model.DefaultVersion
	}
	return fmt.Sprintf("http://www.gaeb.de/GAEB_DA_XML/DA%d/%s", phase.DPValue(), version)
}

// DetectPhaseAndVersion extracts the exchange phase and format version from
// the namespace of the root element. A missing or foreign namespace yields a
// FormatError.
func DetectPhaseAndVersion(root *etree.Element) (model.Phase, string, error) {
	nsURI := root.NamespaceURI()
	if nsURI == "" {
		return 0, "", &FormatError{Reason: fmt.Sprintf("root element <%s> has no namespace", root.Tag)}
	}

	m := nsPattern.FindStringSubmatch(nsURI)
	if m == nil {
		return 0, "", &FormatError{Reason: fmt.Sprintf("unrecognized GAEB namespace: %s", nsURI)}
	}

	dp, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, "", &FormatError{Reason: fmt.Sprintf("unrecognized GAEB namespace: %s", nsURI)}
	}
	phase, err := model.PhaseFromDP(dp)
	if err != nil {
		return 0, "", &FormatError{Reason: fmt.Sprintf("unsupported exchange phase DA%02d in namespace %s", dp, nsURI)}
	}
	return phase, m[2], nil
}
