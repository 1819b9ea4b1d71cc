// =============================================================================
// GAEB Converter - Phases and Phase Rules
// =============================================================================
//
// GAEB DA XML files exist in six exchange phases (X81..X86), each covering a
// different stage of the tender lifecycle. The phase determines which fields
// are legal in a file: a service description (X81) carries no quantities or
// prices, a bid submission (X84) carries both plus bidder-only markers.
//
// The rule table below is fixed by the GAEB standard and consulted by the
// writer (conditional emission), the phase converter (stripping/recalculation)
// and the structural validators.
//
// =============================================================================

package model

import "fmt"

// Phase identifies a GAEB DA XML exchange phase.
type Phase int

const (
	// PhaseX81 is the service description (Leistungsbeschreibung).
	PhaseX81 Phase = iota + 1
	// PhaseX82 is the cost estimate (Kostenansatz).
	PhaseX82
	// PhaseX83 is the tender request (Angebotsaufforderung).
	PhaseX83
	// PhaseX84 is the bid submission (Angebotsabgabe).
	PhaseX84
	// PhaseX85 is the alternative bid (Nebenangebot).
	PhaseX85
	// PhaseX86 is the contract award (Auftragserteilung).
	PhaseX86
)

// GAEB versions supported by the codec.
const (
	Version32      = "3.2"
	Version33      = "3.3"
	DefaultVersion = Version33
)

type phaseInfo struct {
	dp      int
	labelDE string
	labelEN string
}

var phaseInfos = map[Phase]phaseInfo{
	PhaseX81: {81, "Leistungsbeschreibung", "Service Description"},
	PhaseX82: {82, "Kostenansatz", "Cost Estimate"},
	PhaseX83: {83, "Angebotsaufforderung", "Tender Request"},
	PhaseX84: {84, "Angebotsabgabe", "Bid Submission"},
	PhaseX85: {85, "Nebenangebot", "Alternative Bid"},
	PhaseX86: {86, "Auftragserteilung", "Contract Award"},
}

// DPValue returns the two-digit exchange phase number (81..86) used in the
// XML namespace and the <DP> element.
func (p Phase) DPValue() int {
	return phaseInfos[p].dp
}

// LabelDE returns the German phase label.
func (p Phase) LabelDE() string {
	return phaseInfos[p].labelDE
}

// LabelEN returns the English phase label.
func (p Phase) LabelEN() string {
	return phaseInfos[p].labelEN
}

// FileExtension returns the conventional file extension, e.g. ".x84".
func (p Phase) FileExtension() string {
	return fmt.Sprintf(".x%d", phaseInfos[p].dp)
}

// String implements fmt.Stringer, e.g. "X84".
func (p Phase) String() string {
	return fmt.Sprintf("X%d", phaseInfos[p].dp)
}

// Valid reports whether p is one of the six known phases.
func (p Phase) Valid() bool {
	_, ok := phaseInfos[p]
	return ok
}

// PhaseFromDP maps a two-digit exchange phase number to a Phase.
func PhaseFromDP(dp int) (Phase, error) {
	for phase, info := range phaseInfos {
		if info.dp == dp {
			return phase, nil
		}
	}
	return 0, fmt.Errorf("unknown GAEB phase: %d", dp)
}

// AllPhases lists the phases in lifecycle order.
func AllPhases() []Phase {
	return []Phase{PhaseX81, PhaseX82, PhaseX83, PhaseX84, PhaseX85, PhaseX86}
}

// =============================================================================
// PHASE RULES
// =============================================================================

// PhaseRules describes which field groups are legal for a phase. The values
// are fixed by the GAEB standard and never mutated.
type PhaseRules struct {
	// HasQuantities permits <Qty>/<QtyTBD> on items.
	HasQuantities bool

	// HasPrices permits <UP>, <UPComp1..6> and <DiscountPcnt>.
	HasPrices bool

	// HasTotals permits <IT> on items and <Totals> on the BoQ.
	HasTotals bool

	// AllowsNotOffered permits the bidder-side <NotOffered> marker.
	AllowsNotOffered bool

	// HasBidComments permits <BidComm>/<TextCompl> blocks on items.
	HasBidComments bool
}

var phaseRules = map[Phase]PhaseRules{
	PhaseX81: {HasQuantities: false, HasPrices: false, HasTotals: false, AllowsNotOffered: false, HasBidComments: false},
	PhaseX82: {HasQuantities: true, HasPrices: true, HasTotals: true, AllowsNotOffered: false, HasBidComments: false},
	PhaseX83: {HasQuantities: true, HasPrices: false, HasTotals: false, AllowsNotOffered: false, HasBidComments: false},
	PhaseX84: {HasQuantities: true, HasPrices: true, HasTotals: true, AllowsNotOffered: true, HasBidComments: true},
	PhaseX85: {HasQuantities: true, HasPrices: true, HasTotals: true, AllowsNotOffered: false, HasBidComments: false},
	PhaseX86: {HasQuantities: true, HasPrices: true, HasTotals: true, AllowsNotOffered: false, HasBidComments: false},
}

// Rules returns the immutable rule set for a phase.
func Rules(p Phase) PhaseRules {
	return phaseRules[p]
}
