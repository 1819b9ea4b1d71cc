// =============================================================================
// GAEB Converter - Preisspiegel Model
// =============================================================================
//
// A Preisspiegel is a price-comparison table: one reference bill of
// quantities cross-referenced against N bidder files. Rows appear in
// pre-order of the reference tree; per-bidder columns are index-aligned with
// the Bidders slice. Nil entries mean "no data", which is distinct from zero.
//
// =============================================================================

package model

import "github.com/shopspring/decimal"

// BidderInfo identifies one bidder column.
type BidderInfo struct {
	Name     string
	FilePath string
}

// ItemRow is one position row of the comparison table.
type ItemRow struct {
	OZ        string
	ShortText string

	// Qty and QU come from the reference project; bidders compete on price
	// against the authoritative reference quantity.
	Qty *decimal.Decimal
	QU  string

	UnitPrices  []*decimal.Decimal
	TotalPrices []*decimal.Decimal
	NotOffered  []bool

	// Statistics over bidders with a non-nil unit price.
	MinUP *decimal.Decimal
	MaxUP *decimal.Decimal
	AvgUP *decimal.Decimal
}

// CategoryRow is one grouping row; Totals holds the recursive per-bidder sum
// of all item totals beneath the category.
type CategoryRow struct {
	OZ     string
	Label  string
	Totals []*decimal.Decimal
}

// Row is the tagged union of the two row kinds; exactly one field is set.
type Row struct {
	Item     *ItemRow
	Category *CategoryRow
}

// PreisSpiegel is the complete comparison result.
type PreisSpiegel struct {
	ProjectName string
	Bidders     []BidderInfo
	Rows        []Row

	// GrandTotals accumulates every item row's total per bidder; a bidder
	// without any priced position is nil rather than 0.00.
	GrandTotals []*decimal.Decimal
}
