// =============================================================================
// GAEB Converter - Bill of Quantities Model
// =============================================================================

package model

import (
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
)

// BoQBkdn is one level of the ordinal breakdown mask (OZ-Maske). The mask
// defines how many digits each segment of an ordinal number occupies.
type BoQBkdn struct {
	// Type is one of "Lot", "BoQLevel", "Item" or "Index".
	Type string

	// Label is the optional level caption (e.g. "Los").
	Label string

	// Length is the digit width of this segment.
	Length int

	// Numeric marks the segment as numeric (<Num>Yes</Num>).
	Numeric bool

	// Alignment is "left" or "right" when present.
	Alignment string
}

// NewBoQBkdn returns a numeric BoQLevel segment of width 2, the most common
// mask entry.
func NewBoQBkdn() BoQBkdn {
	return BoQBkdn{Type: "BoQLevel", Length: 2, Numeric: true}
}

// Catalog is a <Ctlg> reference declared in BoQInfo.
type Catalog struct {
	CtlgID   string
	CtlgType string
	CtlgName string
}

// Totals mirrors a <Totals> aggregate at BoQ or category level.
type Totals struct {
	Total        decimal.Decimal
	DiscountPcnt *decimal.Decimal
	DiscountAmt  *decimal.Decimal
	TotAfterDisc *decimal.Decimal
	TotalNet     *decimal.Decimal
	VAT          *decimal.Decimal
	VATAmount    *decimal.Decimal
	TotalGross   *decimal.Decimal
	TotalLSUM    *decimal.Decimal
}

// BoQInfo mirrors the <BoQInfo> block: naming, the breakdown mask, catalog
// declarations, unit price component labels and the optional totals.
type BoQInfo struct {
	Name            string
	Label           string
	Date            *time.Time
	OutlineComplete string
	Breakdowns      []BoQBkdn
	Catalogs        []Catalog

	// NoUPComps and the label/type maps describe up to six unit price
	// components (index 1..6).
	NoUPComps    int
	UPCompLabels map[int]string
	UPCompTypes  map[int]string

	Totals   *Totals
	AddTexts []AddText
}

// NewBoQInfo returns BoQInfo with the "AllTxt" completeness default.
func NewBoQInfo() BoQInfo {
	return BoQInfo{
		OutlineComplete: "AllTxt",
		UPCompLabels:    make(map[int]string),
		UPCompTypes:     make(map[int]string),
	}
}

// BoQ is one bill of quantities.
type BoQ struct {
	ID         string
	Info       BoQInfo
	Categories []*Category

	// RemarksRaw preserves unmodeled <Remark> subtrees found directly in the
	// BoQ body, re-emitted verbatim on write.
	RemarksRaw []*etree.Element
}

// NewBoQ returns an empty BoQ.
func NewBoQ() *BoQ {
	return &BoQ{Info: NewBoQInfo()}
}
