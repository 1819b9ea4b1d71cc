// =============================================================================
// GAEB Converter - Item Model
// =============================================================================
//
// Item is a leaf position of the bill of quantities. Two mutually exclusive
// shapes share the parent's ordered item list: a regular position (<Item>)
// and a markup position (<MarkupItem>, Zuschlagsposition), distinguished by
// IsMarkupItem. Nullable decimals are pointers; nil means "not set" and is
// never serialized.
//
// =============================================================================

package model

import (
	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
)

// FormulaFunc evaluates a quantity formula to a decimal. Implementations live
// outside the model so that the constants table stays an explicit parameter
// of the evaluator, not a model concern. A nil result with nil error means
// "no value".
type FormulaFunc func(formula string) (*decimal.Decimal, error)

// SubDescription is an <SubDescr> block (Unterbeschreibung) of a
// Leit-/Unterbeschreibung item.
type SubDescription struct {
	SubDNo      string
	Qty         *decimal.Decimal
	QtySpec     string
	QU          string
	Description *ItemDescription
}

// CtlgAssignment is a <CtlgAssign> catalog reference.
type CtlgAssignment struct {
	CtlgID   string
	CtlgCode string
}

// QtySplit is a <QtySplit> block: a partial quantity attributed to one or
// more catalog assignments.
type QtySplit struct {
	Qty         *decimal.Decimal
	Assignments []CtlgAssignment
}

// ItemDescription carries the outline (short) and detail (long) texts of a
// position. Both are held twice: as best-effort plain text and as the
// preserved raw XML fragment. Several sub-elements have no full object
// mapping and are kept verbatim for round-tripping.
type ItemDescription struct {
	OutlineText string
	OutlineRaw  *etree.Element

	DetailText string
	DetailRaw  *etree.Element

	// StLNo is the structural text number (Standardleistungsnummer).
	StLNo string

	ComplTSA string
	ComplTSB string

	// Raw passthrough slots.
	STLBBauRaw         *etree.Element   // <STLBBau> catalog text
	PerfDescrRaw       *etree.Element   // <PerfDescr>
	DetailTxtRaw       *etree.Element   // whole <DetailTxt> with interleaved TextComplement
	TextComplementsRaw []*etree.Element // <TextComplement> blocks
}

// SetDetailText replaces the plain detail text and drops the preserved raw
// fragments, which no longer match the edited text.
func (d *ItemDescription) SetDetailText(text string) {
	d.DetailText = text
	d.DetailRaw = nil
	d.DetailTxtRaw = nil
}

// SetOutlineText replaces the plain outline text and drops the preserved raw
// fragment.
func (d *ItemDescription) SetOutlineText(text string) {
	d.OutlineText = text
	d.OutlineRaw = nil
}

// Item is a leaf position (or markup position) of the bill of quantities.
type Item struct {
	ID      string
	RNoPart string

	// Quantity. QtyTBD marks "Menge noch offen".
	Qty    *decimal.Decimal
	QtyTBD bool
	QU     string

	// Prices. UPComponents holds up to six unit price components (1..6).
	UP           *decimal.Decimal
	UPComponents map[int]decimal.Decimal
	DiscountPcnt *decimal.Decimal

	// IT is the stored total. It is only ever set from an explicit <IT>
	// element or by the phase converter; the reader never computes it.
	IT  *decimal.Decimal
	VAT *decimal.Decimal

	PredQty *decimal.Decimal

	// Flags.
	NotAppl     bool
	NotOffered  bool
	HourIt      bool
	LumpSumItem bool
	FreeQty     bool
	KeyIt       bool
	MarkupIt    bool

	// Positionstypen. Provis is "", "WithTotal", "WithoutTotal" or "Yes" (3.2).
	Provis     string
	ALNGroupNo string
	ALNSerNo   string

	// Surcharge (AddPlIT).
	SurchargeType string
	SurchargeRefs []string

	// MarkupItem (Zuschlagsposition) fields.
	IsMarkupItem     bool
	MarkupType       string // "IdentAsMark", "AllInCat", "ListInSubQty"
	MarkupSubQtyRefs []string
	ITMarkup         *decimal.Decimal
	MarkupValue      *decimal.Decimal
	HasMarkup        bool

	// Bezugspositionen.
	RefDescr        string // "Ref" or "Rep"
	RefRNo          string
	RefRNoIDRef     string
	RefPerfNo       string
	RefPerfNoIDRef  string
	SumDescr        bool
	SubDescriptions []SubDescription

	CtlgAssignments []CtlgAssignment
	QtySplits       []QtySplit

	// UPBkdn records an empty <UPBkdn/> marker.
	UPBkdn bool

	Description ItemDescription

	// Quantity formula metadata, persisted in the sidecar file rather than
	// the GAEB XML itself.
	Formula          string
	UseCalculatedQty bool

	AddTexts    []AddText
	BidComments []string
	TextCompls  []string
}

// NewItem returns an Item with the component map initialized.
func NewItem() *Item {
	return &Item{UPComponents: make(map[int]decimal.Decimal)}
}

// FullOrdinal builds the dot-joined ordinal from the parent category's full
// ordinal and this item's segment.
func (i *Item) FullOrdinal(parentOrdinal string) string {
	return JoinOrdinal(parentOrdinal, i.RNoPart)
}

// EffectiveQty returns the quantity used for total computation: the formula
// result when UseCalculatedQty is set and an evaluator is available, the
// stored quantity otherwise. Evaluation errors yield nil, matching the
// permissive handling of bad values elsewhere in the codec.
func (i *Item) EffectiveQty(eval FormulaFunc) *decimal.Decimal {
	if i.UseCalculatedQty && eval != nil {
		result, err := eval(i.Formula)
		if err != nil {
			return nil
		}
		return result
	}
	return i.Qty
}

// CalculateTotal computes effective quantity x unit price rounded to two
// decimal places, or nil when either factor is missing. This is a pure
// getter; it never touches IT.
func (i *Item) CalculateTotal(eval FormulaFunc) *decimal.Decimal {
	qty := i.EffectiveQty(eval)
	if qty == nil || i.UP == nil {
		return nil
	}
	total := qty.Mul(*i.UP).Round(2)
	return &total
}
