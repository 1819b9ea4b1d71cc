// =============================================================================
// GAEB Converter - Category Model
// =============================================================================

package model

import (
	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
)

// Category is a tree node of the bill of quantities: a grouping level
// (LV-Stufe / "title") holding subcategories and/or leaf items. Subcategories
// and items are independent ordered lists; on write subcategories precede
// items within each level.
type Category struct {
	ID      string
	RNoPart string

	// Label holds the caption as best-effort plain text; LabelRaw preserves
	// the original XML fragment for lossless re-emission. Editing the plain
	// text invalidates the raw fragment.
	Label    string
	LabelRaw *etree.Element

	Subcategories []*Category
	Items         []*Item
	AddTexts      []AddText

	// ExecDescr is the optional execution description.
	ExecDescr    string
	ExecDescrRaw *etree.Element

	// Grund-/Wahlgruppen at category level.
	ALNBGroupNo string
	ALNBSerNo   string

	// Raw passthrough slots for unmodeled subtrees.
	RemarksRaw         []*etree.Element // <Remark> inside this category's BoQBody
	ItemlistRemarksRaw []*etree.Element // <Remark> inside the Itemlist
	PerfDescrsRaw      []*etree.Element // <PerfDescr> inside the Itemlist

	Totals *Totals
}

// FullOrdinal builds the dot-joined ordinal from the parent's full ordinal
// and this node's segment, e.g. "01" + "02" -> "01.02".
func (c *Category) FullOrdinal(parentOrdinal string) string {
	return JoinOrdinal(parentOrdinal, c.RNoPart)
}

// CalculateTotal sums all item totals in this category recursively. An item
// contributes its stored IT when present, otherwise its computed total. The
// result is nil when no item carries any total.
func (c *Category) CalculateTotal(eval FormulaFunc) *decimal.Decimal {
	total := decimal.Zero
	hasAny := false
	for _, item := range c.Items {
		itemTotal := item.IT
		if itemTotal == nil {
			itemTotal = item.CalculateTotal(eval)
		}
		if itemTotal != nil {
			total = total.Add(*itemTotal)
			hasAny = true
		}
	}
	for _, sub := range c.Subcategories {
		if subTotal := sub.CalculateTotal(eval); subTotal != nil {
			total = total.Add(*subTotal)
			hasAny = true
		}
	}
	if !hasAny {
		return nil
	}
	return &total
}

// SetLabel replaces the plain-text caption and invalidates the preserved raw
// fragment, which no longer matches the edited text.
func (c *Category) SetLabel(label string) {
	c.Label = label
	c.LabelRaw = nil
}
