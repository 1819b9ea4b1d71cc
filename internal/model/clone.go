// =============================================================================
// GAEB Converter - Deep Copy
// =============================================================================
//
// Explicit deep copies for the document model. The phase converter operates
// on a clone so that the caller's project is never mutated; preserved raw XML
// fragments are copied with etree's Copy so no two projects alias a subtree.
//
// =============================================================================

package model

import (
	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
)

func cloneDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}

func cloneElement(el *etree.Element) *etree.Element {
	if el == nil {
		return nil
	}
	return el.Copy()
}

func cloneElements(els []*etree.Element) []*etree.Element {
	if els == nil {
		return nil
	}
	out := make([]*etree.Element, len(els))
	for i, el := range els {
		out[i] = el.Copy()
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// Clone returns a deep copy of the project.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	out := &Project{
		GAEBInfo:  p.GAEBInfo,
		PrjInfo:   p.PrjInfo,
		AwardInfo: p.AwardInfo,
		Phase:     p.Phase,
	}
	if p.GAEBInfo.Date != nil {
		d := *p.GAEBInfo.Date
		out.GAEBInfo.Date = &d
	}
	if p.Owner != nil {
		owner := *p.Owner
		out.Owner = &owner
	}
	if p.Contractor != nil {
		ctr := *p.Contractor
		if p.Contractor.Address != nil {
			addr := *p.Contractor.Address
			ctr.Address = &addr
		}
		out.Contractor = &ctr
	}
	out.BoQ = p.BoQ.Clone()
	out.AwardAddTexts = cloneAddTexts(p.AwardAddTexts)
	out.GAEBAddTexts = cloneAddTexts(p.GAEBAddTexts)
	return out
}

// Clone returns a deep copy of the bill of quantities.
func (b *BoQ) Clone() *BoQ {
	if b == nil {
		return nil
	}
	out := &BoQ{
		ID:         b.ID,
		Info:       b.Info.clone(),
		RemarksRaw: cloneElements(b.RemarksRaw),
	}
	out.Categories = make([]*Category, len(b.Categories))
	for i, cat := range b.Categories {
		out.Categories[i] = cat.Clone()
	}
	return out
}

func (i BoQInfo) clone() BoQInfo {
	out := i
	if i.Date != nil {
		d := *i.Date
		out.Date = &d
	}
	out.Breakdowns = make([]BoQBkdn, len(i.Breakdowns))
	copy(out.Breakdowns, i.Breakdowns)
	out.Catalogs = make([]Catalog, len(i.Catalogs))
	copy(out.Catalogs, i.Catalogs)
	out.UPCompLabels = make(map[int]string, len(i.UPCompLabels))
	for k, v := range i.UPCompLabels {
		out.UPCompLabels[k] = v
	}
	out.UPCompTypes = make(map[int]string, len(i.UPCompTypes))
	for k, v := range i.UPCompTypes {
		out.UPCompTypes[k] = v
	}
	out.Totals = i.Totals.Clone()
	out.AddTexts = cloneAddTexts(i.AddTexts)
	return out
}

// Clone returns a deep copy of the totals aggregate.
func (t *Totals) Clone() *Totals {
	if t == nil {
		return nil
	}
	out := &Totals{Total: t.Total}
	out.DiscountPcnt = cloneDecimal(t.DiscountPcnt)
	out.DiscountAmt = cloneDecimal(t.DiscountAmt)
	out.TotAfterDisc = cloneDecimal(t.TotAfterDisc)
	out.TotalNet = cloneDecimal(t.TotalNet)
	out.VAT = cloneDecimal(t.VAT)
	out.VATAmount = cloneDecimal(t.VATAmount)
	out.TotalGross = cloneDecimal(t.TotalGross)
	out.TotalLSUM = cloneDecimal(t.TotalLSUM)
	return out
}

// Clone returns a deep copy of the category subtree.
func (c *Category) Clone() *Category {
	if c == nil {
		return nil
	}
	out := &Category{
		ID:          c.ID,
		RNoPart:     c.RNoPart,
		Label:       c.Label,
		LabelRaw:    cloneElement(c.LabelRaw),
		ExecDescr:   c.ExecDescr,
		ALNBGroupNo: c.ALNBGroupNo,
		ALNBSerNo:   c.ALNBSerNo,
	}
	out.ExecDescrRaw = cloneElement(c.ExecDescrRaw)
	out.Subcategories = make([]*Category, len(c.Subcategories))
	for i, sub := range c.Subcategories {
		out.Subcategories[i] = sub.Clone()
	}
	out.Items = make([]*Item, len(c.Items))
	for i, item := range c.Items {
		out.Items[i] = item.Clone()
	}
	out.AddTexts = cloneAddTexts(c.AddTexts)
	out.RemarksRaw = cloneElements(c.RemarksRaw)
	out.ItemlistRemarksRaw = cloneElements(c.ItemlistRemarksRaw)
	out.PerfDescrsRaw = cloneElements(c.PerfDescrsRaw)
	out.Totals = c.Totals.Clone()
	return out
}

// Clone returns a deep copy of the item.
func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	out := *i
	out.Qty = cloneDecimal(i.Qty)
	out.UP = cloneDecimal(i.UP)
	out.DiscountPcnt = cloneDecimal(i.DiscountPcnt)
	out.IT = cloneDecimal(i.IT)
	out.VAT = cloneDecimal(i.VAT)
	out.PredQty = cloneDecimal(i.PredQty)
	out.ITMarkup = cloneDecimal(i.ITMarkup)
	out.MarkupValue = cloneDecimal(i.MarkupValue)

	out.UPComponents = make(map[int]decimal.Decimal, len(i.UPComponents))
	for k, v := range i.UPComponents {
		out.UPComponents[k] = v
	}

	out.SurchargeRefs = cloneStrings(i.SurchargeRefs)
	out.MarkupSubQtyRefs = cloneStrings(i.MarkupSubQtyRefs)
	out.BidComments = cloneStrings(i.BidComments)
	out.TextCompls = cloneStrings(i.TextCompls)

	out.SubDescriptions = make([]SubDescription, len(i.SubDescriptions))
	for idx, sd := range i.SubDescriptions {
		copySD := sd
		copySD.Qty = cloneDecimal(sd.Qty)
		if sd.Description != nil {
			desc := sd.Description.clone()
			copySD.Description = &desc
		}
		out.SubDescriptions[idx] = copySD
	}

	out.CtlgAssignments = make([]CtlgAssignment, len(i.CtlgAssignments))
	copy(out.CtlgAssignments, i.CtlgAssignments)

	out.QtySplits = make([]QtySplit, len(i.QtySplits))
	for idx, qs := range i.QtySplits {
		copyQS := QtySplit{Qty: cloneDecimal(qs.Qty)}
		copyQS.Assignments = make([]CtlgAssignment, len(qs.Assignments))
		copy(copyQS.Assignments, qs.Assignments)
		out.QtySplits[idx] = copyQS
	}

	out.Description = i.Description.clone()
	out.AddTexts = cloneAddTexts(i.AddTexts)
	return &out
}

func (d ItemDescription) clone() ItemDescription {
	out := d
	out.OutlineRaw = cloneElement(d.OutlineRaw)
	out.DetailRaw = cloneElement(d.DetailRaw)
	out.STLBBauRaw = cloneElement(d.STLBBauRaw)
	out.PerfDescrRaw = cloneElement(d.PerfDescrRaw)
	out.DetailTxtRaw = cloneElement(d.DetailTxtRaw)
	out.TextComplementsRaw = cloneElements(d.TextComplementsRaw)
	return out
}

func cloneAddTexts(texts []AddText) []AddText {
	if texts == nil {
		return nil
	}
	out := make([]AddText, len(texts))
	for i, at := range texts {
		copyAT := at
		copyAT.OutlineRaw = cloneElement(at.OutlineRaw)
		copyAT.DetailRaw = cloneElement(at.DetailRaw)
		out[i] = copyAT
	}
	return out
}
