// =============================================================================
// GAEB Converter - Writer
// =============================================================================
//
// Serializes the document model back to GAEB DA XML. The GAEB XSD prescribes
// a strict child-element order per element type that does not match natural
// field-importance order; every write helper below emits children in exactly
// the schema sequence, and Item vs MarkupItem have different sequences. Any
// reordering produces non-validating output even when each field is correct.
//
// Emission is additionally gated by the phase rule table: quantities, prices,
// totals, NotOffered and bid comments are only written when the target phase
// permits them.
//
// =============================================================================

package gaebxml

import (
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gaebtools/gaebconv/internal/model"
)

// Writer serializes projects to GAEB DA XML. Evaluator resolves quantity
// formulas for items with UseCalculatedQty; nil writes stored quantities.
type Writer struct {
	Evaluator model.FormulaFunc
}

// NewWriter returns a Writer using the given formula evaluator.
func NewWriter(eval model.FormulaFunc) *Writer {
	return &Writer{Evaluator: eval}
}

// Write serializes the project to path. The project's own format version
// wins over the version argument so the namespace matches the header.
func (w *Writer) Write(project *model.Project, path string, version string) error {
	doc := w.Document(project, version)
	doc.Indent(2)
	return doc.WriteToFile(path)
}

// Bytes serializes the project to a byte slice.
func (w *Writer) Bytes(project *model.Project, version string) ([]byte, error) {
	doc := w.Document(project, version)
	doc.Indent(2)
	return doc.WriteToBytes()
}

// Document builds the etree document for the project.
func (w *Writer) Document(project *model.Project, version string) *etree.Document {
	effective := project.GAEBInfo.Version
	if effective == "" {
		effective = version
	}
	nsURI := Namespace(project.Phase, effective)

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("GAEB")
	root.CreateAttr("xmlns", nsURI)

	w.writeGAEBInfo(root, project.GAEBInfo)
	w.writePrjInfo(root, project.PrjInfo)
	w.writeAward(root, project)
	w.writeAddTexts(root, project.GAEBAddTexts)

	return doc
}

// -----------------------------------------------------------------------------
// Scalar helpers
// -----------------------------------------------------------------------------

func sub(parent *etree.Element, tag string) *etree.Element {
	return parent.CreateElement(tag)
}

func subText(parent *etree.Element, tag, text string) *etree.Element {
	el := parent.CreateElement(tag)
	el.SetText(text)
	return el
}

// subDecimal emits a decimal child when the value is set. FormatDecimal keeps
// the stored scale, so a quantity read as "10.000" is written back as
// "10.000".
func subDecimal(parent *etree.Element, tag string, d *decimal.Decimal) {
	if d == nil {
		return
	}
	subText(parent, tag, model.FormatDecimal(*d))
}

// -----------------------------------------------------------------------------
// Header blocks
// -----------------------------------------------------------------------------

func (w *Writer) writeGAEBInfo(root *etree.Element, info model.GAEBInfo) {
	gi := sub(root, "GAEBInfo")
	subText(gi, "Version", info.Version)
	subText(gi, "VersDate", info.VersDate)
	if info.Date != nil {
		subText(gi, "Date", info.Date.Format("2006-01-02"))
	} else {
		subText(gi, "Date", time.Now().Format("2006-01-02"))
	}
	if info.Time != "" {
		subText(gi, "Time", info.Time)
	}
	subText(gi, "ProgSystem", info.ProgSystem)
	subText(gi, "ProgName", info.ProgName)
}

func (w *Writer) writePrjInfo(root *etree.Element, info model.PrjInfo) {
	pi := sub(root, "PrjInfo")
	if info.Name != "" {
		subText(pi, "NamePrj", info.Name)
	}
	if info.Label != "" {
		subText(pi, "LblPrj", info.Label)
	}
	if info.Currency != "" {
		subText(pi, "Cur", info.Currency)
	}
	if info.CurrencyLabel != "" {
		subText(pi, "CurLbl", info.CurrencyLabel)
	}
	if info.BidCommPerm {
		subText(pi, "BidCommPerm", "Yes")
	}
}

func (w *Writer) writeAward(root *etree.Element, project *model.Project) {
	award := sub(root, "Award")
	subText(award, "DP", strconv.Itoa(project.Phase.DPValue()))

	ai := sub(award, "AwardInfo")
	info := project.AwardInfo
	if info.Cat != "" {
		subText(ai, "Cat", info.Cat)
	}
	if info.BoQID != "" {
		subText(ai, "BoQID", info.BoQID)
	}
	subText(ai, "Cur", info.Currency)
	subText(ai, "CurLbl", info.CurrencyLabel)
	if info.OpenDate != "" {
		subText(ai, "OpenDate", info.OpenDate)
	}
	if info.OpenTime != "" {
		subText(ai, "OpenTime", info.OpenTime)
	}
	if info.EvalEnd != "" {
		subText(ai, "EvalEnd", info.EvalEnd)
	}
	if info.SubmLoc != "" {
		subText(ai, "SubmLoc", info.SubmLoc)
	}
	if info.CnstStart != "" {
		subText(ai, "CnstStart", info.CnstStart)
	}
	if info.CnstEnd != "" {
		subText(ai, "CnstEnd", info.CnstEnd)
	}
	if info.ContrNo != "" {
		subText(ai, "ContrNo", info.ContrNo)
	}
	if info.ContrDate != "" {
		subText(ai, "ContrDate", info.ContrDate)
	}
	if info.AcceptType != "" {
		subText(ai, "AcceptType", info.AcceptType)
	}
	if info.WarrDur != "" {
		subText(ai, "WarrDur", info.WarrDur)
	}
	if info.WarrUnit != "" {
		subText(ai, "WarrUnit", info.WarrUnit)
	}

	if project.Owner != nil {
		own := sub(award, "OWN")
		w.writeAddress(own, project.Owner)
		if info.AwardNo != "" {
			subText(own, "AwardNo", info.AwardNo)
		}
	}

	if ctr := project.Contractor; ctr != nil {
		ctrElem := sub(award, "CTR")
		if ctr.Address != nil {
			w.writeAddress(ctrElem, ctr.Address)
		}
		if ctr.HasDPNo {
			subText(ctrElem, "DPNo", ctr.DPNo)
		}
		if ctr.HasAwardNo {
			subText(ctrElem, "AwardNo", ctr.AwardNo)
		}
		if ctr.HasAcctsPayNo {
			subText(ctrElem, "AcctsPayNo", ctr.AcctsPayNo)
		}
	}

	w.writeAddTexts(award, project.AwardAddTexts)

	if project.BoQ != nil {
		w.writeBoQ(award, project.BoQ, project.Phase)
	}
}

func (w *Writer) writeAddress(parent *etree.Element, address *model.Address) {
	addr := sub(parent, "Address")
	fields := []struct {
		tag   string
		value string
	}{
		{"Name1", address.Name1},
		{"Name2", address.Name2},
		{"Name3", address.Name3},
		{"Name4", address.Name4},
		{"Street", address.Street},
		{"PCode", address.PCode},
		{"City", address.City},
		{"Country", address.Country},
		{"Contact", address.Contact},
		{"Phone", address.Phone},
		{"Fax", address.Fax},
		{"Email", address.Email},
	}
	for _, f := range fields {
		if f.value != "" {
			subText(addr, f.tag, f.value)
		}
	}
}

// -----------------------------------------------------------------------------
// BoQ
// -----------------------------------------------------------------------------

func (w *Writer) writeBoQ(parent *etree.Element, boq *model.BoQ, phase model.Phase) {
	boqElem := sub(parent, "BoQ")
	id := boq.ID
	if id == "" {
		id = uuid.NewString()
	}
	boqElem.CreateAttr("ID", id)

	w.writeBoQInfo(boqElem, boq.Info, phase)

	if len(boq.Categories) > 0 || len(boq.RemarksRaw) > 0 {
		body := sub(boqElem, "BoQBody")
		for _, remark := range boq.RemarksRaw {
			body.AddChild(remark.Copy())
		}
		for _, cat := range boq.Categories {
			w.writeCategory(body, cat, phase)
		}
	}
}

func (w *Writer) writeBoQInfo(parent *etree.Element, info model.BoQInfo, phase model.Phase) {
	bi := sub(parent, "BoQInfo")
	if info.Name != "" {
		subText(bi, "Name", info.Name)
	}
	if info.Label != "" {
		subText(bi, "LblBoQ", info.Label)
	}
	if info.Date != nil {
		subText(bi, "Date", info.Date.Format("2006-01-02"))
	}
	if info.OutlineComplete != "" {
		subText(bi, "OutlCompl", info.OutlineComplete)
	}

	for _, bkdn := range info.Breakdowns {
		w.writeBreakdown(bi, bkdn)
	}

	if info.NoUPComps > 0 {
		subText(bi, "NoUPComps", strconv.Itoa(info.NoUPComps))
	}
	for i := 1; i <= 6; i++ {
		if label, ok := info.UPCompLabels[i]; ok {
			lblElem := subText(bi, "LblUPComp"+strconv.Itoa(i), label)
			if t, ok := info.UPCompTypes[i]; ok {
				lblElem.CreateAttr("Type", t)
			}
		}
	}

	if model.Rules(phase).HasTotals && info.Totals != nil {
		w.writeTotals(bi, info.Totals)
	}

	for _, ctlg := range info.Catalogs {
		ctlgElem := sub(bi, "Ctlg")
		if ctlg.CtlgID != "" {
			subText(ctlgElem, "CtlgID", ctlg.CtlgID)
		}
		if ctlg.CtlgType != "" {
			subText(ctlgElem, "CtlgType", ctlg.CtlgType)
		}
		if ctlg.CtlgName != "" {
			subText(ctlgElem, "CtlgName", ctlg.CtlgName)
		}
	}

	w.writeAddTexts(bi, info.AddTexts)
}

func (w *Writer) writeBreakdown(parent *etree.Element, bkdn model.BoQBkdn) {
	b := sub(parent, "BoQBkdn")
	subText(b, "Type", bkdn.Type)
	if bkdn.Label != "" {
		subText(b, "LblBoQBkdn", bkdn.Label)
	}
	subText(b, "Length", strconv.Itoa(bkdn.Length))
	if bkdn.Numeric {
		subText(b, "Num", "Yes")
	} else {
		subText(b, "Num", "No")
	}
	if bkdn.Alignment != "" {
		subText(b, "Alignment", bkdn.Alignment)
	}
}

func (w *Writer) writeTotals(parent *etree.Element, totals *model.Totals) {
	t := sub(parent, "Totals")
	subText(t, "Total", model.FormatDecimal(totals.Total))
	subDecimal(t, "DiscountPcnt", totals.DiscountPcnt)
	subDecimal(t, "DiscountAmt", totals.DiscountAmt)
	subDecimal(t, "TotAfterDisc", totals.TotAfterDisc)
	subDecimal(t, "TotalNet", totals.TotalNet)
	subDecimal(t, "VAT", totals.VAT)
	subDecimal(t, "VATAmount", totals.VATAmount)
	subDecimal(t, "TotalGross", totals.TotalGross)
	subDecimal(t, "TotalLSUM", totals.TotalLSUM)
}

// -----------------------------------------------------------------------------
// Category tree
// -----------------------------------------------------------------------------

func (w *Writer) writeCategory(parent *etree.Element, cat *model.Category, phase model.Phase) {
	ctgy := sub(parent, "BoQCtgy")
	if cat.ID != "" {
		ctgy.CreateAttr("ID", cat.ID)
	}
	if cat.RNoPart != "" {
		ctgy.CreateAttr("RNoPart", cat.RNoPart)
	}

	if cat.LabelRaw != nil {
		lbl := sub(ctgy, "LblTx")
		spliceRaw(lbl, cat.LabelRaw)
	} else if cat.Label != "" {
		lbl := sub(ctgy, "LblTx")
		appendTextLines(lbl, cat.Label)
	}

	if cat.ALNBGroupNo != "" {
		subText(ctgy, "ALNBGroupNo", cat.ALNBGroupNo)
	}
	if cat.ALNBSerNo != "" {
		subText(ctgy, "ALNBSerNo", cat.ALNBSerNo)
	}

	if cat.ExecDescrRaw != nil {
		ed := sub(ctgy, "ExecDescr")
		spliceRaw(ed, cat.ExecDescrRaw)
	} else if cat.ExecDescr != "" {
		ed := sub(ctgy, "ExecDescr")
		textElem := sub(ed, "Text")
		appendTextLines(textElem, cat.ExecDescr)
	}

	hasItemlist := len(cat.Items) > 0 || len(cat.ItemlistRemarksRaw) > 0 || len(cat.PerfDescrsRaw) > 0
	if len(cat.Subcategories) > 0 || len(cat.RemarksRaw) > 0 || hasItemlist {
		body := sub(ctgy, "BoQBody")
		for _, remark := range cat.RemarksRaw {
			body.AddChild(remark.Copy())
		}
		for _, subcat := range cat.Subcategories {
			w.writeCategory(body, subcat, phase)
		}
		if hasItemlist {
			itemlist := sub(body, "Itemlist")
			for _, remark := range cat.ItemlistRemarksRaw {
				itemlist.AddChild(remark.Copy())
			}
			for _, item := range cat.Items {
				if item.IsMarkupItem {
					w.writeMarkupItem(itemlist, item, phase)
				} else {
					w.writeItem(itemlist, item, phase)
				}
			}
			for _, pd := range cat.PerfDescrsRaw {
				itemlist.AddChild(pd.Copy())
			}
		}
	}

	if model.Rules(phase).HasTotals && cat.Totals != nil {
		w.writeTotals(ctgy, cat.Totals)
	}

	w.writeAddTexts(ctgy, cat.AddTexts)
}

// -----------------------------------------------------------------------------
// Items
// -----------------------------------------------------------------------------

// writeItem emits an <Item> with children in the exact XSD sequence. Do not
// reorder the blocks below.
func (w *Writer) writeItem(parent *etree.Element, item *model.Item, phase model.Phase) {
	rules := model.Rules(phase)
	itemElem := sub(parent, "Item")
	id := item.ID
	if id == "" {
		id = uuid.NewString()
	}
	itemElem.CreateAttr("ID", id)
	if item.RNoPart != "" {
		itemElem.CreateAttr("RNoPart", item.RNoPart)
	}

	// 1. ALNGroupNo, ALNSerNo
	if item.ALNGroupNo != "" {
		subText(itemElem, "ALNGroupNo", item.ALNGroupNo)
	}
	if item.ALNSerNo != "" {
		subText(itemElem, "ALNSerNo", item.ALNSerNo)
	}

	// 2. Provis
	if item.Provis != "" {
		subText(itemElem, "Provis", item.Provis)
	}

	// 3..10. Flags
	if item.LumpSumItem {
		subText(itemElem, "LumpSumItem", "Yes")
	}
	if item.NotAppl {
		subText(itemElem, "NotAppl", "Yes")
	}
	if rules.AllowsNotOffered && item.NotOffered {
		subText(itemElem, "NotOffered", "Yes")
	}
	if item.HourIt {
		subText(itemElem, "HourIt", "Yes")
	}
	if item.KeyIt {
		subText(itemElem, "KeyIt", "Yes")
	}
	if item.FreeQty {
		subText(itemElem, "FreeQty", "Yes")
	}
	if item.UPBkdn {
		subText(itemElem, "UPBkdn", "Yes")
	}
	if item.MarkupIt {
		subText(itemElem, "MarkupIt", "Yes")
	}

	// 11. AddPlIT surcharge group
	if item.SurchargeType != "" {
		addPlIT := sub(itemElem, "AddPlIT")
		subText(addPlIT, "SurchargeType", item.SurchargeType)
		for _, ref := range item.SurchargeRefs {
			grp := sub(addPlIT, "AddPlITGrp")
			subText(grp, "RNoPart", ref)
		}
	}

	// 12..13. Reference positions
	w.writeItemRefs(itemElem, item)

	// 14. QtyTBD / Qty, only in phases that carry quantities
	if rules.HasQuantities {
		if item.QtyTBD {
			subText(itemElem, "QtyTBD", "Yes")
		}
		subDecimal(itemElem, "Qty", item.EffectiveQty(w.Evaluator))
	}

	// 15. QtySplit
	for _, split := range item.QtySplits {
		qs := sub(itemElem, "QtySplit")
		subDecimal(qs, "Qty", split.Qty)
		w.writeCtlgAssigns(qs, split.Assignments)
	}

	// 16. PredQty
	subDecimal(itemElem, "PredQty", item.PredQty)

	// 17. QU
	if item.QU != "" {
		subText(itemElem, "QU", item.QU)
	}

	// 18. CtlgAssign before UP
	w.writeCtlgAssigns(itemElem, item.CtlgAssignments)

	// 19. UP, UPComp1-6, DiscountPcnt
	if rules.HasPrices {
		subDecimal(itemElem, "UP", item.UP)
		for i := 1; i <= 6; i++ {
			if comp, ok := item.UPComponents[i]; ok {
				subText(itemElem, "UPComp"+strconv.Itoa(i), model.FormatDecimal(comp))
			}
		}
		subDecimal(itemElem, "DiscountPcnt", item.DiscountPcnt)
	}

	// 20. IT
	if rules.HasTotals {
		subDecimal(itemElem, "IT", item.IT)
	}

	// 21. VAT
	subDecimal(itemElem, "VAT", item.VAT)

	// 22. Description
	w.writeDescription(itemElem, item.Description)

	// 23. BidComm, TextCompl
	if rules.HasBidComments {
		for _, comment := range item.BidComments {
			bc := sub(itemElem, "BidComm")
			textElem := sub(bc, "Text")
			appendTextLines(textElem, comment)
		}
		for _, compl := range item.TextCompls {
			tc := sub(itemElem, "TextCompl")
			textElem := sub(tc, "Text")
			appendTextLines(textElem, compl)
		}
	}

	// 24. SumDescr
	if item.SumDescr {
		subText(itemElem, "SumDescr", "Yes")
	}

	// 25. SubDescr (inner order: SubDNo, Description, QtySpec, Qty, QU)
	for _, sd := range item.SubDescriptions {
		sdElem := sub(itemElem, "SubDescr")
		if sd.SubDNo != "" {
			subText(sdElem, "SubDNo", sd.SubDNo)
		}
		if sd.Description != nil {
			w.writeDescription(sdElem, *sd.Description)
		}
		if sd.QtySpec != "" {
			subText(sdElem, "QtySpec", sd.QtySpec)
		}
		subDecimal(sdElem, "Qty", sd.Qty)
		if sd.QU != "" {
			subText(sdElem, "QU", sd.QU)
		}
	}

	// 26. AddText
	w.writeAddTexts(itemElem, item.AddTexts)
}

// writeMarkupItem emits a <MarkupItem>, whose XSD sequence differs from the
// regular Item sequence.
func (w *Writer) writeMarkupItem(parent *etree.Element, item *model.Item, phase model.Phase) {
	rules := model.Rules(phase)
	miElem := sub(parent, "MarkupItem")
	id := item.ID
	if id == "" {
		id = uuid.NewString()
	}
	miElem.CreateAttr("ID", id)
	if item.RNoPart != "" {
		miElem.CreateAttr("RNoPart", item.RNoPart)
	}

	// 1. Reference positions
	w.writeItemRefs(miElem, item)

	// 2. MarkupType
	if item.MarkupType != "" {
		subText(miElem, "MarkupType", item.MarkupType)
	}

	// 3. MarkupSubQty
	if len(item.MarkupSubQtyRefs) > 0 {
		msq := sub(miElem, "MarkupSubQty")
		for _, refID := range item.MarkupSubQtyRefs {
			refElem := sub(msq, "RefItem")
			refElem.CreateAttr("IDRef", refID)
		}
	}

	// 4. Qty, PredQty, QU
	if rules.HasQuantities {
		subDecimal(miElem, "Qty", item.EffectiveQty(w.Evaluator))
	}
	subDecimal(miElem, "PredQty", item.PredQty)
	if item.QU != "" {
		subText(miElem, "QU", item.QU)
	}

	// 5. ITMarkup
	subDecimal(miElem, "ITMarkup", item.ITMarkup)

	// 6. Markup must carry a decimal value, never an empty element
	if item.HasMarkup && item.MarkupValue != nil {
		subText(miElem, "Markup", model.FormatDecimal(*item.MarkupValue))
	}

	// 7. UP
	if rules.HasPrices {
		subDecimal(miElem, "UP", item.UP)
	}

	// 8. IT
	if rules.HasTotals {
		subDecimal(miElem, "IT", item.IT)
	}

	// 9. Description
	w.writeDescription(miElem, item.Description)

	// 10. CtlgAssign after Description, unlike the regular Item
	w.writeCtlgAssigns(miElem, item.CtlgAssignments)

	w.writeAddTexts(miElem, item.AddTexts)
}

// writeItemRefs emits RefDescr/RefRNo/RefPerfNo shared by both item kinds.
func (w *Writer) writeItemRefs(parent *etree.Element, item *model.Item) {
	if item.RefDescr != "" {
		subText(parent, "RefDescr", item.RefDescr)
	}
	if item.RefRNo != "" || item.RefRNoIDRef != "" {
		el := subText(parent, "RefRNo", item.RefRNo)
		if item.RefRNoIDRef != "" {
			el.CreateAttr("IDRef", item.RefRNoIDRef)
		}
	}
	if item.RefPerfNo != "" || item.RefPerfNoIDRef != "" {
		el := subText(parent, "RefPerfNo", item.RefPerfNo)
		if item.RefPerfNoIDRef != "" {
			el.CreateAttr("IDRef", item.RefPerfNoIDRef)
		}
	}
}

func (w *Writer) writeCtlgAssigns(parent *etree.Element, assigns []model.CtlgAssignment) {
	for _, ca := range assigns {
		caElem := sub(parent, "CtlgAssign")
		if ca.CtlgID != "" {
			subText(caElem, "CtlgID", ca.CtlgID)
		}
		if ca.CtlgCode != "" {
			subText(caElem, "CtlgCode", ca.CtlgCode)
		}
	}
}

// -----------------------------------------------------------------------------
// Descriptions and additional texts
// -----------------------------------------------------------------------------

func (w *Writer) writeDescription(parent *etree.Element, desc model.ItemDescription) {
	hasContent := desc.OutlineText != "" || desc.DetailText != "" || desc.StLNo != "" ||
		desc.OutlineRaw != nil || desc.STLBBauRaw != nil || desc.PerfDescrRaw != nil ||
		desc.DetailTxtRaw != nil || len(desc.TextComplementsRaw) > 0
	if !hasContent {
		return
	}

	description := sub(parent, "Description")

	if desc.StLNo != "" {
		subText(description, "StLNo", desc.StLNo)
	}
	if desc.STLBBauRaw != nil {
		description.AddChild(desc.STLBBauRaw.Copy())
	}
	if desc.PerfDescrRaw != nil {
		description.AddChild(desc.PerfDescrRaw.Copy())
	}

	needsComplete := desc.DetailText != "" || desc.OutlineText != "" ||
		desc.OutlineRaw != nil || desc.ComplTSA != "" || desc.ComplTSB != "" ||
		desc.DetailTxtRaw != nil || len(desc.TextComplementsRaw) > 0
	if !needsComplete {
		return
	}
	complete := sub(description, "CompleteText")

	if desc.ComplTSA != "" {
		subText(complete, "ComplTSA", desc.ComplTSA)
	}
	if desc.ComplTSB != "" {
		subText(complete, "ComplTSB", desc.ComplTSB)
	}

	if desc.DetailText != "" || desc.DetailTxtRaw != nil || len(desc.TextComplementsRaw) > 0 {
		if desc.DetailTxtRaw != nil {
			// Round-trip: the whole DetailTxt with interleaved Text and
			// TextComplement children is preserved verbatim.
			complete.AddChild(desc.DetailTxtRaw.Copy())
		} else {
			detailTxt := sub(complete, "DetailTxt")
			if desc.DetailRaw != nil {
				detailTxt.AddChild(desc.DetailRaw.Copy())
			} else if desc.DetailText != "" {
				textElem := sub(detailTxt, "Text")
				appendTextLines(textElem, desc.DetailText)
			}
			for _, tc := range desc.TextComplementsRaw {
				detailTxt.AddChild(tc.Copy())
			}
		}
	}

	if desc.OutlineRaw != nil {
		outline := sub(complete, "OutlineText")
		spliceRaw(outline, desc.OutlineRaw)
	} else if desc.OutlineText != "" {
		outline := sub(complete, "OutlineText")
		outlTxt := sub(outline, "OutlTxt")
		textOutl := sub(outlTxt, "TextOutlTxt")
		appendTextLines(textOutl, desc.OutlineText)
	}
}

func (w *Writer) writeAddTexts(parent *etree.Element, addTexts []model.AddText) {
	for _, at := range addTexts {
		atElem := sub(parent, "AddText")
		if at.OutlineRaw != nil {
			oat := sub(atElem, "OutlineAddText")
			spliceRaw(oat, at.OutlineRaw)
		} else if at.OutlineText != "" {
			oat := sub(atElem, "OutlineAddText")
			outlTxt := sub(oat, "OutlTxt")
			textOutl := sub(outlTxt, "TextOutlTxt")
			appendTextLines(textOutl, at.OutlineText)
		}
		if at.DetailRaw != nil {
			dat := sub(atElem, "DetailAddText")
			spliceRaw(dat, at.DetailRaw)
		} else if at.DetailText != "" {
			dat := sub(atElem, "DetailAddText")
			textElem := sub(dat, "Text")
			appendTextLines(textElem, at.DetailText)
		}
	}
}
