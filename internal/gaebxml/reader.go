// =============================================================================
// GAEB Converter - Reader
// =============================================================================
//
// Reads a GAEB DA XML file of any exchange phase into the document model.
// Scalar decoding is deliberately permissive: an optional child that is
// missing yields the zero value, unparseable decimals and dates are dropped
// with a warning, and booleans are the literal string "Yes". Files in the
// wild are frequently sloppy and a single bad value must never make a bill
// of quantities unreadable.
//
// Sub-elements without a full object mapping (STLBBau, PerfDescr, Remark,
// TextComplement, formatted text bodies) are preserved as verbatim subtree
// copies so the writer can round-trip them.
//
// =============================================================================

package gaebxml

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/gaebtools/gaebconv/internal/model"
)

// Reader parses GAEB DA XML files.
type Reader struct {
	Log *zap.Logger
}

// NewReader returns a Reader logging through the given logger. A nil logger
// disables warnings.
func NewReader(log *zap.Logger) *Reader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reader{Log: log}
}

// Read loads and parses the file at path.
func (r *Reader) Read(path string) (*model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return r.Parse(data, path)
}

// Parse parses raw document bytes; path is used for error reporting only.
func (r *Reader) Parse(data []byte, path string) (*model.Project, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	root := doc.Root()
	if root == nil {
		return nil, &FormatError{Reason: "document has no root element"}
	}

	phase, version, err := DetectPhaseAndVersion(root)
	if err != nil {
		return nil, err
	}
	r.Log.Debug("detected GAEB document",
		zap.String("file", path),
		zap.String("phase", phase.String()),
		zap.String("version", version))

	project := model.NewProject(phase)
	project.GAEBInfo = r.parseGAEBInfo(root)
	project.GAEBInfo.Version = version
	project.PrjInfo = r.parsePrjInfo(root)

	if award := root.SelectElement("Award"); award != nil {
		project.AwardInfo = r.parseAwardInfo(award)
		if own := award.SelectElement("OWN"); own != nil {
			if addr := own.SelectElement("Address"); addr != nil {
				project.Owner = r.parseAddress(addr)
			}
			if awardNo := r.text(own, "AwardNo"); awardNo != "" {
				project.AwardInfo.AwardNo = awardNo
			}
		}
		if ctr := award.SelectElement("CTR"); ctr != nil {
			project.Contractor = r.parseContractor(ctr)
		}
		if boqElem := award.SelectElement("BoQ"); boqElem != nil {
			project.BoQ = r.parseBoQ(boqElem)
		}
		project.AwardAddTexts = r.parseAddTexts(award)
	}

	project.GAEBAddTexts = r.parseAddTexts(root)
	return project, nil
}

// -----------------------------------------------------------------------------
// Scalar helpers
// -----------------------------------------------------------------------------

// text returns the trimmed text of an optional child element.
func (r *Reader) text(parent *etree.Element, tag string) string {
	child := parent.SelectElement(tag)
	if child == nil {
		return ""
	}
	return trimmed(child)
}

func trimmed(el *etree.Element) string {
	return strings.TrimSpace(el.Text())
}

// yes reports whether an optional child holds the literal "Yes".
func (r *Reader) yes(parent *etree.Element, tag string) bool {
	return r.text(parent, tag) == "Yes"
}

// decimalOf decodes an optional decimal child. Malformed values are dropped
// with a warning rather than failing the document.
func (r *Reader) decimalOf(parent *etree.Element, tag string) *decimal.Decimal {
	text := r.text(parent, tag)
	if text == "" {
		return nil
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		r.Log.Warn("ignoring malformed decimal",
			zap.String("element", tag),
			zap.String("value", text))
		return nil
	}
	return &d
}

// dateOf decodes an optional ISO date child, dropping malformed values.
func (r *Reader) dateOf(parent *etree.Element, tag string) *time.Time {
	text := r.text(parent, tag)
	if text == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", text)
	if err != nil {
		r.Log.Warn("ignoring malformed date",
			zap.String("element", tag),
			zap.String("value", text))
		return nil
	}
	return &t
}

// -----------------------------------------------------------------------------
// Header blocks
// -----------------------------------------------------------------------------

func (r *Reader) parseGAEBInfo(root *etree.Element) model.GAEBInfo {
	info := model.DefaultGAEBInfo()
	gi := root.SelectElement("GAEBInfo")
	if gi == nil {
		return info
	}
	if v := r.text(gi, "Version"); v != "" {
		info.Version = v
	}
	if v := r.text(gi, "VersDate"); v != "" {
		info.VersDate = v
	}
	info.Date = r.dateOf(gi, "Date")
	info.Time = r.text(gi, "Time")
	if v := r.text(gi, "ProgSystem"); v != "" {
		info.ProgSystem = v
	}
	if v := r.text(gi, "ProgName"); v != "" {
		info.ProgName = v
	}
	return info
}

func (r *Reader) parsePrjInfo(root *etree.Element) model.PrjInfo {
	info := model.DefaultPrjInfo()
	pi := root.SelectElement("PrjInfo")
	if pi == nil {
		return info
	}
	info.Name = r.text(pi, "NamePrj")
	info.Label = r.text(pi, "LblPrj")
	if v := r.text(pi, "Cur"); v != "" {
		info.Currency = v
	}
	if v := r.text(pi, "CurLbl"); v != "" {
		info.CurrencyLabel = v
	}
	info.BidCommPerm = r.yes(pi, "BidCommPerm")
	return info
}

func (r *Reader) parseAwardInfo(award *etree.Element) model.AwardInfo {
	info := model.DefaultAwardInfo()
	ai := award.SelectElement("AwardInfo")
	if ai == nil {
		return info
	}
	info.BoQID = r.text(ai, "BoQID")
	if v := r.text(ai, "Cur"); v != "" {
		info.Currency = v
	}
	if v := r.text(ai, "CurLbl"); v != "" {
		info.CurrencyLabel = v
	}
	info.Cat = r.text(ai, "Cat")
	info.OpenDate = r.text(ai, "OpenDate")
	info.OpenTime = r.text(ai, "OpenTime")
	info.EvalEnd = r.text(ai, "EvalEnd")
	info.SubmLoc = r.text(ai, "SubmLoc")
	info.CnstStart = r.text(ai, "CnstStart")
	info.CnstEnd = r.text(ai, "CnstEnd")
	info.ContrNo = r.text(ai, "ContrNo")
	info.ContrDate = r.text(ai, "ContrDate")
	info.AcceptType = r.text(ai, "AcceptType")
	info.WarrDur = r.text(ai, "WarrDur")
	info.WarrUnit = r.text(ai, "WarrUnit")
	return info
}

func (r *Reader) parseAddress(el *etree.Element) *model.Address {
	return &model.Address{
		Name1:   r.text(el, "Name1"),
		Name2:   r.text(el, "Name2"),
		Name3:   r.text(el, "Name3"),
		Name4:   r.text(el, "Name4"),
		Street:  r.text(el, "Street"),
		PCode:   r.text(el, "PCode"),
		City:    r.text(el, "City"),
		Country: r.text(el, "Country"),
		Contact: r.text(el, "Contact"),
		Phone:   r.text(el, "Phone"),
		Fax:     r.text(el, "Fax"),
		Email:   r.text(el, "Email"),
	}
}

func (r *Reader) parseContractor(ctr *etree.Element) *model.Contractor {
	c := &model.Contractor{}
	if addr := ctr.SelectElement("Address"); addr != nil {
		c.Address = r.parseAddress(addr)
	}
	if el := ctr.SelectElement("DPNo"); el != nil {
		c.HasDPNo = true
		c.DPNo = trimmed(el)
	}
	if el := ctr.SelectElement("AwardNo"); el != nil {
		c.HasAwardNo = true
		c.AwardNo = trimmed(el)
	}
	if el := ctr.SelectElement("AcctsPayNo"); el != nil {
		c.HasAcctsPayNo = true
		c.AcctsPayNo = trimmed(el)
	}
	return c
}

// -----------------------------------------------------------------------------
// BoQ
// -----------------------------------------------------------------------------

func (r *Reader) parseBoQ(boqElem *etree.Element) *model.BoQ {
	boq := model.NewBoQ()
	boq.ID = boqElem.SelectAttrValue("ID", "")
	if bi := boqElem.SelectElement("BoQInfo"); bi != nil {
		boq.Info = r.parseBoQInfo(bi)
	}
	if body := boqElem.SelectElement("BoQBody"); body != nil {
		for _, child := range body.ChildElements() {
			switch child.Tag {
			case "Remark":
				boq.RemarksRaw = append(boq.RemarksRaw, child.Copy())
			case "BoQCtgy":
				boq.Categories = append(boq.Categories, r.parseCategory(child))
			}
		}
	}
	return boq
}

func (r *Reader) parseBoQInfo(bi *etree.Element) model.BoQInfo {
	info := model.NewBoQInfo()
	info.Name = r.text(bi, "Name")
	info.Label = r.text(bi, "LblBoQ")
	info.Date = r.dateOf(bi, "Date")
	if v := r.text(bi, "OutlCompl"); v != "" {
		info.OutlineComplete = v
	}

	for _, bkdnElem := range bi.SelectElements("BoQBkdn") {
		bkdn := model.NewBoQBkdn()
		if v := r.text(bkdnElem, "Type"); v != "" {
			bkdn.Type = v
		}
		bkdn.Label = r.text(bkdnElem, "LblBoQBkdn")
		if lengthStr := r.text(bkdnElem, "Length"); lengthStr != "" {
			if length, err := strconv.Atoi(lengthStr); err == nil {
				bkdn.Length = length
			}
		}
		bkdn.Numeric = r.yes(bkdnElem, "Num")
		if a := r.text(bkdnElem, "Alignment"); a == "left" || a == "right" {
			bkdn.Alignment = a
		}
		info.Breakdowns = append(info.Breakdowns, bkdn)
	}

	if n := r.text(bi, "NoUPComps"); n != "" {
		if count, err := strconv.Atoi(n); err == nil {
			info.NoUPComps = count
		}
	}
	for i := 1; i <= 6; i++ {
		lblElem := bi.SelectElement("LblUPComp" + strconv.Itoa(i))
		if lblElem == nil {
			continue
		}
		info.UPCompLabels[i] = trimmed(lblElem)
		if t := lblElem.SelectAttrValue("Type", ""); t != "" {
			info.UPCompTypes[i] = t
		}
	}

	for _, ctlgElem := range bi.SelectElements("Ctlg") {
		info.Catalogs = append(info.Catalogs, model.Catalog{
			CtlgID:   r.text(ctlgElem, "CtlgID"),
			CtlgType: r.text(ctlgElem, "CtlgType"),
			CtlgName: r.text(ctlgElem, "CtlgName"),
		})
	}

	if totalsElem := bi.SelectElement("Totals"); totalsElem != nil {
		info.Totals = r.parseTotals(totalsElem)
	}
	info.AddTexts = r.parseAddTexts(bi)
	return info
}

func (r *Reader) parseTotals(el *etree.Element) *model.Totals {
	totals := &model.Totals{}
	if total := r.decimalOf(el, "Total"); total != nil {
		totals.Total = *total
	}
	totals.DiscountPcnt = r.decimalOf(el, "DiscountPcnt")
	totals.DiscountAmt = r.decimalOf(el, "DiscountAmt")
	totals.TotAfterDisc = r.decimalOf(el, "TotAfterDisc")
	totals.TotalNet = r.decimalOf(el, "TotalNet")
	totals.VAT = r.decimalOf(el, "VAT")
	totals.VATAmount = r.decimalOf(el, "VATAmount")
	totals.TotalGross = r.decimalOf(el, "TotalGross")
	totals.TotalLSUM = r.decimalOf(el, "TotalLSUM")
	return totals
}

// -----------------------------------------------------------------------------
// Category tree
// -----------------------------------------------------------------------------

func (r *Reader) parseCategory(ctgyElem *etree.Element) *model.Category {
	cat := &model.Category{
		ID:      ctgyElem.SelectAttrValue("ID", ""),
		RNoPart: ctgyElem.SelectAttrValue("RNoPart", ""),
	}

	if lbl := ctgyElem.SelectElement("LblTx"); lbl != nil {
		cat.Label = ExtractPlainText(lbl)
		cat.LabelRaw = lbl.Copy()
	}

	cat.ALNBGroupNo = r.text(ctgyElem, "ALNBGroupNo")
	cat.ALNBSerNo = r.text(ctgyElem, "ALNBSerNo")

	if ed := ctgyElem.SelectElement("ExecDescr"); ed != nil {
		if textElem := ed.SelectElement("Text"); textElem != nil {
			cat.ExecDescr = ExtractPlainText(textElem)
		}
		cat.ExecDescrRaw = ed.Copy()
	}

	if body := ctgyElem.SelectElement("BoQBody"); body != nil {
		for _, child := range body.ChildElements() {
			switch child.Tag {
			case "Remark":
				cat.RemarksRaw = append(cat.RemarksRaw, child.Copy())
			case "BoQCtgy":
				cat.Subcategories = append(cat.Subcategories, r.parseCategory(child))
			case "Itemlist":
				r.parseItemlist(child, cat)
			}
		}
	}

	if totalsElem := ctgyElem.SelectElement("Totals"); totalsElem != nil {
		cat.Totals = r.parseTotals(totalsElem)
	}
	cat.AddTexts = r.parseAddTexts(ctgyElem)
	return cat
}

// parseItemlist collects items and markup items in document order plus the
// raw Remark/PerfDescr subtrees interleaved with them.
func (r *Reader) parseItemlist(itemlist *etree.Element, cat *model.Category) {
	for _, child := range itemlist.ChildElements() {
		switch child.Tag {
		case "Remark":
			cat.ItemlistRemarksRaw = append(cat.ItemlistRemarksRaw, child.Copy())
		case "PerfDescr":
			cat.PerfDescrsRaw = append(cat.PerfDescrsRaw, child.Copy())
		case "Item":
			cat.Items = append(cat.Items, r.parseItem(child))
		case "MarkupItem":
			cat.Items = append(cat.Items, r.parseMarkupItem(child))
		}
	}
}

// -----------------------------------------------------------------------------
// Items
// -----------------------------------------------------------------------------

func (r *Reader) parseItem(itemElem *etree.Element) *model.Item {
	item := model.NewItem()
	item.ID = itemElem.SelectAttrValue("ID", "")
	item.RNoPart = itemElem.SelectAttrValue("RNoPart", "")

	item.Qty = r.decimalOf(itemElem, "Qty")
	item.QtyTBD = r.yes(itemElem, "QtyTBD")
	item.QU = r.text(itemElem, "QU")
	item.UP = r.decimalOf(itemElem, "UP")
	item.IT = r.decimalOf(itemElem, "IT")
	item.VAT = r.decimalOf(itemElem, "VAT")
	item.DiscountPcnt = r.decimalOf(itemElem, "DiscountPcnt")
	item.PredQty = r.decimalOf(itemElem, "PredQty")

	item.NotAppl = r.yes(itemElem, "NotAppl")
	item.NotOffered = r.yes(itemElem, "NotOffered")
	item.HourIt = r.yes(itemElem, "HourIt")
	item.LumpSumItem = r.yes(itemElem, "LumpSumItem")
	item.FreeQty = r.yes(itemElem, "FreeQty")
	item.KeyIt = r.yes(itemElem, "KeyIt")
	item.MarkupIt = r.yes(itemElem, "MarkupIt")
	item.UPBkdn = r.yes(itemElem, "UPBkdn")

	for i := 1; i <= 6; i++ {
		if val := r.decimalOf(itemElem, "UPComp"+strconv.Itoa(i)); val != nil {
			item.UPComponents[i] = *val
		}
	}

	item.Provis = r.text(itemElem, "Provis")
	item.ALNGroupNo = r.text(itemElem, "ALNGroupNo")
	item.ALNSerNo = r.text(itemElem, "ALNSerNo")

	if addPlIT := itemElem.SelectElement("AddPlIT"); addPlIT != nil {
		item.SurchargeType = r.text(addPlIT, "SurchargeType")
		for _, grp := range addPlIT.SelectElements("AddPlITGrp") {
			if rno := r.text(grp, "RNoPart"); rno != "" {
				item.SurchargeRefs = append(item.SurchargeRefs, rno)
			}
		}
	}

	r.parseItemRefs(itemElem, item)
	item.SumDescr = itemElem.SelectElement("SumDescr") != nil

	for _, sdElem := range itemElem.SelectElements("SubDescr") {
		sd := model.SubDescription{
			SubDNo:  r.text(sdElem, "SubDNo"),
			Qty:     r.decimalOf(sdElem, "Qty"),
			QtySpec: r.text(sdElem, "QtySpec"),
			QU:      r.text(sdElem, "QU"),
		}
		if descElem := sdElem.SelectElement("Description"); descElem != nil {
			desc := r.parseDescription(descElem)
			sd.Description = &desc
		}
		item.SubDescriptions = append(item.SubDescriptions, sd)
	}

	item.CtlgAssignments = r.parseCtlgAssigns(itemElem)

	for _, qsElem := range itemElem.SelectElements("QtySplit") {
		item.QtySplits = append(item.QtySplits, model.QtySplit{
			Qty:         r.decimalOf(qsElem, "Qty"),
			Assignments: r.parseCtlgAssigns(qsElem),
		})
	}

	if descElem := itemElem.SelectElement("Description"); descElem != nil {
		item.Description = r.parseDescription(descElem)
	}

	item.AddTexts = r.parseAddTexts(itemElem)

	for _, bcElem := range itemElem.SelectElements("BidComm") {
		if textElem := bcElem.SelectElement("Text"); textElem != nil {
			item.BidComments = append(item.BidComments, ExtractPlainText(textElem))
		}
	}
	for _, tcElem := range itemElem.SelectElements("TextCompl") {
		if textElem := tcElem.SelectElement("Text"); textElem != nil {
			item.TextCompls = append(item.TextCompls, ExtractPlainText(textElem))
		}
	}

	return item
}

func (r *Reader) parseMarkupItem(elem *etree.Element) *model.Item {
	item := model.NewItem()
	item.ID = elem.SelectAttrValue("ID", "")
	item.RNoPart = elem.SelectAttrValue("RNoPart", "")
	item.IsMarkupItem = true
	item.MarkupType = r.text(elem, "MarkupType")

	if msq := elem.SelectElement("MarkupSubQty"); msq != nil {
		for _, ref := range msq.SelectElements("RefItem") {
			if idRef := ref.SelectAttrValue("IDRef", ""); idRef != "" {
				item.MarkupSubQtyRefs = append(item.MarkupSubQtyRefs, idRef)
			}
		}
	}

	r.parseItemRefs(elem, item)

	item.Qty = r.decimalOf(elem, "Qty")
	item.QU = r.text(elem, "QU")
	item.UP = r.decimalOf(elem, "UP")
	item.IT = r.decimalOf(elem, "IT")
	item.PredQty = r.decimalOf(elem, "PredQty")
	item.ITMarkup = r.decimalOf(elem, "ITMarkup")
	if markup := r.decimalOf(elem, "Markup"); markup != nil {
		item.MarkupValue = markup
		item.HasMarkup = true
	}

	item.CtlgAssignments = r.parseCtlgAssigns(elem)

	if descElem := elem.SelectElement("Description"); descElem != nil {
		item.Description = r.parseDescription(descElem)
	}
	item.AddTexts = r.parseAddTexts(elem)
	return item
}

// parseItemRefs reads the reference-position block shared by Item and
// MarkupItem. An empty <RefDescr/> defaults to "Ref".
func (r *Reader) parseItemRefs(elem *etree.Element, item *model.Item) {
	if rd := elem.SelectElement("RefDescr"); rd != nil {
		item.RefDescr = trimmed(rd)
		if item.RefDescr == "" {
			item.RefDescr = "Ref"
		}
	}
	if el := elem.SelectElement("RefRNo"); el != nil {
		item.RefRNo = trimmed(el)
		item.RefRNoIDRef = el.SelectAttrValue("IDRef", "")
	}
	if el := elem.SelectElement("RefPerfNo"); el != nil {
		item.RefPerfNo = trimmed(el)
		item.RefPerfNoIDRef = el.SelectAttrValue("IDRef", "")
	}
}

func (r *Reader) parseCtlgAssigns(parent *etree.Element) []model.CtlgAssignment {
	var result []model.CtlgAssignment
	for _, caElem := range parent.SelectElements("CtlgAssign") {
		result = append(result, model.CtlgAssignment{
			CtlgID:   r.text(caElem, "CtlgID"),
			CtlgCode: r.text(caElem, "CtlgCode"),
		})
	}
	return result
}

// -----------------------------------------------------------------------------
// Descriptions and additional texts
// -----------------------------------------------------------------------------

func (r *Reader) parseDescription(descElem *etree.Element) model.ItemDescription {
	desc := model.ItemDescription{}
	desc.StLNo = r.text(descElem, "StLNo")

	if stlbBau := descElem.SelectElement("STLBBau"); stlbBau != nil {
		desc.STLBBauRaw = stlbBau.Copy()
	}
	if perfDescr := descElem.SelectElement("PerfDescr"); perfDescr != nil {
		desc.PerfDescrRaw = perfDescr.Copy()
	}

	outlineParent := descElem
	if complete := descElem.SelectElement("CompleteText"); complete != nil {
		outlineParent = complete
		desc.ComplTSA = r.text(complete, "ComplTSA")
		desc.ComplTSB = r.text(complete, "ComplTSB")

		if detailTxt := complete.SelectElement("DetailTxt"); detailTxt != nil {
			desc.DetailTxtRaw = detailTxt.Copy()
			if textElem := detailTxt.SelectElement("Text"); textElem != nil {
				desc.DetailText = ExtractPlainText(textElem)
				desc.DetailRaw = textElem.Copy()
			}
			for _, tc := range detailTxt.SelectElements("TextComplement") {
				desc.TextComplementsRaw = append(desc.TextComplementsRaw, tc.Copy())
			}
		}
	}

	if outline := outlineParent.SelectElement("OutlineText"); outline != nil {
		if textOutl := outline.FindElement("OutlTxt/TextOutlTxt"); textOutl != nil {
			desc.OutlineText = ExtractPlainText(textOutl)
		}
		desc.OutlineRaw = outline.Copy()
	}

	return desc
}

func (r *Reader) parseAddTexts(parent *etree.Element) []model.AddText {
	var result []model.AddText
	for _, atElem := range parent.SelectElements("AddText") {
		at := model.AddText{}
		if outline := atElem.SelectElement("OutlineAddText"); outline != nil {
			inner := outline.FindElement("OutlTxt/TextOutlTxt")
			if inner == nil {
				// Some producers put p/span directly under OutlineAddText.
				inner = outline
			}
			at.OutlineText = ExtractPlainText(inner)
			at.OutlineRaw = outline.Copy()
		}
		if detail := atElem.SelectElement("DetailAddText"); detail != nil {
			inner := detail.SelectElement("Text")
			if inner == nil {
				at.DetailText = ExtractPlainText(detail)
			} else {
				at.DetailText = ExtractPlainText(inner)
			}
			at.DetailRaw = detail.Copy()
		}
		result = append(result, at)
	}
	return result
}
