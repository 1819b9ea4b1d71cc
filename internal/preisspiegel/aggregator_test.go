package preisspiegel

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/gaebtools/gaebconv/internal/gaebxml"
	"github.com/gaebtools/gaebconv/internal/model"
)

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// referenceProject is a two-position X83 tender request.
func referenceProject() *model.Project {
	project := model.NewProject(model.PhaseX83)
	project.PrjInfo.Name = "Kita Sonnenschein"
	project.BoQ = model.NewBoQ()

	item1 := model.NewItem()
	item1.ID = "item-1"
	item1.RNoPart = "0010"
	item1.Qty = decPtr("10.000")
	item1.QU = "m2"
	item1.Description.OutlineText = "Mauerwerk"

	item2 := model.NewItem()
	item2.ID = "item-2"
	item2.RNoPart = "0020"
	item2.Qty = decPtr("4.000")
	item2.QU = "m3"
	item2.Description.OutlineText = "Beton"

	project.BoQ.Categories = []*model.Category{{
		RNoPart: "01",
		Label:   "Rohbau",
		Items:   []*model.Item{item1, item2},
	}}
	return project
}

// writeBid writes an X84 bid derived from the reference with the given unit
// prices per ordinal. A nil price leaves the position unpriced; "n.a." marks
// it as not offered.
func writeBid(t *testing.T, dir, filename, bidderName string, prices map[string]string) string {
	t.Helper()

	project := model.NewProject(model.PhaseX84)
	project.PrjInfo.Name = "Kita Sonnenschein"
	if bidderName != "" {
		project.Contractor = &model.Contractor{Address: &model.Address{Name1: bidderName}}
	}
	project.BoQ = model.NewBoQ()

	cat := &model.Category{RNoPart: "01", Label: "Rohbau"}
	for _, oz := range []string{"0010", "0020"} {
		item := model.NewItem()
		item.ID = "bid-" + oz
		item.RNoPart = oz
		item.Qty = decPtr("10.000")
		price, ok := prices[oz]
		switch {
		case !ok:
			continue
		case price == "n.a.":
			item.NotOffered = true
			item.UP = decPtr("999.00") // stale price, must be ignored
		default:
			item.UP = decPtr(price)
		}
		cat.Items = append(cat.Items, item)
	}
	project.BoQ.Categories = []*model.Category{cat}

	path := filepath.Join(dir, filename)
	if err := gaebxml.NewWriter(nil).Write(project, path, ""); err != nil {
		t.Fatalf("write bid %s: %v", filename, err)
	}
	return path
}

func itemRows(ps *model.PreisSpiegel) []*model.ItemRow {
	var rows []*model.ItemRow
	for _, row := range ps.Rows {
		if row.Item != nil {
			rows = append(rows, row.Item)
		}
	}
	return rows
}

func TestCreateStatistics(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeBid(t, dir, "bieter1.x84", "Bau GmbH", map[string]string{"0010": "5.00", "0020": "100.00"}),
		writeBid(t, dir, "bieter2.x84", "Hoch & Tief AG", map[string]string{"0010": "8.00", "0020": "120.00"}),
		writeBid(t, dir, "bieter3.x84", "Mueller Bau", map[string]string{"0010": "6.50", "0020": "110.00"}),
	}

	ps, err := NewAggregator(nil).Create(referenceProject(), paths)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if ps.ProjectName != "Kita Sonnenschein" {
		t.Errorf("project name = %q", ps.ProjectName)
	}
	if len(ps.Bidders) != 3 || ps.Bidders[0].Name != "Bau GmbH" {
		t.Fatalf("bidders = %+v", ps.Bidders)
	}

	rows := itemRows(ps)
	if len(rows) != 2 {
		t.Fatalf("item rows = %d, want 2", len(rows))
	}

	first := rows[0]
	if first.OZ != "01.0010" {
		t.Errorf("OZ = %q, want 01.0010", first.OZ)
	}
	if model.FormatDecimal(*first.MinUP) != "5.00" || model.FormatDecimal(*first.MaxUP) != "8.00" {
		t.Errorf("min/max = %s/%s, want 5.00/8.00", first.MinUP, first.MaxUP)
	}
	if model.FormatDecimal(*first.AvgUP) != "6.50" {
		t.Errorf("avg = %s, want 6.50", first.AvgUP)
	}

	// Totals: reference quantity (10.000) times unit price, rounded to 2dp.
	if model.FormatDecimal(*first.TotalPrices[0]) != "50.00" {
		t.Errorf("total[0] = %s, want 50.00", first.TotalPrices[0])
	}

	// Grand totals: 50 + 400, 80 + 480, 65 + 440. Position 0020 has a
	// reference quantity of 4.000.
	wantGrand := []string{"450.00", "560.00", "505.00"}
	for i, want := range wantGrand {
		if ps.GrandTotals[i] == nil || model.FormatDecimal(*ps.GrandTotals[i]) != want {
			t.Errorf("grand total[%d] = %v, want %s", i, ps.GrandTotals[i], want)
		}
	}
}

func TestCreateNotOfferedAndMissing(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeBid(t, dir, "bieter1.x84", "Bau GmbH", map[string]string{"0010": "5.00", "0020": "100.00"}),
		writeBid(t, dir, "bieter2.x84", "Hoch & Tief AG", map[string]string{"0010": "n.a."}),
	}

	ps, err := NewAggregator(nil).Create(referenceProject(), paths)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	rows := itemRows(ps)
	first, second := rows[0], rows[1]

	if !first.NotOffered[1] {
		t.Error("not-offered marker lost for bidder 2")
	}
	if first.UnitPrices[1] != nil || first.TotalPrices[1] != nil {
		t.Error("not-offered position must not carry prices")
	}
	// Statistics only cover actual prices.
	if model.FormatDecimal(*first.MinUP) != "5.00" || model.FormatDecimal(*first.MaxUP) != "5.00" {
		t.Errorf("min/max over one price = %s/%s", first.MinUP, first.MaxUP)
	}

	// Bidder 2 has no position 0020 at all.
	if second.UnitPrices[1] != nil || second.NotOffered[1] {
		t.Error("missing position must stay empty, not not-offered")
	}

	// Bidder 2 priced nothing, so its grand total stays nil.
	if ps.GrandTotals[0] == nil {
		t.Error("grand total for bidder 1 missing")
	}
	if ps.GrandTotals[1] != nil {
		t.Errorf("grand total for unpriced bidder = %v, want nil", ps.GrandTotals[1])
	}
}

func TestCreateAllZeroPricesGiveNilGrandTotal(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeBid(t, dir, "bieter1.x84", "Bau GmbH", map[string]string{"0010": "5.00", "0020": "100.00"}),
		writeBid(t, dir, "bieter2.x84", "Null GmbH", map[string]string{"0010": "0.00", "0020": "0.00"}),
	}

	ps, err := NewAggregator(nil).Create(referenceProject(), paths)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// The zero-priced positions still show up in the rows.
	first := itemRows(ps)[0]
	if first.UnitPrices[1] == nil || !first.UnitPrices[1].IsZero() {
		t.Errorf("unit price = %v, want 0.00", first.UnitPrices[1])
	}

	// A sum of exactly zero is no grand total.
	if ps.GrandTotals[0] == nil {
		t.Error("grand total for bidder 1 missing")
	}
	if ps.GrandTotals[1] != nil {
		t.Errorf("grand total over zero prices = %v, want nil", ps.GrandTotals[1])
	}
}

func TestCreateCategoryTotals(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeBid(t, dir, "bieter1.x84", "Bau GmbH", map[string]string{"0010": "5.00", "0020": "100.00"}),
	}

	ps, err := NewAggregator(nil).Create(referenceProject(), paths)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if ps.Rows[0].Category == nil {
		t.Fatal("first row must be the category")
	}
	catRow := ps.Rows[0].Category
	if catRow.OZ != "01" || catRow.Label != "Rohbau" {
		t.Errorf("category row = %q/%q", catRow.OZ, catRow.Label)
	}
	if catRow.Totals[0] == nil || model.FormatDecimal(*catRow.Totals[0]) != "450.00" {
		t.Errorf("category total = %v, want 450.00", catRow.Totals[0])
	}
}

func TestCreateBidderNameFallsBackToFilename(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeBid(t, dir, "anonym.x84", "", map[string]string{"0010": "5.00"}),
	}

	ps, err := NewAggregator(nil).Create(referenceProject(), paths)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ps.Bidders[0].Name != "anonym.x84" {
		t.Errorf("bidder name = %q, want anonym.x84", ps.Bidders[0].Name)
	}
}

func TestCreateFailsOnUnreadableBidder(t *testing.T) {
	_, err := NewAggregator(nil).Create(referenceProject(),
		[]string{filepath.Join(t.TempDir(), "fehlt.x84")})
	if err == nil {
		t.Fatal("missing bidder file must fail the comparison")
	}
}

func TestBidderStoredTotalWins(t *testing.T) {
	bidderItem := model.NewItem()
	bidderItem.UP = decPtr("5.00")
	bidderItem.IT = decPtr("47.11")

	total := bidderTotal(bidderItem, decPtr("10.000"))
	if model.FormatDecimal(*total) != "47.11" {
		t.Errorf("total = %s, want stored 47.11", total)
	}

	bidderItem.IT = nil
	total = bidderTotal(bidderItem, decPtr("10.000"))
	if model.FormatDecimal(*total) != "50.00" {
		t.Errorf("total = %s, want computed 50.00", total)
	}

	bidderItem.UP = nil
	if bidderTotal(bidderItem, decPtr("10.000")) != nil {
		t.Error("total without price must be nil")
	}
}
