package export

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/gaebtools/gaebconv/internal/model"
)

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func samplePreisspiegel() *model.PreisSpiegel {
	return &model.PreisSpiegel{
		ProjectName: "Kita Sonnenschein",
		Bidders: []model.BidderInfo{
			{Name: "Bau GmbH", FilePath: "bieter1.x84"},
			{Name: "Hoch & Tief AG", FilePath: "bieter2.x84"},
		},
		Rows: []model.Row{
			{Category: &model.CategoryRow{
				OZ:     "01",
				Label:  "Rohbau",
				Totals: []*decimal.Decimal{decPtr("50.00"), nil},
			}},
			{Item: &model.ItemRow{
				OZ:          "01.0010",
				ShortText:   "Mauerwerk",
				Qty:         decPtr("10.000"),
				QU:          "m2",
				UnitPrices:  []*decimal.Decimal{decPtr("5.00"), nil},
				TotalPrices: []*decimal.Decimal{decPtr("50.00"), nil},
				NotOffered:  []bool{false, true},
				MinUP:       decPtr("5.00"),
				MaxUP:       decPtr("5.00"),
				AvgUP:       decPtr("5.00"),
			}},
		},
		GrandTotals: []*decimal.Decimal{decPtr("50.00"), nil},
	}
}

func TestWritePreisspiegelExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preisspiegel.xlsx")
	if err := WritePreisspiegelExcel(samplePreisspiegel(), path); err != nil {
		t.Fatalf("WritePreisspiegelExcel: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	const sheet = "Preisspiegel"
	cell := func(ref string) string {
		value, err := f.GetCellValue(sheet, ref)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", ref, err)
		}
		return value
	}

	if got := cell("A1"); got != "Kita Sonnenschein" {
		t.Errorf("A1 = %q", got)
	}

	// Header row: OZ, Kurztext, Menge, Einheit, then EP/GP per bidder.
	if got := cell("A4"); got != "OZ" {
		t.Errorf("A4 = %q, want OZ", got)
	}
	if got := cell("E4"); got != "Bau GmbH EP" {
		t.Errorf("E4 = %q, want Bau GmbH EP", got)
	}
	if got := cell("G4"); got != "Hoch & Tief AG EP" {
		t.Errorf("G4 = %q", got)
	}
	if got := cell("I4"); got != "Min EP" {
		t.Errorf("I4 = %q, want Min EP", got)
	}

	// Category row, then the item row.
	if got := cell("A5"); got != "01" {
		t.Errorf("A5 = %q, want 01", got)
	}
	if got := cell("A6"); got != "01.0010" {
		t.Errorf("A6 = %q, want 01.0010", got)
	}
	if got := cell("E6"); got != "5.00" {
		t.Errorf("E6 = %q, want 5.00", got)
	}
	// Second bidder did not offer the position.
	if got := cell("G6"); got != "n.a." {
		t.Errorf("G6 = %q, want n.a.", got)
	}

	// Grand total line: label plus the priced bidder's sum.
	if got := cell("A7"); got != "Gesamtsumme" {
		t.Errorf("A7 = %q, want Gesamtsumme", got)
	}
	if got := cell("F7"); got != "50.00" {
		t.Errorf("F7 = %q, want 50.00", got)
	}
}
