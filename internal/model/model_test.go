package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// =============================================================================
// PHASE TESTS
// =============================================================================

func TestPhaseRules(t *testing.T) {
	tests := []struct {
		phase      Phase
		quantities bool
		prices     bool
		totals     bool
		notOffered bool
		bidComm    bool
	}{
		{PhaseX81, false, false, false, false, false},
		{PhaseX82, true, true, true, false, false},
		{PhaseX83, true, false, false, false, false},
		{PhaseX84, true, true, true, true, true},
		{PhaseX85, true, true, true, false, false},
		{PhaseX86, true, true, true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.phase.String(), func(t *testing.T) {
			rules := Rules(tt.phase)
			if rules.HasQuantities != tt.quantities {
				t.Errorf("HasQuantities = %v, want %v", rules.HasQuantities, tt.quantities)
			}
			if rules.HasPrices != tt.prices {
				t.Errorf("HasPrices = %v, want %v", rules.HasPrices, tt.prices)
			}
			if rules.HasTotals != tt.totals {
				t.Errorf("HasTotals = %v, want %v", rules.HasTotals, tt.totals)
			}
			if rules.AllowsNotOffered != tt.notOffered {
				t.Errorf("AllowsNotOffered = %v, want %v", rules.AllowsNotOffered, tt.notOffered)
			}
			if rules.HasBidComments != tt.bidComm {
				t.Errorf("HasBidComments = %v, want %v", rules.HasBidComments, tt.bidComm)
			}
		})
	}
}

func TestPhaseFromDP(t *testing.T) {
	phase, err := PhaseFromDP(84)
	if err != nil {
		t.Fatalf("PhaseFromDP(84): %v", err)
	}
	if phase != PhaseX84 {
		t.Errorf("PhaseFromDP(84) = %v, want PhaseX84", phase)
	}

	if _, err := PhaseFromDP(90); err == nil {
		t.Error("PhaseFromDP(90) should fail")
	}
}

func TestPhaseFileExtension(t *testing.T) {
	if got := PhaseX83.FileExtension(); got != ".x83" {
		t.Errorf("FileExtension = %q, want .x83", got)
	}
	if got := PhaseX84.String(); got != "X84" {
		t.Errorf("String = %q, want X84", got)
	}
}

// =============================================================================
// ORDINAL TESTS
// =============================================================================

func TestJoinOrdinal(t *testing.T) {
	tests := []struct {
		parent string
		part   string
		want   string
	}{
		{"", "01", "01"},
		{"01", "02", "01.02"},
		{"01.02", "0010", "01.02.0010"},
		{"01", "", "01"},
		{"", "", ""},
	}

	for _, tt := range tests {
		if got := JoinOrdinal(tt.parent, tt.part); got != tt.want {
			t.Errorf("JoinOrdinal(%q, %q) = %q, want %q", tt.parent, tt.part, got, tt.want)
		}
	}
}

func TestNextRNoPart(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		length   int
		want     string
	}{
		{"empty", nil, 2, "01"},
		{"sequence", []string{"01", "02"}, 2, "03"},
		{"gap stays", []string{"01", "05"}, 2, "06"},
		{"wider mask", []string{"0010", "0020"}, 4, "0021"},
		{"non-numeric skipped", []string{"A1", "02"}, 2, "03"},
		{"zero length defaults", []string{"1"}, 0, "02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextRNoPart(tt.existing, tt.length); got != tt.want {
				t.Errorf("NextRNoPart(%v, %d) = %q, want %q", tt.existing, tt.length, got, tt.want)
			}
		})
	}
}

// =============================================================================
// DECIMAL FORMATTING TESTS
// =============================================================================

func TestFormatDecimal(t *testing.T) {
	tests := []struct {
		in   decimal.Decimal
		want string
	}{
		{dec("10.000"), "10.000"},
		{dec("10"), "10"},
		{dec("5.00"), "5.00"},
		{dec("0.1"), "0.1"},
		{dec("50").Round(2), "50.00"},
		{dec("-3.30"), "-3.30"},
	}

	for _, tt := range tests {
		if got := FormatDecimal(tt.in); got != tt.want {
			t.Errorf("FormatDecimal(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// =============================================================================
// ITEM CALCULATION TESTS
// =============================================================================

func TestItemCalculateTotal(t *testing.T) {
	item := NewItem()
	item.Qty = decPtr("10")
	item.UP = decPtr("5")

	total := item.CalculateTotal(nil)
	if total == nil {
		t.Fatal("CalculateTotal returned nil")
	}
	if got := FormatDecimal(*total); got != "50.00" {
		t.Errorf("total = %s, want 50.00", got)
	}
}

func TestItemCalculateTotalMissingFactor(t *testing.T) {
	item := NewItem()
	item.Qty = decPtr("10")
	if item.CalculateTotal(nil) != nil {
		t.Error("total without unit price should be nil")
	}

	item.Qty = nil
	item.UP = decPtr("5")
	if item.CalculateTotal(nil) != nil {
		t.Error("total without quantity should be nil")
	}
}

func TestItemCalculateTotalRounds(t *testing.T) {
	item := NewItem()
	item.Qty = decPtr("3.333")
	item.UP = decPtr("3.333")

	total := item.CalculateTotal(nil)
	if total == nil {
		t.Fatal("CalculateTotal returned nil")
	}
	if got := FormatDecimal(*total); got != "11.11" {
		t.Errorf("total = %s, want 11.11", got)
	}
}

func TestItemEffectiveQtyFormula(t *testing.T) {
	eval := func(formula string) (*decimal.Decimal, error) {
		if formula != "2*21" {
			t.Fatalf("unexpected formula %q", formula)
		}
		return decPtr("42"), nil
	}

	item := NewItem()
	item.Qty = decPtr("10")
	item.Formula = "2*21"
	item.UseCalculatedQty = true

	qty := item.EffectiveQty(eval)
	if qty == nil || !qty.Equal(dec("42")) {
		t.Errorf("EffectiveQty = %v, want 42", qty)
	}

	// Without the flag the stored quantity wins.
	item.UseCalculatedQty = false
	qty = item.EffectiveQty(eval)
	if qty == nil || !qty.Equal(dec("10")) {
		t.Errorf("EffectiveQty = %v, want 10", qty)
	}
}

func TestCategoryCalculateTotal(t *testing.T) {
	leaf := &Category{RNoPart: "01"}
	item1 := NewItem()
	item1.Qty = decPtr("2")
	item1.UP = decPtr("10")
	item2 := NewItem()
	item2.IT = decPtr("5.50") // stored total wins over computation
	item2.Qty = decPtr("100")
	item2.UP = decPtr("100")
	leaf.Items = []*Item{item1, item2}

	root := &Category{RNoPart: "1", Subcategories: []*Category{leaf}}

	total := root.CalculateTotal(nil)
	if total == nil {
		t.Fatal("CalculateTotal returned nil")
	}
	if got := FormatDecimal(*total); got != "25.50" {
		t.Errorf("total = %s, want 25.50", got)
	}
}

func TestCategoryCalculateTotalEmpty(t *testing.T) {
	cat := &Category{RNoPart: "01", Items: []*Item{NewItem()}}
	if cat.CalculateTotal(nil) != nil {
		t.Error("category without any priced item should total nil")
	}
}

// =============================================================================
// CLONE TESTS
// =============================================================================

func TestProjectCloneIndependence(t *testing.T) {
	project := NewProject(PhaseX84)
	project.PrjInfo.Name = "Kita Sonnenschein"
	project.BoQ = NewBoQ()

	item := NewItem()
	item.ID = "item-1"
	item.RNoPart = "0010"
	item.Qty = decPtr("10")
	item.UP = decPtr("5")
	item.UPComponents[1] = dec("2.50")

	cat := &Category{ID: "cat-1", RNoPart: "01", Label: "Rohbau", Items: []*Item{item}}
	project.BoQ.Categories = []*Category{cat}

	clone := project.Clone()

	clone.PrjInfo.Name = "geaendert"
	clone.BoQ.Categories[0].Label = "geaendert"
	clone.BoQ.Categories[0].Items[0].Qty = decPtr("99")
	clone.BoQ.Categories[0].Items[0].UPComponents[1] = dec("9.99")

	if project.PrjInfo.Name != "Kita Sonnenschein" {
		t.Error("clone mutation leaked into original project info")
	}
	if project.BoQ.Categories[0].Label != "Rohbau" {
		t.Error("clone mutation leaked into original category")
	}
	if !project.BoQ.Categories[0].Items[0].Qty.Equal(dec("10")) {
		t.Error("clone mutation leaked into original quantity")
	}
	if !project.BoQ.Categories[0].Items[0].UPComponents[1].Equal(dec("2.50")) {
		t.Error("clone mutation leaked into original price components")
	}
}

func TestTotalsClone(t *testing.T) {
	totals := &Totals{Total: dec("100"), VAT: decPtr("19")}
	clone := totals.Clone()

	*clone.VAT = dec("7")
	if !totals.VAT.Equal(dec("19")) {
		t.Error("clone mutation leaked into original totals")
	}
}
