package phaseconv

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/gaebtools/gaebconv/internal/model"
)

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func bidProject() *model.Project {
	project := model.NewProject(model.PhaseX84)
	project.PrjInfo.Name = "Kita Sonnenschein"
	project.BoQ = model.NewBoQ()
	project.BoQ.Info.Totals = &model.Totals{Total: decimal.RequireFromString("50.00")}

	item := model.NewItem()
	item.ID = "item-1"
	item.RNoPart = "0010"
	item.Qty = decPtr("10.000")
	item.QU = "m2"
	item.UP = decPtr("5.00")
	item.IT = decPtr("50.00")
	item.NotOffered = true

	project.BoQ.Categories = []*model.Category{{
		RNoPart: "01",
		Label:   "Rohbau",
		Items:   []*model.Item{item},
		Totals:  &model.Totals{Total: decimal.RequireFromString("50.00")},
	}}
	return project
}

func TestConvertIdentityIsNoOp(t *testing.T) {
	converter := NewConverter(nil, nil)
	project := bidProject()

	result := converter.Convert(project, model.PhaseX84)
	if result.Project != project {
		t.Error("identity conversion should return the input project")
	}
	if len(result.Warnings) != 0 {
		t.Errorf("identity conversion produced warnings: %v", result.Warnings)
	}
}

func TestConvertDoesNotMutateSource(t *testing.T) {
	converter := NewConverter(nil, nil)
	project := bidProject()

	converter.Convert(project, model.PhaseX81)

	item := project.BoQ.Categories[0].Items[0]
	if item.Qty == nil || item.UP == nil || item.IT == nil || !item.NotOffered {
		t.Error("conversion mutated the source project")
	}
}

func TestConvertX84ToX81StripsEverything(t *testing.T) {
	converter := NewConverter(nil, nil)
	result := converter.Convert(bidProject(), model.PhaseX81)

	if result.Project.Phase != model.PhaseX81 {
		t.Errorf("phase = %v, want X81", result.Project.Phase)
	}

	item := result.Project.BoQ.Categories[0].Items[0]
	if item.Qty != nil {
		t.Error("quantity not stripped")
	}
	if item.UP != nil || len(item.UPComponents) != 0 {
		t.Error("prices not stripped")
	}
	if item.IT != nil {
		t.Error("total not stripped")
	}
	if item.NotOffered {
		t.Error("NotOffered not stripped")
	}
	if result.Project.BoQ.Info.Totals != nil {
		t.Error("BoQ totals not stripped")
	}
	if result.Project.BoQ.Categories[0].Totals != nil {
		t.Error("category totals not stripped")
	}

	wantWarnings := []string{
		"Position 0010: Menge 10.000 wurde entfernt",
		"Position 0010: Einheitspreis 5.00 wurde entfernt",
		"Position 0010: 'Nicht angeboten' Flag wurde entfernt",
		"BoQ-Summen wurden entfernt (Zielphase unterstuetzt keine Summen)",
	}
	if len(result.Warnings) != len(wantWarnings) {
		t.Fatalf("warnings = %v, want %v", result.Warnings, wantWarnings)
	}
	for i, want := range wantWarnings {
		if result.Warnings[i] != want {
			t.Errorf("warning[%d] = %q, want %q", i, result.Warnings[i], want)
		}
	}
}

func TestConvertX84ToX83KeepsQuantities(t *testing.T) {
	converter := NewConverter(nil, nil)
	result := converter.Convert(bidProject(), model.PhaseX83)

	item := result.Project.BoQ.Categories[0].Items[0]
	if item.Qty == nil || model.FormatDecimal(*item.Qty) != "10.000" {
		t.Errorf("quantity must survive X84 -> X83, got %v", item.Qty)
	}
	if item.UP != nil {
		t.Error("unit price must be stripped for X83")
	}
	if item.IT != nil {
		t.Error("total must be stripped for X83")
	}
}

func TestConvertRecomputesTotals(t *testing.T) {
	converter := NewConverter(nil, nil)
	project := bidProject()
	item := project.BoQ.Categories[0].Items[0]
	item.IT = decPtr("999.99") // stale, must not survive

	result := converter.Convert(project, model.PhaseX86)

	converted := result.Project.BoQ.Categories[0].Items[0]
	if converted.IT == nil {
		t.Fatal("total missing after conversion to a totals phase")
	}
	if got := model.FormatDecimal(*converted.IT); got != "50.00" {
		t.Errorf("IT = %s, want recomputed 50.00", got)
	}
}

func TestConvertClearsTotalWithoutFactors(t *testing.T) {
	converter := NewConverter(nil, nil)
	project := model.NewProject(model.PhaseX83)
	project.BoQ = model.NewBoQ()
	item := model.NewItem()
	item.RNoPart = "0010"
	item.Qty = decPtr("10")
	project.BoQ.Categories = []*model.Category{{RNoPart: "01", Items: []*model.Item{item}}}

	result := converter.Convert(project, model.PhaseX84)
	if got := result.Project.BoQ.Categories[0].Items[0].IT; got != nil {
		t.Errorf("IT = %v, want nil without a unit price", got)
	}
}

func TestWarningsPreview(t *testing.T) {
	converter := NewConverter(nil, nil)

	tests := []struct {
		name   string
		source model.Phase
		target model.Phase
		want   []string
	}{
		{
			name:   "X84 to X81",
			source: model.PhaseX84,
			target: model.PhaseX81,
			want: []string{
				"Alle Preise werden entfernt",
				"Alle Mengen werden entfernt",
				"Alle Summen werden entfernt",
				"'Nicht angeboten' Markierungen werden entfernt",
			},
		},
		{
			name:   "X83 to X84",
			source: model.PhaseX83,
			target: model.PhaseX84,
			want:   []string{"Preise muessen nachgetragen werden"},
		},
		{
			name:   "X81 to X82",
			source: model.PhaseX81,
			target: model.PhaseX82,
			want: []string{
				"Preise muessen nachgetragen werden",
				"Mengen muessen nachgetragen werden",
			},
		},
		{
			name:   "identical phases",
			source: model.PhaseX84,
			target: model.PhaseX84,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := converter.WarningsPreview(tt.source, tt.target)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("preview = %v, want %v", got, tt.want)
			}
		})
	}
}
