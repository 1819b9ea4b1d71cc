// =============================================================================
// GAEB Converter - Phase Conversion
// =============================================================================
//
// Converts a project between exchange phases by deep-copying it and then
// stripping every field group the target phase does not permit, collecting a
// German-language warning for each dropped value. When the target phase
// carries totals, item totals are recalculated from quantity and unit price;
// stale totals from the source never survive a conversion.
//
// =============================================================================

package phaseconv

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/gaebtools/gaebconv/internal/model"
)

// Result is a converted project plus the warnings produced along the way.
type Result struct {
	Project  *model.Project
	Warnings []string
}

// Converter transforms projects between phases. Evaluator resolves quantity
// formulas during total recalculation; nil uses stored quantities only.
type Converter struct {
	Evaluator model.FormulaFunc
	Log       *zap.Logger
}

// NewConverter returns a Converter logging through the given logger.
func NewConverter(eval model.FormulaFunc, log *zap.Logger) *Converter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Converter{Evaluator: eval, Log: log}
}

// Convert returns a new project in the target phase; the input project is
// never mutated. Converting to the current phase returns the input unchanged
// with no warnings.
func (c *Converter) Convert(project *model.Project, target model.Phase) Result {
	if project.Phase == target {
		return Result{Project: project}
	}

	source := model.Rules(project.Phase)
	rules := model.Rules(target)

	converted := project.Clone()
	converted.Phase = target

	var warnings []string
	if converted.BoQ != nil {
		c.convertCategories(converted.BoQ.Categories, source, rules, &warnings)

		if !rules.HasTotals && converted.BoQ.Info.Totals != nil {
			warnings = append(warnings,
				"BoQ-Summen wurden entfernt (Zielphase unterstuetzt keine Summen)")
			converted.BoQ.Info.Totals = nil
		}
	}

	c.Log.Info("converted phase",
		zap.String("from", project.Phase.String()),
		zap.String("to", target.String()),
		zap.Int("warnings", len(warnings)))

	return Result{Project: converted, Warnings: warnings}
}

// WarningsPreview describes what a conversion would drop or require, without
// touching any document.
func (c *Converter) WarningsPreview(source, target model.Phase) []string {
	src := model.Rules(source)
	dst := model.Rules(target)

	var warnings []string
	if src.HasPrices && !dst.HasPrices {
		warnings = append(warnings, "Alle Preise werden entfernt")
	}
	if src.HasQuantities && !dst.HasQuantities {
		warnings = append(warnings, "Alle Mengen werden entfernt")
	}
	if src.HasTotals && !dst.HasTotals {
		warnings = append(warnings, "Alle Summen werden entfernt")
	}
	if src.AllowsNotOffered && !dst.AllowsNotOffered {
		warnings = append(warnings, "'Nicht angeboten' Markierungen werden entfernt")
	}

	if !src.HasPrices && dst.HasPrices {
		warnings = append(warnings, "Preise muessen nachgetragen werden")
	}
	if !src.HasQuantities && dst.HasQuantities {
		warnings = append(warnings, "Mengen muessen nachgetragen werden")
	}

	return warnings
}

func (c *Converter) convertCategories(categories []*model.Category, source, target model.PhaseRules, warnings *[]string) {
	for _, cat := range categories {
		c.convertCategories(cat.Subcategories, source, target, warnings)
		for _, item := range cat.Items {
			c.convertItem(item, source, target, warnings)
		}
		if !target.HasTotals {
			cat.Totals = nil
		}
	}
}

func (c *Converter) convertItem(item *model.Item, source, target model.PhaseRules, warnings *[]string) {
	if source.HasQuantities && !target.HasQuantities {
		if item.Qty != nil {
			*warnings = append(*warnings,
				fmt.Sprintf("Position %s: Menge %s wurde entfernt",
					item.RNoPart, model.FormatDecimal(*item.Qty)))
		}
		item.Qty = nil
		item.QtyTBD = false
	}

	if source.HasPrices && !target.HasPrices {
		if item.UP != nil {
			*warnings = append(*warnings,
				fmt.Sprintf("Position %s: Einheitspreis %s wurde entfernt",
					item.RNoPart, model.FormatDecimal(*item.UP)))
		}
		item.UP = nil
		item.UPComponents = make(map[int]decimal.Decimal)
		item.DiscountPcnt = nil
	}

	if source.HasTotals && !target.HasTotals {
		item.IT = nil
	}

	if source.AllowsNotOffered && !target.AllowsNotOffered {
		if item.NotOffered {
			*warnings = append(*warnings,
				fmt.Sprintf("Position %s: 'Nicht angeboten' Flag wurde entfernt", item.RNoPart))
		}
		item.NotOffered = false
	}

	// Totals are always recomputed for the target, never carried over.
	if target.HasTotals {
		if item.Qty != nil && item.UP != nil {
			item.IT = item.CalculateTotal(c.Evaluator)
		} else {
			item.IT = nil
		}
	}
}
