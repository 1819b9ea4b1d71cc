// =============================================================================
// GAEB Converter - Structural Validation
// =============================================================================
//
// Validates the document model against the phase rules and the editing
// constraints of the GAEB exchange practice. This is a model-level check,
// not schema validation; XSD validation of serialized files lives in the
// xsdcheck package.
//
// ERROR HANDLING:
//   - Problems are collected, not thrown on first hit
//   - Severity "error" makes the result invalid, "warning" does not
//   - Messages are German, matching the exchange domain
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"

	"github.com/gaebtools/gaebconv/internal/model"
)

// MaxOrdinalLength is the maximum total digit count of an ordinal mask.
const MaxOrdinalLength = 14

// MaxHierarchyLevels is the maximum number of Lot and BoQLevel mask entries.
const MaxHierarchyLevels = 5

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// ValidationError is a single finding against the document model.
type ValidationError struct {
	// Severity is "error" (result invalid) or "warning".
	Severity string

	// Field names the offending model field.
	Field string

	// OZ locates the finding in the BoQ tree when applicable.
	OZ string

	// Message is the human-readable German description.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.OZ != "" {
		return fmt.Sprintf("[%s] %s '%s': %s", strings.ToUpper(e.Severity), e.OZ, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] '%s': %s", strings.ToUpper(e.Severity), e.Field, e.Message)
}

// ValidationResult collects all findings of one validation run.
type ValidationResult struct {
	Errors []*ValidationError
}

// IsValid reports whether the result carries no finding of severity "error".
func (r *ValidationResult) IsValid() bool {
	for _, e := range r.Errors {
		if e.Severity == "error" {
			return false
		}
	}
	return true
}

// ErrorCount returns the number of findings with severity "error".
func (r *ValidationResult) ErrorCount() int {
	n := 0
	for _, e := range r.Errors {
		if e.Severity == "error" {
			n++
		}
	}
	return n
}

// WarningCount returns the number of findings with severity "warning".
func (r *ValidationResult) WarningCount() int {
	return len(r.Errors) - r.ErrorCount()
}

func (r *ValidationResult) addError(field, oz, message string) {
	r.Errors = append(r.Errors, &ValidationError{Severity: "error", Field: field, OZ: oz, Message: message})
}

func (r *ValidationResult) addWarning(field, oz, message string) {
	r.Errors = append(r.Errors, &ValidationError{Severity: "warning", Field: field, OZ: oz, Message: message})
}

// =============================================================================
// VALIDATOR
// =============================================================================

// Validator checks projects, categories and items. Evaluator is used to
// verify stored quantity formulas; nil skips formula evaluation.
type Validator struct {
	Evaluator model.FormulaFunc
}

// NewValidator returns a Validator using the given formula evaluator.
func NewValidator(eval model.FormulaFunc) *Validator {
	return &Validator{Evaluator: eval}
}

// ValidateProject validates the whole project including the BoQ tree.
func (v *Validator) ValidateProject(project *model.Project) *ValidationResult {
	result := &ValidationResult{}

	if strings.TrimSpace(project.PrjInfo.Name) == "" {
		result.addWarning("prj_name", "", "Projektname ist Pflichtfeld")
	}

	if project.BoQ != nil {
		if err := ValidateBreakdowns(project.BoQ.Info.Breakdowns); err != nil {
			result.addError("breakdowns", "", err.Error())
		}
		v.validateCategories(project.BoQ.Categories, "", project.Phase, result)
	}

	return result
}

func (v *Validator) validateCategories(categories []*model.Category, parentOZ string, phase model.Phase, result *ValidationResult) {
	for _, cat := range categories {
		oz := cat.FullOrdinal(parentOZ)
		v.validateCategory(cat, oz, result)
		for _, item := range cat.Items {
			v.validateItem(item, item.FullOrdinal(oz), phase, result)
		}
		v.validateCategories(cat.Subcategories, oz, phase, result)
	}
}

// ValidateCategory validates a single category node.
func (v *Validator) ValidateCategory(cat *model.Category) *ValidationResult {
	result := &ValidationResult{}
	v.validateCategory(cat, cat.RNoPart, result)
	return result
}

func (v *Validator) validateCategory(cat *model.Category, oz string, result *ValidationResult) {
	if strings.TrimSpace(cat.RNoPart) == "" {
		result.addError("rno_part", oz, "Ordnungszahl ist Pflichtfeld")
	}
	if strings.TrimSpace(cat.Label) == "" {
		result.addWarning("label", oz, "Bezeichnung ist Pflichtfeld")
	}
}

// ValidateItem validates a single item against the phase rules.
func (v *Validator) ValidateItem(item *model.Item, phase model.Phase) *ValidationResult {
	result := &ValidationResult{}
	v.validateItem(item, item.RNoPart, phase, result)
	return result
}

func (v *Validator) validateItem(item *model.Item, oz string, phase model.Phase, result *ValidationResult) {
	rules := model.Rules(phase)

	if strings.TrimSpace(item.RNoPart) == "" {
		result.addError("rno_part", oz, "Ordnungszahl ist Pflichtfeld")
	}
	if strings.TrimSpace(item.Description.OutlineText) == "" {
		result.addWarning("outline_text", oz, "Kurztext ist Pflichtfeld")
	}

	if rules.HasQuantities {
		if item.Qty != nil && item.Qty.IsNegative() {
			result.addError("qty", oz, "Menge darf nicht negativ sein")
		}
		if item.Qty == nil && !item.QtyTBD && !item.IsMarkupItem {
			result.addWarning("qty", oz, "Menge oder 'Menge noch offen' erforderlich")
		}
	}

	if item.Qty != nil && strings.TrimSpace(item.QU) == "" {
		result.addWarning("qu", oz, "Einheit fehlt bei vorhandener Menge")
	}

	if rules.HasPrices && item.UP != nil && item.UP.IsNegative() {
		result.addError("up", oz, "Einheitspreis darf nicht negativ sein")
	}

	if item.UseCalculatedQty {
		if strings.TrimSpace(item.Formula) == "" {
			result.addWarning("formula", oz, "Formelberechnung aktiv, aber keine Formel eingegeben")
		} else if v.Evaluator != nil {
			if _, err := v.Evaluator(item.Formula); err != nil {
				result.addError("formula", oz, fmt.Sprintf("Ungueltige Formel: %v", err))
			}
		}
	}
}

// =============================================================================
// ORDINAL MASK RULES
// =============================================================================

// ValidateBreakdowns checks an ordinal breakdown mask against the exchange
// rules: exactly one Item level, at most one leading Lot, at most one
// trailing single-digit Index, overall order Lot, BoQLevel(s), Item, Index,
// total width of at most 14 digits and at most 5 hierarchy levels.
func ValidateBreakdowns(breakdowns []model.BoQBkdn) error {
	if len(breakdowns) == 0 {
		return fmt.Errorf("Mindestens eine Ebene muss definiert sein")
	}

	itemCount, lotCount, indexCount, hierarchyCount, total := 0, 0, 0, 0, 0
	for _, b := range breakdowns {
		total += b.Length
		switch b.Type {
		case "Item":
			itemCount++
		case "Lot":
			lotCount++
			hierarchyCount++
		case "Index":
			indexCount++
		case "BoQLevel":
			hierarchyCount++
		}
	}

	if itemCount == 0 {
		return fmt.Errorf("Es muss genau eine Ebene vom Typ 'Position' vorhanden sein")
	}
	if itemCount > 1 {
		return fmt.Errorf("Es darf nur eine Ebene vom Typ 'Position' geben")
	}

	if lotCount > 1 {
		return fmt.Errorf("Es darf maximal ein Los ('Lot') geben")
	}
	if lotCount == 1 && breakdowns[0].Type != "Lot" {
		return fmt.Errorf("Das Los muss die erste Ebene sein")
	}

	if indexCount > 1 {
		return fmt.Errorf("Es darf maximal einen Index geben")
	}
	if indexCount == 1 {
		last := breakdowns[len(breakdowns)-1]
		if last.Type != "Index" {
			return fmt.Errorf("Der Index muss die letzte Ebene sein")
		}
		if last.Length != 1 {
			return fmt.Errorf("Der Index muss genau 1 Stelle lang sein")
		}
	}

	order := map[string]int{"Lot": 0, "BoQLevel": 1, "Item": 2, "Index": 3}
	lastOrder := -1
	for _, b := range breakdowns {
		current, ok := order[b.Type]
		if !ok {
			current = 1
		}
		if b.Type == "BoQLevel" {
			if current < lastOrder && lastOrder > 1 {
				return fmt.Errorf("LV-Stufen muessen vor der Position stehen")
			}
			continue
		}
		if current < lastOrder {
			return fmt.Errorf("Die Reihenfolge muss sein: Los, LV-Stufe(n), Position, Index")
		}
		lastOrder = current
	}

	if total > MaxOrdinalLength {
		return fmt.Errorf("Die Gesamtlaenge (%d Stellen) ueberschreitet das Maximum von %d Stellen",
			total, MaxOrdinalLength)
	}

	if hierarchyCount > MaxHierarchyLevels {
		return fmt.Errorf("Maximal %d Hierarchiestufen (Los + LV-Stufen) erlaubt", MaxHierarchyLevels)
	}

	return nil
}
