// =============================================================================
// GAEB Converter - Quantity Formula Evaluator
// =============================================================================
//
// Evaluates quantity formulas like "2 * DICHTE_BETON * AUFRUNDEN(3.2, 1)".
// Formulas are case-insensitive; names resolve against an explicit constants
// table passed at construction, so two evaluators with different constants
// never interfere. Function names follow German spreadsheet conventions
// alongside the usual English ones.
//
// =============================================================================

package formula

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Knetic/govaluate"
	"github.com/shopspring/decimal"

	"github.com/gaebtools/gaebconv/internal/model"
)

// Constant is a named formula constant with a human-readable description.
type Constant struct {
	Value       decimal.Decimal
	Description string
}

// DefaultConstants returns the built-in constants for construction
// calculations. Densities are in t/m3.
func DefaultConstants() map[string]Constant {
	d := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	return map[string]Constant{
		"PI":                {decimal.NewFromFloat(math.Pi), "Kreiszahl"},
		"E":                 {decimal.NewFromFloat(math.E), "Eulersche Zahl"},
		"DICHTE_BETON":      {d("2.4"), "Dichte Beton [t/m3]"},
		"DICHTE_STAHLBETON": {d("2.5"), "Dichte Stahlbeton [t/m3]"},
		"DICHTE_STAHL":      {d("7.85"), "Dichte Stahl [t/m3]"},
		"DICHTE_HOLZ":       {d("0.5"), "Dichte Holz (Nadelholz) [t/m3]"},
		"DICHTE_WASSER":     {d("1.0"), "Dichte Wasser [t/m3]"},
		"DICHTE_MAUERWERK":  {d("1.8"), "Dichte Mauerwerk [t/m3]"},
		"DICHTE_GLAS":       {d("2.5"), "Dichte Glas [t/m3]"},
		"DICHTE_ALUMINIUM":  {d("2.7"), "Dichte Aluminium [t/m3]"},
		"DICHTE_KUPFER":     {d("8.92"), "Dichte Kupfer [t/m3]"},
		"DICHTE_ERDE":       {d("1.8"), "Dichte Erde (gewachsen) [t/m3]"},
		"DICHTE_KIES":       {d("1.8"), "Dichte Kies [t/m3]"},
		"DICHTE_SAND":       {d("1.6"), "Dichte Sand [t/m3]"},
		"DICHTE_ASPHALT":    {d("2.4"), "Dichte Asphalt [t/m3]"},
	}
}

// Evaluator evaluates quantity formulas against a fixed constants table.
type Evaluator struct {
	params    map[string]interface{}
	functions map[string]govaluate.ExpressionFunction
}

// NewEvaluator builds an Evaluator. Constant names are matched
// case-insensitively; nil constants means DefaultConstants.
func NewEvaluator(constants map[string]Constant) *Evaluator {
	if constants == nil {
		constants = DefaultConstants()
	}
	params := make(map[string]interface{}, len(constants))
	for name, c := range constants {
		f, _ := c.Value.Float64()
		params[strings.ToUpper(name)] = f
	}
	return &Evaluator{params: params, functions: functionTable()}
}

// Func adapts the evaluator to the model.FormulaFunc signature.
func (e *Evaluator) Func() model.FormulaFunc {
	return e.Evaluate
}

// Evaluate computes a formula. An empty formula yields (nil, nil); any
// evaluation problem yields a German-language error.
func (e *Evaluator) Evaluate(formula string) (*decimal.Decimal, error) {
	if strings.TrimSpace(formula) == "" {
		return nil, nil
	}

	expr, err := govaluate.NewEvaluableExpressionWithFunctions(
		strings.ToUpper(formula), e.functions)
	if err != nil {
		return nil, fmt.Errorf("Syntaxfehler in der Formel: %w", err)
	}

	result, err := expr.Evaluate(e.params)
	if err != nil {
		if strings.Contains(err.Error(), "No parameter") {
			return nil, fmt.Errorf("Unbekannter Name in der Formel: %w", err)
		}
		return nil, fmt.Errorf("Fehler bei der Auswertung: %w", err)
	}

	value, ok := result.(float64)
	if !ok {
		return nil, errors.New("Ergebnis ist keine Zahl")
	}
	if math.IsInf(value, 0) {
		return nil, errors.New("Division durch Null")
	}
	if math.IsNaN(value) {
		return nil, errors.New("Ungueltiger Zahlenwert")
	}

	d := decimal.NewFromFloat(value)
	return &d, nil
}

// functionTable maps the supported function names, including the German
// spreadsheet spellings, onto float implementations.
func functionTable() map[string]govaluate.ExpressionFunction {
	unary := func(f func(float64) float64) govaluate.ExpressionFunction {
		return func(args ...interface{}) (interface{}, error) {
			if len(args) != 1 {
				return nil, errors.New("Funktion erwartet genau ein Argument")
			}
			v, ok := args[0].(float64)
			if !ok {
				return nil, errors.New("Argument ist keine Zahl")
			}
			return f(v), nil
		}
	}

	rounding := func(f func(value float64, decimals int) float64) govaluate.ExpressionFunction {
		return func(args ...interface{}) (interface{}, error) {
			if len(args) < 1 || len(args) > 2 {
				return nil, errors.New("Funktion erwartet ein oder zwei Argumente")
			}
			v, ok := args[0].(float64)
			if !ok {
				return nil, errors.New("Argument ist keine Zahl")
			}
			places := 0
			if len(args) == 2 {
				p, ok := args[1].(float64)
				if !ok {
					return nil, errors.New("Stellenzahl ist keine Zahl")
				}
				places = int(p)
			}
			return f(v, places), nil
		}
	}

	variadic := func(pick func(a, b float64) float64) govaluate.ExpressionFunction {
		return func(args ...interface{}) (interface{}, error) {
			if len(args) == 0 {
				return nil, errors.New("Funktion erwartet mindestens ein Argument")
			}
			best, ok := args[0].(float64)
			if !ok {
				return nil, errors.New("Argument ist keine Zahl")
			}
			for _, arg := range args[1:] {
				v, ok := arg.(float64)
				if !ok {
					return nil, errors.New("Argument ist keine Zahl")
				}
				best = pick(best, v)
			}
			return best, nil
		}
	}

	table := map[string]govaluate.ExpressionFunction{
		"AUFRUNDEN": rounding(roundUp),
		"ABRUNDEN":  rounding(roundDown),
		"RUNDEN":    rounding(roundHalfUp),
		"ROUND":     rounding(roundHalfUp),
		"CEIL":      unary(math.Ceil),
		"FLOOR":     unary(math.Floor),
		"ABS":       unary(math.Abs),
		"SQRT":      unary(math.Sqrt),
		"SIN":       unary(math.Sin),
		"COS":       unary(math.Cos),
		"TAN":       unary(math.Tan),
		"LOG":       unary(math.Log),
		"LOG10":     unary(math.Log10),
		"MIN":       variadic(math.Min),
		"MAX":       variadic(math.Max),
	}
	return table
}

// roundUp rounds away from zero at the given decimal place, like Excel's
// ROUNDUP / AUFRUNDEN.
func roundUp(value float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	if value >= 0 {
		return math.Ceil(value*factor) / factor
	}
	return math.Floor(value*factor) / factor
}

// roundDown rounds toward zero, like Excel's ROUNDDOWN / ABRUNDEN.
func roundDown(value float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	if value >= 0 {
		return math.Floor(value*factor) / factor
	}
	return math.Ceil(value*factor) / factor
}

// roundHalfUp is kaufmaennisches Runden: halves round away from zero.
func roundHalfUp(value float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	if value >= 0 {
		return math.Floor(value*factor+0.5) / factor
	}
	return math.Ceil(value*factor-0.5) / factor
}
