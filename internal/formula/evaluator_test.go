package formula

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func evaluate(t *testing.T, formula string) decimal.Decimal {
	t.Helper()
	result, err := NewEvaluator(nil).Evaluate(formula)
	if err != nil {
		t.Fatalf("Evaluate(%q): %v", formula, err)
	}
	if result == nil {
		t.Fatalf("Evaluate(%q) returned nil", formula)
	}
	return *result
}

func TestEvaluateArithmetic(t *testing.T) {
	tests := []struct {
		formula string
		want    string
	}{
		{"2+3", "5"},
		{"10 * 5", "50"},
		{"(4 + 6) / 2", "5"},
		{"2.5 * 4", "10"},
		{"10 - 2 * 3", "4"},
	}

	for _, tt := range tests {
		t.Run(tt.formula, func(t *testing.T) {
			got := evaluate(t, tt.formula)
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("Evaluate(%q) = %s, want %s", tt.formula, got, tt.want)
			}
		})
	}
}

func TestEvaluateConstants(t *testing.T) {
	got := evaluate(t, "2 * DICHTE_BETON")
	if !got.Equal(decimal.RequireFromString("4.8")) {
		t.Errorf("2 * DICHTE_BETON = %s, want 4.8", got)
	}

	// Names are case-insensitive.
	got = evaluate(t, "dichte_stahl")
	if !got.Equal(decimal.RequireFromString("7.85")) {
		t.Errorf("dichte_stahl = %s, want 7.85", got)
	}
}

func TestEvaluateCustomConstants(t *testing.T) {
	constants := DefaultConstants()
	constants["DICHTE_SCHOTTER"] = Constant{
		Value:       decimal.RequireFromString("1.7"),
		Description: "Dichte Schotter [t/m3]",
	}

	result, err := NewEvaluator(constants).Evaluate("10 * DICHTE_SCHOTTER")
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !result.Equal(decimal.RequireFromString("17")) {
		t.Errorf("result = %s, want 17", result)
	}
}

func TestEvaluateRoundingFunctions(t *testing.T) {
	tests := []struct {
		formula string
		want    string
	}{
		{"AUFRUNDEN(3.21, 1)", "3.3"},
		{"AUFRUNDEN(-3.21, 1)", "-3.3"}, // away from zero
		{"ABRUNDEN(3.29, 1)", "3.2"},
		{"ABRUNDEN(-3.29, 1)", "-3.2"}, // toward zero
		{"RUNDEN(2.5, 0)", "3"},
		{"RUNDEN(-2.5, 0)", "-3"}, // kaufmaennisch: halves away from zero
		{"ROUND(1.005, 0)", "1"},
		{"RUNDEN(3.14159, 2)", "3.14"},
		{"CEIL(2.1)", "3"},
		{"FLOOR(2.9)", "2"},
		{"ABS(0-7)", "7"},
		{"SQRT(16)", "4"},
		{"MIN(3, 1, 2)", "1"},
		{"MAX(3, 1, 2)", "3"},
	}

	for _, tt := range tests {
		t.Run(tt.formula, func(t *testing.T) {
			got := evaluate(t, tt.formula)
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("Evaluate(%q) = %s, want %s", tt.formula, got, tt.want)
			}
		})
	}
}

func TestEvaluateLowercaseFunctions(t *testing.T) {
	// Formulas are uppercased before parsing, so spreadsheet-style lowercase
	// input works too.
	got := evaluate(t, "aufrunden(3.21, 1)")
	if !got.Equal(decimal.RequireFromString("3.3")) {
		t.Errorf("aufrunden(3.21, 1) = %s, want 3.3", got)
	}
}

func TestEvaluateEmptyFormula(t *testing.T) {
	result, err := NewEvaluator(nil).Evaluate("   ")
	if err != nil {
		t.Fatalf("empty formula must not fail: %v", err)
	}
	if result != nil {
		t.Errorf("empty formula = %v, want nil", result)
	}
}

func TestEvaluateErrors(t *testing.T) {
	tests := []struct {
		name    string
		formula string
		wantMsg string
	}{
		{"syntax error", "2 +* 3", "Syntaxfehler"},
		{"unknown name", "2 * UNBEKANNT", "Unbekannter Name"},
		{"division by zero", "1 / 0", "Division durch Null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEvaluator(nil).Evaluate(tt.formula)
			if err == nil {
				t.Fatalf("Evaluate(%q) should fail", tt.formula)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestDefaultConstantsComplete(t *testing.T) {
	constants := DefaultConstants()
	for _, name := range []string{"PI", "E", "DICHTE_BETON", "DICHTE_STAHL", "DICHTE_WASSER"} {
		if _, ok := constants[name]; !ok {
			t.Errorf("built-in constant %s missing", name)
		}
	}
	for name, c := range constants {
		if c.Description == "" {
			t.Errorf("constant %s has no description", name)
		}
	}
}
