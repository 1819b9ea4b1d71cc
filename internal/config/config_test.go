package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "fehlt.yaml"))
	if err != nil {
		t.Fatalf("missing config must not fail: %v", err)
	}
	if cfg.ProgSystem != "gaebconv" {
		t.Errorf("ProgSystem = %q", cfg.ProgSystem)
	}
	if cfg.DefaultVersion != "3.3" {
		t.Errorf("DefaultVersion = %q, want 3.3", cfg.DefaultVersion)
	}
	if cfg.XSDDir != "./xsd" {
		t.Errorf("XSDDir = %q, want ./xsd", cfg.XSDDir)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoadOverridesAndDefaults(t *testing.T) {
	path := writeConfig(t, `
prog_system: meinava
default_version: "3.2"
log_level: debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ProgSystem != "meinava" {
		t.Errorf("ProgSystem = %q", cfg.ProgSystem)
	}
	if cfg.DefaultVersion != "3.2" {
		t.Errorf("DefaultVersion = %q", cfg.DefaultVersion)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	// Unnamed settings keep their defaults.
	if cfg.XSDDir != "./xsd" {
		t.Errorf("XSDDir = %q, want default", cfg.XSDDir)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "prog_system: [kaputt")
	if _, err := Load(path); err == nil {
		t.Fatal("malformed config must fail")
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"bad version", `default_version: "9.9"`, "unsupported GAEB version"},
		{"bad log level", `log_level: chatty`, "unknown log level"},
		{
			"bad constant",
			"constants:\n  DICHTE_X:\n    value: abc\n",
			"non-decimal value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("invalid config accepted")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestFormulaConstantsMerge(t *testing.T) {
	path := writeConfig(t, `
constants:
  DICHTE_SCHOTTER:
    value: "1.7"
    description: "Dichte Schotter [t/m3]"
  DICHTE_BETON:
    value: "2.3"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	constants := cfg.FormulaConstants()

	added, ok := constants["DICHTE_SCHOTTER"]
	if !ok {
		t.Fatal("user constant missing")
	}
	if !added.Value.Equal(decimal.RequireFromString("1.7")) {
		t.Errorf("DICHTE_SCHOTTER = %s", added.Value)
	}

	// User values override built-ins of the same name.
	if !constants["DICHTE_BETON"].Value.Equal(decimal.RequireFromString("2.3")) {
		t.Errorf("DICHTE_BETON = %s, want override 2.3", constants["DICHTE_BETON"].Value)
	}

	// Built-ins survive the merge.
	if _, ok := constants["DICHTE_STAHL"]; !ok {
		t.Error("built-in constant lost during merge")
	}
}
