// =============================================================================
// GAEB Converter - XSD Schema Validation
// =============================================================================
//
// Validates serialized GAEB DA XML files against the official GAEB XSD
// schemas via libxml2. Phase and version are detected from the document
// namespace, then mapped to the matching schema file in the configured
// schema directory. Structural model checks live in the validation package;
// this package is the final conformance gate on actual bytes.
//
// =============================================================================

package xsdcheck

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/beevik/etree"
	"github.com/lestrrat-go/libxml2"
	"github.com/lestrrat-go/libxml2/xsd"

	"github.com/gaebtools/gaebconv/internal/gaebxml"
	"github.com/gaebtools/gaebconv/internal/model"
)

// schemaRelease is the release tag embedded in the official schema filenames.
const schemaRelease = "2021-05"

// Error is a single schema violation.
type Error struct {
	Line    int
	Message string
}

// Result is the outcome of validating one file.
type Result struct {
	Valid   bool
	Errors  []Error
	Phase   model.Phase
	Version string
}

// Validator validates files against the GAEB schemas in SchemaDir.
type Validator struct {
	SchemaDir string
}

// NewValidator returns a Validator reading schemas from dir.
func NewValidator(dir string) *Validator {
	return &Validator{SchemaDir: dir}
}

// SchemaPath returns the schema file path for a phase and version, or an
// error when no schema ships for that combination.
func (v *Validator) SchemaPath(phase model.Phase, version string) (string, error) {
	if version != model.Version33 {
		return "", fmt.Errorf("kein XSD-Schema fuer %s Version %s verfuegbar", phase, version)
	}
	name := fmt.Sprintf("GAEB_DA_XML_%d_%s_%s.xsd", phase.DPValue(), version, schemaRelease)
	path := filepath.Join(v.SchemaDir, name)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("XSD-Schema nicht gefunden: %s", path)
	}
	return path, nil
}

// ValidateFile validates the file at path against the schema matching its
// detected phase and version.
func (v *Validator) ValidateFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return v.ValidateBytes(data)
}

// ValidateBytes validates raw document bytes.
func (v *Validator) ValidateBytes(data []byte) (*Result, error) {
	result := &Result{}

	doc, err := libxml2.Parse(data)
	if err != nil {
		result.Errors = append(result.Errors, Error{Message: fmt.Sprintf("XML Syntax: %v", err)})
		return result, nil
	}
	defer doc.Free()

	// Detect phase and version with the codec's namespace logic; a second
	// lightweight parse is cheaper than re-deriving it from libxml2 nodes.
	phase, version, err := detectFromBytes(data)
	if err != nil {
		result.Errors = append(result.Errors, Error{Message: err.Error()})
		return result, nil
	}
	result.Phase = phase
	result.Version = version

	schemaPath, err := v.SchemaPath(phase, version)
	if err != nil {
		result.Errors = append(result.Errors, Error{Message: err.Error()})
		return result, nil
	}

	schemaData, err := os.ReadFile(schemaPath)
	if err != nil {
		return nil, err
	}
	schema, err := xsd.Parse(schemaData, xsd.WithPath(schemaPath))
	if err != nil {
		return nil, fmt.Errorf("XSD-Schema konnte nicht geladen werden: %w", err)
	}
	defer schema.Free()

	if err := schema.Validate(doc); err != nil {
		if sve, ok := err.(xsd.SchemaValidationError); ok {
			for _, e := range sve.Errors() {
				result.Errors = append(result.Errors, Error{Message: e.Error()})
			}
		} else {
			result.Errors = append(result.Errors, Error{Message: err.Error()})
		}
		return result, nil
	}

	result.Valid = true
	return result, nil
}

func detectFromBytes(data []byte) (model.Phase, string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return 0, "", err
	}
	root := doc.Root()
	if root == nil {
		return 0, "", fmt.Errorf("Dokument hat kein Root-Element")
	}
	return gaebxml.DetectPhaseAndVersion(root)
}
