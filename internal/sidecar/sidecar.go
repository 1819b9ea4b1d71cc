// =============================================================================
// GAEB Converter - Formula Sidecar
// =============================================================================
//
// GAEB DA XML is a standardized format without custom fields, so quantity
// formula metadata lives in a JSON sidecar next to the GAEB file:
//
//   kita.x83  ->  kita.lvgmeta.json
//
// The sidecar is keyed by item ID. It only exists while at least one item
// carries a formula; saving a project without formulas deletes a stale
// sidecar so the two files never disagree.
//
// =============================================================================

package sidecar

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/gaebtools/gaebconv/internal/model"
)

const schemaVersion = 1

type fileData struct {
	Version int                  `json:"version"`
	Items   map[string]itemEntry `json:"items"`
}

type itemEntry struct {
	Formula          string `json:"formula"`
	UseCalculatedQty bool   `json:"use_calculated_qty"`
}

// Path returns the sidecar path for a GAEB file, replacing the phase
// extension with ".lvgmeta.json".
func Path(gaebPath string) string {
	ext := filepath.Ext(gaebPath)
	stem := strings.TrimSuffix(filepath.Base(gaebPath), ext)
	return filepath.Join(filepath.Dir(gaebPath), stem+".lvgmeta.json")
}

// Save writes the project's formula metadata next to the GAEB file. Without
// any formula-carrying item the sidecar is removed instead.
func Save(project *model.Project, gaebPath string) error {
	if project.BoQ == nil {
		return nil
	}

	items := make(map[string]itemEntry)
	collectFormulas(project.BoQ.Categories, items)

	path := Path(gaebPath)
	if len(items) == 0 {
		err := os.Remove(path)
		if err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}

	data, err := json.MarshalIndent(fileData{Version: schemaVersion, Items: items}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Load restores formula metadata from the sidecar into the project. A
// missing or unreadable sidecar leaves the project untouched.
func Load(project *model.Project, gaebPath string) error {
	raw, err := os.ReadFile(Path(gaebPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var data fileData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil
	}
	if project.BoQ == nil {
		return nil
	}

	applyFormulas(project.BoQ.Categories, data.Items)
	return nil
}

func collectFormulas(categories []*model.Category, out map[string]itemEntry) {
	for _, cat := range categories {
		for _, item := range cat.Items {
			if item.Formula != "" || item.UseCalculatedQty {
				out[item.ID] = itemEntry{
					Formula:          item.Formula,
					UseCalculatedQty: item.UseCalculatedQty,
				}
			}
		}
		collectFormulas(cat.Subcategories, out)
	}
}

func applyFormulas(categories []*model.Category, items map[string]itemEntry) {
	for _, cat := range categories {
		for _, item := range cat.Items {
			if entry, ok := items[item.ID]; ok {
				item.Formula = entry.Formula
				item.UseCalculatedQty = entry.UseCalculatedQty
			}
		}
		applyFormulas(cat.Subcategories, items)
	}
}
