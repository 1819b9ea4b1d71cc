// =============================================================================
// GAEB Converter - Preisspiegel Aggregation
// =============================================================================
//
// Builds a price comparison (Preisspiegel) from one reference bill of
// quantities and N bidder files, usually X84 bids. The reference project is
// authoritative for structure, quantities and short texts; bidders are joined
// per position by the full ordinal number. Rows come out in pre-order of the
// reference tree so the table reads like the printed BoQ.
//
// =============================================================================

package preisspiegel

import (
	"fmt"
	"path/filepath"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/gaebtools/gaebconv/internal/gaebxml"
	"github.com/gaebtools/gaebconv/internal/model"
)

// Aggregator builds price comparisons. The reader is shared across all
// bidder files.
type Aggregator struct {
	Reader *gaebxml.Reader
	Log    *zap.Logger
}

// NewAggregator returns an Aggregator logging through the given logger.
func NewAggregator(log *zap.Logger) *Aggregator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Aggregator{Reader: gaebxml.NewReader(log), Log: log}
}

// Create reads every bidder file and joins it against the reference project.
// An unreadable bidder file fails the whole comparison; a silently missing
// column would be worse than no table.
func (a *Aggregator) Create(reference *model.Project, bidderPaths []string) (*model.PreisSpiegel, error) {
	bidders := make([]model.BidderInfo, 0, len(bidderPaths))
	bidderMaps := make([]map[string]*model.Item, 0, len(bidderPaths))

	for _, path := range bidderPaths {
		project, err := a.Reader.Read(path)
		if err != nil {
			return nil, fmt.Errorf("bidder file %s: %w", path, err)
		}
		name := ""
		if project.Contractor != nil && project.Contractor.Address != nil {
			name = project.Contractor.Address.Name1
		}
		if name == "" {
			name = filepath.Base(path)
		}
		a.Log.Debug("loaded bidder", zap.String("name", name), zap.String("file", path))
		bidders = append(bidders, model.BidderInfo{Name: name, FilePath: path})
		bidderMaps = append(bidderMaps, buildItemMap(project))
	}

	ps := &model.PreisSpiegel{
		ProjectName: reference.PrjInfo.Name,
		Bidders:     bidders,
	}

	grandTotals := make([]decimal.Decimal, len(bidderPaths))

	if reference.BoQ != nil {
		a.traverse(reference.BoQ.Categories, "", bidderMaps, ps, grandTotals)
	}

	// A sum of exactly zero stays nil: a bidder who priced nothing (or only
	// zeros) has no meaningful grand total.
	ps.GrandTotals = make([]*decimal.Decimal, len(bidderPaths))
	for i := range grandTotals {
		if !grandTotals[i].IsZero() {
			total := grandTotals[i]
			ps.GrandTotals[i] = &total
		}
	}
	return ps, nil
}

// buildItemMap flattens a project to full ordinal -> item.
func buildItemMap(project *model.Project) map[string]*model.Item {
	result := make(map[string]*model.Item)
	if project.BoQ == nil {
		return result
	}
	var collect func(cat *model.Category, parentOZ string)
	collect = func(cat *model.Category, parentOZ string) {
		oz := cat.FullOrdinal(parentOZ)
		for _, sub := range cat.Subcategories {
			collect(sub, oz)
		}
		for _, item := range cat.Items {
			result[item.FullOrdinal(oz)] = item
		}
	}
	for _, cat := range project.BoQ.Categories {
		collect(cat, "")
	}
	return result
}

func (a *Aggregator) traverse(categories []*model.Category, parentOZ string,
	bidderMaps []map[string]*model.Item, ps *model.PreisSpiegel,
	grandTotals []decimal.Decimal) {

	for _, cat := range categories {
		oz := cat.FullOrdinal(parentOZ)
		catRow := &model.CategoryRow{OZ: oz, Label: cat.Label}
		ps.Rows = append(ps.Rows, model.Row{Category: catRow})

		a.traverse(cat.Subcategories, oz, bidderMaps, ps, grandTotals)

		for _, item := range cat.Items {
			fullOZ := item.FullOrdinal(oz)
			row := buildItemRow(fullOZ, item, bidderMaps)
			ps.Rows = append(ps.Rows, model.Row{Item: row})

			for i, tp := range row.TotalPrices {
				if tp != nil {
					grandTotals[i] = grandTotals[i].Add(*tp)
				}
			}
		}

		catRow.Totals = categoryTotals(cat, oz, bidderMaps)
	}
}

// buildItemRow joins one reference position against every bidder. The
// reference quantity is authoritative: a bidder's own total wins when
// present, otherwise it is reference quantity times bidder unit price.
func buildItemRow(fullOZ string, refItem *model.Item, bidderMaps []map[string]*model.Item) *model.ItemRow {
	n := len(bidderMaps)
	row := &model.ItemRow{
		OZ:          fullOZ,
		ShortText:   refItem.Description.OutlineText,
		Qty:         refItem.Qty,
		QU:          refItem.QU,
		UnitPrices:  make([]*decimal.Decimal, n),
		TotalPrices: make([]*decimal.Decimal, n),
		NotOffered:  make([]bool, n),
	}

	for i, bmap := range bidderMaps {
		bidderItem, ok := bmap[fullOZ]
		if !ok {
			continue
		}
		if bidderItem.NotOffered {
			row.NotOffered[i] = true
			continue
		}
		row.UnitPrices[i] = bidderItem.UP
		row.TotalPrices[i] = bidderTotal(bidderItem, refItem.Qty)
	}

	row.MinUP, row.MaxUP, row.AvgUP = unitPriceStats(row.UnitPrices)
	return row
}

// bidderTotal resolves one bidder's total for a position.
func bidderTotal(bidderItem *model.Item, refQty *decimal.Decimal) *decimal.Decimal {
	if bidderItem.IT != nil {
		return bidderItem.IT
	}
	if bidderItem.UP != nil && refQty != nil {
		total := refQty.Mul(*bidderItem.UP).Round(2)
		return &total
	}
	return nil
}

// unitPriceStats computes min, max and the 2dp-rounded average over the
// non-nil unit prices. All three are nil when no bidder priced the position.
func unitPriceStats(unitPrices []*decimal.Decimal) (minUP, maxUP, avgUP *decimal.Decimal) {
	sum := decimal.Zero
	count := 0
	for _, up := range unitPrices {
		if up == nil {
			continue
		}
		if minUP == nil || up.LessThan(*minUP) {
			minUP = up
		}
		if maxUP == nil || up.GreaterThan(*maxUP) {
			maxUP = up
		}
		sum = sum.Add(*up)
		count++
	}
	if count > 0 {
		avg := sum.Div(decimal.NewFromInt(int64(count))).Round(2)
		avgUP = &avg
	}
	return minUP, maxUP, avgUP
}

// categoryTotals sums all item totals beneath a category per bidder,
// recursively. A bidder without any priced position under the category
// stays nil.
func categoryTotals(cat *model.Category, oz string, bidderMaps []map[string]*model.Item) []*decimal.Decimal {
	n := len(bidderMaps)
	totals := make([]decimal.Decimal, n)
	hasAny := make([]bool, n)

	var walk func(c *model.Category, cOZ string)
	walk = func(c *model.Category, cOZ string) {
		for _, item := range c.Items {
			fullOZ := item.FullOrdinal(cOZ)
			for i, bmap := range bidderMaps {
				bidderItem, ok := bmap[fullOZ]
				if !ok || bidderItem.NotOffered {
					continue
				}
				if total := bidderTotal(bidderItem, item.Qty); total != nil {
					totals[i] = totals[i].Add(*total)
					hasAny[i] = true
				}
			}
		}
		for _, sub := range c.Subcategories {
			walk(sub, sub.FullOrdinal(cOZ))
		}
	}
	walk(cat, oz)

	result := make([]*decimal.Decimal, n)
	for i := range totals {
		if hasAny[i] {
			total := totals[i]
			result[i] = &total
		}
	}
	return result
}
