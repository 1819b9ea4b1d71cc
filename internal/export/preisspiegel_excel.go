// =============================================================================
// GAEB Converter - Preisspiegel Excel Export
// =============================================================================
//
// Writes a price comparison as a styled .xlsx workbook: one column block per
// bidder (unit price, total price), min/max/average statistics on the right,
// category rows with their per-bidder subtotals, and a grand total line.
// Lowest and highest unit prices are highlighted when more than one bidder
// competes.
//
// =============================================================================

package export

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/gaebtools/gaebconv/internal/model"
)

const (
	priceFormat = "#,##0.00"
	qtyFormat   = "#,##0.000"
)

type excelStyles struct {
	title       int
	subtitle    int
	colHeader   int
	category    int
	categoryNum int
	price       int
	priceMin    int
	priceMax    int
	qty         int
	grandLabel  int
	grandNum    int
}

// WritePreisspiegelExcel exports the comparison to an .xlsx file at path.
func WritePreisspiegelExcel(ps *model.PreisSpiegel, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Preisspiegel"
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		return fmt.Errorf("set sheet name: %w", err)
	}

	styles, err := buildStyles(f)
	if err != nil {
		return err
	}

	n := len(ps.Bidders)
	headers := headerRow(ps)

	if err := setColumnWidths(f, sheet, headers); err != nil {
		return err
	}

	setCell(f, sheet, 1, 1, ps.ProjectName, styles.title)
	setCell(f, sheet, 1, 2, "Preisspiegel", styles.subtitle)

	row := 4
	for col, header := range headers {
		setCell(f, sheet, col+1, row, header, styles.colHeader)
	}
	row++

	for _, r := range ps.Rows {
		if r.Category != nil {
			writeCategoryRow(f, sheet, r.Category, len(headers), row, styles)
		} else if r.Item != nil {
			writeItemRow(f, sheet, r.Item, n, row, styles)
		}
		row++
	}

	if len(ps.GrandTotals) > 0 {
		setCell(f, sheet, 1, row, "Gesamtsumme", styles.grandLabel)
		for i, total := range ps.GrandTotals {
			if total != nil {
				setDecimal(f, sheet, gpColumn(i), row, total, styles.grandNum)
			}
		}
	}

	return f.SaveAs(path)
}

// headerRow builds OZ/Kurztext/Menge/Einheit, one EP and GP column pair per
// bidder, then the statistics columns.
func headerRow(ps *model.PreisSpiegel) []string {
	headers := []string{"OZ", "Kurztext", "Menge", "Einheit"}
	for _, bidder := range ps.Bidders {
		headers = append(headers, bidder.Name+" EP", bidder.Name+" GP")
	}
	return append(headers, "Min EP", "Max EP", "Avg EP")
}

// gpColumn returns the 1-based total price column for bidder i.
func gpColumn(i int) int {
	return 4 + i*2 + 2
}

func writeCategoryRow(f *excelize.File, sheet string, cat *model.CategoryRow, totalCols, row int, styles excelStyles) {
	setCell(f, sheet, 1, row, cat.OZ, styles.category)
	setCell(f, sheet, 2, row, cat.Label, styles.category)
	for col := 3; col <= totalCols; col++ {
		setCell(f, sheet, col, row, nil, styles.category)
	}
	for i, total := range cat.Totals {
		if total != nil {
			setDecimal(f, sheet, gpColumn(i), row, total, styles.categoryNum)
		}
	}
}

func writeItemRow(f *excelize.File, sheet string, item *model.ItemRow, n, row int, styles excelStyles) {
	setCell(f, sheet, 1, row, item.OZ, 0)
	setCell(f, sheet, 2, row, item.ShortText, 0)
	if item.Qty != nil {
		setDecimal(f, sheet, 3, row, item.Qty, styles.qty)
	}
	setCell(f, sheet, 4, row, item.QU, 0)

	col := 5
	for i := 0; i < n; i++ {
		switch {
		case item.NotOffered[i]:
			setCell(f, sheet, col, row, "n.a.", 0)
		case item.UnitPrices[i] != nil:
			style := styles.price
			if n > 1 && item.MinUP != nil && item.UnitPrices[i].Equal(*item.MinUP) {
				style = styles.priceMin
			} else if n > 1 && item.MaxUP != nil && item.UnitPrices[i].Equal(*item.MaxUP) {
				style = styles.priceMax
			}
			setDecimal(f, sheet, col, row, item.UnitPrices[i], style)
		}
		col++

		switch {
		case item.NotOffered[i]:
			setCell(f, sheet, col, row, "n.a.", 0)
		case item.TotalPrices[i] != nil:
			setDecimal(f, sheet, col, row, item.TotalPrices[i], styles.price)
		}
		col++
	}

	if item.MinUP != nil {
		setDecimal(f, sheet, col, row, item.MinUP, styles.price)
	}
	if item.MaxUP != nil {
		setDecimal(f, sheet, col+1, row, item.MaxUP, styles.price)
	}
	if item.AvgUP != nil {
		setDecimal(f, sheet, col+2, row, item.AvgUP, styles.price)
	}
}

func setCell(f *excelize.File, sheet string, col, row int, value interface{}, styleID int) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return
	}
	if value != nil {
		f.SetCellValue(sheet, cell, value)
	}
	if styleID != 0 {
		f.SetCellStyle(sheet, cell, cell, styleID)
	}
}

func setDecimal(f *excelize.File, sheet string, col, row int, d *decimal.Decimal, styleID int) {
	value, _ := d.Float64()
	setCell(f, sheet, col, row, value, styleID)
}

func setColumnWidths(f *excelize.File, sheet string, headers []string) error {
	widths := map[string]float64{"OZ": 14, "Kurztext": 30, "Menge": 12, "Einheit": 10}
	for i, header := range headers {
		width, ok := widths[header]
		if !ok {
			width = 14
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return fmt.Errorf("set col width %s: %w", col, err)
		}
	}
	return nil
}

func buildStyles(f *excelize.File) (excelStyles, error) {
	var s excelStyles
	var err error

	price := priceFormat
	qty := qtyFormat

	if s.title, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
	}); err != nil {
		return s, fmt.Errorf("create title style: %w", err)
	}

	if s.subtitle, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	}); err != nil {
		return s, fmt.Errorf("create subtitle style: %w", err)
	}

	if s.colHeader, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 10, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			WrapText:   true,
		},
	}); err != nil {
		return s, fmt.Errorf("create header style: %w", err)
	}

	categoryFill := excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1}

	if s.category, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 10},
		Fill: categoryFill,
	}); err != nil {
		return s, fmt.Errorf("create category style: %w", err)
	}

	if s.categoryNum, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true, Size: 10},
		Fill:         categoryFill,
		CustomNumFmt: &price,
	}); err != nil {
		return s, fmt.Errorf("create category number style: %w", err)
	}

	if s.price, err = f.NewStyle(&excelize.Style{
		CustomNumFmt: &price,
	}); err != nil {
		return s, fmt.Errorf("create price style: %w", err)
	}

	if s.priceMin, err = f.NewStyle(&excelize.Style{
		Fill:         excelize.Fill{Type: "pattern", Color: []string{"#C6EFCE"}, Pattern: 1},
		CustomNumFmt: &price,
	}); err != nil {
		return s, fmt.Errorf("create min price style: %w", err)
	}

	if s.priceMax, err = f.NewStyle(&excelize.Style{
		Fill:         excelize.Fill{Type: "pattern", Color: []string{"#FFC7CE"}, Pattern: 1},
		CustomNumFmt: &price,
	}); err != nil {
		return s, fmt.Errorf("create max price style: %w", err)
	}

	if s.qty, err = f.NewStyle(&excelize.Style{
		CustomNumFmt: &qty,
	}); err != nil {
		return s, fmt.Errorf("create quantity style: %w", err)
	}

	if s.grandLabel, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 10},
	}); err != nil {
		return s, fmt.Errorf("create grand total label style: %w", err)
	}

	if s.grandNum, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true, Size: 10},
		CustomNumFmt: &price,
	}); err != nil {
		return s, fmt.Errorf("create grand total number style: %w", err)
	}

	return s, nil
}
