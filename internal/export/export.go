// Package export renders a ledger view as an .xlsx workbook.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"splitter/internal/core"
	"splitter/internal/format"
	"splitter/internal/ledger"
)

// SheetName is the single worksheet in every export.
const SheetName = "Expenses"

// ContentType is the MIME type of the generated workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var headers = []string{"ID", "Date", "Description", "Category", "Amount", "You", "Friend 1", "Friend 2", "Split", "Notes", "Created"}

// Filename names an export of category taken at t. An empty category
// reads as "all".
func Filename(t time.Time, category core.Category) string {
	label := "all"
	if category != "" {
		label = category.String()
	}
	return fmt.Sprintf("expenses_%s_%s.xlsx", label, t.Format("20060102_150405"))
}

// Workbook builds a workbook holding the projected rows of v and a summary
// row with the ledger-wide totals. Callers must Close the returned file.
func Workbook(v ledger.View) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F46E5"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("header style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("money style: %w", err)
	}
	summaryStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E0E7FF"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("summary style: %w", err)
	}

	_ = f.SetColWidth(SheetName, "A", "A", 6)
	_ = f.SetColWidth(SheetName, "B", "B", 14)
	_ = f.SetColWidth(SheetName, "C", "C", 30)
	_ = f.SetColWidth(SheetName, "D", "I", 14)
	_ = f.SetColWidth(SheetName, "J", "J", 30)
	_ = f.SetColWidth(SheetName, "K", "K", 22)

	if err := f.SetSheetRow(SheetName, "A1", &headers); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}
	_ = f.SetCellStyle(SheetName, "A1", "K1", headerStyle)

	for i, e := range v.Items {
		row := i + 2
		cell, _ := excelize.CoordinatesToCellName(1, row)
		values := []any{
			e.ID,
			format.Date(e.Date),
			e.Description,
			e.Category.String(),
			e.Amount,
			e.Participants[0],
			e.Participants[1],
			e.Participants[2],
			e.SplitAmount,
			e.Notes,
			e.CreatedAt.Format(time.RFC3339),
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d: %w", row, err)
		}
		_ = f.SetCellStyle(SheetName, fmt.Sprintf("E%d", row), fmt.Sprintf("E%d", row), moneyStyle)
		_ = f.SetCellStyle(SheetName, fmt.Sprintf("I%d", row), fmt.Sprintf("I%d", row), moneyStyle)
	}

	summaryRow := len(v.Items) + 3
	summary := []any{
		"Total", "", fmt.Sprintf("%d expenses", v.Totals.Count), "",
		v.Totals.Total, "", "", "", v.Totals.YourShare,
	}
	cell, _ := excelize.CoordinatesToCellName(1, summaryRow)
	if err := f.SetSheetRow(SheetName, cell, &summary); err != nil {
		f.Close()
		return nil, fmt.Errorf("write summary: %w", err)
	}
	_ = f.SetCellStyle(SheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("K%d", summaryRow), summaryStyle)

	return f, nil
}

// Write streams the workbook for v to w.
func Write(w io.Writer, v ledger.View) error {
	f, err := Workbook(v)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
