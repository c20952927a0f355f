package writer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/insightdelivered/statement-converter/internal/models"
)

const headerFill = "E8F4FD"

// columnWidths per table, in character units.
var columnWidths = map[string][]float64{
	TableSummary:         {20, 25},
	TableDeposits:        {15, 40, 15},
	TableATMWithdrawals:  {15, 15, 40, 15},
	TableChecksPaid:      {15, 15, 15, 20},
	TableCardPurchases:   {15, 15, 40, 15},
	TableAllTransactions: {15, 18, 40, 15},
}

// XLSXWriter writes a statement as a workbook with one sheet per table.
type XLSXWriter struct{}

// WriteToFile writes the workbook to path.
func (w *XLSXWriter) WriteToFile(path string, st *models.Statement) error {
	f, err := w.build(st)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %q: %w", path, err)
	}
	return nil
}

// Write writes the workbook to out.
func (w *XLSXWriter) Write(out io.Writer, st *models.Statement) error {
	f, err := w.build(st)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (w *XLSXWriter) build(st *models.Statement) (*excelize.File, error) {
	f := excelize.NewFile()

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFill}},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, t := range Tables(st) {
		// The new workbook's default sheet becomes the first table.
		if i == 0 {
			err = f.SetSheetName(f.GetSheetName(0), t.Name)
		} else {
			_, err = f.NewSheet(t.Name)
		}
		if err == nil {
			err = writeSheet(f, t, style)
		}
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write sheet %q: %w", t.Name, err)
		}
	}
	f.SetActiveSheet(0)

	return f, nil
}

func writeSheet(f *excelize.File, t Table, headerStyle int) error {
	header := t.Header
	if err := f.SetSheetRow(t.Name, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(t.Header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(t.Name, "A1", last, headerStyle); err != nil {
		return err
	}

	for i := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := t.Rows[i]
		if err := f.SetSheetRow(t.Name, cell, &row); err != nil {
			return err
		}
	}

	for i, width := range columnWidths[t.Name] {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(t.Name, col, col, width); err != nil {
			return err
		}
	}
	return nil
}
