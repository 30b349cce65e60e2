// Package export renders a user's expenses as an XLSX workbook.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"gastos/internal/models"
	"gastos/internal/money"
)

// ContentType is the MIME type of the generated workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	ExpensesSheet = "Expenses"
	TotalsSheet   = "Totals"
)

var expenseHeaders = []string{"Date", "Description", "Category", "Amount"}

// WriteXLSX writes a workbook with one row per expense on the Expenses
// sheet and the category totals, every category included, on the Totals
// sheet.
func WriteXLSX(w io.Writer, expenses []models.Expense, totals map[models.Category]money.Amount) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExpensesSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeHeaders(f, ExpensesSheet, expenseHeaders); err != nil {
		return err
	}

	for i, e := range expenses {
		row := i + 2
		values := []interface{}{
			e.Date.Format(models.DateLayout),
			e.Description,
			string(e.Category),
			e.Amount.Float64(),
		}
		if err := f.SetSheetRow(ExpensesSheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return fmt.Errorf("write expense row %d: %w", row, err)
		}
	}

	if _, err := f.NewSheet(TotalsSheet); err != nil {
		return fmt.Errorf("create totals sheet: %w", err)
	}
	if err := writeHeaders(f, TotalsSheet, []string{"Category", "Total"}); err != nil {
		return err
	}

	var grand money.Amount
	row := 2
	for _, c := range models.Categories {
		amount := totals[c]
		grand += amount
		f.SetCellValue(TotalsSheet, fmt.Sprintf("A%d", row), string(c))
		f.SetCellValue(TotalsSheet, fmt.Sprintf("B%d", row), amount.Float64())
		row++
	}
	f.SetCellValue(TotalsSheet, fmt.Sprintf("A%d", row), "Total")
	f.SetCellValue(TotalsSheet, fmt.Sprintf("B%d", row), grand.Float64())

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeHeaders(f *excelize.File, sheet string, headers []string) error {
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	return nil
}

// FileName returns the attachment name for an export taken at the given
// date stamp (YYYYMMDD).
func FileName(stamp string) string {
	return fmt.Sprintf("gastos_%s.xlsx", stamp)
}
