// Package aggregate derives the dashboard views from one user's expenses.
//
// Everything here is pure: the functions read the slice they are given,
// keep no state between calls and are cheap enough to rerun on every
// change to the list.
package aggregate

import (
	"gastos/internal/models"
	"gastos/internal/money"
)

// MonthsPerYear is the number of month buckets.
const MonthsPerYear = 12

// Summary bundles both grouped views of an expense list.
type Summary struct {
	ByCategory  map[models.Category]money.Amount `json:"by_category"`
	ByMonth     map[int]money.Amount             `json:"by_month"`
	MonthSeries [MonthsPerYear]money.Amount      `json:"month_series"`
	Total       money.Amount                     `json:"total"`
	Count       int                              `json:"count"`
}

// TotalsByCategory sums amounts per category. Categories with no expenses
// are absent from the result.
func TotalsByCategory(expenses []models.Expense) map[models.Category]money.Amount {
	totals := make(map[models.Category]money.Amount)
	for _, e := range expenses {
		totals[e.Category] += e.Amount
	}
	return totals
}

// TotalsByMonth sums amounts per month of year, keyed 0 (January) to 11
// (December). The month comes from the date's UTC calendar components, so
// the bucket never depends on the server's local zone. Years are ignored:
// January 2023 and January 2024 share bucket 0. Expenses with a zero date
// are skipped.
func TotalsByMonth(expenses []models.Expense) map[int]money.Amount {
	totals := make(map[int]money.Amount)
	for _, e := range expenses {
		month, ok := MonthIndex(e)
		if !ok {
			continue
		}
		totals[month] += e.Amount
	}
	return totals
}

// MonthIndex returns the 0-based UTC month of the expense date, or false
// when the expense has no usable date.
func MonthIndex(e models.Expense) (int, bool) {
	if e.Date.IsZero() {
		return 0, false
	}
	return int(e.Date.UTC().Month()) - 1, true
}

// MonthSeries lays a month mapping out as twelve slots, zero-filled.
func MonthSeries(byMonth map[int]money.Amount) [MonthsPerYear]money.Amount {
	var series [MonthsPerYear]money.Amount
	for month, amount := range byMonth {
		if month < 0 || month >= MonthsPerYear {
			continue
		}
		series[month] = amount
	}
	return series
}

// FillCategories returns a copy of totals holding every category of the
// closed set, with zero for the ones that had no expenses.
func FillCategories(totals map[models.Category]money.Amount) map[models.Category]money.Amount {
	filled := make(map[models.Category]money.Amount, len(models.Categories))
	for _, c := range models.Categories {
		filled[c] = totals[c]
	}
	return filled
}

// Total sums every amount in the list.
func Total(expenses []models.Expense) money.Amount {
	var total money.Amount
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}

// Summarize computes every view of expenses.
func Summarize(expenses []models.Expense) Summary {
	byMonth := TotalsByMonth(expenses)
	return Summary{
		ByCategory:  TotalsByCategory(expenses),
		ByMonth:     byMonth,
		MonthSeries: MonthSeries(byMonth),
		Total:       Total(expenses),
		Count:       len(expenses),
	}
}
