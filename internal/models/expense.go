package models

import (
	"time"

	"gastos/internal/money"
)

// DateLayout is the wire format of an expense date.
const DateLayout = "2006-01-02"

// Expense is a single spending record owned by exactly one user.
// Expenses are never updated in place.
type Expense struct {
	Base
	UserID      string       `gorm:"type:uuid;not null;index:idx_expenses_user_date,priority:1" json:"user_id"`
	Description string       `gorm:"size:100;not null" json:"description"`
	Amount      money.Amount `gorm:"type:bigint;not null" json:"amount"`
	Category    Category     `gorm:"size:32;not null;index" json:"category"`
	Date        time.Time    `gorm:"type:date;not null;index:idx_expenses_user_date,priority:2" json:"date"`
}

// ParseDate reads a YYYY-MM-DD calendar date as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// CalendarDate truncates t to midnight UTC of its own UTC calendar day.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
