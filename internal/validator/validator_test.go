package validator

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type expenseInput struct {
	Category string `binding:"required,expense_category"`
	Date     string `binding:"required,iso_date"`
	UserID   string `binding:"omitempty,record_id"`
}

func init() {
	Register()
}

func validate(t *testing.T, in expenseInput) error {
	t.Helper()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		t.Fatal("gin binding engine is not go-playground/validator")
	}
	return v.Struct(in)
}

func TestExpenseCategory(t *testing.T) {
	tests := []struct {
		category string
		valid    bool
	}{
		{"Transport", true},
		{"transport", true},
		{"Supermercado", true},
		{"TARJETA", true},
		{"Food", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			err := validate(t, expenseInput{Category: tt.category, Date: "2024-01-01"})
			if tt.valid && err != nil {
				t.Errorf("expected %q to be valid, got %v", tt.category, err)
			}
			if !tt.valid && err == nil {
				t.Errorf("expected %q to be rejected", tt.category)
			}
		})
	}
}

func TestISODate(t *testing.T) {
	tests := []struct {
		date  string
		valid bool
	}{
		{"2024-02-29", true},
		{"2023-02-29", false},
		{"2024-13-01", false},
		{"01/02/2024", false},
		{"2024-01-01T10:00:00Z", false},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			err := validate(t, expenseInput{Category: "Other", Date: tt.date})
			if tt.valid && err != nil {
				t.Errorf("expected %q to be valid, got %v", tt.date, err)
			}
			if !tt.valid && err == nil {
				t.Errorf("expected %q to be rejected", tt.date)
			}
		})
	}
}

func TestRecordID(t *testing.T) {
	if err := validate(t, expenseInput{Category: "Other", Date: "2024-01-01", UserID: "not-a-uuid"}); err == nil {
		t.Error("expected malformed user id to be rejected")
	}
	if err := validate(t, expenseInput{Category: "Other", Date: "2024-01-01", UserID: "0190a6f2-0000-7000-8000-000000000000"}); err != nil {
		t.Errorf("expected uuid to be accepted, got %v", err)
	}
}
