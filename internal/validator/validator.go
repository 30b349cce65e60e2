// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"gastos/internal/models"
	"gastos/internal/uuid"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("expense_category", validateExpenseCategory)
		_ = v.RegisterValidation("iso_date", validateISODate)
		_ = v.RegisterValidation("record_id", validateRecordID)
	}
}

// validateExpenseCategory accepts canonical category names and their
// aliases, in any case.
func validateExpenseCategory(fl validator.FieldLevel) bool {
	_, ok := models.ParseCategory(fl.Field().String())
	return ok
}

// validateISODate accepts a YYYY-MM-DD calendar date.
func validateISODate(fl validator.FieldLevel) bool {
	_, err := models.ParseDate(fl.Field().String())
	return err == nil
}

func validateRecordID(fl validator.FieldLevel) bool {
	return uuid.IsValid(fl.Field().String())
}
