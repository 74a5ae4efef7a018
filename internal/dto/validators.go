package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterValidations installs the custom binding validators. Call once at
// startup before the first request is bound.
func RegisterValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("dgt0", decimalGreaterThanZero)
	}
}

// decimalGreaterThanZero validates that a decimal.Decimal field is strictly
// positive. The struct tag "required" alone would reject zero but admits
// negative amounts.
func decimalGreaterThanZero(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return value.GreaterThan(decimal.Zero)
}
