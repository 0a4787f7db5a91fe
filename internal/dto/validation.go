package dto

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// DecimalPositive reports whether a decimal field is strictly positive. It
// backs the "dpositive" binding tag; "gt=0" cannot see inside decimal.Decimal.
func DecimalPositive(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return d.IsPositive()
}
