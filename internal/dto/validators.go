package dto

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// decimalGT0 validates that a decimal.Decimal field is strictly positive.
// Binding tags like gt=0 do not understand decimal.Decimal, so amounts use
// the custom `decimalgt0` tag instead.
func decimalGT0(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return d.GreaterThan(decimal.Zero)
}

// RegisterValidations registers the package's custom validators on the given
// validator engine (gin's binding engine in practice).
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation("decimalgt0", decimalGT0)
}
