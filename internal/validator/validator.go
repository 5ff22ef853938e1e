// Package validator validates create payloads before any request is
// sent, so obviously bad input never costs a network round-trip.
package validator

import (
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	apperrors "spendo/internal/errors"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// get returns the shared validator, registering custom handling on
// first use.
func get() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Expose decimal.Decimal to numeric rules (gt, gte) as float64.
		// Only used for sign checks, so the lossy conversion is fine.
		validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				return d.InexactFloat64()
			}
			return nil
		}, decimal.Decimal{})
	})
	return validate
}

// Struct validates a payload against its struct tags. Failures come
// back as INVALID_INPUT with the validator's detail attached.
func Struct(v interface{}) error {
	if err := get().Struct(v); err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, err)
	}
	return nil
}
