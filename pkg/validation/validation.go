// Package validation checks request shapes before any side effect and
// turns validator failures into per-field violations.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"storefront/pkg/apperror"
	"storefront/pkg/optional"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type Validator struct {
	validate *validator.Validate
}

// New returns a validator that reports JSON field names and understands
// decimal.Decimal and optional.Field values.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	_ = v.RegisterValidation("price", validPrice)
	v.RegisterCustomTypeFunc(optionalValue,
		optional.Field[string]{},
		optional.Field[bool]{},
		optional.Field[int64]{},
		optional.Field[[]int64]{},
		optional.Field[decimal.Decimal]{},
	)

	return &Validator{validate: v}
}

// Prices are stored as NUMERIC(12,2).
const priceScale = 2

var maxPrice = decimal.New(1, 10)

// decimalValue hands decimals to the validator in their exact string form
// so no precision is lost before the price rule runs.
func decimalValue(v reflect.Value) any {
	if d, ok := v.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

// validPrice accepts a positive amount below maxPrice with at most
// priceScale fractional digits.
func validPrice(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	d, err := decimal.NewFromString(field.String())
	if err != nil {
		return false
	}
	return d.IsPositive() && d.LessThan(maxPrice) && -d.Exponent() <= priceScale
}

// optionalValue hands a pointer to the wrapped value to the validator, or
// nil when the field was absent or null so omitempty skips it. The pointer
// keeps zero values such as "" or 0 subject to the remaining rules.
func optionalValue(v reflect.Value) any {
	switch f := v.Interface().(type) {
	case optional.Field[string]:
		if f.Present() {
			return &f.Value
		}
	case optional.Field[bool]:
		if f.Present() {
			return &f.Value
		}
	case optional.Field[int64]:
		if f.Present() {
			return &f.Value
		}
	case optional.Field[[]int64]:
		if f.Present() {
			return &f.Value
		}
	case optional.Field[decimal.Decimal]:
		if f.Present() {
			price := f.Value.String()
			return &price
		}
	}
	return nil
}

// Struct validates s and returns an *apperror.Error of kind validation
// describing every rejected field.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.Internal("failed to validate request", err)
	}

	return apperror.Validation("request validation failed", Violations(verrs)...)
}

// Var validates a single value against tag, reporting it under field.
func (v *Validator) Var(field string, value any, tag string) error {
	err := v.validate.Var(value, tag)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.Internal("failed to validate value", err)
	}

	violations := Violations(verrs)
	for i := range violations {
		violations[i].Field = field
		violations[i].Message = strings.Replace(violations[i].Message, "value", field, 1)
	}
	return apperror.Validation("request validation failed", violations...)
}

// Engine exposes the underlying validator for callers that need to
// register extra rules.
func (v *Validator) Engine() *validator.Validate {
	return v.validate
}

func Violations(verrs validator.ValidationErrors) []apperror.FieldViolation {
	out := make([]apperror.FieldViolation, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if field == "" {
			field = "value"
		}
		out = append(out, apperror.FieldViolation{
			Field:   field,
			Rule:    fe.Tag(),
			Param:   fe.Param(),
			Message: message(field, fe),
		})
	}
	return out
}

func message(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "min":
		if k := fe.Kind(); k == reflect.Slice || k == reflect.Array {
			return fmt.Sprintf("%s must contain at least %s item(s)", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "price":
		return fmt.Sprintf("%s must be a positive amount below %s with at most %d decimal places", field, maxPrice, priceScale)
	default:
		return fmt.Sprintf("%s failed on the '%s' rule", field, fe.Tag())
	}
}
