package forms

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"lumarise-backend/models"
)

var validate = validator.New()

// maxMoney keeps values inside decimal(10,2).
var maxMoney = decimal.New(1, 8)

func Text[T any](name string, max int, set func(*T, string)) Field[T] {
	return Field[T]{Name: name, parse: func(raw *string) (func(*T), error) {
		if raw == nil {
			return nil, errNull
		}
		value := trimmed(raw)
		if err := checkLength(value, max); err != nil {
			return nil, err
		}
		return func(t *T) { set(t, value) }, nil
	}}
}

// NullableText stores nil for JSON null and for an empty string.
func NullableText[T any](name string, max int, set func(*T, *string)) Field[T] {
	return Field[T]{Name: name, parse: func(raw *string) (func(*T), error) {
		if raw == nil || trimmed(raw) == "" {
			return func(t *T) { set(t, nil) }, nil
		}
		value := trimmed(raw)
		if err := checkLength(value, max); err != nil {
			return nil, err
		}
		return func(t *T) { set(t, &value) }, nil
	}}
}

func checkLength(value string, max int) error {
	if max <= 0 {
		return nil
	}
	if err := validate.Var(value, fmt.Sprintf("max=%d", max)); err != nil {
		return fmt.Errorf("Ensure this field has no more than %d characters.", max)
	}
	return nil
}

// Int accepts whole numbers not below min.
func Int[T any](name string, min int, set func(*T, int)) Field[T] {
	return Field[T]{Name: name, parse: func(raw *string) (func(*T), error) {
		if raw == nil {
			return nil, errNull
		}
		n, err := strconv.Atoi(trimmed(raw))
		if err != nil {
			return nil, errors.New("A valid integer is required.")
		}
		if err := validate.Var(n, fmt.Sprintf("gte=%d", min)); err != nil {
			return nil, fmt.Errorf("Ensure this value is greater than or equal to %d.", min)
		}
		return func(t *T) { set(t, n) }, nil
	}}
}

func Bool[T any](name string, set func(*T, bool)) Field[T] {
	return Field[T]{Name: name, parse: func(raw *string) (func(*T), error) {
		if raw == nil {
			return nil, errNull
		}
		var b bool
		switch strings.ToLower(trimmed(raw)) {
		case "true", "1", "on", "yes":
			b = true
		case "false", "0", "off", "no", "":
			b = false
		default:
			return nil, errors.New("Must be a valid boolean.")
		}
		return func(t *T) { set(t, b) }, nil
	}}
}

// Money accepts decimals with at most two places that fit decimal(10,2).
func Money[T any](name string, set func(*T, decimal.Decimal)) Field[T] {
	return Field[T]{Name: name, parse: func(raw *string) (func(*T), error) {
		if raw == nil {
			return nil, errNull
		}
		d, err := decimal.NewFromString(trimmed(raw))
		if err != nil {
			return nil, errors.New("A valid number is required.")
		}
		if !d.Equal(d.Round(2)) {
			return nil, errors.New("Ensure that there are no more than 2 decimal places.")
		}
		if d.Abs().GreaterThanOrEqual(maxMoney) {
			return nil, errors.New("Ensure that there are no more than 10 digits in total.")
		}
		return func(t *T) { set(t, d.Round(2)) }, nil
	}}
}

func Date[T any](name string, set func(*T, datatypes.Date)) Field[T] {
	return Field[T]{Name: name, parse: func(raw *string) (func(*T), error) {
		if raw == nil {
			return nil, errNull
		}
		d, err := models.ParseDate(*raw)
		if err != nil {
			return nil, errors.New("Date has wrong format. Use one of these formats instead: YYYY-MM-DD.")
		}
		return func(t *T) { set(t, d) }, nil
	}}
}

func NullableDate[T any](name string, set func(*T, *datatypes.Date)) Field[T] {
	return Field[T]{Name: name, parse: func(raw *string) (func(*T), error) {
		if raw == nil || trimmed(raw) == "" {
			return func(t *T) { set(t, nil) }, nil
		}
		d, err := models.ParseDate(*raw)
		if err != nil {
			return nil, errors.New("Date has wrong format. Use one of these formats instead: YYYY-MM-DD.")
		}
		return func(t *T) { set(t, &d) }, nil
	}}
}

func Email[T any](name string, set func(*T, string)) Field[T] {
	return Field[T]{Name: name, parse: func(raw *string) (func(*T), error) {
		if raw == nil {
			return nil, errNull
		}
		value := trimmed(raw)
		if err := validate.Var(value, "required,email,max=254"); err != nil {
			return nil, errors.New("Enter a valid email address.")
		}
		return func(t *T) { set(t, value) }, nil
	}}
}

// Choice accepts one of a fixed set of values, compared exactly.
func Choice[T any](name string, choices []string, set func(*T, string)) Field[T] {
	return Field[T]{Name: name, parse: func(raw *string) (func(*T), error) {
		if raw == nil {
			return nil, errNull
		}
		value := trimmed(raw)
		if !slices.Contains(choices, value) {
			return nil, fmt.Errorf("%q is not a valid choice.", value)
		}
		return func(t *T) { set(t, value) }, nil
	}}
}

// NullableID accepts a primary key or null/empty for "no relation".
func NullableID[T any](name string, set func(*T, *uint)) Field[T] {
	return Field[T]{Name: name, parse: func(raw *string) (func(*T), error) {
		if raw == nil || trimmed(raw) == "" {
			return func(t *T) { set(t, nil) }, nil
		}
		n, err := strconv.ParseUint(trimmed(raw), 10, 64)
		if err != nil || n == 0 {
			return nil, errors.New("Incorrect type. Expected pk value.")
		}
		id := uint(n)
		return func(t *T) { set(t, &id) }, nil
	}}
}
