package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/idelchi/gogen/pkg/validator"
)

// registerValidations adds the cross-field validations used by Config together with their messages.
// Field names in messages are taken from the `label` tag, so errors refer to flags.
func registerValidations(validator *validator.Validator) error {
	if err := validator.RegisterValidationAndTranslation(
		"exclusive",
		validateExclusive,
		"{0} and {1} are mutually exclusive",
	); err != nil {
		return fmt.Errorf("registering exclusive validation: %w", err)
	}

	if err := validator.RegisterValidationAndTranslation(
		"either",
		validateEither,
		"one of {0} or {1} is required",
	); err != nil {
		return fmt.Errorf("registering either validation: %w", err)
	}

	validator.Validator().RegisterTagNameFunc(labelOf)

	return nil
}

// labelOf returns the label tag of a field, or its Go name if none is set.
func labelOf(fld reflect.StructField) string {
	const splitSize = 2

	name := strings.SplitN(fld.Tag.Get("label"), ",", splitSize)[0]
	if name == "-" || name == "" {
		return fld.Name
	}

	return name
}

// validateExclusive returns false if both the field and the sibling labelled by the param are set.
func validateExclusive(fl validator.FieldLevel) bool {
	other, ok := sibling(fl.Parent(), fl.Param())
	if !ok {
		return true
	}

	return fl.Field().IsZero() || other.IsZero()
}

// validateEither returns false if neither the field nor the sibling labelled by the param is set.
func validateEither(fl validator.FieldLevel) bool {
	other, ok := sibling(fl.Parent(), fl.Param())
	if !ok {
		return true
	}

	return !fl.Field().IsZero() || !other.IsZero()
}

// sibling finds the field of parent carrying the given label.
func sibling(parent reflect.Value, label string) (reflect.Value, bool) {
	if parent.Kind() == reflect.Ptr {
		parent = parent.Elem()
	}

	if parent.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}

	typ := parent.Type()

	for i := range typ.NumField() {
		if labelOf(typ.Field(i)) == label {
			return parent.Field(i), true
		}
	}

	return reflect.Value{}, false
}
