// utils/validation.go
package utils

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report fields by their form names so messages line up with the inputs
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// money accepts a non-negative decimal number of dollars that fits in int64 cents
	_ = v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		cents, err := DollarsToCents(fl.Field().String())
		return err == nil && cents >= 0
	})
	return v
}

// ValidateStruct checks s against its `validate` tags and returns the failing
// fields keyed by form name. Each field reports the text of its `msg` tag, or
// the validator's message when the tag is absent. A nil map means s is valid.
func ValidateStruct(s interface{}) (map[string][]string, error) {
	err := validate.Struct(s)
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}

	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		msg := fe.Error()
		if sf, ok := t.FieldByName(fe.StructField()); ok {
			if m := sf.Tag.Get("msg"); m != "" {
				msg = m
			}
		}
		fields[fe.Field()] = append(fields[fe.Field()], msg)
	}
	return fields, nil
}
