package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator satisfies echo.Validator.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return &Validator{v: v}
}

func (cv *Validator) Validate(i any) error {
	return cv.v.Struct(i)
}

// Missing lists the json names of fields that failed a "required" rule.
func Missing(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	var out []string
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			out = append(out, fe.Field())
		}
	}
	return out
}

func FormatValidationError(err error) map[string]string {
	out := make(map[string]string)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return out
	}
	for _, fe := range verrs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			out[field] = fmt.Sprintf("%s es obligatorio", field)
		case "gt":
			out[field] = fmt.Sprintf("%s debe ser mayor que %s", field, fe.Param())
		case "gte":
			out[field] = fmt.Sprintf("%s debe ser mayor o igual que %s", field, fe.Param())
		default:
			out[field] = fmt.Sprintf("%s no es valido", field)
		}
	}
	return out
}

// Message flattens a validation error into one line, fields sorted.
func Message(err error) string {
	m := FormatValidationError(err)
	if len(m) == 0 {
		return err.Error()
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, m[k])
	}
	return strings.Join(parts, "; ")
}
