package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

const (
	scaleRules       = "required,min=1,dive,finite,gte=0"
	breakpointsRules = "required,min=1,dive,keys,required,breakpoint_name,endkeys,media_query"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// validatorInstance configures and returns the shared validator instance used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
			f := fl.Field().Float()
			return !math.IsNaN(f) && !math.IsInf(f, 0)
		})

		_ = v.RegisterValidation("breakpoint_name", func(fl validator.FieldLevel) bool {
			name := fl.Field().String()
			return strings.TrimSpace(name) == name && !strings.ContainsAny(name, " \t\n")
		})

		_ = v.RegisterValidation("media_query", func(fl validator.FieldLevel) bool {
			return isPlausibleQuery(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// GetValidator returns a configured validator instance for use outside the config package.
func GetValidator() *validator.Validate {
	return validatorInstance()
}

// FieldMessage renders one validator failure as a short message without the field name.
func FieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%q must be one of %s", fmt.Sprint(fe.Value()), fe.Param())
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	case "min":
		return fmt.Sprintf("must have at least %s entries", fe.Param())
	case "required":
		return "must not be empty"
	case "finite":
		return "must be a finite number"
	case "breakpoint_name":
		return "must not contain whitespace"
	case "media_query":
		return "must be a non-blank media query with balanced parentheses"
	default:
		return fmt.Sprintf("failed %s", fe.Tag())
	}
}

// describe renders the first failure in err as "field[index] message".
func describe(field string, err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err.Error()
	}
	first := fieldErrs[0]
	return field + first.Namespace() + " " + FieldMessage(first)
}

// isPlausibleQuery accepts any non-blank string with balanced parentheses.
// Full parsing belongs to the host; features it does not know simply never match.
func isPlausibleQuery(query string) bool {
	if strings.TrimSpace(query) == "" {
		return false
	}

	depth := 0
	for _, r := range query {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

func validateScale(scale []float64) error {
	return validatorInstance().Var(scale, scaleRules)
}

func validateBreakpoints(breakpoints map[string]string) error {
	return validatorInstance().Var(breakpoints, breakpointsRules)
}
