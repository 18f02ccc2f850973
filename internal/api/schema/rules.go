package schema

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var engine = newEngine()

func newEngine() *validator.Validate {
	v := validator.New()
	// domainsegments=N: the host part of an address has at least N labels.
	_ = v.RegisterValidation("domainsegments", func(fl validator.FieldLevel) bool {
		want, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		at := strings.LastIndex(fl.Field().String(), "@")
		if at < 0 {
			return false
		}
		labels := strings.Split(fl.Field().String()[at+1:], ".")
		for _, l := range labels {
			if l == "" {
				return false
			}
		}
		return len(labels) >= want
	})
	return v
}

// checkRules runs the validator tags against an already coerced value and
// returns the message of the first failing rule, or "".
func checkRules(value any, rules string) string {
	err := engine.Var(value, rules)
	if err == nil {
		return ""
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return "is invalid"
	}
	return ruleMessage(ve[0])
}

// ruleMessage renders a failed rule in the wording clients already rely on.
func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "email", "domainsegments":
		return "must be a valid email"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("length must be at least %s characters long", fe.Param())
		}
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("length must be less than or equal to %s characters long", fe.Param())
		}
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", strings.Join(strings.Fields(fe.Param()), ", "))
	default:
		return fmt.Sprintf("failed validation (%s)", fe.Tag())
	}
}
