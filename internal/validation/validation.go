// Package validation is the declarative request validation layer.
//
// A request payload declares an ordered list of field rules. Each rule names
// a body field, whether it may be absent, the checks the value must pass and
// the sanitizers applied once the whole body is valid. Every rule is
// evaluated independently and all failures are reported together, as
// {field, error} pairs, before the handler runs.
//
// Checks are go-playground/validator tags evaluated against the raw decoded
// value, so the catalog includes the library's built-ins (email, url, oneof)
// plus the custom tags registered here (notempty, isstring, isarray,
// floatmin).
package validation

import (
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/deppfellow/portfolio-api/internal/errs"
	"github.com/go-playground/validator/v10"
)

// Check is one predicate of a rule: a validator tag and the message reported
// when the value fails it.
type Check struct {
	Tag     string
	Message string
}

// Sanitizer rewrites a valid value before the handler sees it.
type Sanitizer func(value any) any

// Rule validates and sanitizes a single body field.
//
// Checks run in order and stop at the first failure for that field, so a
// type check can guard the format checks that follow it.
type Rule struct {
	Field      string
	Optional   bool
	Checks     []Check
	Sanitizers []Sanitizer
}

// Rules is the ordered rule set of a request payload.
type Rules []Rule

// Validatable is implemented by request payloads.
type Validatable interface {
	Rules() Rules
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	mustRegister(v, "notempty", notEmpty)
	mustRegister(v, "isstring", isString)
	mustRegister(v, "isarray", isArray)
	mustRegister(v, "floatmin", floatMin)
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// Apply evaluates rules against body and returns every failing field.
//
// An absent (or null) required field fails with its first check's message.
// An absent optional field is skipped; a present optional field must pass
// all of its checks.
func Apply(rules Rules, body map[string]any) []errs.FieldError {
	var fieldErrors []errs.FieldError

	for _, rule := range rules {
		value, present := body[rule.Field]
		if !present || value == nil {
			if rule.Optional || len(rule.Checks) == 0 {
				continue
			}
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: rule.Field,
				Error: rule.Checks[0].Message,
			})
			continue
		}

		for _, check := range rule.Checks {
			if err := validate.Var(value, check.Tag); err != nil {
				fieldErrors = append(fieldErrors, errs.FieldError{
					Field: rule.Field,
					Error: check.Message,
				})
				break
			}
		}
	}

	return fieldErrors
}

// Sanitize runs each present field's sanitizers in order, mutating body.
func Sanitize(rules Rules, body map[string]any) {
	for _, rule := range rules {
		value, present := body[rule.Field]
		if !present || value == nil {
			continue
		}
		for _, sanitize := range rule.Sanitizers {
			value = sanitize(value)
		}
		body[rule.Field] = value
	}
}

func notEmpty(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.String:
		return strings.TrimSpace(field.String()) != ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return field.Len() > 0
	}
	return true
}

func isString(fl validator.FieldLevel) bool {
	return fl.Field().Kind() == reflect.String
}

func isArray(fl validator.FieldLevel) bool {
	kind := fl.Field().Kind()
	return kind == reflect.Slice || kind == reflect.Array
}

// floatMin accepts numbers and numeric strings not below the tag parameter.
func floatMin(fl validator.FieldLevel) bool {
	minimum, err := strconv.ParseFloat(fl.Param(), 64)
	if err != nil {
		return false
	}

	value, ok := toFloat(fl.Field())
	if !ok || math.IsNaN(value) || math.IsInf(value, 0) {
		return false
	}
	return value >= minimum
}

func toFloat(field reflect.Value) (float64, bool) {
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		return field.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(field.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(field.Uint()), true
	case reflect.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(field.String()), 64)
		return f, err == nil
	}
	return 0, false
}
