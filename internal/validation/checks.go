package validation

import (
	"fmt"
	"html"
	"strconv"
	"strings"
)

// NotEmpty requires a non-blank value.
func NotEmpty(message string) Check {
	return Check{Tag: "notempty", Message: message}
}

// IsString requires a string.
func IsString(message string) Check {
	return Check{Tag: "isstring", Message: message}
}

// IsEmail requires a well-formed email address.
func IsEmail(message string) Check {
	return Check{Tag: "isstring,email", Message: message}
}

// IsURL requires an absolute URL.
func IsURL(message string) Check {
	return Check{Tag: "isstring,url", Message: message}
}

// IsArray requires an array; element types are not checked.
func IsArray(message string) Check {
	return Check{Tag: "isarray", Message: message}
}

// FloatMin requires a number (or numeric string) of at least minimum.
func FloatMin(minimum float64, message string) Check {
	return Check{Tag: "floatmin=" + strconv.FormatFloat(minimum, 'f', -1, 64), Message: message}
}

// OneOf requires a string equal to one of values.
func OneOf(message string, values ...string) Check {
	return Check{Tag: "isstring,oneof=" + strings.Join(values, " "), Message: message}
}

// Trim removes surrounding whitespace from strings.
func Trim(value any) any {
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s)
	}
	return value
}

// Escape replaces HTML-significant characters with entities.
func Escape(value any) any {
	if s, ok := value.(string); ok {
		return html.EscapeString(s)
	}
	return value
}

// NormalizeEmail trims and lowercases an address.
func NormalizeEmail(value any) any {
	if s, ok := value.(string); ok {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return value
}

// ToString renders numbers and booleans as strings.
func ToString(value any) any {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	return fmt.Sprint(value)
}

// ToFloat converts numeric strings to numbers.
func ToFloat(value any) any {
	if s, ok := value.(string); ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	}
	return value
}

// ToStringSlice renders every element of an array with ToString, so arrays
// of mixed scalars decode into []string.
func ToStringSlice(value any) any {
	items, ok := value.([]any)
	if !ok {
		return value
	}
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = ToString(item)
	}
	return out
}
