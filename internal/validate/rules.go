// Package validate checks request payloads against declared rule sets before
// any domain logic runs.
package validate

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// FieldType constrains the value a field may carry.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeNumber  FieldType = "number"
	TypeBoolean FieldType = "boolean"
	TypeEmail   FieldType = "email"
	TypeURL     FieldType = "url"
)

// Rule declares the constraints for one field.
type Rule struct {
	Required  bool
	Type      FieldType
	MinLength int
	MaxLength int
	Pattern   *regexp.Regexp
}

// RuleSet maps field names to rules. Declared statically per endpoint and
// never mutated at runtime.
type RuleSet map[string]Rule

// Result reports the outcome of one validation pass.
type Result struct {
	Valid  bool
	Errors []string
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Check evaluates payload against rules. It reports, never rejects: the
// caller decides to answer 400. Unset optional fields are skipped.
func Check(payload map[string]any, rules RuleSet) Result {
	var errs []string
	for field, rule := range rules {
		value, present := payload[field]
		if !present || isEmpty(value) {
			if rule.Required {
				errs = append(errs, fmt.Sprintf("%s is required", field))
			}
			continue
		}
		errs = append(errs, checkValue(field, value, rule)...)
	}
	return Result{Valid: len(errs) == 0, Errors: errs}
}

func checkValue(field string, value any, rule Rule) []string {
	var errs []string
	switch rule.Type {
	case TypeString, "":
		s, ok := value.(string)
		if rule.Type == TypeString && !ok {
			return []string{fmt.Sprintf("%s must be a string", field)}
		}
		if ok {
			errs = append(errs, checkString(field, s, rule)...)
		}
	case TypeNumber:
		// JSON numbers decode as float64.
		switch value.(type) {
		case float64, int, int64:
		default:
			errs = append(errs, fmt.Sprintf("%s must be a number", field))
		}
	case TypeBoolean:
		if _, ok := value.(bool); !ok {
			errs = append(errs, fmt.Sprintf("%s must be a boolean", field))
		}
	case TypeEmail:
		s, ok := value.(string)
		if !ok || !emailPattern.MatchString(s) {
			errs = append(errs, fmt.Sprintf("%s must be a valid email address", field))
		}
	case TypeURL:
		s, ok := value.(string)
		if !ok || !isURL(s) {
			errs = append(errs, fmt.Sprintf("%s must be a valid URL", field))
		}
	}
	return errs
}

func checkString(field, s string, rule Rule) []string {
	var errs []string
	if rule.MinLength > 0 && len(s) < rule.MinLength {
		errs = append(errs, fmt.Sprintf("%s must be at least %d characters", field, rule.MinLength))
	}
	if rule.MaxLength > 0 && len(s) > rule.MaxLength {
		errs = append(errs, fmt.Sprintf("%s must be at most %d characters", field, rule.MaxLength))
	}
	if rule.Pattern != nil && !rule.Pattern.MatchString(s) {
		errs = append(errs, fmt.Sprintf("%s has an invalid format", field))
	}
	return errs
}

func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

func isURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
