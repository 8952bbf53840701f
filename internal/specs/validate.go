package specs

import (
	"fmt"
	"strings"

	"catalog-spec-service/internal/domain"
)

// ValidationResult reports the outcome of checking one raw value against a
// template. Normalized is set only when the value is valid.
type ValidationResult struct {
	IsValid    bool              `json:"is_valid"`
	Errors     []string          `json:"errors,omitempty"`
	Normalized *domain.SpecValue `json:"-"`
}

// NormalizedValue returns the storage-form string of the normalized value,
// or the empty string when validation failed.
func (r ValidationResult) NormalizedValue() string {
	if r.Normalized == nil {
		return ""
	}
	return r.Normalized.String()
}

// ValidateValue checks a raw string against a template's declared type and
// constraints. The checks are advisory: callers may still persist values
// that fail validation, so the result carries messages rather than hard
// errors.
//
// Rules:
//   - required templates reject empty or blank values
//   - number values must parse as a float
//   - boolean values must be one of true/false/1/0 (case-insensitive)
//   - enum values must be a member of the template's enum set, when defined
//   - text values pass through unchecked
func ValidateValue(tpl *domain.SpecTemplate, raw string) ValidationResult {
	trimmed := strings.TrimSpace(raw)

	if tpl.IsRequired && trimmed == "" {
		return ValidationResult{Errors: []string{fmt.Sprintf("%s is required", tpl.DisplayName)}}
	}
	if trimmed == "" {
		// Optional and absent: valid, normalizes to the empty value.
		empty := domain.SpecValue{Kind: domain.DataTypeText}
		return ValidationResult{IsValid: true, Normalized: &empty}
	}

	switch tpl.DataType {
	case domain.DataTypeNumber:
		value, err := domain.ParseSpecValue(domain.DataTypeNumber, trimmed)
		if err != nil {
			return ValidationResult{Errors: []string{fmt.Sprintf("%s must be a number", tpl.DisplayName)}}
		}
		return ValidationResult{IsValid: true, Normalized: &value}

	case domain.DataTypeBoolean:
		value, err := domain.ParseSpecValue(domain.DataTypeBoolean, trimmed)
		if err != nil {
			return ValidationResult{Errors: []string{fmt.Sprintf("%s must be true, false, 1 or 0", tpl.DisplayName)}}
		}
		return ValidationResult{IsValid: true, Normalized: &value}

	case domain.DataTypeEnum:
		if len(tpl.EnumValues) > 0 {
			found := false
			for _, allowed := range tpl.EnumValues {
				if raw == allowed {
					found = true
					break
				}
			}
			if !found {
				return ValidationResult{Errors: []string{
					fmt.Sprintf("%s must be one of: %s", tpl.DisplayName, strings.Join(tpl.EnumValues, ", ")),
				}}
			}
		}
		value := domain.SpecValue{Kind: domain.DataTypeEnum, Text: raw}
		return ValidationResult{IsValid: true, Normalized: &value}

	default:
		value := domain.SpecValue{Kind: domain.DataTypeText, Text: raw}
		return ValidationResult{IsValid: true, Normalized: &value}
	}
}
