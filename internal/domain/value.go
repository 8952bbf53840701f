package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// SpecValue is the typed form of a specification value. Values are stored
// as text; parsing into a SpecValue happens once at the edges so that
// validation, search and comparison never re-interpret raw strings with
// ad-hoc coercion rules.
type SpecValue struct {
	Kind   DataType
	Text   string
	Number float64
	Bool   bool
}

// ParseSpecValue interprets a raw stored string according to the declared
// data type. Enum membership is not checked here; that is a validation
// concern (the legal set lives on the template, not on the value).
func ParseSpecValue(dataType DataType, raw string) (SpecValue, error) {
	switch dataType {
	case DataTypeNumber:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return SpecValue{}, fmt.Errorf("domain: %q is not a valid number", raw)
		}
		return SpecValue{Kind: DataTypeNumber, Number: f}, nil
	case DataTypeBoolean:
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "true", "1":
			return SpecValue{Kind: DataTypeBoolean, Bool: true}, nil
		case "false", "0":
			return SpecValue{Kind: DataTypeBoolean, Bool: false}, nil
		default:
			return SpecValue{}, fmt.Errorf("domain: %q is not a valid boolean (expected true, false, 1 or 0)", raw)
		}
	case DataTypeEnum:
		return SpecValue{Kind: DataTypeEnum, Text: raw}, nil
	default:
		// text, or an unknown type carried through from old rows
		return SpecValue{Kind: DataTypeText, Text: raw}, nil
	}
}

// String serializes the value back to its storage form.
func (v SpecValue) String() string {
	switch v.Kind {
	case DataTypeNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case DataTypeBoolean:
		return strconv.FormatBool(v.Bool)
	default:
		return v.Text
	}
}

// Equal reports whether two values are the same under their typed form.
// Values of different kinds never compare equal.
func (v SpecValue) Equal(other SpecValue) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case DataTypeNumber:
		return v.Number == other.Number
	case DataTypeBoolean:
		return v.Bool == other.Bool
	default:
		return v.Text == other.Text
	}
}
