package leads

import (
	"fmt"
	"strings"
	"time"
)

// placeholderValues are strings the CRM UI writes for "no value". They are
// treated exactly like a missing field.
var placeholderValues = map[string]struct{}{
	"n/a":        {},
	"na":         {},
	"null":       {},
	"none":       {},
	"-":          {},
	"tbd":        {},
	"pending":    {},
	"--select--": {},
}

// Get resolves a dot-separated path inside a lead record. Traversal stops and
// returns nil as soon as an intermediate value is not a map or a key is
// missing; a missing path is a normal outcome, never an error.
func Get(record map[string]any, path string) any {
	var value any = record
	for _, key := range strings.Split(path, ".") {
		m, ok := value.(map[string]any)
		if !ok {
			return nil
		}
		value, ok = m[key]
		if !ok {
			return nil
		}
	}
	return value
}

// Extractor decides what counts as an empty field value. The numeric-zero
// policy differs between the two flattening variants, so it is carried here
// instead of being hardcoded.
type Extractor struct {
	TreatZeroAsEmpty bool
}

// IsEmpty reports whether a value should be skipped during flattening.
// A present date is never empty, whatever it represents.
func (e Extractor) IsEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		stripped := strings.ToLower(strings.TrimSpace(v))
		if stripped == "" {
			return true
		}
		_, placeholder := placeholderValues[stripped]
		return placeholder
	case []any:
		return len(v) == 0
	case []string:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	case time.Time:
		return false
	case FieldValue:
		return e.isEmptyFieldValue(v)
	case int:
		return e.TreatZeroAsEmpty && v == 0
	case int32:
		return e.TreatZeroAsEmpty && v == 0
	case int64:
		return e.TreatZeroAsEmpty && v == 0
	case float32:
		return e.TreatZeroAsEmpty && v == 0
	case float64:
		return e.TreatZeroAsEmpty && v == 0
	default:
		return false
	}
}

func (e Extractor) isEmptyFieldValue(v FieldValue) bool {
	switch v.Kind {
	case KindMissing:
		return true
	case KindText:
		return e.IsEmpty(v.Text)
	case KindNumeric:
		return e.TreatZeroAsEmpty && v.Num == 0
	default:
		// Temporal values are never empty.
		return false
	}
}

// Stringify renders a scalar value for inclusion in flattened text.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case time.Time:
		return v.UTC().Format(displayDateLayout)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
