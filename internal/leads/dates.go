package leads

import (
	"strconv"
	"strings"
	"time"
)

// displayDateLayout is the single display form every date is rendered to.
const displayDateLayout = "January 2, 2006"

// dateLayouts are tried in order against string values. The order matches the
// formats the CRM has been observed to emit; first successful parse wins.
// A trailing "Z" is stripped beforehand and interpreted as UTC.
var dateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"01/02/2006",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
}

// Kind discriminates the closed set of shapes a lead field value can take
// once resolved. Resolving happens once at ingestion so the rest of the core
// never has to probe runtime capabilities.
type Kind int

const (
	KindMissing Kind = iota
	KindText
	KindNumeric
	KindTemporal
)

// FieldValue is the tagged union a raw field value is resolved into.
type FieldValue struct {
	Kind     Kind
	Text     string
	Num      float64
	Epoch    int64
	Original string
}

// Resolve maps an arbitrary record value onto the FieldValue union.
func Resolve(value any) FieldValue {
	switch v := value.(type) {
	case nil:
		return FieldValue{Kind: KindMissing}
	case time.Time:
		return FieldValue{Kind: KindTemporal, Epoch: v.Unix(), Original: v.UTC().Format(time.RFC3339)}
	case string:
		return FieldValue{Kind: KindText, Text: strings.TrimSpace(v)}
	case int:
		return FieldValue{Kind: KindNumeric, Num: float64(v)}
	case int32:
		return FieldValue{Kind: KindNumeric, Num: float64(v)}
	case int64:
		return FieldValue{Kind: KindNumeric, Num: float64(v)}
	case float32:
		return FieldValue{Kind: KindNumeric, Num: float64(v)}
	case float64:
		return FieldValue{Kind: KindNumeric, Num: v}
	default:
		return FieldValue{Kind: KindText, Text: Stringify(value)}
	}
}

// parseDateString tries the known layouts against a raw string.
func parseDateString(s string) (time.Time, bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "Z")
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDisplay renders a value in the canonical "Month DD, YYYY" display
// form. Unparseable but non-empty text comes back trimmed as-is; the second
// return is false when the value is absent.
func FormatDisplay(v FieldValue) (string, bool) {
	switch v.Kind {
	case KindMissing:
		return "", false
	case KindTemporal:
		return time.Unix(v.Epoch, 0).UTC().Format(displayDateLayout), true
	case KindNumeric:
		return strconv.FormatFloat(v.Num, 'f', -1, 64), true
	default:
		if v.Text == "" {
			return "", false
		}
		if t, ok := parseDateString(v.Text); ok {
			return t.Format(displayDateLayout), true
		}
		return v.Text, true
	}
}

// FormatEpoch renders a value as Unix epoch seconds for numeric range
// filtering. Anything that is not a date resolves to 0; no numeric inference
// is attempted on free text or plain numbers.
func FormatEpoch(v FieldValue) int64 {
	switch v.Kind {
	case KindTemporal:
		return v.Epoch
	case KindText:
		if t, ok := parseDateString(v.Text); ok {
			return t.Unix()
		}
		return 0
	default:
		return 0
	}
}
