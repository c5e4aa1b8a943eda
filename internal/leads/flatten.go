package leads

import (
	"fmt"
	"sort"
	"strings"

	"lead-rag-platform/internal/logger"
)

// FieldSpec names one field the flattener looks for: where it lives in the
// record, how it is labelled in the output text, and whether it is a date.
type FieldSpec struct {
	Path    string
	Display string
	Date    bool
}

// DefaultFieldPriority is the ordered field list used when a company does not
// configure its own schema.
func DefaultFieldPriority() []FieldSpec {
	return []FieldSpec{
		{Path: "generatedAt", Display: "Enquiry Date", Date: true},
		{Path: "projectName", Display: "Project"},
		{Path: "projectCity", Display: "City"},
		{Path: "projectStage", Display: "Stage"},
		{Path: "projectCategory", Display: "Category"},
		{Path: "projectSource", Display: "Source"},
		{Path: "clientDetails.name", Display: "Client"},
		{Path: "clientDetails.phoneNumber", Display: "Phone"},
		{Path: "lastContactDate", Display: "Last Contact", Date: true},
		{Path: "lastDiscussion", Display: "Last Discussion"},
		{Path: "nextFollowUpDate", Display: "Next Follow-up", Date: true},
		{Path: "updatedAt", Display: "Updated", Date: true},
	}
}

// ParseFieldSpecs parses a comma-separated "path:Display[:date]" list, the
// form the field priority is configured in per company.
func ParseFieldSpecs(raw string) ([]FieldSpec, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultFieldPriority(), nil
	}

	var specs []FieldSpec
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, ":")
		if len(parts) < 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
			return nil, fmt.Errorf("invalid field spec %q: want path:Display[:date]", entry)
		}
		spec := FieldSpec{Path: strings.TrimSpace(parts[0]), Display: strings.TrimSpace(parts[1])}
		if len(parts) > 2 {
			if strings.TrimSpace(parts[2]) != "date" {
				return nil, fmt.Errorf("invalid field spec %q: third segment must be \"date\"", entry)
			}
			spec.Date = true
		}
		specs = append(specs, spec)
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("field priority list is empty")
	}
	return specs, nil
}

// maxFlattenClauses caps the total clause count when the additional-fields
// pass is enabled. Extras are consumed in lexicographic key order so the cap
// drops the same fields on every run.
const maxFlattenClauses = 15

// Flattener converts one lead record into a natural-language paragraph.
type Flattener struct {
	fields        []FieldSpec
	extractor     Extractor
	includeExtras bool
	maxClauses    int
}

// NewFlattener builds the portfolio-text flattener: priority fields only,
// numeric zero counts as a value.
func NewFlattener(fields []FieldSpec, treatZeroAsEmpty bool) *Flattener {
	if len(fields) == 0 {
		fields = DefaultFieldPriority()
	}
	return &Flattener{
		fields:    fields,
		extractor: Extractor{TreatZeroAsEmpty: treatZeroAsEmpty},
	}
}

// NewRecordFlattener builds the per-record variant: it also sweeps remaining
// top-level keys up to the clause cap, and treats numeric zero as empty.
func NewRecordFlattener(fields []FieldSpec) *Flattener {
	f := NewFlattener(fields, true)
	f.includeExtras = true
	f.maxClauses = maxFlattenClauses
	return f
}

// Flatten produces the lead's text paragraph. The output is never empty; a
// record with nothing beyond its id yields an explicit fallback clause.
// Flattening the same record twice yields identical text.
func (f *Flattener) Flatten(record map[string]any, companyName string) (string, error) {
	if record == nil {
		return "", &RecordProcessingError{LeadID: "unknown", Err: fmt.Errorf("nil record")}
	}

	clauses := []string{fmt.Sprintf("Lead from %s: id=%s", companyName, leadID(record))}

	for _, spec := range f.fields {
		raw := Get(record, spec.Path)
		if f.extractor.IsEmpty(raw) {
			continue
		}

		formatted, err := f.formatField(spec, raw)
		if err != nil {
			logger.Warn("field formatting failed, using raw value",
				"path", spec.Path, "error", err)
			formatted = Stringify(raw)
		}
		if formatted != "" && !f.extractor.IsEmpty(formatted) {
			clauses = append(clauses, spec.Display+": "+formatted)
		}
	}

	if followup := f.followupSummary(record); followup != "" {
		clauses = append(clauses, followup)
	}

	if f.includeExtras {
		clauses = f.appendExtras(record, clauses)
	}

	if len(clauses) == 1 {
		clauses = append(clauses, "No detailed information available for this lead.")
	}

	return strings.Join(clauses, ". ") + ".", nil
}

// formatField renders one resolved field. A shape that cannot render as a
// scalar clause is a FieldFormatError; the caller falls back to the raw form.
func (f *Flattener) formatField(spec FieldSpec, raw any) (string, error) {
	switch raw.(type) {
	case map[string]any, []any:
		return "", &FieldFormatError{Path: spec.Path, Err: fmt.Errorf("value is not a scalar")}
	}
	if spec.Date {
		display, ok := FormatDisplay(Resolve(raw))
		if !ok {
			return "", nil
		}
		return display, nil
	}
	return Stringify(raw), nil
}

// followupSummary combines the three follow-up fields into one sentence,
// returned empty when none of them is present.
func (f *Flattener) followupSummary(record map[string]any) string {
	var parts []string

	if raw := Get(record, "lastContactDate"); !f.extractor.IsEmpty(raw) {
		if display, ok := FormatDisplay(Resolve(raw)); ok {
			parts = append(parts, "last contacted "+display)
		}
	}
	if raw := Get(record, "lastDiscussion"); !f.extractor.IsEmpty(raw) {
		parts = append(parts, "discussed: "+Stringify(raw))
	}
	if raw := Get(record, "nextFollowUpDate"); !f.extractor.IsEmpty(raw) {
		if display, ok := FormatDisplay(Resolve(raw)); ok {
			parts = append(parts, "next follow-up scheduled for "+display)
		}
	}

	if len(parts) == 0 {
		return ""
	}
	return "Follow-up summary: " + strings.Join(parts, ", ")
}

// appendExtras sweeps top-level keys the priority list did not cover,
// flattening one nested level into "parent.child" keys. Keys are visited in
// lexicographic order and the total clause count is capped, so which fields
// survive the cap is deterministic.
func (f *Flattener) appendExtras(record map[string]any, clauses []string) []string {
	covered := map[string]bool{"id": true}
	for _, spec := range f.fields {
		covered[strings.SplitN(spec.Path, ".", 2)[0]] = true
	}

	extras := map[string]any{}
	for key, value := range record {
		if covered[key] || f.extractor.IsEmpty(value) {
			continue
		}
		if nested, ok := value.(map[string]any); ok {
			for subKey, subValue := range nested {
				if !f.extractor.IsEmpty(subValue) {
					extras[key+"."+subKey] = subValue
				}
			}
			continue
		}
		extras[key] = value
	}

	keys := make([]string, 0, len(extras))
	for key := range extras {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if len(clauses) >= f.maxClauses {
			break
		}
		label := strings.ReplaceAll(key, ".", " ")
		clauses = append(clauses, label+": "+Stringify(extras[key]))
	}
	return clauses
}

// leadID returns the record's id, or "unknown" when it is absent or empty.
func leadID(record map[string]any) string {
	var e Extractor
	if raw, ok := record["id"]; ok && !e.IsEmpty(raw) {
		return Stringify(raw)
	}
	return "unknown"
}
