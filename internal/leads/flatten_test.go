package leads

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func sampleLead() map[string]any {
	return map[string]any{
		"id":          "L1",
		"generatedAt": "2024-01-10",
		"projectName": "Tower A",
		"projectCity": "Mumbai",
		"clientDetails": map[string]any{
			"name":        "Rahul Sharma",
			"phoneNumber": "N/A",
		},
		"updatedAt":    "2024-01-21T09:00:00Z",
		"projectStage": "",
	}
}

func TestFlattenPriorityFields(t *testing.T) {
	f := NewFlattener(nil, false)

	got, err := f.Flatten(sampleLead(), "Acme")
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}

	want := "Lead from Acme: id=L1. Enquiry Date: January 10, 2024. Project: Tower A. " +
		"City: Mumbai. Client: Rahul Sharma. Updated: January 21, 2024."
	if got != want {
		t.Errorf("Flatten =\n%q\nwant\n%q", got, want)
	}
}

func TestFlattenSuppressesEmptyAndPlaceholderFields(t *testing.T) {
	f := NewFlattener(nil, false)

	got, err := f.Flatten(sampleLead(), "Acme")
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	if strings.Contains(got, "Phone") {
		t.Errorf("placeholder phone should be suppressed: %q", got)
	}
	if strings.Contains(got, "Stage") {
		t.Errorf("empty stage should be suppressed: %q", got)
	}
}

func TestFlattenFollowupSummary(t *testing.T) {
	f := NewFlattener(nil, false)
	record := map[string]any{
		"id":               "L2",
		"lastContactDate":  "2024-01-05",
		"lastDiscussion":   "pricing",
		"nextFollowUpDate": "2024-02-01",
	}

	got, err := f.Flatten(record, "Acme")
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}

	want := "Follow-up summary: last contacted January 5, 2024, discussed: pricing, " +
		"next follow-up scheduled for February 1, 2024."
	if !strings.HasSuffix(got, want) {
		t.Errorf("missing follow-up summary in %q", got)
	}
}

func TestFlattenFallbackClause(t *testing.T) {
	f := NewFlattener(nil, false)

	got, err := f.Flatten(map[string]any{"id": "L3"}, "Acme")
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	if got != "Lead from Acme: id=L3. No detailed information available for this lead." {
		t.Errorf("fallback text = %q", got)
	}
}

func TestFlattenUnknownID(t *testing.T) {
	f := NewFlattener(nil, false)

	got, err := f.Flatten(map[string]any{"projectName": "Tower B"}, "Acme")
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	if !strings.HasPrefix(got, "Lead from Acme: id=unknown.") {
		t.Errorf("missing unknown id head in %q", got)
	}
}

func TestFlattenNilRecord(t *testing.T) {
	f := NewFlattener(nil, false)

	_, err := f.Flatten(nil, "Acme")
	var procErr *RecordProcessingError
	if !errors.As(err, &procErr) {
		t.Fatalf("want RecordProcessingError, got %v", err)
	}
}

func TestFlattenIdempotent(t *testing.T) {
	f := NewFlattener(nil, false)
	record := sampleLead()

	first, err := f.Flatten(record, "Acme")
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	second, err := f.Flatten(record, "Acme")
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	if first != second {
		t.Errorf("flattening is not deterministic:\n%q\n%q", first, second)
	}
}

func TestRecordFlattenerExtras(t *testing.T) {
	f := NewRecordFlattener(nil)
	record := map[string]any{
		"id":     "L4",
		"budget": 0, // zero counts as empty in the per-record variant
		"notes":  "hot lead",
		"meta":   map[string]any{"channel": "web"},
	}

	got, err := f.Flatten(record, "Acme")
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}

	want := "Lead from Acme: id=L4. meta channel: web. notes: hot lead."
	if got != want {
		t.Errorf("extras output = %q, want %q", got, want)
	}
}

func TestRecordFlattenerExtrasCap(t *testing.T) {
	f := NewRecordFlattener(nil)
	record := map[string]any{"id": "L5"}
	for i := 1; i <= 20; i++ {
		record[fmt.Sprintf("extra%02d", i)] = "v"
	}

	got, err := f.Flatten(record, "Acme")
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}

	// Head clause plus 14 extras hits the cap of 15 clauses. Extras are
	// consumed in lexicographic order, so the cut point is stable.
	if count := strings.Count(got, ". "); count != 14 {
		t.Errorf("clause separators = %d, want 14:\n%q", count, got)
	}
	if !strings.Contains(got, "extra14: v") {
		t.Errorf("extra14 should survive the cap: %q", got)
	}
	if strings.Contains(got, "extra15") {
		t.Errorf("extra15 should be dropped by the cap: %q", got)
	}
}

func TestParseFieldSpecs(t *testing.T) {
	specs, err := ParseFieldSpecs("dealValue:Deal Value, closedAt:Closed:date")
	if err != nil {
		t.Fatalf("ParseFieldSpecs: %v", err)
	}
	if len(specs) != 2 {
		t.Fatalf("want 2 specs, got %d", len(specs))
	}
	if specs[0].Path != "dealValue" || specs[0].Display != "Deal Value" || specs[0].Date {
		t.Errorf("first spec = %+v", specs[0])
	}
	if specs[1].Path != "closedAt" || !specs[1].Date {
		t.Errorf("second spec = %+v", specs[1])
	}

	if _, err := ParseFieldSpecs("justapath"); err == nil {
		t.Error("spec without display should fail")
	}
	if _, err := ParseFieldSpecs("a:B:notdate"); err == nil {
		t.Error("bad third segment should fail")
	}

	defaults, err := ParseFieldSpecs("")
	if err != nil || len(defaults) != len(DefaultFieldPriority()) {
		t.Errorf("empty input should yield defaults, got %d specs err=%v", len(defaults), err)
	}
}
