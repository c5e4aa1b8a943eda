package leads

import (
	"testing"
	"time"
)

func TestGetDottedPath(t *testing.T) {
	record := map[string]any{
		"id": "L1",
		"clientDetails": map[string]any{
			"name":  "Rahul Sharma",
			"phone": map[string]any{"mobile": "9876543210"},
		},
	}

	if got := Get(record, "clientDetails.name"); got != "Rahul Sharma" {
		t.Errorf("Get(clientDetails.name) = %v", got)
	}
	if got := Get(record, "clientDetails.phone.mobile"); got != "9876543210" {
		t.Errorf("Get three levels deep = %v", got)
	}
	if got := Get(record, "clientDetails.missing"); got != nil {
		t.Errorf("missing key should yield nil, got %v", got)
	}
	if got := Get(record, "id.nested"); got != nil {
		t.Errorf("traversal through a scalar should yield nil, got %v", got)
	}
	if got := Get(nil, "anything"); got != nil {
		t.Errorf("nil record should yield nil, got %v", got)
	}
}

func TestIsEmpty(t *testing.T) {
	e := Extractor{}

	cases := []struct {
		name  string
		value any
		want  bool
	}{
		{"nil", nil, true},
		{"blank string", "   ", true},
		{"placeholder n/a", "N/A", true},
		{"placeholder select", "--Select--", true},
		{"placeholder dash", "-", true},
		{"real string", "Tower A", false},
		{"empty slice", []any{}, true},
		{"non-empty slice", []any{"x"}, false},
		{"empty map", map[string]any{}, true},
		{"zero int", 0, false},
		{"zero float", 0.0, false},
		{"nonzero int", 7, false},
		{"time value", time.Now(), false},
	}
	for _, tc := range cases {
		if got := e.IsEmpty(tc.value); got != tc.want {
			t.Errorf("%s: IsEmpty(%v) = %v, want %v", tc.name, tc.value, got, tc.want)
		}
	}
}

func TestIsEmptyZeroPolicy(t *testing.T) {
	strict := Extractor{TreatZeroAsEmpty: true}

	if !strict.IsEmpty(0) {
		t.Error("zero int should be empty under the strict policy")
	}
	if !strict.IsEmpty(0.0) {
		t.Error("zero float should be empty under the strict policy")
	}
	if strict.IsEmpty(42) {
		t.Error("nonzero int should never be empty")
	}
}

func TestStringify(t *testing.T) {
	if got := Stringify(nil); got != "" {
		t.Errorf("Stringify(nil) = %q", got)
	}
	if got := Stringify("  padded  "); got != "padded" {
		t.Errorf("Stringify should trim, got %q", got)
	}
	if got := Stringify(42); got != "42" {
		t.Errorf("Stringify(42) = %q", got)
	}

	ts := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	if got := Stringify(ts); got != "January 15, 2024" {
		t.Errorf("Stringify(time) = %q", got)
	}
}
