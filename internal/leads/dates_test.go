package leads

import (
	"testing"
	"time"
)

func TestFormatDisplayLayouts(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"2024-01-15", "January 15, 2024"},
		{"15-01-2024", "January 15, 2024"},
		{"01/15/2024", "January 15, 2024"},
		{"2024-01-15T10:30:00", "January 15, 2024"},
		{"2024-01-15T10:30:00Z", "January 15, 2024"},
		{"2024-01-15T10:30:00.123456", "January 15, 2024"},
	}
	for _, tc := range cases {
		got, ok := FormatDisplay(Resolve(tc.raw))
		if !ok {
			t.Errorf("FormatDisplay(%q) reported absent", tc.raw)
			continue
		}
		if got != tc.want {
			t.Errorf("FormatDisplay(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestFormatDisplayUnparseableTextPassesThrough(t *testing.T) {
	got, ok := FormatDisplay(Resolve("  next week maybe "))
	if !ok || got != "next week maybe" {
		t.Errorf("unparseable text should pass through trimmed, got %q ok=%v", got, ok)
	}
}

func TestFormatDisplayMissing(t *testing.T) {
	if _, ok := FormatDisplay(Resolve(nil)); ok {
		t.Error("nil should report absent")
	}
	if _, ok := FormatDisplay(Resolve("   ")); ok {
		t.Error("blank text should report absent")
	}
}

func TestFormatDisplayNativeTime(t *testing.T) {
	ts := time.Date(2024, 3, 7, 18, 45, 0, 0, time.UTC)
	got, ok := FormatDisplay(Resolve(ts))
	if !ok || got != "March 7, 2024" {
		t.Errorf("FormatDisplay(time) = %q ok=%v", got, ok)
	}
}

func TestFormatEpoch(t *testing.T) {
	want := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC).Unix()
	if got := FormatEpoch(Resolve("2024-01-15")); got != want {
		t.Errorf("FormatEpoch(date string) = %d, want %d", got, want)
	}

	ts := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	if got := FormatEpoch(Resolve(ts)); got != ts.Unix() {
		t.Errorf("FormatEpoch(time) = %d, want %d", got, ts.Unix())
	}

	// Non-dates never produce an epoch.
	if got := FormatEpoch(Resolve("call back later")); got != 0 {
		t.Errorf("FormatEpoch(free text) = %d, want 0", got)
	}
	if got := FormatEpoch(Resolve(1705276800)); got != 0 {
		t.Errorf("FormatEpoch(plain number) = %d, want 0", got)
	}
}

func TestResolveKinds(t *testing.T) {
	if Resolve(nil).Kind != KindMissing {
		t.Error("nil should resolve to KindMissing")
	}
	if Resolve("x").Kind != KindText {
		t.Error("string should resolve to KindText")
	}
	if Resolve(3.5).Kind != KindNumeric {
		t.Error("float should resolve to KindNumeric")
	}
	if Resolve(time.Now()).Kind != KindTemporal {
		t.Error("time should resolve to KindTemporal")
	}
}
