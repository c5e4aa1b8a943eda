package leads

import (
	"fmt"
	"strings"
	"testing"
)

func mustSplitter(t *testing.T, maxSize int) *Splitter {
	t.Helper()
	s, err := NewSplitter(maxSize)
	if err != nil {
		t.Fatalf("NewSplitter(%d): %v", maxSize, err)
	}
	return s
}

func TestNewSplitterRejectsBadWindow(t *testing.T) {
	if _, err := NewSplitter(0); err == nil {
		t.Error("zero window should be rejected")
	}
	if _, err := NewSplitter(-1); err == nil {
		t.Error("negative window should be rejected")
	}
}

func TestSplitSmallTextPassesThrough(t *testing.T) {
	s := mustSplitter(t, 5000)

	chunks := s.Split("short portfolio text")
	if len(chunks) != 1 || chunks[0] != "short portfolio text" {
		t.Errorf("small text should pass through unchanged, got %v", chunks)
	}

	if chunks := s.Split("   \n  "); chunks != nil {
		t.Errorf("blank text should yield no chunks, got %v", chunks)
	}
}

func TestSplitPrefersRecordBoundaries(t *testing.T) {
	s := mustSplitter(t, 5000)

	// Header of 1 char plus 30 sections of exactly 400 chars each. Twelve
	// sections fit per window, so the split must land on 3 chunks with every
	// cut at a record boundary.
	var b strings.Builder
	b.WriteString("H")
	for i := 1; i <= 30; i++ {
		label := fmt.Sprintf("%02d: ", i)
		b.WriteString("\nLead #" + label + strings.Repeat("x", 400-len("\nLead #")-len(label)))
	}

	chunks := s.Split(b.String())
	if len(chunks) != 3 {
		t.Fatalf("chunks = %d, want 3", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk) > s.MaxSize() {
			t.Errorf("chunk %d is %d chars, over the %d window", i, len(chunk), s.MaxSize())
		}
		if i > 0 && !strings.HasPrefix(chunk, "Lead #") {
			t.Errorf("chunk %d does not start at a record boundary: %q", i, chunk[:20])
		}
	}
}

func TestSplitFallsBackToSentences(t *testing.T) {
	s := mustSplitter(t, 200)

	sentence := strings.Repeat("a", 60) + "."
	text := strings.Repeat(sentence+" ", 10)

	chunks := s.Split(text)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk) > s.MaxSize() {
			t.Errorf("chunk %d is %d chars, over the window", i, len(chunk))
		}
		if !strings.HasSuffix(chunk, ".") {
			t.Errorf("chunk %d splits mid-sentence: %q", i, chunk)
		}
	}
}

func TestSplitFallsBackToWords(t *testing.T) {
	s := mustSplitter(t, 5000)

	text := strings.TrimSpace(strings.Repeat("lorem ipsum dolor sit amet ", 250))
	chunks := s.Split(text)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks for %d chars, got %d", len(text), len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk) > s.MaxSize() {
			t.Errorf("chunk %d is %d chars, over the window", i, len(chunk))
		}
	}

	// Rejoining must reproduce the input exactly, proving no word was cut.
	if rejoined := strings.Join(chunks, " "); rejoined != text {
		t.Error("chunks do not rejoin to the original text; a word was split")
	}
}

func TestSplitOversizedSingleWord(t *testing.T) {
	s := mustSplitter(t, 5000)

	word := strings.Repeat("a", 6000)
	chunks := s.Split(word)
	if len(chunks) != 1 || chunks[0] != word {
		t.Errorf("an unbreakable word must come through as one oversized chunk, got %d chunks", len(chunks))
	}
}

func TestSplitDeterministic(t *testing.T) {
	s := mustSplitter(t, 300)
	text := strings.Repeat("The lead called about pricing. ", 50)

	first := s.Split(text)
	second := s.Split(text)
	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}
