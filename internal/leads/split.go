package leads

import (
	"fmt"
	"strings"
)

// Embedding-friendly chunk window in characters.
const (
	MinChunkSize        = 2000
	DefaultMaxChunkSize = 5000
)

// leadMarker starts each embedded record inside a portfolio text block;
// splitting prefers these boundaries over everything else.
const leadMarker = "\nLead #"

// Splitter cuts a text blob into chunks no longer than maxSize, preferring
// record boundaries, then paragraphs, then sentences, then words. The one
// sanctioned exception to the cap is a single word longer than maxSize, which
// is emitted as its own oversized chunk rather than being cut mid-word.
type Splitter struct {
	maxSize int
}

// NewSplitter rejects a non-positive window up front; that is a configuration
// bug, not a runtime condition.
func NewSplitter(maxSize int) (*Splitter, error) {
	if maxSize <= 0 {
		return nil, fmt.Errorf("max chunk size must be positive, got %d", maxSize)
	}
	return &Splitter{maxSize: maxSize}, nil
}

// MaxSize returns the configured chunk window.
func (s *Splitter) MaxSize() int { return s.maxSize }

// Split returns the ordered chunks of text. Small inputs pass through
// unchanged; every emitted chunk is trimmed and non-empty.
func (s *Splitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if len(text) <= s.maxSize {
		return []string{text}
	}

	sections := strings.Split(text, leadMarker)
	if len(sections) <= 1 {
		// No record boundaries, fall straight through to paragraphs.
		return s.splitByParagraphs(text)
	}

	var chunks []string
	current := sections[0]

	for _, section := range sections[1:] {
		section = leadMarker + section
		if len(current)+len(section) <= s.maxSize {
			current += section
			continue
		}
		if trimmed := strings.TrimSpace(current); trimmed != "" {
			chunks = append(chunks, trimmed)
		}
		current = section
	}
	if trimmed := strings.TrimSpace(current); trimmed != "" {
		chunks = append(chunks, trimmed)
	}

	// A single record can still exceed the window; re-split those chunks.
	var final []string
	for _, chunk := range chunks {
		if len(chunk) <= s.maxSize {
			final = append(final, chunk)
			continue
		}
		final = append(final, s.splitByParagraphs(chunk)...)
	}
	return final
}

// splitByParagraphs accumulates double-newline paragraphs into chunks,
// recursing into sentences for any single paragraph over the window.
func (s *Splitter) splitByParagraphs(text string) []string {
	var chunks []string
	current := ""

	for _, paragraph := range strings.Split(text, "\n\n") {
		// +2 accounts for the rejoining separator.
		if len(current)+len(paragraph)+2 <= s.maxSize {
			if current != "" {
				current += "\n\n" + paragraph
			} else {
				current = paragraph
			}
			continue
		}

		if trimmed := strings.TrimSpace(current); trimmed != "" {
			chunks = append(chunks, trimmed)
		}

		if len(paragraph) > s.maxSize {
			sentenceChunks := s.splitBySentences(paragraph)
			if len(sentenceChunks) > 0 {
				chunks = append(chunks, sentenceChunks[:len(sentenceChunks)-1]...)
				current = sentenceChunks[len(sentenceChunks)-1]
			} else {
				current = ""
			}
		} else {
			current = paragraph
		}
	}

	if trimmed := strings.TrimSpace(current); trimmed != "" {
		chunks = append(chunks, trimmed)
	}
	return chunks
}

// splitBySentences accumulates period-terminated sentences, dropping to
// whitespace-delimited words for any single sentence over the window.
func (s *Splitter) splitBySentences(text string) []string {
	var chunks []string
	current := ""

	sentences := strings.Split(strings.ReplaceAll(text, ".", ".\n"), "\n")
	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}

		// +1 for the joining space.
		if len(current)+len(sentence)+1 <= s.maxSize {
			if current != "" {
				current += " " + sentence
			} else {
				current = sentence
			}
			continue
		}

		if trimmed := strings.TrimSpace(current); trimmed != "" {
			chunks = append(chunks, trimmed)
		}

		if len(sentence) > s.maxSize {
			current = s.splitWords(sentence, &chunks)
		} else {
			current = sentence
		}
	}

	if trimmed := strings.TrimSpace(current); trimmed != "" {
		chunks = append(chunks, trimmed)
	}
	return chunks
}

// splitWords flushes full word-chunks into chunks and returns the trailing
// partial chunk for the caller to keep accumulating. A word longer than the
// window becomes its own oversized chunk when flushed.
func (s *Splitter) splitWords(sentence string, chunks *[]string) string {
	current := ""
	for _, word := range strings.Fields(sentence) {
		if len(current)+len(word)+1 <= s.maxSize {
			if current != "" {
				current += " " + word
			} else {
				current = word
			}
			continue
		}
		if current != "" {
			*chunks = append(*chunks, current)
		}
		current = word
	}
	return current
}
