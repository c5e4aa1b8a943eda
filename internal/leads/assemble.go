package leads

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"lead-rag-platform/internal/logger"
	"lead-rag-platform/models"
)

// Assembler turns grouped records into indexable documents. It owns the two
// flattening variants: the portfolio flattener feeds the per-group rich text
// path, the record flattener feeds the one-document-per-lead path.
type Assembler struct {
	splitter        *Splitter
	flattener       *Flattener
	recordFlattener *Flattener
	extractor       Extractor
}

func NewAssembler(splitter *Splitter, flattener, recordFlattener *Flattener) *Assembler {
	return &Assembler{
		splitter:        splitter,
		flattener:       flattener,
		recordFlattener: recordFlattener,
		extractor:       Extractor{TreatZeroAsEmpty: true},
	}
}

// RichTextBlock builds one text block covering every lead in a group. A lead
// that fails to flatten is still accounted for with a placeholder line.
func (a *Assembler) RichTextBlock(records []map[string]any, companyName, assignee string) string {
	parts := []string{
		fmt.Sprintf("Sales Portfolio for %s at %s", assignee, companyName),
		fmt.Sprintf("Total Leads: %d", len(records)),
		strings.Repeat("=", 50),
	}

	for i, record := range records {
		text, err := a.flattener.Flatten(record, companyName)
		if err != nil {
			logger.Warn("lead flattening failed, substituting placeholder",
				"lead", leadID(record), "error", &RecordProcessingError{LeadID: leadID(record), Err: err})
			parts = append(parts, fmt.Sprintf("\nLead #%d: %s (processing error)", i+1, leadID(record)))
			parts = append(parts, strings.Repeat("-", 30))
			continue
		}
		parts = append(parts, fmt.Sprintf("\nLead #%d:", i+1))
		parts = append(parts, text)
		parts = append(parts, strings.Repeat("-", 30))
	}

	return strings.Join(parts, "\n")
}

// Assemble produces the chunked portfolio documents for every group. A group
// that fails is logged and skipped; the run always continues.
func (a *Assembler) Assemble(groups *Groups, companyName string) []models.Document {
	var documents []models.Document

	for _, key := range groups.Keys() {
		docs, err := a.assembleGroup(key, groups.Get(key), companyName)
		if err != nil {
			logger.Error("skipping group", "group", key,
				"error", &GroupAssemblyError{Key: key, Err: err})
			continue
		}
		documents = append(documents, docs...)
	}

	logger.Info("assembled chunked documents",
		"documents", len(documents), "groups", groups.Len(), "company", companyName)
	return documents
}

func (a *Assembler) assembleGroup(key string, records []map[string]any, companyName string) ([]models.Document, error) {
	richText := a.RichTextBlock(records, companyName, key)
	chunks := a.splitter.Split(richText)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("group produced no chunks")
	}

	leadIDs := make([]string, 0, len(records))
	for _, record := range records {
		leadIDs = append(leadIDs, leadID(record))
	}

	documents := make([]models.Document, 0, len(chunks))
	for i, chunk := range chunks {
		metadata := map[string]any{
			"assignedTo":      key,
			"assignedToId":    a.MostCommonValue(records, "assignedToId"),
			"company":         companyName,
			"generatedAt":     a.LatestDate(records, "generatedAt"),
			"updatedAt":       a.LatestDate(records, "updatedAt"),
			"projectCity":     strings.Join(a.UniqueValues(records, "projectCity"), ", "),
			"projectCategory": strings.Join(a.UniqueValues(records, "projectCategory"), ", "),
			"projectStage":    strings.Join(a.UniqueValues(records, "projectStage"), ", "),
			"projectSource":   strings.Join(a.UniqueValues(records, "projectSource"), ", "),
			"chunk_index":     i,
			"total_chunks":    len(chunks),
			"total_leads":     len(records),
			"lead_ids":        strings.Join(leadIDs, ", "),
		}

		documents = append(documents, models.Document{
			ID:       fmt.Sprintf("%s_%s_%d", companyName, key, i),
			Text:     chunk,
			Metadata: dropEmptyMetadata(metadata),
		})
	}
	return documents, nil
}

// AssemblePerRecord produces one document per lead, carrying the composite
// grouping key in metadata. This is the variant the process-only endpoint
// uses; no chunking is needed because one lead's paragraph fits the window.
func (a *Assembler) AssemblePerRecord(groups *Groups, companyName string) []models.Document {
	var documents []models.Document

	for _, key := range groups.Keys() {
		for _, record := range groups.Get(key) {
			text, err := a.recordFlattener.Flatten(record, companyName)
			if err != nil {
				logger.Warn("lead flattening failed, skipping record",
					"lead", leadID(record), "error", &RecordProcessingError{LeadID: leadID(record), Err: err})
				continue
			}

			city := Get(record, "clientDetails.city")
			if a.extractor.IsEmpty(city) {
				city = record["city"]
			}
			updatedAt := record["updatedAt"]
			if a.extractor.IsEmpty(updatedAt) {
				updatedAt = record["updated_at"]
			}

			metadata := map[string]any{
				"company":      companyName,
				"leadId":       leadID(record),
				"createdById":  Stringify(record["createdById"]),
				"createdBy":    Stringify(record["createdBy"]),
				"assignedToId": Stringify(record["assignedToId"]),
				"assignedTo":   Stringify(record["assignedTo"]),
				"city":         Stringify(city),
				"updatedAt":    Stringify(updatedAt),
				"groupingKey":  key,
			}

			documents = append(documents, models.Document{
				ID:       leadID(record),
				Text:     text,
				Metadata: dropEmptyMetadata(metadata),
			})
		}
	}
	return documents
}

// dropEmptyMetadata removes keys whose value is an empty string or nil.
// Integer counts stay even at zero: chunk_index is zero-based by contract.
func dropEmptyMetadata(metadata map[string]any) map[string]any {
	cleaned := make(map[string]any, len(metadata))
	for key, value := range metadata {
		switch v := value.(type) {
		case nil:
			continue
		case string:
			if strings.TrimSpace(v) == "" {
				continue
			}
		}
		cleaned[key] = value
	}
	return cleaned
}

// MostCommonValue returns the most frequent non-empty value of a field across
// records; ties go to the value seen first. Empty when no usable values.
func (a *Assembler) MostCommonValue(records []map[string]any, field string) string {
	counts := map[string]int{}
	var order []string

	for _, record := range records {
		raw := record[field]
		if a.extractor.IsEmpty(raw) {
			continue
		}
		value := Stringify(raw)
		if value == "" {
			continue
		}
		if _, seen := counts[value]; !seen {
			order = append(order, value)
		}
		counts[value]++
	}

	best := ""
	bestCount := 0
	for _, value := range order {
		if counts[value] > bestCount {
			best = value
			bestCount = counts[value]
		}
	}
	return best
}

// LatestDate returns the lexicographic maximum of a field's date strings,
// which orders correctly for the ISO-style timestamps the store holds.
func (a *Assembler) LatestDate(records []map[string]any, field string) string {
	var dates []string
	for _, record := range records {
		raw := record[field]
		if a.extractor.IsEmpty(raw) {
			continue
		}
		switch v := raw.(type) {
		case time.Time:
			dates = append(dates, v.UTC().Format(time.RFC3339))
		default:
			if value := Stringify(raw); value != "" {
				dates = append(dates, value)
			}
		}
	}
	if len(dates) == 0 {
		return ""
	}

	latest := dates[0]
	for _, date := range dates[1:] {
		if date > latest {
			latest = date
		}
	}
	return latest
}

// UniqueValues returns the sorted distinct non-empty, non-placeholder values
// of a field across records.
func (a *Assembler) UniqueValues(records []map[string]any, field string) []string {
	seen := map[string]struct{}{}
	for _, record := range records {
		raw := record[field]
		if a.extractor.IsEmpty(raw) {
			continue
		}
		value := Stringify(raw)
		if value == "" || a.extractor.IsEmpty(value) {
			continue
		}
		seen[value] = struct{}{}
	}

	values := make([]string, 0, len(seen))
	for value := range seen {
		values = append(values, value)
	}
	sort.Strings(values)
	return values
}
