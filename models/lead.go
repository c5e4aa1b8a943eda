package models

// LeadRecord is one raw lead as fetched from a company's store: a loosely
// typed, string-keyed mapping. The pipeline never mutates records.
type LeadRecord = map[string]any

// Document is the output unit of the processing core: the text of one chunk
// plus the metadata the search side filters on. Metadata holds only scalar,
// non-empty values.
type Document struct {
	ID       string         `json:"id" bson:"doc_id"`
	Text     string         `json:"text" bson:"text"`
	Metadata map[string]any `json:"metadata" bson:"metadata"`
}
