package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// LeadChunkIndex is one stored chunk in a company's lead_chunks collection:
// the chunk text (optionally compressed), its embedding vector, and the
// metadata emitted by the document assembler. Keeping a denormalized
// collection per company makes the similarity scan and metadata filters
// cheap.
type LeadChunkIndex struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	DocID       string             `bson:"doc_id"`
	Company     string             `bson:"company"`
	GroupKey    string             `bson:"group_key"`
	ChunkIndex  int                `bson:"chunk_index"`
	TotalChunks int                `bson:"total_chunks"`
	Text        []byte             `bson:"text"`
	Compressed  bool               `bson:"compressed"`
	Compression string             `bson:"compression,omitempty"`
	Vector      []float32          `bson:"vector,omitempty"`
	Metadata    map[string]any     `bson:"metadata"`
}
