package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"lead-rag-platform/internal/ai"
	"lead-rag-platform/internal/database"
	"lead-rag-platform/internal/logger"
	"lead-rag-platform/models"
	"lead-rag-platform/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// SearchService answers similarity queries against a company's chunk index.
type SearchService struct {
	stores   *database.CompanyStoreManager
	embedder *ai.Embedder
	topK     int
}

func NewSearchService(stores *database.CompanyStoreManager, embedder *ai.Embedder, topK int) *SearchService {
	if topK <= 0 {
		topK = 4
	}
	return &SearchService{stores: stores, embedder: embedder, topK: topK}
}

// SearchHit is one matched chunk with its decompressed text.
type SearchHit struct {
	DocID    string         `json:"doc_id"`
	Score    float64        `json:"score"`
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata"`
}

// Search embeds the query and ranks stored chunks by cosine similarity.
// Filters narrow the candidate set by exact metadata match before scoring.
func (s *SearchService) Search(ctx context.Context, company, query string, filters map[string]string) ([]SearchHit, error) {
	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	db, err := s.stores.GetCompanyDB(company)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"vector": bson.M{"$exists": true}}
	for key, value := range filters {
		filter["metadata."+key] = value
	}

	cursor, err := db.Collection("lead_chunks").Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to scan chunk index for %s: %w", company, err)
	}
	defer cursor.Close(ctx)

	var hits []SearchHit
	for cursor.Next(ctx) {
		var chunk models.LeadChunkIndex
		if err := cursor.Decode(&chunk); err != nil {
			logger.Warn("skipping undecodable chunk", "company", company, "error", err)
			continue
		}

		score := cosineSimilarity(queryVec, chunk.Vector)
		text, err := utils.DecompressText(chunk.Text, utils.CompressionAlgorithm(chunkAlgorithm(chunk)))
		if err != nil {
			logger.Warn("failed to decompress chunk", "doc_id", chunk.DocID, "error", err)
			continue
		}

		hits = append(hits, SearchHit{
			DocID:    chunk.DocID,
			Score:    score,
			Text:     text,
			Metadata: chunk.Metadata,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > s.topK {
		hits = hits[:s.topK]
	}
	return hits, nil
}

func chunkAlgorithm(chunk models.LeadChunkIndex) string {
	if !chunk.Compressed {
		return string(utils.CompressionNone)
	}
	return chunk.Compression
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
