package services

import (
	"context"
	"fmt"
	"time"

	"lead-rag-platform/internal/ai"
	"lead-rag-platform/internal/config"
	"lead-rag-platform/internal/database"
	"lead-rag-platform/internal/leads"
	"lead-rag-platform/internal/logger"
	"lead-rag-platform/models"
	"lead-rag-platform/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// LeadService runs the ingestion pipeline: fetch leads, flatten and group
// them, split into chunks, embed, and rebuild the per-company chunk index.
type LeadService struct {
	stores    *database.CompanyStoreManager
	embedder  *ai.Embedder
	syncCache *SyncCache
	assembler *leads.Assembler
	strategy  leads.Strategy
}

func NewLeadService(cfg *config.Config, stores *database.CompanyStoreManager, embedder *ai.Embedder, syncCache *SyncCache) (*LeadService, error) {
	fields := leads.DefaultFieldPriority()
	if cfg.FieldPriority != "" {
		parsed, err := leads.ParseFieldSpecs(cfg.FieldPriority)
		if err != nil {
			return nil, fmt.Errorf("invalid FIELD_PRIORITY: %w", err)
		}
		fields = parsed
	}

	splitter, err := leads.NewSplitter(cfg.MaxChunkSize)
	if err != nil {
		return nil, err
	}

	assembler := leads.NewAssembler(
		splitter,
		leads.NewFlattener(fields, cfg.TreatZeroAsEmpty),
		leads.NewRecordFlattener(fields),
	)

	return &LeadService{
		stores:    stores,
		embedder:  embedder,
		syncCache: syncCache,
		assembler: assembler,
		strategy:  leads.Strategy(cfg.GroupingStrategy),
	}, nil
}

// ReindexResult describes the outcome of one indexing run.
type ReindexResult struct {
	RunID         string                   `json:"run_id"`
	Company       string                   `json:"company"`
	Status        string                   `json:"status"` // indexed, up_to_date, no_leads
	LeadCount     int                      `json:"lead_count"`
	DocumentCount int                      `json:"document_count"`
	EmbeddedCount int                      `json:"embedded_count"`
	DurationMS    int64                    `json:"duration_ms"`
	Summary       *leads.ProcessingSummary `json:"summary,omitempty"`
}

// Reindex rebuilds a company's chunk index from scratch. When the sync cache
// shows every lead unchanged since the last run, the rebuild is skipped.
func (s *LeadService) Reindex(ctx context.Context, company string) (*ReindexResult, error) {
	start := time.Now()
	result := &ReindexResult{RunID: uuid.NewString(), Company: company}

	records, err := s.stores.FetchLeads(ctx, company)
	if err != nil {
		return nil, err
	}
	result.LeadCount = len(records)

	if len(records) == 0 {
		result.Status = "no_leads"
		result.DurationMS = time.Since(start).Milliseconds()
		return result, nil
	}

	if s.syncCache.AllUnchanged(ctx, company, records) {
		logger.Info("lead index is up to date", "company", company, "leads", len(records))
		result.Status = "up_to_date"
		result.DurationMS = time.Since(start).Milliseconds()
		return result, nil
	}

	groups, err := leads.GroupRecords(records, s.strategy)
	if err != nil {
		return nil, err
	}

	docs := s.assembler.Assemble(groups, company)
	result.DocumentCount = len(docs)

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Text
	}
	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding failed for %s: %w", company, err)
	}

	chunks := make([]any, 0, len(docs))
	for i, doc := range docs {
		if vectors[i] == nil {
			continue
		}
		chunk, err := buildChunk(doc, vectors[i])
		if err != nil {
			logger.Warn("skipping chunk", "doc_id", doc.ID, "error", err)
			continue
		}
		chunks = append(chunks, chunk)
	}
	result.EmbeddedCount = len(chunks)

	if err := s.replaceIndex(ctx, company, chunks); err != nil {
		return nil, err
	}

	if err := s.stores.RegisterCompany(ctx, company); err != nil {
		logger.Warn("failed to register company", "company", company, "error", err)
	}
	if err := s.stores.MarkIndexed(ctx, company, len(chunks)); err != nil {
		logger.Warn("failed to record index run", "company", company, "error", err)
	}
	s.syncCache.Store(ctx, company, records)

	result.Status = "indexed"
	result.Summary = leads.Summarize(groups)
	result.DurationMS = time.Since(start).Milliseconds()
	logger.Info("reindex complete",
		"company", company,
		"run_id", result.RunID,
		"leads", result.LeadCount,
		"documents", result.DocumentCount,
		"embedded", result.EmbeddedCount,
		"duration_ms", result.DurationMS)
	return result, nil
}

func buildChunk(doc models.Document, vector []float32) (*models.LeadChunkIndex, error) {
	compressed, algorithm, err := utils.CompressText(doc.Text)
	if err != nil {
		return nil, err
	}

	return &models.LeadChunkIndex{
		DocID:       doc.ID,
		Company:     metaString(doc.Metadata, "company"),
		GroupKey:    groupKeyOf(doc.Metadata),
		ChunkIndex:  metaInt(doc.Metadata, "chunk_index"),
		TotalChunks: metaInt(doc.Metadata, "total_chunks"),
		Text:        compressed,
		Compressed:  algorithm != utils.CompressionNone,
		Compression: string(algorithm),
		Vector:      vector,
		Metadata:    doc.Metadata,
	}, nil
}

// replaceIndex swaps the stored chunks atomically enough for this workload:
// old chunks go first so stale groups never survive a shrinking rebuild.
func (s *LeadService) replaceIndex(ctx context.Context, company string, chunks []any) error {
	db, err := s.stores.GetCompanyDB(company)
	if err != nil {
		return err
	}

	col := db.Collection("lead_chunks")
	if _, err := col.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to clear chunk index for %s: %w", company, err)
	}
	if len(chunks) == 0 {
		return nil
	}
	if _, err := col.InsertMany(ctx, chunks); err != nil {
		return fmt.Errorf("failed to store chunk index for %s: %w", company, err)
	}
	return nil
}

// ProcessResult is the dry-run counterpart of ReindexResult: documents are
// built per lead and returned without touching embeddings or the index.
type ProcessResult struct {
	Company   string                   `json:"company"`
	LeadCount int                      `json:"lead_count"`
	Documents []models.Document        `json:"documents"`
	Summary   *leads.ProcessingSummary `json:"summary"`
}

// ProcessOnly flattens every lead into its own document, grouped by the
// creator and assignee pair, without writing anything.
func (s *LeadService) ProcessOnly(ctx context.Context, company string) (*ProcessResult, error) {
	records, err := s.stores.FetchLeads(ctx, company)
	if err != nil {
		return nil, err
	}

	groups := leads.GroupByCreatorAssignee(records)
	docs := s.assembler.AssemblePerRecord(groups, company)

	return &ProcessResult{
		Company:   company,
		LeadCount: len(records),
		Documents: docs,
		Summary:   leads.Summarize(groups),
	}, nil
}

// Companies lists every registered company.
func (s *LeadService) Companies(ctx context.Context) ([]string, error) {
	return s.stores.Companies(ctx)
}

func metaString(metadata map[string]any, key string) string {
	if v, ok := metadata[key].(string); ok {
		return v
	}
	return ""
}

func metaInt(metadata map[string]any, key string) int {
	if v, ok := metadata[key].(int); ok {
		return v
	}
	return 0
}

func groupKeyOf(metadata map[string]any) string {
	if key := metaString(metadata, "groupingKey"); key != "" {
		return key
	}
	return metaString(metadata, "assignedTo")
}
