package services

import (
	"context"
	"fmt"

	"lead-rag-platform/internal/ai"
)

// AnswerService ties retrieval and generation together: search for relevant
// lead chunks, then ask the model to answer from them.
type AnswerService struct {
	search *SearchService
	gemini *ai.GeminiClient
}

func NewAnswerService(search *SearchService, gemini *ai.GeminiClient) *AnswerService {
	return &AnswerService{search: search, gemini: gemini}
}

// Answer holds the generated reply plus the chunks it was grounded on.
type Answer struct {
	Question string      `json:"question"`
	Company  string      `json:"company"`
	Answer   string      `json:"answer"`
	Sources  []SearchHit `json:"sources,omitempty"`
}

func (s *AnswerService) Ask(ctx context.Context, company, question string, filters map[string]string) (*Answer, error) {
	hits, err := s.search.Search(ctx, company, question, filters)
	if err != nil {
		return nil, err
	}

	if len(hits) == 0 {
		return &Answer{
			Question: question,
			Company:  company,
			Answer:   "No lead data is indexed for this company yet. Run an index update first.",
		}, nil
	}

	chunks := make([]string, len(hits))
	for i, hit := range hits {
		chunks[i] = hit.Text
	}

	reply, err := s.gemini.Answer(ctx, question, chunks)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	return &Answer{
		Question: question,
		Company:  company,
		Answer:   reply,
		Sources:  hits,
	}, nil
}
