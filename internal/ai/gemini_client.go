package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lead-rag-platform/internal/logger"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"

	genai "github.com/google/generative-ai-go/genai"
)

type GeminiClient struct {
	breaker     *gobreaker.CircuitBreaker
	rateLimiter *rate.Limiter
	client      *genai.Client
	model       string
}

type RateLimits struct {
	RPM int // Requests per minute
	TPM int // Tokens per minute
	RPD int // Requests per day
}

func NewGeminiClient(apiKey, model, tier string) (*GeminiClient, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	limits := getRateLimits(tier)

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "GeminiAPI",
		MaxRequests: 5,
		Interval:    10 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state change", "name", name, "from", from.String(), "to", to.String())
		},
	})

	// RPM limit with some buffer
	rateLimiter := rate.NewLimiter(rate.Limit(float64(limits.RPM)*0.9/60.0), burstFor(limits.RPM))

	return &GeminiClient{
		breaker:     breaker,
		rateLimiter: rateLimiter,
		client:      client,
		model:       model,
	}, nil
}

func getRateLimits(tier string) RateLimits {
	switch tier {
	case "free":
		return RateLimits{RPM: 10, TPM: 250000, RPD: 250}
	case "tier1":
		return RateLimits{RPM: 1000, TPM: 1000000, RPD: 10000}
	case "tier2":
		return RateLimits{RPM: 2000, TPM: 4000000, RPD: 50000}
	default:
		return RateLimits{RPM: 10, TPM: 250000, RPD: 250}
	}
}

// Answer generates a grounded answer for a sales question using only the
// supplied lead context chunks.
func (gc *GeminiClient) Answer(ctx context.Context, question string, contextChunks []string) (string, error) {
	if err := gc.rateLimiter.Wait(ctx); err != nil {
		return "", err
	}

	result, err := gc.breaker.Execute(func() (interface{}, error) {
		model := gc.client.GenerativeModel(gc.model)
		model.SetTemperature(0.2)
		model.SetMaxOutputTokens(2048)

		resp, err := model.GenerateContent(ctx, genai.Text(buildLeadPrompt(question, contextChunks)))
		if err != nil {
			return nil, err
		}
		return resp, nil
	})
	if err != nil {
		if err == gobreaker.ErrOpenState {
			return "I'm experiencing high demand right now. Please try again in a moment.", nil
		}
		return "", err
	}

	return extractText(result.(*genai.GenerateContentResponse)), nil
}

// buildLeadPrompt constrains the model to the retrieved lead data so answers
// never invent leads that are not in the index.
func buildLeadPrompt(question string, contextChunks []string) string {
	var b strings.Builder
	b.WriteString("You are a sales assistant answering questions about a company's lead records.\n")
	b.WriteString("Answer using ONLY the lead data below. If the data does not contain the answer, ")
	b.WriteString("say that the information is not available. Do not invent leads, names, or dates.\n\n")
	for i, chunk := range contextChunks {
		fmt.Fprintf(&b, "Lead data %d:\n%s\n\n", i+1, chunk)
	}
	fmt.Fprintf(&b, "Question: %s", question)
	return b.String()
}

func extractText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}
	return b.String()
}

// Close the client
func (gc *GeminiClient) Close() error {
	if gc.client != nil {
		return gc.client.Close()
	}
	return nil
}
