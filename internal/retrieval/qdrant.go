package retrieval

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/vua-solutions/vua/internal/models"
)

// Embedder converts free text into a vector the index can search with.
// The embedding computation itself is delegated to an external service.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// QdrantConfig contains connection details for the Qdrant index holding
// the pre-built document collection.
type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

// QdrantRetriever queries a Qdrant collection over its REST API. It
// embeds the query text first, then runs a similarity search with
// payloads. Scores come back in cosine-similarity space.
type QdrantRetriever struct {
	client     *resty.Client
	collection string
	embedder   Embedder
}

// NewQdrantRetriever creates a retriever against the given collection.
func NewQdrantRetriever(cfg QdrantConfig, embedder Embedder) *QdrantRetriever {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	client := resty.New().
		SetBaseURL(cfg.URL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	if cfg.APIKey != "" {
		client.SetHeader("api-key", cfg.APIKey)
	}
	return &QdrantRetriever{
		client:     client,
		collection: cfg.Collection,
		embedder:   embedder,
	}
}

type searchRequest struct {
	Vector      []float32 `json:"vector"`
	Limit       int       `json:"limit"`
	WithPayload bool      `json:"with_payload"`
}

type searchResponse struct {
	Result []struct {
		Score   float64        `json:"score"`
		Payload map[string]any `json:"payload"`
	} `json:"result"`
}

// Retrieve embeds the query and returns up to topK passages with their
// relevance scores, highest first.
func (r *QdrantRetriever) Retrieve(ctx context.Context, query string, topK int) ([]models.Passage, error) {
	if topK <= 0 {
		topK = 3
	}

	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	var out searchResponse
	resp, err := r.client.R().
		SetContext(ctx).
		SetBody(searchRequest{Vector: vector, Limit: topK, WithPayload: true}).
		SetResult(&out).
		Post(fmt.Sprintf("/collections/%s/points/search", r.collection))
	if err != nil {
		return nil, fmt.Errorf("qdrant search: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("qdrant search: %s", resp.Status())
	}

	passages := make([]models.Passage, 0, len(out.Result))
	for _, res := range out.Result {
		text, _ := res.Payload["text"].(string)
		passages = append(passages, models.Passage{Text: text, Score: res.Score})
	}
	return passages, nil
}
