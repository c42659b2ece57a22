package retrieval

import (
	"context"
	"strings"

	"github.com/vua-solutions/vua/internal/models"
)

// RelevanceThreshold is the minimum score a passage must exceed to be
// included in the prompt context.
const RelevanceThreshold = 0.7

// passageSeparator joins kept passages into one context block.
const passageSeparator = "\n\n---\n\n"

// Retriever returns ranked passages from a semantic index for a query.
type Retriever interface {
	Retrieve(ctx context.Context, query string, topK int) ([]models.Passage, error)
}

// BuildQuery personalizes a retrieval query by appending the user's
// serialized profile to the raw message.
func BuildQuery(message string, profile models.Profile) string {
	return message + " " + profile.JSON()
}

// JoinContext concatenates the text of passages scoring strictly above
// the threshold. An empty result is valid: the pipeline still proceeds
// to generation with no context.
func JoinContext(passages []models.Passage, threshold float64) string {
	var kept []string
	for _, p := range passages {
		if p.Score > threshold {
			kept = append(kept, p.Text)
		}
	}
	return strings.Join(kept, passageSeparator)
}
