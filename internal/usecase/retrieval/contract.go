package retrieval

import (
	"context"

	"github.com/docask/docask/internal/domain"
)

// Embedder is the consumer interface for text vectorization.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
