// Package embedding provides decorators around the base embedding transport.
package embedding

import (
	"context"

	"go.uber.org/zap"

	"github.com/docask/docask/internal/domain"
	"github.com/docask/docask/internal/metrics"
)

// FallbackDimensions is the length of the zero vector substituted when
// embedding generation fails.
const FallbackDimensions = 512

// FallbackEmbedder degrades provider failures to a deterministic zero
// vector instead of an error. A zero vector scores 0 against any query,
// so a failed document always ranks last and never aborts the pipeline.
//
// Used for document embeddings only; the query side must fail hard so
// the caller can abort retrieval.
type FallbackEmbedder struct {
	inner    domain.Embedder
	provider string
	model    string
	logger   *zap.Logger
}

// NewFallbackEmbedder wraps an embedder with the zero-vector fallback policy.
func NewFallbackEmbedder(inner domain.Embedder, provider, model string, logger *zap.Logger) *FallbackEmbedder {
	return &FallbackEmbedder{
		inner:    inner,
		provider: provider,
		model:    model,
		logger:   logger,
	}
}

// Embed delegates to the inner embedder, substituting a zero vector on failure.
func (f *FallbackEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	result, err := f.inner.Embed(ctx, text)
	if err != nil {
		metrics.EmbeddingFallbacksTotal.WithLabelValues(f.provider, f.model).Inc()
		f.logger.Warn("Embedding failed, substituting zero vector",
			zap.String("provider", f.provider),
			zap.String("model", f.model),
			zap.Error(err),
		)
		return domain.EmbeddingResult{Embedding: make([]float32, FallbackDimensions)}, nil
	}
	return result, nil
}
