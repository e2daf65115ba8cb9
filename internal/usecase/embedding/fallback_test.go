package embedding

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/docask/docask/internal/domain"
)

type stubEmbedder struct {
	vec []float32
	err error
}

func (s *stubEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	if s.err != nil {
		return domain.EmbeddingResult{}, s.err
	}
	return domain.EmbeddingResult{Embedding: s.vec, TotalTokens: 3}, nil
}

func TestFallbackEmbedder_Passthrough(t *testing.T) {
	inner := &stubEmbedder{vec: []float32{1, 2, 3}}
	fb := NewFallbackEmbedder(inner, "test", "test-model", zap.NewNop())

	result, err := fb.Embed(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if len(result.Embedding) != 3 || result.Embedding[0] != 1 {
		t.Errorf("unexpected embedding: %v", result.Embedding)
	}
	if result.TotalTokens != 3 {
		t.Errorf("total_tokens = %d, expected 3", result.TotalTokens)
	}
}

func TestFallbackEmbedder_ZeroVectorOnError(t *testing.T) {
	inner := &stubEmbedder{err: errors.New("provider down")}
	fb := NewFallbackEmbedder(inner, "test", "test-model", zap.NewNop())

	result, err := fb.Embed(context.Background(), "hello")
	if err != nil {
		t.Fatalf("fallback must not return an error, got: %v", err)
	}
	if len(result.Embedding) != FallbackDimensions {
		t.Fatalf("fallback vector has %d dims, expected %d", len(result.Embedding), FallbackDimensions)
	}
	for i, v := range result.Embedding {
		if v != 0 {
			t.Fatalf("fallback vec[%d] = %f, expected 0", i, v)
		}
	}
}
