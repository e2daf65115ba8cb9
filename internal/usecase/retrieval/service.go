package retrieval

import (
	"context"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/docask/docask/internal/domain"
	"github.com/docask/docask/internal/domain/vector"
)

// DefaultMinScore is the similarity threshold; documents at or below it are dropped.
const DefaultMinScore = 0.5

// DefaultMaxConcurrent bounds the document embedding fan-out.
const DefaultMaxConcurrent = 8

// Service ranks documents against a query by embedding similarity.
//
// The query and document embedders must share one embedding model:
// cosine similarity is only meaningful within a single embedding space.
// They are separate fields because their failure policies differ — a
// query embedding failure aborts retrieval, a document embedding
// failure degrades that one document to score 0.
type Service struct {
	queryEmbedder Embedder
	docEmbedder   Embedder
	minScore      float64
	maxConcurrent int
	logger        *zap.Logger
}

// New creates a retrieval service with default threshold and fan-out bound.
func New(queryEmbedder, docEmbedder Embedder, logger *zap.Logger) *Service {
	return &Service{
		queryEmbedder: queryEmbedder,
		docEmbedder:   docEmbedder,
		minScore:      DefaultMinScore,
		maxConcurrent: DefaultMaxConcurrent,
		logger:        logger,
	}
}

// WithMinScore overrides the similarity threshold (strict >).
func (s *Service) WithMinScore(minScore float64) *Service {
	s.minScore = minScore
	return s
}

// WithMaxConcurrent overrides the fan-out bound. 0 means unbounded.
func (s *Service) WithMaxConcurrent(n int) *Service {
	s.maxConcurrent = n
	return s
}

// Retrieve embeds the query and every document, scores each document by
// cosine similarity and returns the surviving set sorted descending by
// score (stable for equal scores). Every failure degrades rather than
// propagating: an unusable query embedding yields an empty result, a
// single document's failure only zeroes that document's score.
func (s *Service) Retrieve(ctx context.Context, query string, docs []domain.Document) []domain.ScoredDocument {
	queryResult, err := s.queryEmbedder.Embed(ctx, query)
	if err != nil || len(queryResult.Embedding) == 0 {
		s.logger.Error("Query embedding unavailable, aborting retrieval", zap.Error(err))
		return nil
	}
	queryVec := queryResult.Embedding

	scores := make([]float64, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	if s.maxConcurrent > 0 {
		g.SetLimit(s.maxConcurrent)
	}
	for i, doc := range docs {
		g.Go(func() error {
			result, err := s.docEmbedder.Embed(gctx, doc.Content)
			if err != nil {
				// Per-document isolation: a failed embedding scores 0.
				s.logger.Warn("Document embedding failed",
					zap.String("filename", doc.Filename),
					zap.Error(err),
				)
				return nil
			}
			scores[i] = vector.Cosine(queryVec, result.Embedding)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	ranked := make([]domain.ScoredDocument, 0, len(docs))
	for i, doc := range docs {
		if scores[i] > s.minScore {
			ranked = append(ranked, domain.ScoredDocument{Document: doc, Score: scores[i]})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	s.logger.Info("Retrieval finished",
		zap.Int("documents", len(docs)),
		zap.Int("relevant", len(ranked)),
		zap.Float64("min_score", s.minScore),
	)

	return ranked
}
