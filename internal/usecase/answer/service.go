// Package answer turns ranked documents plus a question into a reply.
package answer

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/docask/docask/internal/domain"
)

// SystemInstruction directs the model to answer only from the supplied
// context and to emit a fixed sentence when the context is insufficient.
const SystemInstruction = "You are a helpful assistant. Answer the question using only the provided context. " +
	`If the context does not contain enough information to answer, reply exactly: "I don't have enough information to answer that."`

// Apology is returned in place of an answer when generation fails.
const Apology = "Sorry, I couldn't generate an answer right now. Please try again later."

// contextSeparator joins ranked document contents.
const contextSeparator = "\n\n"

// Service produces the final answer from ranked documents.
type Service struct {
	gen    Generator
	logger *zap.Logger
}

// New creates an answer service.
func New(gen Generator, logger *zap.Logger) *Service {
	return &Service{gen: gen, logger: logger}
}

// BuildContext joins the ranked documents' contents with blank-line
// separators, preserving rank order.
func BuildContext(docs []domain.ScoredDocument) string {
	parts := make([]string, len(docs))
	for i, d := range docs {
		parts[i] = d.Content
	}
	return strings.Join(parts, contextSeparator)
}

// Answer generates a reply grounded in the ranked documents. Any
// generation failure degrades to the fixed apology string; the error is
// logged, never surfaced.
func (s *Service) Answer(ctx context.Context, query string, docs []domain.ScoredDocument) string {
	user := fmt.Sprintf("Context:\n%s\n\nQuestion: %s", BuildContext(docs), query)

	reply, err := s.gen.Generate(ctx, SystemInstruction, user)
	if err != nil {
		s.logger.Error("Answer generation failed", zap.Error(err))
		return Apology
	}

	return reply
}
