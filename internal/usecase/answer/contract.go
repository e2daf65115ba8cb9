package answer

import "context"

// Generator is the consumer interface for chat completion.
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}
