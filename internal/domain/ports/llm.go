// Package ports defines interfaces for external service communication.
package ports

import (
	"context"

	"github.com/ersonp/dex-core/internal/domain/entities"
)

// LLMClient defines the two LLM operations the pipeline needs. Both are
// stateless; implementations are shared across concurrent requests.
type LLMClient interface {
	// ExtractIntent parses a free-text question into a structured intent.
	// A response that is not the demanded JSON object fails with
	// *entities.IntentParseError.
	ExtractIntent(ctx context.Context, question string) (entities.Intent, error)

	// SynthesizeAnswer generates a grounded natural-language answer from
	// the question and the projected record data. The evolution list is
	// optional context; empty means the question is not about evolution.
	// Callers must treat failures as recoverable and fall back to a
	// deterministic answer.
	SynthesizeAnswer(ctx context.Context, question string, pokemon entities.PokemonSummary, species entities.SpeciesSummary, evolution []string) (string, error)
}
