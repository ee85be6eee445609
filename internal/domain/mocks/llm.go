// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"

	"github.com/ersonp/dex-core/internal/domain/entities"
)

// LLMClient is a mock implementation of ports.LLMClient.
type LLMClient struct {
	// ExtractIntent return values
	Intent     entities.Intent
	ExtractErr error

	// SynthesizeAnswer return values
	Answer        string
	SynthesizeErr error

	// Call tracking
	ExtractCalls    int
	SynthesizeCalls int
	LastEvolution   []string
}

// ExtractIntent returns the configured intent or error.
func (m *LLMClient) ExtractIntent(ctx context.Context, question string) (entities.Intent, error) {
	m.ExtractCalls++
	if m.ExtractErr != nil {
		return entities.Intent{}, m.ExtractErr
	}
	return m.Intent, nil
}

// SynthesizeAnswer returns the configured answer or error.
func (m *LLMClient) SynthesizeAnswer(ctx context.Context, question string, pokemon entities.PokemonSummary, species entities.SpeciesSummary, evolution []string) (string, error) {
	m.SynthesizeCalls++
	m.LastEvolution = evolution
	if m.SynthesizeErr != nil {
		return "", m.SynthesizeErr
	}
	return m.Answer, nil
}
