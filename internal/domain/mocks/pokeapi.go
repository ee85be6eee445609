package mocks

import (
	"context"
	"encoding/json"
	"sync"
)

// PokeAPI is a mock implementation of ports.PokeAPI. Safe for concurrent
// use; the orchestrator fetches both records from separate goroutines.
type PokeAPI struct {
	mu sync.Mutex

	// GetPokemon return values
	Pokemon    json.RawMessage
	PokemonErr error

	// GetSpecies return values
	Species    json.RawMessage
	SpeciesErr error

	// GetEvolutionChain return values
	Chain    json.RawMessage
	ChainErr error

	// Call tracking
	PokemonCalls int
	SpeciesCalls int
	ChainCalls   int
}

// GetPokemon returns the configured payload or error.
func (m *PokeAPI) GetPokemon(ctx context.Context, nameOrID string) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PokemonCalls++
	if m.PokemonErr != nil {
		return nil, m.PokemonErr
	}
	return m.Pokemon, nil
}

// GetSpecies returns the configured payload or error.
func (m *PokeAPI) GetSpecies(ctx context.Context, nameOrID string) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SpeciesCalls++
	if m.SpeciesErr != nil {
		return nil, m.SpeciesErr
	}
	return m.Species, nil
}

// GetEvolutionChain returns the configured payload or error.
func (m *PokeAPI) GetEvolutionChain(ctx context.Context, id int) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ChainCalls++
	if m.ChainErr != nil {
		return nil, m.ChainErr
	}
	return m.Chain, nil
}
