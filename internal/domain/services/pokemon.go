// Package services contains the domain services that drive the
// question-answering pipeline.
package services

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/ersonp/dex-core/internal/domain/ports"
)

// PokemonService resolves record payloads through the cache: a hit
// returns the stored payload verbatim, a miss fetches from the upstream
// API and populates the cache.
type PokemonService struct {
	api    ports.PokeAPI
	cache  ports.RecordCache
	logger *zap.Logger
}

// NewPokemonService creates a new pokemon resolution service.
func NewPokemonService(api ports.PokeAPI, cache ports.RecordCache, logger *zap.Logger) *PokemonService {
	return &PokemonService{
		api:    api,
		cache:  cache,
		logger: logger,
	}
}

// GetPokemon returns the primary record for a name, from cache or upstream.
func (s *PokemonService) GetPokemon(ctx context.Context, name string) (json.RawMessage, error) {
	return s.resolve(ctx, name, "pokemon", s.cache.FindPokemon, s.api.GetPokemon, s.cache.SavePokemon)
}

// GetSpecies returns the species record for a name, from cache or upstream.
func (s *PokemonService) GetSpecies(ctx context.Context, name string) (json.RawMessage, error) {
	return s.resolve(ctx, name, "pokemon_species", s.cache.FindSpecies, s.api.GetSpecies, s.cache.SaveSpecies)
}

// GetEvolutionChain fetches an evolution chain by ID. Chains are not
// cached: they are stable and rarely requested.
func (s *PokemonService) GetEvolutionChain(ctx context.Context, id int) (json.RawMessage, error) {
	return s.api.GetEvolutionChain(ctx, id)
}

// resolve implements cache-or-fetch for one record kind. The cache
// write after a successful fetch is best-effort: a failure is logged
// and the fetched payload still returned. Upstream errors pass through
// untouched; they are already typed domain errors.
func (s *PokemonService) resolve(
	ctx context.Context,
	name, kind string,
	find func(context.Context, string) (json.RawMessage, error),
	fetch func(context.Context, string) (json.RawMessage, error),
	save func(context.Context, json.RawMessage) error,
) (json.RawMessage, error) {
	cached, err := find(ctx, name)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		return cached, nil
	}

	payload, err := fetch(ctx, name)
	if err != nil {
		return nil, err
	}

	if err := save(ctx, payload); err != nil {
		s.logger.Warn("cache write failed",
			zap.String("kind", kind),
			zap.String("name", name),
			zap.Error(err))
	}

	return payload, nil
}
