package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ersonp/dex-core/internal/domain/entities"
	"github.com/ersonp/dex-core/internal/domain/mocks"
)

func TestPokemonService_GetPokemon_CacheHit(t *testing.T) {
	sentinel := json.RawMessage(`{"id": 1, "name": "bulbasaur", "sentinel": true}`)

	cache := mocks.NewRecordCache()
	cache.PokemonRows["bulbasaur"] = sentinel
	api := &mocks.PokeAPI{}

	svc := NewPokemonService(api, cache, zap.NewNop())

	payload, err := svc.GetPokemon(context.Background(), "Bulbasaur")
	require.NoError(t, err)

	assert.Equal(t, sentinel, payload, "cached payload must be returned unchanged")
	assert.Zero(t, api.PokemonCalls, "cache hit must never call upstream")
}

func TestPokemonService_GetPokemon_CacheMiss(t *testing.T) {
	fetched := json.RawMessage(`{"id": 6, "name": "charizard"}`)

	cache := mocks.NewRecordCache()
	api := &mocks.PokeAPI{Pokemon: fetched}

	svc := NewPokemonService(api, cache, zap.NewNop())

	payload, err := svc.GetPokemon(context.Background(), "charizard")
	require.NoError(t, err)

	assert.Equal(t, fetched, payload)
	assert.Equal(t, 1, api.PokemonCalls)
	assert.Equal(t, fetched, cache.PokemonRows["charizard"], "fetched payload must be cached")
}

func TestPokemonService_GetPokemon_CacheWriteFailureIsNotFatal(t *testing.T) {
	fetched := json.RawMessage(`{"id": 6, "name": "charizard"}`)

	cache := mocks.NewRecordCache()
	cache.SaveErr = &entities.StorageError{Detail: "disk full"}
	api := &mocks.PokeAPI{Pokemon: fetched}

	svc := NewPokemonService(api, cache, zap.NewNop())

	payload, err := svc.GetPokemon(context.Background(), "charizard")
	require.NoError(t, err, "a cache write failure must not fail the resolve")
	assert.Equal(t, fetched, payload)
}

func TestPokemonService_GetPokemon_NotFound(t *testing.T) {
	cache := mocks.NewRecordCache()
	api := &mocks.PokeAPI{PokemonErr: &entities.NotFoundError{Name: "missingno"}}

	svc := NewPokemonService(api, cache, zap.NewNop())

	_, err := svc.GetPokemon(context.Background(), "missingno")
	require.Error(t, err)

	var notFound *entities.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "missingno", notFound.Name)
	assert.Zero(t, cache.SaveCalls)
}

func TestPokemonService_GetSpecies(t *testing.T) {
	fetched := json.RawMessage(`{"id": 6, "name": "charizard", "capture_rate": 45}`)

	cache := mocks.NewRecordCache()
	api := &mocks.PokeAPI{Species: fetched}

	svc := NewPokemonService(api, cache, zap.NewNop())

	payload, err := svc.GetSpecies(context.Background(), "charizard")
	require.NoError(t, err)
	assert.Equal(t, fetched, payload)
	assert.Equal(t, fetched, cache.SpeciesRows["charizard"])

	// Second resolve comes from cache.
	_, err = svc.GetSpecies(context.Background(), "charizard")
	require.NoError(t, err)
	assert.Equal(t, 1, api.SpeciesCalls)
}

func TestPokemonService_GetEvolutionChain_Uncached(t *testing.T) {
	chain := json.RawMessage(`{"id": 2, "chain": {}}`)

	cache := mocks.NewRecordCache()
	api := &mocks.PokeAPI{Chain: chain}

	svc := NewPokemonService(api, cache, zap.NewNop())

	payload, err := svc.GetEvolutionChain(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, chain, payload)
	assert.Zero(t, cache.SaveCalls, "evolution chains are not cached")
}
