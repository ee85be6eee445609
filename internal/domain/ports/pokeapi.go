package ports

import (
	"context"
	"encoding/json"
)

// PokeAPI defines read-only lookups against the upstream data API.
// Implementations normalize identifiers to lowercase, never retry, and
// translate failures into typed domain errors:
// *entities.NotFoundError on a remote 404, *entities.UpstreamError
// otherwise (Unavailable set for connection-level failures).
type PokeAPI interface {
	// GetPokemon fetches the primary record for a pokemon by name or ID.
	GetPokemon(ctx context.Context, nameOrID string) (json.RawMessage, error)

	// GetSpecies fetches the species record for a pokemon by name or ID.
	GetSpecies(ctx context.Context, nameOrID string) (json.RawMessage, error)

	// GetEvolutionChain fetches an evolution chain by its numeric ID.
	GetEvolutionChain(ctx context.Context, id int) (json.RawMessage, error)
}
