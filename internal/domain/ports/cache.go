package ports

import (
	"context"
	"encoding/json"
)

// RecordCache is the persistent read-through cache for upstream record
// payloads, keyed by lowercase name. Records are never deleted and
// never expire.
type RecordCache interface {
	// EnsureSchema creates the database schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close closes the database connection.
	Close() error

	// FindPokemon returns the cached primary payload for a name, or
	// (nil, nil) when the name is not cached. Lookup is case-insensitive.
	FindPokemon(ctx context.Context, name string) (json.RawMessage, error)

	// SavePokemon upserts a primary payload keyed by its lowercase name.
	// A payload without a name field is silently ignored.
	SavePokemon(ctx context.Context, payload json.RawMessage) error

	// FindSpecies returns the cached species payload for a name, or
	// (nil, nil) when the name is not cached.
	FindSpecies(ctx context.Context, name string) (json.RawMessage, error)

	// SaveSpecies upserts a species payload keyed by its lowercase name.
	SaveSpecies(ctx context.Context, payload json.RawMessage) error

	// LogQuestion appends an answered question to the question log.
	LogQuestion(ctx context.Context, question, pokemonName, intentType string) error

	// CountPokemon returns the number of cached primary records.
	CountPokemon(ctx context.Context) (int, error)

	// CountSpecies returns the number of cached species records.
	CountSpecies(ctx context.Context) (int, error)

	// CountQuestions returns the number of logged questions.
	CountQuestions(ctx context.Context) (int, error)
}
