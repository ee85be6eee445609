package mocks

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/ersonp/dex-core/internal/domain/entities"
)

// RecordCache is an in-memory mock implementation of ports.RecordCache.
// Safe for concurrent use; the orchestrator saves both records from
// separate goroutines.
type RecordCache struct {
	mu sync.Mutex

	PokemonRows map[string]json.RawMessage
	SpeciesRows map[string]json.RawMessage

	FindErr error
	SaveErr error
	LogErr  error

	SaveCalls int
	LogCalls  int
}

// NewRecordCache returns an empty mock cache.
func NewRecordCache() *RecordCache {
	return &RecordCache{
		PokemonRows: make(map[string]json.RawMessage),
		SpeciesRows: make(map[string]json.RawMessage),
	}
}

// EnsureSchema is a no-op.
func (m *RecordCache) EnsureSchema(ctx context.Context) error { return nil }

// Close is a no-op.
func (m *RecordCache) Close() error { return nil }

// FindPokemon returns the stored payload or (nil, nil).
func (m *RecordCache) FindPokemon(ctx context.Context, name string) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	return m.PokemonRows[entities.NormalizeName(name)], nil
}

// SavePokemon stores the payload under its lowercase name.
func (m *RecordCache) SavePokemon(ctx context.Context, payload json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if _, name := entities.PayloadIdentity(payload); name != "" {
		m.PokemonRows[name] = payload
	}
	return nil
}

// FindSpecies returns the stored payload or (nil, nil).
func (m *RecordCache) FindSpecies(ctx context.Context, name string) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	return m.SpeciesRows[entities.NormalizeName(name)], nil
}

// SaveSpecies stores the payload under its lowercase name.
func (m *RecordCache) SaveSpecies(ctx context.Context, payload json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if _, name := entities.PayloadIdentity(payload); name != "" {
		m.SpeciesRows[name] = payload
	}
	return nil
}

// LogQuestion records a log call.
func (m *RecordCache) LogQuestion(ctx context.Context, question, pokemonName, intentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LogCalls++
	return m.LogErr
}

// CountPokemon returns the number of stored primary records.
func (m *RecordCache) CountPokemon(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.PokemonRows), nil
}

// CountSpecies returns the number of stored species records.
func (m *RecordCache) CountSpecies(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SpeciesRows), nil
}

// CountQuestions returns the number of log calls that succeeded.
func (m *RecordCache) CountQuestions(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.LogCalls, nil
}
