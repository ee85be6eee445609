// Package sqlite provides a SQLite implementation of the RecordCache interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/ersonp/dex-core/internal/domain/entities"
	"github.com/ersonp/dex-core/internal/infrastructure/config"
)

// Repository implements ports.RecordCache using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	// The pragmas ride in the DSN so that every connection in the
	// database/sql pool gets them, not just the first one opened.
	// WAL allows concurrent readers and writers; the busy timeout
	// covers writers contending for the single write lock.
	dsn := cfg.Path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	return &Repository{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	-- Primary record cache (/pokemon/{name} payloads)
	CREATE TABLE IF NOT EXISTS pokemon (
		id INTEGER NOT NULL,
		name TEXT NOT NULL UNIQUE,
		data TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_pokemon_name ON pokemon(name);

	-- Species record cache (/pokemon-species/{name} payloads)
	CREATE TABLE IF NOT EXISTS pokemon_species (
		id INTEGER NOT NULL,
		name TEXT NOT NULL UNIQUE,
		data TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_species_name ON pokemon_species(name);

	-- Question log (every answered question)
	CREATE TABLE IF NOT EXISTS question_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		question TEXT NOT NULL,
		pokemon_name TEXT,
		intent_type TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_question_log_name ON question_log(pokemon_name);
	CREATE INDEX IF NOT EXISTS idx_question_log_created ON question_log(created_at);
	`

	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// FindPokemon returns the cached primary payload for a name, or (nil, nil)
// when the name is not cached.
func (r *Repository) FindPokemon(ctx context.Context, name string) (json.RawMessage, error) {
	return r.find(ctx, "pokemon", name)
}

// SavePokemon upserts a primary payload keyed by its lowercase name.
func (r *Repository) SavePokemon(ctx context.Context, payload json.RawMessage) error {
	return r.save(ctx, "pokemon", payload)
}

// FindSpecies returns the cached species payload for a name, or (nil, nil)
// when the name is not cached.
func (r *Repository) FindSpecies(ctx context.Context, name string) (json.RawMessage, error) {
	return r.find(ctx, "pokemon_species", name)
}

// SaveSpecies upserts a species payload keyed by its lowercase name.
func (r *Repository) SaveSpecies(ctx context.Context, payload json.RawMessage) error {
	return r.save(ctx, "pokemon_species", payload)
}

// find looks up a payload by lowercase name. A miss is not an error.
func (r *Repository) find(ctx context.Context, table, name string) (json.RawMessage, error) {
	query := fmt.Sprintf(`SELECT data FROM %s WHERE name = ?`, table)
	row := r.db.QueryRowContext(ctx, query, entities.NormalizeName(name))

	var data []byte
	err := row.Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, &entities.StorageError{Detail: "reading " + table, Err: err}
	}
	return data, nil
}

// save upserts a payload keyed by its lowercase name. A payload without
// a name field is invalid and silently ignored rather than rejected.
func (r *Repository) save(ctx context.Context, table string, payload json.RawMessage) error {
	id, name := entities.PayloadIdentity(payload)
	if name == "" {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, data, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			id = excluded.id,
			data = excluded.data,
			updated_at = CURRENT_TIMESTAMP
	`, table)
	_, err := r.db.ExecContext(ctx, query, id, name, string(payload))
	if err != nil {
		return &entities.StorageError{Detail: "saving " + table, Err: err}
	}
	return nil
}

// LogQuestion appends an answered question to the question log.
func (r *Repository) LogQuestion(ctx context.Context, question, pokemonName, intentType string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO question_log (question, pokemon_name, intent_type) VALUES (?, ?, ?)`,
		question, pokemonName, intentType,
	)
	if err != nil {
		return &entities.StorageError{Detail: "logging question", Err: err}
	}
	return nil
}

// CountPokemon returns the number of cached primary records.
func (r *Repository) CountPokemon(ctx context.Context) (int, error) {
	return r.count(ctx, "pokemon")
}

// CountSpecies returns the number of cached species records.
func (r *Repository) CountSpecies(ctx context.Context) (int, error) {
	return r.count(ctx, "pokemon_species")
}

// CountQuestions returns the number of logged questions.
func (r *Repository) CountQuestions(ctx context.Context) (int, error) {
	return r.count(ctx, "question_log")
}

func (r *Repository) count(ctx context.Context, table string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)).Scan(&n)
	if err != nil {
		return 0, &entities.StorageError{Detail: "counting " + table, Err: err}
	}
	return n, nil
}
