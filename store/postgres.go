package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/milk9111/wayfarer/world"
)

// PostgresStore keeps world files as JSONB rows keyed by name.
type PostgresStore struct {
	db    *sql.DB
	types world.TileTypes
}

func NewPostgresStore(connectionString string, types world.TileTypes) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: ping database: %w", err)
	}

	s := &PostgresStore{db: db, types: types}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: init schema: %w", err)
	}
	return s, nil
}

func (s *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS worlds (
		name TEXT PRIMARY KEY,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		data JSONB NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *PostgresStore) LoadWorld(name string) (*world.World, error) {
	if err := validName(name); err != nil {
		return nil, err
	}

	var data []byte
	err := s.db.QueryRow(`SELECT data FROM worlds WHERE name = $1`, name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrWorldNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("store: load %s: %w", name, err)
	}

	w, err := world.Decode(data, s.types)
	if err != nil {
		return nil, fmt.Errorf("store: load %s: %w", name, err)
	}
	if w.Name == "" {
		w.Name = name
	}
	return w, nil
}

func (s *PostgresStore) SaveWorld(name string, w *world.World) error {
	if err := validName(name); err != nil {
		return err
	}
	if w == nil {
		return fmt.Errorf("store: save %s: nil world", name)
	}
	data, err := world.Encode(w)
	if err != nil {
		return fmt.Errorf("store: save %s: %w", name, err)
	}

	query := `
	INSERT INTO worlds (name, width, height, data)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (name)
	DO UPDATE SET
		width = $2, height = $3, data = $4,
		updated_at = NOW()
	`
	if _, err := s.db.Exec(query, name, w.Width, w.Height, string(data)); err != nil {
		return fmt.Errorf("store: save %s: %w", name, err)
	}
	return nil
}

func (s *PostgresStore) ListWorlds() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM worlds ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("store: list: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	return names, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
