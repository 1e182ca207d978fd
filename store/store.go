// Package store loads and saves worlds by name.
package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/milk9111/wayfarer/levels"
	"github.com/milk9111/wayfarer/world"
)

var (
	ErrWorldNotFound = errors.New("store: world not found")
	ErrInvalidName   = errors.New("store: invalid world name")
)

// Store persists world files. Worlds come back fully decoded against the
// store's tile types.
type Store interface {
	LoadWorld(name string) (*world.World, error)
	SaveWorld(name string, w *world.World) error
	ListWorlds() ([]string, error)
	Close() error
}

const (
	KindFile     = "file"
	KindPostgres = "postgres"
)

// Open builds the store named by kind. dsn is only used by postgres.
func Open(kind, dsn string, types world.TileTypes) (Store, error) {
	switch strings.ToLower(kind) {
	case "", KindFile:
		return NewFileStore(levels.Dir, levels.LevelsFS, types), nil
	case KindPostgres:
		if dsn == "" {
			return nil, fmt.Errorf("store: postgres needs a dsn")
		}
		return NewPostgresStore(dsn, types)
	}
	return nil, fmt.Errorf("store: unknown kind %q", kind)
}

func validName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
