package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/milk9111/wayfarer/world"
)

const worldExt = ".json"

// FileStore keeps one JSON file per world in a directory. Reads fall back
// to a read-only fs, usually the embedded levels, so a fresh checkout still
// has its bundled worlds.
type FileStore struct {
	dir      string
	fallback fs.FS
	types    world.TileTypes
}

func NewFileStore(dir string, fallback fs.FS, types world.TileTypes) *FileStore {
	return &FileStore{dir: dir, fallback: fallback, types: types}
}

func (s *FileStore) LoadWorld(name string) (*world.World, error) {
	if err := validName(name); err != nil {
		return nil, err
	}

	data, err := s.read(name + worldExt)
	if err != nil {
		return nil, err
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

func (s *FileStore) read(file string) ([]byte, error) {
	if s.dir != "" {
		data, err := os.ReadFile(filepath.Join(s.dir, file))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("store: read %s: %w", file, err)
		}
	}
	if s.fallback != nil {
		data, err := fs.ReadFile(s.fallback, file)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("store: read %s: %w", file, err)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrWorldNotFound, strings.TrimSuffix(file, worldExt))
}

// SaveWorld writes the world pretty-printed, replacing any previous file
// atomically.
func (s *FileStore) SaveWorld(name string, w *world.World) error {
	if err := validName(name); err != nil {
		return err
	}
	if w == nil {
		return fmt.Errorf("store: save %s: nil world", name)
	}
	if s.dir == "" {
		return fmt.Errorf("store: save %s: no directory", name)
	}

	data, err := world.Encode(w)
	if err != nil {
		return fmt.Errorf("store: save %s: %w", name, err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("store: save %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("store: save %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("store: save %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("store: save %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name+worldExt)); err != nil {
		return fmt.Errorf("store: save %s: %w", name, err)
	}
	return nil
}

// ListWorlds merges the directory and fallback listings.
func (s *FileStore) ListWorlds() ([]string, error) {
	seen := map[string]bool{}

	if s.dir != "" {
		entries, err := os.ReadDir(s.dir)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("store: list: %w", err)
		}
		collectNames(entries, seen)
	}
	if s.fallback != nil {
		entries, err := fs.ReadDir(s.fallback, ".")
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("store: list: %w", err)
		}
		collectNames(entries, seen)
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func collectNames(entries []fs.DirEntry, seen map[string]bool) {
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if name, ok := strings.CutSuffix(e.Name(), worldExt); ok {
			seen[name] = true
		}
	}
}

// WorldPath is where SaveWorld puts name.
func (s *FileStore) WorldPath(name string) string {
	return filepath.Join(s.dir, name+worldExt)
}

func (s *FileStore) Close() error {
	return nil
}
