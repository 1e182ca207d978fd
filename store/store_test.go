package store

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/wayfarer/levels"
	"github.com/milk9111/wayfarer/prefabs"
	"github.com/milk9111/wayfarer/world"
	"github.com/milk9111/wayfarer/world/worldtest"
)

const tinyWorld = `{
  "name": "tiny",
  "width": 2,
  "height": 1,
  "spawn": {"x": 0, "y": 0},
  "layers": [{"name": "ground", "sprite_sheet": "tileset", "tiles": [[10, 50]]}]
}`

func types() world.TileTypes {
	return world.TileTypes{50: {Name: "rock", Walkable: false}}
}

func TestFileStoreFallback(t *testing.T) {
	fallback := fstest.MapFS{"tiny.json": {Data: []byte(tinyWorld)}}
	s := NewFileStore(t.TempDir(), fallback, types())

	w, err := s.LoadWorld("tiny")
	require.NoError(t, err)
	assert.Equal(t, "tiny", w.Name)
	assert.True(t, w.IsWalkable(world.GridCoord{X: 0, Y: 0}))
	assert.False(t, w.IsWalkable(world.GridCoord{X: 1, Y: 0}))
}

func TestFileStoreDiskWins(t *testing.T) {
	dir := t.TempDir()
	fallback := fstest.MapFS{"tiny.json": {Data: []byte(tinyWorld)}}
	s := NewFileStore(dir, fallback, types())

	w := worldtest.Open(3, 2)
	w.Name = "tiny"
	require.NoError(t, s.SaveWorld("tiny", w))

	got, err := s.LoadWorld("tiny")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Width, "disk copy shadows the fallback")

	_, err = os.Stat(filepath.Join(dir, "tiny.json"))
	require.NoError(t, err)
	leftovers, _ := filepath.Glob(filepath.Join(dir, "*.tmp"))
	assert.Empty(t, leftovers)
}

func TestFileStoreRoundTrip(t *testing.T) {
	s := NewFileStore(t.TempDir(), nil, worldtest.Types())

	w := worldtest.Rows(
		".#.",
		"...",
	)
	w.Name = "saved"
	w.Spawn = world.GridCoord{X: 2, Y: 1}
	blocked := false
	w.Overrides = map[world.CellKey]world.TileOverride{{Layer: 0, X: 0, Y: 1}: {Walkable: &blocked}}

	require.NoError(t, s.SaveWorld("saved", w))
	got, err := s.LoadWorld("saved")
	require.NoError(t, err)

	assert.Equal(t, w.Spawn, got.Spawn)
	assert.False(t, got.IsWalkable(world.GridCoord{X: 1, Y: 0}))
	assert.False(t, got.IsWalkable(world.GridCoord{X: 0, Y: 1}))
	assert.True(t, got.IsWalkable(world.GridCoord{X: 2, Y: 1}))
}

func TestFileStoreErrors(t *testing.T) {
	s := NewFileStore(t.TempDir(), fstest.MapFS{"broken.json": {Data: []byte(`{"width": 0}`)}}, nil)

	_, err := s.LoadWorld("missing")
	assert.ErrorIs(t, err, ErrWorldNotFound)

	_, err = s.LoadWorld("broken")
	assert.ErrorIs(t, err, world.ErrInvalidWorld)

	for _, name := range []string{"", "../escape", `a\b`, ".hidden"} {
		_, err = s.LoadWorld(name)
		assert.ErrorIs(t, err, ErrInvalidName, name)
		assert.ErrorIs(t, s.SaveWorld(name, worldtest.Open(1, 1)), ErrInvalidName, name)
	}

	assert.Error(t, s.SaveWorld("nil", nil))
}

func TestFileStoreList(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.json"), []byte(tinyWorld), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	fallback := fstest.MapFS{
		"a.json": {Data: []byte(tinyWorld)},
		"b.json": {Data: []byte(tinyWorld)},
	}

	names, err := NewFileStore(dir, fallback, nil).ListWorlds()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)

	names, err = NewFileStore(filepath.Join(dir, "absent"), nil, nil).ListWorlds()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestBundledWorldsDecode(t *testing.T) {
	tiles, err := prefabs.LoadTilesSpec()
	require.NoError(t, err)
	s := NewFileStore("", levels.LevelsFS, tiles.TileTypes())
	names, err := s.ListWorlds()
	require.NoError(t, err)
	assert.Equal(t, levels.Names(), names)
	assert.Contains(t, names, levels.Default)

	for _, name := range names {
		w, err := s.LoadWorld(name)
		require.NoError(t, err, name)
		assert.Empty(t, w.Problems(), name)
	}
}

func TestOpen(t *testing.T) {
	s, err := Open("file", "", nil)
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open("postgres", "", nil)
	assert.Error(t, err)

	_, err = Open("redis", "", nil)
	assert.Error(t, err)
}

// TestPostgresStore needs a scratch database, e.g.
// WAYFARER_TEST_DSN="postgres://localhost/wayfarer_test?sslmode=disable".
func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("WAYFARER_TEST_DSN")
	if dsn == "" {
		t.Skip("WAYFARER_TEST_DSN not set")
	}

	s, err := NewPostgresStore(dsn, worldtest.Types())
	require.NoError(t, err)
	defer s.Close()

	w := worldtest.Rows("..#", "...")
	w.Name = "pg_roundtrip"
	require.NoError(t, s.SaveWorld(w.Name, w))
	require.NoError(t, s.SaveWorld(w.Name, w), "save is an upsert")

	got, err := s.LoadWorld(w.Name)
	require.NoError(t, err)
	assert.False(t, got.IsWalkable(world.GridCoord{X: 2, Y: 0}))

	names, err := s.ListWorlds()
	require.NoError(t, err)
	assert.Contains(t, names, w.Name)

	_, err = s.LoadWorld("definitely_not_saved")
	assert.ErrorIs(t, err, ErrWorldNotFound)
}
