package world

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DefaultCellSize is used when a world file leaves cell_size unset.
const DefaultCellSize = 16

var ErrInvalidWorld = errors.New("world: invalid world")

// File is the on-disk JSON shape of a world.
type File struct {
	Name           string                  `json:"name"`
	Width          int                     `json:"width"`
	Height         int                     `json:"height"`
	CellSize       int                     `json:"cell_size,omitempty"`
	Spawn          SpawnFile               `json:"spawn"`
	Layers         []LayerFile             `json:"layers"`
	TileProperties map[string]TileOverride `json:"tile_properties,omitempty"`
}

type SpawnFile struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type LayerFile struct {
	Name        string   `json:"name"`
	SpriteSheet string   `json:"sprite_sheet"`
	Visible     *bool    `json:"visible,omitempty"`
	Tiles       [][]*int `json:"tiles"`
}

// String renders k as "layer-x-y".
func (k CellKey) String() string {
	return strconv.Itoa(k.Layer) + "-" + strconv.Itoa(k.X) + "-" + strconv.Itoa(k.Y)
}

// ParseCellKey parses the "layer-x-y" form produced by String.
func ParseCellKey(s string) (CellKey, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return CellKey{}, fmt.Errorf("%w: cell key %q", ErrInvalidWorld, s)
	}
	var vals [3]int
	for i, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil || v < 0 {
			return CellKey{}, fmt.Errorf("%w: cell key %q", ErrInvalidWorld, s)
		}
		vals[i] = v
	}
	return CellKey{Layer: vals[0], X: vals[1], Y: vals[2]}, nil
}

// Decode parses a JSON world file. Ragged tile rows are kept as-is; lookups
// treat the gaps as empty cells.
func Decode(data []byte, types TileTypes) (*World, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("world: unmarshal: %w", err)
	}
	return FromFile(f, types)
}

// FromFile builds a World from its file form.
func FromFile(f File, types TileTypes) (*World, error) {
	if f.Width <= 0 || f.Height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidWorld, f.Width, f.Height)
	}
	if f.CellSize < 0 {
		return nil, fmt.Errorf("%w: cell size %d", ErrInvalidWorld, f.CellSize)
	}
	cellSize := f.CellSize
	if cellSize == 0 {
		cellSize = DefaultCellSize
	}

	w := &World{
		Name:      f.Name,
		Width:     f.Width,
		Height:    f.Height,
		CellSize:  cellSize,
		Spawn:     GridCoord{X: f.Spawn.X, Y: f.Spawn.Y},
		Layers:    make([]Layer, 0, len(f.Layers)),
		Overrides: make(map[CellKey]TileOverride, len(f.TileProperties)),
		Types:     types,
	}
	if !w.InBounds(w.Spawn) {
		return nil, fmt.Errorf("%w: spawn %s outside %dx%d", ErrInvalidWorld, w.Spawn, f.Width, f.Height)
	}

	for _, lf := range f.Layers {
		layer := Layer{
			Name:    lf.Name,
			Sheet:   lf.SpriteSheet,
			Visible: lf.Visible == nil || *lf.Visible,
			Tiles:   make([][]Tile, len(lf.Tiles)),
		}
		for y, row := range lf.Tiles {
			tiles := make([]Tile, len(row))
			for x, t := range row {
				if t == nil {
					tiles[x] = NoTile
					continue
				}
				tiles[x] = Tile(*t)
			}
			layer.Tiles[y] = tiles
		}
		w.Layers = append(w.Layers, layer)
	}

	for raw, o := range f.TileProperties {
		key, err := ParseCellKey(raw)
		if err != nil {
			return nil, err
		}
		w.Overrides[key] = o
	}
	return w, nil
}

// ToFile converts w back to its file form.
func ToFile(w *World) File {
	f := File{
		Name:     w.Name,
		Width:    w.Width,
		Height:   w.Height,
		CellSize: w.CellSize,
		Spawn:    SpawnFile{X: w.Spawn.X, Y: w.Spawn.Y},
		Layers:   make([]LayerFile, 0, len(w.Layers)),
	}
	for _, l := range w.Layers {
		visible := l.Visible
		lf := LayerFile{
			Name:        l.Name,
			SpriteSheet: l.Sheet,
			Visible:     &visible,
			Tiles:       make([][]*int, len(l.Tiles)),
		}
		for y, row := range l.Tiles {
			out := make([]*int, len(row))
			for x, t := range row {
				if t == NoTile {
					continue
				}
				v := int(t)
				out[x] = &v
			}
			lf.Tiles[y] = out
		}
		f.Layers = append(f.Layers, lf)
	}
	if len(w.Overrides) > 0 {
		f.TileProperties = make(map[string]TileOverride, len(w.Overrides))
		for k, o := range w.Overrides {
			f.TileProperties[k.String()] = o
		}
	}
	return f
}

// Encode renders w as indented JSON.
func Encode(w *World) ([]byte, error) {
	data, err := json.MarshalIndent(ToFile(w), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("world: marshal %s: %w", w.Name, err)
	}
	return data, nil
}

// OverrideKeys returns the override keys of w in layer, row, column order.
func (w *World) OverrideKeys() []CellKey {
	keys := make([]CellKey, 0, len(w.Overrides))
	for k := range w.Overrides {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.Layer != b.Layer {
			return a.Layer < b.Layer
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	return keys
}
