package world

import "strconv"

// TileType holds the defaults shared by every cell using a tile index.
type TileType struct {
	Name     string `yaml:"name"`
	Walkable bool   `yaml:"walkable"`
}

// TileTypes maps tile indices to their defaults. Unknown tiles are walkable.
type TileTypes map[Tile]TileType

// Walkable returns the default walkability of t.
func (tt TileTypes) Walkable(t Tile) bool {
	if props, ok := tt[t]; ok {
		return props.Walkable
	}
	return true
}

// Lookup returns the type of t, naming unknown tiles after their index.
func (tt TileTypes) Lookup(t Tile) TileType {
	if props, ok := tt[t]; ok {
		return props
	}
	return TileType{Name: "tile-" + strconv.Itoa(int(t)), Walkable: true}
}
