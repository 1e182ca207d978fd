// Command worldtool inspects and moves world files without opening a window.
//
//	worldtool [-store file|postgres] [-dsn ...] list
//	worldtool validate [world...]
//	worldtool path <world> x0 y0 x1 y1
//	worldtool import <world...>    copy bundled/disk worlds into postgres
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/milk9111/wayfarer/levels"
	"github.com/milk9111/wayfarer/nav"
	"github.com/milk9111/wayfarer/prefabs"
	"github.com/milk9111/wayfarer/store"
	"github.com/milk9111/wayfarer/world"
)

var errUsage = errors.New("usage: worldtool [-store file|postgres] [-dsn dsn] list | validate [world...] | path <world> x0 y0 x1 y1 | import <world...>")

func main() {
	storeKind := flag.String("store", envOr("WAYFARER_STORE", store.KindFile), "world store: file or postgres")
	dsn := flag.String("dsn", os.Getenv("DATABASE_URL"), "postgres connection string")
	maxExpansions := flag.Int("max-expansions", nav.DefaultMaxExpansions, "A* expansion cap for path")
	flag.Parse()

	tiles, err := prefabs.LoadTilesSpec()
	if err != nil {
		log.Fatal(err)
	}
	types := tiles.TileTypes()

	st, err := store.Open(*storeKind, *dsn, types)
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()

	t := &tool{
		store:  st,
		finder: nav.NewFinder(nav.WithMaxExpansions(*maxExpansions)),
		out:    os.Stdout,
		openDest: func() (store.Store, error) {
			return store.Open(store.KindPostgres, *dsn, types)
		},
		source: store.NewFileStore(levels.Dir, levels.LevelsFS, types),
	}
	if err := t.run(flag.Args()); err != nil {
		log.Fatal(err)
	}
}

type tool struct {
	store  store.Store
	finder *nav.Finder
	out    io.Writer
	// source and openDest are only used by import.
	source   store.Store
	openDest func() (store.Store, error)
}

func (t *tool) run(args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	switch args[0] {
	case "list":
		return t.list()
	case "validate":
		return t.validate(args[1:])
	case "path":
		return t.path(args[1:])
	case "import":
		return t.importWorlds(args[1:])
	}
	return errUsage
}

func (t *tool) list() error {
	names, err := t.store.ListWorlds()
	if err != nil {
		return err
	}
	for _, n := range names {
		fmt.Fprintln(t.out, n)
	}
	return nil
}

// validate prints each world's problems and fails if any world has one.
func (t *tool) validate(names []string) error {
	if len(names) == 0 {
		var err error
		if names, err = t.store.ListWorlds(); err != nil {
			return err
		}
	}

	bad := 0
	for _, name := range names {
		w, err := t.store.LoadWorld(name)
		if err != nil {
			fmt.Fprintf(t.out, "%s: %v\n", name, err)
			bad++
			continue
		}
		problems := w.Problems()
		if len(problems) == 0 {
			fmt.Fprintf(t.out, "%s: ok (%dx%d, %d layers)\n", name, w.Width, w.Height, w.LayerCount())
			continue
		}
		bad++
		for _, p := range problems {
			fmt.Fprintf(t.out, "%s: %s\n", name, p)
		}
	}
	if bad > 0 {
		return fmt.Errorf("worldtool: %d of %d worlds failed validation", bad, len(names))
	}
	return nil
}

// path prints the route between two cells over a map of the world.
func (t *tool) path(args []string) error {
	if len(args) != 5 {
		return errUsage
	}
	coords := make([]int, 4)
	for i, a := range args[1:] {
		n, err := strconv.Atoi(a)
		if err != nil {
			return fmt.Errorf("worldtool: path: bad coordinate %q", a)
		}
		coords[i] = n
	}

	w, err := t.store.LoadWorld(args[0])
	if err != nil {
		return err
	}
	from := world.GridCoord{X: coords[0], Y: coords[1]}
	to := world.GridCoord{X: coords[2], Y: coords[3]}

	p, ok := t.finder.FindPath(w, w.ToPixel(from), w.ToPixel(to))
	stats := t.finder.LastStats()
	if !ok {
		reason := "unreachable"
		if stats.Capped {
			reason = "search capped"
		}
		fmt.Fprintf(t.out, "no path %s -> %s (%s, %d expanded)\n", from, to, reason, stats.Expanded)
		return nil
	}

	fmt.Fprintf(t.out, "%d cells, cost %.3f, %d expanded\n", len(p.Cells), p.Cost, stats.Expanded)
	fmt.Fprint(t.out, drawMap(w, p.Cells))
	return nil
}

// drawMap renders '#' for blocked cells and '*' for the path, with S and G
// at its ends.
func drawMap(w *world.World, cells []world.GridCoord) string {
	onPath := make(map[world.GridCoord]byte, len(cells))
	for _, c := range cells {
		onPath[c] = '*'
	}
	if len(cells) > 0 {
		onPath[cells[len(cells)-1]] = 'G'
		onPath[cells[0]] = 'S'
	}

	var b strings.Builder
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			c := world.GridCoord{X: x, Y: y}
			switch {
			case onPath[c] != 0:
				b.WriteByte(onPath[c])
			case !w.IsWalkable(c):
				b.WriteByte('#')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (t *tool) importWorlds(names []string) error {
	if len(names) == 0 {
		return errUsage
	}
	dest, err := t.openDest()
	if err != nil {
		return err
	}
	defer dest.Close()

	for _, name := range names {
		w, err := t.source.LoadWorld(name)
		if err != nil {
			return err
		}
		if err := dest.SaveWorld(name, w); err != nil {
			return err
		}
		fmt.Fprintf(t.out, "imported %s\n", name)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
