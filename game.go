package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/wayfarer/common"
	"github.com/milk9111/wayfarer/input"
	"github.com/milk9111/wayfarer/input/pointer"
	"github.com/milk9111/wayfarer/levels"
	"github.com/milk9111/wayfarer/prefabs"
	"github.com/milk9111/wayfarer/session"
	"github.com/milk9111/wayfarer/store"
	"github.com/milk9111/wayfarer/world"
)

type Options struct {
	World     string
	Debug     bool
	Watch     bool
	Autopilot string
	Fast      bool
	StoreKind string
	DSN       string
}

type Game struct {
	opts Options

	agents *prefabs.AgentsSpec
	tiles  *prefabs.TilesSpec
	store  store.Store

	session   *session.Session
	worldName string

	pointer *pointer.Pointer
	script  *input.Script
	watcher *prefabs.Watcher

	renderer *Renderer
	hud      *HUD
	paused   bool
}

func NewGame(opts Options) (*Game, error) {
	g := &Game{opts: opts}
	if err := g.loadSpecs(); err != nil {
		return nil, err
	}
	if err := g.openStore(); err != nil {
		return nil, err
	}
	if err := g.loadScript(); err != nil {
		log.Printf("game: autopilot disabled: %v", err)
	}

	g.pointer = pointer.New(g.screenToWorld)
	g.renderer = NewRenderer(g.agents, g.tiles)
	g.hud = NewHUD(g)

	name := strings.TrimSuffix(opts.World, ".json")
	if name == "" {
		name = levels.Default
	}
	if err := g.enterWorld(name); err != nil {
		return nil, err
	}

	if opts.Watch {
		g.startWatcher()
	}
	return g, nil
}

func (g *Game) loadSpecs() error {
	agents, err := prefabs.LoadAgentsSpec()
	if err != nil {
		return err
	}
	tiles, err := prefabs.LoadTilesSpec()
	if err != nil {
		return err
	}
	g.agents, g.tiles = agents, tiles
	return nil
}

func (g *Game) openStore() error {
	st, err := store.Open(g.opts.StoreKind, g.opts.DSN, g.tiles.TileTypes())
	if err != nil {
		return err
	}
	if g.store != nil {
		_ = g.store.Close()
	}
	g.store = st
	return nil
}

func (g *Game) loadScript() error {
	if g.opts.Autopilot == "" {
		g.script = nil
		return nil
	}
	src, err := prefabs.LoadScript(g.opts.Autopilot)
	if err != nil {
		return err
	}
	script, err := input.NewScript(g.opts.Autopilot, src, g)
	if err != nil {
		return err
	}
	g.script = script
	return nil
}

func (g *Game) startWatcher() {
	var dirs []string
	for _, dir := range []string{"prefabs", filepath.Join("prefabs", "scripts"), levels.Dir} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		log.Printf("game: -watch: no prefabs or levels directory under the working directory")
		return
	}
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		log.Printf("game: -watch: %v", err)
		return
	}
	g.watcher = w
}

// enterWorld loads name and replaces the running session. Agent state does
// not carry over.
func (g *Game) enterWorld(name string) error {
	w, err := g.store.LoadWorld(name)
	if err != nil {
		return err
	}
	for _, p := range w.Problems() {
		log.Printf("game: world %s: %s", name, p)
	}

	sources := input.Multi{g.pointer}
	if g.script != nil {
		sources = append(sources, g.script)
	}
	cfg := session.ConfigFromSpec(g.agents, g.opts.Fast)
	cfg.View = session.ViewConfig{Width: common.BaseWidth, Height: common.BaseHeight}
	s, err := session.New(w, cfg, nil, sources)
	if err != nil {
		return fmt.Errorf("game: enter %s: %w", name, err)
	}
	g.session = s
	g.worldName = name
	return nil
}

// nextWorld cycles through the store's worlds in name order.
func (g *Game) nextWorld() {
	names, err := g.store.ListWorlds()
	if err != nil || len(names) == 0 {
		log.Printf("game: list worlds: %v", err)
		return
	}
	next := names[0]
	for i, n := range names {
		if n == g.worldName && i+1 < len(names) {
			next = names[i+1]
		}
	}
	if err := g.enterWorld(next); err != nil {
		log.Printf("game: %v", err)
	}
}

// applyChanges handles hot reloads between frames so a session never sees
// its world change underneath it.
func (g *Game) applyChanges() {
	if g.watcher == nil {
		return
	}
	changes := g.watcher.Drain()
	if len(changes) == 0 {
		return
	}

	reload := false
	for _, c := range changes {
		switch c.Kind {
		case prefabs.ChangeSpec:
			if err := g.loadSpecs(); err != nil {
				log.Printf("game: reload %s: %v", c.Path, err)
				continue
			}
			if err := g.openStore(); err != nil {
				log.Printf("game: reopen store: %v", err)
				continue
			}
			g.renderer = NewRenderer(g.agents, g.tiles)
			reload = true
		case prefabs.ChangeScript:
			if err := g.loadScript(); err != nil {
				log.Printf("game: reload %s: %v", c.Path, err)
				continue
			}
			reload = true
		case prefabs.ChangeWorld:
			if strings.TrimSuffix(filepath.Base(c.Path), filepath.Ext(c.Path)) == g.worldName {
				reload = true
			}
		}
	}

	if reload {
		if err := g.enterWorld(g.worldName); err != nil {
			log.Printf("game: reload: %v", err)
			return
		}
		log.Printf("game: reloaded %s", g.worldName)
	}
}

// Current makes the game a world.Provider that follows world transitions.
func (g *Game) Current() *world.World {
	return g.session.Current()
}

func (g *Game) Update() error {
	g.applyChanges()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.nextWorld()
	}

	if !g.paused {
		g.session.Update()
		if g.opts.Debug {
			for _, e := range g.session.Events() {
				log.Printf("game: frame %d: %s %v", g.session.Frame(), e.Type, e.Data)
			}
		}
	}

	g.hud.Update(g.session.Snapshot())
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.session.Snapshot()
	g.renderer.Draw(screen, snap, g.opts.Debug)
	g.hud.Draw(screen)
}

// screenToWorld inverts the renderer's camera transform.
func (g *Game) screenToWorld(sx, sy float64) world.PixelCoord {
	cam := g.session.Snapshot().Camera
	zoom := cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return world.PixelCoord{
		X: (sx-common.BaseWidth/2)/zoom + cam.X,
		Y: (sy-common.BaseHeight/2)/zoom + cam.Y,
	}
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	if g.store != nil {
		_ = g.store.Close()
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
