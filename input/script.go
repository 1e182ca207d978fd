package input

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/wayfarer/world"
)

// Script is a Source driven by a tengo program. The program runs once per
// poll with `frame` set; assigning `click = [x, y]` requests a move to that
// world pixel. `cell_center(gx, gy)` returns a cell's pixel centre and
// `world_size()` returns [width, height] in cells.
type Script struct {
	name     string
	compiled *tengo.Compiled
	worlds   world.Provider
	frame    int64
	failed   bool
}

func NewScript(name string, src []byte, worlds world.Provider) (*Script, error) {
	s := &Script{name: name, worlds: worlds}

	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	_ = script.Add("frame", 0)
	_ = script.Add("click", nil)
	_ = script.Add("cell_center", &tengo.UserFunction{Name: "cell_center", Value: s.cellCenter})
	_ = script.Add("world_size", &tengo.UserFunction{Name: "world_size", Value: s.worldSize})

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("input: compile %s: %w", name, err)
	}
	s.compiled = compiled
	return s, nil
}

// Poll runs the program once. A runtime error is logged once and the script
// goes quiet rather than failing every frame.
func (s *Script) Poll() []world.PixelCoord {
	if s == nil || s.compiled == nil || s.failed {
		return nil
	}
	defer func() { s.frame++ }()

	if err := s.compiled.Set("frame", s.frame); err != nil {
		return s.fail(err)
	}
	if err := s.compiled.Set("click", nil); err != nil {
		return s.fail(err)
	}
	if err := s.compiled.Run(); err != nil {
		return s.fail(err)
	}

	click := s.compiled.Get("click")
	if click.IsUndefined() {
		return nil
	}
	p, ok := pointFromSlice(click.Array())
	if !ok {
		log.Printf("input: script %s: click must be [x, y], got %s", s.name, click.String())
		return nil
	}
	return []world.PixelCoord{p}
}

func (s *Script) fail(err error) []world.PixelCoord {
	log.Printf("input: script %s: %v", s.name, err)
	s.failed = true
	return nil
}

func (s *Script) cellCenter(args ...tengo.Object) (tengo.Object, error) {
	if len(args) != 2 {
		return nil, tengo.ErrWrongNumArguments
	}
	gx, ok := tengo.ToInt(args[0])
	if !ok {
		return nil, tengo.ErrInvalidArgumentType{Name: "gx", Expected: "int", Found: args[0].TypeName()}
	}
	gy, ok := tengo.ToInt(args[1])
	if !ok {
		return nil, tengo.ErrInvalidArgumentType{Name: "gy", Expected: "int", Found: args[1].TypeName()}
	}
	w := s.current()
	if w == nil {
		return tengo.UndefinedValue, nil
	}
	p := w.ToPixel(world.GridCoord{X: gx, Y: gy})
	return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: p.X}, &tengo.Float{Value: p.Y}}}, nil
}

func (s *Script) worldSize(args ...tengo.Object) (tengo.Object, error) {
	w := s.current()
	if w == nil {
		return tengo.UndefinedValue, nil
	}
	return &tengo.Array{Value: []tengo.Object{&tengo.Int{Value: int64(w.Width)}, &tengo.Int{Value: int64(w.Height)}}}, nil
}

func (s *Script) current() *world.World {
	if s.worlds == nil {
		return nil
	}
	return s.worlds.Current()
}

func pointFromSlice(v []any) (world.PixelCoord, bool) {
	if len(v) != 2 {
		return world.PixelCoord{}, false
	}
	x, okX := toFloat(v[0])
	y, okY := toFloat(v[1])
	return world.PixelCoord{X: x, Y: y}, okX && okY
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}
