// Package script runs tengo path generators: scripts that emit a loop of
// waypoints the editor turns into a movement path.
package script

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milkweed-games/waypath/path"
)

// A generator script defines a global function
//
//	generate := func(engine, params) { ... }
//
// and calls engine.node to emit waypoints in loop order. The dispatch tail
// below invokes it with the injected helpers and the caller's parameters.
const generateDispatchScript = `
generate(__engine, __params)
`

// Generator is a compiled path generator script.
type Generator struct {
	name     string
	compiled *tengo.Compiled
	emitted  []path.NodeRecord
}

// New compiles a generator from source. The name is used in error messages.
func New(name string, src []byte) (*Generator, error) {
	full := string(src) + "\n" + generateDispatchScript
	script := tengo.NewScript([]byte(full))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__params", map[string]any{})

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}

	return &Generator{name: name, compiled: compiled}, nil
}

// Load compiles a generator from a script file.
func Load(filename string) (*Generator, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", filename, err)
	}

	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return New(name, src)
}

// Name returns the generator name.
func (g *Generator) Name() string { return g.name }

// Generate runs the script with the given parameters and returns the
// emitted waypoints as node records, validated as a buildable loop.
func (g *Generator) Generate(params map[string]any) ([]path.NodeRecord, error) {
	g.emitted = g.emitted[:0]

	if err := g.compiled.Set("__engine", g.buildEngine()); err != nil {
		return nil, fmt.Errorf("script: %s: %w", g.name, err)
	}

	tengoParams, err := toTengoMap(params)
	if err != nil {
		return nil, fmt.Errorf("script: %s params: %w", g.name, err)
	}
	if err := g.compiled.Set("__params", tengoParams); err != nil {
		return nil, fmt.Errorf("script: %s: %w", g.name, err)
	}

	if err := g.compiled.Run(); err != nil {
		return nil, fmt.Errorf("script: run %s: %w", g.name, err)
	}

	records := make([]path.NodeRecord, len(g.emitted))
	copy(records, g.emitted)

	// The records have to form a valid loop before they are handed out.
	if _, err := path.FromRecords(records); err != nil {
		return nil, fmt.Errorf("script: %s emitted an invalid loop: %w", g.name, err)
	}

	return records, nil
}

// buildEngine returns the helper map handed to the script: vec to build a
// point, node to emit a waypoint.
func (g *Generator) buildEngine() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["vec"] = &tengo.UserFunction{Name: "vec", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		x, ok := objectAsFloat(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "x", Expected: "float", Found: args[0].TypeName()}
		}
		y, ok := objectAsFloat(args[1])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "y", Expected: "float", Found: args[1].TypeName()}
		}
		return &tengo.ImmutableMap{Value: map[string]tengo.Object{
			"x": &tengo.Float{Value: x},
			"y": &tengo.Float{Value: y},
		}}, nil
	}}

	values["node"] = &tengo.UserFunction{Name: "node", Value: func(args ...tengo.Object) (tengo.Object, error) {
		record := path.NodeRecord{Movement: path.MovementRecord{MaxSpeed: path.DefaultMovement().MaxSpeed()}}

		rest := args
		switch {
		case len(args) >= 1 && isMap(args[0]):
			// node(vec, opts?)
			v := mapValue(args[0])
			x, okX := objectAsFloat(v["x"])
			y, okY := objectAsFloat(v["y"])
			if !okX || !okY {
				return nil, tengo.ErrInvalidArgumentType{Name: "point", Expected: "vec", Found: args[0].TypeName()}
			}
			record.X, record.Y = x, y
			rest = args[1:]
		case len(args) >= 2:
			// node(x, y, opts?)
			x, okX := objectAsFloat(args[0])
			y, okY := objectAsFloat(args[1])
			if !okX || !okY {
				return nil, tengo.ErrInvalidArgumentType{Name: "point", Expected: "float pair", Found: args[0].TypeName()}
			}
			record.X, record.Y = x, y
			rest = args[2:]
		default:
			return nil, tengo.ErrWrongNumArguments
		}

		if len(rest) > 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		if len(rest) == 1 {
			if !isMap(rest[0]) {
				return nil, tengo.ErrInvalidArgumentType{Name: "opts", Expected: "map", Found: rest[0].TypeName()}
			}
			if err := applyMovementOpts(&record.Movement, mapValue(rest[0])); err != nil {
				return nil, err
			}
		}

		g.emitted = append(g.emitted, record)
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

// applyMovementOpts copies the recognized kinematic fields from the script
// options map onto the record.
func applyMovementOpts(m *path.MovementRecord, opts map[string]tengo.Object) error {
	for key, obj := range opts {
		value, ok := objectAsFloat(obj)
		if !ok {
			return tengo.ErrInvalidArgumentType{Name: key, Expected: "float", Found: obj.TypeName()}
		}

		switch key {
		case "max_speed":
			m.MaxSpeed = value
		case "min_speed":
			m.MinSpeed = value
		case "accel_travel_percentage":
			m.AccelTravelPercentage = value
		case "decel_travel_percentage":
			m.DecelTravelPercentage = value
		case "standby_time":
			m.StandbyTime = value
		default:
			return fmt.Errorf("unknown node option %q", key)
		}
	}
	return nil
}

func toTengoMap(params map[string]any) (*tengo.Map, error) {
	values := make(map[string]tengo.Object, len(params))
	for key, value := range params {
		obj, err := tengo.FromInterface(value)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", key, err)
		}
		values[key] = obj
	}
	return &tengo.Map{Value: values}, nil
}

func isMap(obj tengo.Object) bool {
	switch obj.(type) {
	case *tengo.Map, *tengo.ImmutableMap:
		return true
	}
	return false
}

func mapValue(obj tengo.Object) map[string]tengo.Object {
	switch v := obj.(type) {
	case *tengo.Map:
		return v.Value
	case *tengo.ImmutableMap:
		return v.Value
	}
	return nil
}

func objectAsFloat(obj tengo.Object) (float64, bool) {
	switch v := obj.(type) {
	case *tengo.Float:
		return v.Value, true
	case *tengo.Int:
		return float64(v.Value), true
	}
	return 0, false
}
