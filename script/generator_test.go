package script

import (
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	src := []byte(`
generate := func(engine, params) {
	engine.node(0, 0)
	engine.node(params.width, 0, {max_speed: 80, standby_time: 1.5})
	engine.node(engine.vec(params.width, params.height))
}
`)

	g, err := New("triangle", src)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	records, err := g.Generate(map[string]any{"width": 100.0, "height": 50.0})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[1].X != 100 || records[1].Y != 0 {
		t.Fatalf("expected the second node at (100,0), got (%g,%g)", records[1].X, records[1].Y)
	}
	if records[1].Movement.MaxSpeed != 80 || records[1].Movement.StandbyTime != 1.5 {
		t.Fatalf("unexpected movement %+v", records[1].Movement)
	}
	if records[0].Movement.MaxSpeed != 60 {
		t.Fatalf("expected the default max speed on plain nodes, got %g", records[0].Movement.MaxSpeed)
	}
	if records[2].X != 100 || records[2].Y != 50 {
		t.Fatalf("expected the vec form node at (100,50), got (%g,%g)", records[2].X, records[2].Y)
	}

	// A second run starts from a clean slate.
	records, err = g.Generate(map[string]any{"width": 10.0, "height": 10.0})
	if err != nil {
		t.Fatalf("second generate: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records on the second run, got %d", len(records))
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		errPart string
	}{
		{
			name:    "too_few_nodes",
			src:     `generate := func(engine, params) { engine.node(0, 0) }`,
			errPart: "invalid loop",
		},
		{
			name: "coincident_nodes",
			src: `generate := func(engine, params) {
	engine.node(0, 0)
	engine.node(10, 0)
	engine.node(0, 0)
}`,
			errPart: "invalid loop",
		},
		{
			name: "unknown_option",
			src: `generate := func(engine, params) {
	engine.node(0, 0, {speed: 10})
	engine.node(10, 0)
}`,
			errPart: "unknown node option",
		},
		{
			name: "bad_movement_range",
			src: `generate := func(engine, params) {
	engine.node(0, 0, {max_speed: -5})
	engine.node(10, 0)
}`,
			errPart: "max speed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.name, []byte(tt.src))
			if err != nil {
				t.Fatalf("new: %v", err)
			}

			_, err = g.Generate(nil)
			if err == nil {
				t.Fatalf("expected an error")
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Fatalf("expected the error to mention %q, got %q", tt.errPart, err)
			}
		})
	}
}

func TestCircleTemplate(t *testing.T) {
	g, err := Template("circle")
	if err != nil {
		t.Fatalf("template: %v", err)
	}

	records, err := g.Generate(map[string]any{"radius": 100.0, "points": 4})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}
	if records[0].X != 100 || records[0].Y != 0 {
		t.Fatalf("expected the first node at (100,0), got (%g,%g)", records[0].X, records[0].Y)
	}
	if math.Abs(records[1].X) > 1e-9 || math.Abs(records[1].Y-100) > 1e-9 {
		t.Fatalf("expected the second node at (0,100), got (%g,%g)", records[1].X, records[1].Y)
	}
}

func TestZigzagTemplate(t *testing.T) {
	g, err := Template("zigzag")
	if err != nil {
		t.Fatalf("template: %v", err)
	}

	records, err := g.Generate(map[string]any{"width": 300.0, "height": 50.0, "steps": 3, "max_speed": 90.0})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}
	if records[1].Y != 50 || records[2].Y != 0 {
		t.Fatalf("expected alternating heights, got %g and %g", records[1].Y, records[2].Y)
	}
	if records[3].X != 300 {
		t.Fatalf("expected the last node at x=300, got %g", records[3].X)
	}
	if records[0].Movement.MaxSpeed != 90 {
		t.Fatalf("expected max speed 90, got %g", records[0].Movement.MaxSpeed)
	}
}

func TestTemplates(t *testing.T) {
	names := Templates()
	if !slices.Contains(names, "circle") || !slices.Contains(names, "zigzag") {
		t.Fatalf("expected the built-in templates, got %v", names)
	}
}

func TestLoad(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "line.tengo")
	src := `generate := func(engine, params) {
	engine.node(0, 0)
	engine.node(50, 0)
}`
	if err := os.WriteFile(filename, []byte(src), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	g, err := Load(filename)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if g.Name() != "line" {
		t.Fatalf("expected the name to come from the file, got %q", g.Name())
	}

	if _, err := g.Generate(nil); err != nil {
		t.Fatalf("generate: %v", err)
	}
}
