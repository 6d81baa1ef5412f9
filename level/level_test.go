package level

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jakecoffman/cp"

	"github.com/milkweed-games/waypath/geom"
	"github.com/milkweed-games/waypath/grid"
	"github.com/milkweed-games/waypath/path"
)

func testEntity(t *testing.T, id string, center cp.Vector) *Entity {
	t.Helper()

	return &Entity{
		ID:     id,
		Center: center,
		Size:   cp.Vector{X: 32, Y: 32},
		Path:   path.New(center, center.Add(cp.Vector{X: 50, Y: 0}), center),
	}
}

func TestLevelSaveLoadRoundTrip(t *testing.T) {
	lvl := &Level{Entities: []*Entity{
		testEntity(t, "platform_a", cp.Vector{X: 100, Y: 200}),
		{ID: "decoration", Center: cp.Vector{X: -50, Y: 0}},
	}}
	lvl.Entities[0].Path.SelectAllNodes()

	filename := filepath.Join(t.TempDir(), "level.yaml")
	if err := lvl.Save(filename); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(filename)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(loaded.Entities) != 2 {
		t.Fatalf("expected 2 entities, got %d", len(loaded.Entities))
	}

	e, ok := loaded.Entity("platform_a")
	if !ok {
		t.Fatalf("expected to find platform_a")
	}
	if e.Center != (cp.Vector{X: 100, Y: 200}) {
		t.Fatalf("unexpected center %v", e.Center)
	}
	if e.Path == nil || e.Path.Len() != 2 {
		t.Fatalf("expected the path to survive the round trip")
	}
	if !e.Path.NodeAt(0).Selected() {
		t.Fatalf("expected the node selection to survive")
	}

	d, ok := loaded.Entity("decoration")
	if !ok {
		t.Fatalf("expected to find decoration")
	}
	if d.Path != nil {
		t.Fatalf("expected no path on the pathless entity")
	}
}

func TestFromRecordErrors(t *testing.T) {
	node := func(x, y float64) path.NodeRecord {
		return path.NodeRecord{X: x, Y: y, Movement: path.MovementRecord{MaxSpeed: 60}}
	}

	tests := []struct {
		name   string
		record LevelRecord
	}{
		{
			name:   "missing_id",
			record: LevelRecord{Entities: []EntityRecord{{X: 0, Y: 0}}},
		},
		{
			name: "duplicate_id",
			record: LevelRecord{Entities: []EntityRecord{
				{ID: "a"},
				{ID: "a"},
			}},
		},
		{
			name: "broken_path",
			record: LevelRecord{Entities: []EntityRecord{
				{ID: "a", Path: []path.NodeRecord{node(0, 0)}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromRecord(tt.record); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}

func TestPathBBOutOfBounds(t *testing.T) {
	e := testEntity(t, "platform", cp.Vector{X: 0, Y: 0})
	if e.PathBBOutOfBounds() {
		t.Fatalf("expected the path to be in bounds")
	}

	e.Center = cp.Vector{X: geom.MapHalfSize - 10, Y: 0}
	if !e.PathBBOutOfBounds() {
		t.Fatalf("expected the displaced path to exceed the map")
	}

	if (&Entity{ID: "pathless"}).PathBBOutOfBounds() {
		t.Fatalf("expected a pathless entity to always be in bounds")
	}
}

func TestPayloadOwnership(t *testing.T) {
	owner := testEntity(t, "owner", cp.Vector{})
	other := testEntity(t, "other", cp.Vector{})

	owner.Path.ToggleNodeAtIndex(1)
	move, status := owner.Path.CheckSelectedNodesMove(cp.Vector{X: 5, Y: 5})
	if status != path.StatusValid {
		t.Fatalf("expected a valid move, got %v", status)
	}

	payload := NodesMovePayload{ID: owner.ID, Move: move}
	payload.Apply(owner)
	if got := owner.Path.PosAt(1); got != (cp.Vector{X: 55, Y: 5}) {
		t.Fatalf("expected the node at (55,5), got %v", got)
	}

	payload.Undo(owner)
	if got := owner.Path.PosAt(1); got != (cp.Vector{X: 50, Y: 0}) {
		t.Fatalf("expected the node back at (50,0), got %v", got)
	}

	t.Run("wrong_owner_panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatalf("expected a panic")
			}
		}()

		payload.Apply(other)
	})
}

func TestSnapPayloadUndoRedo(t *testing.T) {
	e := &Entity{
		ID:   "platform",
		Path: path.New(cp.Vector{X: 10, Y: 10}, cp.Vector{X: 100, Y: 100}, cp.Vector{}),
	}
	e.Path.SelectAllNodes()

	groups := e.Path.SnapSelectedNodes(grid.Default(), cp.Vector{})
	if groups == nil {
		t.Fatalf("expected the nodes to snap")
	}

	payload := SnapPayload{ID: e.ID, Groups: groups}

	payload.Undo(e)
	if got := e.Path.PosAt(0); got != (cp.Vector{X: 10, Y: 10}) {
		t.Fatalf("expected the original position back, got %v", got)
	}

	payload.Redo(e)
	if got := e.Path.PosAt(0); got != (cp.Vector{X: 0, Y: 0}) {
		t.Fatalf("expected the snapped position back, got %v", got)
	}
}

func TestWatcherClose(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}

	// The forwarding goroutine owns the channels and closes them on exit.
	select {
	case _, ok := <-w.Events:
		if ok {
			t.Fatalf("expected the events channel to be closed")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for the events channel to close")
	}
	select {
	case _, ok := <-w.Errors:
		if ok {
			t.Fatalf("expected the errors channel to be closed")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for the errors channel to close")
	}
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	filename := filepath.Join(dir, "level.yaml")
	if err := os.WriteFile(filename, []byte("entities: []\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case got := <-w.Events:
		if got != filename {
			t.Fatalf("expected an event for %s, got %s", filename, got)
		}
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for the event")
	}

	// Files that are not levels never surface.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case got := <-w.Events:
		t.Fatalf("unexpected event %s", got)
	case <-time.After(200 * time.Millisecond):
	}
}
