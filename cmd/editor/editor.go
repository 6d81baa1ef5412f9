package main

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"path/filepath"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"

	"github.com/milkweed-games/waypath/grid"
	"github.com/milkweed-games/waypath/level"
	"github.com/milkweed-games/waypath/path"
	"github.com/milkweed-games/waypath/script"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	simStep = 1.0 / 60.0
)

// Editor is the interactive path preview tool.
type Editor struct {
	levelPath string
	lvl       *level.Level
	current   int

	grid    grid.Grid
	canvas  *Canvas
	panel   *Panel
	history *History
	watcher *level.Watcher

	sims    map[string]*path.MovementSimulator
	playing bool

	draggingNodes bool
	boxSelecting  bool
	dragStart     cp.Vector
	dragWorld     cp.Vector
	dragValid     bool

	frames int
}

func NewEditor(levelPath string, watch bool, gridSize int) (*Editor, error) {
	lvl, err := level.Load(levelPath)
	if err != nil {
		return nil, err
	}

	e := &Editor{
		levelPath: levelPath,
		lvl:       lvl,
		grid:      grid.Grid{Size: gridSize},
		canvas:    NewCanvas(),
		history:   &History{},
	}
	e.panel = BuildPanel(PanelCallbacks{
		OnFieldChanged: e.onFieldChanged,
		OnPrevEntity:   func() { e.cycleEntity(-1) },
		OnNextEntity:   func() { e.cycleEntity(1) },
		OnSnap:         e.snapSelection,
		OnPlayPause:    e.togglePlaying,
		OnSave:         e.save,
		OnGenerate:     e.generatePath,
	})
	e.refreshPanel()

	if watch {
		watcher, err := level.NewWatcher(filepath.Dir(levelPath))
		if err != nil {
			return nil, err
		}
		e.watcher = watcher
	}

	return e, nil
}

func (e *Editor) Close() {
	if e.watcher != nil {
		_ = e.watcher.Close()
	}
}

func (e *Editor) currentEntity() *level.Entity {
	if len(e.lvl.Entities) == 0 {
		return nil
	}
	return e.lvl.Entities[e.current]
}

func (e *Editor) cycleEntity(dir int) {
	n := len(e.lvl.Entities)
	if n == 0 {
		return
	}
	e.current = ((e.current+dir)%n + n) % n
	e.refreshPanel()
}

func (e *Editor) refreshPanel() {
	ent := e.currentEntity()
	if ent == nil {
		e.panel.SetEntity("", false)
		e.panel.SetMovement(path.OverallMovement{})
		return
	}

	e.panel.SetEntity(ent.ID, ent.Path != nil)
	if ent.Path != nil {
		e.panel.SetMovement(ent.Path.OverallSelectedNodesMovement())
	} else {
		e.panel.SetMovement(path.OverallMovement{})
	}
}

func (e *Editor) Update() error {
	e.frames++

	e.pollWatcher()
	e.panel.UI.Update()

	mx, my := ebiten.CursorPosition()
	overPanel := mx >= baseWidth-panelWidth

	if !overPanel {
		e.canvas.Update(mx, my)
	}

	e.handleKeys()

	if e.playing {
		for _, sim := range e.sims {
			sim.Update(simStep)
		}
		return nil
	}

	if !overPanel {
		e.handleMouse(mx, my)
	}
	return nil
}

func (e *Editor) pollWatcher() {
	if e.watcher == nil {
		return
	}

	select {
	case name := <-e.watcher.Events:
		if filepath.Clean(name) != filepath.Clean(e.levelPath) {
			return
		}
		lvl, err := level.Load(e.levelPath)
		if err != nil {
			log.Printf("reload: %v", err)
			return
		}
		e.lvl = lvl
		if e.current >= len(lvl.Entities) {
			e.current = 0
		}
		e.history.Clear()
		e.stopPlaying()
		e.refreshPanel()
		log.Printf("reloaded %s", e.levelPath)
	case err := <-e.watcher.Errors:
		log.Printf("watcher: %v", err)
	default:
	}
}

func (e *Editor) handleKeys() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)
	ent := e.currentEntity()

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		e.togglePlaying()

	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS):
		e.save()

	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyZ):
		if e.history.Undo() {
			e.refreshPanel()
		}

	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyY):
		if e.history.Redo() {
			e.refreshPanel()
		}

	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyA):
		if ent != nil && ent.Path != nil {
			ent.Path.SelectAllNodes()
			e.refreshPanel()
		}

	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyD):
		if ent != nil && ent.Path != nil {
			ent.Path.DeselectNodes()
			e.refreshPanel()
		}

	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyC):
		copySelection(ent)

	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyV):
		if err := pasteNodes(ent); err != nil {
			log.Print(err)
		}
		e.refreshPanel()

	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		e.snapSelection()

	case inpututil.IsKeyJustPressed(ebiten.KeyDelete), inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		e.deleteSelection()

	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		e.cycleEntity(1)

	default:
		e.handleArrowKeys(ent)
	}
}

// handleArrowKeys translates the whole path of the current entity by one
// grid cell, refusing moves that push it off the map.
func (e *Editor) handleArrowKeys(ent *level.Entity) {
	if e.playing || ent == nil || ent.Path == nil {
		return
	}

	var delta cp.Vector
	step := float64(e.grid.Size)
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		delta.X = -step
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		delta.X = step
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		delta.Y = -step
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		delta.Y = step
	default:
		return
	}

	ent.Path.Translate(delta)
	if ent.PathBBOutOfBounds() {
		ent.Path.Translate(delta.Neg())
		log.Printf("translation refused: path would leave the map")
		return
	}

	payload := level.TranslatePayload{ID: ent.ID, Delta: delta}
	target := ent
	e.history.Push(
		func() { payload.Undo(target) },
		func() { payload.Redo(target) },
	)
}

func (e *Editor) handleMouse(mx, my int) {
	ent := e.currentEntity()
	if ent == nil || ent.Path == nil {
		return
	}

	world := e.canvas.ScreenToWorld(mx, my)
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		picked, found := e.pickNode(ent, world)
		switch {
		case found && ctrl:
			ent.Path.ToggleNodeAtIndex(picked)
			e.refreshPanel()
		case found:
			if _, already := ent.Path.ExclusivelySelectNodeAtIndex(picked); !already {
				e.refreshPanel()
			}
			e.draggingNodes = true
			e.dragStart = world
			e.dragWorld = world
		default:
			e.boxSelecting = true
			e.dragStart = world
			e.dragWorld = world
		}
		return
	}

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		e.dragWorld = world
		if e.draggingNodes {
			_, status := ent.Path.CheckSelectedNodesMove(e.dragDelta())
			e.dragValid = status == path.StatusValid
		}
		return
	}

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		e.dragWorld = world
		switch {
		case e.draggingNodes:
			e.finishNodeDrag(ent)
		case e.boxSelecting:
			e.finishBoxSelect(ent, shift)
		}
		e.draggingNodes = false
		e.boxSelecting = false
		return
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		e.insertNodeAt(ent, world)
	}
}

// pickNode returns the first node whose square covers the cursor.
func (e *Editor) pickNode(ent *level.Entity, world cp.Vector) (int, bool) {
	for i := range ent.Path.NearbyNodes(world, ent.Center, 1/e.canvas.Zoom) {
		return i, true
	}
	return 0, false
}

func (e *Editor) dragDelta() cp.Vector {
	return e.dragWorld.Sub(e.dragStart)
}

func (e *Editor) finishNodeDrag(ent *level.Entity) {
	delta := e.dragDelta()
	if delta == (cp.Vector{}) {
		return
	}

	move, status := ent.Path.CheckSelectedNodesMove(delta)
	if status != path.StatusValid {
		if status == path.StatusInvalid {
			log.Printf("move refused")
		}
		return
	}

	payload := level.NodesMovePayload{ID: ent.ID, Move: move}
	payload.Apply(ent)

	target := ent
	e.history.Push(
		func() { payload.Undo(target) },
		func() { payload.Apply(target) },
	)
	e.refreshPanel()
}

func (e *Editor) finishBoxSelect(ent *level.Entity, extend bool) {
	a, b := e.dragStart, e.dragWorld
	rng := cp.BB{
		L: math.Min(a.X, b.X),
		B: math.Min(a.Y, b.Y),
		R: math.Max(a.X, b.X),
		T: math.Max(a.Y, b.Y),
	}

	if extend {
		ent.Path.SelectNodesInRange(ent.Center, rng)
	} else {
		ent.Path.ExclusivelySelectNodesInRange(ent.Center, rng)
	}
	e.refreshPanel()
}

// insertNodeAt adds a node on the segment closest to the cursor.
func (e *Editor) insertNodeAt(ent *level.Entity, world cp.Vector) {
	index, ok := e.closestSegment(ent, world)
	if !ok {
		return
	}

	if !ent.Path.TryInsertNodeAtIndex(world, index, ent.Center) {
		log.Printf("insert refused: too close to a neighboring node")
		return
	}

	target := ent
	insertIndex := index
	pos := world
	e.history.Push(
		func() { target.Path.RemoveNodesAtIndexes([]int{insertIndex}) },
		func() { target.Path.InsertNodeAtIndex(pos, insertIndex, target.Center) },
	)
	e.refreshPanel()
}

// closestSegment returns the insertion index for the segment nearest to the
// cursor, if it is within picking distance.
func (e *Editor) closestSegment(ent *level.Entity, world cp.Vector) (int, bool) {
	p := ent.Path
	n := p.Len()

	best := math.Inf(1)
	bestIndex := 0
	for i := range n {
		from := p.NodeAt(i).WorldPos(ent.Center)
		to := p.NodeAt((i+1)%n).WorldPos(ent.Center)
		if d := pointSegmentDistance(world, from, to); d < best {
			best = d
			bestIndex = i + 1
		}
	}

	if best > 2*nodeHalfSide/e.canvas.Zoom {
		return 0, false
	}
	return bestIndex, true
}

func pointSegmentDistance(p, a, b cp.Vector) float64 {
	ab := b.Sub(a)
	lengthSq := ab.X*ab.X + ab.Y*ab.Y
	if lengthSq == 0 {
		return p.Sub(a).Length()
	}

	t := (p.Sub(a).X*ab.X + p.Sub(a).Y*ab.Y) / lengthSq
	t = math.Max(0, math.Min(1, t))
	return p.Sub(a.Add(ab.Mult(t))).Length()
}

func (e *Editor) deleteSelection() {
	ent := e.currentEntity()
	if e.playing || ent == nil || ent.Path == nil {
		return
	}

	deletion, status := ent.Path.CheckSelectedNodesDeletion()
	switch status {
	case path.StatusNone:
		return
	case path.StatusInvalid:
		log.Printf("deletion refused")
		return
	}

	payload := level.NodesDeletionPayload{ID: ent.ID, Deletion: deletion}
	payload.Apply(ent)

	target := ent
	e.history.Push(
		func() { payload.Undo(target) },
		func() { payload.Redo(target) },
	)
	e.refreshPanel()
}

func (e *Editor) snapSelection() {
	ent := e.currentEntity()
	if e.playing || ent == nil || ent.Path == nil {
		return
	}

	groups := ent.Path.SnapSelectedNodes(e.grid, ent.Center)
	if groups == nil {
		return
	}

	payload := level.SnapPayload{ID: ent.ID, Groups: groups}
	target := ent
	e.history.Push(
		func() { payload.Undo(target) },
		func() { payload.Redo(target) },
	)
}

func (e *Editor) onFieldChanged(field, value string) {
	ent := e.currentEntity()
	if e.playing || ent == nil || ent.Path == nil {
		return
	}

	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("%s: %q is not a number", field, value)
		return
	}

	target := ent
	p := ent.Path

	pushMovement := func(edit path.MovementValueEdit, undo, redo func(*path.Path, path.MovementValueEdit)) {
		if edit == nil {
			return
		}
		payload := level.MovementValueEditPayload{ID: target.ID, Edit: edit}
		e.history.Push(
			func() { payload.Undo(target, undo) },
			func() { payload.Redo(target, redo) },
		)
		e.refreshPanel()
	}

	switch field {
	case "max_speed":
		if v <= 0 {
			log.Printf("max speed must be higher than 0")
			return
		}
		pushMovement(p.SetSelectedNodesMaxSpeed(v), (*path.Path).UndoMaxSpeedEdit, (*path.Path).RedoMaxSpeedEdit)

	case "min_speed":
		if v < 0 {
			log.Printf("min speed must not be negative")
			return
		}
		pushMovement(p.SetSelectedNodesMinSpeed(v), (*path.Path).UndoMinSpeedEdit, (*path.Path).RedoMinSpeedEdit)

	case "accel":
		if v < 0 || v > 1 {
			log.Printf("accel fraction must be within 0 and 1")
			return
		}
		pushMovement(p.SetSelectedNodesAccelTravelPercentage(v), (*path.Path).UndoAccelTravelPercentageEdit, (*path.Path).RedoAccelTravelPercentageEdit)

	case "decel":
		if v < 0 || v > 1 {
			log.Printf("decel fraction must be within 0 and 1")
			return
		}
		pushMovement(p.SetSelectedNodesDecelTravelPercentage(v), (*path.Path).UndoDecelTravelPercentageEdit, (*path.Path).RedoDecelTravelPercentageEdit)

	case "standby":
		if v < 0 {
			log.Printf("standby time must not be negative")
			return
		}
		edit := p.SetSelectedNodesStandbyTime(v)
		if edit == nil {
			return
		}
		payload := level.StandbyValueEditPayload{ID: target.ID, Edit: edit}
		e.history.Push(
			func() { payload.Undo(target) },
			func() { payload.Redo(target) },
		)
		e.refreshPanel()
	}
}

// generatePath replaces the current entity path with one produced by a
// built-in script template.
func (e *Editor) generatePath(template string) {
	ent := e.currentEntity()
	if e.playing || ent == nil {
		return
	}

	gen, err := script.Template(template)
	if err != nil {
		log.Print(err)
		return
	}

	records, err := gen.Generate(nil)
	if err != nil {
		log.Print(err)
		return
	}

	p, err := path.FromRecords(records)
	if err != nil {
		log.Print(err)
		return
	}

	old := ent.Path
	ent.Path = p

	target := ent
	e.history.Push(
		func() { target.Path = old },
		func() { target.Path = p },
	)
	e.refreshPanel()
}

func (e *Editor) togglePlaying() {
	if e.playing {
		e.stopPlaying()
		return
	}

	e.sims = make(map[string]*path.MovementSimulator)
	for _, ent := range e.lvl.Entities {
		if ent.Path != nil {
			e.sims[ent.ID] = ent.Path.MovementSimulator(ent.ID)
		}
	}
	e.playing = true
}

func (e *Editor) stopPlaying() {
	e.playing = false
	e.sims = nil
}

func (e *Editor) save() {
	if err := e.lvl.Save(e.levelPath); err != nil {
		log.Print(err)
		return
	}
	log.Printf("saved %s", e.levelPath)
}

func (e *Editor) Draw(screen *ebiten.Image) {
	screen.Fill(color.NRGBA{R: 0x18, G: 0x18, B: 0x18, A: 0xff})

	current := e.currentEntity()
	for _, ent := range e.lvl.Entities {
		var offset cp.Vector
		if sim, ok := e.sims[ent.ID]; ok && e.playing {
			offset = sim.MovementVector()
		}
		e.canvas.DrawEntity(screen, ent, offset, ent == current)

		if ent.Path == nil {
			continue
		}

		dragDelta := cp.Vector{}
		dragValid := true
		if ent == current && e.draggingNodes {
			dragDelta = e.dragDelta()
			dragValid = e.dragValid
		}
		e.canvas.DrawPath(screen, ent, dragDelta, dragValid)

		if ent == current {
			e.canvas.DrawSharedPositionTooltips(screen, ent)
		}
	}

	if e.boxSelecting {
		e.canvas.DrawBoxSelect(screen, e.dragStart, e.dragWorld)
	}

	e.panel.UI.Draw(screen)

	mode := "editing"
	if e.playing {
		mode = "playing"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.0f    grid: %d    %s", ebiten.ActualFPS(), e.grid.Size, mode))
}

func (e *Editor) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
