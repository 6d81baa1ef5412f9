package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/font/basicfont"

	"github.com/milkweed-games/waypath/level"
)

const (
	// nodeHalfSide is half the side of a node square at zoom 1, matching
	// the pick area of Path.NearbyNodes.
	nodeHalfSide = 5.0
	arrowSize    = 6.0
)

var (
	entityColor      = color.NRGBA{R: 0x50, G: 0x50, B: 0x70, A: 0xff}
	segmentColor     = color.NRGBA{R: 0xa0, G: 0xa0, B: 0xa0, A: 0xff}
	nodeColor        = color.NRGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}
	selectedColor    = color.NRGBA{R: 0xff, G: 0xc0, B: 0x30, A: 0xff}
	ghostColor       = color.NRGBA{R: 0xff, G: 0xc0, B: 0x30, A: 0x80}
	invalidColor     = color.NRGBA{R: 0xff, G: 0x40, B: 0x40, A: 0xff}
	boxSelectColor   = color.NRGBA{R: 0x60, G: 0xa0, B: 0xff, A: 0x60}
	tooltipTextColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

func cpVector(x, y float64) cp.Vector { return cp.Vector{X: x, Y: y} }

// Canvas holds the pan/zoom transform of the editing area and draws the
// level through it.
type Canvas struct {
	Zoom    float64
	OffsetX float64
	OffsetY float64

	dragActive bool
	lastMX     int
	lastMY     int

	tooltipFace ebtext.Face
}

func NewCanvas() *Canvas {
	return &Canvas{
		Zoom: 1,
		// start with the map origin at the middle of the window
		OffsetX:     baseWidth / 2,
		OffsetY:     baseHeight / 2,
		tooltipFace: ebtext.NewGoXFace(basicfont.Face7x13),
	}
}

// ScreenToWorld maps a cursor position to map coordinates.
func (c *Canvas) ScreenToWorld(sx, sy int) cp.Vector {
	return cp.Vector{
		X: (float64(sx) - c.OffsetX) / c.Zoom,
		Y: (float64(sy) - c.OffsetY) / c.Zoom,
	}
}

// WorldToScreen maps map coordinates to the screen.
func (c *Canvas) WorldToScreen(v cp.Vector) (float32, float32) {
	return float32(v.X*c.Zoom + c.OffsetX), float32(v.Y*c.Zoom + c.OffsetY)
}

// Update handles wheel zoom around the cursor and middle button panning.
func (c *Canvas) Update(mx, my int) {
	_, wy := ebiten.Wheel()
	if wy != 0 {
		before := c.ScreenToWorld(mx, my)

		factor := 1.1
		if wy < 0 {
			factor = 1.0 / 1.1
		}
		c.Zoom *= factor
		if c.Zoom < 0.25 {
			c.Zoom = 0.25
		}
		if c.Zoom > 8.0 {
			c.Zoom = 8.0
		}

		// keep the point under the cursor fixed
		c.OffsetX = float64(mx) - before.X*c.Zoom
		c.OffsetY = float64(my) - before.Y*c.Zoom
	}

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		if !c.dragActive {
			c.dragActive = true
			c.lastMX, c.lastMY = mx, my
		}
		c.OffsetX += float64(mx - c.lastMX)
		c.OffsetY += float64(my - c.lastMY)
		c.lastMX, c.lastMY = mx, my
	} else {
		c.dragActive = false
	}
}

// DrawEntity draws the entity body, displaced by offset while the
// simulation is playing.
func (c *Canvas) DrawEntity(screen *ebiten.Image, e *level.Entity, offset cp.Vector, active bool) {
	size := e.Size
	if size.X == 0 || size.Y == 0 {
		size = cp.Vector{X: 32, Y: 32}
	}

	topLeft := e.Center.Add(offset).Sub(size.Mult(0.5))
	x, y := c.WorldToScreen(topLeft)
	w := float32(size.X * c.Zoom)
	h := float32(size.Y * c.Zoom)

	vector.DrawFilledRect(screen, x, y, w, h, entityColor, false)
	if active {
		vector.StrokeRect(screen, x, y, w, h, 2, selectedColor, false)
	}
}

// DrawPath draws the node loop of an entity: arrowed segments, node squares
// with the selected ones highlighted, and a ghost preview of the pending
// drag of the selected nodes.
func (c *Canvas) DrawPath(screen *ebiten.Image, e *level.Entity, dragDelta cp.Vector, dragValid bool) {
	p := e.Path
	n := p.Len()

	for i := range n {
		from := p.NodeAt(i).WorldPos(e.Center)
		to := p.NodeAt((i + 1) % n).WorldPos(e.Center)
		c.drawSegment(screen, from, to)
	}

	for _, node := range p.Nodes() {
		pos := node.WorldPos(e.Center)

		col := nodeColor
		if node.Selected() {
			col = selectedColor
		}
		c.drawNodeSquare(screen, pos, col, false)

		if node.Selected() && dragDelta != (cp.Vector{}) {
			ghost := ghostColor
			if !dragValid {
				ghost = invalidColor
			}
			c.drawNodeSquare(screen, pos.Add(dragDelta), ghost, true)
		}
	}
}

func (c *Canvas) drawSegment(screen *ebiten.Image, from, to cp.Vector) {
	x0, y0 := c.WorldToScreen(from)
	x1, y1 := c.WorldToScreen(to)
	vector.StrokeLine(screen, x0, y0, x1, y1, 1, segmentColor, true)

	// arrowhead at the midpoint, pointing along the travel direction
	dir := to.Sub(from)
	length := dir.Length()
	if length == 0 {
		return
	}
	dir = dir.Mult(1 / length)
	normal := cp.Vector{X: -dir.Y, Y: dir.X}

	mid := from.Add(to).Mult(0.5)
	tip := mid.Add(dir.Mult(arrowSize / c.Zoom))
	left := mid.Add(normal.Mult(arrowSize / 2 / c.Zoom))
	right := mid.Sub(normal.Mult(arrowSize / 2 / c.Zoom))

	tx, ty := c.WorldToScreen(tip)
	lx, ly := c.WorldToScreen(left)
	rx, ry := c.WorldToScreen(right)
	vector.StrokeLine(screen, lx, ly, tx, ty, 1, segmentColor, true)
	vector.StrokeLine(screen, rx, ry, tx, ty, 1, segmentColor, true)
}

func (c *Canvas) drawNodeSquare(screen *ebiten.Image, world cp.Vector, col color.NRGBA, outlineOnly bool) {
	x, y := c.WorldToScreen(world)
	side := float32(nodeHalfSide * 2)

	if outlineOnly {
		vector.StrokeRect(screen, x-side/2, y-side/2, side, side, 1, col, false)
		return
	}
	vector.DrawFilledRect(screen, x-side/2, y-side/2, side, side, col, false)
}

// DrawBoxSelect draws the in-progress box selection.
func (c *Canvas) DrawBoxSelect(screen *ebiten.Image, a, b cp.Vector) {
	x0, y0 := c.WorldToScreen(a)
	x1, y1 := c.WorldToScreen(b)
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	vector.DrawFilledRect(screen, x0, y0, x1-x0, y1-y0, boxSelectColor, false)
}

// DrawSharedPositionTooltips labels every position occupied by more than
// one node, since overlapping squares are indistinguishable on screen.
func (c *Canvas) DrawSharedPositionTooltips(screen *ebiten.Image, e *level.Entity) {
	for pos, idxs := range e.Path.SharedPositionGroups() {
		if len(idxs) < 2 {
			continue
		}

		labels := make([]string, len(idxs))
		for i, idx := range idxs {
			labels[i] = fmt.Sprintf("%d", idx)
		}

		x, y := c.WorldToScreen(e.Center.Add(pos))
		op := &ebtext.DrawOptions{}
		op.GeoM.Translate(float64(x)+nodeHalfSide+2, float64(y)-nodeHalfSide-14)
		op.ColorScale.ScaleWithColor(tooltipTextColor)
		ebtext.Draw(screen, "nodes "+strings.Join(labels, ", "), c.tooltipFace, op)
	}
}
