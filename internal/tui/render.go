package tui

import (
	"math"
	"sort"
	"strings"

	"github.com/paulmach/orb"

	"parkmap/internal/geom"
	"parkmap/internal/render"
)

// canvasFor is the braille micro grid of a w x h cell map: 2x4 dots per cell.
func canvasFor(w, h int) geom.Canvas {
	return geom.Canvas{Width: float64(w*2 - 1), Height: float64(h*4 - 1), Margin: 2}
}

// viewport applies zoom around the canvas centre and pan, in micro pixels.
type viewport struct {
	zoom   float64
	cx, cy float64
	dx, dy float64
}

func (m Model) viewport() viewport {
	vp := viewport{
		zoom: 1,
		cx:   float64(m.mapW*2-1) / 2,
		cy:   float64(m.mapH*4-1) / 2,
	}
	if m.view == viewMap {
		vp.zoom = m.zoom
		vp.dx = float64(m.offsetX * 2)
		vp.dy = float64(m.offsetY * 4)
	}
	return vp
}

func (vp viewport) apply(p orb.Point) (int, int) {
	x := vp.cx + (p[0]-vp.cx)*vp.zoom + vp.dx
	y := vp.cy + (p[1]-vp.cy)*vp.zoom + vp.dy
	return int(math.Round(x)), int(math.Round(y))
}

func (vp viewport) invert(mx, my int) orb.Point {
	return orb.Point{
		vp.cx + (float64(mx)-vp.dx-vp.cx)/vp.zoom,
		vp.cy + (float64(my)-vp.dy-vp.cy)/vp.zoom,
	}
}

// rebuild recomputes the derived render state. The projector is only
// rebuilt when the layout or the map size changed.
func (m *Model) rebuild(relayout bool) {
	m.refreshTable()
	if m.coll == nil || !m.hasEnv || m.mapW <= 0 || m.mapH <= 0 {
		m.shapes, m.index = nil, nil
		return
	}
	if c := canvasFor(m.mapW, m.mapH); relayout || m.proj.Canvas() != c {
		m.proj = geom.NewProjector(m.env, c)
	}
	m.shapes = render.AssembleWith(m.coll, m.lookup, m.proj)
	m.index = render.NewIndex(m.shapes)
}

// shapeAt returns the slot under a map cell.
func (m Model) shapeAt(cellX, cellY int) (render.Shape, bool) {
	if m.index == nil {
		return render.Shape{}, false
	}
	p := m.viewport().invert(cellX*2+1, cellY*4+2)
	if s, ok := m.index.Hit(p); ok {
		return s, true
	}
	// Small slots may be thinner than a cell; accept the nearest label.
	return m.index.Nearest(p, 4/m.viewport().zoom)
}

// cellToLonLat converts a map cell coordinate back to lon/lat.
func (m Model) cellToLonLat(cx, cy int) (float64, float64, bool) {
	if !m.hasEnv || m.mapW <= 1 || m.mapH <= 1 {
		return 0, 0, false
	}
	p := m.proj.Unproject(m.viewport().invert(cx*2+1, cy*4+2))
	return p[0], p[1], true
}

func (m Model) renderCanvas(w, h int, labels bool) string {
	br := newBrailleBuf(w, h)
	vp := m.viewport()

	for _, s := range m.shapes {
		c := inkFor(s.Class)
		if m.hovering && s.SlotID == m.hoverSlot && m.hoverSlot != "" {
			c = inkHover
		}
		outer := make([][2]int, 0, len(s.Outline))
		for _, p := range s.Outline {
			x, y := vp.apply(p)
			outer = append(outer, [2]int{x, y})
		}
		if len(outer) >= 3 {
			fillRing(br, outer, h*4, c)
		}
		if m.showEdges || len(outer) < 3 {
			for i := range outer {
				a := outer[i]
				b := outer[(i+1)%len(outer)]
				br.drawLineMicro(a[0], a[1], b[0], b[1], inkEdge)
			}
		}
	}
	if labels {
		for _, s := range m.shapes {
			x, y := vp.apply(s.Centroid)
			br.setLabel(x/2, y/4, s.SlotID)
		}
	}
	return strings.Join(br.toLines(inkStyles), "\n")
}

// fillRing fills a ring with the even-odd rule per micro scanline. The
// ring's right column and top row are left blank so that slots sharing an
// edge stay visually apart.
func fillRing(br *brailleBuf, ring [][2]int, hMic int, c ink) {
	top, bottom := ring[0][1], ring[0][1]
	for _, p := range ring {
		top = min(top, p[1])
		bottom = max(bottom, p[1])
	}
	for yMic := max(0, top+1); yMic <= bottom && yMic < hMic; yMic++ {
		var xs []int
		for i := 0; i < len(ring); i++ {
			a := ring[i]
			b := ring[(i+1)%len(ring)]
			if a[1] == b[1] { // horizontal edge: skip
				continue
			}
			y0, y1 := a[1], b[1]
			x0, x1 := a[0], b[0]
			if (yMic >= y0 && yMic < y1) || (yMic >= y1 && yMic < y0) {
				t := float64(yMic-y0) / float64(y1-y0)
				xs = append(xs, int(float64(x0)+t*float64(x1-x0)))
			}
		}
		if len(xs) < 2 {
			continue
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for xMic := max(0, xs[i]); xMic < xs[i+1]; xMic++ {
				br.setPixel(xMic, yMic, c)
			}
		}
	}
}
