package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ink selects the style a cell is drawn with. The zero value is blank.
type ink uint8

const (
	inkNone ink = iota
	inkNeutral
	inkOccupied
	inkVacant
	inkEdge
	inkHover
	inkLabel
)

type brailleBuf struct {
	w, h  int       // in cells
	m     [][]uint8 // per-cell 8-bit mask
	ink   [][]ink
	label [][]rune // text overlay, 0 where unset
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	k := make([][]ink, h)
	l := make([][]rune, h)
	for i := range m {
		m[i] = make([]uint8, w)
		k[i] = make([]ink, w)
		l[i] = make([]rune, w)
	}
	return &brailleBuf{w: w, h: h, m: m, ink: k, label: l}
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell) and paints the
// cell with c.
func (b *brailleBuf) setPixel(mx, my int, c ink) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	var bit uint8
	if rx == 0 {
		switch ry {
		case 0:
			bit = 0x01
		case 1:
			bit = 0x02
		case 2:
			bit = 0x04
		case 3:
			bit = 0x40
		}
	} else {
		switch ry {
		case 0:
			bit = 0x08
		case 1:
			bit = 0x10
		case 2:
			bit = 0x20
		case 3:
			bit = 0x80
		}
	}
	b.m[cy][cx] |= bit
	b.ink[cy][cx] = c
}

// drawLineMicro draws a line on the microgrid using Bresenham
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int, c ink) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// setLabel writes s centred on cell (cx, cy), clipped to the buffer.
func (b *brailleBuf) setLabel(cx, cy int, s string) {
	if cy < 0 || cy >= b.h {
		return
	}
	r := []rune(s)
	start := cx - len(r)/2
	for i, ch := range r {
		x := start + i
		if x < 0 || x >= b.w {
			continue
		}
		b.label[cy][x] = ch
	}
}

// toLines renders the buffer, styling runs of equally inked cells together.
func (b *brailleBuf) toLines(styles map[ink]lipgloss.Style) []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		var sb strings.Builder
		var run []rune
		cur := inkNone
		flush := func() {
			if len(run) == 0 {
				return
			}
			if st, ok := styles[cur]; ok && cur != inkNone {
				sb.WriteString(st.Render(string(run)))
			} else {
				sb.WriteString(string(run))
			}
			run = run[:0]
		}
		for x := 0; x < b.w; x++ {
			ch, k := ' ', b.ink[y][x]
			switch {
			case b.label[y][x] != 0:
				ch, k = b.label[y][x], inkLabel
			case b.m[y][x] != 0:
				ch = rune(0x2800 + int(b.m[y][x]))
			default:
				k = inkNone
			}
			if k != cur {
				flush()
				cur = k
			}
			run = append(run, ch)
		}
		flush()
		out[y] = sb.String()
	}
	return out
}
