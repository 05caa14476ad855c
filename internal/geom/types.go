package geom

import "github.com/paulmach/orb"

// Envelope is the axis-aligned box around every position of a layout, in
// source coordinates (X is longitude, Y is latitude).
type Envelope struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Bound converts the envelope to an orb.Bound.
func (e Envelope) Bound() orb.Bound {
	return orb.Bound{Min: orb.Point{e.MinX, e.MinY}, Max: orb.Point{e.MaxX, e.MaxY}}
}

// Contains reports whether p lies inside the envelope, edges included.
func (e Envelope) Contains(p orb.Point) bool {
	return p[0] >= e.MinX && p[0] <= e.MaxX && p[1] >= e.MinY && p[1] <= e.MaxY
}

// Canvas is the fixed drawing surface shapes are projected into. Margin is
// kept free on every side.
type Canvas struct {
	Width  float64
	Height float64
	Margin float64
}

// DefaultCanvas is the schematic drawing surface.
var DefaultCanvas = Canvas{Width: 1200, Height: 520, Margin: 20}
