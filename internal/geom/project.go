package geom

import "github.com/paulmach/orb"

// epsilon guards the scale against zero-width or zero-height envelopes.
const epsilon = 1e-9

// Projector maps source positions onto a Canvas: a linear scale per axis
// with the vertical axis flipped, since latitude grows upwards and canvas
// rows grow downwards. It holds no state beyond its parameters and may be
// shared freely. Rebuild it when the envelope or canvas changes.
type Projector struct {
	env    Envelope
	canvas Canvas
	spanX  float64
	spanY  float64
}

// NewProjector builds the mapping from env into canvas.
func NewProjector(env Envelope, canvas Canvas) Projector {
	return Projector{
		env:    env,
		canvas: canvas,
		spanX:  max(epsilon, env.MaxX-env.MinX),
		spanY:  max(epsilon, env.MaxY-env.MinY),
	}
}

// Envelope returns the source envelope the projector was built from.
func (p Projector) Envelope() Envelope { return p.env }

// Canvas returns the target surface.
func (p Projector) Canvas() Canvas { return p.canvas }

// Project maps a source position to canvas coordinates. Every value on a
// degenerate axis lands on the margin.
func (p Projector) Project(pt orb.Point) orb.Point {
	m := p.canvas.Margin
	innerW := p.canvas.Width - 2*m
	innerH := p.canvas.Height - 2*m
	x, y := m, m
	if p.spanX > epsilon {
		x = m + (pt[0]-p.env.MinX)/p.spanX*innerW
	}
	if p.spanY > epsilon {
		y = m + (1-(pt[1]-p.env.MinY)/p.spanY)*innerH
	}
	return orb.Point{x, y}
}

// ProjectRing projects every vertex of r, preserving order.
func (p Projector) ProjectRing(r orb.Ring) orb.Ring {
	out := make(orb.Ring, len(r))
	for i, pt := range r {
		out[i] = p.Project(pt)
	}
	return out
}

// Unproject is the inverse of Project on non-degenerate axes. It is used to
// report the source coordinate under the cursor.
func (p Projector) Unproject(pt orb.Point) orb.Point {
	m := p.canvas.Margin
	innerW := p.canvas.Width - 2*m
	innerH := p.canvas.Height - 2*m
	lon, lat := p.env.MinX, p.env.MinY
	if p.spanX > epsilon && innerW != 0 {
		lon = p.env.MinX + (pt[0]-m)/innerW*p.spanX
	}
	if p.spanY > epsilon && innerH != 0 {
		lat = p.env.MinY + (1-(pt[1]-m)/innerH)*p.spanY
	}
	return orb.Point{lon, lat}
}
