// Package render assembles drawable slot shapes from the layout, the live
// status lookup and a projector.
package render

import (
	"github.com/paulmach/orb"

	"parkmap/internal/geom"
	"parkmap/internal/layout"
	"parkmap/internal/status"
)

// Shape is one drawable outer ring of a slot, in canvas coordinates.
// A MultiPolygon slot yields one Shape per part.
type Shape struct {
	SlotID   string    `json:"slot_id"`
	Status   string    `json:"status"`
	Class    Class     `json:"class"`
	Outline  orb.Ring  `json:"outline"` // closed implicitly, last vertex connects to the first
	Centroid orb.Point `json:"centroid"`
}

// Assemble projects the outer ring of every ring group of f. Holes are not
// drawn. The centroid is the mean of the projected vertices, which is good
// enough for small convex slots and may fall outside concave ones.
func Assemble(f layout.Feature, lookup status.Lookup, p geom.Projector) []Shape {
	st := status.Resolve(lookup, f.SlotID, f.Status)
	cls := Classify(st)
	var shapes []Shape
	for _, poly := range f.Geometry.RingGroups() {
		if len(poly) == 0 || len(poly[0]) == 0 {
			continue
		}
		outline := p.ProjectRing(poly[0])
		shapes = append(shapes, Shape{
			SlotID:   f.SlotID,
			Status:   st,
			Class:    cls,
			Outline:  outline,
			Centroid: centroid(outline),
		})
	}
	return shapes
}

// AssembleAll runs the whole pipeline over a layout. ok is false when the
// layout has no positions; callers show an empty or loading state then.
func AssembleAll(c *layout.Collection, lookup status.Lookup, canvas geom.Canvas) (shapes []Shape, ok bool) {
	env, ok := c.Envelope()
	if !ok {
		return nil, false
	}
	return AssembleWith(c, lookup, geom.NewProjector(env, canvas)), true
}

// AssembleWith assembles every feature with an already built projector, for
// callers that keep the projector across status updates.
func AssembleWith(c *layout.Collection, lookup status.Lookup, p geom.Projector) []Shape {
	shapes := []Shape{}
	for _, f := range c.Features {
		shapes = append(shapes, Assemble(f, lookup, p)...)
	}
	return shapes
}

func centroid(r orb.Ring) orb.Point {
	var c orb.Point
	for _, v := range r {
		c[0] += v[0]
		c[1] += v[1]
	}
	n := float64(len(r))
	return orb.Point{c[0] / n, c[1] / n}
}

// Counts tallies shapes per class.
func Counts(shapes []Shape) map[Class]int {
	out := map[Class]int{ClassOccupied: 0, ClassVacant: 0, ClassNeutral: 0}
	for _, s := range shapes {
		out[s.Class]++
	}
	return out
}
