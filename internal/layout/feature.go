// Package layout holds the static parking layout: one Feature per slot,
// decoded from a GeoJSON FeatureCollection.
package layout

import (
	"github.com/paulmach/orb"

	"parkmap/internal/geom"
)

// Kind discriminates the geometry variants a layout may carry.
type Kind int

const (
	KindOther Kind = iota
	KindPolygon
	KindMultiPolygon
)

func (k Kind) String() string {
	switch k {
	case KindPolygon:
		return "Polygon"
	case KindMultiPolygon:
		return "MultiPolygon"
	}
	return "Other"
}

// Geometry is a tagged union over the layout's geometry kinds. Polygon
// geometries hold one entry in Polygons (none when coordinates are missing),
// MultiPolygons one per part.
// Geometries that are not areas keep their positions in Other so they still
// count towards the envelope, and their decoded form in Source (nil when the
// document could not be decoded as GeoJSON).
type Geometry struct {
	Kind     Kind
	Type     string // GeoJSON type as found in the document
	Polygons []orb.Polygon
	Other    []orb.Point
	Source   orb.Geometry
}

// Rings normalizes the geometry into a flat list of rings, outer and holes.
func (g Geometry) Rings() []orb.Ring {
	var rings []orb.Ring
	for _, p := range g.Polygons {
		rings = append(rings, p...)
	}
	return rings
}

// Positions returns every position of the geometry in document order.
func (g Geometry) Positions() []orb.Point {
	pts := geom.FlattenRings(g.Rings()...)
	return append(pts, g.Other...)
}

// RingGroups returns the polygons that render as areas: one for a Polygon,
// one per part for a MultiPolygon, none for anything else.
func (g Geometry) RingGroups() []orb.Polygon {
	switch g.Kind {
	case KindPolygon, KindMultiPolygon:
		return g.Polygons
	}
	return nil
}

// Feature is one slot of the layout.
type Feature struct {
	SlotID   string
	Status   string // embedded fallback status, "" if none
	Geometry Geometry
	// Properties are the remaining feature properties, passed through to
	// the annotated collection.
	Properties map[string]any
}

// Collection is a loaded layout. It is read only once loaded.
type Collection struct {
	Features []Feature
}

// Envelope walks every feature and returns the box around all positions.
// ok is false for an empty layout or one without positions.
func (c *Collection) Envelope() (geom.Envelope, bool) {
	if c == nil {
		return geom.Envelope{}, false
	}
	var pts []orb.Point
	for _, f := range c.Features {
		pts = append(pts, f.Geometry.Positions()...)
	}
	return geom.ComputeEnvelope(pts)
}
