package render

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"parkmap/internal/layout"
	"parkmap/internal/status"
)

// Annotate builds the collection handed to an external map renderer: every
// feature carries its resolved slot_id, status and class, plus last_updated
// when the feed sent one. Every layout feature is kept, in order; one whose
// geometry cannot be expressed gets a null geometry. The layout envelope
// becomes the collection bbox.
func Annotate(c *layout.Collection, lookup status.Lookup) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if env, ok := c.Envelope(); ok {
		fc.BBox = geojson.NewBBox(env.Bound())
	}
	for _, f := range c.Features {
		gf := geojson.NewFeature(orbGeometry(f.Geometry))
		for k, v := range f.Properties {
			gf.Properties[k] = v
		}
		st := status.Resolve(lookup, f.SlotID, f.Status)
		gf.Properties["slot_id"] = f.SlotID
		gf.Properties["status"] = st
		gf.Properties["class"] = Classify(st).String()
		if ts := lookup.LastUpdated(f.SlotID); ts != "" {
			gf.Properties["last_updated"] = ts
		}
		fc.Append(gf)
	}
	return fc
}

// orbGeometry returns nil when the geometry has nothing to draw.
func orbGeometry(g layout.Geometry) orb.Geometry {
	switch g.Kind {
	case layout.KindPolygon, layout.KindMultiPolygon:
		var parts orb.MultiPolygon
		for _, poly := range g.RingGroups() {
			if len(poly) > 0 && len(poly[0]) > 0 {
				parts = append(parts, poly)
			}
		}
		if len(parts) == 0 {
			return nil
		}
		if g.Kind == layout.KindPolygon {
			return parts[0]
		}
		return parts
	}
	if g.Source == nil {
		return nil
	}
	return g.Source
}
