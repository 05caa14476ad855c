package layout

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"parkmap/internal/geom"
)

// ErrNotCollection is returned for documents that are neither a
// FeatureCollection nor a single Feature.
var ErrNotCollection = errors.New("layout: not a GeoJSON FeatureCollection")

// Decode reads a GeoJSON FeatureCollection (or a single Feature) into a
// Collection. Geometry and properties are decoded leniently: malformed
// coordinates contribute nothing and missing properties leave the slot id
// and status empty. An empty collection is not an error.
func Decode(r io.Reader) (*Collection, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	c := &Collection{}
	t, _ := raw["type"].(string)
	switch t {
	case "FeatureCollection":
		fs, _ := raw["features"].([]any)
		for _, f := range fs {
			fm, ok := f.(map[string]any)
			if !ok {
				continue
			}
			c.Features = append(c.Features, decodeFeature(fm))
		}
	case "Feature":
		c.Features = append(c.Features, decodeFeature(raw))
	default:
		return nil, fmt.Errorf("%w (type %q)", ErrNotCollection, t)
	}
	return c, nil
}

func decodeFeature(fm map[string]any) Feature {
	var f Feature
	props, _ := fm["properties"].(map[string]any)
	f.SlotID = propString(props["slot_id"])
	f.Status = propString(props["status"])
	f.Properties = props
	if g, ok := fm["geometry"].(map[string]any); ok {
		f.Geometry = decodeGeometry(g)
	}
	return f
}

func decodeGeometry(g map[string]any) Geometry {
	gt, _ := g["type"].(string)
	coords := g["coordinates"]
	switch gt {
	case "Polygon":
		geo := Geometry{Kind: KindPolygon, Type: gt}
		if poly, ok := parsePolygon(coords); ok {
			geo.Polygons = []orb.Polygon{poly}
		}
		return geo
	case "MultiPolygon":
		geo := Geometry{Kind: KindMultiPolygon, Type: gt}
		if arr, ok := coords.([]any); ok {
			for _, el := range arr {
				if poly, ok := parsePolygon(el); ok {
					geo.Polygons = append(geo.Polygons, poly)
				}
			}
		}
		return geo
	}
	return Geometry{Kind: KindOther, Type: gt, Other: geom.Flatten(coords), Source: sourceGeometry(g)}
}

// sourceGeometry decodes a non-area geometry as is, for pass-through.
func sourceGeometry(g map[string]any) orb.Geometry {
	data, err := json.Marshal(g)
	if err != nil {
		return nil
	}
	gg, err := geojson.UnmarshalGeometry(data)
	if err != nil || gg == nil {
		return nil
	}
	return gg.Geometry()
}

// parsePolygon reads a list of rings. Each ring is flattened, so a ring
// nested one level too deep still yields its positions. A bare position list
// (one level too shallow) is read as a single outer ring.
func parsePolygon(v any) (orb.Polygon, bool) {
	arr, ok := v.([]any)
	if !ok {
		return nil, false
	}
	if len(arr) > 0 && geom.IsPosition(arr[0]) {
		return orb.Polygon{orb.Ring(geom.Flatten(arr))}, true
	}
	poly := make(orb.Polygon, 0, len(arr))
	for _, ring := range arr {
		poly = append(poly, orb.Ring(geom.Flatten(ring)))
	}
	return poly, true
}

func propString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return ""
}
