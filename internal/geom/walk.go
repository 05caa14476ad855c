package geom

import "github.com/paulmach/orb"

// Flatten walks an arbitrarily nested coordinate tree depth-first and returns
// every position it finds, in traversal order.
//
// A node is a position when its first two elements are numbers; any other
// sequence is descended into. Nodes that are neither (strings, maps, short
// sequences that bottom out) contribute nothing. A nil tree yields an empty
// slice.
func Flatten(tree any) []orb.Point {
	out := []orb.Point{}
	walk(tree, &out)
	return out
}

// FlattenRings returns the vertices of the given rings in order.
func FlattenRings(rings ...orb.Ring) []orb.Point {
	out := []orb.Point{}
	for _, r := range rings {
		out = append(out, r...)
	}
	return out
}

func walk(node any, out *[]orb.Point) {
	switch n := node.(type) {
	case nil:
		return
	case orb.Point:
		*out = append(*out, n)
	case [2]float64:
		*out = append(*out, orb.Point(n))
	case []float64:
		if len(n) >= 2 {
			*out = append(*out, orb.Point{n[0], n[1]})
		}
	case [][]float64:
		for _, c := range n {
			walk(c, out)
		}
	case []orb.Point:
		*out = append(*out, n...)
	case orb.Ring:
		*out = append(*out, n...)
	case orb.LineString:
		*out = append(*out, n...)
	case orb.Polygon:
		for _, r := range n {
			*out = append(*out, r...)
		}
	case orb.MultiPolygon:
		for _, p := range n {
			walk(p, out)
		}
	case []any:
		if pt, ok := leaf(n); ok {
			*out = append(*out, pt)
			return
		}
		for _, c := range n {
			walk(c, out)
		}
	}
}

// IsPosition reports whether a decoded JSON node is a single position.
func IsPosition(node any) bool {
	a, ok := node.([]any)
	if !ok {
		return false
	}
	_, ok = leaf(a)
	return ok
}

// leaf reports whether a decoded JSON array is a position.
func leaf(a []any) (orb.Point, bool) {
	if len(a) < 2 {
		return orb.Point{}, false
	}
	x, xok := number(a[0])
	y, yok := number(a[1])
	if !xok || !yok {
		return orb.Point{}, false
	}
	return orb.Point{x, y}, true
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
