package render

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/tidwall/rtree"
)

// Index answers "which shape is under this canvas point" for hover and
// click lookups.
type Index struct {
	tree   rtree.RTreeG[int]
	shapes []Shape
}

// NewIndex indexes the outline bounds of shapes.
func NewIndex(shapes []Shape) *Index {
	ix := &Index{shapes: shapes}
	for i, s := range shapes {
		if len(s.Outline) == 0 {
			continue
		}
		b := s.Outline.Bound()
		ix.tree.Insert([2]float64(b.Min), [2]float64(b.Max), i)
	}
	return ix
}

// Hit returns the topmost shape whose outline contains pt. Shapes later in
// the slice are drawn above earlier ones and win ties.
func (ix *Index) Hit(pt orb.Point) (Shape, bool) {
	best := -1
	ix.tree.Search([2]float64(pt), [2]float64(pt), func(min, max [2]float64, i int) bool {
		if i > best && planar.RingContains(ix.shapes[i].Outline, pt) {
			best = i
		}
		return true
	})
	if best < 0 {
		return Shape{}, false
	}
	return ix.shapes[best], true
}

// Nearest returns the shape whose centroid is closest to pt within radius.
func (ix *Index) Nearest(pt orb.Point, radius float64) (Shape, bool) {
	best, bestD := -1, radius*radius
	ix.tree.Search(
		[2]float64{pt[0] - radius, pt[1] - radius},
		[2]float64{pt[0] + radius, pt[1] + radius},
		func(min, max [2]float64, i int) bool {
			c := ix.shapes[i].Centroid
			dx, dy := c[0]-pt[0], c[1]-pt[1]
			if d := dx*dx + dy*dy; d <= bestD {
				best, bestD = i, d
			}
			return true
		},
	)
	if best < 0 {
		return Shape{}, false
	}
	return ix.shapes[best], true
}

