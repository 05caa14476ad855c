package geom

import "github.com/paulmach/orb"

// ComputeEnvelope folds a running min/max over points. ok is false when
// there are no points; callers must not project in that case.
func ComputeEnvelope(points []orb.Point) (env Envelope, ok bool) {
	for _, pt := range points {
		env, ok = extend(env, ok, pt), true
	}
	return env, ok
}

func extend(bb Envelope, seeded bool, pt orb.Point) Envelope {
	if !seeded {
		return Envelope{MinX: pt[0], MinY: pt[1], MaxX: pt[0], MaxY: pt[1]}
	}
	if pt[0] < bb.MinX {
		bb.MinX = pt[0]
	}
	if pt[1] < bb.MinY {
		bb.MinY = pt[1]
	}
	if pt[0] > bb.MaxX {
		bb.MaxX = pt[0]
	}
	if pt[1] > bb.MaxY {
		bb.MaxY = pt[1]
	}
	return bb
}
