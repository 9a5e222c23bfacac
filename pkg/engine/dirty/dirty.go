// Package dirty decides between a full and a partial overlay redraw by
// diffing the marker positions of two consecutive renders.
package dirty

import (
	"image"
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// DefaultRadius is the half-size in pixels of the square redrawn around a
// changed marker.
const DefaultRadius = 30.0

// Result is the redraw decision for one render
type Result struct {
	FullRedraw bool
	Regions    []rect.Rect // screen rectangles to clear and redraw; LL is the top-left corner
}

// Compute diffs cur against prev by index. Index i of cur is compared with
// index i of prev only; the lists are never matched by identity.
//
// A changed location yields one region covering the old and the new marker.
// Indices present in only one list yield a region around that list's point.
// When no index present in both lists differs but the lengths do, the
// result is a full redraw.
func Compute(prev, cur []vec.Vec2, project func(vec.Vec2) vec.Vec2, radius float64) Result {
	var regions []rect.Rect
	mismatch := false

	n := max(len(prev), len(cur))
	for i := 0; i < n; i++ {
		switch {
		case i >= len(prev):
			regions = append(regions, around(project(cur[i]), radius))
		case i >= len(cur):
			regions = append(regions, around(project(prev[i]), radius))
		case prev[i] != cur[i]:
			mismatch = true
			regions = append(regions, union(around(project(cur[i]), radius), around(project(prev[i]), radius)))
		}
	}

	if !mismatch && len(prev) != len(cur) {
		return Result{FullRedraw: true}
	}
	return Result{Regions: regions}
}

// around returns the square of half-size radius centred on p, with its
// top-left corner clamped to the canvas origin.
func around(p vec.Vec2, radius float64) rect.Rect {
	return clampOrigin(rect.Rect{
		LLx: p.X - radius,
		LLy: p.Y - radius,
		URx: p.X + radius,
		URy: p.Y + radius,
	})
}

func union(a, b rect.Rect) rect.Rect {
	return rect.Rect{
		LLx: math.Min(a.LLx, b.LLx),
		LLy: math.Min(a.LLy, b.LLy),
		URx: math.Max(a.URx, b.URx),
		URy: math.Max(a.URy, b.URy),
	}
}

func clampOrigin(r rect.Rect) rect.Rect {
	w, h := r.URx-r.LLx, r.URy-r.LLy
	r.LLx = math.Max(0, r.LLx)
	r.LLy = math.Max(0, r.LLy)
	r.URx = r.LLx + w
	r.URy = r.LLy + h
	return r
}

// Pixels converts a region to the smallest integer rectangle containing it
func Pixels(r rect.Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.LLx)),
		int(math.Floor(r.LLy)),
		int(math.Ceil(r.URx)),
		int(math.Ceil(r.URy)),
	)
}

// Tracker keeps the marker positions of the previous render.
// The zero value is ready to use and asks for a full redraw first.
type Tracker struct {
	Radius float64

	last  []vec.Vec2
	valid bool
}

// NewTracker returns a tracker using the given region radius
func NewTracker(radius float64) *Tracker {
	if radius <= 0 {
		radius = DefaultRadius
	}
	return &Tracker{Radius: radius}
}

// Decide computes the redraw decision for cur. The first render, an empty
// snapshot, and any render after Invalidate are full redraws.
func (t *Tracker) Decide(cur []vec.Vec2, project func(vec.Vec2) vec.Vec2) Result {
	if !t.valid || len(t.last) == 0 {
		return Result{FullRedraw: true}
	}
	radius := t.Radius
	if radius <= 0 {
		radius = DefaultRadius
	}
	return Compute(t.last, cur, project, radius)
}

// Commit stores cur as the snapshot for the next Decide
func (t *Tracker) Commit(cur []vec.Vec2) {
	t.last = append(t.last[:0], cur...)
	t.valid = true
}

// Invalidate forces the next decision to be a full redraw. Used whenever
// the projection itself changes, since positions are then no longer
// comparable.
func (t *Tracker) Invalidate() {
	t.valid = false
}

// Last returns the snapshot of the previous render
func (t *Tracker) Last() []vec.Vec2 {
	return t.last
}
