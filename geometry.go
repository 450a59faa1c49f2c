// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import "math"

// DefaultHitThreshold is the default maximum distance, in pixels, between a
// point and a connection for the connection to be considered under the point.
//
const DefaultHitThreshold = 10

// Point is a position on the drawing surface.
//
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
//
func Pt(x, y float64) Point { return Point{x, y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

// Rect is an axis-aligned rectangle. Both edges are inclusive.
//
type Rect struct {
	Min, Max Point
}

// Contains reports whether p lies inside r or on its border.
//
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X &&
		p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Dx returns the width of r.
func (r Rect) Dx() float64 { return r.Max.X - r.Min.X }

// Dy returns the height of r.
func (r Rect) Dy() float64 { return r.Max.Y - r.Min.Y }

// SegmentDistance returns the distance between p and the segment [a, b].
// The projection of p on the line (a, b) is clamped to the segment. If a and b
// are the same point, it returns the distance between p and a.
//
func SegmentDistance(p, a, b Point) float64 {
	d := b.Sub(a)
	l2 := d.X*d.X + d.Y*d.Y
	if l2 == 0 {
		return p.Dist(a)
	}
	t := ((p.X-a.X)*d.X + (p.Y-a.Y)*d.Y) / l2
	switch {
	case t < 0:
		t = 0
	case t > 1:
		t = 1
	}
	return p.Dist(Point{a.X + t*d.X, a.Y + t*d.Y})
}

// ComponentAt returns the topmost component whose bounding box contains p, or
// nil if there is none.
//
func (c *Circuit) ComponentAt(p Point) *Component {
	for i := len(c.comps) - 1; i >= 0; i-- {
		if cp := c.comps[i]; cp.Bounds().Contains(p) {
			return cp
		}
	}
	return nil
}

// ConnectionNear returns the first connection, in insertion order, whose segment
// lies closer than threshold to p, or nil if there is none.
//
func (c *Circuit) ConnectionNear(p Point, threshold float64) *Connection {
	for _, cn := range c.conns {
		from, to := c.byID[cn.from], c.byID[cn.to]
		if from == nil || to == nil {
			continue
		}
		if SegmentDistance(p, from.Pos, to.Pos) < threshold {
			return cn
		}
	}
	return nil
}
