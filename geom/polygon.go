package geom

import "errors"

// Vec2 is a point in the profile plane.
type Vec2 struct {
	X, Y float64
}

// orient returns the signed area of triangle (p,q,r): positive if p,q,r
// turn counter-clockwise, negative if clockwise, zero if collinear.
func orient(p, q, r Vec2) float64 {
	return (q.X-p.X)*(r.Y-p.Y) - (q.Y-p.Y)*(r.X-p.X)
}

// onSegment reports whether q lies within the axis-aligned bounding box
// of p and r, given that p, q, r are already known to be collinear.
func onSegment(p, q, r Vec2) bool {
	return min(p.X, r.X) <= q.X && q.X <= max(p.X, r.X) &&
		min(p.Y, r.Y) <= q.Y && q.Y <= max(p.Y, r.Y)
}

// segmentsIntersect reports whether segment ab crosses segment cd,
// including the collinear-overlap case.
func segmentsIntersect(a, b, c, d Vec2) bool {
	o1 := orient(a, b, c)
	o2 := orient(a, b, d)
	o3 := orient(c, d, a)
	o4 := orient(c, d, b)

	if o1 == 0 && onSegment(a, c, b) {
		return true
	}
	if o2 == 0 && onSegment(a, d, b) {
		return true
	}
	if o3 == 0 && onSegment(c, a, d) {
		return true
	}
	if o4 == 0 && onSegment(c, b, d) {
		return true
	}

	return (o1 > 0) != (o2 > 0) && (o3 > 0) != (o4 > 0)
}

// ErrSelfIntersecting is returned by CheckSimple for a polygon with two
// non-adjacent edges that cross.
var ErrSelfIntersecting = errors.New("polygon is self-intersecting")

// CheckSimple reports an error if any two non-adjacent edges of poly
// intersect. Adjacent edges (sharing a vertex, including the wraparound
// edge between the last and first vertex) are never checked against
// each other.
func CheckSimple(poly []Vec2) error {
	n := len(poly)
	for i := 0; i < n; i++ {
		a, b := poly[i], poly[(i+1)%n]
		for j := i + 1; j < n; j++ {
			if j-i <= 1 || (i == 0 && j == n-1) {
				continue
			}
			c, d := poly[j], poly[(j+1)%n]
			if segmentsIntersect(a, b, c, d) {
				return ErrSelfIntersecting
			}
		}
	}
	return nil
}

// IsConvex reports whether poly is convex: the cross products of every
// pair of consecutive edges must agree in sign, ignoring collinear
// (zero-cross) edges.
func IsConvex(poly []Vec2) bool {
	n := len(poly)
	sign := 0
	for i := 0; i < n; i++ {
		a := poly[i]
		b := poly[(i+1)%n]
		c := poly[(i+2)%n]
		cross := (b.X-a.X)*(c.Y-b.Y) - (b.Y-a.Y)*(c.X-b.X)
		if cross == 0 {
			continue
		}
		cur := 1
		if cross < 0 {
			cur = -1
		}
		if sign == 0 {
			sign = cur
		} else if sign != cur {
			return false
		}
	}
	return true
}

// signedArea returns twice the shoelace-formula area of poly; positive
// for counter-clockwise winding, negative for clockwise.
func signedArea(poly []Vec2) float64 {
	area := 0.0
	n := len(poly)
	for i := 0; i < n; i++ {
		x1, y1 := poly[i].X, poly[i].Y
		x2, y2 := poly[(i+1)%n].X, poly[(i+1)%n].Y
		area += x1*y2 - x2*y1
	}
	return area
}

// EnsureCCW returns poly reordered to counter-clockwise winding if it
// is currently clockwise, and poly unchanged otherwise.
func EnsureCCW(poly []Vec2) []Vec2 {
	if signedArea(poly) >= 0 {
		return poly
	}
	reversed := make([]Vec2, len(poly))
	for i, p := range poly {
		reversed[len(poly)-1-i] = p
	}
	return reversed
}

// ErrNotConvex is returned by Validate for a simple but non-convex polygon.
var ErrNotConvex = errors.New("polygon must be convex")

// Validate runs the full admission pipeline for a profile polygon:
// simplicity, convexity, then CCW normalization. It is the single entry
// point lowering uses to turn literal polygon vertices into a profile
// ready for SDF construction.
func Validate(poly []Vec2) ([]Vec2, error) {
	if err := CheckSimple(poly); err != nil {
		return nil, err
	}
	if !IsConvex(poly) {
		return nil, ErrNotConvex
	}
	return EnsureCCW(poly), nil
}
