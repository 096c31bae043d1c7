package common

import "math"

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min Vec3
	Max Vec3
}

// EmptyBounds returns an inverted box that any point will expand.
func EmptyBounds() Bounds {
	inf := float32(math.Inf(1))
	return Bounds{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// Extend grows the box to include p.
func (b *Bounds) Extend(p Vec3) {
	for i := 0; i < 3; i++ {
		b.Min[i] = min(b.Min[i], p[i])
		b.Max[i] = max(b.Max[i], p[i])
	}
}

// ContainsXZ reports whether p lies inside the box on the xz-plane,
// with the box inflated by eps on every side.
func (b Bounds) ContainsXZ(p Vec3, eps float32) bool {
	return p[0] >= b.Min[0]-eps && p[0] <= b.Max[0]+eps &&
		p[2] >= b.Min[2]-eps && p[2] <= b.Max[2]+eps
}

// PolyBounds computes the bounding box of a vertex loop.
func PolyBounds(verts []Vec3) Bounds {
	b := EmptyBounds()
	for _, v := range verts {
		b.Extend(v)
	}
	return b
}

// PolyCentroid returns the mean of the vertex positions.
func PolyCentroid(verts []Vec3) (c Vec3) {
	if len(verts) == 0 {
		return c
	}
	for _, v := range verts {
		c = c.Add(v)
	}
	return c.Mul(1.0 / float32(len(verts)))
}

// PolyNormal computes the polygon normal with Newell's method. Degenerate
// loops return the zero vector.
func PolyNormal(verts []Vec3) Vec3 {
	var n Vec3
	for i := range verts {
		cur := verts[i]
		nxt := verts[Next(i, len(verts))]
		n[0] += (cur[1] - nxt[1]) * (cur[2] + nxt[2])
		n[1] += (cur[2] - nxt[2]) * (cur[0] + nxt[0])
		n[2] += (cur[0] - nxt[0]) * (cur[1] + nxt[1])
	}
	if n.Len() == 0 {
		return n
	}
	return n.Normalize()
}

// PolyArea2D returns the signed xz-plane area of the vertex loop.
func PolyArea2D(verts []Vec3) float32 {
	var area float32
	for i := range verts {
		a := verts[i]
		b := verts[Next(i, len(verts))]
		area += a[0]*b[2] - b[0]*a[2]
	}
	return area * 0.5
}

// / Checks if a point is contained within a polygon on the xz-plane.
// /
// / A ray is cast from the point along +x and edge crossings are counted.
// / A point within eps of any vertex is considered inside.
func PointInPoly(verts []Vec3, point Vec3, eps float32) bool {
	for _, v := range verts {
		if Vequal2D(v, point, eps) {
			return true
		}
	}
	inPoly := false
	n := len(verts)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi := verts[i]
		vj := verts[j]
		if (vi[2] > point[2]) == (vj[2] > point[2]) {
			continue
		}
		if point[0] >= (vj[0]-vi[0])*(point[2]-vi[2])/(vj[2]-vi[2])+vi[0] {
			continue
		}
		inPoly = !inPoly
	}
	return inPoly
}
