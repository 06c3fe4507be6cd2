// Package geom holds the canonical indexed mesh representation used
// as the interchange format between geometry variants, plus the small
// amount of vector and transform machinery the core needs.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Geometry is the closed set of representations the converter accepts:
// the canonical mesh, the closed-solid fallback, the hybrid holder and
// the watertight solid. The set is fixed; new variants are not expected.
type Geometry interface {
	// Dimension reports 2 or 3.
	Dimension() int
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() r3.Box
}

// PolyMesh is the canonical mesh: an indexed vertex pool and ordered
// faces referencing it. A PolyMesh is built once and treated as
// immutable afterwards; it is shared by pointer among consumers.
//
// Faces may be arbitrary polygons. Only meshes that passed through the
// tessellator are guaranteed triangular.
type PolyMesh struct {
	Vertices  []r3.Vec
	Faces     [][]int
	Dim       int // 2 or 3
	Convexity int // convex sub-piece hint, 1 = convex; not verified here
}

// NewPolyMesh returns an empty mesh of the given dimension.
func NewPolyMesh(dim int) *PolyMesh {
	return &PolyMesh{Dim: dim, Convexity: 1}
}

// NumVertices returns the number of vertices in the pool.
func (m *PolyMesh) NumVertices() int { return len(m.Vertices) }

// NumFaces returns the number of faces.
func (m *PolyMesh) NumFaces() int { return len(m.Faces) }

// IsEmpty reports whether the mesh has no faces.
func (m *PolyMesh) IsEmpty() bool { return m == nil || len(m.Faces) == 0 }

// Dimension implements Geometry.
func (m *PolyMesh) Dimension() int { return m.Dim }

// BoundingBox implements Geometry. An empty mesh yields the empty box.
func (m *PolyMesh) BoundingBox() r3.Box {
	return BoundsOf(m.Vertices)
}

// EmptyBox returns the inverted box that extends to nothing.
func EmptyBox() r3.Box {
	return r3.Box{
		Min: r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}
}

// BoxIsEmpty reports whether b contains no points.
func BoxIsEmpty(b r3.Box) bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// ExtendBox grows b to contain v.
func ExtendBox(b r3.Box, v r3.Vec) r3.Box {
	b.Min = r3.Vec{X: math.Min(b.Min.X, v.X), Y: math.Min(b.Min.Y, v.Y), Z: math.Min(b.Min.Z, v.Z)}
	b.Max = r3.Vec{X: math.Max(b.Max.X, v.X), Y: math.Max(b.Max.Y, v.Y), Z: math.Max(b.Max.Z, v.Z)}
	return b
}

// BoxUnion returns the smallest box containing both a and b.
func BoxUnion(a, b r3.Box) r3.Box {
	if BoxIsEmpty(a) {
		return b
	}
	if BoxIsEmpty(b) {
		return a
	}
	a = ExtendBox(a, b.Min)
	return ExtendBox(a, b.Max)
}

// BoxesDisjoint reports whether a and b have no common point.
func BoxesDisjoint(a, b r3.Box) bool {
	if BoxIsEmpty(a) || BoxIsEmpty(b) {
		return true
	}
	return a.Max.X < b.Min.X || b.Max.X < a.Min.X ||
		a.Max.Y < b.Min.Y || b.Max.Y < a.Min.Y ||
		a.Max.Z < b.Min.Z || b.Max.Z < a.Min.Z
}

// BoundsOf returns the bounding box of a vertex set.
func BoundsOf(verts []r3.Vec) r3.Box {
	bb := EmptyBox()
	for _, v := range verts {
		bb = ExtendBox(bb, v)
	}
	return bb
}
