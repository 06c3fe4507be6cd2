// Package nef is the closed-solid boundary representation used as a
// fallback for operations the watertight engine does not support
// natively, Minkowski sum above all. It composes solids as signed
// distance fields with github.com/deadsy/sdfx and re-meshes results
// with marching cubes, keeping it fully independent of the watertight
// backend.
package nef

import (
	"fmt"

	"github.com/chazu/burl/pkg/geom"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	soysdf "github.com/soypat/sdf"
	"github.com/soypat/sdf/helpers/sdfexp"
	"gonum.org/v1/gonum/spatial/r3"
)

// defaultMeshCells controls marching cubes resolution when a
// polyhedron is materialized as a mesh.
const defaultMeshCells = 100

// Polyhedron is a closed solid. The zero-value-like Empty polyhedron
// contains nothing and composes as the identity/absorber of set
// algebra. Polyhedra are immutable; operations return new values.
type Polyhedron struct {
	s sdf.SDF3 // nil when empty
	// mesh is the boundary this polyhedron was built from, if it was
	// built from one. Materialization returns it unchanged instead of
	// re-meshing.
	mesh *geom.PolyMesh
}

// Empty returns the empty polyhedron.
func Empty() *Polyhedron {
	return &Polyhedron{}
}

// FromMesh builds a polyhedron from a closed triangle mesh.
func FromMesh(m *geom.PolyMesh) (*Polyhedron, error) {
	if m.IsEmpty() {
		return Empty(), nil
	}
	model := make([]r3.Triangle, 0, len(m.Faces))
	for _, f := range m.Faces {
		for i := 1; i+1 < len(f); i++ {
			model = append(model, r3.Triangle{
				m.Vertices[f[0]], m.Vertices[f[i]], m.Vertices[f[i+1]],
			})
		}
	}
	imported, err := sdfexp.ImportModel(model, 0)
	if err != nil {
		return nil, fmt.Errorf("nef: importing mesh: %w", err)
	}
	return &Polyhedron{s: bridge{imported}, mesh: m}, nil
}

// bridge adapts a gonum-typed SDF to the sdfx interface.
type bridge struct {
	s soysdf.SDF3
}

func (b bridge) Evaluate(p v3.Vec) float64 {
	return b.s.Evaluate(r3.Vec{X: p.X, Y: p.Y, Z: p.Z})
}

func (b bridge) BoundingBox() sdf.Box3 {
	bb := b.s.Bounds()
	return sdf.Box3{
		Min: v3.Vec{X: bb.Min.X, Y: bb.Min.Y, Z: bb.Min.Z},
		Max: v3.Vec{X: bb.Max.X, Y: bb.Max.Y, Z: bb.Max.Z},
	}
}

// IsEmpty reports whether the polyhedron contains nothing.
func (p *Polyhedron) IsEmpty() bool { return p == nil || p.s == nil }

// Dimension implements geom.Geometry.
func (p *Polyhedron) Dimension() int { return 3 }

// BoundingBox implements geom.Geometry.
func (p *Polyhedron) BoundingBox() r3.Box {
	if p.IsEmpty() {
		return geom.EmptyBox()
	}
	bb := p.s.BoundingBox()
	return r3.Box{
		Min: r3.Vec{X: bb.Min.X, Y: bb.Min.Y, Z: bb.Min.Z},
		Max: r3.Vec{X: bb.Max.X, Y: bb.Max.Y, Z: bb.Max.Z},
	}
}

// Union returns a ∪ b.
func Union(a, b *Polyhedron) *Polyhedron {
	if a.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return a
	}
	return &Polyhedron{s: sdf.Union3D(a.s, b.s)}
}

// Intersect returns a ∩ b.
func Intersect(a, b *Polyhedron) *Polyhedron {
	if a.IsEmpty() || b.IsEmpty() {
		return Empty()
	}
	return &Polyhedron{s: sdf.Intersect3D(a.s, b.s)}
}

// Difference returns a − b. The operation is directional.
func Difference(a, b *Polyhedron) *Polyhedron {
	if a.IsEmpty() {
		return Empty()
	}
	if b.IsEmpty() {
		return a
	}
	return &Polyhedron{s: sdf.Difference3D(a.s, b.s)}
}

// Minkowski returns the approximate Minkowski sum p ⊕ o: the union of
// copies of p translated to every boundary vertex of o. The bounding
// extent is exact for polyhedral operands; concave interiors of o are
// under-filled. Empty operands yield the empty polyhedron.
func (p *Polyhedron) Minkowski(o *Polyhedron) (*Polyhedron, error) {
	if p.IsEmpty() || o.IsEmpty() {
		return Empty(), nil
	}
	om, err := o.ToPolyMesh()
	if err != nil {
		return nil, fmt.Errorf("nef: minkowski operand: %w", err)
	}
	if om.IsEmpty() {
		return Empty(), nil
	}
	translated := make([]sdf.SDF3, len(om.Vertices))
	for i, v := range om.Vertices {
		translated[i] = sdf.Transform3D(p.s, sdf.Translate3d(v3.Vec{X: v.X, Y: v.Y, Z: v.Z}))
	}
	if len(translated) == 1 {
		return &Polyhedron{s: translated[0]}, nil
	}
	return &Polyhedron{s: sdf.Union3D(translated...)}, nil
}

// ToPolyMesh materializes the boundary as a canonical triangle mesh.
// A polyhedron built from a mesh returns that mesh by reference;
// composed polyhedra are re-meshed with marching cubes.
func (p *Polyhedron) ToPolyMesh() (*geom.PolyMesh, error) {
	if p.IsEmpty() {
		return geom.NewPolyMesh(3), nil
	}
	if p.mesh != nil {
		return p.mesh, nil
	}
	triangles := render.ToTriangles(p.s, render.NewMarchingCubesUniform(defaultMeshCells))
	if len(triangles) == 0 {
		return nil, fmt.Errorf("nef: meshing produced no triangles")
	}
	builder := geom.NewBuilder(3*len(triangles), len(triangles), 3, 1)
	for _, tri := range triangles {
		i0 := builder.VertexIndex(r3.Vec{X: tri.V[0].X, Y: tri.V[0].Y, Z: tri.V[0].Z})
		i1 := builder.VertexIndex(r3.Vec{X: tri.V[1].X, Y: tri.V[1].Y, Z: tri.V[1].Z})
		i2 := builder.VertexIndex(r3.Vec{X: tri.V[2].X, Y: tri.V[2].Y, Z: tri.V[2].Z})
		if i0 == i1 || i1 == i2 || i2 == i0 {
			continue
		}
		builder.AppendFace(i0, i1, i2)
	}
	return builder.Build(), nil
}
