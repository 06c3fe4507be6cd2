// Package sdfcsg is the default watertight-solid backend. Handles are
// indexed triangle meshes; boolean composition uses an exact fast path
// for operands with disjoint bounds and falls back to signed-distance
// CSG with marching-cubes re-meshing (github.com/soypat/sdf) when the
// operands overlap.
package sdfcsg

import (
	"math"

	"github.com/chazu/burl/pkg/geom"
	"github.com/chazu/burl/pkg/kernel"
	"github.com/soypat/sdf"
	"github.com/soypat/sdf/helpers/sdfexp"
	"github.com/soypat/sdf/render"
	"gonum.org/v1/gonum/spatial/r3"
)

// defaultMeshCells controls marching cubes resolution on the re-mesh
// fallback path.
const defaultMeshCells = 128

// Compile-time interface check.
var _ kernel.Handle = (*handle)(nil)

// handle is an immutable indexed triangle mesh with an engine status.
type handle struct {
	verts  []r3.Vec
	tris   [][3]int
	status kernel.Status
}

// Empty returns the empty solid.
func Empty() kernel.Handle {
	return &handle{}
}

// FromMesh builds a solid from a triangle mesh, verifying index
// bounds, vertex finiteness and edge-manifoldness. The reported
// status carries any defect found; the geometry is kept either way.
func FromMesh(m *geom.PolyMesh) kernel.Handle {
	h := build(m)
	h.status = check(h)
	return h
}

// FromMeshTrusted builds a solid from a mesh that is trusted to be a
// valid watertight boundary already. No verification pass runs.
func FromMeshTrusted(m *geom.PolyMesh) kernel.Handle {
	return build(m)
}

// build copies m into a handle, fanning any face longer than a
// triangle. Callers are expected to hand in tessellated meshes.
func build(m *geom.PolyMesh) *handle {
	h := &handle{}
	if m.IsEmpty() {
		return h
	}
	h.verts = make([]r3.Vec, len(m.Vertices))
	copy(h.verts, m.Vertices)
	h.tris = make([][3]int, 0, len(m.Faces))
	for _, f := range m.Faces {
		for i := 1; i+1 < len(f); i++ {
			h.tris = append(h.tris, [3]int{f[0], f[i], f[i+1]})
		}
	}
	return h
}

// check returns the first structural defect found in h.
func check(h *handle) kernel.Status {
	for _, t := range h.tris {
		for _, idx := range t {
			if idx < 0 || idx >= len(h.verts) {
				return kernel.StatusIndexOutOfRange
			}
		}
	}
	for _, v := range h.verts {
		if math.IsNaN(v.X) || math.IsInf(v.X, 0) ||
			math.IsNaN(v.Y) || math.IsInf(v.Y, 0) ||
			math.IsNaN(v.Z) || math.IsInf(v.Z, 0) {
			return kernel.StatusNonFiniteVertex
		}
	}
	if len(h.tris) > 0 && !edgeManifold(h.tris) {
		return kernel.StatusNotManifold
	}
	return kernel.StatusOK
}

func (h *handle) Status() kernel.Status { return h.status }

func (h *handle) IsEmpty() bool { return len(h.tris) == 0 }

func (h *handle) NumTri() int { return len(h.tris) }

func (h *handle) NumVert() int { return len(h.verts) }

func (h *handle) Bounds() r3.Box { return geom.BoundsOf(h.verts) }

func (h *handle) Genus() int { return genus(h.verts, h.tris) }

// Boolean composes h with other. Status errors on either operand
// propagate to the result without touching geometry.
func (h *handle) Boolean(other kernel.Handle, op kernel.Op) kernel.Handle {
	o, ok := other.(*handle)
	if !ok {
		return &handle{status: kernel.StatusMixedBackends}
	}
	if h.status != kernel.StatusOK {
		return &handle{verts: h.verts, tris: h.tris, status: h.status}
	}
	if o.status != kernel.StatusOK {
		return &handle{verts: h.verts, tris: h.tris, status: o.status}
	}

	// Empty-operand identities.
	switch op {
	case kernel.OpUnion:
		if h.IsEmpty() {
			return o
		}
		if o.IsEmpty() {
			return h
		}
	case kernel.OpIntersect:
		if h.IsEmpty() || o.IsEmpty() {
			return &handle{}
		}
	case kernel.OpSubtract:
		if h.IsEmpty() {
			return &handle{}
		}
		if o.IsEmpty() {
			return h
		}
	}

	// Disjoint operands compose exactly without re-meshing.
	if geom.BoxesDisjoint(h.Bounds(), o.Bounds()) {
		switch op {
		case kernel.OpUnion:
			return concat(h, o)
		case kernel.OpIntersect:
			return &handle{}
		default:
			return h
		}
	}
	return remeshBoolean(h, o, op)
}

// concat merges two disjoint solids into one handle through a shared
// reindexing builder.
func concat(a, b *handle) *handle {
	builder := geom.NewBuilder(len(a.verts)+len(b.verts), len(a.tris)+len(b.tris), 3, 1)
	appendTris := func(h *handle) {
		for _, t := range h.tris {
			i0 := builder.VertexIndex(h.verts[t[0]])
			i1 := builder.VertexIndex(h.verts[t[1]])
			i2 := builder.VertexIndex(h.verts[t[2]])
			builder.AppendFace(i0, i1, i2)
		}
	}
	appendTris(a)
	appendTris(b)
	return build(builder.Build())
}

// remeshBoolean runs the signed-distance fallback: both operands
// become SDFs, the composition is re-meshed with marching cubes.
func remeshBoolean(a, b *handle, op kernel.Op) kernel.Handle {
	sa, err := a.sdf3()
	if err != nil {
		return &handle{verts: a.verts, tris: a.tris, status: kernel.StatusNotManifold}
	}
	sb, err := b.sdf3()
	if err != nil {
		return &handle{verts: a.verts, tris: a.tris, status: kernel.StatusNotManifold}
	}

	var s sdf.SDF3
	switch op {
	case kernel.OpUnion:
		s = sdf.Union3D(sa, sb)
	case kernel.OpIntersect:
		s = sdf.Intersect3D(sa, sb)
	default:
		s = sdf.Difference3D(sa, sb)
	}
	return fromSDF(s, defaultMeshCells)
}

// sdf3 converts the handle's boundary into a signed distance field.
func (h *handle) sdf3() (sdf.SDF3, error) {
	model := make([]r3.Triangle, len(h.tris))
	for i, t := range h.tris {
		model[i] = r3.Triangle{h.verts[t[0]], h.verts[t[1]], h.verts[t[2]]}
	}
	s, err := sdfexp.ImportModel(model, 0)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// fromSDF re-meshes a signed distance field into a handle. Marching
// cubes output is watertight by construction, so the result is
// trusted.
func fromSDF(s sdf.SDF3, meshCells int) kernel.Handle {
	model, err := render.RenderAll(render.NewOctreeRenderer(s, meshCells))
	if err != nil {
		return &handle{status: kernel.StatusNotManifold}
	}
	builder := geom.NewBuilder(3*len(model), len(model), 3, 1)
	for _, tri := range model {
		i0 := builder.VertexIndex(tri[0])
		i1 := builder.VertexIndex(tri[1])
		i2 := builder.VertexIndex(tri[2])
		// Reindexing at reduced precision can collapse slivers.
		if i0 == i1 || i1 == i2 || i2 == i0 {
			continue
		}
		builder.AppendFace(i0, i1, i2)
	}
	return build(builder.Build())
}

// Transform returns a new handle with every vertex remapped by a.
// Mirroring transforms flip triangle winding so orientation (and with
// it manifoldness) is preserved. Nothing else is recomputed.
func (h *handle) Transform(a geom.Affine) kernel.Handle {
	out := &handle{
		verts:  make([]r3.Vec, len(h.verts)),
		tris:   make([][3]int, len(h.tris)),
		status: h.status,
	}
	for i, v := range h.verts {
		out.verts[i] = a.MulPosition(v)
	}
	flip := a.Det() < 0
	for i, t := range h.tris {
		if flip {
			t[1], t[2] = t[2], t[1]
		}
		out.tris[i] = t
	}
	return out
}

// ToPolyMesh materializes the boundary as an independent canonical
// mesh.
func (h *handle) ToPolyMesh() *geom.PolyMesh {
	m := geom.NewPolyMesh(3)
	m.Vertices = make([]r3.Vec, len(h.verts))
	copy(m.Vertices, h.verts)
	m.Faces = make([][]int, len(h.tris))
	for i, t := range h.tris {
		m.Faces[i] = []int{t[0], t[1], t[2]}
	}
	return m
}
