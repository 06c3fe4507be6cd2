// Package hybrid holds geometry that alternates between a mesh form
// and a closed-solid form, materializing and caching whichever is
// asked for. It exists so pipelines that interleave mesh edits with
// solid operations do not convert on every hop.
package hybrid

import (
	"github.com/chazu/burl/pkg/geom"
	"github.com/chazu/burl/pkg/msglog"
	"github.com/chazu/burl/pkg/nef"
	"gonum.org/v1/gonum/spatial/r3"
)

// Polyhedron carries a mesh form, a closed-solid form, or both.
type Polyhedron struct {
	mesh *geom.PolyMesh
	brep *nef.Polyhedron
}

// FromMesh wraps a mesh.
func FromMesh(m *geom.PolyMesh) *Polyhedron {
	return &Polyhedron{mesh: m}
}

// FromPolyhedron wraps a closed solid.
func FromPolyhedron(p *nef.Polyhedron) *Polyhedron {
	return &Polyhedron{brep: p}
}

// IsEmpty reports whether neither form holds geometry.
func (h *Polyhedron) IsEmpty() bool {
	if h == nil {
		return true
	}
	if h.mesh != nil && !h.mesh.IsEmpty() {
		return false
	}
	return h.brep.IsEmpty()
}

// Dimension implements geom.Geometry.
func (h *Polyhedron) Dimension() int { return 3 }

// BoundingBox implements geom.Geometry.
func (h *Polyhedron) BoundingBox() r3.Box {
	if h.mesh != nil {
		return h.mesh.BoundingBox()
	}
	if h.brep != nil {
		return h.brep.BoundingBox()
	}
	return geom.EmptyBox()
}

// ToPolyMesh materializes the mesh form, converting from the solid
// form on first demand and caching the result. A conversion failure
// is logged and reported as nil, meaning "no usable geometry".
func (h *Polyhedron) ToPolyMesh() *geom.PolyMesh {
	if h.mesh != nil {
		return h.mesh
	}
	if h.brep == nil {
		return geom.NewPolyMesh(3)
	}
	m, err := h.brep.ToPolyMesh()
	if err != nil {
		msglog.Errorf("hybrid to mesh conversion failed: %v", err)
		return nil
	}
	h.mesh = m
	return m
}

// ToPolyhedron materializes the closed-solid form, converting from
// the mesh on first demand and caching the result.
func (h *Polyhedron) ToPolyhedron() (*nef.Polyhedron, error) {
	if h.brep != nil {
		return h.brep, nil
	}
	if h.mesh == nil {
		return nef.Empty(), nil
	}
	p, err := nef.FromMesh(h.mesh)
	if err != nil {
		return nil, err
	}
	h.brep = p
	return p, nil
}
