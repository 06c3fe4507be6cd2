// Package solid wraps exactly one watertight-solid value and exposes
// metrics, boolean composition, transforms and the Minkowski fallback
// pipeline. The held value is immutable and shared; every mutating
// operation replaces it wholesale, so copies of a Solid can be read
// concurrently while mutation of one wrapper needs external
// synchronization.
package solid

import (
	"fmt"
	"strings"

	"github.com/chazu/burl/pkg/geom"
	"github.com/chazu/burl/pkg/kernel"
	"github.com/chazu/burl/pkg/kernel/sdfcsg"
	"gonum.org/v1/gonum/spatial/r3"
)

// Compile-time check: a Solid is a convertible geometry variant.
var _ geom.Geometry = (*Solid)(nil)

// Solid wraps one watertight solid handle.
type Solid struct {
	h kernel.Handle
}

// New wraps an existing handle. A nil handle gives the empty solid.
func New(h kernel.Handle) *Solid {
	if h == nil {
		h = sdfcsg.Empty()
	}
	return &Solid{h: h}
}

// Empty returns the empty solid.
func Empty() *Solid {
	return New(nil)
}

// FromMesh builds a solid from a triangle mesh, letting the engine
// verify it; any defect is carried as status on the value.
func FromMesh(m *geom.PolyMesh) *Solid {
	return &Solid{h: sdfcsg.FromMesh(m)}
}

// FromMeshTrusted builds a solid from a mesh trusted to be a valid
// watertight boundary. No verification runs.
func FromMeshTrusted(m *geom.PolyMesh) *Solid {
	return &Solid{h: sdfcsg.FromMeshTrusted(m)}
}

// Copy returns an independent wrapper over the same held value.
func (s *Solid) Copy() *Solid {
	return &Solid{h: s.h}
}

// Status reports the engine status of the held value.
func (s *Solid) Status() kernel.Status { return s.h.Status() }

// IsEmpty reports whether the solid contains no geometry.
func (s *Solid) IsEmpty() bool { return s.h.IsEmpty() }

// NumFacets returns the facet count.
func (s *Solid) NumFacets() int { return s.h.NumTri() }

// NumVertices returns the vertex count.
func (s *Solid) NumVertices() int { return s.h.NumVert() }

// IsManifold reports whether the engine sees a clean 2-manifold.
func (s *Solid) IsManifold() bool { return s.h.Status() == kernel.StatusOK }

// IsValid reports whether the held value is structurally usable.
func (s *Solid) IsValid() bool { return s.h.Status() == kernel.StatusOK }

// Genus returns the topological genus of the boundary.
func (s *Solid) Genus() int { return s.h.Genus() }

// Dimension implements geom.Geometry.
func (s *Solid) Dimension() int { return 3 }

// BoundingBox implements geom.Geometry.
func (s *Solid) BoundingBox() r3.Box { return s.h.Bounds() }

// ToPolyMesh materializes the boundary as a canonical triangle mesh.
func (s *Solid) ToPolyMesh() *geom.PolyMesh { return s.h.ToPolyMesh() }

// Union returns a ∪ b as a new solid. Operands are not mutated.
func Union(a, b *Solid) *Solid {
	return &Solid{h: a.h.Boolean(b.h, kernel.OpUnion)}
}

// Intersect returns a ∩ b as a new solid. Operands are not mutated.
func Intersect(a, b *Solid) *Solid {
	return &Solid{h: a.h.Boolean(b.h, kernel.OpIntersect)}
}

// Difference returns a − b as a new solid. The operation is
// directional; operand order is the caller's responsibility.
func Difference(a, b *Solid) *Solid {
	return &Solid{h: a.h.Boolean(b.h, kernel.OpSubtract)}
}

// Transform remaps every vertex of the held value by a and replaces
// it. Nothing is re-triangulated; manifoldness is preserved.
func (s *Solid) Transform(a geom.Affine) {
	s.h = s.h.Transform(a)
}

// Clear resets the wrapper to the empty solid.
func (s *Solid) Clear() {
	s.h = sdfcsg.Empty()
}

// Dump renders a human-readable description of the held value. The
// format is for debugging only and not guaranteed parseable.
func (s *Solid) Dump() string {
	var out strings.Builder
	fmt.Fprintf(&out, "Solid:\n status: %s\n genus: %d\n num vertices: %d\n num polygons: %d\n polygons data:",
		s.Status(), s.Genus(), s.NumVertices(), s.NumFacets())
	m := s.ToPolyMesh()
	for _, f := range m.Faces {
		out.WriteString("\n  polygon begin:")
		for _, idx := range f {
			v := m.Vertices[idx]
			fmt.Fprintf(&out, "\n   vertex: %g %g %g", v.X, v.Y, v.Z)
		}
	}
	out.WriteString("\nSolid end")
	return out.String()
}
