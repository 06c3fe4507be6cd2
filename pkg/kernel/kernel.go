// Package kernel defines the watertight-solid engine contract.
// Backends (sdfcsg, manifold) provide boolean composition behind this
// interface; the abstraction allows swapping engines without changing
// the rest of the system. Only the call contract and failure surface
// are defined here — backend internals are trusted.
package kernel

import (
	"github.com/chazu/burl/pkg/geom"
	"gonum.org/v1/gonum/spatial/r3"
)

// Status is the structural state an engine reports for a solid. A
// non-OK status is not an abort signal: the value stays usable and the
// status propagates through subsequent boolean operations until a
// caller inspects it.
type Status int

const (
	StatusOK Status = iota
	StatusNotManifold
	StatusSelfIntersecting
	StatusNonFiniteVertex
	StatusIndexOutOfRange
	StatusMixedBackends
)

// String returns the engine-facing name of the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "NoError"
	case StatusNotManifold:
		return "NotManifold"
	case StatusSelfIntersecting:
		return "SelfIntersecting"
	case StatusNonFiniteVertex:
		return "NonFiniteVertex"
	case StatusIndexOutOfRange:
		return "VertexOutOfBounds"
	case StatusMixedBackends:
		return "MixedBackends"
	}
	return "Unknown"
}

// Op selects a boolean operation.
type Op int

const (
	OpUnion Op = iota
	OpIntersect
	OpSubtract
)

// Handle is an opaque watertight solid value. Handles are immutable:
// every operation returns a new Handle and never mutates its
// receiver or operand. When Status is StatusOK the boundary is
// closed, orientable and free of self-intersections.
type Handle interface {
	// Status reports the structural state of the solid.
	Status() Status
	// IsEmpty reports whether the solid contains no geometry.
	IsEmpty() bool
	// NumTri returns the facet (triangle) count.
	NumTri() int
	// NumVert returns the vertex count.
	NumVert() int
	// Genus returns the topological genus of the boundary surface.
	Genus() int
	// Bounds returns the axis-aligned bounding box.
	Bounds() r3.Box
	// Boolean composes the solid with other. Operands are never
	// mutated; a non-OK operand status propagates to the result.
	Boolean(other Handle, op Op) Handle
	// Transform applies an affine transform to every vertex. A pure
	// remap: nothing is re-triangulated or revalidated.
	Transform(a geom.Affine) Handle
	// ToPolyMesh materializes the boundary as a canonical triangle
	// mesh. The mesh is independent of the handle.
	ToPolyMesh() *geom.PolyMesh
}
