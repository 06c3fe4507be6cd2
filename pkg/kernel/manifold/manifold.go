//go:build manifold

// Package manifold provides a CGo-based watertight-solid backend
// binding to the Manifold library (https://github.com/elalish/manifold).
// Manifold guarantees manifold output from mesh booleans, so its
// handles never degrade structurally under composition.
//
// This package requires the Manifold C library (manifoldc) to be
// installed. Build with: go build -tags=manifold
package manifold

/*
#cgo CFLAGS: -I/usr/local/include
#cgo LDFLAGS: -L/usr/local/lib -lmanifoldc

#include <stdlib.h>
#include <manifold/manifoldc.h>
*/
import "C"

import (
	"runtime"
	"unsafe"

	"github.com/chazu/burl/pkg/geom"
	"github.com/chazu/burl/pkg/kernel"
	"gonum.org/v1/gonum/spatial/r3"
)

var _ kernel.Handle = (*handle)(nil)

// Backend builds solids on the Manifold C library.
type Backend struct{}

// New creates a Backend. Returns an error if the Manifold C library
// cannot be initialized.
func New() (*Backend, error) {
	return &Backend{}, nil
}

// Empty returns a handle holding no geometry.
func (Backend) Empty() kernel.Handle {
	alloc := C.manifold_alloc_manifold()
	return newHandle(C.manifold_empty(alloc))
}

// FromMesh builds a solid from a triangle mesh. Manifold verifies the
// mesh itself; any defect it finds is carried as status on the handle.
func (Backend) FromMesh(m *geom.PolyMesh) kernel.Handle {
	return fromMesh(m)
}

// FromMeshTrusted builds a solid from a mesh trusted to be a valid
// watertight boundary. The Manifold library always inspects its input,
// so this is the same construction as FromMesh; the distinction is
// kept for contract parity with backends that can skip verification.
func (Backend) FromMeshTrusted(m *geom.PolyMesh) kernel.Handle {
	return fromMesh(m)
}

func fromMesh(m *geom.PolyMesh) kernel.Handle {
	if m.IsEmpty() {
		return Backend{}.Empty()
	}
	verts := make([]float32, 0, m.NumVertices()*3)
	for _, v := range m.Vertices {
		verts = append(verts, float32(v.X), float32(v.Y), float32(v.Z))
	}
	tris := make([]uint32, 0, len(m.Faces)*3)
	for _, f := range m.Faces {
		// Fan out faces with more than three vertices.
		for i := 2; i < len(f); i++ {
			tris = append(tris, uint32(f[0]), uint32(f[i-1]), uint32(f[i]))
		}
	}
	meshAlloc := C.manifold_alloc_meshgl()
	mgl := C.manifold_meshgl(meshAlloc,
		(*C.float)(unsafe.Pointer(&verts[0])), C.size_t(m.NumVertices()), C.size_t(3),
		(*C.uint32_t)(unsafe.Pointer(&tris[0])), C.size_t(len(tris)/3),
	)
	defer C.manifold_delete_meshgl(mgl)

	alloc := C.manifold_alloc_manifold()
	return newHandle(C.manifold_of_meshgl(alloc, mgl))
}

// handle wraps a C ManifoldManifold pointer. The underlying value is
// immutable; every operation allocates a new one.
type handle struct {
	ptr    *C.ManifoldManifold
	status kernel.Status
}

// newHandle attaches a Go-side finalizer for automatic memory
// management and snapshots the library's verdict on the value.
func newHandle(ptr *C.ManifoldManifold) *handle {
	h := &handle{ptr: ptr, status: statusOf(ptr)}
	runtime.SetFinalizer(h, func(h *handle) {
		if h.ptr != nil {
			C.manifold_delete_manifold(h.ptr)
			h.ptr = nil
		}
	})
	return h
}

func statusOf(ptr *C.ManifoldManifold) kernel.Status {
	switch C.manifold_status(ptr) {
	case C.MANIFOLD_NO_ERROR:
		return kernel.StatusOK
	case C.MANIFOLD_NON_FINITE_VERTEX:
		return kernel.StatusNonFiniteVertex
	case C.MANIFOLD_NOT_MANIFOLD:
		return kernel.StatusNotManifold
	case C.MANIFOLD_VERTEX_INDEX_OUT_OF_BOUNDS:
		return kernel.StatusIndexOutOfRange
	}
	return kernel.StatusSelfIntersecting
}

func (h *handle) Status() kernel.Status { return h.status }

func (h *handle) IsEmpty() bool {
	return C.manifold_is_empty(h.ptr) != 0
}

func (h *handle) NumTri() int { return int(C.manifold_num_tri(h.ptr)) }

func (h *handle) NumVert() int { return int(C.manifold_num_vert(h.ptr)) }

func (h *handle) Genus() int { return int(C.manifold_genus(h.ptr)) }

func (h *handle) Bounds() r3.Box {
	if h.IsEmpty() {
		return geom.EmptyBox()
	}
	alloc := C.manifold_alloc_box()
	bbox := C.manifold_bounding_box(alloc, h.ptr)
	defer C.manifold_delete_box(bbox)
	return r3.Box{
		Min: r3.Vec{
			X: float64(C.manifold_box_min_x(bbox)),
			Y: float64(C.manifold_box_min_y(bbox)),
			Z: float64(C.manifold_box_min_z(bbox)),
		},
		Max: r3.Vec{
			X: float64(C.manifold_box_max_x(bbox)),
			Y: float64(C.manifold_box_max_y(bbox)),
			Z: float64(C.manifold_box_max_z(bbox)),
		},
	}
}

func (h *handle) Boolean(other kernel.Handle, op kernel.Op) kernel.Handle {
	o, ok := other.(*handle)
	if !ok {
		alloc := C.manifold_alloc_manifold()
		bad := newHandle(C.manifold_copy(alloc, h.ptr))
		bad.status = kernel.StatusMixedBackends
		return bad
	}
	alloc := C.manifold_alloc_manifold()
	var ptr *C.ManifoldManifold
	switch op {
	case kernel.OpUnion:
		ptr = C.manifold_union(alloc, h.ptr, o.ptr)
	case kernel.OpIntersect:
		ptr = C.manifold_intersection(alloc, h.ptr, o.ptr)
	case kernel.OpSubtract:
		ptr = C.manifold_difference(alloc, h.ptr, o.ptr)
	}
	out := newHandle(ptr)
	// A defective operand taints the result even when the library
	// accepts the composed value.
	if out.status == kernel.StatusOK && h.status != kernel.StatusOK {
		out.status = h.status
	}
	if out.status == kernel.StatusOK && o.status != kernel.StatusOK {
		out.status = o.status
	}
	return out
}

func (h *handle) Transform(a geom.Affine) kernel.Handle {
	// manifold_transform takes the 3x4 matrix by columns: the three
	// rotated basis vectors, then the translation.
	o := a.MulPosition(r3.Vec{})
	cx := r3.Sub(a.MulPosition(r3.Vec{X: 1}), o)
	cy := r3.Sub(a.MulPosition(r3.Vec{Y: 1}), o)
	cz := r3.Sub(a.MulPosition(r3.Vec{Z: 1}), o)
	alloc := C.manifold_alloc_manifold()
	ptr := C.manifold_transform(alloc, h.ptr,
		C.double(cx.X), C.double(cx.Y), C.double(cx.Z),
		C.double(cy.X), C.double(cy.Y), C.double(cy.Z),
		C.double(cz.X), C.double(cz.Y), C.double(cz.Z),
		C.double(o.X), C.double(o.Y), C.double(o.Z),
	)
	out := newHandle(ptr)
	if out.status == kernel.StatusOK && h.status != kernel.StatusOK {
		out.status = h.status
	}
	return out
}

// ToPolyMesh extracts the boundary via Manifold's MeshGL format.
// MeshGL interleaves vertex properties; positions are always the
// first three.
func (h *handle) ToPolyMesh() *geom.PolyMesh {
	meshAlloc := C.manifold_alloc_meshgl()
	mgl := C.manifold_get_meshgl(meshAlloc, h.ptr)
	defer C.manifold_delete_meshgl(mgl)

	numVert := int(C.manifold_meshgl_num_vert(mgl))
	numTri := int(C.manifold_meshgl_num_tri(mgl))
	if numVert == 0 || numTri == 0 {
		return geom.NewPolyMesh(3)
	}
	numProp := int(C.manifold_meshgl_num_prop(mgl))

	props := make([]float32, numVert*numProp)
	C.manifold_meshgl_vert_properties((*C.float)(unsafe.Pointer(&props[0])), mgl)
	indices := make([]uint32, numTri*3)
	C.manifold_meshgl_tri_verts((*C.uint32_t)(unsafe.Pointer(&indices[0])), mgl)

	out := geom.NewPolyMesh(3)
	out.Vertices = make([]r3.Vec, numVert)
	for i := 0; i < numVert; i++ {
		base := i * numProp
		out.Vertices[i] = r3.Vec{
			X: float64(props[base+0]),
			Y: float64(props[base+1]),
			Z: float64(props[base+2]),
		}
	}
	out.Faces = make([][]int, numTri)
	for t := 0; t < numTri; t++ {
		out.Faces[t] = []int{
			int(indices[t*3+0]), int(indices[t*3+1]), int(indices[t*3+2]),
		}
	}
	return out
}
