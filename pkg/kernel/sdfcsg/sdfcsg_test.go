package sdfcsg_test

import (
	"math"
	"testing"

	"github.com/chazu/burl/pkg/geom"
	"github.com/chazu/burl/pkg/kernel"
	"github.com/chazu/burl/pkg/kernel/sdfcsg"
	"gonum.org/v1/gonum/spatial/r3"
)

// boxMesh returns a closed unit-cube triangle mesh (12 facets, 8
// vertices, outward winding) with its minimum corner at origin.
func boxMesh(origin r3.Vec, size float64) *geom.PolyMesh {
	corner := func(x, y, z float64) r3.Vec {
		return r3.Add(origin, r3.Vec{X: x * size, Y: y * size, Z: z * size})
	}
	m := geom.NewPolyMesh(3)
	m.Vertices = []r3.Vec{
		corner(0, 0, 0), corner(1, 0, 0), corner(1, 1, 0), corner(0, 1, 0),
		corner(0, 0, 1), corner(1, 0, 1), corner(1, 1, 1), corner(0, 1, 1),
	}
	m.Faces = [][]int{
		{0, 2, 1}, {0, 3, 2}, // bottom
		{4, 5, 6}, {4, 6, 7}, // top
		{0, 1, 5}, {0, 5, 4}, // front
		{2, 3, 7}, {2, 7, 6}, // back
		{0, 4, 7}, {0, 7, 3}, // left
		{1, 2, 6}, {1, 6, 5}, // right
	}
	return m
}

func TestFromMeshBoxMetrics(t *testing.T) {
	h := sdfcsg.FromMesh(boxMesh(r3.Vec{}, 1))

	if h.Status() != kernel.StatusOK {
		t.Fatalf("Status() = %v, want OK", h.Status())
	}
	if h.IsEmpty() {
		t.Error("box should not be empty")
	}
	if got := h.NumTri(); got != 12 {
		t.Errorf("NumTri() = %d, want 12", got)
	}
	if got := h.NumVert(); got != 8 {
		t.Errorf("NumVert() = %d, want 8", got)
	}
	if got := h.Genus(); got != 0 {
		t.Errorf("Genus() = %d, want 0", got)
	}
	bb := h.Bounds()
	if bb.Min != (r3.Vec{}) || bb.Max != (r3.Vec{X: 1, Y: 1, Z: 1}) {
		t.Errorf("Bounds() = %+v", bb)
	}
}

func TestFromMeshDetectsDefects(t *testing.T) {
	t.Run("index out of range", func(t *testing.T) {
		m := boxMesh(r3.Vec{}, 1)
		m.Faces[0][0] = 99
		if got := sdfcsg.FromMesh(m).Status(); got != kernel.StatusIndexOutOfRange {
			t.Errorf("Status() = %v, want VertexOutOfBounds", got)
		}
	})

	t.Run("non-finite vertex", func(t *testing.T) {
		m := boxMesh(r3.Vec{}, 1)
		m.Vertices[0].X = math.NaN()
		if got := sdfcsg.FromMesh(m).Status(); got != kernel.StatusNonFiniteVertex {
			t.Errorf("Status() = %v, want NonFiniteVertex", got)
		}
	})

	t.Run("open surface is not manifold", func(t *testing.T) {
		m := geom.NewPolyMesh(3)
		m.Vertices = []r3.Vec{{}, {X: 1}, {Y: 1}}
		m.Faces = [][]int{{0, 1, 2}}
		if got := sdfcsg.FromMesh(m).Status(); got != kernel.StatusNotManifold {
			t.Errorf("Status() = %v, want NotManifold", got)
		}
	})
}

func TestGenusTotalOnBrokenIndices(t *testing.T) {
	// Genus must stay callable on a handle carrying an index defect,
	// not panic on the missing vertex.
	m := boxMesh(r3.Vec{}, 1)
	m.Faces[0][0] = 99
	h := sdfcsg.FromMesh(m)
	if got := h.Status(); got != kernel.StatusIndexOutOfRange {
		t.Fatalf("Status() = %v, want VertexOutOfBounds", got)
	}
	// The value is meaningless for a defective surface; it only has
	// to come back.
	_ = h.Genus()
}

func TestFromMeshTrustedSkipsVerification(t *testing.T) {
	// A lone triangle is not a closed surface, but trusted
	// reconstruction must not look.
	m := geom.NewPolyMesh(3)
	m.Vertices = []r3.Vec{{}, {X: 1}, {Y: 1}}
	m.Faces = [][]int{{0, 1, 2}}
	if got := sdfcsg.FromMeshTrusted(m).Status(); got != kernel.StatusOK {
		t.Errorf("Status() = %v, want OK", got)
	}
}

func TestBooleanDisjointAlgebra(t *testing.T) {
	a := sdfcsg.FromMesh(boxMesh(r3.Vec{}, 1))
	b := sdfcsg.FromMesh(boxMesh(r3.Vec{X: 5}, 1))

	u := a.Boolean(b, kernel.OpUnion)
	if got := u.NumTri(); got != a.NumTri()+b.NumTri() {
		t.Errorf("union NumTri() = %d, want %d", got, a.NumTri()+b.NumTri())
	}
	wantBB := geom.BoxUnion(a.Bounds(), b.Bounds())
	if u.Bounds() != wantBB {
		t.Errorf("union Bounds() = %+v, want %+v", u.Bounds(), wantBB)
	}

	i := a.Boolean(b, kernel.OpIntersect)
	if !i.IsEmpty() {
		t.Error("intersection of disjoint solids should be empty")
	}

	d := a.Boolean(b, kernel.OpSubtract)
	if d.NumTri() != a.NumTri() || d.Bounds() != a.Bounds() {
		t.Errorf("subtract changed the minuend: %d facets, %+v", d.NumTri(), d.Bounds())
	}
}

func TestBooleanDoesNotMutateOperands(t *testing.T) {
	a := sdfcsg.FromMesh(boxMesh(r3.Vec{}, 1))
	b := sdfcsg.FromMesh(boxMesh(r3.Vec{X: 5}, 1))
	wantTri, wantVert, wantBB := a.NumTri(), a.NumVert(), a.Bounds()

	a.Boolean(b, kernel.OpIntersect)

	if a.NumTri() != wantTri || a.NumVert() != wantVert || a.Bounds() != wantBB {
		t.Error("operand A changed after boolean")
	}
}

func TestBooleanEmptyIdentities(t *testing.T) {
	a := sdfcsg.FromMesh(boxMesh(r3.Vec{}, 1))
	e := sdfcsg.Empty()

	if got := a.Boolean(e, kernel.OpUnion); got.NumTri() != a.NumTri() {
		t.Error("A ∪ ∅ should be A")
	}
	if got := a.Boolean(e, kernel.OpIntersect); !got.IsEmpty() {
		t.Error("A ∩ ∅ should be empty")
	}
	if got := e.Boolean(a, kernel.OpSubtract); !got.IsEmpty() {
		t.Error("∅ − A should be empty")
	}
	if got := a.Boolean(e, kernel.OpSubtract); got.NumTri() != a.NumTri() {
		t.Error("A − ∅ should be A")
	}
}

func TestBooleanPropagatesStatus(t *testing.T) {
	a := sdfcsg.FromMesh(boxMesh(r3.Vec{}, 1))

	bad := geom.NewPolyMesh(3)
	bad.Vertices = []r3.Vec{{}, {X: 1}, {Y: 1}}
	bad.Faces = [][]int{{0, 1, 2}}
	b := sdfcsg.FromMesh(bad)
	if b.Status() != kernel.StatusNotManifold {
		t.Fatalf("precondition: bad operand status = %v", b.Status())
	}

	got := a.Boolean(b, kernel.OpUnion)
	if got.Status() != kernel.StatusNotManifold {
		t.Errorf("result Status() = %v, want NotManifold carried through", got.Status())
	}
	// Garbage in, garbage out: still a populated value, not a crash.
	if got.IsEmpty() {
		t.Error("errored result should stay populated")
	}
}

// fakeHandle stands in for a handle from another backend.
type fakeHandle struct{ kernel.Handle }

func TestBooleanMixedBackends(t *testing.T) {
	a := sdfcsg.FromMesh(boxMesh(r3.Vec{}, 1))
	got := a.Boolean(fakeHandle{}, kernel.OpUnion)
	if got.Status() != kernel.StatusMixedBackends {
		t.Errorf("Status() = %v, want MixedBackends", got.Status())
	}
}

func TestTransformTranslatesBounds(t *testing.T) {
	h := sdfcsg.FromMesh(boxMesh(r3.Vec{}, 1))
	moved := h.Transform(geom.Translate(r3.Vec{X: 10, Y: -2, Z: 0.5}))

	bb := moved.Bounds()
	want := r3.Box{Min: r3.Vec{X: 10, Y: -2, Z: 0.5}, Max: r3.Vec{X: 11, Y: -1, Z: 1.5}}
	if bb != want {
		t.Errorf("Bounds() = %+v, want %+v", bb, want)
	}
	if moved.NumTri() != h.NumTri() || moved.NumVert() != h.NumVert() {
		t.Error("transform changed topology")
	}
	// Original untouched.
	if h.Bounds() != (r3.Box{Min: r3.Vec{}, Max: r3.Vec{X: 1, Y: 1, Z: 1}}) {
		t.Error("transform mutated its receiver")
	}
}

func TestMirrorTransformPreservesManifoldness(t *testing.T) {
	h := sdfcsg.FromMesh(boxMesh(r3.Vec{}, 1))
	mirrored := h.Transform(geom.Scale(r3.Vec{X: -1, Y: 1, Z: 1}))

	// Re-validate the mirrored boundary through the checking
	// constructor: winding must have been flipped.
	again := sdfcsg.FromMesh(mirrored.ToPolyMesh())
	if got := again.Status(); got != kernel.StatusOK {
		t.Errorf("mirrored solid re-validates as %v, want OK", got)
	}
}

func TestRoundTripPreservesBoundsAndVertexCount(t *testing.T) {
	in := boxMesh(r3.Vec{X: -3, Y: 2, Z: 1}, 2)
	h := sdfcsg.FromMeshTrusted(in)
	out := h.ToPolyMesh()

	if out.BoundingBox() != in.BoundingBox() {
		t.Errorf("bounding box changed: %+v -> %+v", in.BoundingBox(), out.BoundingBox())
	}
	if out.NumVertices() != in.NumVertices() {
		t.Errorf("vertex count changed: %d -> %d", in.NumVertices(), out.NumVertices())
	}
	if out.NumFaces() != in.NumFaces() {
		t.Errorf("face count changed: %d -> %d", in.NumFaces(), out.NumFaces())
	}
}

func TestOverlappingUnionRemeshes(t *testing.T) {
	if testing.Short() {
		t.Skip("marching cubes re-mesh is slow")
	}
	a := sdfcsg.FromMesh(boxMesh(r3.Vec{}, 1))
	b := sdfcsg.FromMesh(boxMesh(r3.Vec{X: 0.5}, 1))

	u := a.Boolean(b, kernel.OpUnion)
	if u.Status() != kernel.StatusOK {
		t.Fatalf("Status() = %v, want OK", u.Status())
	}
	if u.IsEmpty() {
		t.Fatal("overlapping union is empty")
	}
	bb := u.Bounds()
	if bb.Min.X < -0.2 || bb.Max.X > 1.7 || bb.Max.X < 1.3 {
		t.Errorf("union Bounds() = %+v, want roughly [0,1.5] in X", bb)
	}
}
