package geom

import "gonum.org/v1/gonum/spatial/r3"

// Builder assembles a PolyMesh from deduplicated vertices and faces.
// It preallocates from size estimates so building does not grow
// per-face.
type Builder struct {
	rx        Reindexer
	faces     [][]int
	dim       int
	convexity int
}

// NewBuilder returns a Builder pre-sized for the estimated vertex and
// face counts. Estimates may be low; they only reduce reallocation.
func NewBuilder(estVertices, estFaces, dim, convexity int) *Builder {
	b := &Builder{dim: dim, convexity: convexity}
	if b.convexity < 1 {
		b.convexity = 1
	}
	b.rx.Reserve(estVertices)
	b.faces = make([][]int, 0, estFaces)
	return b
}

// VertexIndex interns v and returns its dense id.
func (b *Builder) VertexIndex(v r3.Vec) int {
	return b.rx.Lookup(v)
}

// AppendFace adds a face given as vertex ids previously returned by
// VertexIndex. The face is stored as given; cleanup is the
// tessellator's job, not the builder's.
func (b *Builder) AppendFace(face ...int) {
	f := make([]int, len(face))
	copy(f, face)
	b.faces = append(b.faces, f)
}

// Build returns the assembled mesh. The Builder must not be used
// afterwards.
func (b *Builder) Build() *PolyMesh {
	return &PolyMesh{
		Vertices:  b.rx.Array(),
		Faces:     b.faces,
		Dim:       b.dim,
		Convexity: b.convexity,
	}
}
