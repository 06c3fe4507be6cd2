// Package tessellate turns possibly-degenerate, possibly-concave,
// near-planar polygonal faces into clean triangular faces over a
// deduplicated vertex pool.
//
// Inputs may carry consecutive duplicate vertices, closing duplicates
// and near-planar noise; cleaning those is this package's contract.
package tessellate

import (
	"github.com/chazu/burl/pkg/geom"
	"github.com/chazu/burl/pkg/msglog"
	"gonum.org/v1/gonum/spatial/r3"
)

// Triangulator is the external triangulation capability used for faces
// with four or more vertices. It must handle concave and mildly
// self-intersecting simple polygons. Returned triples index into
// verts; implementations append to dst and must not mutate verts or
// face.
type Triangulator interface {
	Triangulate(dst [][3]int, verts []r3.Vec, face []int) ([][3]int, error)
}

// Stats reports what a tessellation run dropped.
type Stats struct {
	// DegenerateFaces is the number of input faces that collapsed to
	// fewer than 3 distinct vertices during cleanup.
	DegenerateFaces int
	// FailedFaces is the number of 4+-vertex faces the Triangulator
	// could not triangulate. Those faces contribute no output.
	FailedFaces int
}

// Faces tessellates every face of m and returns a new mesh containing
// only triangles, with m's dimension and convexity metadata. m is not
// mutated. A nil tr selects the default libtess2-backed triangulator.
//
// Degenerate and untriangulatable faces are dropped and counted; one
// summary warning per category is emitted at the end of the run, not
// one per face.
func Faces(m *geom.PolyMesh, tr Triangulator) (*geom.PolyMesh, Stats) {
	if tr == nil {
		tr = Default()
	}
	var stats Stats

	// First pass: map every face through a shared Reindexer, removing
	// consecutive duplicate vertices and a closing duplicate, and
	// culling faces that collapse below a triangle.
	allVertices := geom.NewReindexer()
	allVertices.Reserve(3 * len(m.Faces))
	cleaned := make([][]int, 0, len(m.Faces))

	for _, pgon := range m.Faces {
		if len(pgon) < 3 {
			stats.DegenerateFaces++
			continue
		}
		face := make([]int, 0, len(pgon))
		for _, ind := range pgon {
			idx := allVertices.Lookup(m.Vertices[ind])
			if len(face) == 0 || idx != face[len(face)-1] {
				face = append(face, idx)
			}
		}
		if len(face) > 1 && face[0] == face[len(face)-1] {
			face = face[:len(face)-1]
		}
		if len(face) < 3 {
			stats.DegenerateFaces++
			continue
		}
		cleaned = append(cleaned, face)
	}

	// Second pass: emit triangles against a builder preloaded with the
	// deduplicated pool.
	verts := allVertices.Array()
	builder := geom.NewBuilder(len(verts), len(cleaned), m.Dim, m.Convexity)
	for _, v := range verts {
		builder.VertexIndex(v)
	}

	// One output buffer reused across faces.
	var triangles [][3]int

	for _, face := range cleaned {
		if len(face) == 3 {
			// Trivial case: triangles are always flat and hole-free.
			builder.AppendFace(face[0], face[1], face[2])
			continue
		}
		// Quads look trivial but can be concave or degenerate, so
		// everything beyond a triangle goes to the general case.
		tris, err := tr.Triangulate(triangles[:0], verts, face)
		if err != nil {
			stats.FailedFaces++
			continue
		}
		triangles = tris
		for _, t := range triangles {
			builder.AppendFace(t[0], t[1], t[2])
		}
	}

	if stats.DegenerateFaces > 0 {
		msglog.Warningf("mesh has %d degenerate polygons", stats.DegenerateFaces)
	}
	if stats.FailedFaces > 0 {
		msglog.Warningf("triangulation failed for %d polygons", stats.FailedFaces)
	}
	return builder.Build(), stats
}
