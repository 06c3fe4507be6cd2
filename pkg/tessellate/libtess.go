package tessellate

import (
	"fmt"

	libtess2 "github.com/hajimehoshi/go-libtess2"
	"gonum.org/v1/gonum/spatial/r3"
)

// libtess adapts github.com/hajimehoshi/go-libtess2 to the
// Triangulator contract. libtess2 picks its own projection plane for
// near-planar 3D contours and is robust to concavity and
// self-intersection.
type libtess struct{}

// Default returns the default triangulator.
func Default() Triangulator {
	return libtess{}
}

func (libtess) Triangulate(dst [][3]int, verts []r3.Vec, face []int) ([][3]int, error) {
	// The tessellator works at single precision, which is exactly the
	// pool's identity resolution: output vertices map back to pool ids
	// by their reduced coordinates.
	contour := make(libtess2.Contour, len(face))
	back := make(map[[3]float32]int, len(face))
	for i, idx := range face {
		v := verts[idx]
		key := [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
		contour[i] = libtess2.Vertex{X: key[0], Y: key[1], Z: key[2]}
		if _, ok := back[key]; !ok {
			back[key] = idx
		}
	}

	elements, outVerts, err := libtess2.Tesselate([]libtess2.Contour{contour}, libtess2.WindingRuleOdd)
	if err != nil {
		return dst, fmt.Errorf("tessellate: %w", err)
	}

	ids := make([]int, len(outVerts))
	for i, v := range outVerts {
		idx, ok := back[[3]float32{v.X, v.Y, v.Z}]
		if !ok {
			// A self-intersection produced a vertex that is not part
			// of the pool; the face cannot be expressed as pool
			// triangles.
			return dst, fmt.Errorf("tessellate: triangulation introduced vertex outside the pool")
		}
		ids[i] = idx
	}

	// libtess2 normalizes winding in its projection plane, which may
	// be opposite the face's own orientation. Flip triangles that
	// disagree with the face normal so orientation survives.
	normal := newellNormal(verts, face)
	for i := 0; i+2 < len(elements); i += 3 {
		t := [3]int{ids[elements[i]], ids[elements[i+1]], ids[elements[i+2]]}
		if t[0] == t[1] || t[1] == t[2] || t[2] == t[0] {
			continue
		}
		tn := r3.Cross(
			r3.Sub(verts[t[1]], verts[t[0]]),
			r3.Sub(verts[t[2]], verts[t[0]]),
		)
		if r3.Dot(tn, normal) < 0 {
			t[1], t[2] = t[2], t[1]
		}
		dst = append(dst, t)
	}
	return dst, nil
}

// newellNormal computes the Newell normal of a polygonal face, which
// is stable for near-planar and slightly concave input.
func newellNormal(verts []r3.Vec, face []int) r3.Vec {
	var n r3.Vec
	for i, idx := range face {
		a := verts[idx]
		b := verts[face[(i+1)%len(face)]]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	return n
}
