// Package convert adapts between the supported geometry variants and
// the canonical mesh. The variant set is closed: canonical mesh,
// closed solid, hybrid, watertight solid. Nothing here mutates its
// input.
package convert

import (
	"github.com/chazu/burl/pkg/geom"
	"github.com/chazu/burl/pkg/msglog"
	"github.com/chazu/burl/pkg/nef"
	"gonum.org/v1/gonum/spatial/r2"
)

// meshMaterializer is the narrow capability shared by variants that
// can produce their own canonical mesh (hybrid and watertight
// solids). A nil result means "no usable geometry".
type meshMaterializer interface {
	ToPolyMesh() *geom.PolyMesh
}

// AsPolyMesh returns a canonical-mesh view of g without copying when
// avoidable:
//
//   - a mesh is returned as-is, by shared reference;
//   - an empty closed solid becomes an empty 3D mesh; a non-empty one
//     is structurally converted, and a conversion failure is logged as
//     an Error and reported as nil;
//   - hybrid and watertight variants materialize themselves;
//   - an unrecognized variant yields nil.
//
// Callers must treat nil as "nothing here", never as an abort signal.
func AsPolyMesh(g geom.Geometry) *geom.PolyMesh {
	switch v := g.(type) {
	case *geom.PolyMesh:
		return v
	case *nef.Polyhedron:
		if v.IsEmpty() {
			return geom.NewPolyMesh(v.Dimension())
		}
		m, err := v.ToPolyMesh()
		if err != nil {
			msglog.Errorf("closed solid to mesh conversion failed: %v", err)
			return nil
		}
		return m
	case meshMaterializer:
		return v.ToPolyMesh()
	}
	return nil
}

// Project flattens every face of m (back-facing ones included —
// filtering by normal here invites floating-point trouble downstream)
// into a 2D outline set.
func Project(m *geom.PolyMesh) *geom.Polygon {
	poly := &geom.Polygon{}
	for _, face := range m.Faces {
		outline := make([]r2.Vec, len(face))
		for i, idx := range face {
			v := m.Vertices[idx]
			outline[i] = r2.Vec{X: v.X, Y: v.Y}
		}
		poly.AddOutline(outline)
	}
	return poly
}
