package geom

import "gonum.org/v1/gonum/spatial/r2"

// Polygon is a set of 2D outlines, the planar counterpart of PolyMesh.
// It is what 3D geometry projects down to.
type Polygon struct {
	Outlines [][]r2.Vec
}

// AddOutline appends one outline.
func (p *Polygon) AddOutline(outline []r2.Vec) {
	p.Outlines = append(p.Outlines, outline)
}

// NumOutlines returns the number of outlines.
func (p *Polygon) NumOutlines() int { return len(p.Outlines) }

// IsEmpty reports whether the polygon has no outlines.
func (p *Polygon) IsEmpty() bool { return p == nil || len(p.Outlines) == 0 }
