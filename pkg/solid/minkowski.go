package solid

import (
	"errors"

	"github.com/chazu/burl/pkg/convert"
	"github.com/chazu/burl/pkg/geom"
	"github.com/chazu/burl/pkg/kernel/sdfcsg"
	"github.com/chazu/burl/pkg/msglog"
	"github.com/chazu/burl/pkg/nef"
)

// brep is the closed-solid engine the Minkowski fallback runs on. It
// is a package variable so tests can substitute a stub and observe
// whether the engine was invoked at all.
type brep interface {
	FromMesh(m *geom.PolyMesh) (brepSolid, error)
}

// brepSolid is one closed solid held by a brep engine.
type brepSolid interface {
	IsEmpty() bool
	Minkowski(other brepSolid) (brepSolid, error)
	ToPolyMesh() (*geom.PolyMesh, error)
}

var defaultBrep brep = nefBrep{}

var errMixedBrep = errors.New("operands come from different closed-solid engines")

// Minkowski replaces the held value with the Minkowski sum of s and
// other. The sum is computed on the closed-solid engine: both operands
// are materialized as meshes, lifted into closed solids, combined, and
// the result mesh is reconstructed as a trusted watertight solid. Any
// failure along the way clears s.
func (s *Solid) Minkowski(other *Solid) {
	lhs := convert.AsPolyMesh(s)
	rhs := convert.AsPolyMesh(other)
	// An operand that materializes as empty makes the sum empty;
	// the closed-solid engine is never consulted.
	if lhs.IsEmpty() || rhs.IsEmpty() {
		s.Clear()
		return
	}
	a, err := defaultBrep.FromMesh(lhs)
	if err != nil {
		msglog.Errorf("minkowski: lifting first operand failed: %v", err)
		s.Clear()
		return
	}
	b, err := defaultBrep.FromMesh(rhs)
	if err != nil {
		msglog.Errorf("minkowski: lifting second operand failed: %v", err)
		s.Clear()
		return
	}
	sum, err := a.Minkowski(b)
	if err != nil {
		msglog.Errorf("minkowski: %v", err)
		s.Clear()
		return
	}
	m, err := sum.ToPolyMesh()
	if err != nil || m.IsEmpty() {
		if err != nil {
			msglog.Errorf("minkowski: materializing result failed: %v", err)
		}
		s.Clear()
		return
	}
	s.h = sdfcsg.FromMeshTrusted(m)
}

// nefBrep backs the Minkowski pipeline with the nef engine.
type nefBrep struct{}

func (nefBrep) FromMesh(m *geom.PolyMesh) (brepSolid, error) {
	p, err := nef.FromMesh(m)
	if err != nil {
		return nil, err
	}
	return nefSolid{p: p}, nil
}

type nefSolid struct {
	p *nef.Polyhedron
}

func (n nefSolid) IsEmpty() bool { return n.p.IsEmpty() }

func (n nefSolid) Minkowski(other brepSolid) (brepSolid, error) {
	o, ok := other.(nefSolid)
	if !ok {
		return nil, errMixedBrep
	}
	sum, err := n.p.Minkowski(o.p)
	if err != nil {
		return nil, err
	}
	return nefSolid{p: sum}, nil
}

func (n nefSolid) ToPolyMesh() (*geom.PolyMesh, error) { return n.p.ToPolyMesh() }
