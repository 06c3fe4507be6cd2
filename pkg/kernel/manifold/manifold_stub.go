//go:build !manifold

// Package manifold provides a CGo-based watertight-solid backend
// binding to the Manifold library. When the "manifold" build tag is
// not set, this stub is compiled instead, returning an error from
// New().
//
// Build with: go build -tags=manifold
package manifold

import (
	"errors"

	"github.com/chazu/burl/pkg/geom"
	"github.com/chazu/burl/pkg/kernel"
)

// Backend builds solids on the Manifold C library.
type Backend struct{}

// New returns an error indicating Manifold is not available.
// Build with -tags=manifold to enable.
func New() (*Backend, error) {
	return nil, errors.New("manifold backend not available: build with -tags=manifold")
}

// Empty is unreachable without the manifold build tag.
func (Backend) Empty() kernel.Handle { return nil }

// FromMesh is unreachable without the manifold build tag.
func (Backend) FromMesh(m *geom.PolyMesh) kernel.Handle { return nil }

// FromMeshTrusted is unreachable without the manifold build tag.
func (Backend) FromMeshTrusted(m *geom.PolyMesh) kernel.Handle { return nil }
