// Package mesh provides mesh post-processing steps built on the spatial
// index: joining duplicate vertices and generating smoothing-group aware
// vertex normals.
package mesh

import (
	"errors"
	"fmt"

	pmath "github.com/Faultbox/midgard-weld/pkg/math"
	"github.com/Faultbox/midgard-weld/pkg/spatial"
)

// Mesh errors.
var (
	ErrNilMesh             = errors.New("nil mesh")
	ErrNoPositions         = errors.New("mesh has faces but no positions")
	ErrFaceIndexOutOfRange = errors.New("face index out of range")
	ErrNegativeEpsilon     = errors.New("negative weld epsilon")
)

// Unused marks a vertex that no face references in WeldResult.Remap.
const Unused = ^uint32(0)

// Mesh is an indexed triangle mesh as produced by a format importer.
type Mesh struct {
	Name      string
	Positions []pmath.Vec3
	Faces     []spatial.Face
}

// Validate checks that every face references an existing position.
func Validate(m *Mesh) error {
	if m == nil {
		return ErrNilMesh
	}
	if len(m.Faces) > 0 && len(m.Positions) == 0 {
		return fmt.Errorf("%w (%d faces)", ErrNoPositions, len(m.Faces))
	}
	n := uint32(len(m.Positions))
	for i, f := range m.Faces {
		for _, vi := range f.Indices {
			if vi >= n {
				return fmt.Errorf("%w: face %d references vertex %d of %d", ErrFaceIndexOutOfRange, i, vi, n)
			}
		}
	}
	return nil
}

// FaceNormal returns the unit normal of face f, or the zero vector if the
// face is degenerate.
func (m *Mesh) FaceNormal(f int) pmath.Vec3 {
	face := m.Faces[f]
	v0 := m.Positions[face.Indices[0]]
	v1 := m.Positions[face.Indices[1]]
	v2 := m.Positions[face.Indices[2]]
	return v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
}

// view returns the positions as an index input.
func (m *Mesh) view() spatial.PositionView {
	return spatial.NewPositionView(m.Positions)
}
