package mesh

import (
	pmath "github.com/Faultbox/midgard-weld/pkg/math"
	"github.com/Faultbox/midgard-weld/pkg/spatial"
)

// WeldResult describes how JoinVertices renumbered the vertices.
type WeldResult struct {
	// Remap maps every original vertex to its new index, or Unused.
	Remap       []uint32
	VerticesIn  int
	VerticesOut int
}

// JoinVertices merges vertices closer than epsilon and drops vertices no face
// references. An epsilon of 0 only merges identical positions. Faces are
// rewritten in place.
//
// Vertices are visited in index order; a vertex joins the lowest-numbered
// earlier vertex found within epsilon, otherwise it is kept.
func JoinVertices(m *Mesh, epsilon float32) (*WeldResult, error) {
	if epsilon < 0 {
		return nil, ErrNegativeEpsilon
	}
	if err := Validate(m); err != nil {
		return nil, err
	}

	used := make([]bool, len(m.Positions))
	for _, f := range m.Faces {
		for _, vi := range f.Indices {
			used[vi] = true
		}
	}

	idx := spatial.Build(m.view())
	remap := make([]uint32, len(m.Positions))
	unique := make([]pmath.Vec3, 0, len(m.Positions))
	found := make([]uint32, 0, 16)

	for i, p := range m.Positions {
		remap[i] = Unused
		if !used[i] {
			continue
		}

		if epsilon == 0 {
			found = idx.FindIdentical(p, found)
		} else {
			found = idx.FindNear(p, 0, epsilon, found)
		}

		target := Unused
		for _, j := range found {
			if j < uint32(i) && used[j] && j < target {
				target = j
			}
		}

		if target != Unused {
			remap[i] = remap[target]
			continue
		}
		remap[i] = uint32(len(unique))
		unique = append(unique, p)
	}

	for i := range m.Faces {
		for k, vi := range m.Faces[i].Indices {
			m.Faces[i].Indices[k] = remap[vi]
		}
	}

	res := &WeldResult{
		Remap:       remap,
		VerticesIn:  len(m.Positions),
		VerticesOut: len(unique),
	}
	m.Positions = unique
	return res, nil
}
