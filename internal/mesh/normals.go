package mesh

import (
	"math"

	"github.com/chewxy/math32"

	pmath "github.com/Faultbox/midgard-weld/pkg/math"
	"github.com/Faultbox/midgard-weld/pkg/spatial"
)

// NormalOptions contains options for normal generation.
type NormalOptions struct {
	// MaxSmoothingAngle is the largest angle in degrees between two face
	// normals that are still averaged together.
	MaxSmoothingAngle float32
	// Epsilon is the distance below which two corners share a position.
	// 0 derives it from the mesh bounds.
	Epsilon float32
}

// GenerateNormals returns one normal per face corner, face f corner k at
// index 3*f+k. Corners of faces sharing a smoothing group and a position get
// the average of the adjacent face normals within the smoothing angle. Faces
// without a smoothing group are flat shaded.
func GenerateNormals(m *Mesh, opts NormalOptions) ([]pmath.Vec3, error) {
	if err := Validate(m); err != nil {
		return nil, err
	}

	faceNormals := make([]pmath.Vec3, len(m.Faces))
	for f := range m.Faces {
		faceNormals[f] = m.FaceNormal(f)
	}

	eps := opts.Epsilon
	if eps <= 0 {
		eps = spatial.PositionEpsilon(m.view())
	}
	limit := math32.Cos(opts.MaxSmoothingAngle * float32(math.Pi) / 180)

	// One entry per corner, so a match identifies the face it came from.
	b := spatial.NewBuilder(len(m.Faces) * 3)
	for f, face := range m.Faces {
		for k, vi := range face.Indices {
			b.Add(m.Positions[vi], uint32(3*f+k), face.SmoothGroup)
		}
	}
	idx := b.Build()

	normals := make([]pmath.Vec3, len(m.Faces)*3)
	found := make([]uint32, 0, 16)
	for f, face := range m.Faces {
		own := faceNormals[f]
		for k, vi := range face.Indices {
			corner := 3*f + k
			if face.SmoothGroup == 0 {
				normals[corner] = own
				continue
			}

			found = idx.FindNear(m.Positions[vi], face.SmoothGroup, eps, found)
			sum := own
			for _, c := range found {
				other := int(c) / 3
				if other == f || m.Faces[other].SmoothGroup == 0 {
					continue
				}
				n := faceNormals[other]
				if n.Dot(own) < limit {
					continue
				}
				sum = sum.Add(n)
			}

			if n := sum.Normalize(); !n.IsZero() {
				normals[corner] = n
			} else {
				normals[corner] = own
			}
		}
	}
	return normals, nil
}
