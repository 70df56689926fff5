package spatial

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	pmath "github.com/Faultbox/midgard-weld/pkg/math"
)

// positionEpsilonScale is the fraction of the bounding box diagonal used as
// the default weld radius.
const positionEpsilonScale = 1e-4

// PositionEpsilon returns a distance below which two positions of the view
// are considered the same point: a small fraction of the diagonal of their
// bounding box. It returns 0 for an empty view.
func PositionEpsilon(view PositionView) float32 {
	if view.Len() == 0 {
		return 0
	}
	box := bounds(view.Len(), view.At)
	return float32(r3.Norm(r3.Sub(box.Max, box.Min)) * positionEpsilonScale)
}

// Bounds returns the axis-aligned bounding box of the indexed positions. The
// box is empty (zero) for an empty index.
func (idx *Index) Bounds() r3.Box {
	if len(idx.entries) == 0 {
		return r3.Box{}
	}
	return bounds(len(idx.entries), func(i int) pmath.Vec3 {
		return idx.entries[i].position
	})
}

func bounds(n int, at func(i int) pmath.Vec3) r3.Box {
	box := r3.Box{
		Min: r3.Vec{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64},
		Max: r3.Vec{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64},
	}
	for i := 0; i < n; i++ {
		p := at(i)
		v := r3.Vec{X: float64(p.X), Y: float64(p.Y), Z: float64(p.Z)}
		box.Min.X = math.Min(box.Min.X, v.X)
		box.Min.Y = math.Min(box.Min.Y, v.Y)
		box.Min.Z = math.Min(box.Min.Z, v.Z)
		box.Max.X = math.Max(box.Max.X, v.X)
		box.Max.Y = math.Max(box.Max.Y, v.Y)
		box.Max.Z = math.Max(box.Max.Z, v.Z)
	}
	return box
}
