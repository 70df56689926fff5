package spatial

import (
	"math"

	pmath "github.com/Faultbox/midgard-weld/pkg/math"
)

// ULP tolerances used by FindIdentical.
const (
	toleranceULPs           = 4
	distanceToleranceULPs   = toleranceULPs + 1
	distance3DToleranceULPs = distanceToleranceULPs + 1
)

// FindNear appends to out[:0] the index of every entry closer than radius to
// pos and returns the result. With mask 0 the smoothing groups are ignored;
// otherwise an entry matches if it has no smoothing group or shares at least
// one bit with mask. Results are ordered by projection, not by distance, and
// may repeat an index when it was added by several faces.
func (idx *Index) FindNear(pos pmath.Vec3, mask uint32, radius float32, out []uint32) []uint32 {
	out = out[:0]
	start, maxDist, ok := idx.window(pos, radius)
	if !ok {
		return out
	}

	sqRadius := radius * radius
	for i := start; i < len(idx.entries); i++ {
		e := &idx.entries[i]
		if e.projection >= maxDist {
			break
		}
		if e.position.SquaredDistance(pos) >= sqRadius {
			continue
		}
		if mask != 0 && e.smoothingMask != 0 && e.smoothingMask&mask == 0 {
			continue
		}
		out = append(out, e.index)
	}
	return out
}

// FindNearExact is like FindNear but only accepts entries whose smoothing
// mask equals mask exactly.
func (idx *Index) FindNearExact(pos pmath.Vec3, mask uint32, radius float32, out []uint32) []uint32 {
	out = out[:0]
	start, maxDist, ok := idx.window(pos, radius)
	if !ok {
		return out
	}

	sqRadius := radius * radius
	for i := start; i < len(idx.entries); i++ {
		e := &idx.entries[i]
		if e.projection >= maxDist {
			break
		}
		if e.smoothingMask == mask && e.position.SquaredDistance(pos) < sqRadius {
			out = append(out, e.index)
		}
	}
	return out
}

// FindIdentical appends to out[:0] the index of every entry at the same
// position as pos, allowing for a few ULPs of rounding error, and returns the
// result. Smoothing groups are ignored.
func (idx *Index) FindIdentical(pos pmath.Vec3, out []uint32) []uint32 {
	out = out[:0]
	n := len(idx.entries)
	if n == 0 {
		return out
	}

	minBin := orderedBits(pos.Dot(referenceDir)) - distanceToleranceULPs
	maxBin := minBin + 2*distanceToleranceULPs
	if maxBin < orderedBits(idx.entries[0].projection) || minBin > orderedBits(idx.entries[n-1].projection) {
		return out
	}

	start := idx.lowerBound(func(e *entry) bool {
		return orderedBits(e.projection) < minBin
	})
	for i := start; i < n; i++ {
		e := &idx.entries[i]
		if orderedBits(e.projection) >= maxBin {
			break
		}
		if orderedBits(e.position.SquaredDistance(pos)) <= distance3DToleranceULPs {
			out = append(out, e.index)
		}
	}
	return out
}

// window returns the first entry that may lie within radius of pos together
// with the exclusive upper projection bound of the scan. ok is false when no
// entry can match.
func (idx *Index) window(pos pmath.Vec3, radius float32) (start int, maxDist float32, ok bool) {
	n := len(idx.entries)
	if n == 0 {
		return 0, 0, false
	}

	dist := pos.Dot(referenceDir)
	minDist := dist - radius
	maxDist = dist + radius
	if maxDist < idx.entries[0].projection || minDist > idx.entries[n-1].projection {
		return 0, 0, false
	}

	start = idx.lowerBound(func(e *entry) bool {
		return e.projection < minDist
	})
	return start, maxDist, true
}

// lowerBound returns the first entry for which below is false. below must be
// monotone over the sorted entries and false for the last entry.
//
// The step-halving search stops refining once the step reaches 1 and only
// lands near the boundary; the linear walks then settle on it exactly, which
// also handles runs of equal projections.
func (idx *Index) lowerBound(below func(e *entry) bool) int {
	n := len(idx.entries)
	i := n / 2
	for step := n / 4; step > 1; step /= 2 {
		if below(&idx.entries[i]) {
			i += step
		} else {
			i -= step
		}
	}

	for i > 0 && !below(&idx.entries[i-1]) {
		i--
	}
	for i < n-1 && below(&idx.entries[i]) {
		i++
	}
	return i
}

// orderedBits maps a float32 to an integer with the same ordering, so that
// adjacent floats differ by one.
func orderedBits(f float32) int64 {
	b := int32(math.Float32bits(f))
	if b < 0 {
		return int64(math.MinInt32) - int64(b)
	}
	return int64(b)
}
