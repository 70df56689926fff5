// Package spatial provides a proximity index over 3D positions, used to find
// near-duplicate vertices when welding meshes and resolving smoothing groups.
//
// Positions are projected onto a fixed oblique direction and sorted by that
// projection. Since projecting onto a unit vector never increases the
// distance between two points, every match of a radius query lies inside a
// narrow projection window that is located by binary search and then scanned
// linearly.
package spatial

import (
	"sort"

	pmath "github.com/Faultbox/midgard-weld/pkg/math"
)

// referenceDir is the projection axis. It must not be aligned with a
// coordinate axis, or axis-aligned geometry collapses onto few projections.
var referenceDir = pmath.Vec3{X: 0.8523, Y: 0.34321, Z: 0.5736}.Normalize()

// Face is a triangle referencing three positions by index, tagged with the
// smoothing groups it belongs to.
type Face struct {
	Indices     [3]uint32
	SmoothGroup uint32 // Smoothing group bitmask (0 = none)
}

// entry is one indexed position.
type entry struct {
	index         uint32
	position      pmath.Vec3
	projection    float32
	smoothingMask uint32
}

// Index is an immutable proximity index. It is safe for concurrent queries as
// long as every caller passes its own result slice.
type Index struct {
	entries []entry
}

// Build indexes every position of the view. The i-th position is reported as
// index i and carries no smoothing group.
func Build(view PositionView) *Index {
	b := NewBuilder(view.Len())
	b.AddView(view)
	return b.Build()
}

// BuildFromFaces indexes the three corners of every face, each tagged with the
// face's smoothing group. A position shared by several faces therefore
// appears once per face. Face indices must be valid for positions.
func BuildFromFaces(faces []Face, positions PositionView) *Index {
	b := NewBuilder(len(faces) * 3)
	for _, f := range faces {
		for _, vi := range f.Indices {
			b.Add(positions.At(int(vi)), vi, f.SmoothGroup)
		}
	}
	return b.Build()
}

// Len returns the number of entries in the index.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Builder collects positions before they are sorted into an Index.
type Builder struct {
	entries []entry
}

// NewBuilder returns a builder with room for capacity positions.
func NewBuilder(capacity int) *Builder {
	return &Builder{entries: make([]entry, 0, capacity)}
}

// Add appends a position reported as index with the given smoothing mask.
func (b *Builder) Add(pos pmath.Vec3, index uint32, smoothingMask uint32) {
	b.entries = append(b.entries, entry{
		index:         index,
		position:      pos,
		projection:    pos.Dot(referenceDir),
		smoothingMask: smoothingMask,
	})
}

// AddView appends every position of the view without smoothing groups.
// Indices continue from the number of entries already added, so appending
// several buffers numbers them as if they were concatenated.
func (b *Builder) AddView(view PositionView) {
	base := uint32(len(b.entries))
	for i := 0; i < view.Len(); i++ {
		b.Add(view.At(i), base+uint32(i), 0)
	}
}

// Build sorts the collected positions and returns the index. The builder is
// left empty and may be reused.
func (b *Builder) Build() *Index {
	entries := b.entries
	b.entries = nil
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].projection < entries[j].projection
	})
	return &Index{entries: entries}
}
