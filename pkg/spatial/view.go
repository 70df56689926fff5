package spatial

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	pmath "github.com/Faultbox/midgard-weld/pkg/math"
)

// Vertex buffer layout errors.
var (
	ErrInvalidStride  = errors.New("invalid vertex stride")
	ErrInvalidLayout  = errors.New("invalid vertex buffer layout")
	ErrBufferTooSmall = errors.New("vertex buffer too small")
)

// positionSize is the byte size of one packed float32 XYZ triple.
const positionSize = 12

// PositionView is a read-only accessor over a set of 3D positions. It wraps
// either a tight []Vec3 or a little-endian vertex buffer whose elements may
// be interleaved with other attributes.
type PositionView struct {
	vecs   []pmath.Vec3
	buf    []byte
	offset int
	count  int
	stride int
}

// NewPositionView returns a view over a tightly packed position slice.
func NewPositionView(positions []pmath.Vec3) PositionView {
	return PositionView{vecs: positions, count: len(positions)}
}

// NewStridedView returns a view over count positions stored in buf, the first
// one at offset and each following one stride bytes further. Each position is
// three little-endian float32 values.
func NewStridedView(buf []byte, offset, count, stride int) (PositionView, error) {
	if stride < positionSize {
		return PositionView{}, fmt.Errorf("%w: %d bytes (minimum %d)", ErrInvalidStride, stride, positionSize)
	}
	if offset < 0 || count < 0 {
		return PositionView{}, fmt.Errorf("%w: offset=%d count=%d", ErrInvalidLayout, offset, count)
	}
	if count > 0 {
		need := offset + (count-1)*stride + positionSize
		if need > len(buf) {
			return PositionView{}, fmt.Errorf("%w: need %d bytes, have %d", ErrBufferTooSmall, need, len(buf))
		}
	}
	return PositionView{buf: buf, offset: offset, count: count, stride: stride}, nil
}

// Len returns the number of positions in the view.
func (v PositionView) Len() int {
	return v.count
}

// At returns the i-th position. It panics if i is out of range.
func (v PositionView) At(i int) pmath.Vec3 {
	if i < 0 || i >= v.count {
		panic(fmt.Sprintf("spatial: position index %d out of range [0:%d]", i, v.count))
	}
	if v.buf == nil {
		return v.vecs[i]
	}
	p := v.buf[v.offset+i*v.stride:]
	return pmath.Vec3{
		X: math.Float32frombits(binary.LittleEndian.Uint32(p[0:])),
		Y: math.Float32frombits(binary.LittleEndian.Uint32(p[4:])),
		Z: math.Float32frombits(binary.LittleEndian.Uint32(p[8:])),
	}
}
