package glow

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Instance is one glow quad handed to the GPU.
type Instance struct {
	Position [2]float32 `json:"position"`
	Size     [2]float32 `json:"size"`
	Color    [4]float32 `json:"color"`
	Time     float32    `json:"time"`
}

// Vertex buffer strides. The timed layout pads to 16-byte alignment.
const (
	StrideTimed   = 40
	StrideUntimed = 32
)

// AppendBinary appends the little-endian f32 record for in. Untimed records
// stop after the color.
func (in Instance) AppendBinary(b []byte, timed bool) []byte {
	put := func(f float32) {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(f))
	}
	put(in.Position[0])
	put(in.Position[1])
	put(in.Size[0])
	put(in.Size[1])
	for _, c := range in.Color {
		put(c)
	}
	if timed {
		put(in.Time)
		put(0) // padding
	}
	return b
}

// DecodeInstances reads records written by AppendBinary.
func DecodeInstances(data []byte, stride int) ([]Instance, error) {
	if stride != StrideTimed && stride != StrideUntimed {
		return nil, fmt.Errorf("unsupported instance stride %d", stride)
	}
	if len(data)%stride != 0 {
		return nil, fmt.Errorf("instance data length %d is not a multiple of %d", len(data), stride)
	}

	get := func(rec []byte, i int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(rec[i*4:]))
	}

	out := make([]Instance, 0, len(data)/stride)
	for off := 0; off < len(data); off += stride {
		rec := data[off : off+stride]
		in := Instance{
			Position: [2]float32{get(rec, 0), get(rec, 1)},
			Size:     [2]float32{get(rec, 2), get(rec, 3)},
			Color:    [4]float32{get(rec, 4), get(rec, 5), get(rec, 6), get(rec, 7)},
		}
		if stride == StrideTimed {
			in.Time = get(rec, 8)
		}
		out = append(out, in)
	}
	return out, nil
}

// InstanceBuffer collects the instances of one frame.
type InstanceBuffer struct {
	items []Instance
	timed bool
}

// NewInstanceBuffer creates a buffer. timed selects the record layout.
func NewInstanceBuffer(timed bool) *InstanceBuffer {
	return &InstanceBuffer{timed: timed}
}

// Push appends an instance.
func (b *InstanceBuffer) Push(in Instance) {
	b.items = append(b.items, in)
}

// Items returns the instances pushed since the last Reset.
func (b *InstanceBuffer) Items() []Instance {
	return b.items
}

// Len returns the number of instances.
func (b *InstanceBuffer) Len() int {
	return len(b.items)
}

// Reset empties the buffer, keeping its capacity.
func (b *InstanceBuffer) Reset() {
	b.items = b.items[:0]
}

// Timed reports whether records carry the animation clock.
func (b *InstanceBuffer) Timed() bool {
	return b.timed
}

// SetTimed selects the record layout.
func (b *InstanceBuffer) SetTimed(timed bool) {
	b.timed = timed
}

// Stride returns the record size in bytes.
func (b *InstanceBuffer) Stride() int {
	if b.timed {
		return StrideTimed
	}
	return StrideUntimed
}

// AppendBinary encodes every instance onto dst.
func (b *InstanceBuffer) AppendBinary(dst []byte) []byte {
	for _, in := range b.items {
		dst = in.AppendBinary(dst, b.timed)
	}
	return dst
}
