// Package piano describes the playable key range.
package piano

import "github.com/tessro/keyglow/internal/config"

// Range is an inclusive span of MIDI notes. Key index 0 is Low.
type Range struct {
	Low  uint8
	High uint8
}

// FromConfig converts the keyboard layout section.
func FromConfig(r config.KeyRangeV1) Range {
	return Range{Low: r.Low, High: r.High}
}

// Len returns the number of keys, 0 for an inverted range.
func (r Range) Len() int {
	if r.Low > r.High {
		return 0
	}
	return int(r.High) - int(r.Low) + 1
}

// KeyCount sizes the glow engine.
func (r Range) KeyCount() int {
	return r.Len()
}

// Contains reports whether note is playable.
func (r Range) Contains(note uint8) bool {
	return note >= r.Low && note <= r.High
}

// Index returns the key index of note.
func (r Range) Index(note uint8) (int, bool) {
	if !r.Contains(note) {
		return 0, false
	}
	return int(note - r.Low), true
}

// Note returns the MIDI note of key index i.
func (r Range) Note(i int) uint8 {
	return r.Low + uint8(i)
}

// IsBlack reports whether note is a sharp/flat.
func IsBlack(note uint8) bool {
	switch note % 12 {
	case 1, 3, 6, 8, 10:
		return true
	}
	return false
}

// Geometry places key i in a uniform row of keyWidth-wide slots anchored at
// y = 0. It stands in for a real keyboard layout.
func (r Range) Geometry(i int, keyWidth float32) (x, y, w float32) {
	return float32(i) * keyWidth, 0, keyWidth
}
