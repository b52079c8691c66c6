// Package input turns MIDI note messages into the set of held keys.
package input

import (
	"sync"

	"gitlab.com/gomidi/midi/v2"
)

// Tracker records which notes are held. The MIDI listener goroutine writes
// and the frame loop reads, so all methods lock.
type Tracker struct {
	mu      sync.Mutex
	pressed [128]bool
}

// NewTracker creates a tracker with no held notes.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Handle applies a note message and reports whether msg was one.
// NoteOn with velocity 0 counts as a release.
func (t *Tracker) Handle(msg midi.Message) bool {
	var ch, key, vel uint8
	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		t.Press(key)
	case msg.GetNoteEnd(&ch, &key):
		t.Release(key)
	default:
		return false
	}
	return true
}

// Press marks note as held.
func (t *Tracker) Press(note uint8) {
	t.mu.Lock()
	t.pressed[note&0x7f] = true
	t.mu.Unlock()
}

// Release marks note as released.
func (t *Tracker) Release(note uint8) {
	t.mu.Lock()
	t.pressed[note&0x7f] = false
	t.mu.Unlock()
}

// ReleaseAll releases every note, e.g. after the device disappears.
func (t *Tracker) ReleaseAll() {
	t.mu.Lock()
	t.pressed = [128]bool{}
	t.mu.Unlock()
}

// IsPressed reports whether note is held.
func (t *Tracker) IsPressed(note uint8) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pressed[note&0x7f]
}

// Pressed returns the held notes in ascending order.
func (t *Tracker) Pressed() []uint8 {
	t.mu.Lock()
	defer t.mu.Unlock()

	var notes []uint8
	for n, down := range t.pressed {
		if down {
			notes = append(notes, uint8(n))
		}
	}
	return notes
}
