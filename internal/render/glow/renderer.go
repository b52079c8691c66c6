// Package glow animates the light behind pressed piano keys.
//
// A Renderer keeps one State per key of the active layout. Each frame the
// host clears the pipeline, calls Push for every held key, calls
// UpdateInactive once, then prepares and renders the pipeline.
package glow

import (
	"fmt"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// Layout is the keyboard collaborator: it only sizes the state vector.
type Layout interface {
	KeyCount() int
}

// State is one key's animation clock.
type State struct {
	time      float32
	wasActive bool
	pressed   bool // pushed during the current frame
}

// Time returns the animation clock.
func (s State) Time() float32 { return s.time }

// Active reports whether the key was held on the last update.
func (s State) Active() bool { return s.wasActive }

func (s *State) update(style Style, dt float32, active bool) {
	s.time = style.Advance(s.time, dt, active, s.wasActive)
	s.wasActive = active
}

// Renderer drives the glow of every key.
type Renderer struct {
	pipeline Pipeline
	style    Style
	states   []State
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithStyle replaces the default Burst style.
func WithStyle(style Style) Option {
	return func(r *Renderer) {
		if style != nil {
			r.style = style
		}
	}
}

// New creates a renderer with one resting state per layout key.
func New(pipeline Pipeline, layout Layout, opts ...Option) *Renderer {
	r := &Renderer{
		pipeline: pipeline,
		style:    Burst{},
	}
	for _, opt := range opts {
		opt(r)
	}
	pipeline.Instances().SetTimed(r.style.EmitsTime())
	r.Resize(layout)
	return r
}

// Resize recreates every state for a new layout. All keys come back at rest.
func (r *Renderer) Resize(layout Layout) {
	r.states = make([]State, layout.KeyCount())
}

// Len returns the number of keys.
func (r *Renderer) Len() int {
	return len(r.states)
}

// State returns a copy of key id's state.
func (r *Renderer) State(id int) State {
	return r.states[r.index(id)]
}

// Style returns the active style.
func (r *Renderer) Style() Style {
	return r.style
}

func (r *Renderer) Prepare() {
	r.pipeline.Prepare()
}

func (r *Renderer) Render(pass RenderPass) {
	r.pipeline.Render(pass)
}

func (r *Renderer) Clear() {
	r.pipeline.Clear()
}

// Push advances key id as held and appends its glow instance. The quad is
// centered on the key's horizontal midpoint and on its y anchor. An id
// outside the layout panics.
func (r *Renderer) Push(id int, color colorful.Color, keyX, keyY, keyW float32, delta time.Duration) {
	state := &r.states[r.index(id)]
	state.update(r.style, seconds(delta), true)
	state.pressed = true

	size := r.style.Size(state.time)
	in := Instance{
		Position: [2]float32{keyX - size/2 + keyW/2, keyY - size/2},
		Size:     [2]float32{size, size},
		Color:    r.style.Color(state.time, color),
	}
	if r.style.EmitsTime() {
		in.Time = state.time
	}
	r.pipeline.Instances().Push(in)
}

// UpdateInactive ends the frame: keys that were held but not pushed this
// frame are released, keys at rest are skipped.
func (r *Renderer) UpdateInactive(delta time.Duration) {
	dt := seconds(delta)
	for i := range r.states {
		s := &r.states[i]
		if s.wasActive && !s.pressed {
			s.update(r.style, dt, false)
		}
		s.pressed = false
	}
}

// Press is one held key for Frame.
type Press struct {
	ID    int
	Color colorful.Color
	X     float32
	Y     float32
	Width float32
}

// Frame runs a whole frame: clear, push every press, release the rest,
// prepare. The caller still renders.
func (r *Renderer) Frame(delta time.Duration, presses []Press) {
	r.Clear()
	for _, p := range presses {
		r.Push(p.ID, p.Color, p.X, p.Y, p.Width, delta)
	}
	r.UpdateInactive(delta)
	r.Prepare()
}

func (r *Renderer) index(id int) int {
	if id < 0 || id >= len(r.states) {
		panic(fmt.Sprintf("glow: key index %d out of range [0, %d)", id, len(r.states)))
	}
	return id
}

func seconds(d time.Duration) float32 {
	return float32(d.Seconds())
}
