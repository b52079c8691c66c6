package glow

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

type keys int

func (k keys) KeyCount() int { return int(k) }

var white = colorful.Color{R: 1, G: 1, B: 1}

const frame = 100 * time.Millisecond

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func newRenderer(n int, opts ...Option) (*Renderer, *MemoryPipeline) {
	p := NewMemoryPipeline()
	return New(p, keys(n), opts...), p
}

func TestPushHeldKeyAccumulates(t *testing.T) {
	r, p := newRenderer(2)

	r.Push(0, white, 0, 0, 10, frame)
	r.Push(0, white, 0, 0, 10, frame)

	if got := r.State(0).Time(); !approx(got, 0.6) {
		t.Errorf("Time() after two pushes = %v, want 0.6", got)
	}
	items := p.Instances().Items()
	if len(items) != 2 {
		t.Fatalf("instances = %d, want 2", len(items))
	}
	if !approx(items[1].Time, 0.6) {
		t.Errorf("instance Time = %v, want 0.6", items[1].Time)
	}
	if r.State(1).Active() {
		t.Error("untouched key is active")
	}
}

func TestPressRestartsClock(t *testing.T) {
	r, _ := newRenderer(1)

	r.Push(0, white, 0, 0, 10, 0)
	if got := r.State(0).Time(); got != 0 {
		t.Errorf("Time() on press with zero delta = %v, want 0", got)
	}

	prev := float32(0)
	for i := 0; i < 5; i++ {
		r.Push(0, white, 0, 0, 10, frame)
		r.UpdateInactive(frame)
		got := r.State(0).Time()
		if got <= prev {
			t.Fatalf("frame %d: Time() = %v, want > %v", i, got, prev)
		}
		prev = got
	}

	// Release, then press again: the burst starts over.
	r.UpdateInactive(frame)
	r.Push(0, white, 0, 0, 10, frame)
	if got := r.State(0).Time(); !approx(got, 0.3) {
		t.Errorf("Time() after re-press = %v, want 0.3", got)
	}
}

func TestReleaseResetsClock(t *testing.T) {
	r, _ := newRenderer(3)

	for i := 0; i < 10; i++ {
		r.Push(1, white, 0, 0, 10, frame)
		r.UpdateInactive(frame)
	}
	if got := r.State(1).Time(); !approx(got, 3.0) {
		t.Fatalf("Time() while held = %v, want 3.0", got)
	}

	r.UpdateInactive(frame)
	s := r.State(1)
	if s.Time() != 0 {
		t.Errorf("Time() after release = %v, want 0", s.Time())
	}
	if s.Active() {
		t.Error("Active() after release = true, want false")
	}
}

func TestUpdateInactiveKeepsKeysPushedThisFrame(t *testing.T) {
	r, _ := newRenderer(2)

	r.Push(0, white, 0, 0, 10, frame)
	r.Push(1, white, 20, 0, 10, frame)
	r.UpdateInactive(frame)

	r.Push(0, white, 0, 0, 10, frame)
	r.UpdateInactive(frame)

	if got := r.State(0).Time(); !approx(got, 0.6) {
		t.Errorf("held key Time() = %v, want 0.6", got)
	}
	if got := r.State(1).Time(); got != 0 {
		t.Errorf("released key Time() = %v, want 0", got)
	}
}

func TestPushGeometry(t *testing.T) {
	r, p := newRenderer(1)
	r.Push(0, white, 100, 50, 20, 0)

	in := p.Instances().Items()[0]
	if in.Size != [2]float32{500, 500} {
		t.Errorf("Size = %v, want [500 500]", in.Size)
	}
	want := [2]float32{100 - 250 + 10, 50 - 250}
	if in.Position != want {
		t.Errorf("Position = %v, want %v", in.Position, want)
	}
}

func TestPushOutOfRangePanics(t *testing.T) {
	r, _ := newRenderer(2)

	for _, id := range []int{-1, 2, 100} {
		func() {
			defer func() {
				rec := recover()
				if rec == nil {
					t.Errorf("Push(%d) did not panic", id)
					return
				}
				if msg, _ := rec.(string); !strings.Contains(msg, "out of range") {
					t.Errorf("Push(%d) panic = %v, want out of range", id, rec)
				}
			}()
			r.Push(id, white, 0, 0, 10, frame)
		}()
	}
}

func TestResize(t *testing.T) {
	r, _ := newRenderer(2)
	r.Push(1, white, 0, 0, 10, frame)

	r.Resize(keys(88))
	if r.Len() != 88 {
		t.Fatalf("Len() = %d, want 88", r.Len())
	}
	if s := r.State(1); s.Active() || s.Time() != 0 {
		t.Errorf("state after Resize = %+v, want resting", s)
	}
	r.Push(87, white, 0, 0, 10, frame)
}

func TestFrame(t *testing.T) {
	r, p := newRenderer(4)

	presses := []Press{
		{ID: 0, Color: white, X: 0, Width: 10},
		{ID: 3, Color: white, X: 30, Width: 10},
	}
	r.Frame(frame, presses)
	r.Frame(frame, presses[:1])

	if got := p.Instances().Len(); got != 1 {
		t.Errorf("instances after second frame = %d, want 1", got)
	}
	data, count := p.Staged()
	if count != 1 || len(data) != StrideTimed {
		t.Errorf("Staged() = %d bytes, %d instances, want %d bytes, 1 instance", len(data), count, StrideTimed)
	}
	if got := r.State(3).Time(); got != 0 {
		t.Errorf("released key Time() = %v, want 0", got)
	}
	if got := r.State(0).Time(); !approx(got, 0.6) {
		t.Errorf("held key Time() = %v, want 0.6", got)
	}
}

type recordingPass struct {
	instances []Instance
	stride    int
}

func (p *recordingPass) DrawInstances(data []byte, stride, count int) {
	p.stride = stride
	p.instances, _ = DecodeInstances(data, stride)
}

func TestRenderDeliversPreparedInstances(t *testing.T) {
	r, _ := newRenderer(2)

	pass := &recordingPass{}
	r.Render(pass)
	if pass.instances != nil {
		t.Error("Render() before any Prepare drew instances")
	}

	r.Frame(frame, []Press{{ID: 1, Color: white, X: 10, Y: 5, Width: 10}})
	r.Render(pass)

	if len(pass.instances) != 1 {
		t.Fatalf("drawn instances = %d, want 1", len(pass.instances))
	}
	if pass.stride != StrideTimed {
		t.Errorf("stride = %d, want %d", pass.stride, StrideTimed)
	}
	if !approx(pass.instances[0].Time, 0.3) {
		t.Errorf("drawn Time = %v, want 0.3", pass.instances[0].Time)
	}
}

func TestPulseStyleOmitsTime(t *testing.T) {
	r, p := newRenderer(1, WithStyle(Pulse{}))
	if p.Instances().Stride() != StrideUntimed {
		t.Errorf("Stride() = %d, want %d", p.Instances().Stride(), StrideUntimed)
	}

	r.Push(0, white, 0, 0, 10, 250*time.Millisecond)
	in := p.Instances().Items()[0]
	if in.Time != 0 {
		t.Errorf("pulse instance Time = %v, want 0", in.Time)
	}
	// A quarter period in: sin(pi/2) = 1.
	if !approx(in.Size[0], PulseBaseSize+PulseAmplitude) {
		t.Errorf("pulse Size = %v, want %v", in.Size[0], PulseBaseSize+PulseAmplitude)
	}
}
