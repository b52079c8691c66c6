package glow

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Style computes how a key's glow evolves. Implementations are pure
// functions of the animation clock.
type Style interface {
	// Advance returns the new clock value after dt seconds. pressed is this
	// frame's activation, wasActive the previous frame's.
	Advance(t, dt float32, pressed, wasActive bool) float32
	// Size is the side length of the glow square.
	Size(t float32) float32
	// Color maps the key's sRGB color to the linear RGBA written to the
	// instance.
	Color(t float32, c colorful.Color) [4]float32
	// EmitsTime reports whether instances carry the clock for the shader.
	EmitsTime() bool
}

// Burst parameters.
const (
	BurstRate      float32 = 3.0
	BurstBaseSize  float32 = 350.0
	BurstAmplitude float32 = 150.0
	BurstSizeDecay float32 = 2.0
	BurstFlash     float32 = 0.5
	BurstFlashRate float32 = 5.0
	BurstAlpha     float32 = 0.8
)

// Burst restarts on every press: the glow starts oversized and flashes,
// then settles toward the base size while the key is held. Releasing
// resets the clock with no fade-out.
type Burst struct{}

func (Burst) Advance(t, dt float32, pressed, wasActive bool) float32 {
	if !pressed {
		return 0
	}
	if !wasActive {
		t = 0
	}
	return t + dt*BurstRate
}

func (Burst) Size(t float32) float32 {
	return BurstBaseSize + BurstAmplitude*exp32(-t*BurstSizeDecay)
}

func (Burst) Color(t float32, c colorful.Color) [4]float32 {
	r, g, b := c.LinearRgb()
	flash := exp32(-t*BurstFlashRate) * BurstFlash

	// Bounded so that overlapping additive draws cannot blow out.
	return [4]float32{
		min(float32(r)*1.3+flash, 1.5),
		min(float32(g)*1.2+flash*0.8, 1.3),
		min(float32(b)*1.1+flash*0.5, 1.2),
		BurstAlpha,
	}
}

func (Burst) EmitsTime() bool { return true }

// Pulse parameters.
const (
	PulseRate      float32 = 1.0
	PulseBaseSize  float32 = 350.0
	PulseAmplitude float32 = 50.0
	PulseAlpha     float32 = 0.6
)

// Pulse is the earlier glow: a steady sinusoidal breathing while held, with
// the key color passed through unchanged.
type Pulse struct{}

func (Pulse) Advance(t, dt float32, pressed, _ bool) float32 {
	if !pressed {
		return 0
	}
	return t + dt*PulseRate
}

func (Pulse) Size(t float32) float32 {
	return PulseBaseSize + PulseAmplitude*float32(math.Sin(2*math.Pi*float64(t)))
}

func (Pulse) Color(_ float32, c colorful.Color) [4]float32 {
	r, g, b := c.LinearRgb()
	return [4]float32{float32(r), float32(g), float32(b), PulseAlpha}
}

func (Pulse) EmitsTime() bool { return false }

// Style names accepted by StyleByName.
const (
	StyleBurst = "burst"
	StylePulse = "pulse"
)

// StyleNames lists the available presets.
func StyleNames() []string {
	return []string{StyleBurst, StylePulse}
}

// StyleByName looks up a preset.
func StyleByName(name string) (Style, bool) {
	switch name {
	case StyleBurst, "":
		return Burst{}, true
	case StylePulse:
		return Pulse{}, true
	}
	return nil, false
}

func exp32(x float32) float32 {
	return float32(math.Exp(float64(x)))
}
