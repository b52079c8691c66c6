package render

import (
	"fmt"
	"time"

	"github.com/tessro/keyglow/internal/config"
	"github.com/tessro/keyglow/internal/piano"
	"github.com/tessro/keyglow/internal/render/glow"
)

// DefaultKeyWidth is the slot width, in layout units, of a headless scene.
const DefaultKeyWidth = 40

// Lit is one emitted glow and the note it belongs to.
type Lit struct {
	Note     uint8         `json:"note"`
	Instance glow.Instance `json:"instance"`
}

// Scene drives a glow renderer from held MIDI notes using the layout and
// appearance of a config document.
type Scene struct {
	layout   piano.Range
	palette  Palette
	glowOn   bool
	keyWidth float32

	pipeline *glow.MemoryPipeline
	renderer *glow.Renderer
}

// NewScene builds a scene for doc with the named glow style.
func NewScene(doc *config.Document, styleName string, keyWidth float32) (*Scene, error) {
	style, ok := glow.StyleByName(styleName)
	if !ok {
		return nil, fmt.Errorf("unknown glow style %q", styleName)
	}

	s := &Scene{
		keyWidth: keyWidth,
		pipeline: glow.NewMemoryPipeline(),
	}
	s.apply(doc)
	s.renderer = glow.New(s.pipeline, s.layout, glow.WithStyle(style))
	return s, nil
}

func (s *Scene) apply(doc *config.Document) {
	appearance := doc.Appearance.Latest()
	s.layout = piano.FromConfig(doc.KeyboardLayout.Latest().Range)
	s.palette = NewPalette(appearance.ColorSchema)
	s.glowOn = appearance.Glow
}

// Reconfigure applies a reloaded document. Key clocks are kept when the
// range is unchanged and reset otherwise. It reports whether the engine
// was resized.
func (s *Scene) Reconfigure(doc *config.Document) bool {
	old := s.layout
	s.apply(doc)
	if s.layout == old {
		return false
	}
	s.renderer.Resize(s.layout)
	return true
}

// Layout returns the active key range.
func (s *Scene) Layout() piano.Range {
	return s.layout
}

// Renderer exposes the engine.
func (s *Scene) Renderer() *glow.Renderer {
	return s.renderer
}

// Pipeline exposes the staged frame.
func (s *Scene) Pipeline() *glow.MemoryPipeline {
	return s.pipeline
}

// Frame advances every key by delta with notes held and returns the emitted
// glows in note order. Notes outside the range are skipped and a repeated
// note is held once. With glow disabled no key counts as held.
func (s *Scene) Frame(delta time.Duration, notes []uint8) []Lit {
	var (
		presses []glow.Press
		held    []uint8
		seen    [128]bool
	)
	if s.glowOn {
		for _, note := range notes {
			i, ok := s.layout.Index(note)
			if !ok || seen[note&0x7f] {
				continue
			}
			seen[note&0x7f] = true
			x, y, w := s.layout.Geometry(i, s.keyWidth)
			presses = append(presses, glow.Press{
				ID:    i,
				Color: s.palette.Color(i, piano.IsBlack(note)),
				X:     x,
				Y:     y,
				Width: w,
			})
			held = append(held, note)
		}
	}

	s.renderer.Frame(delta, presses)

	items := s.pipeline.Instances().Items()
	lit := make([]Lit, len(items))
	for i, in := range items {
		lit[i] = Lit{Note: held[i], Instance: in}
	}
	return lit
}
