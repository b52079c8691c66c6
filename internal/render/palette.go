// Package render maps configuration onto what the glow engine draws.
package render

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/tessro/keyglow/internal/config"
)

// Palette assigns colors to keys cyclically.
type Palette struct {
	entries []config.ColorSchemaV1
}

// NewPalette copies schema. An empty schema falls back to the default theme
// so that every key still gets a color.
func NewPalette(schema []config.ColorSchemaV1) Palette {
	if len(schema) == 0 {
		return Palette{entries: config.ResolveTheme(config.ThemeDefault)}
	}
	entries := make([]config.ColorSchemaV1, len(schema))
	copy(entries, schema)
	return Palette{entries: entries}
}

// Len returns the number of entries.
func (p Palette) Len() int {
	return len(p.entries)
}

// Entry returns the palette entry for key index i (i mod Len).
func (p Palette) Entry(i int) config.ColorSchemaV1 {
	n := len(p.entries)
	return p.entries[((i%n)+n)%n]
}

// Color returns the base color of entry i, or the dark one for black keys.
func (p Palette) Color(i int, dark bool) colorful.Color {
	e := p.Entry(i)
	if dark {
		return e.Dark.Color()
	}
	return e.Base.Color()
}
