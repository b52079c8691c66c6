package render

import (
	"testing"

	"github.com/tessro/keyglow/internal/config"
)

func TestPaletteCycles(t *testing.T) {
	schema := config.ResolveTheme(config.ThemeNeon)
	p := NewPalette(schema)

	if p.Len() != 6 {
		t.Fatalf("Len() = %d, want 6", p.Len())
	}
	for _, tt := range []struct{ key, entry int }{
		{0, 0}, {5, 5}, {6, 0}, {13, 1}, {87, 3}, {-1, 5},
	} {
		if got := p.Entry(tt.key); got != schema[tt.entry] {
			t.Errorf("Entry(%d) = %v, want entry %d %v", tt.key, got, tt.entry, schema[tt.entry])
		}
	}
}

func TestPaletteColor(t *testing.T) {
	p := NewPalette([]config.ColorSchemaV1{
		{Base: config.RGB{R: 255}, Dark: config.RGB{B: 255}},
	})

	if c := p.Color(3, false); c.R != 1 || c.B != 0 {
		t.Errorf("Color(3, false) = %v, want red", c)
	}
	if c := p.Color(3, true); c.B != 1 || c.R != 0 {
		t.Errorf("Color(3, true) = %v, want blue", c)
	}
}

func TestPaletteEmptyFallsBack(t *testing.T) {
	p := NewPalette(nil)
	if p.Len() != 6 {
		t.Errorf("Len() = %d, want 6", p.Len())
	}
	if got, want := p.Entry(0), config.ResolveTheme("")[0]; got != want {
		t.Errorf("Entry(0) = %v, want %v", got, want)
	}
}
