package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/tessro/keyglow/internal/config"
)

// Colors
var (
	Primary   = lipgloss.Color("#D259DE") // Default theme magenta
	Accent    = lipgloss.Color("#5DBCFF") // Default theme blue
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	Border    = lipgloss.Color("#4B5563") // Light gray
	Text      = lipgloss.Color("#F9FAFB") // White
	TextMuted = lipgloss.Color("#9CA3AF") // Gray
	TextDim   = lipgloss.Color("#6B7280") // Darker gray

	WhiteKey = lipgloss.Color("#E5E7EB")
	BlackKey = lipgloss.Color("#111827")
)

// Text styles
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Text)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextMuted)

	Label = lipgloss.NewStyle().
		Foreground(TextDim)

	Highlight = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)
)

// Border styles
var (
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border)

	FocusedBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary)
)

// Swatch renders a block of the given color.
func Swatch(c config.RGB, width int) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Render(strings.Repeat(" ", width))
}

// PaletteRow renders base swatches above dark swatches.
func PaletteRow(schema []config.ColorSchemaV1, width int) string {
	var base, dark []string
	for _, e := range schema {
		base = append(base, Swatch(e.Base, width))
		dark = append(dark, Swatch(e.Dark, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, base...),
		lipgloss.JoinHorizontal(lipgloss.Top, dark...),
	)
}

// GlowCell renders one cell of glow for a linear RGBA instance color. HDR
// channels above 1 are clipped and the result is converted back to sRGB.
func GlowCell(color [4]float32, width int) string {
	lin := colorful.LinearRgb(
		clip(color[0]*color[3]),
		clip(color[1]*color[3]),
		clip(color[2]*color[3]),
	)
	return lipgloss.NewStyle().
		Background(lipgloss.Color(lin.Clamped().Hex())).
		Render(strings.Repeat(" ", width))
}

// Key renders a key cap.
func Key(black bool, pressed bool, width int) string {
	bg := WhiteKey
	if black {
		bg = BlackKey
	}
	if pressed {
		bg = Primary
	}
	return lipgloss.NewStyle().Background(bg).Render(strings.Repeat(" ", width))
}

func clip(f float32) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return float64(f)
}
