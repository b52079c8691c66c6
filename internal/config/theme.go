package config

import "os"

// Theme presets for the default palette.
const (
	ThemeDefault = "default"
	ThemeInferno = "inferno"
	ThemeNeon    = "neon"
	ThemeGolden  = "golden"
)

// ThemeEnvVar selects the default palette.
const ThemeEnvVar = "KEYGLOW_THEME"

// ThemeNames lists the presets in display order.
func ThemeNames() []string {
	return []string{ThemeDefault, ThemeInferno, ThemeNeon, ThemeGolden}
}

// ThemeFromEnv reads the theme name from the environment. Call it once at
// startup and pass the result down.
func ThemeFromEnv() string {
	return os.Getenv(ThemeEnvVar)
}

// ResolveTheme returns a fresh copy of the named 6-entry palette. Unknown
// names, including "", resolve to the default palette.
func ResolveTheme(name string) []ColorSchemaV1 {
	var src []ColorSchemaV1
	switch name {
	case ThemeInferno:
		src = infernoPalette
	case ThemeNeon:
		src = neonPalette
	case ThemeGolden:
		src = goldenPalette
	default:
		src = defaultPalette
	}
	out := make([]ColorSchemaV1, len(src))
	copy(out, src)
	return out
}

var defaultPalette = []ColorSchemaV1{
	{Base: RGB{210, 89, 222}, Dark: RGB{125, 69, 134}},
	{Base: RGB{93, 188, 255}, Dark: RGB{48, 124, 255}},
	{Base: RGB{255, 126, 51}, Dark: RGB{192, 73, 0}},
	{Base: RGB{51, 255, 102}, Dark: RGB{0, 168, 2}},
	{Base: RGB{255, 51, 129}, Dark: RGB{48, 124, 255}},
	{Base: RGB{210, 89, 222}, Dark: RGB{125, 69, 134}},
}

// Amber and gold fire colors.
var infernoPalette = []ColorSchemaV1{
	{Base: RGB{255, 170, 50}, Dark: RGB{200, 120, 20}},
	{Base: RGB{255, 140, 30}, Dark: RGB{200, 100, 10}},
	{Base: RGB{255, 200, 80}, Dark: RGB{200, 150, 40}},
	{Base: RGB{255, 120, 20}, Dark: RGB{180, 80, 10}},
	{Base: RGB{255, 180, 60}, Dark: RGB{200, 130, 30}},
	{Base: RGB{255, 220, 100}, Dark: RGB{200, 160, 50}},
}

// Cyan and magenta.
var neonPalette = []ColorSchemaV1{
	{Base: RGB{0, 255, 255}, Dark: RGB{0, 150, 180}},
	{Base: RGB{255, 0, 255}, Dark: RGB{180, 0, 150}},
	{Base: RGB{0, 255, 150}, Dark: RGB{0, 180, 100}},
	{Base: RGB{255, 100, 255}, Dark: RGB{180, 50, 180}},
	{Base: RGB{100, 200, 255}, Dark: RGB{50, 120, 200}},
	{Base: RGB{200, 0, 255}, Dark: RGB{120, 0, 180}},
}

// Gold and cream.
var goldenPalette = []ColorSchemaV1{
	{Base: RGB{255, 215, 0}, Dark: RGB{180, 150, 0}},
	{Base: RGB{255, 255, 220}, Dark: RGB{200, 180, 140}},
	{Base: RGB{255, 200, 100}, Dark: RGB{200, 140, 50}},
	{Base: RGB{255, 240, 180}, Dark: RGB{200, 170, 100}},
	{Base: RGB{255, 180, 50}, Dark: RGB{180, 120, 20}},
	{Base: RGB{255, 230, 150}, Dark: RGB{200, 160, 80}},
}
