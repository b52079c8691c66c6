package config

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Document is the root configuration structure.
//
// Every section is a tagged variant over its schema version. Exactly one
// variant field is set on a loaded document; the TOML table name of the
// variant ("V1") is the tag.
type Document struct {
	Waterfall      WaterfallConfig  `toml:"waterfall" json:"waterfall"`
	Playback       PlaybackConfig   `toml:"playback" json:"playback"`
	History        HistoryConfig    `toml:"history" json:"history"`
	Synth          SynthConfig      `toml:"synth" json:"synth"`
	KeyboardLayout LayoutConfig     `toml:"keyboard_layout" json:"keyboard_layout"`
	Devices        DevicesConfig    `toml:"devices" json:"devices"`
	Appearance     AppearanceConfig `toml:"appearance" json:"appearance"`
}

// WaterfallConfig holds falling-note animation settings.
type WaterfallConfig struct {
	V1 *WaterfallV1 `toml:"V1,omitempty" json:"V1,omitempty"`
}

// WaterfallV1 is the first waterfall schema.
type WaterfallV1 struct {
	AnimationSpeed  float32 `toml:"animation_speed" json:"animation_speed"`
	AnimationOffset float32 `toml:"animation_offset" json:"animation_offset"`
	NoteLabels      bool    `toml:"note_labels" json:"note_labels"`
}

// PlaybackConfig holds playback settings.
type PlaybackConfig struct {
	V1 *PlaybackV1 `toml:"V1,omitempty" json:"V1,omitempty"`
}

// PlaybackV1 is the first playback schema.
type PlaybackV1 struct {
	SpeedMultiplier float32 `toml:"speed_multiplier" json:"speed_multiplier"`
}

// HistoryConfig remembers state between sessions.
type HistoryConfig struct {
	V1 *HistoryV1 `toml:"V1,omitempty" json:"V1,omitempty"`
}

// HistoryV1 is the first history schema.
type HistoryV1 struct {
	LastOpenedSong *string `toml:"last_opened_song,omitempty" json:"last_opened_song,omitempty"`
}

// SynthConfig holds built-in synthesizer settings.
type SynthConfig struct {
	V1 *SynthV1 `toml:"V1,omitempty" json:"V1,omitempty"`
}

// SynthV1 is the first synth schema.
type SynthV1 struct {
	SoundfontPath *string `toml:"soundfont_path,omitempty" json:"soundfont_path,omitempty"`
	AudioGain     float32 `toml:"audio_gain" json:"audio_gain"`
}

// LayoutConfig holds the playable keyboard range.
type LayoutConfig struct {
	V1 *LayoutV1 `toml:"V1,omitempty" json:"V1,omitempty"`
}

// LayoutV1 is the first keyboard layout schema.
type LayoutV1 struct {
	Range KeyRangeV1 `toml:"range" json:"range"`
}

// KeyRangeV1 is an inclusive range of MIDI note numbers.
type KeyRangeV1 struct {
	Low  uint8 `toml:"low" json:"low"`
	High uint8 `toml:"high" json:"high"`
}

// DevicesConfig holds MIDI routing settings.
type DevicesConfig struct {
	V1 *DevicesV1 `toml:"V1,omitempty" json:"V1,omitempty"`
}

// DevicesV1 is the first devices schema.
//
// A nil Output means "no output"; it is written as an empty string because
// an omitted output key loads as the built-in synth.
type DevicesV1 struct {
	Output           *string `toml:"output,omitempty" json:"output,omitempty"`
	Input            *string `toml:"input,omitempty" json:"input,omitempty"`
	SeparateChannels bool    `toml:"separate_channels" json:"separate_channels"`
}

// AppearanceConfig holds colors and decorations.
type AppearanceConfig struct {
	V1 *AppearanceV1 `toml:"V1,omitempty" json:"V1,omitempty"`
}

// AppearanceV1 is the first appearance schema.
type AppearanceV1 struct {
	ColorSchema          []ColorSchemaV1 `toml:"color_schema" json:"color_schema"`
	BackgroundColor      RGB             `toml:"background_color" json:"background_color"`
	VerticalGuidelines   bool            `toml:"vertical_guidelines" json:"vertical_guidelines"`
	HorizontalGuidelines bool            `toml:"horizontal_guidelines" json:"horizontal_guidelines"`
	Glow                 bool            `toml:"glow" json:"glow"`
}

// ColorSchemaV1 is one palette entry: the base color for white keys and the
// dark color for black keys.
type ColorSchemaV1 struct {
	Base RGB `toml:"base" json:"base"`
	Dark RGB `toml:"dark" json:"dark"`
}

// RGB is an 8-bit sRGB color, stored as "#rrggbb".
type RGB struct {
	R, G, B uint8
}

// Color converts to a go-colorful color in sRGB space.
func (c RGB) Color() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// Hex returns the "#rrggbb" form.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c RGB) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

func (c *RGB) UnmarshalText(text []byte) error {
	col, err := colorful.Hex(string(text))
	if err != nil {
		return fmt.Errorf("invalid color %q: want #rrggbb", string(text))
	}
	c.R, c.G, c.B = col.RGB255()
	return nil
}

// Section tags.
const (
	VersionV1 = "V1"
)

// Version reports the active schema tag, or "" when no variant is set.
func (c WaterfallConfig) Version() string { return tag(c.V1 != nil) }

func (c PlaybackConfig) Version() string { return tag(c.V1 != nil) }

func (c HistoryConfig) Version() string { return tag(c.V1 != nil) }

func (c SynthConfig) Version() string { return tag(c.V1 != nil) }

func (c LayoutConfig) Version() string { return tag(c.V1 != nil) }

func (c DevicesConfig) Version() string { return tag(c.V1 != nil) }

func (c AppearanceConfig) Version() string { return tag(c.V1 != nil) }

func tag(v1 bool) string {
	if v1 {
		return VersionV1
	}
	return ""
}

// Latest returns the section in its newest schema. Consumers read settings
// through these accessors so that adding V2 only needs an upgrade function
// from V1 here. A section with no variant yields its defaults.
func (c WaterfallConfig) Latest() WaterfallV1 {
	if c.V1 == nil {
		return defaultWaterfall()
	}
	return *c.V1
}

func (c PlaybackConfig) Latest() PlaybackV1 {
	if c.V1 == nil {
		return defaultPlayback()
	}
	return *c.V1
}

func (c HistoryConfig) Latest() HistoryV1 {
	if c.V1 == nil {
		return HistoryV1{}
	}
	return *c.V1
}

func (c SynthConfig) Latest() SynthV1 {
	if c.V1 == nil {
		return defaultSynth()
	}
	return *c.V1
}

func (c LayoutConfig) Latest() LayoutV1 {
	if c.V1 == nil {
		return defaultLayout()
	}
	return *c.V1
}

func (c DevicesConfig) Latest() DevicesV1 {
	if c.V1 == nil {
		return defaultDevices()
	}
	return *c.V1
}

func (c AppearanceConfig) Latest() AppearanceV1 {
	if c.V1 == nil {
		return defaultAppearance(ResolveTheme(ThemeDefault))
	}
	return *c.V1
}
