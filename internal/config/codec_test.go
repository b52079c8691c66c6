package config

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	kgerrors "github.com/tessro/keyglow/internal/errors"
)

func roundTrip(t *testing.T, doc *Document) *Document {
	t.Helper()

	var buf bytes.Buffer
	if err := Save(&buf, doc); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := Load(&buf, ThemeDefault)
	if err != nil {
		t.Fatalf("Load() error = %v\n%s", err, buf.String())
	}
	return loaded
}

func TestRoundTripDefault(t *testing.T) {
	for _, theme := range ThemeNames() {
		t.Run(theme, func(t *testing.T) {
			doc := Default(theme)
			if diff := cmp.Diff(doc, roundTrip(t, doc)); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRoundTripCustom(t *testing.T) {
	song := "/music/chopin/op10no4.mid"
	soundfont := "/sf2/grand.sf2"
	input := "Digital Piano MIDI 1"

	doc := &Document{
		Waterfall: WaterfallConfig{V1: &WaterfallV1{
			AnimationSpeed:  512.5,
			AnimationOffset: -0.25,
			NoteLabels:      true,
		}},
		Playback: PlaybackConfig{V1: &PlaybackV1{SpeedMultiplier: 0.75}},
		History:  HistoryConfig{V1: &HistoryV1{LastOpenedSong: &song}},
		Synth:    SynthConfig{V1: &SynthV1{SoundfontPath: &soundfont, AudioGain: 0.35}},
		KeyboardLayout: LayoutConfig{V1: &LayoutV1{
			Range: KeyRangeV1{Low: 36, High: 96},
		}},
		Devices: DevicesConfig{V1: &DevicesV1{
			Output:           nil,
			Input:            &input,
			SeparateChannels: true,
		}},
		Appearance: AppearanceConfig{V1: &AppearanceV1{
			ColorSchema: []ColorSchemaV1{
				{Base: RGB{1, 2, 3}, Dark: RGB{250, 251, 252}},
			},
			BackgroundColor:      RGB{16, 16, 24},
			VerticalGuidelines:   true,
			HorizontalGuidelines: true,
			Glow:                 false,
		}},
	}

	if diff := cmp.Diff(doc, roundTrip(t, doc)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEmptyUsesDefaults(t *testing.T) {
	doc, err := Load(strings.NewReader(""), ThemeNeon)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(Default(ThemeNeon), doc); diff != "" {
		t.Errorf("Load(\"\") mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingFieldsUseDefaults(t *testing.T) {
	input := `
[waterfall.V1]
note_labels = true

[playback.V1]

[synth.V1]
soundfont_path = "/sf2/piano.sf2"

[devices.V1]
input = "Keystation"

[appearance.V1]
glow = false
`
	doc, err := Load(strings.NewReader(input), ThemeGolden)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	w := doc.Waterfall.Latest()
	if w.AnimationSpeed != DefaultAnimationSpeed {
		t.Errorf("AnimationSpeed = %v, want %v", w.AnimationSpeed, DefaultAnimationSpeed)
	}
	if !w.NoteLabels {
		t.Error("NoteLabels = false, want true")
	}
	if got := doc.Playback.Latest().SpeedMultiplier; got != DefaultSpeedMultiplier {
		t.Errorf("SpeedMultiplier = %v, want %v", got, DefaultSpeedMultiplier)
	}

	s := doc.Synth.Latest()
	if s.AudioGain != DefaultAudioGain {
		t.Errorf("AudioGain = %v, want %v", s.AudioGain, DefaultAudioGain)
	}
	if s.SoundfontPath == nil || *s.SoundfontPath != "/sf2/piano.sf2" {
		t.Errorf("SoundfontPath = %v, want /sf2/piano.sf2", s.SoundfontPath)
	}

	r := doc.KeyboardLayout.Latest().Range
	if r.Low != 21 || r.High != 108 {
		t.Errorf("Range = %+v, want {21 108}", r)
	}

	d := doc.Devices.Latest()
	if d.Output == nil || *d.Output != DefaultOutput {
		t.Errorf("Output = %v, want %q", d.Output, DefaultOutput)
	}
	if d.Input == nil || *d.Input != "Keystation" {
		t.Errorf("Input = %v, want Keystation", d.Input)
	}

	a := doc.Appearance.Latest()
	if a.Glow {
		t.Error("Glow = true, want false")
	}
	if diff := cmp.Diff(ResolveTheme(ThemeGolden), a.ColorSchema); diff != "" {
		t.Errorf("ColorSchema mismatch (-want +got):\n%s", diff)
	}
	if a.BackgroundColor != (RGB{}) {
		t.Errorf("BackgroundColor = %v, want black", a.BackgroundColor)
	}

	if doc.History.V1 == nil || doc.History.V1.LastOpenedSong != nil {
		t.Errorf("History = %+v, want empty V1", doc.History.V1)
	}
}

func TestLoadExplicitNoOutput(t *testing.T) {
	doc, err := Load(strings.NewReader("[devices.V1]\noutput = \"\"\n"), ThemeDefault)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if doc.Devices.V1.Output != nil {
		t.Errorf("Output = %q, want nil", *doc.Devices.V1.Output)
	}
}

func TestRoundTripOutputForms(t *testing.T) {
	tests := []struct {
		name   string
		output *string
	}{
		{"none", nil},
		{"named", ptr("FluidSynth")},
		{"default", ptr(DefaultOutput)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Default(ThemeDefault)
			doc.Devices.V1.Output = tt.output
			if err := doc.Validate(); err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if diff := cmp.Diff(doc, roundTrip(t, doc)); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}

	// The empty name is the file spelling of "none" and never valid in memory.
	doc := Default(ThemeDefault)
	doc.Devices.V1.Output = ptr("")
	if err := doc.Validate(); err == nil {
		t.Error("Validate() with empty output name error = nil, want error")
	}
}

func TestLoadUnknownField(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
	}{
		{"top level", "volume = 3\n", "volume"},
		{"unknown section", "[midi]\nport = 1\n", "midi"},
		{"in section", "[waterfall]\nspeed = 2.0\n", "waterfall.speed"},
		{"in variant", "[waterfall.V1]\nanimation_speed = 1.0\nblur = true\n", "waterfall.V1.blur"},
		{"future variant", "[playback.V2]\nspeed_multiplier = 1.0\n", "playback.V2"},
		{"in range", "[keyboard_layout.V1.range]\nlow = 1\nhigh = 2\nmid = 3\n", "keyboard_layout.V1.range.mid"},
		{"in palette", "[[appearance.V1.color_schema]]\nbase = \"#ffffff\"\ndark = \"#000000\"\nglow = \"#123456\"\n", "appearance.V1.color_schema.glow"},
		{"section case", "[Waterfall.V1]\nanimation_speed = 1.0\n", "Waterfall"},
		{"variant case", "[waterfall.v1]\nanimation_speed = 1.0\n", "waterfall.v1"},
		{"field case", "[waterfall.V1]\nAnimation_Speed = 1.0\n", "waterfall.V1.Animation_Speed"},
		{"palette field case", "[[appearance.V1.color_schema]]\nBase = \"#ffffff\"\ndark = \"#000000\"\n", "appearance.V1.color_schema.Base"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.input), ThemeDefault)
			if err == nil {
				t.Fatal("Load() error = nil, want UnknownField")
			}
			if !errors.Is(err, kgerrors.ErrUnknownField) {
				t.Fatalf("Load() error = %v, want ErrUnknownField", err)
			}
			if errors.Is(err, kgerrors.ErrMalformed) {
				t.Error("UnknownField error also matches ErrMalformed")
			}

			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("Load() error type = %T, want *ParseError", err)
			}
			found := false
			for _, f := range parseErr.Fields {
				if f == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("Fields = %v, want to contain %q", parseErr.Fields, tt.field)
			}
		})
	}
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"syntax", "[waterfall.V1\n"},
		{"wrong type", "[waterfall.V1]\nnote_labels = \"yes\"\n"},
		{"u8 overflow", "[keyboard_layout.V1.range]\nlow = 21\nhigh = 300\n"},
		{"bad color", "[appearance.V1]\nbackground_color = \"purple\"\n"},
		{"no version", "[synth]\n"},
		{"half range", "[keyboard_layout.V1.range]\nlow = 21\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.input), ThemeDefault)
			if err == nil {
				t.Fatal("Load() error = nil, want Malformed")
			}
			if !errors.Is(err, kgerrors.ErrMalformed) {
				t.Errorf("Load() error = %v, want ErrMalformed", err)
			}
			var parseErr *ParseError
			if errors.As(err, &parseErr) && parseErr.Kind != Malformed {
				t.Errorf("Kind = %v, want %v", parseErr.Kind, Malformed)
			}
		})
	}
}

func TestSaveWritesVersionTables(t *testing.T) {
	var buf bytes.Buffer
	if err := Save(&buf, Default(ThemeDefault)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"[waterfall.V1]",
		"[keyboard_layout.V1.range]",
		"[[appearance.V1.color_schema]]",
		`base = "#d259de"`,
		`output = "Buildin Synth"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Save() output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "last_opened_song") {
		t.Errorf("Save() wrote an absent optional:\n%s", out)
	}
}

func TestSaveDoesNotMutateInput(t *testing.T) {
	doc := Default(ThemeDefault)
	doc.Devices.V1.Output = nil

	var buf bytes.Buffer
	if err := Save(&buf, doc); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if doc.Devices.V1.Output != nil {
		t.Error("Save() changed the caller's Output")
	}
}

func TestLatestOnEmptySection(t *testing.T) {
	var doc Document
	if got := doc.Waterfall.Latest().AnimationSpeed; got != DefaultAnimationSpeed {
		t.Errorf("AnimationSpeed = %v, want %v", got, DefaultAnimationSpeed)
	}
	if got := len(doc.Appearance.Latest().ColorSchema); got != 6 {
		t.Errorf("len(ColorSchema) = %d, want 6", got)
	}
	if got := doc.Devices.Version(); got != "" {
		t.Errorf("Version() = %q, want empty", got)
	}
	if got := Default("").Devices.Version(); got != VersionV1 {
		t.Errorf("Version() = %q, want %q", got, VersionV1)
	}
}
