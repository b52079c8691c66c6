package config

import (
	"math"
	"strings"
	"testing"
)

func TestValidateDefault(t *testing.T) {
	for _, theme := range ThemeNames() {
		if err := Default(theme).Validate(); err != nil {
			t.Errorf("Default(%q).Validate() error = %v", theme, err)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *Document)
		want   string
	}{
		{"missing version", func(d *Document) { d.Synth.V1 = nil }, "synth: no schema version set"},
		{"nan speed", func(d *Document) { d.Waterfall.V1.AnimationSpeed = float32(math.NaN()) }, "animation_speed"},
		{"zero multiplier", func(d *Document) { d.Playback.V1.SpeedMultiplier = 0 }, "speed_multiplier"},
		{"negative gain", func(d *Document) { d.Synth.V1.AudioGain = -1 }, "audio_gain"},
		{"inverted range", func(d *Document) { d.KeyboardLayout.V1.Range = KeyRangeV1{Low: 90, High: 40} }, "above high"},
		{"range past midi", func(d *Document) { d.KeyboardLayout.V1.Range.High = 200 }, "not a MIDI note"},
		{"empty output name", func(d *Document) { d.Devices.V1.Output = ptr("") }, "devices: output"},
		{"empty palette", func(d *Document) { d.Appearance.V1.ColorSchema = nil }, "color_schema"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Default(ThemeDefault)
			tt.mutate(doc)
			err := doc.Validate()
			if err == nil {
				t.Fatal("Validate() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	doc := Default(ThemeDefault)
	doc.Playback.V1.SpeedMultiplier = -2
	doc.Appearance.V1.ColorSchema = nil

	err := doc.Validate()
	if err == nil {
		t.Fatal("Validate() error = nil, want error")
	}
	for _, want := range []string{"playback:", "appearance:"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() error = %q, want it to contain %q", err, want)
		}
	}
}
