package config

import (
	"errors"
	"fmt"
	"math"
)

// Validate checks the document for errors.
func (d *Document) Validate() error {
	var errs []error

	if err := d.Waterfall.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("waterfall: %w", err))
	}
	if err := d.Playback.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("playback: %w", err))
	}
	if err := d.History.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("history: %w", err))
	}
	if err := d.Synth.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("synth: %w", err))
	}
	if err := d.KeyboardLayout.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("keyboard_layout: %w", err))
	}
	if err := d.Devices.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("devices: %w", err))
	}
	if err := d.Appearance.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("appearance: %w", err))
	}

	return errors.Join(errs...)
}

var errNoVersion = errors.New("no schema version set")

// Validate checks WaterfallConfig for errors.
func (c *WaterfallConfig) Validate() error {
	if c.V1 == nil {
		return errNoVersion
	}
	if !finite(c.V1.AnimationSpeed) {
		return errors.New("animation_speed must be finite")
	}
	if !finite(c.V1.AnimationOffset) {
		return errors.New("animation_offset must be finite")
	}
	return nil
}

// Validate checks PlaybackConfig for errors.
func (c *PlaybackConfig) Validate() error {
	if c.V1 == nil {
		return errNoVersion
	}
	if !finite(c.V1.SpeedMultiplier) || c.V1.SpeedMultiplier <= 0 {
		return fmt.Errorf("speed_multiplier must be positive, got %v", c.V1.SpeedMultiplier)
	}
	return nil
}

// Validate checks HistoryConfig for errors.
func (c *HistoryConfig) Validate() error {
	if c.V1 == nil {
		return errNoVersion
	}
	return nil
}

// Validate checks SynthConfig for errors.
func (c *SynthConfig) Validate() error {
	if c.V1 == nil {
		return errNoVersion
	}
	if !finite(c.V1.AudioGain) || c.V1.AudioGain < 0 {
		return fmt.Errorf("audio_gain must be non-negative, got %v", c.V1.AudioGain)
	}
	return nil
}

// Validate checks LayoutConfig for errors.
func (c *LayoutConfig) Validate() error {
	if c.V1 == nil {
		return errNoVersion
	}
	r := c.V1.Range
	if r.High > 127 {
		return fmt.Errorf("range high %d is not a MIDI note", r.High)
	}
	if r.Low > r.High {
		return fmt.Errorf("range low %d is above high %d", r.Low, r.High)
	}
	return nil
}

// Validate checks DevicesConfig for errors.
func (c *DevicesConfig) Validate() error {
	if c.V1 == nil {
		return errNoVersion
	}
	// An empty name is how a file spells "no output"; in memory that is nil.
	if c.V1.Output != nil && *c.V1.Output == "" {
		return errors.New("output must be a device name or unset")
	}
	return nil
}

// Validate checks AppearanceConfig for errors.
func (c *AppearanceConfig) Validate() error {
	if c.V1 == nil {
		return errNoVersion
	}
	if len(c.V1.ColorSchema) == 0 {
		return errors.New("color_schema must have at least one entry")
	}
	return nil
}

func finite(f float32) bool {
	v := float64(f)
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
