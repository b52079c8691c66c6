package config

// Field defaults. All of them are constants except the palette, which comes
// from the theme resolver.
const (
	DefaultAnimationSpeed   float32 = 400.0
	DefaultAnimationOffset  float32 = 0.0
	DefaultNoteLabels               = false
	DefaultSpeedMultiplier  float32 = 1.0
	DefaultAudioGain        float32 = 0.2
	DefaultRangeLow         uint8   = 21
	DefaultRangeHigh        uint8   = 108
	DefaultOutput                   = "Buildin Synth"
	DefaultSeparateChannels         = false
	DefaultVerticalGuides           = false
	DefaultHorizontalGuides         = false
	DefaultGlow                     = true
)

// Default returns a Document populated with defaults. theme selects the
// default palette and is usually read once from KEYGLOW_THEME by the caller.
func Default(theme string) *Document {
	waterfall := defaultWaterfall()
	playback := defaultPlayback()
	synth := defaultSynth()
	layout := defaultLayout()
	devices := defaultDevices()
	appearance := defaultAppearance(ResolveTheme(theme))

	return &Document{
		Waterfall:      WaterfallConfig{V1: &waterfall},
		Playback:       PlaybackConfig{V1: &playback},
		History:        HistoryConfig{V1: &HistoryV1{}},
		Synth:          SynthConfig{V1: &synth},
		KeyboardLayout: LayoutConfig{V1: &layout},
		Devices:        DevicesConfig{V1: &devices},
		Appearance:     AppearanceConfig{V1: &appearance},
	}
}

func defaultWaterfall() WaterfallV1 {
	return WaterfallV1{
		AnimationSpeed:  DefaultAnimationSpeed,
		AnimationOffset: DefaultAnimationOffset,
		NoteLabels:      DefaultNoteLabels,
	}
}

func defaultPlayback() PlaybackV1 {
	return PlaybackV1{SpeedMultiplier: DefaultSpeedMultiplier}
}

func defaultSynth() SynthV1 {
	return SynthV1{AudioGain: DefaultAudioGain}
}

func defaultLayout() LayoutV1 {
	return LayoutV1{Range: defaultRange()}
}

func defaultRange() KeyRangeV1 {
	return KeyRangeV1{Low: DefaultRangeLow, High: DefaultRangeHigh}
}

func defaultDevices() DevicesV1 {
	return DevicesV1{
		Output:           defaultOutput(),
		SeparateChannels: DefaultSeparateChannels,
	}
}

func defaultOutput() *string {
	out := DefaultOutput
	return &out
}

func defaultAppearance(palette []ColorSchemaV1) AppearanceV1 {
	return AppearanceV1{
		ColorSchema:          palette,
		BackgroundColor:      RGB{},
		VerticalGuidelines:   DefaultVerticalGuides,
		HorizontalGuidelines: DefaultHorizontalGuides,
		Glow:                 DefaultGlow,
	}
}
