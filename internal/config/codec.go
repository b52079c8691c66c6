package config

import (
	"encoding"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
	kgerrors "github.com/tessro/keyglow/internal/errors"
)

// ParseErrorKind classifies a failed Load.
type ParseErrorKind int

const (
	// Malformed input could not be parsed into the schema at all.
	Malformed ParseErrorKind = iota
	// UnknownField input parsed but carried keys no known schema declares.
	UnknownField
)

func (k ParseErrorKind) String() string {
	switch k {
	case Malformed:
		return "malformed"
	case UnknownField:
		return "unknown field"
	default:
		return fmt.Sprintf("ParseErrorKind(%d)", int(k))
	}
}

// ParseError is returned by Load. It matches errors.Is against
// ErrMalformed or ErrUnknownField from the errors package.
type ParseError struct {
	Kind   ParseErrorKind
	Fields []string
	Err    error
}

func (e *ParseError) Error() string {
	switch {
	case e.Kind == UnknownField:
		return fmt.Sprintf("unknown config field: %s", strings.Join(e.Fields, ", "))
	case e.Err != nil:
		return fmt.Sprintf("malformed config: %v", e.Err)
	default:
		return "malformed config"
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *ParseError) Is(target error) bool {
	switch e.Kind {
	case Malformed:
		return target == kgerrors.ErrMalformed
	case UnknownField:
		return target == kgerrors.ErrUnknownField
	}
	return false
}

func malformed(format string, args ...any) *ParseError {
	return &ParseError{Kind: Malformed, Err: fmt.Errorf(format, args...)}
}

// Load decodes a TOML document. Keys that no section variant declares are
// rejected with UnknownField; absent sections and fields take their defaults,
// with the palette resolved from theme.
func Load(r io.Reader, theme string) (*Document, error) {
	var doc Document
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, &ParseError{Kind: Malformed, Err: err}
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		fields := make([]string, len(undecoded))
		for i, key := range undecoded {
			fields[i] = key.String()
		}
		return nil, &ParseError{Kind: UnknownField, Fields: fields}
	}
	if fields := miscasedKeys(md); len(fields) > 0 {
		return nil, &ParseError{Kind: UnknownField, Fields: fields}
	}

	if err := doc.applyDefaults(md, theme); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Save encodes doc as TOML. Load(Save(doc)) yields an equal document.
func Save(w io.Writer, doc *Document) error {
	out := *doc
	// Make an explicit "no output" survive the trip.
	if out.Devices.V1 != nil && out.Devices.V1.Output == nil {
		devices := *out.Devices.V1
		none := ""
		devices.Output = &none
		out.Devices.V1 = &devices
	}

	encoder := toml.NewEncoder(w)
	encoder.Indent = "  "
	if err := encoder.Encode(out); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// applyDefaults fills every section and field the input left out.
func (d *Document) applyDefaults(md toml.MetaData, theme string) error {
	present := func(section string) (bool, func(keys ...string) bool) {
		defined := func(keys ...string) bool {
			return md.IsDefined(append([]string{section, VersionV1}, keys...)...)
		}
		return md.IsDefined(section), defined
	}

	// Waterfall
	if ok, defined := present("waterfall"); !ok {
		d.Waterfall = WaterfallConfig{V1: ptr(defaultWaterfall())}
	} else if d.Waterfall.V1 == nil {
		return malformed("waterfall: missing schema version")
	} else {
		v := d.Waterfall.V1
		if !defined("animation_speed") {
			v.AnimationSpeed = DefaultAnimationSpeed
		}
		if !defined("animation_offset") {
			v.AnimationOffset = DefaultAnimationOffset
		}
		if !defined("note_labels") {
			v.NoteLabels = DefaultNoteLabels
		}
	}

	// Playback
	if ok, defined := present("playback"); !ok {
		d.Playback = PlaybackConfig{V1: ptr(defaultPlayback())}
	} else if d.Playback.V1 == nil {
		return malformed("playback: missing schema version")
	} else if !defined("speed_multiplier") {
		d.Playback.V1.SpeedMultiplier = DefaultSpeedMultiplier
	}

	// History has no defaulted fields
	if ok, _ := present("history"); !ok {
		d.History = HistoryConfig{V1: &HistoryV1{}}
	} else if d.History.V1 == nil {
		return malformed("history: missing schema version")
	}

	// Synth
	if ok, defined := present("synth"); !ok {
		d.Synth = SynthConfig{V1: ptr(defaultSynth())}
	} else if d.Synth.V1 == nil {
		return malformed("synth: missing schema version")
	} else if !defined("audio_gain") {
		d.Synth.V1.AudioGain = DefaultAudioGain
	}

	// Keyboard layout
	if ok, defined := present("keyboard_layout"); !ok {
		d.KeyboardLayout = LayoutConfig{V1: ptr(defaultLayout())}
	} else if d.KeyboardLayout.V1 == nil {
		return malformed("keyboard_layout: missing schema version")
	} else if !defined("range") {
		d.KeyboardLayout.V1.Range = defaultRange()
	} else if !defined("range", "low") || !defined("range", "high") {
		return malformed("keyboard_layout: range needs both low and high")
	}

	// Devices
	if ok, defined := present("devices"); !ok {
		d.Devices = DevicesConfig{V1: ptr(defaultDevices())}
	} else if d.Devices.V1 == nil {
		return malformed("devices: missing schema version")
	} else {
		v := d.Devices.V1
		switch {
		case !defined("output"):
			v.Output = defaultOutput()
		case v.Output != nil && *v.Output == "":
			v.Output = nil
		}
		if !defined("separate_channels") {
			v.SeparateChannels = DefaultSeparateChannels
		}
	}

	// Appearance
	if ok, defined := present("appearance"); !ok {
		d.Appearance = AppearanceConfig{V1: ptr(defaultAppearance(ResolveTheme(theme)))}
	} else if d.Appearance.V1 == nil {
		return malformed("appearance: missing schema version")
	} else {
		v := d.Appearance.V1
		if !defined("color_schema") {
			v.ColorSchema = ResolveTheme(theme)
		}
		if !defined("background_color") {
			v.BackgroundColor = RGB{}
		}
		if !defined("vertical_guidelines") {
			v.VerticalGuidelines = DefaultVerticalGuides
		}
		if !defined("horizontal_guidelines") {
			v.HorizontalGuidelines = DefaultHorizontalGuides
		}
		if !defined("glow") {
			v.Glow = DefaultGlow
		}
	}

	return nil
}

// miscasedKeys returns keys that only match a schema field when case is
// ignored. The decoder accepts them, but IsDefined does not, so their values
// would be replaced by defaults. Each offending prefix is reported once.
func miscasedKeys(md toml.MetaData) []string {
	var fields []string
	seen := make(map[string]bool)
	for _, key := range md.Keys() {
		typ := reflect.TypeOf(Document{})
		for i, name := range key {
			typ = schemaType(typ)
			if typ.Kind() != reflect.Struct {
				break
			}
			field, ok := tomlField(typ, name)
			if !ok {
				bad := key[:i+1].String()
				if !seen[bad] {
					seen[bad] = true
					fields = append(fields, bad)
				}
				break
			}
			typ = field.Type
		}
	}
	return fields
}

// schemaType strips pointers and slices. Text values such as RGB are leaves.
func schemaType(typ reflect.Type) reflect.Type {
	for typ.Kind() == reflect.Pointer || typ.Kind() == reflect.Slice {
		typ = typ.Elem()
	}
	if reflect.PointerTo(typ).Implements(textUnmarshaler) {
		return reflect.TypeOf("")
	}
	return typ
}

var textUnmarshaler = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

func tomlField(typ reflect.Type, name string) (reflect.StructField, bool) {
	for i := range typ.NumField() {
		f := typ.Field(i)
		tag, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
		if tag == "" {
			tag = f.Name
		}
		if tag == name {
			return f, true
		}
	}
	return reflect.StructField{}, false
}

func ptr[T any](v T) *T {
	return &v
}
