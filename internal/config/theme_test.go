package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolveTheme(t *testing.T) {
	tests := []struct {
		name      string
		firstBase string
		lastDark  string
	}{
		{ThemeDefault, "#d259de", "#7d4586"},
		{ThemeInferno, "#ffaa32", "#c8a032"},
		{ThemeNeon, "#00ffff", "#7800b4"},
		{ThemeGolden, "#ffd700", "#c8a050"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveTheme(tt.name)
			if len(got) != 6 {
				t.Fatalf("len(ResolveTheme(%q)) = %d, want 6", tt.name, len(got))
			}
			if hex := got[0].Base.Hex(); hex != tt.firstBase {
				t.Errorf("first base = %s, want %s", hex, tt.firstBase)
			}
			if hex := got[5].Dark.Hex(); hex != tt.lastDark {
				t.Errorf("last dark = %s, want %s", hex, tt.lastDark)
			}
		})
	}
}

func TestResolveThemeFallback(t *testing.T) {
	want := ResolveTheme(ThemeDefault)
	for _, name := range []string{"", "anything-else", "NEON", " neon"} {
		if diff := cmp.Diff(want, ResolveTheme(name)); diff != "" {
			t.Errorf("ResolveTheme(%q) mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestResolveThemeReturnsCopy(t *testing.T) {
	p := ResolveTheme(ThemeNeon)
	p[0].Base = RGB{1, 1, 1}

	if got := ResolveTheme(ThemeNeon)[0].Base; got != (RGB{0, 255, 255}) {
		t.Errorf("preset was mutated through a returned palette: %v", got)
	}
}

func TestThemeFromEnv(t *testing.T) {
	t.Setenv(ThemeEnvVar, ThemeInferno)
	if got := ThemeFromEnv(); got != ThemeInferno {
		t.Errorf("ThemeFromEnv() = %q, want %q", got, ThemeInferno)
	}
}

func TestDefaultUsesTheme(t *testing.T) {
	doc := Default(ThemeInferno)
	if diff := cmp.Diff(ResolveTheme(ThemeInferno), doc.Appearance.V1.ColorSchema); diff != "" {
		t.Errorf("Default(inferno) palette mismatch (-want +got):\n%s", diff)
	}
}

func TestRGBText(t *testing.T) {
	var c RGB
	if err := c.UnmarshalText([]byte("#0A80fF")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if c != (RGB{10, 128, 255}) {
		t.Errorf("UnmarshalText() = %v, want {10 128 255}", c)
	}
	text, _ := c.MarshalText()
	if string(text) != "#0a80ff" {
		t.Errorf("MarshalText() = %s, want #0a80ff", text)
	}
	if err := c.UnmarshalText([]byte("0a80ff")); err == nil {
		t.Error("UnmarshalText() without # error = nil, want error")
	}
}
