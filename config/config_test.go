package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg, err := Defaults()
	if err != nil {
		t.Fatalf("Defaults() error: %v", err)
	}

	if cfg.Logo.Size != 1250 {
		t.Errorf("logo size = %d, want 1250", cfg.Logo.Size)
	}
	if cfg.Physics.DistortionRadius != 3000 {
		t.Errorf("distortion radius = %v, want 3000", cfg.Physics.DistortionRadius)
	}
	if cfg.Physics.ActivityTicks != 300 {
		t.Errorf("activity ticks = %d, want 300", cfg.Physics.ActivityTicks)
	}
	if cfg.Derived.RadiusSquared != 9e6 {
		t.Errorf("radius squared = %v, want 9e6", cfg.Derived.RadiusSquared)
	}

	// #404040 tint
	want := 64.0 / 255
	if math.Abs(cfg.Derived.Tint.R-want) > 1e-9 || !cfg.Derived.TintValid {
		t.Errorf("tint = %+v, want %v per channel", cfg.Derived.Tint, want)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("physics:\n  max_displacement: 42\nlogo:\n  color: notacolor\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Physics.MaxDisplacement != 42 {
		t.Errorf("max displacement = %v, want 42", cfg.Physics.MaxDisplacement)
	}
	// Untouched fields keep their defaults
	if cfg.Physics.ReturnForce != 0.025 {
		t.Errorf("return force = %v, want 0.025", cfg.Physics.ReturnForce)
	}
	if cfg.Derived.Tint != White || cfg.Derived.TintValid {
		t.Errorf("invalid tint should fall back to white, got %+v", cfg.Derived.Tint)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Defaults()
	if err != nil {
		t.Fatal(err)
	}
	cfg.Physics.ForceStrength = 0.01

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML() error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.Physics.ForceStrength != 0.01 {
		t.Errorf("force strength = %v, want 0.01", loaded.Physics.ForceStrength)
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		fb     RGB
		want   RGB
		wantOK bool
	}{
		{"white with hash", "#ffffff", Black, RGB{1, 1, 1}, true},
		{"no hash", "000000", White, RGB{0, 0, 0}, true},
		{"upper case", "#FF0000", Black, RGB{1, 0, 0}, true},
		{"invalid tint falls back to white", "notacolor", White, White, false},
		{"invalid background falls back to black", "notacolor", Black, Black, false},
		{"short form rejected", "#fff", White, White, false},
		{"empty", "", Black, Black, false},
		{"trailing garbage", "#ffffff00", White, White, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseHex(tt.in, tt.fb)
			if ok != tt.wantOK {
				t.Errorf("ParseHex(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ParseHex(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRGBBytes(t *testing.T) {
	r, g, b := RGB{1, 0, 64.0 / 255}.Bytes()
	if r != 255 || g != 0 || b != 64 {
		t.Errorf("Bytes() = %d,%d,%d, want 255,0,64", r, g, b)
	}
}
