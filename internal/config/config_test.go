package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/sortstep/internal/sortstep"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Algorithm != "bubble" {
		t.Errorf("expected algorithm bubble, got %s", cfg.Algorithm)
	}
	if cfg.Delays.Element != 600*time.Millisecond {
		t.Errorf("expected element delay 600ms, got %v", cfg.Delays.Element)
	}
	if cfg.Delays.Structural != 800*time.Millisecond {
		t.Errorf("expected structural delay 800ms, got %v", cfg.Delays.Structural)
	}
	if cfg.NotifyTTL != 3*time.Second {
		t.Errorf("expected notify ttl 3s, got %v", cfg.NotifyTTL)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("scenario-quick")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Algorithm != "quick" {
		t.Errorf("expected quick, got %s", cfg.Algorithm)
	}
	if len(cfg.List) != 4 {
		t.Errorf("expected 4 elements, got %d", len(cfg.List))
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(presets))
	}
	if presets[0] != "duplicates" {
		t.Errorf("expected sorted names, got %v", presets)
	}
}

func TestPresetsValid(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := DefaultConfig()
		cfg.Merge(GetPreset(name))
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
		if len(cfg.List) < sortstep.MinLength {
			t.Errorf("preset %s: list too short to sort", name)
		}
	}
	if n := len(GetPreset("max").List); n != sortstep.MaxLength {
		t.Errorf("expected max preset to hold %d elements, got %d", sortstep.MaxLength, n)
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sortstep.yaml")
	cfg := DefaultConfig()
	cfg.Algorithm = "merge"
	cfg.List = []int{9, 4, 1}
	cfg.Delays.Element = 250 * time.Millisecond

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Algorithm != "merge" || len(loaded.List) != 3 {
		t.Errorf("unexpected round trip: %+v", loaded)
	}
	if loaded.Delays.Element != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %v", loaded.Delays.Element)
	}
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("algorithm: quick\ndelays:\n  element: 100ms\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Algorithm != "quick" {
		t.Errorf("expected quick, got %s", cfg.Algorithm)
	}
	if cfg.Delays.Element != 100*time.Millisecond {
		t.Errorf("expected 100ms, got %v", cfg.Delays.Element)
	}
	if cfg.Delays.Structural != DefaultStructural {
		t.Errorf("expected default structural delay, got %v", cfg.Delays.Structural)
	}
}

func TestResolve_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	if err := os.WriteFile(path, []byte("algorithm: selection\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Resolve("scenario-bubble", path)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Algorithm != "selection" {
		t.Errorf("file should override preset, got %s", cfg.Algorithm)
	}
	if len(cfg.List) != 5 {
		t.Errorf("preset list should survive, got %v", cfg.List)
	}

	if _, err := Resolve("nonexistent", ""); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestMerge_DoesNotAlias(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Merge(GetPreset("scenario-merge"))
	cfg.List[0] = 99
	if GetPreset("scenario-merge").List[0] != 4 {
		t.Error("merge must copy the preset list")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Config)
		want error
	}{
		{"value too small", func(c *Config) { c.List = []int{0, 5} }, sortstep.ErrValueRange},
		{"value too large", func(c *Config) { c.List = []int{101} }, sortstep.ErrValueRange},
		{"list too long", func(c *Config) { c.List = make([]int, 26) }, sortstep.ErrListFull},
		{"size zero", func(c *Config) { c.GenerateSize = 0 }, sortstep.ErrSizeRange},
		{"size too large", func(c *Config) { c.GenerateSize = 26 }, sortstep.ErrSizeRange},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.edit(cfg)
		err := cfg.Validate()
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}
}
