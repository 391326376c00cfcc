// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatal(err)
	}
	light, dark := Default().CheckerColors()
	if light != 0xFFCCCCCC || dark != 0xFF999999 {
		t.Errorf("colors = %#08x %#08x", light, dark)
	}
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
engine: gif
export:
  dir: out
  maxWidth: 640
  manifest: true
play:
  overlay: true
  checker:
    cell: 16
    light: "#FFFFFF"
`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Engine != "gif" || cfg.Export.Dir != "out" || cfg.Export.MaxWidth != 640 || !cfg.Export.Manifest {
		t.Errorf("export = %+v", cfg.Export)
	}
	if cfg.Export.MaxHeight != 1080 || cfg.Export.Pattern != "frame_%04d.bmp" {
		t.Error("unset fields should keep defaults")
	}
	if !cfg.Play.Overlay || cfg.Play.Checker.Cell != 16 {
		t.Errorf("play = %+v", cfg.Play)
	}
	if light, dark := cfg.CheckerColors(); light != 0xFFFFFFFF || dark != 0xFF999999 {
		t.Errorf("colors = %#08x %#08x", light, dark)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		invalid bool
	}{
		{"unknown key", "colour: red", false},
		{"bad yaml", "export: [", false},
		{"zero cell", "play: {checker: {cell: 0}}", true},
		{"bad color", "play: {checker: {light: nope}}", true},
		{"translucent", "play: {checker: {dark: '#80999999'}}", true},
		{"negative size", "export: {width: -1}", true},
		{"export width only", "export: {width: 640}", true},
		{"export height only", "export: {height: 480}", true},
		{"play width only", "play: {width: 640}", true},
		{"empty pattern", "export: {pattern: ''}", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("want error")
			}
			if got := errors.Is(err, ErrInvalid); got != tt.invalid {
				t.Errorf("errors.Is(ErrInvalid) = %v for %v", got, err)
			}
		})
	}
}

func TestValidateSizePairs(t *testing.T) {
	cfg, err := Parse([]byte("export: {width: 640, height: 480}\nplay: {width: 320, height: 240}"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Export.Width != 640 || cfg.Play.Height != 240 {
		t.Errorf("sizes = %+v %+v", cfg.Export, cfg.Play)
	}

	cfg.Play.Height = 0
	if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("play width without height = %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frameplay.yaml")
	if err := os.WriteFile(path, []byte("engine: rlottie\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Engine != "rlottie" {
		t.Errorf("Engine = %q", cfg.Engine)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file = %v", err)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{"#CCCCCC", 0xFFCCCCCC, false},
		{"999999", 0xFF999999, false},
		{"#80FF0000", 0x80FF0000, false},
		{" #ffffff ", 0xFFFFFFFF, false},
		{"#FFF", 0, true},
		{"#GGGGGG", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseColor(%q) = %#08x, %v", tt.in, got, err)
		}
	}
}
