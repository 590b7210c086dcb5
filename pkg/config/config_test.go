package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/user/vidplay/pkg/playback"
	"github.com/user/vidplay/pkg/ports"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.ScaleWidth != 0 || cfg.ScaleHeight != 0 {
		t.Error("default scale should be native")
	}
	if cfg.Alignment != 1 {
		t.Errorf("Alignment = %d, want 1", cfg.Alignment)
	}
	if cfg.MaxFrameBytes != playback.DefaultMaxFrameBytes {
		t.Errorf("MaxFrameBytes = %d", cfg.MaxFrameBytes)
	}
	if cfg.Level() != ports.LevelInfo {
		t.Errorf("Level = %v", cfg.Level())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should be valid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vidplay.yaml")
	data := []byte(`
log_level: debug
scale_width: 320
scale_height: 180
scaler: nearest
surface_alignment: 64
codecs:
  disable: ["png "]
snapshot:
  dir: /tmp/shots
  every: 5
s3:
  region: eu-west-1
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.Level() != ports.LevelDebug {
		t.Errorf("Level = %v", cfg.Level())
	}
	if cfg.ScaleWidth != 320 || cfg.ScaleHeight != 180 || cfg.Scaler != "nearest" || cfg.Alignment != 64 {
		t.Errorf("presentation fields not loaded: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.Codecs.Disable, []string{"png "}) {
		t.Errorf("Disable = %q", cfg.Codecs.Disable)
	}
	if cfg.Snapshot.Dir != "/tmp/shots" || cfg.Snapshot.Every != 5 {
		t.Errorf("snapshot = %+v", cfg.Snapshot)
	}
	// Unset fields keep their defaults.
	if !cfg.Snapshot.Caption || cfg.Window.Title != "vidplay" || cfg.S3.CacheDir == "" {
		t.Errorf("defaults lost: %+v", cfg)
	}
	if cfg.S3.Region != "eu-west-1" {
		t.Errorf("Region = %q", cfg.S3.Region)
	}
}

func TestLoadFromFile_Errors(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("scale_width: [1, 2"), 0644)
	if _, err := LoadFromFile(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"VIDPLAY_LOG_LEVEL":         "warn",
		"VIDPLAY_SCALE_WIDTH":       "640",
		"VIDPLAY_SCALE_HEIGHT":      "360",
		"VIDPLAY_SURFACE_ALIGNMENT": "32",
		"VIDPLAY_DISABLE_CODECS":    "png, jpeg,,mp4a",
		"VIDPLAY_SNAPSHOT_CAPTION":  "false",
		"VIDPLAY_LOOP":              "true",
		"AWS_DEFAULT_REGION":        "us-east-2",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Defaults()
	if err := cfg.applyEnv(lookup); err != nil {
		t.Fatalf("applyEnv failed: %v", err)
	}

	if cfg.Level() != ports.LevelWarn || cfg.ScaleWidth != 640 || cfg.ScaleHeight != 360 || cfg.Alignment != 32 {
		t.Errorf("unexpected config %+v", cfg)
	}
	if want := []string{"png ", "jpeg", "mp4a"}; !reflect.DeepEqual(cfg.Codecs.Disable, want) {
		t.Errorf("Disable = %q, want %q", cfg.Codecs.Disable, want)
	}
	if cfg.Snapshot.Caption || !cfg.Window.Loop {
		t.Error("boolean overrides not applied")
	}
	if cfg.S3.Region != "us-east-2" {
		t.Errorf("Region = %q", cfg.S3.Region)
	}

	env["VIDPLAY_S3_REGION"] = "ap-northeast-1"
	cfg.applyEnv(lookup)
	if cfg.S3.Region != "ap-northeast-1" {
		t.Errorf("VIDPLAY_S3_REGION should win, got %q", cfg.S3.Region)
	}
}

func TestApplyEnv_InvalidValues(t *testing.T) {
	env := map[string]string{
		"VIDPLAY_SCALE_WIDTH": "wide",
		"VIDPLAY_LOOP":        "sometimes",
	}
	cfg := Defaults()
	err := cfg.applyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if cfg.ScaleWidth != 0 || cfg.Window.Loop {
		t.Error("invalid values must not be applied")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	os.WriteFile(path, []byte("VIDPLAY_TEST_DOTENV=from-file\n"), 0644)
	t.Cleanup(func() { os.Unsetenv("VIDPLAY_TEST_DOTENV") })

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("LoadDotEnv failed: %v", err)
	}
	if got := os.Getenv("VIDPLAY_TEST_DOTENV"); got != "from-file" {
		t.Errorf("VIDPLAY_TEST_DOTENV = %q", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"half scale", func(c *Config) { c.ScaleWidth = 100 }},
		{"negative scale", func(c *Config) { c.ScaleWidth, c.ScaleHeight = -1, -1 }},
		{"unknown log level", func(c *Config) { c.LogLevel = "verbose" }},
		{"zero alignment", func(c *Config) { c.Alignment = 0 }},
		{"unknown scaler", func(c *Config) { c.Scaler = "lanczos" }},
		{"negative every", func(c *Config) { c.Snapshot.Every = -2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestConversions(t *testing.T) {
	cfg := Defaults()
	cfg.ScaleWidth, cfg.ScaleHeight = 320, 240
	cfg.Codecs.Disable = []string{"raw "}
	cfg.Snapshot.Every = 3
	cfg.Snapshot.CaptionBackground = "#00000080"

	so := cfg.ToSessionOptions()
	if so.ScaledWidth != 320 || so.ScaledHeight != 240 || so.MaxFrameBytes != cfg.MaxFrameBytes || so.Sink != nil {
		t.Errorf("session options = %+v", so)
	}
	if co := cfg.ToCodecOptions(); !reflect.DeepEqual(co.Disable, []string{"raw "}) {
		t.Errorf("codec options = %+v", co)
	}

	sink := cfg.ToSinkOptions()
	if sink.Every != 3 || sink.NoCaption || sink.Style.Padding != 3 {
		t.Errorf("sink options = %+v", sink)
	}
	if sink.Style.Background != (color.NRGBA{A: 0x80}) {
		t.Errorf("caption background = %v", sink.Style.Background)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.Color
	}{
		{"#ff8000", color.NRGBA{R: 255, G: 128, A: 255}},
		{"00FF00", color.NRGBA{G: 255, A: 255}},
		{"#10203040", color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}},
		{"", color.Black},
		{"#abc", color.Black},
	}
	for _, tt := range tests {
		if got := ParseColor(tt.in); got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
