// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/user/vidplay/pkg/adapters/codecs"
	"github.com/user/vidplay/pkg/adapters/filesink"
	"github.com/user/vidplay/pkg/adapters/rgbconverter"
	"github.com/user/vidplay/pkg/playback"
	"github.com/user/vidplay/pkg/ports"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "VIDPLAY_"

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("config: invalid value")

// Config represents the full configuration for vidplay.
type Config struct {
	LogLevel string `yaml:"log_level"`

	// Presentation
	ScaleWidth    int    `yaml:"scale_width"`  // 0 keeps the native width
	ScaleHeight   int    `yaml:"scale_height"` // 0 keeps the native height
	Scaler        string `yaml:"scaler"`
	Alignment     int    `yaml:"surface_alignment"`
	MaxFrameBytes int    `yaml:"max_frame_bytes"`

	Codecs   CodecConfig    `yaml:"codecs"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	S3       S3Config       `yaml:"s3"`
	Window   WindowConfig   `yaml:"window"`
}

// CodecConfig selects decoders.
type CodecConfig struct {
	// Disable lists four-CCs that are never decoded.
	Disable []string `yaml:"disable"`
}

// SnapshotConfig controls frame dumps.
type SnapshotConfig struct {
	Dir               string `yaml:"dir"`
	Every             int    `yaml:"every"`
	Max               int    `yaml:"max"`
	Width             int    `yaml:"width"`
	Caption           bool   `yaml:"caption"`
	CaptionColor      string `yaml:"caption_color"`
	CaptionBackground string `yaml:"caption_background"`
	CaptionPadding    int    `yaml:"caption_padding"`
}

// S3Config controls remote input resolution.
type S3Config struct {
	Region   string `yaml:"region"`
	CacheDir string `yaml:"cache_dir"`
}

// WindowConfig controls the SDL player window.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Loop   bool   `yaml:"loop"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		LogLevel:      "info",
		Scaler:        string(rgbconverter.ScalerBiLinear),
		Alignment:     1,
		MaxFrameBytes: playback.DefaultMaxFrameBytes,

		Snapshot: SnapshotConfig{
			Dir:            "./frames",
			Every:          1,
			Caption:        true,
			CaptionColor:   "#ffffff",
			CaptionPadding: 3,
		},
		S3: S3Config{
			CacheDir: "./.vidplay-cache",
		},
		Window: WindowConfig{
			Title:  "vidplay",
			Width:  960,
			Height: 540,
		},
	}
}

// LoadFromFile loads configuration from a YAML file over the defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// LoadDotEnv loads variables from .env files into the process environment.
// Missing files are ignored; existing variables are not overwritten.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from VIDPLAY_* environment variables.
func (c *Config) ApplyEnv() error {
	return c.applyEnv(os.LookupEnv)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	var errs []error

	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	num := func(name string, dst *int) {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
			return
		}
		*dst = n
	}
	flag := func(name string, dst *bool) {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
			return
		}
		*dst = b
	}

	str("LOG_LEVEL", &c.LogLevel)
	num("SCALE_WIDTH", &c.ScaleWidth)
	num("SCALE_HEIGHT", &c.ScaleHeight)
	str("SCALER", &c.Scaler)
	num("SURFACE_ALIGNMENT", &c.Alignment)
	num("MAX_FRAME_BYTES", &c.MaxFrameBytes)

	if v, ok := lookup(EnvPrefix + "DISABLE_CODECS"); ok {
		c.Codecs.Disable = splitList(v)
	}

	str("SNAPSHOT_DIR", &c.Snapshot.Dir)
	num("SNAPSHOT_EVERY", &c.Snapshot.Every)
	num("SNAPSHOT_MAX", &c.Snapshot.Max)
	num("SNAPSHOT_WIDTH", &c.Snapshot.Width)
	flag("SNAPSHOT_CAPTION", &c.Snapshot.Caption)

	// The AWS variable is the fallback, as the SDK reads it too.
	if v, ok := lookup("AWS_DEFAULT_REGION"); ok && c.S3.Region == "" {
		c.S3.Region = v
	}
	str("S3_REGION", &c.S3.Region)
	str("S3_CACHE_DIR", &c.S3.CacheDir)

	str("WINDOW_TITLE", &c.Window.Title)
	num("WINDOW_WIDTH", &c.Window.Width)
	num("WINDOW_HEIGHT", &c.Window.Height)
	flag("LOOP", &c.Window.Loop)

	return errors.Join(errs...)
}

// splitList splits a comma separated list. Four-CCs are padded to four
// characters so "png" matches "png ".
func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if len(item) < 4 {
			item += strings.Repeat(" ", 4-len(item))
		}
		out = append(out, item)
	}
	return out
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []error
	if (c.ScaleWidth == 0) != (c.ScaleHeight == 0) {
		errs = append(errs, fmt.Errorf("%w: scale_width and scale_height must be set together", ErrInvalid))
	}
	if c.ScaleWidth < 0 || c.ScaleHeight < 0 {
		errs = append(errs, fmt.Errorf("%w: negative scale size", ErrInvalid))
	}
	if _, ok := ports.LookupLogLevel(c.LogLevel); !ok {
		errs = append(errs, fmt.Errorf("%w: unknown log level %q", ErrInvalid, c.LogLevel))
	}
	if c.Alignment < 1 {
		errs = append(errs, fmt.Errorf("%w: surface_alignment must be at least 1", ErrInvalid))
	}
	switch rgbconverter.Scaler(c.Scaler) {
	case rgbconverter.ScalerNearest, rgbconverter.ScalerBiLinear, rgbconverter.ScalerCatmullRom, "":
	default:
		errs = append(errs, fmt.Errorf("%w: unknown scaler %q", ErrInvalid, c.Scaler))
	}
	if c.Snapshot.Every < 0 || c.Snapshot.Max < 0 || c.Snapshot.Width < 0 {
		errs = append(errs, fmt.Errorf("%w: negative snapshot option", ErrInvalid))
	}
	return errors.Join(errs...)
}

// Level returns the parsed log level.
func (c Config) Level() ports.LogLevel {
	return ports.ParseLogLevel(c.LogLevel)
}

// ToSessionOptions converts Config to playback.Options. The sink is left to
// the caller.
func (c Config) ToSessionOptions() playback.Options {
	return playback.Options{
		ScaledWidth:   c.ScaleWidth,
		ScaledHeight:  c.ScaleHeight,
		MaxFrameBytes: c.MaxFrameBytes,
	}
}

// ToCodecOptions converts Config to codecs.Options.
func (c Config) ToCodecOptions() codecs.Options {
	return codecs.Options{Disable: c.Codecs.Disable}
}

// ToSinkOptions converts the snapshot section to filesink.Options.
func (c Config) ToSinkOptions() filesink.Options {
	opts := filesink.Options{
		Every:     c.Snapshot.Every,
		MaxFrames: c.Snapshot.Max,
		Width:     c.Snapshot.Width,
		NoCaption: !c.Snapshot.Caption,
	}
	if c.Snapshot.CaptionColor != "" {
		opts.Style = ports.TextStyle{
			Color:   ParseColor(c.Snapshot.CaptionColor),
			Padding: c.Snapshot.CaptionPadding,
		}
		if c.Snapshot.CaptionBackground != "" {
			opts.Style.Background = ParseColor(c.Snapshot.CaptionBackground)
		}
	}
	return opts
}

// ParseColor parses "#rrggbb" or "#rrggbbaa". Malformed values yield black.
func ParseColor(hex string) color.Color {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.Black
	}

	var ch [4]uint8
	ch[3] = 255
	for i := 0; i < len(hex)/2; i++ {
		ch[i] = hexValue(hex[2*i])<<4 | hexValue(hex[2*i+1])
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}
}

func hexValue(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}
