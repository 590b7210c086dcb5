// Package filesink provides a file-based frame snapshot sink.
package filesink

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"github.com/user/vidplay/pkg/ports"
)

// Options controls which frames are written.
type Options struct {
	// Every writes every Nth frame. Values below 1 mean every frame.
	Every int
	// MaxFrames stops writing after this many files. 0 means unlimited.
	MaxFrames int
	// Width scales snapshots to this width, keeping aspect ratio. 0 keeps the frame size.
	Width int
	// NoCaption disables the index/timecode overlay.
	NoCaption bool
	// Style is the caption style. A nil Color selects white on translucent black.
	Style ports.TextStyle
}

// Sink saves annotated frame snapshots as PNG files.
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
	opts     Options
	written  int
}

// New creates a new file sink writing into baseDir.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer, opts Options) *Sink {
	if opts.Every < 1 {
		opts.Every = 1
	}
	if opts.Style.Color == nil {
		opts.Style = ports.TextStyle{
			Color:      color.White,
			Background: color.RGBA{A: 160},
			Padding:    3,
		}
	}
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
		opts:     opts,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// Written returns the number of files written so far.
func (s *Sink) Written() int {
	return s.written
}

// Path returns the file path used for the frame at index.
func (s *Sink) Path(index int) string {
	return filepath.Join(s.baseDir, fmt.Sprintf("frame-%05d.png", index))
}

// SaveFrame writes img when index is selected by the sink options.
func (s *Sink) SaveFrame(index int, pts float64, img image.Image) error {
	if index%s.opts.Every != 0 {
		return nil
	}
	if s.opts.MaxFrames > 0 && s.written >= s.opts.MaxFrames {
		return nil
	}

	if s.written == 0 {
		if err := s.fs.MkdirAll(s.baseDir); err != nil {
			return fmt.Errorf("create snapshot dir: %w", err)
		}
	}

	out := img
	if s.opts.Width > 0 && img.Bounds().Dx() != s.opts.Width {
		b := img.Bounds()
		h := b.Dy() * s.opts.Width / b.Dx()
		if h < 1 {
			h = 1
		}
		out = s.renderer.Resize(out, s.opts.Width, h)
	}
	if !s.opts.NoCaption {
		out = s.renderer.Annotate(out, fmt.Sprintf("#%d  t=%.2fs", index, pts), s.opts.Style)
	}

	data, err := s.renderer.EncodePNG(out)
	if err != nil {
		return fmt.Errorf("encode frame %d: %w", index, err)
	}
	if err := s.fs.WriteFile(s.Path(index), data); err != nil {
		return fmt.Errorf("write frame %d: %w", index, err)
	}
	s.written++
	return nil
}

// Ensure Sink implements ports.FrameSink
var _ ports.FrameSink = (*Sink)(nil)
