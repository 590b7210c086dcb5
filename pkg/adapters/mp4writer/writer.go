// Package mp4writer writes synthetic test-pattern MP4 files.
// The output is a fragmented MP4 with one video track and one AAC track,
// readable by the mp4container backend.
package mp4writer

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"

	"github.com/Eyevinn/mp4ff/aac"
	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/vidplay/pkg/ports"
)

// Video codecs the writer can produce.
const (
	CodecRaw  = "raw "
	CodecJPEG = "jpeg"
)

// aacFrameSamples is the number of PCM samples carried by one AAC-LC frame.
const aacFrameSamples = 1024

// silentAACFrame is an AAC-LC stereo frame that decodes to silence.
var silentAACFrame = []byte{0x21, 0x10, 0x04, 0x60, 0x8c, 0x1c}

var (
	// ErrNoFrames is returned when Frames is not positive.
	ErrNoFrames = errors.New("mp4writer: no frames to write")

	// ErrInvalidSize is returned for non-positive or oversized dimensions.
	ErrInvalidSize = errors.New("mp4writer: invalid frame size")

	// ErrUnknownCodec is returned for codecs the writer cannot produce.
	ErrUnknownCodec = errors.New("mp4writer: unknown codec")
)

// Options configures the generated file.
type Options struct {
	Frames      int
	Width       int
	Height      int
	FPS         int
	Codec       string // CodecRaw or CodecJPEG
	SampleRate  int
	JPEGQuality int

	// SkipVideo and SkipAudio omit a track, producing files that fail stream selection.
	SkipVideo bool
	SkipAudio bool
}

// DefaultOptions returns a small raw-video file with AAC audio.
func DefaultOptions() Options {
	return Options{
		Frames:      10,
		Width:       64,
		Height:      48,
		FPS:         25,
		Codec:       CodecRaw,
		SampleRate:  48000,
		JPEGQuality: 90,
	}
}

// Writer writes generated files through a FileSystem.
type Writer struct {
	fs     ports.FileSystem
	logger ports.Logger
}

// New creates a new Writer.
func New(fs ports.FileSystem, logger ports.Logger) *Writer {
	return &Writer{
		fs:     fs,
		logger: logger.WithComponent("mp4writer"),
	}
}

// Write generates a file and stores it at path.
func (w *Writer) Write(path string, opts Options) error {
	data, err := Build(opts)
	if err != nil {
		return err
	}
	if err := w.fs.WriteFile(path, data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	w.logger.Info("Wrote %d frames (%dx%d %s) to %s", opts.Frames, opts.Width, opts.Height, opts.Codec, path)
	return nil
}

// Build returns the encoded MP4 file.
func Build(opts Options) ([]byte, error) {
	if opts.Frames <= 0 {
		return nil, ErrNoFrames
	}
	if opts.Width <= 0 || opts.Height <= 0 || opts.Width > 0xffff || opts.Height > 0xffff {
		return nil, ErrInvalidSize
	}
	if opts.Codec != CodecRaw && opts.Codec != CodecJPEG {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, opts.Codec)
	}
	if opts.FPS <= 0 {
		opts.FPS = 25
	}
	if opts.SampleRate <= 0 {
		opts.SampleRate = 48000
	}
	if opts.JPEGQuality <= 0 {
		opts.JPEGQuality = 90
	}

	videoTimescale := uint32(opts.FPS) * 1000
	frameDur := uint32(1000)

	init := mp4.CreateEmptyInit()
	var trackIDs []uint32
	var videoID, audioID uint32

	if !opts.SkipVideo {
		init.AddEmptyTrack(videoTimescale, "video", "und")
		trak := init.Moov.Traks[len(init.Moov.Traks)-1]
		videoID = trak.Tkhd.TrackID

		entry := mp4.CreateVisualSampleEntryBox(opts.Codec, uint16(opts.Width), uint16(opts.Height),
			&mp4.PaspBox{HSpacing: 1, VSpacing: 1})
		trak.Mdia.Minf.Stbl.Stsd.AddChild(entry)
		trak.Tkhd.Width = mp4.Fixed32(opts.Width << 16)
		trak.Tkhd.Height = mp4.Fixed32(opts.Height << 16)
		trackIDs = append(trackIDs, videoID)
	}

	if !opts.SkipAudio {
		init.AddEmptyTrack(uint32(opts.SampleRate), "audio", "und")
		trak := init.Moov.Traks[len(init.Moov.Traks)-1]
		audioID = trak.Tkhd.TrackID
		if err := trak.SetAACDescriptor(aac.AAClc, opts.SampleRate); err != nil {
			return nil, fmt.Errorf("set aac descriptor: %w", err)
		}
		trackIDs = append(trackIDs, audioID)
	}

	var buf bytes.Buffer

	ftyp := mp4.NewFtyp("isom", 0x200, []string{"isom", "iso6", "mp41"})
	if err := ftyp.Encode(&buf); err != nil {
		return nil, fmt.Errorf("encode ftyp: %w", err)
	}
	if err := init.Moov.Encode(&buf); err != nil {
		return nil, fmt.Errorf("encode moov: %w", err)
	}

	audioWritten := 0
	for i := 0; i < opts.Frames; i++ {
		frag, err := mp4.CreateMultiTrackFragment(uint32(i+1), trackIDs)
		if err != nil {
			return nil, fmt.Errorf("create fragment: %w", err)
		}

		if !opts.SkipVideo {
			payload, err := encodeFrame(TestPattern(opts.Width, opts.Height, i), opts)
			if err != nil {
				return nil, fmt.Errorf("encode frame %d: %w", i, err)
			}
			sample := mp4.FullSample{
				Sample: mp4.Sample{
					Flags: mp4.SyncSampleFlags,
					Size:  uint32(len(payload)),
					Dur:   frameDur,
				},
				DecodeTime: uint64(i) * uint64(frameDur),
				Data:       payload,
			}
			if err := frag.AddFullSampleToTrack(sample, videoID); err != nil {
				return nil, fmt.Errorf("add video sample %d: %w", i, err)
			}
		}

		if !opts.SkipAudio {
			// Audio samples starting before the end of this video frame.
			audioEnd := ((i + 1) * opts.SampleRate / opts.FPS) / aacFrameSamples
			if audioEnd <= audioWritten {
				audioEnd = audioWritten + 1
			}
			for ; audioWritten < audioEnd; audioWritten++ {
				sample := mp4.FullSample{
					Sample: mp4.Sample{
						Flags: mp4.SyncSampleFlags,
						Size:  uint32(len(silentAACFrame)),
						Dur:   aacFrameSamples,
					},
					DecodeTime: uint64(audioWritten) * aacFrameSamples,
					Data:       silentAACFrame,
				}
				if err := frag.AddFullSampleToTrack(sample, audioID); err != nil {
					return nil, fmt.Errorf("add audio sample %d: %w", audioWritten, err)
				}
			}
		}

		if err := frag.Encode(&buf); err != nil {
			return nil, fmt.Errorf("encode fragment %d: %w", i, err)
		}
	}

	return buf.Bytes(), nil
}

func encodeFrame(img *image.RGBA, opts Options) ([]byte, error) {
	switch opts.Codec {
	case CodecJPEG:
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: opts.JPEGQuality}); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return PackRGB24(img), nil
	}
}

// PackRGB24 returns img as tightly packed RGB rows.
func PackRGB24(img *image.RGBA) []byte {
	b := img.Bounds()
	out := make([]byte, 0, b.Dx()*b.Dy()*ports.BytesPerPixelRGB24)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):]
		for x := 0; x < b.Dx(); x++ {
			out = append(out, row[x*4], row[x*4+1], row[x*4+2])
		}
	}
	return out
}

// TestPattern creates a gradient image that changes with frameNum.
func TestPattern(width, height, frameNum int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r := uint8((x*255/width + frameNum*10) % 256)
			g := uint8((y*255/height + frameNum*5) % 256)
			b := uint8((x + y + frameNum*3) % 256)
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}

	return img
}
