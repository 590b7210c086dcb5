package codecs

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/user/vidplay/pkg/adapters/logger"
	"github.com/user/vidplay/pkg/ports"
)

func videoStream(w, h int) ports.StreamInfo {
	return ports.StreamInfo{Index: 0, Kind: ports.StreamVideo, Width: w, Height: h}
}

func audioStream(rate, channels int) ports.StreamInfo {
	return ports.StreamInfo{Index: 1, Kind: ports.StreamAudio, SampleRate: rate, Channels: channels}
}

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 4), G: uint8(y * 4), B: 128, A: 255})
		}
	}
	return img
}

func TestRegistry_FindDecoder(t *testing.T) {
	r := New(logger.NewNoop(), Options{})

	tests := []struct {
		codec string
		name  string
		found bool
	}{
		{"jpeg", "mjpeg", true},
		{"mjpa", "mjpeg", true},
		{"mjpg", "mjpeg", true},
		{"png ", "png", true},
		{"raw ", "rawvideo", true},
		{"mp4a", "aac", true},
		{"sowt", "pcm_s16le", true},
		{"twos", "pcm_s16be", true},
		{"lpcm", "pcm", true},
		{"avc1", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.codec, func(t *testing.T) {
			f, ok := r.FindDecoder(tt.codec)
			if ok != tt.found {
				t.Fatalf("FindDecoder(%q) found = %v, want %v", tt.codec, ok, tt.found)
			}
			if ok && f.Name() != tt.name {
				t.Errorf("Name() = %q, want %q", f.Name(), tt.name)
			}
		})
	}
}

func TestRegistry_Disable(t *testing.T) {
	r := New(logger.NewNoop(), Options{Disable: []string{"jpeg", "nope"}})

	if _, ok := r.FindDecoder("jpeg"); ok {
		t.Error("jpeg should be disabled")
	}
	if _, ok := r.FindDecoder("mjpa"); !ok {
		t.Error("mjpa should still be available")
	}
	for _, c := range r.Codecs() {
		if c == "jpeg" {
			t.Error("Codecs() lists disabled codec")
		}
	}
}

func TestInit_InvalidStreams(t *testing.T) {
	r := New(logger.NewNoop(), Options{})

	tests := []struct {
		name   string
		codec  string
		stream ports.StreamInfo
	}{
		{"zero width", "raw ", videoStream(0, 10)},
		{"zero height", "jpeg", videoStream(10, 0)},
		{"video decoder on audio", "png ", audioStream(48000, 2)},
		{"zero sample rate", "mp4a", audioStream(0, 2)},
		{"zero channels", "sowt", audioStream(44100, 0)},
		{"audio decoder on video", "mp4a", videoStream(10, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _ := r.FindDecoder(tt.codec)
			if _, err := f.Init(tt.stream); !errors.Is(err, ErrInvalidStream) {
				t.Errorf("expected ErrInvalidStream, got %v", err)
			}
		})
	}
}

func TestRawDecoder(t *testing.T) {
	r := New(logger.NewNoop(), Options{})
	f, _ := r.FindDecoder("raw ")
	ctx, err := f.Init(videoStream(2, 2))
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer ctx.Close()

	if ctx.Layout() != ports.LayoutRGB24 {
		t.Errorf("Layout() = %q", ctx.Layout())
	}

	data := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	frame, err := ctx.Decode(ports.Packet{Data: data, PTS: 0.5})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if frame.PTS != 0.5 {
		t.Errorf("PTS = %v", frame.PTS)
	}
	if got := frame.Image.At(1, 1); got != (color.RGBA{R: 10, G: 11, B: 12, A: 255}) {
		t.Errorf("At(1,1) = %v", got)
	}

	// The frame slot is reused.
	next, _ := ctx.Decode(ports.Packet{Data: make([]byte, 12)})
	if next.Image != frame.Image {
		t.Error("expected the same frame slot")
	}

	if _, err := ctx.Decode(ports.Packet{}); !errors.Is(err, ports.ErrIncomplete) {
		t.Errorf("empty packet: expected ErrIncomplete, got %v", err)
	}
	if _, err := ctx.Decode(ports.Packet{Data: data[:5]}); !errors.Is(err, ErrShortPacket) {
		t.Errorf("short packet: expected ErrShortPacket, got %v", err)
	}
}

func TestJPEGDecoder(t *testing.T) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, testImage(32, 16), &jpeg.Options{Quality: 90}); err != nil {
		t.Fatal(err)
	}

	r := New(logger.NewNoop(), Options{})
	f, _ := r.FindDecoder("jpeg")
	ctx, err := f.Init(videoStream(32, 16))
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	frame, err := ctx.Decode(ports.Packet{Data: buf.Bytes()})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if _, ok := frame.Image.(*image.YCbCr); !ok {
		t.Errorf("expected *image.YCbCr, got %T", frame.Image)
	}

	if _, err := ctx.Decode(ports.Packet{Data: []byte("not a jpeg")}); err == nil {
		t.Error("expected error for corrupt data")
	}

	// Size mismatch
	small, _ := f.Init(videoStream(16, 16))
	if _, err := small.Decode(ports.Packet{Data: buf.Bytes()}); !errors.Is(err, ErrFrameSize) {
		t.Errorf("expected ErrFrameSize, got %v", err)
	}
}

func TestPNGDecoder(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage(8, 8)); err != nil {
		t.Fatal(err)
	}

	r := New(logger.NewNoop(), Options{})
	f, _ := r.FindDecoder("png ")
	ctx, err := f.Init(videoStream(8, 8))
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	frame, err := ctx.Decode(ports.Packet{Data: buf.Bytes()})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got := frame.Image.At(2, 3); got != (color.RGBA{R: 8, G: 12, B: 128, A: 255}) {
		t.Errorf("At(2,3) = %v", got)
	}
}

func TestAudioDecoder(t *testing.T) {
	r := New(logger.NewNoop(), Options{})

	aac, _ := r.FindDecoder("mp4a")
	ctx, err := aac.Init(audioStream(48000, 2))
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if ctx.Layout() != ports.LayoutNone {
		t.Errorf("Layout() = %q", ctx.Layout())
	}
	if _, err := ctx.Decode(ports.Packet{Data: []byte{0x21, 0x10}}); !errors.Is(err, ports.ErrIncomplete) {
		t.Errorf("expected ErrIncomplete, got %v", err)
	}

	pcm, _ := r.FindDecoder("sowt")
	pctx, err := pcm.Init(audioStream(44100, 2))
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if _, err := pctx.Decode(ports.Packet{Data: make([]byte, 8)}); !errors.Is(err, ports.ErrIncomplete) {
		t.Errorf("expected ErrIncomplete, got %v", err)
	}
	if _, err := pctx.Decode(ports.Packet{Data: make([]byte, 7)}); err == nil || errors.Is(err, ports.ErrIncomplete) {
		t.Errorf("expected framing error, got %v", err)
	}
}
