package mp4container

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/user/vidplay/pkg/adapters/logger"
	"github.com/user/vidplay/pkg/adapters/mp4writer"
	"github.com/user/vidplay/pkg/adapters/osfilesystem"
	"github.com/user/vidplay/pkg/ports"
)

func writeFixture(t *testing.T, opts mp4writer.Options) (*Backend, string) {
	t.Helper()
	data, err := mp4writer.Build(opts)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	fs := osfilesystem.NewMemory()
	if err := fs.WriteFile("clip.mp4", data); err != nil {
		t.Fatal(err)
	}
	return New(fs, logger.NewNoop()), "clip.mp4"
}

func TestContainer_Streams(t *testing.T) {
	opts := mp4writer.DefaultOptions()
	backend, path := writeFixture(t, opts)

	c, err := backend.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer c.Close()

	streams, err := c.Streams()
	if err != nil {
		t.Fatalf("Streams failed: %v", err)
	}
	if len(streams) != 2 {
		t.Fatalf("expected 2 streams, got %d", len(streams))
	}

	video, audio := streams[0], streams[1]
	if video.Kind != ports.StreamVideo || video.Codec != "raw " {
		t.Errorf("video stream = %+v", video)
	}
	if video.Width != opts.Width || video.Height != opts.Height {
		t.Errorf("video size = %dx%d, want %dx%d", video.Width, video.Height, opts.Width, opts.Height)
	}
	if got := video.FrameRate.Float(); got != float64(opts.FPS) {
		t.Errorf("frame rate = %v, want %d", got, opts.FPS)
	}
	if want := float64(opts.Frames) / float64(opts.FPS); video.Duration != want {
		t.Errorf("duration = %v, want %v", video.Duration, want)
	}

	if audio.Kind != ports.StreamAudio || audio.Codec != "mp4a" {
		t.Errorf("audio stream = %+v", audio)
	}
	if audio.SampleRate != opts.SampleRate {
		t.Errorf("sample rate = %d, want %d", audio.SampleRate, opts.SampleRate)
	}
	if audio.Channels <= 0 {
		t.Errorf("channels = %d", audio.Channels)
	}
}

func TestContainer_JPEGEntry(t *testing.T) {
	opts := mp4writer.DefaultOptions()
	opts.Codec = mp4writer.CodecJPEG
	opts.Width, opts.Height = 40, 30
	backend, path := writeFixture(t, opts)

	c, err := backend.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer c.Close()

	streams, _ := c.Streams()
	if streams[0].Codec != "jpeg" || streams[0].Width != 40 || streams[0].Height != 30 {
		t.Errorf("video stream = %+v", streams[0])
	}
}

func TestContainer_ReadPackets(t *testing.T) {
	opts := mp4writer.DefaultOptions()
	backend, path := writeFixture(t, opts)

	c, err := backend.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer c.Close()

	var videoPackets, audioPackets int
	lastPTS := map[int]float64{0: -1, 1: -1}
	for {
		pkt, err := c.ReadPacket()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadPacket failed: %v", err)
		}
		if pkt.PTS < lastPTS[pkt.StreamIndex] {
			t.Errorf("stream %d PTS went backwards: %v after %v", pkt.StreamIndex, pkt.PTS, lastPTS[pkt.StreamIndex])
		}
		lastPTS[pkt.StreamIndex] = pkt.PTS

		switch pkt.StreamIndex {
		case 0:
			want := mp4writer.PackRGB24(mp4writer.TestPattern(opts.Width, opts.Height, videoPackets))
			if !bytes.Equal(pkt.Data, want) {
				t.Errorf("video packet %d payload mismatch", videoPackets)
			}
			if !pkt.Keyframe {
				t.Errorf("video packet %d not a keyframe", videoPackets)
			}
			videoPackets++
		case 1:
			audioPackets++
		}
	}

	if videoPackets != opts.Frames {
		t.Errorf("expected %d video packets, got %d", opts.Frames, videoPackets)
	}
	if audioPackets == 0 {
		t.Error("expected audio packets")
	}

	// EOF is sticky.
	if _, err := c.ReadPacket(); err != io.EOF {
		t.Errorf("expected io.EOF again, got %v", err)
	}
}

func TestContainer_InterleavedOrder(t *testing.T) {
	opts := mp4writer.DefaultOptions()
	opts.Frames = 3
	backend, path := writeFixture(t, opts)

	c, _ := backend.Open(path)
	defer c.Close()

	// Each fragment starts with its video frame followed by the audio it covers.
	var order []int
	for {
		pkt, err := c.ReadPacket()
		if err != nil {
			break
		}
		order = append(order, pkt.StreamIndex)
	}
	if len(order) == 0 || order[0] != 0 {
		t.Fatalf("expected video first, got %v", order)
	}
	sawAudio := false
	for _, idx := range order {
		if idx == 1 {
			sawAudio = true
		}
	}
	if !sawAudio {
		t.Errorf("no audio interleaved in %v", order)
	}
}

func TestContainer_Close(t *testing.T) {
	backend, path := writeFixture(t, mp4writer.DefaultOptions())

	c, _ := backend.Open(path)
	if err := c.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
	if _, err := c.ReadPacket(); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func TestBackend_OpenErrors(t *testing.T) {
	fs := osfilesystem.NewMemory()
	backend := New(fs, logger.NewNoop())

	if _, err := backend.Open("missing.mp4"); err == nil {
		t.Error("expected error for missing file")
	}

	fs.WriteFile("garbage.mp4", []byte("this is not an mp4 file at all"))
	if _, err := backend.Open("garbage.mp4"); err == nil {
		t.Error("expected error for garbage file")
	}
}

func TestContainer_SingleTrackFiles(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*mp4writer.Options)
		kind ports.StreamKind
	}{
		{"video only", func(o *mp4writer.Options) { o.SkipAudio = true }, ports.StreamVideo},
		{"audio only", func(o *mp4writer.Options) { o.SkipVideo = true }, ports.StreamAudio},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := mp4writer.DefaultOptions()
			tt.mod(&opts)
			backend, path := writeFixture(t, opts)

			c, err := backend.Open(path)
			if err != nil {
				t.Fatalf("Open failed: %v", err)
			}
			defer c.Close()

			streams, err := c.Streams()
			if err != nil {
				t.Fatalf("Streams failed: %v", err)
			}
			if len(streams) != 1 || streams[0].Kind != tt.kind {
				t.Errorf("streams = %+v", streams)
			}
		})
	}
}
