package codecs

import (
	"fmt"

	"github.com/user/vidplay/pkg/ports"
)

// audioFactory validates audio streams. Packets are never decoded.
type audioFactory struct {
	name           string
	bytesPerSample int // 0 when the sample size is not fixed by the four-CC
}

func (f *audioFactory) Name() string { return f.name }

func (f *audioFactory) Init(stream ports.StreamInfo) (ports.DecoderContext, error) {
	if stream.Kind != ports.StreamAudio {
		return nil, fmt.Errorf("%w: stream %d is %s, not audio", ErrInvalidStream, stream.Index, stream.Kind)
	}
	if stream.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrInvalidStream, stream.SampleRate)
	}
	if stream.Channels <= 0 {
		return nil, fmt.Errorf("%w: %d channels", ErrInvalidStream, stream.Channels)
	}
	return &audioDecoder{
		frameBytes: f.bytesPerSample * stream.Channels,
	}, nil
}

type audioDecoder struct {
	frameBytes int
	dropped    int
}

func (d *audioDecoder) Layout() ports.PixelLayout {
	return ports.LayoutNone
}

// Decode drops the packet. PCM packets must hold whole sample frames.
func (d *audioDecoder) Decode(pkt ports.Packet) (ports.Frame, error) {
	if d.frameBytes > 0 && len(pkt.Data)%d.frameBytes != 0 {
		return ports.Frame{}, fmt.Errorf("pcm: packet of %d bytes is not a multiple of %d", len(pkt.Data), d.frameBytes)
	}
	d.dropped++
	return ports.Frame{}, ports.ErrIncomplete
}

func (d *audioDecoder) Close() error {
	return nil
}
