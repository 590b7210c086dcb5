package playback

import (
	"errors"
	"fmt"
	"io"

	"github.com/user/vidplay/pkg/ports"
)

// Status is the outcome of one decode step.
type Status int

const (
	// StatusFrame means a complete frame is available.
	StatusFrame Status = iota
	// StatusNotReady means the packet was consumed without completing a frame.
	StatusNotReady
	// StatusForeign means the packet belongs to another stream and was not decoded.
	StatusForeign
	// StatusEndOfStream means the container has no more packets.
	StatusEndOfStream
	// StatusReadError means the container failed to deliver a packet.
	StatusReadError
	// StatusDecodeError means the decoder rejected the packet.
	StatusDecodeError
)

func (s Status) String() string {
	switch s {
	case StatusFrame:
		return "frame"
	case StatusNotReady:
		return "not-ready"
	case StatusForeign:
		return "foreign"
	case StatusEndOfStream:
		return "end-of-stream"
	case StatusReadError:
		return "read-error"
	case StatusDecodeError:
		return "decode-error"
	default:
		return "unknown"
	}
}

// Step is the result of Binding.DecodeNext.
// Frame is only valid until the next decode call on the same binding.
type Step struct {
	Status Status
	Frame  ports.Frame
	Packet ports.Packet
	Err    error
}

// Binding ties one stream of a container to a decoder context.
// The container is borrowed; the decoder context is owned.
type Binding struct {
	container ports.Container
	stream    ports.StreamInfo
	decoder   ports.DecoderContext
	name      string
}

// Bind resolves and initializes a decoder for stream.
func Bind(backend ports.DecoderBackend, container ports.Container, stream ports.StreamInfo) (*Binding, error) {
	factory, ok := backend.FindDecoder(stream.Codec)
	if !ok {
		return nil, fmt.Errorf("%w: %q (stream %d)", ErrUnsupportedCodec, stream.Codec, stream.Index)
	}

	decoder, err := factory.Init(stream)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecoderInitFailed, factory.Name(), err)
	}

	return &Binding{
		container: container,
		stream:    stream,
		decoder:   decoder,
		name:      factory.Name(),
	}, nil
}

// Stream returns the bound stream.
func (b *Binding) Stream() ports.StreamInfo { return b.stream }

// DecoderName returns the name of the decoder implementation.
func (b *Binding) DecoderName() string { return b.name }

// Layout returns the decoder's native pixel layout.
func (b *Binding) Layout() ports.PixelLayout {
	if b.decoder == nil {
		return ports.LayoutNone
	}
	return b.decoder.Layout()
}

// DecodeNext pulls one packet from the container and decodes it if it
// belongs to the bound stream.
func (b *Binding) DecodeNext() Step {
	pkt, err := b.container.ReadPacket()
	if errors.Is(err, io.EOF) {
		return Step{Status: StatusEndOfStream}
	}
	if err != nil {
		return Step{Status: StatusReadError, Err: err}
	}
	if pkt.StreamIndex != b.stream.Index {
		return Step{Status: StatusForeign, Packet: pkt}
	}
	return b.Feed(pkt)
}

// Feed decodes a packet that was already read from the container.
func (b *Binding) Feed(pkt ports.Packet) Step {
	if b.decoder == nil {
		return Step{Status: StatusDecodeError, Packet: pkt, Err: ErrNotOpen}
	}
	frame, err := b.decoder.Decode(pkt)
	switch {
	case err == nil:
		return Step{Status: StatusFrame, Frame: frame, Packet: pkt}
	case errors.Is(err, ports.ErrIncomplete):
		return Step{Status: StatusNotReady, Packet: pkt, Err: fmt.Errorf("%w: %w", ErrDecodeIncomplete, err)}
	default:
		return Step{Status: StatusDecodeError, Packet: pkt, Err: err}
	}
}

// Close releases the decoder context. Calling Close more than once is safe.
func (b *Binding) Close() error {
	if b.decoder == nil {
		return nil
	}
	err := b.decoder.Close()
	b.decoder = nil
	return err
}
