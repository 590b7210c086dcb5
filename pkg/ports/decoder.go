package ports

import (
	"errors"
	"image"
)

// ErrIncomplete is returned by DecoderContext.Decode when the packet was consumed
// but no complete frame is available yet.
var ErrIncomplete = errors.New("ports: decoder needs more input")

// Frame is a decoded picture in the codec's native pixel layout.
// The image belongs to the decoder and is only valid until the next Decode call.
type Frame struct {
	Image image.Image
	PTS   float64
}

// DecoderBackend resolves decoders by codec identifier.
type DecoderBackend interface {
	// FindDecoder returns a factory able to decode codec, or false if none exists.
	FindDecoder(codec string) (DecoderFactory, bool)
}

// DecoderFactory creates decoder contexts for one codec.
type DecoderFactory interface {
	// Name identifies the decoder implementation.
	Name() string

	// Init creates a decoder context bound to the given stream.
	Init(stream StreamInfo) (DecoderContext, error)
}

// DecoderContext holds codec state for a single stream.
type DecoderContext interface {
	// Layout reports the native pixel layout of frames this decoder produces.
	// Audio decoders return LayoutNone.
	Layout() PixelLayout

	// Decode feeds one packet and returns a frame when one completes.
	// Returns ErrIncomplete when more input is needed.
	Decode(pkt Packet) (Frame, error)

	// Close releases codec state.
	Close() error
}
