// Package codecs provides a pure Go decoder backend.
//
// Video: Motion JPEG (jpeg, mjpa, mjpg), PNG (png ) and uncompressed packed
// RGB (raw ). Audio streams (mp4a, sowt, twos, lpcm) are validated at Init
// but never decoded; their packets are accepted and dropped.
package codecs

import (
	"errors"
	"sort"

	"github.com/user/vidplay/pkg/ports"
)

var (
	// ErrInvalidStream is returned by Init when stream parameters are unusable.
	ErrInvalidStream = errors.New("codecs: invalid stream parameters")

	// ErrFrameSize is returned when a decoded picture does not match the stream size.
	ErrFrameSize = errors.New("codecs: frame size differs from stream")

	// ErrShortPacket is returned when a raw packet is smaller than one frame.
	ErrShortPacket = errors.New("codecs: packet shorter than one frame")
)

// Options configures the registry.
type Options struct {
	// Disable lists four-CCs that must not be resolved.
	Disable []string
}

// Registry implements ports.DecoderBackend over a fixed codec table.
type Registry struct {
	factories map[string]ports.DecoderFactory
	logger    ports.Logger
}

// New creates a registry with every built-in decoder except the disabled ones.
func New(logger ports.Logger, opts Options) *Registry {
	r := &Registry{
		factories: make(map[string]ports.DecoderFactory),
		logger:    logger.WithComponent("codecs"),
	}

	jpegDec := &jpegFactory{}
	r.Register("jpeg", jpegDec)
	r.Register("mjpa", jpegDec)
	r.Register("mjpg", jpegDec)
	r.Register("png ", &pngFactory{})
	r.Register("raw ", &rawFactory{})

	r.Register("mp4a", &audioFactory{name: "aac"})
	r.Register("sowt", &audioFactory{name: "pcm_s16le", bytesPerSample: 2})
	r.Register("twos", &audioFactory{name: "pcm_s16be", bytesPerSample: 2})
	r.Register("lpcm", &audioFactory{name: "pcm"})

	for _, codec := range opts.Disable {
		if _, ok := r.factories[codec]; ok {
			delete(r.factories, codec)
			r.logger.Debug("Decoder for %q disabled", codec)
		}
	}
	return r
}

// Register adds or replaces the factory for codec.
func (r *Registry) Register(codec string, f ports.DecoderFactory) {
	r.factories[codec] = f
}

// FindDecoder returns the factory registered for codec.
func (r *Registry) FindDecoder(codec string) (ports.DecoderFactory, bool) {
	f, ok := r.factories[codec]
	return f, ok
}

// Codecs returns the registered four-CCs in sorted order.
func (r *Registry) Codecs() []string {
	out := make([]string, 0, len(r.factories))
	for c := range r.factories {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Ensure Registry implements ports.DecoderBackend
var _ ports.DecoderBackend = (*Registry)(nil)
