package mocks

import (
	"image"
	"image/color"

	"github.com/user/vidplay/pkg/ports"
)

// DecoderBackend is a mock implementation of ports.DecoderBackend.
type DecoderBackend struct {
	Factories map[string]*DecoderFactory
}

// NewDecoderBackend registers a default factory for each codec.
func NewDecoderBackend(codecs ...string) *DecoderBackend {
	m := &DecoderBackend{Factories: make(map[string]*DecoderFactory)}
	for _, c := range codecs {
		m.Factories[c] = &DecoderFactory{NameValue: c}
	}
	return m
}

func (m *DecoderBackend) FindDecoder(codec string) (ports.DecoderFactory, bool) {
	f, ok := m.Factories[codec]
	if !ok {
		return nil, false
	}
	return f, true
}

var _ ports.DecoderBackend = (*DecoderBackend)(nil)

// DecoderFactory is a mock implementation of ports.DecoderFactory.
type DecoderFactory struct {
	NameValue string
	InitFunc  func(stream ports.StreamInfo) (ports.DecoderContext, error)
	InitErr   error

	Contexts []*DecoderContext
}

func (m *DecoderFactory) Name() string {
	return m.NameValue
}

func (m *DecoderFactory) Init(stream ports.StreamInfo) (ports.DecoderContext, error) {
	if m.InitFunc != nil {
		return m.InitFunc(stream)
	}
	if m.InitErr != nil {
		return nil, m.InitErr
	}
	ctx := &DecoderContext{Width: stream.Width, Height: stream.Height}
	if stream.Kind == ports.StreamVideo {
		ctx.LayoutValue = ports.LayoutRGBA
	}
	m.Contexts = append(m.Contexts, ctx)
	return ctx, nil
}

var _ ports.DecoderFactory = (*DecoderFactory)(nil)

// DecoderContext is a mock ports.DecoderContext.
// By default each packet decodes to a solid frame whose color comes from the
// first bytes of the packet; an empty packet yields ports.ErrIncomplete.
type DecoderContext struct {
	LayoutValue ports.PixelLayout
	Width       int
	Height      int
	DecodeFunc  func(pkt ports.Packet) (ports.Frame, error)

	Decoded    []ports.Packet
	CloseCount int

	slot *image.RGBA
}

func (m *DecoderContext) Layout() ports.PixelLayout {
	return m.LayoutValue
}

func (m *DecoderContext) Decode(pkt ports.Packet) (ports.Frame, error) {
	m.Decoded = append(m.Decoded, pkt)
	if m.DecodeFunc != nil {
		return m.DecodeFunc(pkt)
	}
	if len(pkt.Data) == 0 {
		return ports.Frame{}, ports.ErrIncomplete
	}
	if m.slot == nil {
		m.slot = image.NewRGBA(image.Rect(0, 0, m.Width, m.Height))
	}
	c := color.RGBA{R: pkt.Data[0], A: 255}
	if len(pkt.Data) > 2 {
		c.G, c.B = pkt.Data[1], pkt.Data[2]
	}
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			m.slot.SetRGBA(x, y, c)
		}
	}
	return ports.Frame{Image: m.slot, PTS: pkt.PTS}, nil
}

func (m *DecoderContext) Close() error {
	m.CloseCount++
	return nil
}

var _ ports.DecoderContext = (*DecoderContext)(nil)
