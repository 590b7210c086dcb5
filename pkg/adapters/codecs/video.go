package codecs

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/user/vidplay/pkg/ports"
)

func checkVideo(stream ports.StreamInfo) error {
	if stream.Kind != ports.StreamVideo {
		return fmt.Errorf("%w: stream %d is %s, not video", ErrInvalidStream, stream.Index, stream.Kind)
	}
	if stream.Width <= 0 || stream.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidStream, stream.Width, stream.Height)
	}
	return nil
}

func checkSize(img image.Image, width, height int) error {
	b := img.Bounds()
	if b.Dx() != width || b.Dy() != height {
		return fmt.Errorf("%w: got %dx%d, want %dx%d", ErrFrameSize, b.Dx(), b.Dy(), width, height)
	}
	return nil
}

// imageDecoder decodes self-contained still-image packets.
type imageDecoder struct {
	width, height int
	layout        ports.PixelLayout
	decode        func(data []byte) (image.Image, error)
}

func (d *imageDecoder) Layout() ports.PixelLayout {
	return d.layout
}

func (d *imageDecoder) Decode(pkt ports.Packet) (ports.Frame, error) {
	if len(pkt.Data) == 0 {
		return ports.Frame{}, ports.ErrIncomplete
	}
	img, err := d.decode(pkt.Data)
	if err != nil {
		return ports.Frame{}, err
	}
	if err := checkSize(img, d.width, d.height); err != nil {
		return ports.Frame{}, err
	}
	return ports.Frame{Image: img, PTS: pkt.PTS}, nil
}

func (d *imageDecoder) Close() error {
	d.decode = nil
	return nil
}

type jpegFactory struct{}

func (f *jpegFactory) Name() string { return "mjpeg" }

func (f *jpegFactory) Init(stream ports.StreamInfo) (ports.DecoderContext, error) {
	if err := checkVideo(stream); err != nil {
		return nil, err
	}
	return &imageDecoder{
		width:  stream.Width,
		height: stream.Height,
		layout: ports.LayoutYCbCr,
		decode: func(data []byte) (image.Image, error) {
			img, err := jpeg.Decode(bytes.NewReader(data))
			if err != nil {
				return nil, fmt.Errorf("decode jpeg: %w", err)
			}
			return img, nil
		},
	}, nil
}

type pngFactory struct{}

func (f *pngFactory) Name() string { return "png" }

func (f *pngFactory) Init(stream ports.StreamInfo) (ports.DecoderContext, error) {
	if err := checkVideo(stream); err != nil {
		return nil, err
	}
	return &imageDecoder{
		width:  stream.Width,
		height: stream.Height,
		layout: ports.LayoutAny,
		decode: func(data []byte) (image.Image, error) {
			img, err := png.Decode(bytes.NewReader(data))
			if err != nil {
				return nil, fmt.Errorf("decode png: %w", err)
			}
			return img, nil
		},
	}, nil
}

type rawFactory struct{}

func (f *rawFactory) Name() string { return "rawvideo" }

func (f *rawFactory) Init(stream ports.StreamInfo) (ports.DecoderContext, error) {
	if err := checkVideo(stream); err != nil {
		return nil, err
	}
	return &rawDecoder{
		frame: ports.NewRGBImage(image.Rect(0, 0, stream.Width, stream.Height)),
	}, nil
}

// rawDecoder copies packed RGB rows into a single reused frame.
type rawDecoder struct {
	frame *ports.RGBImage
}

func (d *rawDecoder) Layout() ports.PixelLayout {
	return ports.LayoutRGB24
}

func (d *rawDecoder) Decode(pkt ports.Packet) (ports.Frame, error) {
	if len(pkt.Data) == 0 {
		return ports.Frame{}, ports.ErrIncomplete
	}
	if d.frame == nil {
		return ports.Frame{}, fmt.Errorf("rawvideo: decoder closed")
	}
	if len(pkt.Data) < len(d.frame.Pix) {
		return ports.Frame{}, fmt.Errorf("%w: %d < %d bytes", ErrShortPacket, len(pkt.Data), len(d.frame.Pix))
	}
	copy(d.frame.Pix, pkt.Data)
	return ports.Frame{Image: d.frame, PTS: pkt.PTS}, nil
}

func (d *rawDecoder) Close() error {
	d.frame = nil
	return nil
}
