package mocks

import (
	"image"

	"github.com/user/vidplay/pkg/ports"
)

// ConverterBackend is a mock implementation of ports.ConverterBackend.
type ConverterBackend struct {
	SetupFunc func(src ports.PixelLayout, srcWidth, srcHeight, dstWidth, dstHeight int) (ports.ConverterContext, error)
	SetupErr  error

	Contexts []*ConverterContext
}

func (m *ConverterBackend) Setup(src ports.PixelLayout, srcWidth, srcHeight, dstWidth, dstHeight int) (ports.ConverterContext, error) {
	if m.SetupFunc != nil {
		return m.SetupFunc(src, srcWidth, srcHeight, dstWidth, dstHeight)
	}
	if m.SetupErr != nil {
		return nil, m.SetupErr
	}
	ctx := &ConverterContext{Width: dstWidth, Height: dstHeight}
	m.Contexts = append(m.Contexts, ctx)
	return ctx, nil
}

var _ ports.ConverterBackend = (*ConverterBackend)(nil)

// ConverterContext is a mock ports.ConverterContext that packs pixels without scaling.
type ConverterContext struct {
	Width       int
	Height      int
	ConvertFunc func(img image.Image, dst []byte, pitch int) error

	Converted  int
	CloseCount int
}

func (m *ConverterContext) Convert(img image.Image, dst []byte, pitch int) error {
	m.Converted++
	if m.ConvertFunc != nil {
		return m.ConvertFunc(img, dst, pitch)
	}
	b := img.Bounds()
	for y := 0; y < m.Height; y++ {
		row := dst[y*pitch:]
		for x := 0; x < m.Width; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			row[x*3] = uint8(r >> 8)
			row[x*3+1] = uint8(g >> 8)
			row[x*3+2] = uint8(bl >> 8)
		}
	}
	return nil
}

func (m *ConverterContext) Close() error {
	m.CloseCount++
	return nil
}

var _ ports.ConverterContext = (*ConverterContext)(nil)
