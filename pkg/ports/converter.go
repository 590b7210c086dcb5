package ports

import (
	"image"
	"image/color"
)

// PixelLayout names a pixel memory layout.
type PixelLayout string

const (
	LayoutNone  PixelLayout = ""
	LayoutYCbCr PixelLayout = "ycbcr" // Planar Y'CbCr, any chroma subsampling
	LayoutRGBA  PixelLayout = "rgba"
	LayoutNRGBA PixelLayout = "nrgba"
	LayoutGray  PixelLayout = "gray"
	LayoutRGB24 PixelLayout = "rgb24" // Packed 8-bit R, G, B
	// LayoutAny means the decoder may emit any image.Image implementation.
	LayoutAny PixelLayout = "any"
)

// BytesPerPixelRGB24 is the size of one packed RGB pixel.
const BytesPerPixelRGB24 = 3

// ConverterBackend establishes conversion paths into packed RGB24.
type ConverterBackend interface {
	// Setup prepares a conversion from src frames of srcWidth x srcHeight into
	// dstWidth x dstHeight packed RGB24.
	Setup(src PixelLayout, srcWidth, srcHeight, dstWidth, dstHeight int) (ConverterContext, error)
}

// ConverterContext converts decoded frames into a caller-owned buffer.
type ConverterContext interface {
	// Convert writes img as packed RGB24 into dst, one row every pitch bytes.
	Convert(img image.Image, dst []byte, pitch int) error

	// Close releases conversion state.
	Close() error
}

// RGBImage is a packed RGB24 picture. It is the native frame type of
// uncompressed RGB decoders.
type RGBImage struct {
	Pix    []byte
	Stride int
	Rect   image.Rectangle
}

// NewRGBImage allocates a tightly packed RGB24 image.
func NewRGBImage(r image.Rectangle) *RGBImage {
	return &RGBImage{
		Pix:    make([]byte, r.Dx()*r.Dy()*BytesPerPixelRGB24),
		Stride: r.Dx() * BytesPerPixelRGB24,
		Rect:   r,
	}
}

func (p *RGBImage) ColorModel() color.Model { return color.RGBAModel }
func (p *RGBImage) Bounds() image.Rectangle { return p.Rect }

func (p *RGBImage) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(p.Rect)) {
		return color.RGBA{}
	}
	i := p.PixOffset(x, y)
	return color.RGBA{R: p.Pix[i], G: p.Pix[i+1], B: p.Pix[i+2], A: 255}
}

// PixOffset returns the index of the first byte of the pixel at (x, y).
func (p *RGBImage) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*BytesPerPixelRGB24
}
