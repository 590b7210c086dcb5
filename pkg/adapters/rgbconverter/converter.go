// Package rgbconverter converts decoded pictures into packed RGB24.
// Scaling, when the output size differs from the source, uses x/image/draw.
package rgbconverter

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/user/vidplay/pkg/ports"
)

var (
	// ErrUnsupportedLayout is returned by Setup for layouts with no conversion path.
	ErrUnsupportedLayout = errors.New("rgbconverter: unsupported pixel layout")

	// ErrInvalidSize is returned by Setup for non-positive dimensions.
	ErrInvalidSize = errors.New("rgbconverter: invalid dimensions")

	// ErrSizeMismatch is returned when a frame does not have the configured source size.
	ErrSizeMismatch = errors.New("rgbconverter: frame size does not match setup")

	// ErrBufferTooSmall is returned when the destination cannot hold one frame.
	ErrBufferTooSmall = errors.New("rgbconverter: destination buffer too small")

	// ErrClosed is returned when converting with a closed context.
	ErrClosed = errors.New("rgbconverter: context closed")
)

// Scaler names an interpolation kernel.
type Scaler string

const (
	ScalerNearest    Scaler = "nearest"
	ScalerBiLinear   Scaler = "bilinear"
	ScalerCatmullRom Scaler = "catmullrom"
)

func (s Scaler) interpolator() (draw.Interpolator, error) {
	switch s {
	case ScalerNearest:
		return draw.NearestNeighbor, nil
	case ScalerBiLinear, "":
		return draw.BiLinear, nil
	case ScalerCatmullRom:
		return draw.CatmullRom, nil
	default:
		return nil, fmt.Errorf("rgbconverter: unknown scaler %q", s)
	}
}

// Backend implements ports.ConverterBackend.
type Backend struct {
	scaler Scaler
}

// New creates a converter backend using the given scaler for resampling.
func New(scaler Scaler) *Backend {
	return &Backend{scaler: scaler}
}

// Setup establishes a conversion path for one source layout and size pair.
func (b *Backend) Setup(src ports.PixelLayout, srcWidth, srcHeight, dstWidth, dstHeight int) (ports.ConverterContext, error) {
	switch src {
	case ports.LayoutYCbCr, ports.LayoutRGBA, ports.LayoutNRGBA, ports.LayoutGray, ports.LayoutRGB24, ports.LayoutAny:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLayout, src)
	}
	if srcWidth <= 0 || srcHeight <= 0 || dstWidth <= 0 || dstHeight <= 0 {
		return nil, fmt.Errorf("%w: %dx%d -> %dx%d", ErrInvalidSize, srcWidth, srcHeight, dstWidth, dstHeight)
	}

	ctx := &Context{
		src:  image.Rect(0, 0, srcWidth, srcHeight),
		dstW: dstWidth,
		dstH: dstHeight,
	}
	if srcWidth != dstWidth || srcHeight != dstHeight {
		interp, err := b.scaler.interpolator()
		if err != nil {
			return nil, err
		}
		ctx.interp = interp
		ctx.scratch = image.NewRGBA(image.Rect(0, 0, dstWidth, dstHeight))
	}
	return ctx, nil
}

// Context converts frames of one source size into packed RGB24.
type Context struct {
	src        image.Rectangle
	dstW, dstH int
	interp     draw.Interpolator
	scratch    *image.RGBA
	closed     bool
}

// Convert writes img into dst as packed RGB24 rows spaced pitch bytes apart.
func (c *Context) Convert(img image.Image, dst []byte, pitch int) error {
	if c.closed {
		return ErrClosed
	}
	b := img.Bounds()
	if b.Dx() != c.src.Dx() || b.Dy() != c.src.Dy() {
		return fmt.Errorf("%w: got %dx%d, want %dx%d", ErrSizeMismatch, b.Dx(), b.Dy(), c.src.Dx(), c.src.Dy())
	}
	rowBytes := c.dstW * ports.BytesPerPixelRGB24
	if pitch < rowBytes || len(dst) < pitch*(c.dstH-1)+rowBytes {
		return fmt.Errorf("%w: %d bytes at pitch %d", ErrBufferTooSmall, len(dst), pitch)
	}

	if c.scratch != nil {
		c.interp.Scale(c.scratch, c.scratch.Bounds(), img, b, draw.Src, nil)
		img = c.scratch
	}
	pack(img, dst, pitch)
	return nil
}

// Close releases the scaling scratch buffer.
func (c *Context) Close() error {
	c.closed = true
	c.scratch = nil
	return nil
}

// pack writes every pixel of img into dst. Common decoder outputs take a fast path.
func pack(img image.Image, dst []byte, pitch int) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	switch src := img.(type) {
	case *ports.RGBImage:
		for y := 0; y < h; y++ {
			i := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(dst[y*pitch:y*pitch+w*3], src.Pix[i:i+w*3])
		}
	case *image.RGBA:
		for y := 0; y < h; y++ {
			row := dst[y*pitch:]
			s := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
			for x := 0; x < w; x++ {
				row[x*3] = s[x*4]
				row[x*3+1] = s[x*4+1]
				row[x*3+2] = s[x*4+2]
			}
		}
	case *image.NRGBA:
		for y := 0; y < h; y++ {
			row := dst[y*pitch:]
			s := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
			for x := 0; x < w; x++ {
				a := uint32(s[x*4+3])
				row[x*3] = uint8(uint32(s[x*4]) * a / 255)
				row[x*3+1] = uint8(uint32(s[x*4+1]) * a / 255)
				row[x*3+2] = uint8(uint32(s[x*4+2]) * a / 255)
			}
		}
	case *image.Gray:
		for y := 0; y < h; y++ {
			row := dst[y*pitch:]
			s := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
			for x := 0; x < w; x++ {
				row[x*3], row[x*3+1], row[x*3+2] = s[x], s[x], s[x]
			}
		}
	case *image.YCbCr:
		for y := 0; y < h; y++ {
			row := dst[y*pitch:]
			for x := 0; x < w; x++ {
				yi := src.YOffset(b.Min.X+x, b.Min.Y+y)
				ci := src.COffset(b.Min.X+x, b.Min.Y+y)
				r, g, bl := color.YCbCrToRGB(src.Y[yi], src.Cb[ci], src.Cr[ci])
				row[x*3], row[x*3+1], row[x*3+2] = r, g, bl
			}
		}
	default:
		for y := 0; y < h; y++ {
			row := dst[y*pitch:]
			for x := 0; x < w; x++ {
				r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
				row[x*3], row[x*3+1], row[x*3+2] = uint8(r>>8), uint8(g>>8), uint8(bl>>8)
			}
		}
	}
}

// Ensure Backend implements ports.ConverterBackend
var _ ports.ConverterBackend = (*Backend)(nil)

// Ensure Context implements ports.ConverterContext
var _ ports.ConverterContext = (*Context)(nil)
