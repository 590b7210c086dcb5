// Package ggrenderer provides a renderer implementation using the gg library.
package ggrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/user/vidplay/pkg/ports"
)

// Renderer implements ports.Renderer using the gg library.
type Renderer struct{}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{}
}

// Annotate copies img and draws caption in its top-left corner on a filled box.
// The default gg font face is used.
func (r *Renderer) Annotate(img image.Image, caption string, style ports.TextStyle) image.Image {
	dc := gg.NewContextForImage(img)
	if caption == "" {
		return dc.Image()
	}

	fg := style.Color
	if fg == nil {
		fg = color.White
	}
	pad := float64(style.Padding)

	w, h := dc.MeasureString(caption)
	if style.Background != nil {
		dc.SetColor(style.Background)
		dc.DrawRectangle(0, 0, w+2*pad, h+2*pad)
		dc.Fill()
	}

	dc.SetColor(fg)
	dc.DrawStringAnchored(caption, pad, pad+h/2, 0, 0.5)
	return dc.Image()
}

// Resize scales img to the given size.
func (r *Renderer) Resize(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// EncodePNG encodes img as PNG.
func (r *Renderer) EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// Ensure Renderer implements ports.Renderer
var _ ports.Renderer = (*Renderer)(nil)
