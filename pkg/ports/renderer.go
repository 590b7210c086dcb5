package ports

import (
	"image"
	"image/color"
)

// Renderer abstracts image composition for snapshots.
type Renderer interface {
	// Annotate draws caption over a copy of img and returns the result.
	Annotate(img image.Image, caption string, style TextStyle) image.Image

	// Resize scales img to width x height.
	Resize(img image.Image, width, height int) image.Image

	// EncodePNG encodes img as PNG.
	EncodePNG(img image.Image) ([]byte, error)
}

// TextStyle defines caption rendering properties.
type TextStyle struct {
	Color      color.Color
	Background color.Color
	Padding    int
}
