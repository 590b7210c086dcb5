package mocks

import (
	"image"

	"github.com/user/vidplay/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
type Renderer struct {
	AnnotateFunc  func(img image.Image, caption string, style ports.TextStyle) image.Image
	ResizeFunc    func(img image.Image, width, height int) image.Image
	EncodePNGFunc func(img image.Image) ([]byte, error)

	Captions []string
}

func (m *Renderer) Annotate(img image.Image, caption string, style ports.TextStyle) image.Image {
	m.Captions = append(m.Captions, caption)
	if m.AnnotateFunc != nil {
		return m.AnnotateFunc(img, caption, style)
	}
	return img
}

func (m *Renderer) Resize(img image.Image, width, height int) image.Image {
	if m.ResizeFunc != nil {
		return m.ResizeFunc(img, width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

func (m *Renderer) EncodePNG(img image.Image) ([]byte, error) {
	if m.EncodePNGFunc != nil {
		return m.EncodePNGFunc(img)
	}
	return []byte("png"), nil
}

var _ ports.Renderer = (*Renderer)(nil)
