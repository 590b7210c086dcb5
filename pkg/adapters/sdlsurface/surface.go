//go:build sdl

// Package sdlsurface presents frames through SDL2 streaming textures.
package sdlsurface

import (
	"errors"
	"fmt"
	"image"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/user/vidplay/pkg/ports"
)

// ErrDestroyed is returned when using a destroyed surface.
var ErrDestroyed = errors.New("sdlsurface: texture destroyed")

// Backend creates streaming RGB24 textures on one renderer.
type Backend struct {
	renderer *sdl.Renderer
}

// NewBackend creates a surface backend bound to renderer.
func NewBackend(renderer *sdl.Renderer) *Backend {
	return &Backend{renderer: renderer}
}

// CreateSurface creates a width x height streaming texture.
func (b *Backend) CreateSurface(width, height int) (ports.Surface, error) {
	tex, err := b.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_RGB24), sdl.TEXTUREACCESS_STREAMING, int32(width), int32(height))
	if err != nil {
		return nil, fmt.Errorf("create texture: %w", err)
	}
	return &Surface{
		texture: tex,
		width:   width,
		height:  height,
		shadow:  make([]byte, width*height*ports.BytesPerPixelRGB24),
	}, nil
}

// Surface is an SDL streaming texture. The last written frame is mirrored
// in a shadow buffer because texture memory is write-only.
type Surface struct {
	texture *sdl.Texture
	width   int
	height  int
	shadow  []byte
	pixels  []byte
	pitch   int
}

func (s *Surface) Width() int  { return s.width }
func (s *Surface) Height() int { return s.height }

// Texture returns the underlying texture for rendering.
func (s *Surface) Texture() *sdl.Texture { return s.texture }

// Lock maps the texture memory. SDL decides the pitch.
func (s *Surface) Lock() (ports.LockedRegion, error) {
	if s.texture == nil {
		return ports.LockedRegion{}, ErrDestroyed
	}
	pixels, pitch, err := s.texture.Lock(nil)
	if err != nil {
		return ports.LockedRegion{}, fmt.Errorf("lock texture: %w", err)
	}
	s.pixels, s.pitch = pixels, pitch
	return ports.LockedRegion{Pixels: pixels, Pitch: pitch}, nil
}

// Unlock mirrors the written rows and uploads the texture.
func (s *Surface) Unlock() {
	if s.texture == nil || s.pixels == nil {
		return
	}
	row := s.width * ports.BytesPerPixelRGB24
	for y := 0; y < s.height; y++ {
		copy(s.shadow[y*row:(y+1)*row], s.pixels[y*s.pitch:])
	}
	s.pixels = nil
	s.texture.Unlock()
}

// Image returns the last frame written through Lock/Unlock.
func (s *Surface) Image() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	for i := 0; i < s.width*s.height; i++ {
		p := s.shadow[i*3:]
		img.Pix[i*4], img.Pix[i*4+1], img.Pix[i*4+2], img.Pix[i*4+3] = p[0], p[1], p[2], 255
	}
	return img
}

// Destroy frees the texture. Destroying twice is safe.
func (s *Surface) Destroy() error {
	if s.texture == nil {
		return nil
	}
	err := s.texture.Destroy()
	s.texture = nil
	return err
}

// Ensure Backend implements ports.SurfaceBackend
var _ ports.SurfaceBackend = (*Backend)(nil)

// Ensure Surface implements ports.Surface
var _ ports.Surface = (*Surface)(nil)

