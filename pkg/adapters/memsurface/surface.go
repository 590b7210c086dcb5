// Package memsurface provides in-memory presentation surfaces.
package memsurface

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/user/vidplay/pkg/ports"
)

var (
	// ErrLocked is returned by Lock while the surface is already locked.
	ErrLocked = errors.New("memsurface: surface already locked")

	// ErrDestroyed is returned when using a destroyed surface.
	ErrDestroyed = errors.New("memsurface: surface destroyed")

	// ErrInvalidSize is returned by CreateSurface for non-positive dimensions.
	ErrInvalidSize = errors.New("memsurface: invalid surface size")
)

// Backend implements ports.SurfaceBackend.
type Backend struct {
	// Alignment rounds each row up to a multiple of this many bytes.
	// Values below 2 mean rows are tightly packed.
	Alignment int

	// FailLock, when set, is consulted on every Lock; a non-nil result fails it.
	FailLock func() error
}

// New creates a backend whose surfaces pad rows to alignment bytes.
func New(alignment int) *Backend {
	return &Backend{Alignment: alignment}
}

// CreateSurface allocates a zeroed width x height RGB24 surface.
func (b *Backend) CreateSurface(width, height int) (ports.Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	pitch := align(width*ports.BytesPerPixelRGB24, b.Alignment)
	return &Surface{
		width:    width,
		height:   height,
		pitch:    pitch,
		pixels:   make([]byte, pitch*height),
		failLock: b.FailLock,
	}, nil
}

func align(n, to int) int {
	if to < 2 {
		return n
	}
	return (n + to - 1) / to * to
}

// Surface is a lockable RGB24 pixel buffer.
type Surface struct {
	mu        sync.Mutex
	width     int
	height    int
	pitch     int
	pixels    []byte
	locked    bool
	destroyed bool
	failLock  func() error
}

func (s *Surface) Width() int  { return s.width }
func (s *Surface) Height() int { return s.height }

// Pitch returns the row stride in bytes.
func (s *Surface) Pitch() int { return s.pitch }

// Lock grants exclusive access to the pixels until Unlock.
func (s *Surface) Lock() (ports.LockedRegion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return ports.LockedRegion{}, ErrDestroyed
	}
	if s.locked {
		return ports.LockedRegion{}, ErrLocked
	}
	if s.failLock != nil {
		if err := s.failLock(); err != nil {
			return ports.LockedRegion{}, err
		}
	}
	s.locked = true
	return ports.LockedRegion{Pixels: s.pixels, Pitch: s.pitch}, nil
}

// Unlock releases the lock. Unlocking an unlocked surface does nothing.
func (s *Surface) Unlock() {
	s.mu.Lock()
	s.locked = false
	s.mu.Unlock()
}

// Locked reports whether the surface is currently locked.
func (s *Surface) Locked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locked
}

// Image returns an RGBA copy of the visible pixels. Row padding is not included.
func (s *Surface) Image() image.Image {
	s.mu.Lock()
	defer s.mu.Unlock()

	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	if s.destroyed {
		return img
	}
	for y := 0; y < s.height; y++ {
		row := s.pixels[y*s.pitch:]
		for x := 0; x < s.width; x++ {
			img.SetRGBA(x, y, color.RGBA{R: row[x*3], G: row[x*3+1], B: row[x*3+2], A: 255})
		}
	}
	return img
}

// Destroy frees the pixel memory. Destroying twice is safe.
func (s *Surface) Destroy() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destroyed = true
	s.locked = false
	s.pixels = nil
	return nil
}

// Ensure Backend implements ports.SurfaceBackend
var _ ports.SurfaceBackend = (*Backend)(nil)

// Ensure Surface implements ports.Surface
var _ ports.Surface = (*Surface)(nil)
