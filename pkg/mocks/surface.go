package mocks

import (
	"image"
	"image/color"

	"github.com/user/vidplay/pkg/ports"
)

// SurfaceBackend is a mock implementation of ports.SurfaceBackend.
type SurfaceBackend struct {
	CreateErr error
	// Padding is added to every row of created surfaces.
	Padding int

	Surfaces []*Surface
}

func (m *SurfaceBackend) CreateSurface(width, height int) (ports.Surface, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	pitch := width*ports.BytesPerPixelRGB24 + m.Padding
	s := &Surface{
		W:      width,
		H:      height,
		Pitch:  pitch,
		Pixels: make([]byte, pitch*height),
	}
	m.Surfaces = append(m.Surfaces, s)
	return s, nil
}

var _ ports.SurfaceBackend = (*SurfaceBackend)(nil)

// Surface is a mock ports.Surface that records lock usage.
type Surface struct {
	W, H    int
	Pitch   int
	Pixels  []byte
	LockErr error

	LockCount    int
	UnlockCount  int
	DestroyCount int
}

func (m *Surface) Width() int  { return m.W }
func (m *Surface) Height() int { return m.H }

func (m *Surface) Lock() (ports.LockedRegion, error) {
	if m.LockErr != nil {
		return ports.LockedRegion{}, m.LockErr
	}
	m.LockCount++
	return ports.LockedRegion{Pixels: m.Pixels, Pitch: m.Pitch}, nil
}

func (m *Surface) Unlock() {
	m.UnlockCount++
}

func (m *Surface) Image() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, m.W, m.H))
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			p := m.Pixels[y*m.Pitch+x*3:]
			img.SetRGBA(x, y, color.RGBA{R: p[0], G: p[1], B: p[2], A: 255})
		}
	}
	return img
}

func (m *Surface) Destroy() error {
	m.DestroyCount++
	return nil
}

var _ ports.Surface = (*Surface)(nil)
