package mocks

import (
	"image"
	"sync"

	"github.com/user/vidplay/pkg/ports"
)

// SavedFrame records one FrameSink.SaveFrame call.
type SavedFrame struct {
	Index int
	PTS   float64
	Image image.Image
}

// FrameSink is a mock implementation of ports.FrameSink.
type FrameSink struct {
	mu      sync.Mutex
	enabled bool

	SaveFrameFunc func(index int, pts float64, img image.Image) error
	Frames        []SavedFrame
}

// NewFrameSink creates a new mock FrameSink.
func NewFrameSink(enabled bool) *FrameSink {
	return &FrameSink{enabled: enabled}
}

func (m *FrameSink) Enabled() bool {
	return m.enabled
}

func (m *FrameSink) SaveFrame(index int, pts float64, img image.Image) error {
	if m.SaveFrameFunc != nil {
		return m.SaveFrameFunc(index, pts, img)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Frames = append(m.Frames, SavedFrame{Index: index, PTS: pts, Image: img})
	return nil
}

var _ ports.FrameSink = (*FrameSink)(nil)
