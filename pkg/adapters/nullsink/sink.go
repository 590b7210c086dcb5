// Package nullsink provides a FrameSink for sessions that keep no snapshots.
package nullsink

import (
	"image"

	"github.com/user/vidplay/pkg/ports"
)

// Sink reports itself disabled, so a session never hands it a frame.
type Sink struct{}

func New() *Sink {
	return &Sink{}
}

func (s *Sink) Enabled() bool { return false }

// SaveFrame drops the frame.
func (s *Sink) SaveFrame(int, float64, image.Image) error { return nil }

var _ ports.FrameSink = (*Sink)(nil)
