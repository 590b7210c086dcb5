package ports

import "image"

// FrameSink receives presented frames for offline inspection.
type FrameSink interface {
	// Enabled returns true if frames should be delivered.
	Enabled() bool

	// SaveFrame stores the index-th presented frame shown at pts seconds.
	SaveFrame(index int, pts float64, img image.Image) error
}
