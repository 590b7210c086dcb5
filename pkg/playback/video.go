// Package playback implements a video playback session: stream selection,
// decoder binding, frame conversion to packed RGB and presentation into a
// lockable surface, driven by the caller one Update at a time.
package playback

import "github.com/user/vidplay/pkg/ports"

// Video is the playback capability set. Callers hold this interface rather
// than a concrete session type.
//
// Implementations are not safe for concurrent use. A Video must only be
// called from one goroutine at a time.
type Video interface {
	// Open binds the session to the media file at path.
	Open(path string) error

	// Close releases every resource. It is safe on a closed or partially
	// opened session.
	Close() error

	// Start marks the session as playing. It does not decode.
	Start() error

	// SetPlaying turns playback off once the stream is exhausted.
	SetPlaying()

	// Seek moves playback to position seconds.
	Seek(position float64) error

	// Update decodes until the next video frame is presented and reports
	// whether CurrentFrame now holds a new frame.
	Update() bool

	// State returns a snapshot of the playback state.
	State() State

	// CurrentFrame returns the surface holding the last presented frame, or
	// nil when the last Update produced no frame.
	CurrentFrame() ports.Surface
}

// State is the read-only view of a session.
type State struct {
	Position        float64 // Seconds; PTS of the last presented frame
	VideoPosition   float64
	AudioPosition   float64 // PTS of the last audio packet read
	FramesPerSecond float64
	ScaledWidth     int
	ScaledHeight    int
	AudioSampleRate int
	Playing         bool
	EndOfStream     bool
}
