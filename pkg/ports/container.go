// Package ports defines interfaces for the backends a playback session drives.
package ports

import (
	"errors"
	"fmt"
)

// ErrNoStreams is returned by Container.Streams when the file holds no elementary streams.
var ErrNoStreams = errors.New("ports: container has no streams")

// StreamKind classifies an elementary stream.
type StreamKind int

const (
	// StreamOther is any stream that is neither video nor audio (text, metadata, hint).
	StreamOther StreamKind = iota
	// StreamVideo is a video track.
	StreamVideo
	// StreamAudio is an audio track.
	StreamAudio
)

// String returns the string representation of the stream kind.
func (k StreamKind) String() string {
	switch k {
	case StreamVideo:
		return "video"
	case StreamAudio:
		return "audio"
	default:
		return "other"
	}
}

// Rational is an exact ratio such as a frame rate.
type Rational struct {
	Num uint32
	Den uint32
}

// Float returns the ratio as a float64, or 0 when the denominator is zero.
func (r Rational) Float() float64 {
	if r.Den == 0 {
		return 0
	}
	return float64(r.Num) / float64(r.Den)
}

// String formats the ratio as num/den.
func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// StreamInfo describes one elementary stream discovered in a container.
type StreamInfo struct {
	Index     int        // Position in the container's stream list
	Kind      StreamKind // Video, audio or other
	Codec     string     // Sample entry four-CC, e.g. "jpeg", "mp4a"
	Width     int        // Video only
	Height    int        // Video only
	FrameRate Rational   // Video only, declared rate
	// Audio only
	SampleRate int
	Channels   int

	Timescale uint32  // Media timescale (ticks per second)
	Duration  float64 // Stream duration in seconds, 0 if unknown
}

// Packet is one encoded sample read from the container.
type Packet struct {
	StreamIndex int
	Data        []byte
	PTS         float64 // Presentation time in seconds
	Duration    float64 // Seconds
	Keyframe    bool
}

// ContainerBackend opens media containers.
type ContainerBackend interface {
	// Open parses the file at path and returns a demuxable container.
	Open(path string) (Container, error)
}

// Container is an opened, demuxable media file.
type Container interface {
	// Streams returns the elementary streams in container order.
	// Returns ErrNoStreams when there are none.
	Streams() ([]StreamInfo, error)

	// ReadPacket returns the next packet in file order across all streams.
	// It returns io.EOF once every packet has been delivered.
	ReadPacket() (Packet, error)

	// Close releases the underlying file.
	Close() error
}
