// Package mp4container provides a container backend for ISO-BMFF (MP4) files.
// Both progressive and fragmented files are supported. Packets are delivered in
// file order across all tracks, the way a demuxer interleaves them.
package mp4container

import (
	"errors"
	"fmt"
	"io"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/vidplay/pkg/ports"
)

var (
	// ErrClosed is returned when reading from a closed container.
	ErrClosed = errors.New("mp4container: container closed")

	// ErrNoMovie is returned when the file has no moov box.
	ErrNoMovie = errors.New("mp4container: no moov box found")
)

// Backend implements ports.ContainerBackend for MP4 files.
type Backend struct {
	fs     ports.FileSystem
	logger ports.Logger
}

// New creates a new MP4 container backend reading through fs.
func New(fs ports.FileSystem, logger ports.Logger) *Backend {
	return &Backend{
		fs:     fs,
		logger: logger.WithComponent("mp4"),
	}
}

// Open parses the MP4 file at path and indexes its samples.
func (b *Backend) Open(path string) (ports.Container, error) {
	f, err := b.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	mp4File, err := mp4.DecodeFile(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode mp4: %w", err)
	}

	c := &Container{
		file:   f,
		logger: b.logger,
	}
	if err := c.build(mp4File); err != nil {
		f.Close()
		return nil, err
	}

	b.logger.Debug("Indexed %d packets in %d streams", len(c.packets), len(c.streams))
	return c, nil
}

// Container is an opened MP4 file.
type Container struct {
	file    ports.File
	logger  ports.Logger
	streams []ports.StreamInfo
	packets []packetRef
	next    int
	closed  bool
}

// Streams returns the tracks of the file in moov order.
func (c *Container) Streams() ([]ports.StreamInfo, error) {
	if len(c.streams) == 0 {
		return nil, ports.ErrNoStreams
	}
	out := make([]ports.StreamInfo, len(c.streams))
	copy(out, c.streams)
	return out, nil
}

// ReadPacket returns the next packet in file order, or io.EOF at the end.
func (c *Container) ReadPacket() (ports.Packet, error) {
	if c.closed {
		return ports.Packet{}, ErrClosed
	}
	if c.next >= len(c.packets) {
		return ports.Packet{}, io.EOF
	}

	ref := c.packets[c.next]
	c.next++

	data := ref.data
	if data == nil {
		var err error
		data, err = c.readAt(ref.offset, ref.size)
		if err != nil {
			return ports.Packet{}, fmt.Errorf("read sample %d of stream %d: %w", ref.sampleNr, ref.stream, err)
		}
	}

	timescale := float64(c.streams[ref.stream].Timescale)
	return ports.Packet{
		StreamIndex: ref.stream,
		Data:        data,
		PTS:         float64(ref.decodeTime) / timescale,
		Duration:    float64(ref.dur) / timescale,
		Keyframe:    ref.sync,
	}, nil
}

// Close releases the file handle. Calling Close more than once is safe.
func (c *Container) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.packets = nil
	return c.file.Close()
}

func (c *Container) readAt(offset uint64, size uint32) ([]byte, error) {
	if _, err := c.file.Seek(int64(offset), io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek to sample: %w", err)
	}
	data := make([]byte, size)
	if _, err := io.ReadFull(c.file, data); err != nil {
		return nil, fmt.Errorf("read sample: %w", err)
	}
	return data, nil
}

// Ensure Backend implements ports.ContainerBackend
var _ ports.ContainerBackend = (*Backend)(nil)

// Ensure Container implements ports.Container
var _ ports.Container = (*Container)(nil)
