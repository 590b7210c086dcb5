package mocks

import (
	"io"

	"github.com/user/vidplay/pkg/ports"
)

// ContainerBackend is a mock implementation of ports.ContainerBackend.
type ContainerBackend struct {
	OpenFunc func(path string) (ports.Container, error)

	// Container is returned by Open when OpenFunc is nil.
	Container *Container
	OpenErr   error

	OpenedPaths []string
}

func (m *ContainerBackend) Open(path string) (ports.Container, error) {
	m.OpenedPaths = append(m.OpenedPaths, path)
	if m.OpenFunc != nil {
		return m.OpenFunc(path)
	}
	if m.OpenErr != nil {
		return nil, m.OpenErr
	}
	return m.Container, nil
}

var _ ports.ContainerBackend = (*ContainerBackend)(nil)

// Container is a scripted ports.Container.
type Container struct {
	StreamList []ports.StreamInfo
	StreamsErr error

	// Packets are returned in order, then io.EOF.
	Packets []ports.Packet
	// ReadErrs replaces the packet at the given read index with an error.
	ReadErrs map[int]error

	ReadPacketFunc func() (ports.Packet, error)

	Reads      int
	CloseCount int
}

func (m *Container) Streams() ([]ports.StreamInfo, error) {
	if m.StreamsErr != nil {
		return nil, m.StreamsErr
	}
	if len(m.StreamList) == 0 {
		return nil, ports.ErrNoStreams
	}
	return m.StreamList, nil
}

func (m *Container) ReadPacket() (ports.Packet, error) {
	if m.ReadPacketFunc != nil {
		return m.ReadPacketFunc()
	}
	i := m.Reads
	m.Reads++
	if err, ok := m.ReadErrs[i]; ok {
		return ports.Packet{}, err
	}
	if i >= len(m.Packets) {
		return ports.Packet{}, io.EOF
	}
	return m.Packets[i], nil
}

func (m *Container) Close() error {
	m.CloseCount++
	return nil
}

var _ ports.Container = (*Container)(nil)
