package playback

import (
	"errors"
	"fmt"

	"github.com/user/vidplay/pkg/ports"
)

// DefaultMaxFrameBytes bounds the conversion buffer of one frame.
const DefaultMaxFrameBytes = 256 << 20

// Backends are the capabilities a session is built from.
type Backends struct {
	Containers ports.ContainerBackend
	Decoders   ports.DecoderBackend
	Converter  ports.ConverterBackend
	Surfaces   ports.SurfaceBackend
}

// Options configures a session.
type Options struct {
	// ScaledWidth and ScaledHeight set the presented size. Zero means the
	// native size of the video stream.
	ScaledWidth  int
	ScaledHeight int

	// MaxFrameBytes rejects videos whose converted frame would be larger.
	MaxFrameBytes int

	// Sink, when enabled, receives every presented frame.
	Sink ports.FrameSink
}

// Session plays one media file at a time. See Video for the contract.
type Session struct {
	backends Backends
	opts     Options
	logger   ports.Logger

	resources releaseStack
	open      bool
	path      string

	container ports.Container
	video     *Binding
	audio     *Binding
	converter ports.ConverterContext
	buffer    []byte
	pitch     int
	surface   ports.Surface

	state         State
	current       ports.Surface
	framesDecoded int
	lastErr       error
}

// NewSession creates a closed session.
func NewSession(backends Backends, opts Options, logger ports.Logger) *Session {
	if opts.MaxFrameBytes <= 0 {
		opts.MaxFrameBytes = DefaultMaxFrameBytes
	}
	return &Session{
		backends: backends,
		opts:     opts,
		logger:   logger.WithComponent("playback"),
	}
}

// Open opens path and prepares every resource needed to present frames.
// On failure everything acquired so far is released and the error wraps one
// of the setup errors.
func (s *Session) Open(path string) (err error) {
	if s.open {
		return ErrAlreadyOpen
	}
	s.reset()

	defer func() {
		if err != nil {
			s.logger.Warn("Failed to open %s: %v", path, err)
			s.state.EndOfStream = true
			s.SetPlaying()
			s.teardown()
		}
	}()

	if path == "" {
		return fmt.Errorf("%w: empty path", ErrContainerOpenFailed)
	}

	container, err := s.backends.Containers.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrContainerOpenFailed, err)
	}
	s.container = container
	s.resources.push("container", container.Close)
	// Registered ahead of the decoders so it is released after them.
	s.resources.push("conversion context", func() error {
		if s.converter == nil {
			return nil
		}
		return s.converter.Close()
	})

	streams, err := container.Streams()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStreamInfoUnavailable, err)
	}
	if len(streams) == 0 {
		return ErrStreamInfoUnavailable
	}

	sel, err := SelectStreams(streams, s.logger)
	if err != nil {
		return err
	}

	s.video, err = Bind(s.backends.Decoders, container, sel.Video)
	if err != nil {
		return err
	}
	s.resources.push("video decoder", s.video.Close)

	s.audio, err = Bind(s.backends.Decoders, container, sel.Audio)
	if err != nil {
		return err
	}
	s.resources.push("audio decoder", s.audio.Close)

	width, height := s.opts.ScaledWidth, s.opts.ScaledHeight
	if width <= 0 || height <= 0 {
		width, height = sel.Video.Width, sel.Video.Height
	}

	converter, err := s.backends.Converter.Setup(s.video.Layout(), sel.Video.Width, sel.Video.Height, width, height)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConversionSetupFailed, err)
	}
	s.converter = converter

	s.pitch = width * ports.BytesPerPixelRGB24
	size := s.pitch * height
	if size <= 0 || size > s.opts.MaxFrameBytes {
		return fmt.Errorf("%w: conversion buffer of %d bytes", ErrResourceAllocationFailed, size)
	}
	s.buffer = make([]byte, size)
	s.resources.push("conversion buffer", func() error {
		s.buffer = nil
		return nil
	})

	surface, err := s.backends.Surfaces.CreateSurface(width, height)
	if err != nil {
		return fmt.Errorf("%w: surface: %v", ErrResourceAllocationFailed, err)
	}
	s.surface = surface
	s.resources.push("surface", surface.Destroy)

	s.open = true
	s.path = path
	s.state = State{
		FramesPerSecond: sel.Video.FrameRate.Float(),
		ScaledWidth:     width,
		ScaledHeight:    height,
		AudioSampleRate: sel.Audio.SampleRate,
	}

	s.logger.Info("Opened %s: %dx%d %s (%s) at %.3f fps, audio %s %d Hz",
		path, sel.Video.Width, sel.Video.Height, sel.Video.Codec, s.video.DecoderName(),
		s.state.FramesPerSecond, sel.Audio.Codec, sel.Audio.SampleRate)
	return nil
}

// Close ends playback and releases every resource in reverse order of
// acquisition. Closing a closed session does nothing.
func (s *Session) Close() error {
	s.state.EndOfStream = true
	s.SetPlaying()
	s.current = nil

	wasOpen := s.open
	err := s.teardown()
	if wasOpen {
		s.logger.Info("Closed %s after %d frames", s.path, s.framesDecoded)
	}
	return err
}

// teardown drains the release stack and drops every handle.
func (s *Session) teardown() error {
	err := s.resources.drain(s.logger)
	s.open = false
	s.container = nil
	s.video = nil
	s.audio = nil
	s.converter = nil
	s.buffer = nil
	s.surface = nil
	s.current = nil
	return err
}

func (s *Session) reset() {
	s.state = State{}
	s.current = nil
	s.framesDecoded = 0
	s.lastErr = nil
	s.path = ""
}

// Start marks the session as playing. Repeated calls have no further effect.
func (s *Session) Start() error {
	if !s.open {
		return ErrNotOpen
	}
	s.state.Playing = true
	s.SetPlaying()
	return nil
}

// SetPlaying forces playing off once the end of the stream was reached.
func (s *Session) SetPlaying() {
	if s.state.EndOfStream {
		s.state.Playing = false
	}
}

// Seek is not supported. It never changes the session state.
func (s *Session) Seek(position float64) error {
	return ErrSeekUnsupported
}

// Update reads packets until a video frame is decoded and presented, or the
// input ends. Audio packets are consumed without decoding.
func (s *Session) Update() bool {
	if !s.open {
		s.noFrame(ErrNotOpen)
		return false
	}
	if s.state.EndOfStream {
		s.noFrame(ErrEndOfStream)
		s.SetPlaying()
		return false
	}

	// pending holds the incomplete-decode cause until a frame completes.
	var pending error
	for {
		step := s.video.DecodeNext()

		switch step.Status {
		case StatusFrame:
			s.framesDecoded++
			return s.present(step.Frame)

		case StatusForeign:
			s.skip(step.Packet)

		case StatusNotReady:
			pending = step.Err
			s.lastErr = pending
			s.logger.Debug("Decoder needs more input after packet at %.3fs", step.Packet.PTS)

		case StatusEndOfStream:
			if pending != nil {
				s.endOfStream(fmt.Errorf("%w: %w", ErrEndOfStream, pending))
			} else {
				s.endOfStream(ErrEndOfStream)
			}
			return false

		case StatusReadError:
			s.endOfStream(fmt.Errorf("%w: %v", ErrReadError, step.Err))
			return false

		case StatusDecodeError:
			s.noFrame(fmt.Errorf("%w: %v", ErrDecodeFailed, step.Err))
			s.logger.Warn("Dropped frame at %.3fs: %v", step.Packet.PTS, step.Err)
			return false
		}
	}
}

// skip consumes a packet of another stream.
func (s *Session) skip(pkt ports.Packet) {
	if pkt.StreamIndex != s.audio.Stream().Index {
		return
	}
	s.state.AudioPosition = pkt.PTS
	if step := s.audio.Feed(pkt); step.Status == StatusDecodeError {
		s.logger.Debug("Audio packet at %.3fs rejected: %v", pkt.PTS, step.Err)
	}
}

// present converts frame and writes it into the surface.
func (s *Session) present(frame ports.Frame) bool {
	if err := s.converter.Convert(frame.Image, s.buffer, s.pitch); err != nil {
		s.noFrame(fmt.Errorf("%w: %v", ErrConversionFailed, err))
		s.logger.Warn("Failed to convert frame at %.3fs: %v", frame.PTS, err)
		return false
	}

	if err := WriteFrame(s.buffer, s.pitch, s.surface, s.state.ScaledWidth, s.state.ScaledHeight); err != nil {
		s.noFrame(err)
		s.logger.Warn("Failed to write frame at %.3fs: %v", frame.PTS, err)
		return false
	}

	s.current = s.surface
	s.lastErr = nil
	s.state.VideoPosition = frame.PTS
	s.state.Position = frame.PTS
	s.SetPlaying()

	if s.opts.Sink != nil && s.opts.Sink.Enabled() {
		if err := s.opts.Sink.SaveFrame(s.framesDecoded-1, frame.PTS, s.surface.Image()); err != nil {
			s.logger.Warn("Failed to save frame %d: %v", s.framesDecoded-1, err)
		}
	}
	return true
}

func (s *Session) noFrame(cause error) {
	s.current = nil
	s.lastErr = cause
}

func (s *Session) endOfStream(cause error) {
	s.noFrame(cause)
	s.state.EndOfStream = true
	s.SetPlaying()
	if errors.Is(cause, ErrEndOfStream) {
		s.logger.Info("End of stream after %d frames", s.framesDecoded)
	} else {
		s.logger.Warn("Stopping playback: %v", cause)
	}
}

// State returns a snapshot of the playback state.
func (s *Session) State() State {
	return s.state
}

// CurrentFrame returns the surface holding the last presented frame, or nil.
func (s *Session) CurrentFrame() ports.Surface {
	return s.current
}

// IsOpen reports whether the session holds an open file.
func (s *Session) IsOpen() bool {
	return s.open
}

// FramesDecoded returns the number of video frames decoded since Open.
func (s *Session) FramesDecoded() int {
	return s.framesDecoded
}

// LastError returns the reason the most recent Update produced no frame.
func (s *Session) LastError() error {
	return s.lastErr
}

// Ensure Session implements Video
var _ Video = (*Session)(nil)
