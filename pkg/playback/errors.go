package playback

import "errors"

// Setup errors. Open returns one of these (wrapped) and leaves the session closed.
var (
	ErrContainerOpenFailed      = errors.New("playback: cannot open container")
	ErrStreamInfoUnavailable    = errors.New("playback: no stream information")
	ErrNoVideoStream            = errors.New("playback: no video stream")
	ErrNoAudioStream            = errors.New("playback: no audio stream")
	ErrUnsupportedCodec         = errors.New("playback: unsupported codec")
	ErrDecoderInitFailed        = errors.New("playback: decoder initialization failed")
	ErrConversionSetupFailed    = errors.New("playback: conversion setup failed")
	ErrResourceAllocationFailed = errors.New("playback: resource allocation failed")
)

// Runtime errors. They make a single Update report no frame; the session stays open.
var (
	ErrReadError         = errors.New("playback: packet read failed")
	ErrDecodeFailed      = errors.New("playback: decode failed")
	ErrDecodeIncomplete  = errors.New("playback: decoder needs more input")
	ErrConversionFailed  = errors.New("playback: frame conversion failed")
	ErrSurfaceLockFailed = errors.New("playback: surface lock failed")
)

var (
	// ErrEndOfStream is reported by Update once the container is exhausted.
	ErrEndOfStream = errors.New("playback: end of stream")

	// ErrSeekUnsupported is always returned by Seek.
	ErrSeekUnsupported = errors.New("playback: seek not supported")

	// ErrNotOpen is returned when operating on a closed session.
	ErrNotOpen = errors.New("playback: session not open")

	// ErrAlreadyOpen is returned by Open on an open session.
	ErrAlreadyOpen = errors.New("playback: session already open")
)

// IsSetupError reports whether err is one of the errors Open can fail with.
func IsSetupError(err error) bool {
	for _, target := range []error{
		ErrContainerOpenFailed,
		ErrStreamInfoUnavailable,
		ErrNoVideoStream,
		ErrNoAudioStream,
		ErrUnsupportedCodec,
		ErrDecoderInitFailed,
		ErrConversionSetupFailed,
		ErrResourceAllocationFailed,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
