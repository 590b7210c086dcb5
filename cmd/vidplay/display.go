package main

import "github.com/user/vidplay/pkg/ports"

// display receives presented frames during play.
type display interface {
	// Surfaces creates the surfaces a session presents into.
	Surfaces() ports.SurfaceBackend
	// Show makes frame visible.
	Show(frame ports.Surface) error
	// Closed reports whether the user asked to stop.
	Closed() bool
	Close()
}
