//go:build sdl

package main

import (
	"runtime"

	"github.com/user/vidplay/pkg/adapters/sdlsurface"
	"github.com/user/vidplay/pkg/config"
	"github.com/user/vidplay/pkg/ports"
)

// SDL calls must stay on the main OS thread.
func init() {
	runtime.LockOSThread()
}

// sdlDisplay presents into an SDL window.
type sdlDisplay struct {
	window *sdlsurface.Window
	closed bool
}

func newDisplay(cfg config.Config) (display, error) {
	window, err := sdlsurface.OpenWindow(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
	if err != nil {
		return nil, err
	}
	return &sdlDisplay{window: window}, nil
}

func (d *sdlDisplay) Surfaces() ports.SurfaceBackend { return d.window.Backend() }

func (d *sdlDisplay) Show(frame ports.Surface) error {
	if d.window.QuitRequested() {
		d.closed = true
		return nil
	}
	return d.window.Present(frame)
}

func (d *sdlDisplay) Closed() bool {
	if !d.closed && d.window.QuitRequested() {
		d.closed = true
	}
	return d.closed
}

func (d *sdlDisplay) Close() {
	d.window.Close()
}
