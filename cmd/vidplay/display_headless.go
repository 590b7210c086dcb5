//go:build !sdl

package main

import (
	"github.com/user/vidplay/pkg/adapters/memsurface"
	"github.com/user/vidplay/pkg/config"
	"github.com/user/vidplay/pkg/ports"
)

// headlessDisplay presents into memory. Built without the sdl tag.
type headlessDisplay struct {
	surfaces *memsurface.Backend
	shown    int
}

func newDisplay(cfg config.Config) (display, error) {
	return &headlessDisplay{surfaces: memsurface.New(cfg.Alignment)}, nil
}

func (d *headlessDisplay) Surfaces() ports.SurfaceBackend { return d.surfaces }

func (d *headlessDisplay) Show(ports.Surface) error {
	d.shown++
	return nil
}

func (d *headlessDisplay) Closed() bool { return false }

func (d *headlessDisplay) Close() {}
