//go:build sdl

package sdlsurface

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/user/vidplay/pkg/ports"
)

// Window is an SDL window with an accelerated renderer.
type Window struct {
	window   *sdl.Window
	renderer *sdl.Renderer
}

// OpenWindow initializes SDL video and opens a resizable window.
// The caller must run on the main OS thread.
func OpenWindow(title string, width, height int) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("init sdl: %w", err)
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(width), int32(height), sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		renderer, err = sdl.CreateRenderer(window, -1, sdl.RENDERER_SOFTWARE)
	}
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	return &Window{window: window, renderer: renderer}, nil
}

// Backend returns a surface backend drawing into this window's renderer.
func (w *Window) Backend() *Backend {
	return NewBackend(w.renderer)
}

// Present draws surface letterboxed into the window. A nil surface clears it.
func (w *Window) Present(surface ports.Surface) error {
	if err := w.renderer.SetDrawColor(0, 0, 0, 255); err != nil {
		return err
	}
	if err := w.renderer.Clear(); err != nil {
		return err
	}

	if s, ok := surface.(*Surface); ok && s.texture != nil {
		screenW, screenH := w.window.GetSize()
		scale := float64(screenW) / float64(s.width)
		if sh := float64(screenH) / float64(s.height); sh < scale {
			scale = sh
		}
		renderW := int32(float64(s.width) * scale)
		renderH := int32(float64(s.height) * scale)
		dst := sdl.Rect{
			X: (screenW - renderW) / 2,
			Y: (screenH - renderH) / 2,
			W: renderW,
			H: renderH,
		}
		if err := w.renderer.Copy(s.texture, nil, &dst); err != nil {
			return fmt.Errorf("copy texture: %w", err)
		}
	}

	w.renderer.Present()
	return nil
}

// QuitRequested drains pending events and reports whether the user closed the
// window or pressed Escape.
func (w *Window) QuitRequested() bool {
	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			quit = true
		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Keysym.Sym == sdl.K_ESCAPE {
				quit = true
			}
		}
	}
	return quit
}

// Close destroys the renderer and window and shuts SDL down.
func (w *Window) Close() {
	w.renderer.Destroy()
	w.window.Destroy()
	sdl.Quit()
}
