package ports

import "image"

// LockedRegion is write access to a surface's pixel memory.
type LockedRegion struct {
	Pixels []byte // Packed RGB24 rows
	Pitch  int    // Bytes from the start of one row to the next
}

// SurfaceBackend allocates presentation surfaces.
type SurfaceBackend interface {
	// CreateSurface allocates a surface of the given size.
	CreateSurface(width, height int) (Surface, error)
}

// Surface is a caller-visible image that receives converted frames.
type Surface interface {
	// Width returns the surface width in pixels.
	Width() int

	// Height returns the surface height in pixels.
	Height() int

	// Lock acquires exclusive write access to the pixel memory.
	Lock() (LockedRegion, error)

	// Unlock releases a previous Lock.
	Unlock()

	// Image returns a snapshot of the current contents.
	Image() image.Image

	// Destroy frees the surface.
	Destroy() error
}
