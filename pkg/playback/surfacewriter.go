package playback

import (
	"fmt"

	"github.com/user/vidplay/pkg/ports"
)

// WriteFrame copies a packed RGB24 frame of width x height into surface.
// The surface stays locked only for the duration of the copy.
func WriteFrame(src []byte, srcPitch int, surface ports.Surface, width, height int) error {
	region, err := surface.Lock()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSurfaceLockFailed, err)
	}
	defer surface.Unlock()

	rowBytes := width * ports.BytesPerPixelRGB24
	if region.Pitch < rowBytes || len(region.Pixels) < region.Pitch*(height-1)+rowBytes {
		return fmt.Errorf("%w: locked region of %d bytes at pitch %d cannot hold %dx%d",
			ErrSurfaceLockFailed, len(region.Pixels), region.Pitch, width, height)
	}

	copyRows(region.Pixels, region.Pitch, src, srcPitch, rowBytes, height)
	return nil
}

// copyRows copies height rows of rowBytes each. When both pitches equal the
// row width the rows are contiguous and copied at once. Reports which path ran.
func copyRows(dst []byte, dstPitch int, src []byte, srcPitch int, rowBytes, height int) (contiguous bool) {
	if dstPitch == rowBytes && srcPitch == rowBytes {
		n := rowBytes * height
		copy(dst[:n], src[:n])
		return true
	}

	for y := 0; y < height; y++ {
		copy(dst[y*dstPitch:y*dstPitch+rowBytes], src[y*srcPitch:y*srcPitch+rowBytes])
	}
	return false
}
