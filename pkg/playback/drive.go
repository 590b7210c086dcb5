package playback

import (
	"context"
	"time"

	"github.com/user/vidplay/pkg/ports"
)

// DriveOptions controls Drive.
type DriveOptions struct {
	// Realtime paces Update calls at the stream frame rate.
	Realtime bool
	// MaxFrames stops after this many presented frames. 0 means no limit.
	MaxFrames int
	// FallbackFPS is used for pacing when the stream declares no rate.
	FallbackFPS float64
}

// Rates outside (0, MaxPacedFPS] are treated as undeclared when pacing.
const (
	MaxPacedFPS     = 1000
	defaultPacedFPS = 25
)

// frameInterval returns the pacing period for fps, falling back to fallback
// and then to defaultPacedFPS. The result is always positive.
func frameInterval(fps, fallback float64) time.Duration {
	for _, rate := range []float64{fps, fallback} {
		if rate > 0 && rate <= MaxPacedFPS {
			return time.Duration(float64(time.Second) / rate)
		}
	}
	return time.Second / defaultPacedFPS
}

// FrameFunc receives each presented frame. Returning false stops Drive.
type FrameFunc func(index int, state State, frame ports.Surface) (bool, error)

// Drive starts v and calls Update until the stream ends, ctx is cancelled,
// MaxFrames is reached or onFrame asks to stop. It returns the number of
// presented frames.
func Drive(ctx context.Context, v Video, opts DriveOptions, onFrame FrameFunc) (int, error) {
	if err := v.Start(); err != nil {
		return 0, err
	}

	var ticker *time.Ticker
	if opts.Realtime {
		ticker = time.NewTicker(frameInterval(v.State().FramesPerSecond, opts.FallbackFPS))
		defer ticker.Stop()
	}

	presented := 0
	for {
		if err := ctx.Err(); err != nil {
			return presented, err
		}

		if v.Update() {
			if onFrame != nil {
				more, err := onFrame(presented, v.State(), v.CurrentFrame())
				if err != nil {
					return presented + 1, err
				}
				if !more {
					return presented + 1, nil
				}
			}
			presented++
			if opts.MaxFrames > 0 && presented >= opts.MaxFrames {
				return presented, nil
			}
		}

		state := v.State()
		if state.EndOfStream || !state.Playing {
			return presented, nil
		}

		if ticker != nil {
			select {
			case <-ctx.Done():
				return presented, ctx.Err()
			case <-ticker.C:
			}
		}
	}
}
