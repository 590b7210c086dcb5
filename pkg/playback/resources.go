package playback

import (
	"errors"
	"fmt"

	"github.com/user/vidplay/pkg/ports"
)

// release is one registered resource.
type release struct {
	name string
	fn   func() error
	done bool
}

// releaseStack releases resources in reverse order of acquisition.
// Each resource is released at most once.
type releaseStack struct {
	entries []*release
}

// push registers fn as the release for a freshly acquired resource.
func (r *releaseStack) push(name string, fn func() error) {
	r.entries = append(r.entries, &release{name: name, fn: fn})
}

// len returns the number of resources not yet released.
func (r *releaseStack) len() int {
	n := 0
	for _, e := range r.entries {
		if !e.done {
			n++
		}
	}
	return n
}

// drain releases everything still held, newest first, and empties the stack.
// All releases run even if some fail; failures are joined.
func (r *releaseStack) drain(logger ports.Logger) error {
	var errs []error
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if e.done {
			continue
		}
		e.done = true
		if err := e.fn(); err != nil {
			logger.Warn("Failed to release %s: %v", e.name, err)
			errs = append(errs, fmt.Errorf("release %s: %w", e.name, err))
			continue
		}
		logger.Debug("Released %s", e.name)
	}
	r.entries = nil
	return errors.Join(errs...)
}
