package playback

import (
	"errors"
	"reflect"
	"testing"

	"github.com/user/vidplay/pkg/mocks"
	"github.com/user/vidplay/pkg/ports"
)

func TestReleaseStack_ReverseOrderOnce(t *testing.T) {
	var order []string
	var r releaseStack
	for _, name := range []string{"container", "decoder", "surface"} {
		name := name
		r.push(name, func() error {
			order = append(order, name)
			return nil
		})
	}

	if r.len() != 3 {
		t.Fatalf("len = %d", r.len())
	}
	if err := r.drain(mocks.NewLogger()); err != nil {
		t.Fatalf("drain failed: %v", err)
	}
	if err := r.drain(mocks.NewLogger()); err != nil {
		t.Fatalf("second drain failed: %v", err)
	}

	want := []string{"surface", "decoder", "container"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
	if r.len() != 0 {
		t.Errorf("len after drain = %d", r.len())
	}
}

func TestReleaseStack_ContinuesAfterFailure(t *testing.T) {
	errA := errors.New("a failed")
	errC := errors.New("c failed")
	released := 0

	var r releaseStack
	r.push("a", func() error { released++; return errA })
	r.push("b", func() error { released++; return nil })
	r.push("c", func() error { released++; return errC })

	log := mocks.NewLogger()
	err := r.drain(log)
	if released != 3 {
		t.Errorf("released %d, want 3", released)
	}
	if !errors.Is(err, errA) || !errors.Is(err, errC) {
		t.Errorf("expected joined errors, got %v", err)
	}
	if n := log.Count(ports.LevelWarn, "Failed to release"); n != 2 {
		t.Errorf("release warnings = %d, want 2", n)
	}
}
