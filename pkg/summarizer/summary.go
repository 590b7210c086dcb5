// Package summarizer renders playback reports.
package summarizer

import (
	"time"

	"github.com/user/vidplay/pkg/playback"
	"github.com/user/vidplay/pkg/ports"
)

// Summary contains everything reported about one playback run.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	Input    InputInfo
	Streams  []StreamInfo
	Result   ResultInfo
	Settings Settings
}

// InputInfo describes the played file.
type InputInfo struct {
	Path string
	Size int64 // bytes, 0 when unknown
}

// StreamInfo is one row of the stream table.
type StreamInfo struct {
	ports.StreamInfo
	Decoder  string // empty when no decoder is registered
	Selected bool
}

// ResultInfo contains what the session reported at the end of the run.
type ResultInfo struct {
	FramesPresented int
	FramesDecoded   int
	LastPosition    float64 // seconds
	FramesPerSecond float64
	ScaledWidth     int
	ScaledHeight    int
	AudioSampleRate int
	EndOfStream     bool
	LastError       string
	ElapsedMs       int
}

// FramesDropped returns decoded frames that were never presented.
func (r ResultInfo) FramesDropped() int {
	if d := r.FramesDecoded - r.FramesPresented; d > 0 {
		return d
	}
	return 0
}

// Settings contains the presentation configuration.
type Settings struct {
	Scaler           string
	Alignment        int
	Realtime         bool
	SnapshotDir      string
	SnapshotsWritten int
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithInput sets the input file.
func (b *Builder) WithInput(path string, size int64) *Builder {
	b.summary.Input = InputInfo{Path: path, Size: size}
	return b
}

// WithStreams sets the stream table. decoders maps stream index to decoder
// name; selected lists the indexes chosen for playback.
func (b *Builder) WithStreams(streams []ports.StreamInfo, decoders map[int]string, selected ...int) *Builder {
	b.summary.Streams = b.summary.Streams[:0]
	for _, s := range streams {
		row := StreamInfo{StreamInfo: s, Decoder: decoders[s.Index]}
		for _, idx := range selected {
			if idx == s.Index {
				row.Selected = true
			}
		}
		b.summary.Streams = append(b.summary.Streams, row)
	}
	return b
}

// WithState copies the final session state.
func (b *Builder) WithState(st playback.State, framesDecoded, framesPresented int, lastErr error) *Builder {
	r := &b.summary.Result
	r.FramesPresented = framesPresented
	r.FramesDecoded = framesDecoded
	r.LastPosition = st.Position
	r.FramesPerSecond = st.FramesPerSecond
	r.ScaledWidth = st.ScaledWidth
	r.ScaledHeight = st.ScaledHeight
	r.AudioSampleRate = st.AudioSampleRate
	r.EndOfStream = st.EndOfStream
	r.LastError = ""
	if lastErr != nil {
		r.LastError = lastErr.Error()
	}
	return b
}

// WithElapsed sets the wall-clock duration of the run.
func (b *Builder) WithElapsed(d time.Duration) *Builder {
	b.summary.Result.ElapsedMs = int(d.Milliseconds())
	return b
}

// WithSettings sets presentation settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
