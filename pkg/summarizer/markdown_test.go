package summarizer

import (
	"strings"
	"testing"
	"time"

	"github.com/user/vidplay/pkg/mocks"
	"github.com/user/vidplay/pkg/playback"
)

func testSummary() *Summary {
	s := NewBuilder().
		WithInput("/media/clip.mp4", 1024*1024).
		WithStreams(testStreams, map[int]string{0: "mjpeg", 1: "aac"}, 0, 1).
		WithState(playback.State{Position: 3.96, FramesPerSecond: 25, ScaledWidth: 320, ScaledHeight: 240, AudioSampleRate: 48000, EndOfStream: true}, 100, 99, nil).
		WithSettings(Settings{Scaler: "bilinear", Alignment: 64, SnapshotDir: "frames", SnapshotsWritten: 10}).
		Build()
	s.GeneratedAt = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	return s
}

func TestMarkdownFormatter_Format(t *testing.T) {
	result := NewMarkdownFormatter().Format(testSummary())

	checks := []string{
		"# Playback Summary",
		"2024-01-15 10:30:00",
		"/media/clip.mp4",
		"1.00 MB",
		"| 0 | video | `jpeg` | mjpeg | 320x240, 25.000 fps | ✓ |",
		"| 1 | audio | `mp4a` | aac | 48000 Hz, 2 ch | ✓ |",
		"| Frames Presented | 99 |",
		"| Dropped Frames | 1 |",
		"| Last Position | 3.960 s |",
		"| End of Stream | Yes |",
		"| Surface Alignment | 64 |",
		"10 (frames)",
	}
	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q\n%s", check, result)
		}
	}
	if strings.Contains(result, "Last Error") {
		t.Error("Last Error row should be omitted without an error")
	}
}

func TestMarkdownFormatter_OtherStreamHasNoDecoder(t *testing.T) {
	result := NewMarkdownFormatter().Format(testSummary())
	if !strings.Contains(result, "| 2 | other | `tx3g` | None |") {
		t.Errorf("unexpected stream row:\n%s", result)
	}
}

func TestMarkdownFormatter_ErrorAndUnknownSize(t *testing.T) {
	s := testSummary()
	s.Input.Size = 0
	s.Result.LastError = "playback: read error: a|b"

	result := NewMarkdownFormatter().Format(s)
	if !strings.Contains(result, "| File Size | N/A |") {
		t.Error("expected N/A file size")
	}
	if !strings.Contains(result, `| Last Error | playback: read error: a\|b |`) {
		t.Errorf("expected escaped error row:\n%s", result)
	}
}

func TestMarkdownFormatter_WithTranslator(t *testing.T) {
	translator := func(key string) string {
		translations := map[string]string{
			"Playback Summary": "再生サマリー",
			"Frames Presented": "表示フレーム数",
		}
		if v, ok := translations[key]; ok {
			return v
		}
		return key
	}

	result := NewMarkdownFormatter(WithTranslator(translator)).Format(testSummary())

	if !strings.Contains(result, "再生サマリー") {
		t.Error("expected translated 'Playback Summary'")
	}
	if !strings.Contains(result, "表示フレーム数") {
		t.Error("expected translated 'Frames Presented'")
	}
}

func TestMarkdownFormatter_WithVersion(t *testing.T) {
	result := NewMarkdownFormatter(WithVersion("v1.2.0")).Format(testSummary())

	if !strings.Contains(result, "vidplay v1.2.0") {
		t.Error("expected output to contain version 'v1.2.0'")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{100, "100 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1024 * 1024, "1.00 MB"},
		{1024 * 1024 * 1024, "1.00 GB"},
		{1536 * 1024 * 1024, "1.50 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := formatBytes(tt.bytes)
			if got != tt.want {
				t.Errorf("formatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestWriter(t *testing.T) {
	fs := mocks.NewFileSystem()
	formatter := FormatFunc(func(s *Summary) string { return "report for " + s.Input.Path })

	if err := NewWriter(formatter, fs).Write("out/summary.md", testSummary()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data, ok := fs.GetFile("out/summary.md")
	if !ok || string(data) != "report for /media/clip.mp4" {
		t.Errorf("unexpected file %q", data)
	}

	if got := FileSize(fs, "out/summary.md"); got != int64(len(data)) {
		t.Errorf("FileSize = %d, want %d", got, len(data))
	}
	if got := FileSize(fs, "missing"); got != 0 {
		t.Errorf("FileSize(missing) = %d", got)
	}
}
