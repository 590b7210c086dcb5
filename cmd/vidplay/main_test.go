package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/user/vidplay/pkg/adapters/logger"
	"github.com/user/vidplay/pkg/mocks"
	"github.com/user/vidplay/pkg/playback"
	"github.com/user/vidplay/pkg/ports"
)

// run executes the CLI with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := newApp(&out, &errOut, func(ports.LogLevel) ports.Logger { return logger.NewNoop() })
	app.ExitErrHandler = func(*cli.Context, error) {}

	envFile := filepath.Join(t.TempDir(), "none.env")
	err := app.Run(append([]string{"vidplay", "--env-file", envFile}, args...))
	return out.String(), err
}

func generate(t *testing.T, dir string, extra ...string) string {
	t.Helper()
	path := filepath.Join(dir, "movie.mp4")
	args := append([]string{"generate", "-o", path, "--frames", "4", "--width", "32", "--height", "16"}, extra...)
	if _, err := run(t, args...); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	return path
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, version) {
		t.Errorf("unexpected output %q", out)
	}
}

func TestGenerateAndPlay(t *testing.T) {
	path := generate(t, t.TempDir())

	out, err := run(t, "play", "--realtime=false", path)
	if err != nil {
		t.Fatalf("play failed: %v", err)
	}
	if !strings.Contains(out, "4") {
		t.Errorf("expected 4 presented frames, got %q", out)
	}

	out, err = run(t, "play", "--realtime=false", "--max", "2", path)
	if err != nil {
		t.Fatalf("play --max failed: %v", err)
	}
	if !strings.Contains(out, "2") {
		t.Errorf("expected 2 presented frames, got %q", out)
	}
}

func TestPlayLoop(t *testing.T) {
	path := generate(t, t.TempDir())

	out, err := run(t, "play", "--realtime=false", "--loop", "--max", "10", path)
	if err != nil {
		t.Fatalf("play --loop failed: %v", err)
	}
	if !strings.Contains(out, "10") {
		t.Errorf("looping should reach 10 frames, got %q", out)
	}
}

func TestPlayErrors(t *testing.T) {
	if _, err := run(t, "play"); err == nil {
		t.Error("expected error without a file argument")
	}

	_, err := run(t, "play", filepath.Join(t.TempDir(), "missing.mp4"))
	if !errors.Is(err, playback.ErrContainerOpenFailed) {
		t.Errorf("expected ErrContainerOpenFailed, got %v", err)
	}
}

func TestDump(t *testing.T) {
	dir := t.TempDir()
	path := generate(t, dir, "--codec", "jpeg")
	shots := filepath.Join(dir, "shots")

	out, err := run(t, "dump", "-o", shots, "--every", "2", path)
	if err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	if !strings.Contains(out, shots) {
		t.Errorf("unexpected output %q", out)
	}

	for _, name := range []string{"frame-00000.png", "frame-00002.png"} {
		if _, err := os.Stat(filepath.Join(shots, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(shots, "frame-00001.png")); err == nil {
		t.Error("frame 1 should be skipped")
	}
}

func TestDumpMax(t *testing.T) {
	dir := t.TempDir()
	path := generate(t, dir)
	shots := filepath.Join(dir, "shots")

	if _, err := run(t, "dump", "-o", shots, "--max", "1", "--no-caption", path); err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	entries, err := os.ReadDir(shots)
	if err != nil {
		t.Fatalf("read snapshots: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 snapshot, got %d", len(entries))
	}
}

func TestProbe(t *testing.T) {
	dir := t.TempDir()
	good := generate(t, dir)

	silentDir := filepath.Join(dir, "silent")
	os.MkdirAll(silentDir, 0755)
	silent := generate(t, silentDir, "--no-audio")

	out, err := run(t, "probe", good, silent)
	if err == nil {
		t.Fatal("expected failure for a file without audio")
	}

	goodAt := strings.Index(out, good)
	silentAt := strings.Index(out, silent)
	if goodAt < 0 || silentAt < 0 || goodAt > silentAt {
		t.Fatalf("results should follow argument order:\n%s", out)
	}
	goodBlock := out[goodAt:silentAt]
	if !strings.Contains(goodBlock, "* #") || !strings.Contains(goodBlock, "32x16") || !strings.Contains(goodBlock, "rawvideo") {
		t.Errorf("unexpected probe block:\n%s", goodBlock)
	}
	if strings.Contains(goodBlock, "error") {
		t.Errorf("playable file reported an error:\n%s", goodBlock)
	}
	if !strings.Contains(out[silentAt:], playback.ErrNoAudioStream.Error()) {
		t.Errorf("expected no-audio error:\n%s", out[silentAt:])
	}
}

func TestGenerateErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := run(t, "generate", "-o", filepath.Join(dir, "a.mp4"), "--codec", "h264"); err == nil {
		t.Error("expected error for unknown codec")
	}
	if _, err := run(t, "generate"); err == nil {
		t.Error("expected error without -o")
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := generate(t, dir)
	cfgPath := filepath.Join(dir, "vidplay.yaml")
	os.WriteFile(cfgPath, []byte("codecs:\n  disable: [\"raw \"]\n"), 0644)

	_, err := run(t, "--config", cfgPath, "play", "--realtime=false", path)
	if !errors.Is(err, playback.ErrUnsupportedCodec) {
		t.Errorf("expected ErrUnsupportedCodec with raw disabled, got %v", err)
	}

	if _, err := run(t, "--config", filepath.Join(dir, "missing.yaml"), "version"); err == nil {
		t.Error("expected error for a missing config file")
	}
}

func TestProbeFile_Mocks(t *testing.T) {
	container := &mocks.Container{StreamList: []ports.StreamInfo{
		{Index: 0, Kind: ports.StreamVideo, Codec: "avc1", Width: 1920, Height: 1080},
		{Index: 1, Kind: ports.StreamAudio, Codec: "mp4a", SampleRate: 44100},
	}}
	decoders := mocks.NewDecoderBackend("mp4a")

	r := probeFile(&mocks.ContainerBackend{Container: container}, decoders, "clip.mp4", mocks.NewLogger())
	if !errors.Is(r.Err, playback.ErrUnsupportedCodec) {
		t.Errorf("expected ErrUnsupportedCodec, got %v", r.Err)
	}
	if r.Selected == nil || r.Selected.Video.Index != 0 {
		t.Error("selection should still be reported")
	}
	if r.Decoders[1] != "mp4a" {
		t.Errorf("decoders = %v", r.Decoders)
	}
	if container.CloseCount != 1 {
		t.Errorf("container closed %d times", container.CloseCount)
	}

	var buf bytes.Buffer
	writeProbe(&buf, r)
	if !strings.Contains(buf.String(), "1920x1080") || !strings.Contains(buf.String(), "44100 Hz") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestSummary(t *testing.T) {
	dir := t.TempDir()
	path := generate(t, dir)
	report := filepath.Join(dir, "reports", "play.md")

	if _, err := run(t, "play", "--realtime=false", "--summary", report, path); err != nil {
		t.Fatalf("play --summary failed: %v", err)
	}
	data, err := os.ReadFile(report)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	for _, want := range []string{path, "| Frames Presented | 4 |", "| End of Stream | Yes |", "rawvideo", "vidplay " + version} {
		if !strings.Contains(string(data), want) {
			t.Errorf("summary missing %q:\n%s", want, data)
		}
	}
	if strings.Contains(string(data), "Last Error") {
		t.Errorf("clean playback should not report an error:\n%s", data)
	}

	shots := filepath.Join(dir, "shots")
	report = filepath.Join(dir, "dump.md")
	if _, err := run(t, "dump", "-o", shots, "--summary", report, path); err != nil {
		t.Fatalf("dump --summary failed: %v", err)
	}
	data, _ = os.ReadFile(report)
	if !strings.Contains(string(data), "4 ("+shots+")") {
		t.Errorf("summary missing snapshot count:\n%s", data)
	}
}
