package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/vidplay/pkg/adapters/filesink"
	"github.com/user/vidplay/pkg/adapters/ggrenderer"
	"github.com/user/vidplay/pkg/adapters/memsurface"
	"github.com/user/vidplay/pkg/adapters/mp4writer"
	"github.com/user/vidplay/pkg/adapters/nullsink"
	"github.com/user/vidplay/pkg/playback"
	"github.com/user/vidplay/pkg/ports"
	"github.com/user/vidplay/pkg/summarizer"
)

func playCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:      "play",
		Usage:     l10n.T("Play a media file at its native frame rate"),
		ArgsUsage: "<file|s3://bucket/key>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "max",
				Usage: l10n.T("Stop after this many frames (0 = all)"),
			},
			&cli.BoolFlag{
				Name:  "realtime",
				Value: true,
				Usage: l10n.T("Pace frames at the stream frame rate"),
			},
			&cli.BoolFlag{
				Name:  "loop",
				Usage: l10n.T("Restart from the beginning at the end of the stream"),
			},
			summaryFlag(),
		},
		Action: a.play,
	}
}

func (a *app) play(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit(l10n.T("A media file argument is required"), 2)
	}
	ctx, cancel := a.interruptible(c.Context)
	defer cancel()
	stats := playStats{started: time.Now()}

	path, err := a.resolve(ctx, c.Args().First())
	if err != nil {
		return err
	}

	disp, err := newDisplay(a.cfg)
	if err != nil {
		return err
	}
	defer disp.Close()

	s := a.session(disp.Surfaces(), nullsink.New())
	defer s.Close()

	opts := playback.DriveOptions{
		Realtime:  c.Bool("realtime"),
		MaxFrames: c.Int("max"),
	}
	loop := a.cfg.Window.Loop || c.Bool("loop")

	total := 0
	for {
		if err := s.Open(path); err != nil {
			return err
		}

		n, err := playback.Drive(ctx, s, opts, func(_ int, _ playback.State, frame ports.Surface) (bool, error) {
			if disp.Closed() {
				return false, nil
			}
			return true, disp.Show(frame)
		})
		total += n
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		stats.capture(s, n)

		ended := s.State().EndOfStream
		if err := s.Close(); err != nil {
			a.log.Warn("Failed to release resources: %v", err)
		}
		if !loop || !ended || ctx.Err() != nil || disp.Closed() {
			break
		}
		if opts.MaxFrames > 0 {
			if opts.MaxFrames -= n; opts.MaxFrames <= 0 {
				break
			}
		}
	}

	fmt.Fprintln(a.out, l10n.F("Presented %d frames", total))
	if dest := c.String("summary"); dest != "" {
		return a.writeSummary(dest, c.Args().First(), path, stats, summarizer.Settings{Realtime: opts.Realtime})
	}
	return nil
}

func dumpCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:      "dump",
		Usage:     l10n.T("Write presented frames as PNG snapshots"),
		ArgsUsage: "<file|s3://bucket/key>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   l10n.T("Snapshot directory"),
			},
			&cli.IntFlag{
				Name:  "every",
				Usage: l10n.T("Write every Nth frame"),
			},
			&cli.IntFlag{
				Name:  "max",
				Usage: l10n.T("Stop after this many snapshots (0 = all)"),
			},
			&cli.IntFlag{
				Name:  "width",
				Usage: l10n.T("Snapshot width in pixels (0 = frame width)"),
			},
			&cli.BoolFlag{
				Name:  "no-caption",
				Usage: l10n.T("Do not draw the frame index and timecode"),
			},
			summaryFlag(),
		},
		Action: a.dump,
	}
}

func (a *app) dump(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit(l10n.T("A media file argument is required"), 2)
	}
	ctx, cancel := a.interruptible(c.Context)
	defer cancel()
	stats := playStats{started: time.Now()}

	path, err := a.resolve(ctx, c.Args().First())
	if err != nil {
		return err
	}

	dir := a.cfg.Snapshot.Dir
	if c.IsSet("output") {
		dir = c.String("output")
	}
	opts := a.cfg.ToSinkOptions()
	if c.IsSet("every") {
		opts.Every = c.Int("every")
	}
	if c.IsSet("max") {
		opts.MaxFrames = c.Int("max")
	}
	if c.IsSet("width") {
		opts.Width = c.Int("width")
	}
	if c.Bool("no-caption") {
		opts.NoCaption = true
	}

	sink := filesink.New(dir, a.fs, ggrenderer.New(), opts)
	s := a.session(memsurface.New(a.cfg.Alignment), sink)
	if err := s.Open(path); err != nil {
		return err
	}
	defer s.Close()

	n, err := playback.Drive(ctx, s, playback.DriveOptions{}, func(int, playback.State, ports.Surface) (bool, error) {
		return opts.MaxFrames == 0 || sink.Written() < opts.MaxFrames, nil
	})
	if err != nil {
		return err
	}

	stats.capture(s, n)

	fmt.Fprintln(a.out, l10n.F("Wrote %d snapshots to %s", sink.Written(), dir))
	if dest := c.String("summary"); dest != "" {
		return a.writeSummary(dest, c.Args().First(), path, stats, summarizer.Settings{
			SnapshotDir:      dir,
			SnapshotsWritten: sink.Written(),
		})
	}
	return nil
}

func generateCommand(a *app) *cli.Command {
	defaults := mp4writer.DefaultOptions()
	return &cli.Command{
		Name:  "generate",
		Usage: l10n.T("Generate a test-pattern MP4 file"),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Required: true,
				Usage:    l10n.T("Output MP4 file path (required)"),
			},
			&cli.IntFlag{Name: "frames", Value: defaults.Frames, Usage: l10n.T("Number of video frames")},
			&cli.IntFlag{Name: "width", Value: defaults.Width, Usage: l10n.T("Frame width in pixels")},
			&cli.IntFlag{Name: "height", Value: defaults.Height, Usage: l10n.T("Frame height in pixels")},
			&cli.IntFlag{Name: "fps", Value: defaults.FPS, Usage: l10n.T("Frames per second")},
			&cli.StringFlag{Name: "codec", Value: "raw", Usage: l10n.T("Video codec (raw, jpeg)")},
			&cli.IntFlag{Name: "quality", Value: defaults.JPEGQuality, Usage: l10n.T("JPEG quality (1-100)")},
			&cli.BoolFlag{Name: "no-audio", Usage: l10n.T("Omit the audio track")},
			&cli.BoolFlag{Name: "no-video", Usage: l10n.T("Omit the video track")},
		},
		Action: a.generate,
	}
}

func (a *app) generate(c *cli.Context) error {
	opts := mp4writer.DefaultOptions()
	opts.Frames = c.Int("frames")
	opts.Width = c.Int("width")
	opts.Height = c.Int("height")
	opts.FPS = c.Int("fps")
	opts.JPEGQuality = c.Int("quality")
	opts.SkipAudio = c.Bool("no-audio")
	opts.SkipVideo = c.Bool("no-video")

	switch c.String("codec") {
	case "raw":
		opts.Codec = mp4writer.CodecRaw
	case "jpeg":
		opts.Codec = mp4writer.CodecJPEG
	default:
		return fmt.Errorf("%w: %q", mp4writer.ErrUnknownCodec, c.String("codec"))
	}

	return mp4writer.New(a.fs, a.log).Write(c.String("output"), opts)
}
