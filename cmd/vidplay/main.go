// Package main provides the CLI entry point for vidplay.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/vidplay/pkg/adapters/codecs"
	"github.com/user/vidplay/pkg/adapters/logger"
	"github.com/user/vidplay/pkg/adapters/mp4container"
	"github.com/user/vidplay/pkg/adapters/osfilesystem"
	"github.com/user/vidplay/pkg/adapters/rgbconverter"
	"github.com/user/vidplay/pkg/adapters/s3fetch"
	"github.com/user/vidplay/pkg/config"
	"github.com/user/vidplay/pkg/playback"
	"github.com/user/vidplay/pkg/ports"
)

var version = "dev"

func main() {
	if err := newApp(os.Stdout, os.Stderr, logger.New).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app carries state shared by every command once Before has run.
type app struct {
	out    io.Writer
	cfg    config.Config
	log    ports.Logger
	fs     ports.FileSystem
	newLog func(level ports.LogLevel) ports.Logger
}

// newApp builds the command tree. newLog creates the logger once the level
// is known.
func newApp(out, errOut io.Writer, newLog func(level ports.LogLevel) ports.Logger) *cli.App {
	a := &app{
		out:    out,
		fs:     osfilesystem.New(),
		newLog: newLog,
	}

	return &cli.App{
		Name:        "vidplay",
		Usage:       l10n.T("Play MP4 files into lockable RGB surfaces"),
		Description: l10n.T("vidplay decodes the first video stream of a media file frame by frame into packed RGB surfaces."),
		HideVersion: true,
		Writer:      out,
		ErrWriter:   errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    l10n.T("YAML configuration file"),
				Category: l10n.T("Configuration"),
			},
			&cli.StringFlag{
				Name:     "env-file",
				Value:    ".env",
				Usage:    l10n.T("Environment file loaded before VIDPLAY_* variables are read"),
				Category: l10n.T("Configuration"),
			},
			&cli.StringFlag{
				Name:     "log-level",
				Aliases:  []string{"l"},
				Usage:    l10n.T("Log level (debug, info, warn, error)"),
				Category: l10n.T("Logging"),
			},
			&cli.BoolFlag{
				Name:     "quiet",
				Aliases:  []string{"Q"},
				Usage:    l10n.T("Suppress all log output"),
				Category: l10n.T("Logging"),
			},
		},
		Before: a.setup,
		Commands: []*cli.Command{
			playCommand(a),
			dumpCommand(a),
			probeCommand(a),
			generateCommand(a),
			{
				Name:  "version",
				Usage: l10n.T("Show version information"),
				Action: func(c *cli.Context) error {
					fmt.Fprintln(a.out, l10n.F("vidplay version %s", version))
					return nil
				},
			},
		},
	}
}

// setup resolves the configuration: defaults, YAML file, .env, VIDPLAY_*
// variables, then global flags.
func (a *app) setup(c *cli.Context) error {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if err := config.LoadDotEnv(c.String("env-file")); err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}

	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.Bool("quiet") {
		cfg.LogLevel = ports.LevelQuiet.String()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.log = a.newLog(cfg.Level())
	return nil
}

// session builds a playback session over the configured backends.
func (a *app) session(surfaces ports.SurfaceBackend, sink ports.FrameSink) *playback.Session {
	opts := a.cfg.ToSessionOptions()
	opts.Sink = sink
	return playback.NewSession(playback.Backends{
		Containers: mp4container.New(a.fs, a.log),
		Decoders:   codecs.New(a.log, a.cfg.ToCodecOptions()),
		Converter:  rgbconverter.New(rgbconverter.Scaler(a.cfg.Scaler)),
		Surfaces:   surfaces,
	}, opts, a.log)
}

// resolve maps s3:// inputs to a cached local file.
func (a *app) resolve(ctx context.Context, input string) (string, error) {
	if !s3fetch.IsRemote(input) {
		return input, nil
	}
	fetcher, err := s3fetch.New(a.cfg.S3.Region, a.cfg.S3.CacheDir, a.fs, a.log)
	if err != nil {
		return "", err
	}
	return fetcher.Resolve(ctx, input)
}

// interruptible returns a context cancelled on SIGINT or SIGTERM.
func (a *app) interruptible(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			a.log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}
