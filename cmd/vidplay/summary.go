package main

import (
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/vidplay/pkg/adapters/codecs"
	"github.com/user/vidplay/pkg/adapters/mp4container"
	"github.com/user/vidplay/pkg/playback"
	"github.com/user/vidplay/pkg/summarizer"
)

func summaryFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "summary",
		Usage: l10n.T("Write a Markdown playback summary to this file"),
	}
}

// playStats is what a command observed while driving a session.
type playStats struct {
	state     playback.State
	decoded   int
	presented int
	lastErr   error
	started   time.Time
}

func (st *playStats) capture(s *playback.Session, presented int) {
	st.state = s.State()
	st.decoded += s.FramesDecoded()
	st.presented += presented
	st.lastErr = s.LastError()
	// A clean end is not reported; an end with an incomplete frame is.
	if st.lastErr == playback.ErrEndOfStream {
		st.lastErr = nil
	}
}

// writeSummary records a Markdown report for input at dest. path is the
// local file actually played.
func (a *app) writeSummary(dest, input, path string, st playStats, settings summarizer.Settings) error {
	probe := probeFile(mp4container.New(a.fs, a.log), codecs.New(a.log, a.cfg.ToCodecOptions()), path, a.log)

	var selected []int
	if probe.Selected != nil {
		selected = []int{probe.Selected.Video.Index, probe.Selected.Audio.Index}
	}

	settings.Scaler = a.cfg.Scaler
	settings.Alignment = a.cfg.Alignment
	summary := summarizer.NewBuilder().
		WithInput(input, summarizer.FileSize(a.fs, path)).
		WithStreams(probe.Streams, probe.Decoders, selected...).
		WithState(st.state, st.decoded, st.presented, st.lastErr).
		WithElapsed(time.Since(st.started)).
		WithSettings(settings).
		Build()

	formatter := summarizer.NewMarkdownFormatter(
		summarizer.WithTranslator(l10n.T),
		summarizer.WithVersion(version),
	)
	if err := summarizer.NewWriter(formatter, a.fs).Write(dest, summary); err != nil {
		return err
	}
	a.log.Info("Summary saved to %s", dest)
	return nil
}
