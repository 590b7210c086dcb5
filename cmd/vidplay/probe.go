package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/user/vidplay/pkg/adapters/codecs"
	"github.com/user/vidplay/pkg/adapters/mp4container"
	"github.com/user/vidplay/pkg/playback"
	"github.com/user/vidplay/pkg/ports"
)

// probeResult describes one file without decoding it.
type probeResult struct {
	Path     string
	Streams  []ports.StreamInfo
	Decoders map[int]string // stream index -> decoder name
	Selected *playback.SelectedStreams
	Err      error // selection or open failure
}

func probeCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:      "probe",
		Usage:     l10n.T("List the streams of one or more media files"),
		ArgsUsage: "<file>...",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "jobs",
				Aliases: []string{"j"},
				Value:   4,
				Usage:   l10n.T("Number of files probed concurrently"),
			},
		},
		Action: a.probe,
	}
}

func (a *app) probe(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit(l10n.T("At least one media file argument is required"), 2)
	}
	inputs := c.Args().Slice()
	results := make([]probeResult, len(inputs))

	containers := mp4container.New(a.fs, a.log)
	decoders := codecs.New(a.log, a.cfg.ToCodecOptions())

	g, ctx := errgroup.WithContext(c.Context)
	g.SetLimit(max(1, c.Int("jobs")))
	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			path, err := a.resolve(ctx, input)
			if err != nil {
				return err
			}
			results[i] = probeFile(containers, decoders, path, a.log)
			results[i].Path = input
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		writeProbe(a.out, r)
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return cli.Exit(l10n.F("%d of %d files cannot be played", failed, len(results)), 1)
	}
	return nil
}

// probeFile opens path, lists its streams and runs stream selection and
// decoder lookup as Open would.
func probeFile(containers ports.ContainerBackend, decoders ports.DecoderBackend, path string, log ports.Logger) probeResult {
	r := probeResult{Path: path, Decoders: make(map[int]string)}

	container, err := containers.Open(path)
	if err != nil {
		r.Err = fmt.Errorf("%w: %v", playback.ErrContainerOpenFailed, err)
		return r
	}
	defer container.Close()

	streams, err := container.Streams()
	if err != nil {
		r.Err = fmt.Errorf("%w: %v", playback.ErrStreamInfoUnavailable, err)
		return r
	}
	r.Streams = streams

	for _, s := range streams {
		if f, ok := decoders.FindDecoder(s.Codec); ok {
			r.Decoders[s.Index] = f.Name()
		}
	}

	sel, err := playback.SelectStreams(streams, log)
	if err != nil {
		r.Err = err
		return r
	}
	r.Selected = &sel

	for _, s := range []ports.StreamInfo{sel.Video, sel.Audio} {
		if _, ok := r.Decoders[s.Index]; !ok {
			r.Err = fmt.Errorf("%w: %q (stream %d)", playback.ErrUnsupportedCodec, s.Codec, s.Index)
			break
		}
	}
	return r
}

// writeProbe prints one block per file.
func writeProbe(w io.Writer, r probeResult) {
	fmt.Fprintf(w, "%s\n", r.Path)
	for _, s := range r.Streams {
		mark := " "
		if r.Selected != nil && (s.Index == r.Selected.Video.Index || s.Index == r.Selected.Audio.Index) {
			mark = "*"
		}
		decoder := r.Decoders[s.Index]
		if decoder == "" {
			decoder = "-"
		}

		var detail string
		switch s.Kind {
		case ports.StreamVideo:
			detail = fmt.Sprintf("%dx%d %.3f fps", s.Width, s.Height, s.FrameRate.Float())
		case ports.StreamAudio:
			detail = fmt.Sprintf("%d Hz %d ch", s.SampleRate, s.Channels)
		}
		line := fmt.Sprintf("%s #%d %-5s %-4q %-10s %s", mark, s.Index, s.Kind, s.Codec, decoder, detail)
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
	if r.Err != nil {
		fmt.Fprintf(w, "  %s\n", l10n.F("error: %v", r.Err))
	}
}
