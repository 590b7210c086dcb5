package summarizer

import (
	"fmt"
	"strings"

	"github.com/user/vidplay/pkg/ports"
)

// MarkdownFormatter renders a Summary as a Markdown document.
type MarkdownFormatter struct {
	translate func(string) string
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator translates headings and labels.
func WithTranslator(fn func(string) string) MarkdownOption {
	return func(f *MarkdownFormatter) { f.translate = fn }
}

// WithVersion adds the tool version to the footer.
func WithVersion(version string) MarkdownOption {
	return func(f *MarkdownFormatter) { f.version = version }
}

// NewMarkdownFormatter creates a formatter. Labels are English unless a
// translator is given.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{translate: func(s string) string { return s }}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	t := f.translate
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("Playback Summary"))
	fmt.Fprintf(&b, "%s: %s\n\n", t("Generated"), s.GeneratedAt.Format("2006-01-02 15:04:05"))

	fmt.Fprintf(&b, "## %s\n\n", t("Input"))
	f.table(&b, [][2]string{
		{t("File"), s.Input.Path},
		{t("File Size"), sizeOrNA(s.Input.Size, t)},
	})

	if len(s.Streams) > 0 {
		fmt.Fprintf(&b, "## %s\n\n", t("Streams"))
		fmt.Fprintf(&b, "| # | %s | %s | %s | %s | %s |\n", t("Kind"), t("Codec"), t("Decoder"), t("Details"), t("Selected"))
		b.WriteString("|---|---|---|---|---|---|\n")
		for _, st := range s.Streams {
			decoder := st.Decoder
			if decoder == "" {
				decoder = t("None")
			}
			selected := ""
			if st.Selected {
				selected = "✓"
			}
			fmt.Fprintf(&b, "| %d | %s | `%s` | %s | %s | %s |\n",
				st.Index, st.Kind, st.Codec, decoder, streamDetails(st.StreamInfo), selected)
		}
		b.WriteString("\n")
	}

	r := s.Result
	fmt.Fprintf(&b, "## %s\n\n", t("Results"))
	rows := [][2]string{
		{t("Frames Presented"), fmt.Sprintf("%d", r.FramesPresented)},
		{t("Frames Decoded"), fmt.Sprintf("%d", r.FramesDecoded)},
		{t("Dropped Frames"), fmt.Sprintf("%d", r.FramesDropped())},
		{t("Last Position"), fmt.Sprintf("%.3f s", r.LastPosition)},
		{t("Frame Rate"), fmt.Sprintf("%.3f fps", r.FramesPerSecond)},
		{t("Output Size"), fmt.Sprintf("%dx%d", r.ScaledWidth, r.ScaledHeight)},
		{t("Audio Sample Rate"), fmt.Sprintf("%d Hz", r.AudioSampleRate)},
		{t("End of Stream"), yesNo(r.EndOfStream, t)},
		{t("Elapsed"), fmt.Sprintf("%d ms", r.ElapsedMs)},
	}
	if r.LastError != "" {
		rows = append(rows, [2]string{t("Last Error"), r.LastError})
	}
	f.table(&b, rows)

	fmt.Fprintf(&b, "## %s\n\n", t("Settings"))
	settings := [][2]string{
		{t("Scaler"), s.Settings.Scaler},
		{t("Surface Alignment"), fmt.Sprintf("%d", s.Settings.Alignment)},
		{t("Realtime"), yesNo(s.Settings.Realtime, t)},
	}
	if s.Settings.SnapshotDir != "" {
		settings = append(settings, [2]string{t("Snapshots"),
			fmt.Sprintf("%d (%s)", s.Settings.SnapshotsWritten, s.Settings.SnapshotDir)})
	}
	f.table(&b, settings)

	b.WriteString("---\n\n")
	footer := t("Generated by") + " vidplay"
	if f.version != "" {
		footer += " " + f.version
	}
	b.WriteString(footer + "\n")
	return b.String()
}

func (f *MarkdownFormatter) table(b *strings.Builder, rows [][2]string) {
	fmt.Fprintf(b, "| %s | %s |\n|---|---|\n", f.translate("Item"), f.translate("Value"))
	for _, row := range rows {
		fmt.Fprintf(b, "| %s | %s |\n", row[0], escapeCell(row[1]))
	}
	b.WriteString("\n")
}

func streamDetails(s ports.StreamInfo) string {
	switch s.Kind {
	case ports.StreamVideo:
		return fmt.Sprintf("%dx%d, %.3f fps", s.Width, s.Height, s.FrameRate.Float())
	case ports.StreamAudio:
		return fmt.Sprintf("%d Hz, %d ch", s.SampleRate, s.Channels)
	default:
		return ""
	}
}

func yesNo(v bool, t func(string) string) string {
	if v {
		return t("Yes")
	}
	return t("No")
}

func sizeOrNA(n int64, t func(string) string) string {
	if n <= 0 {
		return t("N/A")
	}
	return formatBytes(n)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// formatBytes formats a byte count with binary units.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit && exp < 2; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(n)/float64(div), "KMG"[exp])
}
