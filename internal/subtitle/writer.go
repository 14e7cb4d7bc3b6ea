package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// interface for rendering word entries
type Writer interface {
	Render(entries []WordEntry) string
	Write(entries []WordEntry, path string) error
}

// SubRip format
type SRTWriter struct{}

// WebVTT format
type VTTWriter struct{}

// Advanced SubStation Alpha format
type ASSWriter struct {
	Title    string
	FontName string
	FontSize int
}

func NewWriter(format Format) (Writer, error) {
	switch format {
	case FormatSRT:
		return &SRTWriter{}, nil
	case FormatVTT:
		return &VTTWriter{}, nil
	case FormatASS:
		return NewASSWriter("", 0), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// NewASSWriter falls back to Arial 20 for empty values.
func NewASSWriter(fontName string, fontSize int) *ASSWriter {
	if fontName == "" {
		fontName = "Arial"
	}
	if fontSize <= 0 {
		fontSize = 20
	}
	return &ASSWriter{
		Title:    "MoneyPrinterTurbo Word Captions",
		FontName: fontName,
		FontSize: fontSize,
	}
}

// Render numbers entries from 1 and joins every line with "\n". The final
// block therefore ends in a single newline, not a blank line.
func (w *SRTWriter) Render(entries []WordEntry) string {
	lines := make([]string, 0, len(entries)*4)
	for i, entry := range entries {
		lines = append(lines,
			fmt.Sprintf("%d", i+1),
			FormatTiming(entry.Interval()),
			entry.Word,
			"",
		)
	}
	return strings.Join(lines, "\n")
}

func (w *SRTWriter) Write(entries []WordEntry, path string) error {
	return writeFile(path, w.Render(entries))
}

var vttEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func (w *VTTWriter) Render(entries []WordEntry) string {
	var sb strings.Builder
	sb.WriteString("WEBVTT\n")
	for i, entry := range entries {
		fmt.Fprintf(&sb, "\n%d\n%s --> %s\n%s\n",
			i+1,
			formatVTTTime(entry.StartMS),
			formatVTTTime(entry.EndMS),
			vttEscaper.Replace(entry.Word),
		)
	}
	return sb.String()
}

func (w *VTTWriter) Write(entries []WordEntry, path string) error {
	return writeFile(path, w.Render(entries))
}

const assHeader = `[Script Info]
Title: %s
ScriptType: v4.00+
WrapStyle: 2
ScaledBorderAndShadow: yes

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
Style: Default,%s,%d,&H00FFFFFF,&H000000FF,&H00000000,&H80000000,-1,0,0,0,100,100,0,0,1,2,1,2,10,10,10,1

[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
`

func (w *ASSWriter) Render(entries []WordEntry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, assHeader, w.Title, w.FontName, w.FontSize)
	for _, entry := range entries {
		fmt.Fprintf(&sb, "Dialogue: 0,%s,%s,Default,,0,0,0,,%s\n",
			formatASSTime(entry.StartMS),
			formatASSTime(entry.EndMS),
			escapeASSText(entry.Word),
		)
	}
	return sb.String()
}

func (w *ASSWriter) Write(entries []WordEntry, path string) error {
	return writeFile(path, w.Render(entries))
}

// TextToSRT renders a single SRT block from second based times.
func TextToSRT(idx int, msg string, startSec, endSec float64) string {
	return fmt.Sprintf("%d\n%s --> %s\n%s\n",
		idx,
		FormatSeconds(startSec),
		FormatSeconds(endSec),
		msg,
	)
}

// RenderRecords renders caption records back to SRT, renumbered from 1
// with their timing lines kept verbatim.
func RenderRecords(records []Record) string {
	var sb strings.Builder
	for i, rec := range records {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%d\n%s\n%s\n", i+1, rec.Timing, rec.Text)
	}
	return sb.String()
}

func WriteRecords(records []Record, path string) error {
	return writeFile(path, RenderRecords(records))
}

func formatVTTTime(ms int64) string {
	return strings.Replace(FormatTimestamp(ms), ",", ".", 1)
}

func formatASSTime(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	hours := ms / msPerHour
	minutes := (ms % msPerHour) / msPerMinute
	seconds := (ms % msPerMinute) / msPerSecond
	centis := (ms % msPerSecond) / 10

	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, seconds, centis)
}

// Braces would otherwise open an override block.
var assEscaper = strings.NewReplacer(
	"\r\n", `\N`,
	"\n", `\N`,
	"{", `\{`,
	"}", `\}`,
)

func escapeASSText(text string) string {
	return assEscaper.Replace(text)
}

func writeFile(path, content string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0755)
}

// subtitle format based on file extension
func GetFormatFromExtension(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".srt":
		return FormatSRT
	case ".vtt":
		return FormatVTT
	case ".ass", ".ssa":
		return FormatASS
	default:
		return FormatSRT
	}
}

// file extension for a format
func GetExtensionForFormat(format Format) string {
	switch format {
	case FormatSRT:
		return ".srt"
	case FormatVTT:
		return ".vtt"
	case FormatASS:
		return ".ass"
	default:
		return ".srt"
	}
}

// ParseFormat accepts srt, vtt, ass or ssa in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "srt":
		return FormatSRT, nil
	case "vtt":
		return FormatVTT, nil
	case "ass", "ssa":
		return FormatASS, nil
	default:
		return "", fmt.Errorf("unsupported format %q: use srt, vtt, or ass", s)
	}
}
