// Package video burns word captions into video files with ffmpeg.
package video

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/hangfoxy/MoneyPrinterTurbo/internal/logging"
	"github.com/hangfoxy/MoneyPrinterTurbo/internal/subtitle"
)

// video file information
type Info struct {
	Path     string
	Duration time.Duration
	Width    int
	Height   int
	Codec    string
	HasAudio bool
}

// BurnOptions controls how captions are rendered onto frames.
type BurnOptions struct {
	FontName string
	FontSize int
	FontsDir string // extra directory searched for FontName
}

func DefaultBurnOptions() BurnOptions {
	return BurnOptions{
		FontName: "Arial",
		FontSize: 20,
	}
}

// Burner renders a caption file onto a video.
type Burner struct {
	bins Binaries
	log  *logging.Logger
}

func NewBurner(bins Binaries, log *logging.Logger) *Burner {
	if log == nil {
		log = logging.Nop()
	}
	return &Burner{bins: bins, log: log}
}

// Args returns the ffmpeg arguments Burn would run.
func (b *Burner) Args(videoPath, captionsPath, outputPath string, opts BurnOptions) []string {
	return b.stream(videoPath, captionsPath, outputPath, opts).GetArgs()
}

func (b *Burner) stream(videoPath, captionsPath, outputPath string, opts BurnOptions) *ffmpeg.Stream {
	return ffmpeg.Input(videoPath).
		Output(outputPath, ffmpeg.KwArgs{
			"vf":  SubtitlesFilter(captionsPath, opts),
			"c:a": "copy",
		}).
		OverWriteOutput().
		SetFfmpegPath(b.bins.FFmpeg)
}

// Burn writes outputPath with the captions drawn into every frame. Audio is
// copied as is. The ffmpeg process is killed when ctx ends.
func (b *Burner) Burn(
	ctx context.Context,
	videoPath, captionsPath, outputPath string,
	opts BurnOptions,
) error {
	for _, p := range []string{videoPath, captionsPath} {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			return fmt.Errorf("input file not found: %s", p)
		}
	}

	outputDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	cmd := b.stream(videoPath, captionsPath, outputPath, opts).Compile()
	var stderr bytes.Buffer
	cmd.Stdout = nil
	cmd.Stderr = &stderr

	b.log.Debugw("Running ffmpeg", "args", cmd.Args)
	start := time.Now()

	if err := run(ctx, cmd); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("ffmpeg burn-in failed: %w: %s", err, lastLine(stderr.String()))
	}

	b.log.Infow("Burned captions into video",
		"video", videoPath,
		"captions", captionsPath,
		"output", outputPath,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return nil
}

func run(ctx context.Context, cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-done
		return ctx.Err()
	}
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// SubtitlesFilter builds the ffmpeg subtitles filter for captionsPath.
// SRT and VTT captions get the font through force_style; ASS files carry
// their own style.
func SubtitlesFilter(captionsPath string, opts BurnOptions) string {
	var sb strings.Builder
	sb.WriteString("subtitles=filename=")
	sb.WriteString(escapeFilterValue(captionsPath))

	if opts.FontsDir != "" {
		sb.WriteString(":fontsdir=")
		sb.WriteString(escapeFilterValue(opts.FontsDir))
	}

	if subtitle.GetFormatFromExtension(captionsPath) != subtitle.FormatASS {
		var style []string
		if opts.FontName != "" {
			style = append(style, "FontName="+opts.FontName)
		}
		if opts.FontSize > 0 {
			style = append(style, "FontSize="+strconv.Itoa(opts.FontSize))
		}
		if len(style) > 0 {
			sb.WriteString(":force_style=")
			sb.WriteString(escapeFilterValue(strings.Join(style, ",")))
		}
	}

	return sb.String()
}

var filterEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`:`, `\:`,
	`,`, `\,`,
	`;`, `\;`,
	`[`, `\[`,
	`]`, `\]`,
)

func escapeFilterValue(s string) string {
	return filterEscaper.Replace(filepath.ToSlash(s))
}

// JSON output from ffprobe
type ffprobeOutput struct {
	Streams []struct {
		CodecType string `json:"codec_type"`
		CodecName string `json:"codec_name"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Probe retrieves video file information with ffprobe.
func Probe(ctx context.Context, bins Binaries, videoPath string) (*Info, error) {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("video file not found: %s", videoPath)
	}
	if bins.FFprobe == "" {
		return nil, errors.New("ffprobe not found")
	}

	cmd := exec.CommandContext(ctx, bins.FFprobe,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		videoPath,
	)
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	return parseProbe(videoPath, out.Bytes())
}

func parseProbe(videoPath string, data []byte) (*Info, error) {
	var probe ffprobeOutput
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	info := &Info{Path: videoPath}
	if probe.Format.Duration != "" {
		seconds, err := strconv.ParseFloat(probe.Format.Duration, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse duration: %w", err)
		}
		info.Duration = time.Duration(seconds * float64(time.Second))
	}

	for _, s := range probe.Streams {
		switch s.CodecType {
		case "video":
			if info.Codec == "" {
				info.Codec = s.CodecName
				info.Width = s.Width
				info.Height = s.Height
			}
		case "audio":
			info.HasAudio = true
		}
	}
	if info.Codec == "" {
		return nil, fmt.Errorf("no video stream in %s", videoPath)
	}
	return info, nil
}

// checks if the file is a video based on extension
func IsVideoFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	videoExts := map[string]bool{
		".mp4":  true,
		".mkv":  true,
		".avi":  true,
		".mov":  true,
		".webm": true,
		".m4v":  true,
		".mpeg": true,
		".mpg":  true,
	}
	return videoExts[ext]
}

// DefaultOutputPath places the burned video next to the input.
func DefaultOutputPath(videoPath string) string {
	ext := filepath.Ext(videoPath)
	return strings.TrimSuffix(videoPath, ext) + ".captioned" + ext
}
