package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/hangfoxy/MoneyPrinterTurbo/internal/background"
	"github.com/hangfoxy/MoneyPrinterTurbo/internal/ident"
	"github.com/hangfoxy/MoneyPrinterTurbo/internal/subtitle"
	"github.com/hangfoxy/MoneyPrinterTurbo/internal/video"
)

var burnCmd = &cobra.Command{
	Use:   "burn [video_file] [subtitle_file]",
	Short: "Burn word captions into a video",
	Long: `Burn captions into a video with ffmpeg.

By default the SRT captions are first split into word-level captions in a
fresh task directory under storage/tasks. Pass --no-split to burn the file
as is (SRT, VTT or ASS).

Fonts in resource/fonts are available to the renderer by name.

Examples:
  mpt burn clip.mp4 captions.srt
  mpt burn clip.mp4 words.ass --no-split -o final.mp4
  mpt burn clip.mp4 captions.srt --font "Noto Sans" --font-size 48`,
	Args: cobra.ExactArgs(2),
	RunE: runBurn,
}

func init() {
	rootCmd.AddCommand(burnCmd)
	addSplitFlags(burnCmd)

	burnCmd.Flags().Bool("no-split", false, "Burn the captions without splitting them into words")
	burnCmd.Flags().String("font", "", "Font name; default from config")
	burnCmd.Flags().Int("font-size", 0, "Font size; default from config")
}

func runBurn(cmd *cobra.Command, args []string) error {
	videoPath, captionsPath := args[0], args[1]
	ctx := cmd.Context()

	noSplit, _ := cmd.Flags().GetBool("no-split")
	fontName, _ := cmd.Flags().GetString("font")
	fontSize, _ := cmd.Flags().GetInt("font-size")
	outputPath, _ := cmd.Flags().GetString("output")

	for _, p := range []string{videoPath, captionsPath} {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", p)
		}
	}
	if !video.IsVideoFile(videoPath) {
		return fmt.Errorf("unsupported video file: %s", videoPath)
	}
	if outputPath == "" {
		outputPath = video.DefaultOutputPath(videoPath)
	}
	if fontName == "" {
		fontName = cfg.Video.FontName
	}
	if fontSize == 0 {
		fontSize = cfg.Video.FontSize
	}

	bins, err := video.LocateBinaries(cfg.Video.FFmpegPath)
	if err != nil {
		return err
	}

	dirs, err := projectDirs()
	if err != nil {
		return err
	}
	fontsDir, err := dirs.Font("")
	if err != nil {
		return err
	}

	var info *video.Info
	probe := background.Go(ctx, logger, "probe video", func(ctx context.Context) error {
		probed, err := video.Probe(ctx, bins, videoPath)
		if err != nil {
			return err
		}
		info = probed
		return nil
	})

	burnPath := captionsPath
	if !noSplit {
		burnPath, err = splitForBurn(cmd, captionsPath)
		if err != nil {
			return err
		}
	}

	if err := probe.Wait(ctx); err == nil {
		warnIfCaptionsOverrun(info, captionsPath)
	}

	burner := video.NewBurner(bins, logger)
	err = burner.Burn(ctx, videoPath, burnPath, outputPath, video.BurnOptions{
		FontName: fontName,
		FontSize: fontSize,
		FontsDir: fontsDir,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	absOutput, _ := filepath.Abs(outputPath)
	fmt.Fprintf(out, "Captioned video written: %s\n", absOutput)
	fmt.Fprintf(out, "  Captions: %s\n", burnPath)
	if info != nil {
		fmt.Fprintf(out, "  Video: %dx%d, %s\n", info.Width, info.Height, info.Duration.Round(time.Millisecond))
	}
	return nil
}

// splitForBurn writes word captions for captionsPath into a new task
// directory and returns their path.
func splitForBurn(cmd *cobra.Command, captionsPath string) (string, error) {
	settings, err := resolveSplitSettings(cmd)
	if err != nil {
		return "", err
	}
	dirs, err := projectDirs()
	if err != nil {
		return "", err
	}
	taskDir, err := dirs.Task(ident.UUID(false))
	if err != nil {
		return "", err
	}

	wordsPath := filepath.Join(taskDir, "words"+subtitle.GetExtensionForFormat(settings.format))
	res := settings.processor().ProcessFile(cmd.Context(), captionsPath, wordsPath)
	if !res.OK {
		return "", fmt.Errorf("%s error: %w", res.Kind, res.Err)
	}
	return wordsPath, nil
}

func warnIfCaptionsOverrun(info *video.Info, captionsPath string) {
	if info == nil || info.Duration <= 0 {
		return
	}
	read, err := subtitle.ReadFile(captionsPath)
	if err != nil {
		return
	}

	var lastEnd int64
	for _, rec := range read.Records {
		if iv, err := subtitle.ParseTiming(rec.Timing); err == nil && iv.EndMS > lastEnd {
			lastEnd = iv.EndMS
		}
	}
	if videoMS := info.Duration.Milliseconds(); lastEnd > videoMS {
		logger.Warnw("Captions run past the end of the video",
			"captions_end", subtitle.FormatTimestamp(lastEnd),
			"video_duration", subtitle.FormatTimestamp(videoMS),
		)
	}
}
