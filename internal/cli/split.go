package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hangfoxy/MoneyPrinterTurbo/internal/subtitle"
)

var splitCmd = &cobra.Command{
	Use:   "split [subtitle_file]",
	Short: "Split SRT captions into one block per word",
	Long: `Split every caption of an SRT file into one block per word.

Each caption's interval is divided evenly among its words; the last word
always ends exactly where the caption ended. Words are upper-cased unless
--no-upper is given.

Examples:
  mpt split captions.srt
  mpt split captions.srt -o words.ass --format ass
  mpt split altyazi.srt -l tr`,
	Args: cobra.ExactArgs(1),
	RunE: runSplit,
}

func init() {
	rootCmd.AddCommand(splitCmd)
	addSplitFlags(splitCmd)
}

func addSplitFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("no-upper", false, "Keep the original letter case")
	cmd.Flags().StringP("format", "f", "", "Output format (srt, vtt, ass); default from config")
	cmd.Flags().String("suffix", "", "Suffix added to derived output names; default from config")
}

// splitSettings holds the resolved output settings shared by split, batch,
// translate and burn.
type splitSettings struct {
	format subtitle.Format
	suffix string
	upper  bool
	lang   string
}

func resolveSplitSettings(cmd *cobra.Command) (splitSettings, error) {
	noUpper, _ := cmd.Flags().GetBool("no-upper")
	formatStr, _ := cmd.Flags().GetString("format")
	suffix, _ := cmd.Flags().GetString("suffix")
	lang, _ := cmd.Flags().GetString("language")

	if formatStr == "" {
		formatStr = cfg.Split.Format
	}
	format, err := subtitle.ParseFormat(formatStr)
	if err != nil {
		return splitSettings{}, err
	}
	if suffix == "" {
		suffix = cfg.Split.Suffix
	}
	if lang == "" {
		lang = cfg.Split.Language
	}

	return splitSettings{
		format: format,
		suffix: suffix,
		upper:  cfg.Split.Uppercase && !noUpper,
		lang:   lang,
	}, nil
}

func (s splitSettings) processor() *subtitle.Processor {
	p := subtitle.NewProcessor(logger)
	if s.upper {
		p.Splitter.Transform = subtitle.UpperCaser(s.lang)
	} else {
		p.Splitter.Transform = nil
	}
	if s.format == subtitle.FormatASS {
		p.Writer = subtitle.NewASSWriter(cfg.Video.FontName, cfg.Video.FontSize)
	} else {
		p.Writer, _ = subtitle.NewWriter(s.format)
	}
	return p
}

// followOutput lets the extension of an explicit output path pick the
// format unless --format was given.
func (s *splitSettings) followOutput(cmd *cobra.Command, outputPath string) {
	if outputPath == "" || cmd.Flags().Changed("format") {
		return
	}
	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".srt", ".vtt", ".ass", ".ssa":
		s.format = subtitle.GetFormatFromExtension(outputPath)
	}
}

// outputPath derives <dir>/<base><suffix><ext> for inputPath.
func (s splitSettings) outputPath(inputPath, dir string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	if dir == "" {
		dir = filepath.Dir(inputPath)
	}
	return filepath.Join(dir, base+s.suffix+subtitle.GetExtensionForFormat(s.format))
}

func runSplit(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	outputPath, _ := cmd.Flags().GetString("output")

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("subtitle file not found: %s", inputPath)
	}

	settings, err := resolveSplitSettings(cmd)
	if err != nil {
		return err
	}
	settings.followOutput(cmd, outputPath)
	if outputPath == "" {
		outputPath = settings.outputPath(inputPath, "")
	}

	logger.Infow("Splitting captions into words",
		"input", inputPath,
		"output", outputPath,
		"format", settings.format,
		"uppercase", settings.upper,
	)

	res := settings.processor().ProcessFile(cmd.Context(), inputPath, outputPath)
	if !res.OK {
		return fmt.Errorf("%s error: %w", res.Kind, res.Err)
	}

	out := cmd.OutOrStdout()
	absOutput, _ := filepath.Abs(res.OutputPath)
	fmt.Fprintf(out, "Word captions written: %s\n", absOutput)
	fmt.Fprintf(out, "  Captions: %d\n", res.InputCount)
	fmt.Fprintf(out, "  Words: %d\n", res.OutputCount)
	if res.Skipped > 0 {
		fmt.Fprintf(out, "  Skipped blocks: %d\n", res.Skipped)
	}
	return nil
}
