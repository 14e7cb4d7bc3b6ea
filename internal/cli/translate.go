package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hangfoxy/MoneyPrinterTurbo/internal/subtitle"
	"github.com/hangfoxy/MoneyPrinterTurbo/internal/translate"
)

var translateCmd = &cobra.Command{
	Use:   "translate [subtitle_file]",
	Short: "Translate SRT captions to another language using AI",
	Long: `Translate the captions of an SRT file to another language using AI.

Timing is kept as is; only the caption text is replaced. With --split the
translated captions are split into word-level captions in the same run.

Examples:
  mpt translate captions.srt --target-language japanese
  mpt translate captions.srt -t es --provider openai --split
  mpt translate captions.srt -l english -t german -o german.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)
	addSplitFlags(translateCmd)

	translateCmd.Flags().
		StringP("target-language", "t", "", "Target language for translation (required)")
	translateCmd.Flags().
		StringP("api-key", "k", "", "API key (or set GEMINI_API_KEY/OPENAI_API_KEY/ANTHROPIC_API_KEY)")
	translateCmd.Flags().
		String("model", "", "Model to use for translation (provider-specific, uses sensible defaults)")
	translateCmd.Flags().
		String("provider", "", "Translation provider (gemini, openai, anthropic); default from config")
	translateCmd.Flags().
		String("prompt", "", "Additional instructions for the model")
	translateCmd.Flags().
		Int("concurrency", 0, "Number of parallel translation requests; default from config")
	translateCmd.Flags().
		Int("batch-size", 0, "Number of captions per API request; default from config")
	translateCmd.Flags().
		Int("rate-limit", -1, "Maximum requests per minute, 0 for no limit; default from config")
	translateCmd.Flags().
		Bool("split", false, "Split the translated captions into words")

	_ = translateCmd.MarkFlagRequired("target-language")
}

var apiKeyEnv = map[translate.Provider]string{
	translate.ProviderGemini:    "GEMINI_API_KEY",
	translate.ProviderOpenAI:    "OPENAI_API_KEY",
	translate.ProviderAnthropic: "ANTHROPIC_API_KEY",
}

func runTranslate(cmd *cobra.Command, args []string) error {
	subtitlePath := args[0]
	ctx := cmd.Context()

	targetLang, _ := cmd.Flags().GetString("target-language")
	apiKey, _ := cmd.Flags().GetString("api-key")
	model, _ := cmd.Flags().GetString("model")
	providerStr, _ := cmd.Flags().GetString("provider")
	prompt, _ := cmd.Flags().GetString("prompt")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	batchSize, _ := cmd.Flags().GetInt("batch-size")
	rateLimit, _ := cmd.Flags().GetInt("rate-limit")
	split, _ := cmd.Flags().GetBool("split")
	outputPath, _ := cmd.Flags().GetString("output")
	inputLang, _ := cmd.Flags().GetString("language")

	if _, err := os.Stat(subtitlePath); os.IsNotExist(err) {
		return fmt.Errorf("subtitle file not found: %s", subtitlePath)
	}

	targetLang = strings.TrimSpace(targetLang)
	if targetLang == "" {
		return fmt.Errorf("target language is required")
	}
	if inputLang != "" && strings.EqualFold(strings.TrimSpace(inputLang), targetLang) {
		return fmt.Errorf(
			"input language %q and target language %q cannot be the same",
			inputLang,
			targetLang,
		)
	}

	if providerStr == "" {
		providerStr = cfg.Translate.Provider
	}
	provider, err := translate.ParseProvider(providerStr)
	if err != nil {
		return err
	}

	if apiKey == "" {
		apiKey = cfg.APIKey(string(provider))
	}
	if apiKey == "" {
		return fmt.Errorf(
			"API key is required: use --api-key flag or set %s environment variable",
			apiKeyEnv[provider],
		)
	}

	if model == "" {
		model = cfg.Translate.Model
	}
	if concurrency == 0 {
		concurrency = cfg.Translate.Concurrency
	}
	if batchSize == 0 {
		batchSize = cfg.Translate.BatchSize
	}
	if concurrency < 0 {
		return fmt.Errorf("concurrency must be positive, got %d", concurrency)
	}
	if batchSize < 0 {
		return fmt.Errorf("batch-size must be positive, got %d", batchSize)
	}
	if rateLimit < 0 {
		rateLimit = cfg.Translate.RateLimit
	}

	translator, err := translate.Factory(ctx, provider, apiKey, translate.Options{
		SourceLanguage: inputLang,
		TargetLanguage: targetLang,
		Model:          model,
		Prompt:         prompt,
		BatchSize:      batchSize,
		Concurrency:    concurrency,
		RateLimit:      rateLimit,
	})
	if err != nil {
		return fmt.Errorf("failed to create translator: %w", err)
	}
	translator.WithLogger(logger)

	logger.Infow("Starting caption translation",
		"input", subtitlePath,
		"provider", provider,
		"model", translator.Model(),
		"target_language", targetLang,
		"split", split,
	)

	return translateFile(cmd, translator, subtitlePath, outputPath, targetLang, split)
}

func translateFile(
	cmd *cobra.Command,
	translator translate.Translator,
	subtitlePath, outputPath, targetLang string,
	split bool,
) error {
	out := cmd.OutOrStdout()
	base := strings.TrimSuffix(subtitlePath, filepath.Ext(subtitlePath))

	if split {
		settings, err := resolveSplitSettings(cmd)
		if err != nil {
			return err
		}
		// Upper-case with the rules of the language the words end up in.
		settings.lang = targetLang
		settings.followOutput(cmd, outputPath)
		if outputPath == "" {
			outputPath = settings.outputPath(base+"."+targetLang+filepath.Ext(subtitlePath), "")
		}

		p := settings.processor()
		p.Prepare = translate.Preparer(translator)
		res := p.ProcessFile(cmd.Context(), subtitlePath, outputPath)
		if !res.OK {
			return fmt.Errorf("%s error: %w", res.Kind, res.Err)
		}

		absOutput, _ := filepath.Abs(res.OutputPath)
		fmt.Fprintf(out, "Translated word captions written: %s\n", absOutput)
		fmt.Fprintf(out, "  Captions: %d\n", res.InputCount)
		fmt.Fprintf(out, "  Words: %d\n", res.OutputCount)
		fmt.Fprintf(out, "  Target language: %s\n", targetLang)
		return nil
	}

	if outputPath == "" {
		outputPath = fmt.Sprintf("%s.%s.srt", base, targetLang)
	}

	read, err := subtitle.ReadFile(subtitlePath)
	if err != nil {
		return err
	}
	if len(read.Records) == 0 {
		return fmt.Errorf("subtitle file contains no captions")
	}

	records, err := translate.Records(cmd.Context(), translator, read.Records)
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}

	if err := subtitle.WriteRecords(records, outputPath); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Fprintf(out, "Captions translated successfully: %s\n", absOutput)
	fmt.Fprintf(out, "  Captions: %d\n", len(records))
	fmt.Fprintf(out, "  Target language: %s\n", targetLang)
	return nil
}
