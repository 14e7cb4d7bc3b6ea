package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hangfoxy/MoneyPrinterTurbo/internal/config"
	"github.com/hangfoxy/MoneyPrinterTurbo/internal/logging"
	"github.com/hangfoxy/MoneyPrinterTurbo/internal/paths"
)

var (
	verbose    bool
	configPath string
	rootDir    string
	logger     *logging.Logger
	cfg        *config.Config
	cfgSource  string
	cfgExists  bool
)

var rootCmd = &cobra.Command{
	Use:   "mpt",
	Short: "Word-level caption tools for short videos",
	Long: `mpt turns sentence-level SRT captions into word-level captions, one
word per block, for punchy short-form video.

It can translate captions with an LLM before splitting, burn the result
into a video with ffmpeg, and exposes the small helpers the video
pipeline relies on.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.NewLogger(verbose)

		loaded, resolved, exists, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if rootDir != "" {
			abs, err := filepath.Abs(rootDir)
			if err != nil {
				return fmt.Errorf("resolve --root: %w", err)
			}
			loaded.Paths.Root = abs
		}
		cfg, cfgSource, cfgExists = loaded, resolved, exists

		logger.Debugw("Loaded configuration",
			"path", resolved,
			"exists", exists,
			"root", cfg.Paths.Root,
		)
		return nil
	},
}

// Execute runs the root command; SIGINT and SIGTERM cancel the command's
// context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "Config file (default ./mpt.toml or ~/.config/mpt/config.toml)")
	rootCmd.PersistentFlags().
		StringVar(&rootDir, "root", "", "Project root holding storage/ and resource/ (or set MPT_ROOT)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
	rootCmd.PersistentFlags().
		StringP("language", "l", "", "Language code of the captions (e.g., en, tr, de)")
}

func projectDirs() (*paths.Dirs, error) {
	return paths.New(cfg.Paths.Root)
}
