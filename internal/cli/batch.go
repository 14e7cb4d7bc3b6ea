package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hangfoxy/MoneyPrinterTurbo/internal/subtitle"
)

var batchCmd = &cobra.Command{
	Use:   "batch [subtitle_file|directory]...",
	Short: "Split many SRT files concurrently",
	Long: `Split several SRT files into word-level captions at once.

Directories are expanded to the .srt files they contain. A file that fails
does not stop the others; a summary table is printed at the end and the
command fails if any file failed.

Examples:
  mpt batch a.srt b.srt c.srt
  mpt batch ./captions --concurrency 8 --output-dir ./words`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	addSplitFlags(batchCmd)

	batchCmd.Flags().
		Int("concurrency", 0, "Number of files processed in parallel; default from config")
	batchCmd.Flags().
		String("output-dir", "", "Directory for outputs (default: next to each input)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	outputDir, _ := cmd.Flags().GetString("output-dir")

	if concurrency == 0 {
		concurrency = cfg.Split.Concurrency
	}
	if concurrency < 0 {
		return fmt.Errorf("concurrency must be positive, got %d", concurrency)
	}

	settings, err := resolveSplitSettings(cmd)
	if err != nil {
		return err
	}

	inputs, err := expandInputs(args, settings.suffix)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no .srt files found")
	}

	jobs, conflicts := planJobs(inputs, func(in string) string {
		return settings.outputPath(in, outputDir)
	})
	for _, c := range conflicts {
		logger.Warnw("Skipping file with a clashing output path",
			"input", c.InputPath,
			"output", c.OutputPath,
		)
	}

	logger.Infow("Starting batch split",
		"files", len(jobs),
		"concurrency", concurrency,
	)

	processed := settings.processor().ProcessBatch(cmd.Context(), jobs, concurrency)
	results := mergeResults(len(inputs), processed, conflicts)

	failed := 0
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		status, detail := "ok", r.OutputPath
		if !r.OK {
			failed++
			status, detail = r.Kind.String(), r.Err.Error()
		}
		rows = append(rows, []string{
			r.InputPath,
			status,
			strconv.Itoa(r.InputCount),
			strconv.Itoa(r.OutputCount),
			strconv.Itoa(r.Skipped),
			detail,
		})
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Input", "Status", "Captions", "Words", "Skipped", "Output / Error"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
	))

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}

// planJobs pairs every input with its output path. An input whose output
// path was already claimed by an earlier input gets a failed result instead
// of a job, keyed by its position in inputs.
func planJobs(inputs []string, output func(string) string) ([]subtitle.Job, map[int]subtitle.Result) {
	jobs := make([]subtitle.Job, 0, len(inputs))
	conflicts := make(map[int]subtitle.Result)
	owners := make(map[string]string, len(inputs))

	for i, in := range inputs {
		out := output(in)
		key := out
		if abs, err := filepath.Abs(out); err == nil {
			key = abs
		}
		if first, taken := owners[key]; taken {
			conflicts[i] = subtitle.Result{
				Kind:       subtitle.KindIO,
				Err:        fmt.Errorf("output %s is already written for %s", out, first),
				InputPath:  in,
				OutputPath: out,
			}
			continue
		}
		owners[key] = in
		jobs = append(jobs, subtitle.Job{InputPath: in, OutputPath: out})
	}
	return jobs, conflicts
}

// mergeResults restores input order from the processed jobs and the
// conflicting inputs.
func mergeResults(n int, processed []subtitle.Result, conflicts map[int]subtitle.Result) []subtitle.Result {
	results := make([]subtitle.Result, 0, n)
	next := 0
	for i := range n {
		if r, ok := conflicts[i]; ok {
			results = append(results, r)
			continue
		}
		results = append(results, processed[next])
		next++
	}
	return results
}

// expandInputs replaces directories with their .srt files, sorted by name.
// Files in a directory that already carry suffix are earlier outputs and
// are left out.
func expandInputs(args []string, suffix string) ([]string, error) {
	var inputs []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			inputs = append(inputs, arg)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(arg, "*.srt"))
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", arg, err)
		}
		sort.Strings(matches)
		for _, m := range matches {
			base := strings.TrimSuffix(filepath.Base(m), filepath.Ext(m))
			if suffix != "" && strings.HasSuffix(base, suffix) {
				continue
			}
			inputs = append(inputs, m)
		}
	}
	return inputs, nil
}
