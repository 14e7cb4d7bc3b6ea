package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/hangfoxy/MoneyPrinterTurbo/internal/ident"
	"github.com/hangfoxy/MoneyPrinterTurbo/internal/jsonsafe"
	"github.com/hangfoxy/MoneyPrinterTurbo/internal/locale"
	"github.com/hangfoxy/MoneyPrinterTurbo/internal/subtitle"
	"github.com/hangfoxy/MoneyPrinterTurbo/internal/textutil"
)

var dirsCmd = &cobra.Command{
	Use:   "dirs",
	Short: "Show the storage and resource directories",
	Args:  cobra.NoArgs,
	RunE:  runDirs,
}

var localeCmd = &cobra.Command{
	Use:   "locale",
	Short: "Show the system language and the available UI catalogs",
	Args:  cobra.NoArgs,
	RunE:  runLocale,
}

var uuidCmd = &cobra.Command{
	Use:   "uuid",
	Short: "Print a new task id",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		noHyphen, _ := cmd.Flags().GetBool("no-hyphen")
		fmt.Fprintln(cmd.OutOrStdout(), ident.UUID(noHyphen))
		return nil
	},
}

var md5Cmd = &cobra.Command{
	Use:   "md5 [text]",
	Short: "Print the MD5 digest of text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), ident.MD5(args[0]))
		return nil
	},
}

var sentencesCmd = &cobra.Command{
	Use:   "sentences [text|-]",
	Short: "Cut a script into caption sentences",
	Long: `Cut a narration script into sentences at punctuation and newlines.

The sentences are printed as a JSON response. With --duration the script
is instead laid out as SRT captions over that many seconds, each sentence
getting time in proportion to its length.

Examples:
  mpt sentences "Hello there. How are you?"
  mpt sentences - --duration 30 < script.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runSentences,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(dirsCmd, localeCmd, uuidCmd, md5Cmd, sentencesCmd, configCmd)

	dirsCmd.Flags().Bool("create", false, "Create missing directories")
	localeCmd.Flags().String("dir", "", "Directory of <lang>.json catalogs (default resource/locales)")
	uuidCmd.Flags().Bool("no-hyphen", false, "Strip hyphens from the id")
	sentencesCmd.Flags().Float64("duration", 0, "Lay the sentences out as SRT over this many seconds")
}

func runDirs(cmd *cobra.Command, args []string) error {
	create, _ := cmd.Flags().GetBool("create")

	dirs, err := projectDirs()
	if err != nil {
		return err
	}

	storage, err := dirs.Storage("", create)
	if err != nil {
		return err
	}
	tasks := filepath.Join(storage, "tasks")
	fonts, songs, public := dirs.Resource("fonts"), dirs.Resource("songs"), dirs.Resource("public")
	if create {
		if tasks, err = dirs.Task(""); err != nil {
			return err
		}
		if fonts, err = dirs.Font(""); err != nil {
			return err
		}
		if songs, err = dirs.Song(""); err != nil {
			return err
		}
		if public, err = dirs.Public(""); err != nil {
			return err
		}
	}

	entries := [][2]string{
		{"root", dirs.Root},
		{"storage", storage},
		{"tasks", tasks},
		{"fonts", fonts},
		{"songs", songs},
		{"public", public},
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		_, statErr := os.Stat(e[1])
		rows = append(rows, []string{e[0], e[1], strconv.FormatBool(statErr == nil)})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Name", "Path", "Exists"},
		rows,
		nil,
	))
	return nil
}

func runLocale(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "System language: %s\n", locale.SystemLocale())

	if dir == "" {
		dirs, err := projectDirs()
		if err != nil {
			return err
		}
		dir = dirs.Resource("locales")
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return nil
		}
	}

	catalogs, err := locale.LoadLocales(dir)
	if err != nil {
		return err
	}
	langs := make([]string, 0, len(catalogs))
	for lang := range catalogs {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	rows := make([][]string, 0, len(langs))
	for _, lang := range langs {
		rows = append(rows, []string{lang, strconv.Itoa(len(catalogs[lang]))})
	}
	fmt.Fprintln(out, renderTable([]string{"Language", "Keys"}, rows, []columnAlignment{alignLeft, alignRight}))
	return nil
}

func runSentences(cmd *cobra.Command, args []string) error {
	duration, _ := cmd.Flags().GetFloat64("duration")

	text := args[0]
	if text == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(data)
	}

	sentences := textutil.SplitByPunctuations(text)
	out := cmd.OutOrStdout()

	if duration > 0 {
		fmt.Fprint(out, sentencesToSRT(sentences, duration))
		return nil
	}

	rendered, ok := jsonsafe.ToJSON(jsonsafe.Response(200, sentences, ""))
	if !ok {
		return fmt.Errorf("failed to render sentences")
	}
	fmt.Fprintln(out, rendered)
	return nil
}

// sentencesToSRT spreads duration seconds over sentences by rune count.
func sentencesToSRT(sentences []string, duration float64) string {
	total := 0
	for _, s := range sentences {
		total += utf8.RuneCountInString(s)
	}
	if total == 0 {
		return ""
	}

	blocks := make([]string, 0, len(sentences))
	elapsed := 0
	for i, s := range sentences {
		start := duration * float64(elapsed) / float64(total)
		elapsed += utf8.RuneCountInString(s)
		end := duration * float64(elapsed) / float64(total)
		blocks = append(blocks, subtitle.TextToSRT(i+1, s, start, end))
	}
	return strings.Join(blocks, "\n")
}

func runConfig(cmd *cobra.Command, args []string) error {
	shown := *cfg
	for _, key := range []*string{
		&shown.Translate.GeminiAPIKey,
		&shown.Translate.OpenAIAPIKey,
		&shown.Translate.AnthropicAPIKey,
	} {
		if *key != "" {
			*key = "***"
		}
	}

	data, err := shown.Marshal()
	if err != nil {
		return fmt.Errorf("render config: %w", err)
	}

	out := cmd.OutOrStdout()
	if cfgExists {
		fmt.Fprintf(out, "# source: %s\n", cfgSource)
	} else {
		fmt.Fprintf(out, "# source: built-in defaults (%s not found)\n", cfgSource)
	}
	_, err = out.Write(data)
	return err
}
