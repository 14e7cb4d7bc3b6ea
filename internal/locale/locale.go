// Package locale detects the user's interface language and loads i18n
// catalogs.
package locale

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is returned when no usable locale is configured.
const DefaultLanguage = "en"

var localeEnvVars = []string{"LC_ALL", "LC_MESSAGES", "LC_CTYPE", "LANG"}

// SystemLocale returns the two-letter base language of the process locale
// (zh_CN and zh_TW both give "zh"), or DefaultLanguage.
func SystemLocale() string {
	return detect(os.Getenv)
}

func detect(getenv func(string) string) string {
	for _, key := range localeEnvVars {
		if code, ok := baseLanguage(getenv(key)); ok {
			return code
		}
	}
	return DefaultLanguage
}

// baseLanguage parses POSIX locale names such as "pt_BR.UTF-8@euro".
func baseLanguage(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	value, _, _ = strings.Cut(value, ".")
	value, _, _ = strings.Cut(value, "@")
	value = strings.ReplaceAll(value, "_", "-")

	tag, err := language.Parse(value)
	if err != nil {
		return "", false
	}
	base, conf := tag.Base()
	if conf == language.No {
		return "", false
	}
	code := base.String()
	if code == "" || code == "und" {
		return "", false
	}
	return code, true
}

// Catalog maps message keys to translated values.
type Catalog map[string]any

// LoadLocales walks dir for *.json files and keys each catalog by the file
// name up to its first dot ("zh.json" -> "zh").
func LoadLocales(dir string) (map[string]Catalog, error) {
	locales := make(map[string]Catalog)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read locale %s: %w", path, err)
		}
		var catalog Catalog
		if err := json.Unmarshal(data, &catalog); err != nil {
			return fmt.Errorf("parse locale %s: %w", path, err)
		}

		lang, _, _ := strings.Cut(d.Name(), ".")
		locales[lang] = catalog
		return nil
	})
	if err != nil {
		return nil, err
	}
	return locales, nil
}
