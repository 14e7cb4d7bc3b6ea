package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"github.com/hangfoxy/MoneyPrinterTurbo/internal/config"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{
		"MPT_ROOT", "GEMINI_API_KEY", "OPENAI_API_KEY",
		"ANTHROPIC_API_KEY", "MPT_FFMPEG_PATH",
	} {
		t.Setenv(key, "")
	}
	t.Chdir(t.TempDir())
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)
	t.Setenv("GEMINI_API_KEY", "gem-key")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent")
	}
	if resolved != filepath.Join(home, ".config", "mpt", "config.toml") {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if !cfg.Split.Uppercase || cfg.Split.Format != "srt" || cfg.Split.Suffix != ".words" {
		t.Fatalf("unexpected split defaults %+v", cfg.Split)
	}
	if cfg.Translate.Provider != "gemini" || cfg.APIKey("gemini") != "gem-key" {
		t.Fatalf("unexpected translate defaults %+v", cfg.Translate)
	}
	if cfg.Video.FontName != "Arial" || cfg.Video.FontSize != 20 {
		t.Fatalf("unexpected video defaults %+v", cfg.Video)
	}
	if !filepath.IsAbs(cfg.Paths.Root) {
		t.Fatalf("root should be absolute, got %q", cfg.Paths.Root)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	home := isolate(t)
	t.Setenv("OPENAI_API_KEY", "env-key")

	path := filepath.Join(t.TempDir(), "mpt.toml")
	content := `
[paths]
root = "~/mpt"

[split]
uppercase = false
format = "VTT"

[translate]
provider = "OpenAI"
openai_api_key = "file-key"
batch_size = 10

[video]
font_size = 48
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected explicit path to be used, got %q exists=%v", resolved, exists)
	}
	if cfg.Paths.Root != filepath.Join(home, "mpt") {
		t.Errorf("unexpected root %q", cfg.Paths.Root)
	}
	if cfg.Split.Uppercase || cfg.Split.Format != "vtt" {
		t.Errorf("unexpected split %+v", cfg.Split)
	}
	if cfg.Translate.Provider != "openai" || cfg.APIKey("openai") != "file-key" {
		t.Errorf("file values should win over env, got %+v", cfg.Translate)
	}
	if cfg.Translate.BatchSize != 10 || cfg.Translate.Concurrency != 3 {
		t.Errorf("unexpected translate tuning %+v", cfg.Translate)
	}
	if cfg.Video.FontSize != 48 || cfg.Video.FontName != "Arial" {
		t.Errorf("unexpected video %+v", cfg.Video)
	}
}

func TestLoadProjectFile(t *testing.T) {
	isolate(t)
	if err := os.WriteFile("mpt.toml", []byte("[split]\nsuffix = \".w\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || filepath.Base(resolved) != "mpt.toml" {
		t.Fatalf("expected project config, got %q exists=%v", resolved, exists)
	}
	if cfg.Split.Suffix != ".w" {
		t.Errorf("unexpected suffix %q", cfg.Split.Suffix)
	}
}

func TestLoadEnvRoot(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	t.Setenv("MPT_ROOT", root)
	t.Setenv("MPT_FFMPEG_PATH", "/opt/ffmpeg/bin/ffmpeg")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.Root != root {
		t.Errorf("expected root from env, got %q", cfg.Paths.Root)
	}
	if cfg.Video.FFmpegPath != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("expected ffmpeg path from env, got %q", cfg.Video.FFmpegPath)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	isolate(t)

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"format", "[split]\nformat = \"docx\"\n", "split.format"},
		{"provider", "[translate]\nprovider = \"bard\"\n", "translate.provider"},
		{"negative", "[translate]\nbatch_size = -1\n", "translate.batch_size"},
		{"unknown key", "[split]\nwords_per_line = 2\n", "parse config"},
		{"syntax", "[split\n", "parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestMarshalRoundTrips(t *testing.T) {
	cfg := config.Default()
	cfg.Translate.Model = "gpt-4o-mini"

	data, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	var decoded config.Config
	if err := toml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if decoded.Translate.Model != "gpt-4o-mini" || decoded.Video.FontSize != 20 {
		t.Errorf("unexpected decoded config %+v", decoded)
	}
}

func TestExpandPath(t *testing.T) {
	home := isolate(t)
	got, err := config.ExpandPath("~/a/../b")
	if err != nil {
		t.Fatalf("ExpandPath error: %v", err)
	}
	if got != filepath.Join(home, "b") {
		t.Errorf("unexpected expansion %q", got)
	}
	if got, _ := config.ExpandPath(""); got != "" {
		t.Errorf("empty path should stay empty, got %q", got)
	}
}
