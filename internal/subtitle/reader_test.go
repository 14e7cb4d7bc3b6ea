package subtitle

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseString(t *testing.T) {
	content := `1
00:00:01,000 --> 00:00:04,000
Hello, world!

2
00:00:05,500 --> 00:00:08,200
This is a test.
With multiple lines.

3
00:00:10,000 --> 00:00:12,500
Final subtitle.
`
	res := ParseString(content)
	if len(res.Records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(res.Records))
	}
	if len(res.Skipped) != 0 {
		t.Errorf("expected no skipped blocks, got %d", len(res.Skipped))
	}

	first := res.Records[0]
	if first.Sequence != 1 || first.Timing != "00:00:01,000 --> 00:00:04,000" {
		t.Errorf("record 0: unexpected %+v", first)
	}
	if first.Text != "Hello, world!" {
		t.Errorf("record 0: expected 'Hello, world!', got %q", first.Text)
	}

	expectedText := "This is a test. With multiple lines."
	if res.Records[1].Text != expectedText {
		t.Errorf("record 1: expected %q, got %q", expectedText, res.Records[1].Text)
	}
}

func TestParseStringSkipsShortBlocks(t *testing.T) {
	content := "1\n00:00:01,000 --> 00:00:02,000\n\n" +
		"2\n00:00:02,000 --> 00:00:03,000\nkept\n\n" +
		"trailing junk"

	res := ParseString(content)
	if len(res.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(res.Records))
	}
	if res.Records[0].Text != "kept" {
		t.Errorf("unexpected record %+v", res.Records[0])
	}
	if len(res.Skipped) != 2 {
		t.Fatalf("expected 2 skipped blocks, got %d", len(res.Skipped))
	}
	if res.Skipped[0].Block != 1 || res.Skipped[0].Lines != 2 {
		t.Errorf("unexpected skipped block %+v", res.Skipped[0])
	}
	if res.Skipped[1].Content != "trailing junk" {
		t.Errorf("unexpected skipped content %q", res.Skipped[1].Content)
	}
}

func TestParseStringNormalizesInput(t *testing.T) {
	content := "\ufeff1\r\n00:00:01,000 --> 00:00:02,000\r\nwindows line\r\n\r\n" +
		"x\r\n00:00:02,000 --> 00:00:03,000\r\nno number\r\n"

	res := ParseString(content)
	if len(res.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(res.Records))
	}
	if res.Records[0].Sequence != 1 || res.Records[0].Text != "windows line" {
		t.Errorf("unexpected record %+v", res.Records[0])
	}
	if res.Records[1].Sequence != 0 || res.Records[1].RawSeq != "x" {
		t.Errorf("non-numeric sequence should be kept raw, got %+v", res.Records[1])
	}
}

func TestParseStringEmpty(t *testing.T) {
	for _, in := range []string{"", "\n\n\n", "   "} {
		res := ParseString(in)
		if len(res.Records) != 0 || len(res.Skipped) != 0 {
			t.Errorf("ParseString(%q): expected empty result, got %+v", in, res)
		}
	}
}

func TestReadFile(t *testing.T) {
	tmpDir := t.TempDir()
	srtPath := filepath.Join(tmpDir, "test.srt")
	content := "1\n00:00:01,000 --> 00:00:03,000\nHELLO WORLD\n\n"
	if err := os.WriteFile(srtPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	res, err := ReadFile(srtPath)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if len(res.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(res.Records))
	}

	_, err = ReadFile(filepath.Join(tmpDir, "missing.srt"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestRead(t *testing.T) {
	res, err := Read(strings.NewReader("1\n00:00:01,000 --> 00:00:02,000\nhi"))
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if len(res.Records) != 1 || res.Records[0].Text != "hi" {
		t.Errorf("unexpected result %+v", res)
	}
}
