package subtitle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func sampleEntries() []WordEntry {
	return []WordEntry{
		{Sequence: 1, StartMS: 1000, EndMS: 2000, Word: "HELLO"},
		{Sequence: 2, StartMS: 2000, EndMS: 3000, Word: "WORLD"},
	}
}

func TestSRTWriterRender(t *testing.T) {
	got := (&SRTWriter{}).Render(sampleEntries())
	want := "1\n00:00:01,000 --> 00:00:02,000\nHELLO\n\n" +
		"2\n00:00:02,000 --> 00:00:03,000\nWORLD\n"
	if got != want {
		t.Errorf("Render mismatch:\ngot  %q\nwant %q", got, want)
	}

	if got := (&SRTWriter{}).Render(nil); got != "" {
		t.Errorf("empty render: got %q", got)
	}
}

func TestSRTWriterRenumbers(t *testing.T) {
	entries := []WordEntry{
		{Sequence: 9, StartMS: 0, EndMS: 10, Word: "A"},
		{Sequence: 4, StartMS: 10, EndMS: 20, Word: "B"},
	}
	got := (&SRTWriter{}).Render(entries)
	if !strings.HasPrefix(got, "1\n") || !strings.Contains(got, "\n\n2\n") {
		t.Errorf("expected sequential numbering, got %q", got)
	}
}

func TestSRTOutputParsesBack(t *testing.T) {
	out := (&SRTWriter{}).Render(sampleEntries())
	res := ParseString(out)
	if len(res.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(res.Records))
	}
	iv, err := ParseTiming(res.Records[1].Timing)
	if err != nil {
		t.Fatalf("ParseTiming error: %v", err)
	}
	if iv.StartMS != 2000 || iv.EndMS != 3000 || res.Records[1].Text != "WORLD" {
		t.Errorf("unexpected record %+v", res.Records[1])
	}
}

func TestVTTWriterRender(t *testing.T) {
	got := (&VTTWriter{}).Render(sampleEntries())
	if !strings.HasPrefix(got, "WEBVTT\n\n") {
		t.Errorf("missing header: %q", got)
	}
	if !strings.Contains(got, "00:00:01.000 --> 00:00:02.000\nHELLO\n\n") {
		t.Errorf("unexpected cue: %q", got)
	}
}

func TestASSWriterRender(t *testing.T) {
	got := NewASSWriter("Noto Sans", 48).Render(sampleEntries())
	if !strings.Contains(got, "Style: Default,Noto Sans,48,") {
		t.Errorf("style not applied: %q", got)
	}
	if !strings.Contains(got, "Dialogue: 0,0:00:01.00,0:00:02.00,Default,,0,0,0,,HELLO\n") {
		t.Errorf("unexpected dialogue: %q", got)
	}

	def := NewASSWriter("", 0)
	if def.FontName != "Arial" || def.FontSize != 20 {
		t.Errorf("unexpected defaults %+v", def)
	}
}

func TestWriterWriteCreatesDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	outPath := filepath.Join(tmpDir, "nested", "dir", "out.srt")

	if err := (&SRTWriter{}).Write(sampleEntries(), outPath); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if !strings.HasSuffix(string(data), "WORLD\n") {
		t.Errorf("unexpected output %q", data)
	}
}

func TestFormatHelpers(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"a.srt", FormatSRT},
		{"a.VTT", FormatVTT},
		{"a.ass", FormatASS},
		{"a.ssa", FormatASS},
		{"a.txt", FormatSRT},
	}
	for _, tt := range tests {
		if got := GetFormatFromExtension(tt.path); got != tt.want {
			t.Errorf("GetFormatFromExtension(%q) = %s, want %s", tt.path, got, tt.want)
		}
	}

	if GetExtensionForFormat(FormatVTT) != ".vtt" {
		t.Error("expected .vtt")
	}
	if _, err := NewWriter(Format("txt")); err == nil {
		t.Error("expected error for unsupported format")
	}
	if f, err := ParseFormat(" ASS "); err != nil || f != FormatASS {
		t.Errorf("ParseFormat: got %s, %v", f, err)
	}
	if _, err := ParseFormat("docx"); err == nil {
		t.Error("expected error for docx")
	}
}

func TestTextToSRT(t *testing.T) {
	got := TextToSRT(3, "hello there", 1.5, 3.25)
	want := "3\n00:00:01,500 --> 00:00:03,250\nhello there\n"
	if got != want {
		t.Errorf("TextToSRT: got %q, want %q", got, want)
	}
}

func TestRenderRecords(t *testing.T) {
	records := []Record{
		{Sequence: 5, RawSeq: "5", Timing: "00:00:01,000 --> 00:00:02,000", Text: "bonjour"},
		{Sequence: 6, RawSeq: "6", Timing: "00:00:02,000 --> 00:00:03,000", Text: "le monde"},
	}
	got := RenderRecords(records)
	want := "1\n00:00:01,000 --> 00:00:02,000\nbonjour\n\n" +
		"2\n00:00:02,000 --> 00:00:03,000\nle monde\n"
	if got != want {
		t.Errorf("RenderRecords mismatch:\ngot  %q\nwant %q", got, want)
	}

	res := ParseString(got)
	if len(res.Records) != 2 || res.Records[1].Text != "le monde" {
		t.Errorf("rendered records should parse back, got %+v", res.Records)
	}
}

func TestWritersEscapeMarkup(t *testing.T) {
	entries := []WordEntry{
		{Sequence: 1, StartMS: 0, EndMS: 500, Word: `{\b1}BOLD`},
		{Sequence: 2, StartMS: 500, EndMS: 900, Word: "<I>&"},
	}

	ass := NewASSWriter("", 0).Render(entries)
	if !strings.Contains(ass, `,,\{\b1\}BOLD`+"\n") {
		t.Errorf("braces should be escaped in ASS text: %q", ass)
	}
	if !strings.Contains(ass, ",,<I>&\n") {
		t.Errorf("ASS text should keep angle brackets: %q", ass)
	}

	vtt := (&VTTWriter{}).Render(entries)
	if !strings.Contains(vtt, "\n&lt;I&gt;&amp;\n") {
		t.Errorf("markup should be escaped in VTT text: %q", vtt)
	}
	if !strings.HasSuffix(vtt, "00:00:00.500 --> 00:00:00.900\n&lt;I&gt;&amp;\n") {
		t.Errorf("unexpected final cue: %q", vtt)
	}
}
