package subtitle

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
)

func TestSplitLineEvenSplit(t *testing.T) {
	entries, err := SplitLine("00:00:01,000 --> 00:00:03,000 HELLO WORLD")
	if err != nil {
		t.Fatalf("SplitLine error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	want := []struct {
		start, end, word string
	}{
		{"00:00:01,000", "00:00:02,000", "HELLO"},
		{"00:00:02,000", "00:00:03,000", "WORLD"},
	}
	for i, w := range want {
		e := entries[i]
		if FormatTimestamp(e.StartMS) != w.start ||
			FormatTimestamp(e.EndMS) != w.end ||
			e.Word != w.word {
			t.Errorf("entry %d: got (%s, %s, %s), want (%s, %s, %s)",
				i,
				FormatTimestamp(e.StartMS), FormatTimestamp(e.EndMS), e.Word,
				w.start, w.end, w.word,
			)
		}
		if e.Sequence != i+1 {
			t.Errorf("entry %d: sequence %d", i, e.Sequence)
		}
	}
}

func TestSplitLineUnevenSplitFloorsAndPinsLastWord(t *testing.T) {
	entries, err := SplitLine("00:00:00,000 --> 00:00:01,000 a b c")
	if err != nil {
		t.Fatalf("SplitLine error: %v", err)
	}

	wantBounds := [][2]int64{{0, 333}, {333, 666}, {666, 1000}}
	if len(entries) != len(wantBounds) {
		t.Fatalf("expected %d entries, got %d", len(wantBounds), len(entries))
	}
	for i, b := range wantBounds {
		if entries[i].StartMS != b[0] || entries[i].EndMS != b[1] {
			t.Errorf("entry %d: got [%d, %d], want [%d, %d]",
				i, entries[i].StartMS, entries[i].EndMS, b[0], b[1])
		}
	}
}

func TestSplitLineCollapsesWhitespace(t *testing.T) {
	entries, err := SplitLine("00:00:00,000 --> 00:00:00,900 one \t two   three ")
	if err != nil {
		t.Fatalf("SplitLine error: %v", err)
	}
	var words []string
	for _, e := range entries {
		words = append(words, e.Word)
	}
	if strings.Join(words, "|") != "one|two|three" {
		t.Errorf("unexpected words %q", words)
	}
}

func TestSplitLineEmptyText(t *testing.T) {
	for _, line := range []string{
		"00:00:01,000 --> 00:00:02,000",
		"00:00:01,000 --> 00:00:02,000 ",
		"00:00:01,000 --> 00:00:02,000    \t ",
	} {
		entries, err := SplitLine(line)
		if err != nil {
			t.Errorf("SplitLine(%q) error: %v", line, err)
		}
		if len(entries) != 0 {
			t.Errorf("SplitLine(%q): expected no entries, got %d", line, len(entries))
		}
	}
}

func TestSplitLineRejectsBadSeparator(t *testing.T) {
	for _, line := range []string{
		"00:00:01,000 00:00:02,000 hello",
		"00:00:01,000-->00:00:02,000 hello",
		"00:00:01,000 --> 00:00:02,000 --> 00:00:03,000 hello",
		"00:00:01 --> 00:00:02,000 hello",
	} {
		_, err := SplitLine(line)
		if !errors.Is(err, ErrFormat) {
			t.Errorf("SplitLine(%q): expected ErrFormat, got %v", line, err)
		}
	}
}

func TestSplitIntervalSpanConservation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 0; n < 2000; n++ {
		start := rng.Int63n(3600000)
		end := start + rng.Int63n(20000)
		k := 1 + rng.Intn(25)
		words := make([]string, k)
		for i := range words {
			words[i] = "w"
		}

		entries := SplitInterval(
			Interval{StartMS: start, EndMS: end},
			strings.Join(words, " "),
			1,
		)
		if len(entries) != k {
			t.Fatalf("expected %d entries, got %d", k, len(entries))
		}
		if entries[0].StartMS != start {
			t.Fatalf("first start %d, want %d", entries[0].StartMS, start)
		}
		if entries[k-1].EndMS != end {
			t.Fatalf("last end %d, want %d", entries[k-1].EndMS, end)
		}
		for i := 0; i < k; i++ {
			if entries[i].EndMS < entries[i].StartMS {
				t.Fatalf("entry %d inverted: %+v", i, entries[i])
			}
			if i > 0 && entries[i-1].EndMS != entries[i].StartMS {
				t.Fatalf("gap between %d and %d: %+v %+v",
					i-1, i, entries[i-1], entries[i])
			}
		}
	}
}

func TestSplitRecordsNumbersAcrossRecords(t *testing.T) {
	records := []Record{
		{Sequence: 1, RawSeq: "1", Timing: "00:00:00,000 --> 00:00:01,000", Text: "one two"},
		{Sequence: 2, RawSeq: "2", Timing: "00:00:01,000 --> 00:00:02,000", Text: "   "},
		{Sequence: 3, RawSeq: "3", Timing: "00:00:02,000 --> 00:00:04,000", Text: "three four five"},
	}

	entries, err := NewSplitter().SplitRecords(records)
	if err != nil {
		t.Fatalf("SplitRecords error: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(entries))
	}
	for i, e := range entries {
		if e.Sequence != i+1 {
			t.Errorf("entry %d: sequence %d", i, e.Sequence)
		}
		if e.Word != strings.ToUpper(e.Word) {
			t.Errorf("entry %d: word %q not upper-cased", i, e.Word)
		}
	}
	if entries[2].Word != "THREE" {
		t.Errorf("expected THREE, got %q", entries[2].Word)
	}
}

func TestSplitRecordsTransformIsOptional(t *testing.T) {
	records := []Record{
		{RawSeq: "1", Timing: "00:00:00,000 --> 00:00:01,000", Text: "Straße ok"},
	}

	plain, err := (&Splitter{}).SplitRecords(records)
	if err != nil {
		t.Fatalf("SplitRecords error: %v", err)
	}
	if plain[0].Word != "Straße" {
		t.Errorf("expected unchanged word, got %q", plain[0].Word)
	}

	upper, err := NewSplitter().SplitRecords(records)
	if err != nil {
		t.Fatalf("SplitRecords error: %v", err)
	}
	if upper[0].Word != "STRASSE" {
		t.Errorf("expected full case mapping, got %q", upper[0].Word)
	}
}

func TestSplitRecordsReportsBadTiming(t *testing.T) {
	records := []Record{
		{RawSeq: "7", Timing: "garbage", Text: "word"},
	}
	_, err := NewSplitter().SplitRecords(records)
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
	if !strings.Contains(err.Error(), "record 7") {
		t.Errorf("expected record label in error, got %v", err)
	}
}

func TestUpperCaserTurkish(t *testing.T) {
	if got := UpperCaser("tr")("istanbul"); got != "İSTANBUL" {
		t.Errorf("turkish upper: got %q", got)
	}
	if got := UpperCaser("not a tag!")("abc"); got != "ABC" {
		t.Errorf("fallback upper: got %q", got)
	}
}
