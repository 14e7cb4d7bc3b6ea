package subtitle

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Splitter turns subtitle records into one entry per word.
type Splitter struct {
	// Transform is applied to every word after splitting. Nil keeps words
	// unchanged.
	Transform func(string) string
}

// NewSplitter returns the default pipeline splitter, which upper-cases
// every word.
func NewSplitter() *Splitter {
	return &Splitter{Transform: UpperCaser("")}
}

// UpperCaser returns a full Unicode upper-casing function for the given
// BCP 47 language ("" or unknown means language neutral).
func UpperCaser(lang string) func(string) string {
	tag := language.Und
	if lang != "" {
		if parsed, err := language.Parse(lang); err == nil {
			tag = parsed
		}
	}
	// a Caser is stateful; build one per call so the func is goroutine safe
	return func(s string) string {
		return cases.Upper(tag).String(s)
	}
}

// SplitLine splits "<start> --> <end> <text>" into per-word entries numbered
// from 1. Words carry no transformation.
func SplitLine(line string) ([]WordEntry, error) {
	iv, text, err := parseTimedLine(line)
	if err != nil {
		return nil, err
	}
	return SplitInterval(iv, text, 1), nil
}

// SplitInterval divides iv evenly among the whitespace separated words of
// text. Word i covers [start+floor(i*d/k), start+floor((i+1)*d/k)] and the
// last word always ends at iv.EndMS. Entries are numbered from firstSeq.
func SplitInterval(iv Interval, text string, firstSeq int) []WordEntry {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	k := int64(len(words))
	total := iv.EndMS - iv.StartMS

	entries := make([]WordEntry, 0, len(words))
	for i, word := range words {
		idx := int64(i)
		start := iv.StartMS + idx*total/k
		end := iv.StartMS + (idx+1)*total/k
		if i == len(words)-1 {
			end = iv.EndMS
		}
		entries = append(entries, WordEntry{
			Sequence: firstSeq + i,
			StartMS:  start,
			EndMS:    end,
			Word:     word,
		})
	}
	return entries
}

// SplitRecords splits every record and numbers the words with one counter
// across the whole document, starting at 1.
func (s *Splitter) SplitRecords(records []Record) ([]WordEntry, error) {
	var all []WordEntry
	next := 1
	for _, rec := range records {
		entries, err := SplitLine(rec.Timing + " " + rec.Text)
		if err != nil {
			return nil, fmt.Errorf("record %s: %w", recordLabel(rec), err)
		}
		for _, e := range entries {
			e.Sequence = next
			if s != nil && s.Transform != nil {
				e.Word = s.Transform(e.Word)
			}
			all = append(all, e)
			next++
		}
	}
	return all, nil
}

func parseTimedLine(line string) (Interval, string, error) {
	parts := strings.Split(line, " --> ")
	if len(parts) != 2 {
		return Interval{}, "", formatErr(line, "expected exactly one ' --> '")
	}

	endStr, text, _ := strings.Cut(parts[1], " ")
	start, err := ParseTimestamp(parts[0])
	if err != nil {
		return Interval{}, "", err
	}
	end, err := ParseTimestamp(endStr)
	if err != nil {
		return Interval{}, "", err
	}
	if end < start {
		return Interval{}, "", formatErr(line, "end precedes start")
	}

	return Interval{StartMS: start, EndMS: end}, text, nil
}

func recordLabel(rec Record) string {
	if rec.RawSeq != "" {
		return rec.RawSeq
	}
	return "?"
}
