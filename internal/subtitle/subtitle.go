package subtitle

import (
	"errors"
	"fmt"
)

// one parsed SRT block
type Record struct {
	Sequence int    // 0 when the sequence line is not numeric
	RawSeq   string // sequence line as read
	Timing   string // "start --> end"
	Text     string // text lines joined with single spaces
}

// time span in milliseconds
type Interval struct {
	StartMS int64
	EndMS   int64
}

// Duration in milliseconds.
func (iv Interval) Duration() int64 {
	return iv.EndMS - iv.StartMS
}

// single word caption produced by the splitter
type WordEntry struct {
	Sequence int
	StartMS  int64
	EndMS    int64
	Word     string
}

// Interval of the entry.
func (e WordEntry) Interval() Interval {
	return Interval{StartMS: e.StartMS, EndMS: e.EndMS}
}

// represents supported output formats
type Format string

const (
	FormatSRT Format = "srt"
	FormatVTT Format = "vtt"
	FormatASS Format = "ass"
)

// ErrFormat is matched by every *FormatError.
var ErrFormat = errors.New("subtitle format error")

// FormatError reports malformed timestamps, timing lines or blocks.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid subtitle syntax %q: %s", e.Input, e.Reason)
}

func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

func formatErr(input, reason string) error {
	return &FormatError{Input: input, Reason: reason}
}
