package subtitle

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	msPerSecond = 1000
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
)

// ParseTimestamp converts an SRT timestamp (HH:MM:SS,mmm) to milliseconds.
// Fraction digits past the third are truncated, never rounded.
func ParseTimestamp(s string) (int64, error) {
	s = strings.TrimSpace(s)
	fields := strings.Split(s, ":")
	if len(fields) != 3 {
		return 0, formatErr(s, "expected HH:MM:SS,mmm")
	}

	secPart, fracPart, ok := strings.Cut(fields[2], ",")
	if !ok {
		return 0, formatErr(s, "missing ',' before milliseconds")
	}

	h, err := parseDigits(fields[0])
	if err != nil {
		return 0, formatErr(s, "hours: "+err.Error())
	}
	m, err := parseDigits(fields[1])
	if err != nil {
		return 0, formatErr(s, "minutes: "+err.Error())
	}
	sec, err := parseDigits(secPart)
	if err != nil {
		return 0, formatErr(s, "seconds: "+err.Error())
	}
	ms, err := parseFraction(fracPart)
	if err != nil {
		return 0, formatErr(s, "milliseconds: "+err.Error())
	}

	var total int64
	for _, part := range []struct {
		n, unit int64
	}{{h, msPerHour}, {m, msPerMinute}, {sec, msPerSecond}, {ms, 1}} {
		if part.n > (math.MaxInt64-total)/part.unit {
			return 0, formatErr(s, "value out of range")
		}
		total += part.n * part.unit
	}
	return total, nil
}

// FormatTimestamp renders milliseconds as HH:MM:SS,mmm. Negative input
// renders as zero.
func FormatTimestamp(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	hours := ms / msPerHour
	minutes := (ms % msPerHour) / msPerMinute
	seconds := (ms % msPerMinute) / msPerSecond
	millis := ms % msPerSecond

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}

// FormatSeconds renders a second count (as produced by speech engines) in
// SRT notation.
func FormatSeconds(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	hours := int64(seconds / 3600)
	rest := math.Mod(seconds, 3600)
	minutes := int64(rest / 60)
	millis := int64(rest*1000) % 1000
	secs := int64(math.Mod(rest, 60))

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// ParseTiming parses a "start --> end" timing line.
func ParseTiming(line string) (Interval, error) {
	parts := strings.Split(line, "-->")
	if len(parts) != 2 {
		return Interval{}, formatErr(line, "expected exactly one '-->'")
	}
	start, err := ParseTimestamp(parts[0])
	if err != nil {
		return Interval{}, err
	}
	end, err := ParseTimestamp(parts[1])
	if err != nil {
		return Interval{}, err
	}
	if end < start {
		return Interval{}, formatErr(line, "end precedes start")
	}
	return Interval{StartMS: start, EndMS: end}, nil
}

// FormatTiming renders an interval as "start --> end".
func FormatTiming(iv Interval) string {
	return FormatTimestamp(iv.StartMS) + " --> " + FormatTimestamp(iv.EndMS)
}

func parseDigits(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty field")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("non-digit %q", r)
		}
	}
	return strconv.ParseInt(s, 10, 64)
}

// parseFraction reads decimal-second digits as whole milliseconds.
func parseFraction(s string) (int64, error) {
	if len(s) > 3 {
		if _, err := parseDigits(s[3:]); err != nil {
			return 0, err
		}
		s = s[:3]
	}
	for len(s) < 3 {
		s += "0"
	}
	return parseDigits(s)
}
