package subtitle

import (
	"errors"
	"math/rand"
	"testing"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"00:00:00,000", 0},
		{"00:00:01,000", 1000},
		{"00:00:01,001", 1001},
		{"00:01:00,500", 60500},
		{"01:02:03,456", 3723456},
		{"99:59:59,999", 359999999},
		{" 00:00:02,250 ", 2250},
		{"00:00:02,5", 2500},
		{"00:00:02,", 2000},
		{"00:00:02,9999", 2999},
		{"100:00:00,000", 360000000},
		{"999999999999:00:00,000", 3599999999996400000},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)
			if err != nil {
				t.Fatalf("ParseTimestamp(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseTimestamp(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseTimestampRejectsMalformed(t *testing.T) {
	inputs := []string{
		"",
		"00:00:01.000",
		"00:01,000",
		"00:00:00:01,000",
		"aa:00:01,000",
		"00:-1:01,000",
		"00:00:01,0x0",
		"00::01,000",
		"9999999999999:00:00,000",
		"00:9999999999999999:00,000",
		"99999999999999999999:00:00,000",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := ParseTimestamp(in)
			if err == nil {
				t.Fatalf("expected error for %q", in)
			}
			if !errors.Is(err, ErrFormat) {
				t.Errorf("expected ErrFormat, got %v", err)
			}
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Errorf("expected *FormatError, got %T", err)
			}
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "00:00:00,000"},
		{1, "00:00:00,001"},
		{1000, "00:00:01,000"},
		{61001, "00:01:01,001"},
		{3723456, "01:02:03,456"},
		{359999999, "99:59:59,999"},
		{-5, "00:00:00,000"},
	}

	for _, tt := range tests {
		if got := FormatTimestamp(tt.ms); got != tt.want {
			t.Errorf("FormatTimestamp(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	check := func(ms int64) {
		t.Helper()
		got, err := ParseTimestamp(FormatTimestamp(ms))
		if err != nil {
			t.Fatalf("round trip %d: %v", ms, err)
		}
		if got != ms {
			t.Fatalf("round trip %d: got %d", ms, got)
		}
	}

	for ms := int64(0); ms < 5000; ms++ {
		check(ms)
	}
	for _, ms := range []int64{59999, 60000, 3599999, 3600000, 359999998, 359999999} {
		check(ms)
	}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20000; i++ {
		check(rng.Int63n(360000000))
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00,000"},
		{1.5, "00:00:01,500"},
		{61.25, "00:01:01,250"},
		{3725.75, "01:02:05,750"},
		{-3, "00:00:00,000"},
	}

	for _, tt := range tests {
		if got := FormatSeconds(tt.seconds); got != tt.want {
			t.Errorf("FormatSeconds(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestParseTiming(t *testing.T) {
	iv, err := ParseTiming("00:00:01,000 --> 00:00:03,500")
	if err != nil {
		t.Fatalf("ParseTiming error: %v", err)
	}
	if iv.StartMS != 1000 || iv.EndMS != 3500 {
		t.Errorf("unexpected interval %+v", iv)
	}
	if iv.Duration() != 2500 {
		t.Errorf("duration: got %d", iv.Duration())
	}
	if got := FormatTiming(iv); got != "00:00:01,000 --> 00:00:03,500" {
		t.Errorf("FormatTiming: got %q", got)
	}

	for _, bad := range []string{
		"00:00:01,000 00:00:03,500",
		"00:00:01,000 --> 00:00:02,000 --> 00:00:03,000",
		"00:00:03,000 --> 00:00:01,000",
	} {
		if _, err := ParseTiming(bad); !errors.Is(err, ErrFormat) {
			t.Errorf("ParseTiming(%q): expected ErrFormat, got %v", bad, err)
		}
	}
}
