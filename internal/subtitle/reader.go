package subtitle

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// block the reader could not turn into a Record
type SkippedBlock struct {
	Block   int // 1-based position in the document
	Lines   int
	Content string
}

// outcome of reading one SRT document. Skipped blocks are expected in
// loosely formatted files and are not errors.
type ReadResult struct {
	Records []Record
	Skipped []SkippedBlock
}

// ReadFile reads and parses an SRT file. Only I/O failures are returned as
// errors.
func ReadFile(path string) (*ReadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read SRT file: %w", err)
	}
	return ParseString(string(data)), nil
}

// Read parses an SRT document from r.
func Read(r io.Reader) (*ReadResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read SRT content: %w", err)
	}
	return ParseString(string(data)), nil
}

// ParseString splits content on blank lines. Each block needs a sequence
// line, a timing line and at least one text line; shorter blocks are skipped.
func ParseString(content string) *ReadResult {
	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimSpace(content)

	result := &ReadResult{}
	if content == "" {
		return result
	}

	for i, block := range strings.Split(content, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		lines := strings.Split(block, "\n")
		if len(lines) < 3 {
			result.Skipped = append(result.Skipped, SkippedBlock{
				Block:   i + 1,
				Lines:   len(lines),
				Content: block,
			})
			continue
		}

		rawSeq := strings.TrimSpace(lines[0])
		seq, err := strconv.Atoi(rawSeq)
		if err != nil || seq < 1 {
			seq = 0
		}

		result.Records = append(result.Records, Record{
			Sequence: seq,
			RawSeq:   rawSeq,
			Timing:   strings.TrimSpace(lines[1]),
			Text:     strings.Join(lines[2:], " "),
		})
	}

	return result
}
