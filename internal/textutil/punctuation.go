// Package textutil breaks narration scripts into caption-sized sentences.
package textutil

import (
	"strings"
	"unicode"
)

// Punctuations are the sentence break marks used when cutting a script into
// caption lines. Latin and CJK forms are both listed.
var Punctuations = []string{
	"?", ",", ".", "、", ";", ":", "!", "…",
	"？", "，", "。", "；", "：", "！", "...",
}

// ContainsPunctuation reports whether word contains any break mark.
func ContainsPunctuation(word string) bool {
	for _, p := range Punctuations {
		if strings.Contains(word, p) {
			return true
		}
	}
	return false
}

// SplitByPunctuations cuts s at newlines and break marks and drops empty
// pieces. A '.' between two digits ("2.5%") does not break.
func SplitByPunctuations(s string) []string {
	runes := []rune(s)
	var result []string
	var sb strings.Builder

	flush := func() {
		result = append(result, strings.TrimSpace(sb.String()))
		sb.Reset()
	}

	for i, r := range runes {
		if r == '\n' {
			flush()
			continue
		}

		if r == '.' && i > 0 && i < len(runes)-1 &&
			unicode.IsDigit(runes[i-1]) && unicode.IsDigit(runes[i+1]) {
			sb.WriteRune(r)
			continue
		}

		if !isPunctuation(r) {
			sb.WriteRune(r)
			continue
		}
		flush()
	}
	flush()

	out := result[:0]
	for _, piece := range result {
		if piece != "" {
			out = append(out, piece)
		}
	}
	return out
}

func isPunctuation(r rune) bool {
	s := string(r)
	for _, p := range Punctuations {
		if p == s {
			return true
		}
	}
	return false
}
