package extract

import (
	"strings"
	"unicode/utf8"
)

// Window returns the text surrounding [start, end) expanded by radius runes on
// each side, clamped to the text bounds. Offsets are byte offsets into text,
// the expansion counts runes so multi-byte characters are never split.
func Window(text string, start int, end int, radius int) string {
	if start < 0 {
		start = 0
	}
	if end > len(text) {
		end = len(text)
	}
	if start > end {
		start = end
	}

	left := start
	for i := 0; i < radius && left > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(text[:left])
		left -= size
	}

	right := end
	for i := 0; i < radius && right < len(text); i++ {
		_, size := utf8.DecodeRuneInString(text[right:])
		right += size
	}

	return strings.TrimSpace(text[left:right])
}

// WindowAround locates the first occurrence of literal in text and returns the
// window around it. It falls back to the head of the text if the literal is
// not found.
func WindowAround(text string, literal string, radius int) string {
	index := strings.Index(text, literal)
	if index < 0 {
		return Window(text, 0, 0, radius)
	}
	return Window(text, index, index+len(literal), radius)
}
