// ABOUTME: Splits raw document text into overlapping, size-bounded passages
// ABOUTME: Paragraph-aware greedy packing with overlap carry across chunk boundaries
package core

import (
	"strings"
	"unicode"
)

// Piece is one emitted chunk of text with its position in the source document
type Piece struct {
	Content string
	Index   int
}

// paragraphSep joins paragraphs (or an overlap carry and the text that
// follows it) inside one chunk.
const paragraphSep = "\n\n"

// Chunk splits text into pieces of at most maxChars characters each.
// Paragraph boundaries (blank lines) are preserved where possible; when a
// chunk is emitted, the last overlapChars characters are carried into the
// next chunk for context continuity. Paragraphs longer than maxChars are
// hard-split at the nearest preceding whitespace, falling back to a hard cut
// when no whitespace exists past the midpoint of the allowed span.
func Chunk(text string, maxChars, overlapChars int) ([]Piece, error) {
	if maxChars <= 0 {
		return nil, Validationf("maxChars must be positive, got %d", maxChars)
	}
	if overlapChars < 0 || overlapChars >= maxChars {
		return nil, Validationf("overlapChars must be in [0, maxChars), got %d", overlapChars)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	var (
		pieces []Piece
		buf    []rune
		hasNew bool // buf holds content beyond a carried-over overlap
	)

	emit := func() {
		pieces = append(pieces, Piece{Content: string(buf), Index: len(pieces)})
		if overlapChars > 0 && len(buf) > overlapChars {
			buf = append([]rune(nil), buf[len(buf)-overlapChars:]...)
		} else if overlapChars > 0 {
			buf = append([]rune(nil), buf...)
		} else {
			buf = nil
		}
		hasNew = false
	}

	// joinedLen is the chunk length if part were appended to the buffer now
	joinedLen := func(part []rune) int {
		if len(buf) == 0 {
			return len(part)
		}
		return len(buf) + len(paragraphSep) + len(part)
	}

	appendPart := func(part []rune) {
		if len(buf) > 0 {
			buf = append(buf, []rune(paragraphSep)...)
		}
		buf = append(buf, part...)
		hasNew = true
	}

	for _, para := range splitParagraphs(text) {
		pr := []rune(para)

		if joinedLen(pr) <= maxChars {
			appendPart(pr)
			continue
		}

		// Current buffer is full: emit it and retry against the carry.
		if hasNew {
			emit()
			if joinedLen(pr) <= maxChars {
				appendPart(pr)
				continue
			}
		}

		// Paragraph exceeds the room left even on a fresh buffer: hard-split.
		rest := pr
		for len(rest) > 0 && joinedLen(rest) > maxChars {
			room := maxChars - len(buf)
			if len(buf) > 0 {
				room -= len(paragraphSep)
			}
			if room < 1 {
				// Overlap carry alone nearly fills a chunk; drop it.
				buf = nil
				hasNew = false
				room = maxChars
			}
			cut := splitPoint(rest, room)
			appendPart(trimRightSpace(rest[:cut]))
			emit()
			rest = trimLeftSpace(rest[cut:])
		}
		if len(rest) > 0 {
			appendPart(rest)
		}
	}

	if hasNew && len(buf) > 0 {
		pieces = append(pieces, Piece{Content: string(buf), Index: len(pieces)})
	}

	return pieces, nil
}

// splitParagraphs splits text on blank-line boundaries, dropping empties
func splitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	raw := strings.Split(text, "\n\n")
	paragraphs := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// splitPoint returns where to cut an oversized run of runes so the head is at
// most limit characters. It prefers the last whitespace before the limit; if
// the only whitespace sits in the first half of the span, it cuts hard at the
// limit instead of producing a degenerate short chunk.
func splitPoint(runes []rune, limit int) int {
	if limit >= len(runes) {
		return len(runes)
	}
	for i := limit; i > limit/2; i-- {
		if unicode.IsSpace(runes[i-1]) {
			return i
		}
	}
	return limit
}

func trimLeftSpace(runes []rune) []rune {
	i := 0
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	return runes[i:]
}

func trimRightSpace(runes []rune) []rune {
	n := len(runes)
	for n > 0 && unicode.IsSpace(runes[n-1]) {
		n--
	}
	return runes[:n]
}
