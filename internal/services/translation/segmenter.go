package translation

import (
	"strings"
	"unicode"

	"github.com/killallgit/scribe-api/internal/models"
)

// DefaultMaxSegmentLength is used when a caller passes a non-positive limit
const DefaultMaxSegmentLength = 3000

// isTerminator reports whether r ends a sentence for segmentation purposes
func isTerminator(r rune) bool {
	switch r {
	case '。', '.', '？', '！', '!', '?':
		return true
	}
	return false
}

// Segment splits text into ordered segments of roughly maxLength runes.
// A segment is only closed after a sentence terminator once the buffer has
// reached maxLength, so the limit is a soft target and a long run without
// terminators stays in one segment. Lengths and offsets count runes.
func Segment(text string, maxLength int) []models.Segment {
	if maxLength <= 0 {
		maxLength = DefaultMaxSegmentLength
	}

	runes := []rune(text)
	segments := make([]models.Segment, 0, len(runes)/maxLength+1)

	start := 0
	for i, r := range runes {
		if i+1-start >= maxLength && isTerminator(r) {
			if seg, ok := trimmed(runes, start, i+1, len(segments)); ok {
				segments = append(segments, seg)
			}
			start = i + 1
		}
	}
	if start < len(runes) {
		if seg, ok := trimmed(runes, start, len(runes), len(segments)); ok {
			segments = append(segments, seg)
		}
	}

	return segments
}

// trimmed builds a segment from runes[start:end] without surrounding
// whitespace. It returns false when nothing but whitespace remains.
func trimmed(runes []rune, start, end, index int) (models.Segment, bool) {
	for start < end && unicode.IsSpace(runes[start]) {
		start++
	}
	for end > start && unicode.IsSpace(runes[end-1]) {
		end--
	}
	if start == end {
		return models.Segment{}, false
	}

	text := string(runes[start:end])
	return models.Segment{
		Index:  index,
		Text:   text,
		Length: end - start,
		Start:  start,
		End:    end,
	}, true
}

// Join concatenates translated pieces with sep and trims the result
func Join(pieces []string, sep string) string {
	return strings.TrimSpace(strings.Join(pieces, sep))
}
