package engine

import "strings"

// ParseNumbers normalizes free-text, comma-separated phone number entry into
// an ordered batch. Each comma-delimited segment is trimmed of surrounding
// whitespace and segments that are empty after trimming are dropped, so
// leading, trailing, and repeated commas contribute nothing. Ordering and
// duplicates are preserved; no validation of number format is attempted here
// (the engine owns dialability).
//
// The result is never nil-padded with empty strings; a blank or
// whitespace-only input yields an empty batch.
func ParseNumbers(raw string) []string {
	segments := strings.Split(raw, ",")
	numbers := make([]string, 0, len(segments))
	for _, seg := range segments {
		if n := strings.TrimSpace(seg); n != "" {
			numbers = append(numbers, n)
		}
	}
	return numbers
}
