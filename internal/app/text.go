package app

import (
	"strings"
	"unicode"
)

// titleCase uppercases the first letter of every alpha run and lowercases the
// rest, leaving non-letters in place ("battery_life" stays untouched here;
// callers replace underscores first).
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		switch {
		case !unicode.IsLetter(r):
			b.WriteRune(r)
			prevLetter = false
		case prevLetter:
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(unicode.ToUpper(r))
			prevLetter = true
		}
	}
	return b.String()
}

// truncate cuts s to at most max runes, appending "..." when it had to cut.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}

const maxChartLabel = 30

// truncateLabel title-cases a raw label (underscores become spaces) and trims
// it to the chart label limit, cutting at the nearest preceding word boundary
// and marking the cut with an ellipsis.
func truncateLabel(raw string) string {
	s := strings.TrimSpace(titleCase(strings.ReplaceAll(raw, "_", " ")))
	r := []rune(s)
	if len(r) <= maxChartLabel {
		return s
	}
	head := string(r[:maxChartLabel-1])
	if strings.ContainsRune(string(r[:maxChartLabel]), ' ') {
		if i := strings.LastIndexByte(head, ' '); i >= 0 {
			head = head[:i]
		}
	}
	return head + "…"
}
