package app

import (
	"sort"
	"strings"

	"sentiment_intel/internal/domain"
)

// Stop words excluded from keyword extraction: pronouns, articles, common
// auxiliaries. Mirrors the vocabulary the workflow's authors curate.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"a", "an", "the", "and", "or", "but", "in", "on", "at", "to", "for", "of", "with",
		"by", "from", "as", "is", "was", "are", "were", "been", "be", "have", "has", "had",
		"do", "does", "did", "will", "would", "could", "should", "may", "might", "must",
		"can", "this", "that", "these", "those", "i", "you", "he", "she", "it", "we", "they",
		"my", "your", "his", "her", "its", "our", "their", "me", "him", "us", "them",
		"so", "if", "than", "when", "while", "where", "because", "just", "very", "also",
	} {
		stopwords[w] = struct{}{}
	}
}

const (
	MinKeywords = 10
	MaxKeywords = 50

	minTokenLen = 3
)

// ClampTopN bounds a requested keyword count to the supported range.
func ClampTopN(n int) int {
	if n < MinKeywords {
		return MinKeywords
	}
	if n > MaxKeywords {
		return MaxKeywords
	}
	return n
}

// reviewText assembles the free text of one review in fixed field priority
// order, joined with single spaces. Empty fields are skipped.
func reviewText(r domain.Review) string {
	parts := make([]string, 0, 5)
	for _, f := range []string{r.Summary, r.ContentClean, r.Headline, r.FullTitle, r.Response} {
		if strings.TrimSpace(f) != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, " ")
}

// ExtractKeywords tokenizes the reviews' text into a ranked frequency table.
// Tokens are contiguous ASCII-letter runs of length >= 3 (digits and any other
// character act as boundaries), lowercased, with stop words discarded. The
// result is the topN highest-count tokens, ties broken by first-seen order.
// topN must already be clamped by the caller.
func ExtractKeywords(reviews []domain.Review, topN int) []domain.KeywordEntry {
	counts := map[string]int{}
	firstSeen := map[string]int{}

	for _, r := range reviews {
		text := strings.ToLower(reviewText(r))
		for _, tok := range tokenize(text) {
			if _, stop := stopwords[tok]; stop {
				continue
			}
			if _, seen := counts[tok]; !seen {
				firstSeen[tok] = len(firstSeen)
			}
			counts[tok]++
		}
	}

	return topEntries(counts, firstSeen, topN)
}

// KeywordFallback tallies theme and concern labels (title-cased, underscores
// converted to spaces) across the same review set. Used when free-text
// extraction yields nothing; part of the observable contract, not an error
// path.
func KeywordFallback(reviews []domain.Review, topN int) []domain.KeywordEntry {
	counts := map[string]int{}
	firstSeen := map[string]int{}

	tally := func(label string) {
		if label == "" {
			return
		}
		key := titleCase(strings.ReplaceAll(label, "_", " "))
		if _, seen := counts[key]; !seen {
			firstSeen[key] = len(firstSeen)
		}
		counts[key]++
	}
	for _, r := range reviews {
		for _, t := range r.Themes {
			tally(t)
		}
		for _, c := range r.Concerns {
			tally(c)
		}
	}

	return topEntries(counts, firstSeen, topN)
}

// SortKeywordsAlphabetical re-sorts entries by term, case-insensitively.
func SortKeywordsAlphabetical(entries []domain.KeywordEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Term) < strings.ToLower(entries[j].Term)
	})
}

func tokenize(text string) []string {
	var tokens []string
	start := -1
	flush := func(end int) {
		if start >= 0 && end-start >= minTokenLen {
			tokens = append(tokens, text[start:end])
		}
		start = -1
	}
	for i, r := range text {
		if r >= 'a' && r <= 'z' {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	flush(len(text))
	return tokens
}

func topEntries(counts map[string]int, firstSeen map[string]int, topN int) []domain.KeywordEntry {
	entries := make([]domain.KeywordEntry, 0, len(counts))
	for term, n := range counts {
		entries = append(entries, domain.KeywordEntry{Term: term, Count: n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return firstSeen[entries[i].Term] < firstSeen[entries[j].Term]
	})
	if len(entries) > topN {
		entries = entries[:topN]
	}
	return entries
}
