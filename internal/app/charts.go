package app

import (
	"sort"
	"strings"

	"sentiment_intel/internal/domain"
)

const (
	topThemesChart   = 8
	topConcernsChart = 6
	topSourcesChart  = 5
)

// BuildCharts derives the four chart series from a summary and its review
// set. Total like the rest of the core: degenerate input yields renderable
// output, never an error.
func BuildCharts(sum domain.Summary, reviews []domain.Review) domain.ChartData {
	return domain.ChartData{
		SentimentSplit: sentimentSplit(sum),
		Themes:         countSeries(sum.TopThemes, topThemesChart),
		Concerns:       countSeries(sum.TopConcerns, topConcernsChart),
		BySource:       sourceSeries(sum, reviews),
	}
}

// sentimentSplit renders the pie series. An all-zero summary substitutes
// equal thirds so the pie stays renderable; display-only, the summary itself
// is untouched.
func sentimentSplit(sum domain.Summary) []domain.ChartPoint {
	pos, neu, neg := sum.PositiveCount, sum.NeutralCount, sum.NegativeCount
	if pos+neu+neg == 0 {
		pos, neu, neg = 1, 1, 1
	}
	return []domain.ChartPoint{
		{Label: "Positive", Value: float64(pos)},
		{Label: "Neutral", Value: float64(neu)},
		{Label: "Negative", Value: float64(neg)},
	}
}

// countSeries turns a label->count map into the top-n bar series, labels
// title-cased and truncated.
func countSeries(counts map[string]int, n int) []domain.ChartPoint {
	type entry struct {
		label string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for label, c := range counts {
		entries = append(entries, entry{label, c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].label < entries[j].label
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	out := make([]domain.ChartPoint, 0, len(entries))
	for _, e := range entries {
		out = append(out, domain.ChartPoint{Label: truncateLabel(e.label), Value: float64(e.count)})
	}
	return out
}

// sourceSeries prefers the summary's breakdown; when that is empty but raw
// reviews exist, it reconstructs one from the records so the chart is never
// spuriously empty.
func sourceSeries(sum domain.Summary, reviews []domain.Review) []domain.ChartPoint {
	if len(sum.SourceBreakdown) > 0 {
		type entry struct {
			name  string
			count int
		}
		entries := make([]entry, 0, len(sum.SourceBreakdown))
		for name, stats := range sum.SourceBreakdown {
			entries = append(entries, entry{name, stats.Count()})
		}
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].count != entries[j].count {
				return entries[i].count > entries[j].count
			}
			return entries[i].name < entries[j].name
		})
		if len(entries) > topSourcesChart {
			entries = entries[:topSourcesChart]
		}
		out := make([]domain.ChartPoint, 0, len(entries))
		for _, e := range entries {
			out = append(out, domain.ChartPoint{Label: CanonicalSource(e.name), Value: float64(e.count)})
		}
		return out
	}

	return deriveSourceBreakdown(reviews)
}

// deriveSourceBreakdown tallies one source per record: the feed-type field
// when set, else the source field, else "Other", all canonicalized.
func deriveSourceBreakdown(reviews []domain.Review) []domain.ChartPoint {
	counts := map[string]int{}
	firstSeen := map[string]int{}
	for _, r := range reviews {
		src := r.FeedType
		if src == "" {
			src = r.Source
		}
		if src == "" {
			src = "Other"
		}
		name := CanonicalSource(src)
		if _, seen := counts[name]; !seen {
			firstSeen[name] = len(firstSeen)
		}
		counts[name]++
	}

	out := make([]domain.ChartPoint, 0, len(counts))
	for name, c := range counts {
		out = append(out, domain.ChartPoint{Label: name, Value: float64(c)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return firstSeen[out[i].Label] < firstSeen[out[j].Label]
	})
	if len(out) > topSourcesChart {
		out = out[:topSourcesChart]
	}
	return out
}

// CanonicalSource maps a free-form source name to the fixed display
// vocabulary. The news-ish rule is applied last and wins over the amazon one,
// matching the producer's own labeling.
func CanonicalSource(src string) string {
	low := strings.ToLower(src)
	name := titleCase(strings.ReplaceAll(src, "_", " "))
	if strings.Contains(low, "amazon") {
		name = "Amazon Reviews"
	}
	if strings.Contains(low, "google") || strings.Contains(low, "rss") || strings.Contains(low, "news") {
		name = "Google News"
	}
	return name
}
