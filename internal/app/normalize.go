package app

import (
	"strconv"
	"strings"

	"sentiment_intel/internal/domain"
)

// Normalize converts a decoded workflow payload of any shape into a fully
// defaulted (Summary, []Review) pair. It is total: malformed input yields an
// empty summary and empty review set, never an error.
//
// Accepted shapes:
//   - object with "sentiment" / "responses" keys
//   - non-empty array whose first element carries a nested "sentiment" key,
//     or is itself a single review object (detected by a "headline" or
//     "personalized_response" field) promoted to a one-element response list
//   - anything else -> empty
func Normalize(raw any) (domain.Summary, []domain.Review) {
	var sentiment map[string]any
	var rawResponses []any

	switch v := raw.(type) {
	case map[string]any:
		sentiment, _ = v["sentiment"].(map[string]any)
		rawResponses = coerceResponses(v["responses"])

	case []any:
		if len(v) == 0 {
			break
		}
		first, ok := v[0].(map[string]any)
		if !ok {
			break
		}
		if nested, present := first["sentiment"]; present {
			sentiment, _ = nested.(map[string]any)
		} else {
			// No nested summary: the element itself is the summary source.
			sentiment = first
		}
		if resp, present := first["responses"]; present {
			rawResponses = coerceResponses(resp)
		} else if _, ok := first["headline"]; ok {
			rawResponses = []any{v[0]}
		} else if _, ok := first["personalized_response"]; ok {
			rawResponses = []any{v[0]}
		}
	}

	reviews := make([]domain.Review, 0, len(rawResponses))
	for _, r := range rawResponses {
		m, ok := r.(map[string]any)
		if !ok {
			continue // non-record entries are dropped silently
		}
		reviews = append(reviews, mapReview(m))
	}

	return mapSummary(sentiment, len(rawResponses)), reviews
}

// coerceResponses accepts an array as-is, wraps a lone object into a
// one-element list, and turns everything else into an empty list.
func coerceResponses(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case map[string]any:
		return []any{t}
	default:
		return nil
	}
}

/********** summary mapping **********/

func mapSummary(m map[string]any, responseCount int) domain.Summary {
	return domain.Summary{
		TotalItems:      intAt(m, "totalItems", responseCount),
		PositiveCount:   intAt(m, "positiveCount", 0),
		NeutralCount:    intAt(m, "neutralCount", 0),
		NegativeCount:   intAt(m, "negativeCount", 0),
		PositivePercent: intAt(m, "positivePercent", 0),
		NeutralPercent:  intAt(m, "neutralPercent", 0),
		NegativePercent: intAt(m, "negativePercent", 0),
		AvgScore:        floatAt(m, "avgScore", 0),
		TopThemes:       countMapAt(m, "topThemes"),
		TopConcerns:     countMapAt(m, "topConcerns"),
		SourceBreakdown: sourceBreakdownAt(m, "sourceBreakdown"),
	}
}

func sourceBreakdownAt(m map[string]any, key string) map[string]domain.SourceStats {
	out := map[string]domain.SourceStats{}
	if m == nil {
		return out
	}
	raw, ok := m[key].(map[string]any)
	if !ok {
		return out
	}
	for name, v := range raw {
		out[name] = mapSourceStats(v)
	}
	return out
}

func mapSourceStats(v any) domain.SourceStats {
	switch t := v.(type) {
	case map[string]any:
		st := domain.SourceStats{
			Structured: true,
			Positive:   intAt(t, "positive", 0),
			Neutral:    intAt(t, "neutral", 0),
			Negative:   intAt(t, "negative", 0),
		}
		for _, k := range []string{"positive", "neutral", "negative"} {
			if _, ok := numAt(t, k); ok {
				st.HasCounts = true
				break
			}
		}
		if n, ok := numAt(t, "total"); ok {
			total := int(n)
			st.Total = &total
		}
		return st
	default:
		if f, ok := toFloat(v); ok {
			return domain.SourceStats{Scalar: &f}
		}
		return domain.SourceStats{}
	}
}

/********** review mapping **********/

func mapReview(m map[string]any) domain.Review {
	return domain.Review{
		Headline:     textAt(m, "headline"),
		Summary:      textAt(m, "summary"),
		ContentClean: textAt(m, "content_clean"),
		FullTitle:    textAt(m, "full_title"),
		Source:       strAt(m, "source"),
		FeedType:     strAt(m, "feed_type"),
		Sentiment:    CanonicalSentiment(strAt(m, "ai_sentiment")),
		Score:        floatPtrAt(m, "ai_sentiment_score"),
		Themes:       strSliceAt(m, "ai_themes"),
		Concerns:     strSliceAt(m, "ai_concerns"),
		Response:     textAt(m, "personalized_response"),
	}
}

// textAt reads a free-text field: a plain string as-is, a list of strings
// joined with single spaces (some workflow nodes emit chunked text).
func textAt(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	switch t := m[key].(type) {
	case string:
		return t
	case []any:
		parts := make([]string, 0, len(t))
		for _, it := range t {
			if s, ok := it.(string); ok && s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	}
	return ""
}

// CanonicalSentiment lowercases a raw label and collapses anything outside
// the known vocabulary to "n/a".
func CanonicalSentiment(raw string) string {
	switch s := strings.ToLower(strings.TrimSpace(raw)); s {
	case domain.SentimentPositive, domain.SentimentNeutral, domain.SentimentNegative:
		return s
	default:
		return domain.SentimentNA
	}
}

/********** tiny helpers (nil-map safe) **********/

func strAt(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

func intAt(m map[string]any, key string, def int) int {
	if n, ok := numAt(m, key); ok {
		return int(n)
	}
	return def
}

func floatAt(m map[string]any, key string, def float64) float64 {
	if n, ok := numAt(m, key); ok {
		return n
	}
	return def
}

// floatPtrAt returns a number at key, or nil when absent/unparseable.
// Accepts float64/int and numeric strings (some workflow nodes stringify).
func floatPtrAt(m map[string]any, key string) *float64 {
	if n, ok := numAt(m, key); ok {
		return &n
	}
	return nil
}

func numAt(m map[string]any, key string) (float64, bool) {
	if m == nil {
		return 0, false
	}
	return toFloat(m[key])
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(t, ",", "."))
		if s == "" {
			return 0, false
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// countMapAt extracts a label->count mapping, skipping non-numeric values.
func countMapAt(m map[string]any, key string) map[string]int {
	out := map[string]int{}
	if m == nil {
		return out
	}
	raw, ok := m[key].(map[string]any)
	if !ok {
		return out
	}
	for label, v := range raw {
		if f, ok := toFloat(v); ok {
			out[label] = int(f)
		}
	}
	return out
}

// strSliceAt accepts []any and keeps its string elements.
func strSliceAt(m map[string]any, key string) []string {
	if m == nil {
		return nil
	}
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, it := range raw {
		if s, ok := it.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
