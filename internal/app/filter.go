package app

import (
	"strings"

	"sentiment_intel/internal/domain"
)

// FilterReviews narrows reviews by canonical sentiment label and/or theme
// membership. Blank filters (after trimming) are no-ops; both compose by
// intersection. Theme matching is case-insensitive and exact per token, not
// substring.
func FilterReviews(reviews []domain.Review, sentiment, theme string) []domain.Review {
	if len(reviews) == 0 {
		return nil
	}
	sentiment = strings.ToLower(strings.TrimSpace(sentiment))
	theme = strings.ToLower(strings.TrimSpace(theme))
	if sentiment == "" && theme == "" {
		return reviews
	}

	out := make([]domain.Review, 0, len(reviews))
	for _, r := range reviews {
		if sentiment != "" && r.Sentiment != sentiment {
			continue
		}
		if theme != "" && !hasTheme(r, theme) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func hasTheme(r domain.Review, theme string) bool {
	for _, t := range r.Themes {
		if strings.ToLower(t) == theme {
			return true
		}
	}
	return false
}
