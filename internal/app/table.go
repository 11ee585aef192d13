package app

import (
	"strconv"
	"strings"

	"sentiment_intel/internal/domain"
)

const (
	tableHeadlineMax = 60
	tableResponseMax = 80
	tableThemeCount  = 3

	// display placeholder for absent values
	noValue = "-"
)

// BuildTable flattens the first limit reviews into fixed-width display rows.
// Pure and idempotent; missing fields render as placeholders.
func BuildTable(reviews []domain.Review, limit int) []domain.TableRow {
	if limit < 0 {
		limit = 0
	}
	if limit > len(reviews) {
		limit = len(reviews)
	}

	rows := make([]domain.TableRow, 0, limit)
	for i, r := range reviews[:limit] {
		rows = append(rows, domain.TableRow{
			Index:     i + 1,
			Headline:  truncate(r.Headline, tableHeadlineMax),
			Sentiment: strings.ToUpper(r.Sentiment),
			Score:     formatScore(r.Score),
			Themes:    joinThemes(r.Themes),
			Response:  truncate(r.Response, tableResponseMax),
		})
	}
	return rows
}

func formatScore(score *float64) string {
	if score == nil {
		return noValue
	}
	return strconv.FormatFloat(*score, 'g', -1, 64)
}

func joinThemes(themes []string) string {
	if len(themes) > tableThemeCount {
		themes = themes[:tableThemeCount]
	}
	return strings.ReplaceAll(strings.Join(themes, ", "), "_", " ")
}
