package domain

import "time"

// Summary is the normalized aggregate block of a workflow payload. Counts and
// percents are taken from the producer as-is; nothing here is recomputed from
// the review set.
type Summary struct {
	TotalItems      int                    `json:"totalItems"`
	PositiveCount   int                    `json:"positiveCount"`
	NeutralCount    int                    `json:"neutralCount"`
	NegativeCount   int                    `json:"negativeCount"`
	PositivePercent int                    `json:"positivePercent"`
	NeutralPercent  int                    `json:"neutralPercent"`
	NegativePercent int                    `json:"negativePercent"`
	AvgScore        float64                `json:"avgScore"`
	TopThemes       map[string]int         `json:"topThemes"`
	TopConcerns     map[string]int         `json:"topConcerns"`
	SourceBreakdown map[string]SourceStats `json:"sourceBreakdown"`
}

// SourceStats is one per-source entry of the breakdown. The producer emits
// either a structured object or a bare number; both shapes survive
// normalization.
type SourceStats struct {
	Structured bool     `json:"structured"`
	Total      *int     `json:"total,omitempty"`
	HasCounts  bool     `json:"hasCounts,omitempty"` // per-sentiment fields were present in the payload
	Positive   int      `json:"positive"`
	Neutral    int      `json:"neutral"`
	Negative   int      `json:"negative"`
	Scalar     *float64 `json:"scalar,omitempty"`
}

// Count resolves the entry to one number: an explicit total first, then the
// per-sentiment sum whenever those fields were supplied (zero included), then
// the bare scalar, then 1 so a listed source is never invisible on the chart.
func (s SourceStats) Count() int {
	if s.Structured {
		if s.Total != nil {
			return *s.Total
		}
		if s.HasCounts {
			return s.Positive + s.Neutral + s.Negative
		}
	}
	if s.Scalar != nil {
		return int(*s.Scalar)
	}
	return 1
}

// Snapshot is one immutable analysis result. A refresh installs a new snapshot
// wholesale; readers keep seeing the prior one until then.
type Snapshot struct {
	Version  uint64    `json:"version"`
	LoadedAt time.Time `json:"loadedAt"`
	Summary  Summary   `json:"summary"`
	Reviews  []Review  `json:"reviews"`
}

// Overview is the dashboard header projection of a snapshot.
type Overview struct {
	TotalItems      int       `json:"totalItems"`
	PositiveCount   int       `json:"positiveCount"`
	NeutralCount    int       `json:"neutralCount"`
	NegativeCount   int       `json:"negativeCount"`
	PositivePercent int       `json:"positivePercent"`
	NeutralPercent  int       `json:"neutralPercent"`
	NegativePercent int       `json:"negativePercent"`
	AvgScore        float64   `json:"avgScore"`
	TopThemes       []string  `json:"topThemes"`
	TopConcerns     []string  `json:"topConcerns"`
	Reception       string    `json:"reception"`
	Version         uint64    `json:"version"`
	LoadedAt        time.Time `json:"loadedAt"`
}
