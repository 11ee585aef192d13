package domain

// ChartPoint is one (label, value) pair in a chart series.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ChartData carries the four aggregate series the dashboard renders. It is
// derived from the current snapshot on demand and never stored.
type ChartData struct {
	SentimentSplit []ChartPoint `json:"sentimentSplit"`
	Themes         []ChartPoint `json:"themes"`
	Concerns       []ChartPoint `json:"concerns"`
	BySource       []ChartPoint `json:"bySource"`
}
