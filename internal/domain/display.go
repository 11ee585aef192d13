package domain

// Static display configuration: chart colors and the fixed filter
// vocabularies the dashboard offers. Kept here so no adapter hard-codes them.

// ChartColors maps a series (or sentiment label) to its display color.
var ChartColors = map[string]string{
	SentimentPositive: "#22c55e",
	SentimentNeutral:  "#f59e0b",
	SentimentNegative: "#ef4444",
	"themes":          "#6366f1",
	"concerns":        "#ec4899",
	"keywords":        "#06b6d4",
}

// SourceColors is the palette cycled across source-breakdown bars.
var SourceColors = []string{"#3b82f6", "#8b5cf6", "#06b6d4", "#10b981"}

// FilterOption is one (display label, filter value) pair. An empty value
// means "no filter".
type FilterOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

var SentimentFilters = []FilterOption{
	{Label: "All sentiments", Value: ""},
	{Label: "Positive", Value: SentimentPositive},
	{Label: "Negative", Value: SentimentNegative},
	{Label: "Neutral", Value: SentimentNeutral},
}

var ThemeFilters = []FilterOption{
	{Label: "All themes", Value: ""},
	{Label: "Camera quality", Value: "camera_quality"},
	{Label: "Design", Value: "design"},
	{Label: "Battery life", Value: "battery_life"},
	{Label: "Comfort", Value: "comfort"},
	{Label: "Features", Value: "features"},
	{Label: "Connectivity", Value: "connectivity"},
	{Label: "Audio", Value: "audio"},
	{Label: "Privacy", Value: "privacy"},
	{Label: "Price", Value: "price"},
	{Label: "AI Assistant", Value: "ai_assistant"},
}
