package domain

// Sentiment labels after canonicalization. Anything the workflow emits outside
// the known three collapses to SentimentNA.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
	SentimentNA       = "n/a"
)

// Review is one analyzed feedback item. Missing payload fields normalize to
// zero values here; display placeholders are applied at projection time.
type Review struct {
	Headline     string   `json:"headline"`
	Summary      string   `json:"summary"`
	ContentClean string   `json:"contentClean,omitempty"`
	FullTitle    string   `json:"fullTitle,omitempty"`
	Source       string   `json:"source"`
	FeedType     string   `json:"feedType,omitempty"`
	Sentiment    string   `json:"sentiment"` // canonical lowercase label
	Score        *float64 `json:"score"`     // nil when the workflow gave none
	Themes       []string `json:"themes"`
	Concerns     []string `json:"concerns"`
	Response     string   `json:"response"`
}

// KeywordEntry is one ranked keyword. Entries are ordered by descending count
// with first-seen order breaking ties, unless an alphabetical sort was asked.
type KeywordEntry struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// TableRow is one fixed-width display row for the review table.
type TableRow struct {
	Index     int    `json:"index"`
	Headline  string `json:"headline"`
	Sentiment string `json:"sentiment"`
	Score     string `json:"score"`
	Themes    string `json:"themes"`
	Response  string `json:"response"`
}
