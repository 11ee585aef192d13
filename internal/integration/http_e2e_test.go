//go:build integration || !unit

package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	httpserver "sentiment_intel/internal/adapters/http_server"
	"sentiment_intel/internal/adapters/n8n"
	redisad "sentiment_intel/internal/adapters/redis"
	"sentiment_intel/internal/app"
	"sentiment_intel/internal/domain"
	"sentiment_intel/internal/storage/memory"
)

// The full stack wired the way cmd/api does it: real n8n client against a fake
// workflow endpoint, redis-backed view cache, in-memory snapshot store, chi
// router on top.
func newStack(t *testing.T, payload string) *httptest.Server {
	t.Helper()

	workflow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	t.Cleanup(workflow.Close)

	wf, err := n8n.New(workflow.URL+"/webhook/meta-sentiment", 5*time.Second, 100)
	if err != nil {
		t.Fatalf("n8n.New: %v", err)
	}

	mr := miniredis.RunT(t)
	cache := redisad.New(mr.Addr(), "", 0)

	svc := app.NewAnalysisService(wf, memory.New(), cache, 15*time.Minute)
	srv := httpserver.New()
	srv.MountHandlers(&httpserver.Handlers{Q: svc, WebhookTimeout: 5 * time.Second})

	api := httptest.NewServer(srv.Mux())
	t.Cleanup(api.Close)
	return api
}

const e2ePayload = `{
	"sentiment": {
		"totalItems": 4,
		"positiveCount": 2,
		"neutralCount": 1,
		"negativeCount": 1,
		"positivePercent": 50,
		"avgScore": 0.31,
		"topThemes": {"camera_quality": 3, "battery_life": 1},
		"topConcerns": {"privacy": 2},
		"sourceBreakdown": {
			"amazon_reviews": {"total": 3, "positive": 2, "neutral": 0, "negative": 1},
			"google_news": 1
		}
	},
	"responses": [
		{"headline": "Camera blew me away", "ai_sentiment": "Positive", "ai_sentiment_score": "0,9", "ai_themes": ["camera_quality"], "personalized_response": "Glad the camera lands for you!"},
		{"headline": "Solid but heavy", "ai_sentiment": "neutral", "ai_themes": ["comfort"]},
		{"headline": "Battery is a letdown", "ai_sentiment": "NEGATIVE", "ai_concerns": ["battery_life"]},
		{"headline": "Camera great, privacy iffy", "ai_sentiment": "positive", "ai_themes": ["camera_quality"], "ai_concerns": ["privacy"]}
	]
}`

func mustGet(t *testing.T, api *httptest.Server, path string, dst any) {
	t.Helper()
	resp, err := http.Get(api.URL + path)
	if err != nil {
		t.Fatalf("get %s: %v", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("%s: status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
}

func TestFullPipeline(t *testing.T) {
	api := newStack(t, e2ePayload)

	resp, err := http.Post(api.URL+"/v1/analysis/refresh", "application/json", strings.NewReader(""))
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("refresh: status %d", resp.StatusCode)
	}

	var ov domain.Overview
	mustGet(t, api, "/v1/analysis/overview", &ov)
	if ov.TotalItems != 4 || ov.PositivePercent != 50 || ov.Reception != "strong overall reception" {
		t.Fatalf("unexpected overview: %+v", ov)
	}
	if ov.AvgScore != 0.31 {
		t.Fatalf("avg score lost: %v", ov.AvgScore)
	}

	var charts domain.ChartData
	mustGet(t, api, "/v1/charts", &charts)
	src := map[string]float64{}
	for _, p := range charts.BySource {
		src[p.Label] = p.Value
	}
	// structured entry resolves via total, bare number via scalar
	if src["Amazon Reviews"] != 3 || src["Google News"] != 1 {
		t.Fatalf("unexpected sources: %v", charts.BySource)
	}
	if charts.Themes[0].Label != "Camera Quality" || charts.Themes[0].Value != 3 {
		t.Fatalf("unexpected themes: %v", charts.Themes)
	}

	// charts are cached per version; a second read must match
	var charts2 domain.ChartData
	mustGet(t, api, "/v1/charts", &charts2)
	if len(charts2.BySource) != len(charts.BySource) {
		t.Fatalf("cached charts differ: %v vs %v", charts2.BySource, charts.BySource)
	}

	var reviews struct {
		Items []domain.Review `json:"items"`
		Count int             `json:"count"`
	}
	mustGet(t, api, "/v1/reviews?sentiment=positive&theme=camera_quality", &reviews)
	if reviews.Count != 2 {
		t.Fatalf("unexpected filter result: %+v", reviews)
	}
	if reviews.Items[0].Score == nil || *reviews.Items[0].Score != 0.9 {
		t.Fatalf("comma decimal not coerced: %+v", reviews.Items[0].Score)
	}

	var kws struct {
		Keywords []domain.KeywordEntry `json:"keywords"`
	}
	mustGet(t, api, "/v1/keywords?top=10&sentiment=negative", &kws)
	terms := map[string]int{}
	for _, k := range kws.Keywords {
		terms[k.Term] = k.Count
	}
	if terms["battery"] != 1 || terms["letdown"] != 1 {
		t.Fatalf("unexpected keywords: %v", kws.Keywords)
	}

	var rows struct {
		Rows []domain.TableRow `json:"rows"`
	}
	mustGet(t, api, "/v1/reviews/table?limit=10", &rows)
	if len(rows.Rows) != 4 || rows.Rows[0].Response != "Glad the camera lands for you!" {
		t.Fatalf("unexpected table: %+v", rows.Rows)
	}
}

func TestSecondRefreshReplacesSnapshot(t *testing.T) {
	api := newStack(t, `{"sentiment": {"positiveCount": 1}, "responses": [{"headline": "One"}]}`)

	for i := 0; i < 2; i++ {
		resp, err := http.Post(api.URL+"/v1/analysis/refresh", "application/json", strings.NewReader(""))
		if err != nil {
			t.Fatalf("refresh: %v", err)
		}
		resp.Body.Close()
	}

	var ov domain.Overview
	mustGet(t, api, "/v1/analysis/overview", &ov)
	if ov.Version != 2 {
		t.Fatalf("expected version 2, got %d", ov.Version)
	}
}
