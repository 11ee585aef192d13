package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"sentiment_intel/internal/domain"
)

const (
	overviewThemeCount   = 5
	overviewConcernCount = 3
)

// AnalysisService owns the snapshot lifecycle: it triggers the workflow,
// normalizes the payload, installs the snapshot atomically, and serves all
// derived views from the current snapshot. A failed refresh leaves the prior
// snapshot in place. Concurrent triggers of the configured workflow collapse
// into one call via singleflight; per-request URL overrides run on their own.
type AnalysisService struct {
	wf       domain.WorkflowClient // may be nil when no URL is configured
	store    domain.SnapshotStore
	cache    domain.Cache // optional
	cacheTTL time.Duration
	sf       singleflight.Group
}

func NewAnalysisService(wf domain.WorkflowClient, store domain.SnapshotStore, cache domain.Cache, ttl time.Duration) *AnalysisService {
	return &AnalysisService{wf: wf, store: store, cache: cache, cacheTTL: ttl}
}

var ErrNoWorkflow = errors.New("webhook URL is required")

// Refresh runs the configured workflow once and installs a new snapshot.
func (s *AnalysisService) Refresh(ctx context.Context) (domain.Snapshot, error) {
	if s.wf == nil {
		return domain.Snapshot{}, ErrNoWorkflow
	}
	return s.RefreshWith(ctx, s.wf)
}

// RefreshWith runs an explicitly supplied client (per-request URL override).
// Overrides never share the singleflight slot: two concurrent refreshes with
// different URLs must each receive their own client's snapshot.
func (s *AnalysisService) RefreshWith(ctx context.Context, wf domain.WorkflowClient) (domain.Snapshot, error) {
	if wf != s.wf {
		return s.refresh(ctx, wf)
	}
	v, err, _ := s.sf.Do("refresh", func() (any, error) {
		return s.refresh(ctx, wf)
	})
	if err != nil {
		return domain.Snapshot{}, err
	}
	return v.(domain.Snapshot), nil
}

func (s *AnalysisService) refresh(ctx context.Context, wf domain.WorkflowClient) (domain.Snapshot, error) {
	raw, err := wf.Run(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	sum, reviews := Normalize(raw)
	snap := s.store.Replace(sum, reviews)
	log.Info().
		Uint64("version", snap.Version).
		Int("reviews", len(reviews)).
		Int("total", sum.TotalItems).
		Msg("analysis snapshot installed")
	return snap, nil
}

func (s *AnalysisService) snapshot() (domain.Snapshot, error) {
	snap, ok := s.store.Current()
	if !ok {
		return domain.Snapshot{}, domain.ErrNoData
	}
	return snap, nil
}

// Overview summarizes the current snapshot for the dashboard header.
func (s *AnalysisService) Overview(ctx context.Context) (domain.Overview, error) {
	snap, err := s.snapshot()
	if err != nil {
		return domain.Overview{}, err
	}
	sum := snap.Summary
	return domain.Overview{
		TotalItems:      sum.TotalItems,
		PositiveCount:   sum.PositiveCount,
		NeutralCount:    sum.NeutralCount,
		NegativeCount:   sum.NegativeCount,
		PositivePercent: sum.PositivePercent,
		NeutralPercent:  sum.NeutralPercent,
		NegativePercent: sum.NegativePercent,
		AvgScore:        sum.AvgScore,
		TopThemes:       topLabels(sum.TopThemes, overviewThemeCount),
		TopConcerns:     topLabels(sum.TopConcerns, overviewConcernCount),
		Reception:       reception(sum.PositivePercent),
		Version:         snap.Version,
		LoadedAt:        snap.LoadedAt,
	}, nil
}

// reception buckets positive share into the dashboard's verdict line.
func reception(positivePercent int) string {
	switch {
	case positivePercent >= 40:
		return "strong overall reception"
	case positivePercent >= 20:
		return "mixed reception"
	default:
		return "areas for improvement"
	}
}

func topLabels(counts map[string]int, n int) []string {
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
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, titleCase(strings.ReplaceAll(e.label, "_", " ")))
	}
	return out
}

// Reviews returns the filtered review set of the current snapshot.
func (s *AnalysisService) Reviews(ctx context.Context, f domain.ReviewFilter) ([]domain.Review, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return FilterReviews(snap.Reviews, f.Sentiment, f.Theme), nil
}

// Table projects the filtered review set into display rows.
func (s *AnalysisService) Table(ctx context.Context, f domain.ReviewFilter, limit int) ([]domain.TableRow, error) {
	reviews, err := s.Reviews(ctx, f)
	if err != nil {
		return nil, err
	}
	return BuildTable(reviews, limit), nil
}

// Keywords extracts ranked keywords from the filtered review set, falling
// back to theme/concern tallies when no free-text token survives. Results are
// cached per snapshot version and query.
func (s *AnalysisService) Keywords(ctx context.Context, q domain.KeywordQuery) ([]domain.KeywordEntry, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	topN := ClampTopN(q.TopN)
	key := fmt.Sprintf("keywords:%d:%d:%s:%s:%t",
		snap.Version, topN, strings.ToLower(q.Sentiment), strings.ToLower(q.Theme), q.Alphabetical)

	var out []domain.KeywordEntry
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &out); ok {
			return out, nil
		}
	}

	reviews := FilterReviews(snap.Reviews, q.Sentiment, q.Theme)
	out = ExtractKeywords(reviews, topN)
	if len(out) == 0 {
		out = KeywordFallback(reviews, topN)
	}
	if q.Alphabetical {
		SortKeywordsAlphabetical(out)
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	}
	return out, nil
}

// Charts derives the four aggregate series from the current snapshot, cached
// per snapshot version.
func (s *AnalysisService) Charts(ctx context.Context) (domain.ChartData, error) {
	snap, err := s.snapshot()
	if err != nil {
		return domain.ChartData{}, err
	}
	key := fmt.Sprintf("charts:%d", snap.Version)

	var out domain.ChartData
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &out); ok {
			return out, nil
		}
	}

	out = BuildCharts(snap.Summary, snap.Reviews)

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	}
	return out, nil
}
