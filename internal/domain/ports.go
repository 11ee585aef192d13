package domain

import (
	"context"
	"errors"
)

// ErrNoData is returned by read paths before the first successful refresh.
var ErrNoData = errors.New("no analysis loaded")

// WorkflowClient triggers the external workflow and returns its decoded JSON
// body. The payload is untrusted and may be any JSON shape; the normalizer
// owns making sense of it.
type WorkflowClient interface {
	Run(ctx context.Context) (any, error)
}

// SnapshotStore owns the current analysis snapshot. Replace installs a fully
// constructed snapshot atomically; readers never observe a partial one.
type SnapshotStore interface {
	Current() (Snapshot, bool)
	Replace(sum Summary, reviews []Review) Snapshot
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// ReviewFilter narrows the review set. Blank fields are no-ops; both filters
// compose by intersection.
type ReviewFilter struct {
	Sentiment string
	Theme     string
}

// KeywordQuery shapes a keyword extraction request.
type KeywordQuery struct {
	ReviewFilter
	TopN         int
	Alphabetical bool
}
