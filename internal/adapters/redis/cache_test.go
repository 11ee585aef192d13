package redisad

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"sentiment_intel/internal/domain"
)

func TestCache_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	c := New(mr.Addr(), "", 0)
	ctx := context.Background()

	entries := []domain.KeywordEntry{
		{Term: "camera", Count: 4},
		{Term: "battery", Count: 2},
	}
	if err := c.Set(ctx, "keywords:1:10:::false", entries, 60); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got []domain.KeywordEntry
	ok, err := c.Get(ctx, "keywords:1:10:::false", &got)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if !reflect.DeepEqual(got, entries) {
		t.Fatalf("got %v, want %v", got, entries)
	}
}

func TestCache_Miss(t *testing.T) {
	mr := miniredis.RunT(t)
	c := New(mr.Addr(), "", 0)

	var got domain.ChartData
	ok, err := c.Get(context.Background(), "charts:99", &got)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("expected miss")
	}
}

func TestCache_Del(t *testing.T) {
	mr := miniredis.RunT(t)
	c := New(mr.Addr(), "", 0)
	ctx := context.Background()

	if err := c.Set(ctx, "charts:1", domain.ChartData{}, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.Del(ctx, "charts:1"); err != nil {
		t.Fatalf("del: %v", err)
	}
	var got domain.ChartData
	if ok, _ := c.Get(ctx, "charts:1", &got); ok {
		t.Fatal("expected key to be gone")
	}
}

func TestCache_TTLExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	c := New(mr.Addr(), "", 0)
	ctx := context.Background()

	if err := c.Set(ctx, "charts:2", domain.ChartData{}, 30); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(31 * time.Second)

	var got domain.ChartData
	if ok, _ := c.Get(ctx, "charts:2", &got); ok {
		t.Fatal("expected key to expire")
	}
}
