// Command analyze triggers the workflow once and prints the analysis to the
// terminal: overview, review table, extracted keywords.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/rs/zerolog/log"

	"sentiment_intel/internal/adapters/n8n"
	"sentiment_intel/internal/adapters/observability"
	"sentiment_intel/internal/app"
	"sentiment_intel/internal/domain"
	"sentiment_intel/internal/shared"
	"sentiment_intel/internal/storage/memory"
)

func main() {
	var (
		url       = flag.String("url", "", "webhook URL (defaults to N8N_WEBHOOK_URL / config.json)")
		sentiment = flag.String("sentiment", "", "filter by sentiment (positive|neutral|negative)")
		theme     = flag.String("theme", "", "filter by theme key (e.g. camera_quality)")
		limit     = flag.Int("limit", 50, "max reviews in the table")
		top       = flag.Int("top", 25, "number of keywords (clamped to 10..50)")
		alpha     = flag.Bool("alpha", false, "sort keywords alphabetically")
	)
	flag.Parse()

	shared.LoadEnv()
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	webhook := strings.TrimSpace(*url)
	if webhook == "" {
		webhook = cfg.WebhookURL
	}
	cl, err := n8n.New(webhook, cfg.WebhookTimeout, 1)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	svc := app.NewAnalysisService(cl, memory.New(), nil, 0)

	ctx := context.Background()
	snap, err := svc.Refresh(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log.Info().Int("reviews", len(snap.Reviews)).Msg("workflow data loaded")

	ov, err := svc.Overview(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	printOverview(ov)

	filter := domain.ReviewFilter{Sentiment: *sentiment, Theme: *theme}
	rows, err := svc.Table(ctx, filter, *limit)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	printTable(rows)

	kws, err := svc.Keywords(ctx, domain.KeywordQuery{ReviewFilter: filter, TopN: *top, Alphabetical: *alpha})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	printKeywords(kws)
}

func printOverview(ov domain.Overview) {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	fmt.Printf("%s\n", bold("Sentiment Overview"))
	fmt.Printf("  Total analyzed: %d\n", ov.TotalItems)
	fmt.Printf("  Positive: %s (%d%%)  Neutral: %s (%d%%)  Negative: %s (%d%%)\n",
		green(ov.PositiveCount), ov.PositivePercent,
		yellow(ov.NeutralCount), ov.NeutralPercent,
		red(ov.NegativeCount), ov.NegativePercent)
	fmt.Printf("  Avg. score: %.2f (%s)\n", ov.AvgScore, ov.Reception)
	if len(ov.TopThemes) > 0 {
		fmt.Printf("  Top themes: %s\n", strings.Join(ov.TopThemes, ", "))
	}
	if len(ov.TopConcerns) > 0 {
		fmt.Printf("  Top concerns: %s\n", strings.Join(ov.TopConcerns, ", "))
	}
	fmt.Println()
}

func printTable(rows []domain.TableRow) {
	if len(rows) == 0 {
		fmt.Println("No reviews match the selected filters.")
		return
	}
	t := tablewriter.NewTable(os.Stdout,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{Borders: tw.BorderNone}),
	)
	t.Header([]string{"#", "Review", "Sentiment", "Score", "Themes", "Response Preview"})
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{
			strconv.Itoa(r.Index), r.Headline, r.Sentiment, r.Score, r.Themes, r.Response,
		})
	}
	t.Bulk(data)
	t.Render()
	fmt.Println()
}

func printKeywords(entries []domain.KeywordEntry) {
	if len(entries) == 0 {
		fmt.Println("No keywords extracted.")
		return
	}
	bold := color.New(color.Bold).SprintFunc()
	fmt.Printf("%s\n", bold("Extracted Keywords"))
	for i, e := range entries {
		fmt.Printf("  %2d. %-24s %d\n", i+1, e.Term, e.Count)
	}
}
