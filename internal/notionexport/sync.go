package notionexport

import (
	"context"
	"fmt"
	"time"

	"github.com/dvloznov/wealthwise/internal/logger"
	"github.com/dvloznov/wealthwise/internal/pipeline"
	"github.com/dvloznov/wealthwise/internal/store"
	"github.com/jomei/notionapi"
)

// SyncInsights pushes the user's stored insights to a Notion database.
// Pages that already carry an exported insight's id are skipped, so repeated
// runs are idempotent. Individual page failures are logged and skipped.
func SyncInsights(ctx context.Context, ledger store.Ledger, notionClient NotionService, databaseID, userID string, dryRun bool) error {
	log := logger.FromContext(ctx)

	insights, err := store.ListInsights(ctx, ledger, userID)
	if err != nil {
		return fmt.Errorf("failed to list insights: %w", err)
	}

	log.Info().
		Str("user_id", userID).
		Int("insight_count", len(insights)).
		Bool("dry_run", dryRun).
		Msg("Starting insight sync to Notion")

	notionPages, err := queryAllNotionPages(ctx, notionClient, databaseID)
	if err != nil {
		return fmt.Errorf("failed to query Notion pages: %w", err)
	}

	existing := make(map[string]bool)
	for _, page := range notionPages {
		if id := extractInsightID(page); id != "" {
			existing[id] = true
		}
	}

	var created, skipped int
	for _, in := range insights {
		if existing[in.ID] {
			skipped++
			continue
		}

		if dryRun {
			log.Info().Str("insight_id", in.ID).Msg("[DRY RUN] Would create Notion page")
			created++
			continue
		}

		props := InsightToNotionProperties(userID, in)
		page, err := notionClient.CreatePage(ctx, databaseID, props)
		if err != nil {
			log.Warn().Err(err).Str("insight_id", in.ID).Msg("Failed to create Notion page")
			continue
		}

		log.Info().
			Str("insight_id", in.ID).
			Str("page_id", string(page.ID)).
			Msg("Created Notion page")
		created++
	}

	log.Info().
		Int("created", created).
		Int("skipped", skipped).
		Int("total", len(insights)).
		Msg("Insight sync completed")

	return nil
}

// SyncMonthlySummary pushes the user's expense totals for the given month to
// a Notion database, one page per category.
func SyncMonthlySummary(ctx context.Context, ledger store.Ledger, notionClient NotionService, databaseID, userID string, month time.Time, dryRun bool) error {
	log := logger.FromContext(ctx)

	history, err := store.ListTransactions(ctx, ledger, userID)
	if err != nil {
		return fmt.Errorf("failed to list transactions: %w", err)
	}

	totals := pipeline.MonthlyExpensesByCategory(history, month)

	log.Info().
		Str("user_id", userID).
		Str("month", month.Format("2006-01")).
		Int("categories", len(totals)).
		Bool("dry_run", dryRun).
		Msg("Starting monthly summary sync to Notion")

	var created int
	for _, line := range totals {
		if dryRun {
			log.Info().
				Str("category", line.Category).
				Float64("total", line.Amount).
				Msg("[DRY RUN] Would create Notion page")
			created++
			continue
		}

		props := SummaryToNotionProperties(userID, month, line.Category, line.Amount)
		page, err := notionClient.CreatePage(ctx, databaseID, props)
		if err != nil {
			log.Warn().Err(err).Str("category", line.Category).Msg("Failed to create Notion page")
			continue
		}

		log.Info().
			Str("category", line.Category).
			Str("page_id", string(page.ID)).
			Msg("Created Notion page")
		created++
	}

	log.Info().Int("created", created).Msg("Monthly summary sync completed")
	return nil
}

// queryAllNotionPages queries all pages from a Notion database and returns them.
// Handles pagination automatically.
func queryAllNotionPages(ctx context.Context, notionClient NotionService, databaseID string) ([]notionapi.Page, error) {
	var allPages []notionapi.Page
	var cursor notionapi.Cursor

	for {
		req := &notionapi.DatabaseQueryRequest{
			PageSize: 100,
		}

		// Only set StartCursor if we have a cursor value
		if cursor != "" {
			req.StartCursor = cursor
		}

		resp, err := notionClient.QueryDatabase(ctx, databaseID, req)
		if err != nil {
			return nil, fmt.Errorf("queryAllNotionPages: %w", err)
		}

		allPages = append(allPages, resp.Results...)

		if !resp.HasMore {
			break
		}
		cursor = resp.NextCursor
	}

	return allPages, nil
}
