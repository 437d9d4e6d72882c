// Command sync-notion pushes a user's insights and monthly spending summary
// to Notion databases.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/dvloznov/wealthwise/internal/config"
	"github.com/dvloznov/wealthwise/internal/logger"
	"github.com/dvloznov/wealthwise/internal/notionexport"
	"github.com/dvloznov/wealthwise/internal/store"
	fsstore "github.com/dvloznov/wealthwise/internal/store/firestore"
	"github.com/dvloznov/wealthwise/internal/store/memory"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	var (
		userID    = flag.String("user", "", "user id to sync")
		summaryDB = flag.String("summary-db", "", "Notion database id for monthly summaries (optional)")
		monthStr  = flag.String("month", "", "month to summarize as YYYY-MM (default: current month)")
		dryRun    = flag.Bool("dry-run", false, "log what would be synced without writing to Notion")
		timeout   = flag.Duration("timeout", 5*time.Minute, "overall sync timeout")
	)
	flag.Parse()

	cfg := config.Load()
	log := logger.New()

	if *userID == "" {
		log.Fatal().Msg("Error: --user is required")
	}
	if !cfg.NotionEnabled() {
		log.Fatal().Msg("NOTION_TOKEN and NOTION_DATABASE_ID must be set")
	}

	month := time.Now()
	if *monthStr != "" {
		parsed, err := time.Parse("2006-01", *monthStr)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid --month, want YYYY-MM")
		}
		month = parsed
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	var ledger store.Ledger
	switch cfg.StoreBackend {
	case "firestore":
		var err error
		ledger, err = fsstore.New(ctx, cfg.ProjectID, cfg.FirestoreDatabase)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create Firestore ledger")
		}
	default:
		log.Warn().Msg("Using in-memory storage - there is nothing to sync from")
		ledger = memory.New()
	}
	defer ledger.Close()

	client := notionexport.NewNotionClient(cfg.NotionToken)

	if err := notionexport.SyncInsights(ctx, ledger, client, cfg.NotionDatabaseID, *userID, *dryRun); err != nil {
		log.Fatal().Err(err).Msg("Insight sync failed")
	}

	if *summaryDB != "" {
		if err := notionexport.SyncMonthlySummary(ctx, ledger, client, *summaryDB, *userID, month, *dryRun); err != nil {
			log.Fatal().Err(err).Msg("Monthly summary sync failed")
		}
	}

	log.Info().Msg("Notion sync completed")
}
