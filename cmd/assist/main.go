// Command assist is an interactive terminal client for the WealthWise
// assistant. Lines starting with "log " are processed as transactions
// through the full pipeline; everything else goes to the chat model.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/dvloznov/wealthwise/internal/ai"
	"github.com/dvloznov/wealthwise/internal/config"
	"github.com/dvloznov/wealthwise/internal/logger"
	"github.com/dvloznov/wealthwise/internal/pipeline"
	"github.com/dvloznov/wealthwise/internal/service"
	"github.com/dvloznov/wealthwise/internal/store"
	fsstore "github.com/dvloznov/wealthwise/internal/store/firestore"
	"github.com/dvloznov/wealthwise/internal/store/memory"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	userID := flag.String("user", "", "user id to act as")
	flag.Parse()

	cfg := config.Load()
	log := logger.New()

	if *userID == "" {
		log.Fatal().Msg("Error: --user is required")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx := context.Background()

	var ledger store.Ledger
	switch cfg.StoreBackend {
	case "firestore":
		var err error
		ledger, err = fsstore.New(ctx, cfg.ProjectID, cfg.FirestoreDatabase)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create Firestore ledger")
		}
	default:
		ledger = memory.New()
	}
	defer ledger.Close()

	gemini, err := ai.NewGemini(ctx, cfg.ModelName)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Gemini client")
	}

	svc := service.New(service.Deps{
		Ledger:    ledger,
		Pipeline:  pipeline.NewManager(gemini, gemini, log),
		Assistant: gemini,
		Log:       log,
	})

	fmt.Println("WealthWise assistant. Type 'log <what you spent>' to record a")
	fmt.Println("transaction, anything else to chat, or 'quit' to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		if text, ok := strings.CutPrefix(line, "log "); ok {
			runPipeline(ctx, svc, *userID, text, cfg)
			continue
		}

		reply, err := svc.Chat(ctx, line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "chat failed: %v\n", err)
			continue
		}
		fmt.Println(reply)
	}
}

func runPipeline(ctx context.Context, svc *service.Service, userID, text string, cfg *config.Config) {
	ctx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	defer cancel()

	result, err := svc.ProcessText(ctx, userID, text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "processing failed: %v\n", err)
		return
	}

	fmt.Printf("Recorded %s: $%.2f (%s)", result.Transaction.Description, result.Transaction.Amount, result.Category)
	if result.Recurring {
		fmt.Print(" [recurring]")
	}
	fmt.Println()
	for _, alert := range result.Alerts {
		fmt.Println("! " + alert)
	}
	for _, insight := range result.Insights {
		fmt.Println("- " + insight)
	}
}
