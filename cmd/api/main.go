package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dvloznov/wealthwise/internal/ai"
	"github.com/dvloznov/wealthwise/internal/analytics"
	"github.com/dvloznov/wealthwise/internal/api/handlers"
	"github.com/dvloznov/wealthwise/internal/api/middleware"
	"github.com/dvloznov/wealthwise/internal/config"
	"github.com/dvloznov/wealthwise/internal/jobs"
	"github.com/dvloznov/wealthwise/internal/jobs/inmemory"
	"github.com/dvloznov/wealthwise/internal/logger"
	"github.com/dvloznov/wealthwise/internal/pipeline"
	"github.com/dvloznov/wealthwise/internal/service"
	"github.com/dvloznov/wealthwise/internal/store"
	fsstore "github.com/dvloznov/wealthwise/internal/store/firestore"
	"github.com/dvloznov/wealthwise/internal/store/memory"
	"github.com/dvloznov/wealthwise/internal/voice"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments configure the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New()

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx := context.Background()

	// Storage backend
	var ledger store.Ledger
	switch cfg.StoreBackend {
	case "firestore":
		var err error
		ledger, err = fsstore.New(ctx, cfg.ProjectID, cfg.FirestoreDatabase)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create Firestore ledger")
		}
	default:
		log.Warn().Msg("Using in-memory storage - data is lost on restart")
		ledger = memory.New()
	}
	defer ledger.Close()

	// Hosted model
	gemini, err := ai.NewGemini(ctx, cfg.ModelName)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Gemini client")
	}

	// Optional capabilities
	deps := service.Deps{
		Ledger:      ledger,
		Pipeline:    pipeline.NewManager(gemini, gemini, log),
		Risk:        gemini,
		Planner:     gemini,
		Assistant:   gemini,
		Transcriber: gemini,
		Log:         log,
	}

	if cfg.VoiceBucket != "" {
		uploader, err := voice.NewUploader(ctx, cfg.VoiceBucket)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create voice uploader")
		}
		defer uploader.Close()
		deps.Recorder = uploader
	} else {
		log.Warn().Msg("No voice bucket configured - recordings will not be archived")
	}

	if cfg.AnalyticsEnabled() {
		exporter, err := analytics.NewExporter(ctx, cfg.ProjectID, cfg.BigQueryDataset, cfg.BigQueryTable, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create analytics exporter")
		}
		defer exporter.Close()
		deps.Exporter = exporter
	}

	svc := service.New(deps)

	// Job infrastructure
	jobStore := inmemory.NewStore()
	jobQueue := inmemory.NewQueue(cfg.QueueBufferSize, cfg.WorkerCount, jobStore)

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	jobHandler := func(ctx context.Context, job jobs.Job) error {
		processJob, ok := job.(*jobs.ProcessTransactionJob)
		if !ok {
			return fmt.Errorf("unexpected job type: %T", job)
		}

		log.Info().
			Str("job_id", processJob.JobID).
			Str("user_id", processJob.UserID).
			Msg("Processing transaction job")

		ctx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
		defer cancel()

		if _, err := svc.ProcessText(ctx, processJob.UserID, processJob.RawInput); err != nil {
			log.Error().
				Err(err).
				Str("job_id", processJob.JobID).
				Msg("Transaction job failed")
			return err
		}

		log.Info().Str("job_id", processJob.JobID).Msg("Transaction job completed")
		return nil
	}

	go func() {
		log.Info().Int("workers", cfg.WorkerCount).Msg("Starting job worker")
		if err := jobQueue.Start(workerCtx, jobHandler); err != nil {
			log.Error().Err(err).Msg("Job worker stopped with error")
		}
	}()

	// Initialize handlers
	transactionsHandler := handlers.NewTransactionsHandler(svc, jobQueue, log)
	budgetsHandler := handlers.NewBudgetsHandler(svc, log)
	insightsHandler := handlers.NewInsightsHandler(svc, log)
	alertsHandler := handlers.NewAlertsHandler(svc, log)
	categoriesHandler := handlers.NewCategoriesHandler()
	chatHandler := handlers.NewChatHandler(svc, log)
	voiceHandler := handlers.NewVoiceHandler(svc, log)
	savingsPlansHandler := handlers.NewSavingsPlansHandler(svc, log)
	paymentsHandler := handlers.NewPaymentsHandler(svc, log)
	jobsHandler := handlers.NewJobsHandler(jobStore, log)

	// Create router
	mux := http.NewServeMux()

	mux.HandleFunc("/api/transactions/process", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			transactionsHandler.ProcessTransaction(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/transactions/enqueue", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			transactionsHandler.EnqueueTransaction(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/transactions", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			transactionsHandler.ListTransactions(w, r)
		case http.MethodPost:
			transactionsHandler.CreateTransaction(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/transactions/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
		if id == "" || strings.Contains(id, "/") {
			middleware.WriteError(w, http.StatusBadRequest, "Transaction ID is required")
			return
		}
		switch r.Method {
		case http.MethodPut:
			transactionsHandler.UpdateTransaction(w, r, id)
		case http.MethodDelete:
			transactionsHandler.DeleteTransaction(w, r, id)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/budgets", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			budgetsHandler.GetBudgets(w, r)
		case http.MethodPut:
			budgetsHandler.ReplaceBudgets(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/insights", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			insightsHandler.ListInsights(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/alerts", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			alertsHandler.ListAlerts(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/categories", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			categoriesHandler.ListCategories(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			chatHandler.Chat(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/voice", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			voiceHandler.ProcessVoice(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/savings-plans", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			savingsPlansHandler.SuggestPlans(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/payments", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			paymentsHandler.RecordPayment(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/jobs", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			jobsHandler.ListJobs(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/jobs/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			jobID := strings.TrimPrefix(r.URL.Path, "/api/jobs/")
			if jobID == "" {
				middleware.WriteError(w, http.StatusBadRequest, "Job ID is required")
				return
			}
			jobsHandler.GetJob(w, r, jobID)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Health check endpoint sits outside the auth chain.
	authed := middleware.Auth(mux)
	root := http.NewServeMux()
	root.Handle("/api/", authed)
	root.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Apply middleware
	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(root),
			),
		),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * cfg.RequestTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.StoreBackend).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Cancel worker context
	cancelWorker()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	// Stop job queue and wait for in-flight jobs
	if err := jobQueue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping job queue")
	}

	log.Info().Msg("Server exited")
}
