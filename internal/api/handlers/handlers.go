package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/dvloznov/wealthwise/internal/api/middleware"
	"github.com/dvloznov/wealthwise/internal/domain"
	"github.com/dvloznov/wealthwise/internal/jobs"
	"github.com/dvloznov/wealthwise/internal/service"
	"github.com/dvloznov/wealthwise/internal/store"
	"github.com/rs/zerolog"
)

// maxVoiceUploadBytes caps voice recording uploads.
const maxVoiceUploadBytes = 10 << 20

// writeServiceError maps service-layer failures onto HTTP statuses. Remote
// model internals are never surfaced; only validation messages are echoed.
func writeServiceError(w http.ResponseWriter, log zerolog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		middleware.WriteError(w, http.StatusNotFound, "Not found")
	default:
		log.Error().Err(err).Msg(fallback)
		middleware.WriteError(w, http.StatusInternalServerError, fallback)
	}
}

// TransactionsHandler handles transaction-related endpoints.
type TransactionsHandler struct {
	svc       *service.Service
	publisher jobs.Publisher
	log       zerolog.Logger
}

// NewTransactionsHandler creates a new transactions handler.
func NewTransactionsHandler(svc *service.Service, publisher jobs.Publisher, log zerolog.Logger) *TransactionsHandler {
	return &TransactionsHandler{
		svc:       svc,
		publisher: publisher,
		log:       log,
	}
}

// ProcessTransaction handles POST /api/transactions/process
func (h *TransactionsHandler) ProcessTransaction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.svc.ProcessText(r.Context(), middleware.UserID(r.Context()), req.Text)
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to process transaction")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, result)
}

// EnqueueTransaction handles POST /api/transactions/enqueue
func (h *TransactionsHandler) EnqueueTransaction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Text == "" {
		middleware.WriteError(w, http.StatusBadRequest, "text is required")
		return
	}

	job := &jobs.ProcessTransactionJob{
		UserID:   middleware.UserID(r.Context()),
		RawInput: req.Text,
	}
	if err := h.publisher.PublishProcessTransaction(r.Context(), job); err != nil {
		h.log.Error().Err(err).Msg("Failed to enqueue transaction job")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to enqueue transaction")
		return
	}

	h.log.Info().Str("job_id", job.JobID).Msg("Transaction job enqueued")

	middleware.WriteJSON(w, http.StatusAccepted, map[string]string{
		"job_id": job.JobID,
		"status": string(job.Status),
	})
}

// CreateTransaction handles POST /api/transactions
func (h *TransactionsHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Description string    `json:"description"`
		Amount      float64   `json:"amount"`
		Category    string    `json:"category"`
		Date        time.Time `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tx, err := h.svc.AddTransaction(r.Context(), middleware.UserID(r.Context()), &domain.Transaction{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        req.Date,
	})
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to create transaction")
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, tx)
}

// ListTransactions handles GET /api/transactions
func (h *TransactionsHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.svc.ListTransactions(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to list transactions")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": txs,
		"count":        len(txs),
	})
}

// UpdateTransaction handles PUT /api/transactions/{id}
func (h *TransactionsHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request, id string) {
	var req struct {
		Description string    `json:"description"`
		Amount      float64   `json:"amount"`
		Category    string    `json:"category"`
		Date        time.Time `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tx, err := h.svc.UpdateTransaction(r.Context(), middleware.UserID(r.Context()), id, &domain.Transaction{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        req.Date,
	})
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to update transaction")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, tx)
}

// DeleteTransaction handles DELETE /api/transactions/{id}
func (h *TransactionsHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.svc.DeleteTransaction(r.Context(), middleware.UserID(r.Context()), id); err != nil {
		writeServiceError(w, h.log, err, "Failed to delete transaction")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// BudgetsHandler handles budget-related endpoints.
type BudgetsHandler struct {
	svc *service.Service
	log zerolog.Logger
}

// NewBudgetsHandler creates a new budgets handler.
func NewBudgetsHandler(svc *service.Service, log zerolog.Logger) *BudgetsHandler {
	return &BudgetsHandler{svc: svc, log: log}
}

// GetBudgets handles GET /api/budgets
func (h *BudgetsHandler) GetBudgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := h.svc.Budgets(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to load budgets")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"budgets": budgets,
		"count":   len(budgets),
	})
}

// ReplaceBudgets handles PUT /api/budgets
func (h *BudgetsHandler) ReplaceBudgets(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Budgets []domain.Budget `json:"budgets"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.svc.ReplaceBudgets(r.Context(), middleware.UserID(r.Context()), req.Budgets); err != nil {
		writeServiceError(w, h.log, err, "Failed to replace budgets")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"budgets": req.Budgets,
		"count":   len(req.Budgets),
	})
}

// InsightsHandler handles GET /api/insights.
type InsightsHandler struct {
	svc *service.Service
	log zerolog.Logger
}

// NewInsightsHandler creates a new insights handler.
func NewInsightsHandler(svc *service.Service, log zerolog.Logger) *InsightsHandler {
	return &InsightsHandler{svc: svc, log: log}
}

// ListInsights handles GET /api/insights
func (h *InsightsHandler) ListInsights(w http.ResponseWriter, r *http.Request) {
	insights, err := h.svc.ListInsights(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to list insights")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"insights": insights,
		"count":    len(insights),
	})
}

// AlertsHandler handles GET /api/alerts.
type AlertsHandler struct {
	svc *service.Service
	log zerolog.Logger
}

// NewAlertsHandler creates a new alerts handler.
func NewAlertsHandler(svc *service.Service, log zerolog.Logger) *AlertsHandler {
	return &AlertsHandler{svc: svc, log: log}
}

// ListAlerts handles GET /api/alerts
func (h *AlertsHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.svc.ListAlerts(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to list alerts")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"alerts": alerts,
		"count":  len(alerts),
	})
}

// CategoriesHandler serves the fixed category taxonomy.
type CategoriesHandler struct{}

// NewCategoriesHandler creates a new categories handler.
func NewCategoriesHandler() *CategoriesHandler {
	return &CategoriesHandler{}
}

// ListCategories handles GET /api/categories
func (h *CategoriesHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"expense": domain.ExpenseCategories,
		"income":  domain.IncomeCategories,
		"all":     domain.AllCategories,
	})
}

// ChatHandler handles POST /api/chat.
type ChatHandler struct {
	svc *service.Service
	log zerolog.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(svc *service.Service, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{svc: svc, log: log}
}

// Chat handles POST /api/chat
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	reply, err := h.svc.Chat(r.Context(), req.Message)
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to answer message")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

// VoiceHandler handles POST /api/voice.
type VoiceHandler struct {
	svc *service.Service
	log zerolog.Logger
}

// NewVoiceHandler creates a new voice handler.
func NewVoiceHandler(svc *service.Service, log zerolog.Logger) *VoiceHandler {
	return &VoiceHandler{svc: svc, log: log}
}

// ProcessVoice handles POST /api/voice. The request body is the raw audio;
// the Content-Type header carries its MIME type.
func (h *VoiceHandler) ProcessVoice(w http.ResponseWriter, r *http.Request) {
	mimeType := r.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "audio/webm"
	}

	audio, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxVoiceUploadBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			middleware.WriteError(w, http.StatusRequestEntityTooLarge, "Recording too large")
			return
		}
		middleware.WriteError(w, http.StatusBadRequest, "Failed to read recording")
		return
	}

	result, err := h.svc.ProcessVoice(r.Context(), middleware.UserID(r.Context()), audio, mimeType)
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to process recording")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, result)
}

// SavingsPlansHandler handles POST /api/savings-plans.
type SavingsPlansHandler struct {
	svc *service.Service
	log zerolog.Logger
}

// NewSavingsPlansHandler creates a new savings plans handler.
func NewSavingsPlansHandler(svc *service.Service, log zerolog.Logger) *SavingsPlansHandler {
	return &SavingsPlansHandler{svc: svc, log: log}
}

// SuggestPlans handles POST /api/savings-plans
func (h *SavingsPlansHandler) SuggestPlans(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Goals string `json:"goals"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	plans, err := h.svc.SavingsPlans(r.Context(), middleware.UserID(r.Context()), req.Goals)
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to generate savings plans")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"plans": plans,
		"count": len(plans),
	})
}

// PaymentsHandler handles POST /api/payments.
type PaymentsHandler struct {
	svc *service.Service
	log zerolog.Logger
}

// NewPaymentsHandler creates a new payments handler.
func NewPaymentsHandler(svc *service.Service, log zerolog.Logger) *PaymentsHandler {
	return &PaymentsHandler{svc: svc, log: log}
}

// RecordPayment handles POST /api/payments
func (h *PaymentsHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount   float64 `json:"amount"`
		Currency string  `json:"currency"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	payment, err := h.svc.RecordPayment(r.Context(), middleware.UserID(r.Context()), req.Amount, req.Currency)
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to record payment")
		return
	}

	status := http.StatusOK
	if payment.Status == domain.PaymentFlagged {
		status = http.StatusUnprocessableEntity
	}
	middleware.WriteJSON(w, status, payment)
}

// JobsHandler handles job-related endpoints.
type JobsHandler struct {
	store jobs.JobStore
	log   zerolog.Logger
}

// NewJobsHandler creates a new jobs handler.
func NewJobsHandler(store jobs.JobStore, log zerolog.Logger) *JobsHandler {
	return &JobsHandler{store: store, log: log}
}

// GetJob handles GET /api/jobs/{id}
func (h *JobsHandler) GetJob(w http.ResponseWriter, r *http.Request, jobID string) {
	job, err := h.store.GetJob(r.Context(), jobID)
	if err != nil || job.UserID != middleware.UserID(r.Context()) {
		middleware.WriteError(w, http.StatusNotFound, "Job not found")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, job)
}

// ListJobs handles GET /api/jobs
func (h *JobsHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := jobs.JobFilter{
		UserID: middleware.UserID(r.Context()),
		Status: jobs.JobStatus(query.Get("status")),
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			filter.Limit = limit
		}
	}
	if offsetStr := query.Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil {
			filter.Offset = offset
		}
	}

	jobsList, err := h.store.ListJobs(r.Context(), filter)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list jobs")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list jobs")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":  jobsList,
		"count": len(jobsList),
	})
}
