// Package analytics streams processed transactions to BigQuery for
// reporting. Export is always best-effort: the ledger is the system of
// record, the warehouse is a copy.
package analytics

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"github.com/dvloznov/wealthwise/internal/domain"
	"github.com/rs/zerolog"
)

// TransactionRow is the warehouse schema for one processed transaction.
type TransactionRow struct {
	TransactionID string `bigquery:"transaction_id"` // REQUIRED

	UserID string `bigquery:"user_id"` // REQUIRED

	TransactionDate civil.Date `bigquery:"transaction_date"` // REQUIRED

	Description string  `bigquery:"description"` // REQUIRED
	Category    string  `bigquery:"category"`    // REQUIRED
	Amount      float64 `bigquery:"amount"`      // REQUIRED
	Type        string  `bigquery:"type"`        // REQUIRED
	Recurring   bool    `bigquery:"recurring"`

	CreatedTS time.Time `bigquery:"created_ts"` // REQUIRED (default CURRENT_TIMESTAMP)
}

// Exporter streams rows into a BigQuery table.
type Exporter struct {
	client  *bigquery.Client
	dataset string
	table   string
	log     zerolog.Logger
}

// NewExporter creates a BigQuery-backed exporter.
func NewExporter(ctx context.Context, projectID, dataset, table string, log zerolog.Logger) (*Exporter, error) {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("analytics: bigquery client: %w", err)
	}
	return &Exporter{
		client:  client,
		dataset: dataset,
		table:   table,
		log:     log,
	}, nil
}

// Export streams one processed transaction to the warehouse.
func (e *Exporter) Export(ctx context.Context, userID string, tx *domain.Transaction, recurring bool) error {
	row := &TransactionRow{
		TransactionID:   tx.ID,
		UserID:          userID,
		TransactionDate: civil.DateOf(tx.Date),
		Description:     tx.Description,
		Category:        tx.Category,
		Amount:          tx.Amount,
		Type:            string(tx.Type),
		Recurring:       recurring,
		CreatedTS:       time.Now(),
	}

	inserter := e.client.Dataset(e.dataset).Table(e.table).Inserter()
	if err := inserter.Put(ctx, []*TransactionRow{row}); err != nil {
		return fmt.Errorf("analytics: inserting row: %w", err)
	}

	e.log.Debug().
		Str("user_id", userID).
		Str("transaction_id", tx.ID).
		Msg("Transaction exported to warehouse")
	return nil
}

// Close releases the underlying client.
func (e *Exporter) Close() error {
	return e.client.Close()
}
