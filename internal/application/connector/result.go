package connector

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/erp/odoo-connector/internal/domain/sync"
)

// EventPublisher lets the mappers announce entity writes without knowing
// the bus implementation.
type EventPublisher interface {
	Publish(ctx context.Context, events ...sync.ChangeEvent) error
}

// ItemError records the failure of one item within a batch. The remaining
// items of the batch are still processed.
type ItemError struct {
	OdooID int64  `json:"odooId"`
	Reason string `json:"reason"`
}

// BatchResult accumulates the per-item outcome of an inbound batch: ID
// reports for the items that were written and errors for those that were
// not. A batch with errors is a partial success, never a rollback.
type BatchResult struct {
	Reports []sync.IDReport `json:"idReports"`
	Errors  []ItemError     `json:"errors,omitempty"`
}

// Report records a successful upsert pairing.
func (r *BatchResult) Report(odooID int64, localID uuid.UUID) {
	r.Reports = append(r.Reports, sync.IDReport{
		OdooID:     odooID,
		ShopwareID: localID.String(),
	})
}

// Fail records a per-item failure.
func (r *BatchResult) Fail(odooID int64, err error) {
	r.Errors = append(r.Errors, ItemError{OdooID: odooID, Reason: err.Error()})
}

// OK reports whether every item of the batch succeeded.
func (r *BatchResult) OK() bool { return len(r.Errors) == 0 }

// Err summarizes the batch failures, or nil when all items succeeded.
func (r *BatchResult) Err() error {
	if r.OK() {
		return nil
	}
	return fmt.Errorf("%d of %d items failed", len(r.Errors), len(r.Errors)+len(r.Reports))
}

// localIDs extracts the local entity IDs from a report list, skipping
// entries whose Shopware ID is not a UUID.
func localIDs(reports []sync.IDReport) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(reports))
	for _, rep := range reports {
		if id, err := uuid.Parse(rep.ShopwareID); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}
