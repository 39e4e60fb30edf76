package sync

import (
	"time"
)

// Status is the outcome of the last synchronization attempt for an entity.
type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusSuccess, StatusFailed:
		return true
	}
	return false
}

// Correlation is the persisted extension-field set carried by every
// synchronized entity. OdooID is the counterpart system's identifier; the
// local primary key is never stored on the Odoo side and vice versa.
type Correlation struct {
	// OdooID is the identifier of the counterpart record in Odoo.
	// Nil means the entity has never been correlated.
	OdooID *int64
	// SyncError holds the error message of the last failed push, empty on success.
	SyncError string
	// UpdateTime is when the correlation was last written.
	UpdateTime *time.Time
}

// Correlated reports whether the entity is linked to an Odoo record.
func (c Correlation) Correlated() bool {
	return c.OdooID != nil
}

// Link records a successful correlation with the given Odoo identifier.
func (c *Correlation) Link(odooID int64) {
	now := time.Now()
	c.OdooID = &odooID
	c.SyncError = ""
	c.UpdateTime = &now
}

// Fail records a failed sync attempt without touching an existing link.
func (c *Correlation) Fail(message string) {
	now := time.Now()
	c.SyncError = message
	c.UpdateTime = &now
}

// IDReport is one entry of the correlation report returned to the Odoo
// caller after an inbound upsert, so it can persist the pairing on its side.
type IDReport struct {
	OdooID     int64  `json:"odooId"`
	ShopwareID string `json:"shopwareId"`
}
