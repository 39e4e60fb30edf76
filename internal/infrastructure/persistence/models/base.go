package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/erp/odoo-connector/internal/domain/sync"
)

// OdooCorrelation is embedded by every synchronized model.
type OdooCorrelation struct {
	OdooID         *int64     `gorm:"column:odoo_id;index"`
	OdooError      string     `gorm:"column:odoo_error;type:text"`
	OdooUpdateTime *time.Time `gorm:"column:odoo_update_time"`
}

// ToDomain converts the correlation columns to the domain value.
func (c OdooCorrelation) ToDomain() sync.Correlation {
	return sync.Correlation{
		OdooID:     c.OdooID,
		SyncError:  c.OdooError,
		UpdateTime: c.OdooUpdateTime,
	}
}

// FromDomain populates the correlation columns from the domain value.
func (c *OdooCorrelation) FromDomain(corr sync.Correlation) {
	c.OdooID = corr.OdooID
	c.OdooError = corr.SyncError
	c.OdooUpdateTime = corr.UpdateTime
}

// uuidsToJSON serializes a UUID list into a JSONB column value.
func uuidsToJSON(ids []uuid.UUID) string {
	if len(ids) == 0 {
		return "[]"
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// uuidsFromJSON parses a JSONB column value back into a UUID list.
func uuidsFromJSON(raw string) []uuid.UUID {
	if raw == "" {
		return nil
	}
	var ids []uuid.UUID
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil
	}
	if len(ids) == 0 {
		return nil
	}
	return ids
}
