package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erp/odoo-connector/internal/domain/trade"
)

// OrderModel is the persistence model for the Order aggregate. Line items,
// addresses and tracking codes are stored as JSONB; the three machine
// states and their Odoo shadow values are dedicated columns so pending-sync
// queries stay indexed.
type OrderModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	Number         string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	SalesChannelID uuid.UUID `gorm:"type:uuid;not null"`
	CurrencyID     uuid.UUID `gorm:"type:uuid"`

	CustomerID         uuid.UUID `gorm:"type:uuid"`
	CustomerRecordID   uuid.UUID `gorm:"type:uuid"`
	CustomerFirstName  string    `gorm:"type:varchar(255)"`
	CustomerLastName   string    `gorm:"type:varchar(255)"`
	CustomerEmail      string    `gorm:"type:varchar(255)"`
	CustomerOdooID     *int64    `gorm:"column:customer_odoo_id;index"`
	CustomerOdooError  string    `gorm:"type:text"`
	CustomerUpdateTime *time.Time
	CustomerSynced     bool `gorm:"not null;default:false;index"`

	BillingJSON   string `gorm:"type:jsonb;column:billing_address"`
	ShippingJSON  string `gorm:"type:jsonb;column:shipping_address"`
	LineItemsJSON string `gorm:"type:jsonb;column:line_items"`

	DeliveryID         uuid.UUID `gorm:"type:uuid"`
	ShippingMethodID   uuid.UUID `gorm:"type:uuid"`
	DeliveryState      string    `gorm:"type:varchar(32)"`
	DeliveryOdooStatus string    `gorm:"type:varchar(32)"`
	TrackingCodesJSON  string    `gorm:"type:jsonb;column:tracking_codes"`

	TransactionID         uuid.UUID `gorm:"type:uuid"`
	PaymentMethodID       uuid.UUID `gorm:"type:uuid"`
	TransactionState      string    `gorm:"type:varchar(32)"`
	TransactionOdooStatus string    `gorm:"type:varchar(32)"`

	State       string          `gorm:"type:varchar(32);not null"`
	OdooStatus  string          `gorm:"type:varchar(32)"`
	AmountNet   decimal.Decimal `gorm:"type:decimal(13,4);not null;default:0"`
	AmountGross decimal.Decimal `gorm:"type:decimal(13,4);not null;default:0"`
	OdooCorrelation
	Synced    bool      `gorm:"not null;default:false;index"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order aggregate.
func (m *OrderModel) ToDomain() *trade.Order {
	order := &trade.Order{
		ID:             m.ID,
		Number:         m.Number,
		SalesChannelID: m.SalesChannelID,
		CurrencyID:     m.CurrencyID,
		Customer: trade.OrderCustomer{
			ID:         m.CustomerRecordID,
			CustomerID: m.CustomerID,
			FirstName:  m.CustomerFirstName,
			LastName:   m.CustomerLastName,
			Email:      m.CustomerEmail,
			Synced:     m.CustomerSynced,
		},
		Delivery: trade.Delivery{
			ID:               m.DeliveryID,
			ShippingMethodID: m.ShippingMethodID,
			State:            m.DeliveryState,
			OdooStatus:       m.DeliveryOdooStatus,
		},
		Transaction: trade.Transaction{
			ID:              m.TransactionID,
			PaymentMethodID: m.PaymentMethodID,
			State:           m.TransactionState,
			OdooStatus:      m.TransactionOdooStatus,
		},
		State:       m.State,
		OdooStatus:  m.OdooStatus,
		AmountNet:   m.AmountNet,
		AmountGross: m.AmountGross,
		Correlation: m.OdooCorrelation.ToDomain(),
		Synced:      m.Synced,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	order.Customer.Correlation.OdooID = m.CustomerOdooID
	order.Customer.Correlation.SyncError = m.CustomerOdooError
	order.Customer.Correlation.UpdateTime = m.CustomerUpdateTime

	if m.BillingJSON != "" {
		_ = json.Unmarshal([]byte(m.BillingJSON), &order.Billing)
	}
	if m.ShippingJSON != "" {
		_ = json.Unmarshal([]byte(m.ShippingJSON), &order.Shipping)
	}
	if m.LineItemsJSON != "" {
		_ = json.Unmarshal([]byte(m.LineItemsJSON), &order.LineItems)
	}
	if m.TrackingCodesJSON != "" {
		_ = json.Unmarshal([]byte(m.TrackingCodesJSON), &order.Delivery.TrackingCodes)
	}
	return order
}

// FromDomain populates the persistence model from a domain Order aggregate.
func (m *OrderModel) FromDomain(o *trade.Order) {
	m.ID = o.ID
	m.Number = o.Number
	m.SalesChannelID = o.SalesChannelID
	m.CurrencyID = o.CurrencyID

	m.CustomerRecordID = o.Customer.ID
	m.CustomerID = o.Customer.CustomerID
	m.CustomerFirstName = o.Customer.FirstName
	m.CustomerLastName = o.Customer.LastName
	m.CustomerEmail = o.Customer.Email
	m.CustomerOdooID = o.Customer.Correlation.OdooID
	m.CustomerOdooError = o.Customer.Correlation.SyncError
	m.CustomerUpdateTime = o.Customer.Correlation.UpdateTime
	m.CustomerSynced = o.Customer.Synced

	m.BillingJSON = marshalJSON(o.Billing)
	m.ShippingJSON = marshalJSON(o.Shipping)
	m.LineItemsJSON = marshalJSON(o.LineItems)

	m.DeliveryID = o.Delivery.ID
	m.ShippingMethodID = o.Delivery.ShippingMethodID
	m.DeliveryState = o.Delivery.State
	m.DeliveryOdooStatus = o.Delivery.OdooStatus
	m.TrackingCodesJSON = marshalJSON(o.Delivery.TrackingCodes)

	m.TransactionID = o.Transaction.ID
	m.PaymentMethodID = o.Transaction.PaymentMethodID
	m.TransactionState = o.Transaction.State
	m.TransactionOdooStatus = o.Transaction.OdooStatus

	m.State = o.State
	m.OdooStatus = o.OdooStatus
	m.AmountNet = o.AmountNet
	m.AmountGross = o.AmountGross
	m.OdooCorrelation.FromDomain(o.Correlation)
	m.Synced = o.Synced
	m.CreatedAt = o.CreatedAt
	m.UpdatedAt = o.UpdatedAt
}

func marshalJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
