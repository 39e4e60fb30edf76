package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erp/odoo-connector/internal/domain/sync"
)

// LineItemType discriminates order line items.
type LineItemType string

const (
	LineItemProduct   LineItemType = "product"
	LineItemPromotion LineItemType = "promotion"
)

// OrderCustomer is the customer snapshot embedded in an order.
type OrderCustomer struct {
	ID          uuid.UUID
	CustomerID  uuid.UUID
	FirstName   string
	LastName    string
	Email       string
	Correlation sync.Correlation
	// Synced mirrors odoo_customer_sync_status: true once the contact was
	// pushed to Odoo.
	Synced bool
}

// Address is a billing or shipping address on an order.
type Address struct {
	Street    string
	Zip       string
	City      string
	CountryID uuid.UUID
	Phone     string
}

// LineItem is one order position, either a product or a promotion.
type LineItem struct {
	ID         uuid.UUID
	Type       LineItemType
	ProductID  *uuid.UUID
	Label      string
	Quantity   int
	UnitNet    decimal.Decimal
	UnitGross  decimal.Decimal
	TotalNet   decimal.Decimal
	TotalGross decimal.Decimal
}

// Delivery carries the shipping method and its own machine state plus the
// shadow field recording the last delivery status pushed to Odoo.
type Delivery struct {
	ID               uuid.UUID
	ShippingMethodID uuid.UUID
	State            string
	TrackingCodes    []string
	// OdooStatus is the shadow value suppressing duplicate pushes.
	OdooStatus string
}

// Transaction carries the payment method and its own machine state plus
// the shadow field recording the last payment status pushed to Odoo.
type Transaction struct {
	ID              uuid.UUID
	PaymentMethodID uuid.UUID
	State           string
	OdooStatus      string
}

// Order is the aggregate root synchronized with an Odoo sale.order.
type Order struct {
	ID             uuid.UUID
	Number         string
	SalesChannelID uuid.UUID
	CurrencyID     uuid.UUID
	Customer       OrderCustomer
	Billing        Address
	Shipping       Address
	LineItems      []LineItem
	Delivery       Delivery
	Transaction    Transaction
	State          string
	// OdooStatus shadows the last order status pushed to Odoo.
	OdooStatus  string
	AmountNet   decimal.Decimal
	AmountGross decimal.Decimal
	Correlation sync.Correlation
	// Synced mirrors odoo_order_sync_status.
	Synced    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewOrder creates an order in the initial state of all three machines.
func NewOrder(number string, salesChannelID uuid.UUID) (*Order, error) {
	if number == "" {
		return nil, ErrOrderNumberRequired
	}
	now := time.Now()
	return &Order{
		ID:             uuid.New(),
		Number:         number,
		SalesChannelID: salesChannelID,
		State:          OrderMachine().InitialState(),
		Delivery:       Delivery{ID: uuid.New(), State: DeliveryMachine().InitialState()},
		Transaction:    Transaction{ID: uuid.New(), State: TransactionMachine().InitialState()},
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// AddLineItem appends a position and recomputes order totals.
func (o *Order) AddLineItem(item LineItem) {
	item.TotalNet = item.UnitNet.Mul(decimal.NewFromInt(int64(item.Quantity)))
	item.TotalGross = item.UnitGross.Mul(decimal.NewFromInt(int64(item.Quantity)))
	o.LineItems = append(o.LineItems, item)
	o.recalculate()
}

func (o *Order) recalculate() {
	net, gross := decimal.Zero, decimal.Zero
	for _, item := range o.LineItems {
		net = net.Add(item.TotalNet)
		gross = gross.Add(item.TotalGross)
	}
	o.AmountNet = net
	o.AmountGross = gross
	o.UpdatedAt = time.Now()
}

// StateFor returns the current state of the given machine.
func (o *Order) StateFor(machine MachineType) string {
	switch machine {
	case MachineDelivery:
		return o.Delivery.State
	case MachineTransaction:
		return o.Transaction.State
	default:
		return o.State
	}
}

// ShadowFor returns the last status pushed to Odoo for the given machine.
func (o *Order) ShadowFor(machine MachineType) string {
	switch machine {
	case MachineDelivery:
		return o.Delivery.OdooStatus
	case MachineTransaction:
		return o.Transaction.OdooStatus
	default:
		return o.OdooStatus
	}
}

// SetState writes the new machine state.
func (o *Order) SetState(machine MachineType, state string) {
	switch machine {
	case MachineDelivery:
		o.Delivery.State = state
	case MachineTransaction:
		o.Transaction.State = state
	default:
		o.State = state
	}
	o.UpdatedAt = time.Now()
}

// SetShadow records the status value just pushed to Odoo.
func (o *Order) SetShadow(machine MachineType, status string) {
	switch machine {
	case MachineDelivery:
		o.Delivery.OdooStatus = status
	case MachineTransaction:
		o.Transaction.OdooStatus = status
	default:
		o.OdooStatus = status
	}
	o.UpdatedAt = time.Now()
}
