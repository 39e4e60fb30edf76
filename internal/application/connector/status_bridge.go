package connector

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/erp/odoo-connector/internal/domain/trade"
	"github.com/erp/odoo-connector/internal/infrastructure/config"
	"github.com/erp/odoo-connector/internal/infrastructure/erp"
)

// StatusPusher is the slice of the ERP client the bridge needs for its
// outbound notifications.
type StatusPusher interface {
	PushOrderStatus(ctx context.Context, notification erp.StatusNotification) (*erp.Response, error)
}

// StatusOutcome is the per-item result of an inbound status notification.
type StatusOutcome struct {
	OrderNumber string `json:"orderNumber"`
	OrderID     string `json:"orderId"`
	Machine     string `json:"machine"`
	NewState    string `json:"newState"`
	// ReturnCancelled marks the forced open→cancelled path taken for a
	// completed delivery flagged as a return.
	ReturnCancelled bool `json:"returnCancelled,omitempty"`
}

// StatusBridge translates order status between the two systems. Outbound
// it pushes machine state changes to Odoo, suppressing pushes whose status
// equals the shadow value already acknowledged. Inbound it resolves Odoo
// status keys through the configured mapping tables and drives the local
// state machines.
type StatusBridge struct {
	orders trade.OrderRepository
	pusher StatusPusher
	cfg    *config.OdooConfig
	logger *zap.Logger
}

// NewStatusBridge creates a status bridge.
func NewStatusBridge(orders trade.OrderRepository, pusher StatusPusher, cfg *config.OdooConfig, logger *zap.Logger) *StatusBridge {
	return &StatusBridge{orders: orders, pusher: pusher, cfg: cfg, logger: logger}
}

// NotifyChange pushes the current state of one machine to Odoo if it
// differs from the shadow value, then persists the new shadow. A repeated
// state is a no-op.
func (b *StatusBridge) NotifyChange(ctx context.Context, order *trade.Order, machine trade.MachineType) error {
	state := order.StateFor(machine)
	status, err := b.toOdoo(machine, state)
	if err != nil {
		return err
	}
	if status == order.ShadowFor(machine) {
		return nil
	}
	notification := erp.StatusNotification{
		OrderNumber: order.Number,
		OrderID:     b.odooOrderID(order),
		Status:      status,
		Type:        string(machine),
	}
	if _, err := b.pusher.PushOrderStatus(ctx, notification); err != nil {
		return err
	}
	order.SetShadow(machine, status)
	return b.orders.Save(ctx, order)
}

// ApplyBatch processes inbound notifications item-by-item; one unmapped
// transition fails its item without aborting the siblings.
func (b *StatusBridge) ApplyBatch(ctx context.Context, payloads []StatusPayload) ([]StatusOutcome, []ItemError) {
	var outcomes []StatusOutcome
	var failures []ItemError
	for _, p := range payloads {
		out, err := b.Apply(ctx, p)
		if err != nil {
			b.logger.Warn("status notification rejected",
				zap.String("order_number", p.OrderNumber), zap.Error(err))
			failures = append(failures, ItemError{Reason: fmt.Sprintf("%s: %v", p.OrderNumber, err)})
			continue
		}
		outcomes = append(outcomes, out...)
	}
	return outcomes, failures
}

// Apply handles one inbound notification. A delivery status of "done"
// combined with the return flag forces the order through open and then
// cancelled, overriding the normal mapping path.
func (b *StatusBridge) Apply(ctx context.Context, p StatusPayload) ([]StatusOutcome, error) {
	order, err := b.resolveOrder(ctx, p)
	if err != nil {
		return nil, err
	}

	var outcomes []StatusOutcome
	if key, ok := p.DeliveryState.Value(); ok {
		if key == "done" && p.Return {
			return b.applyReturn(ctx, order)
		}
		target, ok := b.cfg.DeliveryStatusFromOdoo[key]
		if !ok {
			return nil, fmt.Errorf("%w: delivery status %q", ErrStatusUnmapped, key)
		}
		out, err := b.transition(ctx, order, trade.MachineDelivery, target)
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, out)
		if code, ok := p.TrackingCode.Value(); ok && code != "" {
			order.Delivery.TrackingCodes = appendUnique(order.Delivery.TrackingCodes, code)
		}
		cascade, err := b.cascadeOrder(ctx, order, target)
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, cascade...)
	}
	if key, ok := p.OrderState.Value(); ok {
		target, ok := b.cfg.OrderStatusFromOdoo[key]
		if !ok {
			return nil, fmt.Errorf("%w: order status %q", ErrStatusUnmapped, key)
		}
		out, err := b.transition(ctx, order, trade.MachineOrder, target)
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, out)
	}
	if target, ok := p.PaymentState.Value(); ok {
		out, err := b.transition(ctx, order, trade.MachineTransaction, target)
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, out)
	}
	if len(outcomes) == 0 {
		return nil, fmt.Errorf("%w: notification carries no status", ErrStatusUnmapped)
	}
	return outcomes, b.orders.Save(ctx, order)
}

// applyReturn drives the order machine to open and then cancelled. The
// delivery mapping tables are bypassed entirely.
func (b *StatusBridge) applyReturn(ctx context.Context, order *trade.Order) ([]StatusOutcome, error) {
	machine := trade.OrderMachine()
	for _, target := range []string{trade.OrderStateOpen, trade.OrderStateCancelled} {
		if order.State == target {
			continue
		}
		if _, err := machine.Apply(order.State, target); err != nil {
			return nil, err
		}
		order.SetState(trade.MachineOrder, target)
	}
	if err := b.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return []StatusOutcome{{
		OrderNumber:     order.Number,
		OrderID:         b.odooOrderID(order),
		Machine:         string(trade.MachineOrder),
		NewState:        order.State,
		ReturnCancelled: true,
	}}, nil
}

// transition resolves and fires one machine transition, updating the
// aggregate in memory. Persistence is the caller's responsibility.
func (b *StatusBridge) transition(ctx context.Context, order *trade.Order, machineType trade.MachineType, target string) (StatusOutcome, error) {
	machine, err := trade.MachineFor(machineType)
	if err != nil {
		return StatusOutcome{}, err
	}
	current := order.StateFor(machineType)
	if current != target {
		verb, err := machine.Apply(current, target)
		if err != nil {
			return StatusOutcome{}, err
		}
		b.logger.Debug("state transition applied",
			zap.String("order_number", order.Number),
			zap.String("machine", string(machineType)),
			zap.String("verb", verb),
			zap.String("state", target))
		order.SetState(machineType, target)
	}
	return StatusOutcome{
		OrderNumber: order.Number,
		OrderID:     b.odooOrderID(order),
		Machine:     string(machineType),
		NewState:    target,
	}, nil
}

// cascadeOrder keeps the parent order machine in line with its delivery
// state and re-notifies Odoo when it had to move.
func (b *StatusBridge) cascadeOrder(ctx context.Context, order *trade.Order, deliveryState string) ([]StatusOutcome, error) {
	implied, ok := impliedOrderState[deliveryState]
	if !ok || order.State == implied {
		return nil, nil
	}
	out, err := b.transition(ctx, order, trade.MachineOrder, implied)
	if err != nil {
		return nil, err
	}
	if err := b.NotifyChange(ctx, order, trade.MachineOrder); err != nil {
		b.logger.Warn("cascaded order status not pushed",
			zap.String("order_number", order.Number), zap.Error(err))
	}
	return []StatusOutcome{out}, nil
}

// impliedOrderState is what the order machine should show for a given
// delivery state; deliveries not listed do not move the order.
var impliedOrderState = map[string]string{
	trade.DeliveryStateShipped:          trade.OrderStateInProgress,
	trade.DeliveryStateShippedPartially: trade.OrderStateInProgress,
}

func (b *StatusBridge) resolveOrder(ctx context.Context, p StatusPayload) (*trade.Order, error) {
	if p.OrderNumber != "" {
		order, err := b.orders.FindByNumber(ctx, p.OrderNumber)
		if err == nil {
			return order, nil
		}
		if !errors.Is(err, trade.ErrOrderNotFound) {
			return nil, err
		}
	}
	if raw, ok := p.OrderID.Value(); ok {
		if odooID, err := strconv.ParseInt(raw, 10, 64); err == nil {
			order, err := b.orders.FindByForeignID(ctx, odooID)
			if err != nil {
				return nil, err
			}
			if order != nil {
				return order, nil
			}
		}
	}
	return nil, ErrOrderUnresolved
}

// toOdoo translates a local technical name into the Odoo status key. The
// transaction machine has no table; its technical names pass through.
func (b *StatusBridge) toOdoo(machine trade.MachineType, state string) (string, error) {
	var table map[string]string
	switch machine {
	case trade.MachineDelivery:
		table = b.cfg.DeliveryStatusToOdoo
	case trade.MachineOrder:
		table = b.cfg.OrderStatusToOdoo
	default:
		return state, nil
	}
	status, ok := table[state]
	if !ok {
		return "", fmt.Errorf("%w: %s state %q", ErrStatusUnmapped, machine, state)
	}
	return status, nil
}

func (b *StatusBridge) odooOrderID(order *trade.Order) string {
	if order.Correlation.OdooID != nil {
		return strconv.FormatInt(*order.Correlation.OdooID, 10)
	}
	return order.ID.String()
}

func appendUnique(codes []string, code string) []string {
	for _, c := range codes {
		if c == code {
			return codes
		}
	}
	return append(codes, code)
}
