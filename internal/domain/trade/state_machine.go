package trade

import "fmt"

// MachineType identifies one of the three independent state machines
// attached to an order aggregate.
type MachineType string

const (
	MachineOrder       MachineType = "order"
	MachineDelivery    MachineType = "order_delivery"
	MachineTransaction MachineType = "order_transaction"
)

// Order machine states.
const (
	OrderStateOpen       = "open"
	OrderStateInProgress = "in_progress"
	OrderStateCompleted  = "completed"
	OrderStateCancelled  = "cancelled"
)

// Delivery machine states.
const (
	DeliveryStateOpen              = "open"
	DeliveryStateShipped           = "shipped"
	DeliveryStateShippedPartially  = "shipped_partially"
	DeliveryStateReturned          = "returned"
	DeliveryStateReturnedPartially = "returned_partially"
	DeliveryStateCancelled         = "cancelled"
)

// Transaction machine states.
const (
	TransactionStateOpen           = "open"
	TransactionStatePaid           = "paid"
	TransactionStatePaidPartially  = "paid_partially"
	TransactionStateAuthorized     = "authorized"
	TransactionStateRefunded       = "refunded"
	TransactionStateCancelled      = "cancelled"
)

// TransitionNotFoundError signals a target technical name with no mapped
// transition. It is fatal for the item being processed: the mapping tables
// are misconfigured and an operator has to intervene.
type TransitionNotFoundError struct {
	Machine MachineType
	Target  string
}

func (e *TransitionNotFoundError) Error() string {
	return fmt.Sprintf("trade: no %s transition reaches state %q", e.Machine, e.Target)
}

// transition is one guarded edge of a machine: the verb, the states it may
// fire from and the state it lands in.
type transition struct {
	verb string
	from map[string]bool
	to   string
}

// Machine is an explicit finite-state-machine table: states plus guarded
// transitions keyed by target technical name.
type Machine struct {
	machineType MachineType
	initial     string
	byTarget    map[string]transition
}

// Type returns the machine type.
func (m *Machine) Type() MachineType { return m.machineType }

// InitialState returns the state new entities start in.
func (m *Machine) InitialState() string { return m.initial }

// HasState reports whether the technical name is a state of this machine.
func (m *Machine) HasState(state string) bool {
	if state == m.initial {
		return true
	}
	for _, t := range m.byTarget {
		if t.to == state {
			return true
		}
	}
	return false
}

// TransitionTo resolves the transition verb reaching the target state.
// An unmapped target is a typed TransitionNotFoundError, never a no-op.
func (m *Machine) TransitionTo(target string) (string, error) {
	t, ok := m.byTarget[target]
	if !ok {
		return "", &TransitionNotFoundError{Machine: m.machineType, Target: target}
	}
	return t.verb, nil
}

// Apply resolves and fires the transition from the current state to the
// target, returning the verb used. The guard rejects transitions fired
// from a state outside the edge's source set.
func (m *Machine) Apply(current, target string) (string, error) {
	t, ok := m.byTarget[target]
	if !ok {
		return "", &TransitionNotFoundError{Machine: m.machineType, Target: target}
	}
	if !t.from[current] {
		return "", fmt.Errorf("%w: %s transition %q cannot fire from %q",
			ErrTransitionGuard, m.machineType, t.verb, current)
	}
	return t.verb, nil
}

func states(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// OrderMachine is the fixed table for order.state.
func OrderMachine() *Machine {
	return &Machine{
		machineType: MachineOrder,
		initial:     OrderStateOpen,
		byTarget: map[string]transition{
			OrderStateOpen: {
				verb: "reopen",
				from: states(OrderStateInProgress, OrderStateCompleted, OrderStateCancelled),
				to:   OrderStateOpen,
			},
			OrderStateInProgress: {
				verb: "process",
				from: states(OrderStateOpen),
				to:   OrderStateInProgress,
			},
			OrderStateCompleted: {
				verb: "complete",
				from: states(OrderStateInProgress),
				to:   OrderStateCompleted,
			},
			OrderStateCancelled: {
				verb: "cancel",
				from: states(OrderStateOpen, OrderStateInProgress),
				to:   OrderStateCancelled,
			},
		},
	}
}

// DeliveryMachine is the fixed table for order_delivery.state.
func DeliveryMachine() *Machine {
	return &Machine{
		machineType: MachineDelivery,
		initial:     DeliveryStateOpen,
		byTarget: map[string]transition{
			DeliveryStateOpen: {
				verb: "reopen",
				from: states(DeliveryStateShipped, DeliveryStateShippedPartially,
					DeliveryStateReturned, DeliveryStateReturnedPartially, DeliveryStateCancelled),
				to: DeliveryStateOpen,
			},
			DeliveryStateShipped: {
				verb: "ship",
				from: states(DeliveryStateOpen, DeliveryStateShippedPartially),
				to:   DeliveryStateShipped,
			},
			DeliveryStateShippedPartially: {
				verb: "ship_partially",
				from: states(DeliveryStateOpen),
				to:   DeliveryStateShippedPartially,
			},
			DeliveryStateReturned: {
				verb: "retour",
				from: states(DeliveryStateShipped, DeliveryStateShippedPartially,
					DeliveryStateReturnedPartially),
				to: DeliveryStateReturned,
			},
			DeliveryStateReturnedPartially: {
				verb: "retour_partially",
				from: states(DeliveryStateShipped, DeliveryStateShippedPartially),
				to:   DeliveryStateReturnedPartially,
			},
			DeliveryStateCancelled: {
				verb: "cancel",
				from: states(DeliveryStateOpen, DeliveryStateShipped, DeliveryStateShippedPartially),
				to:   DeliveryStateCancelled,
			},
		},
	}
}

// TransactionMachine is the fixed table for order_transaction.state.
func TransactionMachine() *Machine {
	return &Machine{
		machineType: MachineTransaction,
		initial:     TransactionStateOpen,
		byTarget: map[string]transition{
			TransactionStateOpen: {
				verb: "reopen",
				from: states(TransactionStatePaid, TransactionStatePaidPartially,
					TransactionStateAuthorized, TransactionStateRefunded, TransactionStateCancelled),
				to: TransactionStateOpen,
			},
			TransactionStatePaid: {
				verb: "pay",
				from: states(TransactionStateOpen, TransactionStatePaidPartially,
					TransactionStateAuthorized),
				to: TransactionStatePaid,
			},
			TransactionStatePaidPartially: {
				verb: "pay_partially",
				from: states(TransactionStateOpen, TransactionStateAuthorized),
				to:   TransactionStatePaidPartially,
			},
			TransactionStateAuthorized: {
				verb: "authorize",
				from: states(TransactionStateOpen),
				to:   TransactionStateAuthorized,
			},
			TransactionStateRefunded: {
				verb: "refund",
				from: states(TransactionStatePaid, TransactionStatePaidPartially),
				to:   TransactionStateRefunded,
			},
			TransactionStateCancelled: {
				verb: "cancel",
				from: states(TransactionStateOpen, TransactionStateAuthorized),
				to:   TransactionStateCancelled,
			},
		},
	}
}

// MachineFor returns the machine table for the given type.
func MachineFor(t MachineType) (*Machine, error) {
	switch t {
	case MachineOrder:
		return OrderMachine(), nil
	case MachineDelivery:
		return DeliveryMachine(), nil
	case MachineTransaction:
		return TransactionMachine(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMachine, t)
	}
}
