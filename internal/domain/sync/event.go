package sync

import (
	"time"

	"github.com/google/uuid"
)

// Action describes what happened to an entity on the shop side.
type Action string

const (
	ActionWritten Action = "written"
	ActionDeleted Action = "deleted"
)

// ActorOdoo marks writes applied on behalf of Odoo. The dispatcher skips
// these so inbound updates never echo back out.
const ActorOdoo = "odoo"

// ChangeEvent is emitted whenever shop entities are written or deleted.
type ChangeEvent struct {
	ID         uuid.UUID
	Entity     EntityType
	Action     Action
	EntityIDs  []uuid.UUID
	Actor      string
	OccurredAt time.Time
}

// NewChangeEvent creates a change event for the given entities.
func NewChangeEvent(entity EntityType, action Action, actor string, entityIDs ...uuid.UUID) ChangeEvent {
	return ChangeEvent{
		ID:         uuid.New(),
		Entity:     entity,
		Action:     action,
		EntityIDs:  entityIDs,
		Actor:      actor,
		OccurredAt: time.Now().UTC(),
	}
}

// EventType is the routing key used by the event bus.
func (e ChangeEvent) EventType() string {
	return string(e.Entity) + "." + string(e.Action)
}

// FromOdoo reports whether the change originated from an inbound Odoo call.
func (e ChangeEvent) FromOdoo() bool {
	return e.Actor == ActorOdoo
}
