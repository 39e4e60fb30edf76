package sync

import "errors"

var (
	// ErrUnknownEntityType indicates an entity type outside the synchronized set.
	ErrUnknownEntityType = errors.New("sync: unknown entity type")
)
