package sync

import "context"

type guardKey struct{}

// Guard tracks which entity types are currently being dispatched within one
// call chain. It replaces a process-wide flag: the guard travels with the
// context, so concurrent requests never observe each other's state.
type Guard struct {
	inFlight map[EntityType]bool
}

// NewGuard returns an empty guard.
func NewGuard() *Guard {
	return &Guard{inFlight: make(map[EntityType]bool)}
}

// WithGuard attaches a fresh guard to the context and returns both.
func WithGuard(ctx context.Context) (context.Context, *Guard) {
	g := NewGuard()
	return context.WithValue(ctx, guardKey{}, g), g
}

// GuardFrom returns the guard carried by the context, or nil.
func GuardFrom(ctx context.Context) *Guard {
	g, _ := ctx.Value(guardKey{}).(*Guard)
	return g
}

// Enter marks the entity type as in flight. It returns false when the type
// is already being processed in this call chain, signalling the caller to
// skip the nested dispatch.
func (g *Guard) Enter(t EntityType) bool {
	if g.inFlight[t] {
		return false
	}
	g.inFlight[t] = true
	return true
}

// Leave clears the in-flight mark. Callers defer it so the guard is reset
// on every exit path, including panics.
func (g *Guard) Leave(t EntityType) {
	delete(g.inFlight, t)
}
