// Package sync holds the cross-system identity model shared by every
// connector mapper: correlation fields linking a Shopware entity to its
// Odoo counterpart, the tri-state payload field representation, the closed
// set of synchronized entity types and the per-dispatch reentrancy guard.
package sync
