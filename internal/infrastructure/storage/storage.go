// Package storage provides object storage implementations for product media.
package storage

import (
	"context"
	"io"
)

// ObjectStorage stores media binaries downloaded from Odoo under their
// deterministic storage keys.
type ObjectStorage interface {
	// Put uploads an object. Uploading to an existing key overwrites it.
	Put(ctx context.Context, storageKey, contentType string, body io.Reader) error
	// Exists checks whether an object is present under the key.
	Exists(ctx context.Context, storageKey string) (bool, error)
	// Delete removes an object. Deleting a missing key is not an error.
	Delete(ctx context.Context, storageKey string) error
}
