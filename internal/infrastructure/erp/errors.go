package erp

import "errors"

var (
	// ErrNotConfigured indicates the Odoo base URL or token is unset; no
	// network call is attempted in this state.
	ErrNotConfigured = errors.New("erp: odoo connection is not configured")
	// ErrUnavailable indicates a transport failure (timeout, refused).
	ErrUnavailable = errors.New("erp: odoo is unavailable")
	// ErrRequestFailed indicates an HTTP-level failure (status >= 400).
	ErrRequestFailed = errors.New("erp: odoo request failed")
	// ErrInvalidResponse indicates a response body that could not be parsed.
	ErrInvalidResponse = errors.New("erp: invalid odoo response")
	// ErrRemote indicates Odoo answered with success=false; the message is
	// written to the entity's error custom field, never into business data.
	ErrRemote = errors.New("erp: odoo rejected the request")
)
