package dto

// Envelope is the response shape every inbound Odoo endpoint returns. The
// Odoo side switches on Type and reads ResponseCode before touching the
// payload fields.
type Envelope struct {
	Type         string `json:"type"`
	ResponseCode int    `json:"responseCode"`
	Message      string `json:"message,omitempty"`
	Data         any    `json:"data,omitempty"`
	IDReports    any    `json:"idReports,omitempty"`
	Errors       any    `json:"errors,omitempty"`
}

const (
	// TypeSuccess marks a fully or partially successful request.
	TypeSuccess = "Success"
	// TypeError marks a rejected request.
	TypeError = "Error"
)

// Success builds a success envelope.
func Success(code int, data any) Envelope {
	return Envelope{Type: TypeSuccess, ResponseCode: code, Data: data}
}

// SuccessWithReports builds a success envelope carrying the ID pairing
// report of an inbound batch, plus the per-item errors of a partial
// failure.
func SuccessWithReports(code int, reports, errs any) Envelope {
	return Envelope{Type: TypeSuccess, ResponseCode: code, IDReports: reports, Errors: errs}
}

// Error builds an error envelope.
func Error(code int, message string) Envelope {
	return Envelope{Type: TypeError, ResponseCode: code, Message: message}
}
