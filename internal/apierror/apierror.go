// Package apierror defines the JSON error envelopes the API returns. Every
// 4xx/5xx body is one of these two shapes, so clients never see raw GORM or
// driver errors.
package apierror

// APIError carries a single human-readable message.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Error satisfies the error interface so envelopes can travel through
// gin's c.Error chain.
func (e *APIError) Error() string { return e.Detail }

// ValidationError carries a per-field breakdown of a rejected request body.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
