package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a validation error attributed to a field
func NewValidationError(field, message string) *DomainError {
	return &DomainError{
		Code:    "VALIDATION",
		Message: message,
		Field:   field,
	}
}

// NewStateConflictError creates an error for an operation that is invalid in
// the aggregate's current lifecycle state
func NewStateConflictError(message string) *DomainError {
	return &DomainError{
		Code:    "STATE_CONFLICT",
		Message: message,
	}
}

// NewGateFailureError creates a publish-gate error. Field carries the first
// unmet condition so callers can surface which checklist item failed.
func NewGateFailureError(condition, message string) *DomainError {
	return &DomainError{
		Code:    "GATE_FAILURE",
		Message: message,
		Field:   condition,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState        = NewDomainError("STATE_CONFLICT", "Operation not allowed in current state")
)
