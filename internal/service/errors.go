package service

import (
	"errors"
	"fmt"
)

// ErrCacheDecode indicates that a cached listing could not be decoded.
// It is only ever logged: the listing is re-read from the store.
var ErrCacheDecode = errors.New("cached value could not be decoded")

// ServiceError is a custom error type for service-specific errors with additional context.
type ServiceError struct {
	Service   string // The service that failed (e.g., "task")
	Operation string // The operation that failed (e.g., "create")
	Err       error  // Original error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s operation failed: %v", e.Service, e.Operation, e.Err)
	}
	return fmt.Sprintf("%s service %s operation failed", e.Service, e.Operation)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, operation string, err error) *ServiceError {
	return &ServiceError{
		Service:   service,
		Operation: operation,
		Err:       err,
	}
}
