package serviceerrors

import (
	"errors"

	"github.com/rafaelleal24/stock/internal/core/domain"
)

type ErrorKind int

const (
	KindNotFound ErrorKind = iota
	KindConflict
	KindUnprocessableEntity
	KindInvalidRequest
	KindInvalidState
)

func IsOfKind(err error, kind ErrorKind) bool {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Kind == kind
	}
	return false
}

type ServiceError struct {
	Kind    ErrorKind
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Message: message}
}

func NewConflictError(message string) *ServiceError {
	return &ServiceError{Kind: KindConflict, Message: message}
}

func NewUnprocessableEntityError(message string) *ServiceError {
	return &ServiceError{Kind: KindUnprocessableEntity, Message: message}
}

func NewInvalidRequestError(message string) *ServiceError {
	return &ServiceError{Kind: KindInvalidRequest, Message: message}
}

func NewInvalidStateError(message string) *ServiceError {
	return &ServiceError{Kind: KindInvalidState, Message: message}
}

// FromDomain converts entity errors into service errors and passes anything
// else through untouched.
func FromDomain(err error) error {
	var domainErr *domain.Error
	if !errors.As(err, &domainErr) {
		return err
	}
	switch {
	case errors.Is(domainErr, domain.ErrInvalidState):
		return NewInvalidStateError(domainErr.Message)
	default:
		return NewInvalidRequestError(domainErr.Message)
	}
}
