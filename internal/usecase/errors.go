package usecase

import (
	"errors"

	"github.com/roygutt18/quiteSlot/pkg/utils"
)

// Local precondition failures, detected before any network call. The wizard
// state is never mutated when one of these is returned.
var (
	ErrAuthRequired    = errors.New("sign in before continuing")
	ErrNameRequired    = errors.New("add your name before picking a date")
	ErrServiceRequired = errors.New("pick a service first")
	ErrDateRequired    = errors.New("pick a date first")
	ErrDateUnavailable = errors.New("that day is not open for booking")
	ErrSlotUnavailable = errors.New("that time is not available")
	ErrUnknownService  = errors.New("unknown service")
	ErrCooldownActive  = errors.New("wait before requesting another code")
	ErrNoPendingPhone  = errors.New("request a code first")
)

// ValidationError carries field-level input problems back to the renderer.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + utils.FormatValidationErrors(e.Fields)
}

func invalidField(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}
