package services

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("record not found")
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrDuplicate           = errors.New("record already exists")
	ErrOverpayment         = errors.New("payment exceeds the outstanding balance")
	ErrNoSubscriptions     = errors.New("no subscriptions found")
	ErrSubscriptionExpired = errors.New("push subscription expired")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrRegistrationClosed  = errors.New("registration is closed")
	ErrNotConfigured       = errors.New("integration not configured")
)

// ValidationError is returned before anything is persisted when the
// caller's input is unusable.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
