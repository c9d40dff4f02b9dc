package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("resource not found")

	ErrInvalidArgument = errors.New("invalid argument")

	ErrValidation = errors.New("validation failed")

	ErrInvalidState = errors.New("invalid state")

	ErrInsufficientFunds = errors.New("insufficient funds")

	ErrInternalServer = errors.New("internal server error")
)

type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

func NewValidationError(field, message string) error {

	return fmt.Errorf("%w: %w", ErrValidation, &ValidationError{Field: field, Message: message})
}

func NewInvalidStateError(message string) error {
	return fmt.Errorf("%w: %s", ErrInvalidState, message)
}

// RefusalError is an expected business outcome, not a defect: the requested
// operation was aborted and nothing changed.
type RefusalError struct {
	Operation string
	Amount    float64
	Balance   float64
}

func (e *RefusalError) Error() string {
	return fmt.Sprintf("Insufficient funds for %s: requested %.2f, available %.2f", e.Operation, e.Amount, e.Balance)
}

func (e *RefusalError) Unwrap() error {
	return ErrInsufficientFunds
}

func NewRefusal(operation string, amount, balance float64) error {
	return &RefusalError{Operation: operation, Amount: amount, Balance: balance}
}

type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func WrapDeliveryError(sink string, cause error) error {
	return &AppError{
		Code:    "DELIVERY_ERROR",
		Message: fmt.Sprintf("failed to deliver notification to %s", sink),
		Cause:   fmt.Errorf("%w: %w", ErrInternalServer, cause),
	}
}
