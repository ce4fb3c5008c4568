package errors

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError rejects malformed input before any mutation is attempted.
type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	if ve, ok := err.(*ValidationError); ok {
		return ve, true
	}
	return nil, false
}

// NotFoundError covers references to products, suppliers or cashiers that
// do not exist (or are deactivated).
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	if nfe, ok := err.(*NotFoundError); ok {
		return nfe, true
	}
	return nil, false
}

// ConsistencyError rejects an operation that reads fine-formed input but
// would violate a business rule (recipe owner not manufactured, component
// sellable, product not sellable on a ticket).
type ConsistencyError struct {
	Message string
}

func (e *ConsistencyError) Error() string {
	return e.Message
}

func NewConsistencyError(message string) *ConsistencyError {
	return &ConsistencyError{Message: message}
}

func IsConsistencyError(err error) (*ConsistencyError, bool) {
	if ce, ok := err.(*ConsistencyError); ok {
		return ce, true
	}
	return nil, false
}

// InsufficientStockError aborts a decrement whose requirement exceeds the
// current balance. Quantities are in the product's base unit.
type InsufficientStockError struct {
	Product   string
	Required  decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock of %q: required %s, available %s",
		e.Product, e.Required.String(), e.Available.String())
}

func NewInsufficientStockError(product string, required, available decimal.Decimal) *InsufficientStockError {
	return &InsufficientStockError{
		Product:   product,
		Required:  required,
		Available: available,
	}
}

func IsInsufficientStockError(err error) (*InsufficientStockError, bool) {
	if ise, ok := err.(*InsufficientStockError); ok {
		return ise, true
	}
	return nil, false
}

// NoRecipeError aborts a production of a product with no recipe defined.
type NoRecipeError struct {
	Product string
}

func (e *NoRecipeError) Error() string {
	return fmt.Sprintf("product %q has no recipe defined", e.Product)
}

func NewNoRecipeError(product string) *NoRecipeError {
	return &NoRecipeError{Product: product}
}

func IsNoRecipeError(err error) (*NoRecipeError, bool) {
	if nre, ok := err.(*NoRecipeError); ok {
		return nre, true
	}
	return nil, false
}

type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{
		Message: message,
		Cause:   cause,
	}
}
