package models

import (
	"errors"
	"fmt"
)

// ProductNotFoundError is returned when no product matches the lookup key
type ProductNotFoundError struct {
	Key string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found: %s", e.Key)
}

// Is allows errors.Is matching on the error type
func (e *ProductNotFoundError) Is(target error) bool {
	_, ok := target.(*ProductNotFoundError)
	return ok
}

// InvalidProductError is returned when a product record fails validation
type InvalidProductError struct {
	Field  string
	Reason string
	Value  interface{}
}

func (e *InvalidProductError) Error() string {
	return fmt.Sprintf("invalid product: field=%s, reason=%s, value=%v", e.Field, e.Reason, e.Value)
}

func (e *InvalidProductError) Is(target error) bool {
	_, ok := target.(*InvalidProductError)
	return ok
}

// DuplicateProductError is returned when two products share an id or slug
type DuplicateProductError struct {
	Field string
	Value string
}

func (e *DuplicateProductError) Error() string {
	return fmt.Sprintf("duplicate product: %s=%s already exists", e.Field, e.Value)
}

func (e *DuplicateProductError) Is(target error) bool {
	_, ok := target.(*DuplicateProductError)
	return ok
}

// NewProductNotFoundError creates a new ProductNotFoundError
func NewProductNotFoundError(key string) error {
	return &ProductNotFoundError{Key: key}
}

// NewInvalidProductError creates a new InvalidProductError
func NewInvalidProductError(field, reason string, value interface{}) error {
	return &InvalidProductError{Field: field, Reason: reason, Value: value}
}

// NewDuplicateProductError creates a new DuplicateProductError
func NewDuplicateProductError(field, value string) error {
	return &DuplicateProductError{Field: field, Value: value}
}

// IsProductNotFoundError checks if an error is a ProductNotFoundError
func IsProductNotFoundError(err error) bool {
	var pnf *ProductNotFoundError
	return errors.As(err, &pnf)
}

// IsInvalidProductError checks if an error is an InvalidProductError
func IsInvalidProductError(err error) bool {
	var ipe *InvalidProductError
	return errors.As(err, &ipe)
}

// IsDuplicateProductError checks if an error is a DuplicateProductError
func IsDuplicateProductError(err error) bool {
	var dpe *DuplicateProductError
	return errors.As(err, &dpe)
}
