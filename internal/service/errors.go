package service

import (
	"errors"
	"fmt"

	"ucstore-inventory/pkg/validator"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrProductNotFound   = errors.New("Product not found")
	ErrProductExists     = errors.New("product id already exists")
	ErrInsufficientStock = errors.New("Insufficient stock")
	ErrUserNotFound      = errors.New("Not found")
	ErrUserIDRequired    = errors.New("id required")
)

// StockError reports an oversold sale together with what is left.
type StockError struct {
	Available int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("Insufficient stock. Available: %d", e.Available)
}

func (e *StockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

func validate(req interface{}) error {
	if msg := validator.FirstError(req); msg != "" {
		return fmt.Errorf("%w: %s", ErrValidation, msg)
	}
	return nil
}
