package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrEmptySale       = errors.New("sale must contain at least one item")
	ErrInvalidQuantity = errors.New("item quantity must be at least 1")
	ErrUnknownCustomer = errors.New("unknown customer")
	ErrUnknownMedicine = errors.New("unknown medicine")
)

// InsufficientStockError reports a sale or stock adjustment that would
// overdraw a medicine's stock. It carries enough context to render a
// user-facing message.
type InsufficientStockError struct {
	MedicineID   uuid.UUID
	MedicineName string
	Requested    int
	Available    int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d",
		e.MedicineName, e.Requested, e.Available)
}

// IsInsufficientStock reports whether err is an InsufficientStockError and
// returns it if so.
func IsInsufficientStock(err error) (*InsufficientStockError, bool) {
	var stockErr *InsufficientStockError
	if errors.As(err, &stockErr) {
		return stockErr, true
	}
	return nil, false
}
