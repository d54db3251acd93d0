package domain

import (
	"time"

	"github.com/google/uuid"
)

// Medicine represents a stocked medicine in the clinic inventory
type Medicine struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Category      string    `json:"category" db:"category"`
	Manufacturer  string    `json:"manufacturer" db:"manufacturer"`
	BatchNumber   string    `json:"batch_number" db:"batch_number"`
	ExpiryDate    time.Time `json:"expiry_date" db:"expiry_date"`
	Quantity      int       `json:"quantity" db:"quantity"`
	MinQuantity   int       `json:"min_quantity" db:"min_quantity"`
	PurchasePrice float64   `json:"purchase_price" db:"purchase_price"`
	SellingPrice  float64   `json:"selling_price" db:"selling_price"`
	Description   string    `json:"description" db:"description"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// IsLowStock reports whether the current quantity is at or below the restock threshold
func (m *Medicine) IsLowStock() bool {
	return m.Quantity <= m.MinQuantity
}

// DaysUntilExpiry returns the number of whole days until the medicine expires,
// rounded up. Zero or negative means the medicine has already expired.
func (m *Medicine) DaysUntilExpiry(now time.Time) int {
	remaining := m.ExpiryDate.Sub(now)
	days := int(remaining / (24 * time.Hour))
	if remaining%(24*time.Hour) > 0 {
		days++
	}
	return days
}
