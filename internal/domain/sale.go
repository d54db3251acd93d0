package domain

import (
	"time"

	"github.com/google/uuid"
)

// SaleItem is a single line within a sale. Medicine name and unit price are
// snapshots taken at the time of sale, so later catalog edits do not rewrite
// historical receipts.
type SaleItem struct {
	MedicineID   uuid.UUID `json:"medicine_id" db:"medicine_id"`
	MedicineName string    `json:"medicine_name" db:"medicine_name"`
	Quantity     int       `json:"quantity" db:"quantity"`
	Price        float64   `json:"price" db:"price"`
	Total        float64   `json:"total" db:"total"`
}

// Sale is a committed point-of-sale transaction. Once created it is immutable:
// its total is always recomputable from its own items, tax and consultation charge.
type Sale struct {
	ID                 uuid.UUID  `json:"id" db:"id"`
	CustomerID         uuid.UUID  `json:"customer_id" db:"customer_id"`
	CustomerName       string     `json:"customer_name" db:"customer_name"`
	Items              []SaleItem `json:"items"`
	Subtotal           float64    `json:"subtotal" db:"subtotal"`
	Tax                float64    `json:"tax" db:"tax"`
	ConsultationCharge float64    `json:"consultation_charge" db:"consultation_charge"`
	TotalAmount        float64    `json:"total_amount" db:"total_amount"`
	PaymentMethod      string     `json:"payment_method" db:"payment_method"`
	Status             string     `json:"status" db:"status"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
}
