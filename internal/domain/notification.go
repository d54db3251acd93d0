package domain

import (
	"time"

	"github.com/google/uuid"
)

// Notification severity levels
const (
	NotificationInfo    = "info"
	NotificationWarning = "warning"
	NotificationError   = "error"
	NotificationSuccess = "success"
)

// Alert kinds produced by inventory reconciliation. Manual and system
// notifications carry an empty kind.
const (
	AlertKindLowStock = "low_stock"
	AlertKindExpiry   = "expiry"
)

// Notification is an alert or message surfaced in the notification center.
// Alerts produced by reconciliation carry a (Kind, MedicineID) pair which is
// the deduplication key: at most one alert exists per kind per medicine.
type Notification struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Title      string    `json:"title" db:"title"`
	Message    string    `json:"message" db:"message"`
	Type       string    `json:"type" db:"type"`
	Kind       string    `json:"kind,omitempty" db:"kind"`
	MedicineID uuid.UUID `json:"medicine_id,omitempty" db:"medicine_id"`
	IsRead     bool      `json:"is_read" db:"is_read"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
