package service

import (
	"context"
	"fmt"
	"time"

	"clinic-pos/internal/domain"
	"clinic-pos/internal/repository"

	"github.com/google/uuid"
)

// Horizon within which an upcoming expiry warrants an alert
const expiryAlertWindowDays = 30

// AlertService reconciles the notification set against current inventory:
// it appends exactly the alerts that are required but missing, and never
// touches existing notifications. Reconcile is safe to call repeatedly.
type AlertService interface {
	Reconcile(ctx context.Context) ([]*domain.Notification, error)
}

type alertService struct {
	medicineRepo     repository.MedicineRepository
	notificationRepo repository.NotificationRepository
	now              func() time.Time
}

// NewAlertService creates a new instance of AlertService
func NewAlertService(
	medicineRepo repository.MedicineRepository,
	notificationRepo repository.NotificationRepository,
) AlertService {
	return &alertService{
		medicineRepo:     medicineRepo,
		notificationRepo: notificationRepo,
		now:              time.Now,
	}
}

// Reconcile loads current inventory and notifications, appends the missing
// low-stock and expiry alerts, and returns the full notification set:
// existing notifications unchanged and first, new ones after.
func (s *alertService) Reconcile(ctx context.Context) ([]*domain.Notification, error) {
	medicines, err := s.medicineRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load medicines for reconciliation: %w", err)
	}

	existing, err := s.notificationRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load notifications for reconciliation: %w", err)
	}

	missing := MissingAlerts(medicines, existing, s.now())

	if err := s.notificationRepo.Append(ctx, missing); err != nil {
		return nil, fmt.Errorf("failed to append alerts: %w", err)
	}

	return append(existing, missing...), nil
}

// MissingAlerts computes the alerts required by the current inventory state
// that do not yet exist. Deduplication keys on the (kind, medicine id) pair
// carried by each alert, so repeated evaluation over unchanged inventory
// produces nothing. All low-stock alerts come first in medicine order,
// followed by all expiry alerts.
func MissingAlerts(medicines []*domain.Medicine, existing []*domain.Notification, now time.Time) []*domain.Notification {
	raised := make(map[string]bool, len(existing))
	for _, notification := range existing {
		if notification.Kind != "" {
			raised[alertKey(notification.Kind, notification.MedicineID)] = true
		}
	}

	missing := []*domain.Notification{}

	for _, medicine := range medicines {
		if !medicine.IsLowStock() {
			continue
		}
		if raised[alertKey(domain.AlertKindLowStock, medicine.ID)] {
			continue
		}

		missing = append(missing, &domain.Notification{
			ID:    uuid.New(),
			Title: "Low Stock Alert",
			Message: fmt.Sprintf("%s is running low. Current stock: %d, Minimum required: %d",
				medicine.Name, medicine.Quantity, medicine.MinQuantity),
			Type:       domain.NotificationWarning,
			Kind:       domain.AlertKindLowStock,
			MedicineID: medicine.ID,
			IsRead:     false,
			CreatedAt:  now,
		})
	}

	for _, medicine := range medicines {
		days := medicine.DaysUntilExpiry(now)
		// Already-expired stock is deliberately out of scope for this rule;
		// only upcoming expiries within the window alert.
		if days <= 0 || days > expiryAlertWindowDays {
			continue
		}
		if raised[alertKey(domain.AlertKindExpiry, medicine.ID)] {
			continue
		}

		missing = append(missing, &domain.Notification{
			ID:    uuid.New(),
			Title: "Expiry Alert",
			Message: fmt.Sprintf("%s will expire in %d days (%s). Current stock: %d",
				medicine.Name, days, medicine.ExpiryDate.Format("2006-01-02"), medicine.Quantity),
			Type:       domain.NotificationError,
			Kind:       domain.AlertKindExpiry,
			MedicineID: medicine.ID,
			IsRead:     false,
			CreatedAt:  now,
		})
	}

	return missing
}

func alertKey(kind string, medicineID uuid.UUID) string {
	return kind + ":" + medicineID.String()
}
