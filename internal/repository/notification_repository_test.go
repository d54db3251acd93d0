package repository

import (
	"context"
	"testing"
	"time"

	"clinic-pos/internal/domain"

	"github.com/google/uuid"
)

func insertTestNotification(t *testing.T, repo NotificationRepository, title, kind string, medicineID uuid.UUID, createdAt time.Time) *domain.Notification {
	t.Helper()
	notification := &domain.Notification{
		ID:         uuid.New(),
		Title:      title,
		Message:    title + " message",
		Type:       domain.NotificationWarning,
		Kind:       kind,
		MedicineID: medicineID,
		CreatedAt:  createdAt,
	}
	if err := repo.Append(context.Background(), []*domain.Notification{notification}); err != nil {
		t.Fatalf("failed to append notification: %v", err)
	}
	return notification
}

func TestNotificationList_PreservesCreationOrder(t *testing.T) {
	resetTables(t)
	repo := NewNotificationRepository(testDB)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	first := insertTestNotification(t, repo, "Low Stock Alert", domain.AlertKindLowStock, uuid.New(), base)
	second := insertTestNotification(t, repo, "Expiry Alert", domain.AlertKindExpiry, uuid.New(), base.Add(time.Minute))
	third := insertTestNotification(t, repo, "Low Stock Alert", domain.AlertKindLowStock, uuid.New(), base.Add(2*time.Minute))

	notifications, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(notifications) != 3 {
		t.Fatalf("got %d notifications, want 3", len(notifications))
	}
	wantOrder := []uuid.UUID{first.ID, second.ID, third.ID}
	for i, want := range wantOrder {
		if notifications[i].ID != want {
			t.Errorf("notification %d = %s, want %s", i, notifications[i].ID, want)
		}
	}
}

func TestNotificationAppend_EmptyIsNoOp(t *testing.T) {
	resetTables(t)
	repo := NewNotificationRepository(testDB)
	ctx := context.Background()

	if err := repo.Append(ctx, nil); err != nil {
		t.Fatalf("Append(nil) failed: %v", err)
	}

	notifications, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(notifications) != 0 {
		t.Errorf("got %d notifications, want 0", len(notifications))
	}
}

func TestNotificationAppend_DuplicateAlertKeyRejected(t *testing.T) {
	resetTables(t)
	repo := NewNotificationRepository(testDB)
	ctx := context.Background()

	medicineID := uuid.New()
	insertTestNotification(t, repo, "Low Stock Alert", domain.AlertKindLowStock, medicineID, time.Now())

	// The partial unique index backs up the reconciliation dedup: a second
	// alert with the same (kind, medicine) pair cannot land.
	err := repo.Append(ctx, []*domain.Notification{{
		ID:         uuid.New(),
		Title:      "Low Stock Alert",
		Message:    "duplicate",
		Type:       domain.NotificationWarning,
		Kind:       domain.AlertKindLowStock,
		MedicineID: medicineID,
		CreatedAt:  time.Now(),
	}})
	if err == nil {
		t.Error("duplicate (kind, medicine) alert was accepted")
	}

	// A different kind for the same medicine is fine.
	insertTestNotification(t, repo, "Expiry Alert", domain.AlertKindExpiry, medicineID, time.Now())
}

func TestNotificationMarkReadAndDelete(t *testing.T) {
	resetTables(t)
	repo := NewNotificationRepository(testDB)
	ctx := context.Background()

	notification := insertTestNotification(t, repo, "Low Stock Alert", domain.AlertKindLowStock, uuid.New(), time.Now())

	if err := repo.MarkRead(ctx, notification.ID); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}

	notifications, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if !notifications[0].IsRead {
		t.Error("notification not marked read")
	}

	if err := repo.MarkRead(ctx, uuid.New()); err != ErrNotificationNotFound {
		t.Errorf("expected ErrNotificationNotFound, got %v", err)
	}

	if err := repo.Delete(ctx, notification.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := repo.Delete(ctx, notification.ID); err != ErrNotificationNotFound {
		t.Errorf("expected ErrNotificationNotFound after delete, got %v", err)
	}
}
