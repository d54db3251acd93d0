package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"clinic-pos/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
)

// NotificationRepository defines the interface for notification data access.
// Reconciliation only ever appends; read-flag updates and deletes come from
// explicit user actions.
type NotificationRepository interface {
	List(ctx context.Context) ([]*domain.Notification, error)
	Append(ctx context.Context, notifications []*domain.Notification) error
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type notificationRepository struct {
	db *sql.DB
}

// NewNotificationRepository creates a new instance of NotificationRepository
func NewNotificationRepository(db *sql.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// List retrieves all notifications in creation order
func (r *notificationRepository) List(ctx context.Context) ([]*domain.Notification, error) {
	query := `
		SELECT id, title, message, type, kind, medicine_id, is_read, created_at
		FROM notifications
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	notifications := []*domain.Notification{}
	for rows.Next() {
		notification := &domain.Notification{}
		var medicineID uuid.NullUUID
		err := rows.Scan(
			&notification.ID,
			&notification.Title,
			&notification.Message,
			&notification.Type,
			&notification.Kind,
			&medicineID,
			&notification.IsRead,
			&notification.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		if medicineID.Valid {
			notification.MedicineID = medicineID.UUID
		}
		notifications = append(notifications, notification)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}

	return notifications, nil
}

// Append inserts new notifications, leaving all existing rows untouched
func (r *notificationRepository) Append(ctx context.Context, notifications []*domain.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	query := `
		INSERT INTO notifications (id, title, message, type, kind, medicine_id, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin notification transaction: %w", err)
	}
	defer tx.Rollback()

	for _, notification := range notifications {
		medicineID := uuid.NullUUID{UUID: notification.MedicineID, Valid: notification.MedicineID != uuid.Nil}

		_, err := tx.ExecContext(
			ctx,
			query,
			notification.ID,
			notification.Title,
			notification.Message,
			notification.Type,
			notification.Kind,
			medicineID,
			notification.IsRead,
			notification.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to append notification: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit notification transaction: %w", err)
	}

	return nil
}

// MarkRead flags a single notification as read
func (r *notificationRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

// MarkAllRead flags every notification as read
func (r *notificationRepository) MarkAllRead(ctx context.Context) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE is_read = FALSE`

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to mark all notifications read: %w", err)
	}

	return nil
}

// Delete removes a notification
func (r *notificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM notifications WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotificationNotFound
	}

	return nil
}
