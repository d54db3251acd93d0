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
	ErrMedicineNotFound = errors.New("medicine not found")
	// ErrInsufficientStock is returned when a stock adjustment would drive the
	// quantity below zero. The guard lives in the UPDATE itself so no partial
	// decrement can ever be observed.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// MedicineRepository defines the interface for medicine data access
type MedicineRepository interface {
	Create(ctx context.Context, medicine *domain.Medicine) error
	Update(ctx context.Context, medicine *domain.Medicine) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Medicine, error)
	List(ctx context.Context) ([]*domain.Medicine, error)
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) (int, error)
}

type medicineRepository struct {
	db *sql.DB
}

// NewMedicineRepository creates a new instance of MedicineRepository
func NewMedicineRepository(db *sql.DB) MedicineRepository {
	return &medicineRepository{db: db}
}

// Create inserts a new medicine into the database using parameterized queries
func (r *medicineRepository) Create(ctx context.Context, medicine *domain.Medicine) error {
	query := `
		INSERT INTO medicines (id, name, category, manufacturer, batch_number, expiry_date,
		    quantity, min_quantity, purchase_price, selling_price, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		medicine.ID,
		medicine.Name,
		medicine.Category,
		medicine.Manufacturer,
		medicine.BatchNumber,
		medicine.ExpiryDate,
		medicine.Quantity,
		medicine.MinQuantity,
		medicine.PurchasePrice,
		medicine.SellingPrice,
		medicine.Description,
		medicine.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create medicine: %w", err)
	}

	return nil
}

// Update updates an existing medicine in the database using parameterized queries
func (r *medicineRepository) Update(ctx context.Context, medicine *domain.Medicine) error {
	query := `
		UPDATE medicines
		SET name = $2, category = $3, manufacturer = $4, batch_number = $5,
		    expiry_date = $6, quantity = $7, min_quantity = $8,
		    purchase_price = $9, selling_price = $10, description = $11
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		medicine.ID,
		medicine.Name,
		medicine.Category,
		medicine.Manufacturer,
		medicine.BatchNumber,
		medicine.ExpiryDate,
		medicine.Quantity,
		medicine.MinQuantity,
		medicine.PurchasePrice,
		medicine.SellingPrice,
		medicine.Description,
	)

	if err != nil {
		return fmt.Errorf("failed to update medicine: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrMedicineNotFound
	}

	return nil
}

// Delete removes a medicine from the database using parameterized queries
func (r *medicineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM medicines WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete medicine: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrMedicineNotFound
	}

	return nil
}

// FindByID retrieves a medicine by ID using parameterized queries
func (r *medicineRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Medicine, error) {
	query := `
		SELECT id, name, category, manufacturer, batch_number, expiry_date,
		    quantity, min_quantity, purchase_price, selling_price, description, created_at
		FROM medicines
		WHERE id = $1
	`

	medicine := &domain.Medicine{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&medicine.ID,
		&medicine.Name,
		&medicine.Category,
		&medicine.Manufacturer,
		&medicine.BatchNumber,
		&medicine.ExpiryDate,
		&medicine.Quantity,
		&medicine.MinQuantity,
		&medicine.PurchasePrice,
		&medicine.SellingPrice,
		&medicine.Description,
		&medicine.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrMedicineNotFound
		}
		return nil, fmt.Errorf("failed to find medicine by ID: %w", err)
	}

	return medicine, nil
}

// List retrieves all medicines ordered by name
func (r *medicineRepository) List(ctx context.Context) ([]*domain.Medicine, error) {
	query := `
		SELECT id, name, category, manufacturer, batch_number, expiry_date,
		    quantity, min_quantity, purchase_price, selling_price, description, created_at
		FROM medicines
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list medicines: %w", err)
	}
	defer rows.Close()

	medicines := []*domain.Medicine{}
	for rows.Next() {
		medicine := &domain.Medicine{}
		err := rows.Scan(
			&medicine.ID,
			&medicine.Name,
			&medicine.Category,
			&medicine.Manufacturer,
			&medicine.BatchNumber,
			&medicine.ExpiryDate,
			&medicine.Quantity,
			&medicine.MinQuantity,
			&medicine.PurchasePrice,
			&medicine.SellingPrice,
			&medicine.Description,
			&medicine.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan medicine: %w", err)
		}
		medicines = append(medicines, medicine)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating medicines: %w", err)
	}

	return medicines, nil
}

// AdjustStock applies a signed delta to a medicine's quantity and returns the
// new quantity. The WHERE clause rejects any delta that would make the
// quantity negative, so the adjustment either applies in full or not at all.
func (r *medicineRepository) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	query := `
		UPDATE medicines
		SET quantity = quantity + $2
		WHERE id = $1 AND quantity + $2 >= 0
		RETURNING quantity
	`

	var newQuantity int
	err := r.db.QueryRowContext(ctx, query, id, delta).Scan(&newQuantity)
	if err != nil {
		if err == sql.ErrNoRows {
			// Either the medicine is unknown or the delta would overdraw it.
			if _, findErr := r.FindByID(ctx, id); findErr != nil {
				return 0, findErr
			}
			return 0, ErrInsufficientStock
		}
		return 0, fmt.Errorf("failed to adjust stock: %w", err)
	}

	return newQuantity, nil
}
