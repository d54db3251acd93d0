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
	ErrSaleNotFound = errors.New("sale not found")
)

// StockDecrement is the combined quantity a committed sale removes from one
// medicine. Lines referencing the same medicine are aggregated into a single
// decrement before they reach the repository.
type StockDecrement struct {
	MedicineID uuid.UUID
	Quantity   int
}

// SaleRepository defines the interface for sale data access
type SaleRepository interface {
	// CreateWithStockDecrements inserts the sale and applies all stock
	// decrements in one transaction. If any medicine has insufficient stock
	// the whole commit is rolled back and nothing changes.
	CreateWithStockDecrements(ctx context.Context, sale *domain.Sale, decrements []StockDecrement) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error)
	List(ctx context.Context, limit int) ([]*domain.Sale, error)
}

type saleRepository struct {
	db *sql.DB
}

// NewSaleRepository creates a new instance of SaleRepository
func NewSaleRepository(db *sql.DB) SaleRepository {
	return &saleRepository{db: db}
}

// CreateWithStockDecrements commits the sale as a single atomic unit: every
// stock decrement and the sale record itself either all land or none do.
func (r *saleRepository) CreateWithStockDecrements(ctx context.Context, sale *domain.Sale, decrements []StockDecrement) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin sale transaction: %w", err)
	}
	defer tx.Rollback()

	decrementQuery := `
		UPDATE medicines
		SET quantity = quantity - $2
		WHERE id = $1 AND quantity >= $2
	`

	for _, d := range decrements {
		result, err := tx.ExecContext(ctx, decrementQuery, d.MedicineID, d.Quantity)
		if err != nil {
			return fmt.Errorf("failed to decrement stock: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}

		if rowsAffected == 0 {
			return ErrInsufficientStock
		}
	}

	saleQuery := `
		INSERT INTO sales (id, customer_id, customer_name, subtotal, tax,
		    consultation_charge, total_amount, payment_method, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = tx.ExecContext(
		ctx,
		saleQuery,
		sale.ID,
		sale.CustomerID,
		sale.CustomerName,
		sale.Subtotal,
		sale.Tax,
		sale.ConsultationCharge,
		sale.TotalAmount,
		sale.PaymentMethod,
		sale.Status,
		sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create sale: %w", err)
	}

	itemQuery := `
		INSERT INTO sale_items (sale_id, medicine_id, medicine_name, quantity, price, total)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, item := range sale.Items {
		_, err = tx.ExecContext(
			ctx,
			itemQuery,
			sale.ID,
			item.MedicineID,
			item.MedicineName,
			item.Quantity,
			item.Price,
			item.Total,
		)
		if err != nil {
			return fmt.Errorf("failed to create sale item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit sale transaction: %w", err)
	}

	return nil
}

// FindByID retrieves a sale with its items using parameterized queries
func (r *saleRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error) {
	query := `
		SELECT id, customer_id, customer_name, subtotal, tax, consultation_charge,
		    total_amount, payment_method, status, created_at
		FROM sales
		WHERE id = $1
	`

	sale := &domain.Sale{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&sale.ID,
		&sale.CustomerID,
		&sale.CustomerName,
		&sale.Subtotal,
		&sale.Tax,
		&sale.ConsultationCharge,
		&sale.TotalAmount,
		&sale.PaymentMethod,
		&sale.Status,
		&sale.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("failed to find sale by ID: %w", err)
	}

	items, err := r.loadItems(ctx, sale.ID)
	if err != nil {
		return nil, err
	}
	sale.Items = items

	return sale, nil
}

// List retrieves the most recent sales with their items
func (r *saleRepository) List(ctx context.Context, limit int) ([]*domain.Sale, error) {
	query := `
		SELECT id, customer_id, customer_name, subtotal, tax, consultation_charge,
		    total_amount, payment_method, status, created_at
		FROM sales
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	defer rows.Close()

	sales := []*domain.Sale{}
	for rows.Next() {
		sale := &domain.Sale{}
		err := rows.Scan(
			&sale.ID,
			&sale.CustomerID,
			&sale.CustomerName,
			&sale.Subtotal,
			&sale.Tax,
			&sale.ConsultationCharge,
			&sale.TotalAmount,
			&sale.PaymentMethod,
			&sale.Status,
			&sale.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		sales = append(sales, sale)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sales: %w", err)
	}

	for _, sale := range sales {
		items, err := r.loadItems(ctx, sale.ID)
		if err != nil {
			return nil, err
		}
		sale.Items = items
	}

	return sales, nil
}

func (r *saleRepository) loadItems(ctx context.Context, saleID uuid.UUID) ([]domain.SaleItem, error) {
	query := `
		SELECT medicine_id, medicine_name, quantity, price, total
		FROM sale_items
		WHERE sale_id = $1
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sale items: %w", err)
	}
	defer rows.Close()

	items := []domain.SaleItem{}
	for rows.Next() {
		item := domain.SaleItem{}
		err := rows.Scan(
			&item.MedicineID,
			&item.MedicineName,
			&item.Quantity,
			&item.Price,
			&item.Total,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale item: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sale items: %w", err)
	}

	return items, nil
}
