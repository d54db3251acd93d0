package service

import (
	"context"
	"fmt"
	"time"

	"clinic-pos/internal/domain"
	"clinic-pos/internal/repository"

	"github.com/google/uuid"
)

// MedicineInput carries the editable fields of a medicine
type MedicineInput struct {
	Name          string
	Category      string
	Manufacturer  string
	BatchNumber   string
	ExpiryDate    time.Time
	Quantity      int
	MinQuantity   int
	PurchasePrice float64
	SellingPrice  float64
	Description   string
}

// InventoryService is the inventory ledger: all reads and mutations of
// medicine stock go through it, and it upholds the non-negative quantity
// invariant.
type InventoryService interface {
	AddMedicine(ctx context.Context, input MedicineInput) (*domain.Medicine, error)
	UpdateMedicine(ctx context.Context, id uuid.UUID, input MedicineInput) (*domain.Medicine, error)
	DeleteMedicine(ctx context.Context, id uuid.UUID) error
	GetMedicine(ctx context.Context, id uuid.UUID) (*domain.Medicine, error)
	ListMedicines(ctx context.Context) ([]*domain.Medicine, error)
	GetStock(ctx context.Context, id uuid.UUID) (int, error)
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) (int, error)
}

type inventoryService struct {
	medicineRepo repository.MedicineRepository
}

// NewInventoryService creates a new instance of InventoryService
func NewInventoryService(medicineRepo repository.MedicineRepository) InventoryService {
	return &inventoryService{medicineRepo: medicineRepo}
}

// AddMedicine registers a new medicine with a fresh id and creation timestamp
func (s *inventoryService) AddMedicine(ctx context.Context, input MedicineInput) (*domain.Medicine, error) {
	if input.Quantity < 0 || input.MinQuantity < 0 {
		return nil, fmt.Errorf("quantity and minimum quantity must not be negative")
	}

	medicine := &domain.Medicine{
		ID:            uuid.New(),
		Name:          input.Name,
		Category:      input.Category,
		Manufacturer:  input.Manufacturer,
		BatchNumber:   input.BatchNumber,
		ExpiryDate:    input.ExpiryDate,
		Quantity:      input.Quantity,
		MinQuantity:   input.MinQuantity,
		PurchasePrice: input.PurchasePrice,
		SellingPrice:  input.SellingPrice,
		Description:   input.Description,
		CreatedAt:     time.Now(),
	}

	if err := s.medicineRepo.Create(ctx, medicine); err != nil {
		return nil, fmt.Errorf("failed to add medicine: %w", err)
	}

	return medicine, nil
}

// UpdateMedicine replaces the editable fields of an existing medicine
func (s *inventoryService) UpdateMedicine(ctx context.Context, id uuid.UUID, input MedicineInput) (*domain.Medicine, error) {
	if input.Quantity < 0 || input.MinQuantity < 0 {
		return nil, fmt.Errorf("quantity and minimum quantity must not be negative")
	}

	existing, err := s.medicineRepo.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrMedicineNotFound {
			return nil, ErrUnknownMedicine
		}
		return nil, fmt.Errorf("failed to load medicine: %w", err)
	}

	existing.Name = input.Name
	existing.Category = input.Category
	existing.Manufacturer = input.Manufacturer
	existing.BatchNumber = input.BatchNumber
	existing.ExpiryDate = input.ExpiryDate
	existing.Quantity = input.Quantity
	existing.MinQuantity = input.MinQuantity
	existing.PurchasePrice = input.PurchasePrice
	existing.SellingPrice = input.SellingPrice
	existing.Description = input.Description

	if err := s.medicineRepo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update medicine: %w", err)
	}

	return existing, nil
}

// DeleteMedicine removes a medicine from the catalog
func (s *inventoryService) DeleteMedicine(ctx context.Context, id uuid.UUID) error {
	if err := s.medicineRepo.Delete(ctx, id); err != nil {
		if err == repository.ErrMedicineNotFound {
			return ErrUnknownMedicine
		}
		return fmt.Errorf("failed to delete medicine: %w", err)
	}
	return nil
}

// GetMedicine retrieves a single medicine
func (s *inventoryService) GetMedicine(ctx context.Context, id uuid.UUID) (*domain.Medicine, error) {
	medicine, err := s.medicineRepo.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrMedicineNotFound {
			return nil, ErrUnknownMedicine
		}
		return nil, fmt.Errorf("failed to get medicine: %w", err)
	}
	return medicine, nil
}

// ListMedicines retrieves the full catalog
func (s *inventoryService) ListMedicines(ctx context.Context) ([]*domain.Medicine, error) {
	medicines, err := s.medicineRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list medicines: %w", err)
	}
	return medicines, nil
}

// GetStock returns the current stock quantity of a medicine
func (s *inventoryService) GetStock(ctx context.Context, id uuid.UUID) (int, error) {
	medicine, err := s.medicineRepo.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrMedicineNotFound {
			return 0, ErrUnknownMedicine
		}
		return 0, fmt.Errorf("failed to get stock: %w", err)
	}
	return medicine.Quantity, nil
}

// AdjustStock applies a signed delta to a medicine's stock. It fails with
// InsufficientStockError when the delta would make the quantity negative; the
// delta is applied in full or not at all.
func (s *inventoryService) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	newQuantity, err := s.medicineRepo.AdjustStock(ctx, id, delta)
	if err != nil {
		if err == repository.ErrMedicineNotFound {
			return 0, ErrUnknownMedicine
		}
		if err == repository.ErrInsufficientStock {
			medicine, findErr := s.medicineRepo.FindByID(ctx, id)
			if findErr != nil {
				return 0, fmt.Errorf("failed to adjust stock: %w", err)
			}
			return 0, &InsufficientStockError{
				MedicineID:   medicine.ID,
				MedicineName: medicine.Name,
				Requested:    -delta,
				Available:    medicine.Quantity,
			}
		}
		return 0, fmt.Errorf("failed to adjust stock: %w", err)
	}

	return newQuantity, nil
}
