package service

import (
	"context"
	"fmt"
	"time"

	"clinic-pos/internal/domain"
	"clinic-pos/internal/repository"

	"github.com/google/uuid"
)

const (
	DefaultPaymentMethod = "Cash"
	SaleStatusCompleted  = "Completed"
)

// SaleItemInput is one requested line of a candidate sale. Price overrides the
// catalog selling price when set.
type SaleItemInput struct {
	MedicineID uuid.UUID
	Quantity   int
	Price      *float64
}

// CreateSaleInput is a fully explicit candidate sale: the tax rate and
// consultation charge are passed in by the caller rather than read from any
// ambient settings state.
type CreateSaleInput struct {
	CustomerID         uuid.UUID
	Items              []SaleItemInput
	TaxRate            float64
	ConsultationCharge float64
	PaymentMethod      string
}

// SaleService validates candidate sales against current inventory and commits
// the stock decrements together with the sale record as one atomic unit.
type SaleService interface {
	CreateSale(ctx context.Context, input CreateSaleInput) (*domain.Sale, error)
	GetSale(ctx context.Context, id uuid.UUID) (*domain.Sale, error)
	ListSales(ctx context.Context, limit int) ([]*domain.Sale, error)
}

type saleService struct {
	saleRepo     repository.SaleRepository
	medicineRepo repository.MedicineRepository
	customerRepo repository.CustomerRepository
}

// NewSaleService creates a new instance of SaleService
func NewSaleService(
	saleRepo repository.SaleRepository,
	medicineRepo repository.MedicineRepository,
	customerRepo repository.CustomerRepository,
) SaleService {
	return &saleService{
		saleRepo:     saleRepo,
		medicineRepo: medicineRepo,
		customerRepo: customerRepo,
	}
}

// CreateSale runs the full sale transaction: validate everything first, then
// commit stock decrements and the sale record in a single transaction. On any
// error no stock changes and no sale is recorded.
func (s *saleService) CreateSale(ctx context.Context, input CreateSaleInput) (*domain.Sale, error) {
	if len(input.Items) == 0 {
		return nil, ErrEmptySale
	}

	for _, item := range input.Items {
		if item.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
	}

	customer, err := s.customerRepo.FindByID(ctx, input.CustomerID)
	if err != nil {
		if err == repository.ErrCustomerNotFound {
			return nil, ErrUnknownCustomer
		}
		return nil, fmt.Errorf("failed to resolve customer: %w", err)
	}

	// Aggregate the requested quantity per distinct medicine. A sale may list
	// the same medicine on several lines; validating each line independently
	// would let the combined request overcommit the stock.
	required := make(map[uuid.UUID]int)
	order := []uuid.UUID{}
	for _, item := range input.Items {
		if _, seen := required[item.MedicineID]; !seen {
			order = append(order, item.MedicineID)
		}
		required[item.MedicineID] += item.Quantity
	}

	medicines := make(map[uuid.UUID]*domain.Medicine, len(order))
	for _, medicineID := range order {
		medicine, err := s.medicineRepo.FindByID(ctx, medicineID)
		if err != nil {
			if err == repository.ErrMedicineNotFound {
				return nil, fmt.Errorf("%w: %s", ErrUnknownMedicine, medicineID)
			}
			return nil, fmt.Errorf("failed to resolve medicine: %w", err)
		}
		medicines[medicineID] = medicine

		if medicine.Quantity < required[medicineID] {
			return nil, &InsufficientStockError{
				MedicineID:   medicine.ID,
				MedicineName: medicine.Name,
				Requested:    required[medicineID],
				Available:    medicine.Quantity,
			}
		}
	}

	// Validation passed; build the immutable sale record with per-line
	// snapshots of medicine name and unit price.
	items := make([]domain.SaleItem, 0, len(input.Items))
	lines := make([]LineItem, 0, len(input.Items))
	for _, item := range input.Items {
		medicine := medicines[item.MedicineID]

		price := medicine.SellingPrice
		if item.Price != nil {
			price = *item.Price
		}

		items = append(items, domain.SaleItem{
			MedicineID:   medicine.ID,
			MedicineName: medicine.Name,
			Quantity:     item.Quantity,
			Price:        price,
			Total:        RoundMoney(float64(item.Quantity) * price),
		})
		lines = append(lines, LineItem{Quantity: item.Quantity, UnitPrice: price})
	}

	totals := ComputeTotals(lines, input.TaxRate, input.ConsultationCharge)

	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = DefaultPaymentMethod
	}

	sale := &domain.Sale{
		ID:                 uuid.New(),
		CustomerID:         customer.ID,
		CustomerName:       customer.Name,
		Items:              items,
		Subtotal:           RoundMoney(totals.Subtotal),
		Tax:                RoundMoney(totals.Tax),
		ConsultationCharge: RoundMoney(totals.ConsultationCharge),
		TotalAmount:        RoundMoney(totals.Total),
		PaymentMethod:      paymentMethod,
		Status:             SaleStatusCompleted,
		CreatedAt:          time.Now(),
	}

	decrements := make([]repository.StockDecrement, 0, len(order))
	for _, medicineID := range order {
		decrements = append(decrements, repository.StockDecrement{
			MedicineID: medicineID,
			Quantity:   required[medicineID],
		})
	}

	if err := s.saleRepo.CreateWithStockDecrements(ctx, sale, decrements); err != nil {
		if err == repository.ErrInsufficientStock {
			// Stock moved between validation and commit; the transaction was
			// rolled back so nothing changed.
			return nil, s.insufficientStockDetail(ctx, order, required)
		}
		return nil, fmt.Errorf("failed to commit sale: %w", err)
	}

	return sale, nil
}

// insufficientStockDetail re-reads stock to attach medicine context to a
// commit-time shortfall.
func (s *saleService) insufficientStockDetail(ctx context.Context, order []uuid.UUID, required map[uuid.UUID]int) error {
	for _, medicineID := range order {
		medicine, err := s.medicineRepo.FindByID(ctx, medicineID)
		if err != nil {
			continue
		}
		if medicine.Quantity < required[medicineID] {
			return &InsufficientStockError{
				MedicineID:   medicine.ID,
				MedicineName: medicine.Name,
				Requested:    required[medicineID],
				Available:    medicine.Quantity,
			}
		}
	}
	return repository.ErrInsufficientStock
}

// GetSale retrieves a single committed sale
func (s *saleService) GetSale(ctx context.Context, id uuid.UUID) (*domain.Sale, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}
	return sale, nil
}

// ListSales retrieves the most recent sales
func (s *saleService) ListSales(ctx context.Context, limit int) ([]*domain.Sale, error) {
	if limit <= 0 {
		limit = 50
	}

	sales, err := s.saleRepo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return sales, nil
}
