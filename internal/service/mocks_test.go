package service

import (
	"context"

	"clinic-pos/internal/domain"
	"clinic-pos/internal/repository"

	"github.com/google/uuid"
)

// Mock repositories for testing

type mockMedicineRepository struct {
	medicines map[uuid.UUID]*domain.Medicine
	order     []uuid.UUID
}

func newMockMedicineRepository() *mockMedicineRepository {
	return &mockMedicineRepository{
		medicines: make(map[uuid.UUID]*domain.Medicine),
	}
}

func (m *mockMedicineRepository) Create(ctx context.Context, medicine *domain.Medicine) error {
	m.medicines[medicine.ID] = medicine
	m.order = append(m.order, medicine.ID)
	return nil
}

func (m *mockMedicineRepository) Update(ctx context.Context, medicine *domain.Medicine) error {
	if _, exists := m.medicines[medicine.ID]; !exists {
		return repository.ErrMedicineNotFound
	}
	m.medicines[medicine.ID] = medicine
	return nil
}

func (m *mockMedicineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, exists := m.medicines[id]; !exists {
		return repository.ErrMedicineNotFound
	}
	delete(m.medicines, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *mockMedicineRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Medicine, error) {
	medicine, exists := m.medicines[id]
	if !exists {
		return nil, repository.ErrMedicineNotFound
	}
	copied := *medicine
	return &copied, nil
}

func (m *mockMedicineRepository) List(ctx context.Context) ([]*domain.Medicine, error) {
	medicines := make([]*domain.Medicine, 0, len(m.order))
	for _, id := range m.order {
		copied := *m.medicines[id]
		medicines = append(medicines, &copied)
	}
	return medicines, nil
}

func (m *mockMedicineRepository) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	medicine, exists := m.medicines[id]
	if !exists {
		return 0, repository.ErrMedicineNotFound
	}
	if medicine.Quantity+delta < 0 {
		return 0, repository.ErrInsufficientStock
	}
	medicine.Quantity += delta
	return medicine.Quantity, nil
}

type mockCustomerRepository struct {
	customers map[uuid.UUID]*domain.Customer
}

func newMockCustomerRepository() *mockCustomerRepository {
	return &mockCustomerRepository{
		customers: make(map[uuid.UUID]*domain.Customer),
	}
}

func (m *mockCustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	m.customers[customer.ID] = customer
	return nil
}

func (m *mockCustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	if _, exists := m.customers[customer.ID]; !exists {
		return repository.ErrCustomerNotFound
	}
	m.customers[customer.ID] = customer
	return nil
}

func (m *mockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, exists := m.customers[id]; !exists {
		return repository.ErrCustomerNotFound
	}
	delete(m.customers, id)
	return nil
}

func (m *mockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	customer, exists := m.customers[id]
	if !exists {
		return nil, repository.ErrCustomerNotFound
	}
	return customer, nil
}

func (m *mockCustomerRepository) List(ctx context.Context) ([]*domain.Customer, error) {
	customers := make([]*domain.Customer, 0, len(m.customers))
	for _, customer := range m.customers {
		customers = append(customers, customer)
	}
	return customers, nil
}

// mockSaleRepository shares the medicine mock so stock decrements behave like
// the SQL transaction: all guards checked, all applied or none.
type mockSaleRepository struct {
	medicineRepo *mockMedicineRepository
	sales        []*domain.Sale
}

func newMockSaleRepository(medicineRepo *mockMedicineRepository) *mockSaleRepository {
	return &mockSaleRepository{medicineRepo: medicineRepo}
}

func (m *mockSaleRepository) CreateWithStockDecrements(ctx context.Context, sale *domain.Sale, decrements []repository.StockDecrement) error {
	for _, d := range decrements {
		medicine, exists := m.medicineRepo.medicines[d.MedicineID]
		if !exists || medicine.Quantity < d.Quantity {
			return repository.ErrInsufficientStock
		}
	}
	for _, d := range decrements {
		m.medicineRepo.medicines[d.MedicineID].Quantity -= d.Quantity
	}
	m.sales = append(m.sales, sale)
	return nil
}

func (m *mockSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error) {
	for _, sale := range m.sales {
		if sale.ID == id {
			return sale, nil
		}
	}
	return nil, repository.ErrSaleNotFound
}

func (m *mockSaleRepository) List(ctx context.Context, limit int) ([]*domain.Sale, error) {
	sales := make([]*domain.Sale, 0, len(m.sales))
	for i := len(m.sales) - 1; i >= 0 && len(sales) < limit; i-- {
		sales = append(sales, m.sales[i])
	}
	return sales, nil
}

type mockNotificationRepository struct {
	notifications []*domain.Notification
}

func newMockNotificationRepository() *mockNotificationRepository {
	return &mockNotificationRepository{}
}

func (m *mockNotificationRepository) List(ctx context.Context) ([]*domain.Notification, error) {
	notifications := make([]*domain.Notification, len(m.notifications))
	copy(notifications, m.notifications)
	return notifications, nil
}

func (m *mockNotificationRepository) Append(ctx context.Context, notifications []*domain.Notification) error {
	m.notifications = append(m.notifications, notifications...)
	return nil
}

func (m *mockNotificationRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	for _, notification := range m.notifications {
		if notification.ID == id {
			notification.IsRead = true
			return nil
		}
	}
	return repository.ErrNotificationNotFound
}

func (m *mockNotificationRepository) MarkAllRead(ctx context.Context) error {
	for _, notification := range m.notifications {
		notification.IsRead = true
	}
	return nil
}

func (m *mockNotificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	for i, notification := range m.notifications {
		if notification.ID == id {
			m.notifications = append(m.notifications[:i], m.notifications[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotificationNotFound
}
