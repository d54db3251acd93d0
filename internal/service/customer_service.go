package service

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"clinic-pos/internal/domain"
	"clinic-pos/internal/repository"

	"github.com/google/uuid"
)

// CustomerInput carries the editable fields of a customer record
type CustomerInput struct {
	Name             string
	Phone            string
	Email            string
	Address          string
	DateOfBirth      string
	Gender           string
	EmergencyContact string
	MedicalHistory   string
	Allergies        string
}

// CustomerService manages patient records. Patient IDs are generated here;
// the rest of the system treats them as opaque.
type CustomerService interface {
	AddCustomer(ctx context.Context, input CustomerInput) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, id uuid.UUID, input CustomerInput) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
	GetCustomer(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]*domain.Customer, error)
}

type customerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new instance of CustomerService
func NewCustomerService(customerRepo repository.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

// AddCustomer registers a new customer with a fresh id and a generated,
// human-readable patient ID.
func (s *customerService) AddCustomer(ctx context.Context, input CustomerInput) (*domain.Customer, error) {
	customer := &domain.Customer{
		ID:               uuid.New(),
		Name:             input.Name,
		Phone:            input.Phone,
		Email:            input.Email,
		Address:          input.Address,
		DateOfBirth:      input.DateOfBirth,
		Gender:           input.Gender,
		PatientID:        generatePatientID(),
		EmergencyContact: input.EmergencyContact,
		MedicalHistory:   input.MedicalHistory,
		Allergies:        input.Allergies,
		CreatedAt:        time.Now(),
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to add customer: %w", err)
	}

	return customer, nil
}

// UpdateCustomer replaces the editable fields of an existing customer.
// The patient ID is assigned once at registration and never changes.
func (s *customerService) UpdateCustomer(ctx context.Context, id uuid.UUID, input CustomerInput) (*domain.Customer, error) {
	existing, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrCustomerNotFound {
			return nil, ErrUnknownCustomer
		}
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}

	existing.Name = input.Name
	existing.Phone = input.Phone
	existing.Email = input.Email
	existing.Address = input.Address
	existing.DateOfBirth = input.DateOfBirth
	existing.Gender = input.Gender
	existing.EmergencyContact = input.EmergencyContact
	existing.MedicalHistory = input.MedicalHistory
	existing.Allergies = input.Allergies

	if err := s.customerRepo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	return existing, nil
}

// DeleteCustomer removes a customer record
func (s *customerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		if err == repository.ErrCustomerNotFound {
			return ErrUnknownCustomer
		}
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}

// GetCustomer retrieves a single customer
func (s *customerService) GetCustomer(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrCustomerNotFound {
			return nil, ErrUnknownCustomer
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return customer, nil
}

// ListCustomers retrieves all customers
func (s *customerService) ListCustomers(ctx context.Context) ([]*domain.Customer, error) {
	customers, err := s.customerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

// generatePatientID produces a short human-readable patient identifier:
// a fixed prefix, the trailing digits of the current timestamp, and two
// random digits.
func generatePatientID() string {
	timestamp := strconv.FormatInt(time.Now().UnixMilli(), 10)
	if len(timestamp) > 6 {
		timestamp = timestamp[len(timestamp)-6:]
	}
	return fmt.Sprintf("GN%s%02d", timestamp, rand.Intn(100))
}
