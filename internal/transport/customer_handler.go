package transport

import (
	"net/http"

	"clinic-pos/internal/middleware"
	"clinic-pos/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CustomerRequest represents the create/update customer payload
type CustomerRequest struct {
	Name             string `json:"name" validate:"required"`
	Phone            string `json:"phone" validate:"required"`
	Email            string `json:"email" validate:"omitempty,email"`
	Address          string `json:"address"`
	DateOfBirth      string `json:"date_of_birth"`
	Gender           string `json:"gender"`
	EmergencyContact string `json:"emergency_contact"`
	MedicalHistory   string `json:"medical_history"`
	Allergies        string `json:"allergies"`
}

// CustomerHandler handles HTTP requests for patient records
type CustomerHandler struct {
	customerService service.CustomerService
	logger          *zap.Logger
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService service.CustomerService, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		logger:          logger,
	}
}

// RegisterRoutes registers all customer routes
func (h *CustomerHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/customers", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// List handles listing all customers
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customerService.ListCustomers(r.Context())
	if err != nil {
		h.logger.Error("Failed to list customers", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list customers")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, customers)
}

// Create handles registering a new customer
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeCustomerInput(w, r)
	if !ok {
		return
	}

	customer, err := h.customerService.AddCustomer(r.Context(), *input)
	if err != nil {
		h.logger.Error("Failed to add customer", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add customer")
		return
	}

	h.logger.Info("Customer added",
		zap.String("customer_id", customer.ID.String()),
		zap.String("patient_id", customer.PatientID),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, customer)
}

// Get handles retrieving a single customer
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	customer, err := h.customerService.GetCustomer(r.Context(), id)
	if err != nil {
		if err == service.ErrUnknownCustomer {
			middleware.RespondWithError(w, http.StatusNotFound, "customer not found")
			return
		}
		h.logger.Error("Failed to get customer", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get customer")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, customer)
}

// Update handles replacing the editable fields of a customer
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	input, ok := h.decodeCustomerInput(w, r)
	if !ok {
		return
	}

	customer, err := h.customerService.UpdateCustomer(r.Context(), id, *input)
	if err != nil {
		if err == service.ErrUnknownCustomer {
			middleware.RespondWithError(w, http.StatusNotFound, "customer not found")
			return
		}
		h.logger.Error("Failed to update customer", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update customer")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, customer)
}

// Delete handles removing a customer record
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := h.customerService.DeleteCustomer(r.Context(), id); err != nil {
		if err == service.ErrUnknownCustomer {
			middleware.RespondWithError(w, http.StatusNotFound, "customer not found")
			return
		}
		h.logger.Error("Failed to delete customer", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete customer")
		return
	}

	h.logger.Info("Customer deleted", zap.String("customer_id", id.String()))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "customer deleted"})
}

func (h *CustomerHandler) decodeCustomerInput(w http.ResponseWriter, r *http.Request) (*service.CustomerInput, bool) {
	var req CustomerRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Customer validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return nil, false
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}

	return &service.CustomerInput{
		Name:             req.Name,
		Phone:            req.Phone,
		Email:            req.Email,
		Address:          req.Address,
		DateOfBirth:      req.DateOfBirth,
		Gender:           req.Gender,
		EmergencyContact: req.EmergencyContact,
		MedicalHistory:   req.MedicalHistory,
		Allergies:        req.Allergies,
	}, true
}
