package transport

import (
	"errors"
	"net/http"
	"strconv"

	"clinic-pos/internal/middleware"
	"clinic-pos/internal/repository"
	"clinic-pos/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SaleItemRequest represents one requested line of a sale
type SaleItemRequest struct {
	MedicineID string   `json:"medicine_id" validate:"required,uuid"`
	Quantity   int      `json:"quantity" validate:"required,gte=1"`
	Price      *float64 `json:"price" validate:"omitempty,gte=0"`
}

// CreateSaleRequest represents the sale creation payload. Tax rate and
// consultation charge default to the clinic settings when omitted.
type CreateSaleRequest struct {
	CustomerID         string            `json:"customer_id" validate:"required,uuid"`
	Items              []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
	TaxRate            *float64          `json:"tax_rate" validate:"omitempty,gte=0"`
	ConsultationCharge *float64          `json:"consultation_charge" validate:"omitempty,gte=0"`
	PaymentMethod      string            `json:"payment_method"`
}

// SaleHandler handles HTTP requests for sale transactions
type SaleHandler struct {
	saleService     service.SaleService
	settingsService service.SettingsService
	logger          *zap.Logger
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService service.SaleService, settingsService service.SettingsService, logger *zap.Logger) *SaleHandler {
	return &SaleHandler{
		saleService:     saleService,
		settingsService: settingsService,
		logger:          logger,
	}
}

// RegisterRoutes registers all sale routes
func (h *SaleHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/sales", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
	})
}

// Create handles committing a new sale transaction
func (h *SaleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSaleRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Sale validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid customer_id")
		return
	}

	items := make([]service.SaleItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		medicineID, err := uuid.Parse(item.MedicineID)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid medicine_id")
			return
		}
		items = append(items, service.SaleItemInput{
			MedicineID: medicineID,
			Quantity:   item.Quantity,
			Price:      item.Price,
		})
	}

	// Charges omitted from the request fall back to the clinic settings.
	settings, err := h.settingsService.Get(r.Context())
	if err != nil {
		h.logger.Error("Failed to load settings for sale", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create sale")
		return
	}

	taxRate := settings.TaxRate
	if req.TaxRate != nil {
		taxRate = *req.TaxRate
	}
	consultationCharge := settings.ConsultationCharge
	if req.ConsultationCharge != nil {
		consultationCharge = *req.ConsultationCharge
	}

	sale, err := h.saleService.CreateSale(r.Context(), service.CreateSaleInput{
		CustomerID:         customerID,
		Items:              items,
		TaxRate:            taxRate,
		ConsultationCharge: consultationCharge,
		PaymentMethod:      req.PaymentMethod,
	})
	if err != nil {
		h.respondSaleError(w, err)
		return
	}

	h.logger.Info("Sale committed",
		zap.String("sale_id", sale.ID.String()),
		zap.String("customer_id", sale.CustomerID.String()),
		zap.Float64("total", sale.TotalAmount),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, sale)
}

// Get handles retrieving a single committed sale
func (h *SaleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	sale, err := h.saleService.GetSale(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "sale not found")
			return
		}
		h.logger.Error("Failed to get sale", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get sale")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, sale)
}

// List handles listing the most recent sales
func (h *SaleHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			middleware.RespondWithError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	sales, err := h.saleService.ListSales(r.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to list sales", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list sales")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, sales)
}

// respondSaleError maps sale creation failures onto HTTP statuses
func (h *SaleHandler) respondSaleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEmptySale):
		middleware.RespondWithError(w, http.StatusBadRequest, "sale must contain at least one item")
	case errors.Is(err, service.ErrInvalidQuantity):
		middleware.RespondWithError(w, http.StatusBadRequest, "item quantities must be at least 1")
	case errors.Is(err, service.ErrUnknownCustomer):
		middleware.RespondWithError(w, http.StatusNotFound, "customer not found")
	case errors.Is(err, service.ErrUnknownMedicine):
		middleware.RespondWithError(w, http.StatusNotFound, "medicine not found")
	default:
		if shortfall, ok := service.IsInsufficientStock(err); ok {
			respondInsufficientStock(w, shortfall)
			return
		}
		h.logger.Error("Failed to create sale", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create sale")
	}
}
