package transport

import (
	"net/http"
	"time"

	"clinic-pos/internal/middleware"
	"clinic-pos/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MedicineRequest represents the create/update medicine payload
type MedicineRequest struct {
	Name          string  `json:"name" validate:"required"`
	Category      string  `json:"category" validate:"required"`
	Manufacturer  string  `json:"manufacturer"`
	BatchNumber   string  `json:"batch_number"`
	ExpiryDate    string  `json:"expiry_date" validate:"required"`
	Quantity      int     `json:"quantity" validate:"gte=0"`
	MinQuantity   int     `json:"min_quantity" validate:"gte=0"`
	PurchasePrice float64 `json:"purchase_price" validate:"gte=0"`
	SellingPrice  float64 `json:"selling_price" validate:"gte=0"`
	Description   string  `json:"description"`
}

// AdjustStockRequest represents a signed stock adjustment
type AdjustStockRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// StockResponse represents the current stock level of a medicine
type StockResponse struct {
	MedicineID string `json:"medicine_id"`
	Quantity   int    `json:"quantity"`
}

// MedicineHandler handles HTTP requests for the medicine catalog and stock
type MedicineHandler struct {
	inventoryService service.InventoryService
	logger           *zap.Logger
}

// NewMedicineHandler creates a new MedicineHandler
func NewMedicineHandler(inventoryService service.InventoryService, logger *zap.Logger) *MedicineHandler {
	return &MedicineHandler{
		inventoryService: inventoryService,
		logger:           logger,
	}
}

// RegisterRoutes registers all medicine routes
func (h *MedicineHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/medicines", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
		r.Get("/{id}/stock", h.GetStock)
		r.Post("/{id}/stock", h.AdjustStock)
	})
}

// List handles listing the full medicine catalog
func (h *MedicineHandler) List(w http.ResponseWriter, r *http.Request) {
	medicines, err := h.inventoryService.ListMedicines(r.Context())
	if err != nil {
		h.logger.Error("Failed to list medicines", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list medicines")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, medicines)
}

// Create handles registering a new medicine
func (h *MedicineHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeMedicineInput(w, r)
	if !ok {
		return
	}

	medicine, err := h.inventoryService.AddMedicine(r.Context(), *input)
	if err != nil {
		h.logger.Error("Failed to add medicine", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add medicine")
		return
	}

	h.logger.Info("Medicine added", zap.String("medicine_id", medicine.ID.String()))
	middleware.RespondWithJSON(w, http.StatusCreated, medicine)
}

// Get handles retrieving a single medicine
func (h *MedicineHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	medicine, err := h.inventoryService.GetMedicine(r.Context(), id)
	if err != nil {
		if err == service.ErrUnknownMedicine {
			middleware.RespondWithError(w, http.StatusNotFound, "medicine not found")
			return
		}
		h.logger.Error("Failed to get medicine", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get medicine")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, medicine)
}

// Update handles replacing the editable fields of a medicine
func (h *MedicineHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	input, ok := h.decodeMedicineInput(w, r)
	if !ok {
		return
	}

	medicine, err := h.inventoryService.UpdateMedicine(r.Context(), id, *input)
	if err != nil {
		if err == service.ErrUnknownMedicine {
			middleware.RespondWithError(w, http.StatusNotFound, "medicine not found")
			return
		}
		h.logger.Error("Failed to update medicine", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update medicine")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, medicine)
}

// Delete handles removing a medicine from the catalog
func (h *MedicineHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := h.inventoryService.DeleteMedicine(r.Context(), id); err != nil {
		if err == service.ErrUnknownMedicine {
			middleware.RespondWithError(w, http.StatusNotFound, "medicine not found")
			return
		}
		h.logger.Error("Failed to delete medicine", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete medicine")
		return
	}

	h.logger.Info("Medicine deleted", zap.String("medicine_id", id.String()))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "medicine deleted"})
}

// GetStock handles reading the current stock quantity of a medicine
func (h *MedicineHandler) GetStock(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	quantity, err := h.inventoryService.GetStock(r.Context(), id)
	if err != nil {
		if err == service.ErrUnknownMedicine {
			middleware.RespondWithError(w, http.StatusNotFound, "medicine not found")
			return
		}
		h.logger.Error("Failed to get stock", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get stock")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, StockResponse{MedicineID: id.String(), Quantity: quantity})
}

// AdjustStock handles applying a signed delta to a medicine's stock
func (h *MedicineHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req AdjustStockRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Stock adjustment validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	quantity, err := h.inventoryService.AdjustStock(r.Context(), id, req.Delta)
	if err != nil {
		if err == service.ErrUnknownMedicine {
			middleware.RespondWithError(w, http.StatusNotFound, "medicine not found")
			return
		}
		if shortfall, ok := service.IsInsufficientStock(err); ok {
			respondInsufficientStock(w, shortfall)
			return
		}
		h.logger.Error("Failed to adjust stock", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to adjust stock")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, StockResponse{MedicineID: id.String(), Quantity: quantity})
}

// decodeMedicineInput decodes, validates and converts a medicine payload.
// It writes the error response itself and reports success via the bool.
func (h *MedicineHandler) decodeMedicineInput(w http.ResponseWriter, r *http.Request) (*service.MedicineInput, bool) {
	var req MedicineRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Medicine validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return nil, false
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}

	expiryDate, err := time.Parse("2006-01-02", req.ExpiryDate)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "expiry_date must be in YYYY-MM-DD format")
		return nil, false
	}

	return &service.MedicineInput{
		Name:          req.Name,
		Category:      req.Category,
		Manufacturer:  req.Manufacturer,
		BatchNumber:   req.BatchNumber,
		ExpiryDate:    expiryDate,
		Quantity:      req.Quantity,
		MinQuantity:   req.MinQuantity,
		PurchasePrice: req.PurchasePrice,
		SellingPrice:  req.SellingPrice,
		Description:   req.Description,
	}, true
}

// parseIDParam parses the {id} route parameter as a UUID, writing the error
// response itself on failure.
func parseIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// respondInsufficientStock renders a stock shortfall as a 409 with the
// medicine context attached.
func respondInsufficientStock(w http.ResponseWriter, shortfall *service.InsufficientStockError) {
	middleware.RespondWithErrorDetails(w, http.StatusConflict, shortfall.Error(), map[string]interface{}{
		"medicine_id":   shortfall.MedicineID.String(),
		"medicine_name": shortfall.MedicineName,
		"requested":     shortfall.Requested,
		"available":     shortfall.Available,
	})
}
