package transport

import (
	"net/http"

	"clinic-pos/internal/domain"
	"clinic-pos/internal/middleware"
	"clinic-pos/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SettingsRequest represents the clinic settings payload
type SettingsRequest struct {
	ClinicName         string   `json:"clinic_name" validate:"required"`
	DoctorName         string   `json:"doctor_name"`
	ClinicAddress      string   `json:"clinic_address"`
	ClinicPhone        string   `json:"clinic_phone"`
	ClinicEmail        string   `json:"clinic_email" validate:"omitempty,email"`
	LicenseNumber      string   `json:"license_number"`
	ConsultationCharge float64  `json:"consultation_charge" validate:"gte=0"`
	TaxRate            float64  `json:"tax_rate" validate:"gte=0"`
	Categories         []string `json:"categories"`
}

// SettingsHandler handles HTTP requests for clinic settings
type SettingsHandler struct {
	settingsService service.SettingsService
	logger          *zap.Logger
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService service.SettingsService, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		logger:          logger,
	}
}

// RegisterRoutes registers all settings routes
func (h *SettingsHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/settings", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Put("/", h.Update)
	})
}

// Get handles retrieving the clinic settings
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.Get(r.Context())
	if err != nil {
		h.logger.Error("Failed to get settings", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get settings")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, settings)
}

// Update handles replacing the clinic settings
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req SettingsRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Settings validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	settings, err := h.settingsService.Update(r.Context(), &domain.Settings{
		ClinicName:         req.ClinicName,
		DoctorName:         req.DoctorName,
		ClinicAddress:      req.ClinicAddress,
		ClinicPhone:        req.ClinicPhone,
		ClinicEmail:        req.ClinicEmail,
		LicenseNumber:      req.LicenseNumber,
		ConsultationCharge: req.ConsultationCharge,
		TaxRate:            req.TaxRate,
		Categories:         req.Categories,
	})
	if err != nil {
		h.logger.Error("Failed to update settings", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update settings")
		return
	}

	h.logger.Info("Settings updated", zap.String("clinic_name", settings.ClinicName))
	middleware.RespondWithJSON(w, http.StatusOK, settings)
}
