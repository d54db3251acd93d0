package transport

import (
	"net/http"

	"clinic-pos/internal/middleware"
	"clinic-pos/internal/repository"
	"clinic-pos/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// NotificationHandler handles HTTP requests for the notification center
type NotificationHandler struct {
	alertService     service.AlertService
	notificationRepo repository.NotificationRepository
	logger           *zap.Logger
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(
	alertService service.AlertService,
	notificationRepo repository.NotificationRepository,
	logger *zap.Logger,
) *NotificationHandler {
	return &NotificationHandler{
		alertService:     alertService,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// RegisterRoutes registers all notification routes
func (h *NotificationHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/notifications", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/reconcile", h.Reconcile)
		r.Put("/read-all", h.MarkAllRead)
		r.Put("/{id}/read", h.MarkRead)
		r.Delete("/{id}", h.Delete)
	})
}

// List handles listing all notifications in creation order
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.notificationRepo.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list notifications", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list notifications")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, notifications)
}

// Reconcile evaluates current inventory against the notification set and
// appends any missing low-stock and expiry alerts. Calling it again without
// inventory changes is a no-op.
func (h *NotificationHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.alertService.Reconcile(r.Context())
	if err != nil {
		h.logger.Error("Alert reconciliation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to reconcile alerts")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, notifications)
}

// MarkRead flags a single notification as read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := h.notificationRepo.MarkRead(r.Context(), id); err != nil {
		if err == repository.ErrNotificationNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "notification not found")
			return
		}
		h.logger.Error("Failed to mark notification read", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to mark notification read")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "notification marked read"})
}

// MarkAllRead flags every notification as read
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.notificationRepo.MarkAllRead(r.Context()); err != nil {
		h.logger.Error("Failed to mark all notifications read", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to mark notifications read")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "all notifications marked read"})
}

// Delete removes a notification
func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := h.notificationRepo.Delete(r.Context(), id); err != nil {
		if err == repository.ErrNotificationNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "notification not found")
			return
		}
		h.logger.Error("Failed to delete notification", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete notification")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "notification deleted"})
}
