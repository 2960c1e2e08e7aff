package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/livestock/internal/domain/models"
	"github.com/mamadbah2/livestock/internal/service/notifications"
	"github.com/mamadbah2/livestock/pkg/clients"
)

// FunctionsHandler serves the notification functions.
type FunctionsHandler struct {
	svc    *notifications.Service
	logger *zap.Logger
}

// NewFunctionsHandler constructs the HTTP handler adapter.
func NewFunctionsHandler(svc *notifications.Service, logger *zap.Logger) *FunctionsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FunctionsHandler{svc: svc, logger: logger}
}

// SendEmail handles send-email-notification.
func (h *FunctionsHandler) SendEmail(c *gin.Context) {
	var req models.EmailNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.DispatchResult{Error: "user_id, notification_type and message are required"})
		return
	}

	res, err := h.svc.SendEmail(c.Request.Context(), req)
	if err != nil {
		h.dispatchError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// SendWhatsApp handles send-whatsapp-notification.
func (h *FunctionsHandler) SendWhatsApp(c *gin.Context) {
	var req models.WhatsAppNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.DispatchResult{Error: "user_id, notification_type and message are required"})
		return
	}

	res, err := h.svc.SendWhatsApp(c.Request.Context(), req)
	if err != nil {
		h.dispatchError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// DailyNotifications handles daily-notifications.
func (h *FunctionsHandler) DailyNotifications(c *gin.Context) {
	res, err := h.svc.DailySummary(c.Request.Context())
	if err != nil {
		h.logger.Error("daily notifications failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "daily notifications failed"})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *FunctionsHandler) dispatchError(c *gin.Context, err error) {
	var perr *clients.ProviderError
	switch {
	case errors.As(err, &perr):
		c.JSON(http.StatusBadGateway, models.DispatchResult{Error: "bildirim gönderilemedi: " + perr.Message})
	case errors.Is(err, models.ErrInvalidInput), errors.Is(err, notifications.ErrMissingContact):
		c.JSON(http.StatusBadRequest, models.DispatchResult{Error: err.Error()})
	default:
		h.logger.Error("notification dispatch failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, models.DispatchResult{Error: "bildirim gönderilemedi"})
	}
}
