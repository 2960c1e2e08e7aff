package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/livestock/internal/service/accounts"
)

// AccountHandler exposes the profile and settings of the calling account.
type AccountHandler struct {
	svc    *accounts.Service
	logger *zap.Logger
}

// NewAccountHandler constructs the HTTP handler adapter.
func NewAccountHandler(svc *accounts.Service, logger *zap.Logger) *AccountHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountHandler{svc: svc, logger: logger}
}

type updateProfileRequest struct {
	FullName              *string `json:"full_name"`
	FarmName              *string `json:"farm_name"`
	Email                 *string `json:"email"`
	Phone                 *string `json:"phone"`
	EmailNotifications    *bool   `json:"email_notifications"`
	WhatsAppNotifications *bool   `json:"whatsapp_notifications"`
	NotifyVaccinations    *bool   `json:"notify_vaccinations"`
	NotifyBirths          *bool   `json:"notify_births"`
	NotifyPregnancy       *bool   `json:"notify_pregnancy"`
	NotifyHealth          *bool   `json:"notify_health"`
	NotifyDailySummary    *bool   `json:"notify_daily_summary"`
}

type updateSettingsRequest struct {
	MilkPricePerLiter float64 `json:"milk_price_per_liter" binding:"required"`
}

// GetProfile returns the profile.
func (h *AccountHandler) GetProfile(c *gin.Context) {
	p, err := h.svc.Profile(c.Request.Context(), accountID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateProfile edits contact info and notification preferences.
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	p, err := h.svc.UpdateProfile(c.Request.Context(), accountID(c), accounts.ProfileInput{
		FullName:              req.FullName,
		FarmName:              req.FarmName,
		Email:                 req.Email,
		Phone:                 req.Phone,
		EmailNotifications:    req.EmailNotifications,
		WhatsAppNotifications: req.WhatsAppNotifications,
		NotifyVaccinations:    req.NotifyVaccinations,
		NotifyBirths:          req.NotifyBirths,
		NotifyPregnancy:       req.NotifyPregnancy,
		NotifyHealth:          req.NotifyHealth,
		NotifyDailySummary:    req.NotifyDailySummary,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// GetSettings returns the account settings.
func (h *AccountHandler) GetSettings(c *gin.Context) {
	st, err := h.svc.Settings(c.Request.Context(), accountID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// UpdateSettings stores the milk price.
func (h *AccountHandler) UpdateSettings(c *gin.Context) {
	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	st, err := h.svc.UpdateSettings(c.Request.Context(), accountID(c), req.MilkPricePerLiter)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, st)
}
