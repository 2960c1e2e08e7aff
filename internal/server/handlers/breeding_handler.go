package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/livestock/internal/domain/models"
	"github.com/mamadbah2/livestock/internal/service/breeding"
)

// BreedingHandler exposes inseminations, pregnancy warnings and reminders.
type BreedingHandler struct {
	svc    *breeding.Service
	logger *zap.Logger
}

// NewBreedingHandler constructs the HTTP handler adapter.
func NewBreedingHandler(svc *breeding.Service, logger *zap.Logger) *BreedingHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BreedingHandler{svc: svc, logger: logger}
}

type createInseminationRequest struct {
	AnimalID string                    `json:"animal_id" binding:"required"`
	Date     string                    `json:"insemination_date" binding:"required"`
	Method   models.InseminationMethod `json:"insemination_type" binding:"required"`
	BullInfo string                    `json:"bull_info"`
	Notes    string                    `json:"notes"`
}

// Create records an insemination.
func (h *BreedingHandler) Create(c *gin.Context) {
	var req createInseminationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	date, err := parseDate(req.Date, "insemination_date")
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	view, err := h.svc.Record(c.Request.Context(), accountID(c), breeding.RecordInput{
		AnimalID: req.AnimalID,
		Date:     date,
		Method:   req.Method,
		BullInfo: req.BullInfo,
		Notes:    req.Notes,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// List returns inseminations, optionally ?animal_id= and ?pregnant=true.
func (h *BreedingHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), accountID(c), models.InseminationFilter{
		AnimalID:     c.Query("animal_id"),
		PregnantOnly: c.Query("pregnant") == "true",
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// CompleteBirth closes a pregnancy.
func (h *BreedingHandler) CompleteBirth(c *gin.Context) {
	view, err := h.svc.CompleteBirth(c.Request.Context(), accountID(c), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Warnings returns the milk withdrawal advisories.
func (h *BreedingHandler) Warnings(c *gin.Context) {
	items, err := h.svc.Warnings(c.Request.Context(), accountID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Reminders lists pregnancy reminders; ?pending=true hides sent ones.
func (h *BreedingHandler) Reminders(c *gin.Context) {
	items, err := h.svc.ListReminders(c.Request.Context(), accountID(c), c.Query("pending") == "true")
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// MarkReminderSent flags a reminder as sent.
func (h *BreedingHandler) MarkReminderSent(c *gin.Context) {
	rem, err := h.svc.MarkReminderSent(c.Request.Context(), accountID(c), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, rem)
}
