package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/livestock/internal/domain/models"
	"github.com/mamadbah2/livestock/internal/service/health"
)

// HealthHandler exposes animal health records.
type HealthHandler struct {
	svc    *health.Service
	logger *zap.Logger
}

// NewHealthHandler constructs the HTTP handler adapter.
func NewHealthHandler(svc *health.Service, logger *zap.Logger) *HealthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthHandler{svc: svc, logger: logger}
}

type createHealthRecordRequest struct {
	AnimalID      string                  `json:"animal_id" binding:"required"`
	RecordType    models.HealthRecordType `json:"record_type" binding:"required"`
	Title         string                  `json:"title" binding:"required"`
	Description   string                  `json:"description"`
	Date          string                  `json:"record_date"`
	Cost          *float64                `json:"cost"`
	VetName       string                  `json:"vet_name"`
	FollowUpDate  *string                 `json:"follow_up_date"`
	RecordExpense bool                    `json:"record_expense"`
}

// Create stores a health record.
func (h *HealthHandler) Create(c *gin.Context) {
	var req createHealthRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	date, err := parseDate(req.Date, "record_date")
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	followUp, err := parseOptionalDate(req.FollowUpDate, "follow_up_date")
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	rec, err := h.svc.Record(c.Request.Context(), accountID(c), health.RecordInput{
		AnimalID:      req.AnimalID,
		RecordType:    req.RecordType,
		Title:         req.Title,
		Description:   req.Description,
		Date:          date,
		Cost:          req.Cost,
		VetName:       req.VetName,
		FollowUpDate:  followUp,
		RecordExpense: req.RecordExpense,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// List returns health records, optionally for ?animal_id=.
func (h *HealthHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), accountID(c), c.Query("animal_id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
