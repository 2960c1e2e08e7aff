package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/livestock/internal/service/vaccination"
)

// VaccinationHandler exposes vaccination records.
type VaccinationHandler struct {
	svc    *vaccination.Service
	logger *zap.Logger
}

// NewVaccinationHandler constructs the HTTP handler adapter.
func NewVaccinationHandler(svc *vaccination.Service, logger *zap.Logger) *VaccinationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VaccinationHandler{svc: svc, logger: logger}
}

type createVaccinationRequest struct {
	AnimalID        string  `json:"animal_id" binding:"required"`
	VaccineName     string  `json:"vaccine_name" binding:"required"`
	VaccinationDate string  `json:"vaccination_date" binding:"required"`
	NextDate        *string `json:"next_vaccination_date"`
	Notes           string  `json:"notes"`
}

// Create records an administered vaccination.
func (h *VaccinationHandler) Create(c *gin.Context) {
	var req createVaccinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	date, err := parseDate(req.VaccinationDate, "vaccination_date")
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	next, err := parseOptionalDate(req.NextDate, "next_vaccination_date")
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	view, err := h.svc.Record(c.Request.Context(), accountID(c), vaccination.RecordInput{
		AnimalID: req.AnimalID,
		Name:     req.VaccineName,
		Date:     date,
		NextDate: next,
		Notes:    req.Notes,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// List returns vaccinations ordered overdue, upcoming, scheduled, completed.
func (h *VaccinationHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), accountID(c), c.Query("animal_id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Complete marks a vaccination as completed.
func (h *VaccinationHandler) Complete(c *gin.Context) {
	view, err := h.svc.MarkCompleted(c.Request.Context(), accountID(c), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
