package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/livestock/internal/domain/models"
	"github.com/mamadbah2/livestock/internal/service/animals"
)

// AnimalHandler exposes the herd registry.
type AnimalHandler struct {
	svc    *animals.Service
	logger *zap.Logger
}

// NewAnimalHandler constructs the HTTP handler adapter.
func NewAnimalHandler(svc *animals.Service, logger *zap.Logger) *AnimalHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnimalHandler{svc: svc, logger: logger}
}

type createAnimalRequest struct {
	EarTag    string        `json:"ear_tag" binding:"required"`
	Name      string        `json:"name"`
	Species   string        `json:"species" binding:"required"`
	Breed     string        `json:"breed"`
	Gender    models.Gender `json:"gender" binding:"required"`
	BirthDate string        `json:"birth_date" binding:"required"`
	MotherTag string        `json:"mother_tag"`
	ImageURL  string        `json:"image_url"`
	Notes     string        `json:"notes"`
}

type updateAnimalRequest struct {
	EarTag    *string `json:"ear_tag"`
	Name      *string `json:"name"`
	Breed     *string `json:"breed"`
	BirthDate *string `json:"birth_date"`
	MotherTag *string `json:"mother_tag"`
	ImageURL  *string `json:"image_url"`
	Notes     *string `json:"notes"`
}

type sellAnimalRequest struct {
	SoldTo       string  `json:"sold_to"`
	SoldDate     string  `json:"sold_date"`
	SoldPrice    float64 `json:"sold_price"`
	RecordIncome bool    `json:"record_income"`
}

type animalDeathRequest struct {
	DeathDate   string `json:"death_date"`
	DeathReason string `json:"death_reason"`
}

// Create registers an animal.
func (h *AnimalHandler) Create(c *gin.Context) {
	var req createAnimalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	birth, err := parseDate(req.BirthDate, "birth_date")
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	view, err := h.svc.Create(c.Request.Context(), accountID(c), animals.CreateInput{
		EarTag:    req.EarTag,
		Name:      req.Name,
		Species:   req.Species,
		Breed:     req.Breed,
		Gender:    req.Gender,
		BirthDate: birth,
		MotherTag: req.MotherTag,
		ImageURL:  req.ImageURL,
		Notes:     req.Notes,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// List returns the account's animals, optionally filtered by ?status= and ?species=.
func (h *AnimalHandler) List(c *gin.Context) {
	filter := models.AnimalFilter{
		Status:  models.AnimalStatus(c.Query("status")),
		Species: c.Query("species"),
	}
	items, err := h.svc.List(c.Request.Context(), accountID(c), filter)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Get returns one animal.
func (h *AnimalHandler) Get(c *gin.Context) {
	view, err := h.svc.Get(c.Request.Context(), accountID(c), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Update edits identity fields.
func (h *AnimalHandler) Update(c *gin.Context) {
	var req updateAnimalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	birth, err := parseOptionalDate(req.BirthDate, "birth_date")
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	view, err := h.svc.Update(c.Request.Context(), accountID(c), c.Param("id"), animals.UpdateInput{
		EarTag:    req.EarTag,
		Name:      req.Name,
		Breed:     req.Breed,
		BirthDate: birth,
		MotherTag: req.MotherTag,
		ImageURL:  req.ImageURL,
		Notes:     req.Notes,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Sell marks an animal as sold.
func (h *AnimalHandler) Sell(c *gin.Context) {
	var req sellAnimalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	date, err := parseDate(req.SoldDate, "sold_date")
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	view, err := h.svc.MarkSold(c.Request.Context(), accountID(c), c.Param("id"), animals.SaleInput{
		SoldTo:       req.SoldTo,
		Date:         date,
		Price:        req.SoldPrice,
		RecordIncome: req.RecordIncome,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Death marks an animal as deceased.
func (h *AnimalHandler) Death(c *gin.Context) {
	var req animalDeathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	date, err := parseDate(req.DeathDate, "death_date")
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	view, err := h.svc.MarkDeceased(c.Request.Context(), accountID(c), c.Param("id"), animals.DeathInput{Date: date, Reason: req.DeathReason})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
