package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/livestock/internal/domain/models"
	"github.com/mamadbah2/livestock/internal/repository"
	"github.com/mamadbah2/livestock/internal/service/finance"
	"github.com/mamadbah2/livestock/internal/service/milk"
)

// FinanceHandler exposes transactions and milk production.
type FinanceHandler struct {
	finance *finance.Service
	milk    *milk.Service
	logger  *zap.Logger
}

// NewFinanceHandler constructs the HTTP handler adapter.
func NewFinanceHandler(financeSvc *finance.Service, milkSvc *milk.Service, logger *zap.Logger) *FinanceHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FinanceHandler{finance: financeSvc, milk: milkSvc, logger: logger}
}

type createTransactionRequest struct {
	Type        models.TransactionType `json:"type" binding:"required"`
	Category    string                 `json:"category" binding:"required"`
	Amount      float64                `json:"amount" binding:"required"`
	Date        string                 `json:"transaction_date"`
	AnimalID    string                 `json:"animal_id"`
	Description string                 `json:"description"`
}

type createMilkRequest struct {
	AnimalID      string  `json:"animal_id" binding:"required"`
	Date          string  `json:"date"`
	MorningAmount float64 `json:"morning_amount"`
	EveningAmount float64 `json:"evening_amount"`
	Quality       string  `json:"quality"`
	Notes         string  `json:"notes"`
}

// CreateTransaction records an income or expense.
func (h *FinanceHandler) CreateTransaction(c *gin.Context) {
	var req createTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	date, err := parseDate(req.Date, "transaction_date")
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	tx, err := h.finance.Record(c.Request.Context(), accountID(c), finance.RecordInput{
		Type:        req.Type,
		Category:    req.Category,
		Amount:      req.Amount,
		Date:        date,
		AnimalID:    req.AnimalID,
		Description: req.Description,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, tx)
}

// ListTransactions returns transactions inside ?from=&to=.
func (h *FinanceHandler) ListTransactions(c *gin.Context) {
	rng, err := rangeQuery(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	items, err := h.finance.List(c.Request.Context(), accountID(c), rng)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Summary returns totals, category breakdown and monthly buckets.
func (h *FinanceHandler) Summary(c *gin.Context) {
	rng, err := rangeQuery(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	summary, err := h.finance.Summarize(c.Request.Context(), accountID(c), rng)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// CreateMilk records the daily yield of one animal.
func (h *FinanceHandler) CreateMilk(c *gin.Context) {
	var req createMilkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	date, err := parseDate(req.Date, "date")
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	m, err := h.milk.Record(c.Request.Context(), accountID(c), milk.RecordInput{
		AnimalID:      req.AnimalID,
		Date:          date,
		MorningAmount: req.MorningAmount,
		EveningAmount: req.EveningAmount,
		Quality:       req.Quality,
		Notes:         req.Notes,
	})
	if errors.Is(err, repository.ErrDuplicate) {
		c.JSON(http.StatusConflict, gin.H{"error": "bu hayvan için bu tarihte zaten süt kaydı var"})
		return
	}
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// ListMilk returns milk records inside ?from=&to=.
func (h *FinanceHandler) ListMilk(c *gin.Context) {
	rng, err := rangeQuery(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	items, err := h.milk.List(c.Request.Context(), accountID(c), rng)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// MilkSummary returns the current-month production view.
func (h *FinanceHandler) MilkSummary(c *gin.Context) {
	summary, err := h.milk.Summary(c.Request.Context(), accountID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
