package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/livestock/internal/domain/calendar"
	"github.com/mamadbah2/livestock/internal/service/notifications"
	"github.com/mamadbah2/livestock/internal/service/reporting"
)

const defaultLogLimit = 50

// ReportingHandler exposes the dashboard, report export and delivery log.
type ReportingHandler struct {
	reports       *reporting.Service
	notifications *notifications.Service
	logger        *zap.Logger
}

// NewReportingHandler constructs the HTTP handler adapter.
func NewReportingHandler(reports *reporting.Service, notificationSvc *notifications.Service, logger *zap.Logger) *ReportingHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportingHandler{reports: reports, notifications: notificationSvc, logger: logger}
}

type exportRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Dashboard returns the landing view.
func (h *ReportingHandler) Dashboard(c *gin.Context) {
	d, err := h.reports.Dashboard(c.Request.Context(), accountID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// ExportFinance writes the financial report of a range to the report sheet.
func (h *ReportingHandler) ExportFinance(c *gin.Context) {
	var req exportRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
	}
	from, err := parseDate(req.From, "from")
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	to, err := parseDate(req.To, "to")
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	res, err := h.reports.ExportFinancialReport(c.Request.Context(), accountID(c), calendar.Range{From: from, To: to})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Notifications returns the most recent delivery attempts, ?limit= (default 50).
func (h *ReportingHandler) Notifications(c *gin.Context) {
	items, err := h.notifications.Logs(c.Request.Context(), accountID(c), intQuery(c, "limit", defaultLogLimit))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
