package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/livestock/internal/domain/calendar"
	"github.com/mamadbah2/livestock/internal/domain/models"
	"github.com/mamadbah2/livestock/internal/repository"
	"github.com/mamadbah2/livestock/internal/service/notifications"
	"github.com/mamadbah2/livestock/internal/service/reporting"
)

// AccountHeader carries the account every /api request is scoped to.
const AccountHeader = "X-User-ID"

const accountKey = "account_id"

// RequireAccount rejects requests without an account header.
func RequireAccount() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(AccountHeader))
		if id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing " + AccountHeader + " header"})
			return
		}
		c.Set(accountKey, id)
		c.Next()
	}
}

func accountID(c *gin.Context) string {
	return c.GetString(accountKey)
}

// statusFor maps domain errors to HTTP status codes and user-facing messages.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "kayıt bulunamadı"
	case errors.Is(err, repository.ErrDuplicate):
		return http.StatusConflict, "bu kayıt zaten mevcut"
	case errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, notifications.ErrMissingContact):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, models.ErrInvalidTransition), errors.Is(err, models.ErrNotPregnant):
		return http.StatusConflict, err.Error()
	case errors.Is(err, reporting.ErrExportDisabled):
		return http.StatusServiceUnavailable, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func writeError(c *gin.Context, logger *zap.Logger, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.String("user_id", accountID(c)), zap.Error(err))
	} else {
		logger.Debug("request rejected", zap.String("path", c.FullPath()), zap.Int("status", status), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": msg})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// parseDate reads an optional YYYY-MM-DD value. Empty input yields the zero time.
func parseDate(value, field string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, nil
	}
	t, err := calendar.Parse(value)
	if err != nil {
		return time.Time{}, errors.New(field + " must be YYYY-MM-DD")
	}
	return t, nil
}

func parseOptionalDate(value *string, field string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	t, err := parseDate(*value, field)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// rangeQuery reads ?from=&to= into a calendar range.
func rangeQuery(c *gin.Context) (calendar.Range, error) {
	from, err := parseDate(c.Query("from"), "from")
	if err != nil {
		return calendar.Range{}, err
	}
	to, err := parseDate(c.Query("to"), "to")
	if err != nil {
		return calendar.Range{}, err
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return calendar.Range{}, errors.New("to must not precede from")
	}
	return calendar.Range{From: from, To: to}, nil
}

func intQuery(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
