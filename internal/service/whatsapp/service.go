package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/livestock/internal/config"
	"github.com/mamadbah2/livestock/internal/domain/models"
	"github.com/mamadbah2/livestock/internal/repository"
)

// ReceiptStore updates delivery logs from provider receipts.
type ReceiptStore interface {
	UpdateNotificationStatus(ctx context.Context, providerMessageID string, status models.DeliveryStatus, errMsg string) error
}

// WebhookService describes the webhook operations the HTTP layer can perform.
type WebhookService interface {
	VerifyWebhookToken(mode, verifyToken, challenge string) (string, error)
	HandleWebhook(ctx context.Context, payload models.WebhookPayload) error
}

// MetaWhatsAppService handles Meta's webhook verification and status callbacks.
type MetaWhatsAppService struct {
	cfg    config.WhatsAppConfig
	store  ReceiptStore
	logger *zap.Logger
}

// NewMetaWhatsAppService wires a new service instance.
func NewMetaWhatsAppService(cfg config.WhatsAppConfig, store ReceiptStore, logger *zap.Logger) *MetaWhatsAppService {
	svc := &MetaWhatsAppService{
		cfg:    cfg,
		store:  store,
		logger: logger,
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	return svc
}

var receiptStatuses = map[string]models.DeliveryStatus{
	"delivered": models.DeliveryDelivered,
	"read":      models.DeliveryRead,
	"failed":    models.DeliveryFailed,
}

// VerifyWebhookToken validates the callback verification token.
func (s *MetaWhatsAppService) VerifyWebhookToken(mode, verifyToken, challenge string) (string, error) {
	if mode == "" || verifyToken == "" {
		return "", errors.New("missing mode or verify token")
	}

	if !strings.EqualFold(mode, "subscribe") {
		return "", fmt.Errorf("unsupported hub.mode %s", mode)
	}

	if verifyToken != s.cfg.VerifyToken {
		return "", errors.New("invalid verify token")
	}

	return challenge, nil
}

// HandleWebhook applies the status receipts of a callback to the delivery log.
// Receipts for unknown message ids are ignored.
func (s *MetaWhatsAppService) HandleWebhook(ctx context.Context, payload models.WebhookPayload) error {
	var firstErr error

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, st := range change.Value.Statuses {
				if err := s.applyReceipt(ctx, st); err != nil {
					s.logger.Error("failed to apply delivery receipt", zap.Error(err), zap.String("message_id", st.ID))
					if firstErr == nil {
						firstErr = err
					}
				}
			}
		}
	}

	return firstErr
}

func (s *MetaWhatsAppService) applyReceipt(ctx context.Context, st models.MessageStatus) error {
	status, ok := receiptStatuses[strings.ToLower(st.Status)]
	if !ok || st.ID == "" {
		return nil
	}

	var errMsg string
	if status == models.DeliveryFailed && len(st.Errors) > 0 {
		parts := make([]string, 0, len(st.Errors))
		for _, e := range st.Errors {
			parts = append(parts, fmt.Sprintf("%d: %s", e.Code, firstNonEmpty(e.Message, e.Title)))
		}
		errMsg = strings.Join(parts, "; ")
	}

	err := s.store.UpdateNotificationStatus(ctx, st.ID, status, errMsg)
	if errors.Is(err, repository.ErrNotFound) {
		s.logger.Debug("receipt for unknown message", zap.String("message_id", st.ID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("update notification %s: %w", st.ID, err)
	}

	s.logger.Info("delivery receipt applied", zap.String("message_id", st.ID), zap.String("status", string(status)))
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
