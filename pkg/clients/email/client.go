package email

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/livestock/internal/config"
	"github.com/mamadbah2/livestock/pkg/clients"
)

// Message is one outbound HTML email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Client sends transactional email and returns the provider message id.
type Client interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// APIClient is a resty-backed client for Resend-compatible email APIs.
type APIClient struct {
	httpClient *resty.Client
	from       string
}

// NewClient builds an email API client using the provided configuration values.
func NewClient(cfg config.EmailConfig) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &APIClient{httpClient: restyClient, from: cfg.From}
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type sendResponse struct {
	ID string `json:"id"`
}

type apiError struct {
	StatusCode int    `json:"statusCode"`
	Name       string `json:"name"`
	Message    string `json:"message"`
}

// Send posts msg to the /emails endpoint.
func (c *APIClient) Send(ctx context.Context, msg Message) (string, error) {
	result := new(sendResponse)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(sendRequest{From: c.from, To: []string{msg.To}, Subject: msg.Subject, HTML: msg.HTML}).
		SetResult(result).
		SetError(apiErr).
		Post("/emails")
	if err != nil {
		return "", fmt.Errorf("send email: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := apiErr.Message
		if message == "" {
			message = http.StatusText(resp.StatusCode())
		}
		return "", &clients.ProviderError{
			Provider:   "email",
			StatusCode: resp.StatusCode(),
			Message:    message,
			Raw:        resp.String(),
		}
	}

	return result.ID, nil
}
