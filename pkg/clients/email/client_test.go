package email

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/livestock/internal/config"
	"github.com/mamadbah2/livestock/pkg/clients"
)

func TestSend(t *testing.T) {
	var got sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"email-123"}`))
	}))
	defer srv.Close()

	c := NewClient(config.EmailConfig{APIKey: "re_test", From: "Çiftlik <bildirim@example.com>", BaseURL: srv.URL})

	id, err := c.Send(context.Background(), Message{To: "ali@example.com", Subject: "Özet", HTML: "<p>x</p>"})
	require.NoError(t, err)
	assert.Equal(t, "email-123", id)
	assert.Equal(t, "Çiftlik <bildirim@example.com>", got.From)
	assert.Equal(t, []string{"ali@example.com"}, got.To)
	assert.Equal(t, "Özet", got.Subject)
}

func TestSendProviderError(t *testing.T) {
	body := `{"statusCode":422,"name":"validation_error","message":"Invalid to field"}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	c := NewClient(config.EmailConfig{APIKey: "re_test", From: "a@example.com", BaseURL: srv.URL})

	_, err := c.Send(context.Background(), Message{To: "bad", Subject: "s", HTML: "h"})
	var perr *clients.ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, http.StatusUnprocessableEntity, perr.StatusCode)
	assert.Equal(t, "Invalid to field", perr.Message)
	assert.JSONEq(t, body, perr.Raw)
}
