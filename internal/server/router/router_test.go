package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/livestock/internal/config"
	"github.com/mamadbah2/livestock/internal/repository/memory"
	"github.com/mamadbah2/livestock/pkg/clients"
	emailclient "github.com/mamadbah2/livestock/pkg/clients/email"
)

var _ Store = (*memory.Repository)(nil)

type fakeEmail struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeEmail) Send(context.Context, emailclient.Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return "email-1", nil
}

type fakeWhatsApp struct{ calls int }

func (f *fakeWhatsApp) SendText(context.Context, string, string) (string, error) {
	f.calls++
	return "wamid.1", nil
}

type testApp struct {
	engine   *gin.Engine
	email    *fakeEmail
	whatsapp *fakeWhatsApp
}

func newTestApp(t *testing.T) testApp {
	t.Helper()
	cfg := &config.Config{
		WhatsApp:      config.WhatsAppConfig{VerifyToken: "verify"},
		Notifications: config.NotificationsConfig{CronSchedule: "0 8 * * *", Timezone: "UTC"},
		Milk:          config.MilkConfig{DefaultPricePerLiter: 30},
	}
	app := testApp{email: &fakeEmail{}, whatsapp: &fakeWhatsApp{}}
	svcs, err := NewServices(Deps{Config: cfg, Store: memory.NewRepository(), Email: app.email, WhatsApp: app.whatsapp})
	require.NoError(t, err)
	app.engine = New(NewHandlers(svcs, nil), nil)
	return app
}

func (a testApp) do(t *testing.T, method, path, userID string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)

	out := map[string]any{}
	if rec.Body.Len() > 0 && rec.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec.Code, out
}

func (a testApp) list(t *testing.T, path, userID string) []map[string]any {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("X-User-ID", userID)
	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func createCow(t *testing.T, app testApp, userID, tag string) string {
	t.Helper()
	status, body := app.do(t, http.MethodPost, "/api/animals", userID, map[string]any{
		"ear_tag": tag, "species": "cattle", "gender": "female", "birth_date": "2020-01-01",
	})
	require.Equal(t, http.StatusCreated, status, body)
	return body["id"].(string)
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t)
	status, body := app.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestAPIRequiresAccount(t *testing.T) {
	app := newTestApp(t)
	status, _ := app.do(t, http.MethodGet, "/api/animals", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAnimalLifecycle(t *testing.T) {
	app := newTestApp(t)
	id := createCow(t, app, "u1", "tr-100")

	status, _ := app.do(t, http.MethodPost, "/api/animals", "u1", map[string]any{
		"ear_tag": "TR-100", "species": "cattle", "gender": "female", "birth_date": "2021-01-01",
	})
	assert.Equal(t, http.StatusConflict, status)

	status, body := app.do(t, http.MethodGet, "/api/animals/"+id, "u1", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "TR-100", body["ear_tag"])
	assert.Equal(t, "heifer", body["category"].(map[string]any)["label"])

	status, _ = app.do(t, http.MethodGet, "/api/animals/"+id, "u2", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = app.do(t, http.MethodPost, "/api/animals/"+id+"/sell", "u1", map[string]any{
		"sold_to": "Mehmet", "sold_date": "2024-05-01", "sold_price": 45000, "record_income": true,
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "sold", body["status"])

	status, _ = app.do(t, http.MethodPost, "/api/animals/"+id+"/death", "u1", map[string]any{"death_reason": "x"})
	assert.Equal(t, http.StatusConflict, status)

	txs := app.list(t, "/api/transactions?from=2024-05-01&to=2024-05-31", "u1")
	require.Len(t, txs, 1)
	assert.Equal(t, "hayvan_satisi", txs[0]["category"])
}

func TestBreedingFlow(t *testing.T) {
	app := newTestApp(t)
	id := createCow(t, app, "u1", "TR-1")

	status, body := app.do(t, http.MethodPost, "/api/inseminations", "u1", map[string]any{
		"animal_id": id, "insemination_date": "2024-01-01", "insemination_type": "artificial",
	})
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, "2024-10-10T00:00:00Z", body["expected_birth_date"])
	inseminationID := body["id"].(string)

	reminders := app.list(t, "/api/pregnancy/reminders", "u1")
	assert.Len(t, reminders, 2)

	status, _ = app.do(t, http.MethodPost, "/api/inseminations/"+inseminationID+"/birth", "u1", nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = app.do(t, http.MethodPost, "/api/inseminations/"+inseminationID+"/birth", "u1", nil)
	assert.Equal(t, http.StatusConflict, status)
}

func TestMilkDuplicateRejected(t *testing.T) {
	app := newTestApp(t)
	id := createCow(t, app, "u1", "TR-1")

	payload := map[string]any{"animal_id": id, "date": "2024-03-01", "morning_amount": 10, "evening_amount": 8}
	status, body := app.do(t, http.MethodPost, "/api/milk", "u1", payload)
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, 18.0, body["total_amount"])

	status, body = app.do(t, http.MethodPost, "/api/milk", "u1", payload)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "bu hayvan için bu tarihte zaten süt kaydı var", body["error"])
}

func TestFinanceSummary(t *testing.T) {
	app := newTestApp(t)

	status, _ := app.do(t, http.MethodPost, "/api/transactions", "u1", map[string]any{
		"type": "income", "category": "sut", "amount": 100, "transaction_date": "2024-03-01",
	})
	require.Equal(t, http.StatusCreated, status)
	status, _ = app.do(t, http.MethodPost, "/api/transactions", "u1", map[string]any{
		"type": "expense", "category": "yem", "amount": 40, "transaction_date": "2024-03-02",
	})
	require.Equal(t, http.StatusCreated, status)
	status, _ = app.do(t, http.MethodPost, "/api/transactions", "u1", map[string]any{
		"type": "income", "category": "yem", "amount": 5,
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body := app.do(t, http.MethodGet, "/api/finance/summary?from=2024-03-01&to=2024-03-31", "u1", nil)
	require.Equal(t, http.StatusOK, status)
	totals := body["totals"].(map[string]any)
	assert.Equal(t, 100.0, totals["total_income"])
	assert.Equal(t, 40.0, totals["total_expense"])
	assert.Equal(t, 60.0, totals["balance"])

	status, _ = app.do(t, http.MethodGet, "/api/finance/summary?from=2024-03-31&to=2024-03-01", "u1", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSettingsAndExportDisabled(t *testing.T) {
	app := newTestApp(t)

	status, body := app.do(t, http.MethodGet, "/api/settings", "u1", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 30.0, body["milk_price_per_liter"])

	status, body = app.do(t, http.MethodPut, "/api/settings", "u1", map[string]any{"milk_price_per_liter": 27.5})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 27.5, body["milk_price_per_liter"])

	status, _ = app.do(t, http.MethodPost, "/api/reports/finance/export", "u1", map[string]any{"from": "2024-01-01"})
	assert.Equal(t, http.StatusServiceUnavailable, status)

	status, _ = app.do(t, http.MethodGet, "/api/dashboard", "u1", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestEmailFunctionDisabledCategory(t *testing.T) {
	app := newTestApp(t)

	status, _ := app.do(t, http.MethodPut, "/api/profile", "u1", map[string]any{
		"email": "ali@example.com", "notify_vaccinations": false,
	})
	require.Equal(t, http.StatusOK, status)

	status, body := app.do(t, http.MethodPost, "/functions/send-email-notification", "", map[string]any{
		"user_id": "u1", "notification_type": "vaccination", "message": "Şap aşısı yarın",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, true, body["skipped"])
	assert.Contains(t, body["message"], "disabled")
	assert.Zero(t, app.email.calls)

	logs := app.list(t, "/api/notifications", "u1")
	require.Len(t, logs, 1)
	assert.Equal(t, "skipped", logs[0]["status"])
}

func TestEmailFunction(t *testing.T) {
	app := newTestApp(t)

	status, body := app.do(t, http.MethodPost, "/functions/send-email-notification", "", map[string]any{
		"user_id": "u1", "notification_type": "birth", "message": "x",
	})
	assert.Equal(t, http.StatusBadRequest, status, "no email on file")
	assert.Equal(t, false, body["success"])

	status, body = app.do(t, http.MethodPost, "/functions/send-email-notification", "", map[string]any{
		"user_id": "u1", "notification_type": "birth", "message": "TR-1 doğum yaptı", "email": "ali@example.com",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "email-1", body["email_id"])

	app.email.err = &clients.ProviderError{Provider: "email", StatusCode: 500, Message: "upstream down", Raw: "{}"}
	status, body = app.do(t, http.MethodPost, "/functions/send-email-notification", "", map[string]any{
		"user_id": "u1", "notification_type": "birth", "message": "x", "email": "ali@example.com",
	})
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "upstream down")

	status, _ = app.do(t, http.MethodPost, "/functions/send-email-notification", "", map[string]any{"user_id": "u1"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestWhatsAppFunctionSkippedByDefault(t *testing.T) {
	app := newTestApp(t)

	status, body := app.do(t, http.MethodPost, "/functions/send-whatsapp-notification", "", map[string]any{
		"user_id": "u1", "notification_type": "health", "message": "x", "phone_number": "905321112233",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["skipped"])
	assert.Zero(t, app.whatsapp.calls)
}

func TestDailyNotificationsFunction(t *testing.T) {
	app := newTestApp(t)

	status, _ := app.do(t, http.MethodPut, "/api/profile", "u1", map[string]any{"email": "ali@example.com"})
	require.Equal(t, http.StatusOK, status)

	status, body := app.do(t, http.MethodPost, "/functions/daily-notifications", "", map[string]any{})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, 1.0, body["total_users"])
	assert.Equal(t, 0.0, body["sent"])
	assert.Zero(t, app.email.calls)
}

func TestWebhookVerify(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=verify&hub.challenge=123", nil)
	rec := httptest.NewRecorder()
	app.engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "123", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=nope&hub.challenge=123", nil)
	rec = httptest.NewRecorder()
	app.engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
