package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lunara-health/lunara/internal/db"
	"github.com/lunara-health/lunara/internal/services"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "lunara-api-test.db")
	database, err := db.OpenSQLite(databasePath)
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, err := database.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	handler := NewHandler(database, "test-secret", time.UTC, services.DefaultAnalyticsConfig())
	app := fiber.New()
	handler.RegisterRoutes(app)
	return app
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, token string, payload any) (*http.Response, envelope) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		request.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	response, err := app.Test(request, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(response.Body)
	require.NoError(t, err)

	var parsed envelope
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed), "body: %s", raw)
	}
	return response, parsed
}

type tokensView struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func registerTestUser(t *testing.T, app *fiber.App, email string) tokensView {
	t.Helper()

	response, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"email":    email,
		"password": "Sunrise42",
	})
	require.Equal(t, http.StatusCreated, response.StatusCode)
	require.True(t, body.Success)

	var data struct {
		Tokens tokensView `json:"tokens"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &data))
	require.NotEmpty(t, data.Tokens.AccessToken)
	require.NotEmpty(t, data.Tokens.RefreshToken)
	return data.Tokens
}

func seedCycles(t *testing.T, app *fiber.App, token string, starts ...string) {
	t.Helper()

	for _, start := range starts {
		response, _ := doJSON(t, app, http.MethodPost, "/api/v1/cycles/", token, fiber.Map{"start_date": start})
		require.Equal(t, http.StatusCreated, response.StatusCode, "seeding cycle %s", start)
	}
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t)

	request := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	response, err := app.Test(request, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, response.StatusCode)
}

func TestAuthFlow(t *testing.T) {
	app := newTestApp(t)
	tokens := registerTestUser(t, app, "flow@example.com")

	// Duplicate registration conflicts.
	response, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"email":    "Flow@Example.com",
		"password": "Sunrise42",
	})
	require.Equal(t, http.StatusConflict, response.StatusCode)
	require.Equal(t, "conflict", body.Error.Code)

	// Login with the normalized email.
	response, body = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email":    " FLOW@example.com ",
		"password": "Sunrise42",
	})
	require.Equal(t, http.StatusOK, response.StatusCode)
	require.True(t, body.Success)

	// Wrong password is rejected without detail.
	response, body = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email":    "flow@example.com",
		"password": "Wrong123z",
	})
	require.Equal(t, http.StatusUnauthorized, response.StatusCode)
	require.Equal(t, "unauthorized", body.Error.Code)

	// The access token opens /me.
	response, body = doJSON(t, app, http.MethodGet, "/api/v1/auth/me", tokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
	var me struct {
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &me))
	require.Equal(t, "flow@example.com", me.Email)

	// No token, no entry.
	response, _ = doJSON(t, app, http.MethodGet, "/api/v1/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, response.StatusCode)
}

func TestRefreshTokenRotation(t *testing.T) {
	app := newTestApp(t)
	tokens := registerTestUser(t, app, "rotate@example.com")

	response, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/refresh", "", fiber.Map{
		"refresh_token": tokens.RefreshToken,
	})
	require.Equal(t, http.StatusOK, response.StatusCode)

	var refreshed struct {
		Tokens tokensView `json:"tokens"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &refreshed))
	require.NotEqual(t, tokens.RefreshToken, refreshed.Tokens.RefreshToken)

	// The old refresh token is single-use.
	response, body = doJSON(t, app, http.MethodPost, "/api/v1/auth/refresh", "", fiber.Map{
		"refresh_token": tokens.RefreshToken,
	})
	require.Equal(t, http.StatusUnauthorized, response.StatusCode)
	require.Equal(t, "unauthorized", body.Error.Code)

	// The rotated one still works.
	response, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/refresh", "", fiber.Map{
		"refresh_token": refreshed.Tokens.RefreshToken,
	})
	require.Equal(t, http.StatusOK, response.StatusCode)
}

func TestAccessTokenRejectedAsRefresh(t *testing.T) {
	app := newTestApp(t)
	tokens := registerTestUser(t, app, "kinds@example.com")

	response, _ := doJSON(t, app, http.MethodPost, "/api/v1/auth/refresh", "", fiber.Map{
		"refresh_token": tokens.AccessToken,
	})
	require.Equal(t, http.StatusUnauthorized, response.StatusCode)

	// And a refresh token cannot be used as a bearer access token.
	response, _ = doJSON(t, app, http.MethodGet, "/api/v1/auth/me", tokens.RefreshToken, nil)
	require.Equal(t, http.StatusUnauthorized, response.StatusCode)
}

func TestCycleCRUDAndOwnership(t *testing.T) {
	app := newTestApp(t)
	owner := registerTestUser(t, app, "owner@example.com")
	intruder := registerTestUser(t, app, "intruder@example.com")

	response, body := doJSON(t, app, http.MethodPost, "/api/v1/cycles/", owner.AccessToken, fiber.Map{
		"start_date": "2025-01-01",
		"notes":      "first tracked cycle",
	})
	require.Equal(t, http.StatusCreated, response.StatusCode)

	var created struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &created))
	require.NotZero(t, created.ID)

	// Duplicate start date conflicts.
	response, _ = doJSON(t, app, http.MethodPost, "/api/v1/cycles/", owner.AccessToken, fiber.Map{
		"start_date": "2025-01-01",
	})
	require.Equal(t, http.StatusConflict, response.StatusCode)

	// Another user cannot see or touch it.
	cyclePath := fmt.Sprintf("/api/v1/cycles/%d", created.ID)
	response, _ = doJSON(t, app, http.MethodGet, cyclePath, intruder.AccessToken, nil)
	require.Equal(t, http.StatusNotFound, response.StatusCode)
	response, _ = doJSON(t, app, http.MethodDelete, cyclePath, intruder.AccessToken, nil)
	require.Equal(t, http.StatusNotFound, response.StatusCode)

	// Closing the cycle derives its length.
	response, body = doJSON(t, app, http.MethodPut, cyclePath, owner.AccessToken, fiber.Map{
		"end_date": "2025-01-28",
	})
	require.Equal(t, http.StatusOK, response.StatusCode)
	var updated struct {
		CycleLength *int `json:"cycle_length"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &updated))
	require.NotNil(t, updated.CycleLength)
	require.Equal(t, 28, *updated.CycleLength)

	// Period days must fall inside the cycle.
	response, _ = doJSON(t, app, http.MethodPost, cyclePath+"/period-days", owner.AccessToken, fiber.Map{
		"date": "2025-02-10",
		"flow": "medium",
	})
	require.Equal(t, http.StatusBadRequest, response.StatusCode)
	response, _ = doJSON(t, app, http.MethodPost, cyclePath+"/period-days", owner.AccessToken, fiber.Map{
		"date": "2025-01-02",
		"flow": "medium",
	})
	require.Equal(t, http.StatusCreated, response.StatusCode)

	response, _ = doJSON(t, app, http.MethodDelete, cyclePath, owner.AccessToken, nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
	response, _ = doJSON(t, app, http.MethodGet, cyclePath, owner.AccessToken, nil)
	require.Equal(t, http.StatusNotFound, response.StatusCode)
}

func TestAnalyticsRequiresHistory(t *testing.T) {
	app := newTestApp(t)
	tokens := registerTestUser(t, app, "stats@example.com")
	seedCycles(t, app, tokens.AccessToken, "2025-01-01", "2025-01-29")

	response, body := doJSON(t, app, http.MethodPost, "/api/v1/analytics/statistics/calculate", tokens.AccessToken, nil)
	require.Equal(t, http.StatusUnprocessableEntity, response.StatusCode)
	require.Equal(t, "insufficient_data", body.Error.Code)

	response, body = doJSON(t, app, http.MethodPost, "/api/v1/analytics/predictions/generate", tokens.AccessToken, nil)
	require.Equal(t, http.StatusUnprocessableEntity, response.StatusCode)
	require.Equal(t, "insufficient_data", body.Error.Code)
}

func TestAnalyticsFlow(t *testing.T) {
	app := newTestApp(t)
	tokens := registerTestUser(t, app, "predict@example.com")
	seedCycles(t, app, tokens.AccessToken, "2025-01-01", "2025-01-29", "2025-02-26")

	response, body := doJSON(t, app, http.MethodPost, "/api/v1/analytics/statistics/calculate", tokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
	var stats struct {
		AverageCycleLength float64 `json:"average_cycle_length"`
		RegularityScore    float64 `json:"cycle_regularity_score"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &stats))
	require.Equal(t, float64(28), stats.AverageCycleLength)
	require.Equal(t, float64(1), stats.RegularityScore)

	response, body = doJSON(t, app, http.MethodPost, "/api/v1/analytics/predictions/generate", tokens.AccessToken, nil)
	require.Equal(t, http.StatusCreated, response.StatusCode)
	var prediction struct {
		PredictedPeriodStart string `json:"predicted_period_start"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &prediction))
	require.Contains(t, prediction.PredictedPeriodStart, "2025-03-26")

	response, _ = doJSON(t, app, http.MethodGet, "/api/v1/analytics/predictions/current", tokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
}

func TestVisualizationsAreReadOnly(t *testing.T) {
	app := newTestApp(t)
	tokens := registerTestUser(t, app, "charts@example.com")
	seedCycles(t, app, tokens.AccessToken, "2025-01-01", "2025-01-29", "2025-02-26")

	// No statistics row exists until the calculate endpoint is called.
	response, _ := doJSON(t, app, http.MethodGet, "/api/v1/visualizations/cycles/statistics", tokens.AccessToken, nil)
	require.Equal(t, http.StatusNotFound, response.StatusCode)

	response, body := doJSON(t, app, http.MethodGet, "/api/v1/visualizations/cycles/history?months=6", tokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
	var chart struct {
		Labels   []string `json:"labels"`
		Datasets []struct {
			Label string    `json:"label"`
			Data  []float64 `json:"data"`
		} `json:"datasets"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &chart))
	require.Len(t, chart.Datasets, 1)

	// Reading a chart never materializes statistics.
	response, _ = doJSON(t, app, http.MethodGet, "/api/v1/analytics/statistics", tokens.AccessToken, nil)
	require.Equal(t, http.StatusNotFound, response.StatusCode)

	response, _ = doJSON(t, app, http.MethodGet, "/api/v1/visualizations/mood/distribution", tokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
}

func TestDailyLogEndpoints(t *testing.T) {
	app := newTestApp(t)
	tokens := registerTestUser(t, app, "logs@example.com")

	response, body := doJSON(t, app, http.MethodPost, "/api/v1/logs/", tokens.AccessToken, fiber.Map{
		"date":        "2025-03-01",
		"mood":        "good",
		"symptom_ids": []uint{1},
	})
	require.Equal(t, http.StatusCreated, response.StatusCode)
	var created struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &created))

	// One log per date.
	response, _ = doJSON(t, app, http.MethodPost, "/api/v1/logs/", tokens.AccessToken, fiber.Map{
		"date": "2025-03-01",
	})
	require.Equal(t, http.StatusConflict, response.StatusCode)

	// Unknown symptom ids are refused.
	response, _ = doJSON(t, app, http.MethodPost, "/api/v1/logs/", tokens.AccessToken, fiber.Map{
		"date":        "2025-03-02",
		"symptom_ids": []uint{9999},
	})
	require.Equal(t, http.StatusBadRequest, response.StatusCode)

	// The catalog endpoint serves the seeded symptoms.
	response, body = doJSON(t, app, http.MethodGet, "/api/v1/cycles/symptoms", tokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
	var symptoms []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &symptoms))
	require.NotEmpty(t, symptoms)
}

func TestNotificationPreferencesAndReminders(t *testing.T) {
	app := newTestApp(t)
	tokens := registerTestUser(t, app, "remind@example.com")

	response, body := doJSON(t, app, http.MethodGet, "/api/v1/notifications/preferences", tokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
	var preferences struct {
		InAppEnabled bool `json:"in_app_enabled"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &preferences))
	require.True(t, preferences.InAppEnabled)

	response, body = doJSON(t, app, http.MethodPut, "/api/v1/notifications/preferences", tokens.AccessToken, fiber.Map{
		"quiet_hours_enabled": true,
		"quiet_hours_start":   "22:00",
		"quiet_hours_end":     "07:00",
	})
	require.Equal(t, http.StatusOK, response.StatusCode)
	var updated struct {
		QuietHoursEnabled bool   `json:"quiet_hours_enabled"`
		QuietHoursStart   string `json:"quiet_hours_start"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &updated))
	require.True(t, updated.QuietHoursEnabled)
	require.Equal(t, "22:00", updated.QuietHoursStart)

	// Registration provisions a default period reminder.
	response, body = doJSON(t, app, http.MethodGet, "/api/v1/notifications/reminders", tokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
	var reminders []struct {
		ReminderType string `json:"reminder_type"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &reminders))
	require.Len(t, reminders, 1)
	require.Equal(t, "period", reminders[0].ReminderType)

	response, _ = doJSON(t, app, http.MethodPost, "/api/v1/notifications/reminders", tokens.AccessToken, fiber.Map{
		"reminder_type":     "daily_log",
		"is_enabled":        true,
		"days_before":       0,
		"notification_time": "20:00",
	})
	require.Equal(t, http.StatusCreated, response.StatusCode)

	response, _ = doJSON(t, app, http.MethodPost, "/api/v1/notifications/reminders", tokens.AccessToken, fiber.Map{
		"reminder_type": "smoke-signal",
	})
	require.Equal(t, http.StatusBadRequest, response.StatusCode)
}
