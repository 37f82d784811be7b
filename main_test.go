package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"giftcatalog/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func memoryConfig(t *testing.T) *config.Config {
	t.Helper()
	v := viper.New()
	v.Set("DB_DRIVER", config.DriverMemory)
	v.Set("JWT_SECRET", "test_jwt_secret")
	v.Set("EVENTS_DRIVER", config.EventsNone)
	cfg, err := config.Load(v)
	require.NoError(t, err)
	return cfg
}

func send(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func TestHealth(t *testing.T) {
	application, err := newApplication(memoryConfig(t))
	require.NoError(t, err)
	defer application.Close()

	status, body := send(t, application.app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, config.DriverMemory, body["storage"])
	assert.Equal(t, config.EventsNone, body["events"])
}

func TestPanicsBecomeServerErrors(t *testing.T) {
	application, err := newApplication(memoryConfig(t))
	require.NoError(t, err)
	defer application.Close()

	application.app.Get("/boom", func(c *fiber.Ctx) error {
		panic("handler exploded")
	})

	resp, err := application.app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	status, body := send(t, application.app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])
}

func TestCatalogFlow(t *testing.T) {
	application, err := newApplication(memoryConfig(t))
	require.NoError(t, err)
	defer application.Close()
	app := application.app

	status, _ := send(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "curator",
		"email":    "curator@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := send(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "curator",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, status)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	suggestion := map[string]any{
		"name":            "Headphones",
		"description":     "Wireless headphones for music lovers",
		"minPrice":        10,
		"maxPrice":        100,
		"ageGroup":        "ADULT",
		"gender":          "UNISEX",
		"interest":        "MUSIC",
		"occasion":        "BIRTHDAY",
		"relationship":    "FRIEND",
		"personalityType": "CREATIVE",
	}
	status, _ = send(t, app, http.MethodPost, "/api/v1/suggestions/", "", suggestion)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = send(t, app, http.MethodPost, "/api/v1/suggestions/", token, suggestion)
	require.Equal(t, http.StatusCreated, status)
	suggestionID, _ := body["id"].(string)
	require.NotEmpty(t, suggestionID)

	gift := map[string]any{
		"name":             "Sony WH-1000",
		"exactPrice":       200,
		"vendorName":       "Amazon",
		"giftSuggestionId": suggestionID,
	}
	status, _ = send(t, app, http.MethodPost, "/api/v1/gifts/", token, gift)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	gift["exactPrice"] = 80
	status, _ = send(t, app, http.MethodPost, "/api/v1/gifts/", token, gift)
	require.Equal(t, http.StatusCreated, status)

	status, body = send(t, app, http.MethodGet, "/api/v1/suggestions/"+suggestionID+"/gifts", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1.0, body["totalElements"])

	status, _ = send(t, app, http.MethodDelete, "/api/v1/suggestions/"+suggestionID, token, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, body = send(t, app, http.MethodGet, "/api/v1/gifts/count", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0.0, body["count"])
}

func TestNewApplication_UnreachableBroker(t *testing.T) {
	cfg := memoryConfig(t)
	cfg.EventsDriver = config.EventsNATS
	cfg.NATSURL = "nats://127.0.0.1:1"

	_, err := newApplication(cfg)
	assert.Error(t, err)
}
