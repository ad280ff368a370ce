package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/emerald/internal/services"
	"github.com/terraincognita07/emerald/internal/storage"
	"go.uber.org/zap"
)

var testNow = time.Date(2025, time.February, 1, 10, 0, 0, 0, time.UTC)

type testApp struct {
	app    *fiber.App
	medium *storage.MemoryMedium
	store  *storage.Store
}

func newTestApp(t *testing.T) testApp {
	t.Helper()

	medium := storage.NewMemoryMedium()
	store, err := storage.New(medium, storage.Options{
		Key: storage.DefaultObfuscationKey,
		Now: func() time.Time { return testNow },
	})
	require.NoError(t, err)

	options := services.StoreOptions{Encrypt: true, Location: time.UTC, Logger: zap.NewNop()}
	settings := services.NewSettingsService(store, options)
	symptoms := services.NewSymptomService(store, options)
	tracker := services.NewTrackerService(store, settings, symptoms, options)

	handler, err := NewHandler(Dependencies{
		Tracker:  tracker,
		Settings: settings,
		Health:   services.NewHealthLogService(store, options),
		Symptoms: symptoms,
		Stats:    services.NewStatsService(tracker, symptoms),
		Store:    store,
		Location: time.UTC,
		Now:      func() time.Time { return testNow },
	})
	require.NoError(t, err)

	return testApp{app: NewApp(handler, AppOptions{}), medium: medium, store: store}
}

func (ta testApp) do(t *testing.T, method string, path string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	response, err := ta.app.Test(request, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = response.Body.Close() })
	return response
}

func decodeJSON[T any](t *testing.T, response *http.Response) T {
	t.Helper()
	var value T
	require.NoError(t, json.NewDecoder(response.Body).Decode(&value))
	return value
}

func readAPIError(t *testing.T, body io.Reader) string {
	t.Helper()

	payload := map[string]string{}
	raw, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return payload["error"]
}
