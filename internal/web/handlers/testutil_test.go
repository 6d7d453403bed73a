package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/wskoly/virtual-tryon/internal/config"
	"github.com/wskoly/virtual-tryon/internal/database"
	"github.com/wskoly/virtual-tryon/internal/database/mock"
)

// testConfig creates a config with storage rooted in a temp directory
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Storage: config.StorageConfig{
			ModelsDir:     filepath.Join(dir, "models"),
			StaticDir:     filepath.Join(dir, "static"),
			ThumbnailsDir: filepath.Join(dir, "static", "thumbnails"),
			MaxUploadSize: 50 * 1024 * 1024,
		},
	}
}

// seededRepo creates a mock repository with the default categories
func seededRepo(t *testing.T) *mock.Repository {
	t.Helper()
	repo := mock.NewRepository()
	ctx := context.Background()
	for _, c := range []database.Category{
		{Name: "hats", Description: "Head accessories", AnchorIndex: 10},
		{Name: "glasses", Description: "Eye accessories", AnchorIndex: 168},
	} {
		cat := c
		if err := repo.CreateCategory(ctx, &cat); err != nil {
			t.Fatalf("failed to seed category: %v", err)
		}
	}
	return repo
}

// requestWithChiParams creates a request with chi URL parameters
func requestWithChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// parseJSONResponse parses a JSON response body into the target type
func parseJSONResponse(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nBody: %s", err, recorder.Body.String())
	}
}

// assertStatusCode checks if the response has the expected status code
func assertStatusCode(t *testing.T, recorder *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if recorder.Code != expected {
		t.Errorf("expected status %d, got %d\nBody: %s", expected, recorder.Code, recorder.Body.String())
	}
}

// assertEnvelopeError checks for an error envelope with the expected message
func assertEnvelopeError(t *testing.T, recorder *httptest.ResponseRecorder, expectedMessage string) {
	t.Helper()
	var result map[string]any
	parseJSONResponse(t, recorder, &result)
	if result["status"] != "error" {
		t.Errorf("expected status 'error', got %v", result["status"])
	}
	if result["message"] != expectedMessage {
		t.Errorf("expected message '%s', got '%v'", expectedMessage, result["message"])
	}
}

// envelopeData parses a success envelope and returns its data field
func envelopeData(t *testing.T, recorder *httptest.ResponseRecorder) any {
	t.Helper()
	var result map[string]any
	parseJSONResponse(t, recorder, &result)
	if result["status"] != "success" {
		t.Fatalf("expected status 'success', got %v\nBody: %s", result["status"], recorder.Body.String())
	}
	return result["data"]
}
