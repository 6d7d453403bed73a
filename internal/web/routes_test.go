package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/wskoly/virtual-tryon/internal/config"
	"github.com/wskoly/virtual-tryon/internal/database"
	"github.com/wskoly/virtual-tryon/internal/database/mock"
)

func testServer(t *testing.T) (*Server, *mock.Repository, *config.Config) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 0},
		Storage: config.StorageConfig{
			ModelsDir:     filepath.Join(dir, "models"),
			StaticDir:     filepath.Join(dir, "static"),
			ThumbnailsDir: filepath.Join(dir, "static", "thumbnails"),
			MaxUploadSize: 1024 * 1024,
		},
	}
	repo := mock.NewRepository()
	category := &database.Category{Name: "hats", AnchorIndex: 10}
	if err := repo.CreateCategory(context.Background(), category); err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	return NewServer(cfg, repo), repo, cfg
}

func TestRoutes_Health(t *testing.T) {
	server, _, _ := testServer(t)
	recorder := httptest.NewRecorder()
	server.Router().ServeHTTP(recorder, httptest.NewRequest("GET", "/api/health", nil))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("expected healthy, got %v", body["status"])
	}
}

func TestRoutes_ModelsAndCategories(t *testing.T) {
	server, repo, _ := testServer(t)
	category, _ := repo.GetCategoryByName(context.Background(), "hats")
	model := &database.Model{
		UUID:       "uuid-1",
		Name:       "Wizard Hat",
		Filename:   "uuid-1.glb",
		CategoryID: category.ID,
		IsActive:   true,
	}
	if err := repo.CreateModel(context.Background(), model); err != nil {
		t.Fatal(err)
	}

	recorder := httptest.NewRecorder()
	server.Router().ServeHTTP(recorder, httptest.NewRequest("GET", "/api/models", nil))
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	var envelope struct {
		Status string                       `json:"status"`
		Data   map[string][]map[string]any `json:"data"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if len(envelope.Data["hats"]) != 1 {
		t.Errorf("expected 1 hat, got %v", envelope.Data)
	}

	recorder = httptest.NewRecorder()
	server.Router().ServeHTTP(recorder, httptest.NewRequest("GET", "/api/categories", nil))
	if recorder.Code != http.StatusOK {
		t.Errorf("expected 200 for categories, got %d", recorder.Code)
	}
}

func TestRoutes_DeleteUnknownModel(t *testing.T) {
	server, _, _ := testServer(t)
	recorder := httptest.NewRecorder()
	server.Router().ServeHTTP(recorder, httptest.NewRequest("DELETE", "/api/models/missing", nil))
	if recorder.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", recorder.Code)
	}
}

func TestRoutes_ModelFileMount(t *testing.T) {
	server, _, cfg := testServer(t)
	if err := os.MkdirAll(cfg.Storage.ModelsDir, 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfg.Storage.ModelsDir, "uuid-1.glb"), []byte("glTF"), 0o600); err != nil {
		t.Fatal(err)
	}

	recorder := httptest.NewRecorder()
	server.Router().ServeHTTP(recorder, httptest.NewRequest("GET", "/models/uuid-1.glb", nil))
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if recorder.Body.String() != "glTF" {
		t.Errorf("unexpected file body: %q", recorder.Body.String())
	}
}

func TestRoutes_IndexPlaceholder(t *testing.T) {
	server, _, _ := testServer(t)
	recorder := httptest.NewRecorder()
	server.Router().ServeHTTP(recorder, httptest.NewRequest("GET", "/", nil))
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if ct := recorder.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("unexpected content type %q", ct)
	}
}
