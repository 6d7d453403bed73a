package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/wskoly/virtual-tryon/internal/database"
	"github.com/wskoly/virtual-tryon/internal/database/mock"
)

func seedModel(t *testing.T, repo *mock.Repository, categoryName, uuid, name string, active bool) {
	t.Helper()
	category, err := repo.GetCategoryByName(context.Background(), categoryName)
	if err != nil || category == nil {
		t.Fatalf("missing category %s", categoryName)
	}
	model := &database.Model{
		UUID:       uuid,
		Name:       name,
		Filename:   uuid + ".glb",
		FileType:   ".glb",
		CategoryID: category.ID,
		Position:   [3]float64{0, 0, -1},
		Scale:      [3]float64{0.2, 0.2, 0.2},
		IsActive:   active,
	}
	if err := repo.CreateModel(context.Background(), model); err != nil {
		t.Fatalf("failed to seed model: %v", err)
	}
}

func TestModelsHandler_List_GroupsByCategory(t *testing.T) {
	repo := seededRepo(t)
	seedModel(t, repo, "hats", "uuid-hat-1", "Wizard Hat", true)
	seedModel(t, repo, "hats", "uuid-hat-2", "Cowboy Hat", true)
	seedModel(t, repo, "glasses", "uuid-glasses-1", "Specs", true)

	handler := NewModelsHandler(testConfig(t), repo)
	recorder := httptest.NewRecorder()
	handler.List(recorder, httptest.NewRequest("GET", "/api/models", nil))

	assertStatusCode(t, recorder, http.StatusOK)
	grouped, ok := envelopeData(t, recorder).(map[string]any)
	if !ok {
		t.Fatalf("expected grouped object, got %T", envelopeData(t, recorder))
	}
	if len(grouped["hats"].([]any)) != 2 {
		t.Errorf("expected 2 hats, got %d", len(grouped["hats"].([]any)))
	}
	if len(grouped["glasses"].([]any)) != 1 {
		t.Errorf("expected 1 glasses, got %d", len(grouped["glasses"].([]any)))
	}

	first := grouped["hats"].([]any)[0].(map[string]any)
	if first["anchor_index"] != float64(10) {
		t.Errorf("expected category default anchor 10, got %v", first["anchor_index"])
	}
	if first["filename"] != "uuid-hat-1.glb" {
		t.Errorf("unexpected filename: %v", first["filename"])
	}
}

func TestModelsHandler_List_CategoryFilter(t *testing.T) {
	repo := seededRepo(t)
	seedModel(t, repo, "hats", "uuid-hat-1", "Wizard Hat", true)
	seedModel(t, repo, "glasses", "uuid-glasses-1", "Specs", true)

	handler := NewModelsHandler(testConfig(t), repo)
	recorder := httptest.NewRecorder()
	handler.List(recorder, httptest.NewRequest("GET", "/api/models?category=glasses", nil))

	assertStatusCode(t, recorder, http.StatusOK)
	grouped := envelopeData(t, recorder).(map[string]any)
	if _, ok := grouped["hats"]; ok {
		t.Error("expected hats to be filtered out")
	}
	if len(grouped["glasses"].([]any)) != 1 {
		t.Errorf("expected 1 glasses model, got %v", grouped["glasses"])
	}
}

func TestModelsHandler_List_ActiveOnly(t *testing.T) {
	repo := seededRepo(t)
	seedModel(t, repo, "hats", "uuid-active", "Active Hat", true)
	seedModel(t, repo, "hats", "uuid-inactive", "Retired Hat", false)

	handler := NewModelsHandler(testConfig(t), repo)

	recorder := httptest.NewRecorder()
	handler.List(recorder, httptest.NewRequest("GET", "/api/models", nil))
	grouped := envelopeData(t, recorder).(map[string]any)
	if len(grouped["hats"].([]any)) != 1 {
		t.Errorf("expected inactive model hidden by default, got %v", grouped["hats"])
	}

	recorder = httptest.NewRecorder()
	handler.List(recorder, httptest.NewRequest("GET", "/api/models?active_only=false", nil))
	grouped = envelopeData(t, recorder).(map[string]any)
	if len(grouped["hats"].([]any)) != 2 {
		t.Errorf("expected both models with active_only=false, got %v", grouped["hats"])
	}
}

func TestModelsHandler_List_RepositoryError(t *testing.T) {
	repo := seededRepo(t)
	repo.ListModelsError = errors.New("db down")

	handler := NewModelsHandler(testConfig(t), repo)
	recorder := httptest.NewRecorder()
	handler.List(recorder, httptest.NewRequest("GET", "/api/models", nil))

	assertStatusCode(t, recorder, http.StatusInternalServerError)
	assertEnvelopeError(t, recorder, "could not list models")
}

func TestModelsHandler_Delete_Success(t *testing.T) {
	cfg := testConfig(t)
	repo := seededRepo(t)
	seedModel(t, repo, "hats", "uuid-hat-1", "Wizard Hat", true)

	// Stage the files the delete should clean up.
	if err := os.MkdirAll(cfg.Storage.ModelsDir, 0o750); err != nil {
		t.Fatal(err)
	}
	modelPath := filepath.Join(cfg.Storage.ModelsDir, "uuid-hat-1.glb")
	if err := os.WriteFile(modelPath, []byte("glTF"), 0o600); err != nil {
		t.Fatal(err)
	}

	handler := NewModelsHandler(cfg, repo)
	req := requestWithChiParams(
		httptest.NewRequest("DELETE", "/api/models/uuid-hat-1", nil),
		map[string]string{"uuid": "uuid-hat-1"},
	)
	recorder := httptest.NewRecorder()
	handler.Delete(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)

	if model, _ := repo.GetModelByUUID(context.Background(), "uuid-hat-1"); model != nil {
		t.Error("expected model record removed")
	}
	if _, err := os.Stat(modelPath); !os.IsNotExist(err) {
		t.Error("expected model file removed")
	}
}

func TestModelsHandler_Delete_NotFound(t *testing.T) {
	handler := NewModelsHandler(testConfig(t), seededRepo(t))
	req := requestWithChiParams(
		httptest.NewRequest("DELETE", "/api/models/nope", nil),
		map[string]string{"uuid": "nope"},
	)
	recorder := httptest.NewRecorder()
	handler.Delete(recorder, req)

	assertStatusCode(t, recorder, http.StatusNotFound)
	assertEnvelopeError(t, recorder, "Model not found")
}

func TestModelsHandler_Delete_RepositoryError(t *testing.T) {
	repo := seededRepo(t)
	seedModel(t, repo, "hats", "uuid-hat-1", "Wizard Hat", true)
	repo.DeleteModelError = errors.New("db down")

	handler := NewModelsHandler(testConfig(t), repo)
	req := requestWithChiParams(
		httptest.NewRequest("DELETE", "/api/models/uuid-hat-1", nil),
		map[string]string{"uuid": "uuid-hat-1"},
	)
	recorder := httptest.NewRecorder()
	handler.Delete(recorder, req)

	assertStatusCode(t, recorder, http.StatusInternalServerError)
}
