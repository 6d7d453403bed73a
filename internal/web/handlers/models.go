package handlers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/wskoly/virtual-tryon/internal/config"
	"github.com/wskoly/virtual-tryon/internal/database"
)

// ModelsHandler serves the grouped model catalog and model deletion.
type ModelsHandler struct {
	config *config.Config
	repo   database.Repository
}

// NewModelsHandler creates a new models handler.
func NewModelsHandler(cfg *config.Config, repo database.Repository) *ModelsHandler {
	return &ModelsHandler{config: cfg, repo: repo}
}

// descriptorJSON is one accessory descriptor as the viewer consumes it.
type descriptorJSON struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Filename    string     `json:"filename"`
	Thumbnail   *string    `json:"thumbnail"`
	Position    [3]float64 `json:"position"`
	Rotation    [3]float64 `json:"rotation"`
	Scale       [3]float64 `json:"scale"`
	AnchorIndex int        `json:"anchor_index"`
	CreatedAt   string     `json:"created_at"`
}

func toDescriptor(m database.ModelWithCategory) descriptorJSON {
	var thumbnail *string
	if m.ThumbnailPath != "" {
		t := "/static/" + m.ThumbnailPath
		thumbnail = &t
	}
	return descriptorJSON{
		ID:          m.UUID,
		Name:        m.Name,
		Description: m.Description,
		Filename:    m.Filename,
		Thumbnail:   thumbnail,
		Position:    m.Position,
		Rotation:    m.Rotation,
		Scale:       m.Scale,
		AnchorIndex: m.Anchor(),
		CreatedAt:   m.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// List handles GET /api/models. Models are grouped by category name;
// ?category= filters to one category and ?active_only=false includes
// deactivated models.
func (h *ModelsHandler) List(w http.ResponseWriter, r *http.Request) {
	opts := database.ListOptions{
		Category:   r.URL.Query().Get("category"),
		ActiveOnly: r.URL.Query().Get("active_only") != "false",
	}

	models, err := h.repo.ListModels(r.Context(), opts)
	if err != nil {
		log.Printf("list models: %v", err)
		respondError(w, http.StatusInternalServerError, "could not list models")
		return
	}

	grouped := make(map[string][]descriptorJSON)
	for _, m := range models {
		grouped[m.CategoryName] = append(grouped[m.CategoryName], toDescriptor(m))
	}
	respondSuccess(w, grouped)
}

// Delete handles DELETE /api/models/{uuid}: removes the stored record and
// its files on disk.
func (h *ModelsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uuid := chi.URLParam(r, "uuid")

	model, err := h.repo.GetModelByUUID(r.Context(), uuid)
	if err != nil {
		log.Printf("get model %s: %v", sanitizeForLog(uuid), err)
		respondError(w, http.StatusInternalServerError, "could not load model")
		return
	}
	if model == nil {
		respondError(w, http.StatusNotFound, "Model not found")
		return
	}

	if err := h.repo.DeleteModel(r.Context(), uuid); err != nil && !errors.Is(err, database.ErrNotFound) {
		log.Printf("delete model %s: %v", sanitizeForLog(uuid), err)
		respondError(w, http.StatusInternalServerError, "Delete failed")
		return
	}

	// File removal failures are logged, not surfaced: the record is gone.
	h.removeFile(filepath.Join(h.config.Storage.ModelsDir, filepath.Base(model.Filename)))
	if model.ThumbnailPath != "" {
		// Thumbnail paths are generated by the upload handler and relative
		// to the static dir (e.g. thumbnails/<uuid>.png).
		h.removeFile(filepath.Join(h.config.Storage.StaticDir, filepath.Clean(model.ThumbnailPath)))
	}

	log.Printf("deleted model: %s", sanitizeForLog(model.Name))
	respondSuccessMessage(w, "Model deleted successfully", nil)
}

func (h *ModelsHandler) removeFile(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("could not remove %s: %v", path, err)
	}
}
