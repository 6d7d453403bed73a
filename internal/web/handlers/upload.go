package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/wskoly/virtual-tryon/internal/config"
	"github.com/wskoly/virtual-tryon/internal/database"
	"github.com/wskoly/virtual-tryon/internal/thumbs"
)

// UploadHandler handles accessory model uploads.
type UploadHandler struct {
	config *config.Config
	repo   database.Repository
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(cfg *config.Config, repo database.Repository) *UploadHandler {
	return &UploadHandler{config: cfg, repo: repo}
}

// allowedModelExt reports whether ext is an accepted model file extension.
func allowedModelExt(ext string) bool {
	return ext == ".glb" || ext == ".gltf"
}

// Upload handles POST /api/upload. Expects a multipart form with a "file"
// model (.glb or .gltf), required "category_name" and "name" fields, an
// optional "description" and an optional "thumbnail" preview image.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.config.Storage.MaxUploadSize)
	if err := r.ParseMultipartForm(h.config.Storage.MaxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	name := normalizeName(r.FormValue("name"))
	if name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	categoryName := strings.TrimSpace(r.FormValue("category_name"))
	if categoryName == "" {
		respondError(w, http.StatusBadRequest, "category_name is required")
		return
	}

	category, err := h.repo.GetCategoryByName(r.Context(), categoryName)
	if err != nil {
		log.Printf("get category %s: %v", sanitizeForLog(categoryName), err)
		respondError(w, http.StatusInternalServerError, "could not load category")
		return
	}
	if category == nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown category: %s", categoryName))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "no model file provided")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedModelExt(ext) {
		respondError(w, http.StatusBadRequest, "only .glb and .gltf files are supported")
		return
	}

	modelUUID := uuid.New().String()
	storedName := modelUUID + ext
	modelPath := filepath.Join(h.config.Storage.ModelsDir, storedName)

	size, err := h.saveFile(file, modelPath)
	if err != nil {
		log.Printf("save model file: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to save model file")
		return
	}

	thumbnailPath, err := h.saveThumbnail(r, modelUUID)
	if err != nil {
		// A broken preview image should not block the model upload.
		log.Printf("thumbnail for %s: %v", modelUUID, err)
		thumbnailPath = ""
	}

	model := &database.Model{
		UUID:             modelUUID,
		Name:             name,
		Description:      r.FormValue("description"),
		Filename:         storedName,
		OriginalFilename: filepath.Base(header.Filename),
		FileSize:         size,
		FileType:         ext,
		ThumbnailPath:    thumbnailPath,
		CategoryID:       category.ID,
		Position:         [3]float64{0, 0, -1},
		Scale:            [3]float64{0.2, 0.2, 0.2},
		IsActive:         true,
	}

	if err := h.repo.CreateModel(r.Context(), model); err != nil {
		log.Printf("create model: %v", err)
		h.removeFile(modelPath)
		if thumbnailPath != "" {
			h.removeFile(filepath.Join(h.config.Storage.StaticDir, filepath.Clean(thumbnailPath)))
		}
		respondError(w, http.StatusInternalServerError, "failed to store model")
		return
	}

	log.Printf("uploaded model: %s (%s)", sanitizeForLog(name), modelUUID)
	respondSuccessMessage(w, "Model uploaded successfully", map[string]any{
		"id":       modelUUID,
		"name":     model.Name,
		"filename": storedName,
	})
}

// saveFile streams src into path, creating parent directories, and returns
// the number of bytes written.
func (h *UploadHandler) saveFile(src io.Reader, path string) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return 0, fmt.Errorf("failed to create directory: %w", err)
	}
	out, err := os.Create(path) //nolint:gosec // filename is a generated uuid
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	size, err := io.Copy(out, src)
	if err != nil {
		out.Close()
		h.removeFile(path)
		return 0, fmt.Errorf("failed to write file: %w", err)
	}
	if err := out.Close(); err != nil {
		return 0, fmt.Errorf("failed to close file: %w", err)
	}
	return size, nil
}

// saveThumbnail processes an optional "thumbnail" form image and returns its
// path relative to the static mount, or "" when none was provided.
func (h *UploadHandler) saveThumbnail(r *http.Request, modelUUID string) (string, error) {
	file, _, err := r.FormFile("thumbnail")
	if err != nil {
		return "", nil // field absent
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read thumbnail: %w", err)
	}
	scaled, err := thumbs.Generate(data, thumbs.MaxSize)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(h.config.Storage.ThumbnailsDir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create thumbnails directory: %w", err)
	}
	name := modelUUID + ".png"
	if err := os.WriteFile(filepath.Join(h.config.Storage.ThumbnailsDir, name), scaled, 0o600); err != nil {
		return "", fmt.Errorf("failed to write thumbnail: %w", err)
	}
	return "thumbnails/" + name, nil
}

func (h *UploadHandler) removeFile(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("could not remove %s: %v", path, err)
	}
}
