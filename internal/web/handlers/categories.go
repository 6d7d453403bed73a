package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/wskoly/virtual-tryon/internal/config"
	"github.com/wskoly/virtual-tryon/internal/database"
)

// CategoriesHandler serves the accessory category list.
type CategoriesHandler struct {
	config *config.Config
	repo   database.Repository
}

// NewCategoriesHandler creates a new categories handler.
func NewCategoriesHandler(cfg *config.Config, repo database.Repository) *CategoriesHandler {
	return &CategoriesHandler{config: cfg, repo: repo}
}

type categoryJSON struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	AnchorIndex int    `json:"anchor_index"`
	CreatedAt   string `json:"created_at"`
}

// List handles GET /api/categories.
func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.ListCategories(r.Context())
	if err != nil {
		log.Printf("list categories: %v", err)
		respondError(w, http.StatusInternalServerError, "could not list categories")
		return
	}

	out := make([]categoryJSON, 0, len(categories))
	for _, c := range categories {
		out = append(out, categoryJSON{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			AnchorIndex: c.AnchorIndex,
			CreatedAt:   c.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	respondSuccess(w, out)
}
