package handlers

import (
	"errors"
	"net/http"

	"facturation/internal/httpx"
	"facturation/internal/models"
)

// ProduitHandler exposes the catalogue read-only; produits are managed by a
// separate system.
type ProduitHandler struct {
	Produits *models.ProduitsRepository
}

func NewProduitHandler(produits *models.ProduitsRepository) *ProduitHandler {
	return &ProduitHandler{Produits: produits}
}

// List: GET /produits
func (h *ProduitHandler) List(w http.ResponseWriter, r *http.Request) {
	produits, err := h.Produits.List()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_produits", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": produits, "total": len(produits)})
}

// Get: GET /produits/get?id=...
func (h *ProduitHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	produit, err := h.Produits.Get(id)
	if err != nil {
		if errors.Is(err, models.ErrProduitNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_produit", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, produit)
}
