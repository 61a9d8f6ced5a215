package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"facturation/internal/forms"
	"facturation/internal/httpx"
	"facturation/internal/models"
	"facturation/internal/table"
	"facturation/internal/validation"
)

type LigneHandler struct {
	Lignes   *models.LignesRepository
	Factures *models.FacturesRepository
	Produits *models.ProduitsRepository
}

func NewLigneHandler(lignes *models.LignesRepository, factures *models.FacturesRepository, produits *models.ProduitsRepository) *LigneHandler {
	return &LigneHandler{Lignes: lignes, Factures: factures, Produits: produits}
}

type ligneRequest struct {
	FactureID uint `json:"facture_id"`
	ProduitID uint `json:"produit_id"`
	Qte       int  `json:"qte"`
}

// validate checks the non-negative quantity and both foreign keys before
// anything touches storage.
func (req *ligneRequest) validate(factures *models.FacturesRepository, produits *models.ProduitsRepository) (validation.Violations, error) {
	v := validation.Violations{}
	validation.RequiredID("facture_id", req.FactureID, v)
	validation.RequiredID("produit_id", req.ProduitID, v)
	validation.NonNegativeInt("qte", req.Qte, v)
	if req.FactureID != 0 {
		exists, err := factures.Exists(req.FactureID)
		if err != nil {
			return nil, err
		}
		validation.MustExist("facture_id", exists, v)
	}
	if req.ProduitID != 0 {
		exists, err := produits.Exists(req.ProduitID)
		if err != nil {
			return nil, err
		}
		validation.MustExist("produit_id", exists, v)
	}
	return v, nil
}

// List: GET /lignes?facture_id=... – the lignes of one facture as a table
// payload (paginated at 2 rows per page by the renderer).
func (h *LigneHandler) List(w http.ResponseWriter, r *http.Request) {
	factureID, ok := parseID(w, r, "facture_id")
	if !ok {
		return
	}
	exists, err := h.Factures.Exists(factureID)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_facture", nil)
		return
	}
	if !exists {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	lignes, err := h.Lignes.ListByFacture(factureID)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_lignes", nil)
		return
	}
	payload := table.New([]string{"designation", "produit_id", "prix", "qte"}, table.LignesPageSize)
	payload.Total = int64(len(lignes))
	for _, ligne := range lignes {
		payload.Add([]any{ligne.Produit.Designation, ligne.ProduitID, ligne.Produit.Prix, ligne.Qte})
	}
	httpx.JSON(w, http.StatusOK, payload)
}

// Create: POST /lignes
func (h *LigneHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ligneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v, err := req.validate(h.Factures, h.Produits)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_validate", nil)
		return
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	ligne, err := h.Lignes.Create(req.FactureID, req.ProduitID, req.Qte)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "ligne_create_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, ligne)
}

// Update: POST /lignes/update?facture_id=...&id=...
func (h *LigneHandler) Update(w http.ResponseWriter, r *http.Request) {
	factureID, ok := parseID(w, r, "facture_id")
	if !ok {
		return
	}
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	var req ligneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	req.FactureID = factureID // scope wins over any body value
	v, err := req.validate(h.Factures, h.Produits)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_validate", nil)
		return
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	ligne, err := h.Lignes.Update(factureID, id, req.ProduitID, req.Qte)
	if err != nil {
		if errors.Is(err, models.ErrLigneNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "ligne_update_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, ligne)
}

// Delete: POST /lignes/delete?facture_id=...&id=...
func (h *LigneHandler) Delete(w http.ResponseWriter, r *http.Request) {
	factureID, ok := parseID(w, r, "facture_id")
	if !ok {
		return
	}
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Lignes.Delete(factureID, id); err != nil {
		if errors.Is(err, models.ErrLigneNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "ligne_delete_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Form: GET /lignes/form[?facture_id=...] – field descriptors. When a
// facture_id is supplied (creation from a facture detail page) the facture
// select is narrowed to that single facture.
func (h *LigneHandler) Form(w http.ResponseWriter, r *http.Request) {
	var factures []models.Facture
	if raw := r.URL.Query().Get("facture_id"); raw != "" {
		factureID, ok := parseID(w, r, "facture_id")
		if !ok {
			return
		}
		facture, err := h.Factures.Get(factureID)
		if err != nil {
			if errors.Is(err, models.ErrFactureNotFound) {
				httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
				return
			}
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_facture", nil)
			return
		}
		factures = []models.Facture{*facture}
	} else {
		all, _, err := h.Factures.List(0, 200)
		if err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_factures", nil)
			return
		}
		factures = all
	}
	produits, err := h.Produits.List()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_produits", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"fields": forms.LigneFields(factures, produits)})
}
