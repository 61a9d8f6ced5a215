package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"facturation/internal/forms"
	"facturation/internal/httpx"
	"facturation/internal/models"
	"facturation/internal/services"
	"facturation/internal/table"
	"facturation/internal/validation"
)

type FactureHandler struct {
	Factures *models.FacturesRepository
	Clients  *models.ClientsRepository
	Svc      *services.FactureService
}

func NewFactureHandler(factures *models.FacturesRepository, clients *models.ClientsRepository, svc *services.FactureService) *FactureHandler {
	return &FactureHandler{Factures: factures, Clients: clients, Svc: svc}
}

type factureRequest struct {
	ClientID uint   `json:"client_id"`
	Date     string `json:"date"` // 2006-01-02
}

func (req *factureRequest) validate(clients *models.ClientsRepository) (time.Time, validation.Violations, error) {
	v := validation.Violations{}
	validation.RequiredID("client_id", req.ClientID, v)
	var date time.Time
	if req.Date == "" {
		v["date"] = "required"
	} else {
		var err error
		date, err = time.Parse("2006-01-02", req.Date)
		if err != nil {
			v["date"] = "invalid_date"
		}
	}
	if req.ClientID != 0 {
		exists, err := clients.Exists(req.ClientID)
		if err != nil {
			return time.Time{}, nil, err
		}
		validation.MustExist("client_id", exists, v)
	}
	return date, v, nil
}

// List: GET /factures
func (h *FactureHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	offset := 0
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 1 {
			offset = (n - 1) * limit
		}
	}
	factures, total, err := h.Factures.List(offset, limit)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_factures", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": factures, "total": total, "limit": limit, "offset": offset})
}

// Create: POST /factures
func (h *FactureHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req factureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	date, v, err := req.validate(h.Clients)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_validate", nil)
		return
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	facture, err := h.Factures.Create(req.ClientID, date)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "facture_create_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, facture)
}

// Get: GET /factures/get?id=... – the facture detail: header fields plus the
// ligne table (2 rows per page hint, as on the original detail screen) and
// the facture total.
func (h *FactureHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	facture, err := h.Factures.Get(id)
	if err != nil {
		if errors.Is(err, models.ErrFactureNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_facture", nil)
		return
	}
	payload := table.New([]string{"designation", "produit_id", "prix", "qte"}, table.LignesPageSize)
	payload.Total = int64(len(facture.Lignes))
	fid := strconv.FormatUint(uint64(facture.ID), 10)
	for _, ligne := range facture.Lignes {
		lid := strconv.FormatUint(uint64(ligne.ID), 10)
		payload.Add(
			[]any{ligne.Produit.Designation, ligne.ProduitID, ligne.Produit.Prix, ligne.Qte},
			table.Action{Label: "Modifier", Route: "/lignes/update?facture_id=" + fid + "&id=" + lid, Style: "warning"},
			table.Action{Label: "Supprimer", Route: "/lignes/delete?facture_id=" + fid + "&id=" + lid, Style: "danger"},
		)
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"facture": facture,
		"lignes":  payload,
		"total":   h.Svc.Total(facture),
	})
}

// Update: POST /factures/update?id=... – re-validates client existence.
func (h *FactureHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	var req factureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	date, v, err := req.validate(h.Clients)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_validate", nil)
		return
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	facture, err := h.Factures.Update(id, req.ClientID, date)
	if err != nil {
		if errors.Is(err, models.ErrFactureNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "facture_update_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, facture)
}

// Delete: POST /factures/delete?id=... – cascades to the lignes.
func (h *FactureHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Factures.Delete(id); err != nil {
		if errors.Is(err, models.ErrFactureNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "facture_delete_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Form: GET /factures/form – field descriptors with the client select
// populated from the current client list.
func (h *FactureHandler) Form(w http.ResponseWriter, r *http.Request) {
	clients, _, err := h.Clients.List(0, 200)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_clients", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"fields": forms.FactureFields(clients)})
}
