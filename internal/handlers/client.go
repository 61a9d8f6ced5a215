package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"facturation/internal/forms"
	"facturation/internal/httpx"
	"facturation/internal/models"
	"facturation/internal/services"
	"facturation/internal/table"
	"facturation/internal/validation"
)

type ClientHandler struct {
	Clients  *models.ClientsRepository
	Factures *models.FacturesRepository
	Revenue  *services.RevenueService
}

func NewClientHandler(clients *models.ClientsRepository, factures *models.FacturesRepository, revenue *services.RevenueService) *ClientHandler {
	return &ClientHandler{Clients: clients, Factures: factures, Revenue: revenue}
}

type clientRequest struct {
	Nom     string `json:"nom"`
	Prenom  string `json:"prenom"`
	Sexe    string `json:"sexe"`
	Adresse string `json:"adresse"`
	Tel     string `json:"tel"`
}

// List: GET /clients – the client table with the chiffre d'affaires column.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	pageSize := table.ClientsPageSize
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			pageSize = n
		}
	}
	offset := 0
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 1 {
			offset = (n - 1) * pageSize
		}
	}
	rows, total, err := h.Revenue.ParClient(offset, pageSize)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_clients", nil)
		return
	}
	payload := table.New([]string{"id", "nom", "prenom", "adresse", "chiffre_affaire"}, pageSize)
	payload.Total = total
	for _, row := range rows {
		id := strconv.FormatUint(uint64(row.ID), 10)
		payload.Add(
			[]any{row.ID, row.Nom, row.Prenom, row.Adresse, row.ChiffreAffaire},
			table.Action{Label: "Modifier", Route: "/clients/update?id=" + id, Style: "warning"},
			table.Action{Label: "Supprimer", Route: "/clients/delete?id=" + id, Style: "danger"},
			table.Action{Label: "Liste Factures", Route: "/clients/factures?id=" + id, Style: "danger"},
		)
	}
	httpx.JSON(w, http.StatusOK, payload)
}

// Create: POST /clients
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("nom", req.Nom, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	client, err := h.Clients.Create(models.ClientFields{Nom: req.Nom, Prenom: req.Prenom, Sexe: req.Sexe, Adresse: req.Adresse, Tel: req.Tel})
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "client_create_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, client)
}

// Get: GET /clients/get?id=...
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	client, err := h.Clients.Get(id)
	if err != nil {
		if errors.Is(err, models.ErrClientNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_client", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, client)
}

// Update: POST /clients/update?id=...
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("nom", req.Nom, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	client, err := h.Clients.Update(id, models.ClientFields{Nom: req.Nom, Prenom: req.Prenom, Sexe: req.Sexe, Adresse: req.Adresse, Tel: req.Tel})
	if err != nil {
		if errors.Is(err, models.ErrClientNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "client_update_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, client)
}

// Delete: POST /clients/delete?id=...
// Blocked while the client still owns factures.
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Clients.Delete(id); err != nil {
		switch {
		case errors.Is(err, models.ErrClientNotFound):
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		case errors.Is(err, models.ErrClientHasFactures):
			httpx.JSONError(w, http.StatusConflict, "client_has_factures", nil)
		default:
			httpx.JSONError(w, http.StatusInternalServerError, "client_delete_failed", nil)
		}
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Factures: GET /clients/factures?id=... – all factures of one client.
// 404 only when the client itself is unknown; a client without factures
// yields an empty table.
func (h *ClientHandler) FacturesList(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	exists, err := h.Clients.Exists(id)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_client", nil)
		return
	}
	if !exists {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	factures, err := h.Factures.ListByClient(id)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_factures", nil)
		return
	}
	payload := table.New([]string{"id", "date"}, table.ClientsPageSize)
	payload.Total = int64(len(factures))
	for _, f := range factures {
		payload.Add([]any{f.ID, f.Date.Format("2006-01-02")})
	}
	httpx.JSON(w, http.StatusOK, payload)
}

// Form: GET /clients/form – field descriptors for the client form.
func (h *ClientHandler) Form(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]any{"fields": forms.ClientFields()})
}

// parseID reads a positive integer query parameter, answering 400 itself
// when the value is missing or malformed.
func parseID(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_"+name, nil)
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_"+name, nil)
		return 0, false
	}
	return uint(n), true
}
