package server

import (
	"net/http"

	"gorm.io/gorm"

	"facturation/internal/handlers"
	"facturation/internal/httpx"
	"facturation/internal/models"
	"facturation/internal/services"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB) http.Handler {
	mux := http.NewServeMux()

	clients := models.NewClientsRepository(db)
	factures := models.NewFacturesRepository(db)
	lignes := models.NewLignesRepository(db)
	produits := models.NewProduitsRepository(db)

	// --- Health endpoints ---
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Client endpoints. The listing carries the chiffre d'affaires column.
	ch := handlers.NewClientHandler(clients, factures, services.NewRevenueService(db))
	mux.HandleFunc("/clients", getPost(ch.List, ch.Create))
	mux.HandleFunc("/clients/get", getOnly(ch.Get))
	mux.HandleFunc("/clients/update", postOnly(ch.Update))
	mux.HandleFunc("/clients/delete", postOnly(ch.Delete))
	mux.HandleFunc("/clients/factures", getOnly(ch.FacturesList))
	mux.HandleFunc("/clients/form", getOnly(ch.Form))

	// Facture endpoints
	fh := handlers.NewFactureHandler(factures, clients, services.NewFactureService())
	mux.HandleFunc("/factures", getPost(fh.List, fh.Create))
	mux.HandleFunc("/factures/get", getOnly(fh.Get))
	mux.HandleFunc("/factures/update", postOnly(fh.Update))
	mux.HandleFunc("/factures/delete", postOnly(fh.Delete))
	mux.HandleFunc("/factures/form", getOnly(fh.Form))

	// Ligne endpoints, scoped by facture
	lh := handlers.NewLigneHandler(lignes, factures, produits)
	mux.HandleFunc("/lignes", getPost(lh.List, lh.Create))
	mux.HandleFunc("/lignes/update", postOnly(lh.Update))
	mux.HandleFunc("/lignes/delete", postOnly(lh.Delete))
	mux.HandleFunc("/lignes/form", getOnly(lh.Form))

	// Produit endpoints (read-only reference data)
	ph := handlers.NewProduitHandler(produits)
	mux.HandleFunc("/produits", getOnly(ph.List))
	mux.HandleFunc("/produits/get", getOnly(ph.Get))

	return withRecover(mux)
}

func getPost(get, post http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			get(w, r)
		case http.MethodPost:
			post(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	}
}

func getOnly(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", "GET")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
			return
		}
		h(w, r)
	}
}

func postOnly(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", "POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
			return
		}
		h(w, r)
	}
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
