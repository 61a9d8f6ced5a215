package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facturation/internal/models"
	"facturation/internal/table"
)

func TestLigneCreate(t *testing.T) {
	db := setupHandlerTestDB(t)
	h := newLigneHandler(db)
	_, facture, produit := seedFixtures(t, db)

	body := `{"facture_id":` + strconv.Itoa(int(facture.ID)) + `,"produit_id":` + strconv.Itoa(int(produit.ID)) + `,"qte":4}`
	req := httptest.NewRequest(http.MethodPost, "/lignes", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Create(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.LigneFacture
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 4, created.Qte)
}

func TestLigneCreateUnknownProduit(t *testing.T) {
	db := setupHandlerTestDB(t)
	h := newLigneHandler(db)
	_, facture, _ := seedFixtures(t, db)

	body := `{"facture_id":` + strconv.Itoa(int(facture.ID)) + `,"produit_id":888,"qte":1}`
	req := httptest.NewRequest(http.MethodPost, "/lignes", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Create(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "does_not_exist", resp.Details["produit_id"])

	// Storage untouched by the failed create.
	var count int64
	require.NoError(t, db.Model(&models.LigneFacture{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLigneCreateZeroQuantityAllowed(t *testing.T) {
	db := setupHandlerTestDB(t)
	h := newLigneHandler(db)
	_, facture, produit := seedFixtures(t, db)

	body := `{"facture_id":` + strconv.Itoa(int(facture.ID)) + `,"produit_id":` + strconv.Itoa(int(produit.ID)) + `,"qte":0}`
	req := httptest.NewRequest(http.MethodPost, "/lignes", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Create(w, req)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestLigneCreateNegativeQuantityRejected(t *testing.T) {
	db := setupHandlerTestDB(t)
	h := newLigneHandler(db)
	_, facture, produit := seedFixtures(t, db)

	body := `{"facture_id":` + strconv.Itoa(int(facture.ID)) + `,"produit_id":` + strconv.Itoa(int(produit.ID)) + `,"qte":-2}`
	req := httptest.NewRequest(http.MethodPost, "/lignes", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Create(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLigneListByFacture(t *testing.T) {
	db := setupHandlerTestDB(t)
	h := newLigneHandler(db)
	_, facture, produit := seedFixtures(t, db)
	require.NoError(t, db.Create(&models.LigneFacture{FactureID: facture.ID, ProduitID: produit.ID, Qte: 2}).Error)

	req := httptest.NewRequest(http.MethodGet, "/lignes?facture_id="+strconv.Itoa(int(facture.ID)), nil)
	w := httptest.NewRecorder()
	h.List(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var payload table.Payload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, table.LignesPageSize, payload.PageSize)
	require.Len(t, payload.Rows, 1)
	assert.Equal(t, "Clavier", payload.Rows[0].Cells[0])

	// Unknown facture: 404.
	w = httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/lignes?facture_id=999", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLigneUpdateScopedByFacture(t *testing.T) {
	db := setupHandlerTestDB(t)
	h := newLigneHandler(db)
	client, facture, produit := seedFixtures(t, db)
	ligne := models.LigneFacture{FactureID: facture.ID, ProduitID: produit.ID, Qte: 1}
	require.NoError(t, db.Create(&ligne).Error)

	other := models.Facture{ClientID: client.ID, Date: facture.Date}
	require.NoError(t, db.Create(&other).Error)

	// Wrong facture scope: the ligne is invisible there.
	url := "/lignes/update?facture_id=" + strconv.Itoa(int(other.ID)) + "&id=" + strconv.Itoa(int(ligne.ID))
	body := `{"produit_id":` + strconv.Itoa(int(produit.ID)) + `,"qte":9}`
	w := httptest.NewRecorder()
	h.Update(w, httptest.NewRequest(http.MethodPost, url, strings.NewReader(body)))
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Right scope: quantity changes.
	url = "/lignes/update?facture_id=" + strconv.Itoa(int(facture.ID)) + "&id=" + strconv.Itoa(int(ligne.ID))
	w = httptest.NewRecorder()
	h.Update(w, httptest.NewRequest(http.MethodPost, url, strings.NewReader(body)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.LigneFacture
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, 9, updated.Qte)
}

func TestLigneDelete(t *testing.T) {
	db := setupHandlerTestDB(t)
	h := newLigneHandler(db)
	_, facture, produit := seedFixtures(t, db)
	ligne := models.LigneFacture{FactureID: facture.ID, ProduitID: produit.ID, Qte: 1}
	require.NoError(t, db.Create(&ligne).Error)

	url := "/lignes/delete?facture_id=" + strconv.Itoa(int(facture.ID)) + "&id=" + strconv.Itoa(int(ligne.ID))
	w := httptest.NewRecorder()
	h.Delete(w, httptest.NewRequest(http.MethodPost, url, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.LigneFacture{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLigneFormScopedToFacture(t *testing.T) {
	db := setupHandlerTestDB(t)
	h := newLigneHandler(db)
	client, facture, _ := seedFixtures(t, db)
	other := models.Facture{ClientID: client.ID, Date: facture.Date}
	require.NoError(t, db.Create(&other).Error)

	req := httptest.NewRequest(http.MethodGet, "/lignes/form?facture_id="+strconv.Itoa(int(facture.ID)), nil)
	w := httptest.NewRecorder()
	h.Form(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Fields []struct {
			Name    string `json:"name"`
			Choices []struct {
				Value string `json:"value"`
			} `json:"choices"`
		} `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Fields)
	assert.Equal(t, "facture_id", resp.Fields[0].Name)
	// Navigation context narrows the facture select to the one facture.
	require.Len(t, resp.Fields[0].Choices, 1)
	assert.Equal(t, strconv.Itoa(int(facture.ID)), resp.Fields[0].Choices[0].Value)

	// Without the context the select offers every facture.
	w = httptest.NewRecorder()
	h.Form(w, httptest.NewRequest(http.MethodGet, "/lignes/form", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Fields[0].Choices, 2)
}
