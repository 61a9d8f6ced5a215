package handlers

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"facturation/internal/models"
	"facturation/internal/services"
)

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Produit{}, &models.Client{}, &models.Facture{}, &models.LigneFacture{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// seedFixtures creates one client, one facture for that client and one
// produit so handler tests can exercise the relations.
func seedFixtures(t *testing.T, db *gorm.DB) (models.Client, models.Facture, models.Produit) {
	t.Helper()
	client := models.Client{Nom: "Durand", Prenom: "Alice", Sexe: "F", Adresse: "1 rue Haute, Lille", Tel: "0320000001"}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("client: %v", err)
	}
	facture := models.Facture{ClientID: client.ID, Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}
	if err := db.Create(&facture).Error; err != nil {
		t.Fatalf("facture: %v", err)
	}
	produit := models.Produit{Designation: "Clavier", Prix: decimal.NewFromFloat(25.00)}
	if err := db.Create(&produit).Error; err != nil {
		t.Fatalf("produit: %v", err)
	}
	return client, facture, produit
}

func newClientHandler(db *gorm.DB) *ClientHandler {
	return NewClientHandler(
		models.NewClientsRepository(db),
		models.NewFacturesRepository(db),
		services.NewRevenueService(db),
	)
}

func newFactureHandler(db *gorm.DB) *FactureHandler {
	return NewFactureHandler(
		models.NewFacturesRepository(db),
		models.NewClientsRepository(db),
		services.NewFactureService(),
	)
}

func newLigneHandler(db *gorm.DB) *LigneHandler {
	return NewLigneHandler(
		models.NewLignesRepository(db),
		models.NewFacturesRepository(db),
		models.NewProduitsRepository(db),
	)
}
