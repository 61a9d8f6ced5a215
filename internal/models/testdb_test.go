package models

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&Produit{}, &Client{}, &Facture{}, &LigneFacture{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// seedBilling creates one client, one facture and one produit so that
// relation-heavy tests start from a populated store.
func seedBilling(t *testing.T, db *gorm.DB) (Client, Facture, Produit) {
	t.Helper()
	client := Client{Nom: "Durand", Prenom: "Alice", Sexe: "F", Adresse: "1 rue Haute, Lille", Tel: "0320000001"}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("client: %v", err)
	}
	facture := Facture{ClientID: client.ID, Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}
	if err := db.Create(&facture).Error; err != nil {
		t.Fatalf("facture: %v", err)
	}
	produit := Produit{Designation: "Câble HDMI", Prix: decimal.NewFromFloat(9.90)}
	if err := db.Create(&produit).Error; err != nil {
		t.Fatalf("produit: %v", err)
	}
	return client, facture, produit
}
