package models

import "time"

// Facturation models
type Facture struct {
	ID       uint           `gorm:"primaryKey" json:"id"`
	Date     time.Time      `gorm:"not null" json:"date"`
	ClientID uint           `gorm:"not null;index" json:"client_id"`
	Client   Client         `gorm:"foreignKey:ClientID" json:"-"`
	Lignes   []LigneFacture `gorm:"foreignKey:FactureID;constraint:OnDelete:CASCADE" json:"lignes,omitempty"`
}

func (f *Facture) TableName() string {
	return "factures"
}

type LigneFacture struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	FactureID uint    `gorm:"not null;index" json:"facture_id"`
	ProduitID uint    `gorm:"not null;index" json:"produit_id"`
	Produit   Produit `gorm:"foreignKey:ProduitID" json:"produit"`
	Qte       int     `gorm:"not null" json:"qte"`
}

func (l *LigneFacture) TableName() string {
	return "ligne_factures"
}
