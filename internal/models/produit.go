package models

import (
	"github.com/shopspring/decimal"
)

// Produit is catalogue reference data. Invoice lines point at it; the
// billing write paths never mutate it.
type Produit struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Designation string          `gorm:"not null" json:"designation"`
	Prix        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"prix"`
}

func (p *Produit) TableName() string {
	return "produits"
}
