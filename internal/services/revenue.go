package services

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"facturation/internal/models"
)

// ClientRevenue is one row of the chiffre d'affaires report: the client's
// identity plus the revenue derived from all lignes of all its factures.
type ClientRevenue struct {
	ID             uint            `json:"id"`
	Nom            string          `json:"nom"`
	Prenom         string          `json:"prenom"`
	Adresse        string          `json:"adresse"`
	ChiffreAffaire decimal.Decimal `json:"chiffre_affaire"`
}

// RevenueService computes per-client revenue as a single grouped join
// Client -> Facture -> LigneFacture -> Produit. Pure read, no side effects.
type RevenueService struct {
	db *gorm.DB
}

func NewRevenueService(db *gorm.DB) *RevenueService {
	return &RevenueService{db: db}
}

// ParClient returns one row per client, ascending id, including clients with
// no factures or no lignes. SUM over zero rows is NULL in SQL; COALESCE
// normalizes it to 0 so a fresh client reads as zero revenue. Each line
// contributes qte * prix; the subtotal is taken per line, then summed.
func (s *RevenueService) ParClient(offset, limit int) ([]ClientRevenue, int64, error) {
	var total int64
	if err := s.db.Model(&models.Client{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []ClientRevenue
	err := s.db.Table("clients").
		Select("clients.id, clients.nom, clients.prenom, clients.adresse, COALESCE(SUM(ligne_factures.qte * produits.prix), 0) AS chiffre_affaire").
		Joins("LEFT JOIN factures ON factures.client_id = clients.id").
		Joins("LEFT JOIN ligne_factures ON ligne_factures.facture_id = factures.id").
		Joins("LEFT JOIN produits ON produits.id = ligne_factures.produit_id").
		Group("clients.id, clients.nom, clients.prenom, clients.adresse").
		Order("clients.id asc").
		Offset(offset).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// PourClient computes the revenue of a single client. NotFound is signalled
// with models.ErrClientNotFound so callers can distinguish "unknown client"
// from "client with zero revenue".
func (s *RevenueService) PourClient(clientID uint) (*ClientRevenue, error) {
	var count int64
	if err := s.db.Model(&models.Client{}).Where("id = ?", clientID).Limit(1).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, models.ErrClientNotFound
	}
	var row ClientRevenue
	err := s.db.Table("clients").
		Select("clients.id, clients.nom, clients.prenom, clients.adresse, COALESCE(SUM(ligne_factures.qte * produits.prix), 0) AS chiffre_affaire").
		Joins("LEFT JOIN factures ON factures.client_id = clients.id").
		Joins("LEFT JOIN ligne_factures ON ligne_factures.facture_id = factures.id").
		Joins("LEFT JOIN produits ON produits.id = ligne_factures.produit_id").
		Where("clients.id = ?", clientID).
		Group("clients.id, clients.nom, clients.prenom, clients.adresse").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}
