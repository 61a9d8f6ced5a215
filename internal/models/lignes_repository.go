package models

import (
	"errors"

	"gorm.io/gorm"
)

// ErrLigneNotFound is returned when a ligne id does not exist within the
// requested facture scope.
var ErrLigneNotFound = errors.New("ligne de facture not found")

type LignesRepository struct {
	db *gorm.DB
}

func NewLignesRepository(db *gorm.DB) *LignesRepository {
	return &LignesRepository{db: db}
}

// ListByFacture returns the lignes of one facture with produits preloaded,
// oldest id first.
func (r *LignesRepository) ListByFacture(factureID uint) ([]LigneFacture, error) {
	var lignes []LigneFacture
	if err := r.db.Preload("Produit").Where("facture_id = ?", factureID).Order("id asc").Find(&lignes).Error; err != nil {
		return nil, err
	}
	return lignes, nil
}

// Get loads one ligne scoped by its facture.
func (r *LignesRepository) Get(factureID, id uint) (*LigneFacture, error) {
	var ligne LigneFacture
	if err := r.db.Preload("Produit").Where("facture_id = ?", factureID).First(&ligne, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLigneNotFound
		}
		return nil, err
	}
	return &ligne, nil
}

func (r *LignesRepository) Create(factureID, produitID uint, qte int) (*LigneFacture, error) {
	ligne := LigneFacture{FactureID: factureID, ProduitID: produitID, Qte: qte}
	if err := r.db.Create(&ligne).Error; err != nil {
		return nil, err
	}
	return &ligne, nil
}

func (r *LignesRepository) Update(factureID, id uint, produitID uint, qte int) (*LigneFacture, error) {
	ligne, err := r.Get(factureID, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{"produit_id": produitID, "qte": qte}
	if err := r.db.Model(ligne).Updates(updates).Error; err != nil {
		return nil, err
	}
	return ligne, nil
}

func (r *LignesRepository) Delete(factureID, id uint) error {
	res := r.db.Where("facture_id = ?", factureID).Delete(&LigneFacture{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrLigneNotFound
	}
	return nil
}
