package models

import (
	"errors"

	"gorm.io/gorm"
)

// ErrProduitNotFound is returned when a produit id does not exist.
var ErrProduitNotFound = errors.New("produit not found")

// ProduitsRepository is read-only from the billing side: produits are
// managed elsewhere and only referenced here.
type ProduitsRepository struct {
	db *gorm.DB
}

func NewProduitsRepository(db *gorm.DB) *ProduitsRepository {
	return &ProduitsRepository{db: db}
}

func (r *ProduitsRepository) List() ([]Produit, error) {
	var produits []Produit
	if err := r.db.Order("id asc").Find(&produits).Error; err != nil {
		return nil, err
	}
	return produits, nil
}

func (r *ProduitsRepository) Get(id uint) (*Produit, error) {
	var produit Produit
	if err := r.db.First(&produit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProduitNotFound
		}
		return nil, err
	}
	return &produit, nil
}

func (r *ProduitsRepository) Exists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&Produit{}).Where("id = ?", id).Limit(1).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
