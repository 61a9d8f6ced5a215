package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrFactureNotFound is returned when a facture id does not exist.
var ErrFactureNotFound = errors.New("facture not found")

type FacturesRepository struct {
	db *gorm.DB
}

func NewFacturesRepository(db *gorm.DB) *FacturesRepository {
	return &FacturesRepository{db: db}
}

func (r *FacturesRepository) List(offset, limit int) ([]Facture, int64, error) {
	var factures []Facture
	var total int64
	if err := r.db.Model(&Facture{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := r.db.Order("id asc").Offset(offset).Limit(limit).Find(&factures).Error; err != nil {
		return nil, 0, err
	}
	return factures, total, nil
}

// Get loads a facture with its lines and their produits, ready for the
// detail table.
func (r *FacturesRepository) Get(id uint) (*Facture, error) {
	var facture Facture
	if err := r.db.Preload("Lignes.Produit").First(&facture, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFactureNotFound
		}
		return nil, err
	}
	return &facture, nil
}

func (r *FacturesRepository) Exists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&Facture{}).Where("id = ?", id).Limit(1).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByClient returns all factures owned by a client, oldest id first.
// An empty slice is a valid answer; the caller decides whether the client
// itself exists.
func (r *FacturesRepository) ListByClient(clientID uint) ([]Facture, error) {
	var factures []Facture
	if err := r.db.Where("client_id = ?", clientID).Order("id asc").Find(&factures).Error; err != nil {
		return nil, err
	}
	return factures, nil
}

func (r *FacturesRepository) Create(clientID uint, date time.Time) (*Facture, error) {
	facture := Facture{ClientID: clientID, Date: date}
	if err := r.db.Create(&facture).Error; err != nil {
		return nil, err
	}
	return &facture, nil
}

func (r *FacturesRepository) Update(id uint, clientID uint, date time.Time) (*Facture, error) {
	var facture Facture
	if err := r.db.First(&facture, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFactureNotFound
		}
		return nil, err
	}
	updates := map[string]any{"client_id": clientID, "date": date}
	if err := r.db.Model(&facture).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &facture, nil
}

// Delete removes a facture and cascades to its lignes in one transaction.
// Orphan lignes are meaningless, so the cascade is unconditional.
func (r *FacturesRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("facture_id = ?", id).Delete(&LigneFacture{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&Facture{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrFactureNotFound
		}
		return nil
	})
}
