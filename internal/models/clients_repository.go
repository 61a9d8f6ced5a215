package models

import (
	"errors"

	"gorm.io/gorm"
)

// ErrClientNotFound is returned when a client id does not exist.
var ErrClientNotFound = errors.New("client not found")

// ErrClientHasFactures is returned when deleting a client that still owns
// factures. The delete is blocked; the caller must remove the factures first.
var ErrClientHasFactures = errors.New("client still has factures")

// ClientFields is the whitelist of mutable client attributes.
type ClientFields struct {
	Nom     string
	Prenom  string
	Sexe    string
	Adresse string
	Tel     string
}

type ClientsRepository struct {
	db *gorm.DB
}

func NewClientsRepository(db *gorm.DB) *ClientsRepository {
	return &ClientsRepository{db: db}
}

func (r *ClientsRepository) List(offset, limit int) ([]Client, int64, error) {
	var clients []Client
	var total int64
	if err := r.db.Model(&Client{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := r.db.Order("id asc").Offset(offset).Limit(limit).Find(&clients).Error; err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}

func (r *ClientsRepository) Get(id uint) (*Client, error) {
	var client Client
	if err := r.db.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return &client, nil
}

func (r *ClientsRepository) Exists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&Client{}).Where("id = ?", id).Limit(1).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ClientsRepository) Create(fields ClientFields) (*Client, error) {
	client := Client{Nom: fields.Nom, Prenom: fields.Prenom, Sexe: fields.Sexe, Adresse: fields.Adresse, Tel: fields.Tel}
	if err := r.db.Create(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *ClientsRepository) Update(id uint, fields ClientFields) (*Client, error) {
	client, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{
		"nom":     fields.Nom,
		"prenom":  fields.Prenom,
		"sexe":    fields.Sexe,
		"adresse": fields.Adresse,
		"tel":     fields.Tel,
	}
	if err := r.db.Model(client).Updates(updates).Error; err != nil {
		return nil, err
	}
	return client, nil
}

// Delete removes a client. Clients still owning factures are not deleted:
// the policy here is block, not cascade.
func (r *ClientsRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Facture{}).Where("client_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrClientHasFactures
		}
		res := tx.Delete(&Client{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrClientNotFound
		}
		return nil
	})
}
