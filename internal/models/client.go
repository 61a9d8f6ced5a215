package models

// Client entity
type Client struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Nom      string    `gorm:"not null;index" json:"nom"`
	Prenom   string    `json:"prenom"`
	Sexe     string    `json:"sexe"` // catégorie libre, pas de contrainte en base
	Adresse  string    `json:"adresse"`
	Tel      string    `json:"tel"`
	Factures []Facture `gorm:"foreignKey:ClientID" json:"factures,omitempty"`
}

func (c *Client) TableName() string {
	return "clients"
}
