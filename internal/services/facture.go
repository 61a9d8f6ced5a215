package services

import (
	"github.com/shopspring/decimal"

	"facturation/internal/models"
)

// FactureService holds facture-level derivations that do not warrant a
// round-trip to the store.
type FactureService struct{}

func NewFactureService() *FactureService { return &FactureService{} }

// Total sums qte * prix over the facture's lignes. Assumes Lignes are
// preloaded with their Produit.
func (s *FactureService) Total(f *models.Facture) decimal.Decimal {
	total := decimal.Zero
	if f == nil {
		return total
	}
	for _, ligne := range f.Lignes {
		sousTotal := ligne.Produit.Prix.Mul(decimal.NewFromInt(int64(ligne.Qte)))
		total = total.Add(sousTotal)
	}
	return total
}
