// Package forms describes input forms as plain data for the external form
// collaborator. Descriptors are built per request by pure functions and
// discarded afterwards; there is no shared form state.
package forms

import (
	"strconv"

	"facturation/internal/models"
)

type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type Field struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Kind     string   `json:"kind"` // text, date, number, select
	Required bool     `json:"required"`
	Choices  []Choice `json:"choices,omitempty"`
}

// ClientFields describes the whitelisted client form.
func ClientFields() []Field {
	return []Field{
		{Name: "nom", Label: "Nom", Kind: "text", Required: true},
		{Name: "prenom", Label: "Prénom", Kind: "text"},
		{Name: "sexe", Label: "Sexe", Kind: "select", Choices: []Choice{{Value: "M", Label: "Masculin"}, {Value: "F", Label: "Féminin"}}},
		{Name: "adresse", Label: "Adresse", Kind: "text"},
		{Name: "tel", Label: "Téléphone", Kind: "text"},
	}
}

// FactureFields describes the facture form; the client select is populated
// from the current client list.
func FactureFields(clients []models.Client) []Field {
	return []Field{
		{Name: "client_id", Label: "Client", Kind: "select", Required: true, Choices: clientChoices(clients)},
		{Name: "date", Label: "Date", Kind: "date", Required: true},
	}
}

// LigneFields describes the ligne form. When the caller navigates from a
// facture detail page, factures holds that single facture and the select is
// pre-constrained to it. This is a navigation default, not a data invariant.
func LigneFields(factures []models.Facture, produits []models.Produit) []Field {
	factureChoices := make([]Choice, len(factures))
	for i, f := range factures {
		factureChoices[i] = Choice{Value: strconv.FormatUint(uint64(f.ID), 10), Label: "Facture n°" + strconv.FormatUint(uint64(f.ID), 10)}
	}
	produitChoices := make([]Choice, len(produits))
	for i, p := range produits {
		produitChoices[i] = Choice{Value: strconv.FormatUint(uint64(p.ID), 10), Label: p.Designation}
	}
	return []Field{
		{Name: "facture_id", Label: "Facture", Kind: "select", Required: true, Choices: factureChoices},
		{Name: "produit_id", Label: "Produit", Kind: "select", Required: true, Choices: produitChoices},
		{Name: "qte", Label: "Quantité", Kind: "number", Required: true},
	}
}

func clientChoices(clients []models.Client) []Choice {
	choices := make([]Choice, len(clients))
	for i, c := range clients {
		choices[i] = Choice{Value: strconv.FormatUint(uint64(c.ID), 10), Label: c.Nom + " " + c.Prenom}
	}
	return choices
}
