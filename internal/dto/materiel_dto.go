package dto

import "github.com/shopspring/decimal"

type CreerMaterielRequest struct {
	Nom           string          `json:"nom"            validate:"required"`
	Quantite      int             `json:"quantite"`
	PrixUnitaire  decimal.Decimal `json:"prix_unitaire"  validate:"min=0"`
	SeuilAlerte   *int            `json:"seuil_alerte"   validate:"omitempty,min=0"`
	SeuilCritique *int            `json:"seuil_critique" validate:"omitempty,min=0"`
	Categorie     string          `json:"categorie"`
	Emplacement   string          `json:"emplacement"`
}

// ModifierMaterielRequest carries partial updates; nil fields are untouched.
type ModifierMaterielRequest struct {
	Nom           *string          `json:"nom"`
	Quantite      *int             `json:"quantite"`
	PrixUnitaire  *decimal.Decimal `json:"prix_unitaire"  validate:"omitempty,min=0"`
	SeuilAlerte   *int             `json:"seuil_alerte"   validate:"omitempty,min=0"`
	SeuilCritique *int             `json:"seuil_critique" validate:"omitempty,min=0"`
	Categorie     *string          `json:"categorie"`
	Emplacement   *string          `json:"emplacement"`
}

type MaterielResponse struct {
	ID            string          `json:"id"`
	Nom           string          `json:"nom"`
	Quantite      int             `json:"quantite"`
	PrixUnitaire  decimal.Decimal `json:"prix_unitaire"`
	SeuilAlerte   int             `json:"seuil_alerte"`
	SeuilCritique int             `json:"seuil_critique"`
	Categorie     string          `json:"categorie,omitempty"`
	Emplacement   string          `json:"emplacement,omitempty"`
	CreatedAt     string          `json:"created_at"`
}
