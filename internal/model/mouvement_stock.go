package model

import (
	"time"

	"github.com/google/uuid"
)

// MouvementStock records every stock change on a material. Created
// automatically when a demande decrements stock or when an administrator
// adjusts a quantity by hand.
type MouvementStock struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MaterielID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Type        string    `gorm:"not null"` // "sortie" | "ajustement"
	Quantite    int       `gorm:"not null"` // positive = entrée, negative = sortie
	StockAvant  int       `gorm:"not null"`
	StockApres  int       `gorm:"not null"`
	Motif       string
	ReferenceID *uuid.UUID `gorm:"type:uuid"` // demande_id when Type == "sortie"
	CreatedAt   time.Time

	Materiel *Materiel `gorm:"foreignKey:MaterielID"`
}

// TableName overrides GORM's default pluralization.
func (MouvementStock) TableName() string { return "mouvements_stock" }
