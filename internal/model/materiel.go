package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Default alert thresholds applied when a material is created without
// explicit values. The stock-alert classifier always reads the per-material
// columns, never these constants directly.
const (
	DefaultSeuilAlerte   = 10
	DefaultSeuilCritique = 5
)

// Materiel is a consumable stock item. Quantite is mutated exclusively by the
// ledger decrement inside a demande transaction and by administrative edits;
// it is allowed to go negative, which the alert classifier surfaces as
// "critique" rather than the ledger blocking the withdrawal.
type Materiel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nom           string          `gorm:"index;not null"`
	Quantite      int             `gorm:"not null;default:0"`
	PrixUnitaire  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	SeuilAlerte   int             `gorm:"not null;default:10"`
	SeuilCritique int             `gorm:"not null;default:5"`
	Categorie     string
	Emplacement   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName keeps the collection name used by the legacy deployment.
func (Materiel) TableName() string { return "materiels" }
