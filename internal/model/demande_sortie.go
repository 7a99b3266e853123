package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StatusApprouve is the only status a demande ever carries: the system
// auto-approves at creation time, there is no pending/rejected workflow.
const StatusApprouve = "approuve"

// DemandeSortie is a withdrawal request. Supervisor and agent names and
// badges are denormalized at creation so the record stays readable even if
// the reference rows are later edited or removed. Immutable once created.
type DemandeSortie struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`

	SuperviseurID        uuid.UUID `gorm:"type:uuid;not null;index"`
	SuperviseurNom       string    `gorm:"not null"`
	SuperviseurMatricule string    `gorm:"not null"`

	Agent1ID        uuid.UUID `gorm:"type:uuid;not null"`
	Agent1Nom       string    `gorm:"not null"`
	Agent1Matricule string    `gorm:"not null"`

	Agent2ID        uuid.UUID `gorm:"type:uuid;not null"`
	Agent2Nom       string    `gorm:"not null"`
	Agent2Matricule string    `gorm:"not null"`

	Date         time.Time       `gorm:"not null;index"`
	ValeurTotale decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Status       string          `gorm:"not null;default:'approuve'"`
	Signature    *string
	Notes        *string
	CreatedAt    time.Time

	Lignes []LigneDemande `gorm:"foreignKey:DemandeID"`
}

func (DemandeSortie) TableName() string { return "demandes_sortie" }

// LigneDemande is one (materiel, quantite) line of a demande. PrixUnitaire is
// the unit price captured at withdrawal time, so historical valuations stay
// stable when prices change later.
type LigneDemande struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DemandeID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	MaterielID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	MaterielNom  string          `gorm:"not null"`
	Quantite     int             `gorm:"not null"`
	PrixUnitaire decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SousTotal    decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CreatedAt    time.Time

	Materiel *Materiel `gorm:"foreignKey:MaterielID"`
}

func (LigneDemande) TableName() string { return "lignes_demande" }
