package model

import (
	"time"

	"github.com/google/uuid"
)

// Agent is a field agent who carries out a withdrawal. Two agents sign each
// demande de sortie.
type Agent struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nom       string    `gorm:"not null"`
	Matricule string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Superviseur authorizes withdrawals on behalf of the agents.
type Superviseur struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nom       string    `gorm:"not null"`
	Matricule string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ChefSection is reference data only; no core flow resolves it.
type ChefSection struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nom       string    `gorm:"not null"`
	Matricule string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ChefSection) TableName() string { return "chefs_section" }
