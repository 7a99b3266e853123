package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CreerDemandeRequest is the body of POST /api/demandes. Materiels maps
// materiel id → requested quantity; zero and negative entries are filtered
// out downstream rather than rejected.
type CreerDemandeRequest struct {
	SuperviseurID string         `json:"superviseur_id" validate:"required,uuid"`
	Agent1ID      string         `json:"agent1_id"      validate:"required,uuid"`
	Agent2ID      string         `json:"agent2_id"      validate:"required,uuid"`
	Materiels     map[string]int `json:"materiels"      validate:"required,min=1"`
	Signature     *string        `json:"signature"`
	Notes         *string        `json:"notes"`
}

// DemandeFilter is bound from the query string of GET /api/demandes.
type DemandeFilter struct {
	Page  int `form:"page,default=1"   validate:"min=1"`
	Limit int `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LigneDemandeResponse struct {
	MaterielID   string          `json:"materiel_id"`
	MaterielNom  string          `json:"materiel_nom"`
	Quantite     int             `json:"quantite"`
	PrixUnitaire decimal.Decimal `json:"prix_unitaire"`
	SousTotal    decimal.Decimal `json:"sous_total"`
}

type DemandeResponse struct {
	ID                   string                 `json:"id"`
	SuperviseurID        string                 `json:"superviseur_id"`
	SuperviseurNom       string                 `json:"superviseur_nom"`
	SuperviseurMatricule string                 `json:"superviseur_matricule"`
	Agent1ID             string                 `json:"agent1_id"`
	Agent1Nom            string                 `json:"agent1_nom"`
	Agent1Matricule      string                 `json:"agent1_matricule"`
	Agent2ID             string                 `json:"agent2_id"`
	Agent2Nom            string                 `json:"agent2_nom"`
	Agent2Matricule      string                 `json:"agent2_matricule"`
	Date                 string                 `json:"date"`
	Lignes               []LigneDemandeResponse `json:"lignes"`
	ValeurTotale         decimal.Decimal        `json:"valeur_totale"`
	Status               string                 `json:"status"`
	Signature            *string                `json:"signature,omitempty"`
	Notes                *string                `json:"notes,omitempty"`
}

type DemandeListResponse struct {
	Data  []DemandeResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
