package dto

import "github.com/shopspring/decimal"

// ─── Stock alerts ────────────────────────────────────────────────────────────

// PredictionResult is the forecast attached to each stock alert. Either the
// prediction fields or Error is set, never both.
type PredictionResult struct {
	Prediction float64 `json:"prediction"`
	Confidence string  `json:"confidence"` // "low" | "medium"
	Error      string  `json:"error,omitempty"`
}

type AlerteStockResponse struct {
	Material   MaterielResponse  `json:"material"`
	Level      string            `json:"level"` // "normal" | "bas" | "critique"
	Prediction *PredictionResult `json:"prediction,omitempty"`
}

// ─── Per-material prediction ────────────────────────────────────────────────

type PredictionResponse struct {
	MaterialID        string  `json:"material_id"`
	MaterialNom       string  `json:"material_name"`
	CurrentStock      int     `json:"current_stock"`
	DaysAhead         int     `json:"days_ahead"`
	PredictedUsage    float64 `json:"predicted_usage"`
	DaysUntilStockout float64 `json:"days_until_stockout"`
	ShouldReorder     bool    `json:"should_reorder"`
	Confidence        string  `json:"confidence"`
	Recommendation    string  `json:"recommendation"`
}

// ─── Aggregations ────────────────────────────────────────────────────────────

type ValeurStockResponse struct {
	ValeurTotale decimal.Decimal `json:"valeur_totale"`
	NbMateriels  int             `json:"nb_materiels"`
}

type MouvementResponse struct {
	ID          string  `json:"id"`
	MaterielID  string  `json:"materiel_id"`
	MaterielNom string  `json:"materiel_nom,omitempty"`
	Type        string  `json:"type"`
	Quantite    int     `json:"quantite"`
	StockAvant  int     `json:"stock_avant"`
	StockApres  int     `json:"stock_apres"`
	Motif       string  `json:"motif,omitempty"`
	ReferenceID *string `json:"reference_id,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

type MouvementListResponse struct {
	Data  []MouvementResponse `json:"data"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
}
