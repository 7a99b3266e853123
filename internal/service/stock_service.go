package service

import (
	"context"
	"time"

	"github.com/LeZelote01/stock-manager/internal/dto"
	"github.com/LeZelote01/stock-manager/internal/model"
	"github.com/LeZelote01/stock-manager/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Alert levels, ordered from calm to urgent.
const (
	NiveauNormal   = "normal"
	NiveauBas      = "bas"
	NiveauCritique = "critique"
)

// NiveauAlerte classifies a quantity against the material's own thresholds.
// A quantity sitting exactly on a threshold belongs to the stricter bucket.
// Earlier deployments used fixed 15/5 constants for the alerts aggregation;
// per-material thresholds replace that behavior.
func NiveauAlerte(quantite, seuilCritique, seuilAlerte int) string {
	switch {
	case quantite <= seuilCritique:
		return NiveauCritique
	case quantite <= seuilAlerte:
		return NiveauBas
	default:
		return NiveauNormal
	}
}

type StockService interface {
	// ObtenirAlertes classifies every material and attaches a demand forecast.
	ObtenirAlertes(ctx context.Context) ([]dto.AlerteStockResponse, error)
	// ValeurStock totals quantite × prix_unitaire over all materials.
	ValeurStock(ctx context.Context) (*dto.ValeurStockResponse, error)
	ListerMouvements(ctx context.Context, filter repository.MouvementStockFilter) (*dto.MouvementListResponse, error)
}

type stockService struct {
	materielRepo  repository.MaterielRepository
	mouvementRepo repository.MouvementStockRepository
	forecast      ForecastService
}

func NewStockService(
	materielRepo repository.MaterielRepository,
	mouvementRepo repository.MouvementStockRepository,
	forecast ForecastService,
) StockService {
	return &stockService{
		materielRepo:  materielRepo,
		mouvementRepo: mouvementRepo,
		forecast:      forecast,
	}
}

func (s *stockService) ObtenirAlertes(ctx context.Context) ([]dto.AlerteStockResponse, error) {
	materiels, err := s.materielRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	alertes := make([]dto.AlerteStockResponse, 0, len(materiels))
	for i := range materiels {
		m := &materiels[i]
		alerte := dto.AlerteStockResponse{
			Material: *materielToResponse(m),
			Level:    NiveauAlerte(m.Quantite, m.SeuilCritique, m.SeuilAlerte),
		}
		// A forecasting failure degrades the alert, never suppresses it.
		if s.forecast != nil {
			pred, err := s.forecast.PredictionPourMateriel(ctx, m.ID)
			if err != nil {
				alerte.Prediction = &dto.PredictionResult{Error: err.Error()}
			} else {
				alerte.Prediction = &dto.PredictionResult{
					Prediction: pred.Value,
					Confidence: pred.Confidence,
				}
			}
		}
		alertes = append(alertes, alerte)
	}
	return alertes, nil
}

func (s *stockService) ValeurStock(ctx context.Context) (*dto.ValeurStockResponse, error) {
	materiels, err := s.materielRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for _, m := range materiels {
		total = total.Add(m.PrixUnitaire.Mul(decimal.NewFromInt(int64(m.Quantite))))
	}
	return &dto.ValeurStockResponse{ValeurTotale: total, NbMateriels: len(materiels)}, nil
}

func (s *stockService) ListerMouvements(ctx context.Context, filter repository.MouvementStockFilter) (*dto.MouvementListResponse, error) {
	mouvements, total, err := s.mouvementRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 100
	}

	items := make([]dto.MouvementResponse, 0, len(mouvements))
	for i := range mouvements {
		items = append(items, *mouvementToResponse(&mouvements[i]))
	}
	return &dto.MouvementListResponse{Data: items, Total: total, Page: page, Limit: limit}, nil
}

func mouvementToResponse(m *model.MouvementStock) *dto.MouvementResponse {
	resp := &dto.MouvementResponse{
		ID:         m.ID.String(),
		MaterielID: m.MaterielID.String(),
		Type:       m.Type,
		Quantite:   m.Quantite,
		StockAvant: m.StockAvant,
		StockApres: m.StockApres,
		Motif:      m.Motif,
		CreatedAt:  m.CreatedAt.Format(time.RFC3339),
	}
	if m.Materiel != nil {
		resp.MaterielNom = m.Materiel.Nom
	}
	if m.ReferenceID != nil && *m.ReferenceID != uuid.Nil {
		ref := m.ReferenceID.String()
		resp.ReferenceID = &ref
	}
	return resp
}
