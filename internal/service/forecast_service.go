package service

import (
	"context"
	"errors"
	"time"

	"github.com/LeZelote01/stock-manager/internal/apierror"
	"github.com/LeZelote01/stock-manager/internal/dto"
	"github.com/LeZelote01/stock-manager/internal/forecast"
	"github.com/LeZelote01/stock-manager/internal/repository"

	"github.com/google/uuid"
)

// recentObservationWindow is how many trailing observations feed a single
// prediction's lag/rolling features.
const recentObservationWindow = 5

type ForecastService interface {
	// Retrain refits the model from the full withdrawal history.
	// forecast.ErrInsufficientData is expected on thin histories.
	Retrain(ctx context.Context) error
	// PredictionPourMateriel forecasts usage over the base 30-day horizon.
	PredictionPourMateriel(ctx context.Context, materielID uuid.UUID) (forecast.Prediction, error)
	// Predire builds the full prediction + reorder response for one material.
	Predire(ctx context.Context, materielID uuid.UUID, daysAhead int) (*dto.PredictionResponse, error)
}

type forecastService struct {
	engine       *forecast.Engine
	demandeRepo  repository.DemandeRepository
	materielRepo repository.MaterielRepository
}

func NewForecastService(
	engine *forecast.Engine,
	demandeRepo repository.DemandeRepository,
	materielRepo repository.MaterielRepository,
) ForecastService {
	return &forecastService{
		engine:       engine,
		demandeRepo:  demandeRepo,
		materielRepo: materielRepo,
	}
}

func (s *forecastService) Retrain(ctx context.Context) error {
	rows, err := s.demandeRepo.ListObservations(ctx)
	if err != nil {
		return err
	}
	return s.engine.Train(toObservations(rows))
}

func (s *forecastService) PredictionPourMateriel(ctx context.Context, materielID uuid.UUID) (forecast.Prediction, error) {
	return s.predict(ctx, materielID, forecast.BaseHorizonDays)
}

func (s *forecastService) predict(ctx context.Context, materielID uuid.UUID, daysAhead int) (forecast.Prediction, error) {
	// Lazy training: a cold engine gets one attempt from history before we
	// fall back to the degraded {0, low} answer.
	if !s.engine.Trained() {
		if err := s.Retrain(ctx); err != nil && !errors.Is(err, forecast.ErrInsufficientData) {
			return forecast.Prediction{}, err
		}
	}

	recent, err := s.demandeRepo.RecentObservations(ctx, materielID, recentObservationWindow)
	if err != nil {
		return forecast.Prediction{}, err
	}
	return s.engine.Predict(time.Now().UTC(), toObservations(recent), daysAhead), nil
}

func (s *forecastService) Predire(ctx context.Context, materielID uuid.UUID, daysAhead int) (*dto.PredictionResponse, error) {
	materiel, err := s.materielRepo.FindByID(ctx, materielID)
	if err != nil {
		return nil, apierror.NewNotFound("materiel", materielID.String())
	}
	if daysAhead <= 0 {
		daysAhead = forecast.BaseHorizonDays
	}

	pred, err := s.predict(ctx, materielID, daysAhead)
	if err != nil {
		return nil, err
	}
	advice := forecast.Advise(materiel.Quantite, pred.Value, daysAhead)

	return &dto.PredictionResponse{
		MaterialID:        materiel.ID.String(),
		MaterialNom:       materiel.Nom,
		CurrentStock:      materiel.Quantite,
		DaysAhead:         daysAhead,
		PredictedUsage:    pred.Value,
		DaysUntilStockout: advice.DaysUntilStockout,
		ShouldReorder:     advice.ShouldReorder,
		Confidence:        pred.Confidence,
		Recommendation:    advice.Recommendation,
	}, nil
}

func toObservations(rows []repository.ObservationRow) []forecast.Observation {
	obs := make([]forecast.Observation, len(rows))
	for i, r := range rows {
		obs[i] = forecast.Observation{Date: r.Date, MaterielID: r.MaterielID, Quantite: r.Quantite}
	}
	return obs
}
