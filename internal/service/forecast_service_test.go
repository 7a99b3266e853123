package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/LeZelote01/stock-manager/internal/apierror"
	"github.com/LeZelote01/stock-manager/internal/forecast"
	"github.com/LeZelote01/stock-manager/internal/repository"
	"github.com/LeZelote01/stock-manager/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedHistory(repo *stubDemandeRepo, materielID uuid.UUID, n, quantite int) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		repo.rows = append(repo.rows, repository.ObservationRow{
			Date:       start.AddDate(0, 0, i),
			MaterielID: materielID,
			Quantite:   quantite,
		})
	}
}

func TestRetrainHistoriqueTropMince(t *testing.T) {
	demandeRepo := newStubDemandeRepo()
	svc := service.NewForecastService(forecast.NewEngine(), demandeRepo, newStubMaterielRepo())

	err := svc.Retrain(context.Background())
	assert.ErrorIs(t, err, forecast.ErrInsufficientData)
}

func TestPredictionPourMaterielEntrainementParesseux(t *testing.T) {
	demandeRepo := newStubDemandeRepo()
	materielRepo := newStubMaterielRepo()
	engine := forecast.NewEngine()
	svc := service.NewForecastService(engine, demandeRepo, materielRepo)

	id := uuid.New()
	seedHistory(demandeRepo, id, 30, 10)

	// The first prediction trains the cold engine from history
	pred, err := svc.PredictionPourMateriel(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, engine.Trained())
	assert.InDelta(t, 10.0, pred.Value, 0.001)
	assert.Equal(t, forecast.ConfidenceMedium, pred.Confidence)
}

func TestPredictionPourMaterielSansHistorique(t *testing.T) {
	demandeRepo := newStubDemandeRepo()
	svc := service.NewForecastService(forecast.NewEngine(), demandeRepo, newStubMaterielRepo())

	// Thin history everywhere: the degraded answer, not an error
	pred, err := svc.PredictionPourMateriel(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 0.0, pred.Value)
	assert.Equal(t, forecast.ConfidenceLow, pred.Confidence)
}

func TestPredireMaterielInconnu(t *testing.T) {
	svc := service.NewForecastService(forecast.NewEngine(), newStubDemandeRepo(), newStubMaterielRepo())

	_, err := svc.Predire(context.Background(), uuid.New(), 30)
	assert.True(t, apierror.IsNotFound(err))
}

func TestPredireAvecConseilReapprovisionnement(t *testing.T) {
	demandeRepo := newStubDemandeRepo()
	materielRepo := newStubMaterielRepo()
	svc := service.NewForecastService(forecast.NewEngine(), demandeRepo, materielRepo)

	f := &demandeFixture{materielRepo: materielRepo}
	m := f.seedMateriel("Casque", 5, 12.50) // five left, ten withdrawn per day historically
	seedHistory(demandeRepo, m.ID, 30, 10)

	resp, err := svc.Predire(context.Background(), m.ID, 30)
	require.NoError(t, err)

	assert.Equal(t, m.ID.String(), resp.MaterialID)
	assert.Equal(t, 5, resp.CurrentStock)
	assert.Equal(t, 30, resp.DaysAhead)
	assert.InDelta(t, 10.0, resp.PredictedUsage, 0.001)
	// 5 units at 10/30 per day → 15 days of runway → reorder
	assert.InDelta(t, 15.0, resp.DaysUntilStockout, 0.01)
	assert.True(t, resp.ShouldReorder)
	assert.Contains(t, resp.Recommendation, "Réapprovisionnement")
}

func TestPredireHorizonParDefaut(t *testing.T) {
	demandeRepo := newStubDemandeRepo()
	materielRepo := newStubMaterielRepo()
	svc := service.NewForecastService(forecast.NewEngine(), demandeRepo, materielRepo)

	f := &demandeFixture{materielRepo: materielRepo}
	m := f.seedMateriel("Gants", 500, 3.75)
	seedHistory(demandeRepo, m.ID, 30, 10)

	resp, err := svc.Predire(context.Background(), m.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, forecast.BaseHorizonDays, resp.DaysAhead)
	assert.False(t, resp.ShouldReorder)
}
