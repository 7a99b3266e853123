package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/LeZelote01/stock-manager/internal/dto"
	"github.com/LeZelote01/stock-manager/internal/forecast"
	"github.com/LeZelote01/stock-manager/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubForecast struct {
	pred forecast.Prediction
	err  error
}

func (f *stubForecast) Retrain(_ context.Context) error { return nil }

func (f *stubForecast) PredictionPourMateriel(_ context.Context, _ uuid.UUID) (forecast.Prediction, error) {
	return f.pred, f.err
}

func (f *stubForecast) Predire(_ context.Context, _ uuid.UUID, _ int) (*dto.PredictionResponse, error) {
	return nil, f.err
}

var _ service.ForecastService = (*stubForecast)(nil)

func TestNiveauAlerte(t *testing.T) {
	cases := []struct {
		quantite, seuilCritique, seuilAlerte int
		want                                 string
	}{
		{11, 5, 10, service.NiveauNormal},
		{10, 5, 10, service.NiveauBas},
		{6, 5, 10, service.NiveauBas},
		{5, 5, 10, service.NiveauCritique},
		{0, 5, 10, service.NiveauCritique},
		{-3, 5, 10, service.NiveauCritique},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, service.NiveauAlerte(c.quantite, c.seuilCritique, c.seuilAlerte),
			"quantite=%d seuils=%d/%d", c.quantite, c.seuilCritique, c.seuilAlerte)
	}
}

func TestObtenirAlertesClasseChaqueMateriel(t *testing.T) {
	repo := newStubMaterielRepo()
	fc := &stubForecast{pred: forecast.Prediction{Value: 7.5, Confidence: forecast.ConfidenceMedium}}
	svc := service.NewStockService(repo, &stubMouvementRepo{}, fc)

	f := &demandeFixture{materielRepo: repo}
	f.seedMateriel("Normal", 50, 1.00)
	f.seedMateriel("Bas", 8, 1.00)
	f.seedMateriel("Critique", 2, 1.00)

	alertes, err := svc.ObtenirAlertes(context.Background())
	require.NoError(t, err)
	require.Len(t, alertes, 3)

	byNom := make(map[string]dto.AlerteStockResponse, len(alertes))
	for _, a := range alertes {
		byNom[a.Material.Nom] = a
	}
	assert.Equal(t, service.NiveauNormal, byNom["Normal"].Level)
	assert.Equal(t, service.NiveauBas, byNom["Bas"].Level)
	assert.Equal(t, service.NiveauCritique, byNom["Critique"].Level)

	require.NotNil(t, byNom["Normal"].Prediction)
	assert.Equal(t, 7.5, byNom["Normal"].Prediction.Prediction)
	assert.Equal(t, forecast.ConfidenceMedium, byNom["Normal"].Prediction.Confidence)
}

func TestObtenirAlertesForecastEnEchecDegradeSansSupprimer(t *testing.T) {
	repo := newStubMaterielRepo()
	fc := &stubForecast{err: errors.New("model unavailable")}
	svc := service.NewStockService(repo, &stubMouvementRepo{}, fc)

	f := &demandeFixture{materielRepo: repo}
	f.seedMateriel("Casque", 2, 1.00)

	alertes, err := svc.ObtenirAlertes(context.Background())
	require.NoError(t, err)
	require.Len(t, alertes, 1)
	assert.Equal(t, service.NiveauCritique, alertes[0].Level)
	require.NotNil(t, alertes[0].Prediction)
	assert.Equal(t, "model unavailable", alertes[0].Prediction.Error)
}

func TestValeurStock(t *testing.T) {
	repo := newStubMaterielRepo()
	svc := service.NewStockService(repo, &stubMouvementRepo{}, nil)

	f := &demandeFixture{materielRepo: repo}
	f.seedMateriel("Casque", 40, 12.50)
	f.seedMateriel("Gants", 120, 3.75)

	resp, err := svc.ValeurStock(context.Background())
	require.NoError(t, err)
	// 40×12.50 + 120×3.75 = 950
	assert.Equal(t, "950", resp.ValeurTotale.String())
	assert.Equal(t, 2, resp.NbMateriels)
}

func TestValeurStockVide(t *testing.T) {
	svc := service.NewStockService(newStubMaterielRepo(), &stubMouvementRepo{}, nil)

	resp, err := svc.ValeurStock(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.ValeurTotale.IsZero())
	assert.Equal(t, 0, resp.NbMateriels)
}
