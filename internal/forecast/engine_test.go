package forecast

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func steadySeries(id uuid.UUID, n, quantite int) []Observation {
	obs := make([]Observation, n)
	for i := range obs {
		obs[i] = Observation{Date: day(i), MaterielID: id, Quantite: quantite}
	}
	return obs
}

func recentFor(id uuid.UUID, quantities ...int) []Observation {
	obs := make([]Observation, len(quantities)) // newest first
	for i, q := range quantities {
		obs[i] = Observation{Date: day(100 - i), MaterielID: id, Quantite: q}
	}
	return obs
}

func TestTrainInsufficientData(t *testing.T) {
	e := NewEngine()

	err := e.Train(series(uuid.New(), 3, 4, 5))
	assert.ErrorIs(t, err, ErrInsufficientData)
	assert.False(t, e.Trained())
}

func TestPredictUntrained(t *testing.T) {
	e := NewEngine()
	id := uuid.New()

	p := e.Predict(time.Now(), recentFor(id, 5, 5, 5), 30)
	assert.Equal(t, 0.0, p.Value)
	assert.Equal(t, ConfidenceLow, p.Confidence)
}

func TestPredictNoRecentHistory(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.Train(steadySeries(uuid.New(), 30, 10)))

	p := e.Predict(time.Now(), nil, 30)
	assert.Equal(t, 0.0, p.Value)
	assert.Equal(t, ConfidenceLow, p.Confidence)
}

func TestTrainAndPredictSteadyDemand(t *testing.T) {
	e := NewEngine()
	id := uuid.New()
	require.NoError(t, e.Train(steadySeries(id, 30, 10)))
	require.True(t, e.Trained())

	p := e.Predict(day(31), recentFor(id, 10, 10, 10, 10, 10), 30)
	// Every training target is 10, so the trees can only predict 10.
	assert.InDelta(t, 10.0, p.Value, 0.001)
	assert.Equal(t, ConfidenceMedium, p.Confidence)
}

func TestPredictNeverNegative(t *testing.T) {
	e := NewEngine()
	id := uuid.New()
	require.NoError(t, e.Train(steadySeries(id, 30, 7)))

	p := e.Predict(day(31), recentFor(id, 1, 50, 3), 30)
	assert.GreaterOrEqual(t, p.Value, 0.0)
}

func TestPredictHorizonRescaling(t *testing.T) {
	e := NewEngine()
	id := uuid.New()
	require.NoError(t, e.Train(steadySeries(id, 30, 10)))
	recent := recentFor(id, 10, 10, 10)

	p30 := e.Predict(day(31), recent, 30)
	p60 := e.Predict(day(31), recent, 60)
	p7 := e.Predict(day(31), recent, 7)

	assert.InDelta(t, 2*p30.Value, p60.Value, 0.001)
	assert.InDelta(t, p30.Value*7/30, p7.Value, 0.001)
}

func TestPredictDefaultHorizon(t *testing.T) {
	e := NewEngine()
	id := uuid.New()
	require.NoError(t, e.Train(steadySeries(id, 30, 10)))
	recent := recentFor(id, 10, 10, 10)

	assert.Equal(t, e.Predict(day(31), recent, BaseHorizonDays).Value, e.Predict(day(31), recent, 0).Value)
}

func TestConfidenceTiers(t *testing.T) {
	e := NewEngine()
	id := uuid.New()
	require.NoError(t, e.Train(steadySeries(id, 30, 10)))

	assert.Equal(t, ConfidenceLow, e.Predict(day(31), recentFor(id, 10, 10), 30).Confidence)
	assert.Equal(t, ConfidenceMedium, e.Predict(day(31), recentFor(id, 10, 10, 10), 30).Confidence)
}

func TestFailedRetrainKeepsPreviousModel(t *testing.T) {
	e := NewEngine()
	id := uuid.New()
	require.NoError(t, e.Train(steadySeries(id, 30, 10)))
	first, ok := e.TrainedAt()
	require.True(t, ok)

	err := e.Train(steadySeries(id, 2, 10))
	assert.ErrorIs(t, err, ErrInsufficientData)

	// Previous snapshot still installed and serving
	assert.True(t, e.Trained())
	second, _ := e.TrainedAt()
	assert.Equal(t, first, second)

	p := e.Predict(day(31), recentFor(id, 10, 10, 10), 30)
	assert.InDelta(t, 10.0, p.Value, 0.001)
}

func TestConcurrentTrainAndPredict(t *testing.T) {
	e := NewEngine()
	id := uuid.New()
	require.NoError(t, e.Train(steadySeries(id, 30, 10)))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 20; i++ {
			_ = e.Train(steadySeries(id, 30, 10))
		}
	}()

	recent := recentFor(id, 10, 10, 10)
	for i := 0; i < 200; i++ {
		p := e.Predict(day(31), recent, 30)
		// A reader must always see a coherent snapshot, never a torn one
		assert.InDelta(t, 10.0, p.Value, 0.001)
	}
	<-done
}
