package forecast

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// ErrInsufficientData is returned by Train when the history is too thin to
// fit a model. It is a degraded state, not a failure: predictions simply fall
// back to {0, low}.
var ErrInsufficientData = errors.New("forecast: insufficient training data")

// BaseHorizonDays is the horizon the model natively predicts; other horizons
// are linear rescalings of it.
const BaseHorizonDays = 30

// snapshot bundles the fitted model with the scaler it was trained with.
// The pair is always installed and read as a unit so an in-flight prediction
// can never mix an old scaler with a new forest.
type snapshot struct {
	forest    *forest
	scaler    *standardScaler
	trainedAt time.Time
}

// Engine is the per-deployment forecasting component. One instance is
// constructed at startup and shared by reference; Train may run concurrently
// with Predict, readers always see the last successfully trained snapshot.
type Engine struct {
	snap    atomic.Pointer[snapshot]
	trainMu sync.Mutex // serializes whole-model retrains
}

func NewEngine() *Engine { return &Engine{} }

// Trained reports whether a model snapshot is installed.
func (e *Engine) Trained() bool { return e.snap.Load() != nil }

// TrainedAt returns the timestamp of the installed snapshot.
func (e *Engine) TrainedAt() (time.Time, bool) {
	s := e.snap.Load()
	if s == nil {
		return time.Time{}, false
	}
	return s.trainedAt, true
}

// Train fits a fresh model from the full observation history and swaps it in
// atomically. On ErrInsufficientData (or any failure) the previous snapshot —
// if any — stays installed untouched.
func (e *Engine) Train(obs []Observation) error {
	e.trainMu.Lock()
	defer e.trainMu.Unlock()

	X, y := buildTrainingSet(obs)
	if X == nil {
		return ErrInsufficientData
	}

	scaler := fitScaler(X)
	f := fitForest(scaler.transformAll(X), y)

	e.snap.Store(&snapshot{forest: f, scaler: scaler, trainedAt: time.Now()})
	return nil
}

// Predict forecasts the usage of one material over horizonDays. recent must
// hold the material's most recent observations newest first (the service
// passes at most five). An untrained engine or an empty history yields
// {0, low}.
func (e *Engine) Predict(now time.Time, recent []Observation, horizonDays int) Prediction {
	s := e.snap.Load()
	if s == nil || len(recent) == 0 {
		return Prediction{Value: 0, Confidence: ConfidenceLow}
	}
	if horizonDays <= 0 {
		horizonDays = BaseHorizonDays
	}

	row := s.scaler.transform(predictionFeatures(now, recent))
	base := s.forest.predict(row)
	if base < 0 {
		base = 0
	}

	value := base * float64(horizonDays) / float64(BaseHorizonDays)

	confidence := ConfidenceLow
	if len(recent) >= 3 {
		confidence = ConfidenceMedium
	}
	return Prediction{Value: value, Confidence: confidence}
}
