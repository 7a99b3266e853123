// Package forecast implements the demand-forecasting engine: it learns a
// lightweight regression model from historical withdrawal lines and predicts
// near-term per-material usage with a coarse confidence tier. The model is a
// deliberate heuristic — a bagged ensemble of regression trees over calendar
// and lag features — not a precision instrument.
package forecast

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Observation is one historical withdrawal line: on Date, Quantite units of
// MaterielID were taken from stock.
type Observation struct {
	Date       time.Time
	MaterielID uuid.UUID
	Quantite   int
}

// Prediction is the forecast output. Value is the expected usage over the
// requested horizon, never negative. Confidence is "medium" when at least
// three recent observations backed the prediction, "low" otherwise.
type Prediction struct {
	Value      float64
	Confidence string
}

const (
	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
)

// byMaterialChronological groups observations per material, each group sorted
// oldest first. Iteration over the result must go through the returned key
// order to stay deterministic.
func byMaterialChronological(obs []Observation) (map[uuid.UUID][]Observation, []uuid.UUID) {
	groups := make(map[uuid.UUID][]Observation)
	for _, o := range obs {
		groups[o.MaterielID] = append(groups[o.MaterielID], o)
	}
	keys := make([]uuid.UUID, 0, len(groups))
	for k := range groups {
		sort.Slice(groups[k], func(i, j int) bool {
			return groups[k][i].Date.Before(groups[k][j].Date)
		})
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return groups, keys
}
