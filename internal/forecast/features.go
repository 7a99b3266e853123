package forecast

import "time"

// Feature vector layout, one row per observation:
// month, weekday, ISO week-of-year, lag-1 quantity, rolling mean of the last
// three quantities for the same material.
const numFeatures = 5

const (
	// minRawObservations is the global floor: below this many raw withdrawal
	// lines no training is attempted at all.
	minRawObservations = 10
	// minFeaturedRows is the floor after per-material feature construction.
	minFeaturedRows = 5
	// minPerMaterial: a material yields featured rows only from its third
	// chronological observation onward, so lag and rolling values are both
	// grounded in real history.
	minPerMaterial = 3
)

func calendarFeatures(t time.Time) (month, weekday, isoWeek float64) {
	_, week := t.ISOWeek()
	return float64(t.Month()), float64(t.Weekday()), float64(week)
}

// rollingMean averages the last up-to-3 quantities preceding index i.
func rollingMean(qty []float64, i int) float64 {
	lo := i - 3
	if lo < 0 {
		lo = 0
	}
	window := qty[lo:i]
	sum := 0.0
	for _, q := range window {
		sum += q
	}
	return sum / float64(len(window))
}

// buildTrainingSet explodes observations into feature rows. Each material's
// observations are walked chronologically; the first minPerMaterial-1 rows
// per material carry undefined lag/rolling history and are dropped. Returns
// nil, nil when the data does not meet the training floors.
func buildTrainingSet(obs []Observation) (X [][]float64, y []float64) {
	if len(obs) < minRawObservations {
		return nil, nil
	}

	groups, keys := byMaterialChronological(obs)
	for _, id := range keys {
		series := groups[id]
		if len(series) < minPerMaterial {
			continue
		}
		qty := make([]float64, len(series))
		for i, o := range series {
			qty[i] = float64(o.Quantite)
		}
		for i := minPerMaterial - 1; i < len(series); i++ {
			month, weekday, week := calendarFeatures(series[i].Date)
			row := []float64{month, weekday, week, qty[i-1], rollingMean(qty, i)}
			X = append(X, row)
			y = append(y, qty[i])
		}
	}

	if len(X) < minFeaturedRows {
		return nil, nil
	}
	return X, y
}

// predictionFeatures builds the single feature vector for a live prediction:
// calendar fields come from now, lag/rolling come from the recent
// observations (newest first, as returned by the repository).
func predictionFeatures(now time.Time, recent []Observation) []float64 {
	month, weekday, week := calendarFeatures(now)

	lag := float64(recent[0].Quantite)
	n := len(recent)
	if n > 3 {
		n = 3
	}
	sum := 0.0
	for _, o := range recent[:n] {
		sum += float64(o.Quantite)
	}
	rolling := sum / float64(n)

	return []float64{month, weekday, week, lag, rolling}
}
