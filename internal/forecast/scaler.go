package forecast

import "gonum.org/v1/gonum/stat"

// standardScaler standardizes each feature to zero mean and unit variance.
// Parameters are fit once at training time and reused verbatim at prediction
// time; a scaler is never refit in place.
type standardScaler struct {
	mean []float64
	std  []float64
}

func fitScaler(X [][]float64) *standardScaler {
	s := &standardScaler{
		mean: make([]float64, numFeatures),
		std:  make([]float64, numFeatures),
	}
	col := make([]float64, len(X))
	for f := 0; f < numFeatures; f++ {
		for i, row := range X {
			col[i] = row[f]
		}
		mean, std := stat.MeanStdDev(col, nil)
		if std == 0 {
			// Constant feature: leave values centered but unscaled.
			std = 1
		}
		s.mean[f] = mean
		s.std[f] = std
	}
	return s
}

func (s *standardScaler) transform(row []float64) []float64 {
	out := make([]float64, len(row))
	for f, v := range row {
		out[f] = (v - s.mean[f]) / s.std[f]
	}
	return out
}

func (s *standardScaler) transformAll(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i, row := range X {
		out[i] = s.transform(row)
	}
	return out
}
