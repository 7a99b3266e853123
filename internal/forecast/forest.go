package forecast

import (
	"math/rand"
	"sort"
)

// Ensemble hyperparameters. Tuned for tiny training sets (tens of rows):
// shallow trees, small bags, fixed seed so retraining on identical history
// yields an identical model.
const (
	numTrees    = 50
	maxDepth    = 4
	minLeafSize = 2
	rngSeed     = 1
)

// treeNode is one node of a regression tree. Leaves carry the mean target of
// the rows that reached them.
type treeNode struct {
	leaf      bool
	value     float64
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
}

// forest is a bagged ensemble of regression trees (random-forest style):
// each tree is fit on a bootstrap sample and predictions are averaged.
type forest struct {
	trees []*treeNode
}

func fitForest(X [][]float64, y []float64) *forest {
	rng := rand.New(rand.NewSource(rngSeed))
	f := &forest{trees: make([]*treeNode, 0, numTrees)}
	n := len(X)
	for t := 0; t < numTrees; t++ {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = rng.Intn(n)
		}
		f.trees = append(f.trees, buildTree(X, y, idx, 0, rng))
	}
	return f
}

func (f *forest) predict(row []float64) float64 {
	sum := 0.0
	for _, t := range f.trees {
		sum += t.predictRow(row)
	}
	return sum / float64(len(f.trees))
}

func (n *treeNode) predictRow(row []float64) float64 {
	for !n.leaf {
		if row[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.value
}

func buildTree(X [][]float64, y []float64, idx []int, depth int, rng *rand.Rand) *treeNode {
	if depth >= maxDepth || len(idx) < 2*minLeafSize || constant(y, idx) {
		return &treeNode{leaf: true, value: meanAt(y, idx)}
	}

	feature, threshold, ok := bestSplit(X, y, idx, rng)
	if !ok {
		return &treeNode{leaf: true, value: meanAt(y, idx)}
	}

	var left, right []int
	for _, i := range idx {
		if X[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) < minLeafSize || len(right) < minLeafSize {
		return &treeNode{leaf: true, value: meanAt(y, idx)}
	}

	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      buildTree(X, y, left, depth+1, rng),
		right:     buildTree(X, y, right, depth+1, rng),
	}
}

// bestSplit searches a random subset of features for the threshold that
// minimizes the weighted sum of squared errors of the two halves.
func bestSplit(X [][]float64, y []float64, idx []int, rng *rand.Rand) (feature int, threshold float64, ok bool) {
	bestScore := totalSSE(y, idx)
	features := rng.Perm(numFeatures)
	// Consider ceil(sqrt(numFeatures)) features per split, forest-style.
	features = features[:3]

	vals := make([]float64, 0, len(idx))
	for _, f := range features {
		vals = vals[:0]
		for _, i := range idx {
			vals = append(vals, X[i][f])
		}
		sort.Float64s(vals)
		for k := 0; k+1 < len(vals); k++ {
			if vals[k] == vals[k+1] {
				continue
			}
			thr := (vals[k] + vals[k+1]) / 2
			score := splitSSE(X, y, idx, f, thr)
			if score < bestScore {
				bestScore = score
				feature = f
				threshold = thr
				ok = true
			}
		}
	}
	return feature, threshold, ok
}

func splitSSE(X [][]float64, y []float64, idx []int, feature int, thr float64) float64 {
	var left, right []int
	for _, i := range idx {
		if X[i][feature] <= thr {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return totalSSE(y, idx)
	}
	return totalSSE(y, left) + totalSSE(y, right)
}

func totalSSE(y []float64, idx []int) float64 {
	m := meanAt(y, idx)
	sse := 0.0
	for _, i := range idx {
		d := y[i] - m
		sse += d * d
	}
	return sse
}

func meanAt(y []float64, idx []int) float64 {
	if len(idx) == 0 {
		return 0
	}
	sum := 0.0
	for _, i := range idx {
		sum += y[i]
	}
	return sum / float64(len(idx))
}

func constant(y []float64, idx []int) bool {
	for _, i := range idx[1:] {
		if y[i] != y[idx[0]] {
			return false
		}
	}
	return true
}
