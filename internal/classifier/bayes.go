package classifier

import (
	"fmt"
	"math"
	"sort"

	"fraud-detector/internal/models"
)

// NaiveBayes is a multinomial naive Bayes model with Laplace smoothing and
// empirical class priors.
type NaiveBayes struct {
	Classes        []models.Label `json:"classes"`
	ClassLogPrior  []float64      `json:"class_log_prior"`
	FeatureLogProb [][]float64    `json:"feature_log_prob"`
}

const smoothingAlpha = 1.0

// Fit estimates priors and per-class feature log probabilities.
func (nb *NaiveBayes) Fit(X []map[int]float64, y []models.Label, nFeatures int) error {
	if len(X) != len(y) {
		return fmt.Errorf("%w: %d samples but %d labels", ErrInvalidTrainingData, len(X), len(y))
	}

	classIndex := make(map[models.Label]int)
	for _, label := range y {
		if !label.Valid() {
			return fmt.Errorf("%w: unknown label %q", ErrInvalidTrainingData, label)
		}
		classIndex[label] = 0
	}
	if len(classIndex) < 2 {
		return fmt.Errorf("%w: need samples of at least two classes", ErrInvalidTrainingData)
	}

	nb.Classes = make([]models.Label, 0, len(classIndex))
	for label := range classIndex {
		nb.Classes = append(nb.Classes, label)
	}
	sort.Slice(nb.Classes, func(i, j int) bool { return nb.Classes[i] < nb.Classes[j] })
	for i, label := range nb.Classes {
		classIndex[label] = i
	}

	classCount := make([]float64, len(nb.Classes))
	featureCount := make([][]float64, len(nb.Classes))
	for c := range featureCount {
		featureCount[c] = make([]float64, nFeatures)
	}
	for i, row := range X {
		c := classIndex[y[i]]
		classCount[c]++
		for j, w := range row {
			featureCount[c][j] += w
		}
	}

	total := float64(len(y))
	nb.ClassLogPrior = make([]float64, len(nb.Classes))
	nb.FeatureLogProb = make([][]float64, len(nb.Classes))
	for c := range nb.Classes {
		nb.ClassLogPrior[c] = math.Log(classCount[c] / total)

		var smoothedTotal float64
		for _, fc := range featureCount[c] {
			smoothedTotal += fc + smoothingAlpha
		}
		logTotal := math.Log(smoothedTotal)

		nb.FeatureLogProb[c] = make([]float64, nFeatures)
		for j, fc := range featureCount[c] {
			nb.FeatureLogProb[c][j] = math.Log(fc+smoothingAlpha) - logTotal
		}
	}
	return nil
}

// PredictProba returns the posterior probability of every class, in the
// order of Classes.
func (nb *NaiveBayes) PredictProba(x map[int]float64) []float64 {
	features := sortedIndices(x)
	jll := make([]float64, len(nb.Classes))
	maxLL := math.Inf(-1)
	for c := range nb.Classes {
		ll := nb.ClassLogPrior[c]
		for _, j := range features {
			ll += x[j] * nb.FeatureLogProb[c][j]
		}
		jll[c] = ll
		if ll > maxLL {
			maxLL = ll
		}
	}

	var sum float64
	for c := range jll {
		jll[c] = math.Exp(jll[c] - maxLL)
		sum += jll[c]
	}
	for c := range jll {
		jll[c] /= sum
	}
	return jll
}

func (nb *NaiveBayes) validate(nFeatures int) error {
	if len(nb.Classes) < 2 || len(nb.ClassLogPrior) != len(nb.Classes) || len(nb.FeatureLogProb) != len(nb.Classes) {
		return fmt.Errorf("class tables do not line up")
	}
	for c, label := range nb.Classes {
		if !label.Valid() {
			return fmt.Errorf("unknown class %q", label)
		}
		if len(nb.FeatureLogProb[c]) != nFeatures {
			return fmt.Errorf("class %s has %d features, want %d", label, len(nb.FeatureLogProb[c]), nFeatures)
		}
	}
	return nil
}
