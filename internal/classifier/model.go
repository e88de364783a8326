// Package classifier implements the TF-IDF + multinomial naive Bayes model
// that labels email text as FRAUD or SAFE.
package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"fraud-detector/internal/models"
	"fraud-detector/internal/textnorm"

	"go.uber.org/zap"
)

var (
	ErrModelCorrupt        = errors.New("model artifact is corrupt")
	ErrInvalidTrainingData = errors.New("invalid training data")
)

// Model is the fitted vectorizer + classifier pipeline. It is read-only after
// construction and safe for concurrent use.
type Model struct {
	Vectorizer *Vectorizer `json:"vectorizer"`
	Bayes      *NaiveBayes `json:"bayes"`
}

// Train fits a new model on examples. Each text is normalized first.
func Train(examples []Example) (*Model, error) {
	if len(examples) == 0 {
		return nil, fmt.Errorf("%w: no examples", ErrInvalidTrainingData)
	}

	docs := make([]string, len(examples))
	labels := make([]models.Label, len(examples))
	for i, ex := range examples {
		docs[i] = textnorm.Normalize(ex.Text)
		labels[i] = ex.Label
	}

	vec := &Vectorizer{}
	vec.Fit(docs)
	if vec.Size() == 0 {
		return nil, fmt.Errorf("%w: empty vocabulary", ErrInvalidTrainingData)
	}

	X := make([]map[int]float64, len(docs))
	for i, doc := range docs {
		X[i] = vec.Transform(doc)
	}

	nb := &NaiveBayes{}
	if err := nb.Fit(X, labels, vec.Size()); err != nil {
		return nil, err
	}

	return &Model{Vectorizer: vec, Bayes: nb}, nil
}

// Predict labels already-normalized text and returns the probability of the
// chosen label as a percentage rounded to two decimals. Ties go to the first
// class in sorted order.
func (m *Model) Predict(text string) (models.Label, float64) {
	proba := m.Bayes.PredictProba(m.Vectorizer.Transform(text))

	best := 0
	for c := 1; c < len(proba); c++ {
		if proba[c] > proba[best] {
			best = c
		}
	}
	return m.Bayes.Classes[best], math.Round(proba[best]*100*100) / 100
}

// Save writes the model to path, creating the parent directory.
func (m *Model) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}

	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write model: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to move model into place: %w", err)
	}
	return nil
}

// Load reads a model artifact written by Save.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model: %w", err)
	}

	m := &Model{}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelCorrupt, err)
	}
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelCorrupt, err)
	}
	return m, nil
}

func (m *Model) validate() error {
	if m.Vectorizer == nil || m.Bayes == nil {
		return errors.New("missing pipeline stage")
	}
	n := m.Vectorizer.Size()
	if n == 0 || len(m.Vectorizer.Vocabulary) != n {
		return fmt.Errorf("vocabulary has %d terms but %d idf weights", len(m.Vectorizer.Vocabulary), n)
	}
	for term, idx := range m.Vectorizer.Vocabulary {
		if idx < 0 || idx >= n {
			return fmt.Errorf("term %q has out of range index %d", term, idx)
		}
	}
	return m.Bayes.validate(n)
}

// LoadOrTrain returns the model stored at path, or trains one on TrainingSet
// and stores it there when no artifact exists yet.
func LoadOrTrain(path string, logger *zap.Logger) (*Model, error) {
	if _, err := os.Stat(path); err == nil {
		m, err := Load(path)
		if err != nil {
			return nil, err
		}
		logger.Info("Model loaded", zap.String("path", path), zap.Int("features", m.Vectorizer.Size()))
		return m, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat model: %w", err)
	}

	m, err := Train(TrainingSet)
	if err != nil {
		return nil, err
	}
	if err := m.Save(path); err != nil {
		return nil, err
	}

	logger.Info("Model trained",
		zap.String("path", path),
		zap.Int("examples", len(TrainingSet)),
		zap.Int("features", m.Vectorizer.Size()))
	return m, nil
}
