package inference

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrModelUnavailable is returned by every Predict call when any of the four
// model artifacts failed to load at startup.
var ErrModelUnavailable = errors.New("ML model not loaded")

// Artifact file names, as exported by the offline training pipeline.
const (
	VectorizerFile = "vectorizer.json"
	ScalerFile     = "scaler.json"
	ClassifierFile = "classifier.json"
	LabelsFile     = "labels.json"
)

// ArtifactFiles lists every file the predictor needs at startup.
var ArtifactFiles = []string{VectorizerFile, ScalerFile, ClassifierFile, LabelsFile}

// Vectorizer is the pre-fit TF-IDF transform over profile text. It is an
// opaque fixed artifact: vocabulary, per-term IDF weights and the word
// n-gram range it was fitted with.
type Vectorizer struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
	NgramMin   int            `json:"ngram_min"`
	NgramMax   int            `json:"ngram_max"`
}

// Scaler is the pre-fit standardizer for the 6-element numeric feature
// vector.
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// Classifier holds the exported linear form of the trained model: one weight
// row per class over the combined text+numeric feature space, plus
// intercepts. Class scores go through softmax to become probabilities.
type Classifier struct {
	Weights    [][]float64 `json:"weights"`
	Intercepts []float64   `json:"intercepts"`
}

// Labels decodes class indices to role names. The slice order is the model's
// internal class ordering and also pins tie-breaking among equal
// probabilities.
type Labels struct {
	Classes []string `json:"classes"`
}

// Artifacts bundles the four model artifacts. Read-only after load.
type Artifacts struct {
	Vectorizer Vectorizer
	Scaler     Scaler
	Classifier Classifier
	Labels     Labels
}

// LoadArtifacts reads all four artifacts from dir and validates that their
// shapes agree. Any failure means the predictor must not serve.
func LoadArtifacts(dir string) (*Artifacts, error) {
	var art Artifacts
	if err := readJSON(filepath.Join(dir, VectorizerFile), &art.Vectorizer); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, ScalerFile), &art.Scaler); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, ClassifierFile), &art.Classifier); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, LabelsFile), &art.Labels); err != nil {
		return nil, err
	}
	if err := art.validate(); err != nil {
		return nil, err
	}
	return &art, nil
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading artifact %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding artifact %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (a *Artifacts) validate() error {
	if len(a.Vectorizer.Vocabulary) == 0 {
		return fmt.Errorf("vectorizer has empty vocabulary")
	}
	if len(a.Vectorizer.IDF) != len(a.Vectorizer.Vocabulary) {
		return fmt.Errorf("vectorizer idf length %d does not match vocabulary size %d",
			len(a.Vectorizer.IDF), len(a.Vectorizer.Vocabulary))
	}
	// Vocabulary indices address both the idf table and the classifier
	// weight columns; an out-of-range index would panic at predict time.
	for term, idx := range a.Vectorizer.Vocabulary {
		if idx < 0 || idx >= len(a.Vectorizer.Vocabulary) {
			return fmt.Errorf("vectorizer term %q has index %d outside [0, %d)",
				term, idx, len(a.Vectorizer.Vocabulary))
		}
	}
	if a.Vectorizer.NgramMin < 1 || a.Vectorizer.NgramMax < a.Vectorizer.NgramMin {
		return fmt.Errorf("vectorizer has invalid ngram range [%d, %d]",
			a.Vectorizer.NgramMin, a.Vectorizer.NgramMax)
	}
	if len(a.Scaler.Mean) != numericFeatureCount || len(a.Scaler.Scale) != numericFeatureCount {
		return fmt.Errorf("scaler expects %d numeric features, got mean=%d scale=%d",
			numericFeatureCount, len(a.Scaler.Mean), len(a.Scaler.Scale))
	}
	for i, s := range a.Scaler.Scale {
		if s == 0 {
			return fmt.Errorf("scaler has zero scale at feature %d", i)
		}
	}
	classes := len(a.Labels.Classes)
	if classes < topK {
		return fmt.Errorf("label decoder has %d classes, need at least %d", classes, topK)
	}
	if len(a.Classifier.Weights) != classes || len(a.Classifier.Intercepts) != classes {
		return fmt.Errorf("classifier shape (%d weights, %d intercepts) does not match %d classes",
			len(a.Classifier.Weights), len(a.Classifier.Intercepts), classes)
	}
	want := len(a.Vectorizer.Vocabulary) + numericFeatureCount
	for i, row := range a.Classifier.Weights {
		if len(row) != want {
			return fmt.Errorf("classifier weight row %d has %d features, want %d", i, len(row), want)
		}
	}
	return nil
}
