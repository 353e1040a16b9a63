package inference

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArtifact(t *testing.T, dir, name string, v interface{}) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
}

func writeValidArtifacts(t *testing.T, dir string) {
	t.Helper()
	writeArtifact(t, dir, VectorizerFile, Vectorizer{
		Vocabulary: map[string]int{"python": 0, "sql": 1},
		IDF:        []float64{1.2, 1.5},
		NgramMin:   1,
		NgramMax:   3,
	})
	writeArtifact(t, dir, ScalerFile, Scaler{
		Mean:  []float64{0, 0, 0, 0, 0, 0},
		Scale: []float64{1, 1, 1, 1, 1, 1},
	})
	writeArtifact(t, dir, ClassifierFile, Classifier{
		Weights:    [][]float64{make([]float64, 8), make([]float64, 8), make([]float64, 8)},
		Intercepts: []float64{0.1, 0.2, 0.3},
	})
	writeArtifact(t, dir, LabelsFile, Labels{Classes: []string{"a", "b", "c"}})
}

func TestLoadArtifacts(t *testing.T) {
	dir := t.TempDir()
	writeValidArtifacts(t, dir)

	art, err := LoadArtifacts(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, art.Labels.Classes)
	assert.Equal(t, 2, len(art.Vectorizer.Vocabulary))
}

func TestLoadArtifactsMissingFile(t *testing.T) {
	dir := t.TempDir()
	writeValidArtifacts(t, dir)
	require.NoError(t, os.Remove(filepath.Join(dir, ScalerFile)))

	_, err := LoadArtifacts(dir)
	assert.Error(t, err)
}

func TestLoadArtifactsShapeMismatch(t *testing.T) {
	dir := t.TempDir()
	writeValidArtifacts(t, dir)
	// One weight row too short for vocabulary + numeric features.
	writeArtifact(t, dir, ClassifierFile, Classifier{
		Weights:    [][]float64{make([]float64, 8), make([]float64, 8), make([]float64, 5)},
		Intercepts: []float64{0.1, 0.2, 0.3},
	})

	_, err := LoadArtifacts(dir)
	assert.Error(t, err)
}

func TestLoadArtifactsVocabularyIndexOutOfRange(t *testing.T) {
	dir := t.TempDir()
	writeValidArtifacts(t, dir)
	// Index 5 addresses past the idf table and the weight columns; loading
	// must fail instead of panicking at predict time.
	writeArtifact(t, dir, VectorizerFile, Vectorizer{
		Vocabulary: map[string]int{"python": 0, "sql": 5},
		IDF:        []float64{1.2, 1.5},
		NgramMin:   1,
		NgramMax:   3,
	})

	_, err := LoadArtifacts(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index")
}

func TestLoadArtifactsZeroScale(t *testing.T) {
	dir := t.TempDir()
	writeValidArtifacts(t, dir)
	writeArtifact(t, dir, ScalerFile, Scaler{
		Mean:  []float64{0, 0, 0, 0, 0, 0},
		Scale: []float64{1, 1, 0, 1, 1, 1},
	})

	_, err := LoadArtifacts(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zero scale")
}

func TestLoadArtifactsTooFewClasses(t *testing.T) {
	dir := t.TempDir()
	writeValidArtifacts(t, dir)
	writeArtifact(t, dir, LabelsFile, Labels{Classes: []string{"a", "b"}})
	writeArtifact(t, dir, ClassifierFile, Classifier{
		Weights:    [][]float64{make([]float64, 8), make([]float64, 8)},
		Intercepts: []float64{0.1, 0.2},
	})

	_, err := LoadArtifacts(dir)
	assert.Error(t, err)
}
