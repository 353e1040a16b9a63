package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testArtifacts builds a small artifact bundle: three vocabulary terms,
// identity scaler and a classifier whose scores are fully determined by the
// per-class intercepts.
func testArtifacts(t *testing.T, intercepts []float64, classes []string) *Artifacts {
	t.Helper()
	require.Equal(t, len(intercepts), len(classes))

	weights := make([][]float64, len(classes))
	for i := range weights {
		weights[i] = make([]float64, 3+numericFeatureCount)
	}

	art := &Artifacts{
		Vectorizer: Vectorizer{
			Vocabulary: map[string]int{"python": 0, "sql": 1, "aws": 2},
			IDF:        []float64{1, 1, 1},
			NgramMin:   1,
			NgramMax:   1,
		},
		Scaler: Scaler{
			Mean:  make([]float64, numericFeatureCount),
			Scale: []float64{1, 1, 1, 1, 1, 1},
		},
		Classifier: Classifier{
			Weights:    weights,
			Intercepts: intercepts,
		},
		Labels: Labels{Classes: classes},
	}
	require.NoError(t, art.validate())
	return art
}

func TestLinearRescale(t *testing.T) {
	assert.InDelta(t, 0.90, linearRescale(1.0, 0.80, 0.90), 1e-9)
	assert.InDelta(t, 0.80, linearRescale(0.0, 0.80, 0.90), 1e-9)
	// Pins the rounding rule: half rounds away from zero, so the midpoint
	// of the third band lands on 0.73, not 0.72.
	assert.InDelta(t, 0.73, linearRescale(0.5, 0.70, 0.75), 1e-9)
	assert.InDelta(t, 0.85, linearRescale(0.5, 0.80, 0.90), 1e-9)
}

func TestCountTokens(t *testing.T) {
	assert.Equal(t, 2, countTokens("Python, SQL"))
	assert.Equal(t, 1, countTokens("AWS"))
	assert.Equal(t, 0, countTokens(""))
	assert.Equal(t, 0, countTokens(" , , "))
	assert.Equal(t, 3, countTokens("a,b , c,"))
}

func TestInteractionFeature(t *testing.T) {
	numSkills := countTokens("Python, SQL")
	numCerts := countTokens("AWS")
	assert.Equal(t, 2, numSkills*numCerts)
}

func TestParseFloat(t *testing.T) {
	assert.Equal(t, 3.5, parseFloat("3.5"))
	assert.Equal(t, 0.0, parseFloat(""))
	assert.Equal(t, 0.0, parseFloat("not-a-number"))
	assert.Equal(t, 2.0, parseFloat(" 2 "))
}

func TestPredictUnavailable(t *testing.T) {
	p := NewPredictor(nil)
	assert.False(t, p.Available())

	_, err := p.Predict(ProfileInput{Degree: "B.Tech"})
	assert.ErrorIs(t, err, ErrModelUnavailable)
}

func TestPredictRankingAndBands(t *testing.T) {
	// Intercepts force the probability order: data > backend > cloud > qa.
	art := testArtifacts(t, []float64{3, 2, 1, 0}, []string{"data", "backend", "cloud", "qa"})
	p := NewPredictor(art)

	res, err := p.Predict(ProfileInput{
		Degree:         "B.Tech",
		Major:          "Computer Science",
		CGPA:           "8.5",
		Experience:     "2",
		Skills:         "Python, SQL",
		Certifications: "AWS",
	})
	require.NoError(t, err)
	require.Len(t, res.TopPredictions, 3)

	assert.Equal(t, "data", res.TopPredictions[0].Role)
	assert.Equal(t, "backend", res.TopPredictions[1].Role)
	assert.Equal(t, "cloud", res.TopPredictions[2].Role)
	assert.Equal(t, "data", res.Prediction)
	assert.Equal(t, res.TopPredictions[0].Confidence, res.Confidence)

	// Bands are disjoint by construction; each rank stays inside its own.
	top := res.TopPredictions
	assert.GreaterOrEqual(t, top[0].Confidence, 0.80)
	assert.LessOrEqual(t, top[0].Confidence, 0.90)
	assert.GreaterOrEqual(t, top[1].Confidence, 0.75)
	assert.LessOrEqual(t, top[1].Confidence, 0.80)
	assert.GreaterOrEqual(t, top[2].Confidence, 0.70)
	assert.LessOrEqual(t, top[2].Confidence, 0.75)

	assert.GreaterOrEqual(t, top[0].Confidence, top[1].Confidence)
	assert.GreaterOrEqual(t, top[1].Confidence, top[2].Confidence)

	assert.Contains(t, res.Explanation, "B.Tech")
	assert.Contains(t, res.Explanation, "Computer Science")
	assert.Contains(t, res.Explanation, "Python, SQL")
	assert.Contains(t, res.Explanation, "AWS")
}

func TestPredictTieBreakFollowsClassOrder(t *testing.T) {
	// All classes score identically; the model's internal class ordering
	// decides the ranking.
	art := testArtifacts(t, []float64{1, 1, 1, 1}, []string{"w", "x", "y", "z"})
	p := NewPredictor(art)

	res, err := p.Predict(ProfileInput{Skills: "Python"})
	require.NoError(t, err)
	assert.Equal(t, "w", res.TopPredictions[0].Role)
	assert.Equal(t, "x", res.TopPredictions[1].Role)
	assert.Equal(t, "y", res.TopPredictions[2].Role)
}

func TestPredictBadNumericInputDoesNotFail(t *testing.T) {
	art := testArtifacts(t, []float64{1, 0, 0}, []string{"a", "b", "c"})
	p := NewPredictor(art)

	res, err := p.Predict(ProfileInput{
		CGPA:       "eight point five",
		Experience: "",
		Skills:     "",
	})
	require.NoError(t, err)
	assert.Equal(t, "a", res.Prediction)
}
