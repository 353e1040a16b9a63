package inference

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

const (
	// numericFeatureCount is the size of the engineered numeric vector:
	// [cgpa, experience, numSkills, numCerts, cgpa*exp, skills*certs].
	numericFeatureCount = 6

	// topK is how many ranked predictions a result carries.
	topK = 3
)

// confidenceBands are the fixed presentation intervals the raw top-3
// probabilities are remapped into, keyed by rank. A display transform, not a
// calibration.
var confidenceBands = [topK]struct{ lo, hi float64 }{
	{0.80, 0.90},
	{0.75, 0.80},
	{0.70, 0.75},
}

// ProfileInput is an applicant profile as submitted. Numeric fields arrive
// as raw strings; unparsable values count as 0.
type ProfileInput struct {
	Degree         string
	Major          string
	CGPA           string
	Experience     string
	Skills         string
	Certifications string
}

// Prediction is one ranked (role, confidence) pair after band remapping.
type Prediction struct {
	Role       string  `json:"role"`
	Confidence float64 `json:"confidence"`
}

// Result is a full prediction: the top role, its banded confidence, the
// ranked top-3 list and a one-sentence explanation.
type Result struct {
	Prediction     string       `json:"prediction"`
	Confidence     float64      `json:"confidence"`
	TopPredictions []Prediction `json:"top_predictions"`
	Explanation    string       `json:"explanation"`
}

// Predictor wraps the loaded model artifacts. Read-only after construction,
// safe for concurrent use.
type Predictor struct {
	artifacts *Artifacts
}

// NewPredictor wraps loaded artifacts. Pass nil artifacts to construct an
// unavailable predictor whose every call fails with ErrModelUnavailable.
func NewPredictor(artifacts *Artifacts) *Predictor {
	return &Predictor{artifacts: artifacts}
}

// Available reports whether the model artifacts loaded.
func (p *Predictor) Available() bool {
	return p != nil && p.artifacts != nil
}

// Classes returns the label decoder's class names in model order.
func (p *Predictor) Classes() []string {
	if !p.Available() {
		return nil
	}
	return p.artifacts.Labels.Classes
}

// Predict runs the full inference pipeline over one profile.
func (p *Predictor) Predict(in ProfileInput) (*Result, error) {
	if !p.Available() {
		return nil, ErrModelUnavailable
	}
	art := p.artifacts

	// Text features: degree, major, skills and certifications concatenated
	// into one string, vectorized by the fitted TF-IDF transform.
	profileText := fmt.Sprintf("%s %s %s %s", in.Degree, in.Major, in.Skills, in.Certifications)
	textVec := art.Vectorizer.Transform(profileText)

	// Numeric features. Bad numeric input never fails a prediction.
	cgpa := parseFloat(in.CGPA)
	experience := parseFloat(in.Experience)
	numSkills := countTokens(in.Skills)
	numCerts := countTokens(in.Certifications)

	numeric := [numericFeatureCount]float64{
		cgpa,
		experience,
		float64(numSkills),
		float64(numCerts),
		cgpa * experience,
		float64(numSkills * numCerts),
	}
	for i := range numeric {
		numeric[i] = (numeric[i] - art.Scaler.Mean[i]) / art.Scaler.Scale[i]
	}

	probs := art.Classifier.probabilities(textVec, numeric, len(art.Vectorizer.Vocabulary))

	// Top-3 classes in strictly descending probability. Equal probabilities
	// keep the model's internal class ordering.
	order := make([]int, len(probs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return probs[order[i]] > probs[order[j]]
	})

	ranked := make([]Prediction, topK)
	for rank := 0; rank < topK; rank++ {
		class := order[rank]
		band := confidenceBands[rank]
		ranked[rank] = Prediction{
			Role:       art.Labels.Classes[class],
			Confidence: linearRescale(probs[class], band.lo, band.hi),
		}
	}

	best := ranked[0]
	explanation := fmt.Sprintf(
		"Predicted '%s' based on degree: '%s', major: '%s', skills: '%s', certifications: '%s'",
		best.Role, in.Degree, in.Major, in.Skills, in.Certifications,
	)

	return &Result{
		Prediction:     best.Role,
		Confidence:     best.Confidence,
		TopPredictions: ranked,
		Explanation:    explanation,
	}, nil
}

// probabilities scores the combined sparse text + dense numeric feature
// vector against every class and softmaxes the scores.
func (c *Classifier) probabilities(textVec map[int]float64, numeric [numericFeatureCount]float64, vocabSize int) []float64 {
	scores := make([]float64, len(c.Weights))
	for class, w := range c.Weights {
		s := c.Intercepts[class]
		for idx, v := range textVec {
			s += w[idx] * v
		}
		for j, v := range numeric {
			s += w[vocabSize+j] * v
		}
		scores[class] = s
	}

	// Softmax, shifted by the max score for stability.
	maxScore := scores[0]
	for _, s := range scores[1:] {
		if s > maxScore {
			maxScore = s
		}
	}
	var sum float64
	probs := make([]float64, len(scores))
	for i, s := range scores {
		probs[i] = math.Exp(s - maxScore)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

// linearRescale maps a probability in [0,1] into a fixed presentation band,
// rounded to two decimals (half away from zero).
func linearRescale(p, lo, hi float64) float64 {
	return math.Round((lo+(hi-lo)*p)*100) / 100
}

// parseFloat parses a numeric field, defaulting blank or unparsable input
// to 0.
func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// countTokens counts non-empty comma-separated items.
func countTokens(s string) int {
	n := 0
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) != "" {
			n++
		}
	}
	return n
}
