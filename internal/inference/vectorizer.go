package inference

import (
	"math"
	"regexp"
	"strings"
)

// tokenPattern mirrors the training vectorizer's token pattern: word
// characters, two or longer.
var tokenPattern = regexp.MustCompile(`\b\w\w+\b`)

// Transform maps free text to its sparse TF-IDF vector, keyed by vocabulary
// index. The steps reproduce the fitted transform: lowercase, tokenize,
// expand word n-grams, count, weight by IDF, L2-normalize.
func (v *Vectorizer) Transform(text string) map[int]float64 {
	tokens := tokenPattern.FindAllString(strings.ToLower(text), -1)

	counts := make(map[int]int)
	for n := v.NgramMin; n <= v.NgramMax; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			term := strings.Join(tokens[i:i+n], " ")
			if idx, ok := v.Vocabulary[term]; ok {
				counts[idx]++
			}
		}
	}

	vec := make(map[int]float64, len(counts))
	var norm float64
	for idx, tf := range counts {
		w := float64(tf) * v.IDF[idx]
		vec[idx] = w
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range vec {
			vec[idx] /= norm
		}
	}
	return vec
}
