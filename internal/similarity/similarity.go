package similarity

import (
	"math"
	"regexp"
	"strings"

	"github.com/spigell/ats-matcher/internal/fields"
)

// Label is the descriptive bucket of a percentage score.
type Label string

const (
	Poor     Label = "Poor"
	Ok       Label = "Ok"
	Good     Label = "Good"
	VeryGood Label = "Very Good"
)

// LabelFor maps a 0-100 score to its label.
func LabelFor(score float64) Label {
	switch {
	case score <= 40:
		return Poor
	case score <= 60:
		return Ok
	case score <= 80:
		return Good
	default:
		return VeryGood
	}
}

// FieldScore is the comparison result for one category.
type FieldScore struct {
	Field fields.Category `json:"field"`
	Score float64         `json:"score"`
	Label Label           `json:"label"`
	// Empty is set when either side had no values and the score degraded to zero.
	Empty bool `json:"empty,omitempty"`
}

// NewFieldScore rounds score and attaches its label.
func NewFieldScore(field fields.Category, score float64) FieldScore {
	score = Round2(score)
	return FieldScore{Field: field, Score: score, Label: LabelFor(score)}
}

// Round2 rounds to two decimals, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Algorithm scores a candidate sequence against a reference sequence as a percentage.
type Algorithm func(candidate, reference []string) float64

// AlgorithmFor returns the scoring algorithm used for a category.
func AlgorithmFor(c fields.Category) Algorithm {
	if c == fields.Education {
		return SetOverlap
	}
	return Cosine
}

// Score compares normalized candidate and reference values for a category.
func Score(c fields.Category, candidate, reference []string) FieldScore {
	fs := NewFieldScore(c, AlgorithmFor(c)(candidate, reference))
	fs.Empty = len(candidate) == 0 || len(reference) == 0
	return fs
}

// SetOverlap returns the share of unique reference values present in candidate.
// The measure is directional: the reference set is the denominator.
func SetOverlap(candidate, reference []string) float64 {
	cand := fields.NewSet(candidate...)
	ref := fields.NewSet(reference...)
	if len(cand) == 0 || len(ref) == 0 {
		return 0
	}

	overlap := 0
	for v := range ref {
		if cand.Has(v) {
			overlap++
		}
	}

	return Round2(float64(overlap) / float64(len(ref)) * 100)
}

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Cosine returns the cosine similarity of bag-of-words count vectors built
// from the space-joined candidate and reference values.
func Cosine(candidate, reference []string) float64 {
	if len(candidate) == 0 || len(reference) == 0 {
		return 0
	}

	left := strings.Join(candidate, " ")
	right := strings.Join(reference, " ")
	if left == right {
		return 100
	}

	leftCounts := countWords(left)
	rightCounts := countWords(right)

	var dot, leftNorm, rightNorm float64
	for word, l := range leftCounts {
		leftNorm += float64(l * l)
		if r, ok := rightCounts[word]; ok {
			dot += float64(l * r)
		}
	}
	for _, r := range rightCounts {
		rightNorm += float64(r * r)
	}

	if leftNorm == 0 || rightNorm == 0 {
		return 0
	}

	return Round2(dot / (math.Sqrt(leftNorm) * math.Sqrt(rightNorm)) * 100)
}

func countWords(text string) map[string]int {
	counts := make(map[string]int)
	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		counts[w]++
	}
	return counts
}
