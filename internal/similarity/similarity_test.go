package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spigell/ats-matcher/internal/fields"
)

func TestLabelFor(t *testing.T) {
	tests := []struct {
		score float64
		want  Label
	}{
		{score: 0, want: Poor},
		{score: 40, want: Poor},
		{score: 40.01, want: Ok},
		{score: 60, want: Ok},
		{score: 60.5, want: Good},
		{score: 80, want: Good},
		{score: 80.01, want: VeryGood},
		{score: 100, want: VeryGood},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LabelFor(tt.score), "score %v", tt.score)
	}
}

func TestSetOverlapUsesReferenceAsDenominator(t *testing.T) {
	score := Score(fields.Education, []string{"bachelor"}, []string{"bachelor", "master"})
	assert.Equal(t, 50.0, score.Score)
	assert.Equal(t, Ok, score.Label)
	assert.False(t, score.Empty)

	// a superset of the requirements satisfies all of them
	assert.Equal(t, 100.0, SetOverlap([]string{"bachelor", "master", "phd"}, []string{"master"}))
	// duplicates do not inflate the denominator
	assert.Equal(t, 100.0, SetOverlap([]string{"master"}, []string{"master", "master"}))
	assert.Equal(t, 33.33, SetOverlap([]string{"phd"}, []string{"bachelor", "master", "phd"}))
}

func TestSetOverlapEmpty(t *testing.T) {
	assert.Zero(t, SetOverlap(nil, []string{"bachelor"}))
	assert.Zero(t, SetOverlap([]string{"bachelor"}, []string{}))
}

func TestCosineIdentical(t *testing.T) {
	score := Score(fields.Skills, []string{"python", "sql"}, []string{"python", "sql"})
	assert.Equal(t, 100.0, score.Score)
	assert.Equal(t, VeryGood, score.Label)

	// identical text without countable words is still a perfect match
	assert.Equal(t, 100.0, Cosine([]string{"c"}, []string{"c"}))
}

func TestCosineEmpty(t *testing.T) {
	score := Score(fields.Skills, []string{}, []string{"python"})
	assert.Equal(t, 0.0, score.Score)
	assert.Equal(t, Poor, score.Label)
	assert.True(t, score.Empty)
}

func TestCosinePartialOverlap(t *testing.T) {
	tests := []struct {
		name      string
		candidate []string
		reference []string
		want      float64
	}{
		{name: "half", candidate: []string{"python", "sql"}, reference: []string{"python", "java"}, want: 50},
		{name: "multi word terms", candidate: []string{"machine learning"}, reference: []string{"machine learning", "python"}, want: 81.65},
		{name: "case insensitive", candidate: []string{"Python"}, reference: []string{"python"}, want: 100},
		{name: "disjoint", candidate: []string{"excel"}, reference: []string{"aws"}, want: 0},
		{name: "single letters ignored", candidate: []string{"c"}, reference: []string{"r"}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Cosine(tt.candidate, tt.reference))
		})
	}
}

func TestAlgorithmFor(t *testing.T) {
	// education is directional, other fields are symmetric
	assert.Equal(t, 100.0, AlgorithmFor(fields.Education)([]string{"a1", "b2"}, []string{"a1"}))
	assert.Equal(t, 70.71, AlgorithmFor(fields.Projects)([]string{"a1", "b2"}, []string{"a1"}))
}
