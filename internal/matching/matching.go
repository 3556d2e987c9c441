package matching

import (
	"fmt"
	"strings"

	"github.com/spigell/ats-matcher/internal/fields"
	"github.com/spigell/ats-matcher/internal/normalize"
	"github.com/spigell/ats-matcher/internal/similarity"
)

// Weight is the share of a field in the overall score.
type Weight struct {
	Field  fields.Category
	Weight float64
}

// Weights lists the fields included in the overall score.
var Weights = []Weight{
	{Field: fields.Skills, Weight: 0.5},
	{Field: fields.Experience, Weight: 0.3},
	{Field: fields.Education, Weight: 0.2},
}

// ComparedFields are scored and reported, in report order.
var ComparedFields = []fields.Category{
	fields.Skills,
	fields.Experience,
	fields.Education,
	fields.Projects,
	fields.Achievements,
}

// Report is the outcome of comparing one resume with one job description.
type Report struct {
	Scores  []similarity.FieldScore `json:"scores"`
	Overall similarity.FieldScore   `json:"overall"`
	// Missing lists job description skills absent from the resume.
	Missing []string `json:"missing_skills"`
}

// Score returns the score of the field and whether it was compared.
func (r *Report) Score(field fields.Category) (similarity.FieldScore, bool) {
	for _, s := range r.Scores {
		if s.Field == field {
			return s, true
		}
	}
	return similarity.FieldScore{}, false
}

// Compare normalizes and scores every compared field of resume against jd.
func Compare(resume, jd fields.StructuredFields) []similarity.FieldScore {
	scores := make([]similarity.FieldScore, 0, len(ComparedFields))
	for _, field := range ComparedFields {
		candidate := normalize.Normalize(field, resume.Get(field))
		reference := normalize.Normalize(field, jd.Get(field))
		scores = append(scores, similarity.Score(field, candidate, reference))
	}
	return scores
}

// Aggregate combines field scores into a report with the weighted overall score.
func Aggregate(scores []similarity.FieldScore) (*Report, error) {
	byField := make(map[fields.Category]similarity.FieldScore, len(scores))
	for _, s := range scores {
		byField[s.Field] = s
	}

	total := 0.0
	for _, w := range Weights {
		s, ok := byField[w.Field]
		if !ok {
			return nil, fmt.Errorf("weighted field %s has no score", w.Field)
		}
		total += w.Weight * s.Score
	}

	out := make([]similarity.FieldScore, len(scores))
	copy(out, scores)

	return &Report{
		Scores:  out,
		Overall: similarity.NewFieldScore(Overall, total),
		Missing: []string{},
	}, nil
}

// Match compares resume against jd and aggregates the result.
func Match(resume, jd fields.StructuredFields) (*Report, error) {
	report, err := Aggregate(Compare(resume, jd))
	if err != nil {
		return nil, err
	}
	report.Missing = MissingSkills(resume, jd)
	return report, nil
}

// MissingSkills returns the job description skills that the resume lacks.
func MissingSkills(resume, jd fields.StructuredFields) []string {
	have := fields.NewSet(normalize.Lower(resume.Skills)...)
	missing := fields.NewSet()
	for _, skill := range normalize.Lower(jd.Skills) {
		if !have.Has(skill) {
			missing.Add(skill)
		}
	}
	return missing.Sorted()
}

// ScoringBasis describes the weights in the report.
func ScoringBasis() string {
	parts := make([]string, 0, len(Weights))
	for _, w := range Weights {
		name := strings.ToLower(string(w.Field))
		parts = append(parts, fmt.Sprintf("%s%s (%d%%)", strings.ToUpper(name[:1]), name[1:], int(w.Weight*100+0.5)))
	}
	return "Final Scoring Basis: " + strings.Join(parts, ", ")
}
