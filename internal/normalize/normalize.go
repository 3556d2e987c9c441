// Package normalize canonicalizes extracted field values before they are compared.
package normalize

import (
	"strings"

	"github.com/spigell/ats-matcher/internal/fields"
)

// Rule maps every value containing Pattern to Canonical.
type Rule struct {
	Pattern   string
	Canonical string
}

// EducationRules is checked in order; the first matching pattern wins.
var EducationRules = []Rule{
	{Pattern: "b.tech", Canonical: "bachelor"},
	{Pattern: "btech", Canonical: "bachelor"},
	{Pattern: "m.tech", Canonical: "master"},
	{Pattern: "mtech", Canonical: "master"},
	{Pattern: "bachelor", Canonical: "bachelor"},
	{Pattern: "master", Canonical: "master"},
	{Pattern: "ph.d", Canonical: "phd"},
	{Pattern: "phd", Canonical: "phd"},
	{Pattern: "doctor", Canonical: "phd"},
	{Pattern: "b.sc", Canonical: "bachelor"},
	{Pattern: "bsc", Canonical: "bachelor"},
	{Pattern: "m.sc", Canonical: "master"},
	{Pattern: "msc", Canonical: "master"},
	{Pattern: "university", Canonical: "university"},
	{Pattern: "college", Canonical: "college"},
	{Pattern: "institute", Canonical: "institute"},
}

// Normalize returns the canonical form of values for the given category.
// The input slice is never modified and applying Normalize twice yields the same result.
func Normalize(c fields.Category, values []string) []string {
	switch c {
	case fields.Education:
		return Education(values)
	case fields.Skills, fields.Experience:
		return Lower(values)
	default:
		out := make([]string, len(values))
		copy(out, values)
		return out
	}
}

// Education maps degree and institution variants to canonical tokens.
func Education(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, canonicalEducation(strings.ToLower(v)))
	}
	return out
}

func canonicalEducation(lower string) string {
	for _, rule := range EducationRules {
		if strings.Contains(lower, rule.Pattern) {
			return rule.Canonical
		}
	}
	return lower
}

// Lower lowercases every element.
func Lower(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.ToLower(v))
	}
	return out
}
