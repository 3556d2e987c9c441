package enhance

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spigell/ats-matcher/internal/fields"
)

const (
	DefaultReportFile = "Resume_Enhancement_Report.txt"

	maxSuggestedSkills   = 5
	maxRecommendedSkills = 15
	shortResumeTokens    = 50
	longResumeTokens     = 500

	sectionRule = "====================================="
)

// Suggestions lists resume changes: missing skills, length hints and the
// number of content keywords shared with the job description.
func Suggestions(missing, resumeContent, jdContent []string) []string {
	var out []string

	if len(missing) > 0 {
		top := missing
		if len(top) > maxSuggestedSkills {
			top = top[:maxSuggestedSkills]
		}
		out = append(out, "Add these skills to your resume: "+strings.Join(top, ", "))
	}

	switch n := len(resumeContent); {
	case n < shortResumeTokens:
		out = append(out, "Consider expanding your resume with more details and keywords.")
	case n > longResumeTokens:
		out = append(out, "Your resume might be too long. Consider making it more concise.")
	}

	if common := commonKeywords(resumeContent, jdContent); common > 0 {
		out = append(out, fmt.Sprintf("You have %d keywords matching the JD. Good alignment!", common))
	}

	return out
}

func commonKeywords(a, b []string) int {
	left := fields.NewSet(normalizeSkills(a)...)
	right := fields.NewSet(normalizeSkills(b)...)
	count := 0
	for v := range left {
		if right.Has(v) {
			count++
		}
	}
	return count
}

// RenderReport returns the enhancement report text.
func RenderReport(e *Enhancement) string {
	var b strings.Builder
	b.WriteString("Enhanced Project/Experience Sentences:\n")
	b.WriteString(sectionRule + "\n")
	for _, s := range e.Sentences {
		b.WriteString("- " + s.Rewritten + "\n")
	}

	b.WriteString("\nSkills Missing in CV (from JD):\n")
	b.WriteString(sectionRule + "\n")
	for _, s := range e.Missing {
		b.WriteString("- " + s + "\n")
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\nSuggestions:\n")
		b.WriteString(sectionRule + "\n")
		for i, s := range e.Suggestions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, s)
		}
	}
	return b.String()
}

// EnhancedResume appends the recommended skills to the resume text.
func EnhancedResume(resumeText string, missing []string) string {
	var b strings.Builder
	b.WriteString("ENHANCED RESUME\n\n")
	b.WriteString(resumeText)
	b.WriteString("\n\n---\n\nADDITIONAL RECOMMENDED SKILLS (from JD matching):\n")

	if len(missing) == 0 {
		b.WriteString("None - your resume skills align perfectly with the JD!")
		return b.String()
	}

	if len(missing) > maxRecommendedSkills {
		missing = missing[:maxRecommendedSkills]
	}
	b.WriteString(strings.Join(missing, "\n"))
	return b.String()
}

// Save writes the enhancement report into dir and returns its path.
func Save(e *Enhancement, dir, name string) (string, error) {
	if name == "" {
		name = DefaultReportFile
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create output dir: %w", err)
		}
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(RenderReport(e)), 0o644); err != nil {
		return "", fmt.Errorf("write enhancement report: %w", err)
	}
	return path, nil
}
