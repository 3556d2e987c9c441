package matching

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spigell/ats-matcher/internal/fields"
	"github.com/spigell/ats-matcher/internal/similarity"
)

// Overall is the pseudo field of the weighted score.
const Overall fields.Category = "OVERALL"

const (
	reportTitle = "Resume–JD Matching Report"

	DefaultReportFile = "Resume_JD_Match_Report.txt"
	DefaultScoreFile  = "score.txt"
)

// FormatScore renders a percentage with two decimals.
func FormatScore(score float64) string {
	return fmt.Sprintf("%.2f", score)
}

// FieldLine renders a single field score line.
func FieldLine(s similarity.FieldScore) string {
	return fmt.Sprintf("%s Match: %s%% → %s", s.Field, FormatScore(s.Score), s.Label)
}

// Render returns the human readable report.
func Render(r *Report) string {
	var b strings.Builder
	b.WriteString(reportTitle + "\n")
	b.WriteString(strings.Repeat("=", len([]rune(reportTitle))+2) + "\n\n")

	for _, s := range r.Scores {
		b.WriteString(FieldLine(s) + "\n")
	}

	b.WriteString("\n" + ScoringBasis() + "\n")
	b.WriteString(fmt.Sprintf("\nOverall Match Score: %s%% → %s\n", FormatScore(r.Overall.Score), r.Overall.Label))
	return b.String()
}

// ScoreArtifact returns the bare overall score for programmatic consumers.
func ScoreArtifact(r *Report) string {
	return FormatScore(r.Overall.Score)
}

// Save writes the report and the score artifact into dir and returns their paths.
func Save(r *Report, dir, reportFile, scoreFile string) (string, string, error) {
	if reportFile == "" {
		reportFile = DefaultReportFile
	}
	if scoreFile == "" {
		scoreFile = DefaultScoreFile
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", "", fmt.Errorf("create output dir: %w", err)
		}
	}

	reportPath := filepath.Join(dir, reportFile)
	if err := os.WriteFile(reportPath, []byte(Render(r)), 0o644); err != nil {
		return "", "", fmt.Errorf("write report: %w", err)
	}

	scorePath := filepath.Join(dir, scoreFile)
	if err := os.WriteFile(scorePath, []byte(ScoreArtifact(r)), 0o644); err != nil {
		return "", "", fmt.Errorf("write score: %w", err)
	}

	return reportPath, scorePath, nil
}

// DumpToTmpFile writes the report as indented JSON into a temporary file.
func (r *Report) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "match_report_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}
