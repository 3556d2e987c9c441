package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/ats-matcher/internal/fields"
	"github.com/spigell/ats-matcher/internal/matching"
)

var scoreCmd = &cobra.Command{
	Use:   "score <resume-fields> <jd-fields>",
	Short: "Score two structured fields files and write the match report",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		runScore(cmd, args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, resumePath, jdPath string) {
	logger, config := setup()

	resume, err := fields.ReadFile(resumePath)
	if err != nil {
		logger.Fatal("reading resume fields", zap.Error(err))
	}
	jd, err := fields.ReadFile(jdPath)
	if err != nil {
		logger.Fatal("reading job description fields", zap.Error(err))
	}

	report, err := matching.Match(resume, jd)
	if err != nil {
		logger.Fatal("matching", zap.Error(err))
	}

	saveReport(logger, config, report)
	fmt.Fprint(cmd.OutOrStdout(), matching.Render(report))
}

func saveReport(logger *zap.Logger, config *Config, report *matching.Report) {
	reportPath, scorePath, err := matching.Save(report, config.Output.Dir, config.Output.ReportFile, config.Output.ScoreFile)
	if err != nil {
		logger.Fatal("saving report", zap.Error(err))
	}
	logger.Info("report saved", zap.String("report", reportPath), zap.String("score", scorePath))
}
