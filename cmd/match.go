package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/ats-matcher/internal/matching"
	"github.com/spigell/ats-matcher/internal/pipeline"
)

const (
	PromptReport  = "Show report"
	PromptDetails = "Field details"
	PromptGaps    = "Skill gaps"
	PromptSave    = "Save report and score"
	PromptDump    = "Dump report to JSON file"
	PromptEnhance = "Enhance resume"
	PromptExit    = "Exit"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptReport, PromptDetails, PromptGaps, PromptSave, PromptDump, PromptEnhance, PromptExit},
}

var matchCmd = &cobra.Command{
	Use:   "match <resume>",
	Short: "Match a resume against a job description",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runMatch(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	jdFlags(matchCmd)
	matchCmd.Flags().BoolP("yes", "y", false, "do not ask, save the report and exit")
}

// matchSession is the state the interactive actions work on.
type matchSession struct {
	services *services
	out      io.Writer
	resume   *pipeline.Document
	jd       *pipeline.Document
	report   *matching.Report
}

func runMatch(cmd *cobra.Command, resumePath string) {
	ctx := context.Background()
	logger, config := setup()
	s := newServices(config, logger)

	logger.Info("starting the ats-matcher", zap.String("version", version))

	session, err := newMatchSession(ctx, cmd, s, resumePath)
	if err != nil {
		logger.Fatal("matching", zap.Error(err))
	}

	logger.Info("match finished",
		zap.Float64("overall", session.report.Overall.Score),
		zap.String("label", string(session.report.Overall.Label)),
	)

	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		saveReport(logger, config, session.report)
		fmt.Fprint(session.out, matching.Render(session.report))
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := session.handle(ctx, action); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func newMatchSession(ctx context.Context, cmd *cobra.Command, s *services, resumePath string) (*matchSession, error) {
	deps, err := s.pipelineDeps(ctx)
	if err != nil {
		return nil, err
	}

	jd, err := jdDocument(ctx, cmd, s.config, s)
	if err != nil {
		return nil, err
	}
	resume := resumeDocument(resumePath)

	if err := pipeline.RunAll(ctx, deps, pipeline.Default(), resume, jd); err != nil {
		return nil, err
	}
	for _, doc := range []*pipeline.Document{resume, jd} {
		for _, w := range doc.Warnings {
			s.logger.Warn("document processed with warnings", zap.String("document", doc.Name), zap.String("warning", w))
		}
	}

	report, err := matching.Match(resume.Fields, jd.Fields)
	if err != nil {
		return nil, err
	}

	return &matchSession{services: s, out: cmd.OutOrStdout(), resume: resume, jd: jd, report: report}, nil
}

func (m *matchSession) handle(ctx context.Context, action string) error {
	logger := m.services.logger

	switch action {
	case PromptReport:
		fmt.Fprint(m.out, matching.Render(m.report))
		return nil
	case PromptDetails:
		for _, s := range m.report.Scores {
			field := m.resume.Fields.Get(s.Field)
			logger.Info(matching.FieldLine(s),
				zap.Strings("resume", field),
				zap.Strings("jd", m.jd.Fields.Get(s.Field)),
				zap.Bool("empty", s.Empty),
			)
		}
		return nil
	case PromptGaps:
		if len(m.report.Missing) == 0 {
			logger.Info("no skill gaps, the resume covers every job description skill")
			return nil
		}
		fmt.Fprintf(m.out, "Skills Missing in CV (from JD):\n%s\n", strings.Join(m.report.Missing, "\n"))
		return nil
	case PromptSave:
		saveReport(logger, m.services.config, m.report)
		return nil
	case PromptDump:
		filename, err := m.report.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump report to file: %w", err)
		}
		logger.Info("dumping report to file", zap.String("filename", filename))
		return nil
	case PromptEnhance:
		return runEnhancement(ctx, m.services, m.out, m.resume, m.jd)
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}
