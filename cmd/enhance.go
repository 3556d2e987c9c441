package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/ats-matcher/internal/ai"
	"github.com/spigell/ats-matcher/internal/enhance"
	"github.com/spigell/ats-matcher/internal/pipeline"
)

var enhanceCmd = &cobra.Command{
	Use:   "enhance <resume>",
	Short: "Rewrite resume sentences for a job description without inventing skills",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runEnhance(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(enhanceCmd)

	jdFlags(enhanceCmd)
	enhanceCmd.Flags().Bool("print-resume", false, "also print the enhanced resume preview")
}

func runEnhance(cmd *cobra.Command, resumePath string) {
	ctx := context.Background()
	logger, config := setup()
	s := newServices(config, logger)

	deps, err := s.pipelineDeps(ctx)
	if err != nil {
		logger.Fatal("building pipeline", zap.Error(err))
	}

	jd, err := jdDocument(ctx, cmd, config, s)
	if err != nil {
		logger.Fatal("loading job description", zap.Error(err))
	}
	resume := resumeDocument(resumePath)

	if err := pipeline.RunAll(ctx, deps, pipeline.Default(), resume, jd); err != nil {
		logger.Fatal("processing documents", zap.Error(err))
	}

	if err := runEnhancement(ctx, s, cmd.OutOrStdout(), resume, jd); err != nil {
		logger.Fatal("enhancing resume", zap.Error(err))
	}

	if printResume, _ := cmd.Flags().GetBool("print-resume"); printResume {
		missing := enhance.MissingSkills(resume.Fields, jd.Fields)
		fmt.Fprintln(cmd.OutOrStdout(), enhance.EnhancedResume(resume.Text, missing))
	}
}

// runEnhancement rewrites the resume, saves and prints the report. An
// unavailable model still produces a report with the refused sentences.
func runEnhancement(ctx context.Context, s *services, out io.Writer, resume, jd *pipeline.Document) error {
	extractor, err := s.extractor(ctx)
	if err != nil {
		return err
	}
	enhancer := s.enhancer(ctx, extractor.Vocabulary())

	result, err := enhancer.Enhance(ctx, enhance.Input{
		ResumeText:    resume.Text,
		Resume:        resume.Fields,
		JD:            jd.Fields,
		ResumeContent: resume.Content,
		JDContent:     jd.Content,
	})
	var serr *ai.ServiceError
	switch {
	case errors.As(err, &serr) && result != nil:
		s.logger.Warn("generative service failed, the report is partial", zap.Error(err))
	case err != nil:
		return err
	}

	path, err := enhance.Save(result, s.config.Output.Dir, s.config.Output.EnhancementFile)
	if err != nil {
		return err
	}
	s.logger.Info("enhancement report saved", zap.String("filename", path), zap.Int("sentences", len(result.Sentences)))

	fmt.Fprint(out, enhance.RenderReport(result))
	return nil
}
