package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/ats-matcher/internal/ai"
	"github.com/spigell/ats-matcher/internal/fields"
	"github.com/spigell/ats-matcher/internal/pipeline"
)

var extractCmd = &cobra.Command{
	Use:   "extract <document>",
	Short: "Extract structured fields from a resume or a job description",
	Long: "Extract reads a pdf, docx or text document (or a tokens file with --tokens) " +
		"and writes its structured fields file.",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runExtract(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringP("kind", "k", string(pipeline.Resume), "document kind: resume or jd")
	extractCmd.Flags().Bool("tokens", false, "the input is a tokens file instead of a document")
	extractCmd.Flags().String("fields-file", "", "output fields file (default <output-dir>/<kind>_fields.txt)")
	extractCmd.Flags().Bool("keep-intermediate", false, "also write the extracted text, normalized text and token files")
}

func runExtract(cmd *cobra.Command, input string) {
	ctx := context.Background()
	logger, config := setup()
	s := newServices(config, logger)

	kind := pipeline.Kind(cmd.Flag("kind").Value.String())
	if kind != pipeline.Resume && kind != pipeline.JobDescription {
		logger.Fatal("unsupported document kind", zap.String("kind", string(kind)))
	}

	out, _ := cmd.Flags().GetString("fields-file")
	if out == "" {
		out = filepath.Join(config.Output.Dir, string(kind)+"_fields.txt")
	}

	tokensOnly, _ := cmd.Flags().GetBool("tokens")
	keep, _ := cmd.Flags().GetBool("keep-intermediate")

	var (
		extracted fields.StructuredFields
		err       error
	)
	if tokensOnly {
		extracted, err = extractTokens(ctx, s, input)
	} else {
		extracted, err = extractDocument(ctx, s, kind, input, keep)
	}
	if err != nil {
		logger.Fatal("extracting fields", zap.Error(err))
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		logger.Fatal("creating output dir", zap.Error(err))
	}
	if err := fields.WriteFile(out, extracted); err != nil {
		logger.Fatal("writing fields file", zap.Error(err))
	}

	logger.Info("fields saved", zap.String("filename", out), zap.Int("values", extracted.Len()))
}

func extractTokens(ctx context.Context, s *services, path string) (fields.StructuredFields, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fields.StructuredFields{}, err
	}

	extractor, err := s.extractor(ctx)
	if err != nil {
		return fields.StructuredFields{}, err
	}

	extracted, err := extractor.ExtractRaw(ctx, string(raw))
	var serr *ai.ServiceError
	if errors.As(err, &serr) {
		s.logger.Warn("continuing with keyword fields only", zap.Error(err))
		return extracted, nil
	}
	if err != nil {
		return fields.StructuredFields{}, fmt.Errorf("%s: %w", path, err)
	}
	return extracted, nil
}

func extractDocument(ctx context.Context, s *services, kind pipeline.Kind, path string, keep bool) (fields.StructuredFields, error) {
	deps, err := s.pipelineDeps(ctx)
	if err != nil {
		return fields.StructuredFields{}, err
	}

	doc := &pipeline.Document{Name: filepath.Base(path), Kind: kind, Path: path}
	if err := pipeline.Run(ctx, deps, pipeline.Default(), doc); err != nil {
		return fields.StructuredFields{}, err
	}

	if keep {
		paths, err := pipeline.SaveArtifacts(doc, s.config.Output.Dir)
		if err != nil {
			return fields.StructuredFields{}, err
		}
		s.logger.Info("intermediate files saved", zap.Strings("files", paths))
	}

	return doc.Fields, nil
}
