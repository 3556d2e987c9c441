package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spigell/ats-matcher/internal/headhunter"
	"github.com/spigell/ats-matcher/internal/pipeline"
)

// jdFlags registers the mutually exclusive job description sources.
func jdFlags(cmd *cobra.Command) {
	cmd.Flags().String("jd", "", "job description file (pdf, docx or text)")
	cmd.Flags().String("jd-text", "", "job description text")
	cmd.Flags().String("jd-vacancy", "", "hh.ru vacancy id used as the job description")
	cmd.MarkFlagsMutuallyExclusive("jd", "jd-text", "jd-vacancy")
	cmd.MarkFlagsOneRequired("jd", "jd-text", "jd-vacancy")
}

func resumeDocument(path string) *pipeline.Document {
	return &pipeline.Document{Name: filepath.Base(path), Kind: pipeline.Resume, Path: path}
}

// jdDocument builds the job description document from whichever source flag is set.
func jdDocument(ctx context.Context, cmd *cobra.Command, config *Config, s *services) (*pipeline.Document, error) {
	if path, _ := cmd.Flags().GetString("jd"); path != "" {
		return &pipeline.Document{Name: filepath.Base(path), Kind: pipeline.JobDescription, Path: path}, nil
	}

	if text, _ := cmd.Flags().GetString("jd-text"); strings.TrimSpace(text) != "" {
		return &pipeline.Document{Name: "jd-text", Kind: pipeline.JobDescription, Text: text}, nil
	}

	id, _ := cmd.Flags().GetString("jd-vacancy")
	if id == "" {
		return nil, errors.New("job description is required (--jd, --jd-text or --jd-vacancy)")
	}

	hh := headhunter.New(s.logger.Named("headhunter"))
	if config.HeadHunter.UserAgent != "" {
		hh.UserAgent = config.HeadHunter.UserAgent
	}
	if config.HeadHunter.APIURL != "" {
		hh.APIURL = config.HeadHunter.APIURL
	}

	vacancy, err := hh.GetVacancy(ctx, id)
	if err != nil {
		return nil, err
	}

	text := vacancy.JobDescription()
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("vacancy %s has no description", id)
	}

	return &pipeline.Document{Name: "vacancy-" + vacancy.ID, Kind: pipeline.JobDescription, Text: text}, nil
}
