package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spigell/ats-matcher/internal/fields"
)

// Artifact names of the intermediate files written by SaveArtifacts.
const (
	ArtifactText      = "extracted_text.txt"
	ArtifactClean     = "normalized_text.txt"
	ArtifactTokens    = "tokens.txt"
	ArtifactStopwords = "no_stopwords.txt"
)

// SaveArtifacts writes the intermediate stage outputs of doc into dir, each
// prefixed with the document kind. Token files are bracketed lists readable
// by extract.ParseTokens. Stages that did not run produce no file.
func SaveArtifacts(doc *Document, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifacts dir: %w", err)
	}

	prefix := ""
	if doc.Kind != "" {
		prefix = string(doc.Kind) + "_"
	}

	artifacts := []struct {
		name    string
		content string
		skip    bool
	}{
		{name: ArtifactText, content: doc.Text, skip: doc.Text == ""},
		{name: ArtifactClean, content: doc.Clean, skip: doc.Clean == ""},
		{name: ArtifactTokens, content: fields.FormatList(doc.Tokens), skip: doc.Tokens == nil},
		{name: ArtifactStopwords, content: fields.FormatList(doc.Content), skip: doc.Content == nil},
	}

	var paths []string
	for _, a := range artifacts {
		if a.skip {
			continue
		}
		path := filepath.Join(dir, prefix+a.name)
		if err := os.WriteFile(path, []byte(strings.TrimRight(a.content, "\n")+"\n"), 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", a.name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
