package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/ats-matcher/internal/ai"
	"github.com/spigell/ats-matcher/internal/document"
	"github.com/spigell/ats-matcher/internal/fields"
	"github.com/spigell/ats-matcher/internal/preprocess"
)

// toggle carries the enable/disable state shared by every stage.
type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }

func (t *toggle) status(name string, details map[string]string) Status {
	return Status{Name: name, Enabled: !t.disabled, Reason: t.reason, Details: details}
}

type readStage struct{ toggle }

// NewRead creates the stage that turns the document file into text.
func NewRead() Stage { return &readStage{} }

func (s *readStage) Name() string { return "read" }

func (s *readStage) Apply(_ context.Context, deps Deps, doc *Document) (Step, error) {
	if doc.Text != "" {
		n := utf8.RuneCountInString(doc.Text)
		deps.Logger.Debug("document text already provided")
		return Step{Unit: "chars", Initial: n, Left: n}, nil
	}

	if doc.Data == nil {
		if doc.Path == "" {
			return Step{}, errors.New("document has no text, data or path")
		}
		data, err := os.ReadFile(doc.Path)
		if err != nil {
			return Step{}, fmt.Errorf("read document: %w", err)
		}
		doc.Data = data
	}

	name := doc.Name
	if doc.Path != "" {
		name = filepath.Base(doc.Path)
	}

	text, err := document.Extract(name, doc.Data)
	if err != nil {
		return Step{}, err
	}
	if strings.TrimSpace(text) == "" {
		return Step{}, fmt.Errorf("no text extracted from %s", name)
	}
	doc.Text = text

	return Step{Unit: "bytes", Initial: len(doc.Data), Dropped: max(0, len(doc.Data)-len(text)), Left: len(text)}, nil
}

func (s *readStage) Status() Status { return s.status(s.Name(), nil) }

type cleanStage struct{ toggle }

// NewClean creates the text normalization stage.
func NewClean() Stage { return &cleanStage{} }

func (s *cleanStage) Name() string { return "clean" }

func (s *cleanStage) Apply(_ context.Context, _ Deps, doc *Document) (Step, error) {
	initial := utf8.RuneCountInString(doc.Text)
	doc.Clean = preprocess.CleanText(doc.Text)
	left := utf8.RuneCountInString(doc.Clean)
	return Step{Unit: "chars", Initial: initial, Dropped: initial - left, Left: left}, nil
}

func (s *cleanStage) Status() Status { return s.status(s.Name(), nil) }

type tokenizeStage struct{ toggle }

// NewTokenize creates the stage that splits clean text into tokens.
func NewTokenize() Stage { return &tokenizeStage{} }

func (s *tokenizeStage) Name() string { return "tokenize" }

func (s *tokenizeStage) Apply(_ context.Context, _ Deps, doc *Document) (Step, error) {
	source := doc.Clean
	if source == "" {
		source = doc.Text
	}
	doc.Tokens = preprocess.Tokenize(source)
	n := len(doc.Tokens)
	return Step{Unit: "tokens", Initial: n, Left: n}, nil
}

func (s *tokenizeStage) Status() Status { return s.status(s.Name(), nil) }

type stopwordsStage struct{ toggle }

// NewStopwords creates the stage that fills Content with the non-stopword
// tokens. Tokens stay untouched for the extractor.
func NewStopwords() Stage { return &stopwordsStage{} }

func (s *stopwordsStage) Name() string { return "stopwords" }

func (s *stopwordsStage) Apply(_ context.Context, _ Deps, doc *Document) (Step, error) {
	doc.Content = preprocess.RemoveStopwords(doc.Tokens)
	doc.Stats = preprocess.Summarize(doc.Tokens, doc.Content)
	return Step{
		Unit:    "tokens",
		Initial: len(doc.Tokens),
		Dropped: len(doc.Tokens) - len(doc.Content),
		Left:    len(doc.Content),
	}, nil
}

func (s *stopwordsStage) Status() Status { return s.status(s.Name(), nil) }

type fieldsStage struct{ toggle }

// NewFields creates the field extraction stage. Entity tagger failures are
// recorded as warnings; the keyword fields are kept.
func NewFields() Stage { return &fieldsStage{} }

func (s *fieldsStage) Name() string { return "fields" }

func (s *fieldsStage) Apply(ctx context.Context, deps Deps, doc *Document) (Step, error) {
	if deps.Extractor == nil {
		return Step{}, errors.New("extractor is required")
	}

	out, err := deps.Extractor.Extract(ctx, doc.Tokens)
	var serr *ai.ServiceError
	switch {
	case errors.As(err, &serr):
		deps.Logger.Warn("entity recognition unavailable, using keyword fields only", zap.Error(err))
		doc.Warnings = append(doc.Warnings, fmt.Sprintf("%s: %v", s.Name(), err))
	case err != nil:
		return Step{}, err
	}

	doc.Fields = out
	return Step{Unit: "values", Initial: len(doc.Tokens), Left: out.Len()}, nil
}

func (s *fieldsStage) Status() Status {
	details := map[string]string{"categories": strconv.Itoa(len(fields.Categories()))}
	return s.status(s.Name(), details)
}
