// Package extract turns a token stream into StructuredFields using an entity
// tagger, keyword vocabularies and project name rules.
package extract

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/ats-matcher/internal/ai"
	"github.com/spigell/ats-matcher/internal/fields"
	"github.com/spigell/ats-matcher/internal/ner"
)

// Routes maps entity labels to the category they feed. Unlisted labels are ignored.
var Routes = map[ner.Label]fields.Category{
	ner.Person:    fields.Name,
	ner.Org:       fields.Org,
	ner.Education: fields.Education,
	ner.Fac:       fields.Education,
	ner.WorkOfArt: fields.Projects,
	ner.Product:   fields.Projects,
}

// Extractor is safe for concurrent use when its tagger is.
type Extractor struct {
	tagger   ner.Tagger
	logger   *zap.Logger
	vocab    Vocabulary
	projects []projectRule
}

type Option func(*Extractor)

// WithVocabulary replaces the keyword lists.
func WithVocabulary(v Vocabulary) Option {
	return func(e *Extractor) { e.vocab = v }
}

// WithProjectPatterns replaces the project name rules.
func WithProjectPatterns(patterns ...ProjectPattern) Option {
	return func(e *Extractor) { e.projects = compileProjectPatterns(patterns) }
}

// New returns an Extractor. A nil tagger disables the entity pass.
func New(tagger ner.Tagger, logger *zap.Logger, opts ...Option) *Extractor {
	if tagger == nil {
		tagger = ner.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	e := &Extractor{
		tagger:   tagger,
		logger:   logger,
		vocab:    DefaultVocabulary(),
		projects: compileProjectPatterns(DefaultProjectPatterns),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Vocabulary returns the keyword lists in use.
func (e *Extractor) Vocabulary() Vocabulary {
	return e.vocab
}

// Extract builds StructuredFields from tokens. Every category is present in
// the result and holds sorted unique values.
//
// When the tagger fails, the entity pass is skipped and Extract returns the
// keyword and project fields together with an error matching *ai.ServiceError.
// Callers should use the fields before considering the error. Context
// cancellation returns empty fields.
func (e *Extractor) Extract(ctx context.Context, tokens []string) (fields.StructuredFields, error) {
	text := strings.Join(nonEmpty(tokens), " ")
	lower := strings.ToLower(text)
	b := fields.NewBuilder()

	entities, tagErr := e.tagger.Tag(ctx, text)
	if tagErr != nil {
		if ctx.Err() != nil {
			return fields.Empty(), ctx.Err()
		}
		tagErr = ai.AsServiceError("ner", tagErr)
		e.logger.Warn("entity tagger failed, skipping entity pass", zap.Error(tagErr))
	} else {
		routed := 0
		for _, ent := range entities {
			category, ok := Routes[ent.Label]
			if !ok {
				continue
			}
			b.Add(category, strings.ToLower(strings.TrimSpace(ent.Text)))
			routed++
		}
		e.logger.Debug("entity pass finished", zap.Int("entities", len(entities)), zap.Int("routed", routed))
	}

	e.addKeywords(b, fields.Skills, e.vocab.Skills, lower)
	e.addKeywords(b, fields.Experience, e.vocab.Experience, lower)
	e.addKeywords(b, fields.Projects, e.vocab.Projects, lower)
	e.addKeywords(b, fields.Achievements, e.vocab.Achievements, lower)
	e.addKeywords(b, fields.Education, e.vocab.Education, lower)

	names := e.projectNames(text)
	b.Add(fields.Projects, names...)

	out := b.Build()
	e.logger.Debug("fields extracted",
		zap.Int("tokens", len(tokens)),
		zap.Int("values", out.Len()),
		zap.Strings("project_names", names),
	)

	return out, tagErr
}

// ExtractRaw parses raw token input with ParseTokens and extracts fields from it.
func (e *Extractor) ExtractRaw(ctx context.Context, raw string) (fields.StructuredFields, error) {
	tokens, err := ParseTokens(raw)
	if err != nil {
		return fields.Empty(), err
	}
	return e.Extract(ctx, tokens)
}

func (e *Extractor) addKeywords(b *fields.Builder, c fields.Category, terms []string, lower string) {
	for _, term := range terms {
		if term != "" && strings.Contains(lower, term) {
			b.Add(c, term)
		}
	}
}

// ParseTokens accepts a bracketed list literal such as ['python', 'sql'] or
// ["python"], or plain whitespace separated tokens. Malformed bracketed input
// is a *fields.ParseError.
func ParseTokens(raw string) ([]string, error) {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "[") {
		tokens, err := fields.ParseList(trimmed)
		if err != nil {
			return nil, err
		}
		return nonEmpty(tokens), nil
	}
	return strings.Fields(trimmed), nil
}

func nonEmpty(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
