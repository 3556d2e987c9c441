// Package enhance rewrites resume sentences with a generative model under
// no-fabrication rules and reports the skill gap against a job description.
package enhance

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/ats-matcher/internal/ai"
	"github.com/spigell/ats-matcher/internal/extract"
	"github.com/spigell/ats-matcher/internal/fields"
	"github.com/spigell/ats-matcher/internal/matching"
)

const defaultMaxSentences = 10

// Enhancer holds the generative backend and the known skill vocabulary used to
// detect fabricated skills in rewrites.
type Enhancer struct {
	inferrer     ai.Inferrer
	skills       []string
	triggers     []string
	maxSentences int
	logger       *zap.Logger
}

type Option func(*Enhancer)

// WithMaxSentences limits how many resume sentences are rewritten.
func WithMaxSentences(n int) Option {
	return func(e *Enhancer) {
		if n > 0 {
			e.maxSentences = n
		}
	}
}

// New returns an Enhancer. A nil inferrer refuses every request; an empty
// vocabulary falls back to the default extractor vocabulary.
func New(inferrer ai.Inferrer, vocab extract.Vocabulary, logger *zap.Logger, opts ...Option) *Enhancer {
	if inferrer == nil {
		inferrer = ai.Refuser{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(vocab.Skills) == 0 && len(vocab.Projects) == 0 && len(vocab.Experience) == 0 {
		vocab = extract.DefaultVocabulary()
	}

	triggers := fields.NewSet(vocab.Projects...)
	triggers.Add(vocab.Experience...)

	e := &Enhancer{
		inferrer:     inferrer,
		skills:       vocab.Skills,
		triggers:     triggers.Sorted(),
		maxSentences: defaultMaxSentences,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rewrite is one enhanced resume sentence.
type Rewrite struct {
	Original  string   `json:"original"`
	Rewritten string   `json:"rewritten"`
	Skills    []string `json:"inferred_skills"`
	Refused   bool     `json:"refused"`
}

// Input carries everything Enhance needs about the pair.
type Input struct {
	ResumeText string
	Resume     fields.StructuredFields
	JD         fields.StructuredFields
	// ResumeContent and JDContent are the tokens left after stopword removal.
	ResumeContent []string
	JDContent     []string
}

// Enhancement is the outcome of Enhance.
type Enhancement struct {
	Sentences   []Rewrite `json:"sentences"`
	Missing     []string  `json:"missing_skills"`
	Suggestions []string  `json:"suggestions"`
}

// MissingSkills returns the lowercased job description skills absent from the resume.
func MissingSkills(resume, jd fields.StructuredFields) []string {
	return matching.MissingSkills(resume, jd)
}

// InferProjectSkills asks for the skills a sentence implies and keeps only
// those that occur in the sentence or the evidence text.
func (e *Enhancer) InferProjectSkills(ctx context.Context, sentence, evidence string) ([]string, error) {
	prompt := fmt.Sprintf("Identify technical skills and tools inherently required to complete the following project.\n"+
		"Output as a comma-separated list.\nProject description: %q", sentence)

	out, err := e.inferrer.Infer(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if ai.IsRefusal(out) {
		return []string{}, nil
	}

	source := strings.ToLower(sentence + "\n" + evidence)
	kept := fields.NewSet()
	for _, skill := range strings.Split(out, ",") {
		skill = strings.ToLower(strings.Trim(strings.TrimSpace(skill), "-*.\"'`"))
		if skill == "" {
			continue
		}
		if !containsTerm(source, skill) {
			e.logger.Debug("dropping inferred skill without evidence", zap.String("skill", skill))
			continue
		}
		kept.Add(skill)
	}
	return kept.Sorted(), nil
}

// Rewrite improves the wording of sentence using only the allowed skills.
// A rewrite that introduces a known skill absent from both the sentence and
// the allowed list is replaced by the refusal answer.
func (e *Enhancer) Rewrite(ctx context.Context, sentence string, allowed []string) (Rewrite, error) {
	result := Rewrite{Original: sentence, Skills: allowed}

	prompt := fmt.Sprintf("Rewrite the following resume sentence to highlight relevant skills for ATS.\n"+
		"Include these skills naturally: %s\nOriginal sentence: %q", strings.Join(allowed, ", "), sentence)

	out, err := e.inferrer.Infer(ctx, prompt)
	if err != nil {
		return result, err
	}

	out = strings.TrimSpace(out)
	if ai.IsRefusal(out) || out == "" {
		result.Rewritten, result.Refused = ai.InsufficientInformation, true
		return result, nil
	}

	if invented := e.inventedSkills(out, sentence, allowed); len(invented) > 0 {
		e.logger.Warn("rejecting rewrite with unsupported skills",
			zap.String("sentence", sentence),
			zap.Strings("skills", invented),
		)
		result.Rewritten, result.Refused = ai.InsufficientInformation, true
		return result, nil
	}

	result.Rewritten = out
	return result, nil
}

func (e *Enhancer) inventedSkills(rewritten, original string, allowed []string) []string {
	allowedSet := fields.NewSet()
	for _, s := range allowed {
		allowedSet.Add(strings.ToLower(s))
	}

	out := strings.ToLower(rewritten)
	src := strings.ToLower(original)
	invented := fields.NewSet()
	for _, skill := range e.skills {
		if containsTerm(out, skill) && !containsTerm(src, skill) && !allowedSet.Has(skill) {
			invented.Add(skill)
		}
	}
	return invented.Sorted()
}

// Enhance rewrites the project and experience sentences of the resume and
// collects the skill gap and suggestions.
//
// When the generative service fails, rewriting stops and Enhance returns the
// partial enhancement (gap and suggestions included) with an error matching
// *ai.ServiceError. Context cancellation returns no enhancement.
func (e *Enhancer) Enhance(ctx context.Context, in Input) (*Enhancement, error) {
	missing := MissingSkills(in.Resume, in.JD)
	result := &Enhancement{
		Sentences:   []Rewrite{},
		Missing:     missing,
		Suggestions: Suggestions(missing, in.ResumeContent, in.JDContent),
	}

	resumeSkills := normalizeSkills(in.Resume.Skills)
	for _, sentence := range e.Sentences(in.ResumeText) {
		rw, err := e.enhanceSentence(ctx, sentence, in.ResumeText, resumeSkills)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			err = ai.AsServiceError("inferrer", err)
			e.logger.Warn("generative service failed, skipping remaining rewrites", zap.Error(err))
			return result, err
		}
		result.Sentences = append(result.Sentences, rw)
	}

	return result, nil
}

func (e *Enhancer) enhanceSentence(ctx context.Context, sentence, evidence string, resumeSkills []string) (Rewrite, error) {
	inferred, err := e.InferProjectSkills(ctx, sentence, evidence)
	if err != nil {
		return Rewrite{}, err
	}

	allowed := fields.NewSet(resumeSkills...)
	allowed.Add(inferred...)

	rw, err := e.Rewrite(ctx, sentence, allowed.Sorted())
	if err != nil {
		return Rewrite{}, err
	}
	rw.Skills = inferred
	return rw, nil
}

var sentenceEnd = regexp.MustCompile(`[.!?;]\s+|\n+`)

// Sentences returns the resume sentences that mention a project or
// experience trigger word, up to the configured limit.
func (e *Enhancer) Sentences(text string) []string {
	var out []string
	seen := fields.NewSet()
	for _, raw := range sentenceEnd.Split(text, -1) {
		sentence := strings.Trim(strings.TrimSpace(raw), "-•*·")
		sentence = strings.TrimSpace(sentence)
		if len(strings.Fields(sentence)) < 3 || seen.Has(sentence) {
			continue
		}

		lower := strings.ToLower(sentence)
		for _, trigger := range e.triggers {
			if containsTerm(lower, trigger) {
				out = append(out, sentence)
				seen.Add(sentence)
				break
			}
		}
		if len(out) >= e.maxSentences {
			break
		}
	}
	return out
}

func normalizeSkills(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.ToLower(strings.TrimSpace(v)))
	}
	return out
}

// containsTerm reports whether term occurs in text as a whole word. Both are
// expected lowercased.
func containsTerm(text, term string) bool {
	if term == "" {
		return false
	}
	for start := 0; ; {
		i := strings.Index(text[start:], term)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(term)
		if (i == 0 || !isWordByte(text[i-1])) && (end == len(text) || !isWordByte(text[end])) {
			return true
		}
		start = i + 1
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9' || b == '+' || b == '#' || b == '_'
}
