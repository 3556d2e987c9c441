package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/ats-matcher/internal/ai"
	"github.com/spigell/ats-matcher/internal/ner"
	"github.com/spigell/ats-matcher/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, prompt string) (string, error)
}

//go:embed tagger_prompt.md
var taggerPrompt string

const taggerSystem = "You are a precise named entity tagger. Output JSON only."

// Tagger is an ner.Tagger backed by a generative model.
type Tagger struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewTagger(generator contentGenerator, log *zap.Logger, maxLogLength int) *Tagger {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Tagger{generator: generator, logger: log, maxLogLen: maxLogLength}
}

// Tag asks the model for entities and keeps only those whose text occurs in
// the input.
func (t *Tagger) Tag(ctx context.Context, text string) ([]ner.Entity, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	prompt := strings.ReplaceAll(taggerPrompt, "{{TEXT}}", text)
	raw, err := t.generator.GenerateContent(ctx, taggerSystem, prompt)
	if err != nil {
		return nil, ai.AsServiceError(Provider, err)
	}

	entities, err := parseEntities(raw)
	if err != nil {
		t.logger.Debug("unparsable tagger response",
			zap.Int("response_length", utf8.RuneCountInString(raw)),
			zap.String("response_preview", utils.TruncateForLog(raw, t.maxLogLen)),
		)
		return nil, ai.AsServiceError(Provider, err)
	}

	lower := strings.ToLower(text)
	kept := entities[:0]
	for _, e := range entities {
		if !strings.Contains(lower, strings.ToLower(e.Text)) {
			t.logger.Debug("dropping entity absent from input", zap.String("entity", e.Text), zap.String("label", string(e.Label)))
			continue
		}
		kept = append(kept, e)
	}

	return kept, nil
}

func parseEntities(raw string) ([]ner.Entity, error) {
	var data any
	if err := json.Unmarshal([]byte(extractJSON(raw)), &data); err != nil {
		return nil, fmt.Errorf("parse tagger response: %w", err)
	}

	// some responses wrap the list: {"entities": [...]}
	if obj, ok := data.(map[string]any); ok {
		data = obj["entities"]
	}
	if data == nil {
		return nil, nil
	}

	var entities []ner.Entity
	if err := mapstructure.Decode(data, &entities); err != nil {
		return nil, fmt.Errorf("decode tagger entities: %w", err)
	}

	out := make([]ner.Entity, 0, len(entities))
	for _, e := range entities {
		e.Text = strings.TrimSpace(e.Text)
		e.Label = ner.Label(strings.ToUpper(strings.TrimSpace(string(e.Label))))
		if e.Text == "" || e.Label == "" {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
