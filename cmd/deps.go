package cmd

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/ats-matcher/internal/ai"
	"github.com/spigell/ats-matcher/internal/ai/gemini"
	"github.com/spigell/ats-matcher/internal/enhance"
	"github.com/spigell/ats-matcher/internal/extract"
	"github.com/spigell/ats-matcher/internal/ner"
	"github.com/spigell/ats-matcher/internal/pipeline"
	"github.com/spigell/ats-matcher/internal/secrets"
)

const (
	nerGazetteer = "gazetteer"
	nerGemini    = "gemini"
	nerNone      = "none"
)

// services holds the components shared by the commands. They are built
// lazily; the generator is only needed by the gemini tagger and enhance.
type services struct {
	config    *Config
	logger    *zap.Logger
	generator *gemini.Generator
	ext       *extract.Extractor
}

func newServices(config *Config, logger *zap.Logger) *services {
	return &services{config: config, logger: logger}
}

func (s *services) aiGenerator(ctx context.Context) (*gemini.Generator, error) {
	if s.generator != nil {
		return s.generator, nil
	}

	provider := strings.TrimSpace(strings.ToLower(s.config.AI.Provider))
	if provider != "" && provider != gemini.Provider {
		return nil, fmt.Errorf("unsupported ai provider: %s", s.config.AI.Provider)
	}

	cfg := s.config.AI.Gemini
	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.APIKey,
		File:  cfg.APIKeyFile,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, gemini.Options{
		Model:        cfg.Model,
		MaxRetries:   cfg.MaxRetries,
		MaxLogLength: cfg.MaxLogLength,
	}, s.logger.With(zap.Int("ai_retry_attempts", cfg.MaxRetries)))
	if err != nil {
		return nil, err
	}

	s.generator = generator
	return generator, nil
}

func (s *services) tagger(ctx context.Context) (ner.Tagger, error) {
	switch provider := strings.TrimSpace(strings.ToLower(s.config.NER.Provider)); provider {
	case "", nerGazetteer:
		return ner.NewGazetteer(s.config.NER.GazetteerConfig), nil
	case nerNone:
		return ner.Nop{}, nil
	case nerGemini:
		generator, err := s.aiGenerator(ctx)
		if err != nil {
			return nil, fmt.Errorf("building gemini tagger: %w", err)
		}
		return gemini.NewTagger(generator, s.logger, s.config.AI.Gemini.MaxLogLength), nil
	default:
		return nil, fmt.Errorf("unsupported ner provider: %s", provider)
	}
}

func (s *services) extractor(ctx context.Context) (*extract.Extractor, error) {
	if s.ext != nil {
		return s.ext, nil
	}
	tagger, err := s.tagger(ctx)
	if err != nil {
		return nil, err
	}
	s.ext = extract.New(tagger, s.logger.Named("extract"))
	return s.ext, nil
}

func (s *services) pipelineDeps(ctx context.Context) (pipeline.Deps, error) {
	extractor, err := s.extractor(ctx)
	if err != nil {
		return pipeline.Deps{}, err
	}
	return pipeline.Deps{Extractor: extractor, Logger: s.logger}, nil
}

// enhancer falls back to the local refuser when ai is disabled or unavailable.
func (s *services) enhancer(ctx context.Context, vocab extract.Vocabulary) *enhance.Enhancer {
	var inferrer ai.Inferrer
	if s.config.AI.Enabled {
		generator, err := s.aiGenerator(ctx)
		if err != nil {
			s.logger.Warn("ai is unavailable, every rewrite will be refused", zap.Error(err))
		} else {
			inferrer = generator
		}
	} else {
		s.logger.Info("ai is disabled, every rewrite will be refused", zap.String("hint", "set ai.enabled in the config"))
	}

	return enhance.New(inferrer, vocab, s.logger.Named("enhance"), enhance.WithMaxSentences(s.config.AI.MaxSentences))
}
