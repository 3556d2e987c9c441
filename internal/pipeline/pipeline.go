package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/ats-matcher/internal/extract"
	"github.com/spigell/ats-matcher/internal/fields"
	"github.com/spigell/ats-matcher/internal/logger"
	"github.com/spigell/ats-matcher/internal/preprocess"
)

// Kind tells a resume apart from a job description.
type Kind string

const (
	Resume         Kind = "resume"
	JobDescription Kind = "jd"
)

// Document is the state carried through the stages. Each stage fills in the
// next field from the previous ones.
type Document struct {
	Name string
	Kind Kind
	// Path is read when Data and Text are empty.
	Path string
	Data []byte

	Text    string
	Clean   string
	Tokens  []string
	Content []string
	Stats   preprocess.Stats
	Fields  fields.StructuredFields

	// Warnings records non-fatal stage problems.
	Warnings []string
}

// Stage is a single processing step applied to a document.
// Stages must not keep per-document state: RunAll shares them across goroutines.
type Stage interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Apply(ctx context.Context, deps Deps, doc *Document) (Step, error)
}

// Deps aggregates dependencies shared across all stages.
type Deps struct {
	Extractor *extract.Extractor
	Logger    *zap.Logger
}

// Step describes the result of executing a stage, counted in Unit.
type Step struct {
	Unit    string
	Initial int
	Dropped int
	Left    int
}

// Status represents runtime information about a stage.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

type statusProvider interface {
	Status() Status
}

// Default returns the standard stage sequence.
func Default() []Stage {
	return []Stage{NewRead(), NewClean(), NewTokenize(), NewStopwords(), NewFields()}
}

// DisableByName marks a stage with the provided name as disabled while keeping it in the list.
func DisableByName(stages []Stage, name, reason string) {
	for _, stage := range stages {
		if stage.Name() == name {
			stage.Disable(reason)
		}
	}
}

// Run executes the enabled stages on doc in order.
func Run(ctx context.Context, deps Deps, stages []Stage, doc *Document) error {
	log := logger.WithDocument(deps.Logger, doc.Name, string(doc.Kind))

	for _, stage := range stages {
		if !stage.IsEnabled() {
			log.Debug("stage disabled", zap.String(logger.FieldStage, stage.Name()))
			continue
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		info, err := stage.Apply(ctx, Deps{Extractor: deps.Extractor, Logger: log}, doc)
		if err != nil {
			return fmt.Errorf("%s: %w", stage.Name(), err)
		}

		log.Info("pipeline step",
			zap.String(logger.FieldStage, stage.Name()),
			zap.String("unit", info.Unit),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)
	}

	return nil
}

// RunAll processes the documents concurrently. Documents share no state, so
// the only coordination is cancelling the others when one fails.
func RunAll(ctx context.Context, deps Deps, stages []Stage, docs ...*Document) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, doc := range docs {
		g.Go(func() error {
			if err := Run(ctx, deps, stages, doc); err != nil {
				return fmt.Errorf("%s %s: %w", doc.Kind, doc.Name, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Describe returns status entries for the provided stages.
func Describe(stages []Stage) []Status {
	statuses := make([]Status, 0, len(stages))
	for _, stage := range stages {
		if reporter, ok := stage.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    stage.Name(),
			Enabled: stage.IsEnabled(),
		})
	}
	return statuses
}
